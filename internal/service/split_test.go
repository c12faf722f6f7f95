package service

import (
	"context"
	"errors"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/golang/mock/gomock"
)

func (s *TransferServiceTestSuite) splitArgs(gross, fee int64) SplitArgs {
	return SplitArgs{
		BuyerAccountID:      s.buyer.ID,
		InstructorAccountID: s.instructor.ID,
		PlatformAccountID:   s.platform.ID,
		GrossAmount:         gross,
		PlatformFeeAmount:   fee,
		Currency:            "USD",
		RefID:               "order-42",
		IdempotencyKey:      "evt-42",
		Metadata:            domain.Metadata{Purchase: &domain.PurchaseDetails{OrderID: "order-42"}},
	}
}

func (s *TransferServiceTestSuite) TestSplitTransfer() {
	var created []repoargs.TransferCreate

	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:fee").Return(nil, domain.ErrRecordNotFound)
	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:net").Return(nil, domain.ErrRecordNotFound)
	// каждая нога в своей транзакции.
	s.expectDo(2)
	s.expectAccounts(s.buyer, s.instructor, s.platform)
	s.mockTransferRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, args repoargs.TransferCreate) (*domain.Transfer, error) {
			created = append(created, args)
			return transferFromArgs(args), nil
		},
	).Times(2)
	s.mockEntryRepo.EXPECT().BatchCreate(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(batchCreateOK).Times(2)
	s.mockPublisher.EXPECT().PublishTransferPosted(gomock.Any(), gomock.Any()).Times(2)

	res, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(10000, 1500))
	s.Require().NoError(err)

	fee, ok := res.Fee.Transfer()
	s.Require().True(ok)
	net, ok := res.Net.Transfer()
	s.Require().True(ok)

	s.Equal(int64(1500), fee.Amount)
	s.Equal(s.platform.ID, fee.ToAccountID)
	s.Equal(domain.ReasonPurchaseFee, fee.Reason)
	s.Equal("evt-42:fee", fee.IdempotencyKey)

	s.Equal(int64(8500), net.Amount)
	s.Equal(s.instructor.ID, net.ToAccountID)
	s.Equal(domain.ReasonPurchaseNet, net.Reason)
	s.Equal("evt-42:net", net.IdempotencyKey)

	s.Require().Len(created, 2)
	for _, c := range created {
		s.Equal(s.buyer.ID, c.FromAccountID)
		s.Equal(domain.RefTypePurchase, c.RefType)
		s.Equal("order-42", c.RefID)
	}
}

func (s *TransferServiceTestSuite) TestSplitTransfer_ZeroFee() {
	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:net").Return(nil, domain.ErrRecordNotFound)
	s.expectDo(1)
	s.expectAccounts(s.buyer, s.instructor)
	s.expectPost(func(args repoargs.TransferCreate) {
		s.Equal(int64(10000), args.Amount)
	})
	s.mockPublisher.EXPECT().PublishTransferPosted(gomock.Any(), gomock.Any())

	res, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(10000, 0))
	s.Require().NoError(err)
	s.False(res.Fee.Present())
	s.True(res.Net.Present())
}

func (s *TransferServiceTestSuite) TestSplitTransfer_FeeEqualsGross() {
	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:fee").Return(nil, domain.ErrRecordNotFound)
	s.expectDo(1)
	s.expectAccounts(s.buyer, s.platform)
	s.expectPost(nil)
	s.mockPublisher.EXPECT().PublishTransferPosted(gomock.Any(), gomock.Any())

	res, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(10000, 10000))
	s.Require().NoError(err)
	s.True(res.Fee.Present())
	s.False(res.Net.Present())
}

func (s *TransferServiceTestSuite) TestSplitTransfer_Validation() {
	cases := []struct {
		name  string
		gross int64
		fee   int64
		err   error
	}{
		{name: "zero gross", gross: 0, fee: 0, err: domain.ErrInvalidAmount},
		{name: "negative fee", gross: 100, fee: -1, err: domain.ErrInvalidFee},
		{name: "fee above gross", gross: 100, fee: 101, err: domain.ErrInvalidFee},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			_, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(tc.gross, tc.fee))
			s.Require().ErrorIs(err, tc.err)
			s.Require().ErrorIs(err, domain.ErrValidation)
		})
	}

	s.Run("buyer is platform", func() {
		args := s.splitArgs(100, 10)
		args.PlatformAccountID = args.BuyerAccountID
		// вторая нога корректна, но не проводится: проверка идет до первой записи.
		_, err := s.service.SplitTransfer(s.T().Context(), args)
		s.Require().ErrorIs(err, domain.ErrSameAccount)
	})
}

// Повтор после сбоя второй ноги: комиссия уже проведена и возвращается по ключу.
func (s *TransferServiceTestSuite) TestSplitTransfer_RetryAfterNetFailure() {
	feeLeg := postedTransfer(s.buyer, s.platform, 1500, "evt-42:fee")
	netErr := errors.New("connection reset")

	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:fee").Return(feeLeg, nil).Times(2)
	s.mockEntryRepo.EXPECT().GetByTransferIDs(gomock.Any(), gomock.Any()).Return(feeLeg.Entries, nil).Times(2)
	s.mockTransferRepo.EXPECT().FindByIdempotencyKey(gomock.Any(), "evt-42:net").
		Return(nil, domain.ErrRecordNotFound).Times(2)

	// первая попытка: транзакция второй ноги падает.
	s.mockUOW.EXPECT().Do(gomock.Any(), gomock.Any()).Return(netErr)

	_, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(10000, 1500))
	s.Require().ErrorIs(err, netErr)

	// повтор: проводится только вторая нога.
	s.expectDo(1)
	s.expectAccounts(s.buyer, s.instructor)
	s.expectPost(nil)
	s.mockPublisher.EXPECT().PublishTransferPosted(gomock.Any(), gomock.Any())

	res, err := s.service.SplitTransfer(s.T().Context(), s.splitArgs(10000, 1500))
	s.Require().NoError(err)
	fee, _ := res.Fee.Transfer()
	s.Equal(feeLeg.ID, fee.ID)
	s.True(res.Net.Present())
}
