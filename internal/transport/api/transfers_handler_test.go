package api

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/service"
	"github.com/fsdevblog/groph-ledger/internal/transport/api/testutils"
)

func transferPayload(from, to uuid.UUID, amount int64) map[string]any {
	return map[string]any{
		"from_account_id": from.String(),
		"to_account_id":   to.String(),
		"amount":          amount,
		"currency":        "USD",
		"reason":          "purchase",
		"ref_type":        "purchase",
		"ref_id":          "order-1",
		"metadata":        map[string]any{"purchase": map[string]any{"order_id": "order-1"}},
	}
}

func (s *HandlersTestSuite) TestCreateTransfer() {
	from, to := uuid.New(), uuid.New()

	s.mockTransferService.EXPECT().
		Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.TransferArgs) (*domain.Transfer, error) {
			switch args.Amount {
			case 0:
				return nil, domain.ErrInvalidAmount
			case 999_999:
				return nil, domain.ErrInsufficientFunds
			case 404:
				return nil, domain.ErrAccountNotFound
			}
			return fakeTransfer(args.FromAccountID, args.ToAccountID, args.Amount, args.IdempotencyKey), nil
		}).AnyTimes()

	cases := []struct {
		name       string
		payload    map[string]any
		header     string
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    transferPayload(from, to, 100),
			header:     "order-1",
			wantStatus: http.StatusCreated,
		}, {
			name:       "zero amount",
			payload:    transferPayload(from, to, 0),
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "insufficient funds",
			payload:    transferPayload(from, to, 999_999),
			wantStatus: http.StatusPaymentRequired,
		}, {
			name:       "unknown account",
			payload:    transferPayload(from, to, 404),
			wantStatus: http.StatusNotFound,
		}, {
			name:       "invalid idempotency header",
			payload:    transferPayload(from, to, 100),
			header:     "has space",
			wantStatus: http.StatusBadRequest,
		}, {
			name: "missing from account",
			payload: func() map[string]any {
				p := transferPayload(from, to, 100)
				delete(p, "from_account_id")
				return p
			}(),
			wantStatus: http.StatusBadRequest,
		}, {
			name: "malformed account id",
			payload: func() map[string]any {
				p := transferPayload(from, to, 100)
				p["to_account_id"] = "123"
				return p
			}(),
			wantStatus: http.StatusBadRequest,
		}, {
			name: "unknown currency",
			payload: func() map[string]any {
				p := transferPayload(from, to, 100)
				p["currency"] = "ZZZ"
				return p
			}(),
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			var opts []func(*testutils.RequestOptions)
			if t.header != "" {
				opts = append(opts, testutils.WithHeader(IdempotencyKeyHeader, t.header))
			}
			res := s.request(http.MethodPost, RouteGroup+TransfersRoute, t.payload, opts...)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestCreateTransferArgs() {
	from, to := uuid.New(), uuid.New()

	s.mockTransferService.EXPECT().
		Transfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.TransferArgs) (*domain.Transfer, error) {
			s.Equal(from, args.FromAccountID)
			s.Equal(to, args.ToAccountID)
			s.Equal(domain.ReasonPurchase, args.Reason)
			s.Equal("body-key", args.IdempotencyKey)
			s.True(args.RequireFunds)
			s.Require().NotNil(args.Metadata.Purchase)
			s.Equal("order-1", args.Metadata.Purchase.OrderID)
			return fakeTransfer(from, to, args.Amount, args.IdempotencyKey), nil
		})

	payload := transferPayload(from, to, 250)
	payload["idempotency_key"] = "body-key"
	payload["require_funds"] = true

	// ключ из тела имеет приоритет над заголовком.
	res := s.request(http.MethodPost, RouteGroup+TransfersRoute, payload,
		testutils.WithHeader(IdempotencyKeyHeader, "header-key"))
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	var body TransferResponse
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal(int64(250), body.Amount)
	s.Equal("2.5", body.AmountMajor.String())
	s.Equal(domain.TransferStatePosted, body.State)
	s.Require().Len(body.Entries, 2)
	s.Equal(int64(-250), body.Entries[0].Amount)
	s.Equal(domain.DirectionDebit, body.Entries[0].Direction)
	s.Equal(int64(250), body.Entries[1].Amount)
}

func (s *HandlersTestSuite) TestCreateTransferValidationMessage() {
	s.mockTransferService.EXPECT().Transfer(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrSameAccount)

	id := uuid.New()
	res := s.request(http.MethodPost, RouteGroup+TransfersRoute, transferPayload(id, id, 100))
	s.Require().Equal(http.StatusUnprocessableEntity, res.StatusCode)
	s.Contains(s.errorMessage(res), "from and to accounts must differ")
}

func (s *HandlersTestSuite) TestShowTransfer() {
	transfer := fakeTransfer(uuid.New(), uuid.New(), 100, "")
	missing := uuid.New()

	s.mockTransferService.EXPECT().GetTransfer(gomock.Any(), transfer.ID).Return(transfer, nil)
	s.mockTransferService.EXPECT().GetTransfer(gomock.Any(), missing).Return(nil, domain.ErrTransferNotFound)
	s.mockTransferService.EXPECT().GetTransfer(gomock.Any(), gomock.Any()).
		Return(nil, errors.New("connection reset"))

	cases := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "found", id: transfer.ID.String(), wantStatus: http.StatusOK},
		{name: "not found", id: missing.String(), wantStatus: http.StatusNotFound},
		{name: "storage failure", id: uuid.NewString(), wantStatus: http.StatusInternalServerError},
		{name: "invalid id", id: "42", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(http.MethodGet, RouteGroup+"/transfers/"+t.id, nil)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestReverseTransfer() {
	original := uuid.New()
	reversal := fakeTransfer(uuid.New(), uuid.New(), 100, "reversal:"+original.String())
	reversal.Reason = domain.ReasonRefund

	gomock.InOrder(
		// без тела все параметры остаются на усмотрение сервиса.
		s.mockTransferService.EXPECT().
			ReverseTransfer(gomock.Any(), service.ReverseArgs{OriginalTransferID: original}).
			Return(reversal, nil),
		s.mockTransferService.EXPECT().
			ReverseTransfer(gomock.Any(), service.ReverseArgs{
				OriginalTransferID: original,
				Reason:             domain.ReasonAdjustment,
				IdempotencyKey:     "manual-fix",
				Note:               "duplicate charge",
			}).
			Return(reversal, nil),
		s.mockTransferService.EXPECT().
			ReverseTransfer(gomock.Any(), service.ReverseArgs{OriginalTransferID: original}).
			Return(nil, domain.ErrNotReversible),
	)

	url := RouteGroup + "/transfers/" + original.String() + "/reversal"

	res := s.request(http.MethodPost, url, nil)
	s.Equal(http.StatusCreated, res.StatusCode)
	res.Body.Close()

	res = s.request(http.MethodPost, url, map[string]any{
		"reason":          "adjustment",
		"idempotency_key": "manual-fix",
		"note":            "duplicate charge",
	})
	s.Equal(http.StatusCreated, res.StatusCode)
	res.Body.Close()

	res = s.request(http.MethodPost, url, nil)
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	res.Body.Close()

	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   bytes.NewReader([]byte("{broken")),
	})
	s.Require().NoError(err)
	s.Equal(http.StatusBadRequest, res.StatusCode)
	res.Body.Close()
}

func (s *HandlersTestSuite) TestReverseTransferChunkedBody() {
	original := uuid.New()
	reversal := fakeTransfer(uuid.New(), uuid.New(), 100, "")
	url := RouteGroup + "/transfers/" + original.String() + "/reversal"

	gomock.InOrder(
		s.mockTransferService.EXPECT().
			ReverseTransfer(gomock.Any(), service.ReverseArgs{
				OriginalTransferID: original,
				IdempotencyKey:     "chunked-key",
				Note:               "sent without content length",
			}).
			Return(reversal, nil),
		s.mockTransferService.EXPECT().
			ReverseTransfer(gomock.Any(), service.ReverseArgs{OriginalTransferID: original}).
			Return(reversal, nil),
	)

	// io.MultiReader скрывает длину тела, запрос уходит с ContentLength == -1.
	res, err := testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body: io.MultiReader(strings.NewReader(
			`{"idempotency_key":"chunked-key","note":"sent without content length"}`,
		)),
	})
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, res.StatusCode)
	res.Body.Close()

	res, err = testutils.MakeRequest(testutils.RequestArgs{
		Router: s.router,
		Method: http.MethodPost,
		URL:    url,
		Body:   io.MultiReader(strings.NewReader("")),
	})
	s.Require().NoError(err)
	s.Equal(http.StatusCreated, res.StatusCode)
	res.Body.Close()
}

func (s *HandlersTestSuite) TestSplitTransfer() {
	buyer, instructor, platform := uuid.New(), uuid.New(), uuid.New()
	net := fakeTransfer(buyer, instructor, 10_000, "purchase-7:net")

	s.mockTransferService.EXPECT().
		SplitTransfer(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, args service.SplitArgs) (*service.SplitResult, error) {
			s.Equal("purchase-7", args.IdempotencyKey)
			s.Equal(int64(10_000), args.GrossAmount)
			s.Equal(int64(0), args.PlatformFeeAmount)
			return &service.SplitResult{Fee: service.AbsentLeg(), Net: service.PresentLeg(net)}, nil
		})
	s.mockTransferService.EXPECT().
		SplitTransfer(gomock.Any(), gomock.Any()).
		Return(nil, domain.ErrInvalidFee)

	payload := map[string]any{
		"buyer_account_id":      buyer.String(),
		"instructor_account_id": instructor.String(),
		"platform_account_id":   platform.String(),
		"gross_amount":          10_000,
		"platform_fee_amount":   0,
		"currency":              "USD",
		"ref_id":                "purchase-7",
	}

	res := s.request(http.MethodPost, RouteGroup+SplitTransferRoute, payload,
		testutils.WithHeader(IdempotencyKeyHeader, "purchase-7"))
	s.Require().Equal(http.StatusCreated, res.StatusCode)

	var body map[string]any
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Contains(body, "fee")
	s.Nil(body["fee"])
	netBody, ok := body["net"].(map[string]any)
	s.Require().True(ok)
	s.Equal(net.ID.String(), netBody["id"])

	payload["platform_fee_amount"] = 20_000
	res = s.request(http.MethodPost, RouteGroup+SplitTransferRoute, payload)
	s.Equal(http.StatusUnprocessableEntity, res.StatusCode)
	res.Body.Close()

	delete(payload, "platform_account_id")
	res = s.request(http.MethodPost, RouteGroup+SplitTransferRoute, payload)
	s.Equal(http.StatusBadRequest, res.StatusCode)
	res.Body.Close()
}
