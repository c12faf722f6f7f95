package service

import (
	"errors"
	"testing"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/repository/repoargs"
	"github.com/fsdevblog/groph-ledger/internal/service/mocks"
	"github.com/fsdevblog/groph-ledger/pkg/uow"
	uowmocks "github.com/fsdevblog/groph-ledger/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type AuditServiceTestSuite struct {
	suite.Suite
	mockEntryRepo *mocks.MockEntryRepository
	service       *AuditService
}

func TestAuditServiceSuite(t *testing.T) {
	suite.Run(t, new(AuditServiceTestSuite))
}

func (s *AuditServiceTestSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	mockUOW := uowmocks.NewMockUOW(ctrl)
	s.mockEntryRepo = mocks.NewMockEntryRepository(ctrl)

	mockUOW.EXPECT().GetRepository(uow.RepositoryName(repoargs.EntryRepoName)).Return(s.mockEntryRepo, nil)

	var err error
	s.service, err = NewAuditService(mockUOW)
	s.Require().NoError(err)
}

func (s *AuditServiceTestSuite) TestVerifyLedgerInvariant() {
	cases := []struct {
		name string
		sum  int64
		want bool
	}{
		{name: "balanced", sum: 0, want: true},
		{name: "positive drift", sum: 1, want: false},
		{name: "negative drift", sum: -250, want: false},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.mockEntryRepo.EXPECT().SumAll(gomock.Any()).Return(tc.sum, nil)

			ok, err := s.service.VerifyLedgerInvariant(s.T().Context())
			s.Require().NoError(err)
			s.Equal(tc.want, ok)
		})
	}
}

func (s *AuditServiceTestSuite) TestVerifyLedgerInvariant_StorageError() {
	storageErr := errors.New("timeout")
	s.mockEntryRepo.EXPECT().SumAll(gomock.Any()).Return(int64(0), storageErr)

	ok, err := s.service.VerifyLedgerInvariant(s.T().Context())
	s.Require().ErrorIs(err, storageErr)
	s.False(ok)
}

func (s *AuditServiceTestSuite) TestFindUnbalancedTransfers() {
	expected := []domain.TransferImbalance{
		{TransferID: uuid.New(), Sum: 10, Entries: 2},
		{TransferID: uuid.New(), Sum: 0, Entries: 1},
	}
	s.mockEntryRepo.EXPECT().FindUnbalanced(gomock.Any(), uint(100)).Return(expected, nil)

	res, err := s.service.FindUnbalancedTransfers(s.T().Context(), 100)
	s.Require().NoError(err)
	s.Equal(expected, res)
}
