package uow_test

import (
	"errors"
	"testing"

	"github.com/fsdevblog/groph-ledger/pkg/uow"
	"github.com/fsdevblog/groph-ledger/pkg/uow/mocks"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/suite"
)

type stubRepo struct {
	db uow.DBTX
}

type otherRepo interface {
	Other()
}

type UOWTestSuite struct {
	suite.Suite
	unitOfWork *uow.UnitOfWork
}

func TestUOWSuite(t *testing.T) {
	suite.Run(t, new(UOWTestSuite))
}

func (s *UOWTestSuite) SetupTest() {
	// пул не нужен, пока не открываются транзакции.
	s.unitOfWork = uow.NewUnitOfWork(nil)
}

func (s *UOWTestSuite) TestRegister() {
	factory := func(db uow.DBTX) uow.Repository { return &stubRepo{db: db} }

	s.Require().NoError(s.unitOfWork.Register("stub", factory))

	err := s.unitOfWork.Register("stub", factory)
	s.Require().ErrorIs(err, uow.ErrRepositoryAlreadyRegistered)

	s.Require().ErrorIs(s.unitOfWork.Register("nil", nil), uow.ErrNilFactory)
}

func (s *UOWTestSuite) TestGetRepositoryAs() {
	s.Require().NoError(s.unitOfWork.Register("stub", func(db uow.DBTX) uow.Repository {
		return &stubRepo{db: db}
	}))

	repo, err := uow.GetRepositoryAs[*stubRepo](s.unitOfWork, "stub")
	s.Require().NoError(err)
	s.NotNil(repo)

	_, err = uow.GetRepositoryAs[otherRepo](s.unitOfWork, "stub")
	s.Require().ErrorIs(err, uow.ErrInvalidRepositoryType)

	_, err = uow.GetRepositoryAs[*stubRepo](s.unitOfWork, "missing")
	s.Require().ErrorIs(err, uow.ErrRepositoryNotRegistered)
}

func (s *UOWTestSuite) TestGetAs() {
	ctrl := gomock.NewController(s.T())
	tx := mocks.NewMockTX(ctrl)

	tx.EXPECT().Get(uow.RepositoryName("stub")).Return(&stubRepo{}, nil)
	tx.EXPECT().Get(uow.RepositoryName("missing")).Return(nil, uow.ErrRepositoryNotRegistered)

	repo, err := uow.GetAs[*stubRepo](tx, "stub")
	s.Require().NoError(err)
	s.NotNil(repo)

	_, err = uow.GetAs[*stubRepo](tx, "missing")
	s.Require().True(errors.Is(err, uow.ErrRepositoryNotRegistered))
}
