package pgrepo

import (
	"errors"
	"fmt"
	"testing"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/suite"
)

type ConvertErrTestSuite struct {
	suite.Suite
}

func TestConvertErrSuite(t *testing.T) {
	suite.Run(t, new(ConvertErrTestSuite))
}

func (s *ConvertErrTestSuite) TestNil() {
	s.NoError(convertErr(nil, "creating transfer"))
}

func (s *ConvertErrTestSuite) TestNoRows() {
	err := convertErr(fmt.Errorf("scan: %w", pgx.ErrNoRows), "finding transfer by id %s", "t-1")

	s.Require().ErrorIs(err, domain.ErrRecordNotFound)
	s.Contains(err.Error(), "[repository/finding transfer by id t-1]")
}

func (s *ConvertErrTestSuite) TestUniqueViolation() {
	cases := []struct {
		name       string
		constraint string
	}{
		{name: "idempotency key", constraint: "transfers_idempotency_key_uniq"},
		{name: "account identity", constraint: "accounts_identity_uniq"},
	}

	for _, t := range cases {
		s.Run(t.name, func() {
			pgErr := &pgconn.PgError{
				Code:           uniqueViolationCode,
				Message:        "duplicate key value violates unique constraint",
				ConstraintName: t.constraint,
			}
			err := convertErr(pgErr, "creating transfer")

			s.Require().ErrorIs(err, domain.ErrDuplicateKey)
			s.Contains(err.Error(), t.constraint)
		})
	}
}

func (s *ConvertErrTestSuite) TestOtherPgError() {
	pgErr := &pgconn.PgError{
		Code:           "23514",
		Message:        "new row violates check constraint",
		ConstraintName: "transfers_amount_positive",
	}
	err := convertErr(pgErr, "creating transfer")

	s.Require().ErrorIs(err, domain.ErrUnknown)
	s.NotErrorIs(err, domain.ErrDuplicateKey)
	s.Contains(err.Error(), "transfers_amount_positive")
}

func (s *ConvertErrTestSuite) TestUnknown() {
	err := convertErr(errors.New("conn reset"), "summing all entries")

	s.Require().ErrorIs(err, domain.ErrUnknown)
	s.Contains(err.Error(), "conn reset")
}
