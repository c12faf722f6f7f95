package api

import (
	"errors"
	"net/http"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/transport/api/testutils"
)

func (s *HandlersTestSuite) TestLedgerInvariant() {
	gomock.InOrder(
		s.mockAuditService.EXPECT().VerifyLedgerInvariant(gomock.Any()).Return(true, nil),
		s.mockAuditService.EXPECT().VerifyLedgerInvariant(gomock.Any()).Return(false, nil),
		s.mockAuditService.EXPECT().VerifyLedgerInvariant(gomock.Any()).Return(false, errors.New("db down")),
	)

	for _, want := range []bool{true, false} {
		res := s.request(http.MethodGet, RouteGroup+LedgerInvariantRoute, nil)
		s.Require().Equal(http.StatusOK, res.StatusCode)
		var body InvariantResponse
		s.Require().NoError(testutils.DecodeJSON(res, &body))
		s.Equal(want, body.Balanced)
	}

	res := s.request(http.MethodGet, RouteGroup+LedgerInvariantRoute, nil)
	s.Equal(http.StatusInternalServerError, res.StatusCode)
	res.Body.Close()
}

func (s *HandlersTestSuite) TestLedgerUnbalanced() {
	broken := uuid.New()
	gomock.InOrder(
		s.mockAuditService.EXPECT().FindUnbalancedTransfers(gomock.Any(), uint(defaultUnbalancedLimit)).
			Return([]domain.TransferImbalance{{TransferID: broken, Sum: 1, Entries: 2}}, nil),
		s.mockAuditService.EXPECT().FindUnbalancedTransfers(gomock.Any(), uint(5)).
			Return(nil, nil),
	)

	res := s.request(http.MethodGet, RouteGroup+LedgerUnbalancedRoute, nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var body []ImbalanceResponse
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Require().Len(body, 1)
	s.Equal(broken, body[0].TransferID)
	s.Equal(int64(1), body[0].Sum)

	res = s.request(http.MethodGet, RouteGroup+LedgerUnbalancedRoute+"?limit=5", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)
	var empty []ImbalanceResponse
	s.Require().NoError(testutils.DecodeJSON(res, &empty))
	s.Empty(empty)

	res = s.request(http.MethodGet, RouteGroup+LedgerUnbalancedRoute+"?limit=5000", nil)
	s.Equal(http.StatusBadRequest, res.StatusCode)
	res.Body.Close()
}
