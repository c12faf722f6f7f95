package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"

	"github.com/fsdevblog/groph-ledger/internal/domain"
	"github.com/fsdevblog/groph-ledger/internal/transport/api/testutils"
)

func (s *HandlersTestSuite) TestCreateAccount() {
	account := &domain.Account{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		OwnerID:   "instructor-42",
		Kind:      domain.AccountKindInstructor,
		Currency:  "USD",
	}

	// Моки
	s.mockAccountService.EXPECT().
		GetOrCreateAccount(gomock.Any(), "instructor-42", domain.AccountKindInstructor, "usd").
		Return(account, nil).Times(1)
	s.mockAccountService.EXPECT().
		GetOrCreateAccount(gomock.Any(), "owner-rejected", domain.AccountKindBuyer, "USD").
		Return(nil, fmt.Errorf("get or create account: %w", domain.ErrInvalidAccount)).Times(1)
	// виды счетов не ограничены предопределенным списком.
	s.mockAccountService.EXPECT().
		GetOrCreateAccount(gomock.Any(), "owner-wallet", domain.AccountKind("wallet"), "USD").
		Return(&domain.Account{ID: uuid.New(), OwnerID: "owner-wallet", Kind: "wallet", Currency: "USD"}, nil).
		Times(1)

	cases := []struct {
		name       string
		payload    map[string]any
		wantStatus int
	}{
		{
			name:       "all ok",
			payload:    map[string]any{"owner_id": "instructor-42", "kind": "instructor", "currency": "usd"},
			wantStatus: http.StatusOK,
		}, {
			name:       "rejected by service",
			payload:    map[string]any{"owner_id": "owner-rejected", "kind": "buyer", "currency": "USD"},
			wantStatus: http.StatusUnprocessableEntity,
		}, {
			name:       "custom kind",
			payload:    map[string]any{"owner_id": "owner-wallet", "kind": "wallet", "currency": "USD"},
			wantStatus: http.StatusOK,
		}, {
			name:       "uppercase kind",
			payload:    map[string]any{"owner_id": "o", "kind": "Wallet", "currency": "USD"},
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "kind with spaces",
			payload:    map[string]any{"owner_id": "o", "kind": " buyer", "currency": "USD"},
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "unknown currency",
			payload:    map[string]any{"owner_id": "o", "kind": "buyer", "currency": "ABC"},
			wantStatus: http.StatusBadRequest,
		}, {
			name: "owner id over 255 bytes",
			payload: map[string]any{
				"owner_id": testutils.GenerateOverBytesUnderRunes(64),
				"kind":     "buyer",
				"currency": "USD",
			},
			wantStatus: http.StatusBadRequest,
		}, {
			name:       "missing owner",
			payload:    map[string]any{"kind": "buyer", "currency": "USD"},
			wantStatus: http.StatusBadRequest,
		},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(http.MethodPost, RouteGroup+AccountsRoute, t.payload)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestCreateAccountResponse() {
	account := &domain.Account{
		ID:        uuid.New(),
		CreatedAt: time.Now(),
		OwnerID:   "platform",
		Kind:      domain.AccountKindPlatform,
		Currency:  "EUR",
	}
	s.mockAccountService.EXPECT().
		GetOrCreateAccount(gomock.Any(), "platform", domain.AccountKindPlatform, "EUR").
		Return(account, nil)

	res := s.request(http.MethodPost, RouteGroup+AccountsRoute,
		map[string]any{"owner_id": "platform", "kind": "platform", "currency": "EUR"})
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body AccountResponse
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal(account.ID, body.ID)
	s.Equal(domain.AccountKindPlatform, body.Kind)
	s.Equal("EUR", body.Currency)
}

func (s *HandlersTestSuite) TestShowAccount() {
	id := uuid.New()
	missing := uuid.New()

	s.mockAccountService.EXPECT().GetAccount(gomock.Any(), id).
		Return(&domain.Account{ID: id, Kind: domain.AccountKindBuyer, Currency: "USD"}, nil)
	s.mockAccountService.EXPECT().GetAccount(gomock.Any(), missing).
		Return(nil, domain.ErrAccountNotFound)

	cases := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{name: "found", id: id.String(), wantStatus: http.StatusOK},
		{name: "not found", id: missing.String(), wantStatus: http.StatusNotFound},
		{name: "invalid id", id: "not-a-uuid", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(http.MethodGet, RouteGroup+"/accounts/"+t.id, nil)
			defer res.Body.Close()
			s.Equal(t.wantStatus, res.StatusCode)
		})
	}
}

func (s *HandlersTestSuite) TestAccountBalance() {
	id := uuid.New()
	s.mockAccountService.EXPECT().GetBalance(gomock.Any(), id).
		Return(&domain.Balance{AccountID: id, Currency: "USD", Amount: 1234}, nil)

	res := s.request(http.MethodGet, RouteGroup+"/accounts/"+id.String()+"/balance", nil)
	s.Require().Equal(http.StatusOK, res.StatusCode)

	var body map[string]any
	s.Require().NoError(testutils.DecodeJSON(res, &body))
	s.Equal(id.String(), body["account_id"])
	s.InDelta(1234, body["amount"], 0)
	// decimal сериализуется строкой.
	s.Equal("12.34", body["amount_major"])
}

func (s *HandlersTestSuite) TestAccountTransfers() {
	id := uuid.New()
	other := uuid.New()

	s.mockAccountService.EXPECT().GetAccount(gomock.Any(), gomock.Any()).Times(0)
	s.mockTransferService.EXPECT().ListAccountTransfers(gomock.Any(), id, uint(10)).
		Return([]domain.Transfer{*fakeTransfer(id, other, 100, "k-1")}, nil)
	s.mockTransferService.EXPECT().ListAccountTransfers(gomock.Any(), id, uint(0)).
		Return([]domain.Transfer{}, nil)

	cases := []struct {
		name       string
		query      string
		wantStatus int
		wantLen    int
	}{
		{name: "with limit", query: "?limit=10", wantStatus: http.StatusOK, wantLen: 1},
		{name: "default limit", query: "", wantStatus: http.StatusOK, wantLen: 0},
		{name: "invalid limit", query: "?limit=abc", wantStatus: http.StatusBadRequest},
	}
	for _, t := range cases {
		s.Run(t.name, func() {
			res := s.request(http.MethodGet, RouteGroup+"/accounts/"+id.String()+"/transfers"+t.query, nil)
			s.Require().Equal(t.wantStatus, res.StatusCode)
			if t.wantStatus != http.StatusOK {
				res.Body.Close()
				return
			}
			var body []TransferResponse
			s.Require().NoError(testutils.DecodeJSON(res, &body))
			s.Len(body, t.wantLen)
		})
	}
}
