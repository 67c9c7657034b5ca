package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/adapter/http/dto"
	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

type accountServiceStub struct {
	getFn     func(ctx context.Context, clientID string) (*usecase.ClientAccountView, error)
	listFn    func(ctx context.Context) ([]*usecase.ClientAccountView, error)
	summaryFn func(ctx context.Context) (*usecase.AccountsSummaryView, error)
}

func (s *accountServiceStub) GetClientAccount(ctx context.Context, clientID string) (*usecase.ClientAccountView, error) {
	return s.getFn(ctx, clientID)
}

func (s *accountServiceStub) ListAccounts(ctx context.Context) ([]*usecase.ClientAccountView, error) {
	return s.listFn(ctx)
}

func (s *accountServiceStub) Summary(ctx context.Context) (*usecase.AccountsSummaryView, error) {
	return s.summaryFn(ctx)
}

func debtorAccountFixture() *usecase.ClientAccountView {
	date := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	return &usecase.ClientAccountView{
		ClientAccount: domain.ClientAccount{
			ClientID: "c1",
			Lines: []domain.AccountLine{
				{
					Movement: domain.Movement{
						ID: "m1", ClientID: "c1", Date: date,
						Kind: domain.MovementInvoice, DocumentNumber: "A-0001",
						Debit: decimal.NewFromInt(1000), Credit: decimal.Zero,
					},
					Balance: decimal.NewFromInt(1000),
				},
				{
					Movement: domain.Movement{
						ID: "m2", ClientID: "c1", Date: date.AddDate(0, 0, 5),
						Kind: domain.MovementPayment, DocumentNumber: "R-0001",
						Debit: decimal.Zero, Credit: decimal.NewFromInt(400),
					},
					Balance: decimal.NewFromInt(600),
				},
			},
			TotalDebit:   decimal.NewFromInt(1000),
			TotalCredit:  decimal.NewFromInt(400),
			FinalBalance: decimal.NewFromInt(600),
			Status:       domain.StatusDebtor,
		},
		ClientName: "Acme SRL",
	}
}

func TestAccountHandler_GetClientAccount(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, clientID string) (*usecase.ClientAccountView, error) {
			if clientID != "c1" {
				t.Fatalf("expected client c1, got %s", clientID)
			}
			return debtorAccountFixture(), nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/clients/c1/account", nil)
	req = setChiURLParam(req, "id", "c1")
	rec := httptest.NewRecorder()

	handler.GetClientAccount(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp dto.AccountResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.ClientID != "c1" || resp.ClientName != "Acme SRL" {
		t.Fatalf("unexpected account header: %+v", resp)
	}
	if len(resp.Lines) != 2 {
		t.Fatalf("expected 2 statement lines, got %d", len(resp.Lines))
	}
	if !resp.FinalBalance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected final balance 600, got %s", resp.FinalBalance)
	}
	if resp.Status != string(domain.StatusDebtor) {
		t.Fatalf("expected debtor status, got %s", resp.Status)
	}
	if !resp.Lines[1].Balance.Equal(decimal.NewFromInt(600)) {
		t.Fatalf("expected running balance 600 on last line, got %s", resp.Lines[1].Balance)
	}
}

func TestAccountHandler_GetClientAccount_UnknownClient(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		getFn: func(ctx context.Context, clientID string) (*usecase.ClientAccountView, error) {
			return nil, domain.ErrClientNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/clients/ghost/account", nil)
	req = setChiURLParam(req, "id", "ghost")
	rec := httptest.NewRecorder()

	handler.GetClientAccount(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestAccountHandler_List(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		listFn: func(ctx context.Context) ([]*usecase.ClientAccountView, error) {
			return []*usecase.ClientAccountView{debtorAccountFixture()}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListResponse[*dto.AccountResponse]
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 account, got %d", resp.Total)
	}
}

func TestAccountHandler_Summary(t *testing.T) {
	handler := NewAccountHandler(&accountServiceStub{
		summaryFn: func(ctx context.Context) (*usecase.AccountsSummaryView, error) {
			return &usecase.AccountsSummaryView{
				AccountsSummary: domain.AccountsSummary{
					Debtors:      2,
					Creditors:    1,
					Settled:      1,
					TotalBalance: decimal.NewFromInt(350),
				},
				AccountsWithMovements: 4,
			}, nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/summary", nil)
	rec := httptest.NewRecorder()

	handler.Summary(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.AccountsSummaryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Debtors != 2 || resp.Creditors != 1 || resp.Settled != 1 {
		t.Fatalf("unexpected summary counts: %+v", resp)
	}
	if !resp.TotalBalance.Equal(decimal.NewFromInt(350)) {
		t.Fatalf("expected total balance 350, got %s", resp.TotalBalance)
	}
}
