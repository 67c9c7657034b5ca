package handler

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgiordano/pymebooks/internal/adapter/http/dto"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// AccountService defines the behavior needed by AccountHandler.
type AccountService interface {
	GetClientAccount(ctx context.Context, clientID string) (*usecase.ClientAccountView, error)
	ListAccounts(ctx context.Context) ([]*usecase.ClientAccountView, error)
	Summary(ctx context.Context) (*usecase.AccountsSummaryView, error)
}

// AccountHandler handles current account HTTP requests.
type AccountHandler struct {
	ledgerUC AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(ledgerUC AccountService) *AccountHandler {
	return &AccountHandler{ledgerUC: ledgerUC}
}

// GetClientAccount returns a client's full statement with running balances.
func (h *AccountHandler) GetClientAccount(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "id")

	account, err := h.ledgerUC.GetClientAccount(r.Context(), clientID)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get client account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromView(account))
}

// List returns the current account of every client, sorted by name.
func (h *AccountHandler) List(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.ledgerUC.ListAccounts(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.AccountsFromViews(accounts)))
}

// Summary returns aggregate receivables across all current accounts.
func (h *AccountHandler) Summary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.ledgerUC.Summary(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to compute accounts summary", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.SummaryFromView(summary))
}
