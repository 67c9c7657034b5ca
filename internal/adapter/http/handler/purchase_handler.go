package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mgiordano/pymebooks/internal/adapter/http/dto"
	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/usecase"
)

// PurchaseService defines the behavior needed by PurchaseHandler.
type PurchaseService interface {
	CreatePurchase(ctx context.Context, input usecase.CreatePurchaseInput) (*domain.Purchase, error)
	GetPurchase(ctx context.Context, id string) (*domain.Purchase, error)
	MarkPurchasePaid(ctx context.Context, id string) (*domain.Purchase, error)
	ListPurchases(ctx context.Context, limit, offset int) ([]*domain.Purchase, error)
}

// PurchaseHandler handles supplier purchase HTTP requests.
type PurchaseHandler struct {
	purchaseUC PurchaseService
}

// NewPurchaseHandler creates a new PurchaseHandler.
func NewPurchaseHandler(purchaseUC PurchaseService) *PurchaseHandler {
	return &PurchaseHandler{purchaseUC: purchaseUC}
}

// Create records a supplier purchase.
func (h *PurchaseHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	purchase, err := h.purchaseUC.CreatePurchase(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create purchase", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.PurchaseFromDomain(purchase))
}

// Get retrieves a purchase by ID.
func (h *PurchaseHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	purchase, err := h.purchaseUC.GetPurchase(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get purchase", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}

// MarkPaid settles a purchase. Marking an already paid purchase is a no-op.
func (h *PurchaseHandler) MarkPaid(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	purchase, err := h.purchaseUC.MarkPurchasePaid(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to mark purchase paid", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.PurchaseFromDomain(purchase))
}

// List lists purchases.
func (h *PurchaseHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	purchases, err := h.purchaseUC.ListPurchases(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list purchases", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.PurchasesFromDomain(purchases)))
}
