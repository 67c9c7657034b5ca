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

// ReceiptService defines the behavior needed by ReceiptHandler.
type ReceiptService interface {
	CreateReceipt(ctx context.Context, input usecase.CreateReceiptInput) (*domain.Receipt, error)
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context, limit, offset int) ([]*domain.Receipt, error)
}

// ReceiptHandler handles payment receipt HTTP requests.
type ReceiptHandler struct {
	receiptUC ReceiptService
}

// NewReceiptHandler creates a new ReceiptHandler.
func NewReceiptHandler(receiptUC ReceiptService) *ReceiptHandler {
	return &ReceiptHandler{receiptUC: receiptUC}
}

// Create records a payment receipt and allocates it to the client's
// open invoices, oldest due date first.
func (h *ReceiptHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateReceiptRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	receipt, err := h.receiptUC.CreateReceipt(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.ReceiptFromDomain(receipt))
}

// Get retrieves a receipt by ID.
func (h *ReceiptHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	receipt, err := h.receiptUC.GetReceipt(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get receipt", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ReceiptFromDomain(receipt))
}

// List lists receipts.
func (h *ReceiptHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	receipts, err := h.receiptUC.ListReceipts(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list receipts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.ReceiptsFromDomain(receipts)))
}
