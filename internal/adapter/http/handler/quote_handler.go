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

// QuoteService defines the behavior needed by QuoteHandler.
type QuoteService interface {
	CreateQuote(ctx context.Context, input usecase.CreateQuoteInput) (*domain.Quote, error)
	GetQuote(ctx context.Context, id string) (*domain.Quote, error)
	UpdateQuoteStatus(ctx context.Context, id string, status domain.QuoteStatus) (*domain.Quote, error)
	ConvertToOrder(ctx context.Context, input usecase.ConvertToOrderInput) (*domain.Order, error)
	ListQuotes(ctx context.Context, limit, offset int) ([]*domain.Quote, error)
}

// QuoteHandler handles quote HTTP requests.
type QuoteHandler struct {
	quoteUC QuoteService
}

// NewQuoteHandler creates a new QuoteHandler.
func NewQuoteHandler(quoteUC QuoteService) *QuoteHandler {
	return &QuoteHandler{quoteUC: quoteUC}
}

// Create drafts a new quote.
func (h *QuoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	quote, err := h.quoteUC.CreateQuote(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create quote", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.QuoteFromDomain(quote))
}

// Get retrieves a quote by ID.
func (h *QuoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	quote, err := h.quoteUC.GetQuote(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get quote", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromDomain(quote))
}

// UpdateStatus moves a quote through its lifecycle.
func (h *QuoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	quote, err := h.quoteUC.UpdateQuoteStatus(r.Context(), id, domain.QuoteStatus(req.Status))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update quote status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.QuoteFromDomain(quote))
}

// Convert turns an accepted quote into a pending order.
func (h *QuoteHandler) Convert(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ConvertQuoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	order, err := h.quoteUC.ConvertToOrder(r.Context(), usecase.ConvertToOrderInput{
		QuoteID:     id,
		OrderNumber: req.OrderNumber,
	})
	if err != nil {
		writeError(w, mapDomainError(err), "failed to convert quote", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.OrderFromDomain(order))
}

// List lists quotes.
func (h *QuoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	quotes, err := h.quoteUC.ListQuotes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list quotes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.QuotesFromDomain(quotes)))
}
