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

// DeliveryNoteService defines the behavior needed by DeliveryNoteHandler.
type DeliveryNoteService interface {
	CreateDeliveryNote(ctx context.Context, input usecase.CreateDeliveryNoteInput) (*domain.DeliveryNote, error)
	GetDeliveryNote(ctx context.Context, id string) (*domain.DeliveryNote, error)
	UpdateDeliveryStatus(ctx context.Context, id string, status domain.DeliveryStatus) (*domain.DeliveryNote, error)
	ListDeliveryNotes(ctx context.Context, limit, offset int) ([]*domain.DeliveryNote, error)
}

// DeliveryNoteHandler handles delivery note HTTP requests.
type DeliveryNoteHandler struct {
	deliveryUC DeliveryNoteService
}

// NewDeliveryNoteHandler creates a new DeliveryNoteHandler.
func NewDeliveryNoteHandler(deliveryUC DeliveryNoteService) *DeliveryNoteHandler {
	return &DeliveryNoteHandler{deliveryUC: deliveryUC}
}

// Create issues a delivery note for an order.
func (h *DeliveryNoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateDeliveryNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	note, err := h.deliveryUC.CreateDeliveryNote(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create delivery note", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.DeliveryNoteFromDomain(note))
}

// Get retrieves a delivery note by ID.
func (h *DeliveryNoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.deliveryUC.GetDeliveryNote(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get delivery note", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeliveryNoteFromDomain(note))
}

// UpdateStatus moves a delivery note through its lifecycle.
func (h *DeliveryNoteHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	note, err := h.deliveryUC.UpdateDeliveryStatus(r.Context(), id, domain.DeliveryStatus(req.Status))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to update delivery status", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.DeliveryNoteFromDomain(note))
}

// List lists delivery notes.
func (h *DeliveryNoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	notes, err := h.deliveryUC.ListDeliveryNotes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list delivery notes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.DeliveryNotesFromDomain(notes)))
}
