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

// NoteService defines the behavior needed by NoteHandler.
type NoteService interface {
	CreateNote(ctx context.Context, input usecase.CreateNoteInput) (*domain.Note, error)
	GetNote(ctx context.Context, id string) (*domain.Note, error)
	ListNotes(ctx context.Context, limit, offset int) ([]*domain.Note, error)
}

// NoteHandler handles credit and debit note HTTP requests.
type NoteHandler struct {
	noteUC NoteService
}

// NewNoteHandler creates a new NoteHandler.
func NewNoteHandler(noteUC NoteService) *NoteHandler {
	return &NoteHandler{noteUC: noteUC}
}

// Create issues a credit or debit note. The matching movement lands on
// the client's current account in the same transaction.
func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateNoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	note, err := h.noteUC.CreateNote(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to create note", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.NoteFromDomain(note))
}

// Get retrieves a note by ID.
func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	note, err := h.noteUC.GetNote(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get note", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NoteFromDomain(note))
}

// List lists notes.
func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	limit, offset := pagination(r)

	notes, err := h.noteUC.ListNotes(r.Context(), limit, offset)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list notes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.NewListResponse(dto.NotesFromDomain(notes)))
}
