package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
)

// NoteUseCase handles credit and debit notes. A credit note records a
// credit movement (reduces what the client owes), a debit note records
// a debit movement.
type NoteUseCase struct {
	txManager    TransactionManager
	noteRepo     NoteRepository
	invoiceRepo  InvoiceRepository
	movementRepo MovementRepository
	clientRepo   ClientRepository
	settingsRepo SettingsRepository
	cache        Cache
	idGen        IDGenerator
	retrier      Retrier
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// WithRetrier makes ledger writes retry on transient database errors.
func (uc *NoteUseCase) WithRetrier(r Retrier) *NoteUseCase {
	uc.retrier = r
	return uc
}

// NewNoteUseCase creates a new NoteUseCase.
func NewNoteUseCase(
	txManager TransactionManager,
	noteRepo NoteRepository,
	invoiceRepo InvoiceRepository,
	movementRepo MovementRepository,
	clientRepo ClientRepository,
	settingsRepo SettingsRepository,
	cache Cache,
	idGen IDGenerator,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *NoteUseCase {
	return &NoteUseCase{
		txManager:    txManager,
		noteRepo:     noteRepo,
		invoiceRepo:  invoiceRepo,
		movementRepo: movementRepo,
		clientRepo:   clientRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
		idGen:        idGen,
		metrics:      m,
		logger:       logger,
	}
}

// CreateNoteInput represents input for creating a credit or debit note.
type CreateNoteInput struct {
	Number    string
	Kind      domain.NoteKind
	InvoiceID string
	ClientID  string
	Reason    string
	Items     []domain.LineItem
	TaxRate   *decimal.Decimal
	IssuedAt  time.Time
}

// CreateNote persists the note and its ledger movement atomically.
func (uc *NoteUseCase) CreateNote(ctx context.Context, input CreateNoteInput) (*domain.Note, error) {
	if input.Number == "" {
		return nil, domain.ErrEmptyDocumentNumber
	}
	if !input.Kind.Valid() {
		return nil, fmt.Errorf("unknown note kind %q", input.Kind)
	}
	if input.Reason == "" {
		return nil, fmt.Errorf("note reason is required")
	}
	if err := domain.ValidateLineItems(input.Items); err != nil {
		return nil, err
	}

	client, err := uc.clientRepo.GetByID(ctx, input.ClientID)
	if err != nil {
		return nil, err
	}

	if input.InvoiceID != "" {
		invoice, err := uc.invoiceRepo.GetByID(ctx, input.InvoiceID)
		if err != nil {
			return nil, err
		}
		if invoice.ClientID != client.ID {
			return nil, fmt.Errorf("%w: invoice %s belongs to another client", domain.ErrMixedClients, input.InvoiceID)
		}
	}

	taxRate := decimal.Zero
	if input.TaxRate != nil {
		if input.TaxRate.IsNegative() {
			return nil, domain.ErrInvalidAmount
		}
		taxRate = *input.TaxRate
	} else {
		settings, err := uc.settingsRepo.Get(ctx)
		if err != nil {
			return nil, err
		}
		taxRate = settings.DefaultTaxRate
	}

	now := time.Now().UTC()
	issuedAt := input.IssuedAt
	if issuedAt.IsZero() {
		issuedAt = now
	}

	note := &domain.Note{
		ID:         uc.idGen.Generate(),
		Number:     input.Number,
		Kind:       input.Kind,
		InvoiceID:  input.InvoiceID,
		ClientID:   client.ID,
		ClientName: client.Name,
		Reason:     input.Reason,
		Items:      input.Items,
		Totals:     domain.ComputeTotals(input.Items, taxRate),
		IssuedAt:   issuedAt,
		CreatedAt:  now,
	}

	movement := &domain.Movement{
		ID:             uc.idGen.Generate(),
		ClientID:       client.ID,
		Date:           issuedAt,
		Kind:           input.Kind.MovementKind(),
		DocumentNumber: note.Number,
		Description:    input.Reason,
		CreatedAt:      now,
	}
	if input.Kind == domain.NoteCredit {
		movement.Credit = note.Totals.Total
		movement.Debit = decimal.Zero
	} else {
		movement.Debit = note.Totals.Total
		movement.Credit = decimal.Zero
	}

	err = withTransaction(ctx, uc.txManager, uc.retrier, func(tx Transaction) error {
		if err := uc.noteRepo.CreateTx(ctx, tx, note); err != nil {
			return err
		}
		return uc.movementRepo.CreateTx(ctx, tx, movement)
	})
	if err != nil {
		return nil, err
	}

	uc.invalidateAccount(ctx, client.ID)
	uc.metrics.NotesCreated.WithLabelValues(string(input.Kind)).Inc()
	uc.metrics.MovementsRecorded.WithLabelValues(string(movement.Kind)).Inc()
	uc.logger.Info().
		Str("note_id", note.ID).
		Str("kind", string(note.Kind)).
		Str("client_id", client.ID).
		Str("total", note.Totals.Total.String()).
		Msg("note created")

	return note, nil
}

// GetNote retrieves a note by ID.
func (uc *NoteUseCase) GetNote(ctx context.Context, id string) (*domain.Note, error) {
	return uc.noteRepo.GetByID(ctx, id)
}

// ListNotes lists notes with pagination.
func (uc *NoteUseCase) ListNotes(ctx context.Context, limit, offset int) ([]*domain.Note, error) {
	limit, offset = clampPage(limit, offset)
	return uc.noteRepo.List(ctx, limit, offset)
}

func (uc *NoteUseCase) invalidateAccount(ctx context.Context, clientID string) {
	if err := uc.cache.Delete(ctx, accountCacheKey(clientID)); err != nil {
		uc.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to invalidate account cache")
	}
}
