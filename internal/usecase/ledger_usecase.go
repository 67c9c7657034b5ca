package usecase

import (
	"context"
	"encoding/json"
	"sort"

	"github.com/rs/zerolog"

	"github.com/mgiordano/pymebooks/internal/domain"
	"github.com/mgiordano/pymebooks/internal/infrastructure/metrics"
)

// LedgerUseCase exposes the current-account projections. The engine in
// the domain package is pure; this layer fetches movements, caches the
// computed projection per client, and attaches display names.
type LedgerUseCase struct {
	movementRepo MovementRepository
	clientRepo   ClientRepository
	cache        Cache
	metrics      *metrics.Metrics
	logger       zerolog.Logger
}

// NewLedgerUseCase creates a new LedgerUseCase.
func NewLedgerUseCase(
	movementRepo MovementRepository,
	clientRepo ClientRepository,
	cache Cache,
	m *metrics.Metrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		movementRepo: movementRepo,
		clientRepo:   clientRepo,
		cache:        cache,
		metrics:      m,
		logger:       logger,
	}
}

// ClientAccountView is a computed account enriched with the client name.
type ClientAccountView struct {
	domain.ClientAccount
	ClientName string
}

func accountCacheKey(clientID string) string {
	return "account:" + clientID
}

// GetClientAccount recomputes (or serves from cache) the running-balance
// projection for one client. A client with no movements yields a settled
// account with zero balance, not an error.
func (uc *LedgerUseCase) GetClientAccount(ctx context.Context, clientID string) (*ClientAccountView, error) {
	client, err := uc.clientRepo.GetByID(ctx, clientID)
	if err != nil {
		return nil, err
	}

	if cached, err := uc.cache.Get(ctx, accountCacheKey(clientID)); err == nil && cached != nil {
		var view ClientAccountView
		if err := json.Unmarshal(cached, &view); err == nil {
			uc.metrics.AccountCacheHits.Inc()
			return &view, nil
		}
		// A corrupt entry falls through to recompute.
	}
	uc.metrics.AccountCacheMiss.Inc()

	movements, err := uc.movementRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	account, err := domain.ComputeAccount(movements)
	if err != nil {
		return nil, err
	}
	account.ClientID = clientID
	uc.metrics.AccountsComputed.Inc()

	view := &ClientAccountView{ClientAccount: *account, ClientName: client.Name}

	if payload, err := json.Marshal(view); err == nil {
		if err := uc.cache.Set(ctx, accountCacheKey(clientID), payload, accountCacheTTL); err != nil {
			uc.logger.Warn().Err(err).Str("client_id", clientID).Msg("failed to cache account projection")
		}
	}

	return view, nil
}

// ListAccounts computes one account per client with at least one
// movement, ordered by client name for display. Clients without
// movements are omitted.
func (uc *LedgerUseCase) ListAccounts(ctx context.Context) ([]*ClientAccountView, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := domain.ComputeAccounts(movements)
	if err != nil {
		return nil, err
	}
	uc.metrics.AccountsComputed.Add(float64(len(accounts)))

	views := make([]*ClientAccountView, 0, len(accounts))
	for _, account := range accounts {
		view := &ClientAccountView{ClientAccount: *account}
		if client, err := uc.clientRepo.GetByID(ctx, account.ClientID); err == nil {
			view.ClientName = client.Name
		}
		views = append(views, view)
	}

	sort.SliceStable(views, func(i, j int) bool {
		if views[i].ClientName != views[j].ClientName {
			return views[i].ClientName < views[j].ClientName
		}
		return views[i].ClientID < views[j].ClientID
	})

	return views, nil
}

// AccountsSummaryView is the aggregate statistics over all accounts.
type AccountsSummaryView struct {
	domain.AccountsSummary
	AccountsWithMovements int
}

// Summary aggregates debtor/creditor counts and the sum of balances.
func (uc *LedgerUseCase) Summary(ctx context.Context) (*AccountsSummaryView, error) {
	movements, err := uc.movementRepo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	accounts, err := domain.ComputeAccounts(movements)
	if err != nil {
		return nil, err
	}

	return &AccountsSummaryView{
		AccountsSummary:       domain.SummarizeAccounts(accounts),
		AccountsWithMovements: len(accounts),
	}, nil
}
