package usecase

import (
	"time"

	"github.com/mgiordano/pymebooks/internal/domain"
)

const (
	// scanPageSize is the batch size for internal full-table scans,
	// not a bound on what callers may request.
	scanPageSize = 100

	// accountCacheTTL bounds staleness of cached account projections.
	// Every ledger-affecting write invalidates the key anyway.
	accountCacheTTL = 5 * time.Minute
)

// clampPage delegates to the shared validator so list endpoints are
// clamped once, with the same bounds the HTTP layer advertises.
func clampPage(limit, offset int) (int, int) {
	return domain.ValidatePagination(limit, offset)
}
