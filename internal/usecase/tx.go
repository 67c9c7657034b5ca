package usecase

import "context"

// withTransaction runs fn inside a transaction, committing on success.
// When a retrier is set, deadlocked or serialization-failed attempts
// are re-run from a fresh transaction.
func withTransaction(ctx context.Context, tm TransactionManager, retrier Retrier, fn func(Transaction) error) error {
	run := func() error {
		tx, err := tm.Begin(ctx)
		if err != nil {
			return err
		}
		defer tx.Rollback(ctx)

		if err := fn(tx); err != nil {
			return err
		}

		return tx.Commit(ctx)
	}

	if retrier != nil {
		return retrier.Retry(ctx, run)
	}
	return run()
}
