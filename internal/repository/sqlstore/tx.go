package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Melvins45/maferme237/internal/ports"
)

var _ ports.TxRunner = (*TxRunner)(nil)

// TxRunner runs callbacks inside a single database transaction.
type TxRunner struct {
	db *sql.DB
	d  Dialect
}

// NewTxRunner creates the transaction runner / Crée l'exécuteur de transactions
func NewTxRunner(db *sql.DB, d Dialect) *TxRunner {
	return &TxRunner{db: db, d: d}
}

// InTx begins a transaction, runs fn, and commits; any error rolls back.
func (r *TxRunner) InTx(ctx context.Context, fn func(tx ports.DBTX) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return r.d.Err(err)
	}

	if err := fn(tx); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			return fmt.Errorf("rollback failed: %v (original: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return r.d.Err(err)
	}
	return nil
}
