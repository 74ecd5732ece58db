package postgres

import (
	"database/sql"
	"errors"

	"github.com/Melvins45/maferme237/internal/repository/db"
	"github.com/lib/pq"
)

var (
	ErrDup      = db.ErrDuplicate           // Duplicate unique key / Clé unique dupliquée
	ErrNoRecord = db.ErrNoRecord            // Re-export from db package
	ErrFK       = db.ErrForeignKeyViolation // Re-export from db package
)

// handleError translates PostgreSQL errors to typed errors / Traduit les erreurs PostgreSQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRecord
		}
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrDup
			case "23503": // foreign_key_violation
				return ErrFK
			}
		}
	}
	return err
}
