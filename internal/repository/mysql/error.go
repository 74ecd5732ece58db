package mysql

import (
	"database/sql"
	"errors"

	"github.com/Melvins45/maferme237/internal/repository/db"
	"github.com/go-sql-driver/mysql"
)

var (
	ErrDup      = db.ErrDuplicate           // Duplicate unique key / Clé unique dupliquée
	ErrNoRecord = db.ErrNoRecord            // Re-export from db package
	ErrFK       = db.ErrForeignKeyViolation // Re-export from db package
)

// handleError translates MySQL errors to typed errors / Traduit les erreurs MySQL en erreurs typées
func handleError(err error) error {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNoRecord
		}
		if mysqlErr, ok := err.(*mysql.MySQLError); ok {
			switch mysqlErr.Number {
			case 1062: // ER_DUP_ENTRY
				return ErrDup
			case 1451, 1452: // ER_ROW_IS_REFERENCED_2, ER_NO_REFERENCED_ROW_2
				return ErrFK
			}
		}
	}
	return err
}
