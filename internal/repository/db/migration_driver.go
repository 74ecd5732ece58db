package db

import (
	"database/sql"
	"fmt"

	"github.com/golang-migrate/migrate/v4/database"
	"github.com/golang-migrate/migrate/v4/database/mysql"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
)

// MigrationDriver wraps the open connection for golang-migrate and returns
// the driver name migrate registers for the dialect.
func MigrationDriver(conn *sql.DB, dialect Dialect) (database.Driver, string, error) {
	switch dialect {
	case DialectSQLite:
		drv, err := sqlite.WithInstance(conn, &sqlite.Config{})
		return drv, "sqlite3", err
	case DialectMySQL:
		drv, err := mysql.WithInstance(conn, &mysql.Config{})
		return drv, "mysql", err
	case DialectPostgres:
		drv, err := postgres.WithInstance(conn, &postgres.Config{})
		return drv, "postgres", err
	default:
		return nil, "", fmt.Errorf("no migration driver for dialect: %s", dialect)
	}
}
