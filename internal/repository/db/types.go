package db

import (
	"fmt"
	"strings"
)

// Dialect identifies the SQL backend the platform runs on. Production sits
// on MySQL behind shared hosting; SQLite serves local work and the managed
// offering keeps PostgreSQL.
type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectMySQL    Dialect = "mysql"
	DialectPostgres Dialect = "postgres"
)

// ParseDialect maps the configured database type to a dialect. An empty
// type selects SQLite so a bare checkout runs without configuration.
func ParseDialect(s string) (Dialect, error) {
	switch d := Dialect(strings.ToLower(s)); d {
	case "":
		return DialectSQLite, nil
	case DialectSQLite, DialectMySQL, DialectPostgres:
		return d, nil
	default:
		return "", fmt.Errorf("unsupported database type: %q", s)
	}
}

func (d Dialect) String() string {
	return string(d)
}
