// Package sqlstore implements the persistence ports on database/sql.
// Queries are written once with ?-style placeholders; each database package
// (sqlite, mysql, postgres) supplies a Dialect carrying its placeholder
// rewriting, error translation and generated-key strategy.
// Le package sqlstore implémente les ports de persistance sur database/sql.
// Les requêtes sont écrites une seule fois avec des placeholders ? ; chaque
// package de BD fournit un Dialect avec sa réécriture de placeholders, sa
// traduction d'erreurs et sa stratégie de clé générée.
package sqlstore

import (
	"context"
	"strconv"
	"strings"

	"github.com/Melvins45/maferme237/internal/ports"
)

// Dialect carries the driver-specific behavior of one database package.
type Dialect struct {
	// Rebind rewrites ?-style placeholders to the driver's syntax.
	Rebind func(query string) string

	// Err translates driver errors to the typed errors of the db package.
	Err func(err error) error

	// InsertID runs an INSERT and returns the generated primary key.
	InsertID func(ctx context.Context, db ports.DBTX, query string, args ...any) (int64, error)
}

// RebindQuestion keeps ?-style placeholders as-is (SQLite, MySQL).
func RebindQuestion(query string) string {
	return query
}

// RebindDollar rewrites ?-style placeholders to $1..$n (PostgreSQL).
func RebindDollar(query string) string {
	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// ExecInsertID is the InsertID strategy for drivers supporting LastInsertId.
func ExecInsertID(errFn func(error) error) func(context.Context, ports.DBTX, string, ...any) (int64, error) {
	return func(ctx context.Context, db ports.DBTX, query string, args ...any) (int64, error) {
		result, err := db.ExecContext(ctx, query, args...)
		if err != nil {
			return 0, errFn(err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return 0, errFn(err)
		}
		return id, nil
	}
}

// QueryInsertID is the InsertID strategy for PostgreSQL: the query must carry
// a RETURNING id clause, appended here so shared queries stay portable.
func QueryInsertID(errFn func(error) error) func(context.Context, ports.DBTX, string, ...any) (int64, error) {
	return func(ctx context.Context, db ports.DBTX, query string, args ...any) (int64, error) {
		var id int64
		err := db.QueryRowContext(ctx, RebindDollar(query)+" RETURNING id", args...).Scan(&id)
		if err != nil {
			return 0, errFn(err)
		}
		return id, nil
	}
}
