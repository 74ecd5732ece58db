package sqlstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRebindDollar(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "no placeholders",
			query: "SELECT 1",
			want:  "SELECT 1",
		},
		{
			name:  "single placeholder",
			query: "SELECT id FROM personnes WHERE id = ?",
			want:  "SELECT id FROM personnes WHERE id = $1",
		},
		{
			name:  "multiple placeholders keep order",
			query: "INSERT INTO clients (id, adresse_livraison) VALUES (?, ?)",
			want:  "INSERT INTO clients (id, adresse_livraison) VALUES ($1, $2)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RebindDollar(tt.query))
		})
	}
}

func TestRebindQuestion(t *testing.T) {
	query := "SELECT id FROM personnes WHERE id = ?"
	assert.Equal(t, query, RebindQuestion(query))
}
