package mocks

import (
	"context"

	"github.com/Melvins45/maferme237/internal/ports"
)

// MockTxRunner runs the transaction body directly against a nil DBTX. The
// repository mocks ignore their WithTx argument, so no real transaction is
// needed; the error flag simulates a begin failure.
type MockTxRunner struct {
	BeginError error
	InTxCalls  int
}

// NewMockTxRunner creates a new mock transaction runner
func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

func (m *MockTxRunner) InTx(ctx context.Context, fn func(tx ports.DBTX) error) error {
	m.InTxCalls++
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(nil)
}
