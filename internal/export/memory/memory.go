// Package memory holds exported statements in process memory. Used in
// tests and when no spreadsheet is configured.
package memory

import (
	"context"
	"fmt"
	"sync"

	"daftar/internal/core"
)

type Store struct {
	mu         sync.Mutex
	statements []core.PLStatement
}

func New() *Store {
	return &Store{}
}

// WriteStatement stores the statement and returns a synthetic reference.
func (s *Store) WriteStatement(_ context.Context, stmt core.PLStatement) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.statements = append(s.statements, stmt)
	return fmt.Sprintf("mem:%d", len(s.statements)), nil
}

// Statements returns a copy of everything written so far.
func (s *Store) Statements() []core.PLStatement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.PLStatement(nil), s.statements...)
}
