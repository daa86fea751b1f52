package export

import (
	"context"

	"daftar/internal/core"
)

// Ports for outbound adapters.
type (
	// StatementWriter publishes a finished profit and loss statement to
	// an external destination and returns a reference to where it landed.
	StatementWriter interface {
		WriteStatement(ctx context.Context, stmt core.PLStatement) (ref string, err error)
	}
)
