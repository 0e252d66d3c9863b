package ports

import (
	"context"

	"github.com/bnema/repobrief/internal/domain"
)

// ModelRequest is one prompt for the model collaborator. ShapeHint names the
// JSON shape the stage expects; MaxTurns caps internal tool turns for
// providers that run agentic loops behind a single invocation.
type ModelRequest struct {
	Model     string
	System    string
	Prompt    string
	ShapeHint string
	MaxTurns  int
}

type ModelClient interface {
	// Invoke issues a single blocking model call and returns the raw text
	// output plus token usage. Transport failures surface as *domain.ModelError.
	Invoke(ctx context.Context, req ModelRequest) (string, domain.Usage, error)
}
