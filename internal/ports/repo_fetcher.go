package ports

import (
	"context"

	"github.com/bnema/repobrief/internal/domain"
)

type RepoFetcher interface {
	// FetchContext assembles the immutable repository snapshot for a run.
	FetchContext(ctx context.Context, repoURL, ref string, limits domain.ContextLimits) (domain.RepoContext, error)

	// FetchFile returns truncated file content at a ref. A missing or
	// unreadable file surfaces as domain.ErrFileUnavailable.
	FetchFile(ctx context.Context, repoURL, ref, path string, maxChars int) (string, error)
}
