package domain

// RepoContext is an immutable snapshot of everything fetched up front for a
// single briefing run: repository metadata, a truncated README, a bounded
// tree summary, and a sampled set of key files.
type RepoContext struct {
	RepoURL         string
	Owner           string
	Repo            string
	FullName        string
	Description     string
	Stars           int
	Language        string
	Topics          []string
	License         string
	DefaultBranch   string
	Ref             string
	Readme          string
	TreeSummary     string
	KeyFiles        []string
	KeyFileContents map[string]string
}

// ContextLimits bounds how much repository content gets sampled into a
// RepoContext and how large individual file fetches may grow.
type ContextLimits struct {
	MaxReadmeChars int
	MaxTreeEntries int
	MaxKeyFiles    int
	MaxFileChars   int
}

func DefaultContextLimits() ContextLimits {
	return ContextLimits{
		MaxReadmeChars: 12000,
		MaxTreeEntries: 350,
		MaxKeyFiles:    12,
		MaxFileChars:   12000,
	}
}
