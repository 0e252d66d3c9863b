package domain

// CandidateFile is a repository path the model flagged for deeper reading.
type CandidateFile struct {
	Path   string
	Reason string
}

// Understanding is the working state threaded through the briefing stages:
// the evolving summary, open questions, and the candidate-file frontier.
// There is exactly one live instance per run, owned by the orchestrator.
type Understanding struct {
	Summary       string
	OpenQuestions []string

	candidates []CandidateFile
	seen       map[string]struct{}
	explored   map[string]struct{}
	exploredIn []string
}

func NewUnderstanding() *Understanding {
	return &Understanding{
		seen:     make(map[string]struct{}),
		explored: make(map[string]struct{}),
	}
}

// AddCandidates appends files to the frontier, deduplicated by path with the
// order of first mention preserved. Paths already explored are a no-op
// re-add: the explored set wins. Limit caps the total candidate count; excess
// entries are dropped whole, never truncated. A limit of zero or less means
// no cap.
func (u *Understanding) AddCandidates(files []CandidateFile, limit int) {
	for _, file := range files {
		if file.Path == "" {
			continue
		}
		if limit > 0 && len(u.candidates) >= limit {
			return
		}
		if _, ok := u.seen[file.Path]; ok {
			continue
		}
		if _, ok := u.explored[file.Path]; ok {
			continue
		}

		u.seen[file.Path] = struct{}{}
		u.candidates = append(u.candidates, file)
	}
}

// NextBatch returns up to limit unexplored candidates in first-mention order.
func (u *Understanding) NextBatch(limit int) []CandidateFile {
	batch := make([]CandidateFile, 0, limit)
	for _, candidate := range u.candidates {
		if len(batch) >= limit {
			break
		}
		if _, ok := u.explored[candidate.Path]; ok {
			continue
		}

		batch = append(batch, candidate)
	}

	return batch
}

// MarkExplored removes a path from the frontier permanently. The candidate
// set shrinks monotonically, which is what guarantees loop termination.
func (u *Understanding) MarkExplored(path string) {
	if _, ok := u.explored[path]; ok {
		return
	}

	u.explored[path] = struct{}{}
	u.exploredIn = append(u.exploredIn, path)
}

func (u *Understanding) UnexploredCount() int {
	count := 0
	for _, candidate := range u.candidates {
		if _, ok := u.explored[candidate.Path]; !ok {
			count++
		}
	}

	return count
}

// Candidates returns every candidate ever added, in first-discovery order,
// including explored ones. The fallback reading plan is synthesized from
// this sequence.
func (u *Understanding) Candidates() []CandidateFile {
	out := make([]CandidateFile, len(u.candidates))
	copy(out, u.candidates)
	return out
}

// ExploredPaths returns explored paths in the order they were explored.
func (u *Understanding) ExploredPaths() []string {
	out := make([]string, len(u.exploredIn))
	copy(out, u.exploredIn)
	return out
}
