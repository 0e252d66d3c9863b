package github

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepoService struct {
	repository *github.Repository
	contents   map[string]*github.RepositoryContent
	readme     *github.RepositoryContent
	getErr     error
}

func (f *fakeRepoService) Get(_ context.Context, _, _ string) (*github.Repository, *github.Response, error) {
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	return f.repository, &github.Response{}, nil
}

func (f *fakeRepoService) GetContents(_ context.Context, _, _, path string, _ *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	content, ok := f.contents[path]
	if !ok {
		return nil, nil, nil, errors.New("404 not found")
	}
	return content, nil, &github.Response{}, nil
}

func (f *fakeRepoService) GetReadme(_ context.Context, _, _ string, _ *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error) {
	if f.readme == nil {
		return nil, nil, errors.New("404 not found")
	}
	return f.readme, &github.Response{}, nil
}

type fakeGitService struct {
	tree   *github.Tree
	getErr error
}

func (f *fakeGitService) GetTree(_ context.Context, _, _, _ string, _ bool) (*github.Tree, *github.Response, error) {
	if f.getErr != nil {
		return nil, nil, f.getErr
	}
	return f.tree, &github.Response{}, nil
}

func blobEntry(path string) *github.TreeEntry {
	return &github.TreeEntry{Path: github.Ptr(path), Type: github.Ptr("blob")}
}

func treeEntry(path string) *github.TreeEntry {
	return &github.TreeEntry{Path: github.Ptr(path), Type: github.Ptr("tree")}
}

func fileContent(text string) *github.RepositoryContent {
	return &github.RepositoryContent{Content: github.Ptr(text)}
}

func TestParseRepoURL(t *testing.T) {
	tests := []struct {
		name      string
		url       string
		wantOwner string
		wantRepo  string
		wantErr   bool
	}{
		{name: "https", url: "https://github.com/acme/widget", wantOwner: "acme", wantRepo: "widget"},
		{name: "trailing slash", url: "https://github.com/acme/widget/", wantOwner: "acme", wantRepo: "widget"},
		{name: "dot git suffix", url: "https://github.com/acme/widget.git", wantOwner: "acme", wantRepo: "widget"},
		{name: "http scheme", url: "http://github.com/acme/widget", wantOwner: "acme", wantRepo: "widget"},
		{name: "not github", url: "https://gitlab.com/acme/widget", wantErr: true},
		{name: "missing repo", url: "https://github.com/acme", wantErr: true},
		{name: "extra path segment", url: "https://github.com/acme/widget/tree/main", wantErr: true},
		{name: "bare string", url: "acme/widget", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := ParseRepoURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantOwner, owner)
			assert.Equal(t, tt.wantRepo, repo)
		})
	}
}

func TestTruncateAddsVisibleSuffix(t *testing.T) {
	long := strings.Repeat("x", 100)

	out := truncate(long, 50)
	assert.Len(t, out, 50)
	assert.True(t, strings.HasSuffix(out, truncationSuffix))

	assert.Equal(t, "short", truncate("short", 50))
	assert.Equal(t, "", truncate("anything", 0))
}

func TestTreeSummarySortsByDepthThenPath(t *testing.T) {
	index := map[string]string{
		"src/deep/nested.py": "blob",
		"README.md":          "blob",
		"src":                "tree",
		"src/main.py":        "blob",
		"Makefile":           "blob",
	}

	summary := treeSummary(index, 0)
	lines := strings.Split(summary, "\n")
	assert.Equal(t, []string{
		"📄 Makefile",
		"📄 README.md",
		"📁 src/",
		"📄 src/main.py",
		"📄 src/deep/nested.py",
	}, lines)
}

func TestTreeSummaryFiltersVendoredDirsAndCapsEntries(t *testing.T) {
	index := map[string]string{
		"node_modules/left-pad/index.js": "blob",
		"dist/bundle.js":                 "blob",
		".git/HEAD":                      "blob",
		"a.py":                           "blob",
		"b.py":                           "blob",
		"c.py":                           "blob",
	}

	summary := treeSummary(index, 2)
	assert.Equal(t, "📄 a.py\n📄 b.py", summary)
}

func TestPickKeyFilesWellKnownBeforeEntrypoints(t *testing.T) {
	index := map[string]string{
		"README.md":       "blob",
		"pyproject.toml":  "blob",
		"src/main.py":     "blob",
		"src/cli.py":      "blob",
		"docs/guide.md":   "blob",
		"src/helpers.py":  "blob",
		"assets/logo.png": "blob",
		"src":             "tree",
	}

	picked := pickKeyFiles(index, 10)
	require.GreaterOrEqual(t, len(picked), 4)

	// Well-known manifests come first, in their fixed priority order.
	assert.Equal(t, "README.md", picked[0])
	assert.Equal(t, "pyproject.toml", picked[1])
	assert.Contains(t, picked, "src/main.py")
	assert.Contains(t, picked, "src/cli.py")
	assert.Contains(t, picked, "docs/guide.md")
	assert.NotContains(t, picked, "src/helpers.py")
	assert.NotContains(t, picked, "assets/logo.png")
}

func TestPickKeyFilesCapsAndDedupes(t *testing.T) {
	index := map[string]string{
		"README.md":   "blob",
		"go.mod":      "blob",
		"cmd/main.go": "blob",
	}

	picked := pickKeyFiles(index, 2)
	assert.Equal(t, []string{"README.md", "go.mod"}, picked)
}

func TestFetchContextAssemblesSnapshot(t *testing.T) {
	repoService := &fakeRepoService{
		repository: &github.Repository{
			FullName:        github.Ptr("acme/widget"),
			Description:     github.Ptr("A widget service"),
			StargazersCount: github.Ptr(42),
			Language:        github.Ptr("Python"),
			DefaultBranch:   github.Ptr("develop"),
			License:         &github.License{SPDXID: github.Ptr("MIT")},
		},
		contents: map[string]*github.RepositoryContent{
			"README.md":   fileContent("# widget readme"),
			"src/main.py": fileContent("print('hi')"),
		},
	}
	gitService := &fakeGitService{
		tree: &github.Tree{Entries: []*github.TreeEntry{
			blobEntry("README.md"),
			blobEntry("src/main.py"),
			treeEntry("src"),
		}},
	}

	client := NewClientWithServices(repoService, gitService)
	rc, err := client.FetchContext(context.Background(), "https://github.com/acme/widget", "", domain.DefaultContextLimits())
	require.NoError(t, err)

	assert.Equal(t, "acme", rc.Owner)
	assert.Equal(t, "widget", rc.Repo)
	assert.Equal(t, "acme/widget", rc.FullName)
	assert.Equal(t, "develop", rc.Ref)
	assert.Equal(t, "MIT", rc.License)
	assert.Equal(t, 42, rc.Stars)
	assert.Equal(t, "# widget readme", rc.Readme)
	assert.Contains(t, rc.KeyFiles, "README.md")
	assert.Contains(t, rc.KeyFiles, "src/main.py")
	assert.Equal(t, "print('hi')", rc.KeyFileContents["src/main.py"])
	assert.Contains(t, rc.TreeSummary, "📁 src/")
}

func TestFetchContextExplicitRefOverridesDefaultBranch(t *testing.T) {
	repoService := &fakeRepoService{
		repository: &github.Repository{DefaultBranch: github.Ptr("main")},
	}
	gitService := &fakeGitService{tree: &github.Tree{}}

	client := NewClientWithServices(repoService, gitService)
	rc, err := client.FetchContext(context.Background(), "https://github.com/acme/widget", "v2.1.0", domain.DefaultContextLimits())
	require.NoError(t, err)

	assert.Equal(t, "v2.1.0", rc.Ref)
	assert.Equal(t, "main", rc.DefaultBranch)
}

func TestFetchContextFallsBackToReadmeEndpoint(t *testing.T) {
	repoService := &fakeRepoService{
		repository: &github.Repository{DefaultBranch: github.Ptr("main")},
		readme:     fileContent("# readme via endpoint"),
	}
	gitService := &fakeGitService{
		tree: &github.Tree{Entries: []*github.TreeEntry{blobEntry("main.go")}},
	}

	client := NewClientWithServices(repoService, gitService)
	rc, err := client.FetchContext(context.Background(), "https://github.com/acme/widget", "", domain.DefaultContextLimits())
	require.NoError(t, err)

	assert.Equal(t, "# readme via endpoint", rc.Readme)
}

func TestFetchContextMissingKeyFileIsNotFatal(t *testing.T) {
	repoService := &fakeRepoService{
		repository: &github.Repository{DefaultBranch: github.Ptr("main")},
	}
	gitService := &fakeGitService{
		tree: &github.Tree{Entries: []*github.TreeEntry{blobEntry("go.mod")}},
	}

	client := NewClientWithServices(repoService, gitService)
	rc, err := client.FetchContext(context.Background(), "https://github.com/acme/widget", "", domain.DefaultContextLimits())
	require.NoError(t, err)

	assert.Equal(t, "", rc.KeyFileContents["go.mod"])
}

func TestFetchFileWrapsUnavailableError(t *testing.T) {
	repoService := &fakeRepoService{contents: map[string]*github.RepositoryContent{}}
	client := NewClientWithServices(repoService, &fakeGitService{})

	_, err := client.FetchFile(context.Background(), "https://github.com/acme/widget", "main", "missing.py", 1000)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrFileUnavailable)
	assert.Contains(t, err.Error(), "missing.py")
}

func TestFetchFileTruncatesContent(t *testing.T) {
	repoService := &fakeRepoService{contents: map[string]*github.RepositoryContent{
		"big.py": fileContent(strings.Repeat("a", 500)),
	}}
	client := NewClientWithServices(repoService, &fakeGitService{})

	content, err := client.FetchFile(context.Background(), "https://github.com/acme/widget", "main", "big.py", 100)
	require.NoError(t, err)
	assert.Len(t, content, 100)
	assert.True(t, strings.HasSuffix(content, truncationSuffix))
}
