package github

import (
	"context"
	"fmt"
	"net/http"
	"regexp"

	"github.com/bnema/repobrief/internal/domain"
	"github.com/bnema/repobrief/internal/ports"
	"github.com/google/go-github/v80/github"
	"golang.org/x/oauth2"
)

var _ ports.RepoFetcher = (*Client)(nil)

type RepositoriesService interface {
	Get(ctx context.Context, owner, repo string) (*github.Repository, *github.Response, error)
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
	GetReadme(ctx context.Context, owner, repo string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, *github.Response, error)
}

type GitService interface {
	GetTree(ctx context.Context, owner, repo, sha string, recursive bool) (*github.Tree, *github.Response, error)
}

// Client assembles briefing context from the GitHub API. A token raises rate
// limits but is never required for public repositories.
type Client struct {
	repoService RepositoriesService
	gitService  GitService
}

func NewClient(token string) *Client {
	var httpClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)

	return &Client{
		repoService: client.Repositories,
		gitService:  client.Git,
	}
}

func NewClientWithServices(repoService RepositoriesService, gitService GitService) *Client {
	return &Client{repoService: repoService, gitService: gitService}
}

var repoURLPattern = regexp.MustCompile(`^https?://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)

// ParseRepoURL splits a GitHub HTTPS repository URL into owner and repo.
func ParseRepoURL(repoURL string) (string, string, error) {
	match := repoURLPattern.FindStringSubmatch(repoURL)
	if match == nil {
		return "", "", fmt.Errorf("invalid repository URL %q: expected https://github.com/OWNER/REPO", repoURL)
	}

	return match[1], match[2], nil
}

func (c *Client) FetchContext(ctx context.Context, repoURL, ref string, limits domain.ContextLimits) (domain.RepoContext, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return domain.RepoContext{}, err
	}

	repository, _, err := c.repoService.Get(ctx, owner, repo)
	if err != nil {
		return domain.RepoContext{}, fmt.Errorf("get repository %s/%s: %w", owner, repo, err)
	}

	resolvedRef := ref
	if resolvedRef == "" {
		resolvedRef = repository.GetDefaultBranch()
	}
	if resolvedRef == "" {
		resolvedRef = "main"
	}

	tree, _, err := c.gitService.GetTree(ctx, owner, repo, resolvedRef, true)
	if err != nil {
		return domain.RepoContext{}, fmt.Errorf("get repository tree %s/%s@%s: %w", owner, repo, resolvedRef, err)
	}

	index := buildTreeIndex(tree)
	keyFiles := pickKeyFiles(index, limits.MaxKeyFiles)

	keyFileContents := make(map[string]string, len(keyFiles))
	for _, path := range keyFiles {
		content, err := c.fetchContent(ctx, owner, repo, path, resolvedRef, limits.MaxFileChars)
		if err != nil {
			// Sampling is best effort; a missing key file is not fatal.
			content = ""
		}
		keyFileContents[path] = content
	}

	readme := keyFileContents["README.md"]
	if readme == "" {
		readme = c.fetchReadme(ctx, owner, repo, resolvedRef, limits.MaxReadmeChars)
	} else {
		readme = truncate(readme, limits.MaxReadmeChars)
	}

	return domain.RepoContext{
		RepoURL:         repoURL,
		Owner:           owner,
		Repo:            repo,
		FullName:        fullName(repository, owner, repo),
		Description:     repository.GetDescription(),
		Stars:           repository.GetStargazersCount(),
		Language:        repository.GetLanguage(),
		Topics:          repository.Topics,
		License:         repository.GetLicense().GetSPDXID(),
		DefaultBranch:   repository.GetDefaultBranch(),
		Ref:             resolvedRef,
		Readme:          readme,
		TreeSummary:     treeSummary(index, limits.MaxTreeEntries),
		KeyFiles:        keyFiles,
		KeyFileContents: keyFileContents,
	}, nil
}

func (c *Client) FetchFile(ctx context.Context, repoURL, ref, path string, maxChars int) (string, error) {
	owner, repo, err := ParseRepoURL(repoURL)
	if err != nil {
		return "", err
	}

	content, err := c.fetchContent(ctx, owner, repo, path, ref, maxChars)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %v", domain.ErrFileUnavailable, path, err)
	}

	return content, nil
}

func (c *Client) fetchContent(ctx context.Context, owner, repo, path, ref string, maxChars int) (string, error) {
	fileContent, _, _, err := c.repoService.GetContents(ctx, owner, repo, path,
		&github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return "", fmt.Errorf("get contents %s: %w", path, err)
	}
	if fileContent == nil {
		return "", fmt.Errorf("get contents %s: path is a directory", path)
	}

	decoded, err := fileContent.GetContent()
	if err != nil {
		return "", fmt.Errorf("decode contents %s: %w", path, err)
	}

	return truncate(decoded, maxChars), nil
}

func (c *Client) fetchReadme(ctx context.Context, owner, repo, ref string, maxChars int) string {
	readme, _, err := c.repoService.GetReadme(ctx, owner, repo, &github.RepositoryContentGetOptions{Ref: ref})
	if err != nil {
		return ""
	}

	decoded, err := readme.GetContent()
	if err != nil {
		return ""
	}

	return truncate(decoded, maxChars)
}

func fullName(repository *github.Repository, owner, repo string) string {
	if name := repository.GetFullName(); name != "" {
		return name
	}

	return owner + "/" + repo
}
