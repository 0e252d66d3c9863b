package github

import (
	"sort"
	"strings"

	"github.com/google/go-github/v80/github"
)

const truncationSuffix = "\n...[truncated]..."

// truncate bounds text to maxChars with a visible suffix so the model knows
// content was cut, not complete.
func truncate(text string, maxChars int) string {
	if maxChars <= 0 {
		return ""
	}
	if len(text) <= maxChars {
		return text
	}
	if maxChars <= len(truncationSuffix) {
		return truncationSuffix[:maxChars]
	}

	return text[:maxChars-len(truncationSuffix)] + truncationSuffix
}

var ignoredTreePrefixes = []string{
	"node_modules/", "dist/", "build/", ".git/", ".venv/", "venv/",
}

func buildTreeIndex(tree *github.Tree) map[string]string {
	index := make(map[string]string)
	if tree == nil {
		return index
	}

	for _, entry := range tree.Entries {
		path := entry.GetPath()
		entryType := entry.GetType()
		if path == "" || entryType == "" {
			continue
		}

		index[path] = entryType
	}

	return index
}

// treeSummary renders a bounded listing sorted by depth then path, with 📁
// for directories and 📄 for files. Vendored and generated directories are
// filtered out to keep the entries high-signal.
func treeSummary(index map[string]string, maxEntries int) string {
	paths := make([]string, 0, len(index))
	for path, entryType := range index {
		if hasIgnoredPrefix(path) {
			continue
		}
		if entryType == "tree" {
			paths = append(paths, strings.TrimSuffix(path, "/")+"/")
			continue
		}

		paths = append(paths, path)
	}

	sort.Slice(paths, func(i, j int) bool {
		di, dj := strings.Count(paths[i], "/"), strings.Count(paths[j], "/")
		if di != dj {
			return di < dj
		}
		return paths[i] < paths[j]
	})

	if maxEntries > 0 && len(paths) > maxEntries {
		paths = paths[:maxEntries]
	}

	lines := make([]string, 0, len(paths))
	for _, path := range paths {
		marker := "📄"
		if strings.HasSuffix(path, "/") {
			marker = "📁"
		}
		lines = append(lines, marker+" "+path)
	}

	return strings.Join(lines, "\n")
}

func hasIgnoredPrefix(path string) bool {
	lower := strings.ToLower(path)
	for _, prefix := range ignoredTreePrefixes {
		if strings.HasPrefix(lower, prefix) {
			return true
		}
	}

	return false
}

// wellKnownFiles are manifest and doc files sampled first when present;
// they carry the most signal per byte for bootstrapping understanding.
var wellKnownFiles = []string{
	"README.md",
	"README.rst",
	"README.txt",
	"CONTRIBUTING.md",
	"LICENSE",
	"SECURITY.md",
	"CHANGELOG.md",
	"CODEOWNERS",
	".env.example",
	".env.sample",
	"Dockerfile",
	"docker-compose.yml",
	"compose.yml",
	"Makefile",
	"pyproject.toml",
	"requirements.txt",
	"setup.py",
	"package.json",
	"tsconfig.json",
	"Cargo.toml",
	"go.mod",
	"pom.xml",
	"build.gradle",
}

var entrypointSuffixes = []string{
	"/main.py",
	"/app.py",
	"/server.py",
	"/cli.py",
	"/index.js",
	"/index.ts",
	"/main.go",
	"/main.rs",
}

// pickKeyFiles selects representative files to bootstrap the overview:
// well-known manifests first, then likely entrypoints and docs, deduplicated
// and capped.
func pickKeyFiles(index map[string]string, maxFiles int) []string {
	found := make([]string, 0, maxFiles)

	for _, candidate := range wellKnownFiles {
		if index[candidate] == "blob" {
			found = append(found, candidate)
		}
	}

	rest := make([]string, 0, len(index))
	for path, entryType := range index {
		if entryType != "blob" {
			continue
		}

		lower := strings.ToLower(path)
		for _, suffix := range entrypointSuffixes {
			if strings.HasSuffix(lower, suffix) {
				rest = append(rest, path)
				break
			}
		}
		if (strings.HasPrefix(lower, "docs/") || strings.Contains(lower, "/docs/")) &&
			(strings.HasSuffix(lower, ".md") || strings.HasSuffix(lower, ".rst")) {
			rest = append(rest, path)
		}
	}
	sort.Strings(rest)
	found = append(found, rest...)

	seen := make(map[string]struct{}, len(found))
	unique := make([]string, 0, len(found))
	for _, path := range found {
		if _, ok := seen[path]; ok {
			continue
		}
		seen[path] = struct{}{}
		unique = append(unique, path)
	}

	if maxFiles > 0 && len(unique) > maxFiles {
		unique = unique[:maxFiles]
	}

	return unique
}
