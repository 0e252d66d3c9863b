package e2e

import (
	"bytes"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmokeVersionAndUsageErrors(t *testing.T) {
	binaryPath := buildBinary(t)
	home := t.TempDir()

	stdout, stderr, exit := runRepobrief(t, binaryPath, home, "version")
	require.Equal(t, 0, exit, "stderr: %s", stderr)
	assert.Equal(t, "dev", strings.TrimSpace(stdout))

	// No repo URL argument.
	_, _, exit = runRepobrief(t, binaryPath, home)
	assert.Equal(t, 2, exit)

	// Missing API key is a configuration error, not a runtime failure.
	_, stderr, exit = runRepobrief(t, binaryPath, home, "https://github.com/acme/widget")
	assert.Equal(t, 2, exit)
	assert.Contains(t, stderr, "OPENAI_API_KEY")
}

func buildBinary(t *testing.T) string {
	t.Helper()

	binaryPath := filepath.Join(t.TempDir(), "repobrief-e2e")
	cmd := exec.Command("go", "build", "-o", binaryPath, "./cmd/repobrief")
	cmd.Dir = repoRoot(t)

	output, err := cmd.CombinedOutput()
	require.NoError(t, err, "build repobrief binary: %s", string(output))
	return binaryPath
}

func runRepobrief(t *testing.T, binaryPath, home string, args ...string) (string, string, int) {
	t.Helper()

	cmd := exec.Command(binaryPath, args...)
	cmd.Env = append(os.Environ(), "HOME="+home, "OPENAI_API_KEY=")
	cmd.Dir = home

	var stdout bytes.Buffer
	var stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	exit := 0
	if exitErr, ok := err.(*exec.ExitError); ok {
		exit = exitErr.ExitCode()
	} else if err != nil {
		t.Fatalf("run repobrief: %v", err)
	}

	return stdout.String(), stderr.String(), exit
}

func repoRoot(t *testing.T) string {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(wd, "..", ".."))
}
