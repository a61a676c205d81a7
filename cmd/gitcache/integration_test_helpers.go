//go:build integration

package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/log"
	"github.com/raphi011/gitcache/internal/output"
)

// testDomain is the fake hosting domain used by integration tests. A
// url.insteadOf rewrite in a scratch global git config maps it onto a local
// directory, so clones and fetches stay entirely on disk.
const testDomain = "example.test"

// resolvePath resolves symlinks in a path.
// This is needed on macOS where /var is a symlink to /private/var.
func resolvePath(t *testing.T, path string) string {
	t.Helper()
	resolved, err := filepath.EvalSymlinks(path)
	if err != nil {
		t.Fatalf("failed to resolve path %s: %v", path, err)
	}
	return resolved
}

// runTestGit runs git for test setup and assertions, failing the test on error.
func runTestGit(t *testing.T, dir string, args ...string) string {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("git %v failed: %v\n%s", args, err, out)
	}
	return strings.TrimSpace(string(out))
}

// setupFakeDomain points https://example.test/ at a local upstream root,
// sets GITCACHE_DIR to a fresh cache root, and returns both.
func setupFakeDomain(t *testing.T) (upstreamRoot, cacheDir string) {
	t.Helper()

	upstreamRoot = resolvePath(t, t.TempDir())

	cfg := filepath.Join(t.TempDir(), "gitconfig")
	content := fmt.Sprintf(`[url %q]
	insteadOf = https://%s/
[user]
	email = test@test.com
	name = Test User
[commit]
	gpgsign = false
`, upstreamRoot+"/", testDomain)
	if err := os.WriteFile(cfg, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("GIT_CONFIG_GLOBAL", cfg)
	t.Setenv("GIT_CONFIG_SYSTEM", os.DevNull)

	cacheDir = resolvePath(t, t.TempDir())
	t.Setenv("GITCACHE_DIR", cacheDir)

	return upstreamRoot, cacheDir
}

// createUpstream creates a bare upstream repository with one commit at
// <upstreamRoot>/<path>.git and returns its aliased URL.
func createUpstream(t *testing.T, upstreamRoot, path string) string {
	t.Helper()

	seed := filepath.Join(t.TempDir(), "seed")
	runTestGit(t, "", "init", "-b", "main", seed)
	if err := os.WriteFile(filepath.Join(seed, "README.md"), []byte("# seed\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runTestGit(t, seed, "add", "README.md")
	runTestGit(t, seed, "commit", "-m", "Initial commit")

	bare := filepath.Join(upstreamRoot, path+".git")
	if err := os.MkdirAll(filepath.Dir(bare), 0755); err != nil {
		t.Fatal(err)
	}
	runTestGit(t, "", "clone", "--bare", seed, bare)

	return fmt.Sprintf("https://%s/%s.git", testDomain, path)
}

// pushUpstreamCommit adds a commit to an upstream repository created by
// createUpstream.
func pushUpstreamCommit(t *testing.T, upstreamRoot, path string) {
	t.Helper()

	bare := filepath.Join(upstreamRoot, path+".git")
	work := filepath.Join(t.TempDir(), "work")
	runTestGit(t, "", "clone", bare, work)
	if err := os.WriteFile(filepath.Join(work, "more.txt"), []byte("more\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runTestGit(t, work, "add", "more.txt")
	runTestGit(t, work, "commit", "-m", "More")
	runTestGit(t, work, "push", "origin", "main")
}

// gitConfigMaybe reads a git config key that may be unset. Returns an error
// when the key is missing instead of failing the test.
func gitConfigMaybe(dir, key string) (string, error) {
	cmd := exec.Command("git", "config", key)
	cmd.Dir = dir
	out, err := cmd.Output()
	return strings.TrimSpace(string(out)), err
}

// testContext returns a command context with a quiet logger and a printer
// writing into the returned buffer.
func testContext(t *testing.T) (context.Context, *bytes.Buffer) {
	t.Helper()

	var buf bytes.Buffer
	ctx := log.WithLogger(context.Background(), log.New(io.Discard, false, true))
	ctx = output.WithPrinter(ctx, &buf)
	return ctx, &buf
}

// runCommand executes a command with the given args against a test context
// and returns the captured stdout.
func runCommand(t *testing.T, cmd *cobra.Command, args []string) string {
	t.Helper()

	ctx, buf := testContext(t)
	cmd.SetContext(ctx)
	cmd.SetArgs(args)
	if err := cmd.Execute(); err != nil {
		t.Fatalf("%s failed: %v", cmd.Name(), err)
	}
	return buf.String()
}
