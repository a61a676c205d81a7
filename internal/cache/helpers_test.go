package cache

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

// testDomain is the fake hosting domain used by cache tests. A url.insteadOf
// rewrite in a scratch global git config maps it onto a local directory, so
// "network" clones and fetches stay entirely on disk.
const testDomain = "example.test"

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

// setupFakeDomain points https://example.test/ at a local upstream root and
// returns that root. Upstream repositories created below it are reachable
// under https://example.test/<path>.git.
func setupFakeDomain(t *testing.T) string {
	t.Helper()

	upstreamRoot, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

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

	return upstreamRoot
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

// setupWorkRepo creates a plain local repository with one commit, used as an
// "invoking working copy" for metadata writes.
func setupWorkRepo(t *testing.T) string {
	t.Helper()

	repo := filepath.Join(t.TempDir(), "workcopy")
	runTestGit(t, "", "init", "-b", "main", repo)
	if err := os.WriteFile(filepath.Join(repo, "file.txt"), []byte("x\n"), 0644); err != nil {
		t.Fatal(err)
	}
	runTestGit(t, repo, "add", "file.txt")
	runTestGit(t, repo, "commit", "-m", "Initial commit")

	resolved, err := filepath.EvalSymlinks(repo)
	if err != nil {
		t.Fatal(err)
	}
	return resolved
}
