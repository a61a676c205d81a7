//go:build integration

package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestClone tests cloning a repository through the cache.
//
// Scenario: User runs `gitcache clone https://example.test/group/proj.git`
// Expected: Cache for the domain is created, the working copy exists, borrows
// objects from the cache, and carries cache metadata.
func TestClone(t *testing.T) {
	upstreamRoot, cacheDir := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	workDir := resolvePath(t, t.TempDir())
	t.Chdir(workDir)

	runCommand(t, newCloneCmd(), []string{url})

	dest := filepath.Join(workDir, "proj")
	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Fatalf("working copy should exist: %v", err)
	}

	// Cache exists and has the project registered
	cachePath := filepath.Join(cacheDir, "@"+testDomain)
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("cache directory should exist: %v", err)
	}
	remotes := runTestGit(t, cachePath, "remote")
	if remotes != "proj" {
		t.Errorf("expected remote 'proj' in cache, got %q", remotes)
	}

	// Working copy borrows from the cache
	alternates := filepath.Join(dest, ".git", "objects", "info", "alternates")
	if _, err := os.Stat(alternates); err != nil {
		t.Errorf("working copy should have alternates: %v", err)
	}

	// Metadata was written into the new working copy
	if got := runTestGit(t, dest, "config", "gitcache.project"); got != "proj" {
		t.Errorf("expected project 'proj', got %q", got)
	}
	if got := runTestGit(t, dest, "config", "gitcache.repo"); got != "@"+testDomain {
		t.Errorf("expected repo '@%s', got %q", testDomain, got)
	}
	if got := runTestGit(t, dest, "config", "gitcache.dir"); got != cachePath {
		t.Errorf("expected dir %q, got %q", cachePath, got)
	}
}

// TestClone_ExplicitDestination tests cloning into a named directory.
//
// Scenario: User runs `gitcache clone <url> my-checkout`
// Expected: Working copy lands in my-checkout with metadata recorded.
func TestClone_ExplicitDestination(t *testing.T) {
	upstreamRoot, _ := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	workDir := resolvePath(t, t.TempDir())
	t.Chdir(workDir)

	runCommand(t, newCloneCmd(), []string{url, "my-checkout"})

	dest := filepath.Join(workDir, "my-checkout")
	if _, err := os.Stat(filepath.Join(dest, ".git")); err != nil {
		t.Fatalf("working copy should exist: %v", err)
	}
	if got := runTestGit(t, dest, "config", "gitcache.project"); got != "proj" {
		t.Errorf("expected project 'proj', got %q", got)
	}
}

// TestClone_SecondProjectSharesCache tests that two projects from the same
// domain end up in one cache.
//
// Scenario: User clones two different projects from example.test
// Expected: One cache directory with both projects as remotes.
func TestClone_SecondProjectSharesCache(t *testing.T) {
	upstreamRoot, cacheDir := setupFakeDomain(t)
	urlA := createUpstream(t, upstreamRoot, "group/alpha")
	urlB := createUpstream(t, upstreamRoot, "group/beta")

	workDir := resolvePath(t, t.TempDir())
	t.Chdir(workDir)

	runCommand(t, newCloneCmd(), []string{urlA})
	runCommand(t, newCloneCmd(), []string{urlB})

	cachePath := filepath.Join(cacheDir, "@"+testDomain)
	remotes := runTestGit(t, cachePath, "remote")
	if remotes != "alpha\nbeta" {
		t.Errorf("expected remotes 'alpha' and 'beta', got %q", remotes)
	}

	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("expected a single cache directory, got %d", len(entries))
	}
}
