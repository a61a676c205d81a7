//go:build integration

package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestCacheAttach tests attaching an existing clone to the cache.
//
// Scenario: User has a plain clone and runs `gitcache cache-attach`
// Expected: Cache is created, the repository borrows from it, metadata is
// recorded, and the repository stays healthy.
func TestCacheAttach(t *testing.T) {
	upstreamRoot, cacheDir := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	dest := filepath.Join(resolvePath(t, t.TempDir()), "proj")
	runTestGit(t, "", "clone", url, dest)

	t.Chdir(dest)
	out := runCommand(t, newAttachCmd(), nil)

	cachePath := filepath.Join(cacheDir, "@"+testDomain)
	if !strings.Contains(out, "Attached to "+cachePath) {
		t.Errorf("expected attach confirmation, got %q", out)
	}
	if got := runTestGit(t, dest, "config", "gitcache.dir"); got != cachePath {
		t.Errorf("expected dir %q, got %q", cachePath, got)
	}

	alternates := filepath.Join(dest, ".git", "objects", "info", "alternates")
	data, err := os.ReadFile(alternates)
	if err != nil {
		t.Fatalf("alternates should exist: %v", err)
	}
	if !strings.Contains(string(data), filepath.Join(cachePath, "objects")) {
		t.Errorf("alternates should point at cache objects, got %q", data)
	}

	runTestGit(t, dest, "fsck", "--no-dangling")
}

// TestCacheAttach_Idempotent tests attaching twice.
//
// Scenario: User runs `gitcache cache-attach` in an attached repository
// Expected: Reports already attached, no duplicate alternates line.
func TestCacheAttach_Idempotent(t *testing.T) {
	upstreamRoot, _ := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	dest := filepath.Join(resolvePath(t, t.TempDir()), "proj")
	runTestGit(t, "", "clone", url, dest)

	t.Chdir(dest)
	runCommand(t, newAttachCmd(), nil)
	out := runCommand(t, newAttachCmd(), nil)

	if !strings.Contains(out, "Already attached") {
		t.Errorf("expected already attached message, got %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dest, ".git", "objects", "info", "alternates"))
	if err != nil {
		t.Fatal(err)
	}
	var live int
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			live++
		}
	}
	if live != 1 {
		t.Errorf("expected exactly one alternates entry, got %d", live)
	}
}

// TestCacheDetach tests detaching and surviving cache deletion.
//
// Scenario: User runs `gitcache cache-detach`, then the cache root is deleted
// Expected: Metadata is cleared, alternates link is severed, and the
// repository remains fully functional without the cache.
func TestCacheDetach(t *testing.T) {
	upstreamRoot, cacheDir := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	dest := filepath.Join(resolvePath(t, t.TempDir()), "proj")
	runTestGit(t, "", "clone", url, dest)

	t.Chdir(dest)
	runCommand(t, newAttachCmd(), nil)
	out := runCommand(t, newDetachCmd(), nil)

	if !strings.Contains(out, "Detached from cache") {
		t.Errorf("expected detach confirmation, got %q", out)
	}
	if !strings.Contains(out, "Alternates backup:") {
		t.Errorf("expected backup note, got %q", out)
	}

	// Metadata gone
	cmdOut, err := gitConfigMaybe(dest, "gitcache.dir")
	if err == nil && cmdOut != "" {
		t.Errorf("gitcache.dir should be unset, got %q", cmdOut)
	}

	// Self-sufficient without the cache
	if err := os.RemoveAll(cacheDir); err != nil {
		t.Fatal(err)
	}
	runTestGit(t, dest, "fsck", "--no-dangling")
	if got := runTestGit(t, dest, "rev-parse", "HEAD"); got == "" {
		t.Error("HEAD should resolve after cache deletion")
	}
}

// TestCacheDetach_NothingToDetach tests detach in an unattached repository.
//
// Scenario: User runs `gitcache cache-detach` in a plain clone
// Expected: Reports nothing to detach, no error.
func TestCacheDetach_NothingToDetach(t *testing.T) {
	upstreamRoot, _ := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	dest := filepath.Join(resolvePath(t, t.TempDir()), "proj")
	runTestGit(t, "", "clone", url, dest)

	t.Chdir(dest)
	out := runCommand(t, newDetachCmd(), nil)

	if !strings.Contains(out, "Nothing to detach") {
		t.Errorf("expected nothing to detach message, got %q", out)
	}
}

// TestCacheRepair tests re-establishing the cache link.
//
// Scenario: User runs `gitcache cache-repair` in an attached repository
// Expected: The link is rebuilt cleanly: metadata present, exactly one
// alternates entry, repository healthy.
func TestCacheRepair(t *testing.T) {
	upstreamRoot, cacheDir := setupFakeDomain(t)
	url := createUpstream(t, upstreamRoot, "group/proj")

	dest := filepath.Join(resolvePath(t, t.TempDir()), "proj")
	runTestGit(t, "", "clone", url, dest)

	t.Chdir(dest)
	runCommand(t, newAttachCmd(), nil)

	cachePath := filepath.Join(cacheDir, "@"+testDomain)
	out := runCommand(t, newRepairCmd(), nil)
	if !strings.Contains(out, "Reattached to "+cachePath) {
		t.Errorf("expected reattach confirmation, got %q", out)
	}
	if got := runTestGit(t, dest, "config", "gitcache.dir"); got != cachePath {
		t.Errorf("expected dir %q after repair, got %q", cachePath, got)
	}

	data, err := os.ReadFile(filepath.Join(dest, ".git", "objects", "info", "alternates"))
	if err != nil {
		t.Fatal(err)
	}
	var live int
	for _, line := range strings.Split(string(data), "\n") {
		if strings.TrimSpace(line) != "" {
			live++
		}
	}
	if live != 1 {
		t.Errorf("expected exactly one live alternates entry, got %d", live)
	}
	runTestGit(t, dest, "fsck", "--no-dangling")
}
