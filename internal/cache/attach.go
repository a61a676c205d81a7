package cache

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/log"
)

// Attach retrofits caching onto the working copy at repoPath: it initializes
// (or reuses) the shared cache for the copy's origin URL, wires the copy's
// object store to the cache via an alternates line, and garbage-collects the
// copy so objects now borrowed from the cache are shed.
//
// Returns attached=false without mutating anything when the working copy
// already carries cache metadata.
func Attach(ctx context.Context, root, repoPath string) (attached bool, dir string, err error) {
	if ReadMetadata(ctx, repoPath).Cached() {
		return false, "", nil
	}

	origin, err := git.GetOriginURL(ctx, repoPath)
	if err != nil {
		return false, "", err
	}

	h, err := Init(ctx, root, origin, repoPath)
	if err != nil {
		return false, "", err
	}

	gitDir, err := git.GitDir(ctx, repoPath)
	if err != nil {
		return false, "", err
	}
	if err := AppendAlternate(gitDir, filepath.Join(h.Dir, "objects")); err != nil {
		return false, "", err
	}

	if err := git.GC(ctx, repoPath); err != nil {
		return false, "", err
	}
	return true, h.Dir, nil
}

// Detach restores the working copy's independence from the shared cache.
// The copy's objects are repacked into its own store BEFORE the alternates
// line is removed; unlinking first could leave the copy referencing objects
// it no longer has if a step failed mid-way. The alternates line is blanked
// in place (a timestamped backup of the file is kept) and the metadata keys
// are removed.
//
// Returns detached=false without mutating anything when the working copy
// carries no cache metadata.
func Detach(ctx context.Context, repoPath string) (detached bool, backup string, err error) {
	m := ReadMetadata(ctx, repoPath)
	if !m.Cached() {
		return false, "", nil
	}

	if err := git.RepackAll(ctx, repoPath); err != nil {
		return false, "", err
	}

	gitDir, err := git.GitDir(ctx, repoPath)
	if err != nil {
		return false, "", err
	}
	backup, err = BlankAlternate(gitDir, filepath.Join(m.Dir, "objects"))
	if err != nil {
		return false, "", err
	}

	if err := ClearMetadata(ctx, repoPath); err != nil {
		return false, "", err
	}
	return true, backup, nil
}

// Repair re-establishes cache wiring that is suspected stale, e.g. after the
// cache root moved. Pure composition: Detach followed by Attach.
func Repair(ctx context.Context, root, repoPath string) (dir string, err error) {
	if _, _, err := Detach(ctx, repoPath); err != nil {
		return "", fmt.Errorf("detach: %w", err)
	}
	attached, dir, err := Attach(ctx, root, repoPath)
	if err != nil {
		return "", fmt.Errorf("attach: %w", err)
	}
	if !attached {
		// Detach just cleared the metadata, so Attach cannot see the copy
		// as already attached.
		return "", fmt.Errorf("attach: working copy unexpectedly still attached")
	}
	return dir, nil
}

// Prewarm refreshes the shared cache the working copy at repoPath is wired
// to, so a following fetch or pull benefits from objects other working
// copies have accumulated. Fetching appends history, never replaces it; a
// best-effort compaction of the shared store runs afterwards. A working
// copy without cache metadata is skipped silently.
func Prewarm(ctx context.Context, repoPath string) (bool, error) {
	m := ReadMetadata(ctx, repoPath)
	if m.Dir == "" || m.Project == "" {
		return false, nil
	}

	if err := git.Fetch(ctx, m.Dir, m.Project); err != nil {
		return false, err
	}
	if err := git.GCAuto(ctx, m.Dir); err != nil {
		log.FromContext(ctx).Debug("cache gc --auto failed", "dir", m.Dir, "error", err)
	}
	return true, nil
}
