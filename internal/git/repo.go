package git

import (
	"context"
	"fmt"
	"strings"
)

// GetOriginURL gets the origin URL for the repository at repoPath.
func GetOriginURL(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", "origin")
	if err != nil {
		return "", fmt.Errorf("not in a git repository or no origin remote: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// GitDir returns the absolute path of the repository's .git directory.
func GitDir(ctx context.Context, repoPath string) (string, error) {
	output, err := outputGit(ctx, repoPath, "rev-parse", "--absolute-git-dir")
	if err != nil {
		return "", fmt.Errorf("not in a git repository: %v", err)
	}
	return strings.TrimSpace(string(output)), nil
}

// ConfigGet reads a key from the repository's local configuration.
// Returns "" (not an error) when the key is unset.
func ConfigGet(ctx context.Context, repoPath, key string) string {
	output, err := outputGit(ctx, repoPath, "config", "--local", "--get", key)
	if err != nil {
		// git config exits non-zero for unset keys
		return ""
	}
	return strings.TrimSpace(string(output))
}

// ConfigSet writes a key in the repository's local configuration, replacing
// any prior value. Safe to call repeatedly.
func ConfigSet(ctx context.Context, repoPath, key, value string) error {
	if err := runGit(ctx, repoPath, "config", "--local", key, value); err != nil {
		return fmt.Errorf("failed to set %s: %v", key, err)
	}
	return nil
}

// ConfigUnset removes a key from the repository's local configuration.
// Unsetting a key that isn't set is not an error.
func ConfigUnset(ctx context.Context, repoPath, key string) error {
	if err := runGit(ctx, repoPath, "config", "--local", "--unset", key); err != nil {
		// git exits 5 for a missing key; only fail if the key survived
		if ConfigGet(ctx, repoPath, key) != "" {
			return fmt.Errorf("failed to unset %s: %v", key, err)
		}
	}
	return nil
}

// GC runs a full garbage collection pass on the repository.
func GC(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "gc"); err != nil {
		return fmt.Errorf("git gc failed: %v", err)
	}
	return nil
}

// GCAuto runs git's opportunistic garbage collection, which only compacts
// when git itself decides it is worthwhile.
func GCAuto(ctx context.Context, repoPath string) error {
	return runGit(ctx, repoPath, "gc", "--auto")
}

// RepackAll repacks all reachable objects into the repository's own store,
// recomputing deltas and deleting redundant packs and loose objects. After
// this the repository no longer depends on borrowed object directories.
func RepackAll(ctx context.Context, repoPath string) error {
	if err := runGit(ctx, repoPath, "repack", "-a", "-d", "-f"); err != nil {
		return fmt.Errorf("git repack failed: %v", err)
	}
	return nil
}
