package git

import (
	"context"
	"fmt"
	"strings"
)

// InitBare initializes a bare repository at path.
func InitBare(ctx context.Context, path string) error {
	if err := runGit(ctx, "", "init", "--bare", path); err != nil {
		return fmt.Errorf("failed to init bare repository at %s: %v", path, err)
	}
	return nil
}

// CloneBare performs a bare clone of url into dest.
func CloneBare(ctx context.Context, url, dest string) error {
	if err := runGit(ctx, "", "clone", "--bare", url, dest); err != nil {
		return fmt.Errorf("failed to clone %s: %v", url, err)
	}
	return nil
}

// Remotes returns the names of the repository's configured remotes.
func Remotes(ctx context.Context, repoPath string) ([]string, error) {
	output, err := outputGit(ctx, repoPath, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %v", err)
	}
	var names []string
	for _, line := range strings.Split(string(output), "\n") {
		if name := strings.TrimSpace(line); name != "" {
			names = append(names, name)
		}
	}
	return names, nil
}

// HasRemote reports whether the repository has a remote with exactly the
// given name.
func HasRemote(ctx context.Context, repoPath, name string) (bool, error) {
	names, err := Remotes(ctx, repoPath)
	if err != nil {
		return false, err
	}
	for _, n := range names {
		if n == name {
			return true, nil
		}
	}
	return false, nil
}

// AddRemote registers a named remote pointing at url.
func AddRemote(ctx context.Context, repoPath, name, url string) error {
	if err := runGit(ctx, repoPath, "remote", "add", name, url); err != nil {
		return fmt.Errorf("failed to add remote %s: %v", name, err)
	}
	return nil
}

// SetRemoteURL rewrites the URL of an existing remote.
func SetRemoteURL(ctx context.Context, repoPath, name, url string) error {
	if err := runGit(ctx, repoPath, "remote", "set-url", name, url); err != nil {
		return fmt.Errorf("failed to set url for remote %s: %v", name, err)
	}
	return nil
}

// RemoteURL returns the URL of a named remote.
func RemoteURL(ctx context.Context, repoPath, name string) (string, error) {
	output, err := outputGit(ctx, repoPath, "remote", "get-url", name)
	if err != nil {
		return "", fmt.Errorf("failed to get url for remote %s: %v", name, err)
	}
	return strings.TrimSpace(string(output)), nil
}

// DisableRemoteTags marks a remote so fetches never pull its tags. Tags are
// suppressed cache-wide because unrelated projects sharing one cache may
// reuse tag names.
func DisableRemoteTags(ctx context.Context, repoPath, name string) error {
	if err := runGit(ctx, repoPath, "config", "remote."+name+".tagopt", "--no-tags"); err != nil {
		return fmt.Errorf("failed to disable tags for remote %s: %v", name, err)
	}
	return nil
}

// Fetch fetches a named remote. History is appended, never replaced: no
// pruning flags are passed.
func Fetch(ctx context.Context, repoPath, remote string) error {
	if err := runGit(ctx, repoPath, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch %s: %v", remote, err)
	}
	return nil
}
