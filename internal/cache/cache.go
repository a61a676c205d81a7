package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/raphi011/gitcache/internal/git"
)

// Local git config keys carried by participating working copies.
const (
	keyProject = "gitcache.project"
	keyRepo    = "gitcache.repo"
	keyDir     = "gitcache.dir"
)

// Key returns the cache key addressing a hosting domain. Stable for the
// lifetime of the cache: case-sensitive, no normalization.
func Key(domain string) string {
	return "@" + domain
}

// Dir returns the shared cache directory for a domain under root.
func Dir(root, domain string) string {
	return filepath.Join(root, Key(domain))
}

// DirectPath resolves a cache directory by raw name, bypassing domain
// addressing. Escape hatch for operating on a cache by its folder name.
func DirectPath(root, name string) string {
	return filepath.Join(root, name)
}

// Metadata is the cache state recorded in a working copy's local git config.
type Metadata struct {
	Project string // project name, also the remote name inside the cache
	Repo    string // cache key, "@<domain>"
	Dir     string // shared cache directory path
}

// Cached reports whether the working copy participates in caching.
// Defined purely as "cache directory key is non-empty".
func (m Metadata) Cached() bool {
	return m.Dir != ""
}

// ReadMetadata reads the cache metadata of the working copy at repoPath.
// Unset keys read as empty values, not errors.
func ReadMetadata(ctx context.Context, repoPath string) Metadata {
	return Metadata{
		Project: git.ConfigGet(ctx, repoPath, keyProject),
		Repo:    git.ConfigGet(ctx, repoPath, keyRepo),
		Dir:     git.ConfigGet(ctx, repoPath, keyDir),
	}
}

// WriteMetadata records the cache metadata in the working copy at repoPath,
// replacing any prior values. Safe to call repeatedly.
func WriteMetadata(ctx context.Context, repoPath string, m Metadata) error {
	for _, kv := range []struct{ key, value string }{
		{keyProject, m.Project},
		{keyRepo, m.Repo},
		{keyDir, m.Dir},
	} {
		if err := git.ConfigSet(ctx, repoPath, kv.key, kv.value); err != nil {
			return err
		}
	}
	return nil
}

// ClearMetadata removes all cache metadata from the working copy at repoPath.
func ClearMetadata(ctx context.Context, repoPath string) error {
	for _, key := range []string{keyProject, keyRepo, keyDir} {
		if err := git.ConfigUnset(ctx, repoPath, key); err != nil {
			return err
		}
	}
	return nil
}

// Entry describes one shared cache directory under the cache root.
type Entry struct {
	Name     string   // folder name, normally "@<domain>"
	Path     string   // absolute directory path
	Projects []string // registered project remotes
}

// List enumerates the shared cache directories under root with their
// registered projects. A missing root yields an empty list.
func List(ctx context.Context, root string) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cache root: %w", err)
	}

	var entries []Entry
	for _, d := range dirents {
		if !d.IsDir() {
			continue
		}
		path := filepath.Join(root, d.Name())
		projects, err := git.Remotes(ctx, path)
		if err != nil {
			// Not a repository; skip stray directories
			continue
		}
		sort.Strings(projects)
		entries = append(entries, Entry{Name: d.Name(), Path: path, Projects: projects})
	}
	return entries, nil
}
