package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/giturl"
	"github.com/raphi011/gitcache/internal/log"
)

// Handle describes an initialized shared cache for one repository URL.
type Handle struct {
	URL giturl.URL
	Dir string // shared cache directory
}

// Metadata returns the working-copy metadata for this handle.
func (h *Handle) Metadata() Metadata {
	return Metadata{
		Project: h.URL.Project,
		Repo:    h.URL.Key(),
		Dir:     h.Dir,
	}
}

// scope collects cleanup actions that run unless disarmed. Each bootstrap
// operation acquires its own scope, so an interrupted or failed creation
// never leaves a half-initialized cache behind.
type scope struct {
	fns []func()
}

func (s *scope) add(fn func()) {
	s.fns = append(s.fns, fn)
}

func (s *scope) disarm() {
	s.fns = nil
}

// run executes the collected actions in reverse order.
func (s *scope) run() {
	for i := len(s.fns) - 1; i >= 0; i-- {
		s.fns[i]()
	}
}

// Init guarantees that a shared cache directory exists for the URL found in
// rawArgs, that the URL's project is registered as a remote inside it and
// has been fetched at least once, and, when repoPath is non-empty, that
// the working copy at repoPath carries the cache metadata. Safe to run
// repeatedly: an existing cache and project remote are reused, only the
// metadata write is repeated.
//
// Any failure aborts with an error; if the cache directory was created by
// this call, it is removed again so no partial cache is left on disk.
func Init(ctx context.Context, root, rawArgs, repoPath string) (*Handle, error) {
	u, err := giturl.Parse(rawArgs)
	if err != nil {
		return nil, err
	}

	h := &Handle{URL: u, Dir: Dir(root, u.Domain)}
	l := log.FromContext(ctx)

	cleanup := &scope{}
	defer cleanup.run()

	if _, err := os.Stat(h.Dir); os.IsNotExist(err) {
		l.Debug("creating shared cache", "key", u.Key(), "dir", h.Dir)
		if err := os.MkdirAll(h.Dir, 0o755); err != nil {
			return nil, fmt.Errorf("create cache directory: %w", err)
		}
		// Armed until the whole initialization succeeds: a failure during
		// bootstrap of a freshly created cache removes the directory
		// entirely.
		cleanup.add(func() { os.RemoveAll(h.Dir) })

		if err := git.InitBare(ctx, h.Dir); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("stat cache directory: %w", err)
	}

	exists, err := git.HasRemote(ctx, h.Dir, u.Project)
	if err != nil {
		return nil, err
	}
	if !exists {
		if err := bootstrapProject(ctx, h); err != nil {
			return nil, err
		}
	}

	if repoPath != "" {
		if err := WriteMetadata(ctx, repoPath, h.Metadata()); err != nil {
			return nil, err
		}
	}

	cleanup.disarm()
	return h, nil
}

// bootstrapProject registers a project remote inside the shared cache and
// fetches it for the first time. The first fetch runs against a throwaway
// local bare clone, registering the upstream ref state without a second
// network round-trip; the remote URL is then rewritten to the real address
// and fetched once more so the remote's bookkeeping matches the upstream.
func bootstrapProject(ctx context.Context, h *Handle) error {
	u := h.URL
	log.FromContext(ctx).Debug("registering project remote", "project", u.Project, "url", u.Address)

	tmp, err := os.MkdirTemp("", "gitcache-bootstrap-")
	if err != nil {
		return fmt.Errorf("create bootstrap directory: %w", err)
	}
	defer os.RemoveAll(tmp)

	seed := filepath.Join(tmp, u.Project+".git")
	if err := git.CloneBare(ctx, u.Address, seed); err != nil {
		return err
	}
	if err := git.AddRemote(ctx, h.Dir, u.Project, seed); err != nil {
		return err
	}
	if err := git.Fetch(ctx, h.Dir, u.Project); err != nil {
		return err
	}
	if err := git.SetRemoteURL(ctx, h.Dir, u.Project, u.Address); err != nil {
		return err
	}
	if err := git.Fetch(ctx, h.Dir, u.Project); err != nil {
		return err
	}
	return git.DisableRemoteTags(ctx, h.Dir, u.Project)
}
