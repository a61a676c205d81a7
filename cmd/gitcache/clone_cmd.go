package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/log"
)

func newCloneCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clone <git-clone-args>...",
		Short: "Clone a repository through the shared cache",
		Long: `Clone a repository, borrowing objects from the shared cache for its
hosting domain.

The cache for the domain is created and fetched on first use, then the real
git clone runs with the cache injected as a reference object store. All
arguments are forwarded to git clone unmodified.`,
		Example: `  gitcache clone https://example.org/group/proj.git
  gitcache clone git@example.org:group/proj.git my-checkout
  gitcache clone --depth 50 https://example.org/group/proj.git`,
		Args:               cobra.MinimumNArgs(1),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runClone(cmd.Context(), args)
		},
	}
	return cmd
}

func runClone(ctx context.Context, args []string) error {
	root, err := cacheRoot()
	if err != nil {
		return err
	}

	h, err := cache.Init(ctx, root, strings.Join(args, " "), "")
	if err != nil {
		return err
	}

	cloneArgs := append([]string{"clone", "--reference", h.Dir}, args...)
	if err := exitCode(git.Passthrough(ctx, "", cloneArgs...)); err != nil {
		return err
	}

	// The working copy only exists now; record its cache metadata.
	dest := cloneDestination(args, h)
	if git.IsInsideRepoPath(ctx, dest) {
		return cache.WriteMetadata(ctx, dest, h.Metadata())
	}
	log.FromContext(ctx).Debug("clone destination not found, metadata skipped", "dest", dest)
	return nil
}

// cloneDestination determines where git clone placed the working copy: an
// explicit destination argument after the URL, or a directory named after
// the project.
func cloneDestination(args []string, h *cache.Handle) string {
	if last := args[len(args)-1]; last != h.URL.Address && !strings.HasPrefix(last, "-") {
		return last
	}
	return h.URL.Project
}
