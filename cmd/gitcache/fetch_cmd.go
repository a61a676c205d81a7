package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/log"
)

func newFetchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fetch <git-fetch-args>...",
		Short: "Fetch, refreshing the shared cache first",
		Long: `Refresh the shared cache for the current repository, then run git fetch
with all arguments forwarded unmodified.

When the current repository is not attached to a cache this behaves exactly
like git fetch.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetchPull(cmd.Context(), "fetch", args)
		},
	}
}

func newPullCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pull <git-pull-args>...",
		Short: "Pull, refreshing the shared cache first",
		Long: `Refresh the shared cache for the current repository, then run git pull
with all arguments forwarded unmodified.`,
		Args:               cobra.ArbitraryArgs,
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetchPull(cmd.Context(), "pull", args)
		},
	}
}

func runFetchPull(ctx context.Context, sub string, args []string) error {
	wd, err := os.Getwd()
	if err != nil {
		return err
	}

	// A prewarm failure must not block the real fetch; the working copy's
	// own remote still works without the cache.
	if _, err := cache.Prewarm(ctx, wd); err != nil {
		log.FromContext(ctx).Printf("Warning: cache refresh failed: %v\n", err)
	}

	gitArgs := append([]string{sub}, args...)
	return exitCode(git.Passthrough(ctx, "", gitArgs...))
}
