package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/output"
	"github.com/raphi011/gitcache/internal/ui/styles"
)

func newRepairCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-repair",
		Short: "Re-establish the cache link for the current repository",
		Long: `Detach the current repository from its cache and attach it again.

Useful after the cache root moved or the cache metadata went stale. The
repository is made self-sufficient first, so the repair is safe even when
the recorded cache link is wrong.`,
		Aliases: []string{"cache_repair"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			wd, err := os.Getwd()
			if err != nil {
				return err
			}
			root, err := cacheRoot()
			if err != nil {
				return err
			}

			dir, err := cache.Repair(ctx, root, wd)
			if err != nil {
				return fmt.Errorf("repair: %w", err)
			}
			out.Println(styles.OK("Reattached to " + dir))
			return nil
		},
	}
	return cmd
}
