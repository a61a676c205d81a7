package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/output"
	"github.com/raphi011/gitcache/internal/ui/styles"
)

func newAttachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-attach",
		Short: "Attach the current repository to its domain cache",
		Long: `Attach the current repository to the shared cache for its origin domain.

The cache is created and fetched if it does not exist yet, the repository's
object store is wired to borrow from it, and duplicate local objects are
pruned. Running it on an already attached repository is a no-op.`,
		Aliases: []string{"cache_attach"},
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

			attached, dir, err := cache.Attach(ctx, root, wd)
			if err != nil {
				return fmt.Errorf("attach: %w", err)
			}
			if !attached {
				out.Println("Already attached to", dir)
				return nil
			}
			out.Println(styles.OK("Attached to " + dir))
			return nil
		},
	}
	return cmd
}
