package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/output"
	"github.com/raphi011/gitcache/internal/ui/styles"
)

func newDetachCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-detach",
		Short: "Detach the current repository from its cache",
		Long: `Make the current repository self-sufficient again.

All borrowed objects are copied into the repository's own object store
before the link to the shared cache is severed, so the repository stays
intact even if the cache is deleted afterwards.`,
		Aliases: []string{"cache_detach"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			wd, err := os.Getwd()
			if err != nil {
				return err
			}

			detached, backup, err := cache.Detach(ctx, wd)
			if err != nil {
				return fmt.Errorf("detach: %w", err)
			}
			if !detached {
				out.Println("Nothing to detach")
				return nil
			}
			out.Println(styles.OK("Detached from cache"))
			if backup != "" {
				out.Println(styles.Dim("Alternates backup: " + backup))
			}
			return nil
		},
	}
	return cmd
}
