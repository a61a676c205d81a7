package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/output"
	"github.com/raphi011/gitcache/internal/ui/styles"
)

func newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache-list",
		Short: "List shared caches and their projects",
		Long: `List the shared cache directories under the cache root together with the
projects registered in each.`,
		Aliases: []string{"cache_list"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			out := output.FromContext(ctx)

			root, err := cacheRoot()
			if err != nil {
				return err
			}

			entries, err := cache.List(ctx, root)
			if err != nil {
				return err
			}
			if len(entries) == 0 {
				out.Println("No caches found in", root)
				return nil
			}

			for _, e := range entries {
				out.Println(styles.Bold.Render(e.Name))
				if len(e.Projects) == 0 {
					out.Println(" ", styles.Dim("no projects"))
					continue
				}
				out.Println(" ", strings.Join(e.Projects, ", "))
			}
			return nil
		},
	}
	return cmd
}
