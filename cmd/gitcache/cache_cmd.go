package main

import (
	"context"
	"os"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/cache"
	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/output"
)

func newCacheCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache <name> <git-args>...",
		Short: "Run a git command inside a shared cache",
		Long: `Run a git command directly inside the shared cache named by its folder
name under the cache root, e.g. "@example.org".

All arguments after the name are forwarded to git with the cache directory
as working directory. Useful for inspection and maintenance, such as
"gitcache cache @example.org count-objects -vH".`,
		Example: `  gitcache cache @example.org remote -v
  gitcache cache @example.org count-objects -vH
  gitcache cache @example.org fsck`,
		Args:               cobra.MinimumNArgs(2),
		DisableFlagParsing: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := cacheRoot()
			if err != nil {
				return err
			}

			name := args[0]
			dir := cache.DirectPath(root, name)
			if _, err := os.Stat(dir); err != nil {
				reportUnknownCache(ctx, root, name)
				return nil
			}
			return exitCode(git.Passthrough(ctx, dir, args[1:]...))
		},
	}
	return cmd
}

// reportUnknownCache reports a missing cache without failing, suggesting
// close matches among the existing cache names.
func reportUnknownCache(ctx context.Context, root, name string) {
	out := output.FromContext(ctx)
	out.Printf("Unknown cache %q\n", name)

	entries, err := cache.List(ctx, root)
	if err != nil {
		return
	}
	names := make([]string, len(entries))
	for i, e := range entries {
		names[i] = e.Name
	}
	matches := fuzzy.Find(name, names)
	if len(matches) == 0 {
		return
	}
	out.Println("Did you mean:")
	for i, m := range matches {
		if i == 3 {
			break
		}
		out.Println(" ", m.Str)
	}
}
