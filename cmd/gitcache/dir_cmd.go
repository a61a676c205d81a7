package main

import (
	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/log"
	"github.com/raphi011/gitcache/internal/output"
)

func newDirCmd() *cobra.Command {
	var copyPath bool

	cmd := &cobra.Command{
		Use:   "cache-dir",
		Short: "Print the cache root directory",
		Long: `Print the resolved cache root directory.

The root is taken from the GITCACHE_DIR environment variable, then the
cache_dir setting in the config file, then falls back to ~/.gitcache.`,
		Aliases: []string{"cache_dir"},
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			root, err := cacheRoot()
			if err != nil {
				return err
			}
			output.FromContext(ctx).Println(root)

			if copyPath {
				if err := clipboard.WriteAll(root); err != nil {
					log.FromContext(ctx).Printf("Warning: failed to copy to clipboard: %v\n", err)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVarP(&copyPath, "copy", "c", false, "Copy the path to the clipboard")

	return cmd
}
