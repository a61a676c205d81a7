package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/raphi011/gitcache/internal/config"
	"github.com/raphi011/gitcache/internal/git"
	"github.com/raphi011/gitcache/internal/log"
	"github.com/raphi011/gitcache/internal/output"
)

var (
	// Global flags
	verbose bool
	quiet   bool

	// Shared state injected into commands
	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "gitcache",
	Short: "Transparent object cache in front of git",
	Long: `gitcache keeps one shared bare repository per hosting domain and wires
working copies to it, so clones and fetches of repositories from the same
domain stop transferring and storing the same objects over and over.

clone, fetch, and pull are intercepted and pre-warm the shared cache before
delegating to git. Every other subcommand is forwarded to git unmodified.`,
	SilenceUsage:               true,
	SilenceErrors:              true,
	SuggestionsMinimumDistance: 2,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Flags are parsed by now; attach the configured logger and
		// printer to the command context.
		ctx := log.WithLogger(cmd.Context(), log.New(os.Stderr, verbose, quiet))
		ctx = output.WithPrinter(ctx, os.Stdout)
		cmd.SetContext(ctx)

		if cmd.Name() == "completion" || cmd.Name() == "__complete" || cmd.Name() == "help" {
			return nil
		}
		return git.CheckGit()
	},
	// Run is not set - shows help when no subcommand provided
}

// exitCodeError carries the exit status of a delegated git invocation. git
// has already reported the failure itself, so no extra message is printed.
type exitCodeError struct {
	code int
}

func (e exitCodeError) Error() string {
	return fmt.Sprintf("git exited with status %d", e.code)
}

// exitCode converts a delegated git result into an error for RunE: nil on
// success, exitCodeError otherwise.
func exitCode(code int, err error) error {
	if err != nil {
		return err
	}
	if code != 0 {
		return exitCodeError{code: code}
	}
	return nil
}

// recognized maps a subcommand name to whether a handler exists for it.
// Dashes and underscores are folded for the lookup; everything unrecognized
// is forwarded to git verbatim.
func recognized(name string) bool {
	switch strings.ReplaceAll(name, "_", "-") {
	case "clone", "fetch", "pull",
		"cache", "cache-attach", "cache-detach", "cache-repair",
		"cache-dir", "cache-list",
		"help", "completion", "__complete", "__completeNoDesc":
		return true
	}
	return false
}

// cacheRoot resolves the configured cache root directory.
func cacheRoot() (string, error) {
	root, err := cfg.CacheRoot()
	if err != nil {
		return "", fmt.Errorf("resolve cache root: %w", err)
	}
	return root, nil
}

// Execute dispatches the invocation: recognized subcommands run through
// cobra, everything else is forwarded to git with identical arguments and
// exit status.
func Execute() {
	loadedCfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	cfg = loadedCfg

	// Create context with signal handling; an interrupted run kills
	// in-flight git children and unwinds through the cleanup scopes.
	ctx, cancel := signal.NotifyContext(context.Background(),
		syscall.SIGHUP, os.Interrupt, syscall.SIGQUIT, syscall.SIGTERM)
	defer cancel()

	// Passthrough: no handler for this subcommand, git gets the original
	// argument list verbatim. Flags (and a bare invocation) go to cobra.
	if len(os.Args) > 1 && !strings.HasPrefix(os.Args[1], "-") && !recognized(os.Args[1]) {
		ctx := log.WithLogger(ctx, log.New(os.Stderr, false, quiet))
		code, err := git.Passthrough(ctx, "", os.Args[1:]...)
		if err != nil {
			fmt.Fprintf(os.Stderr, "gitcache: %v\n", err)
		}
		os.Exit(code)
	}

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		var exitErr exitCodeError
		if errors.As(err, &exitErr) {
			// git reported the failure already
			os.Exit(exitErr.code)
		}
		fmt.Fprintln(os.Stderr, err)
		fmt.Fprintln(os.Stderr)
		fmt.Fprintln(os.Stderr, "Run 'gitcache -h' for help")
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show external commands being executed")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress all log output")
	rootCmd.MarkFlagsMutuallyExclusive("verbose", "quiet")

	// Version flag
	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	rootCmd.AddCommand(newCloneCmd())
	rootCmd.AddCommand(newFetchCmd())
	rootCmd.AddCommand(newPullCmd())
	rootCmd.AddCommand(newAttachCmd())
	rootCmd.AddCommand(newDetachCmd())
	rootCmd.AddCommand(newRepairCmd())
	rootCmd.AddCommand(newCacheCmd())
	rootCmd.AddCommand(newDirCmd())
	rootCmd.AddCommand(newListCmd())
}
