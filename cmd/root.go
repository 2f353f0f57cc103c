// Package cmd implements the CLI commands for git-finfo
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yejune/git-finfo/internal/config"
	"github.com/yejune/git-finfo/internal/git"
	"github.com/yejune/git-finfo/internal/inspect"
	"github.com/yejune/git-finfo/internal/interactive"
	"github.com/yejune/git-finfo/internal/report"
)

var (
	// Version is set at build time via -ldflags
	Version = "dev"

	verboseCount int
	quietCount   int
	pickFlag     bool
	debugFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "git-finfo [flags] <file>",
	Short: "Report a file's version-control status at a glance",
	Long: `git-finfo summarizes everything git knows about a single file:
whether it is tracked, ignored, untracked or brand new, how big its
staged and unstaged changes are, and (with -v) when it was created,
when it last changed and who touched it most.

A file that is staged but has never been committed only differs from the
last commit, so its change summary appears on the Staged line.

Verbosity:
  -q           classification only
  (default)    classification plus staged/unstaged change summaries
  -v           additionally creation date, last change and top contributor

Examples:
  git finfo main.go
  git finfo -v internal/server.go
  git finfo -i`,
	Version: Version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runRoot,
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	rootCmd.SilenceUsage = true
	rootCmd.Flags().CountVarP(&verboseCount, "verbose", "v", "more detail (repeatable)")
	rootCmd.Flags().CountVarP(&quietCount, "quiet", "q", "less detail (repeatable)")
	rootCmd.Flags().BoolVarP(&pickFlag, "interactive", "i", false, "pick the file from the repository's changed files")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "trace git invocations on stderr")
}

func runRoot(cmd *cobra.Command, args []string) error {
	logger := newLogger(debugFlag)

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	applyColorMode(cfg.Color)

	path, err := resolveTarget(args, logger)
	if err != nil {
		return err
	}
	if err := checkUsable(path); err != nil {
		return err
	}

	verbosity := cfg.BaseVerbosity() + verboseCount - quietCount
	if verbosity < 0 {
		verbosity = 0
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	inspector := &inspect.Inspector{
		Queries:     git.New(filepath.Dir(abs), logger),
		WithHistory: verbosity >= 2,
	}
	result, err := inspector.Inspect(filepath.Base(abs))
	if err != nil {
		return err
	}
	result.Path = path

	report.Render(cmd.OutOrStdout(), result, verbosity)
	return nil
}

// resolveTarget picks the file to inspect: the positional argument, or an
// interactive selection over the repository's changed files with -i.
func resolveTarget(args []string, logger zerolog.Logger) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	if !pickFlag {
		return "", fmt.Errorf("requires a file path (or -i to pick one)")
	}

	client := git.New(".", logger)
	root, err := client.Root()
	if err != nil {
		return "", err
	}
	files, err := client.ChangedFiles()
	if err != nil {
		return "", err
	}
	picked, err := interactive.PickFile(files)
	if err != nil {
		return "", err
	}
	return filepath.Join(root, picked), nil
}

// checkUsable rejects paths the classifier cannot work with.
func checkUsable(path string) error {
	if vol := filepath.VolumeName(path); vol != "" {
		return fmt.Errorf("paths with a volume component are not supported: %s", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("no such file: %s", path)
		}
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("not a regular file: %s", path)
	}
	return nil
}

func newLogger(debug bool) zerolog.Logger {
	if !debug {
		return zerolog.Nop()
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(zerolog.DebugLevel).With().Timestamp().Logger()
}

func applyColorMode(mode string) {
	switch mode {
	case "always":
		color.NoColor = false
	case "never":
		color.NoColor = true
	}
}

// osExit is a variable that can be overridden in tests
var osExit = os.Exit

// Execute runs the root command and exits with code 1 on error
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		osExit(1)
	}
}
