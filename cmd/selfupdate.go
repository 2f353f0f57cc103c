package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yejune/git-finfo/internal/update"
)

var selfupdateCmd = &cobra.Command{
	Use:   "selfupdate",
	Short: "Update git-finfo to the latest version",
	Long: `Check GitHub releases for a newer version of git-finfo and install
it in place of the current executable.

Examples:
  git-finfo selfupdate`,
	RunE: runSelfupdate,
}

func init() {
	rootCmd.AddCommand(selfupdateCmd)
}

// updaterFactory allows dependency injection for testing
var updaterFactory = func(version string) *update.Updater {
	return update.NewUpdater(version)
}

func runSelfupdate(cmd *cobra.Command, args []string) error {
	fmt.Fprintf(cmd.OutOrStdout(), "Current version: %s\n", Version)
	fmt.Fprintln(cmd.OutOrStdout(), "Checking for updates...")

	updater := updaterFactory(Version)

	release, hasUpdate, err := updater.CheckForUpdate()
	if err != nil {
		return fmt.Errorf("failed to check for updates: %w", err)
	}

	if !hasUpdate {
		fmt.Fprintln(cmd.OutOrStdout(), "Already up to date.")
		return nil
	}

	fmt.Fprintf(cmd.OutOrStdout(), "New version available: %s\n", release.TagName)
	fmt.Fprintln(cmd.OutOrStdout(), "Downloading...")

	if err := updater.Update(release); err != nil {
		return fmt.Errorf("failed to update: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Successfully updated to %s\n", release.TagName)
	return nil
}
