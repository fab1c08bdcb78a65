package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/Masterminds/semver/v3"
	selfupdate "github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// errNoUpdateRepository is returned when update.repository is unset.
var errNoUpdateRepository = errors.New("no update repository configured: set update.repository to the GitHub \"owner/name\" that publishes botpanel releases")

func newSelfUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "self-update",
		Short: "Update botpanel to the latest release",
		Long: `Checks for the latest release of botpanel on GitHub and, if it is newer
than the running version, downloads it, verifies its checksum and replaces
the current executable. Releases are looked up in the repository named by
update.repository in the configuration.`,
		Args: cobra.NoArgs,
		RunE: runSelfUpdate,
	}
}

func runSelfUpdate(cmd *cobra.Command, args []string) error {
	current := rootCmd.Version
	if current == "" || current == "dev" {
		return errors.New("cannot self-update a development version")
	}
	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return fmt.Errorf("running version %q is not a release version: %w", current, err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	slug := cfg.Update.Repository
	if slug == "" {
		return errNoUpdateRepository
	}

	var out io.Writer = os.Stdout
	ctx := context.Background()
	if cmd != nil {
		out = cmd.OutOrStdout()
		if cmd.Context() != nil {
			ctx = cmd.Context()
		}
	}

	source, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{APIToken: os.Getenv("GITHUB_TOKEN")})
	if err != nil {
		return fmt.Errorf("create github source: %w", err)
	}
	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source:    source,
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
	})
	if err != nil {
		return fmt.Errorf("create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(ctx, selfupdate.ParseSlug(slug))
	if err != nil {
		return fmt.Errorf("error occurred while detecting version: %w", err)
	}
	if !found {
		return fmt.Errorf("latest version for %s/%s could not be found in %s", runtime.GOOS, runtime.GOARCH, slug)
	}

	latestVersion, err := semver.NewVersion(latest.Version())
	if err != nil {
		return fmt.Errorf("latest release version %q is invalid: %w", latest.Version(), err)
	}
	if !latestVersion.GreaterThan(currentVersion) {
		fmt.Fprintf(out, "Current version (%s) is the latest\n", currentVersion)
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return errors.New("could not locate executable path")
	}
	if err := updater.UpdateTo(ctx, latest, exe); err != nil {
		return fmt.Errorf("error occurred while updating binary: %w", err)
	}
	fmt.Fprintf(out, "Successfully updated to version %s\n", latest.Version())
	return nil
}
