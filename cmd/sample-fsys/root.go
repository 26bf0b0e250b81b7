package main

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/brandon-m-wang/samplefsys/internal/config"
	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/session"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/brandon-m-wang/samplefsys/internal/tui"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	rootDir      string
	tagSamples   bool
	verbose      bool
	resetCorrupt bool

	settings *config.Settings
	st       *store.Store
	logger   = logging.Discard()
)

// errReported marks a failure that was already logged.
var errReported = errors.New("reported")

var rootCmd = &cobra.Command{
	Use:   "sample-fsys [file...]",
	Short: "File audio samples into a Type/Subtype/Artist/Song library",
	Long: `sample-fsys files audio samples into <root>/<type>/<subtype>/<artist>/<song>/
with names built from the chosen path.

Without a subcommand it opens the interactive UI. The first argument that
names an existing file is preselected as the sample.`,
	Args:               cobra.ArbitraryArgs,
	SilenceUsage:       true,
	SilenceErrors:      true,
	PersistentPostRunE: teardown,
	RunE:               runTUI,
}

var tuiCmd = &cobra.Command{
	Use:   "tui [file...]",
	Short: "Open the interactive UI",
	Args:  cobra.ArbitraryArgs,
	RunE:  runTUI,
}

func init() {
	// assigned here rather than in the literal: setup refers to rootCmd
	rootCmd.PersistentPreRunE = setup

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&settingsPath, "settings", config.DefaultSettingsPath(), "Path to settings file")
	pf.StringVarP(&rootDir, "root", "r", "", "Library root directory (overrides settings)")
	pf.BoolVar(&tagSamples, "tag", false, "Write ID3 tags into filed .mp3 samples (overrides settings)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "Show verbose output")
	pf.BoolVar(&resetCorrupt, "reset-corrupt", false, "Move an unreadable taxonomy file aside and start empty")

	rootCmd.AddCommand(tuiCmd)
}

func setup(cmd *cobra.Command, _ []string) error {
	var err error
	settings, err = config.Load(settingsPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}
	if rootDir != "" {
		settings.RootDir = rootDir
	}
	if cmd.Flags().Changed("tag") {
		settings.TagSamples = tagSamples
	}

	// the UI owns the terminal; only the log file sees its events
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()
	if cmd == rootCmd || cmd == tuiCmd {
		stdout, stderr = nil, nil
	}
	logger, err = logging.NewLogger(settings.ToLoggingConfig(verbose), stdout, stderr)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}

	st, err = openStore(settings.TaxonomyPath())
	return err
}

func teardown(_ *cobra.Command, _ []string) error {
	return logger.Close()
}

func openStore(path string) (*store.Store, error) {
	s, err := store.Open(path)
	var corrupt *store.CorruptStoreError
	if !errors.As(err, &corrupt) {
		return s, err
	}
	if !resetCorrupt {
		return nil, fmt.Errorf("%w (run with --reset-corrupt to move it aside)", err)
	}

	s, backup, err := store.Reset(path, strconv.FormatInt(time.Now().Unix(), 10))
	if err != nil {
		return nil, fmt.Errorf("reset taxonomy: %w", err)
	}
	logger.Warn("Moved corrupt taxonomy to %s", backup)
	return s, nil
}

func runTUI(_ *cobra.Command, args []string) error {
	return tui.Run(settings, st, tui.Options{
		InitialFile: session.FirstExisting(args),
		Logger:      logger,
		Verbose:     verbose,
	})
}

// newSession builds a session whose events go to the logger.
func newSession() *session.Session {
	return session.New(settings, st, session.Forward(logger))
}
