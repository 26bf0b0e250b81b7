package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/brandon-m-wang/samplefsys/internal/config"
	"github.com/brandon-m-wang/samplefsys/internal/logging"
	"github.com/brandon-m-wang/samplefsys/internal/session"
	"github.com/brandon-m-wang/samplefsys/internal/store"
	"github.com/brandon-m-wang/samplefsys/internal/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	settings, err := config.Load(config.DefaultSettingsPath())
	if err != nil {
		return err
	}

	logger, err := logging.NewLogger(settings.ToLoggingConfig(false), nil, nil)
	if err != nil {
		return err
	}
	defer logger.Close()

	st, err := store.Open(settings.TaxonomyPath())
	var corrupt *store.CorruptStoreError
	if errors.As(err, &corrupt) {
		return fmt.Errorf("%w (run sample-fsys --reset-corrupt to move it aside)", err)
	}
	if err != nil {
		return err
	}

	return tui.Run(settings, st, tui.Options{
		InitialFile: session.FirstExisting(args),
		Logger:      logger,
	})
}
