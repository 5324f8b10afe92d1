package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"github.com/mpetersen/hardback/internal/config"
	"github.com/mpetersen/hardback/internal/googlebooks"
	"github.com/mpetersen/hardback/internal/ui"
)

// Options configure the hardback application.
type Options struct {
	ConfigPath string
	VolumeID   string // open this volume's detail screen directly
}

// Run boots the hardback TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog := newLogger(cfg)
	defer closeLog()

	client, err := googlebooks.NewClient(googlebooks.Options{
		BaseURL:        cfg.BaseURL,
		APIKey:         cfg.APIKey,
		PopularSubject: cfg.PopularSubject,
		Logger:         log,
	})
	if err != nil {
		return fmt.Errorf("init books client: %w", err)
	}

	log.Info().Str("base_url", cfg.BaseURL).Bool("api_key", cfg.APIKey != "").Msg("hardback starting")

	return ui.Run(ui.Options{
		Context:  ctx,
		Finder:   client,
		Logger:   log,
		VolumeID: opts.VolumeID,
	})
}

// newLogger opens the diagnostic log file. The UI owns the terminal, so a
// broken log file degrades to a discard logger rather than failing startup.
func newLogger(cfg config.Config) (zerolog.Logger, func()) {
	file, err := os.OpenFile(config.LogPath(), os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.New(io.Discard), func() {}
	}
	log := zerolog.New(file).Level(cfg.Level()).With().Timestamp().Logger()
	return log, func() { _ = file.Close() }
}
