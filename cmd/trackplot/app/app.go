package app

import (
	"context"
	"fmt"
	"image/jpeg"
	"image/png"
	"log/slog"
	"os"
	"time"

	"github.com/mkarpov/precision-landing/internal/storage"
)

func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	if _, err := os.Stat(config.DBPath); err != nil && os.IsNotExist(err) {
		return fmt.Errorf("database file '%s' does not exist: %w", config.DBPath, err)
	}

	store := storage.NewSqliteStore(config.DBPath)
	defer store.Close()

	return plotTrack(ctx, store, config, logger)
}

func plotTrack(ctx context.Context, store *storage.SqliteStore, config *Config, logger *slog.Logger) error {
	logger.Info("loading flight track", slog.Int64("sessionID", config.SessionID))

	data, err := loadTrack(ctx, store, config.SessionID)
	if err != nil {
		return err
	}

	logger.Info("finished reading track",
		slog.Group("stats",
			slog.Int("points", len(data.Points)),
			slog.Int("attempts", len(data.Attempts)),
			slog.String("minTimestamp", data.StartTime.Local().Format(time.DateTime)),
			slog.String("maxTimestamp", data.EndTime.Local().Format(time.DateTime)),
			slog.String("minAlt", formatAltitude(data.MinAlt)),
			slog.String("maxAlt", formatAltitude(data.MaxAlt)),
		))

	renderer, err := NewTrackRenderer(RenderConfig{
		Theme:     config.Theme,
		FontPath:  config.FontPath,
		TargetLat: config.TargetLat,
		TargetLon: config.TargetLon,
	})
	if err != nil {
		return fmt.Errorf("creating track renderer: %w", err)
	}

	logger.Info("rendering track",
		slog.Group("image",
			slog.String("destination", config.OutputFile),
			slog.String("format", string(config.Format)),
			slog.String("theme", string(config.Theme)),
		))

	img, err := renderer.Render(data)
	if err != nil {
		return fmt.Errorf("rendering track: %w", err)
	}

	out, err := os.Create(config.OutputFile)
	if err != nil {
		return err
	}
	defer out.Close()

	switch config.Format {
	case ImagePNG:
		err = png.Encode(out, img)

	case ImageJPEG:
		err = jpeg.Encode(out, img, &jpeg.Options{
			Quality: 98,
		})
	}
	return err
}
