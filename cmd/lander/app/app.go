package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/mkarpov/precision-landing/internal/guidance"
	"github.com/mkarpov/precision-landing/internal/storage"
	"github.com/mkarpov/precision-landing/internal/vehicle"
	"github.com/mkarpov/precision-landing/internal/vehicle/sim"
)

const storageDir = "data"

// Run wires the vehicle, flight recorder and guidance loop together and
// executes a landing.
func Run(ctx context.Context, config *Config, logger *slog.Logger) error {
	store, err := createStorage(&config.Storage)
	if err != nil {
		return fmt.Errorf("failed to create storage: %w", err)
	}
	defer store.Close()

	veh, vehConfig, err := createVehicle(&config.Vehicle)
	if err != nil {
		return fmt.Errorf("failed to create vehicle: %w", err)
	}

	sessionID, err := store.CreateSession(ctx, config.Vehicle.Type, config.Vehicle.Name, vehConfig)
	if err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	logger.Info("flight session created",
		slog.Int64("sessionID", sessionID),
		slog.String("vehicle", config.Vehicle.Name))

	ctrl, err := guidance.New(veh, config.Guidance.ToGuidance(),
		guidance.WithLogger(logger),
		guidance.WithObserver(newRecorder(ctx, store, sessionID, logger)))
	if err != nil {
		return err
	}

	result, err := ctrl.Run(ctx)
	if err != nil {
		return fmt.Errorf("guidance run failed in phase %s: %w", ctrl.Phase(), err)
	}

	if result.Converged {
		logger.Info("vehicle will land at the target point",
			slog.Int("attempts", result.Attempts),
			slog.String("missLat", fmt.Sprintf("%.3f°", result.ErrLat)),
			slog.String("missLon", fmt.Sprintf("%.3f°", result.ErrLon)))
	} else {
		logger.Warn("manual correction required",
			slog.Int("attempts", result.Attempts),
			slog.String("missLat", fmt.Sprintf("%.3f°", result.ErrLat)),
			slog.String("missLon", fmt.Sprintf("%.3f°", result.ErrLon)))
	}

	logger.Info("final phase", slog.String("phase", result.Phase.String()))
	return nil
}

func createVehicle(config *VehicleConfig) (vehicle.Vehicle, any, error) {
	switch config.Type {
	case VehicleSim:
		cfg := config.Sim
		if cfg == nil {
			cfg = sim.DefaultConfig()
		}
		v, err := sim.New(cfg)
		if err != nil {
			return nil, nil, fmt.Errorf("creating simulated vehicle: %w", err)
		}
		return v, cfg, nil

	default:
		return nil, nil, fmt.Errorf("creating vehicle: unknown type '%s'", config.Type)
	}
}

func createStorage(config *StorageConfig) (storage.Store, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current working directory: %w", err)
	}

	var dbPath string
	if config.DataDirectory != "" {
		dbPath = filepath.Join(wd, config.DataDirectory)
	} else {
		dbPath = filepath.Join(wd, storageDir)
	}

	stat, err := os.Stat(dbPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("storage directory '%s' does not exist: %w", dbPath, err)
		}
		return nil, err
	}
	if !stat.IsDir() {
		return nil, fmt.Errorf("invalid storage directory '%s'", dbPath)
	}

	dbPath = filepath.Join(dbPath, fmt.Sprintf("flight_%s.sqlite", time.Now().UTC().Format("20060102_150405")))
	return storage.NewSqliteStore(dbPath), nil
}

// formatAltitude renders an altitude for narration, e.g. "12.5 km" or "830 m".
func formatAltitude(meters float64) string {
	return humanize.SIWithDigits(meters, 1, "m")
}
