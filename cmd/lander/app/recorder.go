package app

import (
	"context"
	"log/slog"
	"time"

	"github.com/mkarpov/precision-landing/internal/guidance"
	"github.com/mkarpov/precision-landing/internal/storage"
	"github.com/mkarpov/precision-landing/internal/track"
	"github.com/mkarpov/precision-landing/internal/vehicle"
)

// recorder adapts the guidance observer to the flight recorder. Storage
// failures are logged and absorbed: losing a track point must never abort a
// landing in progress.
type recorder struct {
	ctx       context.Context
	store     storage.Store
	sessionID int64
	logger    *slog.Logger
}

func newRecorder(ctx context.Context, store storage.Store, sessionID int64, logger *slog.Logger) *recorder {
	return &recorder{
		ctx:       ctx,
		store:     store,
		sessionID: sessionID,
		logger:    logger.With(slog.String("component", "recorder")),
	}
}

func (r *recorder) OnState(st vehicle.State) {
	r.storePoint(st, nil)
}

func (r *recorder) OnSample(s guidance.Sample) {
	vAlt := s.VAlt
	r.storePoint(s.First, nil)
	r.storePoint(s.Second, &vAlt)
}

func (r *recorder) OnAttempt(rec guidance.AttemptRecord) {
	a := track.Attempt{
		Timestamp: rec.Timestamp,
		Index:     rec.Index,
		Outcome:   string(rec.Outcome),
	}

	if rec.Outcome != guidance.OutcomeRecovery {
		a.PredictedLat = &rec.PredictedLat
		a.PredictedLon = &rec.PredictedLon
		a.ErrLat = &rec.ErrLat
		a.ErrLon = &rec.ErrLon
	}
	if rec.BurnSeconds > 0 {
		a.DeltaV = &rec.DeltaV
		a.Tier = &rec.Tier
		a.BurnSeconds = &rec.BurnSeconds
	}

	if err := r.store.StoreAttempt(r.ctx, r.sessionID, &a); err != nil {
		r.logger.Error(err.Error())
	}
}

func (r *recorder) storePoint(st vehicle.State, vAlt *float64) {
	p := track.Point{
		Timestamp: time.Now(),
		Latitude:  st.Latitude,
		Longitude: st.Longitude,
		Altitude:  st.Altitude,
		VAlt:      vAlt,
	}

	if err := r.store.StoreTrackPoint(r.ctx, r.sessionID, &p); err != nil {
		r.logger.Error(err.Error())
		return
	}

	r.logger.Debug("track point recorded",
		slog.Float64("lat", st.Latitude),
		slog.Float64("lon", st.Longitude),
		slog.String("altitude", formatAltitude(st.Altitude)))
}
