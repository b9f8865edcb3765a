package app

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/mkarpov/precision-landing/internal/storage"
	"github.com/mkarpov/precision-landing/internal/track"
)

// TrackData is a fully loaded session track with the aggregates the renderer
// needs to scale the plot.
type TrackData struct {
	Session  *track.Session
	Points   []*track.Point
	Attempts []*track.Attempt

	MinLat, MaxLat float64
	MinLon, MaxLon float64
	MinAlt, MaxAlt float64

	StartTime time.Time
	EndTime   time.Time
}

// Duration returns the time span covered by the track.
func (d *TrackData) Duration() time.Duration {
	return d.EndTime.Sub(d.StartTime)
}

// AltNorm returns alt normalized into [0, 1] over the recorded altitude
// range, 0 when the track is flat.
func (d *TrackData) AltNorm(alt float64) float64 {
	span := d.MaxAlt - d.MinAlt
	if span <= 0 {
		return 0
	}
	return (alt - d.MinAlt) / span
}

// loadTrack reads the session, its track points and attempts from the store
// and computes the plot bounds.
func loadTrack(ctx context.Context, store storage.Store, sessionID int64) (*TrackData, error) {
	session, err := store.Session(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	d := &TrackData{
		Session: session,
		MinLat:  math.Inf(1),
		MaxLat:  math.Inf(-1),
		MinLon:  math.Inf(1),
		MaxLon:  math.Inf(-1),
		MinAlt:  math.Inf(1),
		MaxAlt:  math.Inf(-1),
	}

	iter, err := store.ReadTrack(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to read track: %w", err)
	}
	defer iter.Close()

	for iter.Next(ctx) {
		p := iter.Current()
		d.Points = append(d.Points, p)

		d.MinLat = math.Min(d.MinLat, p.Latitude)
		d.MaxLat = math.Max(d.MaxLat, p.Latitude)
		d.MinLon = math.Min(d.MinLon, p.Longitude)
		d.MaxLon = math.Max(d.MaxLon, p.Longitude)
		d.MinAlt = math.Min(d.MinAlt, p.Altitude)
		d.MaxAlt = math.Max(d.MaxAlt, p.Altitude)

		if d.StartTime.IsZero() || p.Timestamp.Before(d.StartTime) {
			d.StartTime = p.Timestamp
		}
		if p.Timestamp.After(d.EndTime) {
			d.EndTime = p.Timestamp
		}
	}
	if err := iter.Error(); err != nil {
		return nil, fmt.Errorf("failed to read track: %w", err)
	}
	if len(d.Points) == 0 {
		return nil, fmt.Errorf("session %d has no track points", sessionID)
	}

	d.Attempts, err = store.Attempts(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load attempts: %w", err)
	}

	return d, nil
}

// expandBounds grows the lat/lon bounds to include the given coordinate,
// used to keep an off-track target marker inside the plot.
func (d *TrackData) expandBounds(lat, lon float64) {
	d.MinLat = math.Min(d.MinLat, lat)
	d.MaxLat = math.Max(d.MaxLat, lat)
	d.MinLon = math.Min(d.MinLon, lon)
	d.MaxLon = math.Max(d.MaxLon, lon)
}
