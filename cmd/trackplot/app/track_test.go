package app

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mkarpov/precision-landing/internal/storage"
	"github.com/mkarpov/precision-landing/internal/track"
)

func TestLoadTrack(t *testing.T) {
	store := storage.NewSqliteStore(filepath.Join(t.TempDir(), "flight.sqlite"))
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateSession(ctx, "sim", "test-craft", nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	base := time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)
	points := []*track.Point{
		{Timestamp: base, Latitude: -0.5, Longitude: -75.0, Altitude: 12000},
		{Timestamp: base.Add(time.Minute), Latitude: -0.3, Longitude: -74.8, Altitude: 6000},
		{Timestamp: base.Add(2 * time.Minute), Latitude: -0.1, Longitude: -74.6, Altitude: 100},
	}
	for i, p := range points {
		if err = store.StoreTrackPoint(ctx, id, p); err != nil {
			t.Fatalf("failed to store point %d: %v", i, err)
		}
	}

	predLat, predLon := -0.1, -74.6
	if err = store.StoreAttempt(ctx, id, &track.Attempt{
		Timestamp:    base.Add(30 * time.Second),
		Index:        1,
		PredictedLat: &predLat,
		PredictedLon: &predLon,
		Outcome:      "corrected",
	}); err != nil {
		t.Fatalf("failed to store attempt: %v", err)
	}

	data, err := loadTrack(ctx, store, id)
	if err != nil {
		t.Fatalf("failed to load track: %v", err)
	}

	if len(data.Points) != 3 {
		t.Errorf("expected 3 points, got %d", len(data.Points))
	}
	if len(data.Attempts) != 1 {
		t.Errorf("expected 1 attempt, got %d", len(data.Attempts))
	}
	if data.MinLat != -0.5 || data.MaxLat != -0.1 {
		t.Errorf("unexpected latitude bounds: [%v, %v]", data.MinLat, data.MaxLat)
	}
	if data.MinAlt != 100 || data.MaxAlt != 12000 {
		t.Errorf("unexpected altitude bounds: [%v, %v]", data.MinAlt, data.MaxAlt)
	}
	if data.Duration() != 2*time.Minute {
		t.Errorf("expected 2m duration, got %s", data.Duration())
	}
}

func TestLoadTrack_EmptySession(t *testing.T) {
	store := storage.NewSqliteStore(filepath.Join(t.TempDir(), "flight.sqlite"))
	defer store.Close()

	ctx := context.Background()
	id, err := store.CreateSession(ctx, "sim", "test-craft", nil)
	if err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	if _, err = loadTrack(ctx, store, id); err == nil {
		t.Fatal("expected error for a session without track points")
	}
}

func TestTrackDataAltNorm(t *testing.T) {
	d := &TrackData{MinAlt: 1000, MaxAlt: 5000}

	testCases := []struct {
		alt  float64
		want float64
	}{
		{1000, 0},
		{3000, 0.5},
		{5000, 1},
	}

	for _, tc := range testCases {
		if got := d.AltNorm(tc.alt); got != tc.want {
			t.Errorf("AltNorm(%v) = %v, want %v", tc.alt, got, tc.want)
		}
	}

	// A flat track must not divide by zero.
	flat := &TrackData{MinAlt: 100, MaxAlt: 100}
	if got := flat.AltNorm(100); got != 0 {
		t.Errorf("flat track AltNorm = %v, want 0", got)
	}
}

func TestTrackDataExpandBounds(t *testing.T) {
	d := &TrackData{MinLat: -0.5, MaxLat: -0.1, MinLon: -75, MaxLon: -74.6}

	d.expandBounds(-0.7, -74.5)
	if d.MinLat != -0.7 {
		t.Errorf("expected min latitude -0.7, got %v", d.MinLat)
	}
	if d.MaxLon != -74.5 {
		t.Errorf("expected max longitude -74.5, got %v", d.MaxLon)
	}

	// A coordinate already inside leaves the bounds alone.
	d.expandBounds(-0.3, -74.8)
	if d.MinLat != -0.7 || d.MaxLat != -0.1 || d.MinLon != -75 || d.MaxLon != -74.5 {
		t.Errorf("bounds must not shrink, got [%v, %v] x [%v, %v]", d.MinLat, d.MaxLat, d.MinLon, d.MaxLon)
	}
}
