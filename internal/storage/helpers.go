package storage

import (
	"database/sql"

	"github.com/mkarpov/precision-landing/internal/track"
)

func closeWithError(cl interface{ Close() error }, err *error) {
	if cErr := cl.Close(); cErr != nil && *err == nil {
		*err = cErr
	}
}

func nullFloat(v *float64) sql.NullFloat64 {
	if v == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *v, Valid: true}
}

func floatPtr(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}

func scanAttempt(scan func(dest ...any) error) (*track.Attempt, error) {
	var a track.Attempt
	var predLat, predLon, errLat, errLon, deltaV, tier, burn sql.NullFloat64

	if err := scan(&a.ID, &a.Timestamp, &a.Index,
		&predLat, &predLon, &errLat, &errLon,
		&deltaV, &tier, &burn, &a.Outcome); err != nil {
		return nil, err
	}

	a.PredictedLat = floatPtr(predLat)
	a.PredictedLon = floatPtr(predLon)
	a.ErrLat = floatPtr(errLat)
	a.ErrLon = floatPtr(errLon)
	a.DeltaV = floatPtr(deltaV)
	a.Tier = floatPtr(tier)
	a.BurnSeconds = floatPtr(burn)

	return &a, nil
}
