package storage

import (
	"context"
	"database/sql"

	"github.com/mkarpov/precision-landing/internal/track"
)

// PointIterator streams a session's track points without loading the whole
// track into memory. Usage mirrors sql.Rows: Next, Current, then Error and
// Close when done.
type PointIterator struct {
	rows    *sql.Rows
	current *track.Point
	err     error
}

// Next advances to the next track point. It returns false when the track is
// exhausted, an error occurred, or the context is canceled.
func (it *PointIterator) Next(ctx context.Context) bool {
	if it.err != nil {
		return false
	}
	if it.err = ctx.Err(); it.err != nil {
		return false
	}
	if !it.rows.Next() {
		it.err = it.rows.Err()
		return false
	}

	var p track.Point
	var vAlt sql.NullFloat64
	if it.err = it.rows.Scan(&p.ID, &p.Timestamp, &p.Latitude, &p.Longitude, &p.Altitude, &vAlt); it.err != nil {
		return false
	}
	p.VAlt = floatPtr(vAlt)

	it.current = &p
	return true
}

// Current returns the track point produced by the last successful Next.
func (it *PointIterator) Current() *track.Point {
	return it.current
}

// Error returns the first error encountered during iteration, if any.
func (it *PointIterator) Error() error {
	return it.err
}

// Close releases the underlying rows. Safe to call multiple times.
func (it *PointIterator) Close() error {
	return it.rows.Close()
}
