package storage

import (
	"context"

	_ "github.com/mattn/go-sqlite3"
	"github.com/mkarpov/precision-landing/internal/track"
)

// Store is the flight recorder: sessions, position track points and
// correction attempts. Writes are atomic; reads see committed data only.
type Store interface {
	// CreateSession initializes a new flight session and returns its unique
	// identifier. config may be a string, []byte or any JSON-serializable
	// value; it is captured verbatim for later inspection.
	CreateSession(ctx context.Context, vehicleType, vehicleID string, config any) (sessionID int64, err error)

	// Session retrieves a session by its ID.
	Session(ctx context.Context, id int64) (*track.Session, error)

	// Sessions returns all recorded sessions ordered by start time.
	Sessions(ctx context.Context) ([]*track.Session, error)

	// StoreTrackPoint appends a position fix to the session's track.
	StoreTrackPoint(ctx context.Context, sessionID int64, p *track.Point) error

	// StoreAttempt appends a correction attempt record to the session.
	StoreAttempt(ctx context.Context, sessionID int64, a *track.Attempt) error

	// ReadTrack returns an iterator over the session's track points in
	// time order. The iterator must be closed by the caller.
	ReadTrack(ctx context.Context, sessionID int64) (*PointIterator, error)

	// Attempts returns the session's attempt records ordered by index.
	Attempts(ctx context.Context, sessionID int64) ([]*track.Attempt, error)

	// Close releases all database connections. The store cannot be reused
	// afterwards; Close is safe to call multiple times.
	Close() error
}
