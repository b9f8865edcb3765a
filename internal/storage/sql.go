package storage

import (
	_ "embed"
)

//go:embed schema.sql
var initSchemaSQL string

const (
	insertSessionSQL = `
INSERT INTO sessions (start_time,
                      vehicle_type,
                      vehicle_id,
                      config)
VALUES (CURRENT_TIMESTAMP, ?, ?, ?)`

	selectSessionSQL = `
SELECT id,
       start_time,
       vehicle_type,
       vehicle_id,
       config
FROM sessions
WHERE id = ?`

	selectSessionsSQL = `
SELECT id,
       start_time,
       vehicle_type,
       vehicle_id,
       config
FROM sessions
ORDER BY start_time`

	insertTrackPointSQL = `
INSERT INTO track_points (session_id,
                          timestamp,
                          latitude,
                          longitude,
                          altitude,
                          v_alt)
VALUES (?, ?, ?, ?, ?, ?)`

	selectTrackPointsSQL = `
SELECT id,
       timestamp,
       latitude,
       longitude,
       altitude,
       v_alt
FROM track_points
WHERE session_id = ?
ORDER BY timestamp, id`

	insertAttemptSQL = `
INSERT INTO attempts (session_id,
                      timestamp,
                      attempt,
                      predicted_lat,
                      predicted_lon,
                      err_lat,
                      err_lon,
                      delta_v,
                      throttle_tier,
                      burn_seconds,
                      outcome)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	selectAttemptsSQL = `
SELECT id,
       timestamp,
       attempt,
       predicted_lat,
       predicted_lon,
       err_lat,
       err_lon,
       delta_v,
       throttle_tier,
       burn_seconds,
       outcome
FROM attempts
WHERE session_id = ?
ORDER BY attempt, id`
)
