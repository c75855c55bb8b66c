package store

import (
	"database/sql"
	"errors"
	"image"
	"time"

	"github.com/google/uuid"
)

// EventKind is the transition an event records.
type EventKind string

const (
	// EventBegin is the first point of a session.
	EventBegin EventKind = "begin"
	// EventMove is any later point.
	EventMove EventKind = "move"
)

// Session is a journaled tracking session.
type Session struct {
	ID        string      `json:"id"`
	Tracker   string      `json:"tracker"`
	Initial   image.Point `json:"initial"`
	Last      image.Point `json:"last"`
	Moves     int         `json:"moves"`
	StartedAt time.Time   `json:"started_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// Event is one journaled transition of a session.
type Event struct {
	ID        int64       `json:"id"`
	SessionID string      `json:"session_id"`
	Sequence  int         `json:"sequence"`
	Kind      EventKind   `json:"kind"`
	Point     image.Point `json:"point"`
	CreatedAt time.Time   `json:"created_at"`
}

// ErrNotFound is returned when a session does not exist.
var ErrNotFound = errors.New("session not found")

// SessionRepository records sessions and their events.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Begin starts a session for tracker at p and records its begin event.
func (r *SessionRepository) Begin(tracker string, p image.Point) (*Session, error) {
	now := time.Now()
	sess := &Session{
		ID:        uuid.New().String(),
		Tracker:   tracker,
		Initial:   p,
		Last:      p,
		StartedAt: now,
		UpdatedAt: now,
	}

	tx, err := r.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO sessions (id, tracker, initial_x, initial_y, last_x, last_y, moves, started_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		sess.ID, sess.Tracker, p.X, p.Y, p.X, p.Y, now, now,
	)
	if err != nil {
		return nil, err
	}

	_, err = tx.Exec(
		`INSERT INTO session_events (session_id, sequence, kind, x, y, created_at) VALUES (?, 0, ?, ?, ?, ?)`,
		sess.ID, string(EventBegin), p.X, p.Y, now,
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sess, nil
}

// Move records a move event for session id and updates its last point.
// Returns ErrNotFound if the session does not exist.
func (r *SessionRepository) Move(id string, p image.Point) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var moves int
	err = tx.QueryRow(`SELECT moves FROM sessions WHERE id = ?`, id).Scan(&moves)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}

	now := time.Now()
	moves++

	_, err = tx.Exec(
		`INSERT INTO session_events (session_id, sequence, kind, x, y, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		id, moves, string(EventMove), p.X, p.Y, now,
	)
	if err != nil {
		return err
	}

	_, err = tx.Exec(
		`UPDATE sessions SET last_x = ?, last_y = ?, moves = ?, updated_at = ? WHERE id = ?`,
		p.X, p.Y, moves, now, id,
	)
	if err != nil {
		return err
	}

	return tx.Commit()
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	row := r.db.QueryRow(
		`SELECT id, tracker, initial_x, initial_y, last_x, last_y, moves, started_at, updated_at
		 FROM sessions WHERE id = ?`,
		id,
	)

	sess, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return sess, nil
}

// List returns all sessions, oldest first.
func (r *SessionRepository) List() ([]Session, error) {
	rows, err := r.db.Query(
		`SELECT id, tracker, initial_x, initial_y, last_x, last_y, moves, started_at, updated_at
		 FROM sessions ORDER BY started_at, rowid`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}

// Events returns the events of session id in sequence order.
func (r *SessionRepository) Events(id string) ([]Event, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, sequence, kind, x, y, created_at
		 FROM session_events
		 WHERE session_id = ?
		 ORDER BY sequence`,
		id,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		var kind string
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Sequence, &kind, &e.Point.X, &e.Point.Y, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Kind = EventKind(kind)
		events = append(events, e)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// Delete removes a session and, through the foreign key, its events.
func (r *SessionRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSession(s scanner) (*Session, error) {
	sess := &Session{}
	err := s.Scan(
		&sess.ID, &sess.Tracker,
		&sess.Initial.X, &sess.Initial.Y,
		&sess.Last.X, &sess.Last.Y,
		&sess.Moves, &sess.StartedAt, &sess.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return sess, nil
}
