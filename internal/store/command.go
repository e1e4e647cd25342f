package store

import (
	"database/sql"
	"time"
)

// CommandRecord is one journalled command.
type CommandRecord struct {
	ID        int64     `json:"id"`
	SessionID string    `json:"session_id"`
	Seq       int64     `json:"seq"`
	Kind      string    `json:"kind"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	CreatedAt time.Time `json:"created_at"`
}

// CommandRepository is the append-only command journal.
type CommandRepository struct {
	db *sql.DB
}

// Commands returns the command repository for this store.
func (s *Store) Commands() *CommandRepository {
	return &CommandRepository{db: s.db}
}

// Append adds c to the journal and fills in its ID and CreatedAt.
func (r *CommandRepository) Append(c *CommandRecord) error {
	c.CreatedAt = time.Now().UTC()
	result, err := r.db.Exec(
		`INSERT INTO commands (session_id, seq, kind, x, y, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.SessionID, c.Seq, c.Kind, c.X, c.Y, c.CreatedAt,
	)
	if err != nil {
		return err
	}
	c.ID, err = result.LastInsertId()
	return err
}

// ListBySession returns a session's commands in emission order, starting
// after sequence number after, at most limit of them.
func (r *CommandRepository) ListBySession(sessionID string, after int64, limit int) ([]*CommandRecord, error) {
	if limit <= 0 {
		limit = 500
	}
	rows, err := r.db.Query(
		`SELECT id, session_id, seq, kind, x, y, created_at FROM commands
		 WHERE session_id = ? AND seq > ? ORDER BY seq LIMIT ?`,
		sessionID, after, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []*CommandRecord
	for rows.Next() {
		c := &CommandRecord{}
		if err := rows.Scan(&c.ID, &c.SessionID, &c.Seq, &c.Kind, &c.X, &c.Y, &c.CreatedAt); err != nil {
			return nil, err
		}
		records = append(records, c)
	}
	return records, rows.Err()
}

// CountBySession returns how many commands a session journalled.
func (r *CommandRepository) CountBySession(sessionID string) (int, error) {
	var n int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM commands WHERE session_id = ?`, sessionID).Scan(&n)
	return n, err
}
