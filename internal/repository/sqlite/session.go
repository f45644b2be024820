package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/sakif/prompt-library/internal/apperror"
	"github.com/sakif/prompt-library/internal/model"
	"github.com/sakif/prompt-library/internal/repository"
)

// COMPILE-TIME INTERFACE CHECK:
// If *DB stops implementing repository.SessionRepository, this line stops
// compiling. Much better than finding out when main() wires things together.
var _ repository.SessionRepository = (*DB)(nil)

// Save inserts or replaces a session.
//
// KEY CONCEPTS:
//
// 1. UPSERT (INSERT ... ON CONFLICT DO UPDATE):
//    Sessions are always written whole, so the caller never needs to know
//    whether the row already exists. SQLite resolves that in one statement.
//    created_at is left out of the UPDATE branch so the original value sticks.
//
// 2. JSON IN A TEXT COLUMN:
//    favorites is a small ordered list that is never queried by element.
//    Encoding it as JSON keeps the order and avoids a second table.
func (db *DB) Save(ctx context.Context, rec model.SessionRecord) error {
	favorites := rec.Favorites
	if favorites == nil {
		favorites = []string{}
	}
	encoded, err := json.Marshal(favorites)
	if err != nil {
		return fmt.Errorf("sqlite: encoding favorites for session %s: %w", rec.ID, err)
	}

	now := time.Now()
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = now
	}
	if rec.UpdatedAt.IsZero() {
		rec.UpdatedAt = now
	}

	_, err = db.conn.ExecContext(ctx,
		`INSERT INTO sessions (id, user_id, favorites, dark_mode, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   user_id    = excluded.user_id,
		   favorites  = excluded.favorites,
		   dark_mode  = excluded.dark_mode,
		   updated_at = excluded.updated_at`,
		rec.ID,
		rec.UserID,
		string(encoded),
		rec.DarkMode,
		rec.CreatedAt.UTC(),
		rec.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("sqlite: saving session %s: %w", rec.ID, err)
	}

	return nil
}

// Get retrieves a session by id.
//
// sql.ErrNoRows is translated into apperror.NotFound so the layers above
// can treat "no such session" like any other missing resource.
func (db *DB) Get(ctx context.Context, id string) (*model.SessionRecord, error) {
	var (
		rec       model.SessionRecord
		favorites string
	)

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, user_id, favorites, dark_mode, created_at, updated_at
		 FROM sessions
		 WHERE id = ?`,
		id,
	).Scan(
		&rec.ID,
		&rec.UserID,
		&favorites,
		&rec.DarkMode,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("session", id)
		}
		return nil, fmt.Errorf("sqlite: getting session %s: %w", id, err)
	}

	if err := json.Unmarshal([]byte(favorites), &rec.Favorites); err != nil {
		return nil, fmt.Errorf("sqlite: decoding favorites for session %s: %w", id, err)
	}
	if rec.Favorites == nil {
		rec.Favorites = []string{}
	}

	return &rec, nil
}

// Delete removes a session by id.
//
// RowsAffected tells us whether anything matched. Zero rows means the id was
// never there (or already gone), which we report as NotFound.
func (db *DB) Delete(ctx context.Context, id string) error {
	result, err := db.conn.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("sqlite: deleting session %s: %w", id, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rows == 0 {
		return apperror.NotFound("session", id)
	}

	return nil
}

// DeleteIdle removes every session last touched before the cutoff and
// returns how many were removed.
func (db *DB) DeleteIdle(ctx context.Context, before time.Time) (int64, error) {
	result, err := db.conn.ExecContext(ctx,
		`DELETE FROM sessions WHERE updated_at < ?`,
		before.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("sqlite: deleting idle sessions: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	return n, nil
}
