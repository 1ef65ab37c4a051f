package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

// TurnsRepo stores the conversation transcript of every session.
// It also acts as a presenter so sessions can record turns as they happen.
type TurnsRepo struct {
	db *sql.DB
}

func NewTurnsRepo(db *sql.DB) *TurnsRepo {
	return &TurnsRepo{db: db}
}

func (r *TurnsRepo) AddTurn(ctx context.Context, sessionID string, turn core.Turn) error {
	query := `INSERT INTO turns (session_id, sender, text, created_at) VALUES (?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, sessionID, string(turn.Sender), turn.Text, turn.Timestamp.UTC()); err != nil {
		return fmt.Errorf("failed to insert turn: %w", err)
	}
	return nil
}

func (r *TurnsRepo) GetTurns(ctx context.Context, sessionID string, limit int) ([]core.Turn, error) {
	query := `SELECT sender, text, created_at FROM turns WHERE session_id = ? ORDER BY id DESC LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query turns: %w", err)
	}
	defer rows.Close()

	var turns []core.Turn
	for rows.Next() {
		var t core.Turn
		var sender string
		if err := rows.Scan(&sender, &t.Text, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan turn: %w", err)
		}
		t.Sender = core.Sender(sender)
		turns = append(turns, t)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	// newest first from the query, callers want oldest first
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}

	log.FromCtx(ctx).Debug().Int("count", len(turns)).Str("session_id", sessionID).Msg("loaded turns")
	return turns, nil
}

func (r *TurnsRepo) Present(ctx context.Context, sessionID string, turn core.Turn) error {
	return r.AddTurn(ctx, sessionID, turn)
}
