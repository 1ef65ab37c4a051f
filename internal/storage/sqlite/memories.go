package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sandevgo/memobot/internal/core"
	"github.com/sandevgo/memobot/pkg/log"
)

// MemoriesRepo keeps the memory collection in the memories table.
// Memories are append-only, so Save only inserts rows it has not seen.
type MemoriesRepo struct {
	db *sql.DB
}

func NewMemoriesRepo(db *sql.DB) *MemoriesRepo {
	return &MemoriesRepo{db: db}
}

func (r *MemoriesRepo) Load(ctx context.Context) ([]core.Memory, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, text, created_at FROM memories ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	var memories []core.Memory
	for rows.Next() {
		var m core.Memory
		if err := rows.Scan(&m.ID, &m.Text, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}
		memories = append(memories, m)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	log.FromCtx(ctx).Debug().Int("count", len(memories)).Msg("loaded memories from sqlite")
	return memories, nil
}

func (r *MemoriesRepo) Save(ctx context.Context, memories []core.Memory) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT OR IGNORE INTO memories (id, text, created_at) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare memory insert: %w", err)
	}
	defer stmt.Close()

	for _, m := range memories {
		if _, err := stmt.ExecContext(ctx, m.ID, m.Text, m.CreatedAt.UTC()); err != nil {
			return fmt.Errorf("failed to insert memory %d: %w", m.ID, err)
		}
	}

	return tx.Commit()
}
