package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/fyx-storefront/internal/model"
)

var _ model.Store = (*KVRepository)(nil)

const (
	getQuery    = `SELECT value FROM storefront_kv WHERE key = $1`
	listQuery   = `SELECT key, value FROM storefront_kv WHERE key LIKE $1 ESCAPE '\'`
	upsertQuery = `INSERT INTO storefront_kv (key, value, updated_at) VALUES ($1, $2, now())
			  ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	deleteQuery = `DELETE FROM storefront_kv WHERE key = $1`
)

// KVRepository stores the storefront's top-level records in one table.
type KVRepository struct {
	db *sql.DB
}

func NewKVRepository(conn *Connection) *KVRepository {
	return NewKVRepositoryWithDB(conn.DB)
}

// NewKVRepositoryWithDB allows injecting any database/sql handle (used in tests).
func NewKVRepositoryWithDB(db *sql.DB) *KVRepository {
	return &KVRepository{db: db}
}

func (r *KVRepository) Get(ctx context.Context, key string) ([]byte, error) {
	var raw []byte
	err := r.db.QueryRowContext(ctx, getQuery, key).Scan(&raw)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return raw, nil
}

func (r *KVRepository) List(ctx context.Context, prefix string) (map[string][]byte, error) {
	rows, err := r.db.QueryContext(ctx, listQuery, escapeLike(prefix)+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", prefix, err)
	}
	defer rows.Close()

	out := make(map[string][]byte)
	for rows.Next() {
		var (
			key string
			raw []byte
		)
		if err := rows.Scan(&key, &raw); err != nil {
			return nil, fmt.Errorf("failed to scan %s row: %w", prefix, err)
		}
		out[key] = raw
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", prefix, err)
	}

	return out, nil
}

// Commit writes the whole changeset in one transaction.
func (r *KVRepository) Commit(ctx context.Context, changes *model.Changeset) (err error) {
	if changes.Empty() {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	for _, m := range changes.Mutations() {
		if m.Delete {
			if _, err = tx.ExecContext(ctx, deleteQuery, m.Key); err != nil {
				return fmt.Errorf("failed to delete %s: %w", m.Key, err)
			}
			continue
		}
		if _, err = tx.ExecContext(ctx, upsertQuery, m.Key, string(m.Value)); err != nil {
			return fmt.Errorf("failed to write %s: %w", m.Key, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
