package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/anafit/fitcore/internal/domain"
)

// SnapshotRepository implements domain.SnapshotRepository using SQLite.
// Snapshots are opaque serialized blobs keyed by store name; each save
// replaces the previous snapshot for that key.
type SnapshotRepository struct {
	db *sql.DB
}

// NewSnapshotRepository creates a new SQLite-backed SnapshotRepository.
func NewSnapshotRepository(db *DB) *SnapshotRepository {
	return &SnapshotRepository{db: db.SqlDB}
}

func (r *SnapshotRepository) Load(ctx context.Context, key string) ([]byte, error) {
	var data []byte
	err := r.db.QueryRowContext(ctx,
		"SELECT data FROM snapshots WHERE key = ?", key,
	).Scan(&data)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("load snapshot %s: %w: %v", key, domain.ErrPersistenceUnavailable, err)
	}
	return data, nil
}

func (r *SnapshotRepository) Save(ctx context.Context, key string, data []byte) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO snapshots (key, data, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		key, data, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save snapshot %s: %w: %v", key, domain.ErrPersistenceUnavailable, err)
	}
	return nil
}
