package domain

import "context"

// Database defines lifecycle operations for the underlying database.
// Each implementation owns its own migration files and strategy.
type Database interface {
	Migrate(ctx context.Context) error
	Close() error
}

// SnapshotRepository persists named state snapshots. Each store owns a fixed
// key and saves its full serialized state under that key after every write.
// Load returns ErrNotFound when no snapshot exists for the key; any other
// failure wraps ErrPersistenceUnavailable.
type SnapshotRepository interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, data []byte) error
}
