package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// SQLiteStore is a ChannelStore backed by a local SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log *zap.Logger
	mu  sync.Mutex
}

// NewSQLiteStore creates or opens the channel store database, creating the
// parent directory and schema as needed.
func NewSQLiteStore(dbPath string, log *zap.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path required")
	}
	if log == nil {
		log = zap.NewNop()
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to verify database connection: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS channel_kv (
		channel_id TEXT NOT NULL,
		key        TEXT NOT NULL,
		value      BLOB NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (channel_id, key)
	);
	CREATE INDEX IF NOT EXISTS idx_channel_kv_channel ON channel_kv(channel_id);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	log.Debug("channel store opened", zap.String("path", dbPath))
	return &SQLiteStore{db: db, log: log}, nil
}

// Get returns the value for channel+key, and whether it exists.
func (s *SQLiteStore) Get(ctx context.Context, channelID, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil, false, ErrClosed
	}

	var value []byte
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM channel_kv WHERE channel_id = ? AND key = ?`,
		channelID, key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read %s/%s: %w", channelID, key, err)
	}
	return value, true, nil
}

// Put stores the value for channel+key, replacing any previous value.
func (s *SQLiteStore) Put(ctx context.Context, channelID, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return ErrClosed
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO channel_kv (channel_id, key, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(channel_id, key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP
	`, channelID, key, value)
	if err != nil {
		return fmt.Errorf("failed to write %s/%s: %w", channelID, key, err)
	}

	s.log.Debug("channel state written",
		zap.String("channel", channelID),
		zap.String("key", key),
		zap.Int("bytes", len(value)))
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
