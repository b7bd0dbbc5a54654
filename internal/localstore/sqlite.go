package localstore

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/myrjola/fitplan/internal/errors"
	"github.com/myrjola/fitplan/internal/sqlite"
)

// SQLiteStore persists the profile storage in the local_storage table.
type SQLiteStore struct {
	db *sqlite.Database
}

func NewSQLiteStore(db *sqlite.Database) *SQLiteStore {
	return &SQLiteStore{db: db}
}

func (s *SQLiteStore) Get(ctx context.Context, key string) (string, bool, error) {
	profile, err := profileID(ctx)
	if err != nil {
		return "", false, err
	}
	var value string
	err = s.db.ReadOnly.QueryRowContext(ctx,
		`SELECT value FROM local_storage WHERE profile_id = ? AND key = ?`, profile, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, errors.Wrap(err, "select value", slog.String("key", key))
	}
	return value, true, nil
}

func (s *SQLiteStore) Set(ctx context.Context, key, value string) error {
	profile, err := profileID(ctx)
	if err != nil {
		return err
	}
	if _, err = s.db.ReadWrite.ExecContext(ctx, `
		INSERT INTO local_storage (profile_id, key, value)
		VALUES (?, ?, ?)
		ON CONFLICT (profile_id, key) DO UPDATE SET value      = excluded.value,
		                                            updated_at = strftime('%Y-%m-%dT%H:%M:%fZ')`,
		profile, key, value); err != nil {
		return errors.Wrap(err, "upsert value", slog.String("key", key))
	}
	return nil
}
