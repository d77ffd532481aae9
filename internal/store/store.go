package store

import (
	"context"
	"fmt"

	"locparse/internal/locfile"
	"locparse/internal/parser"
	"locparse/internal/textutil"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog/log"
)

// DB is the subset of pgxpool.Pool the store needs (pgxmock satisfies it too).
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

const schemaSQL = `CREATE TABLE IF NOT EXISTS loc_strings (
	hash       TEXT PRIMARY KEY,
	file_path  TEXT NOT NULL,
	format     TEXT NOT NULL,
	name       TEXT NOT NULL,
	value      TEXT NOT NULL,
	comment    TEXT NOT NULL DEFAULT '',
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS loc_strings_file_path_idx ON loc_strings (file_path)`

const upsertSQL = `INSERT INTO loc_strings (hash, file_path, format, name, value, comment, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, now())
ON CONFLICT (hash) DO UPDATE
SET format = EXCLUDED.format, value = EXCLUDED.value, comment = EXCLUDED.comment, updated_at = now()`

const deleteMissingSQL = `DELETE FROM loc_strings WHERE file_path = $1 AND NOT (name = ANY($2))`

const countSQL = `SELECT count(*) FROM loc_strings WHERE file_path = $1`

// Store keeps parsed strings in PostgreSQL, one row per file and string name.
type Store struct {
	db DB
}

// New creates a Store on top of db.
func New(db DB) *Store {
	return &Store{db: db}
}

// EnsureSchema creates the loc_strings table if needed.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("create loc_strings table: %w", err)
	}
	return nil
}

// Upsert writes every string of file and returns the number of rows touched.
func (s *Store) Upsert(ctx context.Context, filePath string, kind parser.Kind, file *locfile.File) (int, error) {
	written := 0
	for _, name := range file.Names {
		str := file.Strings[name]
		tag, err := s.db.Exec(ctx, upsertSQL,
			textutil.Hash(filePath, name),
			filePath,
			kind.String(),
			name,
			str.Value,
			str.Comment,
		)
		if err != nil {
			log.Error().Err(err).Str("file", filePath).Str("string", textutil.Truncate(name, 40)).Msg("Failed to store string")
			return written, fmt.Errorf("upsert string %s: %w", name, err)
		}
		written += int(tag.RowsAffected())
	}
	return written, nil
}

// DeleteMissing removes rows of filePath whose names are not in keep.
func (s *Store) DeleteMissing(ctx context.Context, filePath string, keep []string) (int, error) {
	if keep == nil {
		keep = []string{}
	}
	tag, err := s.db.Exec(ctx, deleteMissingSQL, filePath, keep)
	if err != nil {
		return 0, fmt.Errorf("delete stale strings: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// CountByFile returns the number of stored strings for filePath.
func (s *Store) CountByFile(ctx context.Context, filePath string) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, countSQL, filePath).Scan(&n); err != nil {
		return 0, fmt.Errorf("count strings: %w", err)
	}
	return n, nil
}

// Sync replaces the stored strings of filePath with the contents of file.
func (s *Store) Sync(ctx context.Context, filePath string, kind parser.Kind, file *locfile.File) (written, deleted int, err error) {
	written, err = s.Upsert(ctx, filePath, kind, file)
	if err != nil {
		return written, 0, err
	}
	deleted, err = s.DeleteMissing(ctx, filePath, file.Names)
	if err != nil {
		return written, 0, err
	}
	log.Debug().Str("file", filePath).Int("written", written).Int("deleted", deleted).Msg("Synced file")
	return written, deleted, nil
}
