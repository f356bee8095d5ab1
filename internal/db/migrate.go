package db

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed migrations
var migrationFS embed.FS

const schemaMigrations = `
CREATE TABLE IF NOT EXISTS schema_migrations (
	version  TEXT PRIMARY KEY,
	filename TEXT NOT NULL,
	checksum TEXT NOT NULL
)`

// Migrate applies every embedded migration for the store's dialect that has
// not been recorded yet. A recorded migration whose checksum changed is an error.
func Migrate(ctx context.Context, s *Store) error {
	if _, err := s.ExecContext(ctx, schemaMigrations); err != nil {
		return fmt.Errorf("failed to create schema_migrations table: %w", err)
	}

	dir := path.Join("migrations", string(s.Dialect))
	filenames, err := discoverMigrations(dir)
	if err != nil {
		return err
	}

	for _, filename := range filenames {
		if err := applyMigration(ctx, s, dir, filename); err != nil {
			return err
		}
	}
	return nil
}

func discoverMigrations(dir string) ([]string, error) {
	entries, err := fs.ReadDir(migrationFS, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read migrations directory %s: %w", dir, err)
	}

	var filenames []string
	seen := make(map[string]bool)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".sql") {
			continue
		}
		version, err := extractVersion(entry.Name())
		if err != nil {
			return nil, err
		}
		if seen[version] {
			return nil, fmt.Errorf("duplicate migration version %s", version)
		}
		seen[version] = true
		filenames = append(filenames, entry.Name())
	}

	sort.Strings(filenames)
	return filenames, nil
}

func extractVersion(filename string) (string, error) {
	parts := strings.SplitN(filename, "_", 2)
	if len(parts) < 2 {
		return "", fmt.Errorf("invalid migration filename %s, expected NNN_description.sql", filename)
	}
	return parts[0], nil
}

func applyMigration(ctx context.Context, s *Store, dir, filename string) error {
	body, err := migrationFS.ReadFile(path.Join(dir, filename))
	if err != nil {
		return fmt.Errorf("failed to read migration %s: %w", filename, err)
	}

	version, _ := extractVersion(filename)
	hash := sha256.Sum256(body)
	checksum := hex.EncodeToString(hash[:])

	var existing string
	err = s.GetContext(ctx, &existing, s.Rebind("SELECT checksum FROM schema_migrations WHERE version = ?"), version)
	switch {
	case err == nil:
		if existing != checksum {
			return fmt.Errorf("checksum mismatch for migration %s", filename)
		}
		return nil
	case errors.Is(err, sql.ErrNoRows):
	default:
		return fmt.Errorf("failed to query schema_migrations for %s: %w", filename, err)
	}

	tx, err := s.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for %s: %w", filename, err)
	}
	defer tx.Rollback()

	for _, stmt := range splitStatements(string(body)) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", filename, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		tx.Rebind("INSERT INTO schema_migrations (version, filename, checksum) VALUES (?, ?, ?)"),
		version, filename, checksum,
	); err != nil {
		return fmt.Errorf("failed to record migration %s: %w", filename, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit migration %s: %w", filename, err)
	}
	return nil
}

// splitStatements cuts a migration file on semicolons, keeping CREATE TRIGGER
// bodies whole up to their END. Migration files must not contain semicolons
// inside literals.
func splitStatements(body string) []string {
	var (
		stmts   []string
		pending strings.Builder
	)
	for _, part := range strings.Split(body, ";") {
		pending.WriteString(part)
		s := strings.TrimSpace(pending.String())
		if s == "" {
			pending.Reset()
			continue
		}
		upper := strings.ToUpper(s)
		if strings.HasPrefix(upper, "CREATE TRIGGER") && !strings.HasSuffix(upper, "END") {
			pending.WriteString(";")
			continue
		}
		stmts = append(stmts, s)
		pending.Reset()
	}
	if s := strings.TrimSpace(pending.String()); s != "" {
		stmts = append(stmts, s)
	}
	return stmts
}
