package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	migrationsGlob   = "migrations/*.sql"
	migrationLockKey = int64(20240501)
	migrationTable   = `
CREATE TABLE IF NOT EXISTS schema_migrations (
    version    BIGINT PRIMARY KEY,
    name       TEXT NOT NULL,
    applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
)`
)

var (
	//go:embed migrations/*.sql
	migrationsFS embed.FS

	migrationFilePattern = regexp.MustCompile(`^(\d+)_([a-z0-9_]+)\.sql$`)
)

type migration struct {
	version int64
	name    string
	body    string
}

// Migrate applies every embedded migration that has not been recorded in
// schema_migrations yet. Concurrent callers are serialized with an advisory
// lock, so several replicas can start at once.
func Migrate(ctx context.Context, db *gorm.DB) error {
	migrations, err := loadMigrations(migrationsFS)
	if err != nil {
		return err
	}

	// Advisory locks belong to a session, so everything runs on one connection.
	return db.WithContext(ctx).Connection(func(conn *gorm.DB) error {
		if err := conn.Exec("SELECT pg_advisory_lock(?)", migrationLockKey).Error; err != nil {
			return fmt.Errorf("acquire migration lock: %w", err)
		}
		defer conn.Exec("SELECT pg_advisory_unlock(?)", migrationLockKey)

		if err := conn.Exec(migrationTable).Error; err != nil {
			return fmt.Errorf("ensure migration table: %w", err)
		}

		var applied []int64
		if err := conn.Raw("SELECT version FROM schema_migrations").Scan(&applied).Error; err != nil {
			return fmt.Errorf("query applied migrations: %w", err)
		}
		done := make(map[int64]bool, len(applied))
		for _, v := range applied {
			done[v] = true
		}

		for _, m := range migrations {
			if done[m.version] {
				continue
			}
			if err := applyMigration(conn, m); err != nil {
				return err
			}
		}
		return nil
	})
}

func applyMigration(conn *gorm.DB, m migration) error {
	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec(m.body).Error; err != nil {
			return fmt.Errorf("execute migration %d_%s: %w", m.version, m.name, err)
		}
		if err := tx.Exec(
			"INSERT INTO schema_migrations (version, name) VALUES (?, ?)", m.version, m.name,
		).Error; err != nil {
			return fmt.Errorf("record migration %d_%s: %w", m.version, m.name, err)
		}
		return nil
	})
}

func loadMigrations(fsys fs.FS) ([]migration, error) {
	files, err := fs.Glob(fsys, migrationsGlob)
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("no migration files found")
	}

	seen := make(map[int64]string, len(files))
	migrations := make([]migration, 0, len(files))
	for _, file := range files {
		base := path.Base(file)
		matches := migrationFilePattern.FindStringSubmatch(base)
		if len(matches) != 3 {
			return nil, fmt.Errorf("invalid migration file name: %s", base)
		}

		version, err := strconv.ParseInt(matches[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse migration version from %s: %w", base, err)
		}
		if other, dup := seen[version]; dup {
			return nil, fmt.Errorf("duplicate migration version %d: %s and %s", version, other, base)
		}
		seen[version] = base

		raw, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("read migration file %s: %w", file, err)
		}
		body := strings.TrimSpace(string(raw))
		if body == "" {
			return nil, fmt.Errorf("migration file is empty: %s", base)
		}

		migrations = append(migrations, migration{version: version, name: matches[2], body: body})
	}

	sort.Slice(migrations, func(i, j int) bool { return migrations[i].version < migrations[j].version })
	return migrations, nil
}
