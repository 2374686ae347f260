package db

import (
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"pg-connect/pkg/logger"
)

type migrationFile struct {
	Name string
	SQL  string
}

// Migrate applies every *.sql file of files in lexical order, once.
func Migrate(db *gorm.DB, files fs.FS, log logger.Logger) error {
	if err := ensureSchemaMigrations(db); err != nil {
		return err
	}

	migrations, err := readMigrations(files)
	if err != nil {
		return err
	}

	for _, m := range migrations {
		applied, err := isMigrationApplied(db, m.Name)
		if err != nil {
			return err
		}
		if applied {
			continue
		}

		if err := db.Exec(m.SQL).Error; err != nil {
			return fmt.Errorf("apply migration %s: %w", m.Name, err)
		}

		if err := recordMigration(db, m.Name); err != nil {
			return err
		}
		log.Info("db: migration applied", "file", m.Name)
	}

	return nil
}

// readMigrations lists the top-level *.sql files in lexical order. Blank files
// are skipped.
func readMigrations(files fs.FS) ([]migrationFile, error) {
	entries, err := fs.ReadDir(files, ".")
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasSuffix(name, ".sql") {
			names = append(names, name)
		}
	}
	sort.Strings(names)

	result := make([]migrationFile, 0, len(names))
	for _, name := range names {
		contents, err := fs.ReadFile(files, name)
		if err != nil {
			return nil, err
		}
		sql := strings.TrimSpace(string(contents))
		if sql == "" {
			continue
		}
		result = append(result, migrationFile{Name: name, SQL: sql})
	}
	return result, nil
}

func ensureSchemaMigrations(db *gorm.DB) error {
	return db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			filename TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`).Error
}

func isMigrationApplied(db *gorm.DB, name string) (bool, error) {
	var count int64
	if err := db.Raw("SELECT COUNT(1) FROM schema_migrations WHERE filename = ?", name).Scan(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func recordMigration(db *gorm.DB, name string) error {
	return db.Exec("INSERT INTO schema_migrations (filename, applied_at) VALUES (?, ?)", name, time.Now().UTC()).Error
}
