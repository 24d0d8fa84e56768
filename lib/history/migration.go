package history

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"
	"time"
)

//go:embed migrations
var migrationFiles embed.FS

type Migration struct {
	Name    string
	UpSQL   string
	DownSQL string
}

// Migrations returns the embedded migrations for driver, oldest first.
func Migrations(driver string) ([]*Migration, error) {
	return ReadMigrations(migrationFiles, path.Join("migrations", driver))
}

// ReadMigrations pairs up NAME.up.sql and NAME.down.sql files in dir and
// returns them sorted by name.
func ReadMigrations(fsys fs.FS, dir string) ([]*Migration, error) {
	files, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, err
	}

	migrations := map[string]*Migration{}

	withMigration := func(name string) *Migration {
		m, ok := migrations[name]
		if !ok {
			m = &Migration{
				Name: name,
			}
			migrations[name] = m
		}
		return m
	}

	for _, file := range files {
		if file.IsDir() || !strings.HasSuffix(file.Name(), ".sql") {
			continue
		}

		bytes, err := fs.ReadFile(fsys, path.Join(dir, file.Name()))
		if err != nil {
			return nil, err
		}

		name, isUp := parseMigrationFileName(file.Name())
		migration := withMigration(name)
		if isUp {
			migration.UpSQL = string(bytes)
		} else {
			migration.DownSQL = string(bytes)
		}
	}

	keys := []string{}
	for k := range migrations {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	result := []*Migration{}
	for _, k := range keys {
		result = append(result, migrations[k])
	}
	return result, nil
}

func parseMigrationFileName(fileName string) (string, bool) {
	return getMigrationName(fileName), getUpness(fileName)
}

func getMigrationName(fileName string) string {
	dotParts := strings.Split(fileName, ".")
	return dotParts[0]
}

func getUpness(fileName string) bool {
	return !strings.HasSuffix(fileName, ".down.sql")
}

// RunMigrations applies every embedded migration for driver that db has
// not seen yet. Each one runs in its own transaction.
func RunMigrations(ctx context.Context, db *sql.DB, driver string) (int, error) {
	migrations, err := Migrations(driver)
	if err != nil {
		return 0, err
	}

	if err := requireMigrationsTable(ctx, db); err != nil {
		return 0, err
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	for _, migration := range migrations {
		if applied[migration.Name] {
			continue
		}
		if err := execMigration(ctx, db, migration); err != nil {
			return count, err
		}
		log.WithField("migration", migration.Name).Info("applied migration")
		count++
	}

	return count, nil
}

// RevertMigrations runs the down scripts of the newest steps applied
// migrations, newest first.
func RevertMigrations(ctx context.Context, db *sql.DB, driver string, steps int) (int, error) {
	migrations, err := Migrations(driver)
	if err != nil {
		return 0, err
	}

	if err := requireMigrationsTable(ctx, db); err != nil {
		return 0, err
	}

	applied, err := appliedMigrations(ctx, db)
	if err != nil {
		return 0, err
	}

	count := 0
	for i := len(migrations) - 1; i >= 0 && count < steps; i-- {
		migration := migrations[i]
		if !applied[migration.Name] {
			continue
		}
		if err := revertMigration(ctx, db, migration); err != nil {
			return count, err
		}
		log.WithField("migration", migration.Name).Info("reverted migration")
		count++
	}

	return count, nil
}

func requireMigrationsTable(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, "CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP NOT NULL)")
	if err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}
	return nil
}

func appliedMigrations(ctx context.Context, db *sql.DB) (map[string]bool, error) {
	rows, err := db.QueryContext(ctx, "SELECT version FROM schema_migrations")
	if err != nil {
		return nil, fmt.Errorf("failed to read applied migrations: %w", err)
	}
	defer rows.Close()

	applied := map[string]bool{}
	for rows.Next() {
		var version string
		if err := rows.Scan(&version); err != nil {
			return nil, err
		}
		applied[version] = true
	}
	return applied, rows.Err()
}

func execMigration(ctx context.Context, db *sql.DB, migration *Migration) error {
	return inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.UpSQL); err != nil {
			return fmt.Errorf("migration %s failed: %w", migration.Name, err)
		}
		_, err := tx.ExecContext(ctx,
			"INSERT INTO schema_migrations (version, applied_at) VALUES ($1, $2)",
			migration.Name, time.Now().UTC())
		return err
	})
}

func revertMigration(ctx context.Context, db *sql.DB, migration *Migration) error {
	if migration.DownSQL == "" {
		return fmt.Errorf("migration %s has no down script", migration.Name)
	}
	return inTx(ctx, db, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, migration.DownSQL); err != nil {
			return fmt.Errorf("reverting migration %s failed: %w", migration.Name, err)
		}
		_, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = $1", migration.Name)
		return err
	})
}

func inTx(ctx context.Context, db *sql.DB, fn func(*sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}
