package history

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/sirupsen/logrus"

	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
)

var (
	// logger instance
	log = logrus.New()
)

func SetLogLevel(level logrus.Level) {
	log.SetLevel(level)
}

func GetLogLevel() logrus.Level {
	return log.GetLevel()
}

func SetLogOutput(w io.Writer) {
	log.SetOutput(w)
}

// Entry is one evaluated line. Result is nil when the evaluation failed
// (or produced NaN, which not every database can store).
type Entry struct {
	ID          int64
	Input       string
	Result      *float64
	Error       string
	EvaluatedAt time.Time
}

// Store keeps evaluation history in a SQL database.
type Store struct {
	db     *sql.DB
	driver string
}

// Open connects to the database and brings its schema up to date. driver
// is "postgres" or "sqlite3".
func Open(ctx context.Context, driver string, dsn string) (*Store, error) {
	switch driver {
	case "postgres", "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported history driver %q", driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// every sqlite connection to ":memory:" is a separate database
	if driver == "sqlite3" {
		db.SetMaxOpenConns(1)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if _, err := RunMigrations(ctx, db, driver); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate history database: %w", err)
	}

	log.WithFields(logrus.Fields{
		"driver": driver,
	}).Debug("history store opened")

	return &Store{db: db, driver: driver}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Record(ctx context.Context, e Entry) error {
	if e.EvaluatedAt.IsZero() {
		e.EvaluatedAt = time.Now()
	}

	var result sql.NullFloat64
	if e.Result != nil && !math.IsNaN(*e.Result) {
		result = sql.NullFloat64{Float64: *e.Result, Valid: true}
	}

	_, err := s.db.ExecContext(ctx,
		"INSERT INTO history (input, result, error_message, evaluated_at) VALUES ($1, $2, $3, $4)",
		e.Input, result, e.Error, e.EvaluatedAt.UTC())
	if err != nil {
		return fmt.Errorf("failed to record history: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, input, result, error_message, evaluated_at FROM history ORDER BY id DESC LIMIT $1",
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var result sql.NullFloat64
		if err := rows.Scan(&e.ID, &e.Input, &result, &e.Error, &e.EvaluatedAt); err != nil {
			return nil, fmt.Errorf("failed to read history: %w", err)
		}
		if result.Valid {
			v := result.Float64
			e.Result = &v
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
