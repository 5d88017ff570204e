// Package storage persists users, JD configurations and candidates in
// PostgreSQL. JSON-valued columns are stored as text and decoded leniently.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/mohit-756/interview-bot/internal/config"
	"github.com/mohit-756/interview-bot/internal/logger"
)

var (
	// ErrNotFound is returned when a lookup matches no row
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a unique column already holds the value
	ErrDuplicate = errors.New("already exists")
)

const uniqueViolation = "23505"

// DB wraps the connection pool
type DB struct {
	connection *sql.DB
	log        *zap.Logger
}

// NewDB opens and pings a PostgreSQL pool tuned from cfg
func NewDB(ctx context.Context, cfg config.DatabaseConfig, log *zap.Logger) (*DB, error) {
	conn, err := sql.Open("postgres", cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	conn.SetMaxOpenConns(cfg.MaxOpenConns)
	conn.SetMaxIdleConns(cfg.MaxIdleConns)
	conn.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to reach database: %w", err)
	}

	return New(conn, log), nil
}

// New wraps an existing connection
func New(conn *sql.DB, log *zap.Logger) *DB {
	return &DB{connection: conn, log: logger.OrNop(log).Named("storage")}
}

// Close closes the pool
func (db *DB) Close() error {
	return db.connection.Close()
}

var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGSERIAL PRIMARY KEY,
		email TEXT NOT NULL UNIQUE,
		password_hash TEXT NOT NULL,
		role TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS jd_configs (
		id BIGSERIAL PRIMARY KEY,
		title TEXT,
		jd_text TEXT NOT NULL DEFAULT '',
		jd_dict_json TEXT,
		skill_weights_json TEXT,
		min_academic_percent INTEGER,
		qualify_score INTEGER,
		question_count INTEGER,
		project_ratio INTEGER,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS candidates (
		id BIGSERIAL PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		email TEXT NOT NULL UNIQUE,
		resume_path TEXT,
		jd_config_id BIGINT REFERENCES jd_configs(id),
		status TEXT NOT NULL DEFAULT 'new',
		phase1_result_json TEXT,
		interview_date TEXT,
		interview_link TEXT,
		interview_token TEXT UNIQUE,
		questions_json TEXT,
		answers_json TEXT,
		monitoring_json TEXT,
		interview_summary_json TEXT,
		created_at TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
}

// Migrate creates the tables when they do not exist
func (db *DB) Migrate(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := db.connection.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("failed to migrate schema: %w", err)
		}
	}
	db.log.Debug("schema ready")
	return nil
}

// translate maps driver errors onto the package sentinels
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: %s", ErrDuplicate, pqErr.Constraint)
	}
	return err
}

type scanner interface {
	Scan(dest ...any) error
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt64(p *int64) sql.NullInt64 {
	if p == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *p, Valid: true}
}
