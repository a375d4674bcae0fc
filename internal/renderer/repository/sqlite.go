package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/v0idhrt/boxdiagram/internal/renderer/models"
)

var ErrNotFound = errors.New("not found")

// ============================================================
// SQLite Repository
// ============================================================

type Repository struct {
	db *sql.DB
}

func New(db *sql.DB) *Repository {
	return &Repository{db: db}
}

// Init applies the schema migration.
func (r *Repository) Init(ctx context.Context, migrationsPath string) error {
	if err := r.runMigrations(ctx, migrationsPath); err != nil {
		return fmt.Errorf("migrations: %w", err)
	}
	return nil
}

func (r *Repository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// Insert records a render. An empty CreatedAt is filled by the database.
func (r *Repository) Insert(ctx context.Context, rec *models.Render) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO renders (id, diagram, format, path, size_bytes, dpi)
        VALUES (?, ?, ?, ?, ?, ?)
    `, rec.ID, rec.Diagram, rec.Format, rec.Path, rec.SizeBytes, rec.DPI)
	if err != nil {
		return fmt.Errorf("insert render: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*models.Render, error) {
	row := r.db.QueryRowContext(ctx, `
        SELECT id, diagram, format, path, size_bytes, dpi, created_at
        FROM renders
        WHERE id = ?
    `, id)

	rec, err := scanRender(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("render %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return rec, nil
}

// ListRecent returns up to limit renders, newest first.
func (r *Repository) ListRecent(ctx context.Context, limit int) ([]models.Render, error) {
	rows, err := r.db.QueryContext(ctx, `
        SELECT id, diagram, format, path, size_bytes, dpi, created_at
        FROM renders
        ORDER BY created_at DESC, rowid DESC
        LIMIT ?
    `, limit)
	if err != nil {
		return nil, fmt.Errorf("list renders: %w", err)
	}
	defer rows.Close()

	out := []models.Render{}
	for rows.Next() {
		rec, err := scanRender(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRender(s scanner) (*models.Render, error) {
	var rec models.Render
	if err := s.Scan(&rec.ID, &rec.Diagram, &rec.Format, &rec.Path, &rec.SizeBytes, &rec.DPI, &rec.CreatedAt); err != nil {
		return nil, err
	}
	return &rec, nil
}

// ============================================================
// Migrations
// ============================================================

func (r *Repository) runMigrations(ctx context.Context, migrationsPath string) error {
	data, err := os.ReadFile(migrationsPath)
	if err != nil {
		return fmt.Errorf("read migration: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, string(data)); err != nil {
		return fmt.Errorf("apply migration: %w", err)
	}
	return nil
}

// OpenSQLite opens the sqlite database at dbPath, creating its directory.
func OpenSQLite(dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir db dir: %w", err)
	}

	dsn := fmt.Sprintf("file:%s?cache=shared&mode=rwc&_pragma=busy_timeout=5000", dbPath)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}
