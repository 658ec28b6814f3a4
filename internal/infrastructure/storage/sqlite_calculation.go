package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/yourusername/retail-sim-bot/internal/domain/entity"
	"github.com/yourusername/retail-sim-bot/internal/domain/repository"
)

type sqliteCalculationRepository struct {
	db      *sql.DB
	maxSize int
}

// NewSQLiteCalculationRepository calculation history kept in a SQLite file
func NewSQLiteCalculationRepository(dbPath string, maxSize int) (repository.CalculationRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite: %w", err)
	}

	if err := createCalculationSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteCalculationRepository{db: db, maxSize: maxSize}, nil
}

func createCalculationSchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS calculations (
	id TEXT PRIMARY KEY,
	user_id INTEGER NOT NULL,
	location TEXT,
	kind TEXT NOT NULL,
	summary TEXT,
	value REAL,
	defined INTEGER NOT NULL,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_calculations_user_ts ON calculations (user_id, ts);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// Save inserts the calculation and drops everything past maxSize
func (s *sqliteCalculationRepository) Save(ctx context.Context, calc entity.Calculation) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `INSERT OR REPLACE INTO calculations (id, user_id, location, kind, summary, value, defined, ts) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		calc.ID, calc.UserID, calc.Location, calc.Kind, calc.Summary, calc.Value, calc.Defined, calc.Timestamp)
	if err != nil {
		tx.Rollback()
		return err
	}

	if s.maxSize > 0 {
		_, err = tx.ExecContext(ctx, `
DELETE FROM calculations
WHERE id IN (
  SELECT id FROM calculations
  WHERE user_id = ?
  ORDER BY ts DESC, rowid DESC
  LIMIT -1 OFFSET ?
)`, calc.UserID, s.maxSize)
		if err != nil {
			tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

func (s *sqliteCalculationRepository) GetHistory(ctx context.Context, userID int64, limit int) ([]entity.Calculation, error) {
	query := `SELECT id, user_id, location, kind, summary, value, defined, ts FROM calculations WHERE user_id = ? ORDER BY ts DESC, rowid DESC`
	args := []any{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var calcs []entity.Calculation
	for rows.Next() {
		var calc entity.Calculation
		var ts time.Time
		if err := rows.Scan(&calc.ID, &calc.UserID, &calc.Location, &calc.Kind, &calc.Summary, &calc.Value, &calc.Defined, &ts); err != nil {
			return nil, err
		}
		calc.Timestamp = ts
		calcs = append(calcs, calc)
	}

	// oldest first
	for i, j := 0, len(calcs)-1; i < j; i, j = i+1, j-1 {
		calcs[i], calcs[j] = calcs[j], calcs[i]
	}

	return calcs, rows.Err()
}

func (s *sqliteCalculationRepository) ClearHistory(ctx context.Context, userID int64) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM calculations WHERE user_id = ?`, userID)
	return err
}
