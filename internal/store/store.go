// Package store persists table and formula reports to PostgreSQL. It consumes
// the analysis output; it never feeds back into detection.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/klytics/sheetkit/internal/formula"
	"github.com/klytics/sheetkit/internal/table"
	"github.com/klytics/sheetkit/internal/workbook"
)

const connectAttempts = 3

// Config holds the PostgreSQL connection parameters.
type Config struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
}

// DSN renders the config as a lib/pq connection string.
func (c Config) DSN() string {
	if c.Host == "" {
		c.Host = "localhost"
	}
	if c.Port == 0 {
		c.Port = 5432
	}
	if c.SSLMode == "" {
		c.SSLMode = "disable"
	}
	return fmt.Sprintf("host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		c.Host, c.Port, c.Database, c.User, c.Password, c.SSLMode)
}

// Store wraps a PostgreSQL connection pool.
type Store struct {
	db *sqlx.DB
}

// Open connects to PostgreSQL, retrying with exponential backoff on transient
// connection failures.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	var lastErr error
	for attempt := 0; attempt < connectAttempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(1<<attempt) * time.Second
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}
		db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
		if err == nil {
			db.SetMaxOpenConns(10)
			db.SetMaxIdleConns(2)
			return &Store{db: db}, nil
		}
		lastErr = err
	}
	return nil, fmt.Errorf("could not connect to PostgreSQL after %d attempts: %w", connectAttempts, lastErr)
}

// Close releases the connection pool.
func (s *Store) Close() error { return s.db.Close() }

// EnsureSchema creates the tables if they do not exist.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("schema creation failed: %w", err)
	}
	return nil
}

// CreateIndexes builds query indexes. Call after bulk loading.
func (s *Store) CreateIndexes(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, indexes); err != nil {
		return fmt.Errorf("index creation failed: %w", err)
	}
	return nil
}

// SaveTables stores a table report. When wb is non-nil the regions' actual
// data rows are extracted from it and bulk-inserted alongside the metadata.
func (s *Store) SaveTables(ctx context.Context, fileName string, rep table.Report, wb *workbook.Workbook) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	for sheetName, tables := range rep {
		var snap *workbook.Snapshot
		if wb != nil {
			for _, sh := range wb.Sheets {
				if sh.Name == sheetName {
					snap = sh
					break
				}
			}
		}

		for _, t := range tables.ExplicitTables {
			name := t.TableName
			if name == "" {
				name = t.Name
			}
			if err := s.saveTable(ctx, tx, fileName, sheetName, name, "explicit", t.Range,
				t.Headers, snap, t.R1, t.R2, t.C1); err != nil {
				return err
			}
		}
		for _, t := range tables.ImplicitTables {
			if err := s.saveTable(ctx, tx, fileName, sheetName, t.TableName, "implicit", t.Range,
				t.Header, snap, t.R1, t.R2, t.C1); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit tables: %w", err)
	}
	return nil
}

func (s *Store) saveTable(ctx context.Context, tx *sqlx.Tx, fileName, sheetName, tableName, tableType, rangeStr string,
	headers []string, snap *workbook.Snapshot, r1, r2, c1 int) error {

	var rows []map[string]any
	if snap != nil {
		rows = DataRows(snap, r1, r2, c1, headers)
	}

	headersJSON, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("could not marshal headers: %w", err)
	}

	var metadataID int
	err = tx.QueryRowxContext(ctx, `
		INSERT INTO table_metadata (file_name, sheet_name, table_name, table_type, range, row_count, headers)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		fileName, sheetName, tableName, tableType, rangeStr, len(rows), string(headersJSON),
	).Scan(&metadataID)
	if err != nil {
		return fmt.Errorf("could not insert metadata for %s/%s: %w", sheetName, tableName, err)
	}

	if len(rows) == 0 {
		return nil
	}

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("table_data", "metadata_id", "row_number", "data"))
	if err != nil {
		return fmt.Errorf("could not prepare bulk insert: %w", err)
	}
	for i, row := range rows {
		data, err := json.Marshal(row)
		if err != nil {
			return fmt.Errorf("could not marshal row data: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, metadataID, i+1, string(data)); err != nil {
			stmt.Close()
			return fmt.Errorf("bulk insert failed: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("bulk insert flush failed: %w", err)
	}
	return stmt.Close()
}

// SaveFormulas bulk-inserts a formula report.
func (s *Store) SaveFormulas(ctx context.Context, fileName string, rep formula.Report) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("could not begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, pq.CopyIn("excel_formulas",
		"file_name", "sheet_name", "cell_address", "formula", "readable_formula", "dependencies", "context"))
	if err != nil {
		return fmt.Errorf("could not prepare bulk insert: %w", err)
	}

	for _, rec := range rep {
		deps, err := json.Marshal(rec.Dependencies)
		if err != nil {
			return fmt.Errorf("could not marshal dependencies: %w", err)
		}
		cctx, err := json.Marshal(rec.Context)
		if err != nil {
			return fmt.Errorf("could not marshal context: %w", err)
		}
		if _, err := stmt.ExecContext(ctx, fileName, rec.Context.Sheet, rec.Cell,
			rec.Formula, rec.ReadableFormula, string(deps), string(cctx)); err != nil {
			stmt.Close()
			return fmt.Errorf("bulk insert failed: %w", err)
		}
	}
	if _, err := stmt.ExecContext(ctx); err != nil {
		stmt.Close()
		return fmt.Errorf("bulk insert flush failed: %w", err)
	}
	if err := stmt.Close(); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("could not commit formulas: %w", err)
	}
	return nil
}
