// Package losdb persists precomputed line of sight tables in SQLite, keyed by
// the fingerprint of the map they were computed for.
package losdb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/pwiecz/squad_leader/lib"
)

var ErrNotFound = errors.New("line of sight table not found")

type Store struct {
	db *sql.DB
}

// Opens the database at path, creating it if needed, and applies migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := applyMigrations(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Stores the table, replacing any table saved before for the same fingerprint.
func (s *Store) Save(ctx context.Context, table *lib.LOSTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	fingerprint := table.Fingerprint()
	ids := table.HexIDs()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM los_pairs WHERE fingerprint = ?",
		"DELETE FROM los_hexes WHERE fingerprint = ?",
		"DELETE FROM los_tables WHERE fingerprint = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, fingerprint); err != nil {
			return fmt.Errorf("delete old table: %w", err)
		}
	}
	if _, err := tx.ExecContext(ctx,
		"INSERT INTO los_tables (fingerprint, hex_count, created_at) VALUES (?, ?, ?)",
		fingerprint, len(ids), time.Now().UTC().UnixMilli()); err != nil {
		return fmt.Errorf("insert table: %w", err)
	}

	insertHex, err := tx.PrepareContext(ctx,
		"INSERT INTO los_hexes (fingerprint, position, hex_id) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare hex insert: %w", err)
	}
	defer insertHex.Close()
	for i, id := range ids {
		if _, err := insertHex.ExecContext(ctx, fingerprint, i, string(id)); err != nil {
			return fmt.Errorf("insert hex %s: %w", id, err)
		}
	}

	insertPair, err := tx.PrepareContext(ctx,
		"INSERT INTO los_pairs (fingerprint, from_hex, to_hex) VALUES (?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare pair insert: %w", err)
	}
	defer insertPair.Close()
	for _, row := range table.Rows() {
		if !row.Visible || row.From == row.To {
			continue
		}
		if _, err := insertPair.ExecContext(ctx, fingerprint, string(row.From), string(row.To)); err != nil {
			return fmt.Errorf("insert pair %s-%s: %w", row.From, row.To, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit save: %w", err)
	}
	return nil
}

// Returns ErrNotFound when no table is stored for the fingerprint.
func (s *Store) Load(ctx context.Context, fingerprint string) (*lib.LOSTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var count int
	err := s.db.QueryRowContext(ctx,
		"SELECT hex_count FROM los_tables WHERE fingerprint = ?", fingerprint).Scan(&count)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load table: %w", err)
	}

	ids := make([]lib.HexID, 0, count)
	hexRows, err := s.db.QueryContext(ctx,
		"SELECT hex_id FROM los_hexes WHERE fingerprint = ? ORDER BY position", fingerprint)
	if err != nil {
		return nil, fmt.Errorf("load hexes: %w", err)
	}
	defer hexRows.Close()
	for hexRows.Next() {
		var id string
		if err := hexRows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan hex: %w", err)
		}
		ids = append(ids, lib.HexID(id))
	}
	if err := hexRows.Err(); err != nil {
		return nil, fmt.Errorf("load hexes: %w", err)
	}
	if len(ids) != count {
		return nil, fmt.Errorf("table %s has %d hexes, expected %d", fingerprint, len(ids), count)
	}

	var rows []lib.LOSRow
	pairRows, err := s.db.QueryContext(ctx,
		"SELECT from_hex, to_hex FROM los_pairs WHERE fingerprint = ?", fingerprint)
	if err != nil {
		return nil, fmt.Errorf("load pairs: %w", err)
	}
	defer pairRows.Close()
	for pairRows.Next() {
		var from, to string
		if err := pairRows.Scan(&from, &to); err != nil {
			return nil, fmt.Errorf("scan pair: %w", err)
		}
		rows = append(rows, lib.LOSRow{From: lib.HexID(from), To: lib.HexID(to), Visible: true})
	}
	if err := pairRows.Err(); err != nil {
		return nil, fmt.Errorf("load pairs: %w", err)
	}
	return lib.NewLOSTable(fingerprint, ids, rows)
}
