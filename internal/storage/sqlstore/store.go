// Package sqlstore provides relational ledger backends (SQLite and MySQL).
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pixil98/go-resin/internal/resin"
	"github.com/pixil98/go-resin/internal/storage"
	_ "modernc.org/sqlite"
)

const tableName = "resin"

type dialect struct {
	name       string
	driver     string
	nameType   string
	amountType string
}

var (
	sqliteDialect = dialect{name: "sqlite", driver: "sqlite", nameType: "TEXT", amountType: "INTEGER"}
	// Player names compare case-sensitively, matching the in-memory ledger.
	mysqlDialect = dialect{name: "mysql", driver: "mysql", nameType: "VARCHAR(255) CHARACTER SET utf8mb4 COLLATE utf8mb4_bin", amountType: "INT"}
)

// sqlitePragmas run on every new connection.
const sqlitePragmas = "_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=synchronous(NORMAL)"

// Store persists the ledger as one row per player.
type Store struct {
	db      *sql.DB
	dialect dialect
}

// OpenSQLite opens (creating if needed) path/data.sqlite.
func OpenSQLite(ctx context.Context, dir string) (*Store, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, fmt.Errorf("sqlite backend: path is required")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, storage.NewBackendError(sqliteDialect.name, "create directory", err)
	}
	dsn := filepath.Join(filepath.Clean(dir), "data.sqlite") + "?" + sqlitePragmas
	return open(ctx, sqliteDialect, dsn)
}

type MySQLConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	Schema   string
}

func (c MySQLConfig) dsn() string {
	cfg := mysql.NewConfig()
	cfg.User = c.Username
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = fmt.Sprintf("%s:%d", c.Host, c.Port)
	cfg.DBName = c.Schema
	return cfg.FormatDSN()
}

// OpenMySQL connects to the configured MySQL schema.
func OpenMySQL(ctx context.Context, c MySQLConfig) (*Store, error) {
	return open(ctx, mysqlDialect, c.dsn())
}

func open(ctx context.Context, d dialect, dsn string) (*Store, error) {
	db, err := sql.Open(d.driver, dsn)
	if err != nil {
		return nil, storage.NewBackendError(d.name, "connect", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, storage.NewBackendError(d.name, "connect", fmt.Errorf("ping: %w", err))
	}

	s := &Store{db: db, dialect: d}
	if err := s.initializeTables(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

func (d dialect) createTable() string {
	cols := []string{fmt.Sprintf("player_name %s PRIMARY KEY", d.nameType)}
	for _, t := range resin.All() {
		cols = append(cols, fmt.Sprintf("%s %s NOT NULL", t.Column(), d.amountType))
	}
	return fmt.Sprintf("CREATE TABLE IF NOT EXISTS %s (%s)", tableName, strings.Join(cols, ", "))
}

func (s *Store) initializeTables(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, s.dialect.createTable()); err != nil {
		return storage.NewBackendError(s.dialect.name, "create table", err)
	}
	return nil
}

func (s *Store) Open(ctx context.Context) (storage.Snapshot, error) {
	types := resin.All()
	cols := []string{"player_name"}
	for _, t := range types {
		cols = append(cols, t.Column())
	}

	rows, err := s.db.QueryContext(ctx, fmt.Sprintf("SELECT %s FROM %s", strings.Join(cols, ", "), tableName))
	if err != nil {
		return nil, storage.NewBackendError(s.dialect.name, "open", fmt.Errorf("query: %w", err))
	}
	defer func() { _ = rows.Close() }()

	snap := storage.Snapshot{}
	for rows.Next() {
		var name string
		amounts := make([]int, len(types))
		dest := []any{&name}
		for i := range amounts {
			dest = append(dest, &amounts[i])
		}
		if err := rows.Scan(dest...); err != nil {
			return nil, storage.NewBackendError(s.dialect.name, "open", fmt.Errorf("scan: %w", err))
		}

		balances := make(resin.Balances, len(types))
		for i, t := range types {
			if amounts[i] < 0 {
				return nil, storage.NewBackendError(s.dialect.name, "open", fmt.Errorf("account %q: negative %s balance %d", name, t, amounts[i]))
			}
			balances[t] = amounts[i]
		}
		snap[name] = balances
	}
	if err := rows.Err(); err != nil {
		return nil, storage.NewBackendError(s.dialect.name, "open", err)
	}

	return snap, nil
}

// Save replaces the table contents inside a single transaction.
func (s *Store) Save(ctx context.Context, snap storage.Snapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return storage.NewBackendError(s.dialect.name, "save", fmt.Errorf("begin: %w", err))
	}

	err = s.replaceAll(ctx, tx, snap)
	if err != nil {
		_ = tx.Rollback()
		return storage.NewBackendError(s.dialect.name, "save", err)
	}

	if err := tx.Commit(); err != nil {
		return storage.NewBackendError(s.dialect.name, "save", fmt.Errorf("commit: %w", err))
	}
	return nil
}

func (s *Store) replaceAll(ctx context.Context, tx *sql.Tx, snap storage.Snapshot) error {
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", tableName)); err != nil {
		return fmt.Errorf("clearing table: %w", err)
	}

	types := resin.All()
	cols := []string{"player_name"}
	marks := []string{"?"}
	for _, t := range types {
		cols = append(cols, t.Column())
		marks = append(marks, "?")
	}

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", tableName, strings.Join(cols, ", "), strings.Join(marks, ", "),
	))
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	names := make([]string, 0, len(snap))
	for name := range snap {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		args := []any{name}
		for _, t := range types {
			args = append(args, snap[name][t])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return fmt.Errorf("inserting %q: %w", name, err)
		}
	}

	return nil
}

// Close closes the database handle.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}
