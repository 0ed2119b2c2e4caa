package logview

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Mirror receives the flattened text of every appended line.
type Mirror interface {
	Write(text string) error
	String() string
}

// FileMirror appends each record, newline terminated, to a plain file. The
// file is opened per record so it can be rotated or removed underneath.
type FileMirror struct {
	path string
}

func NewFileMirror(path string) *FileMirror {
	return &FileMirror{path: path}
}

func (m *FileMirror) Path() string { return m.path }

func (m *FileMirror) String() string { return "file:" + m.path }

func (m *FileMirror) Write(text string) error {
	if dir := filepath.Dir(m.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(m.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err := f.WriteString(text + "\n"); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

const createLines = `CREATE TABLE IF NOT EXISTS log_lines (
	id   INTEGER PRIMARY KEY AUTOINCREMENT,
	at   DATETIME NOT NULL,
	text TEXT NOT NULL
)`

// SQLiteMirror stores one row per record in a log_lines table.
type SQLiteMirror struct {
	path string
	db   *sql.DB
	now  func() time.Time
}

// OpenSQLiteMirror opens or creates the database at path.
func OpenSQLiteMirror(path string) (*SQLiteMirror, error) {
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1) // sqlite
	db.SetConnMaxLifetime(0)
	if _, err := db.Exec(createLines); err != nil {
		db.Close()
		return nil, fmt.Errorf("create log_lines: %w", err)
	}
	return &SQLiteMirror{path: path, db: db, now: time.Now}, nil
}

func (m *SQLiteMirror) String() string { return "sqlite:" + m.path }

func (m *SQLiteMirror) Write(text string) error {
	_, err := m.db.Exec(`INSERT INTO log_lines (at, text) VALUES (?, ?)`, m.now().UTC(), text)
	return err
}

// ReadAll returns every stored record in insertion order.
func (m *SQLiteMirror) ReadAll(ctx context.Context) ([]string, error) {
	rows, err := m.db.QueryContext(ctx, `SELECT text FROM log_lines ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		out = append(out, text)
	}
	return out, rows.Err()
}

func (m *SQLiteMirror) Close() error { return m.db.Close() }
