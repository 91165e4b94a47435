// Package db is the sqlite document store behind the record source. Every
// record is kept as the raw JSON document it was imported from.
package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/url"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/vizboard/vizboard/consts"
)

func OpenDB(fileName string) (*sql.DB, error) {
	params := url.Values{
		"_journal_mode": []string{"WAL"},
		"_synchronous":  []string{"NORMAL"},
		"cache_size":    []string{"1000000000"},
		"cache":         []string{"shared"},
		"_busy_timeout": []string{"5000"},
		"_txlock":       []string{"immediate"},
	}
	dataSourceName := fmt.Sprintf("file:%s?%s", fileName, params.Encode())
	db, err := sql.Open("sqlite3", dataSourceName)
	if err != nil {
		return nil, err
	}

	createTableQuery := `
CREATE TABLE IF NOT EXISTS records (
	id INTEGER PRIMARY KEY,
	imported DATETIME default CURRENT_TIMESTAMP,
	data JSONB
);
CREATE TABLE IF NOT EXISTS imports (
	file VARCHAR NOT NULL,
	mod_time INTEGER NOT NULL,
	count INTEGER NOT NULL,
	time DATETIME default CURRENT_TIMESTAMP
);
CREATE INDEX IF NOT EXISTS imports_file_time ON imports(file, time);
`
	if _, err = db.Exec(createTableQuery); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	db.SetMaxOpenConns(1)
	return db, nil
}

// ReplaceRecords swaps the whole collection for docs in one transaction, so
// readers see either the old or the new dataset.
func ReplaceRecords(ctx context.Context, db *sql.DB, docs []json.RawMessage, t time.Time) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records`); err != nil {
		return fmt.Errorf("clearing records: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (id, imported, data) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert statement: %w", err)
	}
	defer stmt.Close()

	imported := t.UTC().Format(consts.DateTimeFormat)
	for i, doc := range docs {
		if _, err := stmt.ExecContext(ctx, i+1, imported, string(doc)); err != nil {
			return fmt.Errorf("inserting record %d: %w", i, err)
		}
	}
	return tx.Commit()
}

// SelectRecords streams every stored document in import order. A row that
// cannot be read is yielded as an error and ends the sequence.
func SelectRecords(ctx context.Context, db *sql.DB) (iter.Seq2[json.RawMessage, error], error) {
	rows, err := db.QueryContext(ctx, `SELECT data FROM records ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying records: %w", err)
	}
	return func(yield func(json.RawMessage, error) bool) {
		defer rows.Close()
		for rows.Next() {
			var data string
			if err := rows.Scan(&data); err != nil {
				yield(nil, fmt.Errorf("scanning record: %w", err))
				return
			}
			if !yield(json.RawMessage(data), nil) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(nil, fmt.Errorf("reading records: %w", err))
		}
	}, nil
}

// AllRecords collects SelectRecords into a slice. It returns either every
// document or an error, never a partial collection.
func AllRecords(ctx context.Context, db *sql.DB) ([]json.RawMessage, error) {
	seq, err := SelectRecords(ctx, db)
	if err != nil {
		return nil, err
	}
	docs := []json.RawMessage{}
	for doc, err := range seq {
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

func CountRecords(ctx context.Context, db *sql.DB) (int, error) {
	var n int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM records`).Scan(&n)
	return n, err
}

// Import is the bookkeeping row written after each dataset import.
type Import struct {
	File    string
	ModTime time.Time
	Count   int
	Time    time.Time
}

func SaveImport(ctx context.Context, db *sql.DB, imp Import) error {
	_, err := db.ExecContext(ctx, `INSERT INTO imports (file, mod_time, count, time) VALUES (?, ?, ?, ?)`,
		imp.File, imp.ModTime.UnixNano(), imp.Count, imp.Time.UTC().Format(consts.DateTimeFormat))
	return err
}

// LastImport returns the most recent import of file. ok is false when the
// file was never imported.
func LastImport(ctx context.Context, db *sql.DB, file string) (imp Import, ok bool, err error) {
	var modTime int64
	var t string
	err = db.QueryRowContext(ctx, `
SELECT file, mod_time, count, time FROM imports
WHERE file = ?
ORDER BY time DESC, rowid DESC
LIMIT 1`, file).Scan(&imp.File, &modTime, &imp.Count, &t)
	if errors.Is(err, sql.ErrNoRows) {
		return Import{}, false, nil
	}
	if err != nil {
		return Import{}, false, fmt.Errorf("querying last import: %w", err)
	}
	imp.ModTime = time.Unix(0, modTime)
	if imp.Time, err = parseTime(t); err != nil {
		return Import{}, false, err
	}
	return imp, true, nil
}

// parseTime accepts both the format we write and the RFC 3339 form the
// sqlite driver returns for DATETIME columns.
func parseTime(s string) (time.Time, error) {
	if t, err := time.ParseInLocation(consts.DateTimeFormat, s, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing import time %q: %w", s, err)
	}
	return t, nil
}

// PurgeImports deletes import bookkeeping older than maxAge.
func PurgeImports(ctx context.Context, db *sql.DB, maxAge time.Duration) (int64, error) {
	cutoff := time.Now().Add(-maxAge).UTC().Format(consts.DateTimeFormat)
	res, err := db.ExecContext(ctx, `DELETE FROM imports WHERE time < ?`, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
