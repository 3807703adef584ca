package order

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// SQLiteArchive indexes orders in SQLite. Items are stored as JSON; item
// names are also kept in their own table for search.
type SQLiteArchive struct {
	db     *sql.DB
	mu     sync.RWMutex
	closed bool
}

// NewSQLiteArchive opens an archive at dsn. Use MemoryDSN for a
// process-local index.
func NewSQLiteArchive(dsn string) (*SQLiteArchive, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dsn == MemoryDSN {
		// Every connection to :memory: is a separate database.
		db.SetMaxOpenConns(1)
	} else if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	for _, stmt := range []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id INTEGER PRIMARY KEY,
			customer TEXT NOT NULL,
			status TEXT NOT NULL,
			total REAL NOT NULL,
			timestamp TEXT NOT NULL,
			items BLOB NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS order_items (
			order_id INTEGER NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			name TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_order_items_order_id ON order_items(order_id)`,
	} {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &SQLiteArchive{db: db}, nil
}

// Put implements Archive.
func (a *SQLiteArchive) Put(rec Record) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}

	items, err := json.Marshal(rec.Items)
	if err != nil {
		return fmt.Errorf("encode items: %w", err)
	}

	tx, err := a.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO orders (id, customer, status, total, timestamp, items)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			customer = excluded.customer,
			status = excluded.status,
			total = excluded.total,
			timestamp = excluded.timestamp,
			items = excluded.items
	`, rec.ID, rec.Customer, string(rec.Status), rec.Total,
		rec.Timestamp.UTC().Format(timeLayout), items); err != nil {
		return fmt.Errorf("save order: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM order_items WHERE order_id = ?`, rec.ID); err != nil {
		return fmt.Errorf("reset order items: %w", err)
	}
	for _, l := range rec.Items {
		if _, err := tx.Exec(`INSERT INTO order_items (order_id, name) VALUES (?, ?)`, rec.ID, l.Name); err != nil {
			return fmt.Errorf("save order item: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// Get implements Archive.
func (a *SQLiteArchive) Get(id int64) (Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return Record{}, ErrArchiveClosed
	}

	row := a.db.QueryRow(`
		SELECT id, customer, status, total, timestamp, items
		FROM orders WHERE id = ?
	`, id)
	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Record{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return Record{}, fmt.Errorf("load order: %w", err)
	}
	return rec, nil
}

// List implements Archive.
func (a *SQLiteArchive) List() ([]Record, error) {
	return a.Search("")
}

// UpdateStatus implements Archive.
func (a *SQLiteArchive) UpdateStatus(id int64, status Status) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}

	res, err := a.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// Search implements Archive. LIKE is case-insensitive for ASCII in SQLite;
// wildcard characters in query are matched literally.
func (a *SQLiteArchive) Search(query string) ([]Record, error) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return nil, ErrArchiveClosed
	}

	pattern := "%" + escapeLike(strings.TrimSpace(query)) + "%"
	rows, err := a.db.Query(`
		SELECT id, customer, status, total, timestamp, items
		FROM orders o
		WHERE CAST(o.id AS TEXT) LIKE ? ESCAPE '\'
		   OR o.customer LIKE ? ESCAPE '\'
		   OR EXISTS (
				SELECT 1 FROM order_items i
				WHERE i.order_id = o.id AND i.name LIKE ? ESCAPE '\'
		   )
		ORDER BY o.timestamp DESC, o.id DESC
	`, pattern, pattern, pattern)
	if err != nil {
		return nil, fmt.Errorf("search orders: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}
	return out, nil
}

// Reset implements Archive.
func (a *SQLiteArchive) Reset() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return ErrArchiveClosed
	}
	if _, err := a.db.Exec(`DELETE FROM order_items`); err != nil {
		return fmt.Errorf("reset order items: %w", err)
	}
	if _, err := a.db.Exec(`DELETE FROM orders`); err != nil {
		return fmt.Errorf("reset orders: %w", err)
	}
	return nil
}

// Close implements Archive.
func (a *SQLiteArchive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	return a.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(s scanner) (Record, error) {
	var (
		rec       Record
		status    string
		timestamp string
		items     []byte
	)
	if err := s.Scan(&rec.ID, &rec.Customer, &status, &rec.Total, &timestamp, &items); err != nil {
		return Record{}, err
	}
	rec.Status = Status(status)
	ts, err := time.Parse(timeLayout, timestamp)
	if err != nil {
		return Record{}, fmt.Errorf("parse timestamp: %w", err)
	}
	rec.Timestamp = ts
	if err := json.Unmarshal(items, &rec.Items); err != nil {
		return Record{}, fmt.Errorf("decode items: %w", err)
	}
	return rec, nil
}

func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}
