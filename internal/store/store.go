// Package store persists binview scan history in SQLite. Each completed
// analysis is recorded with a content digest so repeated scans of the
// same path can show whether the file actually changed.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/crypto/blake2b"
)

// Schema for the binview scan history store.
const schema = `
CREATE TABLE IF NOT EXISTS scans (
    id            INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp_ns  INTEGER NOT NULL,
    path          TEXT NOT NULL,
    size          INTEGER NOT NULL,
    digest        BLOB NOT NULL,
    block_size    INTEGER NOT NULL,
    min_entropy   REAL NOT NULL,
    max_entropy   REAL NOT NULL,
    mean_entropy  REAL NOT NULL,
    period        INTEGER
);

CREATE INDEX IF NOT EXISTS idx_scans_path ON scans(path, timestamp_ns);
`

// Scan is one recorded analysis.
type Scan struct {
	ID          int64
	Timestamp   time.Time
	Path        string
	Size        int64
	Digest      [32]byte
	BlockSize   int
	MinEntropy  float64
	MaxEntropy  float64
	MeanEntropy float64

	// Period is the detected periodicity shift; nil when none was
	// found.
	Period *int
}

// Store is the SQLite scan history store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path and applies the schema.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Digest computes the BLAKE2b-256 content digest recorded with a scan.
func Digest(stream []byte) [32]byte {
	return blake2b.Sum256(stream)
}

// RecordScan inserts a scan and returns its ID.
func (s *Store) RecordScan(scan *Scan) (int64, error) {
	var period sql.NullInt64
	if scan.Period != nil {
		period = sql.NullInt64{Int64: int64(*scan.Period), Valid: true}
	}

	result, err := s.db.Exec(`
		INSERT INTO scans (timestamp_ns, path, size, digest, block_size, min_entropy, max_entropy, mean_entropy, period)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.Timestamp.UnixNano(), scan.Path, scan.Size, scan.Digest[:],
		scan.BlockSize, scan.MinEntropy, scan.MaxEntropy, scan.MeanEntropy, period,
	)
	if err != nil {
		return 0, fmt.Errorf("insert scan: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id: %w", err)
	}
	return id, nil
}

// ScansForPath returns the scans recorded for path, newest first.
func (s *Store) ScansForPath(path string, limit int) ([]Scan, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp_ns, path, size, digest, block_size, min_entropy, max_entropy, mean_entropy, period
		FROM scans WHERE path = ? ORDER BY timestamp_ns DESC LIMIT ?`,
		path, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query scans for %s: %w", path, err)
	}
	defer rows.Close()

	return scanRows(rows)
}

// RecentScans returns the most recent scans across all paths.
func (s *Store) RecentScans(limit int) ([]Scan, error) {
	rows, err := s.db.Query(`
		SELECT id, timestamp_ns, path, size, digest, block_size, min_entropy, max_entropy, mean_entropy, period
		FROM scans ORDER BY timestamp_ns DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent scans: %w", err)
	}
	defer rows.Close()

	return scanRows(rows)
}

func scanRows(rows *sql.Rows) ([]Scan, error) {
	var scans []Scan
	for rows.Next() {
		var (
			scan   Scan
			ns     int64
			digest []byte
			period sql.NullInt64
		)
		if err := rows.Scan(&scan.ID, &ns, &scan.Path, &scan.Size, &digest,
			&scan.BlockSize, &scan.MinEntropy, &scan.MaxEntropy, &scan.MeanEntropy, &period); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		scan.Timestamp = time.Unix(0, ns)
		copy(scan.Digest[:], digest)
		if period.Valid {
			p := int(period.Int64)
			scan.Period = &p
		}
		scans = append(scans, scan)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return scans, nil
}
