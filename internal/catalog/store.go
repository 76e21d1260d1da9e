package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Store manages scan-history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	lock *flock.Flock
	path string
}

// Open initializes or connects to the catalog database and applies the
// schema. A sibling lock file serializes writers; Open fails with
// ErrLocked when another process holds it.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure catalog directory: %w", err)
	}

	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire catalog lock: %w", err)
	}
	if !locked {
		return nil, ErrLocked
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		_ = lock.Unlock()
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			_ = lock.Unlock()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, lock: lock, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		_ = lock.Unlock()
		return nil, err
	}
	return store, nil
}

// Close closes the database connection and releases the write lock.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	err := s.db.Close()
	if s.lock != nil {
		if unlockErr := s.lock.Unlock(); err == nil {
			err = unlockErr
		}
	}
	return err
}

// Path returns the database file location.
func (s *Store) Path() string { return s.path }

// RecordScan persists one scan run with its configuration snapshot and a
// summary row per sequence.
func (s *Store) RecordScan(ctx context.Context, rec ScanRecord) (*Scan, error) {
	fileCount := 0
	for _, seq := range rec.Seqs {
		fileCount += seq.Len()
	}

	scan := &Scan{
		ID:        uuid.NewString(),
		StartedAt: time.Now().UTC().Add(-rec.Elapsed),
		Elapsed:   rec.Elapsed,
		Roots:     rec.Roots,
		Recursive: rec.Recursive,
		Filter:    rec.Filter,
		MinLen:    rec.MinLen,
		SeqCount:  len(rec.Seqs),
		FileCount: fileCount,
		Errors:    rec.Errors,
	}

	roots, err := json.Marshal(scan.Roots)
	if err != nil {
		return nil, fmt.Errorf("encode roots: %w", err)
	}
	errs := scan.Errors
	if errs == nil {
		errs = []string{}
	}
	errsJSON, err := json.Marshal(errs)
	if err != nil {
		return nil, fmt.Errorf("encode errors: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO scans (
            id, started_at, elapsed_ms, roots, recursive,
            filter, min_len, seq_count, file_count, errors
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		scan.ID,
		scan.StartedAt.Format(time.RFC3339Nano),
		float64(scan.Elapsed)/float64(time.Millisecond),
		string(roots),
		boolToInt(scan.Recursive),
		scan.Filter,
		scan.MinLen,
		scan.SeqCount,
		scan.FileCount,
		string(errsJSON),
	)
	if err != nil {
		return nil, fmt.Errorf("insert scan: %w", err)
	}

	for _, seq := range rec.Seqs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO scan_sequences (
                scan_id, pattern, start_frame, end_frame,
                padding, frame_count, missed_count
            ) VALUES (?, ?, ?, ?, ?, ?, ?)`,
			scan.ID,
			seq.Pattern(),
			seq.Start,
			seq.End,
			seq.Padding,
			seq.Len(),
			len(seq.Missed),
		)
		if err != nil {
			return nil, fmt.Errorf("insert sequence row: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit record: %w", err)
	}
	return scan, nil
}

// ListScans returns recorded scans, newest first, up to limit (0 means
// all).
func (s *Store) ListScans(ctx context.Context, limit int) ([]Scan, error) {
	query := `SELECT id, started_at, elapsed_ms, roots, recursive,
        filter, min_len, seq_count, file_count, errors
        FROM scans ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list scans: %w", err)
	}
	defer rows.Close()

	var scans []Scan
	for rows.Next() {
		scan, err := scanRow(rows)
		if err != nil {
			return nil, err
		}
		scans = append(scans, scan)
	}
	return scans, rows.Err()
}

// GetScan returns one recorded scan by ID.
func (s *Store) GetScan(ctx context.Context, id string) (*Scan, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, started_at, elapsed_ms, roots, recursive,
            filter, min_len, seq_count, file_count, errors
            FROM scans WHERE id = ?`, id)
	scan, err := scanRow(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
		}
		return nil, err
	}
	return &scan, nil
}

// Sequences returns the sequence summaries of one recorded scan, ordered
// by pattern.
func (s *Store) Sequences(ctx context.Context, scanID string) ([]SequenceRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT scan_id, pattern, start_frame, end_frame,
            padding, frame_count, missed_count
            FROM scan_sequences WHERE scan_id = ? ORDER BY pattern`, scanID)
	if err != nil {
		return nil, fmt.Errorf("list sequences: %w", err)
	}
	defer rows.Close()

	var out []SequenceRow
	for rows.Next() {
		var r SequenceRow
		if err := rows.Scan(&r.ScanID, &r.Pattern, &r.Start, &r.End,
			&r.Padding, &r.FrameCount, &r.MissedCount); err != nil {
			return nil, fmt.Errorf("scan sequence row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Prune deletes all but the newest keep scans and returns how many were
// removed. Sequence rows follow their scan via the cascade.
func (s *Store) Prune(ctx context.Context, keep int) (int64, error) {
	if keep < 0 {
		keep = 0
	}
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM scans WHERE id NOT IN (
            SELECT id FROM scans ORDER BY started_at DESC LIMIT ?
        )`, keep)
	if err != nil {
		return 0, fmt.Errorf("prune scans: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRow(row rowScanner) (Scan, error) {
	var (
		scan      Scan
		startedAt string
		elapsedMS float64
		roots     string
		recursive int
		errs      string
	)
	if err := row.Scan(&scan.ID, &startedAt, &elapsedMS, &roots, &recursive,
		&scan.Filter, &scan.MinLen, &scan.SeqCount, &scan.FileCount, &errs); err != nil {
		return Scan{}, err
	}

	ts, err := time.Parse(time.RFC3339Nano, startedAt)
	if err != nil {
		return Scan{}, fmt.Errorf("parse started_at: %w", err)
	}
	scan.StartedAt = ts
	scan.Elapsed = time.Duration(elapsedMS * float64(time.Millisecond))
	scan.Recursive = recursive != 0

	if err := json.Unmarshal([]byte(roots), &scan.Roots); err != nil {
		return Scan{}, fmt.Errorf("decode roots: %w", err)
	}
	if err := json.Unmarshal([]byte(errs), &scan.Errors); err != nil {
		return Scan{}, fmt.Errorf("decode errors: %w", err)
	}
	return scan, nil
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
