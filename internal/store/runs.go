package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Run is one stored inference result.
type Run struct {
	ID            string  `json:"id"`
	Seq           int64   `json:"seq"`
	DatasetPath   string  `json:"dataset_path"`
	DatasetDigest string  `json:"dataset_digest"`
	Factor        uint64  `json:"factor"`
	Votes         int     `json:"votes"`
	Observations  int     `json:"observations"`
	Entries       []Entry `json:"entries,omitempty"`
}

// Base returns the base correction derived from Factor.
func (r Run) Base() float64 {
	return float64(r.Factor) / 100
}

// Entry is one combo starter of a run.
type Entry struct {
	WazaID string `json:"waza_id"`
	DM     uint64 `json:"dm"`
}

// ErrRunNotFound is returned by ReadRun for an unknown id.
var ErrRunNotFound = errors.New("run not found")

// WriteRun inserts a run and its entries in one transaction and returns the
// run with its assigned Seq. Writing an id that already exists is an error.
func (s *Store) WriteRun(ctx context.Context, run Run) (Run, error) {
	if run.Factor > math.MaxInt64 {
		return Run{}, fmt.Errorf("write run: factor %d exceeds int64", run.Factor)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var seq int64
	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs
		(id, seq, dataset_path, dataset_digest, factor, votes, observations)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		seq,
		run.DatasetPath,
		run.DatasetDigest,
		int64(run.Factor),
		run.Votes,
		run.Observations,
	)
	if err != nil {
		return Run{}, fmt.Errorf("write run: insert: %w", err)
	}

	for _, e := range run.Entries {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO run_entries (run_id, waza_id, dm)
			VALUES (?, ?, ?)
		`, run.ID, e.WazaID, strconv.FormatUint(e.DM, 10))
		if err != nil {
			return Run{}, fmt.Errorf("write run: insert entry %q: %w", e.WazaID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}

	run.Seq = seq
	return run, nil
}

// ReadRun returns a run with its entries ordered by waza id.
// Returns ErrRunNotFound if the id is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, dataset_path, dataset_digest, factor, votes, observations
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("read run %q: %w", id, ErrRunNotFound)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run %q: %w", id, err)
	}

	entries, err := s.readEntries(ctx, id)
	if err != nil {
		return Run{}, err
	}
	run.Entries = entries
	return run, nil
}

// ListRuns returns up to limit runs, newest first, without entries.
// limit <= 0 returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seq, dataset_path, dataset_digest, factor, votes, observations
		FROM runs
		ORDER BY seq DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// LatestRunForDigest returns the newest run computed from a dataset with
// the given digest. ok is false when there is none.
func (s *Store) LatestRunForDigest(ctx context.Context, digest string) (run Run, ok bool, err error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seq, dataset_path, dataset_digest, factor, votes, observations
		FROM runs
		WHERE dataset_digest = ?
		ORDER BY seq DESC
		LIMIT 1
	`, digest)

	run, err = scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("latest run for digest: %w", err)
	}
	return run, true, nil
}

func (s *Store) readEntries(ctx context.Context, runID string) ([]Entry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT waza_id, dm
		FROM run_entries
		WHERE run_id = ?
		ORDER BY waza_id COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer rows.Close()

	entries := []Entry{}
	for rows.Next() {
		var e Entry
		var dm string
		if err := rows.Scan(&e.WazaID, &dm); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.DM, err = strconv.ParseUint(dm, 10, 64); err != nil {
			return nil, fmt.Errorf("entry %q damage: %w", e.WazaID, err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate entries: %w", err)
	}
	return entries, nil
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var run Run
	var factor int64
	err := row.Scan(
		&run.ID,
		&run.Seq,
		&run.DatasetPath,
		&run.DatasetDigest,
		&factor,
		&run.Votes,
		&run.Observations,
	)
	if err != nil {
		return Run{}, err
	}
	run.Factor = uint64(factor)
	return run, nil
}
