package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/hjangles/llscan/internal/model"
)

// FileName is the name of the database file inside the database directory.
const FileName = "llscan.db"

// schemaVersion is stored in PRAGMA user_version once the runs table exists.
const schemaVersion = 1

var (
	// ErrRunNotFound is returned when no run has the requested id.
	ErrRunNotFound = errors.New("run not found")

	// ErrNoHistory is returned by a read-only Open when no run was ever
	// recorded in the directory.
	ErrNoHistory = errors.New("no run history")

	// ErrSchemaVersion is returned for a database written by a newer llscan.
	ErrSchemaVersion = errors.New("unsupported history schema")
)

// RunDB provides SQLite-based storage for scan runs.
type RunDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures how the run history is opened.
type Options struct {
	// ReadOnly opens an existing history without creating or migrating it.
	// scan writes runs; history and compare only read them.
	ReadOnly bool

	// BusyTimeout is how long a statement waits on a lock held by another
	// llscan process before failing. Zero leaves SQLite's default.
	BusyTimeout time.Duration
}

// DefaultOptions returns the options used by scan.
func DefaultOptions() Options {
	return Options{BusyTimeout: 5 * time.Second}
}

// ReadOnlyOptions returns the options used by history and compare.
func ReadOnlyOptions() Options {
	opts := DefaultOptions()
	opts.ReadOnly = true
	return opts
}

// dsn builds a file: URI for the absolute dbPath. Without the scheme the driver strips
// the query and SQLite never sees mode.
func (opts Options) dsn(dbPath string) string {
	q := url.Values{}
	if opts.ReadOnly {
		q.Set("mode", "ro")
	} else {
		q.Set("mode", "rwc")
		q.Add("_pragma", "journal_mode(WAL)")
	}
	if opts.BusyTimeout > 0 {
		q.Add("_pragma", fmt.Sprintf("busy_timeout(%d)", opts.BusyTimeout.Milliseconds()))
	}
	u := url.URL{Scheme: "file", Path: dbPath, RawQuery: q.Encode()}
	return u.String()
}

// Open opens the run history in dbDir.
// In write mode the directory, file and runs table are created as needed.
// In read-only mode a directory without a history yields ErrNoHistory.
func Open(dbDir string, opts Options) (*RunDB, error) {
	dbDir, err := filepath.Abs(dbDir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database directory: %w", err)
	}
	dbPath := filepath.Join(dbDir, FileName)

	if opts.ReadOnly {
		if _, err := os.Stat(dbPath); errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w in %s", ErrNoHistory, dbDir)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := sql.Open("sqlite", opts.dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	rdb := &RunDB{db: db, dbPath: dbPath}
	if err := rdb.ensureSchema(opts.ReadOnly); err != nil {
		_ = db.Close()
		return nil, err
	}
	return rdb, nil
}

// Path returns the database file path.
func (rdb *RunDB) Path() string {
	return rdb.dbPath
}

// Close closes the database connection.
func (rdb *RunDB) Close() error {
	return rdb.db.Close()
}

// ensureSchema checks the stored schema version and creates the runs table
// when the file is new.
func (rdb *RunDB) ensureSchema(readOnly bool) error {
	ctx := context.Background()

	var version int
	if err := rdb.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	switch {
	case version > schemaVersion:
		return fmt.Errorf("%w: version %d, want %d or lower", ErrSchemaVersion, version, schemaVersion)
	case version == schemaVersion:
		return nil
	case readOnly:
		return fmt.Errorf("%w in %s", ErrNoHistory, filepath.Dir(rdb.dbPath))
	}

	tx, err := rdb.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, runsSchema); err != nil {
		return fmt.Errorf("failed to create tables: %w", err)
	}
	if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", schemaVersion)); err != nil {
		return fmt.Errorf("failed to set schema version: %w", err)
	}
	return tx.Commit()
}

const runsSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	timestamp TEXT NOT NULL,
	inputs_json TEXT NOT NULL,
	threshold REAL NOT NULL,
	output TEXT NOT NULL,
	digest TEXT NOT NULL,
	range_count INTEGER NOT NULL,
	point_count INTEGER NOT NULL,
	summary_json TEXT NOT NULL,
	results_json TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp);
CREATE INDEX IF NOT EXISTS idx_runs_digest ON runs(digest);
`

// Run is one stored scan invocation.
type Run struct {
	ID        int64
	Timestamp time.Time
	Summary   *model.ScanSummary
	Results   *model.ResultSet
}

// RunMetadata contains summary information about a run.
// This is used for listing history without decoding the result sets.
type RunMetadata struct {
	ID         int64
	Timestamp  time.Time
	Inputs     []string
	Threshold  float64
	Output     string
	Digest     string
	RangeCount int
	PointCount int
}

// SaveRun stores a completed run and returns its id.
func (rdb *RunDB) SaveRun(ctx context.Context, summary *model.ScanSummary, results *model.ResultSet) (int64, error) {
	inputsJSON, err := json.Marshal(summary.Inputs)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize inputs: %w", err)
	}
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize summary: %w", err)
	}
	resultsJSON, err := json.Marshal(results)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize results: %w", err)
	}

	query := `
	INSERT INTO runs (timestamp, inputs_json, threshold, output, digest, range_count, point_count, summary_json, results_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := rdb.db.ExecContext(ctx, query,
		summary.DateScanned.UTC().Format(time.RFC3339Nano),
		string(inputsJSON),
		summary.Threshold,
		summary.Output,
		summary.Digest,
		results.Len(),
		results.PointCount(),
		string(summaryJSON),
		string(resultsJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save run: %w", err)
	}

	return result.LastInsertId()
}

// ListRuns returns the metadata of all runs, newest first.
func (rdb *RunDB) ListRuns(ctx context.Context) ([]RunMetadata, error) {
	query := `
	SELECT id, timestamp, inputs_json, threshold, output, digest, range_count, point_count
	FROM runs
	ORDER BY id DESC
	`

	rows, err := rdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var meta RunMetadata
		var timestamp, inputsJSON string

		err := rows.Scan(
			&meta.ID,
			&timestamp,
			&inputsJSON,
			&meta.Threshold,
			&meta.Output,
			&meta.Digest,
			&meta.RangeCount,
			&meta.PointCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}

		meta.Timestamp = parseTimestamp(timestamp)
		if err := json.Unmarshal([]byte(inputsJSON), &meta.Inputs); err != nil {
			return nil, fmt.Errorf("failed to parse inputs of run %d: %w", meta.ID, err)
		}
		results = append(results, meta)
	}

	return results, rows.Err()
}

// GetRun retrieves a run by its id. It returns ErrRunNotFound when the id
// does not exist.
func (rdb *RunDB) GetRun(ctx context.Context, id int64) (*Run, error) {
	query := `
	SELECT id, timestamp, summary_json, results_json
	FROM runs
	WHERE id = ?
	`

	return rdb.scanRun(rdb.db.QueryRowContext(ctx, query, id), id)
}

// LatestRuns returns up to n runs, newest first.
func (rdb *RunDB) LatestRuns(ctx context.Context, n int) ([]*Run, error) {
	query := `
	SELECT id FROM runs
	ORDER BY id DESC
	LIMIT ?
	`

	rows, err := rdb.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to get latest runs: %w", err)
	}

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("failed to scan run id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	// The single connection must be released before GetRun can use it.
	_ = rows.Close()

	runs := make([]*Run, 0, len(ids))
	for _, id := range ids {
		run, err := rdb.GetRun(ctx, id)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, nil
}

// scanRun decodes one row selected by GetRun.
func (rdb *RunDB) scanRun(row *sql.Row, id int64) (*Run, error) {
	var run Run
	var timestamp, summaryJSON, resultsJSON string

	err := row.Scan(&run.ID, &timestamp, &summaryJSON, &resultsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	run.Timestamp = parseTimestamp(timestamp)

	run.Summary = &model.ScanSummary{}
	if err := json.Unmarshal([]byte(summaryJSON), run.Summary); err != nil {
		return nil, fmt.Errorf("failed to parse summary of run %d: %w", run.ID, err)
	}
	run.Results = model.NewResultSet()
	if err := json.Unmarshal([]byte(resultsJSON), run.Results); err != nil {
		return nil, fmt.Errorf("failed to parse results of run %d: %w", run.ID, err)
	}

	return &run, nil
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
