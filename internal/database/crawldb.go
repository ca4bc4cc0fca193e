package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/vicentfs/leadscan/internal/model"
)

// dbFileName is the SQLite file created inside the database directory.
const dbFileName = "leadscan.db"

// CrawlDB stores scraped companies and failed URLs across runs.
// One database file serves every filter set; rows are scoped by a
// filter-set label so independent searches never shadow each other's
// resume state.
type CrawlDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures CrawlDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging. Recommended: the crawl
	// interleaves writes with resume lookups.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates a CrawlDB inside dbDir.
// If CreateIfNotExists is false and the database file is missing, an
// error is returned instead of creating an empty one.
func Open(dbDir string, opts Options) (*CrawlDB, error) {
	dbPath := filepath.Join(dbDir, dbFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("database not found at %s", dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// modernc.org/sqlite connection string: mode=rw prevents creating
	// new files, mode=rwc allows creation.
	var dsn string
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	} else {
		dsn = dbPath + "?mode=rw"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer, and the crawl is sequential
	// anyway.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	cdb := &CrawlDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := cdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return cdb, nil
}

// Close closes the database connection.
func (cdb *CrawlDB) Close() error {
	return cdb.db.Close()
}

// Path returns the database file path.
func (cdb *CrawlDB) Path() string {
	return cdb.dbPath
}

// createTables creates the database schema if it doesn't exist.
func (cdb *CrawlDB) createTables() error {
	schema := `
	-- Companies store one row per scraped detail page.
	-- record_json holds the full record; the name and tax id columns
	-- are duplicated out of it for cheap querying.
	CREATE TABLE IF NOT EXISTS companies (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		filter_set TEXT NOT NULL,
		name TEXT,
		tax_id TEXT,
		record_json TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(url, filter_set)
	);

	CREATE INDEX IF NOT EXISTS idx_companies_url ON companies(url);
	CREATE INDEX IF NOT EXISTS idx_companies_filter ON companies(filter_set);

	-- Failures store detail pages that could not be scraped, with the
	-- error text for the end-of-run report.
	CREATE TABLE IF NOT EXISTS failures (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		url TEXT NOT NULL,
		filter_set TEXT NOT NULL,
		error TEXT NOT NULL,
		timestamp DATETIME DEFAULT CURRENT_TIMESTAMP,
		UNIQUE(url, filter_set)
	);

	CREATE INDEX IF NOT EXISTS idx_failures_filter ON failures(filter_set);
	`

	_, err := cdb.db.ExecContext(context.Background(), schema)
	return err
}

// Run scopes the database to one filter set. The returned store is
// what the scraper writes to and consults for resume lookups.
func (cdb *CrawlDB) Run(filterSet string) *RunStore {
	return &RunStore{cdb: cdb, filterSet: filterSet}
}

// RunStore is a CrawlDB view bound to a single filter set.
type RunStore struct {
	cdb       *CrawlDB
	filterSet string
}

// HasCompany reports whether a record for the URL already exists in
// this filter set.
func (r *RunStore) HasCompany(ctx context.Context, sourceURL string) (bool, error) {
	query := `SELECT COUNT(*) FROM companies WHERE url = ? AND filter_set = ?`

	var count int
	if err := r.cdb.db.QueryRowContext(ctx, query, sourceURL, r.filterSet).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check company: %w", err)
	}
	return count > 0, nil
}

// SaveCompany inserts or updates one scraped record.
// A re-scrape of the same URL in the same filter set replaces the
// previous row.
func (r *RunStore) SaveCompany(ctx context.Context, c model.Company) error {
	recordJSON, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to serialize company: %w", err)
	}

	query := `
	INSERT INTO companies (url, filter_set, name, tax_id, record_json)
	VALUES (?, ?, ?, ?, ?)
	ON CONFLICT(url, filter_set) DO UPDATE SET
		name = excluded.name,
		tax_id = excluded.tax_id,
		record_json = excluded.record_json,
		timestamp = CURRENT_TIMESTAMP
	`

	if _, err := r.cdb.db.ExecContext(ctx, query,
		c.SourceURL,
		r.filterSet,
		c.Name,
		c.TaxID,
		string(recordJSON),
	); err != nil {
		return fmt.Errorf("failed to insert company: %w", err)
	}

	// A success supersedes any failure recorded for the URL in an
	// earlier run.
	if _, err := r.cdb.db.ExecContext(ctx,
		`DELETE FROM failures WHERE url = ? AND filter_set = ?`,
		c.SourceURL, r.filterSet,
	); err != nil {
		return fmt.Errorf("failed to clear failure: %w", err)
	}

	return nil
}

// SaveFailure inserts or updates one failed URL with its error text.
func (r *RunStore) SaveFailure(ctx context.Context, pageURL, message string) error {
	query := `
	INSERT INTO failures (url, filter_set, error)
	VALUES (?, ?, ?)
	ON CONFLICT(url, filter_set) DO UPDATE SET
		error = excluded.error,
		timestamp = CURRENT_TIMESTAMP
	`

	if _, err := r.cdb.db.ExecContext(ctx, query, pageURL, r.filterSet, message); err != nil {
		return fmt.Errorf("failed to insert failure: %w", err)
	}
	return nil
}

// Companies returns every stored record for this filter set, oldest
// first.
func (r *RunStore) Companies(ctx context.Context) ([]model.Company, error) {
	query := `SELECT record_json FROM companies WHERE filter_set = ? ORDER BY id`

	rows, err := r.cdb.db.QueryContext(ctx, query, r.filterSet)
	if err != nil {
		return nil, fmt.Errorf("failed to query companies: %w", err)
	}
	defer rows.Close()

	companies := make([]model.Company, 0)
	for rows.Next() {
		var recordJSON string
		if err := rows.Scan(&recordJSON); err != nil {
			return nil, fmt.Errorf("failed to scan company: %w", err)
		}
		var c model.Company
		if err := json.Unmarshal([]byte(recordJSON), &c); err != nil {
			return nil, fmt.Errorf("failed to parse company record: %w", err)
		}
		companies = append(companies, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read companies: %w", err)
	}
	return companies, nil
}

// Failures returns every stored failure for this filter set as
// ledger entries, oldest first.
func (r *RunStore) Failures(ctx context.Context) ([]model.Failure, error) {
	query := `SELECT url, error FROM failures WHERE filter_set = ? ORDER BY id`

	rows, err := r.cdb.db.QueryContext(ctx, query, r.filterSet)
	if err != nil {
		return nil, fmt.Errorf("failed to query failures: %w", err)
	}
	defer rows.Close()

	failures := make([]model.Failure, 0)
	for rows.Next() {
		var f model.Failure
		if err := rows.Scan(&f.URL, &f.Err); err != nil {
			return nil, fmt.Errorf("failed to scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read failures: %w", err)
	}
	return failures, nil
}

// CountCompanies returns how many records this filter set holds.
func (r *RunStore) CountCompanies(ctx context.Context) (int, error) {
	var count int
	err := r.cdb.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM companies WHERE filter_set = ?`, r.filterSet,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count companies: %w", err)
	}
	return count, nil
}
