// Package history records report runs and the observations they produced in a SQL store.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver

	"github.com/huangsam/cpitrend/internal/contract"
	"github.com/huangsam/cpitrend/schema"
)

// Table names for run tracking.
const (
	runsTable         = "cpitrend_runs"
	observationsTable = "cpitrend_observations"
)

// Store implements the HistoryStore interface.
type Store struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
}

var _ contract.HistoryStore = &Store{} // Compile-time check

// NewStore opens a history store for the given backend and creates its tables.
func NewStore(backend schema.DatabaseBackend, connStr string) (*Store, error) {
	if backend == schema.NoneBackend || backend == "" {
		return &Store{backend: schema.NoneBackend}, nil
	}

	driverName, dsn, err := driverFor(backend, connStr)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s database: %w", backend, err)
	}
	if backend == schema.SQLiteBackend {
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		_ = db.Close()
		var connDetail string
		switch backend {
		case schema.MySQLBackend:
			connDetail = "Check that MySQL is running and the connection string uses user:password@tcp(host:port)/dbname?parseTime=true."
		case schema.PostgreSQLBackend:
			connDetail = "Check that PostgreSQL is running and the connection string is correct. Ensure user/password are valid."
		default:
			connDetail = "Check that the directory holding the database file is writable."
		}
		return nil, fmt.Errorf("failed to connect to %s database: %w. %s", backend, err, connDetail)
	}

	if err := createTables(db, backend); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create history tables: %w", err)
	}

	return &Store{db: db, backend: backend, driverName: driverName}, nil
}

// driverFor maps a backend to its database/sql driver name and connection string.
func driverFor(backend schema.DatabaseBackend, connStr string) (string, string, error) {
	switch backend {
	case schema.SQLiteBackend:
		if connStr == "" {
			connStr = contract.GetHistoryDBFilePath()
		}
		return "sqlite", connStr, nil
	case schema.MySQLBackend:
		return "mysql", connStr, nil
	case schema.PostgreSQLBackend:
		return "pgx", connStr, nil
	default:
		return "", "", fmt.Errorf("unsupported backend: %s", backend)
	}
}

func (s *Store) disabled() bool {
	return s.backend == schema.NoneBackend || s.db == nil
}

// BeginRun creates a new run and returns its unique ID.
func (s *Store) BeginRun(ctx context.Context, startTime time.Time, dataset, seriesName string, configParams map[string]any) (int64, error) {
	if s.disabled() {
		return 0, nil
	}

	configJSON, err := json.Marshal(configParams)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal config params: %w", err)
	}

	table := quoteTableName(runsTable, s.backend)
	args := []any{dataset, seriesName, formatTime(startTime, s.backend), string(configJSON)}

	var runID int64
	switch s.backend {
	case schema.PostgreSQLBackend:
		query := fmt.Sprintf(`INSERT INTO %s (dataset, series_name, start_time, config_params) VALUES ($1, $2, $3, $4) RETURNING run_id`, table)
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&runID)
	default: // SQLite and MySQL
		query := fmt.Sprintf(`INSERT INTO %s (dataset, series_name, start_time, config_params) VALUES (?, ?, ?, ?)`, table)
		var result sql.Result
		result, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			runID, err = result.LastInsertId()
		}
	}
	if err != nil {
		return 0, fmt.Errorf("failed to insert run: %w", err)
	}
	return runID, nil
}

// EndRun updates the run with its end time, duration and counters.
func (s *Store) EndRun(ctx context.Context, runID int64, endTime time.Time, summary schema.RunSummary) error {
	if s.disabled() {
		return nil
	}

	table := quoteTableName(runsTable, s.backend)
	row := s.db.QueryRowContext(ctx, fmt.Sprintf(`SELECT start_time FROM %s WHERE run_id = %s`, table, placeholder(s.backend, 1)), runID)
	startTime, err := scanTime(row)
	if err != nil {
		return fmt.Errorf("failed to get start_time for run %d: %w", runID, err)
	}

	query := fmt.Sprintf(`UPDATE %s SET end_time = %s, run_duration_ms = %s, observations = %s, filled = %s, warnings = %s, annotations = %s WHERE run_id = %s`,
		table,
		placeholder(s.backend, 1), placeholder(s.backend, 2), placeholder(s.backend, 3), placeholder(s.backend, 4),
		placeholder(s.backend, 5), placeholder(s.backend, 6), placeholder(s.backend, 7))
	args := []any{
		formatTime(endTime, s.backend), endTime.Sub(startTime).Milliseconds(),
		summary.Observations, summary.Filled, summary.Warnings, summary.Annotations, runID,
	}
	if _, err := s.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to update run: %w", err)
	}
	return nil
}

// RecordObservations stores every report row of a run in one transaction.
func (s *Store) RecordObservations(ctx context.Context, runID int64, rows []schema.ReportRow) error {
	if s.disabled() || len(rows) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := fmt.Sprintf(`INSERT INTO %s (run_id, obs_date, value, status) VALUES (%s, %s, %s, %s)`,
		quoteTableName(observationsTable, s.backend),
		placeholder(s.backend, 1), placeholder(s.backend, 2), placeholder(s.backend, 3), placeholder(s.backend, 4))
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare observation insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, r := range rows {
		var value any
		if r.Value != nil {
			value = *r.Value
		}
		if _, err := stmt.ExecContext(ctx, runID, r.Date.Format(schema.DefaultDateFormat), value, string(r.Status)); err != nil {
			return fmt.Errorf("failed to insert observation %s: %w", r.Date.Format(schema.DefaultDateFormat), err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit observations: %w", err)
	}
	return nil
}

// GetStatus returns status information about the history store.
func (s *Store) GetStatus(ctx context.Context) (schema.HistoryStatus, error) {
	status := schema.HistoryStatus{
		Backend:    string(s.backend),
		Connected:  s.db != nil,
		TableSizes: make(map[string]int64),
	}
	if s.disabled() {
		return status, nil
	}

	runs := quoteTableName(runsTable, s.backend)
	if err := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT COUNT(*) FROM %s", runs)).Scan(&status.TotalRuns); err != nil {
		return status, fmt.Errorf("failed to get total runs: %w", err)
	}

	if status.TotalRuns > 0 {
		row := s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT run_id FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if err := row.Scan(&status.LastRunID); err != nil {
			return status, fmt.Errorf("failed to get last run id: %w", err)
		}

		var err error
		row = s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id DESC LIMIT 1", runs))
		if status.LastRunTime, err = scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get last run time: %w", err)
		}
		row = s.db.QueryRowContext(ctx, fmt.Sprintf("SELECT start_time FROM %s ORDER BY run_id ASC LIMIT 1", runs))
		if status.OldestRunTime, err = scanTime(row); err != nil {
			return status, fmt.Errorf("failed to get oldest run time: %w", err)
		}
	}

	for _, table := range []string{runsTable, observationsTable} {
		var count int64
		query := fmt.Sprintf("SELECT COUNT(*) FROM %s", quoteTableName(table, s.backend))
		if err := s.db.QueryRowContext(ctx, query).Scan(&count); err != nil {
			return status, fmt.Errorf("failed to get count for table %s: %w", table, err)
		}
		status.TableSizes[table] = count
	}
	status.TotalObservations = int(status.TableSizes[observationsTable])

	return status, nil
}

// GetAllRuns retrieves every recorded run ordered by ID.
func (s *Store) GetAllRuns(ctx context.Context) ([]schema.RunRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, dataset, series_name, start_time, end_time, run_duration_ms,
		observations, filled, warnings, annotations, config_params FROM %s ORDER BY run_id`,
		quoteTableName(runsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.RunRecord
	for rows.Next() {
		var record schema.RunRecord
		var start, end any
		if err := rows.Scan(&record.RunID, &record.Dataset, &record.SeriesName, &start, &end, &record.RunDurationMs,
			&record.Observations, &record.Filled, &record.Warnings, &record.Annotations, &record.ConfigParams); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		if record.StartTime, err = parseTime(start); err != nil {
			return nil, fmt.Errorf("failed to parse start_time: %w", err)
		}
		if end != nil {
			endTime, err := parseTime(end)
			if err != nil {
				return nil, fmt.Errorf("failed to parse end_time: %w", err)
			}
			record.EndTime = &endTime
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}
	return results, nil
}

// GetAllObservations retrieves every recorded observation ordered by run and date.
func (s *Store) GetAllObservations(ctx context.Context) ([]schema.ObservationRecord, error) {
	if s.disabled() {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT run_id, obs_date, value, status FROM %s ORDER BY run_id, obs_date`,
		quoteTableName(observationsTable, s.backend))
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query observations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ObservationRecord
	for rows.Next() {
		var record schema.ObservationRecord
		var date string
		var value sql.NullFloat64
		if err := rows.Scan(&record.RunID, &date, &value, &record.Status); err != nil {
			return nil, fmt.Errorf("failed to scan observation: %w", err)
		}
		if record.Date, err = time.Parse(schema.DefaultDateFormat, date); err != nil {
			return nil, fmt.Errorf("failed to parse obs_date %q: %w", date, err)
		}
		if value.Valid {
			record.Value = schema.Float(value.Float64)
		}
		results = append(results, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating observations: %w", err)
	}
	return results, nil
}

// Close closes the underlying connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// createTables creates the run tracking tables.
func createTables(db *sql.DB, backend schema.DatabaseBackend) error {
	tables := []struct {
		name  string
		query string
	}{
		{runsTable, createRunsQuery(backend)},
		{observationsTable, createObservationsQuery(backend)},
	}
	for _, table := range tables {
		if _, err := db.Exec(table.query); err != nil {
			return fmt.Errorf("failed to create table %s: %w", table.name, err)
		}
	}
	return nil
}

func createRunsQuery(backend schema.DatabaseBackend) string {
	table := quoteTableName(runsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT AUTO_INCREMENT PRIMARY KEY,
				dataset VARCHAR(1024) NOT NULL,
				series_name VARCHAR(255) NOT NULL,
				start_time DATETIME(6) NOT NULL,
				end_time DATETIME(6),
				run_duration_ms INT,
				observations INT NOT NULL DEFAULT 0,
				filled INT NOT NULL DEFAULT 0,
				warnings INT NOT NULL DEFAULT 0,
				annotations INT NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, table)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGSERIAL PRIMARY KEY,
				dataset TEXT NOT NULL,
				series_name TEXT NOT NULL,
				start_time TIMESTAMPTZ NOT NULL,
				end_time TIMESTAMPTZ,
				run_duration_ms INTEGER,
				observations INTEGER NOT NULL DEFAULT 0,
				filled INTEGER NOT NULL DEFAULT 0,
				warnings INTEGER NOT NULL DEFAULT 0,
				annotations INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, table)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER PRIMARY KEY AUTOINCREMENT,
				dataset TEXT NOT NULL,
				series_name TEXT NOT NULL,
				start_time TEXT NOT NULL,
				end_time TEXT,
				run_duration_ms INTEGER,
				observations INTEGER NOT NULL DEFAULT 0,
				filled INTEGER NOT NULL DEFAULT 0,
				warnings INTEGER NOT NULL DEFAULT 0,
				annotations INTEGER NOT NULL DEFAULT 0,
				config_params TEXT
			);
		`, table)
	}
}

func createObservationsQuery(backend schema.DatabaseBackend) string {
	table := quoteTableName(observationsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				obs_date VARCHAR(10) NOT NULL,
				value DOUBLE,
				status VARCHAR(16) NOT NULL,
				PRIMARY KEY (run_id, obs_date)
			);
		`, table)
	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id BIGINT NOT NULL,
				obs_date VARCHAR(10) NOT NULL,
				value DOUBLE PRECISION,
				status VARCHAR(16) NOT NULL,
				PRIMARY KEY (run_id, obs_date)
			);
		`, table)
	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id INTEGER NOT NULL,
				obs_date TEXT NOT NULL,
				value REAL,
				status TEXT NOT NULL,
				PRIMARY KEY (run_id, obs_date)
			);
		`, table)
	}
}

// placeholder returns the n-th (1-based) bind parameter for the backend.
func placeholder(backend schema.DatabaseBackend, n int) string {
	if backend == schema.PostgreSQLBackend {
		return fmt.Sprintf("$%d", n)
	}
	return "?"
}

// formatTime converts a time.Time to the appropriate format for the backend.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	if backend == schema.SQLiteBackend {
		return t.UTC().Format(time.RFC3339Nano)
	}
	return t
}

// scanTime reads a single timestamp column stored by formatTime.
func scanTime(row *sql.Row) (time.Time, error) {
	var raw any
	if err := row.Scan(&raw); err != nil {
		return time.Time{}, err
	}
	return parseTime(raw)
}

// mysqlDateTime is how MySQL renders DATETIME(6) when the DSN lacks parseTime=true.
const mysqlDateTime = "2006-01-02 15:04:05.999999"

// parseTime accepts native timestamps (MySQL, PostgreSQL) and RFC3339 text (SQLite).
func parseTime(raw any) (time.Time, error) {
	var text string
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		text = strings.TrimSpace(v)
	case []byte:
		text = strings.TrimSpace(string(v))
	default:
		return time.Time{}, fmt.Errorf("unexpected time value %T", raw)
	}
	if t, err := time.Parse(time.RFC3339Nano, text); err == nil {
		return t, nil
	}
	return time.ParseInLocation(mysqlDateTime, text, time.UTC)
}
