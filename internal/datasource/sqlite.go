package datasource

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	_ "modernc.org/sqlite" // Pure Go SQLite driver, WAL-friendly

	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

const (
	defaultTable       = "options"
	defaultValueColumn = "value"
	defaultLabelColumn = "label"
)

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLite queries a table of value/label pairs with a LIKE match on the label.
// The database is opened read-only for every query.
type SQLite struct {
	Path        string
	Table       string
	ValueColumn string
	LabelColumn string
	Limit       int
}

// Query returns rows whose label contains term, ordered by label.
func (s *SQLite) Query(ctx context.Context, term string) ([]option.Option, error) {
	table, valueCol, labelCol, err := s.identifiers()
	if err != nil {
		return nil, err
	}

	db, err := openDB(ctx, buildReadOnlyDSN(s.Path))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = db.Close()
	}()

	limit := s.Limit
	if limit <= 0 {
		limit = -1
	}
	//nolint:gosec // G201: identifiers are validated against identPattern
	query := fmt.Sprintf(
		`SELECT %s, %s FROM %s WHERE %s LIKE ? ESCAPE '\' ORDER BY %s LIMIT ?`,
		valueCol, labelCol, table, labelCol, labelCol,
	)
	rows, err := db.QueryContext(ctx, query, "%"+escapeLike(term)+"%", limit)
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", table, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var opts []option.Option
	for rows.Next() {
		var value string
		var label sql.NullString
		if err := rows.Scan(&value, &label); err != nil {
			return nil, fmt.Errorf("scan option: %w", err)
		}
		opts = append(opts, option.New(label.String, value))
	}
	return opts, rows.Err()
}

func (s *SQLite) identifiers() (string, string, string, error) {
	table := orDefault(s.Table, defaultTable)
	valueCol := orDefault(s.ValueColumn, defaultValueColumn)
	labelCol := orDefault(s.LabelColumn, defaultLabelColumn)
	for _, ident := range []string{table, valueCol, labelCol} {
		if !identPattern.MatchString(ident) {
			return "", "", "", appErrors.New(appErrors.CodeInvalidField, fmt.Sprintf("invalid sqlite identifier %q", ident), nil)
		}
	}
	if strings.TrimSpace(s.Path) == "" {
		return "", "", "", appErrors.New(appErrors.CodeInvalidField, "sqlite source requires a path", nil)
	}
	return table, valueCol, labelCol, nil
}

// Seed creates table (if missing) in the database at path and upserts opts.
// It returns the number of rows written.
func Seed(ctx context.Context, path, table string, opts []option.Option) (int, error) {
	table = orDefault(table, defaultTable)
	if !identPattern.MatchString(table) {
		return 0, appErrors.New(appErrors.CodeInvalidField, fmt.Sprintf("invalid sqlite identifier %q", table), nil)
	}
	db, err := openDB(ctx, buildWritableDSN(path))
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = db.Close()
	}()

	//nolint:gosec // G201: table is validated against identPattern
	create := fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (value TEXT PRIMARY KEY, label TEXT NOT NULL)`, table)
	if _, err := db.ExecContext(ctx, create); err != nil {
		return 0, fmt.Errorf("create table %s: %w", table, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	//nolint:gosec // G201: table is validated against identPattern
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		`INSERT INTO %s (value, label) VALUES (?, ?) ON CONFLICT(value) DO UPDATE SET label = excluded.label`, table))
	if err != nil {
		_ = tx.Rollback()
		return 0, fmt.Errorf("prepare insert: %w", err)
	}
	defer func() {
		_ = stmt.Close()
	}()

	written := 0
	for _, o := range option.Dedupe(opts) {
		if o.Value == "" {
			continue
		}
		if _, err := stmt.ExecContext(ctx, o.Value, o.Display()); err != nil {
			_ = tx.Rollback()
			return 0, fmt.Errorf("insert %q: %w", o.Value, err)
		}
		written++
	}
	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return written, nil
}

// buildReadOnlyDSN creates a read-only DSN for the given path.
func buildReadOnlyDSN(dbPath string) string {
	return buildDSN(dbPath, "ro")
}

func buildWritableDSN(dbPath string) string {
	return buildDSN(dbPath, "rwc")
}

func buildDSN(dbPath, mode string) string {
	u := url.URL{
		Scheme: "file",
		Path:   filepath.ToSlash(strings.TrimSpace(dbPath)),
	}
	q := url.Values{}
	q.Set("mode", mode)
	q.Add("_pragma", "busy_timeout(3000)")
	u.RawQuery = q.Encode()
	return u.String()
}

func openDB(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	return db, nil
}

func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

func orDefault(v, fallback string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return fallback
}
