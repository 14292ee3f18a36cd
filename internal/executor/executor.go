// Package executor runs SQL against configured sources through database/sql,
// with one lazily opened pool per source.
package executor

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"mdb/internal/config"
	mdberrors "mdb/internal/errors"
	"mdb/internal/source"
)

// Result holds the outcome of one statement execution.
type Result struct {
	Columns      []string                 `json:"columns,omitempty"`
	Rows         []map[string]interface{} `json:"rows,omitempty"`
	Count        int                      `json:"count"`
	RowsAffected int64                    `json:"rows_affected,omitempty"`
}

// ColumnInfo describes one column of a table.
type ColumnInfo struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	Nullable bool   `json:"nullable"`
	Key      string `json:"key,omitempty"`
	Default  string `json:"default,omitempty"`
}

// Executor abstracts statement execution so the engine can be tested
// without live databases.
type Executor interface {
	Run(ctx context.Context, src, statement string, args ...interface{}) (*Result, error)
	Exec(ctx context.Context, src, statement string, args ...interface{}) (*Result, error)
	ListTables(ctx context.Context, src string) ([]string, error)
	DescribeTable(ctx context.Context, src, table string) ([]ColumnInfo, error)
	Ping(ctx context.Context, src string) error
	Close() error
}

// SQLExecutor is the database/sql-backed Executor. Pools open on first use
// and stay open for the life of the process.
type SQLExecutor struct {
	registry *source.Registry
	logger   *slog.Logger

	mu    sync.Mutex
	pools map[string]*sql.DB
}

// NewSQLExecutor builds an executor over the registered sources.
func NewSQLExecutor(registry *source.Registry, logger *slog.Logger) *SQLExecutor {
	return &SQLExecutor{
		registry: registry,
		logger:   logger,
		pools:    make(map[string]*sql.DB),
	}
}

func (e *SQLExecutor) pool(src string) (*sql.DB, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if db, ok := e.pools[src]; ok {
		return db, nil
	}

	cfg, ok := e.registry.Config(src)
	if !ok {
		return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
	}

	driver, dsn, err := buildDSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, mdberrors.NewConnectionError(src, err)
	}
	db.SetMaxOpenConns(5)
	db.SetMaxIdleConns(2)

	e.pools[src] = db
	e.logger.Debug("opened connection pool", "source", src, "driver", driver)
	return db, nil
}

// buildDSN maps a source configuration onto a driver name and DSN.
func buildDSN(cfg config.SourceConfig) (driver, dsn string, err error) {
	switch cfg.Driver {
	case "mysql":
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 3306
		}
		return "mysql", fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true",
			cfg.Username, cfg.Password, host, port, cfg.Database), nil
	case "postgres":
		host := cfg.Host
		if host == "" {
			host = "localhost"
		}
		port := cfg.Port
		if port == 0 {
			port = 5432
		}
		parts := []string{
			fmt.Sprintf("host=%s", host),
			fmt.Sprintf("port=%d", port),
			fmt.Sprintf("dbname=%s", cfg.Database),
		}
		if cfg.Username != "" {
			parts = append(parts, fmt.Sprintf("user=%s", cfg.Username))
		}
		if cfg.Password != "" {
			parts = append(parts, fmt.Sprintf("password=%s", cfg.Password))
		}
		return "pgx", strings.Join(parts, " "), nil
	case "sqlite":
		return "sqlite", cfg.Path, nil
	default:
		return "", "", mdberrors.NewInvalidParameterError("driver", "unsupported driver: "+cfg.Driver)
	}
}

// Run executes a row-returning statement and materializes all rows, with
// []byte column values decoded to strings.
func (e *SQLExecutor) Run(ctx context.Context, src, statement string, args ...interface{}) (*Result, error) {
	db, err := e.pool(src)
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, statement, args...)
	if err != nil {
		return nil, mdberrors.NewExecutionError(src, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, mdberrors.NewExecutionError(src, err)
	}

	result := &Result{Columns: cols, Rows: []map[string]interface{}{}}
	values := make([]interface{}, len(cols))
	ptrs := make([]interface{}, len(cols))
	for i := range values {
		ptrs[i] = &values[i]
	}

	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return nil, mdberrors.NewExecutionError(src, err)
		}
		row := make(map[string]interface{}, len(cols))
		for i, col := range cols {
			row[col] = normalizeValue(values[i])
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, mdberrors.NewExecutionError(src, err)
	}

	result.Count = len(result.Rows)
	return result, nil
}

// Exec executes a statement that does not return rows.
func (e *SQLExecutor) Exec(ctx context.Context, src, statement string, args ...interface{}) (*Result, error) {
	db, err := e.pool(src)
	if err != nil {
		return nil, err
	}

	res, err := db.ExecContext(ctx, statement, args...)
	if err != nil {
		return nil, mdberrors.NewExecutionError(src, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		// Some drivers cannot report affected rows; treat as zero.
		affected = 0
	}
	return &Result{RowsAffected: affected}, nil
}

// ListTables returns the table names of a source, per-dialect.
func (e *SQLExecutor) ListTables(ctx context.Context, src string) ([]string, error) {
	cfg, ok := e.registry.Config(src)
	if !ok {
		return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
	}

	var statement string
	switch cfg.Driver {
	case "mysql":
		statement = "SHOW TABLES"
	case "postgres":
		statement = "SELECT table_name FROM information_schema.tables WHERE table_schema = 'public' ORDER BY table_name"
	case "sqlite":
		statement = "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
	default:
		return nil, mdberrors.NewInvalidParameterError("driver", "unsupported driver: "+cfg.Driver)
	}

	result, err := e.Run(ctx, src, statement)
	if err != nil {
		return nil, err
	}

	tables := make([]string, 0, len(result.Rows))
	for _, row := range result.Rows {
		for _, v := range row {
			if s, ok := v.(string); ok {
				tables = append(tables, s)
			}
			break
		}
	}
	return tables, nil
}

// DescribeTable returns column metadata for a table, per-dialect.
func (e *SQLExecutor) DescribeTable(ctx context.Context, src, table string) ([]ColumnInfo, error) {
	cfg, ok := e.registry.Config(src)
	if !ok {
		return nil, mdberrors.NewSourceUnknownError(src, e.registry.Names())
	}

	switch cfg.Driver {
	case "mysql":
		result, err := e.Run(ctx, src, "DESCRIBE "+quoteIdent(table, "`"))
		if err != nil {
			return nil, err
		}
		cols := make([]ColumnInfo, 0, len(result.Rows))
		for _, row := range result.Rows {
			cols = append(cols, ColumnInfo{
				Name:     asString(row["Field"]),
				Type:     asString(row["Type"]),
				Nullable: strings.EqualFold(asString(row["Null"]), "YES"),
				Key:      asString(row["Key"]),
				Default:  asString(row["Default"]),
			})
		}
		return cols, nil
	case "postgres":
		result, err := e.Run(ctx, src,
			"SELECT column_name, data_type, is_nullable, column_default FROM information_schema.columns WHERE table_name = $1 ORDER BY ordinal_position",
			table)
		if err != nil {
			return nil, err
		}
		cols := make([]ColumnInfo, 0, len(result.Rows))
		for _, row := range result.Rows {
			cols = append(cols, ColumnInfo{
				Name:     asString(row["column_name"]),
				Type:     asString(row["data_type"]),
				Nullable: strings.EqualFold(asString(row["is_nullable"]), "YES"),
				Default:  asString(row["column_default"]),
			})
		}
		return cols, nil
	case "sqlite":
		result, err := e.Run(ctx, src, "PRAGMA table_info("+quoteIdent(table, `"`)+")")
		if err != nil {
			return nil, err
		}
		cols := make([]ColumnInfo, 0, len(result.Rows))
		for _, row := range result.Rows {
			key := ""
			if asInt(row["pk"]) > 0 {
				key = "PRI"
			}
			cols = append(cols, ColumnInfo{
				Name:     asString(row["name"]),
				Type:     asString(row["type"]),
				Nullable: asInt(row["notnull"]) == 0,
				Key:      key,
				Default:  asString(row["dflt_value"]),
			})
		}
		return cols, nil
	default:
		return nil, mdberrors.NewInvalidParameterError("driver", "unsupported driver: "+cfg.Driver)
	}
}

// Ping probes connectivity to one source.
func (e *SQLExecutor) Ping(ctx context.Context, src string) error {
	db, err := e.pool(src)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		return mdberrors.NewConnectionError(src, err)
	}
	return nil
}

// Close closes all open pools.
func (e *SQLExecutor) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var firstErr error
	for name, db := range e.pools {
		if err := db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		delete(e.pools, name)
	}
	return firstErr
}

// IsReadStatement reports whether a statement is row-returning rather
// than a mutation, judged by its leading keyword.
func IsReadStatement(statement string) bool {
	head := strings.ToUpper(strings.TrimSpace(statement))
	for _, prefix := range []string{"SELECT", "SHOW", "DESCRIBE", "EXPLAIN", "PRAGMA", "WITH"} {
		if strings.HasPrefix(head, prefix) {
			return true
		}
	}
	return false
}

func normalizeValue(v interface{}) interface{} {
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return v
}

func asString(v interface{}) string {
	switch s := v.(type) {
	case string:
		return s
	case []byte:
		return string(s)
	case nil:
		return ""
	default:
		return fmt.Sprintf("%v", s)
	}
}

func asInt(v interface{}) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case float64:
		return int(n)
	case string:
		if n == "1" {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// quoteIdent wraps an identifier in the dialect's quote character,
// doubling embedded quotes.
func quoteIdent(ident, quote string) string {
	return quote + strings.ReplaceAll(ident, quote, quote+quote) + quote
}
