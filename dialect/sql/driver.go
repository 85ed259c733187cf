package sql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"reflect"
	"strconv"

	"github.com/syssam/introspect/dialect"
)

// versionQueries holds the statement used by each family to report its
// server version as a single string column.
var versionQueries = map[string]string{
	dialect.Postgres: "SELECT version()",
	dialect.MySQL:    "SELECT @@GLOBAL.version",
	dialect.SQLite:   "SELECT sqlite_version()",
	dialect.MSSQL:    "SELECT @@VERSION",
}

// Driver is a dialect.Driver implementation for SQL based databases.
type Driver struct {
	Conn
	dialect string
}

// NewDriver creates a new Driver with the given Conn and dialect.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open wraps the database/sql.Open method and returns a dialect.Driver.
// The driverName is the name registered with database/sql ("postgres",
// "pgx", "mysql", "sqlite", "sqlserver").
func Open(driverName, source string) (*Driver, error) {
	db, err := sql.Open(driverName, source)
	if err != nil {
		return nil, err
	}
	return OpenDB(driverName, db), nil
}

// OpenDB wraps the given database/sql.DB method with a Driver.
func OpenDB(driverName string, db *sql.DB) *Driver {
	return NewDriver(driverName, Conn{db, driverName})
}

// DB returns the underlying *sql.DB instance.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect implements the dialect.Dialect method.
func (d Driver) Dialect() string {
	if f := dialect.Family(d.dialect); f != "" {
		return f
	}
	return d.dialect
}

// Version reports the server version string. A server that returns no row,
// or a NULL value, yields an empty string and no error.
func (d Driver) Version(ctx context.Context) (string, error) {
	query, ok := versionQueries[d.Dialect()]
	if !ok {
		return "", fmt.Errorf("dialect/sql: version: unsupported dialect %q", d.dialect)
	}
	rows := &Rows{}
	if err := d.Query(ctx, query, []any{}, rows); err != nil {
		return "", err
	}
	defer rows.Close()
	var v NullString
	if rows.Next() {
		if err := rows.Scan(&v); err != nil {
			return "", fmt.Errorf("dialect/sql: version: %w", err)
		}
	}
	if err := rows.Err(); err != nil {
		return "", fmt.Errorf("dialect/sql: version: %w", err)
	}
	return v.String, nil
}

// Close closes the underlying connection.
func (d *Driver) Close() error { return d.DB().Close() }

// ExecQuerier wraps the standard Exec and Query methods.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Conn implements dialect.Querier given ExecQuerier.
type Conn struct {
	ExecQuerier
	dialect string
}

// Query implements the dialect.Query method.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect *sql.Rows", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: invalid type %T. expect []any for args", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return fmt.Errorf("dialect/sql: query: %w", err)
	}
	*vr = Rows{rows}
	return nil
}

var _ dialect.Driver = (*Driver)(nil)

type (
	// Rows wraps the sql.Rows to avoid locks copy.
	Rows struct{ ColumnScanner }
	// NullString is an alias to sql.NullString.
	NullString = sql.NullString
)

// ColumnScanner is the interface that wraps the standard
// sql.Rows methods used for scanning database rows.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}

// ScanInt64Column reads the named column of the first row as an integer.
// ok is false when there is no row, no such column, or the value is NULL or
// not an integer.
func ScanInt64Column(rows ColumnScanner, name string) (v int64, ok bool, err error) {
	defer func() { err = errors.Join(err, rows.Close()) }()
	columns, err := rows.Columns()
	if err != nil {
		return 0, false, err
	}
	idx := -1
	for i, c := range columns {
		if c == name {
			idx = i
			break
		}
	}
	if !rows.Next() {
		return 0, false, rows.Err()
	}
	if idx == -1 {
		return 0, false, nil
	}
	dest := make([]any, len(columns))
	for i := range dest {
		dest[i] = new(any)
	}
	if err := rows.Scan(dest...); err != nil {
		return 0, false, err
	}
	v, ok = asInt64(*dest[idx].(*any))
	return v, ok, nil
}

// asInt64 converts a driver value to an integer. Text values are parsed.
func asInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int64:
		return v, true
	case []byte:
		n, err := strconv.ParseInt(string(v), 10, 64)
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		if u := rv.Uint(); u <= math.MaxInt64 {
			return int64(u), true
		}
	}
	return 0, false
}
