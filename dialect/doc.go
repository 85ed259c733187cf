// Package dialect names the SQL families understood by the introspection layer.
//
// # Supported Dialects
//
//   - Postgres: PostgreSQL and wire-compatible forks (CockroachDB)
//   - MySQL: MySQL/MariaDB
//   - SQLite: SQLite
//   - MSSQL: Microsoft SQL Server
//
// # Dialect Constants
//
//	dialect.Postgres = "postgres"
//	dialect.MySQL    = "mysql"
//	dialect.SQLite   = "sqlite"
//	dialect.MSSQL    = "sqlserver"
//
// # Driver Interface
//
//	type Driver interface {
//	    Query(ctx context.Context, query string, args, v any) error
//	    Version(ctx context.Context) (string, error)
//	    Close() error
//	    Dialect() string
//	}
//
// Driver names registered with database/sql are mapped to their family with
// Family, so wrapped or alternative drivers ("pgx", "mssql") resolve to the
// same dialect:
//
//	dialect.Family("pgx") // "postgres"
//
// # Sub-packages
//
//   - dialect/sql: database/sql backed driver implementation
package dialect
