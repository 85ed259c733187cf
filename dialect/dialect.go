package dialect

import (
	"context"
	"strings"
)

// Dialect names for the supported SQL families.
const (
	Postgres = "postgres"
	MySQL    = "mysql"
	SQLite   = "sqlite"
	MSSQL    = "sqlserver"
)

// Families lists every supported SQL family in a stable order.
var Families = []string{Postgres, MySQL, SQLite, MSSQL}

// driverFamilies maps database/sql driver names to their SQL family.
// Prefix matching covers wrapped drivers (e.g. "postgres-otel").
var driverFamilies = []struct{ prefix, family string }{
	{"postgres", Postgres},
	{"pgx", Postgres},
	{"mysql", MySQL},
	{"sqlite", SQLite},
	{"sqlserver", MSSQL},
	{"mssql", MSSQL},
}

// Family returns the SQL family of the given database/sql driver name,
// or an empty string if the driver is unknown.
func Family(driverName string) string {
	for _, d := range driverFamilies {
		if strings.HasPrefix(driverName, d.prefix) {
			return d.family
		}
	}
	return ""
}

// Querier wraps the read operation used to probe a connection.
type Querier interface {
	// Query executes a query that returns rows, typically a SELECT in SQL.
	// It scans the result into the pointer v. For SQL drivers, it is *dialect/sql.Rows.
	Query(ctx context.Context, query string, args, v any) error
}

// Driver is the interface that wraps all necessary operations for the
// introspection layer.
type Driver interface {
	Querier
	// Version returns the server version string reported by the connection.
	// An empty string means the server did not report one.
	Version(ctx context.Context) (string, error)
	// Close closes the underlying connection.
	Close() error
	// Dialect returns the dialect of the driver.
	Dialect() string
}
