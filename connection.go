package introspect

import (
	"net"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/syssam/introspect/dialect"
)

// ConnectionInfo describes what a connection URL points at.
type ConnectionInfo struct {
	// Family is the SQL family (one of the dialect constants).
	Family string
	// DriverName is the database/sql driver used to open the connection.
	DriverName string
	// DSN is the data source name handed to the driver.
	DSN string
	// Schema is the schema (or database, for MySQL) to describe.
	Schema string
}

// SQLFamily returns the SQL family of the connection.
func (c ConnectionInfo) SQLFamily() string { return c.Family }

// Default schema names per family.
const (
	defaultPostgresSchema = "public"
	defaultSQLiteSchema   = "main"
	defaultMSSQLSchema    = "dbo"
)

// ParseConnectionInfo parses a connection URL. Supported schemes:
//
//	postgres://, postgresql://  Postgres through lib/pq
//	pgx://                      Postgres through pgx
//	mysql://                    MySQL through go-sql-driver/mysql
//	file:, sqlite:              SQLite through modernc.org/sqlite
//	sqlserver://                SQL Server through go-mssqldb
//
// Postgres and SQL Server URLs accept a "schema" query parameter, which is
// removed before the URL is handed to the driver.
func ParseConnectionInfo(rawURL string) (ConnectionInfo, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return ConnectionInfo{}, &ConnectionInfoError{Message: "parse", Cause: err}
	}
	switch u.Scheme {
	case "postgres", "postgresql":
		schema := popSchema(u, defaultPostgresSchema)
		return ConnectionInfo{Family: dialect.Postgres, DriverName: "postgres", DSN: u.String(), Schema: schema}, nil
	case "pgx":
		schema := popSchema(u, defaultPostgresSchema)
		u.Scheme = "postgres"
		return ConnectionInfo{Family: dialect.Postgres, DriverName: "pgx", DSN: u.String(), Schema: schema}, nil
	case "mysql":
		return parseMySQL(u)
	case "file":
		return ConnectionInfo{Family: dialect.SQLite, DriverName: "sqlite", DSN: rawURL, Schema: defaultSQLiteSchema}, nil
	case "sqlite":
		path := strings.TrimPrefix(strings.TrimPrefix(rawURL, "sqlite:"), "//")
		if path == "" {
			return ConnectionInfo{}, &ConnectionInfoError{Message: "missing sqlite database path"}
		}
		return ConnectionInfo{Family: dialect.SQLite, DriverName: "sqlite", DSN: "file:" + path, Schema: defaultSQLiteSchema}, nil
	case "sqlserver":
		schema := popSchema(u, defaultMSSQLSchema)
		return ConnectionInfo{Family: dialect.MSSQL, DriverName: "sqlserver", DSN: u.String(), Schema: schema}, nil
	default:
		return ConnectionInfo{}, &ConnectionInfoError{Message: "unsupported scheme " + u.Scheme}
	}
}

func popSchema(u *url.URL, fallback string) string {
	q := u.Query()
	schema := q.Get("schema")
	if !q.Has("schema") {
		return fallback
	}
	q.Del("schema")
	u.RawQuery = q.Encode()
	if schema == "" {
		return fallback
	}
	return schema
}

func parseMySQL(u *url.URL) (ConnectionInfo, error) {
	cfg := mysql.NewConfig()
	if u.User != nil {
		cfg.User = u.User.Username()
		cfg.Passwd, _ = u.User.Password()
	}
	host, port := u.Hostname(), u.Port()
	if host == "" {
		return ConnectionInfo{}, &ConnectionInfoError{Message: "missing mysql host"}
	}
	if port == "" {
		port = "3306"
	}
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(host, port)
	cfg.DBName = strings.TrimPrefix(u.Path, "/")
	if params := u.Query(); len(params) > 0 {
		cfg.Params = make(map[string]string, len(params))
		for k := range params {
			cfg.Params[k] = params.Get(k)
		}
	}
	return ConnectionInfo{Family: dialect.MySQL, DriverName: "mysql", DSN: cfg.FormatDSN(), Schema: cfg.DBName}, nil
}
