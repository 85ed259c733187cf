package introspect

import (
	"context"
	"strings"

	"ariga.io/atlas/sql/schema"
	"go.uber.org/zap"

	"github.com/syssam/introspect/dialect"
	"github.com/syssam/introspect/dialect/sql"
)

// PostgresProvider is the declared provider under which a CockroachDB
// connection keeps Postgres native types.
const PostgresProvider = "postgresql"

// versionNumQuery reads the numeric Postgres server version. The text is
// sent verbatim.
const versionNumQuery = "select current_setting('server_version_num')::integer as version;"

// partitionVersion is the first server_version_num with declarative
// table partitioning (Postgres 10).
const partitionVersion = 100000

// Conn is the connection a describer is resolved against. Both
// dialect/sql.Driver and dialect/sql.StatsDriver implement it.
type Conn interface {
	schema.ExecQuerier
	// Version returns the server version string.
	Version(ctx context.Context) (string, error)
}

// LoadDescriber inspects the connection and returns the describer for its
// SQL family together with the capabilities of the server.
//
// For Postgres, a version string containing "CockroachDB" selects the
// CockroachDB flags and no further statement is issued. Otherwise the
// numeric server version is probed once; a missing or NULL value leaves
// the capability unknown. Other families have no capabilities.
//
// Probe failures are returned as *ConnectivityError and are never retried.
// The connection is borrowed and the returned describer keeps using it.
func LoadDescriber(ctx context.Context, conn Conn, info ConnectionInfo, provider string, opts ...Option) (Describer, Circumstances, error) {
	cfg := newConfig(opts...)
	family := info.SQLFamily()
	switch family {
	case dialect.Postgres, dialect.MySQL, dialect.SQLite, dialect.MSSQL:
	default:
		return nil, 0, &UnsupportedDialectError{Dialect: family}
	}
	version, err := conn.Version(ctx)
	if err != nil {
		return nil, 0, &ConnectivityError{Op: "version", Err: err}
	}
	log := cfg.log.With(zap.String("dialect", family), zap.String("version", version))
	switch family {
	case dialect.Postgres:
		c, err := postgresCircumstances(ctx, conn, version, provider, log)
		if err != nil {
			return nil, 0, err
		}
		log.Debug("resolved describer", zap.Stringer("circumstances", c))
		return NewPostgresDescriber(conn, c), c, nil
	case dialect.MySQL:
		log.Debug("resolved describer")
		return NewMySQLDescriber(conn), 0, nil
	case dialect.SQLite:
		log.Debug("resolved describer")
		return NewSQLiteDescriber(conn), 0, nil
	default:
		log.Debug("resolved describer")
		return NewMSSQLDescriber(conn), 0, nil
	}
}

func postgresCircumstances(ctx context.Context, conn Conn, version, provider string, log *zap.Logger) (Circumstances, error) {
	var c Circumstances
	if strings.Contains(version, "CockroachDB") {
		c |= Cockroach
		if provider == PostgresProvider {
			c |= CockroachWithPostgresNativeTypes
		}
		return c, nil
	}
	rows, err := conn.QueryContext(ctx, versionNumQuery)
	if err != nil {
		return 0, &ConnectivityError{Op: "server_version_num", Err: err}
	}
	num, ok, err := sql.ScanInt64Column(rows, "version")
	if err != nil {
		return 0, &ConnectivityError{Op: "server_version_num", Err: err}
	}
	if !ok {
		log.Debug("server_version_num unavailable")
		return c, nil
	}
	if num >= partitionVersion {
		c |= CanPartitionTables
	}
	return c, nil
}
