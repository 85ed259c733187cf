package introspect

import (
	"context"
	"fmt"
	"sync"

	"ariga.io/atlas/sql/migrate"
	"ariga.io/atlas/sql/mysql"
	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"
	"ariga.io/atlas/sql/sqlite"
	"golang.org/x/sync/errgroup"

	"github.com/syssam/introspect/dialect"
)

// Describer reads the raw schema structure of one database dialect.
//
// The set of describers is closed: PostgresDescriber, MySQLDescriber,
// SQLiteDescriber and MSSQLDescriber are the only implementations.
type Describer interface {
	// Dialect returns the SQL family the describer reads.
	Dialect() string
	// Describe reads the tables, columns, indexes and foreign keys of the
	// named schema.
	Describe(ctx context.Context, schemaName string) (*schema.Schema, error)
	describer()
}

// inspector opens an atlas driver on first use, so that constructing a
// describer issues no statements.
type inspector struct {
	conn schema.ExecQuerier
	open func(schema.ExecQuerier) (migrate.Driver, error)
	once sync.Once
	drv  migrate.Driver
	err  error
}

func (i *inspector) inspect(ctx context.Context, name string) (*schema.Schema, error) {
	i.once.Do(func() {
		i.drv, i.err = i.open(i.conn)
	})
	if i.err != nil {
		return nil, fmt.Errorf("introspect: open inspector: %w", i.err)
	}
	s, err := i.drv.InspectSchema(ctx, name, &schema.InspectOptions{})
	if err != nil {
		return nil, fmt.Errorf("introspect: inspect schema %q: %w", name, err)
	}
	return s, nil
}

// PostgresDescriber describes Postgres and CockroachDB schemas.
type PostgresDescriber struct {
	inspector
	circumstances Circumstances
}

// NewPostgresDescriber returns a Postgres describer for the given
// connection and capability set.
func NewPostgresDescriber(conn schema.ExecQuerier, c Circumstances) *PostgresDescriber {
	return &PostgresDescriber{
		inspector:     inspector{conn: conn, open: postgres.Open},
		circumstances: c,
	}
}

// Circumstances returns the capability set the describer was created with.
func (d *PostgresDescriber) Circumstances() Circumstances { return d.circumstances }

// Dialect implements the Describer interface.
func (*PostgresDescriber) Dialect() string { return dialect.Postgres }

// Describe implements the Describer interface.
func (d *PostgresDescriber) Describe(ctx context.Context, schemaName string) (*schema.Schema, error) {
	return d.inspect(ctx, schemaName)
}

func (*PostgresDescriber) describer() {}

// MySQLDescriber describes MySQL and MariaDB databases.
type MySQLDescriber struct {
	inspector
}

// NewMySQLDescriber returns a MySQL describer for the given connection.
func NewMySQLDescriber(conn schema.ExecQuerier) *MySQLDescriber {
	return &MySQLDescriber{inspector: inspector{conn: conn, open: mysql.Open}}
}

// Dialect implements the Describer interface.
func (*MySQLDescriber) Dialect() string { return dialect.MySQL }

// Describe implements the Describer interface. The schema name is the
// database name; an empty name describes the connected database.
func (d *MySQLDescriber) Describe(ctx context.Context, schemaName string) (*schema.Schema, error) {
	return d.inspect(ctx, schemaName)
}

func (*MySQLDescriber) describer() {}

// SQLiteDescriber describes SQLite databases.
type SQLiteDescriber struct {
	inspector
}

// NewSQLiteDescriber returns a SQLite describer for the given connection.
func NewSQLiteDescriber(conn schema.ExecQuerier) *SQLiteDescriber {
	return &SQLiteDescriber{inspector: inspector{conn: conn, open: sqlite.Open}}
}

// Dialect implements the Describer interface.
func (*SQLiteDescriber) Dialect() string { return dialect.SQLite }

// Describe implements the Describer interface.
func (d *SQLiteDescriber) Describe(ctx context.Context, schemaName string) (*schema.Schema, error) {
	return d.inspect(ctx, schemaName)
}

func (*SQLiteDescriber) describer() {}

// DescribeSchemas describes several schemas concurrently. The results are
// returned in the order of names.
func DescribeSchemas(ctx context.Context, d Describer, names ...string) ([]*schema.Schema, error) {
	schemas := make([]*schema.Schema, len(names))
	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			s, err := d.Describe(ctx, name)
			if err != nil {
				return err
			}
			schemas[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return schemas, nil
}

var (
	_ Describer = (*PostgresDescriber)(nil)
	_ Describer = (*MySQLDescriber)(nil)
	_ Describer = (*SQLiteDescriber)(nil)
	_ Describer = (*MSSQLDescriber)(nil)
)
