// Package sql provides the database/sql backed driver used by the
// introspection layer.
//
// # Opening a connection
//
// Open takes the name of a driver registered with database/sql. The SQL family
// is derived from that name, so alternative drivers map onto the same dialect:
//
//	drv, err := sql.Open("pgx", "postgres://localhost:5432/app")
//	if err != nil {
//	    return err
//	}
//	defer drv.Close()
//	drv.Dialect() // "postgres"
//
// # Server version
//
// Version issues the family's version statement and returns the reported
// string, or an empty string when the server reports none:
//
//	v, err := drv.Version(ctx)
//
// # Statistics
//
// StatsDriver counts every statement that reaches the connection, which makes
// it possible to assert how many round-trips an operation needed:
//
//	sd := sql.NewStatsDriver(drv, sql.WithQueryLogger(logger))
//	_ = sd.QueryStats().Stats().RoundTrips()
package sql
