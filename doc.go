// Package introspect resolves how the schema of a live SQL connection is read.
//
// LoadDescriber inspects a connection, selects the Describer for its SQL
// family and computes the Circumstances of the server: whether it is
// CockroachDB, whether it keeps Postgres native types, and whether it
// supports declarative partitioning. Describers read the raw schema into
// atlas schema types; the translate package turns those into a
// dml.Datamodel.
//
//	info, err := introspect.ParseConnectionInfo(os.Getenv("DATABASE_URL"))
//	if err != nil {
//		return err
//	}
//	drv, err := sql.Open(info.DriverName, info.DSN)
//	if err != nil {
//		return err
//	}
//	defer drv.Close()
//	d, caps, err := introspect.LoadDescriber(ctx, drv, info, "")
//	if err != nil {
//		return err
//	}
//	s, err := d.Describe(ctx, info.Schema)
package introspect
