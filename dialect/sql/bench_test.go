package sql

import (
	"database/sql"
	"strconv"
	"testing"
	"time"

	"github.com/syssam/introspect/dialect"
)

// fakeRows is a single-row ColumnScanner without a driver behind it.
type fakeRows struct {
	columns []string
	values  []any
	read    bool
}

func (r *fakeRows) Close() error                            { return nil }
func (r *fakeRows) ColumnTypes() ([]*sql.ColumnType, error) { return nil, nil }
func (r *fakeRows) Columns() ([]string, error)              { return r.columns, nil }
func (r *fakeRows) Err() error                              { return nil }
func (r *fakeRows) NextResultSet() bool                     { return false }

func (r *fakeRows) Next() bool {
	if r.read {
		return false
	}
	r.read = true
	return true
}

func (r *fakeRows) Scan(dest ...any) error {
	for i, d := range dest {
		if d, ok := d.(*any); ok {
			*d = r.values[i]
		}
	}
	return nil
}

func BenchmarkScanInt64Column(b *testing.B) {
	for _, n := range []int{1, 8} {
		columns := make([]string, n)
		values := make([]any, n)
		for i := range columns {
			columns[i] = "c"
			values[i] = int64(i)
		}
		columns[n-1] = "version"
		values[n-1] = int64(160001)
		b.Run("columns="+strconv.Itoa(n), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				rows := &fakeRows{columns: columns, values: values}
				if _, _, err := ScanInt64Column(rows, "version"); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkStatsDriver_Record(b *testing.B) {
	sd := NewStatsDriver(NewDriver(dialect.Postgres, Conn{}), WithSlowThreshold(time.Hour))
	start := time.Now()
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		sd.record("SELECT version()", start, nil, true)
	}
}

func BenchmarkFamily(b *testing.B) {
	for _, name := range []string{"postgres", "pgx", "mysql", "sqlite3", "sqlserver", "unknown"} {
		b.Run(name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				dialect.Family(name)
			}
		})
	}
}
