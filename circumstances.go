package introspect

import "strings"

// Circumstances is the set of version- or fork-dependent capabilities of a
// connection. The flags are independent bits.
type Circumstances uint8

const (
	// Cockroach is set when the server is CockroachDB.
	Cockroach Circumstances = 1 << iota

	// CockroachWithPostgresNativeTypes is set when a CockroachDB server is
	// used with the postgresql provider.
	CockroachWithPostgresNativeTypes

	// CanPartitionTables is set for Postgres 10 and later.
	CanPartitionTables
)

var circumstanceNames = []struct {
	flag Circumstances
	name string
}{
	{Cockroach, "Cockroach"},
	{CockroachWithPostgresNativeTypes, "CockroachWithPostgresNativeTypes"},
	{CanPartitionTables, "CanPartitionTables"},
}

// Has reports whether all bits of flag are set in c.
func (c Circumstances) Has(flag Circumstances) bool { return flag != 0 && c&flag == flag }

// Names returns the names of the set flags in declaration order.
func (c Circumstances) Names() []string {
	names := []string{}
	for _, n := range circumstanceNames {
		if c.Has(n.flag) {
			names = append(names, n.name)
		}
	}
	return names
}

// String returns the set flags joined by "|", or "None".
func (c Circumstances) String() string {
	if names := c.Names(); len(names) > 0 {
		return strings.Join(names, "|")
	}
	return "None"
}
