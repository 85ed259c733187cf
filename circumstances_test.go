package introspect

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCircumstances(t *testing.T) {
	tests := []struct {
		c     Circumstances
		names []string
		str   string
	}{
		{0, []string{}, "None"},
		{Cockroach, []string{"Cockroach"}, "Cockroach"},
		{Cockroach | CockroachWithPostgresNativeTypes, []string{"Cockroach", "CockroachWithPostgresNativeTypes"}, "Cockroach|CockroachWithPostgresNativeTypes"},
		{CanPartitionTables, []string{"CanPartitionTables"}, "CanPartitionTables"},
	}
	for _, tt := range tests {
		t.Run(tt.str, func(t *testing.T) {
			assert.Equal(t, tt.names, tt.c.Names())
			assert.Equal(t, tt.str, tt.c.String())
		})
	}
}

func TestCircumstances_Has(t *testing.T) {
	c := Cockroach | CanPartitionTables
	assert.True(t, c.Has(Cockroach))
	assert.True(t, c.Has(CanPartitionTables))
	assert.True(t, c.Has(Cockroach|CanPartitionTables))
	assert.False(t, c.Has(CockroachWithPostgresNativeTypes))
	assert.False(t, c.Has(Cockroach|CockroachWithPostgresNativeTypes))
	assert.False(t, c.Has(0))
}

func TestCircumstances_Distinct(t *testing.T) {
	flags := []Circumstances{Cockroach, CockroachWithPostgresNativeTypes, CanPartitionTables}
	var all Circumstances
	for _, f := range flags {
		assert.Zero(t, all&f)
		all |= f
	}
}
