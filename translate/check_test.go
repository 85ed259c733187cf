package translate

import (
	"errors"
	"testing"

	"ariga.io/atlas/sql/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheck(t *testing.T) {
	r := Check(shop())
	assert.False(t, r.HasErrors())
	assert.False(t, r.HasWarnings())
	assert.NoError(t, r.Err())
	assert.Equal(t, "No issues found", r.String())
}

func TestCheck_Issues(t *testing.T) {
	var (
		id      = intColumn("id", false)
		ghost   = intColumn("ghost", false)
		tags    = schema.NewTable("tags").AddColumns(id, intColumn("id", false))
		geom    = schema.NewColumn("area").SetType(&schema.UnsupportedType{T: "geometry"})
		regions = schema.NewTable("regions").AddColumns(geom)
		other   = schema.New("audit").AddTables(schema.NewTable("events").AddColumns(intColumn("id", false)))
	)
	geom.Type.Raw = "geometry"
	tags.SetPrimaryKey(schema.NewPrimaryKey(id))
	tags.AddIndexes(
		schema.NewIndex("tags_idx").AddColumns(id),
		schema.NewIndex("tags_idx").AddColumns(ghost),
	)
	events, _ := other.Table("events")
	regions.AddForeignKeys(
		schema.NewForeignKey("regions_event_fkey").AddColumns(geom).SetRefTable(events).AddRefColumns(events.Columns[0]),
		schema.NewForeignKey("regions_tag_fkey").AddColumns(geom).SetRefTable(tags),
	)

	r := Check(schema.New("public").AddTables(tags, regions))
	require.True(t, r.HasErrors())
	require.True(t, r.HasWarnings())

	var errs, warns []string
	for _, e := range r.Errors {
		errs = append(errs, e.Error())
	}
	for _, w := range r.Warnings {
		warns = append(warns, w.Error())
	}
	assert.Equal(t, []string{
		"tags.id: duplicate column name",
		"tags: duplicate index name: tags_idx",
		`tags: index "tags_idx" references non-existent column "ghost"`,
		`regions: foreign key "regions_tag_fkey" has 1 columns but 0 referenced columns`,
	}, errs)
	assert.Equal(t, []string{
		"regions: table has no primary key",
		`regions.area: unsupported type "geometry"`,
		`regions: foreign key "regions_event_fkey" references table "events" in schema "audit": no relation is generated`,
	}, warns)

	err := r.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrInvalidSchema))
	var issue *Issue
	require.True(t, errors.As(err, &issue))
	assert.Equal(t, "tags", issue.Table)
	assert.Contains(t, r.String(), "Errors:\n  - tags.id: duplicate column name\n")
	assert.Contains(t, r.String(), "Warnings:\n  - regions: table has no primary key\n")
}
