package translate

import (
	"strings"

	"ariga.io/atlas/sql/postgres"
	"ariga.io/atlas/sql/schema"

	"github.com/syssam/introspect/dml"
)

// Datamodel builds a datamodel from a described schema. Every table becomes
// a model with dense ids in table order, and every foreign key becomes a
// pair of relation fields: the forward field on the owning model and the
// back-relation field on the referenced model. No other relations are
// inferred.
func Datamodel(s *schema.Schema) *dml.Datamodel {
	b := &builder{
		dm:        dml.New(),
		models:    make(map[*schema.Table]*dml.Model, len(s.Tables)),
		relations: make(map[string]bool),
	}
	for _, t := range s.Tables {
		b.addModel(t)
	}
	for _, t := range s.Tables {
		for _, fk := range t.ForeignKeys {
			b.addRelation(t, fk)
		}
	}
	return b.dm
}

type builder struct {
	dm        *dml.Datamodel
	models    map[*schema.Table]*dml.Model
	relations map[string]bool
}

func (b *builder) addModel(t *schema.Table) {
	m := &dml.Model{
		ID:   b.dm.NextModelID(),
		Name: modelName(t.Name),
	}
	m.Name = uniqueName(m.Name, func(name string) bool {
		_, ok := b.dm.FindModel(name)
		return ok
	})
	if m.Name != t.Name {
		m.DatabaseName = t.Name
	}
	for _, c := range t.Columns {
		m.AddField(scalarField(t, c))
	}
	b.dm.AddModel(m)
	b.models[t] = m
}

func scalarField(t *schema.Table, c *schema.Column) *dml.ScalarField {
	f := &dml.ScalarField{
		Name:  c.Name,
		Arity: dml.Required,
		IsID:  inPrimaryKey(t, c),
	}
	if c.Type != nil {
		f.Type = scalarType(c.Type.Type)
		f.NativeType = c.Type.Raw
		if c.Type.Null && !f.IsID {
			f.Arity = dml.Optional
		}
	} else {
		f.Type = dml.TypeUnsupported
	}
	f.IsUnique = !f.IsID && uniqueColumns(t, []*schema.Column{c})
	switch x := c.Default.(type) {
	case *schema.Literal:
		f.Default = x.V
	case *schema.RawExpr:
		f.Default = x.X
	}
	return f
}

func scalarType(t schema.Type) dml.ScalarType {
	switch t := t.(type) {
	case *schema.IntegerType:
		if strings.Contains(strings.ToLower(t.T), "big") || t.T == "int8" {
			return dml.TypeBigInt
		}
		return dml.TypeInt
	case *postgres.SerialType:
		if t.T == "bigserial" || t.T == "serial8" {
			return dml.TypeBigInt
		}
		return dml.TypeInt
	case *schema.BoolType:
		return dml.TypeBoolean
	case *schema.StringType, *schema.EnumType, *schema.UUIDType:
		return dml.TypeString
	case *schema.TimeType:
		return dml.TypeDateTime
	case *schema.DecimalType:
		return dml.TypeDecimal
	case *schema.FloatType:
		return dml.TypeFloat
	case *schema.BinaryType:
		return dml.TypeBytes
	case *schema.JSONType:
		return dml.TypeJSON
	default:
		return dml.TypeUnsupported
	}
}

func (b *builder) addRelation(t *schema.Table, fk *schema.ForeignKey) {
	m, rm := b.models[t], b.models[fk.RefTable]
	// References into other schemas have no model.
	if m == nil || rm == nil {
		return
	}
	name := b.relationName(fk, m, rm)
	fields := make([]string, len(fk.Columns))
	optional := false
	for i, c := range fk.Columns {
		fields[i] = c.Name
		if c.Type != nil && c.Type.Null {
			optional = true
		}
	}
	refs := make([]string, len(fk.RefColumns))
	for i, c := range fk.RefColumns {
		refs[i] = c.Name
	}

	forward := &dml.RelationField{
		Name:  uniqueFieldName(m, forwardFieldName(fk, rm)),
		Arity: dml.Required,
		RelationInfo: dml.RelationInfo{
			Name:            name,
			ReferencedModel: rm.ID,
			Fields:          fields,
			References:      refs,
			OnDelete:        referentialAction(fk.OnDelete),
			OnUpdate:        referentialAction(fk.OnUpdate),
		},
	}
	if optional {
		forward.Arity = dml.Optional
	}
	m.AddField(forward)

	list := !uniqueColumns(t, fk.Columns)
	base := backFieldName(m.Name, list)
	if m.ID == rm.ID {
		base = "other" + pascal(base)
	}
	back := &dml.RelationField{
		Name:  uniqueFieldName(rm, base),
		Arity: dml.List,
		RelationInfo: dml.RelationInfo{
			Name:            name,
			ReferencedModel: m.ID,
		},
	}
	if !list {
		back.Arity = dml.Optional
	}
	rm.AddField(back)
}

// relationName returns the constraint symbol of the foreign key, or
// "<Model>To<Ref>" if the symbol is empty or already names a relation.
func (b *builder) relationName(fk *schema.ForeignKey, m, rm *dml.Model) string {
	name := fk.Symbol
	if name == "" || b.relations[name] {
		name = uniqueName(m.Name+"To"+rm.Name, func(name string) bool { return b.relations[name] })
	}
	b.relations[name] = true
	return name
}

// forwardFieldName names the forward field after its single referencing
// column without the id suffix ("author_id" => "author"), or after the
// referenced model.
func forwardFieldName(fk *schema.ForeignKey, rm *dml.Model) string {
	if len(fk.Columns) == 1 {
		c := fk.Columns[0].Name
		for _, suffix := range []string{"_id", "Id", "ID"} {
			if trimmed := strings.TrimSuffix(c, suffix); trimmed != c && trimmed != "" {
				return camel(trimmed)
			}
		}
	}
	return camel(rm.Name)
}

func uniqueFieldName(m *dml.Model, base string) string {
	return uniqueName(base, func(name string) bool {
		_, ok := m.FindField(name)
		return ok
	})
}

func referentialAction(o schema.ReferenceOption) dml.ReferentialAction {
	switch o {
	case schema.NoAction:
		return dml.NoAction
	case schema.Restrict:
		return dml.Restrict
	case schema.Cascade:
		return dml.Cascade
	case schema.SetNull:
		return dml.SetNull
	case schema.SetDefault:
		return dml.SetDefault
	default:
		return ""
	}
}

func inPrimaryKey(t *schema.Table, c *schema.Column) bool {
	if t.PrimaryKey == nil {
		return false
	}
	for _, p := range t.PrimaryKey.Parts {
		if p.C == c {
			return true
		}
	}
	return false
}

// uniqueColumns reports if the columns are exactly the primary key or a
// unique index of the table.
func uniqueColumns(t *schema.Table, columns []*schema.Column) bool {
	if t.PrimaryKey != nil && sameColumns(t.PrimaryKey.Parts, columns) {
		return true
	}
	for _, idx := range t.Indexes {
		if idx.Unique && sameColumns(idx.Parts, columns) {
			return true
		}
	}
	return false
}

func sameColumns(parts []*schema.IndexPart, columns []*schema.Column) bool {
	if len(parts) != len(columns) {
		return false
	}
	for i, p := range parts {
		if p.C != columns[i] {
			return false
		}
	}
	return true
}
