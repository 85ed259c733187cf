package dml

// ModelID identifies a model independently of its name, so lookups by id
// survive renames.
type ModelID uint32

// Model is a named container of fields, created once per table-like entity.
type Model struct {
	ID   ModelID
	Name string
	// DatabaseName remaps the model to a differently named table.
	// Empty means no remap.
	DatabaseName  string
	Fields        []Field
	Documentation string
	IsIgnored     bool
}

// FinalDatabaseName returns the table name of the model.
func (m *Model) FinalDatabaseName() string {
	if m.DatabaseName != "" {
		return m.DatabaseName
	}
	return m.Name
}

// AddField appends a field to the model.
func (m *Model) AddField(f Field) {
	m.Fields = append(m.Fields, f)
}

// FindField finds a field by name.
func (m *Model) FindField(name string) (Field, bool) {
	for _, f := range m.Fields {
		if f.FieldName() == name {
			return f, true
		}
	}
	return nil, false
}

// FindScalarField finds a scalar field by name.
func (m *Model) FindScalarField(name string) (*ScalarField, bool) {
	for _, f := range m.ScalarFields() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// FindRelationField finds a relation field by name.
func (m *Model) FindRelationField(name string) (*RelationField, bool) {
	for _, f := range m.RelationFields() {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}

// ScalarFields returns the scalar fields of the model in declaration order.
func (m *Model) ScalarFields() []*ScalarField {
	var fields []*ScalarField
	for _, f := range m.Fields {
		if sf, ok := AsScalarField(f); ok {
			fields = append(fields, sf)
		}
	}
	return fields
}

// RelationFields returns the relation fields of the model in declaration order.
func (m *Model) RelationFields() []*RelationField {
	var fields []*RelationField
	for _, f := range m.Fields {
		if rf, ok := AsRelationField(f); ok {
			fields = append(fields, rf)
		}
	}
	return fields
}

// IDFields returns the scalar fields that form the primary key.
func (m *Model) IDFields() []*ScalarField {
	var fields []*ScalarField
	for _, f := range m.ScalarFields() {
		if f.IsID {
			fields = append(fields, f)
		}
	}
	return fields
}
