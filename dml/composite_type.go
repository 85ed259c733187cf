package dml

// CompositeType is a named structural type embedded in models. Composite
// types take no part in relation resolution.
type CompositeType struct {
	Name   string
	Fields []*CompositeTypeField
}

// CompositeTypeField is a member of a CompositeType. Exactly one of Type and
// CompositeType is set.
type CompositeTypeField struct {
	Name         string
	DatabaseName string
	Type         ScalarType
	// CompositeType names a nested composite type.
	CompositeType string
	Arity         Arity
}

// FindField finds a field of the composite type by name.
func (c *CompositeType) FindField(name string) (*CompositeTypeField, bool) {
	for _, f := range c.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return nil, false
}
