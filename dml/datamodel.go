package dml

import "fmt"

// Datamodel owns all models and composite types. Insertion order is kept for
// stable output but has no meaning for lookups.
//
// A Datamodel is assembled by a single owner and is read-mostly afterwards.
// It must not be mutated while other goroutines read it.
type Datamodel struct {
	Models         []*Model
	CompositeTypes []*CompositeType
}

// New returns an empty datamodel.
func New() *Datamodel {
	return &Datamodel{}
}

// AddModel appends a model to the datamodel.
func (d *Datamodel) AddModel(m *Model) {
	d.Models = append(d.Models, m)
}

// AddCompositeType appends a composite type to the datamodel.
func (d *Datamodel) AddCompositeType(c *CompositeType) {
	d.CompositeTypes = append(d.CompositeTypes, c)
}

// NextModelID returns an id that no model of the datamodel uses.
func (d *Datamodel) NextModelID() ModelID {
	var next ModelID
	for _, m := range d.Models {
		if m.ID >= next {
			next = m.ID + 1
		}
	}
	return next
}

// FindModel finds a model by name.
func (d *Datamodel) FindModel(name string) (*Model, bool) {
	for _, m := range d.Models {
		if m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// FindModelByID finds a model by id.
func (d *Datamodel) FindModelByID(id ModelID) (*Model, bool) {
	for _, m := range d.Models {
		if m.ID == id {
			return m, true
		}
	}
	return nil, false
}

// FindModelDBName finds a model by database name. Only models remapped to
// dbName match; a model without a remap never matches, not even on its
// own name.
func (d *Datamodel) FindModelDBName(dbName string) (*Model, bool) {
	for _, m := range d.Models {
		if m.DatabaseName != "" && m.DatabaseName == dbName {
			return m, true
		}
	}
	return nil, false
}

// FindCompositeType finds a composite type by name.
func (d *Datamodel) FindCompositeType(name string) (*CompositeType, bool) {
	for _, c := range d.CompositeTypes {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// FindModelMut finds a model by name for mutation. The datamodel must be
// internally valid; a missing model is a programming error and panics.
func (d *Datamodel) FindModelMut(name string) *Model {
	m, ok := d.FindModel(name)
	if !ok {
		panic(fmt.Sprintf("dml: model %q not found: mutation assumes an internally valid datamodel", name))
	}
	return m
}

// FindRelatedFieldForInfo finds the relation field on the model referenced
// by info that forms the other half of the relation. It returns the field and
// its index in the referenced model's field list.
//
// A candidate matches when it has the same relation name and either points at
// a different model than info, or carries a name other than exclude. The
// second condition separates the two halves of a self-relation, where both
// point at the same model. The first match in declaration order wins.
//
// The model referenced by info must exist; FindRelatedFieldForInfo panics
// otherwise.
func (d *Datamodel) FindRelatedFieldForInfo(info RelationInfo, exclude string) (int, *RelationField, bool) {
	m, ok := d.FindModelByID(info.ReferencedModel)
	if !ok {
		panic(fmt.Sprintf("dml: model %d referenced by relation %q does not exist", info.ReferencedModel, info.Name))
	}
	for i, f := range m.Fields {
		rf, ok := AsRelationField(f)
		if !ok {
			continue
		}
		if rf.RelationInfo.Name == info.Name &&
			(rf.RelationInfo.ReferencedModel != info.ReferencedModel || rf.Name != exclude) {
			return i, rf, true
		}
	}
	return 0, nil, false
}

// FindRelatedField finds the other half of the relation rf belongs to.
func (d *Datamodel) FindRelatedField(rf *RelationField) (int, *RelationField, bool) {
	return d.FindRelatedFieldForInfo(rf.RelationInfo, rf.Name)
}

// FindRelatedFieldBang is like FindRelatedField but panics if rf has no
// complementary field. Use it only on a validated datamodel.
func (d *Datamodel) FindRelatedFieldBang(rf *RelationField) (int, *RelationField) {
	i, related, ok := d.FindRelatedField(rf)
	if !ok {
		panic(fmt.Sprintf("dml: relation field %q (relation %q) has no complementary field: every relation field of a validated datamodel has one", rf.Name, rf.RelationInfo.Name))
	}
	return i, related
}
