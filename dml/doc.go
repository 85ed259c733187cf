// Package dml holds the in-memory relational datamodel: models, composite
// types and the relation fields connecting models.
//
// # Structure
//
// A Datamodel owns Models and CompositeTypes in insertion order. A Model has
// a stable ModelID, a logical Name, an optional DatabaseName remap and an
// ordered list of Fields. A Field is either a *ScalarField or a
// *RelationField:
//
//	post := &dml.Model{ID: 0, Name: "Post", Fields: []dml.Field{
//	    &dml.ScalarField{Name: "id", Type: dml.TypeInt, IsID: true},
//	    &dml.RelationField{Name: "author", RelationInfo: dml.RelationInfo{
//	        Name:            "PostAuthor",
//	        ReferencedModel: 1,
//	    }},
//	}}
//
// # Relations
//
// Each RelationField carries a RelationInfo naming the relation and the model
// it points at. The two endpoints of a relation share the relation name.
// FindRelatedField returns the other endpoint:
//
//	idx, posts, ok := dm.FindRelatedField(author)
//
// Self-relations declare both endpoints on one model; they are told apart by
// field name.
//
// # Validation
//
// The container does not enforce its invariants continuously. Validate checks
// them once after assembly; FindModelMut and FindRelatedFieldBang assume a
// validated datamodel and panic when the assumption does not hold:
//
//	if err := dm.Validate().Err(); err != nil {
//	    return err
//	}
//	_, other := dm.FindRelatedFieldBang(author)
package dml
