package dml

// RelationInfo describes one endpoint of a relation. Two endpoints sharing
// the same Name and referencing each other's models are the two halves of
// one logical relation. For a self-relation both halves reference the same
// model.
type RelationInfo struct {
	// Name groups both endpoints of the relation.
	Name string
	// ReferencedModel is the model this endpoint points at.
	ReferencedModel ModelID
	// Fields are the referencing scalar fields on the owning model.
	// Empty on the back-relation side.
	Fields []string
	// References are the referenced scalar fields on ReferencedModel.
	References []string
	OnDelete   ReferentialAction
	OnUpdate   ReferentialAction
}

// IsBackRelation reports if this endpoint does not hold the foreign key.
func (r RelationInfo) IsBackRelation() bool { return len(r.Fields) == 0 }

// ReferentialAction is the action taken on related records when the
// referenced record is deleted or updated. The zero value means the
// action was not declared.
type ReferentialAction string

// Referential actions.
const (
	NoAction   ReferentialAction = "NoAction"
	Restrict   ReferentialAction = "Restrict"
	Cascade    ReferentialAction = "Cascade"
	SetNull    ReferentialAction = "SetNull"
	SetDefault ReferentialAction = "SetDefault"
)
