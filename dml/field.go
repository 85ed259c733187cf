package dml

// Field is a member of a Model. It is a closed union: the only
// implementations are *ScalarField and *RelationField.
type Field interface {
	// FieldName returns the logical name of the field.
	FieldName() string
	field()
}

// Arity describes how many values a field holds.
type Arity int

// Field arities.
const (
	Required Arity = iota
	Optional
	List
)

// String returns the arity name.
func (a Arity) String() string {
	switch a {
	case Required:
		return "required"
	case Optional:
		return "optional"
	case List:
		return "list"
	default:
		return "unknown"
	}
}

// ScalarType is the logical type of a scalar field.
type ScalarType string

// Scalar types.
const (
	TypeString      ScalarType = "String"
	TypeInt         ScalarType = "Int"
	TypeBigInt      ScalarType = "BigInt"
	TypeFloat       ScalarType = "Float"
	TypeDecimal     ScalarType = "Decimal"
	TypeBoolean     ScalarType = "Boolean"
	TypeDateTime    ScalarType = "DateTime"
	TypeJSON        ScalarType = "Json"
	TypeBytes       ScalarType = "Bytes"
	TypeUnsupported ScalarType = "Unsupported"
)

// ScalarField is a field holding a plain value stored in a column.
type ScalarField struct {
	// Name is the logical name of the field.
	Name string
	// DatabaseName is the physical column name. Empty means the column
	// is named after the field.
	DatabaseName string
	Type         ScalarType
	// NativeType is the raw database type, e.g. "varchar(255)".
	NativeType string
	Arity      Arity
	IsID       bool
	IsUnique   bool
	IsIgnored  bool
	// Default holds the textual default expression, if any.
	Default       string
	Documentation string
}

// FieldName implements the Field interface.
func (f *ScalarField) FieldName() string { return f.Name }

func (*ScalarField) field() {}

// FinalDatabaseName returns the column name of the field.
func (f *ScalarField) FinalDatabaseName() string {
	if f.DatabaseName != "" {
		return f.DatabaseName
	}
	return f.Name
}

// RelationField is one endpoint of a declared relation.
type RelationField struct {
	Name          string
	RelationInfo  RelationInfo
	Arity         Arity
	IsIgnored     bool
	Documentation string
}

// FieldName implements the Field interface.
func (f *RelationField) FieldName() string { return f.Name }

func (*RelationField) field() {}

// IsList reports if the field holds many related records.
func (f *RelationField) IsList() bool { return f.Arity == List }

// AsRelationField returns f as a relation field, if it is one.
func AsRelationField(f Field) (*RelationField, bool) {
	rf, ok := f.(*RelationField)
	return rf, ok
}

// AsScalarField returns f as a scalar field, if it is one.
func AsScalarField(f Field) (*ScalarField, bool) {
	sf, ok := f.(*ScalarField)
	return sf, ok
}
