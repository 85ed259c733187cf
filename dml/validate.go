package dml

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidDatamodel is matched by the error returned from ValidationResult.Err.
var ErrInvalidDatamodel = errors.New("dml: invalid datamodel")

// ValidationError reports a structural problem of a datamodel.
type ValidationError struct {
	Model   string
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s.%s: %s", e.Model, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Model, e.Message)
}

// ValidationResult holds the results of datamodel validation.
type ValidationResult struct {
	Errors []*ValidationError
}

// HasErrors returns true if there are any validation errors.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// Err returns nil for a valid datamodel, or an error wrapping
// ErrInvalidDatamodel and every validation error.
func (r *ValidationResult) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return fmt.Errorf("%w: %w", ErrInvalidDatamodel, errors.Join(errs...))
}

// String returns a human-readable summary of the validation result.
func (r *ValidationResult) String() string {
	if !r.HasErrors() {
		return "No issues found"
	}
	var sb strings.Builder
	sb.WriteString("Errors:\n")
	for _, e := range r.Errors {
		sb.WriteString("  - ")
		sb.WriteString(e.Error())
		sb.WriteString("\n")
	}
	return sb.String()
}

func (r *ValidationResult) add(model, field, format string, args ...any) {
	r.Errors = append(r.Errors, &ValidationError{
		Model:   model,
		Field:   field,
		Message: fmt.Sprintf(format, args...),
	})
}

// Validate checks the invariants that the lookup and resolution operations
// assume: unique model ids and names, unique field names per model, existing
// referenced models, and exactly one complementary field per relation field.
// Relations declared by more than two fields on one model pair are rejected
// as ambiguous.
func (d *Datamodel) Validate() *ValidationResult {
	result := &ValidationResult{}

	ids := make(map[ModelID]string, len(d.Models))
	names := make(map[string]bool, len(d.Models))
	for _, m := range d.Models {
		if other, ok := ids[m.ID]; ok {
			result.add(m.Name, "", "model id %d already used by model %q", m.ID, other)
		} else {
			ids[m.ID] = m.Name
		}
		if names[m.Name] {
			result.add(m.Name, "", "duplicate model name")
		}
		names[m.Name] = true

		fields := make(map[string]bool, len(m.Fields))
		for _, f := range m.Fields {
			if fields[f.FieldName()] {
				result.add(m.Name, f.FieldName(), "duplicate field name")
			}
			fields[f.FieldName()] = true
		}
	}

	composites := make(map[string]bool, len(d.CompositeTypes))
	for _, c := range d.CompositeTypes {
		if composites[c.Name] {
			result.add(c.Name, "", "duplicate composite type name")
		}
		composites[c.Name] = true
	}

	for _, m := range d.Models {
		for _, rf := range m.RelationFields() {
			d.validateRelationField(m, rf, result)
		}
	}
	return result
}

func (d *Datamodel) validateRelationField(m *Model, rf *RelationField, result *ValidationResult) {
	info := rf.RelationInfo
	ref, ok := d.FindModelByID(info.ReferencedModel)
	if !ok {
		result.add(m.Name, rf.Name, "relation %q references unknown model id %d", info.Name, info.ReferencedModel)
		return
	}
	var matches, backRefs int
	for _, c := range ref.RelationFields() {
		if c.RelationInfo.Name != info.Name || (c.RelationInfo.ReferencedModel == info.ReferencedModel && c.Name == rf.Name) {
			continue
		}
		matches++
		if c.RelationInfo.ReferencedModel == m.ID {
			backRefs++
		}
	}
	switch {
	case matches == 0:
		result.add(m.Name, rf.Name, "relation %q has no opposite relation field on model %q", info.Name, ref.Name)
	case matches > 1:
		result.add(m.Name, rf.Name, "relation %q is ambiguous: %d candidate fields on model %q", info.Name, matches, ref.Name)
	case backRefs == 0:
		result.add(m.Name, rf.Name, "opposite field of relation %q on model %q does not reference model %q", info.Name, ref.Name, m.Name)
	}
}
