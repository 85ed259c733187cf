package translate

import (
	"errors"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"
)

// ErrInvalidSchema is wrapped by Report.Err when a described schema has
// structural errors.
var ErrInvalidSchema = errors.New("translate: invalid schema")

// Issue is a problem found in a described schema.
type Issue struct {
	Table   string
	Column  string
	Message string
}

func (e *Issue) Error() string {
	if e.Column != "" {
		return fmt.Sprintf("%s.%s: %s", e.Table, e.Column, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Table, e.Message)
}

// Report holds the results of Check. Errors make the schema unusable for
// translation; warnings describe parts that translate lossily.
type Report struct {
	Errors   []*Issue
	Warnings []*Issue
}

// HasErrors returns true if there are any errors.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// HasWarnings returns true if there are any warnings.
func (r *Report) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// Err returns nil, or an error wrapping ErrInvalidSchema and every error
// of the report.
func (r *Report) Err() error {
	if !r.HasErrors() {
		return nil
	}
	errs := make([]error, len(r.Errors))
	for i, e := range r.Errors {
		errs[i] = e
	}
	return fmt.Errorf("%w: %w", ErrInvalidSchema, errors.Join(errs...))
}

// String returns a human-readable summary of the report.
func (r *Report) String() string {
	var sb strings.Builder
	write := func(title string, issues []*Issue) {
		if len(issues) == 0 {
			return
		}
		sb.WriteString(title)
		sb.WriteString(":\n")
		for _, e := range issues {
			sb.WriteString("  - ")
			sb.WriteString(e.Error())
			sb.WriteString("\n")
		}
	}
	write("Errors", r.Errors)
	write("Warnings", r.Warnings)
	if !r.HasErrors() && !r.HasWarnings() {
		sb.WriteString("No issues found")
	}
	return sb.String()
}

func (r *Report) errorf(table, column, format string, args ...any) {
	r.Errors = append(r.Errors, &Issue{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

func (r *Report) warnf(table, column, format string, args ...any) {
	r.Warnings = append(r.Warnings, &Issue{Table: table, Column: column, Message: fmt.Sprintf(format, args...)})
}

// Check inspects a described schema before translation.
func Check(s *schema.Schema) *Report {
	r := &Report{}
	tables := make(map[string]bool, len(s.Tables))
	for _, t := range s.Tables {
		if tables[t.Name] {
			r.errorf(t.Name, "", "duplicate table name")
		}
		tables[t.Name] = true
		checkTable(t, r)
	}
	for _, t := range s.Tables {
		for _, fk := range t.ForeignKeys {
			switch {
			case fk.RefTable == nil:
				r.errorf(t.Name, "", "foreign key %q has no referenced table", fk.Symbol)
			case fk.RefTable.Schema != nil && fk.RefTable.Schema != s:
				r.warnf(t.Name, "", "foreign key %q references table %q in schema %q: no relation is generated", fk.Symbol, fk.RefTable.Name, fk.RefTable.Schema.Name)
			case !tables[fk.RefTable.Name]:
				r.warnf(t.Name, "", "foreign key %q references unknown table %q: no relation is generated", fk.Symbol, fk.RefTable.Name)
			}
		}
	}
	return r
}

func checkTable(t *schema.Table, r *Report) {
	if t.PrimaryKey == nil || len(t.PrimaryKey.Parts) == 0 {
		r.warnf(t.Name, "", "table has no primary key")
	}
	columns := make(map[string]bool, len(t.Columns))
	for _, c := range t.Columns {
		if columns[c.Name] {
			r.errorf(t.Name, c.Name, "duplicate column name")
		}
		columns[c.Name] = true
		if c.Type == nil {
			r.errorf(t.Name, c.Name, "column has no type")
			continue
		}
		if _, ok := c.Type.Type.(*schema.UnsupportedType); ok {
			r.warnf(t.Name, c.Name, "unsupported type %q", c.Type.Raw)
		}
	}
	indexes := make(map[string]bool, len(t.Indexes))
	for _, idx := range t.Indexes {
		if indexes[idx.Name] {
			r.errorf(t.Name, "", "duplicate index name: %s", idx.Name)
		}
		indexes[idx.Name] = true
		for _, p := range idx.Parts {
			// Expression parts have no column.
			if p.C != nil && !columns[p.C.Name] {
				r.errorf(t.Name, "", "index %q references non-existent column %q", idx.Name, p.C.Name)
			}
		}
	}
	for _, fk := range t.ForeignKeys {
		for _, c := range fk.Columns {
			if !columns[c.Name] {
				r.errorf(t.Name, "", "foreign key %q references non-existent column %q", fk.Symbol, c.Name)
			}
		}
		if len(fk.Columns) != len(fk.RefColumns) {
			r.errorf(t.Name, "", "foreign key %q has %d columns but %d referenced columns", fk.Symbol, len(fk.Columns), len(fk.RefColumns))
		}
	}
}
