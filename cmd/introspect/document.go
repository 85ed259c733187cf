package main

import (
	"github.com/syssam/introspect"
	"github.com/syssam/introspect/dml"
)

// document is the YAML rendering of one described schema.
type document struct {
	Schema        string     `yaml:"schema"`
	Dialect       string     `yaml:"dialect"`
	Circumstances []string   `yaml:"circumstances,omitempty"`
	Models        []modelDoc `yaml:"models"`
}

type modelDoc struct {
	Name   string     `yaml:"name"`
	Table  string     `yaml:"table,omitempty"`
	Fields []fieldDoc `yaml:"fields"`
}

type fieldDoc struct {
	Name       string       `yaml:"name"`
	Type       string       `yaml:"type"`
	Arity      string       `yaml:"arity"`
	Column     string       `yaml:"column,omitempty"`
	NativeType string       `yaml:"nativeType,omitempty"`
	ID         bool         `yaml:"id,omitempty"`
	Unique     bool         `yaml:"unique,omitempty"`
	Default    string       `yaml:"default,omitempty"`
	Relation   *relationDoc `yaml:"relation,omitempty"`
}

type relationDoc struct {
	Name       string   `yaml:"name"`
	Fields     []string `yaml:"fields,omitempty"`
	References []string `yaml:"references,omitempty"`
	OnDelete   string   `yaml:"onDelete,omitempty"`
	OnUpdate   string   `yaml:"onUpdate,omitempty"`
}

func newDocument(schema, dialect string, c introspect.Circumstances, dm *dml.Datamodel) document {
	doc := document{
		Schema:        schema,
		Dialect:       dialect,
		Circumstances: c.Names(),
		Models:        make([]modelDoc, 0, len(dm.Models)),
	}
	for _, m := range dm.Models {
		md := modelDoc{Name: m.Name, Table: m.DatabaseName}
		for _, f := range m.Fields {
			switch f := f.(type) {
			case *dml.ScalarField:
				md.Fields = append(md.Fields, fieldDoc{
					Name:       f.Name,
					Type:       string(f.Type),
					Arity:      f.Arity.String(),
					Column:     f.DatabaseName,
					NativeType: f.NativeType,
					ID:         f.IsID,
					Unique:     f.IsUnique,
					Default:    f.Default,
				})
			case *dml.RelationField:
				// Relation fields are typed by the model they reference.
				ref, _ := dm.FindModelByID(f.RelationInfo.ReferencedModel)
				fd := fieldDoc{
					Name:  f.Name,
					Arity: f.Arity.String(),
					Relation: &relationDoc{
						Name:       f.RelationInfo.Name,
						Fields:     f.RelationInfo.Fields,
						References: f.RelationInfo.References,
						OnDelete:   string(f.RelationInfo.OnDelete),
						OnUpdate:   string(f.RelationInfo.OnUpdate),
					},
				}
				if ref != nil {
					fd.Type = ref.Name
				}
				md.Fields = append(md.Fields, fd)
			}
		}
		doc.Models = append(doc.Models, md)
	}
	return doc
}
