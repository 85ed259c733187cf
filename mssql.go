package introspect

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"ariga.io/atlas/sql/schema"

	"github.com/syssam/introspect/dialect"
)

// Catalog queries used by the SQL Server describer.
const (
	mssqlTablesQuery = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = @p1 AND TABLE_TYPE = 'BASE TABLE' ORDER BY TABLE_NAME`

	mssqlColumnsQuery = `SELECT TABLE_NAME, COLUMN_NAME, DATA_TYPE, IS_NULLABLE, CHARACTER_MAXIMUM_LENGTH, COLUMN_DEFAULT FROM INFORMATION_SCHEMA.COLUMNS WHERE TABLE_SCHEMA = @p1 ORDER BY TABLE_NAME, ORDINAL_POSITION`

	mssqlKeysQuery = `SELECT tc.TABLE_NAME, tc.CONSTRAINT_NAME, tc.CONSTRAINT_TYPE, kcu.COLUMN_NAME FROM INFORMATION_SCHEMA.TABLE_CONSTRAINTS tc JOIN INFORMATION_SCHEMA.KEY_COLUMN_USAGE kcu ON kcu.CONSTRAINT_SCHEMA = tc.CONSTRAINT_SCHEMA AND kcu.CONSTRAINT_NAME = tc.CONSTRAINT_NAME WHERE tc.TABLE_SCHEMA = @p1 AND tc.CONSTRAINT_TYPE IN ('PRIMARY KEY', 'UNIQUE') ORDER BY tc.TABLE_NAME, tc.CONSTRAINT_NAME, kcu.ORDINAL_POSITION`

	mssqlForeignKeysQuery = `SELECT fk.name, tp.name, cp.name, SCHEMA_NAME(tr.schema_id), tr.name, cr.name, fk.delete_referential_action_desc, fk.update_referential_action_desc FROM sys.foreign_keys fk JOIN sys.foreign_key_columns fkc ON fkc.constraint_object_id = fk.object_id JOIN sys.tables tp ON tp.object_id = fkc.parent_object_id JOIN sys.columns cp ON cp.object_id = fkc.parent_object_id AND cp.column_id = fkc.parent_column_id JOIN sys.tables tr ON tr.object_id = fkc.referenced_object_id JOIN sys.columns cr ON cr.object_id = fkc.referenced_object_id AND cr.column_id = fkc.referenced_column_id WHERE SCHEMA_NAME(tp.schema_id) = @p1 ORDER BY fk.name, fkc.constraint_column_id`
)

// MSSQLDescriber describes SQL Server schemas from the information schema
// and catalog views.
type MSSQLDescriber struct {
	conn schema.ExecQuerier
}

// NewMSSQLDescriber returns a SQL Server describer for the given connection.
func NewMSSQLDescriber(conn schema.ExecQuerier) *MSSQLDescriber {
	return &MSSQLDescriber{conn: conn}
}

// Dialect implements the Describer interface.
func (*MSSQLDescriber) Dialect() string { return dialect.MSSQL }

func (*MSSQLDescriber) describer() {}

// Describe implements the Describer interface.
func (d *MSSQLDescriber) Describe(ctx context.Context, schemaName string) (*schema.Schema, error) {
	s := schema.New(schemaName)
	steps := []struct {
		name  string
		query string
		scan  func(*sql.Rows, *schema.Schema) error
	}{
		{"tables", mssqlTablesQuery, scanMSSQLTable},
		{"columns", mssqlColumnsQuery, scanMSSQLColumn},
		{"keys", mssqlKeysQuery, scanMSSQLKey},
		{"foreign keys", mssqlForeignKeysQuery, scanMSSQLForeignKey},
	}
	for _, step := range steps {
		if err := d.query(ctx, schemaName, step.query, func(rows *sql.Rows) error { return step.scan(rows, s) }); err != nil {
			return nil, fmt.Errorf("introspect: inspect schema %q: %s: %w", schemaName, step.name, err)
		}
	}
	return s, nil
}

func (d *MSSQLDescriber) query(ctx context.Context, schemaName, query string, scan func(*sql.Rows) error) error {
	rows, err := d.conn.QueryContext(ctx, query, schemaName)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		if err := scan(rows); err != nil {
			return err
		}
	}
	return rows.Err()
}

func scanMSSQLTable(rows *sql.Rows, s *schema.Schema) error {
	var name string
	if err := rows.Scan(&name); err != nil {
		return err
	}
	s.AddTables(schema.NewTable(name))
	return nil
}

func scanMSSQLColumn(rows *sql.Rows, s *schema.Schema) error {
	var (
		table, name, typ, nullable string
		size                       sql.NullInt64
		def                        sql.NullString
	)
	if err := rows.Scan(&table, &name, &typ, &nullable, &size, &def); err != nil {
		return err
	}
	t, ok := s.Table(table)
	if !ok {
		return nil
	}
	c := schema.NewColumn(name).
		SetType(mssqlColumnType(typ, size.Int64)).
		SetNull(nullable == "YES")
	c.Type.Raw = typ
	if def.Valid {
		c.SetDefault(&schema.RawExpr{X: def.String})
	}
	t.AddColumns(c)
	return nil
}

func scanMSSQLKey(rows *sql.Rows, s *schema.Schema) error {
	var table, name, kind, column string
	if err := rows.Scan(&table, &name, &kind, &column); err != nil {
		return err
	}
	t, ok := s.Table(table)
	if !ok {
		return nil
	}
	c, ok := t.Column(column)
	if !ok {
		return fmt.Errorf("column %q of key %q not found in table %q", column, name, table)
	}
	if kind == "PRIMARY KEY" {
		if t.PrimaryKey == nil {
			t.SetPrimaryKey(schema.NewPrimaryKey().SetName(name))
		}
		t.PrimaryKey.AddColumns(c)
		return nil
	}
	idx, ok := t.Index(name)
	if !ok {
		idx = schema.NewUniqueIndex(name)
		t.AddIndexes(idx)
	}
	idx.AddColumns(c)
	return nil
}

func scanMSSQLForeignKey(rows *sql.Rows, s *schema.Schema) error {
	var name, table, column, refSchema, refTable, refColumn, onDelete, onUpdate string
	if err := rows.Scan(&name, &table, &column, &refSchema, &refTable, &refColumn, &onDelete, &onUpdate); err != nil {
		return err
	}
	t, ok := s.Table(table)
	if !ok {
		return nil
	}
	c, ok := t.Column(column)
	if !ok {
		return fmt.Errorf("column %q of foreign key %q not found", column, name)
	}
	fk, ok := t.ForeignKey(name)
	if !ok {
		rt, err := mssqlRefTable(s, refSchema, refTable, name)
		if err != nil {
			return err
		}
		fk = schema.NewForeignKey(name).
			SetRefTable(rt).
			SetOnDelete(mssqlReferenceOption(onDelete)).
			SetOnUpdate(mssqlReferenceOption(onUpdate))
		t.AddForeignKeys(fk)
	}
	rc, ok := fk.RefTable.Column(refColumn)
	switch {
	case !ok && fk.RefTable.Schema == s:
		return fmt.Errorf("referenced column %q of foreign key %q not found", refColumn, name)
	case !ok:
		rc = schema.NewColumn(refColumn)
		fk.RefTable.AddColumns(rc)
	}
	fk.AddColumns(c)
	fk.AddRefColumns(rc)
	return nil
}

// mssqlRefTable returns the table a foreign key references. Tables in
// other schemas are not described and get a placeholder carrying only
// their name and schema.
func mssqlRefTable(s *schema.Schema, refSchema, refTable, fk string) (*schema.Table, error) {
	if refSchema != s.Name {
		return schema.NewTable(refTable).SetSchema(schema.New(refSchema)), nil
	}
	rt, ok := s.Table(refTable)
	if !ok {
		return nil, fmt.Errorf("table %q referenced by foreign key %q not found", refTable, fk)
	}
	return rt, nil
}

// mssqlReferenceOption converts "NO_ACTION" style catalog values.
func mssqlReferenceOption(action string) schema.ReferenceOption {
	return schema.ReferenceOption(strings.ReplaceAll(action, "_", " "))
}

func mssqlColumnType(typ string, size int64) schema.Type {
	switch t := strings.ToLower(typ); t {
	case "bigint", "int", "smallint", "tinyint":
		return &schema.IntegerType{T: t}
	case "bit":
		return &schema.BoolType{T: t}
	case "char", "nchar", "varchar", "nvarchar", "text", "ntext":
		return &schema.StringType{T: t, Size: int(size)}
	case "date", "datetime", "datetime2", "datetimeoffset", "smalldatetime", "time":
		return &schema.TimeType{T: t}
	case "decimal", "numeric", "money", "smallmoney":
		return &schema.DecimalType{T: t}
	case "float", "real":
		return &schema.FloatType{T: t}
	case "binary", "varbinary", "image":
		return &schema.BinaryType{T: t}
	case "uniqueidentifier":
		return &schema.UUIDType{T: t}
	default:
		return &schema.UnsupportedType{T: t}
	}
}
