package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/edslab/mineraliz/ent/schema"
)

// Table names of the run history.
const (
	sequenceTable = "global_sequence"
	runsTable     = "runs"
	labelsTable   = "run_labels"
)

// entity pairs an ent schema type with the table it is stored in.
type entity struct {
	table  string
	schema ent.Interface
}

// entities lists the history schema in dependency order.
var entities = []entity{
	{runsTable, entschema.Run{}},
	{labelsTable, entschema.RunLabel{}},
}

// Tables returns the migration tables of the run history. Columns, keys and
// indexes come from the ent schema types in ent/schema.
func Tables() ([]*schema.Table, error) {
	byType := make(map[string]*schema.Table, len(entities))
	tables := []*schema.Table{sequenceTableDef()}
	for _, e := range entities {
		t, err := tableFor(e.table, e.schema)
		if err != nil {
			return nil, err
		}
		byType[typeName(e.schema)] = t
		tables = append(tables, t)
	}
	for _, e := range entities {
		if err := addForeignKeys(byType[typeName(e.schema)], e.schema, byType); err != nil {
			return nil, err
		}
	}
	return tables, nil
}

// sequenceTableDef is the single-row counter behind run sequence numbers.
func sequenceTableDef() *schema.Table {
	id := &schema.Column{Name: "id", Type: field.TypeInt64}
	return schema.NewTable(sequenceTable).
		AddPrimary(id).
		AddColumn(&schema.Column{Name: "next_val", Type: field.TypeInt64, Default: 1})
}

func typeName(s ent.Interface) string {
	name := fmt.Sprintf("%T", s)
	return name[strings.LastIndexByte(name, '.')+1:]
}

// fieldsOf returns the mixin fields followed by the schema's own fields.
func fieldsOf(s ent.Interface) []ent.Field {
	var fields []ent.Field
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
	}
	return append(fields, s.Fields()...)
}

func indexesOf(s ent.Interface) []ent.Index {
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		indexes = append(indexes, m.Indexes()...)
	}
	return append(indexes, s.Indexes()...)
}

// tableFor builds the table of one schema type. A field named "id" is the
// primary key; a type without one is keyed by its first unique index.
func tableFor(name string, s ent.Interface) (*schema.Table, error) {
	t := schema.NewTable(name)
	for _, f := range fieldsOf(s) {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		c := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional,
			Default:  d.Default,
			Comment:  d.Comment,
		}
		if d.Name == "id" {
			t.AddPrimary(c)
			continue
		}
		t.AddColumn(c)
	}

	for _, idx := range indexesOf(s) {
		d := idx.Descriptor()
		if len(t.PrimaryKey) == 0 && d.Unique {
			for _, col := range d.Fields {
				c, ok := t.Column(col)
				if !ok {
					return nil, fmt.Errorf("%s: key column %q not declared", name, col)
				}
				c.Key = schema.PrimaryKey
				t.PrimaryKey = append(t.PrimaryKey, c)
			}
			continue
		}
		for _, col := range d.Fields {
			if !t.HasColumn(col) {
				return nil, fmt.Errorf("%s: index column %q not declared", name, col)
			}
		}
		t.AddIndex(name+"_"+strings.Join(d.Fields, "_"), d.Unique, d.Fields)
	}
	if len(t.PrimaryKey) == 0 {
		return nil, fmt.Errorf("%s: no primary key", name)
	}
	return t, nil
}

// addForeignKeys turns inverse edges with a field into foreign keys that
// cascade on delete.
func addForeignKeys(t *schema.Table, s ent.Interface, byType map[string]*schema.Table) error {
	for _, e := range s.Edges() {
		d := e.Descriptor()
		if !d.Inverse || d.Field == "" {
			continue
		}
		ref, ok := byType[d.Type]
		if !ok {
			return fmt.Errorf("%s: edge %q references unknown type %s", t.Name, d.Name, d.Type)
		}
		col, ok := t.Column(d.Field)
		if !ok {
			return fmt.Errorf("%s: edge field %q not declared", t.Name, d.Field)
		}
		t.AddForeignKey(&schema.ForeignKey{
			Symbol:     fmt.Sprintf("%s_%s_%s", t.Name, ref.Name, d.RefName),
			Columns:    []*schema.Column{col},
			RefTable:   ref,
			RefColumns: ref.PrimaryKey,
			OnDelete:   schema.Cascade,
		})
	}
	return nil
}

// migrate creates missing history tables and seeds the sequence counter.
func migrate(ctx context.Context, drv *entsql.Driver) error {
	tables, err := Tables()
	if err != nil {
		return fmt.Errorf("build tables: %w", err)
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("create migrator: %w", err)
	}
	if err := m.Create(ctx, tables...); err != nil {
		return err
	}
	return newSequenceCounter(ctx, drv)
}
