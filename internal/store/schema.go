package store

import (
	"context"
	"fmt"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/cheeselab/cheesequiz/ent/schema"
)

const answerLogsTableName = "answer_logs"

// entity is the part of an ent schema the store reads to build its tables.
type entity interface {
	Mixin() []ent.Mixin
	Fields() []ent.Field
	Indexes() []ent.Index
}

// buildTable turns an ent schema into a migration table with an
// auto-increment id primary key, the mixin fields first.
func buildTable(name string, e entity) (*schema.Table, error) {
	id := &schema.Column{Name: "id", Type: field.TypeInt, Increment: true}
	t := &schema.Table{
		Name:       name,
		Columns:    []*schema.Column{id},
		PrimaryKey: []*schema.Column{id},
	}

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range e.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, e.Fields()...)
	indexes = append(indexes, e.Indexes()...)

	byName := make(map[string]*schema.Column, len(fields))
	for _, f := range fields {
		d := f.Descriptor()
		if d.Err != nil {
			return nil, fmt.Errorf("%s.%s: %w", name, d.Name, d.Err)
		}
		col := &schema.Column{
			Name:     d.Name,
			Type:     d.Info.Type,
			Unique:   d.Unique,
			Nullable: d.Optional || d.Nillable,
		}
		// Only literal defaults go into the DDL; func defaults are applied
		// by the repository on insert.
		switch v := d.Default.(type) {
		case string, bool, int, int64, float64:
			col.Default = v
		}
		t.Columns = append(t.Columns, col)
		byName[d.Name] = col
	}

	prefix := strings.ToLower(strings.TrimSuffix(name, "s"))
	prefix = strings.ReplaceAll(prefix, "_", "")
	for _, idx := range indexes {
		d := idx.Descriptor()
		si := &schema.Index{Unique: d.Unique}
		for _, fn := range d.Fields {
			col, ok := byName[fn]
			if !ok {
				return nil, fmt.Errorf("%s: index on unknown field %q", name, fn)
			}
			si.Columns = append(si.Columns, col)
		}
		si.Name = prefix + "_" + strings.Join(d.Fields, "_")
		t.Indexes = append(t.Indexes, si)
	}
	return t, nil
}

// tables returns every table managed by the store.
func tables() ([]*schema.Table, error) {
	answerLogs, err := buildTable(answerLogsTableName, entschema.AnswerLog{})
	if err != nil {
		return nil, err
	}
	return []*schema.Table{answerLogs}, nil
}

// migrate creates or upgrades the tables owned by the store.
func migrate(ctx context.Context, drv dialect.Driver) error {
	ts, err := tables()
	if err != nil {
		return fmt.Errorf("build schema: %w", err)
	}
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	return m.Create(ctx, ts...)
}
