package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// RunLabel is the number of rows one run assigned to one label.
type RunLabel struct {
	ent.Schema
}

func (RunLabel) Fields() []ent.Field {
	return []ent.Field{
		field.String("run_id").
			Immutable(),
		field.String("label"),
		field.Int("label_count").
			NonNegative(),
	}
}

func (RunLabel) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("run", Run.Type).
			Ref("labels").
			Field("run_id").
			Unique().
			Required().
			Immutable(),
	}
}

func (RunLabel) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("run_id", "label").Unique(),
	}
}
