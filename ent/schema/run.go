package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// Run records one classified batch.
type Run struct {
	ent.Schema
}

func (Run) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (Run) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			Immutable().
			Comment("Run UUID"),
		field.String("scheme").
			Comment("Scheme ID: A, B, C or a rule file ID"),
		field.String("source").
			Default("").
			Comment("Input file name, or stdin"),
		field.Int("row_count").
			Comment("Rows in the batch"),
		field.Int("unlabeled").
			Comment("Rows left Unknown or unresolved"),
		field.Int64("duration_us").
			Comment("Classification wall time in microseconds"),
	}
}

func (Run) Edges() []ent.Edge {
	return []ent.Edge{
		edge.To("labels", RunLabel.Type),
	}
}

func (Run) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("scheme"),
	}
}
