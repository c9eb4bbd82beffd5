package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

// The run sequence is a single-row counter table. Run IDs are random UUIDs;
// runs are ordered by sequence, assigned in the transaction that inserts
// the run.

// newSequenceCounter seeds the counter row.
func newSequenceCounter(ctx context.Context, drv *entsql.Driver) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(sequenceTable).
		Columns("id", "next_val").
		Values(1, 1).
		OnConflict(entsql.DoNothing()).
		Query()
	if err := drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("seed sequence: %w", err)
	}
	return nil
}

// nextSequence atomically returns the next sequence number and increments
// the counter. q is normally the transaction the caller writes the run in.
func nextSequence(ctx context.Context, q dialect.ExecQuerier) (int64, error) {
	var rows entsql.Rows
	err := q.Query(ctx,
		"UPDATE global_sequence SET next_val = next_val + 1 WHERE id = 1 RETURNING next_val - 1",
		[]any{}, &rows)
	if err != nil {
		return 0, fmt.Errorf("next sequence: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		return 0, fmt.Errorf("next sequence: counter row missing")
	}
	var seq int64
	if err := rows.Scan(&seq); err != nil {
		return 0, fmt.Errorf("scan sequence: %w", err)
	}
	return seq, nil
}
