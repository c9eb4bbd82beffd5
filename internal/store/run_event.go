package store

import (
	"context"
	"fmt"
	"sort"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

var runColumns = []string{
	"id", "sequence", "created_at", "scheme", "source",
	"row_count", "unlabeled", "duration_us",
}

// runRepo implements RunRepo on the ent SQL driver.
type runRepo struct {
	drv *entsql.Driver
}

func builder() *entsql.DialectBuilder { return entsql.Dialect(dialect.SQLite) }

func (r *runRepo) Append(ctx context.Context, data RunEventData) (run *Run, err error) {
	if data.ID == "" {
		return nil, fmt.Errorf("append run: empty ID")
	}
	if data.Timestamp.IsZero() {
		data.Timestamp = time.Now()
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	seq, err := nextSequence(ctx, tx)
	if err != nil {
		return nil, err
	}

	run = &Run{
		ID:        data.ID,
		Sequence:  seq,
		Timestamp: data.Timestamp.UTC().Truncate(time.Millisecond),
		Scheme:    data.Scheme,
		Source:    data.Source,
		Rows:      data.Rows,
		Unlabeled: data.Unlabeled,
		Duration:  data.Duration.Truncate(time.Microsecond),
	}

	query, args := builder().Insert(runsTable).
		Columns(runColumns...).
		Values(run.ID, run.Sequence, run.Timestamp.UnixMilli(), run.Scheme, run.Source,
			run.Rows, run.Unlabeled, run.Duration.Microseconds()).
		Query()
	if err = tx.Exec(ctx, query, args, nil); err != nil {
		return nil, fmt.Errorf("save run: %w", err)
	}

	if len(data.Counts) > 0 {
		labels := make([]string, 0, len(data.Counts))
		for l := range data.Counts {
			labels = append(labels, l)
		}
		sort.Strings(labels)

		ins := builder().Insert(labelsTable).Columns("run_id", "label", "label_count")
		for _, l := range labels {
			ins.Values(run.ID, l, data.Counts[l])
		}
		query, args = ins.Query()
		if err = tx.Exec(ctx, query, args, nil); err != nil {
			return nil, fmt.Errorf("save run labels: %w", err)
		}
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return run, nil
}

func (r *runRepo) Recent(ctx context.Context, limit int) ([]Run, error) {
	sel := builder().Select(runColumns...).
		From(builder().Table(runsTable)).
		OrderBy(entsql.Desc("sequence"))
	if limit > 0 {
		sel.Limit(limit)
	}
	return r.queryRuns(ctx, sel)
}

func (r *runRepo) Get(ctx context.Context, id string) (*Run, error) {
	sel := builder().Select(runColumns...).
		From(builder().Table(runsTable)).
		Where(entsql.EQ("id", id))
	runs, err := r.queryRuns(ctx, sel)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

func (r *runRepo) queryRuns(ctx context.Context, sel *entsql.Selector) ([]Run, error) {
	query, args := sel.Query()
	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run        Run
			createdAt  int64
			durationUs int64
		)
		if err := rows.Scan(&run.ID, &run.Sequence, &createdAt, &run.Scheme, &run.Source,
			&run.Rows, &run.Unlabeled, &durationUs); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.Timestamp = time.UnixMilli(createdAt).UTC()
		run.Duration = time.Duration(durationUs) * time.Microsecond
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

func (r *runRepo) Labels(ctx context.Context, runID string) ([]LabelCount, error) {
	query, args := builder().Select("label", "label_count").
		From(builder().Table(labelsTable)).
		Where(entsql.EQ("run_id", runID)).
		OrderBy(entsql.Desc("label_count"), entsql.Asc("label")).
		Query()

	var rows entsql.Rows
	if err := r.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query run labels: %w", err)
	}
	defer rows.Close()

	var out []LabelCount
	for rows.Next() {
		var lc LabelCount
		if err := rows.Scan(&lc.Label, &lc.Count); err != nil {
			return nil, fmt.Errorf("scan run label: %w", err)
		}
		out = append(out, lc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate run labels: %w", err)
	}
	return out, nil
}

func (r *runRepo) Prune(ctx context.Context, keep int) (err error) {
	if keep < 0 {
		return fmt.Errorf("prune: keep must be >= 0, got %d", keep)
	}

	// Find the oldest sequence to keep.
	var cutoff int64
	if keep > 0 {
		runs, err := r.Recent(ctx, keep)
		if err != nil {
			return err
		}
		if len(runs) < keep {
			return nil
		}
		cutoff = runs[len(runs)-1].Sequence
	}

	tx, err := r.drv.Tx(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	old := builder().Select("id").
		From(builder().Table(runsTable)).
		Where(entsql.LT("sequence", cutoff))
	if keep == 0 {
		old = builder().Select("id").From(builder().Table(runsTable))
	}

	query, args := builder().Delete(labelsTable).Where(entsql.In("run_id", old)).Query()
	if err = tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune run labels: %w", err)
	}

	del := builder().Delete(runsTable)
	if keep > 0 {
		del.Where(entsql.LT("sequence", cutoff))
	}
	query, args = del.Query()
	if err = tx.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("prune runs: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}
