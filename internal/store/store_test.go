package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.Driver() == nil {
		t.Fatal("expected non-nil driver")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestReopenKeepsSequence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	first, err := s.RunRepo().Append(ctx, RunEventData{ID: "a", Scheme: "A", Rows: 1})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	second, err := s.RunRepo().Append(ctx, RunEventData{ID: "b", Scheme: "A", Rows: 1})
	require.NoError(t, err)
	assert.Equal(t, first.Sequence+1, second.Sequence)
}

func TestAppendAndGet(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	run, err := repo.Append(ctx, RunEventData{
		ID:        "run-1",
		Timestamp: now,
		Scheme:    "C",
		Source:    "particles.csv",
		Rows:      10,
		Unlabeled: 3,
		Duration:  1500 * time.Microsecond,
		Counts:    map[string]int{"Kln": 5, "Ill": 2, "U-C2": 3},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), run.Sequence)

	got, err := repo.Get(ctx, "run-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Timestamp.Equal(now))
	got.Timestamp = run.Timestamp
	assert.Equal(t, *run, *got)
	assert.Equal(t, 1500*time.Microsecond, got.Duration)

	labels, err := repo.Labels(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, []LabelCount{{"Kln", 5}, {"U-C2", 3}, {"Ill", 2}}, labels)

	missing, err := repo.Get(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestAppendRejectsDuplicateID(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	_, err := repo.Append(ctx, RunEventData{ID: "dup", Scheme: "A"})
	require.NoError(t, err)
	_, err = repo.Append(ctx, RunEventData{ID: "dup", Scheme: "A"})
	require.Error(t, err)

	// The failed append must not consume a sequence number.
	next, err := repo.Append(ctx, RunEventData{ID: "other", Scheme: "A"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), next.Sequence)
}

func TestAppendRequiresID(t *testing.T) {
	_, err := openTestStore(t).RunRepo().Append(context.Background(), RunEventData{Scheme: "A"})
	assert.Error(t, err)
}

func TestRecentAndPrune(t *testing.T) {
	repo := openTestStore(t).RunRepo()
	ctx := context.Background()

	for i := range 5 {
		_, err := repo.Append(ctx, RunEventData{
			ID:     fmt.Sprintf("run-%d", i),
			Scheme: "A",
			Counts: map[string]int{"Unknown": i + 1},
		})
		require.NoError(t, err)
	}

	recent, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "run-4", recent[0].ID)
	assert.Equal(t, "run-3", recent[1].ID)

	all, err := repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 5)

	require.NoError(t, repo.Prune(ctx, 3))
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "run-2", all[2].ID)

	labels, err := repo.Labels(ctx, "run-0")
	require.NoError(t, err)
	assert.Empty(t, labels)

	require.NoError(t, repo.Prune(ctx, 10))
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, repo.Prune(ctx, 0))
	all, err = repo.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, all)

	assert.Error(t, repo.Prune(ctx, -1))
}
