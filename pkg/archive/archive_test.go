package archive

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

func TestNewRun(t *testing.T) {
	opts := Options{MaxSolutions: 2, Bound: "flow"}
	run := NewRun("plant", "abc123", opts)

	if run.ID == "" {
		t.Error("run has no ID")
	}
	if other := NewRun("plant", "abc123", opts); other.ID == run.ID {
		t.Error("two runs share an ID")
	}
	if run.CreatedAt.IsZero() {
		t.Error("run has no creation time")
	}
	if run.Problem != "plant" || run.ProblemHash != "abc123" {
		t.Errorf("run identity = %q/%q", run.Problem, run.ProblemHash)
	}
	if run.Options != opts {
		t.Errorf("options = %+v, want %+v", run.Options, opts)
	}
}

// exerciseStore runs the Store contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := store.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(missing) = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete(missing) = %v, want ErrNotFound", err)
	}

	first := NewRun("plant", "hash-1", Options{MaxSolutions: 1})
	first.Solutions = []Solution{{Units: []string{"o1", "o3"}, Value: 185}}
	first.Stats = bnb.Stats{Explored: 11, Leaves: 4, Retained: 1}

	second := NewRun("plant", "hash-1", Options{MaxSolutions: 2})
	second.CreatedAt = first.CreatedAt.Add(time.Second)

	for _, run := range []*Run{first, second} {
		if err := store.Save(ctx, run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}

	got, err := store.Get(ctx, first.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Stats.Explored != 11 || len(got.Solutions) != 1 || got.Solutions[0].Value != 185 {
		t.Errorf("run came back wrong: %+v", got)
	}

	runs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("List returned %d runs, want 2", len(runs))
	}
	if runs[0].ID != second.ID {
		t.Error("List should return newest runs first")
	}

	if err := store.Delete(ctx, first.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(ctx, first.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore()
	exerciseStore(t, store)
	if err := store.Close(context.Background()); err != nil {
		t.Errorf("Close: %v", err)
	}
}

func TestSaveReplacesRun(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()

	run := NewRun("plant", "hash-1", Options{})
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save: %v", err)
	}
	run.Solutions = []Solution{{Units: []string{"o1"}, Value: 42}}
	if err := store.Save(ctx, run); err != nil {
		t.Fatalf("Save again: %v", err)
	}

	runs, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(runs) != 1 {
		t.Errorf("List returned %d runs, want 1", len(runs))
	}
}
