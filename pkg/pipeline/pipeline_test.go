package pipeline

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/cache"
)

// sevenUnits is the seven-unit example plant in the text dialect.
const sevenUnits = `problem plant

raw e g j k l
product a cap=1

unit o1 cost=34: b f -> a
unit o2 cost=76: c d -> b
unit o3 cost=12: e f -> b
unit o4 cost=87: g h -> f
unit o5 cost=25: c d j -> b
unit o6 cost=74: k -> h c
unit o7 cost=52: l -> h d
exclusive o6 o7
`

func writeProblem(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "plant.pns")
	if err := os.WriteFile(path, []byte(sevenUnits), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    Options
		wantErr bool
	}{
		{"minimal", Options{Source: "p.json"}, false},
		{"bad bound", Options{Source: "p.json", Bound: "magic"}, true},
		{"bad format", Options{Source: "p.json", Formats: []string{"gif"}}, true},
		{"min activity without flow", Options{Source: "p.json", MinActivity: 0.1}, true},
		{"min activity with flow", Options{Source: "p.json", Bound: "flow", MinActivity: 0.1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.ValidateAndSetDefaults()
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateAndSetDefaults() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestOptionsDefaults(t *testing.T) {
	opts := Options{Source: "p.json"}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		t.Fatal(err)
	}
	if opts.Bound != BoundAdditive {
		t.Errorf("Bound = %q, want %q", opts.Bound, BoundAdditive)
	}
	if opts.MaxSolutions != DefaultMaxSolutions {
		t.Errorf("MaxSolutions = %d, want %d", opts.MaxSolutions, DefaultMaxSolutions)
	}
}

func TestExecute(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Source:       writeProblem(t),
		MaxSolutions: -1,
	})
	if err != nil {
		t.Fatal(err)
	}

	if result.Structure.Len() != 7 {
		t.Errorf("maximal structure has %d units, want 7", result.Structure.Len())
	}
	if len(result.Solutions) != 2 {
		t.Fatalf("got %d solutions, want 2", len(result.Solutions))
	}

	best := result.Solutions[0]
	if best.Value != 185 {
		t.Errorf("best value = %g, want 185", best.Value)
	}
	if want := []string{"o1", "o3", "o4", "o7"}; !reflect.DeepEqual(best.Units, want) {
		t.Errorf("best units = %v, want %v", best.Units, want)
	}
	if second := result.Solutions[1]; second.Value != 207 {
		t.Errorf("second value = %g, want 207", second.Value)
	}
}

func TestExecuteDOTArtifact(t *testing.T) {
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Source:  writeProblem(t),
		Formats: []string{FormatDOT},
	})
	if err != nil {
		t.Fatal(err)
	}
	dot := string(result.Artifacts[FormatDOT])
	if dot == "" {
		t.Fatal("no dot artifact")
	}
}

func TestExecuteCaching(t *testing.T) {
	fc, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	runner := NewRunner(fc, nil, nil)
	defer runner.Close()

	path := writeProblem(t)
	ctx := context.Background()

	first, err := runner.Execute(ctx, Options{Source: path})
	if err != nil {
		t.Fatal(err)
	}
	if first.CacheInfo.ReduceHit || first.CacheInfo.SolveHit {
		t.Fatal("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, Options{Source: path})
	if err != nil {
		t.Fatal(err)
	}
	if !second.CacheInfo.ReduceHit || !second.CacheInfo.SolveHit {
		t.Errorf("second run cache info = %+v, want both hits", second.CacheInfo)
	}
	if !reflect.DeepEqual(first.Solutions, second.Solutions) {
		t.Error("cached solutions differ from computed ones")
	}

	// Refresh bypasses the cache entirely.
	third, err := runner.Execute(ctx, Options{Source: path, Refresh: true})
	if err != nil {
		t.Fatal(err)
	}
	if third.CacheInfo.ReduceHit || third.CacheInfo.SolveHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestExecuteArchives(t *testing.T) {
	store := archive.NewMemoryStore()
	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{
		Source: writeProblem(t),
		Store:  store,
	})
	if err != nil {
		t.Fatal(err)
	}
	if result.RunID == "" {
		t.Fatal("no run ID recorded")
	}
	run, err := store.Get(context.Background(), result.RunID)
	if err != nil {
		t.Fatal(err)
	}
	if run.Problem != "plant" || run.ProblemHash != result.ProblemHash {
		t.Errorf("archived run identity = (%q, %q), want (plant, %q)",
			run.Problem, run.ProblemHash, result.ProblemHash)
	}
	if len(run.Solutions) != len(result.Solutions) {
		t.Errorf("archived %d solutions, want %d", len(run.Solutions), len(result.Solutions))
	}
}

func TestExecuteInfeasible(t *testing.T) {
	// The sole producer of the product needs a material nothing makes,
	// so the maximal structure is empty.
	path := filepath.Join(t.TempDir(), "stuck.pns")
	problem := `problem stuck
raw w
product a
unit u1: b -> a
unit u2: w -> c
`
	if err := os.WriteFile(path, []byte(problem), 0o644); err != nil {
		t.Fatal(err)
	}

	runner := NewRunner(nil, nil, nil)
	result, err := runner.Execute(context.Background(), Options{Source: path})
	if err != nil {
		t.Fatal(err)
	}
	if !result.Structure.IsEmpty() {
		t.Errorf("structure has %d units, want none", result.Structure.Len())
	}
	if len(result.Solutions) != 0 {
		t.Errorf("got %d solutions, want none", len(result.Solutions))
	}
}
