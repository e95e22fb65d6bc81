package pns

import (
	"errors"
	"fmt"
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"

	"github.com/pgraphlab/pgraph/pkg/pns/subset"
)

func TestSolutionStructuresPlant(t *testing.T) {
	pl := newPlant(t)

	got, err := SolutionStructures(pl.p)
	if err != nil {
		t.Fatalf("SolutionStructures: %v", err)
	}

	want := [][]string{
		{"o1", "o3", "o4", "o6"},
		{"o1", "o3", "o4", "o7"},
	}
	if names := structureNames(got); !slices.EqualFunc(names, want, slices.Equal) {
		t.Fatalf("SolutionStructures = %v, want %v", names, want)
	}
	for _, s := range got {
		if !IsSolutionStructure(pl.p, s) {
			t.Errorf("enumerated structure %v fails the membership test", s)
		}
	}
}

func TestSolutionStructuresMultiProduct(t *testing.T) {
	r := NewMaterial("r")
	p1, p2 := NewMaterial("p1"), NewMaterial("p2")

	u1 := NewUnit("u1", NewSet(r), NewSet(p1))
	u2 := NewUnit("u2", NewSet(r), NewSet(p2))
	u3 := NewUnit("u3", NewSet(r), NewSet(p1, p2))

	p := NewProblem("multi")
	for _, u := range []*Unit{u1, u2, u3} {
		p.AddUnit(u)
	}
	p.MarkRaw(r)
	p.MarkProduct(p1, p2)
	if err := p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}

	got, err := SolutionStructures(p)
	if err != nil {
		t.Fatalf("SolutionStructures: %v", err)
	}

	// Every cover of both products, including u3 covering both alone.
	want := [][]string{
		{"u1", "u2", "u3"},
		{"u1", "u3"},
		{"u1", "u2"},
		{"u2", "u3"},
		{"u3"},
	}
	if names := structureNames(got); !slices.EqualFunc(names, want, slices.Equal) {
		t.Errorf("SolutionStructures = %v, want %v", names, want)
	}
}

func TestSolutionStructuresConstraints(t *testing.T) {
	build := func(t *testing.T, mutex bool, cap int) (*Problem, *Unit, *Unit) {
		t.Helper()
		r, out := NewMaterial("r"), NewMaterial("out")
		u1 := NewUnit("u1", NewSet(r), NewSet(out))
		u2 := NewUnit("u2", NewSet(r), NewSet(out))

		p := NewProblem("twins")
		p.AddUnit(u1)
		p.AddUnit(u2)
		p.MarkRaw(r)
		p.MarkProduct(out)
		if mutex {
			if err := p.AddMutuallyExclusive(u1, u2); err != nil {
				t.Fatalf("AddMutuallyExclusive: %v", err)
			}
		}
		if cap != Unlimited {
			if err := p.SetMaxParallel(out, cap); err != nil {
				t.Fatalf("SetMaxParallel: %v", err)
			}
		}
		if err := p.FinalizeData(); err != nil {
			t.Fatalf("FinalizeData: %v", err)
		}
		return p, u1, u2
	}

	tests := []struct {
		name  string
		mutex bool
		cap   int
		want  [][]string
	}{
		{
			name: "Unconstrained",
			cap:  Unlimited,
			want: [][]string{{"u1", "u2"}, {"u1"}, {"u2"}},
		},
		{
			name: "CapOne",
			cap:  1,
			want: [][]string{{"u1"}, {"u2"}},
		},
		{
			name: "CapTwo",
			cap:  2,
			want: [][]string{{"u1", "u2"}, {"u1"}, {"u2"}},
		},
		{
			name:  "MutuallyExclusive",
			mutex: true,
			cap:   Unlimited,
			want:  [][]string{{"u1"}, {"u2"}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _, _ := build(t, tt.mutex, tt.cap)
			got, err := SolutionStructures(p)
			if err != nil {
				t.Fatalf("SolutionStructures: %v", err)
			}
			if names := structureNames(got); !slices.EqualFunc(names, tt.want, slices.Equal) {
				t.Errorf("SolutionStructures = %v, want %v", names, tt.want)
			}
		})
	}
}

func TestEnumerateStructuresLimit(t *testing.T) {
	pl := newPlant(t)

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{"All", 0, 2},
		{"NegativeMeansAll", -1, 2},
		{"First", 1, 1},
		{"AboveTotal", 5, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EnumerateStructures(pl.p, tt.limit)
			if err != nil {
				t.Fatalf("EnumerateStructures: %v", err)
			}
			if len(got) != tt.want {
				t.Fatalf("len = %d, want %d", len(got), tt.want)
			}
			// A truncated enumeration is a prefix of the full one.
			if tt.limit == 1 {
				if names := got[0].Names(); !slices.Equal(names, []string{"o1", "o3", "o4", "o6"}) {
					t.Errorf("first structure = %v, want [o1 o3 o4 o6]", names)
				}
			}
		})
	}
}

func TestEnumerateStructuresFuncStop(t *testing.T) {
	pl := newPlant(t)

	var seen []*Set[*Unit]
	count, err := EnumerateStructuresFunc(pl.p, func(s *Set[*Unit]) bool {
		seen = append(seen, s)
		return false
	})
	if err != nil {
		t.Fatalf("EnumerateStructuresFunc: %v", err)
	}
	if count != 1 || len(seen) != 1 {
		t.Fatalf("count = %d, callbacks = %d; want 1, 1", count, len(seen))
	}

	// The callback owns its copy: mutating it must not corrupt a rerun.
	seen[0].Remove(pl.o1)
	count, err = EnumerateStructuresFunc(pl.p, func(*Set[*Unit]) bool { return true })
	if err != nil {
		t.Fatalf("rerun: %v", err)
	}
	if count != 2 {
		t.Errorf("rerun count = %d, want 2", count)
	}
}

func TestSolutionStructuresNoSolution(t *testing.T) {
	x, prod := NewMaterial("x"), NewMaterial("prod")
	p := NewProblem("starved")
	p.AddUnit(NewUnit("u", NewSet(x), NewSet(prod)))
	p.MarkProduct(prod)
	if err := p.FinalizeData(); err != nil {
		t.Fatalf("FinalizeData: %v", err)
	}

	got, err := SolutionStructures(p)
	if err != nil {
		t.Fatalf("SolutionStructures: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("structures = %v, want none", structureNames(got))
	}
}

func TestSolutionStructuresErrors(t *testing.T) {
	if _, err := SolutionStructures(nil); !errors.Is(err, ErrNilProblem) {
		t.Errorf("nil problem err = %v, want ErrNilProblem", err)
	}

	m := NewMaterial("m")
	p := NewProblem("unfinalized")
	p.AddUnit(NewUnit("u", nil, NewSet(m)))
	p.MarkProduct(m)
	if _, err := SolutionStructures(p); !errors.Is(err, ErrNotFinalized) {
		t.Errorf("unfinalized err = %v, want ErrNotFinalized", err)
	}
}

func TestSolutionStructuresDeterministic(t *testing.T) {
	pl := newPlant(t)

	first, err := SolutionStructures(pl.p)
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := SolutionStructures(pl.p)
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if !slices.EqualFunc(structureNames(first), structureNames(second), slices.Equal) {
		t.Errorf("runs disagree: %v vs %v", structureNames(first), structureNames(second))
	}
}

// TestEnumerationMatchesMembership cross-checks the recursive enumeration
// against brute force on randomly generated problems: every emitted
// structure passes [IsSolutionStructure], no structure is emitted twice,
// and no accepted unit subset is missed.
func TestEnumerationMatchesMembership(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping property-based test in short mode")
	}

	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 80

	properties := gopter.NewProperties(parameters)

	properties.Property("enumeration equals brute-force membership", prop.ForAll(
		func(seed int64) bool {
			p := randomProblem(rand.New(rand.NewSource(seed)))
			if err := p.FinalizeData(); err != nil {
				t.Logf("seed %d: FinalizeData: %v", seed, err)
				return false
			}

			enumerated, err := SolutionStructures(p)
			if err != nil {
				t.Logf("seed %d: SolutionStructures: %v", seed, err)
				return false
			}
			emitted := make(map[string]bool, len(enumerated))
			for _, s := range enumerated {
				if !IsSolutionStructure(p, s) {
					t.Logf("seed %d: emitted %v fails membership", seed, s)
					return false
				}
				key := structureKey(s)
				if emitted[key] {
					t.Logf("seed %d: duplicate %v", seed, s)
					return false
				}
				emitted[key] = true
			}

			accepted := 0
			units := p.Units().Items()
			subset.ForEach(units, 1, len(units), func(pick []*Unit) bool {
				s := NewSet(pick...)
				if !IsSolutionStructure(p, s) {
					return true
				}
				accepted++
				if !emitted[structureKey(s)] {
					t.Logf("seed %d: missed %v", seed, s)
				}
				return true
			})
			return accepted == len(emitted)
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}

func structureKey(s *Set[*Unit]) string {
	return strings.Join(s.Names(), ",")
}

// randomProblem builds a small arbitrary problem: material zero is the
// product, later materials may be raw, and units draw inputs and outputs
// uniformly. Degenerate shapes (unproducible products, units producing raw
// materials, self-feeding units) are all fair game.
func randomProblem(rng *rand.Rand) *Problem {
	nMats := 4 + rng.Intn(4)
	nUnits := 2 + rng.Intn(4)

	mats := make([]*Material, nMats)
	for i := range mats {
		mats[i] = NewMaterial(fmt.Sprintf("m%d", i))
	}

	p := NewProblem("random")
	p.MarkProduct(mats[0])
	for _, m := range mats[1:] {
		if rng.Float64() < 0.35 {
			p.MarkRaw(m)
		}
	}

	units := make([]*Unit, nUnits)
	for i := range units {
		inputs, outputs := NewSet[*Material](), NewSet[*Material]()
		outputs.Add(mats[rng.Intn(nMats)])
		if rng.Float64() < 0.3 {
			outputs.Add(mats[rng.Intn(nMats)])
		}
		for n := 1 + rng.Intn(2); n > 0; n-- {
			inputs.Add(mats[rng.Intn(nMats)])
		}
		units[i] = NewUnit(fmt.Sprintf("u%d", i), inputs, outputs)
		p.AddUnit(units[i])
	}

	if rng.Float64() < 0.5 {
		a, b := rng.Intn(nUnits), rng.Intn(nUnits)
		if a != b {
			p.AddMutuallyExclusive(units[a], units[b])
		}
	}
	if rng.Float64() < 0.5 {
		p.SetMaxParallel(mats[rng.Intn(nMats)], 1+rng.Intn(2))
	}
	return p
}
