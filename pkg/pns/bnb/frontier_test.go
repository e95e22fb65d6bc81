package bnb

import (
	"cmp"
	"slices"
	"testing"
)

func drain(f *frontier[stub, int]) []int {
	var out []int
	for {
		e, ok := f.pop()
		if !ok {
			return out
		}
		out = append(out, e.bound)
	}
}

func TestFrontierOrdered(t *testing.T) {
	f := newFrontier[stub, int](cmp.Compare, 1)
	for _, b := range []int{5, 1, 3, 2} {
		f.push(entry[stub, int]{bound: b})
	}
	if got, want := drain(f), []int{1, 2, 3, 5}; !slices.Equal(got, want) {
		t.Fatalf("pop order = %v, want %v", got, want)
	}
}

func TestFrontierOrderedTies(t *testing.T) {
	f := newFrontier[stub, int](cmp.Compare, 1)
	f.push(entry[stub, int]{sub: stub{id: 0}, bound: 1})
	f.push(entry[stub, int]{sub: stub{id: 1}, bound: 1})
	f.push(entry[stub, int]{sub: stub{id: 2}, bound: 0})

	var ids []int
	for {
		e, ok := f.pop()
		if !ok {
			break
		}
		ids = append(ids, e.sub.id)
	}
	if want := []int{2, 0, 1}; !slices.Equal(ids, want) {
		t.Fatalf("pop order = %v, want %v (ties first-in first-out)", ids, want)
	}
}

func TestFrontierLIFO(t *testing.T) {
	f := newFrontier[stub, int](nil, 1)
	for _, b := range []int{1, 2, 3} {
		f.push(entry[stub, int]{bound: b})
	}
	if got, want := drain(f), []int{3, 2, 1}; !slices.Equal(got, want) {
		t.Fatalf("pop order = %v, want %v", got, want)
	}
}

func TestFrontierClose(t *testing.T) {
	f := newFrontier[stub, int](nil, 1)
	f.push(entry[stub, int]{bound: 1})
	f.close()

	if _, ok := f.pop(); ok {
		t.Error("pop succeeded on a closed frontier")
	}
	f.push(entry[stub, int]{bound: 2})
	if _, ok := f.pop(); ok {
		t.Error("push revived a closed frontier")
	}
}

// TestFrontierHandoff drives two workers by hand: one blocks in pop until
// the other publishes, and when both find the frontier empty the second
// idle worker ends the search for both.
func TestFrontierHandoff(t *testing.T) {
	f := newFrontier[stub, int](nil, 2)
	got := make(chan int, 1)
	done := make(chan struct{})

	go func() {
		defer close(done)
		e, ok := f.pop()
		if !ok {
			t.Error("worker pop returned done before the push")
			return
		}
		got <- e.bound
		if _, ok := f.pop(); ok {
			t.Error("worker second pop returned an entry from an empty frontier")
		}
	}()

	f.push(entry[stub, int]{bound: 42})
	if v := <-got; v != 42 {
		t.Fatalf("handed-off bound = %d, want 42", v)
	}
	if _, ok := f.pop(); ok {
		t.Fatal("pop returned an entry from an empty frontier")
	}
	<-done
}

func TestFrontierAllIdleEnds(t *testing.T) {
	f := newFrontier[stub, int](cmp.Compare, 2)
	results := make(chan bool, 2)
	for range 2 {
		go func() {
			_, ok := f.pop()
			results <- ok
		}()
	}
	for range 2 {
		if <-results {
			t.Fatal("pop on a never-filled frontier returned an entry")
		}
	}
}
