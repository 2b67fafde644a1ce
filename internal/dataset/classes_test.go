package dataset

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewClassMapRejectsBadTables(t *testing.T) {
	for name, table := range map[string]map[string]int{
		"empty":       {},
		"blank name":  {" ": 1},
		"negative id": {"boat": -1},
	} {
		t.Run(name, func(t *testing.T) {
			if _, err := NewClassMap(table); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestClassMapLookupIsExact(t *testing.T) {
	classes := stockClasses(t)
	if id, ok := classes.Lookup("fish"); !ok || id != 3 {
		t.Fatalf("Lookup(fish) = %d, %v", id, ok)
	}
	for _, name := range []string{"Fish", " fish", "shark"} {
		if _, ok := classes.Lookup(name); ok {
			t.Fatalf("Lookup(%q) unexpectedly matched", name)
		}
	}
}

func TestClassMapNamesOrderedByID(t *testing.T) {
	classes, err := NewClassMap(map[string]int{"net": 2, "boat": 0, "dinghy": 0, "person": 1})
	if err != nil {
		t.Fatalf("NewClassMap: %v", err)
	}
	want := []string{"boat", "dinghy", "person", "net"}
	if diff := cmp.Diff(want, classes.Names()); diff != "" {
		t.Fatalf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestClassMapCopiesInput(t *testing.T) {
	table := map[string]int{"boat": 0}
	classes, err := NewClassMap(table)
	if err != nil {
		t.Fatalf("NewClassMap: %v", err)
	}
	table["boat"] = 9
	if id, _ := classes.Lookup("boat"); id != 0 {
		t.Fatalf("class map aliased its input, got id %d", id)
	}
}

func TestFrameSetKeepsFirstSeenOrder(t *testing.T) {
	set := NewFrameSet(20, 0, 20, 10)
	if diff := cmp.Diff([]int{20, 0, 10}, set.Indices()); diff != "" {
		t.Fatalf("indices mismatch (-want +got):\n%s", diff)
	}
	if !set.Contains(10) || set.Contains(5) {
		t.Fatal("unexpected membership")
	}
	var nilSet *FrameSet
	if nilSet.Contains(0) || nilSet.Len() != 0 {
		t.Fatal("nil set should be empty")
	}
}
