package mask

import (
	"reflect"
	"testing"
)

func TestInsertContains(t *testing.T) {
	var m AffinityMask
	if m.Contains(5) {
		t.Fatal("empty mask should not contain 5")
	}
	m.Insert(5)
	if !m.Contains(5) {
		t.Fatal("mask should contain 5 after insert")
	}
	if m.Contains(64) {
		t.Fatal("mask should not contain an index never inserted")
	}
}

func TestRemoveClearsBit(t *testing.T) {
	m := FromIndices(1, 2, 3)
	m.Remove(2)
	if m.Contains(2) {
		t.Fatal("mask should not contain 2 after Remove(2)")
	}
	if !m.Contains(1) || !m.Contains(3) {
		t.Fatal("Remove(2) should not disturb other set bits")
	}
	m.Remove(99) // no-op, never set
	m.Remove(-1) // no-op, negative index
}

func TestSortedIndicesSortsAndDedupes(t *testing.T) {
	got := SortedIndices([]int{3, 1, 2, 1, 3, 0})
	want := []int{0, 1, 2, 3}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("SortedIndices() = %v, want %v", got, want)
	}
}

func TestCountMatchesIter(t *testing.T) {
	m := FromIndices(0, 1, 2, 3, 7, 10, 11)
	if got := m.Count(); got != 7 {
		t.Fatalf("Count() = %d, want 7", got)
	}
	if got := len(m.Iter()); got != m.Count() {
		t.Fatalf("len(Iter()) = %d, want Count() = %d", got, m.Count())
	}
}

func TestDisplayScenario(t *testing.T) {
	m := FromIndices(0, 1, 2, 3, 7, 10, 11)
	if got := m.String(); got != "0-3,7,10-11" {
		t.Fatalf("String() = %q, want %q", got, "0-3,7,10-11")
	}
	want := []int{0, 1, 2, 3, 7, 10, 11}
	if got := m.Iter(); !reflect.DeepEqual(got, want) {
		t.Fatalf("Iter() = %v, want %v", got, want)
	}
}

func TestEmptyMaskDisplay(t *testing.T) {
	var m AffinityMask
	if got := m.String(); got != "" {
		t.Fatalf("String() on empty mask = %q, want empty string", got)
	}
}

func TestUnionIntersectLaws(t *testing.T) {
	a := FromIndices(0, 2, 4, 130)
	b := FromIndices(1, 2, 3, 200)
	c := FromIndices(2, 3, 5)

	if !a.Union(b).Equal(b.Union(a)) {
		t.Fatal("union is not commutative")
	}
	if !a.Intersect(b).Equal(b.Intersect(a)) {
		t.Fatal("intersection is not commutative")
	}
	if !a.Union(a).Equal(a) {
		t.Fatal("a ∪ a != a")
	}
	if !a.Intersect(a).Equal(a) {
		t.Fatal("a ∩ a != a")
	}

	left := a.Intersect(b.Union(c))
	right := a.Intersect(b).Union(a.Intersect(c))
	if !left.Equal(right) {
		t.Fatal("intersection does not distribute over union")
	}

	assoc1 := a.Union(b).Union(c)
	assoc2 := a.Union(b.Union(c))
	if !assoc1.Equal(assoc2) {
		t.Fatal("union is not associative")
	}
}

func TestEqualityIgnoresTrailingZeroWords(t *testing.T) {
	a := FromWords([]uint64{0b1011})
	b := FromWords([]uint64{0b1011, 0, 0})
	if !a.Equal(b) {
		t.Fatal("masks with only trailing zero words differing should be equal")
	}
	if a.WordLen() == b.WordLen() {
		t.Fatal("test setup invalid: word lengths should differ")
	}
}

func TestIterRoundTrip(t *testing.T) {
	orig := FromIndices(3, 1, 64, 200, 5)
	rt := FromIndices(orig.Iter()...)
	if !orig.Equal(rt) {
		t.Fatal("mask -> Iter() -> FromIndices did not round-trip")
	}
}

func TestDisplayRoundTrip(t *testing.T) {
	orig := FromIndices(0, 1, 2, 3, 7, 10, 11, 64, 65)
	parsed, err := Parse(orig.String())
	if err != nil {
		t.Fatalf("Parse returned error: %v", err)
	}
	if !orig.Equal(parsed) {
		t.Fatalf("round trip mismatch: %v != %v", orig.Iter(), parsed.Iter())
	}
}

func TestParseInvalid(t *testing.T) {
	cases := []string{"a-b", "3-1", "x", "1,,2"}
	for _, c := range cases {
		if c == "1,,2" {
			// empty segments between commas are tolerated and skipped
			if _, err := Parse(c); err != nil {
				t.Fatalf("Parse(%q) unexpected error: %v", c, err)
			}
			continue
		}
		if _, err := Parse(c); err == nil {
			t.Fatalf("Parse(%q) expected error, got nil", c)
		}
	}
}

func TestDifference(t *testing.T) {
	a := FromIndices(0, 1, 2, 3)
	b := FromIndices(2, 3)
	d := a.Difference(b)
	if d.Count() != 2 || !d.Contains(0) || !d.Contains(1) {
		t.Fatalf("Difference() = %v, want {0,1}", d.Iter())
	}
}

func TestWordsCopyIsIndependent(t *testing.T) {
	m := FromIndices(1, 2, 3)
	w := m.Words()
	w[0] = 0
	if !m.Contains(1) {
		t.Fatal("mutating Words() result mutated the mask")
	}
}
