package pairing

import "testing"

func TestNewPairing_NormalizesOrder(t *testing.T) {
	if got := NewPairing(7, 3); got.Low != 3 || got.High != 7 {
		t.Fatalf("unexpected pairing: %+v", got)
	}
}

func TestAllPairings_EightPlayers(t *testing.T) {
	pairings := AllPairings([]int64{8, 7, 6, 5, 4, 3, 2, 1})
	if len(pairings) != 28 {
		t.Fatalf("expected 28 pairings, got %d", len(pairings))
	}

	set := NewSet(pairings)
	if len(set) != 28 {
		t.Fatalf("expected 28 distinct pairings, got %d", len(set))
	}
	if !set.Contains(1, 8) || !set.Contains(8, 1) {
		t.Fatalf("expected order-insensitive lookup")
	}
}

func TestSet_RemoveAndSorted(t *testing.T) {
	set := NewSet([]Pairing{NewPairing(3, 4), NewPairing(1, 2), NewPairing(1, 3)})

	if !set.Remove(2, 1) {
		t.Fatalf("expected pairing to be removed")
	}
	if set.Remove(1, 2) {
		t.Fatalf("expected second remove to report missing pairing")
	}

	sorted := set.Sorted()
	if len(sorted) != 2 || sorted[0] != NewPairing(1, 3) || sorted[1] != NewPairing(3, 4) {
		t.Fatalf("unexpected sorted pairings: %v", sorted)
	}
}
