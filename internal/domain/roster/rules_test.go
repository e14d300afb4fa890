package roster

import "testing"

func TestDefaultRules(t *testing.T) {
	rules := DefaultRules()
	if rules.RosterCap != 9 {
		t.Fatalf("expected roster cap 9, got %d", rules.RosterCap)
	}
	if rules.StarterCap != 6 {
		t.Fatalf("expected starter cap 6, got %d", rules.StarterCap)
	}
}

func TestCanAdd(t *testing.T) {
	rules := Rules{RosterCap: 9, StarterCap: 6}

	if !CanAdd(8, rules) {
		t.Fatal("expected room at roster size 8")
	}
	if CanAdd(9, rules) {
		t.Fatal("expected no room at roster size 9")
	}
	if CanAdd(10, rules) {
		t.Fatal("expected no room above cap")
	}
}

func TestCanPromote(t *testing.T) {
	rules := Rules{RosterCap: 9, StarterCap: 6}

	if !CanPromote(5, rules) {
		t.Fatal("expected promotion allowed with 5 starters")
	}
	if CanPromote(6, rules) {
		t.Fatal("expected promotion blocked with 6 starters")
	}
}
