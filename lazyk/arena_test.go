package lazyk

import "testing"

func TestArenaAppendsWhenNoFreeSlots(t *testing.T) {
	a := newArena()
	id1 := a.newBare(kindK)
	id2 := a.newBare(kindS)
	if id1 == id2 {
		t.Fatalf("expected distinct ids, got %s and %s", id1, id2)
	}
	if a.get(id1).k != kindK || a.get(id2).k != kindS {
		t.Fatalf("unexpected node contents")
	}
}

func TestArenaReusesFreedSlots(t *testing.T) {
	a := newArena()
	a.preambleN = 1
	victim := a.newBare(kindK)
	keep := a.newBare(kindS)
	before := a.len()

	a.free(victim)
	a.resetFreeScan(1)

	reused := a.newBare(kindI)
	if reused != victim {
		t.Fatalf("expected the freed slot %s to be reused, got %s", victim, reused)
	}
	if a.len() != before {
		t.Fatalf("arena should not have grown: before=%d after=%d", before, a.len())
	}
	if a.get(keep).k != kindS {
		t.Fatalf("unrelated node was clobbered")
	}
}

func TestArenaFreeScanFallsBackToAppend(t *testing.T) {
	a := newArena()
	a.resetFreeScan(id(a.len()))
	before := a.len()
	id1 := a.newBare(kindK)
	if int(id1) != before {
		t.Fatalf("expected append at %d, got %s", before, id1)
	}
}

func TestSwapLeftExchangesLeftField(t *testing.T) {
	a := newArena()
	x := a.newBare(kindK)
	y := a.newBare(kindS)
	app := a.newApply(x, y)

	other := id(42)
	a.swapLeft(app, &other)

	if other != x {
		t.Fatalf("expected swapped-out value %s, got %s", x, other)
	}
	if a.get(app).l != 42 {
		t.Fatalf("expected new left field 42, got %s", a.get(app).l)
	}
	if a.get(app).r != y {
		t.Fatalf("right field should be untouched")
	}
}

func TestSwapLeftPanicsOnNonApply(t *testing.T) {
	a := newArena()
	x := a.newBare(kindK)
	defer func() {
		if recover() == nil {
			t.Fatalf("expected a panic on swapLeft against a non-Apply node")
		}
	}()
	other := nullID
	a.swapLeft(x, &other)
}
