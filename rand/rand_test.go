// SPDX-License-Identifier: GPL-2.0-or-later

package rand

import (
	"testing"
)

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 100; i++ {
		if x, y := a.Int(0, 3), b.Int(0, 3); x != y {
			t.Fatalf("draw %d: %v != %v", i, x, y)
		}
	}
	a.Reset(42)
	c := New(42)
	if x, y := a.Uint32n(1000), c.Uint32n(1000); x != y {
		t.Errorf("after Reset got %v, want %v", x, y)
	}
}

func TestIntRange(t *testing.T) {
	g := New(7)
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		v := g.Int(0, 4)
		if v < 0 || v > 4 {
			t.Fatalf("Int(0,4) = %v", v)
		}
		seen[v] = true
	}
	if len(seen) != 5 {
		t.Errorf("Int(0,4) only produced %v", seen)
	}
	if v := g.Int(3, 3); v != 3 {
		t.Errorf("Int(3,3) = %v, want 3", v)
	}
}

func TestPosition(t *testing.T) {
	g := New(1)
	for i := 0; i < 100; i++ {
		g.Int(0, 9)
	}
	if g.Position() != 100 {
		t.Errorf("Position() = %v, want 100", g.Position())
	}
	// an empty range draws nothing
	g.Int(5, 5)
	if g.Position() != 100 {
		t.Errorf("Position() = %v after Int(5,5), want 100", g.Position())
	}
	g.Reset(1)
	if g.Position() != 0 {
		t.Errorf("Position() = %v after Reset, want 0", g.Position())
	}
}
