// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"testing"

	"gopmove/math/vec"
)

func TestBoxPointContents(t *testing.T) {
	h := NewBoxHull(vec.Vec3{-8, -8, -8}, vec.Vec3{8, 8, 8}, CONTENTS_WATER)
	tests := []struct {
		p    vec.Vec3
		want int
	}{
		{vec.Vec3{0, 0, 0}, CONTENTS_WATER},
		{vec.Vec3{7.9, -7.9, 0}, CONTENTS_WATER},
		{vec.Vec3{8, 0, 0}, CONTENTS_EMPTY},
		{vec.Vec3{0, 0, -8}, CONTENTS_WATER},
		{vec.Vec3{0, 0, -8.01}, CONTENTS_EMPTY},
		{vec.Vec3{100, 0, 0}, CONTENTS_EMPTY},
	}
	for _, tc := range tests {
		if got := h.PointContents(h.FirstClipNode, tc.p); got != tc.want {
			t.Errorf("PointContents(%v) = %v, want %v", tc.p, got, tc.want)
		}
	}
}

func TestBoxCheckFloor(t *testing.T) {
	h := NewBoxHull(vec.Vec3{-100, -100, -16}, vec.Vec3{100, 100, 36}, CONTENTS_SOLID)
	tr := h.Check(vec.Vec3{0, 0, 36}, vec.Vec3{0, 0, 34})
	if tr.StartSolid || tr.AllSolid {
		t.Fatalf("Check from the surface started solid: %+v", tr)
	}
	if tr.Fraction != 0 {
		t.Errorf("Check fraction = %v, want 0", tr.Fraction)
	}
	if want := (vec.Vec3{0, 0, 1}); tr.Plane.Normal != want {
		t.Errorf("Check normal = %v, want %v", tr.Plane.Normal, want)
	}
}

func TestBoxCheckWall(t *testing.T) {
	h := NewBoxHull(vec.Vec3{48, -100, -100}, vec.Vec3{144, 100, 100}, CONTENTS_SOLID)
	tr := h.Check(vec.Vec3{0, 0, 0}, vec.Vec3{100, 0, 0})
	if tr.AllSolid || tr.StartSolid {
		t.Fatalf("Check started solid: %+v", tr)
	}
	if want := (vec.Vec3{-1, 0, 0}); tr.Plane.Normal != want {
		t.Errorf("Check normal = %v, want %v", tr.Plane.Normal, want)
	}
	if tr.Plane.Normal[2] != 0 {
		t.Errorf("wall normal z = %v, want 0", tr.Plane.Normal[2])
	}
	if tr.EndPos[0] >= 48 || tr.EndPos[0] < 47.9 {
		t.Errorf("Check endpos = %v, want just before x=48", tr.EndPos)
	}
}

func TestBoxCheckMiss(t *testing.T) {
	h := NewBoxHull(vec.Vec3{48, -100, -100}, vec.Vec3{144, 100, 100}, CONTENTS_SOLID)
	end := vec.Vec3{0, 0, 40}
	tr := h.Check(vec.Vec3{0, 0, 0}, end)
	if tr.AllSolid || tr.Fraction != 1 || tr.EndPos != end {
		t.Errorf("Check = %+v, want a clear move", tr)
	}
	if !tr.InOpen {
		t.Errorf("Check did not report open space")
	}
}

func TestBoxCheckInside(t *testing.T) {
	h := NewBoxHull(vec.Vec3{-10, -10, -10}, vec.Vec3{10, 10, 10}, CONTENTS_SOLID)
	tr := h.Check(vec.Vec3{0, 0, 0}, vec.Vec3{1, 0, 0})
	if !tr.AllSolid || !tr.StartSolid {
		t.Errorf("Check inside = %+v, want all solid", tr)
	}
}
