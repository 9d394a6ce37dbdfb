// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"fmt"

	"gopmove/conlog"
	"gopmove/math"
	"gopmove/math/vec"
)

type Plane struct {
	Normal vec.Vec3
	Dist   float32
	Type   byte
}

type ClipNode struct {
	Plane    *Plane
	Children [2]int
}

type Hull struct {
	ClipNodes     []*ClipNode
	Planes        []*Plane
	FirstClipNode int
	LastClipNode  int
	ClipMins      vec.Vec3
	ClipMaxs      vec.Vec3
}

type TracePlane struct {
	Normal   vec.Vec3
	Distance float32
}

type Trace struct {
	AllSolid   bool
	StartSolid bool
	InOpen     bool
	InWater    bool
	Fraction   float32
	EndPos     vec.Vec3
	Plane      TracePlane
}

// NewTrace returns a trace prepared for RecursiveCheck: all solid
// until proven otherwise, ending at end.
func NewTrace(end vec.Vec3) Trace {
	return Trace{
		AllSolid: true,
		Fraction: 1,
		EndPos:   end,
	}
}

func (h *Hull) node(num int, caller string) *ClipNode {
	if num < h.FirstClipNode || num > h.LastClipNode {
		panic(fmt.Sprintf("%s: bad node number %d", caller, num))
	}
	return h.ClipNodes[num]
}

func (p *Plane) distance(v vec.Vec3) float32 {
	if p.Type < 3 {
		return v[int(p.Type)] - p.Dist
	}
	return vec.DoublePrecDot(p.Normal, v) - p.Dist
}

func (h *Hull) PointContents(num int, p vec.Vec3) int {
	for num >= 0 {
		node := h.node(num, "HullPointContents")
		if node.Plane.distance(p) < 0 {
			num = node.Children[1]
		} else {
			num = node.Children[0]
		}
	}

	return num
}

// Check sweeps the segment p1-p2 through the whole hull.
func (h *Hull) Check(p1, p2 vec.Vec3) Trace {
	tr := NewTrace(p2)
	h.RecursiveCheck(h.FirstClipNode, 0, 1, p1, p2, &tr)
	return tr
}

func (h *Hull) RecursiveCheck(num int, p1f, p2f float32, p1, p2 vec.Vec3, trace *Trace) bool {
	const epsilon = 0.03125 // (1/32) to keep floating point happy
	if num < 0 {            // check for empty
		if num != CONTENTS_SOLID {
			trace.AllSolid = false
			if num == CONTENTS_EMPTY {
				trace.InOpen = true
			} else {
				trace.InWater = true
			}
		} else {
			trace.StartSolid = true
		}
		return true
	}
	node := h.node(num, "RecursiveHullCheck")
	plane := node.Plane
	t1 := plane.distance(p1)
	t2 := plane.distance(p2)
	if t1 >= 0 && t2 >= 0 {
		return h.RecursiveCheck(node.Children[0], p1f, p2f, p1, p2, trace)
	}
	if t1 < 0 && t2 < 0 {
		return h.RecursiveCheck(node.Children[1], p1f, p2f, p1, p2, trace)
	}

	// put the crosspoint epsilon pixels on the near side
	frac := func() float32 {
		d := t1 - t2
		if t1 < 0 {
			return (t1 + epsilon) / d
		}
		return (t1 - epsilon) / d
	}()
	frac = math.Clamp(0, frac, 1)
	midf := math.Lerp(p1f, p2f, frac)
	mid := vec.Lerp(p1, p2, frac)
	side := 0
	if t1 < 0 {
		side = 1
	}
	// move up to the node
	if !h.RecursiveCheck(node.Children[side], p1f, midf, p1, mid, trace) {
		return false
	}
	if h.PointContents(node.Children[side^1], mid) != CONTENTS_SOLID {
		return h.RecursiveCheck(node.Children[side^1], midf, p2f, mid, p2, trace)
	}
	if trace.AllSolid {
		return false // never got out of the solid area
	}
	// the other side of the node is solid, this is the impact point
	if side == 0 {
		trace.Plane.Normal = plane.Normal
		trace.Plane.Distance = plane.Dist
	} else {
		trace.Plane.Normal = vec.Sub(vec.Vec3{}, plane.Normal)
		trace.Plane.Distance = -plane.Dist
	}
	for h.PointContents(h.FirstClipNode, mid) == CONTENTS_SOLID {
		// shouldn't really happen, but does occasionally
		frac -= 0.1
		if frac < 0 {
			trace.Fraction = midf
			trace.EndPos = mid
			conlog.DPrintf("backup past 0\n")
			return false
		}
		midf = math.Lerp(p1f, p2f, frac)
		mid = vec.Lerp(p1, p2, frac)
	}
	trace.Fraction = midf
	trace.EndPos = mid

	return false
}
