// SPDX-License-Identifier: GPL-2.0-or-later

package bsp

import (
	"gopmove/math/vec"
)

// NewBoxHull builds the six axial clip nodes enclosing mins-maxs.
// Points inside the box report contents, everything else is empty.
func NewBoxHull(mins, maxs vec.Vec3, contents int) *Hull {
	h := &Hull{
		ClipNodes:     make([]*ClipNode, 6),
		Planes:        make([]*Plane, 6),
		FirstClipNode: 0,
		LastClipNode:  5,
		ClipMins:      mins,
		ClipMaxs:      maxs,
	}
	for i := 0; i < 6; i++ {
		h.Planes[i] = &Plane{}
		h.ClipNodes[i] = &ClipNode{Plane: h.Planes[i]}
		side := i & 1
		h.ClipNodes[i].Children[side] = CONTENTS_EMPTY
		if i == 5 {
			h.ClipNodes[i].Children[side^1] = contents
		} else {
			h.ClipNodes[i].Children[side^1] = i + 1
		}
		axis := i >> 1
		h.Planes[i].Type = byte(axis)
		h.Planes[i].Normal[axis] = 1
		if side == 0 {
			h.Planes[i].Dist = maxs[axis]
		} else {
			h.Planes[i].Dist = mins[axis]
		}
	}
	return h
}
