// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/math/vec"
)

const (
	HullStanding = 0
	HullDucked   = 1
	HullPoint    = 2

	hullMinZ     = -36
	hullMaxZ     = 36
	duckHullMinZ = -18
	duckHullMaxZ = 18
)

// HullBounds returns the bounding box of the player hull number, ok
// is false for unknown hulls.
func HullBounds(hull int) (mins, maxs vec.Vec3, ok bool) {
	switch hull {
	case HullStanding:
		return vec.Vec3{-16, -16, hullMinZ}, vec.Vec3{16, 16, hullMaxZ}, true
	case HullDucked:
		return vec.Vec3{-16, -16, duckHullMinZ}, vec.Vec3{16, 16, duckHullMaxZ}, true
	case HullPoint:
		return vec.Vec3{}, vec.Vec3{}, true
	}
	return vec.Vec3{}, vec.Vec3{}, false
}

// DefaultHulls fills the per hull bounds of a player.
func DefaultHulls() (mins, maxs [4]vec.Vec3) {
	for i := range mins {
		mins[i], maxs[i], _ = HullBounds(i)
	}
	return mins, maxs
}
