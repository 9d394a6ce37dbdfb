// SPDX-License-Identifier: GPL-2.0-or-later

package world

import (
	"gopmove/bsp"
	"gopmove/math/vec"
	"gopmove/pmove"
)

// Brush is an axial box. Contents is one of the bsp.CONTENTS values.
type Brush struct {
	Mins     vec.Vec3
	Maxs     vec.Vec3
	Contents int
	Texture  string
}

// blocks reports whether the brush stops player hulls.
func (b *Brush) blocks() bool {
	return b.Contents == bsp.CONTENTS_SOLID || b.Contents == bsp.CONTENTS_CLIP
}

// Model is a set of brushes in model space.
type Model struct {
	Name    string
	Brushes []Brush

	// box hulls per brush, expanded per player hull
	hulls [3][]*bsp.Hull
	// point hulls holding the real contents
	points []*bsp.Hull
}

func (m *Model) Bounds() (vec.Vec3, vec.Vec3) {
	if len(m.Brushes) == 0 {
		return vec.Vec3{}, vec.Vec3{}
	}
	mins, maxs := m.Brushes[0].Mins, m.Brushes[0].Maxs
	for _, b := range m.Brushes[1:] {
		for i := 0; i < 3; i++ {
			mins[i] = min(mins[i], b.Mins[i])
			maxs[i] = max(maxs[i], b.Maxs[i])
		}
	}
	return mins, maxs
}

func (m *Model) build() {
	for h := range m.hulls {
		hmins, hmaxs, _ := pmove.HullBounds(h)
		m.hulls[h] = make([]*bsp.Hull, len(m.Brushes))
		for i := range m.Brushes {
			b := &m.Brushes[i]
			c := b.Contents
			if b.blocks() {
				c = bsp.CONTENTS_SOLID
			}
			m.hulls[h][i] = bsp.NewBoxHull(vec.Sub(b.Mins, hmaxs), vec.Sub(b.Maxs, hmins), c)
		}
	}
	m.points = make([]*bsp.Hull, len(m.Brushes))
	for i := range m.Brushes {
		b := &m.Brushes[i]
		m.points[i] = bsp.NewBoxHull(b.Mins, b.Maxs, b.Contents)
	}
}

// hullForBox returns the box of another player expanded by the hull.
func hullForBox(mins, maxs vec.Vec3, hull int) *bsp.Hull {
	hmins, hmaxs, _ := pmove.HullBounds(hull)
	return bsp.NewBoxHull(vec.Sub(mins, hmaxs), vec.Sub(maxs, hmins), bsp.CONTENTS_SOLID)
}
