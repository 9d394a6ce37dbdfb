// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"fmt"

	"gopmove/math/vec"
)

// StuckTableSize is the number of nudges tried to free a stuck player.
const StuckTableSize = 54

const (
	sideServer = 0
	sideClient = 1
)

type slotState struct {
	stuckLast      int
	stuckCheckTime float32
	stepLeft       bool
}

// Context holds what survives between ticks outside of State: the
// stuck cursors and footstep sides of every (slot, side) pair, the
// wade sound cadence and the read only lookup tables.
//
// A Context must not be used by more than one goroutine at a time.
// Server and client prediction may share one, they use separate rows.
type Context struct {
	stuck    [StuckTableSize]vec.Vec3
	textures *TextureTable
	slots    [MaxClients][2]slotState
	// skipStep paces the wade sounds. It is shared by all players.
	skipStep uint8
}

// NewContext builds the stuck table and attaches the material table,
// which may be nil.
func NewContext(textures *TextureTable) *Context {
	return &Context{
		stuck:    NewStuckTable(),
		textures: textures,
	}
}

// Textures returns the material table in use.
func (c *Context) Textures() *TextureTable {
	return c.textures
}

// NewStuckTable returns the fixed nudge offsets: small nudges first,
// then larger steps.
func NewStuckTable() [StuckTableSize]vec.Vec3 {
	var table [StuckTableSize]vec.Vec3
	idx := 0
	add := func(v vec.Vec3) {
		table[idx] = v
		idx++
	}

	small := []float32{-0.125, 0, 0.125}
	for _, z := range small {
		add(vec.Vec3{0, 0, z})
	}
	for _, y := range small {
		add(vec.Vec3{0, y, 0})
	}
	for _, x := range small {
		add(vec.Vec3{x, 0, 0})
	}
	corner := []float32{-0.125, 0.125}
	for _, x := range corner {
		for _, y := range corner {
			for _, z := range corner {
				add(vec.Vec3{x, y, z})
			}
		}
	}

	zs := []float32{0, 1, 6}
	large := []float32{-2, 0, 2}
	for _, z := range zs {
		add(vec.Vec3{0, 0, z})
	}
	for _, y := range large {
		add(vec.Vec3{0, y, 0})
	}
	for _, x := range large {
		add(vec.Vec3{x, 0, 0})
	}
	for _, z := range zs {
		for _, x := range large {
			for _, y := range large {
				add(vec.Vec3{x, y, z})
			}
		}
	}
	return table
}

func side(server bool) int {
	if server {
		return sideServer
	}
	return sideClient
}

func (c *Context) slot(index int, server bool) *slotState {
	if index < 0 || index >= MaxClients {
		panic(fmt.Sprintf("player index %d out of range", index))
	}
	return &c.slots[index][side(server)]
}

func (c *Context) resetStuckOffsets(index int, server bool) {
	c.slot(index, server).stuckLast = 0
}

// nextStuckOffset returns the table index and offset under the cursor
// of the slot and advances it.
func (c *Context) nextStuckOffset(index int, server bool) (int, vec.Vec3) {
	s := c.slot(index, server)
	i := s.stuckLast % StuckTableSize
	s.stuckLast++
	return i, c.stuck[i]
}
