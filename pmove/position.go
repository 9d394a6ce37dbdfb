// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/bsp"
	"gopmove/math/vec"
)

func isWater(c int) bool {
	return c > bsp.CONTENTS_TRANSLUCENT && c <= bsp.CONTENTS_WATER
}

// currentTable holds the push direction of CONTENTS_CURRENT_0 and the
// following five current contents.
var currentTable = [6]vec.Vec3{
	{1, 0, 0},
	{0, 1, 0},
	{-1, 0, 0},
	{0, -1, 0},
	{0, 0, 1},
	{0, 0, -1},
}

// checkWater sets WaterLevel and WaterType and reports whether the
// player is at least waist deep.
func (p *playerMove) checkWater() bool {
	s := p.s
	maxs := s.PlayerMaxs[s.UseHull]
	point := vec.Add(vec.Add(s.Origin, s.PlayerMins[s.UseHull]),
		vec.Vec3{maxs[0] * 0.5, maxs[1] * 0.5, 1})

	s.WaterType = bsp.CONTENTS_EMPTY
	s.WaterLevel = 0

	cont, truecont := p.pointContents(point)
	if isWater(cont) {
		s.WaterType = cont
		s.WaterLevel = 1

		point[2] = s.Origin[2] + s.height()*0.5
		if c, _ := p.pointContents(point); isWater(c) {
			s.WaterLevel = 2

			point[2] = s.Origin[2] + s.ViewOfs[2]
			if c, _ := p.pointContents(point); isWater(c) {
				s.WaterLevel = 3
			}
		}

		if bsp.IsCurrent(truecont) {
			push := currentTable[bsp.CONTENTS_CURRENT_0-truecont]
			s.BaseVelocity = vec.Add(s.BaseVelocity, push.Scale(float32(s.WaterLevel)*50))
		}
	}

	return s.WaterLevel > 1
}

func (p *playerMove) catagorizePosition() {
	s := p.s
	p.checkWater()

	point := s.Origin
	point[2] -= 2

	if s.Velocity[2] > 180 {
		s.OnGround = -1
		return
	}

	tr := p.trace(s.Origin, point)
	if tr.Plane.Normal[2] < 0.7 {
		s.OnGround = -1
	} else {
		s.OnGround = tr.Ent
	}

	if s.OnGround != -1 {
		s.WaterJumpTime = 0
		if s.WaterLevel < 2 && !tr.StartSolid && !tr.AllSolid {
			s.Origin = tr.EndPos
		}
	}

	if tr.Ent > 0 {
		p.addToTouched(tr, s.Velocity)
	}
}

// checkStuck tries to move the player out of solid geometry and
// reports whether it is still stuck.
func (p *playerMove) checkStuck() bool {
	const checkStuckMinTime = 0.05

	s := p.s
	hitent, tr := p.testPosition(s.Origin)
	if hitent == -1 {
		p.ctx.resetStuckOffsets(s.PlayerIndex, s.Server)
		return false
	}

	base := s.Origin

	if (!s.Server || !s.Multiplayer) &&
		(hitent == 0 || s.PhysEnts[hitent].Model != 0) {
		p.ctx.resetStuckOffsets(s.PlayerIndex, s.Server)
		for i := 0; i < StuckTableSize; i++ {
			_, offset := p.ctx.nextStuckOffset(s.PlayerIndex, s.Server)
			test := vec.Add(base, offset)
			var ent int
			ent, tr = p.testPosition(test)
			if ent == -1 {
				p.ctx.resetStuckOffsets(s.PlayerIndex, s.Server)
				s.Origin = test
				return false
			}
		}
	}

	slot := p.ctx.slot(s.PlayerIndex, s.Server)
	now := float32(p.w.SystemTime())
	if slot.stuckCheckTime >= now-checkStuckMinTime {
		return true
	}
	slot.stuckCheckTime = now

	p.w.StuckTouch(hitent, tr)

	index, offset := p.ctx.nextStuckOffset(s.PlayerIndex, s.Server)
	test := vec.Add(base, offset)
	if hitent, _ = p.testPosition(test); hitent == -1 {
		p.ctx.resetStuckOffsets(s.PlayerIndex, s.Server)
		if index >= 27 {
			s.Origin = test
		}
		return false
	}

	if s.button(InJump|InDuck|InAttack) && s.PhysEnts[hitent].Player {
		const (
			xystep   = 8
			zstep    = 18
			xyminmax = xystep
			zminmax  = 4 * zstep
		)
		for z := float32(0); z <= zminmax; z += zstep {
			for x := float32(-xyminmax); x <= xyminmax; x += xystep {
				for y := float32(-xyminmax); y <= xyminmax; y += xystep {
					test := vec.Add(base, vec.Vec3{x, y, z})
					if e, _ := p.testPosition(test); e == -1 {
						s.Origin = test
						return false
					}
				}
			}
		}
	}

	return true
}

// fixPlayerCrouchStuck moves the player up to 36 units along z in
// direction until it fits. The origin stays unchanged if it never does.
func (p *playerMove) fixPlayerCrouchStuck(direction int) {
	s := p.s
	if hitent, _ := p.testPosition(s.Origin); hitent == -1 {
		return
	}
	test := s.Origin
	for i := 0; i < 36; i++ {
		test[2] += float32(direction)
		if hitent, _ := p.testPosition(test); hitent == -1 {
			s.Origin = test
			return
		}
	}
}

// findLadder returns the ladder brush the player hull overlaps.
func (p *playerMove) findLadder() *PhysEnt {
	s := p.s
	for i := range s.MoveEnts {
		pe := &s.MoveEnts[i]
		if pe.Model == 0 {
			continue
		}
		if p.w.ModelType(pe) != ModelBrush {
			continue
		}
		if pe.Skin != bsp.CONTENTS_LADDER {
			continue
		}
		if p.w.HullPointContents(pe, s.UseHull, s.Origin) != bsp.CONTENTS_EMPTY {
			return pe
		}
	}
	return nil
}
