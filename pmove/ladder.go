// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/bsp"
	"gopmove/math/vec"
)

func (p *playerMove) ladderMove(ladder *PhysEnt) {
	s := p.s
	if s.MoveType == MoveTypeNoClip {
		return
	}

	s.MoveType = MoveTypeFly
	s.Gravity = 0

	mins, maxs := p.w.ModelBounds(ladder)
	center := vec.Add(mins, maxs).Scale(0.5)
	tr := p.w.TraceModel(ladder, s.Origin, center)
	if tr.Fraction == 1 {
		return
	}
	if s.button(InJump) {
		// jump off the ladder
		s.MoveType = MoveTypeWalk
		s.Velocity = tr.Plane.Normal.Scale(270)
		return
	}

	speed := math32.Min(s.MaxSpeed, maxClimbSpeed)
	if s.hasFlag(FlagDucking) {
		speed *= playerDuckingFactor
	}

	var forward, right float32
	if s.button(InBack) {
		forward -= speed
	}
	if s.button(InForward) {
		forward += speed
	}
	if s.button(InMoveLeft) {
		right -= speed
	}
	if s.button(InMoveRight) {
		right += speed
	}

	if forward == 0 && right == 0 {
		s.Velocity = vec.Vec3{}
		return
	}

	f, r, _ := vec.AngleVectors(s.Angles)
	velocity := vec.Add(f.Scale(forward), r.Scale(right))
	n := tr.Plane.Normal
	perp := vec.Cross(vec.Vec3{0, 0, 1}, n).Normalize()
	normal := vec.Dot(velocity, n)
	lateral := vec.Sub(velocity, n.Scale(normal))
	s.Velocity = vec.Add(lateral, vec.Cross(n, perp).Scale(-normal))

	floor := s.Origin
	floor[2] += s.PlayerMins[s.UseHull][2] - 1
	if c, _ := p.pointContents(floor); c == bsp.CONTENTS_SOLID && normal > 0 {
		// on the floor below the ladder, climb away from it
		s.Velocity = vec.Add(s.Velocity, n.Scale(maxClimbSpeed))
	}
}
