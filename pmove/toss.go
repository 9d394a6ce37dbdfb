// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/math/vec"
)

func (p *playerMove) noClip() {
	s := p.s
	p.normalizeAngleVectors()
	s.Origin = vec.Add(s.Origin, p.wishVel().Scale(s.FrameTime))
	s.Velocity = vec.Vec3{}
}

func (m MoveType) flying() bool {
	switch m {
	case MoveTypeFly, MoveTypeFlyMissile, MoveTypeBounceMissile:
		return true
	}
	return false
}

// physicsToss moves a dead or thrown player as a projectile.
func (p *playerMove) physicsToss() {
	s := p.s
	p.checkWater()

	if s.Velocity[2] > 0 {
		s.OnGround = -1
	} else if s.OnGround != -1 && s.BaseVelocity == (vec.Vec3{}) && s.Velocity == (vec.Vec3{}) {
		// at rest
		return
	}

	p.checkVelocity()

	if !s.MoveType.flying() {
		p.addGravity()
	}

	s.Velocity = vec.Add(s.Velocity, s.BaseVelocity)
	p.checkVelocity()
	move := s.Velocity.Scale(s.FrameTime)
	s.Velocity = vec.Sub(s.Velocity, s.BaseVelocity)

	tr := p.pushEntity(move)
	p.checkVelocity()

	if tr.AllSolid {
		s.OnGround = tr.Ent
		s.Velocity = vec.Vec3{}
		return
	}

	if tr.Fraction == 1 {
		p.checkWater()
		return
	}

	var backoff float32
	switch s.MoveType {
	case MoveTypeBounce:
		backoff = 2 - s.Friction
	case MoveTypeBounceMissile:
		backoff = 2
	default:
		backoff = 1
	}

	_, s.Velocity = ClipVelocity(s.Velocity, tr.Plane.Normal, backoff)

	if tr.Plane.Normal[2] > 0.7 {
		if s.Velocity[2] < s.MoveVars.Gravity*s.FrameTime {
			s.OnGround = tr.Ent
			s.Velocity[2] = 0
		}

		bouncing := s.MoveType == MoveTypeBounce || s.MoveType == MoveTypeBounceMissile
		if vec.Dot(s.Velocity, s.Velocity) < 30*30 || !bouncing {
			s.OnGround = tr.Ent
			s.Velocity = vec.Vec3{}
		} else {
			move := s.Velocity.Scale((1 - tr.Fraction) * s.FrameTime * 0.9)
			p.pushEntity(move)
		}
	}

	p.checkWater()
}
