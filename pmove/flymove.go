// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/math/vec"
)

// flyMove moves the player along its velocity for the frame, sliding
// along everything it hits. The result has bit 1 set for a floor, bit
// 2 for a wall or step and is 4 if the player started in solid.
func (p *playerMove) flyMove() int {
	s := p.s
	var planes [MaxClipPlanes]vec.Vec3
	blocked := 0
	numplanes := 0
	originalVelocity := s.Velocity
	primalVelocity := s.Velocity
	var allFraction float32
	timeLeft := s.FrameTime

	for bump := 0; bump < 4; bump++ {
		if s.Velocity == (vec.Vec3{}) {
			break
		}

		end := vec.Add(s.Origin, s.Velocity.Scale(timeLeft))
		tr := p.trace(s.Origin, end)
		allFraction += tr.Fraction
		if tr.AllSolid {
			s.Velocity = vec.Vec3{}
			return 4
		}

		if tr.Fraction > 0 {
			s.Origin = tr.EndPos
			originalVelocity = s.Velocity
			numplanes = 0
		}
		if tr.Fraction == 1 {
			break
		}

		p.addToTouched(tr, s.Velocity)

		if tr.Plane.Normal[2] > 0.7 {
			blocked |= 1 // floor
		} else if tr.Plane.Normal[2] == 0 {
			blocked |= 2 // step
		}

		timeLeft -= timeLeft * tr.Fraction

		if numplanes >= MaxClipPlanes {
			s.Velocity = vec.Vec3{}
			break
		}

		planes[numplanes] = tr.Plane.Normal
		numplanes++

		if numplanes == 1 && s.MoveType == MoveTypeWalk &&
			(s.OnGround == -1 || s.Friction != 1) {
			for _, plane := range planes[:numplanes] {
				overbounce := float32(1)
				if plane[2] <= 0.7 {
					overbounce += s.MoveVars.Bounce * (1 - s.Friction)
				}
				_, v := ClipVelocity(originalVelocity, plane, overbounce)
				s.Velocity = v
				originalVelocity = v
			}
			continue
		}

		i := 0
		for ; i < numplanes; i++ {
			_, s.Velocity = ClipVelocity(originalVelocity, planes[i], 1)
			j := 0
			for ; j < numplanes; j++ {
				if j != i && vec.Dot(s.Velocity, planes[j]) < 0 {
					break
				}
			}
			if j == numplanes {
				break
			}
		}

		if i == numplanes {
			if numplanes != 2 {
				s.Velocity = vec.Vec3{}
				break
			}
			dir := vec.Cross(planes[0], planes[1])
			d := vec.Dot(dir, s.Velocity)
			s.Velocity = dir.Scale(d)
		}

		if vec.Dot(s.Velocity, primalVelocity) <= 0 {
			s.Velocity = vec.Vec3{}
			break
		}
	}

	if allFraction == 0 {
		s.Velocity = vec.Vec3{}
	}

	return blocked
}

func (p *playerMove) walkMove() {
	s := p.s
	p.normalizeAngleVectorsNoZ()
	wish := newWishMove(p.wishVel().WithZ(0), s.MaxSpeed)

	s.Velocity[2] = 0
	p.accelerate(wish.dir, wish.speed, s.MoveVars.Accelerate)
	s.Velocity[2] = 0
	s.Velocity = vec.Add(s.Velocity, s.BaseVelocity)

	if s.Velocity.Length() < 1 {
		s.Velocity = vec.Vec3{}
		return
	}

	oldonground := s.OnGround
	dest := vec.Add(s.Origin, vec.Vec3{
		s.Velocity[0] * s.FrameTime,
		s.Velocity[1] * s.FrameTime,
		0,
	})
	tr := p.trace(s.Origin, dest)
	if tr.Fraction == 1 {
		s.Origin = tr.EndPos
		return
	}
	if (oldonground == -1 && s.WaterLevel == 0) || s.WaterJumpTime != 0 {
		return
	}

	original := s.Origin
	originalVel := s.Velocity

	// slide without stepping
	p.flyMove()
	down := s.Origin
	downVel := s.Velocity

	s.Origin = original
	s.Velocity = originalVel

	// step up, slide, then step back down
	dest = s.Origin
	dest[2] += s.MoveVars.StepSize
	tr = p.trace(s.Origin, dest)
	if !tr.StartSolid && !tr.AllSolid {
		s.Origin = tr.EndPos
	}

	p.flyMove()

	dest = s.Origin
	dest[2] -= s.MoveVars.StepSize
	tr = p.trace(s.Origin, dest)
	if tr.Plane.Normal[2] < 0.7 {
		s.Origin = down
		s.Velocity = downVel
		return
	}
	if !tr.StartSolid && !tr.AllSolid {
		s.Origin = tr.EndPos
	}
	up := s.Origin

	sq := func(f float32) float32 { return f * f }
	downdist := sq(down[0]-original[0]) + sq(down[1]-original[1])
	updist := sq(up[0]-original[0]) + sq(up[1]-original[1])

	if downdist > updist {
		s.Origin = down
		s.Velocity = downVel
	} else {
		s.Velocity[2] = downVel[2]
	}
}

func (p *playerMove) airMove() {
	s := p.s
	p.normalizeAngleVectorsNoZ()
	wish := newWishMove(p.wishVel().WithZ(0), s.MaxSpeed)
	p.airAccelerate(wish.dir, wish.speed, s.MoveVars.AirAccelerate)
	s.Velocity = vec.Add(s.Velocity, s.BaseVelocity)
	p.flyMove()
}

func (p *playerMove) waterMove() {
	s := p.s
	wishvel := vec.Vec3{0, 0, -60}
	if s.Cmd.moveVector() != (vec.Vec3{}) {
		wishvel = p.wishVel()
	}
	wish := newWishMove(wishvel, s.MaxSpeed)
	wish.speed *= 0.8

	s.Velocity = vec.Add(s.Velocity, s.BaseVelocity)
	var newspeed float32
	if speed := s.Velocity.Length(); speed != 0 {
		newspeed = speed - s.FrameTime*speed*s.MoveVars.Friction*s.Friction
		if newspeed < 0 {
			newspeed = 0
		}
		s.Velocity = s.Velocity.Scale(newspeed / speed)
	}

	if wish.speed < 0.1 {
		return
	}

	if addspeed := wish.speed - newspeed; addspeed > 0 {
		dir := wish.vel.Normalize()
		accelspeed := s.MoveVars.Accelerate * wish.speed * s.FrameTime * s.Friction
		if accelspeed > addspeed {
			accelspeed = addspeed
		}
		s.Velocity = vec.Add(s.Velocity, dir.Scale(accelspeed))
	}

	end := vec.Add(s.Origin, s.Velocity.Scale(s.FrameTime))
	start := end
	start[2] += s.MoveVars.StepSize + 1
	tr := p.trace(start, end)
	if !tr.StartSolid && !tr.AllSolid {
		s.Origin = tr.EndPos
		return
	}

	p.flyMove()
}
