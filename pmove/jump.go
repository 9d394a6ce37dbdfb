// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/bsp"
	"gopmove/math/vec"
)

var wadeSamples = [4]string{
	"player/pl_wade1.wav",
	"player/pl_wade2.wav",
	"player/pl_wade3.wav",
	"player/pl_wade4.wav",
}

// preventMegaBunnyJumping slows the player down when jumping faster
// than 1.7 times the max speed.
func (p *playerMove) preventMegaBunnyJumping() {
	const maxSpeedFactor = 1.7

	s := p.s
	maxScaled := maxSpeedFactor * s.MaxSpeed
	if maxScaled <= 0 {
		return
	}
	if speed := s.Velocity.Length(); speed > maxScaled {
		s.Velocity = s.Velocity.Scale(maxScaled / speed * 0.65)
	}
}

func (p *playerMove) jump() {
	s := p.s
	if s.Dead {
		// don't jump again until released
		s.OldButtons |= InJump
		return
	}

	tfc := infoFlag(s.PhysInfo, "tfc")
	if tfc && s.DeadFlag == DeadDiscardBody+1 {
		return
	}

	if s.WaterJumpTime != 0 {
		s.WaterJumpTime = math32.Max(0, s.WaterJumpTime-float32(s.Cmd.Msec))
		return
	}

	if s.WaterLevel >= 2 {
		s.OnGround = -1

		switch s.WaterType {
		case bsp.CONTENTS_WATER:
			s.Velocity[2] = 100
		case bsp.CONTENTS_SLIME:
			s.Velocity[2] = 80
		default:
			s.Velocity[2] = 50
		}

		if s.SwimTime <= 0 {
			s.SwimTime = 1000
			p.playSound(ChanBody, wadeSamples[p.w.RandomInt(0, 3)], 1)
		}
		return
	}

	if s.OnGround == -1 {
		// don't allow jumping again until released
		s.OldButtons |= InJump
		return
	}

	if s.OldButtons&InJump != 0 {
		return
	}

	s.OnGround = -1

	p.preventMegaBunnyJumping()

	if tfc {
		p.playSound(ChanBody, "player/plyrjmp8.wav", 0.5)
	} else {
		p.playStepSound(stepTypeForTexture(s.TextureType), 1)
	}

	longJump := infoFlag(s.PhysInfo, "slj")
	if (s.InDuck || s.hasFlag(FlagDucking)) && longJump &&
		s.button(InDuck) && s.DuckTime > 0 && s.Velocity.Length() > 50 {
		s.PunchAngle[0] = -5
		s.Velocity = s.Forward.Scale(playerLongJumpSpeed * 1.6)
		s.Velocity[2] = math32.Sqrt(2 * 800 * 56)
	} else {
		s.Velocity[2] = math32.Sqrt(2 * 800 * 45)
	}

	p.fixupGravityVelocity()

	s.OldButtons |= InJump
}

// checkWaterJump looks for a ledge in front of a swimming player and
// starts the jump out of the water.
func (p *playerMove) checkWaterJump() {
	const wjHeight = 8

	s := p.s
	if s.WaterJumpTime != 0 {
		return
	}
	// don't hop out if we just jumped in
	if s.Velocity[2] < -180 {
		return
	}

	flatVelocity, curspeed := s.Velocity.WithZ(0).NormalizeLength()
	flatForward := s.Forward.WithZ(0).Normalize()

	// are we backing into water from steps or something?
	if curspeed != 0 && vec.Dot(flatVelocity, flatForward) < 0 {
		return
	}

	savehull := s.UseHull
	s.UseHull = HullPoint
	defer func() { s.UseHull = savehull }()

	start := s.Origin
	start[2] += wjHeight
	end := vec.Add(start, flatForward.Scale(24))
	tr := p.trace(start, end)
	if tr.Fraction >= 1 || math32.Abs(tr.Plane.Normal[2]) >= 0.1 {
		return
	}

	s.MoveDir = tr.Plane.Normal.Scale(-50)
	start[2] += s.PlayerMaxs[savehull][2] - wjHeight
	end = vec.Add(start, flatForward.Scale(24))
	tr = p.trace(start, end)
	if tr.Fraction == 1 {
		s.WaterJumpTime = 2000
		s.Velocity[2] = 225
		s.OldButtons |= InJump
		s.Flags |= FlagWaterJump
	}
}

func (p *playerMove) waterJump() {
	s := p.s
	if s.WaterJumpTime == 0 {
		return
	}

	s.WaterJumpTime = math32.Min(s.WaterJumpTime, 10000)
	s.WaterJumpTime -= float32(s.Cmd.Msec)
	if s.WaterJumpTime < 0 || s.WaterLevel == 0 {
		s.WaterJumpTime = 0
		s.Flags &^= FlagWaterJump
	}

	s.Velocity[0] = s.MoveDir[0]
	s.Velocity[1] = s.MoveDir[1]
}
