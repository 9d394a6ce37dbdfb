// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/conlog"
	"gopmove/math/vec"
)

// PlayerMove runs one command for one player. server tells whether
// this is the authoritative run or client side prediction, the two
// keep separate stuck and footstep state in c.
func (c *Context) PlayerMove(s *State, w World, server bool) {
	p := &playerMove{ctx: c, s: s, w: w}
	p.run(server)

	if s.OnGround != -1 {
		s.Flags |= FlagOnGround
	} else {
		s.Flags &^= FlagOnGround
	}

	if !s.Multiplayer && s.MoveType == MoveTypeWalk {
		s.Friction = 1
	}
}

func (p *playerMove) dropPunchAngle() {
	s := p.s
	dir, l := s.PunchAngle.NormalizeLength()
	l -= (10 + l*0.5) * s.FrameTime
	l = math32.Max(l, 0)
	s.PunchAngle = dir.Scale(l)
}

// calcRoll tilts the view when strafing.
func calcRoll(angles, velocity vec.Vec3, rollangle, rollspeed float32) float32 {
	_, right, _ := vec.AngleVectors(angles)
	side := vec.Dot(velocity, right)
	sign := float32(1)
	if side < 0 {
		sign = -1
	}
	side = math32.Abs(side)
	if side < rollspeed {
		side = side * rollangle / rollspeed
	} else {
		side = rollangle
	}
	return side * sign
}

func (p *playerMove) checkParameters() {
	s := p.s
	spd := s.Cmd.moveVector().Length()
	if s.ClientMaxSpeed != 0 {
		s.MaxSpeed = math32.Min(s.ClientMaxSpeed, s.MaxSpeed)
	}

	// slow down while using things
	if s.OnGround != -1 && s.button(InUse) {
		s.MaxSpeed *= 1.0 / 3.0
	}

	if spd != 0 && spd > s.MaxSpeed {
		s.Cmd.setMoveVector(s.Cmd.moveVector().Scale(s.MaxSpeed / spd))
	}

	if s.Flags&(FlagFrozen|FlagOnTrain) != 0 || s.Dead {
		s.Cmd.setMoveVector(vec.Vec3{})
	}

	p.dropPunchAngle()

	if !s.Dead {
		v := vec.Add(s.Cmd.ViewAngles, s.PunchAngle)
		s.Angles[vec.ROLL] = calcRoll(v, s.Velocity, s.MoveVars.RollAngle, s.MoveVars.RollSpeed) * 4
		s.Angles[vec.PITCH] = v[vec.PITCH]
		s.Angles[vec.YAW] = v[vec.YAW]
	} else {
		s.Angles = s.OldAngles
	}

	if s.Dead {
		s.ViewOfs[2] = deadViewHeight
	}

	if s.Angles[vec.YAW] > 180 {
		s.Angles[vec.YAW] -= 360
	}
}

func (p *playerMove) reduceTimers() {
	s := p.s
	msec := s.Cmd.Msec
	if s.TimeStepSound > 0 {
		s.TimeStepSound = max(0, s.TimeStepSound-msec)
	}
	if s.DuckTime > 0 {
		s.DuckTime = math32.Max(0, s.DuckTime-float32(msec))
	}
	if s.SwimTime > 0 {
		s.SwimTime = math32.Max(0, s.SwimTime-float32(msec))
	}
}

func (p *playerMove) run(server bool) {
	s := p.s
	s.Server = server
	p.checkParameters()
	s.Touches = s.Touches[:0]
	s.FrameTime = float32(s.Cmd.Msec) * 0.001

	p.reduceTimers()

	s.Forward, s.Right, s.Up = vec.AngleVectors(s.Angles)

	if s.Spectator || s.IUser1 > 0 {
		p.spectatorMove()
		p.catagorizePosition()
		return
	}

	if s.MoveType != MoveTypeNoClip && s.MoveType != MoveTypeNone && p.checkStuck() {
		// maybe ducking frees us
		p.duck()
		if p.checkStuck() {
			return
		}
	}

	p.catagorizePosition()

	s.OldWaterLevel = s.WaterLevel

	if s.OnGround == -1 {
		s.FallVelocity = -s.Velocity[2]
	}

	var ladder *PhysEnt
	if !s.Dead && !s.hasFlag(FlagOnTrain) {
		ladder = p.findLadder()
		p.ladder = ladder != nil
	}

	p.updateStepSound()

	p.duck()

	if !s.Dead && !s.hasFlag(FlagOnTrain) {
		if ladder != nil {
			p.ladderMove(ladder)
		} else if s.MoveType != MoveTypeWalk && s.MoveType != MoveTypeNoClip {
			// clear the ladder state
			s.MoveType = MoveTypeWalk
		}
	}

	switch s.MoveType {
	case MoveTypeNone:
	case MoveTypeNoClip:
		p.noClip()
	case MoveTypeToss, MoveTypeBounce, MoveTypeBounceMissile:
		p.physicsToss()
	case MoveTypeFly:
		p.checkWater()

		if s.button(InJump) {
			if ladder == nil {
				p.jump()
			}
		} else {
			s.OldButtons &^= InJump
		}

		s.Velocity = vec.Add(s.Velocity, s.BaseVelocity)
		p.flyMove()
		s.Velocity = vec.Sub(s.Velocity, s.BaseVelocity)
	case MoveTypeWalk:
		p.walk(ladder)
	default:
		side := "client"
		if server {
			side = "server"
		}
		conlog.Errorf("invalid player move type %v on %s", s.MoveType, side)
	}
}

func (p *playerMove) walk(ladder *PhysEnt) {
	s := p.s
	if !p.inWater() {
		p.addCorrectGravity()
	}

	if s.WaterJumpTime != 0 {
		p.waterJump()
		p.flyMove()
		p.checkWater()
		return
	}

	if s.WaterLevel >= 2 {
		if s.WaterLevel == 2 {
			p.checkWaterJump()
		}

		// falling back in cancels the water jump
		if s.Velocity[2] < 0 && s.WaterJumpTime != 0 {
			s.WaterJumpTime = 0
		}

		if s.button(InJump) {
			p.jump()
		} else {
			s.OldButtons &^= InJump
		}

		p.waterMove()
		s.Velocity = vec.Sub(s.Velocity, s.BaseVelocity)
		p.catagorizePosition()
	} else {
		if s.button(InJump) {
			if ladder == nil {
				p.jump()
			}
		} else {
			s.OldButtons &^= InJump
		}

		if s.OnGround != -1 {
			s.Velocity[2] = 0
			p.friction()
		}

		p.checkVelocity()

		if s.OnGround != -1 {
			p.walkMove()
		} else {
			p.airMove()
		}

		p.catagorizePosition()

		s.Velocity = vec.Sub(s.Velocity, s.BaseVelocity)

		p.checkVelocity()

		if !p.inWater() {
			p.fixupGravityVelocity()
		}

		if s.OnGround != -1 {
			s.Velocity[2] = 0
		}

		p.checkFalling()
	}

	p.playWaterSounds()
}

// inWater reports whether the player is at least waist deep.
func (p *playerMove) inWater() bool {
	return p.s.WaterLevel > 1
}
