// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/math"
	"gopmove/math/vec"
)

func (p *playerMove) duck() {
	s := p.s
	changed := s.OldButtons ^ s.Cmd.Buttons
	pressed := changed & s.Cmd.Buttons

	if s.button(InDuck) {
		s.OldButtons |= InDuck
	} else {
		s.OldButtons &^= InDuck
	}

	if s.IUser3 != 0 || s.Dead {
		// can't duck while frozen by the game or dead
		if s.hasFlag(FlagDucking) {
			p.unDuck()
		}
		return
	}

	if s.hasFlag(FlagDucking) {
		s.Cmd.ForwardMove *= playerDuckingFactor
		s.Cmd.SideMove *= playerDuckingFactor
		s.Cmd.UpMove *= playerDuckingFactor
	}

	if !s.button(InDuck) {
		if s.InDuck || s.hasFlag(FlagDucking) {
			p.unDuck()
		}
		return
	}

	if pressed&InDuck != 0 && !s.hasFlag(FlagDucking) {
		s.DuckTime = 1000
		s.InDuck = true
	}

	if !s.InDuck {
		return
	}

	if s.DuckTime/1000 <= 1-timeToDuck || s.OnGround == -1 {
		// finish the duck
		s.UseHull = HullDucked
		s.ViewOfs[2] = vecDuckView
		s.Flags |= FlagDucking
		s.InDuck = false

		if s.OnGround != -1 {
			s.Origin = vec.Sub(s.Origin, vec.Sub(s.PlayerMins[HullDucked], s.PlayerMins[HullStanding]))
			p.fixPlayerCrouchStuck(stuckMoveUp)
			p.catagorizePosition()
		}
		return
	}

	const more = duckHullMinZ - hullMinZ
	t := math32.Max(0, 1-s.DuckTime/1000)
	f := math.SplineFraction(t, 1/timeToDuck)
	s.ViewOfs[2] = (vecDuckView-more)*f + vecView*(1-f)
}

func (p *playerMove) unDuck() {
	s := p.s
	newOrigin := s.Origin
	if s.OnGround != -1 {
		newOrigin = vec.Add(newOrigin, vec.Sub(s.PlayerMins[HullDucked], s.PlayerMins[HullStanding]))
	}

	if tr := p.trace(newOrigin, newOrigin); tr.StartSolid {
		return
	}

	s.UseHull = HullStanding
	if tr := p.trace(newOrigin, newOrigin); tr.StartSolid {
		// standing up would end in solid, stay ducked
		s.UseHull = HullDucked
		return
	}

	s.Flags &^= FlagDucking
	s.InDuck = false
	s.ViewOfs[2] = vecView
	s.DuckTime = 0
	s.Origin = newOrigin

	p.catagorizePosition()
}
