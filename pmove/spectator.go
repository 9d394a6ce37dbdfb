// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/math/vec"
)

// spectatorMove flies a roaming spectator without collision or snaps
// a chasing one onto its target.
func (p *playerMove) spectatorMove() {
	s := p.s
	if s.IUser1 != ObsRoaming {
		if s.IUser2 <= 0 {
			return
		}
		for i := range s.PhysEnts {
			if t := &s.PhysEnts[i]; t.Info == s.IUser2 {
				s.Origin = t.Origin
				s.Angles = t.Angles
				s.Velocity = vec.Vec3{}
				return
			}
		}
		return
	}

	speed := s.Velocity.Length()
	if speed < 1 {
		s.Velocity = vec.Vec3{}
	} else {
		friction := s.MoveVars.Friction * 1.5
		control := math32.Min(speed, s.MoveVars.StopSpeed)
		drop := control * friction * s.FrameTime
		s.Velocity = s.Velocity.Scale(math32.Max(0, speed-drop) / speed)
	}

	p.normalizeAngleVectors()
	wish := newWishMove(p.wishVel(), s.MoveVars.SpectatorMaxSpeed)

	current := vec.Dot(s.Velocity, wish.dir)
	add := wish.speed - current
	if add <= 0 {
		return
	}
	accel := math32.Min(add, s.MoveVars.Accelerate*s.FrameTime*wish.speed)
	s.Velocity = vec.Add(s.Velocity, wish.dir.Scale(accel))
	s.Origin = vec.Add(s.Origin, s.Velocity.Scale(s.FrameTime))
}
