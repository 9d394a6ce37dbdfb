// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"github.com/chewxy/math32"

	"gopmove/conlog"
	"gopmove/math/vec"
)

// playerMove is the working set of one tick.
type playerMove struct {
	ctx    *Context
	s      *State
	w      World
	ladder bool
}

func (p *playerMove) trace(start, end vec.Vec3) Trace {
	return p.w.PlayerTrace(p.s.PhysEnts, p.s.UseHull, start, end, TraceNormal, -1)
}

func (p *playerMove) testPosition(pos vec.Vec3) (int, Trace) {
	return p.w.TestPlayerPosition(p.s.PhysEnts, p.s.UseHull, pos)
}

func (p *playerMove) pointContents(pos vec.Vec3) (int, int) {
	return p.w.PointContents(p.s.PhysEnts, pos)
}

func (p *playerMove) playSound(ch Channel, sample string, vol float32) {
	p.w.PlaySound(ch, sample, vol, AttnNorm, SoundNone, PitchNorm)
}

// ClipVelocity slides in along the plane with the given normal. The
// result has no component below 0.1 in magnitude. blocked is 1 for a
// floor, 2 for a wall and 0 otherwise.
func ClipVelocity(in, normal vec.Vec3, overbounce float32) (int, vec.Vec3) {
	const stopEpsilon = 0.1

	backoff := vec.Dot(in, normal) * overbounce
	out := vec.Sub(in, normal.Scale(backoff))
	for i := range out {
		if out[i] > -stopEpsilon && out[i] < stopEpsilon {
			out[i] = 0
		}
	}

	blocked := 0
	switch {
	case normal[2] > 0:
		blocked = 1 // floor
	case normal[2] == 0:
		blocked = 2 // step
	}
	return blocked, out
}

type wishMove struct {
	vel   vec.Vec3
	dir   vec.Vec3
	speed float32
}

func newWishMove(vel vec.Vec3, maxSpeed float32) wishMove {
	dir, speed := vel.NormalizeLength()
	if speed > maxSpeed {
		vel = vel.Scale(maxSpeed / speed)
		speed = maxSpeed
	}
	return wishMove{vel: vel, dir: dir, speed: speed}
}

func (p *playerMove) wishVel() vec.Vec3 {
	s := p.s
	v := vec.Add(s.Forward.Scale(s.Cmd.ForwardMove), s.Right.Scale(s.Cmd.SideMove))
	v[2] += s.Cmd.UpMove
	return v
}

func (p *playerMove) normalizeAngleVectors() {
	p.s.Forward = p.s.Forward.Normalize()
	p.s.Right = p.s.Right.Normalize()
}

func (p *playerMove) normalizeAngleVectorsNoZ() {
	p.s.Forward[2] = 0
	p.s.Right[2] = 0
	p.normalizeAngleVectors()
}

func (p *playerMove) addToTouched(tr Trace, impact vec.Vec3) bool {
	s := p.s
	for i := range s.Touches {
		if s.Touches[i].Ent == tr.Ent {
			return false
		}
	}
	if len(s.Touches) >= MaxPhysEnts {
		panic("Too many entities were touched!")
	}
	tr.DeltaVelocity = impact
	s.Touches = append(s.Touches, tr)
	return true
}

func (p *playerMove) pushEntity(push vec.Vec3) Trace {
	s := p.s
	end := vec.Add(s.Origin, push)
	tr := p.trace(s.Origin, end)
	s.Origin = tr.EndPos
	if tr.Fraction < 1 && !tr.AllSolid {
		p.addToTouched(tr, s.Velocity)
	}
	return tr
}

func fixNaN(v *vec.Vec3, name string) {
	if !v.HasNaN() {
		return
	}
	conlog.DPrintf("PM  Got a NaN %s %v\n", name, *v)
	for i := range v {
		if math32.IsNaN(v[i]) {
			v[i] = 0
		}
	}
}

func (p *playerMove) checkVelocity() {
	s := p.s
	fixNaN(&s.Velocity, "velocity")
	fixNaN(&s.Origin, "origin")

	max := s.MoveVars.MaxVelocity
	for i := range s.Velocity {
		if s.Velocity[i] > max || s.Velocity[i] < -max {
			conlog.DPrintf("PM  Got a velocity too high/low %v\n", s.Velocity)
			s.Velocity = s.Velocity.Clamp(-max, max)
			break
		}
	}
}

func (p *playerMove) entGravity() float32 {
	if p.s.Gravity != 0 {
		return p.s.Gravity
	}
	return 1
}

func (p *playerMove) addGravity() {
	s := p.s
	s.Velocity[2] -= p.entGravity() * s.MoveVars.Gravity * s.FrameTime
	s.Velocity[2] += s.BaseVelocity[2] * s.FrameTime
	s.BaseVelocity[2] = 0
	p.checkVelocity()
}

// addCorrectGravity applies the first half of this frame's gravity.
func (p *playerMove) addCorrectGravity() {
	s := p.s
	if s.WaterJumpTime != 0 {
		return
	}
	s.Velocity[2] -= p.entGravity() * s.MoveVars.Gravity * s.FrameTime * 0.5
	s.Velocity[2] += s.BaseVelocity[2] * s.FrameTime
	s.BaseVelocity[2] = 0
	p.checkVelocity()
}

// fixupGravityVelocity applies the second half.
func (p *playerMove) fixupGravityVelocity() {
	s := p.s
	if s.WaterJumpTime != 0 {
		return
	}
	s.Velocity[2] -= p.entGravity() * s.MoveVars.Gravity * s.FrameTime * 0.5
	p.checkVelocity()
}

func (p *playerMove) friction() {
	s := p.s
	if s.WaterJumpTime != 0 {
		return
	}
	speed := s.Velocity.Length()
	if speed < 0.1 {
		return
	}

	var drop float32
	if s.OnGround != -1 {
		start := vec.Add(s.Origin, s.Velocity.Scale(1/speed).Scale(16))
		stop := start
		start[2] = s.Origin[2] + s.PlayerMins[s.UseHull][2]
		stop[2] = start[2] - 34

		tr := p.trace(start, stop)
		friction := s.MoveVars.Friction
		if tr.Fraction == 1 {
			friction *= s.MoveVars.EdgeFriction
		}
		friction *= s.Friction

		control := math32.Max(speed, s.MoveVars.StopSpeed)
		drop += control * friction * s.FrameTime
	}

	s.Velocity = s.Velocity.Scale(math32.Max(speed-drop, 0) / speed)
}

func (p *playerMove) accelerate(wishdir vec.Vec3, wishspeed, accel float32) {
	s := p.s
	if s.Dead || s.WaterJumpTime != 0 {
		return
	}
	current := vec.Dot(s.Velocity, wishdir)
	add := wishspeed - current
	if add <= 0 {
		return
	}
	accelSpeed := accel * s.FrameTime * wishspeed * s.Friction
	s.Velocity = vec.Add(s.Velocity, wishdir.Scale(math32.Min(accelSpeed, add)))
}

func (p *playerMove) airAccelerate(wishdir vec.Vec3, wishspeed, accel float32) {
	s := p.s
	if s.Dead || s.WaterJumpTime != 0 {
		return
	}
	wishspd := math32.Min(wishspeed, 30)
	current := vec.Dot(s.Velocity, wishdir)
	add := wishspd - current
	if add <= 0 {
		return
	}
	accelSpeed := accel * wishspeed * s.FrameTime * s.Friction
	s.Velocity = vec.Add(s.Velocity, wishdir.Scale(math32.Min(add, accelSpeed)))
}
