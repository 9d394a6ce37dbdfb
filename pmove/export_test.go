// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/math/vec"
)

type Mover = playerMove

func NewMover(c *Context, s *State, w World) *Mover {
	return &playerMove{ctx: c, s: s, w: w}
}

func (p *Mover) FlyMove() int               { return p.flyMove() }
func (p *Mover) Jump()                      { p.jump() }
func (p *Mover) CheckWater() bool           { return p.checkWater() }
func (p *Mover) CatagorizePosition()        { p.catagorizePosition() }
func (p *Mover) AddToTouched(tr Trace) bool { return p.addToTouched(tr, vec.Vec3{}) }
func (p *Mover) CheckVelocity()             { p.checkVelocity() }

func (p *Mover) PlayStepSound(step StepType, vol float32) {
	p.playStepSound(step, vol)
}

func (c *Context) NextStuckOffset(index int, server bool) (int, vec.Vec3) {
	return c.nextStuckOffset(index, server)
}

func (c *Context) ResetStuckOffsets(index int, server bool) {
	c.resetStuckOffsets(index, server)
}
