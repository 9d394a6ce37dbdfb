// SPDX-License-Identifier: GPL-2.0-or-later

// Package snapshot encodes the simulated part of a player state in a
// canonical binary form. Two states with the same encoding behave the
// same on the next tick.
package snapshot

import (
	"bytes"
	"math"

	"github.com/zeebo/xxh3"
	"google.golang.org/protobuf/encoding/protowire"

	"gopmove/math/vec"
	"gopmove/pmove"
)

type encoder struct {
	b []byte
}

func (e *encoder) int(num protowire.Number, v int) {
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeZigZag(int64(v)))
}

func (e *encoder) uint(num protowire.Number, v uint64) {
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, v)
}

func (e *encoder) bool(num protowire.Number, v bool) {
	e.b = protowire.AppendTag(e.b, num, protowire.VarintType)
	e.b = protowire.AppendVarint(e.b, protowire.EncodeBool(v))
}

// float keeps the bit pattern, so -0 and NaN payloads are preserved.
func (e *encoder) float(num protowire.Number, v float32) {
	e.b = protowire.AppendTag(e.b, num, protowire.Fixed32Type)
	e.b = protowire.AppendFixed32(e.b, math.Float32bits(v))
}

func (e *encoder) vec(num protowire.Number, v vec.Vec3) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendVarint(e.b, 3*4)
	for _, f := range v {
		e.b = protowire.AppendFixed32(e.b, math.Float32bits(f))
	}
}

func (e *encoder) string(num protowire.Number, v string) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendString(e.b, v)
}

func (e *encoder) message(num protowire.Number, m []byte) {
	e.b = protowire.AppendTag(e.b, num, protowire.BytesType)
	e.b = protowire.AppendBytes(e.b, m)
}

func encodeCmd(c *pmove.Cmd) []byte {
	var e encoder
	e.int(1, c.Msec)
	e.vec(2, c.ViewAngles)
	e.float(3, c.ForwardMove)
	e.float(4, c.SideMove)
	e.float(5, c.UpMove)
	e.uint(6, uint64(c.Buttons))
	return e.b
}

// Encode writes every simulated field of s. Colliders, touches, the
// move vars and the server flag are inputs and not part of it.
func Encode(s *pmove.State) []byte {
	var e encoder
	e.int(1, s.PlayerIndex)
	e.bool(3, s.Multiplayer)
	e.message(4, encodeCmd(&s.Cmd))
	e.float(5, s.FrameTime)

	e.vec(10, s.Origin)
	e.vec(11, s.Velocity)
	e.vec(12, s.BaseVelocity)
	e.vec(13, s.MoveDir)
	e.vec(14, s.Angles)
	e.vec(15, s.OldAngles)
	e.vec(16, s.ViewOfs)
	e.vec(17, s.PunchAngle)

	e.int(20, int(s.MoveType))
	e.uint(21, uint64(s.Flags))
	e.int(22, s.OnGround)
	e.int(23, s.UseHull)

	e.float(30, s.Friction)
	e.float(31, s.Gravity)
	e.float(32, s.FallVelocity)
	e.float(33, s.MaxSpeed)
	e.float(34, s.ClientMaxSpeed)

	e.int(40, s.WaterLevel)
	e.int(41, s.OldWaterLevel)
	e.int(42, s.WaterType)
	e.float(43, s.WaterJumpTime)

	e.float(50, s.DuckTime)
	e.bool(51, s.InDuck)
	e.int(52, s.TimeStepSound)
	e.float(53, s.SwimTime)
	e.uint(54, uint64(s.OldButtons))

	e.bool(60, s.Dead)
	e.int(61, s.DeadFlag)
	e.bool(62, s.Spectator)
	e.int(63, s.IUser1)
	e.int(64, s.IUser2)
	e.int(65, s.IUser3)

	e.string(70, s.TextureName)
	e.uint(71, uint64(s.TextureType))
	return e.b
}

// Digest hashes the encoding of s.
func Digest(s *pmove.State) uint64 {
	return xxh3.Hash(Encode(s))
}

// Equal reports whether a and b encode the same.
func Equal(a, b *pmove.State) bool {
	return bytes.Equal(Encode(a), Encode(b))
}
