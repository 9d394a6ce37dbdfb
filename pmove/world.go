// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/math/vec"
)

type Channel int

const (
	ChanAuto Channel = iota
	ChanWeapon
	ChanVoice
	ChanItem
	ChanBody
	ChanStream
	ChanStatic
)

const (
	AttnNone   = 0
	AttnNorm   = 0.8
	AttnIdle   = 2
	AttnStatic = 1.25

	PitchNorm = 100
)

type SoundFlags int

const (
	SoundNone        SoundFlags = 0
	SoundStop        SoundFlags = 1 << 5
	SoundChangeVol   SoundFlags = 1 << 6
	SoundChangePitch SoundFlags = 1 << 7
)

type TraceFlags int

const (
	TraceNormal       TraceFlags = 0
	TraceStudioIgnore TraceFlags = 1
	TraceStudioBox    TraceFlags = 2
	TraceGlassIgnore  TraceFlags = 4
	TraceWorldOnly    TraceFlags = 8
)

type ModelType int

const (
	ModelBrush ModelType = iota
	ModelSprite
	ModelAlias
	ModelStudio
)

// World answers the collision, contents and sound queries of a tick.
// It does not own the player state.
type World interface {
	// PlayerTrace sweeps the given player hull from start to end
	// against ents, skipping the physent at index ignore.
	PlayerTrace(ents []PhysEnt, hull int, start, end vec.Vec3, flags TraceFlags, ignore int) Trace
	// TestPlayerPosition returns the index of the first physent the
	// hull intersects at pos, or -1.
	TestPlayerPosition(ents []PhysEnt, hull int, pos vec.Vec3) (int, Trace)
	// PointContents returns the contents at p with currents folded to
	// water, and the true contents.
	PointContents(ents []PhysEnt, p vec.Vec3) (int, int)
	HullPointContents(pe *PhysEnt, hull int, p vec.Vec3) int
	TraceModel(pe *PhysEnt, start, end vec.Vec3) Trace
	ModelType(pe *PhysEnt) ModelType
	ModelBounds(pe *PhysEnt) (vec.Vec3, vec.Vec3)
	// TraceTexture returns the texture hit on ents[ground], if any.
	TraceTexture(ents []PhysEnt, ground int, start, end vec.Vec3) (string, bool)
	StuckTouch(hitent int, tr Trace)
	PlaySound(ch Channel, sample string, volume, attenuation float32, flags SoundFlags, pitch int)
	// RandomInt returns a value in [lo, hi].
	RandomInt(lo, hi int) int
	SystemTime() float64
}
