// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"gopmove/bsp"
	"gopmove/conlog"
	"gopmove/math/vec"
)

// stepSamples are ordered so that a random 0/1 plus two for the left
// foot picks the right sample.
var stepSamples = map[StepType][]string{
	StepConcrete: {"player/pl_step1.wav", "player/pl_step3.wav", "player/pl_step2.wav", "player/pl_step4.wav"},
	StepMetal:    {"player/pl_metal1.wav", "player/pl_metal3.wav", "player/pl_metal2.wav", "player/pl_metal4.wav"},
	StepDirt:     {"player/pl_dirt1.wav", "player/pl_dirt3.wav", "player/pl_dirt2.wav", "player/pl_dirt4.wav"},
	StepVent:     {"player/pl_duct1.wav", "player/pl_duct3.wav", "player/pl_duct2.wav", "player/pl_duct4.wav"},
	StepGrate:    {"player/pl_grate1.wav", "player/pl_grate3.wav", "player/pl_grate2.wav", "player/pl_grate4.wav"},
	StepTile:     {"player/pl_tile1.wav", "player/pl_tile3.wav", "player/pl_tile2.wav", "player/pl_tile4.wav", "player/pl_tile5.wav"},
	StepSlosh:    {"player/pl_slosh1.wav", "player/pl_slosh3.wav", "player/pl_slosh2.wav", "player/pl_slosh4.wav"},
	StepWade:     {"player/pl_wade1.wav", "player/pl_wade3.wav", "player/pl_wade2.wav", "player/pl_wade4.wav"},
	StepLadder:   {"player/pl_ladder1.wav", "player/pl_ladder3.wav", "player/pl_ladder2.wav", "player/pl_ladder4.wav"},
}

const (
	fallPainSample = "player/pl_fallpain3.wav"
	jumpSampleTFC  = "player/plyrjmp8.wav"
)

// SoundSamples lists every sample a tick may play, for precaching.
func SoundSamples() []string {
	seen := make(map[string]bool)
	var r []string
	add := func(s string) {
		if !seen[s] {
			seen[s] = true
			r = append(r, s)
		}
	}
	for st := StepConcrete; st <= StepLadder; st++ {
		for _, s := range stepSamples[st] {
			add(s)
		}
	}
	for _, s := range wadeSamples {
		add(s)
	}
	add(fallPainSample)
	add(jumpSampleTFC)
	return r
}

func (p *playerMove) catagorizeTextureType() {
	s := p.s
	start := s.Origin
	end := vec.Sub(s.Origin, vec.Vec3{0, 0, 64})

	name, ok := p.w.TraceTexture(s.PhysEnts, s.OnGround, start, end)
	if !ok {
		s.TextureName = ""
		s.TextureType = CharTexConcrete
		return
	}
	s.TextureName = StripTexturePrefix(name)
	s.TextureType = p.ctx.textures.Find(s.TextureName)
}

func (p *playerMove) playStepSound(step StepType, vol float32) {
	s := p.s
	slot := p.ctx.slot(s.PlayerIndex, s.Server)
	slot.stepLeft = !slot.stepLeft

	if !s.RunFuncs {
		return
	}
	if s.Multiplayer {
		if !s.MoveVars.Footsteps {
			return
		}
		// quiet on ladders unless climbing fast
		if p.ladder && s.Velocity.WithZ(0).Length() <= 220 {
			return
		}
	}

	samples, ok := stepSamples[step]
	if !ok {
		conlog.Warnf("unimplemented play sound step(%d)", step)
		return
	}

	left := 0
	if slot.stepLeft {
		left = 1
	}
	irand := p.w.RandomInt(0, 1) + left*2

	switch step {
	case StepTile:
		if p.w.RandomInt(0, 4) != 0 {
			irand = 4
		}
	case StepWade:
		// the cadence counter is shared by all players
		n := p.ctx.skipStep
		p.ctx.skipStep++
		if n == 0 {
			return
		}
		if n == 3 {
			p.ctx.skipStep = 0
		}
	}
	p.playSound(ChanBody, samples[irand], vol)
}

func (p *playerMove) playWaterSounds() {
	s := p.s
	if (s.OldWaterLevel == 0 && s.WaterLevel != 0) ||
		(s.OldWaterLevel != 0 && s.WaterLevel == 0) {
		p.playSound(ChanBody, wadeSamples[p.w.RandomInt(0, 3)], 1)
	}
}

func (p *playerMove) updateStepSound() {
	s := p.s
	if s.TimeStepSound > 0 || s.hasFlag(FlagFrozen) {
		return
	}

	p.catagorizeTextureType()

	speed := s.Velocity.Length()
	onLadder := s.MoveType == MoveTypeFly && !s.hasFlag(FlagImmuneLava)

	velwalk, velrun, duckDelay := float32(120), float32(210), 0
	if s.hasFlag(FlagDucking) || onLadder {
		velwalk, velrun, duckDelay = 60, 80, 100
	}

	if !(onLadder || s.OnGround != -1) || speed <= 0 ||
		!(speed >= velwalk || s.TimeStepSound != 0) {
		return
	}

	walking := speed < velrun
	pick := func(walk, run float32) float32 {
		if walking {
			return walk
		}
		return run
	}
	interval := func() int {
		if walking {
			return 400
		}
		return 300
	}

	height := s.PlayerMaxs[s.UseHull][2] - s.PlayerMins[s.UseHull][2]
	knee := vec.Sub(s.Origin, vec.Vec3{0, 0, 0.3 * height})
	feet := vec.Sub(s.Origin, vec.Vec3{0, 0, 0.5 * height})

	var (
		step StepType
		vol  float32
		t    int
	)
	inWater := func(pos vec.Vec3) bool {
		c, _ := p.pointContents(pos)
		return c == bsp.CONTENTS_WATER
	}
	switch {
	case onLadder:
		step, vol, t = StepLadder, 0.35, 350
	case inWater(knee):
		step, vol, t = StepWade, 0.65, 600
	case inWater(feet):
		step, vol, t = StepSlosh, pick(0.2, 0.5), interval()
	default:
		step, t = stepTypeForTexture(s.TextureType), interval()
		switch s.TextureType {
		case CharTexDirt:
			vol = pick(0.25, 0.55)
		case CharTexVent:
			vol = pick(0.4, 0.7)
		default:
			vol = pick(0.2, 0.5)
		}
	}
	s.TimeStepSound = t + duckDelay

	if s.hasFlag(FlagDucking) {
		vol *= 0.35
	}

	p.playStepSound(step, vol)
}

// checkFalling plays the landing sounds and kicks the view on hard
// landings.
func (p *playerMove) checkFalling() {
	s := p.s
	if s.OnGround != -1 && !s.Dead && s.FallVelocity >= playerFallPunch {
		vol := float32(0.5)

		switch {
		case s.WaterLevel > 0:
			// water breaks the fall
		case s.FallVelocity > playerMaxSafeFall:
			p.playSound(ChanVoice, fallPainSample, 1)
			vol = 1
		case s.FallVelocity > playerMaxSafeFall/2:
			if infoFlag(s.PhysInfo, "tfc") {
				p.playSound(ChanVoice, fallPainSample, 1)
			}
			vol = 0.85
		case s.FallVelocity < playerMinBounceSpeed:
			vol = 0
		}

		if vol > 0 {
			s.TimeStepSound = 0

			p.updateStepSound()
			p.playStepSound(stepTypeForTexture(s.TextureType), vol)

			s.PunchAngle[2] = s.FallVelocity * 0.013
			if s.PunchAngle[0] > 8 {
				s.PunchAngle[0] = 8
			}
		}
	}

	if s.OnGround != -1 {
		s.FallVelocity = 0
	}
}
