// SPDX-License-Identifier: GPL-2.0-or-later

package pmove_test

import (
	"strings"
	"testing"
	"time"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopmove/bsp"
	"gopmove/math/vec"
	"gopmove/pmove"
	"gopmove/qtime"
	"gopmove/world"
)

func testVars() pmove.MoveVars {
	return pmove.MoveVars{
		Gravity:           800,
		StopSpeed:         100,
		MaxSpeed:          320,
		SpectatorMaxSpeed: 500,
		Accelerate:        10,
		AirAccelerate:     10,
		WaterAccelerate:   10,
		Friction:          4,
		EdgeFriction:      2,
		WaterFriction:     1,
		EntGravity:        1,
		Bounce:            1,
		StepSize:          18,
		MaxVelocity:       2000,
		Footsteps:         true,
	}
}

type fixture struct {
	w     *world.World
	clock *qtime.Manual
	ctx   *pmove.Context
	s     *pmove.State
}

// newFixture puts a player on a large floor with extra brushes.
func newFixture(t *testing.T, origin vec.Vec3, brushes ...world.Brush) *fixture {
	t.Helper()
	clock := &qtime.Manual{}
	w := world.New(1, clock)
	m := w.AddModel(&world.Model{
		Name: "worldspawn",
		Brushes: append([]world.Brush{
			{Mins: vec.Vec3{-1024, -1024, -16}, Maxs: vec.Vec3{1024, 1024, 0}, Contents: bsp.CONTENTS_SOLID, Texture: "C1A0_FLOOR"},
		}, brushes...),
	})
	s := pmove.NewState(0, origin, testVars())
	s.PhysEnts = []pmove.PhysEnt{w.Ent(m)}
	return &fixture{w: w, clock: clock, ctx: pmove.NewContext(nil), s: s}
}

func (f *fixture) tick(cmd pmove.Cmd) {
	f.s.SetCommand(cmd)
	f.ctx.PlayerMove(f.s, f.w, true)
}

func (f *fixture) mover() *pmove.Mover {
	return pmove.NewMover(f.ctx, f.s, f.w)
}

func samples(w *world.World) []string {
	var r []string
	for _, e := range w.Sounds().Events() {
		r = append(r, e.Sample)
	}
	return r
}

func TestClipVelocity(t *testing.T) {
	blocked, out := pmove.ClipVelocity(vec.Vec3{100, 0, -100}, vec.Vec3{0, 0, 1}, 1)
	assert.Equal(t, 1, blocked)
	assert.Equal(t, vec.Vec3{100, 0, 0}, out)

	blocked, out = pmove.ClipVelocity(vec.Vec3{100, 50, 0}, vec.Vec3{-1, 0, 0}, 1)
	assert.Equal(t, 2, blocked)
	assert.Equal(t, vec.Vec3{0, 50, 0}, out)

	n := vec.Vec3{1, 1, 0}.Normalize()
	_, out = pmove.ClipVelocity(vec.Vec3{-300, 20, 5}, n, 1)
	assert.InDelta(t, 0, vec.Dot(out, n), 0.2)

	_, out = pmove.ClipVelocity(vec.Vec3{0.05, -0.05, 10}, vec.Vec3{0, 0, -1}, 1)
	assert.Equal(t, vec.Vec3{}, out)
}

func TestStuckTable(t *testing.T) {
	table := pmove.NewStuckTable()
	assert.Equal(t, vec.Vec3{0, 0, -0.125}, table[0])
	assert.Equal(t, vec.Vec3{}, table[pmove.StuckTableSize-1])

	ctx := pmove.NewContext(nil)
	for i := 0; i < pmove.StuckTableSize; i++ {
		idx, off := ctx.NextStuckOffset(3, true)
		require.Equal(t, i, idx)
		require.Equal(t, table[i], off)
	}
	idx, _ := ctx.NextStuckOffset(3, true)
	assert.Equal(t, 0, idx)

	// sides and slots keep their own cursor
	idx, _ = ctx.NextStuckOffset(3, false)
	assert.Equal(t, 0, idx)
	idx, _ = ctx.NextStuckOffset(4, true)
	assert.Equal(t, 0, idx)

	ctx.ResetStuckOffsets(3, true)
	idx, _ = ctx.NextStuckOffset(3, true)
	assert.Equal(t, 0, idx)

	assert.Panics(t, func() { ctx.NextStuckOffset(pmove.MaxClients, true) })
}

func TestStripTexturePrefix(t *testing.T) {
	for in, want := range map[string]string{
		"-0~WOOD_CRATE":       "WOOD_CRATE",
		"+0LAB1_W":            "LAB1_W",
		"{GRATE":              "GRATE",
		"!WATER":              "WATER",
		"C1A0_FLOOR":          "C1A0_FLOOR",
		"VERYLONGTEXTURENAME": "VERYLONGTEXT",
		"":                    "",
	} {
		assert.Equal(t, want, pmove.StripTexturePrefix(in), in)
	}
}

func TestLoadTextureTypes(t *testing.T) {
	in := strings.Join([]string{
		"// materials",
		"M metal1",
		"  d dirt_floor",
		"X",
		"T tile  extra",
		"",
		"V thisnameistoolong",
		"C crete\r",
	}, "\n")
	table, err := pmove.LoadTextureTypes(strings.NewReader(in))
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, pmove.CharTexMetal, table.Find("METAL1"))
	assert.Equal(t, pmove.CharTexDirt, table.Find("dirt_floor"))
	assert.Equal(t, pmove.CharTexConcrete, table.Find("crete"))
	assert.Equal(t, pmove.CharTexConcrete, table.Find("unknown"))

	var empty *pmove.TextureTable
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, pmove.CharTexConcrete, empty.Find("metal1"))
}

func TestInfoValueForKey(t *testing.T) {
	info := `\slj\1\tfc\0\name\bob`
	assert.Equal(t, "1", pmove.InfoValueForKey(info, "slj"))
	assert.Equal(t, "0", pmove.InfoValueForKey(info, "tfc"))
	assert.Equal(t, "bob", pmove.InfoValueForKey(info, "name"))
	assert.Equal(t, "", pmove.InfoValueForKey(info, "missing"))
	assert.Equal(t, "", pmove.InfoValueForKey("", "slj"))
}

func TestHullBounds(t *testing.T) {
	mins, maxs, ok := pmove.HullBounds(pmove.HullDucked)
	require.True(t, ok)
	assert.Equal(t, vec.Vec3{-16, -16, -18}, mins)
	assert.Equal(t, vec.Vec3{16, 16, 18}, maxs)
	_, _, ok = pmove.HullBounds(3)
	assert.False(t, ok)
}

func TestSoundSamples(t *testing.T) {
	all := pmove.SoundSamples()
	seen := make(map[string]bool)
	for _, s := range all {
		require.False(t, seen[s], s)
		seen[s] = true
	}
	assert.True(t, seen["player/pl_step1.wav"])
	assert.True(t, seen["player/pl_tile5.wav"])
	assert.True(t, seen["player/pl_wade4.wav"])
	assert.True(t, seen["player/pl_fallpain3.wav"])
}

func TestCatagorizeOnFloor(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.mover().CatagorizePosition()
	assert.Equal(t, 0, f.s.OnGround)
	assert.Equal(t, 0, f.s.WaterLevel)

	f.tick(pmove.Cmd{Msec: 10})
	assert.Equal(t, 0, f.s.OnGround)
	assert.NotZero(t, f.s.Flags&pmove.FlagOnGround)
	assert.InDelta(t, 36, f.s.Origin[2], 0.001)
	assert.Equal(t, vec.Vec3{}, f.s.Velocity)
	assert.Equal(t, "C1A0_FLOOR", f.s.TextureName)
}

func TestFlyMoveWall(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 100},
		world.Brush{Mins: vec.Vec3{64, -512, 0}, Maxs: vec.Vec3{128, 512, 256}, Contents: bsp.CONTENTS_SOLID})
	f.s.Velocity = vec.Vec3{1000, 0, 0}
	f.s.FrameTime = 0.1

	blocked := f.mover().FlyMove()
	assert.Equal(t, 2, blocked)
	assert.Equal(t, vec.Vec3{}, f.s.Velocity)
	assert.GreaterOrEqual(t, f.s.Origin[0], float32(47.9))
	assert.Less(t, f.s.Origin[0], float32(48))
	require.Len(t, f.s.Touches, 1)
	assert.Equal(t, 0, f.s.Touches[0].Ent)
}

func TestFrictionStops(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.Velocity = vec.Vec3{200, 0, 0}
	for i := 0; i < 100; i++ {
		f.tick(pmove.Cmd{Msec: 10})
	}
	assert.Equal(t, vec.Vec3{}, f.s.Velocity)
	assert.Greater(t, f.s.Origin[0], float32(0))
	assert.InDelta(t, 36, f.s.Origin[2], 0.001)
}

func TestWalkAccelerates(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	for i := 0; i < 200; i++ {
		f.tick(pmove.Cmd{Msec: 10, ForwardMove: 400})
	}
	assert.InDelta(t, 320, f.s.Velocity[0], 1)
	assert.InDelta(t, 0, f.s.Velocity[1], 0.001)
	assert.Greater(t, f.s.Origin[0], float32(100))
}

func TestJump(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.MoveVars.Gravity = 0
	f.s.FrameTime = 0.01
	f.s.OnGround = 0
	f.s.Cmd.Buttons = pmove.InJump

	m := f.mover()
	m.Jump()
	assert.Equal(t, math32.Sqrt(2*800*45), f.s.Velocity[2])
	assert.Equal(t, -1, f.s.OnGround)
	assert.NotZero(t, f.s.OldButtons&pmove.InJump)
	require.Len(t, samples(f.w), 1)
	assert.True(t, strings.HasPrefix(samples(f.w)[0], "player/pl_step"))

	// holding jump in the air does nothing
	f.s.Velocity[2] = 0
	m.Jump()
	assert.Equal(t, float32(0), f.s.Velocity[2])
}

func TestJumpTick(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InJump})
	assert.Equal(t, -1, f.s.OnGround)
	assert.InDelta(t, math32.Sqrt(2*800*45)-8, f.s.Velocity[2], 0.01)
	assert.Greater(t, f.s.Origin[2], float32(36))

	// no second jump until released
	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InJump})
	assert.Less(t, f.s.Velocity[2], math32.Sqrt(2*800*45)-8)
}

func waterFixture(t *testing.T, origin vec.Vec3, contents int) *fixture {
	t.Helper()
	return newFixture(t, origin, world.Brush{
		Mins:     vec.Vec3{-512, -512, 0},
		Maxs:     vec.Vec3{512, 512, 128},
		Contents: contents,
	})
}

func TestWaterLevels(t *testing.T) {
	for _, tc := range []struct {
		z     float32
		level int
	}{
		{200, 0},
		{150, 1},
		{110, 2},
		{60, 3},
	} {
		f := waterFixture(t, vec.Vec3{0, 0, tc.z}, bsp.CONTENTS_WATER)
		deep := f.mover().CheckWater()
		assert.Equal(t, tc.level, f.s.WaterLevel, "z %v", tc.z)
		assert.Equal(t, tc.level > 1, deep)
		if tc.level > 0 {
			assert.Equal(t, bsp.CONTENTS_WATER, f.s.WaterType)
		}
	}
}

func TestCurrentPushes(t *testing.T) {
	f := waterFixture(t, vec.Vec3{0, 0, 60}, bsp.CONTENTS_CURRENT_0)
	f.mover().CheckWater()
	assert.Equal(t, 3, f.s.WaterLevel)
	assert.Equal(t, bsp.CONTENTS_WATER, f.s.WaterType)
	assert.Equal(t, vec.Vec3{150, 0, 0}, f.s.BaseVelocity)
}

func TestWaterJump(t *testing.T) {
	for _, tc := range []struct {
		contents int
		vz       float32
	}{
		{bsp.CONTENTS_WATER, 100},
		{bsp.CONTENTS_SLIME, 80},
		{bsp.CONTENTS_LAVA, 50},
	} {
		f := waterFixture(t, vec.Vec3{0, 0, 60}, tc.contents)
		m := f.mover()
		m.CheckWater()
		require.Equal(t, 3, f.s.WaterLevel)
		m.Jump()
		assert.Equal(t, tc.vz, f.s.Velocity[2])
		assert.Equal(t, -1, f.s.OnGround)
		assert.Equal(t, float32(1000), f.s.SwimTime)
		require.Len(t, samples(f.w), 1)
		assert.True(t, strings.HasPrefix(samples(f.w)[0], "player/pl_wade"))
	}
}

func TestDuckRoundTrip(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	for i := 1; i <= 40; i++ {
		f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InDuck})
		require.Zero(t, f.s.Flags&pmove.FlagDucking, "tick %d", i)
	}
	assert.True(t, f.s.InDuck)
	assert.Less(t, f.s.ViewOfs[2], float32(28))

	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InDuck})
	assert.NotZero(t, f.s.Flags&pmove.FlagDucking)
	assert.Equal(t, pmove.HullDucked, f.s.UseHull)
	assert.InDelta(t, 18, f.s.Origin[2], 0.001)
	assert.Equal(t, float32(12), f.s.ViewOfs[2])
	assert.Equal(t, 0, f.s.OnGround)

	f.tick(pmove.Cmd{Msec: 10})
	assert.Zero(t, f.s.Flags&pmove.FlagDucking)
	assert.Equal(t, pmove.HullStanding, f.s.UseHull)
	assert.InDelta(t, 36, f.s.Origin[2], 0.001)
	assert.Equal(t, float32(28), f.s.ViewOfs[2])
}

func TestStayDuckedUnderCeiling(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36},
		world.Brush{Mins: vec.Vec3{-512, -512, 40}, Maxs: vec.Vec3{512, 512, 64}, Contents: bsp.CONTENTS_SOLID})
	// the ceiling only leaves room for the ducked hull
	f.s.Origin[2] = 18
	f.s.UseHull = pmove.HullDucked
	f.s.Flags |= pmove.FlagDucking
	f.s.OldButtons = pmove.InDuck

	f.tick(pmove.Cmd{Msec: 10})
	assert.NotZero(t, f.s.Flags&pmove.FlagDucking)
	assert.Equal(t, pmove.HullDucked, f.s.UseHull)
	assert.InDelta(t, 18, f.s.Origin[2], 0.001)
}

func TestDeterministic(t *testing.T) {
	run := func() *pmove.State {
		f := newFixture(t, vec.Vec3{0, 0, 36},
			world.Brush{Mins: vec.Vec3{200, -512, 0}, Maxs: vec.Vec3{256, 512, 256}, Contents: bsp.CONTENTS_SOLID})
		for i := 0; i < 60; i++ {
			cmd := pmove.Cmd{Msec: 16, ForwardMove: 400, SideMove: 100, ViewAngles: vec.Vec3{0, float32(i), 0}}
			if i%20 == 5 {
				cmd.Buttons |= pmove.InJump
			}
			f.tick(cmd)
		}
		return f.s
	}
	a, b := run(), run()
	assert.Equal(t, a, b)
}

func TestTouchOverflowPanics(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	m := f.mover()
	for i := 0; i < pmove.MaxPhysEnts; i++ {
		require.True(t, m.AddToTouched(pmove.Trace{Ent: i}))
	}
	assert.False(t, m.AddToTouched(pmove.Trace{Ent: 5}))
	assert.Panics(t, func() { m.AddToTouched(pmove.Trace{Ent: pmove.MaxPhysEnts}) })
}

func TestBadSlotPanics(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.PlayerIndex = pmove.MaxClients
	assert.Panics(t, func() { f.tick(pmove.Cmd{Msec: 10}) })
}

func TestStuckRecovery(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 35.9})
	f.tick(pmove.Cmd{Msec: 10})
	assert.GreaterOrEqual(t, f.s.Origin[2], float32(36))
	assert.Less(t, f.s.Origin[2], float32(36.2))
	assert.Equal(t, 0, f.s.OnGround)
}

func TestNoClip(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.MoveType = pmove.MoveTypeNoClip
	f.tick(pmove.Cmd{Msec: 100, ForwardMove: 100})
	assert.InDelta(t, 10, f.s.Origin[0], 0.001)
	assert.Equal(t, vec.Vec3{}, f.s.Velocity)
}

func TestSpectatorRoaming(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 100})
	f.s.Spectator = true
	f.s.IUser1 = pmove.ObsRoaming
	f.tick(pmove.Cmd{Msec: 10, ForwardMove: 400})
	assert.Greater(t, f.s.Velocity[0], float32(0))
	assert.Greater(t, f.s.Origin[0], float32(0))
	assert.InDelta(t, 100, f.s.Origin[2], 0.001)
}

func TestLadderClimb(t *testing.T) {
	f := newFixture(t, vec.Vec3{20, 0, 100})
	lm := f.w.AddModel(&world.Model{
		Name:    "func_ladder",
		Brushes: []world.Brush{{Mins: vec.Vec3{32, -16, 0}, Maxs: vec.Vec3{40, 16, 256}, Contents: bsp.CONTENTS_LADDER}},
	})
	f.s.MoveEnts = []pmove.PhysEnt{f.w.Ladder(lm)}

	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InForward})
	assert.Equal(t, pmove.MoveTypeFly, f.s.MoveType)
	assert.InDelta(t, 0, f.s.Velocity[0], 0.001)
	assert.InDelta(t, 200, f.s.Velocity[2], 0.001)
	assert.InDelta(t, 102, f.s.Origin[2], 0.001)

	// jumping pushes away from the ladder
	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InJump})
	assert.Equal(t, pmove.MoveTypeWalk, f.s.MoveType)
	assert.Less(t, f.s.Velocity[0], float32(0))
}

func TestHardLanding(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 50})
	f.s.Velocity = vec.Vec3{0, 0, -600}
	f.tick(pmove.Cmd{Msec: 50})

	assert.Equal(t, 0, f.s.OnGround)
	assert.InDelta(t, 7.8, f.s.PunchAngle[2], 0.01)
	assert.Equal(t, float32(0), f.s.FallVelocity)
	assert.Contains(t, samples(f.w), "player/pl_fallpain3.wav")
}

func TestMoveTypeString(t *testing.T) {
	assert.Equal(t, "walk", pmove.MoveTypeWalk.String())
	assert.Equal(t, "unknown", pmove.MoveType(42).String())
}

func TestTossBounce(t *testing.T) {
	for _, tc := range []struct {
		mt     pmove.MoveType
		vz     float32
		ground int
	}{
		{pmove.MoveTypeToss, 0, 0},
		{pmove.MoveTypeBounce, 258, -1},
		{pmove.MoveTypeBounceMissile, 500, -1},
	} {
		f := newFixture(t, vec.Vec3{0, 0, 41})
		f.s.Dead = true
		f.s.MoveType = tc.mt
		f.s.Friction = 0.5
		f.s.Velocity = vec.Vec3{0, 0, -500}
		f.tick(pmove.Cmd{Msec: 20})

		assert.Equal(t, tc.mt, f.s.MoveType, "%v", tc.mt)
		assert.InDelta(t, tc.vz, f.s.Velocity[2], 0.01, "%v", tc.mt)
		assert.Equal(t, tc.ground, f.s.OnGround, "%v", tc.mt)
		assert.GreaterOrEqual(t, f.s.Origin[2], float32(36), "%v", tc.mt)
	}
}

func TestWalkStepsUp(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36},
		world.Brush{Mins: vec.Vec3{20, -512, 0}, Maxs: vec.Vec3{512, 512, 8}, Contents: bsp.CONTENTS_SOLID})
	f.s.Velocity = vec.Vec3{320, 0, 0}
	for i := 0; i < 10; i++ {
		f.tick(pmove.Cmd{Msec: 10, ForwardMove: 400})
	}
	assert.Equal(t, 0, f.s.OnGround)
	assert.InDelta(t, 44, f.s.Origin[2], 0.05)
	assert.Greater(t, f.s.Origin[0], float32(20))
	assert.InDelta(t, 320, f.s.Velocity[0], 1)
	assert.Equal(t, float32(0), f.s.Velocity[2])
}

func TestCheckVelocity(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.Velocity = vec.Vec3{math32.NaN(), 5000, -3000}
	f.s.Origin = vec.Vec3{1, math32.NaN(), 3}
	f.mover().CheckVelocity()
	assert.Equal(t, vec.Vec3{0, 2000, -2000}, f.s.Velocity)
	assert.Equal(t, vec.Vec3{1, 0, 3}, f.s.Origin)
}

func TestWaterJumpOutOfPool(t *testing.T) {
	f := newFixture(t, vec.Vec3{30, 0, 44},
		world.Brush{Mins: vec.Vec3{-512, -512, 0}, Maxs: vec.Vec3{48, 512, 64}, Contents: bsp.CONTENTS_WATER},
		world.Brush{Mins: vec.Vec3{48, -512, 0}, Maxs: vec.Vec3{512, 512, 60}, Contents: bsp.CONTENTS_SOLID})

	f.tick(pmove.Cmd{Msec: 10})
	require.NotZero(t, f.s.Flags&pmove.FlagWaterJump)
	assert.Equal(t, float32(2000), f.s.WaterJumpTime)
	assert.Equal(t, vec.Vec3{50, 0, 0}, f.s.MoveDir)
	assert.Greater(t, f.s.Velocity[2], float32(180))
	assert.Equal(t, 2, f.s.WaterLevel)

	cleared := false
	for i := 0; i < 100 && !cleared; i++ {
		dry := f.s.WaterLevel == 0
		f.tick(pmove.Cmd{Msec: 10})
		if f.s.Flags&pmove.FlagWaterJump == 0 {
			cleared = true
			assert.True(t, dry, "cleared while still in the water")
			assert.Equal(t, float32(0), f.s.WaterJumpTime)
		} else {
			assert.Positive(t, f.s.WaterJumpTime)
		}
	}
	require.True(t, cleared)
	assert.Greater(t, f.s.Origin[2], float32(96))
}

func TestLongJump(t *testing.T) {
	for _, tc := range []struct {
		physinfo string
		vx, vz   float32
	}{
		{``, 200, math32.Sqrt(2 * 800 * 45)},
		{`\slj\1`, 560, math32.Sqrt(2 * 800 * 56)},
	} {
		f := newFixture(t, vec.Vec3{0, 0, 36})
		f.s.PhysInfo = tc.physinfo
		f.s.MoveVars.Gravity = 0
		f.s.FrameTime = 0.01
		f.s.OnGround = 0
		f.s.Forward = vec.Vec3{1, 0, 0}
		f.s.Velocity = vec.Vec3{200, 0, 0}
		f.s.InDuck = true
		f.s.DuckTime = 900
		f.s.Cmd.Buttons = pmove.InJump | pmove.InDuck

		f.mover().Jump()
		assert.InDelta(t, tc.vx, f.s.Velocity[0], 0.001, tc.physinfo)
		assert.InDelta(t, tc.vz, f.s.Velocity[2], 0.001, tc.physinfo)
		if tc.physinfo != "" {
			assert.Equal(t, float32(-5), f.s.PunchAngle[0])
		}
	}
}

func TestStepSoundsAlternate(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	m := f.mover()
	left := map[string]bool{"player/pl_step2.wav": true, "player/pl_step4.wav": true}
	for i := 0; i < 6; i++ {
		m.PlayStepSound(pmove.StepConcrete, 1)
	}
	got := samples(f.w)
	require.Len(t, got, 6)
	for i, s := range got {
		assert.Equal(t, i%2 == 0, left[s], "step %d: %s", i, s)
	}

	// the server keeps its own foot
	f.s.Server = true
	m.PlayStepSound(pmove.StepConcrete, 1)
	got = samples(f.w)
	assert.True(t, left[got[len(got)-1]], got[len(got)-1])
}

func TestWadeCadenceShared(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 36})
	other := pmove.NewState(5, vec.Vec3{100, 0, 36}, testVars())
	other.PhysEnts = f.s.PhysEnts
	movers := []*pmove.Mover{f.mover(), pmove.NewMover(f.ctx, other, f.w)}

	var counts []int
	for i := 0; i < 8; i++ {
		movers[i%2].PlayStepSound(pmove.StepWade, 0.65)
		counts = append(counts, len(samples(f.w)))
	}
	assert.Equal(t, []int{0, 1, 2, 3, 3, 4, 5, 6}, counts)
	for _, s := range samples(f.w) {
		assert.True(t, strings.HasPrefix(s, "player/pl_wade"), s)
	}
}

func TestSplashIntoWater(t *testing.T) {
	f := newFixture(t, vec.Vec3{0, 0, 70},
		world.Brush{Mins: vec.Vec3{-512, -512, 0}, Maxs: vec.Vec3{512, 512, 30}, Contents: bsp.CONTENTS_WATER})
	f.s.Velocity = vec.Vec3{0, 0, -600}
	f.tick(pmove.Cmd{Msec: 20})

	assert.Equal(t, 1, f.s.WaterLevel)
	assert.Equal(t, -1, f.s.OnGround)
	got := samples(f.w)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "player/pl_wade"), got[0])
}

// stuckInPlayer puts the player inside another player on a server.
func stuckInPlayer(t *testing.T) *fixture {
	t.Helper()
	f := newFixture(t, vec.Vec3{0, 0, 36})
	f.s.Multiplayer = true
	f.s.PhysEnts = append(f.s.PhysEnts, world.PlayerEnt(2, vec.Vec3{0, 0, 36}))
	f.clock.Advance(time.Second)
	return f
}

func TestStuckTouchCadence(t *testing.T) {
	f := stuckInPlayer(t)

	f.tick(pmove.Cmd{Msec: 10})
	require.Len(t, f.w.Touches(), 1)
	assert.Equal(t, 1, f.w.Touches()[0].Ent)
	assert.Equal(t, vec.Vec3{0, 0, 36}, f.s.Origin)

	f.tick(pmove.Cmd{Msec: 10})
	assert.Len(t, f.w.Touches(), 1)

	f.clock.Advance(60 * time.Millisecond)
	f.tick(pmove.Cmd{Msec: 10})
	assert.Len(t, f.w.Touches(), 2)

	f.clock.Advance(10 * time.Millisecond)
	f.tick(pmove.Cmd{Msec: 10})
	assert.Len(t, f.w.Touches(), 2)
	assert.Equal(t, vec.Vec3{0, 0, 36}, f.s.Origin)
}

func TestStuckPlayerGridSearch(t *testing.T) {
	f := stuckInPlayer(t)
	f.tick(pmove.Cmd{Msec: 10, Buttons: pmove.InAttack})

	assert.Equal(t, float32(-8), f.s.Origin[0])
	assert.Equal(t, float32(-8), f.s.Origin[1])
	assert.InDelta(t, 108, f.s.Origin[2], 0.05)
	assert.Equal(t, 1, f.s.OnGround)
	require.Len(t, f.w.Touches(), 1)
}
