// SPDX-License-Identifier: GPL-2.0-or-later

package scenario

import (
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"gopmove/bsp"
	"gopmove/conlog"
	"gopmove/cvar"
	"gopmove/cvars"
	"gopmove/math"
	"gopmove/math/vec"
	"gopmove/pmove"
	"gopmove/qtime"
	"gopmove/snapshot"
	"gopmove/world"
)

// Frame is the server side result of one command.
type Frame struct {
	Tick         int
	Origin       vec.Vec3
	Velocity     vec.Vec3
	OnGround     int
	WaterLevel   int
	Flags        pmove.Flags
	MoveType     pmove.MoveType
	Digest       uint64
	ClientDigest uint64
	Sounds       []string
	// Body is the sample still playing on the player's body channel.
	Body  string
	Draws uint32
}

func (f *Frame) Diverged() bool {
	return f.Digest != f.ClientDigest
}

type Report struct {
	ID uuid.UUID
	// Precache identifies the sound list the frames' samples come from.
	Precache    uuid.UUID
	Name        string
	Frames      []Frame
	Divergences int
}

// side is one of the two simulations.
type side struct {
	server bool
	clock  *qtime.Manual
	w      *world.World
	ctx    *pmove.Context
	s      *pmove.State
}

func (sc *Scenario) newSide(server bool, textures *pmove.TextureTable, mv pmove.MoveVars, multiplayer bool) *side {
	clock := &qtime.Manual{}
	w := world.New(sc.Seed, clock)
	// validated before
	brushes, _ := toBrushes(sc.Brushes)
	wm := w.AddModel(&world.Model{Name: "worldspawn", Brushes: brushes})

	p := &sc.Player
	s := pmove.NewState(p.Slot, p.Origin, mv)
	s.Multiplayer = multiplayer
	s.PhysInfo = sc.PhysInfo
	s.Velocity = p.Velocity
	s.Angles = p.Angles
	s.Dead = p.Dead
	s.Spectator = p.Spectator
	s.MoveType, _ = parseMoveType(p.MoveType)
	if p.Ducked {
		s.UseHull = pmove.HullDucked
		s.Flags |= pmove.FlagDucking
		s.ViewOfs[2] = 12
	}
	if p.Spectator {
		s.IUser1 = pmove.ObsRoaming
	}

	s.PhysEnts = append(s.PhysEnts, w.Ent(wm))
	for i, o := range sc.Players {
		s.PhysEnts = append(s.PhysEnts, world.PlayerEnt(i+2, o))
	}
	for i := range sc.Ladders {
		b := sc.Ladders[i].brush(bsp.CONTENTS_LADDER)
		lm := w.AddModel(&world.Model{Name: "func_ladder", Brushes: []world.Brush{b}})
		s.MoveEnts = append(s.MoveEnts, w.Ladder(lm))
		conlog.DPrintf("ladder %d is model %d\n", i, lm)
	}
	w.SetEntity(p.Slot + 1)

	return &side{
		server: server,
		clock:  clock,
		w:      w,
		ctx:    pmove.NewContext(textures),
		s:      s,
	}
}

func (d *side) tick(cmd pmove.Cmd) {
	d.clock.Advance(time.Duration(cmd.Msec) * time.Millisecond)
	d.w.Reset()
	d.s.SetCommand(cmd)
	d.ctx.PlayerMove(d.s, d.w, d.server)
}

func (sc *Scenario) commands() ([]pmove.Cmd, error) {
	var r []pmove.Cmd
	for i, c := range sc.Commands {
		b, err := parseButtons(c.Buttons)
		if err != nil {
			return nil, errors.Wrapf(err, "command %d", i)
		}
		angles := c.Angles
		angles[vec.YAW] = math.AngleMod32(angles[vec.YAW])
		cmd := pmove.Cmd{
			Msec:        c.Msec,
			ViewAngles:  angles,
			ForwardMove: c.Forward,
			SideMove:    c.Side,
			UpMove:      c.Up,
			Buttons:     b,
		}
		for n := max(c.Repeat, 1); n > 0; n-- {
			r = append(r, cmd)
		}
	}
	return r, nil
}

// Run applies the cvar overrides and simulates every command on both
// sides. textures may be nil.
func Run(sc *Scenario, textures *pmove.TextureTable) (*Report, error) {
	if err := sc.validate(); err != nil {
		return nil, err
	}
	for k, v := range sc.Cvars {
		if err := cvar.Set(k, v); err != nil {
			return nil, errors.Wrap(err, "applying cvars")
		}
	}
	cmds, err := sc.commands()
	if err != nil {
		return nil, err
	}

	mv := cvars.MoveVars()
	multiplayer := sc.Multiplayer || cvars.Multiplayer()
	server := sc.newSide(true, textures, mv, multiplayer)
	client := sc.newSide(false, textures, mv, multiplayer)

	rep := &Report{
		ID:       uuid.Must(uuid.NewV7()),
		Precache: server.w.Sounds().Precache().ID(),
		Name:     sc.Name,
		Frames:   make([]Frame, 0, len(cmds)),
	}
	ent := sc.Player.Slot + 1
	conlog.DPrintf("run %s: %s, %d commands\n", rep.ID, sc.Name, len(cmds))

	for i, cmd := range cmds {
		server.tick(cmd)
		client.tick(cmd)

		s := server.s
		f := Frame{
			Tick:         i,
			Origin:       s.Origin,
			Velocity:     s.Velocity,
			OnGround:     s.OnGround,
			WaterLevel:   s.WaterLevel,
			Flags:        s.Flags,
			MoveType:     s.MoveType,
			Digest:       snapshot.Digest(s),
			ClientDigest: snapshot.Digest(client.s),
			Draws:        server.w.Draws(),
		}
		if e, ok := server.w.Sounds().Playing(ent, int(pmove.ChanBody)); ok {
			f.Body = e.Sample
		}
		for _, e := range server.w.Sounds().Events() {
			f.Sounds = append(f.Sounds, e.Sample)
		}
		if f.Diverged() {
			rep.Divergences++
			conlog.DPrintf("tick %d: prediction diverged\n", i)
		}
		rep.Frames = append(rep.Frames, f)
	}
	return rep, nil
}
