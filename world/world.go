// SPDX-License-Identifier: GPL-2.0-or-later

// Package world is a brush based collision world for player movement.
// Models are lists of axial boxes, players are boxes. It records the
// sounds and stuck touches a tick produces.
package world

import (
	"fmt"

	"gopmove/bsp"
	"gopmove/math/vec"
	"gopmove/pmove"
	"gopmove/qtime"
	"gopmove/rand"
	"gopmove/snd"
)

const (
	SolidNot = iota
	SolidTrigger
	SolidBBox
	SolidSlideBox
	SolidBSP
)

// Touch is a stuck touch reported by the movement code.
type Touch struct {
	Ent   int
	Trace pmove.Trace
}

type World struct {
	models  []*Model
	rng     rand.Generator
	clock   qtime.Source
	sounds  *snd.Recorder
	touches []Touch
	// entity the sounds are attributed to
	entity int
}

// New returns an empty world. A nil clock means the process clock.
func New(seed uint32, clock qtime.Source) *World {
	if clock == nil {
		clock = qtime.Wall
	}
	return &World{
		models: []*Model{nil},
		rng:    rand.New(seed),
		clock:  clock,
		sounds: snd.NewRecorder(snd.NewPrecache(pmove.SoundSamples()...)),
	}
}

// AddModel adds m and returns its model index, starting at 1.
func (w *World) AddModel(m *Model) int {
	m.build()
	w.models = append(w.models, m)
	return len(w.models) - 1
}

func (w *World) Model(index int) *Model {
	if index <= 0 || index >= len(w.models) {
		return nil
	}
	return w.models[index]
}

// Ent returns the solid physent of a model.
func (w *World) Ent(model int) pmove.PhysEnt {
	m := w.Model(model)
	if m == nil {
		panic(fmt.Sprintf("no model %d", model))
	}
	mins, maxs := m.Bounds()
	return pmove.PhysEnt{
		Name:     m.Name,
		Model:    model,
		Solid:    SolidBSP,
		MoveType: pmove.MoveTypePush,
		Mins:     mins,
		Maxs:     maxs,
	}
}

// Ladder returns the physent of a ladder model, it belongs to the
// move ents.
func (w *World) Ladder(model int) pmove.PhysEnt {
	pe := w.Ent(model)
	pe.Solid = SolidNot
	pe.Skin = bsp.CONTENTS_LADDER
	return pe
}

// PlayerEnt returns another player as a standing box.
func PlayerEnt(info int, origin vec.Vec3) pmove.PhysEnt {
	mins, maxs, _ := pmove.HullBounds(pmove.HullStanding)
	return pmove.PhysEnt{
		Name:     "player",
		Player:   true,
		Info:     info,
		Origin:   origin,
		Mins:     mins,
		Maxs:     maxs,
		Solid:    SolidSlideBox,
		MoveType: pmove.MoveTypeWalk,
	}
}

// SetEntity sets the entity following sounds are attributed to.
func (w *World) SetEntity(ent int) {
	w.entity = ent
}

func (w *World) Sounds() *snd.Recorder {
	return w.sounds
}

func (w *World) Touches() []Touch {
	return w.touches
}

// Reset clears the recorded sounds and touches.
func (w *World) Reset() {
	w.sounds.Reset()
	w.touches = w.touches[:0]
}

func (w *World) blocking(pe *pmove.PhysEnt) bool {
	return pe.Solid != SolidNot && pe.Solid != SolidTrigger
}

func toTrace(tr bsp.Trace, offset, end vec.Vec3) pmove.Trace {
	r := pmove.Trace{
		AllSolid:   tr.AllSolid,
		StartSolid: tr.StartSolid,
		InOpen:     tr.InOpen,
		InWater:    tr.InWater,
		Fraction:   tr.Fraction,
		EndPos:     end,
		Plane:      pmove.Plane{Normal: tr.Plane.Normal, Dist: tr.Plane.Distance},
		Ent:        -1,
	}
	if tr.Fraction != 1 {
		r.EndPos = vec.Add(tr.EndPos, offset)
	}
	return r
}

// merge keeps the nearest of two traces. Starting in solid counts as
// a hit at the start.
func merge(total *pmove.Trace, tr pmove.Trace, ent int) {
	if tr.AllSolid {
		tr.StartSolid = true
	}
	if tr.StartSolid {
		tr.Fraction = 0
	}
	if tr.Fraction < total.Fraction {
		tr.Ent = ent
		*total = tr
	}
}

func missTrace(end vec.Vec3) pmove.Trace {
	return pmove.Trace{Fraction: 1, EndPos: end, Ent: -1}
}

// clipToEnt traces the hull against one physent.
func (w *World) clipToEnt(pe *pmove.PhysEnt, hull int, start, end vec.Vec3) pmove.Trace {
	total := missTrace(end)
	offset := pe.Origin
	startL := vec.Sub(start, offset)
	endL := vec.Sub(end, offset)

	if pe.Model == 0 {
		h := hullForBox(pe.Mins, pe.Maxs, hull)
		merge(&total, toTrace(h.Check(startL, endL), offset, end), 0)
		return total
	}
	m := w.Model(pe.Model)
	if m == nil {
		return total
	}
	for i := range m.Brushes {
		if !m.Brushes[i].blocks() {
			continue
		}
		merge(&total, toTrace(m.hulls[hull][i].Check(startL, endL), offset, end), 0)
	}
	return total
}

func (w *World) PlayerTrace(ents []pmove.PhysEnt, hull int, start, end vec.Vec3, flags pmove.TraceFlags, ignore int) pmove.Trace {
	if _, _, ok := pmove.HullBounds(hull); !ok {
		panic(fmt.Sprintf("PlayerTrace: bad hull %d", hull))
	}
	total := missTrace(end)
	for i := range ents {
		if i == ignore {
			continue
		}
		if i > 0 && flags&pmove.TraceWorldOnly != 0 {
			break
		}
		pe := &ents[i]
		if !w.blocking(pe) {
			continue
		}
		tr := w.clipToEnt(pe, hull, start, end)
		if tr.Ent == -1 && !tr.StartSolid {
			continue
		}
		merge(&total, tr, i)
	}
	return total
}

func (w *World) TestPlayerPosition(ents []pmove.PhysEnt, hull int, pos vec.Vec3) (int, pmove.Trace) {
	for i := range ents {
		pe := &ents[i]
		if !w.blocking(pe) {
			continue
		}
		local := vec.Sub(pos, pe.Origin)
		solid := false
		if pe.Model == 0 {
			h := hullForBox(pe.Mins, pe.Maxs, hull)
			solid = h.PointContents(h.FirstClipNode, local) == bsp.CONTENTS_SOLID
		} else if m := w.Model(pe.Model); m != nil {
			for j, h := range m.hulls[hull] {
				if m.Brushes[j].blocks() && h.PointContents(h.FirstClipNode, local) == bsp.CONTENTS_SOLID {
					solid = true
					break
				}
			}
		}
		if solid {
			return i, pmove.Trace{
				AllSolid:   true,
				StartSolid: true,
				EndPos:     pos,
				Ent:        i,
			}
		}
	}
	return -1, missTrace(pos)
}

func (w *World) PointContents(ents []pmove.PhysEnt, p vec.Vec3) (int, int) {
	contents := bsp.CONTENTS_EMPTY
	for i := range ents {
		m := w.Model(ents[i].Model)
		if m == nil {
			continue
		}
		local := vec.Sub(p, ents[i].Origin)
		for j, h := range m.points {
			c := m.Brushes[j].Contents
			if c == bsp.CONTENTS_LADDER || c == bsp.CONTENTS_CLIP {
				continue
			}
			if h.PointContents(h.FirstClipNode, local) != c {
				continue
			}
			if c == bsp.CONTENTS_SOLID {
				return c, c
			}
			if contents == bsp.CONTENTS_EMPTY {
				contents = c
			}
		}
	}
	if bsp.IsCurrent(contents) {
		return bsp.CONTENTS_WATER, contents
	}
	return contents, contents
}

func (w *World) HullPointContents(pe *pmove.PhysEnt, hull int, p vec.Vec3) int {
	m := w.Model(pe.Model)
	if m == nil {
		return bsp.CONTENTS_EMPTY
	}
	local := vec.Sub(p, pe.Origin)
	for i := range m.Brushes {
		b := &m.Brushes[i]
		if b.blocks() {
			continue
		}
		h := m.hulls[hull][i]
		if c := h.PointContents(h.FirstClipNode, local); c != bsp.CONTENTS_EMPTY {
			return c
		}
	}
	return bsp.CONTENTS_EMPTY
}

// TraceModel traces a point against every brush of the model.
func (w *World) TraceModel(pe *pmove.PhysEnt, start, end vec.Vec3) pmove.Trace {
	total := missTrace(end)
	m := w.Model(pe.Model)
	if m == nil {
		return total
	}
	w.traceBrushes(m, pe.Origin, start, end, func(_ int, tr pmove.Trace) {
		merge(&total, tr, -1)
	})
	return total
}

// traceBrushes traces a point against each brush as if it was solid.
func (w *World) traceBrushes(m *Model, offset, start, end vec.Vec3, f func(int, pmove.Trace)) {
	startL := vec.Sub(start, offset)
	endL := vec.Sub(end, offset)
	for i := range m.Brushes {
		b := &m.Brushes[i]
		h := bsp.NewBoxHull(b.Mins, b.Maxs, bsp.CONTENTS_SOLID)
		tr := toTrace(h.Check(startL, endL), offset, end)
		if tr.Fraction < 1 || tr.StartSolid {
			f(i, tr)
		}
	}
}

func (w *World) ModelType(pe *pmove.PhysEnt) pmove.ModelType {
	if pe.Model == 0 {
		return pmove.ModelStudio
	}
	return pmove.ModelBrush
}

// ModelBounds returns the world space bounds of the model.
func (w *World) ModelBounds(pe *pmove.PhysEnt) (vec.Vec3, vec.Vec3) {
	m := w.Model(pe.Model)
	if m == nil {
		return pe.Origin, pe.Origin
	}
	mins, maxs := m.Bounds()
	return vec.Add(mins, pe.Origin), vec.Add(maxs, pe.Origin)
}

func (w *World) TraceTexture(ents []pmove.PhysEnt, ground int, start, end vec.Vec3) (string, bool) {
	if ground < 0 || ground >= len(ents) {
		return "", false
	}
	pe := &ents[ground]
	m := w.Model(pe.Model)
	if m == nil {
		return "", false
	}
	best := float32(2)
	name := ""
	w.traceBrushes(m, pe.Origin, start, end, func(i int, tr pmove.Trace) {
		if !m.Brushes[i].blocks() {
			return
		}
		if tr.Fraction < best {
			best = tr.Fraction
			name = m.Brushes[i].Texture
		}
	})
	return name, best <= 1
}

func (w *World) StuckTouch(hitent int, tr pmove.Trace) {
	w.touches = append(w.touches, Touch{Ent: hitent, Trace: tr})
}

func (w *World) PlaySound(ch pmove.Channel, sample string, volume, attenuation float32, flags pmove.SoundFlags, pitch int) {
	w.sounds.Record(snd.Event{
		Entity:      w.entity,
		Channel:     int(ch),
		Sample:      sample,
		Volume:      volume,
		Attenuation: attenuation,
		Flags:       int(flags),
		Pitch:       pitch,
	})
}

func (w *World) RandomInt(lo, hi int) int {
	return w.rng.Int(lo, hi)
}

// Draws returns how many random numbers were drawn so far.
func (w *World) Draws() uint32 {
	return w.rng.Position()
}

func (w *World) SystemTime() float64 {
	return w.clock.Seconds()
}

var _ pmove.World = (*World)(nil)
