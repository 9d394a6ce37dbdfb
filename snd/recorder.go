// SPDX-License-Identifier: GPL-2.0-or-later

package snd

import (
	"gopmove/conlog"
)

const (
	FlagStop        = 1 << 5
	FlagChangeVol   = 1 << 6
	FlagChangePitch = 1 << 7
)

// Event is one started, changed or stopped sound.
type Event struct {
	Entity      int
	Channel     int
	Sample      string
	SFX         int
	Volume      float32
	Attenuation float32
	Flags       int
	Pitch       int
}

type channelKey struct {
	entity  int
	channel int
}

// Recorder collects sound events instead of playing them. A new sound
// on the channel of an entity replaces the one playing there, channel
// 0 never overrides.
type Recorder struct {
	precache *Precache
	events   []Event
	playing  map[channelKey]Event
}

func NewRecorder(p *Precache) *Recorder {
	if p == nil {
		p = NewPrecache()
	}
	return &Recorder{
		precache: p,
		playing:  make(map[channelKey]Event),
	}
}

func (r *Recorder) Precache() *Precache {
	return r.precache
}

func (r *Recorder) Record(e Event) {
	i, ok := r.precache.Index(e.Sample)
	if !ok {
		conlog.DPrintf("sound %s not precached\n", e.Sample)
		i = r.precache.Add(e.Sample)
	}
	e.SFX = i
	r.events = append(r.events, e)

	k := channelKey{e.Entity, e.Channel}
	switch {
	case e.Flags&FlagStop != 0:
		delete(r.playing, k)
	case e.Flags&(FlagChangeVol|FlagChangePitch) != 0:
		if p, ok := r.playing[k]; ok {
			if e.Flags&FlagChangeVol != 0 {
				p.Volume = e.Volume
			}
			if e.Flags&FlagChangePitch != 0 {
				p.Pitch = e.Pitch
			}
			r.playing[k] = p
		}
	case e.Channel != 0:
		r.playing[k] = e
	}
}

// Events returns everything recorded since the last Reset.
func (r *Recorder) Events() []Event {
	return r.events
}

// Playing returns the sound on the channel of an entity.
func (r *Recorder) Playing(entity, channel int) (Event, bool) {
	e, ok := r.playing[channelKey{entity, channel}]
	return e, ok
}

func (r *Recorder) Reset() {
	r.events = r.events[:0]
}
