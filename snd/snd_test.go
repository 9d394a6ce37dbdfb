package snd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrecache(t *testing.T) {
	p := NewPrecache("player/pl_step1.wav", "player/pl_step2.wav", "player/pl_step1.wav")
	require.Equal(t, 2, p.Len())
	i, ok := p.Index("player/pl_step2.wav")
	require.True(t, ok)
	assert.Equal(t, 2, i)
	assert.Equal(t, "player/pl_step2.wav", p.Name(i))
	assert.Equal(t, "", p.Name(0))
	assert.Equal(t, 3, p.Add("player/pl_wade1.wav"))

	q := NewPrecache()
	assert.NotEqual(t, p.ID(), q.ID())
}

func TestRecorderChannels(t *testing.T) {
	r := NewRecorder(NewPrecache("a.wav", "b.wav"))
	r.Record(Event{Entity: 1, Channel: 4, Sample: "a.wav", Volume: 1, Pitch: 100})
	r.Record(Event{Entity: 1, Channel: 4, Sample: "b.wav", Volume: 0.5, Pitch: 100})

	e, ok := r.Playing(1, 4)
	require.True(t, ok)
	assert.Equal(t, "b.wav", e.Sample)
	assert.Equal(t, 2, e.SFX)

	r.Record(Event{Entity: 1, Channel: 4, Volume: 0.2, Flags: FlagChangeVol})
	e, _ = r.Playing(1, 4)
	assert.Equal(t, float32(0.2), e.Volume)

	r.Record(Event{Entity: 1, Channel: 4, Flags: FlagStop})
	_, ok = r.Playing(1, 4)
	assert.False(t, ok)

	assert.Len(t, r.Events(), 4)
	r.Reset()
	assert.Empty(t, r.Events())
}

func TestRecorderAddsUnknown(t *testing.T) {
	r := NewRecorder(nil)
	r.Record(Event{Entity: 1, Channel: 0, Sample: "new.wav"})
	assert.Equal(t, 1, r.Events()[0].SFX)
	_, ok := r.Playing(1, 0)
	assert.False(t, ok)
}
