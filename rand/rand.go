// SPDX-License-Identifier: GPL-2.0-or-later

// Package rand is a small counter based noise generator. The same seed
// always yields the same sequence on every platform.
package rand

const (
	noise1 = 0xB5297A4D
	noise2 = 0x68E31DA4
	noise3 = 0x1B56C4E9
)

type Generator struct {
	idx  uint32
	seed uint32
}

func New(seed uint32) Generator {
	return Generator{idx: 0, seed: seed}
}

func noise(p uint32, s uint32) uint32 {
	m := p
	m *= noise1
	m += s
	m ^= (m >> 8)
	m *= noise2
	m ^= (m << 8)
	m *= noise3
	m ^= (m >> 8)
	return m
}

func (g *Generator) next() uint32 {
	g.idx++
	return noise(g.idx, g.seed)
}

// Reset restarts the sequence of seed.
func (g *Generator) Reset(seed uint32) {
	g.seed = seed
	g.idx = 0
}

// Position returns how many values were drawn since the last reset.
func (g *Generator) Position() uint32 {
	return g.idx
}

func (g *Generator) Uint32n(n uint32) uint32 {
	return g.next() % n
}

// Int returns a value in [lo, hi]. It returns lo if hi <= lo.
func (g *Generator) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + int(g.Uint32n(uint32(hi-lo+1)))
}
