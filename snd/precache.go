// SPDX-License-Identifier: GPL-2.0-or-later

package snd

import (
	"github.com/google/uuid"
)

// Precache assigns stable indices to sample names. Index 0 is reserved
// for "no sound".
type Precache struct {
	id    uuid.UUID
	names []string
	index map[string]int
}

func NewPrecache(names ...string) *Precache {
	p := &Precache{
		id:    uuid.Must(uuid.NewV7()),
		names: []string{""},
		index: make(map[string]int),
	}
	for _, n := range names {
		p.Add(n)
	}
	return p
}

func (p *Precache) ID() uuid.UUID {
	return p.id
}

// Add returns the index of name, adding it if needed.
func (p *Precache) Add(name string) int {
	if i, ok := p.index[name]; ok {
		return i
	}
	i := len(p.names)
	p.names = append(p.names, name)
	p.index[name] = i
	return i
}

func (p *Precache) Index(name string) (int, bool) {
	i, ok := p.index[name]
	return i, ok
}

func (p *Precache) Name(i int) string {
	if i <= 0 || i >= len(p.names) {
		return ""
	}
	return p.names[i]
}

// Len returns the number of samples, not counting the reserved slot.
func (p *Precache) Len() int {
	return len(p.names) - 1
}
