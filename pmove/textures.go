// SPDX-License-Identifier: GPL-2.0-or-later

package pmove

import (
	"bufio"
	"bytes"
	"io"
	"sort"

	"github.com/pkg/errors"
)

const (
	CharTexConcrete byte = 'C'
	CharTexMetal    byte = 'M'
	CharTexDirt     byte = 'D'
	CharTexVent     byte = 'V'
	CharTexGrate    byte = 'G'
	CharTexTile     byte = 'T'
	CharTexSlosh    byte = 'S'
	CharTexWood     byte = 'W'
	CharTexComputer byte = 'P'
	CharTexGlass    byte = 'Y'
	CharTexFlesh    byte = 'F'
)

const (
	// MaxTextures limits the number of materials loaded.
	MaxTextures = 512
	// TextureNameMax is the longest material name kept, in bytes.
	TextureNameMax = 12
)

type StepType int

const (
	StepConcrete StepType = iota
	StepMetal
	StepDirt
	StepVent
	StepGrate
	StepTile
	StepSlosh
	StepWade
	StepLadder
)

func stepTypeForTexture(t byte) StepType {
	switch t {
	case CharTexMetal:
		return StepMetal
	case CharTexDirt:
		return StepDirt
	case CharTexVent:
		return StepVent
	case CharTexGrate:
		return StepGrate
	case CharTexTile:
		return StepTile
	case CharTexSlosh:
		return StepSlosh
	}
	return StepConcrete
}

type textureEntry struct {
	name string
	typ  byte
}

// TextureTable maps material names to their texture type. It is
// immutable once loaded.
type TextureTable struct {
	entries []textureEntry
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func toUpper(c byte) byte {
	if c >= 'a' && c <= 'z' {
		return c - 'a' + 'A'
	}
	return c
}

func toLower(c byte) byte {
	if c >= 'A' && c <= 'Z' {
		return c - 'A' + 'a'
	}
	return c
}

// compareFold compares two names ignoring ASCII case.
func compareFold(a, b string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		ca, cb := toLower(a[i]), toLower(b[i])
		if ca != cb {
			if ca < cb {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	}
	return 0
}

// LoadTextureTypes parses a materials file. Every line holds a type
// letter followed by a material name; everything else is skipped.
func LoadTextureTypes(r io.Reader) (*TextureTable, error) {
	t := &TextureTable{
		entries: make([]textureEntry, 0, MaxTextures),
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := bytes.TrimLeftFunc(sc.Bytes(), func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
		if len(line) == 0 || !isAlpha(line[0]) {
			continue
		}
		typ := toUpper(line[0])
		name := bytes.TrimLeftFunc(line[1:], func(r rune) bool { return r < 0x80 && isSpace(byte(r)) })
		name = bytes.TrimSuffix(name, []byte("\r"))
		if len(name) == 0 || bytes.IndexFunc(name, func(r rune) bool { return r < 0x80 && isSpace(byte(r)) }) >= 0 {
			continue
		}
		if len(t.entries) >= MaxTextures {
			break
		}
		if len(name) > TextureNameMax {
			continue
		}
		t.entries = append(t.entries, textureEntry{name: string(name), typ: typ})
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading materials")
	}
	sort.SliceStable(t.entries, func(i, j int) bool {
		return compareFold(t.entries[i].name, t.entries[j].name) < 0
	})
	return t, nil
}

// Len returns the number of materials in the table.
func (t *TextureTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Find returns the texture type of name, concrete if unknown.
func (t *TextureTable) Find(name string) byte {
	if t == nil {
		return CharTexConcrete
	}
	i := sort.Search(len(t.entries), func(i int) bool {
		return compareFold(t.entries[i].name, name) >= 0
	})
	if i < len(t.entries) && compareFold(t.entries[i].name, name) == 0 {
		return t.entries[i].typ
	}
	return CharTexConcrete
}

// StripTexturePrefix removes the animation and render prefixes of a
// texture name and cuts it to the length stored in the table.
func StripTexturePrefix(name string) string {
	if len(name) >= 2 && (name[0] == '-' || name[0] == '+') {
		name = name[2:]
	}
	if len(name) > 0 {
		switch name[0] {
		case '{', '!', '~', ' ':
			name = name[1:]
		}
	}
	if len(name) > TextureNameMax {
		name = name[:TextureNameMax]
	}
	return name
}
