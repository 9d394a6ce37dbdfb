// SPDX-License-Identifier: GPL-2.0-or-later

// Package scenario replays scripted commands for one player against a
// brush world, once as the server and once as client prediction.
package scenario

import (
	"bytes"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"gopmove/bsp"
	"gopmove/filesystem"
	"gopmove/math/vec"
	"gopmove/pmove"
	"gopmove/world"
)

// MaterialsFile is where the game keeps its material list.
const MaterialsFile = "sound/materials.txt"

// Brush is an axial box. Contents defaults to solid.
type Brush struct {
	Mins     vec.Vec3 `yaml:"mins"`
	Maxs     vec.Vec3 `yaml:"maxs"`
	Contents string   `yaml:"contents"`
	Texture  string   `yaml:"texture"`
}

var contentsNames = map[string]int{
	"":            bsp.CONTENTS_SOLID,
	"solid":       bsp.CONTENTS_SOLID,
	"clip":        bsp.CONTENTS_CLIP,
	"water":       bsp.CONTENTS_WATER,
	"slime":       bsp.CONTENTS_SLIME,
	"lava":        bsp.CONTENTS_LAVA,
	"current0":    bsp.CONTENTS_CURRENT_0,
	"current90":   bsp.CONTENTS_CURRENT_90,
	"current180":  bsp.CONTENTS_CURRENT_180,
	"current270":  bsp.CONTENTS_CURRENT_270,
	"currentup":   bsp.CONTENTS_CURRENT_UP,
	"currentdown": bsp.CONTENTS_CURRENT_DOWN,
}

func (b *Brush) brush(contents int) world.Brush {
	return world.Brush{Mins: b.Mins, Maxs: b.Maxs, Contents: contents, Texture: b.Texture}
}

func toBrushes(in []Brush) ([]world.Brush, error) {
	r := make([]world.Brush, 0, len(in))
	for i := range in {
		c, ok := contentsNames[strings.ToLower(in[i].Contents)]
		if !ok {
			return nil, errors.Errorf("brush %d: unknown contents %q", i, in[i].Contents)
		}
		for j := 0; j < 3; j++ {
			if in[i].Mins[j] >= in[i].Maxs[j] {
				return nil, errors.Errorf("brush %d: empty box", i)
			}
		}
		r = append(r, in[i].brush(c))
	}
	return r, nil
}

type Player struct {
	Origin    vec.Vec3 `yaml:"origin"`
	Velocity  vec.Vec3 `yaml:"velocity"`
	Angles    vec.Vec3 `yaml:"angles"`
	MoveType  string   `yaml:"movetype"`
	Ducked    bool     `yaml:"ducked"`
	Dead      bool     `yaml:"dead"`
	Spectator bool     `yaml:"spectator"`
	// Slot is the client slot, 0 based.
	Slot int `yaml:"slot"`
}

type Command struct {
	Msec    int      `yaml:"msec"`
	Forward float32  `yaml:"forward"`
	Side    float32  `yaml:"side"`
	Up      float32  `yaml:"up"`
	Angles  vec.Vec3 `yaml:"angles"`
	Buttons []string `yaml:"buttons"`
	Repeat  int      `yaml:"repeat"`
}

type Scenario struct {
	Name        string            `yaml:"name"`
	Seed        uint32            `yaml:"seed"`
	Multiplayer bool              `yaml:"multiplayer"`
	PhysInfo    string            `yaml:"physinfo"`
	Cvars       map[string]string `yaml:"cvars"`
	Brushes     []Brush           `yaml:"brushes"`
	Ladders     []Brush           `yaml:"ladders"`
	Players     []vec.Vec3        `yaml:"players"`
	Player      Player            `yaml:"player"`
	Commands    []Command         `yaml:"commands"`
}

var buttonNames = map[string]pmove.Buttons{
	"attack":    pmove.InAttack,
	"jump":      pmove.InJump,
	"duck":      pmove.InDuck,
	"forward":   pmove.InForward,
	"back":      pmove.InBack,
	"use":       pmove.InUse,
	"cancel":    pmove.InCancel,
	"left":      pmove.InLeft,
	"right":     pmove.InRight,
	"moveleft":  pmove.InMoveLeft,
	"moveright": pmove.InMoveRight,
	"attack2":   pmove.InAttack2,
	"run":       pmove.InRun,
	"reload":    pmove.InReload,
}

func parseButtons(names []string) (pmove.Buttons, error) {
	var b pmove.Buttons
	for _, n := range names {
		v, ok := buttonNames[strings.ToLower(n)]
		if !ok {
			return 0, errors.Errorf("unknown button %q", n)
		}
		b |= v
	}
	return b, nil
}

func parseMoveType(name string) (pmove.MoveType, error) {
	if name == "" {
		return pmove.MoveTypeWalk, nil
	}
	for m := pmove.MoveTypeNone; m <= pmove.MoveTypeFollow; m++ {
		if m.String() == strings.ToLower(name) {
			return m, nil
		}
	}
	return 0, errors.Errorf("unknown move type %q", name)
}

func (sc *Scenario) validate() error {
	if _, err := parseMoveType(sc.Player.MoveType); err != nil {
		return err
	}
	if sc.Player.Slot < 0 || sc.Player.Slot >= pmove.MaxClients {
		return errors.Errorf("player slot %d out of range", sc.Player.Slot)
	}
	if len(sc.Players)+2 > pmove.MaxPhysEnts {
		return errors.Errorf("too many players: %d", len(sc.Players))
	}
	if len(sc.Commands) == 0 {
		return errors.New("no commands")
	}
	for i, c := range sc.Commands {
		if c.Msec < 0 || c.Msec > 255 {
			return errors.Errorf("command %d: msec %d out of range", i, c.Msec)
		}
		if _, err := parseButtons(c.Buttons); err != nil {
			return errors.Wrapf(err, "command %d", i)
		}
	}
	if _, err := toBrushes(sc.Brushes); err != nil {
		return err
	}
	for i, b := range sc.Ladders {
		if b.Contents != "" && b.Contents != "ladder" {
			return errors.Errorf("ladder %d: contents %q", i, b.Contents)
		}
	}
	return nil
}

// Load reads a scenario. Unknown fields are an error.
func Load(r io.Reader) (*Scenario, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	sc := &Scenario{}
	if err := dec.Decode(sc); err != nil {
		return nil, errors.Wrap(err, "decoding scenario")
	}
	if err := sc.validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

func LoadFile(name string) (*Scenario, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := Load(f)
	if err != nil {
		return nil, errors.Wrapf(err, "scenario %s", name)
	}
	if sc.Name == "" {
		sc.Name = name
	}
	return sc, nil
}

// LoadMaterials reads the material table through the search path.
func LoadMaterials(name string) (*pmove.TextureTable, error) {
	b, err := filesystem.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "loading materials")
	}
	return pmove.LoadTextureTypes(bytes.NewReader(b))
}
