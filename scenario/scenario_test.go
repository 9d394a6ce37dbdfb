package scenario

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopmove/cvar"
	"gopmove/filesystem"
	"gopmove/pack"
	"gopmove/pmove"
)

const walkScenario = `
name: walk
seed: 3
brushes:
  - {mins: [-1024, -1024, -16], maxs: [1024, 1024, 0], texture: C1A0_FLOOR}
  - {mins: [-64, 256, 0], maxs: [64, 512, 64], contents: water}
player:
  origin: [0, 0, 36]
commands:
  - {msec: 10, forward: 400, repeat: 50}
  - {msec: 10, buttons: [jump]}
`

func load(t *testing.T, in string) *Scenario {
	t.Helper()
	sc, err := Load(strings.NewReader(in))
	require.NoError(t, err)
	return sc
}

func TestRunWalk(t *testing.T) {
	sc := load(t, walkScenario)
	rep, err := Run(sc, nil)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, rep.ID)
	assert.Equal(t, "walk", rep.Name)
	require.Len(t, rep.Frames, 51)
	assert.Zero(t, rep.Divergences)

	before := rep.Frames[49]
	assert.Equal(t, 0, before.OnGround)
	assert.Greater(t, before.Velocity[0], float32(200))

	last := rep.Frames[50]
	assert.Equal(t, -1, last.OnGround)
	assert.Greater(t, last.Velocity[2], float32(200))
	assert.False(t, last.Diverged())

	steps := 0
	for _, f := range rep.Frames {
		for _, s := range f.Sounds {
			if strings.HasPrefix(s, "player/pl_step") {
				steps++
			}
		}
	}
	assert.Positive(t, steps)

	assert.NotEqual(t, uuid.Nil, rep.Precache)
	assert.True(t, strings.HasPrefix(last.Body, "player/pl_step"), last.Body)
	assert.Positive(t, last.Draws)
	assert.GreaterOrEqual(t, last.Draws, rep.Frames[0].Draws)
}

func TestRunCvars(t *testing.T) {
	defer cvar.ResetAll()
	sc := load(t, `
cvars:
  sv_gravity: "400"
player:
  origin: [0, 0, 100]
commands:
  - {msec: 100}
`)
	rep, err := Run(sc, nil)
	require.NoError(t, err)
	require.Len(t, rep.Frames, 1)
	assert.InDelta(t, -40, rep.Frames[0].Velocity[2], 0.001)

	sc.Cvars = map[string]string{"no_such_cvar": "1"}
	_, err = Run(sc, nil)
	assert.Error(t, err)
}

func TestRunLadder(t *testing.T) {
	sc := load(t, `
brushes:
  - {mins: [-1024, -1024, -16], maxs: [1024, 1024, 0]}
ladders:
  - {mins: [32, -16, 0], maxs: [40, 16, 256]}
player:
  origin: [20, 0, 100]
commands:
  - {msec: 10, buttons: [forward], repeat: 10}
`)
	rep, err := Run(sc, nil)
	require.NoError(t, err)
	last := rep.Frames[len(rep.Frames)-1]
	assert.Equal(t, pmove.MoveTypeFly, last.MoveType)
	assert.InDelta(t, 120, last.Origin[2], 0.01)
}

func TestLoadErrors(t *testing.T) {
	for name, in := range map[string]string{
		"unknown field":    "bogus: 1\n",
		"unknown button":   "commands:\n  - {msec: 10, buttons: [fly]}\n",
		"unknown contents": "brushes:\n  - {mins: [0, 0, 0], maxs: [1, 1, 1], contents: jelly}\n",
		"empty brush":      "brushes:\n  - {mins: [0, 0, 0], maxs: [0, 1, 1]}\n",
		"ladder contents":  "ladders:\n  - {mins: [0, 0, 0], maxs: [1, 1, 1], contents: water}\n",
		"move type":        "player: {movetype: hover}\n",
		"msec":             "commands:\n  - {msec: 300}\n",
		"vector length":    "player: {origin: [1, 2]}\n",
		"no commands":      "name: idle\nplayer: {origin: [0, 0, 36]}\n",
	} {
		_, err := Load(strings.NewReader(in))
		assert.Error(t, err, name)
	}
}

func TestLoadMaterials(t *testing.T) {
	base := t.TempDir()
	game := filepath.Join(base, filesystem.BaseGame)
	require.NoError(t, os.MkdirAll(game, 0o755))
	require.NoError(t, pack.WriteFile(filepath.Join(game, "pak0.pak"), []pack.File{
		{Name: MaterialsFile, Data: []byte("// test\nM metal1\nD dirt1\n")},
	}))
	filesystem.UseBaseDir(base)
	t.Cleanup(filesystem.Close)

	table, err := LoadMaterials(MaterialsFile)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.Equal(t, pmove.CharTexMetal, table.Find("METAL1"))

	_, err = LoadMaterials("sound/missing.txt")
	assert.Error(t, err)
}

func TestCommandsExpand(t *testing.T) {
	sc := load(t, `
name: turn
commands:
  - {msec: 8, angles: [0, -90, 0], buttons: [duck, attack], repeat: 3}
  - {msec: 16, angles: [10, 450, 0]}
`)
	cmds, err := sc.commands()
	require.NoError(t, err)
	require.Len(t, cmds, 4)
	assert.Equal(t, float32(270), cmds[0].ViewAngles[1])
	assert.Equal(t, pmove.InDuck|pmove.InAttack, cmds[2].Buttons)
	assert.Equal(t, float32(90), cmds[3].ViewAngles[1])
	assert.Equal(t, float32(10), cmds[3].ViewAngles[0])
}
