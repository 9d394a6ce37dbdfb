package snapshot

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/encoding/protowire"

	"gopmove/math/vec"
	"gopmove/pmove"
)

func state() *pmove.State {
	return pmove.NewState(1, vec.Vec3{10, 20, 36}, pmove.MoveVars{MaxSpeed: 320})
}

func TestEqualIgnoresInputs(t *testing.T) {
	a, b := state(), state()
	b.PhysEnts = []pmove.PhysEnt{{Name: "worldspawn", Model: 1}}
	b.MoveVars.Gravity = 400
	b.Server = true
	assert.True(t, Equal(a, b))
	assert.Equal(t, Digest(a), Digest(b))
}

func TestDigestChanges(t *testing.T) {
	a := state()
	base := Digest(a)

	a.Origin[2] += 0.001
	assert.NotEqual(t, base, Digest(a))

	b := state()
	b.Cmd.Buttons = pmove.InJump
	assert.False(t, Equal(state(), b))

	c := state()
	c.TextureName = "C1A0_FLOOR"
	assert.NotEqual(t, base, Digest(c))
}

func TestSignedZero(t *testing.T) {
	a, b := state(), state()
	b.Velocity[0] = math32.Copysign(0, -1)
	assert.Equal(t, a.Velocity, b.Velocity)
	assert.False(t, Equal(a, b))
}

func TestEncodingIsWellFormed(t *testing.T) {
	buf := Encode(state())
	fields := 0
	for len(buf) > 0 {
		_, _, n := protowire.ConsumeField(buf)
		require.GreaterOrEqual(t, n, 0)
		buf = buf[n:]
		fields++
	}
	assert.Equal(t, 38, fields)
}
