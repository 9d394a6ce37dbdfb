package cvars

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gopmove/cvar"
)

func TestMoveVarsDefaults(t *testing.T) {
	mv := MoveVars()
	assert.Equal(t, float32(800), mv.Gravity)
	assert.Equal(t, float32(320), mv.MaxSpeed)
	assert.Equal(t, float32(4), mv.Friction)
	assert.Equal(t, float32(2), mv.EdgeFriction)
	assert.Equal(t, float32(18), mv.StepSize)
	assert.Equal(t, float32(2000), mv.MaxVelocity)
	assert.True(t, mv.Footsteps)
	assert.False(t, Multiplayer())
}

func TestMoveVarsFollowCvars(t *testing.T) {
	defer cvar.ResetAll()

	require.NoError(t, cvar.Set("sv_gravity", "400"))
	require.NoError(t, cvar.Set("mp_footsteps", "0"))
	require.NoError(t, cvar.Set("deathmatch", "1"))

	mv := MoveVars()
	assert.Equal(t, float32(400), mv.Gravity)
	assert.False(t, mv.Footsteps)
	assert.True(t, Multiplayer())
}
