// SPDX-License-Identifier: GPL-2.0-or-later

package cvars

import (
	"gopmove/conlog"
	"gopmove/cvar"
	"gopmove/pmove"
)

var (
	Coop                *cvar.Cvar
	DeathMatch          *cvar.Cvar
	Developer           *cvar.Cvar
	EdgeFriction        *cvar.Cvar
	MPFootSteps         *cvar.Cvar
	ServerAccelerate    *cvar.Cvar
	ServerAirAccelerate *cvar.Cvar
	ServerBounce        *cvar.Cvar
	ServerFriction      *cvar.Cvar
	ServerGravity       *cvar.Cvar
	ServerMaxSpeed      *cvar.Cvar
	ServerMaxVelocity   *cvar.Cvar
	ServerRollAngle     *cvar.Cvar
	ServerRollSpeed     *cvar.Cvar
	ServerSpecMaxSpeed  *cvar.Cvar
	ServerStepSize      *cvar.Cvar
	ServerStopSpeed     *cvar.Cvar
	ServerWaterAccel    *cvar.Cvar
	ServerWaterFriction *cvar.Cvar
)

func init() {
	Coop = cvar.MustRegister("coop", "0", cvar.NONE)
	DeathMatch = cvar.MustRegister("deathmatch", "0", cvar.NONE)
	Developer = cvar.MustRegister("developer", "0", cvar.NONE)
	EdgeFriction = cvar.MustRegister("edgefriction", "2", cvar.SERVERINFO)
	MPFootSteps = cvar.MustRegister("mp_footsteps", "1", cvar.SERVERINFO)
	ServerAccelerate = cvar.MustRegister("sv_accelerate", "10", cvar.SERVERINFO)
	ServerAirAccelerate = cvar.MustRegister("sv_airaccelerate", "10", cvar.SERVERINFO)
	ServerBounce = cvar.MustRegister("sv_bounce", "1", cvar.SERVERINFO)
	ServerFriction = cvar.MustRegister("sv_friction", "4", cvar.NOTIFY|cvar.SERVERINFO)
	ServerGravity = cvar.MustRegister("sv_gravity", "800", cvar.NOTIFY|cvar.SERVERINFO)
	ServerMaxSpeed = cvar.MustRegister("sv_maxspeed", "320", cvar.NOTIFY|cvar.SERVERINFO)
	ServerMaxVelocity = cvar.MustRegister("sv_maxvelocity", "2000", cvar.SERVERINFO)
	ServerRollAngle = cvar.MustRegister("sv_rollangle", "0", cvar.SERVERINFO)
	ServerRollSpeed = cvar.MustRegister("sv_rollspeed", "0", cvar.SERVERINFO)
	ServerSpecMaxSpeed = cvar.MustRegister("sv_spectatormaxspeed", "500", cvar.SERVERINFO)
	ServerStepSize = cvar.MustRegister("sv_stepsize", "18", cvar.SERVERINFO)
	ServerStopSpeed = cvar.MustRegister("sv_stopspeed", "100", cvar.SERVERINFO)
	ServerWaterAccel = cvar.MustRegister("sv_wateraccelerate", "10", cvar.SERVERINFO)
	ServerWaterFriction = cvar.MustRegister("sv_waterfriction", "1", cvar.SERVERINFO)

	Developer.SetCallback(func(cv *cvar.Cvar) {
		conlog.SetDeveloper(cv.Bool())
	})
}

// MoveVars snapshots the movement variables for one tick.
func MoveVars() pmove.MoveVars {
	return pmove.MoveVars{
		Gravity:           ServerGravity.Value(),
		StopSpeed:         ServerStopSpeed.Value(),
		MaxSpeed:          ServerMaxSpeed.Value(),
		SpectatorMaxSpeed: ServerSpecMaxSpeed.Value(),
		Accelerate:        ServerAccelerate.Value(),
		AirAccelerate:     ServerAirAccelerate.Value(),
		WaterAccelerate:   ServerWaterAccel.Value(),
		Friction:          ServerFriction.Value(),
		EdgeFriction:      EdgeFriction.Value(),
		WaterFriction:     ServerWaterFriction.Value(),
		EntGravity:        1,
		Bounce:            ServerBounce.Value(),
		StepSize:          ServerStepSize.Value(),
		MaxVelocity:       ServerMaxVelocity.Value(),
		Footsteps:         MPFootSteps.Bool(),
		RollAngle:         ServerRollAngle.Value(),
		RollSpeed:         ServerRollSpeed.Value(),
	}
}

// Multiplayer reports whether a deathmatch or coop game is set up.
func Multiplayer() bool {
	return DeathMatch.Bool() || Coop.Bool()
}
