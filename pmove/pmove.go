// SPDX-License-Identifier: GPL-2.0-or-later

// Package pmove advances one player by one input command: collision
// response, friction and acceleration per medium, ducking, jumping,
// water jumps, stuck recovery and the footstep sounds that go with it.
package pmove

import (
	"gopmove/math/vec"
)

type MoveType int

const (
	MoveTypeNone          MoveType = 0
	MoveTypeWalk          MoveType = 3
	MoveTypeStep          MoveType = 4
	MoveTypeFly           MoveType = 5
	MoveTypeToss          MoveType = 6
	MoveTypePush          MoveType = 7
	MoveTypeNoClip        MoveType = 8
	MoveTypeFlyMissile    MoveType = 9
	MoveTypeBounce        MoveType = 10
	MoveTypeBounceMissile MoveType = 11
	MoveTypeFollow        MoveType = 12
)

func (m MoveType) String() string {
	switch m {
	case MoveTypeNone:
		return "none"
	case MoveTypeWalk:
		return "walk"
	case MoveTypeStep:
		return "step"
	case MoveTypeFly:
		return "fly"
	case MoveTypeToss:
		return "toss"
	case MoveTypePush:
		return "push"
	case MoveTypeNoClip:
		return "noclip"
	case MoveTypeFlyMissile:
		return "flymissile"
	case MoveTypeBounce:
		return "bounce"
	case MoveTypeBounceMissile:
		return "bouncemissile"
	case MoveTypeFollow:
		return "follow"
	}
	return "unknown"
}

type Flags uint32

const (
	FlagFly        Flags = 1
	FlagSwim       Flags = 1 << 1
	FlagOnGround   Flags = 1 << 9
	FlagWaterJump  Flags = 1 << 11
	FlagFrozen     Flags = 1 << 12
	FlagDucking    Flags = 1 << 14
	FlagImmuneLava Flags = 1 << 19
	FlagOnTrain    Flags = 1 << 24
)

type Buttons uint16

const (
	InAttack Buttons = 1 << iota
	InJump
	InDuck
	InForward
	InBack
	InUse
	InCancel
	InLeft
	InRight
	InMoveLeft
	InMoveRight
	InAttack2
	InRun
	InReload
)

const (
	MaxClients    = 32
	MaxPhysEnts   = 600
	MaxClipPlanes = 5

	// chase and roaming spectator modes kept in IUser1
	ObsRoaming = 3

	DeadDiscardBody = 4
)

const (
	timeToDuck           = 0.4
	vecDuckView          = 12
	vecView              = 28
	deadViewHeight       = -8
	maxClimbSpeed        = 200
	stuckMoveUp          = 1
	playerMaxSafeFall    = 580
	playerMinBounceSpeed = 200
	playerFallPunch      = 350
	playerLongJumpSpeed  = 350
	playerDuckingFactor  = 0.333
)

// Cmd is one user command.
type Cmd struct {
	Msec        int
	ViewAngles  vec.Vec3
	ForwardMove float32
	SideMove    float32
	UpMove      float32
	Buttons     Buttons
}

func (c *Cmd) moveVector() vec.Vec3 {
	return vec.Vec3{c.ForwardMove, c.SideMove, c.UpMove}
}

func (c *Cmd) setMoveVector(v vec.Vec3) {
	c.ForwardMove, c.SideMove, c.UpMove = v[0], v[1], v[2]
}

// PhysEnt is a collider handed in by the caller for one tick. Index 0
// of State.PhysEnts is the world.
type PhysEnt struct {
	Name   string
	Player bool
	Info   int
	Origin vec.Vec3
	Angles vec.Vec3
	Mins   vec.Vec3
	Maxs   vec.Vec3
	// Model is a world specific model reference, 0 means a plain box.
	Model    int
	Solid    int
	Skin     int
	MoveType MoveType
}

type Plane struct {
	Normal vec.Vec3
	Dist   float32
}

type Trace struct {
	AllSolid   bool
	StartSolid bool
	InOpen     bool
	InWater    bool
	Fraction   float32
	EndPos     vec.Vec3
	Plane      Plane
	// Ent is the index into the physents, -1 if nothing was hit.
	Ent           int
	DeltaVelocity vec.Vec3
	HitGroup      int
}

// MoveVars are the server tunables shared by all players.
type MoveVars struct {
	Gravity           float32
	StopSpeed         float32
	MaxSpeed          float32
	SpectatorMaxSpeed float32
	Accelerate        float32
	AirAccelerate     float32
	WaterAccelerate   float32
	Friction          float32
	EdgeFriction      float32
	WaterFriction     float32
	EntGravity        float32
	Bounce            float32
	StepSize          float32
	MaxVelocity       float32
	Footsteps         bool
	RollAngle         float32
	RollSpeed         float32
}

// State is everything one tick reads and writes for one player.
type State struct {
	PlayerIndex int
	Server      bool
	Multiplayer bool
	// RunFuncs is false while the client re-predicts old commands.
	RunFuncs bool

	Cmd       Cmd
	FrameTime float32

	Origin       vec.Vec3
	Velocity     vec.Vec3
	BaseVelocity vec.Vec3
	MoveDir      vec.Vec3
	Angles       vec.Vec3
	OldAngles    vec.Vec3
	ViewOfs      vec.Vec3
	PunchAngle   vec.Vec3
	Forward      vec.Vec3
	Right        vec.Vec3
	Up           vec.Vec3

	MoveType   MoveType
	Flags      Flags
	OnGround   int
	UseHull    int
	PlayerMins [4]vec.Vec3
	PlayerMaxs [4]vec.Vec3

	Friction       float32
	Gravity        float32
	FallVelocity   float32
	MaxSpeed       float32
	ClientMaxSpeed float32

	WaterLevel    int
	OldWaterLevel int
	WaterType     int
	WaterJumpTime float32

	DuckTime      float32
	InDuck        bool
	TimeStepSound int
	SwimTime      float32
	OldButtons    Buttons

	Dead      bool
	DeadFlag  int
	Spectator bool
	IUser1    int
	IUser2    int
	IUser3    int

	TextureName string
	TextureType byte
	PhysInfo    string

	PhysEnts []PhysEnt
	MoveEnts []PhysEnt
	Touches  []Trace

	MoveVars MoveVars
}

// NewState returns a standing, walking player at origin.
func NewState(slot int, origin vec.Vec3, mv MoveVars) *State {
	s := &State{
		PlayerIndex: slot,
		RunFuncs:    true,
		Origin:      origin,
		ViewOfs:     vec.Vec3{0, 0, vecView},
		MoveType:    MoveTypeWalk,
		OnGround:    -1,
		Friction:    1,
		Gravity:     1,
		MaxSpeed:    mv.MaxSpeed,
		TextureType: CharTexConcrete,
		Touches:     make([]Trace, 0, MaxPhysEnts),
		MoveVars:    mv,
	}
	s.PlayerMins, s.PlayerMaxs = DefaultHulls()
	return s
}

func (s *State) button(b Buttons) bool {
	return s.Cmd.Buttons&b != 0
}

func (s *State) hasFlag(f Flags) bool {
	return s.Flags&f != 0
}

func (s *State) height() float32 {
	return s.PlayerMins[s.UseHull][2] + s.PlayerMaxs[s.UseHull][2]
}

// SetCommand prepares s for running cmd: the command is copied, the
// max speed is reset from the move vars and the current angles become
// the old ones.
func (s *State) SetCommand(cmd Cmd) {
	s.Cmd = cmd
	s.MaxSpeed = s.MoveVars.MaxSpeed
	s.OldAngles = s.Angles
}
