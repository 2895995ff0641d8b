package main

import (
	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/tilemap"
	"github.com/robotmasters/engine/internal/vm"
)

// Action and condition ids used by the demo scenario's two-fighter script.
const (
	actionWalkRight uint8 = 1
	actionWalkLeft  uint8 = 2
	condAlways      uint8 = 1
)

// walkScript reads args[0] as an unsigned speed and writes it to the
// character's horizontal velocity every frame it's gated in.
var walkScript = []byte{
	byte(vm.OpReadArg), 0, 0,
	byte(vm.OpToFixed), 0, 0,
	byte(vm.OpWriteProp), vm.AddrCharacterVelX, 8,
	byte(vm.OpExit), 1,
}

// walkLeftScript is the same as walkScript but negates the fixed-point
// velocity before writing it, since action args are unsigned bytes and
// OpToFixed zero-extends them.
var walkLeftScript = []byte{
	byte(vm.OpReadArg), 0, 0,
	byte(vm.OpToFixed), 0, 0,
	byte(vm.OpNegate), 0,
	byte(vm.OpWriteProp), vm.AddrCharacterVelX, 8,
	byte(vm.OpExit), 1,
}

// alwaysTrueScript is a condition that always gates its action on.
var alwaysTrueScript = []byte{byte(vm.OpExit), 1}

// buildArena returns a 256x240 arena with a solid floor along its bottom
// row and solid walls down its left and right edges.
func buildArena() *tilemap.Grid {
	var tiles [tilemap.Height][tilemap.Width]uint8
	for x := 0; x < tilemap.Width; x++ {
		tiles[tilemap.Height-1][x] = 1
	}
	for y := 0; y < tilemap.Height; y++ {
		tiles[y][0] = 1
		tiles[y][tilemap.Width-1] = 1
	}
	return tilemap.NewGrid(tiles)
}

// buildDemoScenario constructs a minimal two-character match: one walking
// right, one walking left, on a walled arena floor. It exists purely so
// cmd/simplayer has something deterministic to step through; it is not a
// content-authoring tool.
func buildDemoScenario(seed uint16) (*engine.GameState, error) {
	left := entity.NewCharacter(0, 0)
	left.Core.Pos = fixedpoint.Vec2{X: fixedpoint.FromInt(32), Y: fixedpoint.FromInt(208)}
	left.Behaviors = []entity.BehaviorEntry{{ConditionID: condAlways, ActionID: actionWalkRight}}

	right := entity.NewCharacter(1, 1)
	right.Core.Pos = fixedpoint.Vec2{X: fixedpoint.FromInt(208), Y: fixedpoint.FromInt(208)}
	right.Core.Facing = 0
	right.Behaviors = []entity.BehaviorEntry{{ConditionID: condAlways, ActionID: actionWalkLeft}}

	walkRight := &entity.ActionDefinition{Script: walkScript}
	walkRight.Args[0] = 2
	walkLeft := &entity.ActionDefinition{Script: walkLeftScript}
	walkLeft.Args[0] = 2

	defs := engine.Definitions{
		Actions: map[uint8]*entity.ActionDefinition{
			actionWalkRight: walkRight,
			actionWalkLeft:  walkLeft,
		},
		Conditions: map[uint8]*entity.ConditionDefinition{
			condAlways: {EnergyMul: fixedpoint.One, Script: alwaysTrueScript},
		},
	}

	return engine.NewGame(seed, buildArena(), []*entity.Character{left, right}, defs)
}
