package engine

import (
	"testing"

	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/tilemap"
	"github.com/robotmasters/engine/internal/vm"
	"github.com/stretchr/testify/require"
)

// runActionScript sets velocity.x = args[0] (as fixed) and returns success.
var runActionScript = []byte{
	byte(vm.OpReadArg), 0, 0,
	byte(vm.OpToFixed), 0, 0,
	byte(vm.OpWriteProp), vm.AddrCharacterVelX, 8,
	byte(vm.OpExit), 1,
}

var alwaysTrueCondition = []byte{byte(vm.OpExit), 1}

func TestAdvanceFrameRunActionOnFlatGround(t *testing.T) {
	action := &entity.ActionDefinition{Script: runActionScript}
	action.Args[0] = 3
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysTrueCondition}

	char := entity.NewCharacter(0, 0)
	char.Core.Pos = fixedpoint.Vec2{X: fixedpoint.FromInt(100), Y: fixedpoint.FromInt(100)}
	char.Behaviors = []entity.BehaviorEntry{{ActionID: 1, ConditionID: 1}}

	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	game, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, defs)
	require.NoError(t, err)

	startX := game.Characters[0].Core.Pos.X
	game.AdvanceFrame()

	require.Equal(t, uint16(1), game.Frame)
	require.Equal(t, fixedpoint.FromInt(3), game.Characters[0].Core.Vel.X)
	require.Equal(t, startX.Add(fixedpoint.FromInt(3)), game.Characters[0].Core.Pos.X)
}

func TestAdvanceFrameEndsAtMaxFrames(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	game, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, Definitions{})
	require.NoError(t, err)
	game.Frame = MaxFrames

	game.AdvanceFrame()

	require.Equal(t, Ended, game.Status)
	require.Equal(t, MaxFrames, game.Frame)
}

func TestAdvanceFrameNoOpAfterEnded(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	game, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, Definitions{})
	require.NoError(t, err)
	game.Status = Ended
	game.Frame = 5

	game.AdvanceFrame()

	require.Equal(t, uint16(5), game.Frame)
}

func TestAdvanceFrameClampsMovementAgainstWall(t *testing.T) {
	action := &entity.ActionDefinition{Script: runActionScript}
	action.Args[0] = 3
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysTrueCondition}

	var tiles [tilemap.Height][tilemap.Width]uint8
	tiles[6][7] = 1 // a block one pixel to the right of the character
	grid := tilemap.NewGrid(tiles)

	char := entity.NewCharacter(0, 0)
	char.Core.Pos = fixedpoint.Vec2{X: fixedpoint.FromInt(95), Y: fixedpoint.FromInt(96)}
	char.Behaviors = []entity.BehaviorEntry{{ActionID: 1, ConditionID: 1}}

	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	game, err := NewGame(1, grid, []*entity.Character{char}, defs)
	require.NoError(t, err)

	game.AdvanceFrame()

	// The character should advance pixel-by-pixel right up against the
	// block tile at x=112..128, not stop short of it, and must report the
	// collision on the side it actually touched.
	require.Equal(t, int32(96), game.Characters[0].Core.Pos.X.ToInt())
	require.True(t, game.Characters[0].Core.Collision.Right)
}
