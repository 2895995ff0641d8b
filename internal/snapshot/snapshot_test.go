package snapshot

import (
	"testing"

	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/tilemap"
	"github.com/stretchr/testify/require"
)

func buildGame(t *testing.T) *engine.GameState {
	t.Helper()
	char := entity.NewCharacter(2, 1)
	char.Core.Pos = fixedpoint.Vec2{X: fixedpoint.FromInt(40), Y: fixedpoint.FromInt(50)}
	char.Core.Vel = fixedpoint.Vec2{X: fixedpoint.FromInt(-1)}
	char.Health = 77
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}

	action := &entity.ActionDefinition{Script: []byte{byte(0)}}
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One}

	defs := engine.Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	game, err := engine.NewGame(7, tilemap.EmptyGrid(), []*entity.Character{char}, defs)
	require.NoError(t, err)

	game.Spawns = []entity.SpawnInstance{{
		Core:       entity.NewEntityCore(5, 0),
		SpawnID:    3,
		OwnerID:    2,
		DamageBase: 20,
		Lifespan:   40,
		Element:    entity.ElementHeat,
	}}
	game.Frame = 12
	return game
}

func freshTarget(t *testing.T, like *engine.GameState) *engine.GameState {
	t.Helper()
	char := entity.NewCharacter(2, 1)
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}
	action := &entity.ActionDefinition{Script: []byte{byte(0)}}
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One}
	defs := engine.Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	game, err := engine.NewGame(7, tilemap.EmptyGrid(), []*entity.Character{char}, defs)
	require.NoError(t, err)
	return game
}

func TestBinaryRoundTrip(t *testing.T) {
	game := buildGame(t)
	data, err := EncodeBinary(game)
	require.NoError(t, err)

	target := freshTarget(t, game)
	require.NoError(t, DecodeBinary(data, target))

	require.Equal(t, game.Frame, target.Frame)
	require.Equal(t, game.Status, target.Status)
	require.Equal(t, game.RNG.State(), target.RNG.State())
	require.Equal(t, game.Characters[0].Core.Pos, target.Characters[0].Core.Pos)
	require.Equal(t, game.Characters[0].Health, target.Characters[0].Health)
	require.Len(t, target.Spawns, 1)
	require.Equal(t, game.Spawns[0].DamageBase, target.Spawns[0].DamageBase)
	require.Equal(t, game.Spawns[0].Element, target.Spawns[0].Element)
}

func TestBinaryRejectsBadMagic(t *testing.T) {
	game := buildGame(t)
	data, err := EncodeBinary(game)
	require.NoError(t, err)
	data[0] = 'X'

	target := freshTarget(t, game)
	require.Error(t, DecodeBinary(data, target))
}

func TestBinaryRejectsTruncatedData(t *testing.T) {
	target := freshTarget(t, buildGame(t))
	require.Error(t, DecodeBinary([]byte{1, 2}, target))
}

func TestJSONRoundTrip(t *testing.T) {
	game := buildGame(t)
	data, err := EncodeJSON(game)
	require.NoError(t, err)

	target := freshTarget(t, game)
	require.NoError(t, DecodeJSON(data, target))

	require.Equal(t, game.Frame, target.Frame)
	require.Equal(t, game.Characters[0].Core.Vel, target.Characters[0].Core.Vel)
	require.Len(t, target.Spawns, 1)
}

func TestCBORRoundTrip(t *testing.T) {
	game := buildGame(t)
	data, err := EncodeCBOR(game)
	require.NoError(t, err)

	target := freshTarget(t, game)
	require.NoError(t, DecodeCBOR(data, target))

	require.Equal(t, game.Frame, target.Frame)
	require.Equal(t, game.Characters[0].Health, target.Characters[0].Health)
	require.Equal(t, game.Spawns[0].OwnerID, target.Spawns[0].OwnerID)
}
