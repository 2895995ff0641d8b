package engine

import (
	"testing"

	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/tilemap"
	"github.com/stretchr/testify/require"
)

func TestNewGameRejectsNilTilemap(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	_, err := NewGame(1, nil, []*entity.Character{char}, Definitions{})
	require.Error(t, err)
}

func TestNewGameRejectsTooManyCharacters(t *testing.T) {
	chars := make([]*entity.Character, MaxCharacters+1)
	for i := range chars {
		chars[i] = entity.NewCharacter(uint8(i), 0)
	}
	_, err := NewGame(1, tilemap.EmptyGrid(), chars, Definitions{})
	require.Error(t, err)
}

func TestNewGameRejectsUnknownBehaviorReference(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	char.Behaviors = []entity.BehaviorEntry{{ActionID: 9, ConditionID: 9}}
	_, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, Definitions{})
	require.Error(t, err)
}

func TestNewGameRejectsSpawnDefinitionWithOutOfRangeElement(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	defs := Definitions{
		Spawns: map[uint8]*entity.SpawnDefinition{
			1: {HasElement: true, Element: entity.Element(entity.ElementCount)},
		},
	}
	_, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, defs)
	require.Error(t, err)
}

func TestNewGameAppliesPassiveRegenToEveryCharacter(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	game, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, Definitions{})
	require.NoError(t, err)
	require.Len(t, game.Characters[0].StatusEffects, 1)
	require.Equal(t, entity.Permanent, game.Characters[0].StatusEffects[0].RemainingDuration)
}

func TestNewGameFillsActionLastUsedToMatchBehaviors(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	cond := &entity.ConditionDefinition{}
	action := &entity.ActionDefinition{}
	char.Behaviors = []entity.BehaviorEntry{{ActionID: 1, ConditionID: 1}}
	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	game, err := NewGame(1, tilemap.EmptyGrid(), []*entity.Character{char}, defs)
	require.NoError(t, err)
	require.Equal(t, []uint16{entity.NeverUsed}, game.Characters[0].ActionLastUsed)
}
