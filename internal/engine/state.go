package engine

import (
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/simerr"
	"github.com/robotmasters/engine/internal/status"
	"github.com/robotmasters/engine/internal/tilemap"
)

// Definitions bundles every definition table the scheduler needs to
// resolve behavior/condition/spawn/status-effect ids against, shared
// across every character and spawn instance in the match.
type Definitions struct {
	Actions       map[uint8]*entity.ActionDefinition
	Conditions    map[uint8]*entity.ConditionDefinition
	StatusEffects map[uint8]*entity.StatusEffectDefinition
	Spawns        map[uint8]*entity.SpawnDefinition
}

// GameState is the entire root state of one match: the tilemap, every
// character and live spawn instance, the deterministic RNG, the
// definition tables, and the frame counter/status the scheduler advances.
type GameState struct {
	Frame  uint16
	Status Status

	Grid       *tilemap.Grid
	Characters []*entity.Character
	Spawns     []entity.SpawnInstance
	RNG        *prng.Generator
	Defs       Definitions
}

// NewGame validates its inputs and constructs a ready-to-run match. Per
// this engine's error-handling contract, faults here are fatal to the
// call (unlike script/definition-lookup faults during AdvanceFrame,
// which are locally recoverable): a malformed tilemap, an
// out-of-range character count, or a behavior entry referencing an
// undefined action/condition id all fail construction outright rather
// than producing a GameState that would misbehave silently at runtime.
func NewGame(seed uint16, grid *tilemap.Grid, characters []*entity.Character, defs Definitions) (*GameState, error) {
	if grid == nil {
		return nil, simerr.New(simerr.InvalidTilemap, "tilemap is nil")
	}
	if len(characters) == 0 {
		return nil, simerr.New(simerr.InvalidCharacterData, "no characters")
	}
	if len(characters) > MaxCharacters {
		return nil, simerr.New(simerr.InvalidCharacterData, "too many characters")
	}

	for _, def := range defs.Spawns {
		if def == nil || !def.HasElement {
			continue
		}
		if _, ok := entity.ElementFromByte(uint8(def.Element)); !ok {
			return nil, simerr.New(simerr.InvalidSpawnData, "spawn definition element out of range")
		}
	}

	seenIDs := make(map[uint8]bool, len(characters))
	for _, c := range characters {
		if c == nil {
			return nil, simerr.New(simerr.InvalidCharacterData, "nil character")
		}
		if seenIDs[c.Core.ID] {
			return nil, simerr.New(simerr.InvalidEntityID, "duplicate character id")
		}
		seenIDs[c.Core.ID] = true

		for _, entry := range c.Behaviors {
			if _, ok := defs.Actions[entry.ActionID]; !ok {
				return nil, simerr.New(simerr.ActionDefinitionNotFound, "behavior references unknown action id")
			}
			if _, ok := defs.Conditions[entry.ConditionID]; !ok {
				return nil, simerr.New(simerr.ConditionDefinitionNotFound, "behavior references unknown condition id")
			}
		}
		if len(c.ActionLastUsed) != len(c.Behaviors) {
			last := make([]uint16, len(c.Behaviors))
			for i := range last {
				last[i] = entity.NeverUsed
			}
			c.ActionLastUsed = last
		}
	}

	state := &GameState{
		Grid:       grid,
		Characters: characters,
		RNG:        prng.New(seed),
		Defs:       defs,
	}

	for _, c := range characters {
		status.ApplyPassiveRegen(c)
	}

	return state, nil
}
