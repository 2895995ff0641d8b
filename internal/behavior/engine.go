package behavior

import (
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
)

// Definitions bundles the lookup tables a single ProcessCharacter call
// needs; the engine package owns these tables for the whole game state
// and passes the same bundle to every character each frame.
type Definitions struct {
	Actions    map[uint8]*entity.ActionDefinition
	Conditions map[uint8]*entity.ConditionDefinition
}

// ProcessCharacter runs one character's behavior scan for the current
// frame, per the engine's per-character, per-frame loop: locked-action
// fast path first, then an in-order scan of the behavior list gated by
// energy and cooldown. Spawns requested by a successful action are
// appended to spawnQueue.
func ProcessCharacter(char *entity.Character, frame uint16, defs Definitions, rng *prng.Generator, spawnQueue *[]entity.SpawnRequest) {
	if char.LockedActionID != entity.NoID {
		runLockedAction(char, frame, defs, rng, spawnQueue)
		return
	}

	for i, entry := range char.Behaviors {
		action := defs.Actions[entry.ActionID]
		condition := defs.Conditions[entry.ConditionID]
		if action == nil || condition == nil {
			continue
		}

		lastUsed := entity.NeverUsed
		if i < len(char.ActionLastUsed) {
			lastUsed = char.ActionLastUsed[i]
		}

		required := ceilEnergyCost(condition.EnergyMul, action.EnergyCost)
		if char.Energy < required {
			continue
		}
		if lastUsed != entity.NeverUsed && uint32(frame)-uint32(lastUsed) < uint32(action.Cooldown) {
			continue
		}

		condCtx := &conditionContext{char: char, def: condition, action: action, rng: rng, frame: frame, lastUsed: lastUsed}
		condMachine := vm.New(condition.Args)
		condFlag, err := condMachine.Execute(condition.Script, condCtx)
		if err != nil || condFlag != 1 {
			continue
		}

		actCtx := &actionContext{
			char: char, action: action, condition: condition,
			actionID: entry.ActionID, behaviorIndex: i, frame: frame, rng: rng, lastUsed: lastUsed,
		}
		actMachine := vm.New(action.Args)
		actFlag, err := actMachine.Execute(action.Script, actCtx)
		if err != nil {
			continue
		}
		if actFlag == 1 {
			actCtx.ApplyEnergyCost()
			*spawnQueue = append(*spawnQueue, actCtx.pendingSpawns...)
			return
		}
	}
}

func runLockedAction(char *entity.Character, frame uint16, defs Definitions, rng *prng.Generator, spawnQueue *[]entity.SpawnRequest) {
	action := defs.Actions[char.LockedActionID]
	if action == nil {
		// A locked action whose definition has since disappeared yields a
		// no-op rather than a crash.
		return
	}

	behaviorIndex := -1
	for i, entry := range char.Behaviors {
		if entry.ActionID == char.LockedActionID {
			behaviorIndex = i
			break
		}
	}
	lastUsed := entity.NeverUsed
	if behaviorIndex >= 0 && behaviorIndex < len(char.ActionLastUsed) {
		lastUsed = char.ActionLastUsed[behaviorIndex]
	}

	ctx := &actionContext{
		char: char, action: action, condition: nil,
		actionID: char.LockedActionID, behaviorIndex: behaviorIndex, frame: frame, rng: rng, lastUsed: lastUsed,
	}
	machine := vm.New(action.Args)
	flag, err := machine.Execute(action.Script, ctx)
	if err != nil {
		return
	}
	*spawnQueue = append(*spawnQueue, ctx.pendingSpawns...)
	if flag == 1 {
		char.LockedActionID = entity.NoID
	}
}
