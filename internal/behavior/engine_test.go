package behavior

import (
	"testing"

	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
	"github.com/stretchr/testify/require"
)

// alwaysTrueCondition: [Exit, 1]
var alwaysTrueCondition = []byte{byte(vm.OpExit), 1}

// alwaysFalseCondition: [Exit, 0]
var alwaysFalseCondition = []byte{byte(vm.OpExit), 0}

// setVelXFromArgScript sets velocity.x = args[0] (as fixed) and returns success.
var setVelXFromArgScript = []byte{
	byte(vm.OpReadArg), 0, 0, // vars[0] = args[0]
	byte(vm.OpToFixed), 0, 0, // fixed[0] = from_int(vars[0])
	byte(vm.OpWriteProp), vm.AddrCharacterVelX, 8, // write fixed[0] (register index 8) to vel.x
	byte(vm.OpExit), 1,
}

func newTestDefs(actionArgs0 uint8, energyCost uint8) Definitions {
	action := &entity.ActionDefinition{
		EnergyCost: energyCost,
		Script:     setVelXFromArgScript,
	}
	action.Args[0] = actionArgs0
	cond := &entity.ConditionDefinition{
		EnergyMul: fixedpoint.One,
		Script:    alwaysTrueCondition,
	}
	return Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
}

func TestRunActionOnFlatGround(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}
	char.ActionLastUsed = []uint16{entity.NeverUsed}
	defs := newTestDefs(3, 0)
	rng := prng.New(12345)
	var spawns []entity.SpawnRequest

	ProcessCharacter(char, 0, defs, rng, &spawns)

	require.Equal(t, fixedpoint.FromInt(3), char.Core.Vel.X)
}

func TestBehaviorPriorityPicksPassingCondition(t *testing.T) {
	failingAction := &entity.ActionDefinition{Script: []byte{byte(vm.OpExit), 1}}
	passingAction := &entity.ActionDefinition{EnergyCost: 10, Script: setVelXFromArgScript}
	passingAction.Args[0] = 5
	failCond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysFalseCondition}
	passCond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysTrueCondition}

	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: failingAction, 2: passingAction},
		Conditions: map[uint8]*entity.ConditionDefinition{1: failCond, 2: passCond},
	}

	char := entity.NewCharacter(0, 0)
	char.Energy = 100
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}, {ConditionID: 2, ActionID: 2}}
	char.ActionLastUsed = []uint16{entity.NeverUsed, entity.NeverUsed}
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessCharacter(char, 0, defs, rng, &spawns)

	require.Equal(t, fixedpoint.FromInt(5), char.Core.Vel.X)
	require.Equal(t, uint8(90), char.Energy)
}

func TestEnergyGatingSkipsAction(t *testing.T) {
	defs := newTestDefs(3, 50)
	char := entity.NewCharacter(0, 0)
	char.Energy = 10
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}
	char.ActionLastUsed = []uint16{entity.NeverUsed}
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessCharacter(char, 0, defs, rng, &spawns)

	require.True(t, char.Core.Vel.X.IsZero())
	require.Equal(t, uint8(10), char.Energy)
}

func TestCooldownSkipsThenAllowsAgain(t *testing.T) {
	action := &entity.ActionDefinition{Cooldown: 60, Script: []byte{
		byte(vm.OpWriteActionLastUsed),
		byte(vm.OpExit), 1,
	}}
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysTrueCondition}
	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: action},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	char := entity.NewCharacter(0, 0)
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}
	char.ActionLastUsed = []uint16{entity.NeverUsed}
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessCharacter(char, 0, defs, rng, &spawns) // frame 0: executes, marks last_used=0
	require.Equal(t, uint16(0), char.ActionLastUsed[0])

	ProcessCharacter(char, 30, defs, rng, &spawns) // frame 30: still on cooldown
	require.Equal(t, uint16(0), char.ActionLastUsed[0])

	ProcessCharacter(char, 61, defs, rng, &spawns) // frame 61: cooldown elapsed
	require.Equal(t, uint16(61), char.ActionLastUsed[0])
}

func TestLockedActionBypassesBehaviorList(t *testing.T) {
	lockThenHold := &entity.ActionDefinition{Script: []byte{
		byte(vm.OpLockAction),
		byte(vm.OpExit), 0,
	}}
	cond := &entity.ConditionDefinition{EnergyMul: fixedpoint.One, Script: alwaysTrueCondition}
	defs := Definitions{
		Actions:    map[uint8]*entity.ActionDefinition{1: lockThenHold},
		Conditions: map[uint8]*entity.ConditionDefinition{1: cond},
	}
	char := entity.NewCharacter(0, 0)
	char.Behaviors = []entity.BehaviorEntry{{ConditionID: 1, ActionID: 1}}
	char.ActionLastUsed = []uint16{entity.NeverUsed}
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessCharacter(char, 0, defs, rng, &spawns)
	require.Equal(t, uint8(1), char.LockedActionID)

	// Next frame takes the locked branch directly.
	ProcessCharacter(char, 1, defs, rng, &spawns)
	require.Equal(t, uint8(1), char.LockedActionID) // exit flag 0 preserves the lock
}
