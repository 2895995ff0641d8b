package status

import (
	"testing"

	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
	"github.com/stretchr/testify/require"
)

func TestApplyPassiveRegenIsIdempotent(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	ApplyPassiveRegen(char)
	ApplyPassiveRegen(char)
	require.Len(t, char.StatusEffects, 1)
	require.Equal(t, entity.Permanent, char.StatusEffects[0].RemainingDuration)
}

func TestProcessFramePassiveRegenGatedOnRate(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	char.Energy = 50
	char.EnergyCap = 100
	char.EnergyRegen = 5
	char.EnergyRegenRate = 10
	ApplyPassiveRegen(char)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessFrame(char, 9, Definitions{}, rng, &spawns)
	require.Equal(t, uint8(50), char.Energy) // not a multiple of the rate

	ProcessFrame(char, 10, Definitions{}, rng, &spawns)
	require.Equal(t, uint8(55), char.Energy)
}

func TestProcessFramePassiveRegenCapsAtEnergyCap(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	char.Energy = 98
	char.EnergyCap = 100
	char.EnergyRegen = 10
	char.EnergyRegenRate = 1
	ApplyPassiveRegen(char)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	ProcessFrame(char, 1, Definitions{}, rng, &spawns)
	require.Equal(t, uint8(100), char.Energy)
}

func TestApplyStacksUpToLimitAndRunsOnScript(t *testing.T) {
	onScript := []byte{byte(vm.OpAssignByte), 0, 1, byte(vm.OpExit), 1}
	def := &entity.StatusEffectDefinition{Duration: 100, StackLimit: 2, OnScript: onScript}
	char := entity.NewCharacter(0, 0)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	Apply(char, 5, def, 0, rng, &spawns)
	require.Len(t, char.StatusEffects, 1)
	require.Equal(t, uint8(1), char.StatusEffects[0].StackCount)

	Apply(char, 5, def, 0, rng, &spawns)
	require.Equal(t, uint8(2), char.StatusEffects[0].StackCount)

	// at the stack limit: a third application is a no-op
	Apply(char, 5, def, 0, rng, &spawns)
	require.Equal(t, uint8(2), char.StatusEffects[0].StackCount)
}

func TestApplyResetsOnStackWhenConfigured(t *testing.T) {
	def := &entity.StatusEffectDefinition{Duration: 100, StackLimit: 5, ResetOnStack: true}
	char := entity.NewCharacter(0, 0)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	Apply(char, 3, def, 0, rng, &spawns)
	char.StatusEffects[0].RemainingDuration = 1

	Apply(char, 3, def, 0, rng, &spawns)
	require.Equal(t, uint16(100), char.StatusEffects[0].RemainingDuration)
}

func TestProcessFrameExpiresAndRunsOffScript(t *testing.T) {
	offScript := []byte{byte(vm.OpExit), 1}
	def := &entity.StatusEffectDefinition{Duration: 1, StackLimit: 1, OffScript: offScript}
	char := entity.NewCharacter(0, 0)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest
	Apply(char, 7, def, 0, rng, &spawns)
	require.Len(t, char.StatusEffects, 1)

	ProcessFrame(char, 1, Definitions{Effects: map[uint8]*entity.StatusEffectDefinition{7: def}}, rng, &spawns)

	require.Empty(t, char.StatusEffects)
}

func TestProcessFramePermanentEffectNeverExpires(t *testing.T) {
	char := entity.NewCharacter(0, 0)
	ApplyPassiveRegen(char)
	rng := prng.New(1)
	var spawns []entity.SpawnRequest

	for f := uint16(0); f < 500; f++ {
		ProcessFrame(char, f, Definitions{}, rng, &spawns)
	}

	require.Len(t, char.StatusEffects, 1)
}
