package status

import (
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
)

// PassiveRegenID is the built-in status effect id reserved for passive
// energy regeneration. It's applied once to every character at match
// start as a permanent instance and never runs a script: ProcessFrame
// special-cases it instead.
const PassiveRegenID uint8 = 0

// Definitions is the status-effect-definition lookup table for a frame.
type Definitions struct {
	Effects map[uint8]*entity.StatusEffectDefinition
}

// ApplyPassiveRegen gives a character the permanent passive-regen
// instance if it doesn't already have one. Called once per character at
// game construction.
func ApplyPassiveRegen(char *entity.Character) {
	for i := range char.StatusEffects {
		if char.StatusEffects[i].EffectID == PassiveRegenID {
			return
		}
	}
	char.StatusEffects = append(char.StatusEffects, entity.StatusEffectInstance{
		EffectID:          PassiveRegenID,
		RemainingDuration: entity.Permanent,
		StackCount:        1,
	})
}

// Apply applies or stacks a status effect on a character, running its
// "on" script if a new instance was created or an existing one gained a
// stack. An instance already at its stack limit is left untouched and no
// script runs.
func Apply(char *entity.Character, effectID uint8, def *entity.StatusEffectDefinition, frame uint16, rng *prng.Generator, spawnQueue *[]entity.SpawnRequest) {
	for i := range char.StatusEffects {
		inst := &char.StatusEffects[i]
		if inst.EffectID != effectID {
			continue
		}
		if inst.StackCount >= def.StackLimit {
			return
		}
		inst.StackCount++
		if def.ResetOnStack {
			inst.RemainingDuration = def.Duration
		}
		runScript(char, inst, def, def.OnScript, frame, rng, spawnQueue)
		return
	}

	char.StatusEffects = append(char.StatusEffects, entity.StatusEffectInstance{
		EffectID:          effectID,
		RemainingDuration: def.Duration,
		StackCount:        1,
	})
	inst := &char.StatusEffects[len(char.StatusEffects)-1]
	runScript(char, inst, def, def.OnScript, frame, rng, spawnQueue)
}

// ProcessFrame ticks every active status effect on a character in order:
// the passive-regen instance adds energy_regen on its gated frames, every
// other instance runs its tick script, remaining duration decrements
// (permanent instances never expire), and an instance reaching zero
// duration is removed after running its off script.
func ProcessFrame(char *entity.Character, frame uint16, defs Definitions, rng *prng.Generator, spawnQueue *[]entity.SpawnRequest) {
	kept := char.StatusEffects[:0:0]

	for i := range char.StatusEffects {
		inst := char.StatusEffects[i]

		if inst.EffectID == PassiveRegenID {
			if char.EnergyRegenRate != 0 && frame%uint16(char.EnergyRegenRate) == 0 {
				newEnergy := uint16(char.Energy) + uint16(char.EnergyRegen)
				if cap := uint16(char.EnergyCap); newEnergy > cap {
					newEnergy = cap
				}
				char.Energy = uint8(newEnergy)
			}
		} else if def := defs.Effects[inst.EffectID]; def != nil && len(def.TickScript) > 0 {
			runScript(char, &inst, def, def.TickScript, frame, rng, spawnQueue)
		}

		if inst.RemainingDuration != entity.Permanent {
			if inst.RemainingDuration > 0 {
				inst.RemainingDuration--
			}
			if inst.RemainingDuration == 0 {
				if def := defs.Effects[inst.EffectID]; def != nil && len(def.OffScript) > 0 {
					runScript(char, &inst, def, def.OffScript, frame, rng, spawnQueue)
				}
				continue
			}
		}

		kept = append(kept, inst)
	}

	char.StatusEffects = kept
}

func runScript(char *entity.Character, inst *entity.StatusEffectInstance, def *entity.StatusEffectDefinition, script []byte, frame uint16, rng *prng.Generator, spawnQueue *[]entity.SpawnRequest) {
	if len(script) == 0 {
		return
	}
	ctx := &statusContext{char: char, inst: inst, def: def, frame: frame, rng: rng}
	m := vm.New(def.Args)
	_, _ = m.Execute(script, ctx) // a faulting script is a local no-op
	if spawnQueue != nil {
		*spawnQueue = append(*spawnQueue, ctx.pendingSpawns...)
	}
}
