package spawn

import (
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
)

// Definitions is the spawn-definition lookup table for a frame.
type Definitions struct {
	Spawns map[uint8]*entity.SpawnDefinition
}

// ProcessFrame runs every spawn instance's behavior script, ticks its
// lifespan, removes instances that expire, runs their despawn script, and
// finally appends any spawns those scripts requested. New spawns never
// act on their own creation frame: they're appended after the whole
// vector has been processed, matching this frame's ordering.
func ProcessFrame(instances []entity.SpawnInstance, defs Definitions, owners map[uint8]*entity.Character, frame uint16, rng *prng.Generator) []entity.SpawnInstance {
	var pending []entity.SpawnRequest
	result := make([]entity.SpawnInstance, 0, len(instances))

	for i := range instances {
		inst := instances[i]
		def := defs.Spawns[inst.SpawnID]
		owner := owners[inst.OwnerID]

		if def != nil && len(def.BehaviorScript) > 0 {
			ctx := &spawnContext{inst: &inst, def: def, character: owner, rng: rng, frame: frame}
			m := vm.New(def.Args)
			_, _ = m.Execute(def.BehaviorScript, ctx) // a faulting script is a local no-op
			pending = append(pending, ctx.pendingSpawns...)
		}

		if inst.Lifespan > 0 {
			inst.Lifespan--
		}

		if inst.Lifespan == 0 {
			if def != nil && len(def.DespawnScript) > 0 {
				ctx := &spawnContext{inst: &inst, def: def, character: owner, rng: rng, frame: frame}
				m := vm.New(def.Args)
				_, _ = m.Execute(def.DespawnScript, ctx)
				pending = append(pending, ctx.pendingSpawns...)
			}
			continue
		}

		result = append(result, inst)
	}

	for _, req := range pending {
		def := defs.Spawns[req.SpawnID]
		if def == nil {
			continue
		}
		if inst, ok := newSpawnInstance(def, req); ok {
			result = append(result, inst)
		}
	}

	return result
}

// newSpawnInstance builds a fresh instance from a definition and a
// pending request. A zero-duration definition describes an
// instantaneous effect with no instance to track, so the request is
// dropped rather than creating a spawn that would expire before it's
// ever processed.
func newSpawnInstance(def *entity.SpawnDefinition, req entity.SpawnRequest) (entity.SpawnInstance, bool) {
	if def.Duration == 0 {
		return entity.SpawnInstance{}, false
	}
	core := entity.NewEntityCore(req.SpawnID, 0)
	core.Pos = req.Position
	elem := entity.Element(0)
	if def.HasElement {
		elem = def.Element
	}
	return entity.SpawnInstance{
		Core:       core,
		SpawnID:    req.SpawnID,
		OwnerID:    req.OwnerID,
		DamageBase: def.DamageBase,
		Lifespan:   def.Duration,
		Element:    elem,
		Vars:       req.Vars,
	}, true
}

// ApplyCollision computes collision damage (damage_base minus the
// target's armor for the spawn's element, floored at zero), applies it
// to the target's health, and then runs the spawn's collision script
// against the target so it can mutate further state and request
// follow-up spawns.
func ApplyCollision(inst *entity.SpawnInstance, def *entity.SpawnDefinition, target *entity.Character, frame uint16, rng *prng.Generator) []entity.SpawnRequest {
	armor := target.GetArmor(inst.Element)
	dmg := 0
	if int(inst.DamageBase) > int(armor) {
		dmg = int(inst.DamageBase) - int(armor)
	}
	target.Health = saturatingSubU8(target.Health, uint8(dmg))

	if def == nil || len(def.CollisionScript) == 0 {
		return nil
	}
	ctx := &spawnContext{inst: inst, def: def, character: target, rng: rng, frame: frame}
	m := vm.New(def.Args)
	_, _ = m.Execute(def.CollisionScript, ctx)
	return ctx.pendingSpawns
}

func saturatingSubU8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}
