// Package behavior implements the per-character, per-frame behavior
// scan: condition evaluation, energy/cooldown gating, action dispatch,
// and the locked-action fast path.
package behavior

import (
	"github.com/robotmasters/engine/internal/enginelog"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
)

// ceilEnergyCost computes ceil(mul * cost), saturating into a byte. This
// is the authoritative rounding rule: the pre-distillation source
// truncates here, but the engine's design documents are explicit about
// ceiling rounding and take precedence.
func ceilEnergyCost(mul fixedpoint.Fixed, cost uint8) uint8 {
	product := mul.Mul(fixedpoint.FromInt(int16(cost)))
	whole := product.ToInt()
	if product.Frac() != 0 && product.IsPositive() {
		whole++
	}
	if whole < 0 {
		whole = 0
	}
	if whole > 255 {
		whole = 255
	}
	return uint8(whole)
}

func clampFrameDelta(delta uint32) int16 {
	if delta > 1023 {
		return 1023
	}
	return int16(delta)
}

// conditionContext evaluates a pure condition script against a character.
// Condition scripts never mutate state: WriteProperty is always a no-op.
type conditionContext struct {
	char   *entity.Character
	def    *entity.ConditionDefinition
	action *entity.ActionDefinition // paired action, for energy/cooldown queries
	rng    *prng.Generator
	frame  uint16
	lastUsed uint16
}

func (c *conditionContext) ReadProperty(m *vm.Machine, varIndex int, addr uint8) {
	if vm.ReadEntityCoreProperty(&c.char.Core, addr, m, varIndex) {
		return
	}
	if vm.ReadCharacterProperty(c.char, addr, m, varIndex) {
		return
	}
	switch {
	case addr == vm.AddrConditionID:
		return
	case addr == vm.AddrConditionEnergyMul:
		m.SetFixedRegister(varIndex, c.def.EnergyMul)
	case vm.ReadArgsProperty(c.def.Args[:], vm.AddrConditionArgsBase, addr, m, varIndex):
		return
	}
}

func (c *conditionContext) WriteProperty(*vm.Machine, uint8, int) {
	// Conditions are pure observers: every write is silently ignored.
}

func (c *conditionContext) EnergyRequirement() uint8 {
	if c.action == nil {
		return 0
	}
	return ceilEnergyCost(c.def.EnergyMul, c.action.EnergyCost)
}

func (c *conditionContext) CurrentEnergy() uint8 { return c.char.Energy }

func (c *conditionContext) IsOnCooldown() bool {
	if c.action == nil || c.lastUsed == entity.NeverUsed {
		return false
	}
	return uint32(c.frame)-uint32(c.lastUsed) < uint32(c.action.Cooldown)
}

func (c *conditionContext) RandomU8() uint8 { return c.rng.NextU8() }

func (c *conditionContext) LockAction()      {}
func (c *conditionContext) UnlockAction()    {}
func (c *conditionContext) ApplyEnergyCost() {}
func (c *conditionContext) ApplyDuration()   {}

func (c *conditionContext) CreateSpawn(uint8, *[4]uint8) {
	// Conditions are pure; a condition script that requests a spawn is
	// authored incorrectly, and the request is dropped.
}

func (c *conditionContext) LogDebug(message string) { enginelog.Debug("condition: %s", message) }

func (c *conditionContext) CooldownFrames() uint16 {
	if c.action == nil {
		return 0
	}
	return c.action.Cooldown
}

func (c *conditionContext) FramesSinceLastUsed() fixedpoint.Fixed {
	if c.lastUsed == entity.NeverUsed {
		return fixedpoint.Max
	}
	return fixedpoint.FromInt(clampFrameDelta(uint32(c.frame) - uint32(c.lastUsed)))
}

func (c *conditionContext) MarkLastUsed() {}

// actionContext executes an action script against the acting character.
// Spawns are buffered locally and flushed by the caller: on the unlocked
// path only on success (the "append any enqueued spawns ... if it returns
// 1" rule), on the locked path whenever the script did not fault,
// whatever its exit flag.
type actionContext struct {
	char          *entity.Character
	action        *entity.ActionDefinition
	condition     *entity.ConditionDefinition // nil on the locked-action fast path
	actionID      uint8
	behaviorIndex int // -1 if not tracked in the behavior list
	frame         uint16
	rng           *prng.Generator
	lastUsed      uint16

	energyDeducted bool
	pendingSpawns  []entity.SpawnRequest
}

func (a *actionContext) ReadProperty(m *vm.Machine, varIndex int, addr uint8) {
	if vm.ReadEntityCoreProperty(&a.char.Core, addr, m, varIndex) {
		return
	}
	if vm.ReadCharacterProperty(a.char, addr, m, varIndex) {
		return
	}
	switch {
	case addr == vm.AddrActionEnergyCost:
		m.WriteByteRegister(varIndex, a.action.EnergyCost)
	case addr == vm.AddrActionInterval:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(uint32(a.action.Interval))))
	case addr == vm.AddrActionDuration:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(uint32(a.action.Duration))))
	case addr == vm.AddrActionCooldown:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(uint32(a.action.Cooldown))))
	case vm.ReadArgsProperty(a.action.Args[:], vm.AddrActionArgsBase, addr, m, varIndex):
		return
	case addr >= vm.AddrActionInstanceVarsBase && addr < vm.AddrActionInstanceVarsBase+8:
		m.WriteByteRegister(varIndex, a.char.ActionState.Vars[addr-vm.AddrActionInstanceVarsBase])
	case addr >= vm.AddrActionInstanceFixedBase && addr < vm.AddrActionInstanceFixedBase+4:
		m.SetFixedRegister(varIndex, a.char.ActionState.Fixed[addr-vm.AddrActionInstanceFixedBase])
	case addr == vm.AddrActionInstanceRemainingDur:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(uint32(a.char.ActionState.RemainingDuration))))
	case addr == vm.AddrActionInstanceLastUsedFrame:
		m.SetFixedRegister(varIndex, a.FramesSinceLastUsed())
	}
}

func (a *actionContext) WriteProperty(m *vm.Machine, addr uint8, varIndex int) {
	if vm.WriteEntityCoreProperty(&a.char.Core, addr, m, varIndex) {
		return
	}
	if vm.WriteCharacterProperty(a.char, addr, m, varIndex) {
		return
	}
	switch {
	case addr >= vm.AddrActionInstanceVarsBase && addr < vm.AddrActionInstanceVarsBase+8:
		a.char.ActionState.Vars[addr-vm.AddrActionInstanceVarsBase] = m.ReadByteRegister(varIndex)
	case addr >= vm.AddrActionInstanceFixedBase && addr < vm.AddrActionInstanceFixedBase+4:
		a.char.ActionState.Fixed[addr-vm.AddrActionInstanceFixedBase] = m.FixedRegister(varIndex)
	}
}

func (a *actionContext) EnergyRequirement() uint8 {
	if a.condition == nil {
		return a.action.EnergyCost
	}
	return ceilEnergyCost(a.condition.EnergyMul, a.action.EnergyCost)
}

func (a *actionContext) CurrentEnergy() uint8 { return a.char.Energy }

func (a *actionContext) IsOnCooldown() bool {
	if a.lastUsed == entity.NeverUsed {
		return false
	}
	return uint32(a.frame)-uint32(a.lastUsed) < uint32(a.action.Cooldown)
}

func (a *actionContext) RandomU8() uint8 { return a.rng.NextU8() }

func (a *actionContext) LockAction()   { a.char.LockedActionID = a.actionID }
func (a *actionContext) UnlockAction() { a.char.LockedActionID = entity.NoID }

func (a *actionContext) ApplyEnergyCost() {
	if a.energyDeducted {
		return
	}
	cost := a.EnergyRequirement()
	if cost > a.char.Energy {
		a.char.Energy = 0
	} else {
		a.char.Energy -= cost
	}
	a.energyDeducted = true
}

func (a *actionContext) ApplyDuration() {
	a.char.ActionState.RemainingDuration = a.action.Duration
}

func (a *actionContext) CreateSpawn(spawnID uint8, vars *[4]uint8) {
	req := entity.SpawnRequest{SpawnID: spawnID, OwnerID: a.char.Core.ID, Position: a.char.Core.Pos}
	if vars != nil {
		req.Vars = *vars
	}
	a.pendingSpawns = append(a.pendingSpawns, req)
}

func (a *actionContext) LogDebug(message string) { enginelog.Debug("action: %s", message) }

func (a *actionContext) CooldownFrames() uint16 { return a.action.Cooldown }

func (a *actionContext) FramesSinceLastUsed() fixedpoint.Fixed {
	if a.lastUsed == entity.NeverUsed {
		return fixedpoint.Max
	}
	return fixedpoint.FromInt(clampFrameDelta(uint32(a.frame) - uint32(a.lastUsed)))
}

func (a *actionContext) MarkLastUsed() {
	a.lastUsed = a.frame
	if a.behaviorIndex >= 0 && a.behaviorIndex < len(a.char.ActionLastUsed) {
		a.char.ActionLastUsed[a.behaviorIndex] = a.frame
	}
}
