// Package status implements the status-effect lifecycle: apply/stack,
// per-frame tick (including the built-in passive energy-regen effect),
// and expiry.
package status

import (
	"github.com/robotmasters/engine/internal/enginelog"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/prng"
	"github.com/robotmasters/engine/internal/vm"
)

func clampFrameDelta(delta uint16) int16 {
	if delta > 1023 {
		return 1023
	}
	return int16(delta)
}

// statusContext runs an on/tick/off script against the owning character
// and its single active instance. Unlike the spawn package, there's only
// ever one entity core in scope here, so the combined character/spawn
// aliases in ReadEntityCoreProperty are safe to reuse directly.
type statusContext struct {
	char  *entity.Character
	inst  *entity.StatusEffectInstance
	def   *entity.StatusEffectDefinition
	frame uint16
	rng   *prng.Generator

	pendingSpawns []entity.SpawnRequest
}

func (s *statusContext) ReadProperty(m *vm.Machine, varIndex int, addr uint8) {
	if vm.ReadEntityCoreProperty(&s.char.Core, addr, m, varIndex) {
		return
	}
	if vm.ReadCharacterProperty(s.char, addr, m, varIndex) {
		return
	}
	switch {
	case addr == vm.AddrStatusEffectDuration:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(s.def.Duration)))
	case addr == vm.AddrStatusEffectStackLimit:
		m.WriteByteRegister(varIndex, s.def.StackLimit)
	case addr == vm.AddrStatusEffectResetOnStack:
		m.WriteByteRegister(varIndex, boolToByte(s.def.ResetOnStack))
	case vm.ReadArgsProperty(s.def.Args[:], vm.AddrStatusEffectArgsBase, addr, m, varIndex):
		return
	case addr >= vm.AddrStatusInstanceVarsBase && addr < vm.AddrStatusInstanceVarsBase+4:
		m.WriteByteRegister(varIndex, s.inst.Vars[addr-vm.AddrStatusInstanceVarsBase])
	case addr >= vm.AddrStatusInstanceFixedBase && addr < vm.AddrStatusInstanceFixedBase+4:
		m.SetFixedRegister(varIndex, s.inst.Fixed[addr-vm.AddrStatusInstanceFixedBase])
	case addr == vm.AddrStatusInstanceRemainingDur:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(s.inst.RemainingDuration)))
	case addr == vm.AddrStatusInstanceStackCount:
		m.WriteByteRegister(varIndex, s.inst.StackCount)
	}
}

func (s *statusContext) WriteProperty(m *vm.Machine, addr uint8, varIndex int) {
	if vm.WriteEntityCoreProperty(&s.char.Core, addr, m, varIndex) {
		return
	}
	if vm.WriteCharacterProperty(s.char, addr, m, varIndex) {
		return
	}
	switch {
	case addr >= vm.AddrStatusInstanceVarsBase && addr < vm.AddrStatusInstanceVarsBase+4:
		s.inst.Vars[addr-vm.AddrStatusInstanceVarsBase] = m.ReadByteRegister(varIndex)
	case addr >= vm.AddrStatusInstanceFixedBase && addr < vm.AddrStatusInstanceFixedBase+4:
		s.inst.Fixed[addr-vm.AddrStatusInstanceFixedBase] = m.FixedRegister(varIndex)
	case addr == vm.AddrStatusInstanceStackCount:
		s.inst.StackCount = m.ReadByteRegister(varIndex)
	}
}

func (s *statusContext) EnergyRequirement() uint8 { return 0 }
func (s *statusContext) CurrentEnergy() uint8     { return s.char.Energy }
func (s *statusContext) IsOnCooldown() bool       { return false }
func (s *statusContext) RandomU8() uint8          { return s.rng.NextU8() }

// LockAction has no locked-action id to apply in this context; a status
// effect that wants to stun a character clears the lock instead via
// UnlockAction, or the behavior engine's own lock mechanism elsewhere.
func (s *statusContext) LockAction()   {}
func (s *statusContext) UnlockAction() { s.char.LockedActionID = entity.NoID }
func (s *statusContext) ApplyEnergyCost() {}

// ApplyDuration refreshes the instance's remaining duration to the
// definition's declared value, mirroring the action-context opcode's
// "realize the declared duration" meaning for this context's instance.
func (s *statusContext) ApplyDuration() {
	s.inst.RemainingDuration = s.def.Duration
}

func (s *statusContext) CreateSpawn(spawnID uint8, vars *[4]uint8) {
	req := entity.SpawnRequest{SpawnID: spawnID, OwnerID: s.char.Core.ID, Position: s.char.Core.Pos}
	if vars != nil {
		req.Vars = *vars
	}
	s.pendingSpawns = append(s.pendingSpawns, req)
}

func (s *statusContext) LogDebug(message string) { enginelog.Debug("status: %s", message) }

func (s *statusContext) CooldownFrames() uint16                { return 0 }
func (s *statusContext) FramesSinceLastUsed() fixedpoint.Fixed { return fixedpoint.Max }
func (s *statusContext) MarkLastUsed()                         {}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}
