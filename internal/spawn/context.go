// Package spawn implements the per-frame spawn-instance lifecycle:
// behavior/collision/despawn script execution, lifespan countdown, and
// collision-damage computation.
package spawn

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

// spawnContext runs a spawn's behavior, collision, or despawn script. The
// "character" in scope depends on which script is running: for behavior
// and despawn scripts it's the spawn's owner; for a collision script it's
// the struck character, since that's the reference a collision script
// actually needs to mutate (apply damage already applied by the engine,
// trigger follow-up spawns, and so on). A spawn script only ever has one
// character in scope at a time; it can still read its own owner id off
// the spawn core address (0x54) regardless of which character that is.
type spawnContext struct {
	inst      *entity.SpawnInstance
	def       *entity.SpawnDefinition
	character *entity.Character // may be nil
	rng       *prng.Generator
	frame     uint16

	pendingSpawns []entity.SpawnRequest
}

func (s *spawnContext) ReadProperty(m *vm.Machine, varIndex int, addr uint8) {
	if vm.ReadSpawnCoreProperty(s.inst, addr, m, varIndex) {
		return
	}
	switch {
	case addr == vm.AddrSpawnDefDamageBase:
		m.WriteByteRegister(varIndex, s.def.DamageBase)
	case addr == vm.AddrSpawnDefHealthCap:
		m.WriteByteRegister(varIndex, s.def.HealthCap)
	case addr == vm.AddrSpawnDefDuration:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(s.def.Duration)))
	case addr == vm.AddrSpawnDefElement:
		m.WriteByteRegister(varIndex, uint8(s.def.Element))
	case vm.ReadArgsProperty(s.def.Args[:], vm.AddrSpawnDefArgsBase, addr, m, varIndex):
		return
	case addr >= vm.AddrSpawnInstanceVarsBase && addr < vm.AddrSpawnInstanceVarsBase+4:
		m.WriteByteRegister(varIndex, s.inst.Vars[addr-vm.AddrSpawnInstanceVarsBase])
	case addr >= vm.AddrSpawnInstanceFixedBase && addr < vm.AddrSpawnInstanceFixedBase+4:
		m.SetFixedRegister(varIndex, s.inst.Fixed[addr-vm.AddrSpawnInstanceFixedBase])
	case addr == vm.AddrSpawnInstanceLifespan:
		m.SetFixedRegister(varIndex, fixedpoint.FromInt(clampFrameDelta(s.inst.Lifespan)))
	case addr == vm.AddrSpawnInstanceElement:
		m.WriteByteRegister(varIndex, uint8(s.inst.Element))
	case s.character != nil && vm.ReadEntityCoreProperty(&s.character.Core, addr, m, varIndex):
		return
	case s.character != nil && vm.ReadCharacterProperty(s.character, addr, m, varIndex):
		return
	}
}

func (s *spawnContext) WriteProperty(m *vm.Machine, addr uint8, varIndex int) {
	if vm.WriteSpawnCoreProperty(s.inst, addr, m, varIndex) {
		return
	}
	switch {
	case addr >= vm.AddrSpawnInstanceVarsBase && addr < vm.AddrSpawnInstanceVarsBase+4:
		s.inst.Vars[addr-vm.AddrSpawnInstanceVarsBase] = m.ReadByteRegister(varIndex)
	case addr >= vm.AddrSpawnInstanceFixedBase && addr < vm.AddrSpawnInstanceFixedBase+4:
		s.inst.Fixed[addr-vm.AddrSpawnInstanceFixedBase] = m.FixedRegister(varIndex)
	case s.character != nil && vm.WriteEntityCoreProperty(&s.character.Core, addr, m, varIndex):
		return
	case s.character != nil && vm.WriteCharacterProperty(s.character, addr, m, varIndex):
		return
	}
}

func (s *spawnContext) EnergyRequirement() uint8 { return 0 }

func (s *spawnContext) CurrentEnergy() uint8 {
	if s.character == nil {
		return 0
	}
	return s.character.Energy
}

func (s *spawnContext) IsOnCooldown() bool { return false }
func (s *spawnContext) RandomU8() uint8    { return s.rng.NextU8() }

func (s *spawnContext) LockAction()      {}
func (s *spawnContext) UnlockAction()    {}
func (s *spawnContext) ApplyEnergyCost() {}
func (s *spawnContext) ApplyDuration()   {}

func (s *spawnContext) CreateSpawn(spawnID uint8, vars *[4]uint8) {
	req := entity.SpawnRequest{SpawnID: spawnID, OwnerID: s.inst.OwnerID, Position: s.inst.Core.Pos}
	if vars != nil {
		req.Vars = *vars
	}
	s.pendingSpawns = append(s.pendingSpawns, req)
}

func (s *spawnContext) LogDebug(message string) { enginelog.Debug("spawn: %s", message) }

func (s *spawnContext) CooldownFrames() uint16                { return 0 }
func (s *spawnContext) FramesSinceLastUsed() fixedpoint.Fixed { return fixedpoint.Max }
func (s *spawnContext) MarkLastUsed()                         {}
