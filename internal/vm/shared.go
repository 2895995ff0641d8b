package vm

import "github.com/robotmasters/engine/internal/entity"

// The functions below are shared property accessors for the address
// ranges common to every entity-bearing context (character core,
// collision flags, facing/gravity, armor). Each is a switch over the
// address, written once here instead of once per context; each context
// package (behavior, spawn, status) layers its own small,
// context-specific address range on top by trying these first and
// falling back to its own switch. There is no lookup table keyed by
// (context, address).

// ReadEntityCoreProperty handles the address ranges common to any
// EntityCore (position, velocity, size, collision flags, facing,
// gravity). It reports whether addr was recognized.
func ReadEntityCoreProperty(core *entity.EntityCore, addr uint8, m *Machine, varIndex int) bool {
	switch addr {
	case AddrCharacterID, AddrSpawnCoreID:
		m.WriteByteRegister(varIndex, core.ID)
	case AddrCharacterGroup:
		m.WriteByteRegister(varIndex, core.Group)
	case AddrCharacterPosX, AddrSpawnCorePosX:
		m.SetFixedRegister(varIndex, core.Pos.X)
	case AddrCharacterPosY, AddrSpawnCorePosY:
		m.SetFixedRegister(varIndex, core.Pos.Y)
	case AddrCharacterVelX, AddrSpawnCoreVelX:
		m.SetFixedRegister(varIndex, core.Vel.X)
	case AddrCharacterVelY, AddrSpawnCoreVelY:
		m.SetFixedRegister(varIndex, core.Vel.Y)
	case AddrCharacterWidth:
		m.WriteByteRegister(varIndex, core.Width)
	case AddrCharacterHeight:
		m.WriteByteRegister(varIndex, core.Height)
	case AddrCollisionTop:
		m.WriteByteRegister(varIndex, boolToByte(core.Collision.Top))
	case AddrCollisionRight:
		m.WriteByteRegister(varIndex, boolToByte(core.Collision.Right))
	case AddrCollisionBottom:
		m.WriteByteRegister(varIndex, boolToByte(core.Collision.Bottom))
	case AddrCollisionLeft:
		m.WriteByteRegister(varIndex, boolToByte(core.Collision.Left))
	case AddrFacing:
		m.SetFixedRegister(varIndex, core.FacingFixed())
	case AddrGravityDir:
		m.SetFixedRegister(varIndex, core.GravityFixed())
	default:
		return false
	}
	return true
}

// WriteEntityCoreProperty is the write-side counterpart of
// ReadEntityCoreProperty. Position/size/id are read-only from script
// (the engine's physics integrator owns them); velocity, collision
// flags, and facing/gravity are script-writable.
func WriteEntityCoreProperty(core *entity.EntityCore, addr uint8, m *Machine, varIndex int) bool {
	switch addr {
	case AddrCharacterVelX, AddrSpawnCoreVelX:
		core.Vel.X = m.FixedRegister(varIndex)
	case AddrCharacterVelY, AddrSpawnCoreVelY:
		core.Vel.Y = m.FixedRegister(varIndex)
	case AddrCollisionTop:
		core.Collision.Top = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionRight:
		core.Collision.Right = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionBottom:
		core.Collision.Bottom = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionLeft:
		core.Collision.Left = m.ReadByteRegister(varIndex) != 0
	case AddrFacing:
		core.SetFacingFixed(m.FixedRegister(varIndex))
	case AddrGravityDir:
		core.SetGravityFixed(m.FixedRegister(varIndex))
	default:
		return false
	}
	return true
}

// ReadCharacterProperty handles the character-only extensions to the
// entity core: health/energy/armor/locked-action-id/status-effect-count.
func ReadCharacterProperty(c *entity.Character, addr uint8, m *Machine, varIndex int) bool {
	if e, ok := ArmorElementFromAddress(addr); ok {
		m.WriteByteRegister(varIndex, c.GetArmor(entity.Element(e)))
		return true
	}
	switch addr {
	case AddrCharacterHealth:
		m.WriteByteRegister(varIndex, c.Health)
	case AddrCharacterEnergy:
		m.WriteByteRegister(varIndex, c.Energy)
	case AddrCharacterEnergyCap:
		m.WriteByteRegister(varIndex, c.EnergyCap)
	case AddrCharacterEnergyRegen:
		m.WriteByteRegister(varIndex, c.EnergyRegen)
	case AddrCharacterEnergyRegenRate:
		m.WriteByteRegister(varIndex, c.EnergyRegenRate)
	case AddrCharacterEnergyCharge:
		m.WriteByteRegister(varIndex, c.EnergyCharge)
	case AddrCharacterEnergyChargeRate:
		m.WriteByteRegister(varIndex, c.EnergyChargeRate)
	case AddrCharacterLockedActionID:
		m.WriteByteRegister(varIndex, c.LockedActionID)
	case AddrStatusEffectCount:
		m.WriteByteRegister(varIndex, uint8(len(c.StatusEffects)))
	default:
		return false
	}
	return true
}

// WriteCharacterProperty is the write-side counterpart. Health, armor,
// and status-effect count are read-only from script (damage/healing and
// status application are engine-driven, not opcode-driven); the rest are
// script-writable.
func WriteCharacterProperty(c *entity.Character, addr uint8, m *Machine, varIndex int) bool {
	switch addr {
	case AddrCharacterEnergy:
		c.Energy = m.ReadByteRegister(varIndex)
	case AddrCharacterEnergyCap:
		c.EnergyCap = m.ReadByteRegister(varIndex)
	case AddrCharacterEnergyRegen:
		c.EnergyRegen = m.ReadByteRegister(varIndex)
	case AddrCharacterEnergyRegenRate:
		c.EnergyRegenRate = m.ReadByteRegister(varIndex)
	case AddrCharacterEnergyCharge:
		c.EnergyCharge = m.ReadByteRegister(varIndex)
	case AddrCharacterEnergyChargeRate:
		c.EnergyChargeRate = m.ReadByteRegister(varIndex)
	case AddrCharacterLockedActionID:
		c.LockedActionID = m.ReadByteRegister(varIndex)
	default:
		return false
	}
	return true
}

// ReadArgsProperty handles the repeated "8 args
// starting at a base address" pattern shared by action/condition/status
// effect/spawn definitions.
func ReadArgsProperty(args []uint8, base, addr uint8, m *Machine, varIndex int) bool {
	if addr < base || int(addr-base) >= len(args) {
		return false
	}
	m.WriteByteRegister(varIndex, args[addr-base])
	return true
}

// ReadSpawnCoreProperty and WriteSpawnCoreProperty handle a spawn
// instance's own core address range (0x52-0x58) plus the generic
// collision/facing/gravity addresses, for its own entity. This is
// deliberately separate from ReadEntityCoreProperty/WriteEntityCoreProperty:
// those combine the character and spawn-core address aliases into single
// case arms, which is fine when only one entity is in scope (the behavior
// package's character context) but would be ambiguous for a spawn
// context, which must also expose its owner character's extension fields
// (health/energy/armor) through the separate character-address family
// without those addresses being mistaken for its own core.
func ReadSpawnCoreProperty(inst *entity.SpawnInstance, addr uint8, m *Machine, varIndex int) bool {
	switch addr {
	case AddrSpawnCoreDamageBase:
		m.WriteByteRegister(varIndex, inst.DamageBase)
	case AddrSpawnCoreID:
		m.WriteByteRegister(varIndex, inst.Core.ID)
	case AddrSpawnCoreOwnerID:
		m.WriteByteRegister(varIndex, inst.OwnerID)
	case AddrSpawnCorePosX:
		m.SetFixedRegister(varIndex, inst.Core.Pos.X)
	case AddrSpawnCorePosY:
		m.SetFixedRegister(varIndex, inst.Core.Pos.Y)
	case AddrSpawnCoreVelX:
		m.SetFixedRegister(varIndex, inst.Core.Vel.X)
	case AddrSpawnCoreVelY:
		m.SetFixedRegister(varIndex, inst.Core.Vel.Y)
	case AddrCollisionTop:
		m.WriteByteRegister(varIndex, boolToByte(inst.Core.Collision.Top))
	case AddrCollisionRight:
		m.WriteByteRegister(varIndex, boolToByte(inst.Core.Collision.Right))
	case AddrCollisionBottom:
		m.WriteByteRegister(varIndex, boolToByte(inst.Core.Collision.Bottom))
	case AddrCollisionLeft:
		m.WriteByteRegister(varIndex, boolToByte(inst.Core.Collision.Left))
	case AddrFacing:
		m.SetFixedRegister(varIndex, inst.Core.FacingFixed())
	case AddrGravityDir:
		m.SetFixedRegister(varIndex, inst.Core.GravityFixed())
	default:
		return false
	}
	return true
}

func WriteSpawnCoreProperty(inst *entity.SpawnInstance, addr uint8, m *Machine, varIndex int) bool {
	switch addr {
	case AddrSpawnCoreVelX:
		inst.Core.Vel.X = m.FixedRegister(varIndex)
	case AddrSpawnCoreVelY:
		inst.Core.Vel.Y = m.FixedRegister(varIndex)
	case AddrCollisionTop:
		inst.Core.Collision.Top = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionRight:
		inst.Core.Collision.Right = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionBottom:
		inst.Core.Collision.Bottom = m.ReadByteRegister(varIndex) != 0
	case AddrCollisionLeft:
		inst.Core.Collision.Left = m.ReadByteRegister(varIndex) != 0
	case AddrFacing:
		inst.Core.SetFacingFixed(m.FixedRegister(varIndex))
	case AddrGravityDir:
		inst.Core.SetGravityFixed(m.FixedRegister(varIndex))
	default:
		return false
	}
	return true
}
