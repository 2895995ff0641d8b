package vm

// Property addresses. Scripts address all simulation state through this
// single byte-keyed namespace; which addresses are legal, and whether
// they're writable, depends on the calling context (condition/action/
// spawn/status-effect) — see each package's Context implementation. This
// table is restated byte-for-byte from the address book this engine's
// design documents call authoritative; it must not be renumbered.
const (
	// Game state.
	AddrGameSeed     uint8 = 0x01
	AddrGameFrame    uint8 = 0x02
	AddrGameGravity  uint8 = 0x03

	// Action definition (read-only, any context that has one in scope).
	AddrActionEnergyCost uint8 = 0x04
	AddrActionInterval   uint8 = 0x05
	AddrActionDuration   uint8 = 0x06
	AddrActionCooldown   uint8 = 0x07
	AddrActionArgsBase   uint8 = 0x08 // 0x08-0x0F, 8 args

	// Condition definition.
	AddrConditionID       uint8 = 0x10
	AddrConditionEnergyMul uint8 = 0x11
	AddrConditionArgsBase uint8 = 0x12 // 0x12-0x19, 8 args

	// Status-effect definition.
	AddrStatusEffectDuration     uint8 = 0x1A
	AddrStatusEffectStackLimit   uint8 = 0x1B
	AddrStatusEffectResetOnStack uint8 = 0x1C
	AddrStatusEffectArgsBase     uint8 = 0x1D // 0x1D-0x1F, 3 args

	// Character core.
	AddrCharacterID               uint8 = 0x20
	AddrCharacterGroup            uint8 = 0x21
	AddrCharacterPosX             uint8 = 0x22
	AddrCharacterPosY             uint8 = 0x23
	AddrCharacterVelX             uint8 = 0x24
	AddrCharacterVelY             uint8 = 0x25
	AddrCharacterWidth            uint8 = 0x26
	AddrCharacterHeight           uint8 = 0x27
	AddrCharacterHealth           uint8 = 0x28
	AddrCharacterEnergy           uint8 = 0x29
	AddrCharacterEnergyCap        uint8 = 0x2A
	AddrCharacterEnergyRegen      uint8 = 0x2B
	AddrCharacterEnergyRegenRate  uint8 = 0x2C
	AddrCharacterEnergyCharge     uint8 = 0x2D
	AddrCharacterEnergyChargeRate uint8 = 0x2E
	AddrCharacterLockedActionID  uint8 = 0x2F

	// Collision flags.
	AddrCollisionTop    uint8 = 0x30
	AddrCollisionRight  uint8 = 0x31
	AddrCollisionBottom uint8 = 0x32
	AddrCollisionLeft   uint8 = 0x33

	AddrStatusEffectCount uint8 = 0x34

	// Armor, 9 elements.
	AddrArmorBase uint8 = 0x40 // 0x40-0x48

	// Entity direction.
	AddrFacing     uint8 = 0x50
	AddrGravityDir uint8 = 0x51

	// Spawn instance core.
	AddrSpawnCoreDamageBase uint8 = 0x52
	AddrSpawnCoreID         uint8 = 0x53
	AddrSpawnCoreOwnerID    uint8 = 0x54
	AddrSpawnCorePosX       uint8 = 0x55
	AddrSpawnCorePosY       uint8 = 0x56
	AddrSpawnCoreVelX       uint8 = 0x57
	AddrSpawnCoreVelY       uint8 = 0x58

	// Spawn definition.
	AddrSpawnDefDamageBase uint8 = 0x5A
	AddrSpawnDefHealthCap  uint8 = 0x5B
	AddrSpawnDefDuration   uint8 = 0x5C
	AddrSpawnDefElement    uint8 = 0x5D
	AddrSpawnDefArgsBase   uint8 = 0x5E // 0x5E-0x61, 4 args

	// Action instance.
	AddrActionInstanceVarsBase       uint8 = 0x80 // 0x80-0x87
	AddrActionInstanceFixedBase      uint8 = 0x88 // 0x88-0x8B
	AddrActionInstanceRemainingDur   uint8 = 0x8C
	AddrActionInstanceLastUsedFrame  uint8 = 0x8D

	// Condition instance.
	AddrConditionInstanceVarsBase  uint8 = 0x90 // 0x90-0x97
	AddrConditionInstanceFixedBase uint8 = 0x98 // 0x98-0x9B

	// Status-effect instance.
	AddrStatusInstanceVarsBase        uint8 = 0xA0 // 0xA0-0xA3
	AddrStatusInstanceFixedBase       uint8 = 0xA4 // 0xA4-0xA7
	AddrStatusInstanceRemainingDur    uint8 = 0xA8
	AddrStatusInstanceStackCount      uint8 = 0xA9

	// Spawn instance extra.
	AddrSpawnInstanceVarsBase  uint8 = 0xB0 // 0xB0-0xB3
	AddrSpawnInstanceFixedBase uint8 = 0xB4 // 0xB4-0xB7
	AddrSpawnInstanceLifespan  uint8 = 0xB8
	AddrSpawnInstanceElement   uint8 = 0xB9
)

// ArmorAddress returns the armor property address for element index e
// (0..8), and whether e is in range.
func ArmorAddress(e uint8) (uint8, bool) {
	if e >= 9 {
		return 0, false
	}
	return AddrArmorBase + e, true
}

// ArmorElementFromAddress is the inverse of ArmorAddress.
func ArmorElementFromAddress(addr uint8) (uint8, bool) {
	if addr < AddrArmorBase || addr > AddrArmorBase+8 {
		return 0, false
	}
	return addr - AddrArmorBase, true
}
