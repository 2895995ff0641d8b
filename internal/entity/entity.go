// Package entity defines the runtime entity model: the common EntityCore
// shared by characters and spawns, the mutable instance types, and the
// immutable definition tables that describe them.
package entity

import "github.com/robotmasters/engine/internal/fixedpoint"

// NoID is the sentinel used for "no reference" across id fields (action,
// condition, spawn, status-effect, locked-action ids).
const NoID uint8 = 0xFF

// NeverUsed is the action-last-used sentinel meaning "never executed".
const NeverUsed uint16 = 0xFFFF

// Permanent is the status-effect/duration sentinel meaning "never expires".
const Permanent uint16 = 0xFFFF

// Element is the damage/resistance element a spawn or armor slot carries.
// Nine values, matching the property address book's armor byte range
// (0x40-0x48): the pre-distillation source's Element enum only defined 8
// values and is missing Acid; the armor address table is authoritative.
type Element uint8

const (
	ElementPunct Element = iota
	ElementBlast
	ElementForce
	ElementSever
	ElementHeat
	ElementCryo
	ElementJolt
	ElementAcid
	ElementVirus
)

// ElementCount is the number of elements, and the width of a Character's
// armor array.
const ElementCount = 9

// ElementFromByte converts a raw byte into an Element, reporting whether it
// was in range.
func ElementFromByte(v uint8) (Element, bool) {
	if v >= ElementCount {
		return 0, false
	}
	return Element(v), true
}

// CollisionFlags are the four axis-aligned collision sides.
type CollisionFlags struct {
	Top, Right, Bottom, Left bool
}

// EntityCore is the state shared by every runtime entity.
type EntityCore struct {
	ID         uint8
	Group      uint8
	Pos        fixedpoint.Vec2
	Vel        fixedpoint.Vec2
	Width      uint8
	Height     uint8
	Collision  CollisionFlags
	Facing     uint8 // 0 left, 1 right
	GravityDir uint8 // 0 upward, 1 downward
}

// NewEntityCore constructs a core with the reference defaults (16x16,
// all collision sides enabled, facing right, gravity downward).
func NewEntityCore(id, group uint8) EntityCore {
	return EntityCore{
		ID:         id,
		Group:      group,
		Width:      16,
		Height:     16,
		Collision:  CollisionFlags{Top: true, Right: true, Bottom: true, Left: true},
		Facing:     1,
		GravityDir: 1,
	}
}

// FacingFixed returns the facing as exactly -1 or +1.
func (c EntityCore) FacingFixed() fixedpoint.Fixed {
	if c.Facing == 0 {
		return fixedpoint.FromInt(-1)
	}
	return fixedpoint.FromInt(1)
}

// SetFacingFixed sets facing from a Fixed direction (negative => left).
func (c *EntityCore) SetFacingFixed(v fixedpoint.Fixed) {
	if v.IsNegative() {
		c.Facing = 0
	} else {
		c.Facing = 1
	}
}

// GravityFixed returns gravity direction as exactly -1 or +1.
func (c EntityCore) GravityFixed() fixedpoint.Fixed {
	if c.GravityDir == 0 {
		return fixedpoint.FromInt(-1)
	}
	return fixedpoint.FromInt(1)
}

// SetGravityFixed sets gravity direction from a Fixed direction.
func (c *EntityCore) SetGravityFixed(v fixedpoint.Fixed) {
	if v.IsNegative() {
		c.GravityDir = 0
	} else {
		c.GravityDir = 1
	}
}

// BehaviorEntry pairs a condition id with the action it gates.
type BehaviorEntry struct {
	ConditionID uint8
	ActionID    uint8
}

// Character is a programmable fighting character.
type Character struct {
	Core             EntityCore
	Health           uint8
	Energy           uint8
	EnergyCap        uint8
	Armor            [ElementCount]uint8
	EnergyRegen      uint8
	EnergyRegenRate  uint8
	EnergyCharge     uint8
	EnergyChargeRate uint8
	Behaviors        []BehaviorEntry
	LockedActionID   uint8 // NoID when unlocked
	StatusEffects    []StatusEffectInstance
	ActionLastUsed   []uint16 // parallel to Behaviors, sentinel NeverUsed
	ActionState      ActionInstanceState
}

// ActionInstanceState is the persistent per-character scratch storage
// backing the action-instance property range (vars/fixed/remaining
// duration). It survives across frames while an action holds the lock,
// letting a locked script accumulate state (e.g. a charge-up timer) that
// the VM's own register file cannot, since registers reset every script
// invocation.
type ActionInstanceState struct {
	Vars              [8]uint8
	Fixed             [4]fixedpoint.Fixed
	RemainingDuration uint16
}

// NewCharacter constructs a character with reference defaults: full health
// and energy, baseline armor, no behaviors, no lock.
func NewCharacter(id, group uint8) *Character {
	c := &Character{
		Core:           NewEntityCore(id, group),
		Health:         100,
		Energy:         100,
		EnergyCap:      100,
		LockedActionID: NoID,
	}
	for i := range c.Armor {
		c.Armor[i] = 100
	}
	return c
}

func (c *Character) GetArmor(e Element) uint8    { return c.Armor[e] }
func (c *Character) SetArmor(e Element, v uint8) { c.Armor[e] = v }

// SpawnRequest is a pending spawn creation enqueued by a behavior, spawn,
// or status-effect script. Requests are collected during a frame and
// appended to the spawn-instance vector only after every existing spawn
// has been processed, so newly created spawns never act on their own
// creation frame.
type SpawnRequest struct {
	SpawnID  uint8
	OwnerID  uint8
	Position fixedpoint.Vec2
	Vars     [4]uint8
}

// SpawnInstance is a runtime projectile/effect entity.
type SpawnInstance struct {
	Core       EntityCore
	SpawnID    uint8
	OwnerID    uint8
	DamageBase uint8
	Lifespan   uint16
	Element    Element
	Vars       [4]uint8
	Fixed      [4]fixedpoint.Fixed
}

// SpawnDefinition is the immutable template for a SpawnInstance.
type SpawnDefinition struct {
	DamageBase      uint8
	HealthCap       uint8
	Duration        uint16
	HasElement      bool
	Element         Element
	Args            [8]uint8
	SpawnIDs        [4]uint8
	BehaviorScript  []byte
	CollisionScript []byte
	DespawnScript   []byte
}

// StatusEffectInstance is an active, timed modifier on a character.
type StatusEffectInstance struct {
	EffectID          uint8
	RemainingDuration uint16
	StackCount        uint8
	Vars              [4]uint8
	Fixed             [4]fixedpoint.Fixed
}

// StatusEffectDefinition is the immutable template for a status effect.
type StatusEffectDefinition struct {
	Duration     uint16
	StackLimit   uint8
	ResetOnStack bool
	Args         [8]uint8
	SpawnIDs     [4]uint8
	OnScript     []byte
	TickScript   []byte
	OffScript    []byte
}

// ConditionDefinition is a pure, read-only evaluated script gate.
type ConditionDefinition struct {
	EnergyMul fixedpoint.Fixed
	Args      [8]uint8
	SpawnIDs  [4]uint8
	Script    []byte
}

// ActionDefinition is a script that mutates character state.
type ActionDefinition struct {
	EnergyCost uint8
	Interval   uint16
	Duration   uint16
	Cooldown   uint16
	Args       [8]uint8
	SpawnIDs   [4]uint8
	Script     []byte
}
