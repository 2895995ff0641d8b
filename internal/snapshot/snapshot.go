// Package snapshot serializes a GameState to and from a compact,
// deterministic representation so a match can be paused, shipped across a
// process boundary (WASM host, on-chain instruction), or rewound for
// debugging. EncodeBinary/DecodeBinary is the canonical wire format;
// EncodeJSON/DecodeJSON and EncodeCBOR/DecodeCBOR are convenience formats
// for host tooling that never touch the simulation's own state transitions.
package snapshot

import (
	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/entity"
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/tilemap"
)

// Snapshot is the serializable mirror of a GameState. Definition tables are
// deliberately excluded: they are static program data supplied by the host
// at construction, not per-match state, so shipping them on every snapshot
// would be redundant. Fixed-point values travel as their raw int16, not as
// floats, so every encoding round-trips bit-for-bit.
type Snapshot struct {
	Frame      uint16          `json:"frame" cbor:"frame"`
	Status     uint8           `json:"status" cbor:"status"`
	RNGState   uint16          `json:"rng_state" cbor:"rng_state"`
	Grid       [][]uint8       `json:"grid" cbor:"grid"`
	Characters []CharacterData `json:"characters" cbor:"characters"`
	Spawns     []SpawnData     `json:"spawns" cbor:"spawns"`
}

// CoreData is the serializable EntityCore shared by characters and spawns.
type CoreData struct {
	ID             uint8 `json:"id" cbor:"id"`
	Group          uint8 `json:"group" cbor:"group"`
	PosX           int16 `json:"pos_x" cbor:"pos_x"`
	PosY           int16 `json:"pos_y" cbor:"pos_y"`
	VelX           int16 `json:"vel_x" cbor:"vel_x"`
	VelY           int16 `json:"vel_y" cbor:"vel_y"`
	Width          uint8 `json:"width" cbor:"width"`
	Height         uint8 `json:"height" cbor:"height"`
	CollisionTop   bool  `json:"collision_top" cbor:"collision_top"`
	CollisionRight bool  `json:"collision_right" cbor:"collision_right"`
	CollisionBot   bool  `json:"collision_bottom" cbor:"collision_bottom"`
	CollisionLeft  bool  `json:"collision_left" cbor:"collision_left"`
	Facing         uint8 `json:"facing" cbor:"facing"`
	GravityDir     uint8 `json:"gravity_dir" cbor:"gravity_dir"`
}

// BehaviorData pairs a condition id with the action it gates.
type BehaviorData struct {
	ConditionID uint8 `json:"condition_id" cbor:"condition_id"`
	ActionID    uint8 `json:"action_id" cbor:"action_id"`
}

// StatusEffectData is a serializable active status-effect instance.
type StatusEffectData struct {
	EffectID          uint8    `json:"effect_id" cbor:"effect_id"`
	RemainingDuration uint16   `json:"remaining_duration" cbor:"remaining_duration"`
	StackCount        uint8    `json:"stack_count" cbor:"stack_count"`
	Vars              [4]uint8 `json:"vars" cbor:"vars"`
	Fixed             [4]int16 `json:"fixed" cbor:"fixed"`
}

// CharacterData is a serializable Character.
type CharacterData struct {
	Core                    CoreData           `json:"core" cbor:"core"`
	Health                  uint8              `json:"health" cbor:"health"`
	Energy                  uint8              `json:"energy" cbor:"energy"`
	EnergyCap               uint8              `json:"energy_cap" cbor:"energy_cap"`
	Armor                   [9]uint8           `json:"armor" cbor:"armor"`
	EnergyRegen             uint8              `json:"energy_regen" cbor:"energy_regen"`
	EnergyRegenRate         uint8              `json:"energy_regen_rate" cbor:"energy_regen_rate"`
	EnergyCharge            uint8              `json:"energy_charge" cbor:"energy_charge"`
	EnergyChargeRate        uint8              `json:"energy_charge_rate" cbor:"energy_charge_rate"`
	Behaviors               []BehaviorData     `json:"behaviors" cbor:"behaviors"`
	LockedActionID          uint8              `json:"locked_action_id" cbor:"locked_action_id"`
	ActionLastUsed          []uint16           `json:"action_last_used" cbor:"action_last_used"`
	ActionVars              [8]uint8           `json:"action_vars" cbor:"action_vars"`
	ActionFixed             [4]int16           `json:"action_fixed" cbor:"action_fixed"`
	ActionRemainingDuration uint16             `json:"action_remaining_duration" cbor:"action_remaining_duration"`
	StatusEffects           []StatusEffectData `json:"status_effects" cbor:"status_effects"`
}

// SpawnData is a serializable SpawnInstance.
type SpawnData struct {
	Core       CoreData `json:"core" cbor:"core"`
	SpawnID    uint8    `json:"spawn_id" cbor:"spawn_id"`
	OwnerID    uint8    `json:"owner_id" cbor:"owner_id"`
	DamageBase uint8    `json:"damage_base" cbor:"damage_base"`
	Lifespan   uint16   `json:"lifespan" cbor:"lifespan"`
	Element    uint8    `json:"element" cbor:"element"`
	Vars       [4]uint8 `json:"vars" cbor:"vars"`
	Fixed      [4]int16 `json:"fixed" cbor:"fixed"`
}

func coreToData(c entity.EntityCore) CoreData {
	return CoreData{
		ID: c.ID, Group: c.Group,
		PosX: c.Pos.X.Raw(), PosY: c.Pos.Y.Raw(),
		VelX: c.Vel.X.Raw(), VelY: c.Vel.Y.Raw(),
		Width: c.Width, Height: c.Height,
		CollisionTop: c.Collision.Top, CollisionRight: c.Collision.Right,
		CollisionBot: c.Collision.Bottom, CollisionLeft: c.Collision.Left,
		Facing: c.Facing, GravityDir: c.GravityDir,
	}
}

func coreFromData(d CoreData) entity.EntityCore {
	return entity.EntityCore{
		ID: d.ID, Group: d.Group,
		Pos: fixedpoint.Vec2{X: fixedpoint.FromRaw(d.PosX), Y: fixedpoint.FromRaw(d.PosY)},
		Vel: fixedpoint.Vec2{X: fixedpoint.FromRaw(d.VelX), Y: fixedpoint.FromRaw(d.VelY)},
		Width: d.Width, Height: d.Height,
		Collision: entity.CollisionFlags{
			Top: d.CollisionTop, Right: d.CollisionRight,
			Bottom: d.CollisionBot, Left: d.CollisionLeft,
		},
		Facing: d.Facing, GravityDir: d.GravityDir,
	}
}

func fixedArrayToRaw(f [4]fixedpoint.Fixed) [4]int16 {
	var out [4]int16
	for i, v := range f {
		out[i] = v.Raw()
	}
	return out
}

func fixedArrayFromRaw(raw [4]int16) [4]fixedpoint.Fixed {
	var out [4]fixedpoint.Fixed
	for i, v := range raw {
		out[i] = fixedpoint.FromRaw(v)
	}
	return out
}

// ToSnapshot captures the full state of a GameState.
func ToSnapshot(g *engine.GameState) Snapshot {
	tiles := g.Grid.Tiles()
	grid := make([][]uint8, tilemap.Height)
	for y := range tiles {
		row := make([]uint8, tilemap.Width)
		copy(row, tiles[y][:])
		grid[y] = row
	}

	chars := make([]CharacterData, len(g.Characters))
	for i, c := range g.Characters {
		behaviors := make([]BehaviorData, len(c.Behaviors))
		for j, b := range c.Behaviors {
			behaviors[j] = BehaviorData{ConditionID: b.ConditionID, ActionID: b.ActionID}
		}
		lastUsed := make([]uint16, len(c.ActionLastUsed))
		copy(lastUsed, c.ActionLastUsed)
		statuses := make([]StatusEffectData, len(c.StatusEffects))
		for j, s := range c.StatusEffects {
			statuses[j] = StatusEffectData{
				EffectID: s.EffectID, RemainingDuration: s.RemainingDuration,
				StackCount: s.StackCount, Vars: s.Vars, Fixed: fixedArrayToRaw(s.Fixed),
			}
		}
		chars[i] = CharacterData{
			Core: coreToData(c.Core), Health: c.Health, Energy: c.Energy, EnergyCap: c.EnergyCap,
			Armor: c.Armor, EnergyRegen: c.EnergyRegen, EnergyRegenRate: c.EnergyRegenRate,
			EnergyCharge: c.EnergyCharge, EnergyChargeRate: c.EnergyChargeRate,
			Behaviors: behaviors, LockedActionID: c.LockedActionID, ActionLastUsed: lastUsed,
			ActionVars: c.ActionState.Vars, ActionFixed: fixedArrayToRaw(c.ActionState.Fixed),
			ActionRemainingDuration: c.ActionState.RemainingDuration, StatusEffects: statuses,
		}
	}

	spawns := make([]SpawnData, len(g.Spawns))
	for i, s := range g.Spawns {
		spawns[i] = SpawnData{
			Core: coreToData(s.Core), SpawnID: s.SpawnID, OwnerID: s.OwnerID,
			DamageBase: s.DamageBase, Lifespan: s.Lifespan, Element: uint8(s.Element),
			Vars: s.Vars, Fixed: fixedArrayToRaw(s.Fixed),
		}
	}

	return Snapshot{
		Frame: g.Frame, Status: uint8(g.Status), RNGState: g.RNG.State(),
		Grid: grid, Characters: chars, Spawns: spawns,
	}
}

// ApplyTo rebuilds a GameState's mutable fields from the snapshot in place.
// The caller supplies a GameState already constructed via engine.NewGame
// against the matching definitions, so that behavior/condition/spawn
// references in the restored state stay valid; ApplyTo overwrites its
// frame, status, RNG, tilemap and entities but leaves Defs untouched.
func ApplyTo(g *engine.GameState, snap Snapshot) error {
	grid, err := gridFromData(snap.Grid)
	if err != nil {
		return err
	}

	characters := make([]*entity.Character, len(snap.Characters))
	for i, cd := range snap.Characters {
		behaviors := make([]entity.BehaviorEntry, len(cd.Behaviors))
		for j, b := range cd.Behaviors {
			behaviors[j] = entity.BehaviorEntry{ConditionID: b.ConditionID, ActionID: b.ActionID}
		}
		lastUsed := make([]uint16, len(cd.ActionLastUsed))
		copy(lastUsed, cd.ActionLastUsed)
		statuses := make([]entity.StatusEffectInstance, len(cd.StatusEffects))
		for j, s := range cd.StatusEffects {
			statuses[j] = entity.StatusEffectInstance{
				EffectID: s.EffectID, RemainingDuration: s.RemainingDuration,
				StackCount: s.StackCount, Vars: s.Vars, Fixed: fixedArrayFromRaw(s.Fixed),
			}
		}
		characters[i] = &entity.Character{
			Core: coreFromData(cd.Core), Health: cd.Health, Energy: cd.Energy, EnergyCap: cd.EnergyCap,
			Armor: cd.Armor, EnergyRegen: cd.EnergyRegen, EnergyRegenRate: cd.EnergyRegenRate,
			EnergyCharge: cd.EnergyCharge, EnergyChargeRate: cd.EnergyChargeRate,
			Behaviors: behaviors, LockedActionID: cd.LockedActionID, ActionLastUsed: lastUsed,
			ActionState: entity.ActionInstanceState{
				Vars: cd.ActionVars, Fixed: fixedArrayFromRaw(cd.ActionFixed),
				RemainingDuration: cd.ActionRemainingDuration,
			},
			StatusEffects: statuses,
		}
	}

	spawns := make([]entity.SpawnInstance, len(snap.Spawns))
	for i, sd := range snap.Spawns {
		spawns[i] = entity.SpawnInstance{
			Core: coreFromData(sd.Core), SpawnID: sd.SpawnID, OwnerID: sd.OwnerID,
			DamageBase: sd.DamageBase, Lifespan: sd.Lifespan, Element: entity.Element(sd.Element),
			Vars: sd.Vars, Fixed: fixedArrayFromRaw(sd.Fixed),
		}
	}

	g.Frame = snap.Frame
	g.Status = engine.Status(snap.Status)
	g.RNG.SetState(snap.RNGState)
	g.Grid = grid
	g.Characters = characters
	g.Spawns = spawns
	return nil
}

func gridFromData(rows [][]uint8) (*tilemap.Grid, error) {
	if len(rows) != tilemap.Height {
		return nil, invalidGrid("wrong row count")
	}
	var tiles [tilemap.Height][tilemap.Width]uint8
	for y, row := range rows {
		if len(row) != tilemap.Width {
			return nil, invalidGrid("wrong column count")
		}
		copy(tiles[y][:], row)
	}
	return tilemap.NewGrid(tiles), nil
}
