package snapshot

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/simerr"
	"github.com/robotmasters/engine/internal/tilemap"
)

const (
	binaryMagic   = "RBMS" // robotmasters binary state
	binaryVersion = 1
)

// EncodeBinary writes a GameState in the engine's canonical wire format: a
// magic header, a version, then every field in a fixed order via
// encoding/binary. This is the format snapshots cross a WASM host boundary
// or an on-chain instruction in; it has no dependency on defs, since those
// travel as separate, static program data.
func EncodeBinary(g *engine.GameState) ([]byte, error) {
	snap := ToSnapshot(g)

	var buf bytes.Buffer
	buf.WriteString(binaryMagic)
	if err := binary.Write(&buf, binary.LittleEndian, uint32(binaryVersion)); err != nil {
		return nil, fmt.Errorf("writing version: %w", err)
	}

	if err := binary.Write(&buf, binary.LittleEndian, snap.Frame); err != nil {
		return nil, fmt.Errorf("writing frame: %w", err)
	}
	buf.WriteByte(snap.Status)
	if err := binary.Write(&buf, binary.LittleEndian, snap.RNGState); err != nil {
		return nil, fmt.Errorf("writing rng state: %w", err)
	}

	for _, row := range snap.Grid {
		buf.Write(row)
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(snap.Characters))); err != nil {
		return nil, fmt.Errorf("writing character count: %w", err)
	}
	for _, c := range snap.Characters {
		if err := writeCharacter(&buf, c); err != nil {
			return nil, fmt.Errorf("writing character: %w", err)
		}
	}

	if err := binary.Write(&buf, binary.LittleEndian, uint16(len(snap.Spawns))); err != nil {
		return nil, fmt.Errorf("writing spawn count: %w", err)
	}
	for _, s := range snap.Spawns {
		if err := writeSpawn(&buf, s); err != nil {
			return nil, fmt.Errorf("writing spawn: %w", err)
		}
	}

	return buf.Bytes(), nil
}

// DecodeBinary parses the canonical wire format and applies it onto g in
// place. g must already be constructed against the matching definitions.
func DecodeBinary(data []byte, g *engine.GameState) error {
	if len(data) < len(binaryMagic)+4 {
		return simerr.New(simerr.DataTooShort, "snapshot shorter than header")
	}

	r := bytes.NewReader(data)

	magic := make([]byte, len(binaryMagic))
	if _, err := io.ReadFull(r, magic); err != nil {
		return fmt.Errorf("reading magic: %w", err)
	}
	if string(magic) != binaryMagic {
		return simerr.New(simerr.InvalidBinaryData, fmt.Sprintf("bad magic %q", magic))
	}

	var version uint32
	if err := binary.Read(r, binary.LittleEndian, &version); err != nil {
		return fmt.Errorf("reading version: %w", err)
	}
	if version != binaryVersion {
		return simerr.New(simerr.InvalidBinaryData, fmt.Sprintf("unsupported snapshot version %d", version))
	}

	var snap Snapshot
	if err := binary.Read(r, binary.LittleEndian, &snap.Frame); err != nil {
		return fmt.Errorf("reading frame: %w", err)
	}
	status, err := r.ReadByte()
	if err != nil {
		return fmt.Errorf("reading status: %w", err)
	}
	snap.Status = status
	if err := binary.Read(r, binary.LittleEndian, &snap.RNGState); err != nil {
		return fmt.Errorf("reading rng state: %w", err)
	}

	snap.Grid = make([][]uint8, tilemap.Height)
	for y := 0; y < tilemap.Height; y++ {
		row := make([]uint8, tilemap.Width)
		if _, err := io.ReadFull(r, row); err != nil {
			return fmt.Errorf("reading grid row %d: %w", y, err)
		}
		snap.Grid[y] = row
	}

	var charCount uint16
	if err := binary.Read(r, binary.LittleEndian, &charCount); err != nil {
		return fmt.Errorf("reading character count: %w", err)
	}
	snap.Characters = make([]CharacterData, charCount)
	for i := range snap.Characters {
		c, err := readCharacter(r)
		if err != nil {
			return fmt.Errorf("reading character %d: %w", i, err)
		}
		snap.Characters[i] = c
	}

	var spawnCount uint16
	if err := binary.Read(r, binary.LittleEndian, &spawnCount); err != nil {
		return fmt.Errorf("reading spawn count: %w", err)
	}
	snap.Spawns = make([]SpawnData, spawnCount)
	for i := range snap.Spawns {
		s, err := readSpawn(r)
		if err != nil {
			return fmt.Errorf("reading spawn %d: %w", i, err)
		}
		snap.Spawns[i] = s
	}

	return ApplyTo(g, snap)
}

func writeCore(buf *bytes.Buffer, c CoreData) error {
	buf.WriteByte(c.ID)
	buf.WriteByte(c.Group)
	for _, v := range []int16{c.PosX, c.PosY, c.VelX, c.VelY} {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	buf.WriteByte(c.Width)
	buf.WriteByte(c.Height)
	buf.WriteByte(boolToByte(c.CollisionTop))
	buf.WriteByte(boolToByte(c.CollisionRight))
	buf.WriteByte(boolToByte(c.CollisionBot))
	buf.WriteByte(boolToByte(c.CollisionLeft))
	buf.WriteByte(c.Facing)
	buf.WriteByte(c.GravityDir)
	return nil
}

func readCore(r *bytes.Reader) (CoreData, error) {
	var c CoreData
	var err error
	if c.ID, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.Group, err = r.ReadByte(); err != nil {
		return c, err
	}
	vals := make([]int16, 4)
	for i := range vals {
		if err := binary.Read(r, binary.LittleEndian, &vals[i]); err != nil {
			return c, err
		}
	}
	c.PosX, c.PosY, c.VelX, c.VelY = vals[0], vals[1], vals[2], vals[3]
	if c.Width, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.Height, err = r.ReadByte(); err != nil {
		return c, err
	}
	flags := make([]byte, 4)
	if _, err := io.ReadFull(r, flags); err != nil {
		return c, err
	}
	c.CollisionTop, c.CollisionRight, c.CollisionBot, c.CollisionLeft =
		flags[0] != 0, flags[1] != 0, flags[2] != 0, flags[3] != 0
	if c.Facing, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.GravityDir, err = r.ReadByte(); err != nil {
		return c, err
	}
	return c, nil
}

func writeCharacter(buf *bytes.Buffer, c CharacterData) error {
	if err := writeCore(buf, c.Core); err != nil {
		return err
	}
	buf.WriteByte(c.Health)
	buf.WriteByte(c.Energy)
	buf.WriteByte(c.EnergyCap)
	buf.Write(c.Armor[:])
	buf.WriteByte(c.EnergyRegen)
	buf.WriteByte(c.EnergyRegenRate)
	buf.WriteByte(c.EnergyCharge)
	buf.WriteByte(c.EnergyChargeRate)

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(c.Behaviors))); err != nil {
		return err
	}
	for _, b := range c.Behaviors {
		buf.WriteByte(b.ConditionID)
		buf.WriteByte(b.ActionID)
	}
	buf.WriteByte(c.LockedActionID)

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(c.ActionLastUsed))); err != nil {
		return err
	}
	for _, v := range c.ActionLastUsed {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}

	buf.Write(c.ActionVars[:])
	for _, v := range c.ActionFixed {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	if err := binary.Write(buf, binary.LittleEndian, c.ActionRemainingDuration); err != nil {
		return err
	}

	if err := binary.Write(buf, binary.LittleEndian, uint16(len(c.StatusEffects))); err != nil {
		return err
	}
	for _, s := range c.StatusEffects {
		if err := writeStatusEffect(buf, s); err != nil {
			return err
		}
	}
	return nil
}

func readCharacter(r *bytes.Reader) (CharacterData, error) {
	var c CharacterData
	var err error
	if c.Core, err = readCore(r); err != nil {
		return c, err
	}
	if c.Health, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.Energy, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.EnergyCap, err = r.ReadByte(); err != nil {
		return c, err
	}
	if _, err := io.ReadFull(r, c.Armor[:]); err != nil {
		return c, err
	}
	if c.EnergyRegen, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.EnergyRegenRate, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.EnergyCharge, err = r.ReadByte(); err != nil {
		return c, err
	}
	if c.EnergyChargeRate, err = r.ReadByte(); err != nil {
		return c, err
	}

	var behaviorCount uint16
	if err := binary.Read(r, binary.LittleEndian, &behaviorCount); err != nil {
		return c, err
	}
	c.Behaviors = make([]BehaviorData, behaviorCount)
	for i := range c.Behaviors {
		cond, err := r.ReadByte()
		if err != nil {
			return c, err
		}
		action, err := r.ReadByte()
		if err != nil {
			return c, err
		}
		c.Behaviors[i] = BehaviorData{ConditionID: cond, ActionID: action}
	}
	if c.LockedActionID, err = r.ReadByte(); err != nil {
		return c, err
	}

	var lastUsedCount uint16
	if err := binary.Read(r, binary.LittleEndian, &lastUsedCount); err != nil {
		return c, err
	}
	c.ActionLastUsed = make([]uint16, lastUsedCount)
	for i := range c.ActionLastUsed {
		if err := binary.Read(r, binary.LittleEndian, &c.ActionLastUsed[i]); err != nil {
			return c, err
		}
	}

	if _, err := io.ReadFull(r, c.ActionVars[:]); err != nil {
		return c, err
	}
	for i := range c.ActionFixed {
		if err := binary.Read(r, binary.LittleEndian, &c.ActionFixed[i]); err != nil {
			return c, err
		}
	}
	if err := binary.Read(r, binary.LittleEndian, &c.ActionRemainingDuration); err != nil {
		return c, err
	}

	var statusCount uint16
	if err := binary.Read(r, binary.LittleEndian, &statusCount); err != nil {
		return c, err
	}
	c.StatusEffects = make([]StatusEffectData, statusCount)
	for i := range c.StatusEffects {
		s, err := readStatusEffect(r)
		if err != nil {
			return c, err
		}
		c.StatusEffects[i] = s
	}
	return c, nil
}

func writeStatusEffect(buf *bytes.Buffer, s StatusEffectData) error {
	buf.WriteByte(s.EffectID)
	if err := binary.Write(buf, binary.LittleEndian, s.RemainingDuration); err != nil {
		return err
	}
	buf.WriteByte(s.StackCount)
	buf.Write(s.Vars[:])
	for _, v := range s.Fixed {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readStatusEffect(r *bytes.Reader) (StatusEffectData, error) {
	var s StatusEffectData
	var err error
	if s.EffectID, err = r.ReadByte(); err != nil {
		return s, err
	}
	if err := binary.Read(r, binary.LittleEndian, &s.RemainingDuration); err != nil {
		return s, err
	}
	if s.StackCount, err = r.ReadByte(); err != nil {
		return s, err
	}
	if _, err := io.ReadFull(r, s.Vars[:]); err != nil {
		return s, err
	}
	for i := range s.Fixed {
		if err := binary.Read(r, binary.LittleEndian, &s.Fixed[i]); err != nil {
			return s, err
		}
	}
	return s, nil
}

func writeSpawn(buf *bytes.Buffer, s SpawnData) error {
	if err := writeCore(buf, s.Core); err != nil {
		return err
	}
	buf.WriteByte(s.SpawnID)
	buf.WriteByte(s.OwnerID)
	buf.WriteByte(s.DamageBase)
	if err := binary.Write(buf, binary.LittleEndian, s.Lifespan); err != nil {
		return err
	}
	buf.WriteByte(s.Element)
	buf.Write(s.Vars[:])
	for _, v := range s.Fixed {
		if err := binary.Write(buf, binary.LittleEndian, v); err != nil {
			return err
		}
	}
	return nil
}

func readSpawn(r *bytes.Reader) (SpawnData, error) {
	var s SpawnData
	var err error
	if s.Core, err = readCore(r); err != nil {
		return s, err
	}
	if s.SpawnID, err = r.ReadByte(); err != nil {
		return s, err
	}
	if s.OwnerID, err = r.ReadByte(); err != nil {
		return s, err
	}
	if s.DamageBase, err = r.ReadByte(); err != nil {
		return s, err
	}
	if err := binary.Read(r, binary.LittleEndian, &s.Lifespan); err != nil {
		return s, err
	}
	if s.Element, err = r.ReadByte(); err != nil {
		return s, err
	}
	if _, err := io.ReadFull(r, s.Vars[:]); err != nil {
		return s, err
	}
	for i := range s.Fixed {
		if err := binary.Read(r, binary.LittleEndian, &s.Fixed[i]); err != nil {
			return s, err
		}
	}
	return s, nil
}

func boolToByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
