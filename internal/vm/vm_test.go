package vm

import (
	"testing"

	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/stretchr/testify/require"
)

// mockContext is a minimal Context implementation for opcode-level tests;
// it records calls rather than modeling a real character/spawn/status.
type mockContext struct {
	energyRequirement uint8
	currentEnergy     uint8
	onCooldown        bool
	randomValue       uint8
	locked            bool
	unlocked          bool
	energyCostApplied bool
	durationApplied   bool
	spawned           []uint8
	spawnedVars       [][4]uint8
	logs              []string
	cooldownFrames    uint16
	framesSinceUsed   fixedpoint.Fixed
	markedUsed        bool

	fixedProps map[uint8]fixedpoint.Fixed
	byteProps  map[uint8]uint8
}

func newMockContext() *mockContext {
	return &mockContext{
		fixedProps: map[uint8]fixedpoint.Fixed{},
		byteProps:  map[uint8]uint8{},
	}
}

func (c *mockContext) ReadProperty(m *Machine, varIndex int, addr uint8) {
	if v, ok := c.fixedProps[addr]; ok {
		m.SetFixedRegister(varIndex, v)
		return
	}
	if v, ok := c.byteProps[addr]; ok {
		m.WriteByteRegister(varIndex, v)
	}
}

func (c *mockContext) WriteProperty(m *Machine, addr uint8, varIndex int) {
	c.byteProps[addr] = m.ReadByteRegister(varIndex)
}

func (c *mockContext) EnergyRequirement() uint8 { return c.energyRequirement }
func (c *mockContext) CurrentEnergy() uint8     { return c.currentEnergy }
func (c *mockContext) IsOnCooldown() bool       { return c.onCooldown }
func (c *mockContext) RandomU8() uint8          { return c.randomValue }
func (c *mockContext) LockAction()              { c.locked = true }
func (c *mockContext) UnlockAction()            { c.unlocked = true }
func (c *mockContext) ApplyEnergyCost()         { c.energyCostApplied = true }
func (c *mockContext) ApplyDuration()           { c.durationApplied = true }
func (c *mockContext) CreateSpawn(id uint8, vars *[4]uint8) {
	c.spawned = append(c.spawned, id)
	if vars != nil {
		c.spawnedVars = append(c.spawnedVars, *vars)
	} else {
		c.spawnedVars = append(c.spawnedVars, [4]uint8{})
	}
}
func (c *mockContext) LogDebug(msg string)                      { c.logs = append(c.logs, msg) }
func (c *mockContext) CooldownFrames() uint16                   { return c.cooldownFrames }
func (c *mockContext) FramesSinceLastUsed() fixedpoint.Fixed    { return c.framesSinceUsed }
func (c *mockContext) MarkLastUsed()                            { c.markedUsed = true }

func TestExitSetsFlag(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	flag, err := m.Execute([]byte{byte(OpExit), 7}, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(7), flag)
}

func TestAssignByteAndByteArithmetic(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	script := []byte{
		byte(OpAssignByte), 0, 10,
		byte(OpAssignByte), 1, 5,
		byte(OpAddByte), 2, 0, 1,
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(15), m.Vars[2])
}

func TestByteArithmeticSaturatesAndHandlesDivZero(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	script := []byte{
		byte(OpAssignByte), 0, 250,
		byte(OpAssignByte), 1, 20,
		byte(OpAddByte), 2, 0, 1, // saturates at 255
		byte(OpAssignByte), 3, 0,
		byte(OpDivByte), 4, 0, 3, // div by zero -> 255
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(255), m.Vars[2])
	require.Equal(t, uint8(255), m.Vars[4])
}

func TestFixedArithmetic(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	script := []byte{
		byte(OpAssignFixed), 0, 10, 1,
		byte(OpAssignFixed), 1, 3, 1,
		byte(OpAdd), 2, 0, 1,
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, fixedpoint.FromInt(13), m.Fixed[2])
}

func TestExitIfNoEnergyTerminates(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	ctx.energyRequirement = 10
	ctx.currentEnergy = 5
	script := []byte{
		byte(OpExitIfNoEnergy), 9,
		byte(OpAssignByte), 0, 1, // should not execute
	}
	flag, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(9), flag)
	require.Equal(t, uint8(0), m.Vars[0])
}

func TestGotoOutOfRangeIsFault(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	_, err := m.Execute([]byte{byte(OpGoto), 200}, ctx)
	require.Error(t, err)
}

func TestInvalidOpcodeIsFault(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	_, err := m.Execute([]byte{250}, ctx)
	require.Error(t, err)
}

func TestReadArgCopiesArgument(t *testing.T) {
	args := [8]uint8{}
	args[2] = 42
	m := New(args)
	ctx := newMockContext()
	script := []byte{
		byte(OpReadArg), 0, 2,
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(42), m.Vars[0])
}

func TestSpawnWithVarsCopiesFourVars(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	script := []byte{
		byte(OpAssignByte), 0, 9, // spawn id var
		byte(OpAssignByte), 1, 1,
		byte(OpAssignByte), 2, 2,
		byte(OpAssignByte), 3, 3,
		byte(OpAssignByte), 4, 4,
		byte(OpSpawnWithVars), 0, 1, 2, 3, 4,
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, []uint8{9}, ctx.spawned)
	require.Equal(t, [4]uint8{1, 2, 3, 4}, ctx.spawnedVars[0])
}

func TestCooldownOpcodes(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	ctx.cooldownFrames = 60
	ctx.framesSinceUsed = fixedpoint.Max
	ctx.onCooldown = true
	script := []byte{
		byte(OpReadActionCooldown), 0,
		byte(OpReadActionLastUsed), 1,
		byte(OpIsActionOnCooldown), 0,
		byte(OpWriteActionLastUsed),
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, fixedpoint.FromInt(60), m.Fixed[0])
	require.Equal(t, fixedpoint.Max, m.Fixed[1])
	require.Equal(t, uint8(1), m.Vars[0])
	require.True(t, ctx.markedUsed)
}

func TestReadWriteProp(t *testing.T) {
	m := New([8]uint8{})
	ctx := newMockContext()
	script := []byte{
		byte(OpAssignByte), 0, 77,
		byte(OpWriteProp), AddrCharacterHealth, 0,
		byte(OpReadProp), 1, AddrCharacterHealth,
		byte(OpExit), 0,
	}
	_, err := m.Execute(script, ctx)
	require.NoError(t, err)
	require.Equal(t, uint8(77), m.Vars[1])
}
