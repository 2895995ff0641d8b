package vm

import (
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/simerr"
)

// Machine is the VM's register file. One is built fresh for every script
// invocation; it is single-threaded and non-reentrant, and there is no
// call stack — scripts cannot invoke other scripts.
type Machine struct {
	pc       int
	ExitFlag uint8
	Vars     [8]uint8
	Fixed    [4]fixedpoint.Fixed
	Args     [8]uint8
	Spawns   [4]uint8
}

// New builds a register file with the given read-only arguments. Execute
// calls reset, which clears only pc/ExitFlag/Vars/Fixed; Args and Spawns
// persist across Execute calls.
func New(args [8]uint8) *Machine {
	return &Machine{Args: args}
}

func (m *Machine) reset() {
	m.pc = 0
	m.ExitFlag = 0
	m.Vars = [8]uint8{}
	m.Fixed = [4]fixedpoint.Fixed{}
}

func (m *Machine) readU8(script []byte) (uint8, error) {
	if m.pc >= len(script) {
		return 0, simerr.New(simerr.InvalidScript, "read past end of script")
	}
	v := script[m.pc]
	m.pc++
	return v, nil
}

// PC exposes the current program counter, for diagnostics.
func (m *Machine) PC() int { return m.pc }

// ReadByteRegister fetches register varIndex for ReadProp/WriteProp-style
// addressing (0-7 vars, 8-11 fixed truncated to byte via ToInt, used by
// contexts that need a byte view of a fixed register).
func (m *Machine) ReadByteRegister(varIndex int) uint8 {
	if varIndex < len(m.Vars) {
		return m.Vars[varIndex]
	}
	return uint8(m.Fixed[varIndex-len(m.Vars)].ToInt())
}

func (m *Machine) WriteByteRegister(varIndex int, v uint8) {
	if varIndex < len(m.Vars) {
		m.Vars[varIndex] = v
		return
	}
	m.Fixed[varIndex-len(m.Vars)] = fixedpoint.FromInt(int16(v))
}

// FixedRegister returns register varIndex (8-11) as a Fixed value directly,
// for property handlers that hold fixed-point state (position, velocity,
// energy multipliers, ...).
func (m *Machine) FixedRegister(varIndex int) fixedpoint.Fixed {
	if varIndex >= len(m.Vars) {
		return m.Fixed[varIndex-len(m.Vars)]
	}
	return fixedpoint.FromInt(int16(m.Vars[varIndex]))
}

// SetFixedRegister writes a Fixed value into register varIndex (vars
// registers receive the truncated byte form, matching the boundary
// conversion rule in the property address book).
func (m *Machine) SetFixedRegister(varIndex int, v fixedpoint.Fixed) {
	if varIndex >= len(m.Vars) {
		m.Fixed[varIndex-len(m.Vars)] = v
		return
	}
	m.Vars[varIndex] = uint8(v.ToInt())
}

// Execute runs script to completion (exit flag set, or program counter
// reaches the end) and returns the final exit flag.
func (m *Machine) Execute(script []byte, ctx Context) (uint8, error) {
	m.reset()
	for m.pc < len(script) && m.ExitFlag == 0 {
		if err := m.step(script, ctx); err != nil {
			return 0, err
		}
	}
	return m.ExitFlag, nil
}

func (m *Machine) step(script []byte, ctx Context) error {
	opByte, err := m.readU8(script)
	if err != nil {
		return err
	}
	op := Op(opByte)
	if !validOps[op] {
		return simerr.New(simerr.InvalidOperator, "")
	}
	return m.dispatch(op, script, ctx)
}
