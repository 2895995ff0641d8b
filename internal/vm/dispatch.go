package vm

import (
	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/simerr"
)

func (m *Machine) dispatch(op Op, script []byte, ctx Context) error {
	switch op {
	case OpExit:
		flag, err := m.readU8(script)
		if err != nil {
			return err
		}
		m.ExitFlag = flag
		m.pc = len(script)

	case OpExitIfNoEnergy:
		flag, err := m.readU8(script)
		if err != nil {
			return err
		}
		if ctx.CurrentEnergy() < ctx.EnergyRequirement() {
			m.ExitFlag = flag
			m.pc = len(script)
		}

	case OpExitIfCooldown:
		flag, err := m.readU8(script)
		if err != nil {
			return err
		}
		if ctx.IsOnCooldown() {
			m.ExitFlag = flag
			m.pc = len(script)
		}

	case OpSkip:
		n, err := m.readU8(script)
		if err != nil {
			return err
		}
		m.pc += int(n)

	case OpGoto:
		target, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(target) >= len(script) {
			return simerr.New(simerr.InvalidScript, "goto target out of range")
		}
		m.pc = int(target)

	case OpReadProp:
		varIndex, propAddr, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if varIndex >= registerCount {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		ctx.ReadProperty(m, varIndex, propAddr)

	case OpWriteProp:
		propAddr, err := m.readU8(script)
		if err != nil {
			return err
		}
		varIndexRaw, err := m.readU8(script)
		if err != nil {
			return err
		}
		varIndex := int(varIndexRaw)
		if varIndex >= registerCount {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		ctx.WriteProperty(m, propAddr, varIndex)

	case OpAssignByte:
		idx, lit, err := m.readIdxLit(script)
		if err != nil {
			return err
		}
		if idx >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Vars[idx] = lit

	case OpAssignFixed:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		num, err := m.readU8(script)
		if err != nil {
			return err
		}
		den, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Fixed) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		n := fixedpoint.FromInt(int16(num))
		if den == 0 {
			m.Fixed[idx] = n
		} else {
			m.Fixed[idx] = n.Div(fixedpoint.FromInt(int16(den)))
		}

	case OpAssignRandom:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Vars[idx] = ctx.RandomU8()

	case OpToByte:
		toVar, fromFixed, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if toVar >= len(m.Vars) || int(fromFixed) >= len(m.Fixed) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Vars[toVar] = uint8(m.Fixed[fromFixed].ToInt())

	case OpToFixed:
		toFixed, fromVar, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if toFixed >= len(m.Fixed) || int(fromVar) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Fixed[toFixed] = fixedpoint.FromInt(int16(m.Vars[fromVar]))

	case OpAdd, OpSub, OpMul, OpDiv:
		return m.fixedArithmetic(script, op)

	case OpNegate:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Fixed) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Fixed[idx] = m.Fixed[idx].Neg()

	case OpAddByte, OpSubByte, OpMulByte, OpDivByte, OpModByte, OpWrappingAdd:
		return m.byteArithmetic(script, op)

	case OpEqual, OpNotEqual, OpLessThan, OpLessThanOrEqual:
		return m.conditional(script, op)

	case OpOr, OpAnd:
		return m.logical(script, op)

	case OpNot:
		dest, src, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if dest >= len(m.Vars) || int(src) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		if m.Vars[src] == 0 {
			m.Vars[dest] = 1
		} else {
			m.Vars[dest] = 0
		}

	case OpMin, OpMax:
		return m.utility(script, op)

	case OpLockAction:
		ctx.LockAction()

	case OpUnlockAction:
		ctx.UnlockAction()

	case OpApplyEnergyCost:
		ctx.ApplyEnergyCost()

	case OpApplyDuration:
		ctx.ApplyDuration()

	case OpSpawn:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		ctx.CreateSpawn(m.Vars[idx], nil)

	case OpSpawnWithVars:
		idIdx, err := m.readU8(script)
		if err != nil {
			return err
		}
		var vars [4]uint8
		for i := range vars {
			vi, err := m.readU8(script)
			if err != nil {
				return err
			}
			if int(vi) >= len(m.Vars) {
				return simerr.New(simerr.ScriptIndexOutOfBounds, "")
			}
			vars[i] = m.Vars[vi]
		}
		if int(idIdx) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		ctx.CreateSpawn(m.Vars[idIdx], &vars)

	case OpLogVariable:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		ctx.LogDebug(m.describeRegister(int(idx)))

	case OpReadArg:
		varIdx, argIdx, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if varIdx >= len(m.Vars) || int(argIdx) >= len(m.Args) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Vars[varIdx] = m.Args[argIdx]

	case OpReadSpawn:
		varIdx, spawnIdx, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if varIdx >= len(m.Vars) || int(spawnIdx) >= len(m.Spawns) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Vars[varIdx] = m.Spawns[spawnIdx]

	case OpWriteSpawn:
		spawnIdx, varIdx, err := m.readIdxAddr(script)
		if err != nil {
			return err
		}
		if spawnIdx >= len(m.Spawns) || int(varIdx) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Spawns[spawnIdx] = m.Vars[varIdx]

	case OpReadActionCooldown:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Fixed) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		if cd := ctx.CooldownFrames(); cd > 1023 {
			m.Fixed[idx] = fixedpoint.Max
		} else {
			m.Fixed[idx] = fixedpoint.FromInt(int16(cd))
		}

	case OpReadActionLastUsed:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Fixed) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		m.Fixed[idx] = ctx.FramesSinceLastUsed()

	case OpWriteActionLastUsed:
		ctx.MarkLastUsed()

	case OpIsActionOnCooldown:
		idx, err := m.readU8(script)
		if err != nil {
			return err
		}
		if int(idx) >= len(m.Vars) {
			return simerr.New(simerr.ScriptIndexOutOfBounds, "")
		}
		if ctx.IsOnCooldown() {
			m.Vars[idx] = 1
		} else {
			m.Vars[idx] = 0
		}

	default:
		return simerr.New(simerr.InvalidOperator, "")
	}
	return nil
}

func (m *Machine) describeRegister(idx int) string {
	if idx < len(m.Vars) {
		return "var"
	}
	return "fixed"
}

func (m *Machine) readIdxAddr(script []byte) (int, uint8, error) {
	a, err := m.readU8(script)
	if err != nil {
		return 0, 0, err
	}
	b, err := m.readU8(script)
	if err != nil {
		return 0, 0, err
	}
	return int(a), b, nil
}

func (m *Machine) readIdxLit(script []byte) (int, uint8, error) {
	return m.readIdxAddr(script)
}

func (m *Machine) fixedArithmetic(script []byte, op Op) error {
	dest, err := m.readU8(script)
	if err != nil {
		return err
	}
	left, err := m.readU8(script)
	if err != nil {
		return err
	}
	right, err := m.readU8(script)
	if err != nil {
		return err
	}
	if int(dest) >= len(m.Fixed) || int(left) >= len(m.Fixed) || int(right) >= len(m.Fixed) {
		return simerr.New(simerr.ScriptIndexOutOfBounds, "")
	}
	l, r := m.Fixed[left], m.Fixed[right]
	switch op {
	case OpAdd:
		m.Fixed[dest] = l.Add(r)
	case OpSub:
		m.Fixed[dest] = l.Sub(r)
	case OpMul:
		m.Fixed[dest] = l.Mul(r)
	case OpDiv:
		m.Fixed[dest] = l.Div(r)
	}
	return nil
}

func (m *Machine) byteArithmetic(script []byte, op Op) error {
	dest, left, right, err := m.readDestLeftRight(script)
	if err != nil {
		return err
	}
	if dest >= len(m.Vars) || left >= len(m.Vars) || right >= len(m.Vars) {
		return simerr.New(simerr.ScriptIndexOutOfBounds, "")
	}
	l, r := m.Vars[left], m.Vars[right]
	switch op {
	case OpAddByte:
		m.Vars[dest] = saturatingAddU8(l, r)
	case OpSubByte:
		m.Vars[dest] = saturatingSubU8(l, r)
	case OpMulByte:
		m.Vars[dest] = saturatingMulU8(l, r)
	case OpDivByte:
		if r == 0 {
			m.Vars[dest] = 255
		} else {
			m.Vars[dest] = l / r
		}
	case OpModByte:
		if r == 0 {
			m.Vars[dest] = 0
		} else {
			m.Vars[dest] = l % r
		}
	case OpWrappingAdd:
		m.Vars[dest] = l + r
	}
	return nil
}

func (m *Machine) conditional(script []byte, op Op) error {
	dest, left, right, err := m.readDestLeftRight(script)
	if err != nil {
		return err
	}
	if dest >= len(m.Vars) || left >= len(m.Vars) || right >= len(m.Vars) {
		return simerr.New(simerr.ScriptIndexOutOfBounds, "")
	}
	l, r := m.Vars[left], m.Vars[right]
	var result bool
	switch op {
	case OpEqual:
		result = l == r
	case OpNotEqual:
		result = l != r
	case OpLessThan:
		result = l < r
	case OpLessThanOrEqual:
		result = l <= r
	}
	m.Vars[dest] = boolToByte(result)
	return nil
}

func (m *Machine) logical(script []byte, op Op) error {
	dest, left, right, err := m.readDestLeftRight(script)
	if err != nil {
		return err
	}
	if dest >= len(m.Vars) || left >= len(m.Vars) || right >= len(m.Vars) {
		return simerr.New(simerr.ScriptIndexOutOfBounds, "")
	}
	l, r := m.Vars[left] != 0, m.Vars[right] != 0
	var result bool
	switch op {
	case OpOr:
		result = l || r
	case OpAnd:
		result = l && r
	}
	m.Vars[dest] = boolToByte(result)
	return nil
}

func (m *Machine) utility(script []byte, op Op) error {
	dest, left, right, err := m.readDestLeftRight(script)
	if err != nil {
		return err
	}
	if dest >= len(m.Vars) || left >= len(m.Vars) || right >= len(m.Vars) {
		return simerr.New(simerr.ScriptIndexOutOfBounds, "")
	}
	l, r := m.Vars[left], m.Vars[right]
	switch op {
	case OpMin:
		if l < r {
			m.Vars[dest] = l
		} else {
			m.Vars[dest] = r
		}
	case OpMax:
		if l > r {
			m.Vars[dest] = l
		} else {
			m.Vars[dest] = r
		}
	}
	return nil
}

func (m *Machine) readDestLeftRight(script []byte) (int, int, int, error) {
	d, err := m.readU8(script)
	if err != nil {
		return 0, 0, 0, err
	}
	l, err := m.readU8(script)
	if err != nil {
		return 0, 0, 0, err
	}
	r, err := m.readU8(script)
	if err != nil {
		return 0, 0, 0, err
	}
	return int(d), int(l), int(r), nil
}

func boolToByte(b bool) uint8 {
	if b {
		return 1
	}
	return 0
}

func saturatingAddU8(a, b uint8) uint8 {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return uint8(sum)
}

func saturatingSubU8(a, b uint8) uint8 {
	if b > a {
		return 0
	}
	return a - b
}

func saturatingMulU8(a, b uint8) uint8 {
	product := uint16(a) * uint16(b)
	if product > 255 {
		return 255
	}
	return uint8(product)
}
