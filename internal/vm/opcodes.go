// Package vm implements the bytecode scripting engine: a flat-register
// machine interpreting the closed opcode set shared by conditions,
// actions, spawn scripts, and status-effect scripts. The VM itself knows
// nothing about character/spawn/status state; it borrows a Context for
// the duration of a single script run and talks to it only through the
// property address book (see addresses.go and shared.go) and a small set of
// game-action hooks (lock/unlock/spawn/etc).
package vm

// Op is a single bytecode opcode. Values match the property address book
// and opcode table restated in the engine's top-level design notes;
// numbering follows that table exactly, including the 95/100 split that
// an earlier source revision got wrong.
type Op uint8

const (
	OpExit            Op = 0
	OpExitIfNoEnergy  Op = 1
	OpExitIfCooldown  Op = 2
	OpSkip            Op = 3
	OpGoto            Op = 4
	OpReadProp        Op = 10
	OpWriteProp       Op = 11
	OpAssignByte      Op = 20
	OpAssignFixed     Op = 21
	OpAssignRandom    Op = 22
	OpToByte          Op = 23
	OpToFixed         Op = 24
	OpAdd             Op = 30
	OpSub             Op = 31
	OpMul             Op = 32
	OpDiv             Op = 33
	OpNegate          Op = 34
	OpAddByte         Op = 40
	OpSubByte         Op = 41
	OpMulByte         Op = 42
	OpDivByte         Op = 43
	OpModByte         Op = 44
	OpWrappingAdd     Op = 45
	OpEqual           Op = 50
	OpNotEqual        Op = 51
	OpLessThan        Op = 52
	OpLessThanOrEqual Op = 53
	OpNot             Op = 60
	OpOr              Op = 61
	OpAnd             Op = 62
	OpMin             Op = 70
	OpMax             Op = 71
	OpLockAction      Op = 80
	OpUnlockAction    Op = 81
	OpApplyEnergyCost Op = 82
	OpApplyDuration   Op = 83
	OpSpawn           Op = 84
	OpSpawnWithVars   Op = 85
	OpLogVariable     Op = 90

	// Args/spawns slot access. Note the numbering: 95, 96, 97 — not
	// constants.rs's 96-98, which folds ReadArg into slot 96 and has no
	// standalone opcode at 95. The engine's opcode table is authoritative.
	OpReadArg    Op = 95
	OpReadSpawn  Op = 96
	OpWriteSpawn Op = 97

	// Cooldown I/O. ReadActionCooldown and ReadActionLastUsed write into a
	// fixed register (not a byte register): cooldown frame counts and
	// frames-since-last-used routinely exceed 255, and the fixed-point
	// saturation rule already used throughout this engine (clamp at
	// +-1023.97) is a more useful truncation than wrapping at a byte. A
	// "never used" last-used value reads back as Fixed Max.
	OpReadActionCooldown  Op = 100
	OpReadActionLastUsed  Op = 101
	OpWriteActionLastUsed Op = 102
	OpIsActionOnCooldown  Op = 103
)

// validOps is the closed set; any byte outside it is InvalidOperator.
var validOps = map[Op]bool{
	OpExit: true, OpExitIfNoEnergy: true, OpExitIfCooldown: true, OpSkip: true, OpGoto: true,
	OpReadProp: true, OpWriteProp: true,
	OpAssignByte: true, OpAssignFixed: true, OpAssignRandom: true, OpToByte: true, OpToFixed: true,
	OpAdd: true, OpSub: true, OpMul: true, OpDiv: true, OpNegate: true,
	OpAddByte: true, OpSubByte: true, OpMulByte: true, OpDivByte: true, OpModByte: true, OpWrappingAdd: true,
	OpEqual: true, OpNotEqual: true, OpLessThan: true, OpLessThanOrEqual: true,
	OpNot: true, OpOr: true, OpAnd: true,
	OpMin: true, OpMax: true,
	OpLockAction: true, OpUnlockAction: true, OpApplyEnergyCost: true, OpApplyDuration: true,
	OpSpawn: true, OpSpawnWithVars: true,
	OpLogVariable: true,
	OpReadArg:     true, OpReadSpawn: true, OpWriteSpawn: true,
	OpReadActionCooldown: true, OpReadActionLastUsed: true, OpWriteActionLastUsed: true, OpIsActionOnCooldown: true,
}
