package vm

import "github.com/robotmasters/engine/internal/fixedpoint"

// Context is implemented once per calling kind (condition, action, spawn,
// status effect). It supplies everything the VM needs beyond its own
// register file: property access and the handful of game-action hooks
// that mutate state outside the registers.
type Context interface {
	// ReadProperty copies the named property into the register set at
	// varIndex (0..7 selects vars, 8..11 selects fixed). Unknown or
	// out-of-context addresses are a documented no-op.
	ReadProperty(m *Machine, varIndex int, propAddr uint8)
	// WriteProperty copies the register at varIndex into the named
	// property. Unknown, out-of-context, or read-only addresses (e.g. any
	// address under a condition context) are a documented no-op.
	WriteProperty(m *Machine, propAddr uint8, varIndex int)

	EnergyRequirement() uint8
	CurrentEnergy() uint8
	IsOnCooldown() bool
	RandomU8() uint8

	LockAction()
	UnlockAction()
	ApplyEnergyCost()
	ApplyDuration()
	CreateSpawn(spawnID uint8, vars *[4]uint8)
	LogDebug(message string)

	// CooldownFrames returns the invoking action's declared cooldown.
	CooldownFrames() uint16
	// FramesSinceLastUsed returns the current frame minus the last-used
	// frame, or the "never used" sentinel distance (Fixed Max) if the
	// action has never executed.
	FramesSinceLastUsed() fixedpoint.Fixed
	// MarkLastUsed stamps the current frame as the invoking action's
	// last-used frame.
	MarkLastUsed()
}

// registerCount is the combined width of vars+fixed for ReadProp/WriteProp
// addressing: var indices 0-7 are byte registers, 8-11 are fixed registers.
const registerCount = 8 + 4
