// Package simerr defines the closed taxonomy of error kinds the simulation
// surfaces at its boundary. Script faults are local and recoverable; only
// configuration faults at construction time are fatal to the call that
// raised them.
package simerr

import "fmt"

// Kind is a closed enumeration of error categories.
type Kind int

const (
	// Script errors.
	InvalidScript Kind = iota
	InvalidOperator
	ScriptIndexOutOfBounds
	ArithmeticOverflow
	TypeMismatch

	// Game state errors.
	InvalidGameState
	InvalidCharacterData
	InvalidSpawnData
	InvalidTilemap

	// Reference errors.
	InvalidActionID
	InvalidConditionID
	InvalidStatusEffectID
	InvalidSpawnID
	MissingDefinition
	CircularReference
	ActionDefinitionNotFound
	ConditionDefinitionNotFound
	StatusEffectDefinitionNotFound
	SpawnDefinitionNotFound
	InvalidEntityID
	InvalidInstanceID
	InvalidPropertyAddress

	// Arithmetic errors.
	DivisionByZero
	OutOfBounds

	// Serialization errors.
	SerializationError
	DeserializationError
	InvalidBinaryData
	DataTooShort

	// General.
	InvalidInput
)

var kindNames = map[Kind]string{
	InvalidScript:                  "invalid script",
	InvalidOperator:                "invalid operator",
	ScriptIndexOutOfBounds:         "script index out of bounds",
	ArithmeticOverflow:             "arithmetic overflow",
	TypeMismatch:                   "type mismatch",
	InvalidGameState:               "invalid game state",
	InvalidCharacterData:           "invalid character data",
	InvalidSpawnData:               "invalid spawn data",
	InvalidTilemap:                 "invalid tilemap",
	InvalidActionID:                "invalid action id",
	InvalidConditionID:             "invalid condition id",
	InvalidStatusEffectID:          "invalid status effect id",
	InvalidSpawnID:                 "invalid spawn id",
	MissingDefinition:              "missing definition",
	CircularReference:              "circular reference",
	ActionDefinitionNotFound:       "action definition not found",
	ConditionDefinitionNotFound:    "condition definition not found",
	StatusEffectDefinitionNotFound: "status effect definition not found",
	SpawnDefinitionNotFound:        "spawn definition not found",
	InvalidEntityID:                "invalid entity id",
	InvalidInstanceID:              "invalid instance id",
	InvalidPropertyAddress:         "invalid property address",
	DivisionByZero:                 "division by zero",
	OutOfBounds:                    "out of bounds",
	SerializationError:             "serialization error",
	DeserializationError:           "deserialization error",
	InvalidBinaryData:              "invalid binary data",
	DataTooShort:                   "data too short",
	InvalidInput:                   "invalid input",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown error kind"
}

// Error is a typed simulation error. It satisfies errors.Is against its Kind
// via Unwrap-free comparison (Kind is comparable, so `errors.Is(err,
// simerr.New(simerr.InvalidScript, ""))` works through Error.Is).
type Error struct {
	Kind    Kind
	Context string
}

func New(kind Kind, context string) *Error {
	return &Error{Kind: kind, Context: context}
}

func (e *Error) Error() string {
	if e.Context == "" {
		return e.Kind.String()
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Context)
}

// Is supports errors.Is(err, simerr.New(kind, "")) by comparing Kind only.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == other.Kind
}
