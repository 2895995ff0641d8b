package snapshot

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/simerr"
)

// EncodeCBOR renders a GameState as CBOR: a smaller, still self-describing
// alternative to EncodeJSON for host tooling that prefers a binary
// container format over the engine's own fixed wire layout. This is a
// convenience format only; EncodeBinary/DecodeBinary remains canonical.
func EncodeCBOR(g *engine.GameState) ([]byte, error) {
	data, err := cbor.Marshal(ToSnapshot(g))
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot to cbor: %w", err)
	}
	return data, nil
}

// DecodeCBOR parses a CBOR snapshot and applies it onto g in place. g must
// already be constructed against the matching definition tables.
func DecodeCBOR(data []byte, g *engine.GameState) error {
	var snap Snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return simerr.New(simerr.DeserializationError, fmt.Sprintf("unmarshaling snapshot cbor: %v", err))
	}
	return ApplyTo(g, snap)
}
