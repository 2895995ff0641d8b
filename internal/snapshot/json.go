package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/robotmasters/engine/internal/engine"
	"github.com/robotmasters/engine/internal/simerr"
)

// EncodeJSON renders a GameState as a tagged JSON document, for host
// tooling (web UIs, replay viewers) that want a human-readable snapshot
// rather than the compact binary wire format.
func EncodeJSON(g *engine.GameState) ([]byte, error) {
	data, err := json.Marshal(ToSnapshot(g))
	if err != nil {
		return nil, fmt.Errorf("marshaling snapshot to json: %w", err)
	}
	return data, nil
}

// DecodeJSON parses a JSON snapshot and applies it onto g in place. g must
// already be constructed against the matching definition tables.
func DecodeJSON(data []byte, g *engine.GameState) error {
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return simerr.New(simerr.DeserializationError, fmt.Sprintf("unmarshaling snapshot json: %v", err))
	}
	return ApplyTo(g, snap)
}
