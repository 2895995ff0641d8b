package snapshot

import "github.com/robotmasters/engine/internal/simerr"

func invalidGrid(context string) error {
	return simerr.New(simerr.InvalidTilemap, context)
}
