// Package tilemap implements the 16x15 tile grid, AABB collision geometry,
// and the per-axis pixel-stepping movement clamp the frame scheduler uses to
// integrate position.
package tilemap

import "github.com/robotmasters/engine/internal/fixedpoint"

const (
	Width    = 16
	Height   = 15
	TileSize = 16
)

// TileKind is the kind of a single tile.
type TileKind uint8

const (
	Empty TileKind = 0
	Block TileKind = 1
)

func tileKindFromByte(v uint8) TileKind {
	if v == 1 {
		return Block
	}
	return Empty
}

// Grid is the 16x15 tile arena. Out-of-range coordinates are always Block.
type Grid struct {
	tiles [Height][Width]uint8
}

// NewGrid builds a grid from a row-major [Height][Width] byte array.
func NewGrid(tiles [Height][Width]uint8) *Grid {
	return &Grid{tiles: tiles}
}

// EmptyGrid returns a grid with every tile Empty.
func EmptyGrid() *Grid {
	return &Grid{}
}

// Tiles returns a copy of the grid's row-major tile array, for callers
// that need to serialize or rebuild a grid elsewhere.
func (g *Grid) Tiles() [Height][Width]uint8 {
	return g.tiles
}

// GetTile returns the tile kind at tile coordinates, treating out-of-range
// coordinates as Block.
func (g *Grid) GetTile(tileX, tileY int) TileKind {
	if tileX < 0 || tileY < 0 || tileX >= Width || tileY >= Height {
		return Block
	}
	return tileKindFromByte(g.tiles[tileY][tileX])
}

// SetTile writes a tile, ignoring out-of-range coordinates.
func (g *Grid) SetTile(tileX, tileY int, kind TileKind) {
	if tileX < 0 || tileY < 0 || tileX >= Width || tileY >= Height {
		return
	}
	g.tiles[tileY][tileX] = uint8(kind)
}

// GetTileAtPixel resolves the tile under a pixel coordinate.
func (g *Grid) GetTileAtPixel(x, y fixedpoint.Fixed) TileKind {
	tileX := int(maxInt32(x.ToInt(), 0)) / TileSize
	tileY := int(maxInt32(y.ToInt(), 0)) / TileSize
	return g.GetTile(tileX, tileY)
}

func maxInt32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
