package tilemap

import (
	"testing"

	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/stretchr/testify/require"
)

func TestOutOfBoundsIsBlock(t *testing.T) {
	g := EmptyGrid()
	require.Equal(t, Block, g.GetTile(-1, 0))
	require.Equal(t, Block, g.GetTile(Width, 0))
	require.Equal(t, Block, g.GetTile(0, Height))
}

func TestGetSetTile(t *testing.T) {
	g := EmptyGrid()
	g.SetTile(2, 3, Block)
	require.Equal(t, Block, g.GetTile(2, 3))
	require.Equal(t, Empty, g.GetTile(2, 4))
}

func gridWithColumnBlocked(col int) *Grid {
	var tiles [Height][Width]uint8
	for y := 0; y < Height; y++ {
		tiles[y][col] = 1
	}
	return NewGrid(tiles)
}

func TestHorizontalMovementClampsAtWall(t *testing.T) {
	// Block column starts at tile x=5 => pixel x=80.
	g := gridWithColumnBlocked(5)
	rect := Rect{X: fixedpoint.FromInt(64), Y: fixedpoint.FromInt(16), Width: 8, Height: 8}

	moved := g.CheckHorizontalMovement(rect, fixedpoint.FromInt(32))
	finalX := rect.X.Add(moved)

	require.LessOrEqual(t, finalX.ToInt()+int32(rect.Width), int32(80))
}

func TestVerticalMovementNoCollisionInOpenSpace(t *testing.T) {
	g := EmptyGrid()
	rect := Rect{X: fixedpoint.FromInt(0), Y: fixedpoint.FromInt(0), Width: 8, Height: 8}
	moved := g.CheckVerticalMovement(rect, fixedpoint.FromInt(5))
	require.Equal(t, fixedpoint.FromInt(5), moved)
}

func TestIsOnGround(t *testing.T) {
	var tiles [Height][Width]uint8
	tiles[1][0] = 1 // block at tile row 1 => pixels y=16..31
	g := NewGrid(tiles)
	rect := Rect{X: fixedpoint.Zero, Y: fixedpoint.FromInt(8), Width: 8, Height: 8} // bottom at y=16
	require.True(t, g.IsOnGround(rect))
}

func TestAABBOverlapAndMTV(t *testing.T) {
	a := AABB{X: fixedpoint.FromInt(0), Y: fixedpoint.FromInt(0), Width: fixedpoint.FromInt(10), Height: fixedpoint.FromInt(10)}
	b := AABB{X: fixedpoint.FromInt(8), Y: fixedpoint.FromInt(0), Width: fixedpoint.FromInt(10), Height: fixedpoint.FromInt(10)}
	require.True(t, a.Overlaps(b))
	mtvX, mtvY := a.CalculateMTV(b)
	require.True(t, mtvY.IsZero())
	require.False(t, mtvX.IsZero())
}
