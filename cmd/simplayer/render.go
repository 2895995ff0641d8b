package main

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/robotmasters/engine/internal/fixedpoint"
	"github.com/robotmasters/engine/internal/snapshot"
	"github.com/robotmasters/engine/internal/tilemap"
)

var (
	colorFloor     = color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 0xFF}
	colorEmpty     = color.RGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xFF}
	colorCharacter = color.RGBA{R: 0x55, G: 0xFF, B: 0x55, A: 0xFF}
	colorSpawn     = color.RGBA{R: 0xFF, G: 0x55, B: 0x55, A: 0xFF}
)

// rasterizeFrame draws a captured frame's tilemap and every entity's AABB
// into a PNG image. This mirrors tools/font2rgba.go's raster-primitives-
// to-PNG approach, applied to simulation state instead of a font atlas; it
// is a diagnostic dump, not a renderer driving the simulation loop, so it
// operates on an already-captured Snapshot rather than a live GameState.
func rasterizeFrame(snap snapshot.Snapshot) []byte {
	w := tilemap.Width * tilemap.TileSize
	h := tilemap.Height * tilemap.TileSize
	img := image.NewRGBA(image.Rect(0, 0, w, h))

	for y, row := range snap.Grid {
		for x, tile := range row {
			c := colorEmpty
			if tile != 0 {
				c = colorFloor
			}
			rect := image.Rect(x*tilemap.TileSize, y*tilemap.TileSize, (x+1)*tilemap.TileSize, (y+1)*tilemap.TileSize)
			draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
		}
	}

	for _, c := range snap.Characters {
		x, y := pixelPos(c.Core)
		drawAABB(img, x, y, int(c.Core.Width), int(c.Core.Height), colorCharacter)
	}
	for _, s := range snap.Spawns {
		x, y := pixelPos(s.Core)
		drawAABB(img, x, y, int(s.Core.Width), int(s.Core.Height), colorSpawn)
	}

	drawFrameLabel(img, snap.Frame)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		panic(fmt.Sprintf("encoding frame png: %v", err))
	}
	return buf.Bytes()
}

func pixelPos(core snapshot.CoreData) (int, int) {
	return int(fixedpoint.FromRaw(core.PosX).ToInt()), int(fixedpoint.FromRaw(core.PosY).ToInt())
}

func drawAABB(img *image.RGBA, x, y, w, h int, c color.RGBA) {
	rect := image.Rect(x, y, x+w, y+h).Intersect(img.Bounds())
	if rect.Empty() {
		return
	}
	draw.Draw(img, rect, &image.Uniform{C: c}, image.Point{}, draw.Src)
}

// drawFrameLabel stamps the frame number in the corner of the image, using
// the stock basicfont face rather than anything loaded at runtime: a PNG
// export is a diagnostic dump, not a rendering pipeline, so it doesn't need
// a font asset pipeline, just a readable label on every exported frame.
func drawFrameLabel(img *image.RGBA, frameNum uint16) {
	d := &font.Drawer{
		Dst:  img,
		Src:  &image.Uniform{C: color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}},
		Face: basicfont.Face7x13,
		Dot:  fixed.P(2, 11),
	}
	d.DrawString(fmt.Sprintf("f%04d", frameNum))
}
