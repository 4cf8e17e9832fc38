// Package parallel provides tile partitioning and a worker pool for rendering
// a canvas in independent pieces.
//
// A canvas is cut into a row-major grid of tiles of a nominal size. Tiles in
// the last row and column are clipped to the canvas edge, so the grid covers
// every canvas pixel exactly once and no two tiles share a pixel. Workers may
// therefore write their results straight into the canvas without locking.
//
// Thread safety: TileGrid is immutable after construction and safe for
// concurrent reads. WorkerPool is safe for concurrent use.
package parallel

import (
	"fmt"
	"image"
)

// Nominal tile size used when a caller does not configure one.
const (
	// DefaultTileWidth is the default nominal tile width in pixels.
	DefaultTileWidth = 400

	// DefaultTileHeight is the default nominal tile height in pixels.
	DefaultTileHeight = 360
)

// Tile describes one rectangular region of a canvas.
//
// Edge tiles may be smaller than the nominal tile size when the canvas is not
// evenly divisible by it.
type Tile struct {
	// Index is the position of the tile in row-major grid order.
	Index int

	// GridRow is the tile row (0-based).
	GridRow int

	// GridCol is the tile column (0-based).
	GridCol int

	// RowOffset is the canvas row of the tile's top edge.
	RowOffset int

	// ColOffset is the canvas column of the tile's left edge.
	ColOffset int

	// Height is the clipped height in pixels.
	Height int

	// Width is the clipped width in pixels.
	Width int
}

// Rect returns the tile region in canvas coordinates.
func (t Tile) Rect() image.Rectangle {
	return image.Rect(t.ColOffset, t.RowOffset, t.ColOffset+t.Width, t.RowOffset+t.Height)
}

// Contains reports whether the canvas pixel (x, y) lies inside the tile.
func (t Tile) Contains(x, y int) bool {
	return x >= t.ColOffset && x < t.ColOffset+t.Width &&
		y >= t.RowOffset && y < t.RowOffset+t.Height
}

// Pixels returns the number of pixels covered by the tile.
func (t Tile) Pixels() int {
	return t.Width * t.Height
}

// String returns a compact description such as "tile(1,2)@360,800 360x400".
func (t Tile) String() string {
	return fmt.Sprintf("tile(%d,%d)@%d,%d %dx%d",
		t.GridRow, t.GridCol, t.RowOffset, t.ColOffset, t.Height, t.Width)
}
