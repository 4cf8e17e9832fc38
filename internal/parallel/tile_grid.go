package parallel

import (
	"errors"
	"fmt"
)

// Grid errors.
var (
	// ErrInvalidCanvasSize is returned when the canvas width or height is non-positive.
	ErrInvalidCanvasSize = errors.New("parallel: invalid canvas size")

	// ErrInvalidTileSize is returned when the nominal tile width or height is non-positive.
	ErrInvalidTileSize = errors.New("parallel: invalid tile size")
)

// TileGrid partitions a canvas into tiles.
//
// The grid has ceil(height/tileHeight) rows and ceil(width/tileWidth)
// columns. Tiles are stored in a flat slice in row-major order, accessed via
// index = row*cols + col.
type TileGrid struct {
	tiles []Tile

	rows int
	cols int

	width  int
	height int

	tileWidth  int
	tileHeight int
}

// NewTileGrid creates the tile grid for a width x height canvas cut into
// tiles of nominal size tileWidth x tileHeight.
//
// Canvas sizes that are not a multiple of the tile size are accepted: the
// last row and column are clipped to the remaining extent.
func NewTileGrid(width, height, tileWidth, tileHeight int) (*TileGrid, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidCanvasSize, width, height)
	}
	if tileWidth <= 0 || tileHeight <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidTileSize, tileWidth, tileHeight)
	}

	g := &TileGrid{
		rows:       (height + tileHeight - 1) / tileHeight,
		cols:       (width + tileWidth - 1) / tileWidth,
		width:      width,
		height:     height,
		tileWidth:  tileWidth,
		tileHeight: tileHeight,
	}
	g.tiles = make([]Tile, g.rows*g.cols)

	for ty := range g.rows {
		for tx := range g.cols {
			y0 := ty * tileHeight
			x0 := tx * tileWidth

			// Edge tiles take whatever is left of the canvas.
			th := min(tileHeight, height-y0)
			tw := min(tileWidth, width-x0)

			idx := ty*g.cols + tx
			g.tiles[idx] = Tile{
				Index:     idx,
				GridRow:   ty,
				GridCol:   tx,
				RowOffset: y0,
				ColOffset: x0,
				Height:    th,
				Width:     tw,
			}
		}
	}

	return g, nil
}

// TileAt returns the tile at grid coordinates (row, col).
// The boolean is false if the coordinates are out of range.
func (g *TileGrid) TileAt(row, col int) (Tile, bool) {
	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return Tile{}, false
	}
	return g.tiles[row*g.cols+col], true
}

// TileAtPixel returns the tile containing the canvas pixel (x, y).
// The boolean is false if the pixel is outside the canvas.
func (g *TileGrid) TileAtPixel(x, y int) (Tile, bool) {
	if x < 0 || x >= g.width || y < 0 || y >= g.height {
		return Tile{}, false
	}
	return g.tiles[(y/g.tileHeight)*g.cols+x/g.tileWidth], true
}

// Tiles returns a copy of all tiles in row-major order.
func (g *TileGrid) Tiles() []Tile {
	out := make([]Tile, len(g.tiles))
	copy(out, g.tiles)
	return out
}

// ForEach calls fn for each tile in row-major order
// (left-to-right, top-to-bottom).
func (g *TileGrid) ForEach(fn func(t Tile)) {
	for _, t := range g.tiles {
		fn(t)
	}
}

// TileCount returns the total number of tiles.
func (g *TileGrid) TileCount() int {
	return len(g.tiles)
}

// Rows returns the number of tile rows.
func (g *TileGrid) Rows() int {
	return g.rows
}

// Cols returns the number of tile columns.
func (g *TileGrid) Cols() int {
	return g.cols
}

// Width returns the canvas width in pixels.
func (g *TileGrid) Width() int {
	return g.width
}

// Height returns the canvas height in pixels.
func (g *TileGrid) Height() int {
	return g.height
}

// TileSize returns the nominal tile size as (width, height).
func (g *TileGrid) TileSize() (int, int) {
	return g.tileWidth, g.tileHeight
}
