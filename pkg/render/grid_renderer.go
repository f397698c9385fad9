// pkg/render/grid_renderer.go
package render

import (
	"image/color"

	"go-gem-defense/pkg/grid"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// GridRenderer рисует карту клеток. Статичная часть карты кешируется
// в mapImage и перерисовывается только после MarkDirty.
type GridRenderer struct {
	grid         *grid.Grid
	tileSize     float64
	offsetX      float64
	offsetY      float64
	screenWidth  int
	screenHeight int
	colors       *MapColors
	mapImage     *ebiten.Image
	dirty        bool
}

func NewGridRenderer(g *grid.Grid, tileSize, offsetX, offsetY float64, screenWidth, screenHeight int, colors *MapColors) *GridRenderer {
	return &GridRenderer{
		grid:         g,
		tileSize:     tileSize,
		offsetX:      offsetX,
		offsetY:      offsetY,
		screenWidth:  screenWidth,
		screenHeight: screenHeight,
		colors:       colors,
		dirty:        true,
	}
}

// SetGrid переключает рендерер на другую карту, например после смены уровня.
func (r *GridRenderer) SetGrid(g *grid.Grid) {
	r.grid = g
	r.dirty = true
}

// MarkDirty просит перерисовать карту на следующем кадре.
func (r *GridRenderer) MarkDirty() {
	r.dirty = true
}

func (r *GridRenderer) TileSize() float64 {
	return r.tileSize
}

// ToScreen переводит координаты в единицах клеток в пиксели экрана.
// Строка 0 рисуется внизу.
func (r *GridRenderer) ToScreen(x, y float64) (float64, float64) {
	sx := r.offsetX + x*r.tileSize
	sy := r.offsetY + (float64(r.grid.Height)-y)*r.tileSize
	return sx, sy
}

// CellAt returns the cell under a screen point.
func (r *GridRenderer) CellAt(sx, sy int) (grid.Coord, bool) {
	x := (float64(sx) - r.offsetX) / r.tileSize
	y := float64(r.grid.Height) - (float64(sy)-r.offsetY)/r.tileSize
	if x < 0 || y < 0 {
		return grid.Coord{}, false
	}
	c := grid.Coord{Row: int(y), Col: int(x)}
	return c, r.grid.Contains(c)
}

func (r *GridRenderer) cellColor(c *grid.Cell) color.RGBA {
	switch {
	case c.Coord == r.grid.Start:
		return r.colors.EntryColor
	case c.Coord == r.grid.Exit:
		return r.colors.ExitColor
	case c.Pathable && c.Buildable:
		return r.colors.OpenColor
	case c.Pathable:
		return r.colors.PathableColor
	case c.Buildable:
		return r.colors.BuildableColor
	}
	return r.colors.ClosedColor
}

// RenderMapImage pre-renders the cells into an offscreen image.
func (r *GridRenderer) RenderMapImage() {
	if r.mapImage == nil {
		r.mapImage = ebiten.NewImage(r.screenWidth, r.screenHeight)
	}
	r.mapImage.Fill(r.colors.BackgroundColor)

	ts := float32(r.tileSize)
	for i := range r.grid.Cells {
		cell := &r.grid.Cells[i]
		sx, sy := r.ToScreen(float64(cell.Col), float64(cell.Row+1))
		fill := r.cellColor(cell)
		vector.DrawFilledRect(r.mapImage, float32(sx), float32(sy), ts, ts, fill, false)
		vector.StrokeRect(r.mapImage, float32(sx), float32(sy), ts, ts, r.colors.StrokeWidth, DarkenColor(fill), false)
	}
	r.dirty = false
}

// DrawMap draws the cached map, re-rendering it first when it is stale.
func (r *GridRenderer) DrawMap(screen *ebiten.Image) {
	if r.dirty || r.mapImage == nil {
		r.RenderMapImage()
	}
	screen.DrawImage(r.mapImage, nil)
}

// DrawPath рисует направление движения из каждой достижимой клетки
// короткой линией к центру родителя.
func (r *GridRenderer) DrawPath(screen *ebiten.Image, clr color.Color) {
	for i := range r.grid.Cells {
		cell := &r.grid.Cells[i]
		if cell.Parent == nil {
			continue
		}
		x0, y0 := cell.Center()
		x1, y1 := cell.Parent.Center()
		sx0, sy0 := r.ToScreen(x0, y0)
		sx1, sy1 := r.ToScreen((x0+x1)/2, (y0+y1)/2)
		vector.StrokeLine(screen, float32(sx0), float32(sy0), float32(sx1), float32(sy1), 1, clr, true)
	}
}
