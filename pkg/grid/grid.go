// pkg/grid/grid.go
package grid

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutOfBounds    = errors.New("grid: coordinate out of bounds")
	ErrEmptyMap       = errors.New("grid: empty pathmap")
	ErrNotRectangular = errors.New("grid: pathmap rows differ in length")
	ErrUnknownTile    = errors.New("grid: unknown pathmap character")
	ErrStartCount     = errors.New("grid: pathmap needs exactly one start")
	ErrExitCount      = errors.New("grid: pathmap needs exactly one exit")
)

// Grid — прямоугольная карта клеток. Клетки хранятся одним срезом,
// поэтому указатели на них стабильны всё время жизни сетки.
type Grid struct {
	Width   int
	Height  int
	Cells   []Cell
	Start   Coord
	Exit    Coord
	Tileset string

	hasStart bool
	hasExit  bool
}

// New создаёт сетку из закрытых клеток (ни проходимых, ни застраиваемых).
func New(width, height int) *Grid {
	g := &Grid{
		Width:  width,
		Height: height,
		Cells:  make([]Cell, width*height),
	}
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			g.Cells[row*width+col] = Cell{
				Coord:    Coord{Row: row, Col: col},
				PathDist: -1,
			}
		}
	}
	return g
}

// Contains проверяет, лежит ли координата внутри сетки
func (g *Grid) Contains(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Height && c.Col >= 0 && c.Col < g.Width
}

// At returns the cell at c, or nil outside the grid.
func (g *Grid) At(c Coord) *Cell {
	if !g.Contains(c) {
		return nil
	}
	return &g.Cells[c.Row*g.Width+c.Col]
}

// Neighbor returns the neighbour of c in direction d, or nil at the border.
func (g *Grid) Neighbor(c Coord, d Direction) *Cell {
	if d == DirNone {
		return nil
	}
	return g.At(c.Add(d.Offset()))
}

// SetFlags задаёт флаги проходимости и застройки клетки.
func (g *Grid) SetFlags(c Coord, pathable, buildable bool) error {
	cell := g.At(c)
	if cell == nil {
		return fmt.Errorf("set flags at %v: %w", c, ErrOutOfBounds)
	}
	cell.Pathable = pathable
	cell.Buildable = buildable
	return nil
}

// SetStart помечает клетку входом. Вход всегда проходим и никогда не застраивается.
func (g *Grid) SetStart(c Coord) error {
	if err := g.SetFlags(c, true, false); err != nil {
		return err
	}
	g.Start = c
	g.hasStart = true
	g.updateEndpointDistances()
	return nil
}

// SetExit помечает клетку выходом.
func (g *Grid) SetExit(c Coord) error {
	if err := g.SetFlags(c, true, false); err != nil {
		return err
	}
	g.Exit = c
	g.hasExit = true
	g.updateEndpointDistances()
	return nil
}

// HasEndpoints reports whether both the start and the exit are set.
func (g *Grid) HasEndpoints() bool {
	return g.hasStart && g.hasExit
}

// IsEndpoint reports whether c is the start or the exit.
func (g *Grid) IsEndpoint(c Coord) bool {
	return (g.hasStart && c == g.Start) || (g.hasExit && c == g.Exit)
}

func (g *Grid) updateEndpointDistances() {
	for i := range g.Cells {
		cell := &g.Cells[i]
		if g.hasStart {
			cell.StartDist = euclid(cell.Coord, g.Start)
		}
		if g.hasExit {
			cell.ExitDist = euclid(cell.Coord, g.Exit)
		}
	}
}

func euclid(a, b Coord) float64 {
	return math.Hypot(float64(a.Row-b.Row), float64(a.Col-b.Col))
}

// ParsePathmap builds a grid from text rows, top row first:
//
//	p pathable only   o pathable and buildable   b buildable only
//	c closed          s start                    e exit
//
// Rows are flipped so that the last text row becomes row 0.
func ParsePathmap(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyMap
	}
	width := len(rows[0])
	height := len(rows)
	g := New(width, height)

	starts, exits := 0, 0
	var start, exit Coord
	for i, line := range rows {
		if len(line) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d: %w", i, len(line), width, ErrNotRectangular)
		}
		row := height - 1 - i
		for col, ch := range line {
			c := Coord{Row: row, Col: col}
			cell := g.At(c)
			switch ch {
			case 'p':
				cell.Pathable = true
			case 'o':
				cell.Pathable, cell.Buildable = true, true
			case 'b':
				cell.Buildable = true
			case 'c':
			case 's':
				starts++
				start = c
			case 'e':
				exits++
				exit = c
			default:
				return nil, fmt.Errorf("%q at row %d col %d: %w", ch, i, col, ErrUnknownTile)
			}
		}
	}
	if starts != 1 {
		return nil, fmt.Errorf("found %d: %w", starts, ErrStartCount)
	}
	if exits != 1 {
		return nil, fmt.Errorf("found %d: %w", exits, ErrExitCount)
	}
	if err := g.SetStart(start); err != nil {
		return nil, err
	}
	if err := g.SetExit(exit); err != nil {
		return nil, err
	}
	return g, nil
}
