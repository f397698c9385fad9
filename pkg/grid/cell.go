// pkg/grid/cell.go
package grid

import "go-gem-defense/internal/types"

// Coord — координаты клетки. Строка 0 — нижняя строка карты.
type Coord struct {
	Row, Col int
}

// Add возвращает сумму координат
func (c Coord) Add(other Coord) Coord {
	return Coord{Row: c.Row + other.Row, Col: c.Col + other.Col}
}

// Direction is one of the eight compass directions. Pathing only ever uses
// the four cardinal ones; diagonals exist for neighbour lookups.
type Direction int

const (
	DirNone Direction = iota
	North
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest
)

// Cardinals lists the directions BFS expands in, in expansion order.
var Cardinals = []Direction{North, East, South, West}

var offsets = map[Direction]Coord{
	North:     {Row: 1, Col: 0},
	NorthEast: {Row: 1, Col: 1},
	East:      {Row: 0, Col: 1},
	SouthEast: {Row: -1, Col: 1},
	South:     {Row: -1, Col: 0},
	SouthWest: {Row: -1, Col: -1},
	West:      {Row: 0, Col: -1},
	NorthWest: {Row: 1, Col: -1},
}

// Offset возвращает смещение на один шаг в направлении d
func (d Direction) Offset() Coord {
	return offsets[d]
}

// Opposite возвращает противоположное направление
func (d Direction) Opposite() Direction {
	if d == DirNone {
		return DirNone
	}
	return Direction((int(d)-1+4)%8 + 1)
}

func (d Direction) String() string {
	switch d {
	case North:
		return "N"
	case NorthEast:
		return "NE"
	case East:
		return "E"
	case SouthEast:
		return "SE"
	case South:
		return "S"
	case SouthWest:
		return "SW"
	case West:
		return "W"
	case NorthWest:
		return "NW"
	}
	return "-"
}

// Cell — клетка карты. Все клетки принадлежат Grid; Parent указывает
// на клетку внутри той же сетки и ничем не владеет.
type Cell struct {
	Coord
	Pathable  bool
	Buildable bool

	PathDist  int     // число шагов до выхода, -1 если клетка недостижима
	StartDist float64 // евклидово расстояние до входа
	ExitDist  float64 // евклидово расстояние до выхода
	Parent    *Cell
	Dir       Direction // куда идти, чтобы попасть в Parent

	Tower types.EntityID
}

// Reachable сообщает, назначен ли клетке путь к выходу.
func (c *Cell) Reachable() bool {
	return c.PathDist >= 0
}

// Center returns the cell centre in cell units.
func (c *Cell) Center() (x, y float64) {
	return float64(c.Col) + 0.5, float64(c.Row) + 0.5
}
