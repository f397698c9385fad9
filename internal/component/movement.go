// component/movement.go
package component

import "go-gem-defense/pkg/grid"

// Position — позиция в единицах клеток (центр клетки (r, c) — это (c+0.5, r+0.5)).
type Position struct {
	X, Y float64
}

// Movement tracks hop-by-hop path following. A hop runs from Cell to Next
// and takes HopDuration seconds starting at HopStart.
type Movement struct {
	BaseSpeed   float64 // секунд на клетку без замедлений
	CurrSpeed   float64
	Cell        grid.Coord
	Next        grid.Coord
	Moving      bool
	HopStart    float64
	HopDuration float64
	Facing      grid.Direction
}
