// internal/system/utils.go
package system

import (
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/utils"
	"go-gem-defense/pkg/grid"
)

// withinRange проверяет, лежит ли позиция в радиусе rangeCells от центра
// клетки. Сравниваются квадраты расстояний.
func withinRange(g *grid.Grid, from grid.Coord, pos component.Position, rangeCells float64) bool {
	cell := g.At(from)
	if cell == nil {
		return false
	}
	x, y := cell.Center()
	return utils.DistSq(x, y, pos.X, pos.Y) <= rangeCells*rangeCells
}
