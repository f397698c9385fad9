// pkg/grid/pathfinding.go
package grid

import (
	"errors"

	"github.com/zyedidia/generic/heap"
	"github.com/zyedidia/generic/queue"
)

var (
	ErrNoEndpoints = errors.New("grid: start or exit not set")
	ErrNoPath      = errors.New("grid: start is not reachable from exit")
)

// openLess упорядочивает фронт поиска по (PathDist, ExitDist, StartDist),
// а затем по координатам, чтобы результат не зависел от порядка вставки.
func openLess(a, b *Cell) bool {
	if a.PathDist != b.PathDist {
		return a.PathDist < b.PathDist
	}
	if a.ExitDist != b.ExitDist {
		return a.ExitDist < b.ExitDist
	}
	if a.StartDist != b.StartDist {
		return a.StartDist < b.StartDist
	}
	if a.Row != b.Row {
		return a.Row < b.Row
	}
	return a.Col < b.Col
}

// ComputePathing runs a breadth-first search from the exit over cardinal
// neighbours and records for every reached pathable cell its parent, its
// hop distance to the exit and the direction toward the parent. Cells the
// search never reaches keep PathDist -1.
func ComputePathing(g *Grid) error {
	if !g.HasEndpoints() {
		return ErrNoEndpoints
	}
	for i := range g.Cells {
		cell := &g.Cells[i]
		cell.PathDist = -1
		cell.Parent = nil
		cell.Dir = DirNone
	}

	exit := g.At(g.Exit)
	exit.PathDist = 0
	open := heap.New(openLess)
	open.Push(exit)

	reachedStart := false
	for {
		current, ok := open.Pop()
		if !ok {
			break
		}
		if current.Coord == g.Start {
			reachedStart = true
		}
		for _, d := range Cardinals {
			next := g.Neighbor(current.Coord, d)
			if next == nil || !next.Pathable || next.PathDist >= 0 {
				continue
			}
			next.Parent = current
			next.PathDist = current.PathDist + 1
			next.Dir = d.Opposite()
			open.Push(next)
		}
	}

	if !reachedStart {
		return ErrNoPath
	}
	return nil
}

// IsConnected reports whether the start can still be reached from the exit
// when the excluded cell is treated as blocked. A nil exclusion blocks nothing.
// Path state on the grid is left untouched.
func IsConnected(g *Grid, excluding *Cell) bool {
	if !g.HasEndpoints() {
		return false
	}
	if excluding != nil && g.IsEndpoint(excluding.Coord) {
		return false
	}
	return CanReachExit(g, excluding, g.Start)
}

// CanReachExit reports whether every source can still reach the exit with the
// excluded cell blocked. A source that is blocked itself (a unit caught on a
// cell being built over) counts when one of its cardinal neighbours can reach
// the exit.
func CanReachExit(g *Grid, excluding *Cell, sources ...Coord) bool {
	if !g.HasEndpoints() {
		return false
	}
	visited := reachedFromExit(g, excluding)
	for _, src := range sources {
		cell := g.At(src)
		if cell == nil {
			return false
		}
		if visited[src.Row*g.Width+src.Col] {
			continue
		}
		if cell.Pathable && cell != excluding {
			return false
		}
		escaped := false
		for _, d := range Cardinals {
			n := g.Neighbor(src, d)
			if n != nil && visited[n.Row*g.Width+n.Col] {
				escaped = true
				break
			}
		}
		if !escaped {
			return false
		}
	}
	return true
}

// reachedFromExit marks every pathable cell connected to the exit.
func reachedFromExit(g *Grid, excluding *Cell) []bool {
	visited := make([]bool, len(g.Cells))
	frontier := queue.New[*Cell]()
	exit := g.At(g.Exit)
	visited[exit.Row*g.Width+exit.Col] = true
	frontier.Enqueue(exit)

	for !frontier.Empty() {
		current := frontier.Dequeue()
		for _, d := range Cardinals {
			next := g.Neighbor(current.Coord, d)
			if next == nil || !next.Pathable || next == excluding {
				continue
			}
			idx := next.Row*g.Width + next.Col
			if visited[idx] {
				continue
			}
			visited[idx] = true
			frontier.Enqueue(next)
		}
	}
	return visited
}
