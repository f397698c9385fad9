// internal/component/wave.go
package component

import (
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

// WaveState — стадия спавна волны.
type WaveState int

const (
	WavePending WaveState = iota
	WaveSpawning
	WaveDepleted
)

// Wave — партия одинаковых врагов, появляющихся с фиксированным интервалом.
type Wave struct {
	Def       defs.WaveDefinition
	Number    int // сквозной номер волны в уровне, с 1
	Round     int // индекс раунда в описании уровня
	Remaining int
	State     WaveState
	Live      []types.EntityID // заспавненные и ещё живые враги
	StartedAt float64
}

// RemoveLive drops id from the live list and reports whether it was there.
func (w *Wave) RemoveLive(id types.EntityID) bool {
	for i, e := range w.Live {
		if e == id {
			w.Live = append(w.Live[:i], w.Live[i+1:]...)
			return true
		}
	}
	return false
}

// Round — упорядоченная очередь волн и множество активных волн.
type Round struct {
	Number   int
	Incoming []types.EntityID
	Active   []types.EntityID
}
