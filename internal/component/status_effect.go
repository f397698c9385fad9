// internal/component/status_effect.go
package component

// SlowInstance is one application of a slow. Instances expire independently.
type SlowInstance struct {
	ID        uint64
	Magnitude float64 // делитель скорости: 0.5 означает вдвое медленнее
}

// SlowEffect indicates that an entity is slowed.
type SlowEffect struct {
	Instances []SlowInstance
	NextID    uint64
}

// Strongest returns the smallest magnitude, or 1 when nothing is active.
func (s *SlowEffect) Strongest() float64 {
	if s == nil || len(s.Instances) == 0 {
		return 1
	}
	m := s.Instances[0].Magnitude
	for _, inst := range s.Instances[1:] {
		if inst.Magnitude < m {
			m = inst.Magnitude
		}
	}
	return m
}

// PoisonEffect holds the damage of every queued poison tick.
type PoisonEffect struct {
	Ticks   []float64
	Running bool
}
