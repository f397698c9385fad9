// internal/component/combat.go
package component

// Health — компонент здоровья. Projected учитывает урон, который уже
// выпущен по врагу, но ещё не нанесён, и может уходить ниже нуля.
type Health struct {
	Max       float64
	Current   float64
	Projected float64
}
