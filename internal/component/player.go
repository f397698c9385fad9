// internal/component/player.go
package component

// PlayerStateComponent хранит ресурсы игрока.
type PlayerStateComponent struct {
	Score  int
	Energy int
	Hp     int
	MaxHp  int
}
