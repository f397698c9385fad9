// internal/interfaces/game_context.go
package interfaces

// GameContext — то, что системам нужно от движка. Таймер волны запускает
// следующую волну через движок, чтобы башни тоже начали поиск целей.
type GameContext interface {
	StartNextWave()
}
