package component

// GameState — компонент для хранения состояния игры
type GameState int

const (
	PlayingState GameState = iota
	WonState
	LostState
)

func (s GameState) String() string {
	switch s {
	case WonState:
		return "won"
	case LostState:
		return "lost"
	}
	return "playing"
}
