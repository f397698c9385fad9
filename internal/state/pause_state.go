// internal/state/pause_state.go
package state

import (
	"image/color"

	"go-gem-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Убеждаемся, что PauseState соответствует интерфейсу State
var _ State = (*PauseState)(nil)

type PauseState struct {
	stateMachine  *StateMachine
	previousState *GameState
}

func NewPauseState(sm *StateMachine, prevState *GameState) *PauseState {
	return &PauseState{
		stateMachine:  sm,
		previousState: prevState,
	}
}

func (s *PauseState) Enter() {}

func (s *PauseState) Update(deltaTime float64) {
	unpause := inpututil.IsKeyJustPressed(ebiten.KeyP) ||
		inpututil.IsKeyJustPressed(ebiten.KeyEscape) ||
		inpututil.IsKeyJustPressed(ebiten.KeyF9)
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if s.previousState.pauseButton.IsClicked(float32(x), float32(y)) {
			unpause = true
		}
	}
	if !unpause {
		return
	}
	// При выходе из паузы нужно "отжать" кнопку в самом игровом состоянии
	game := s.previousState.game
	if game.IsPaused() {
		game.HandlePauseClick()
	}
	s.previousState.pauseButton.SetPaused(false)
	s.stateMachine.SetState(s.previousState)
}

func (s *PauseState) Draw(screen *ebiten.Image) {
	s.previousState.Draw(screen)

	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 128}, false)
	pauseText := "PAUSED"
	bounds := text.BoundString(s.previousState.fontFace, pauseText)
	text.Draw(screen, pauseText, s.previousState.fontFace, (config.ScreenWidth-bounds.Dx())/2, config.ScreenHeight/2, color.White)
}

func (s *PauseState) Exit() {}
