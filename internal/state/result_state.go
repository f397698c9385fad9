// internal/state/result_state.go
package state

import (
	"fmt"
	"image/color"
	"log"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

var _ State = (*ResultState)(nil)

// ResultState — экран конца уровня. Enter начинает уровень заново.
type ResultState struct {
	sm      *StateMachine
	game    *GameState
	result  app.RunRecord
	newBest bool
}

func NewResultState(sm *StateMachine, gs *GameState) *ResultState {
	return &ResultState{sm: sm, game: gs}
}

func (s *ResultState) Enter() {
	s.result, s.newBest = s.game.saveResult()
	log.Printf("[ResultState] level %q finished: %s, score %d", s.result.Level, s.result.Outcome, s.result.Score)
}

func (s *ResultState) Update(deltaTime float64) {
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) && !inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		return
	}
	if err := s.game.Restart(); err != nil {
		log.Printf("[ResultState] restart failed: %v", err)
		return
	}
	s.sm.SetState(s.game)
}

func (s *ResultState) Draw(screen *ebiten.Image) {
	s.game.Draw(screen)
	vector.DrawFilledRect(screen, 0, 0, config.ScreenWidth, config.ScreenHeight, color.RGBA{0, 0, 0, 160}, false)

	face := s.game.fontFace
	title := "VICTORY"
	clr := config.PhaseColors[s.result.Outcome]
	if s.result.Outcome != "won" {
		title = "DEFEAT"
	}
	lines := []string{
		fmt.Sprintf("Score %d   HP %d   Waves %d   %.0fs", s.result.Score, s.result.Hp, s.result.Waves, s.result.Duration),
		"Press Enter to play again",
	}
	if s.newBest {
		lines = append([]string{"New best score!"}, lines...)
	}

	cx, cy := config.ScreenWidth/2, config.ScreenHeight/2-40
	b := text.BoundString(face, title)
	text.Draw(screen, title, face, cx-b.Dx()/2, cy, clr)
	for i, l := range lines {
		b := text.BoundString(face, l)
		text.Draw(screen, l, face, cx-b.Dx()/2, cy+24+i*config.HUDLineHeight, color.White)
	}
}

func (s *ResultState) Exit() {}
