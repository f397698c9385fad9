// cmd/game/main.go
package main

import (
	"flag"
	"log"
	"net/http"
	_ "net/http/pprof"
	"time"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/state"

	"github.com/hajimehoshi/ebiten/v2"
)

const appName = "gem_defense"

type AppGame struct {
	stateMachine   *state.StateMachine
	lastUpdateTime time.Time
}

func (a *AppGame) Update() error {
	now := time.Now()
	deltaTime := now.Sub(a.lastUpdateTime).Seconds()
	if deltaTime > config.MaxDeltaTime {
		deltaTime = config.MaxDeltaTime
	}
	a.lastUpdateTime = now
	a.stateMachine.Update(deltaTime)
	return nil
}

func (a *AppGame) Draw(screen *ebiten.Image) {
	a.stateMachine.Draw(screen)
}

func (a *AppGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

func main() {
	levelPath := flag.String("level", "levels/level1.yaml", "path to the level file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for random gems")
	pprof := flag.Bool("pprof", false, "serve pprof on localhost:6060")
	flag.Parse()

	if *pprof {
		go func() {
			log.Println(http.ListenAndServe("localhost:6060", nil))
		}()
	}

	level, err := defs.LoadLevel(*levelPath)
	if err != nil {
		log.Fatalf("Failed to load level: %v", err)
	}
	g, err := app.NewGame(level, *seed)
	if err != nil {
		log.Fatalf("Failed to start level: %v", err)
	}
	records := app.OpenRecordStore(appName)

	sm := state.NewStateMachine() // Создаём машину состояний
	sm.SetState(state.NewGameState(sm, g, level, records))
	a := &AppGame{
		stateMachine:   sm,
		lastUpdateTime: time.Now(),
	}
	ebiten.SetWindowSize(config.ScreenWidth, config.ScreenHeight)
	ebiten.SetWindowTitle("Gem Defense: " + level.Name)
	if err := ebiten.RunGame(a); err != nil {
		log.Fatal(err)
	}
}
