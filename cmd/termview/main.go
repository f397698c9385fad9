// cmd/termview/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/audio"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/pkg/grid"

	"github.com/gdamore/tcell/v2"
)

const frameInterval = 33 * time.Millisecond

// viewer — терминальный режим наблюдения за уровнем.
type viewer struct {
	screen  tcell.Screen
	game    *app.Game
	level   *defs.LevelDefinition
	cursor  grid.Coord
	message string
}

func newViewer(screen tcell.Screen, g *app.Game, level *defs.LevelDefinition) *viewer {
	return &viewer{
		screen: screen,
		game:   g,
		level:  level,
		cursor: g.Grid.Start,
	}
}

func (v *viewer) report(err error) {
	if err != nil {
		v.message = err.Error()
		return
	}
	v.message = ""
}

func (v *viewer) moveCursor(dr, dc int) {
	next := grid.Coord{Row: v.cursor.Row + dr, Col: v.cursor.Col + dc}
	if v.game.Grid.Contains(next) {
		v.cursor = next
	}
}

// equipFirst вставляет первый самоцвет инвентаря в башню под курсором.
func (v *viewer) equipFirst() error {
	tower := v.game.TowerAt(v.cursor)
	if tower == 0 {
		return fmt.Errorf("no tower at %d,%d", v.cursor.Row, v.cursor.Col)
	}
	for i, id := range v.game.Inventory() {
		if id != 0 {
			return v.game.SwapGems(app.InventorySlot(i), app.TowerSlot(tower))
		}
	}
	return app.ErrInvalidGem
}

// unequip возвращает самоцвет башни под курсором в свободную ячейку.
func (v *viewer) unequip() error {
	tower := v.game.TowerAt(v.cursor)
	if tower == 0 {
		return fmt.Errorf("no tower at %d,%d", v.cursor.Row, v.cursor.Col)
	}
	for i, id := range v.game.Inventory() {
		if id == 0 {
			return v.game.SwapGems(app.TowerSlot(tower), app.InventorySlot(i))
		}
	}
	return app.ErrInventoryFull
}

// handleKey returns false when the viewer should quit.
func (v *viewer) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(1, 0)
	case tcell.KeyDown:
		v.moveCursor(-1, 0)
	case tcell.KeyLeft:
		v.moveCursor(0, -1)
	case tcell.KeyRight:
		v.moveCursor(0, 1)
	case tcell.KeyRune:
		return v.handleRune(ev.Rune())
	}
	return true
}

func (v *viewer) handleRune(r rune) bool {
	switch r {
	case 'q':
		return false
	case 'b':
		_, err := v.game.BuildTower(v.cursor)
		v.report(err)
	case '1', '2', '3', '4':
		_, err := v.game.CreateGem(defs.GemColor(r-'1'), defs.RankSliver)
		v.report(err)
	case 'e':
		v.report(v.equipFirst())
	case 'u':
		v.report(v.unequip())
	case ' ':
		v.game.StartNextWave()
	case 's':
		v.game.HandleSpeedClick()
	case 'p':
		v.game.HandlePauseClick()
	case 'r':
		v.report(v.game.LoadLevel(v.level))
		v.cursor = v.game.Grid.Start
	}
	return true
}

func (v *viewer) run() {
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	last := time.Now()
	for {
		select {
		case ev, ok := <-events:
			if !ok {
				return
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !v.handleKey(ev) {
					return
				}
			case *tcell.EventResize:
				v.screen.Sync()
			}
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			if dt > config.MaxDeltaTime {
				dt = config.MaxDeltaTime
			}
			last = now
			v.game.Update(dt)
			drawFrame(v.screen, v.game, v.game.Snapshot(), v.cursor, v.message)
			v.screen.Show()
		}
	}
}

func main() {
	levelPath := flag.String("level", "levels/level1.yaml", "path to the level file")
	seed := flag.Int64("seed", time.Now().UnixNano(), "seed for random gems")
	logPath := flag.String("log", "", "write logs to this file instead of discarding them")
	mute := flag.Bool("mute", false, "disable sound")
	flag.Parse()

	// Терминал занят экраном, поэтому логи идут в файл или никуда.
	log.SetOutput(io.Discard)
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	level, err := defs.LoadLevel(*levelPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load level: %v\n", err)
		os.Exit(1)
	}
	g, err := app.NewGame(level, *seed)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start level: %v\n", err)
		os.Exit(1)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	if err := screen.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize: %v\n", err)
		os.Exit(1)
	}
	defer screen.Fini()

	v := newViewer(screen, g, level)
	if !*mute {
		sound := audio.NewSoundManager()
		if err := sound.Initialize(); err != nil {
			log.Printf("[TermView] sound disabled: %v", err)
		} else {
			sound.Subscribe(g.EventDispatcher)
			defer sound.Cleanup()
		}
	}
	v.run()
}
