// cmd/headless/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"go-gem-defense/internal/app"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/event"
)

const appName = "gem_defense"

type options struct {
	levelPath     string
	scriptPath    string
	seed          int64
	dt            float64
	maxTime       float64
	recordPath    string
	frameInterval float64
	saveRecord    bool
	quiet         bool
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.levelPath, "level", "levels/level1.yaml", "path to the level file")
	flag.StringVar(&o.scriptPath, "script", "", "build script to run before the first wave")
	flag.Int64Var(&o.seed, "seed", 1, "seed for random gems")
	flag.Float64Var(&o.dt, "dt", 0.05, "simulation step in seconds")
	flag.Float64Var(&o.maxTime, "max-time", 900, "stop after this many simulated seconds")
	flag.StringVar(&o.recordPath, "record", "", "write msgpack snapshot frames to this file")
	flag.Float64Var(&o.frameInterval, "frame-interval", 0.5, "seconds between recorded frames")
	flag.BoolVar(&o.saveRecord, "save-record", false, "store the result in the best-score records")
	flag.BoolVar(&o.quiet, "quiet", false, "silence simulation logs")
	flag.Parse()
	return o
}

func main() {
	o := parseFlags()
	if o.quiet {
		log.SetOutput(io.Discard)
	}
	if err := run(o, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "headless: %v\n", err)
		os.Exit(1)
	}
}

func run(o options, out io.Writer) error {
	if o.dt <= 0 {
		return fmt.Errorf("dt must be positive, got %v", o.dt)
	}
	level, err := defs.LoadLevel(o.levelPath)
	if err != nil {
		return err
	}
	g, err := app.NewGame(level, o.seed)
	if err != nil {
		return err
	}

	if o.scriptPath != "" {
		script, err := loadScript(o.scriptPath)
		if err != nil {
			return err
		}
		built, err := script.apply(g)
		if err != nil {
			log.Printf("[Headless] script finished with errors: %v", err)
		}
		fmt.Fprintf(out, "built %d of %d towers\n", built, len(script.Towers))
	}

	var rec *app.Recorder
	if o.recordPath != "" {
		f, err := os.Create(o.recordPath)
		if err != nil {
			return fmt.Errorf("failed to create recording: %w", err)
		}
		defer f.Close()
		rec = app.NewRecorder(f)
	}

	simulate(g, o, rec)

	r := g.Result()
	fmt.Fprintf(out, "level %q: %s after %.1fs\n", r.Level, r.Outcome, r.Duration)
	fmt.Fprintf(out, "score %d, hp %d/%d, waves %d/%d\n",
		r.Score, r.Hp, g.ECS.PlayerState.MaxHp, r.Waves, g.WaveSystem.TotalWaves())
	if rec != nil {
		fmt.Fprintf(out, "recorded %d frames to %s\n", rec.Frames(), o.recordPath)
	}

	if o.saveRecord {
		best, err := app.OpenRecordStore(appName).Save(r)
		if err != nil {
			return err
		}
		if best {
			fmt.Fprintln(out, "new best score")
		}
	}
	return nil
}

// simulate запускает первую волну и крутит часы, пока уровень не закончится
// или не выйдет время. Следующие волны стартуют по таймеру. Если раунд
// закрылся, когда таймер уже отработал, следующий раунд запускается здесь,
// как это сделал бы игрок.
func simulate(g *app.Game, o options, rec *app.Recorder) {
	idle := false
	g.EventDispatcher.Subscribe(event.RoundCompleted, event.ListenerFunc(func(event.Event) {
		idle = g.WaveSystem.TimeToNextWave() == 0
	}))

	g.StartNextWave()
	nextFrame := 0.0
	for g.Phase() == component.PlayingState && g.GetGameTime() < o.maxTime {
		g.Update(o.dt)
		if idle {
			idle = false
			g.StartNextWave()
		}
		if rec == nil || g.GetGameTime() < nextFrame {
			continue
		}
		if err := rec.Record(g.Snapshot()); err != nil {
			log.Printf("[Headless] recording stopped: %v", err)
			rec = nil
			continue
		}
		nextFrame = g.GetGameTime() + o.frameInterval
	}
	if rec != nil {
		if err := rec.Record(g.Snapshot()); err != nil {
			log.Printf("[Headless] final frame lost: %v", err)
		}
	}
}
