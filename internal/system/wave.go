// internal/system/wave.go
package system

import (
	"log"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/interfaces"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"

	"github.com/zyedidia/generic/mapset"
)

const (
	spawnKey     = "spawn"
	waveTimerKey = "waveTimer"
)

type WaveSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	grid            *grid.Grid
	movement        *MovementSystem
	game            interfaces.GameContext
	eventDispatcher *event.Dispatcher

	wavesStarted  int
	totalWaves    int
	timerDeadline float64
}

func NewWaveSystem(ecs *entity.ECS, clk *clock.Clock, g *grid.Grid, movement *MovementSystem, eventDispatcher *event.Dispatcher) *WaveSystem {
	ws := &WaveSystem{
		ecs:             ecs,
		clock:           clk,
		grid:            g,
		movement:        movement,
		eventDispatcher: eventDispatcher,
	}
	eventDispatcher.Subscribe(event.EnemyKilled, ws)
	eventDispatcher.Subscribe(event.EnemyReachedExit, ws)
	return ws
}

// SetGameContext задаёт движок, которому таймер волны передаёт управление.
func (s *WaveSystem) SetGameContext(game interfaces.GameContext) {
	s.game = game
}

// LoadRounds создаёт сущности волн для всех раундов уровня.
func (s *WaveSystem) LoadRounds(rounds []defs.RoundDefinition) {
	number := 0
	for ri, rd := range rounds {
		round := &component.Round{Number: ri + 1}
		for _, wd := range rd.Waves {
			number++
			id := s.ecs.NewEntity()
			s.ecs.Waves[id] = &component.Wave{
				Def:       wd,
				Number:    number,
				Round:     ri,
				Remaining: wd.Count,
				State:     component.WavePending,
			}
			round.Incoming = append(round.Incoming, id)
		}
		s.ecs.Rounds = append(s.ecs.Rounds, round)
	}
	s.totalWaves = number
}

// StartNextWave снимает первую волну из очереди текущего раунда, запускает
// её спавн и таймер до следующей волны. Пустая очередь — ничего не делает.
func (s *WaveSystem) StartNextWave() bool {
	if s.ecs.GameState != component.PlayingState {
		return false
	}
	round := s.ecs.CurrentRound()
	if round == nil || len(round.Incoming) == 0 {
		return false
	}
	id := round.Incoming[0]
	round.Incoming = round.Incoming[1:]
	wave, ok := s.ecs.Waves[id]
	if !ok {
		log.Printf("[WaveSystem] wave %d is missing", id)
		return false
	}

	wave.StartedAt = s.clock.Now()
	s.StartSpawning(id)
	round.Active = append(round.Active, id)
	s.wavesStarted++

	log.Printf("[WaveSystem] wave %d started (round %d, %d enemies)", wave.Number, round.Number, wave.Remaining)
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveStarted, Data: event.WaveData{
		WaveID: id,
		Number: wave.Number,
		Round:  round.Number,
	}})
	s.startWaveTimer(wave.Def.Period)
	return true
}

// StartSpawning ставит первый тик спавна через SpawnInterval.
func (s *WaveSystem) StartSpawning(id types.EntityID) {
	wave, ok := s.ecs.Waves[id]
	if !ok {
		return
	}
	wave.State = component.WaveSpawning
	s.scheduleSpawn(id, wave)
}

func (s *WaveSystem) scheduleSpawn(id types.EntityID, wave *component.Wave) {
	s.clock.ScheduleKeyed(id, spawnKey, wave.Def.SpawnInterval, func() {
		s.spawnTick(id)
	})
}

func (s *WaveSystem) spawnTick(id types.EntityID) {
	wave, ok := s.ecs.Waves[id]
	if !ok {
		return
	}
	if wave.Remaining > 0 {
		s.spawnEnemy(id, wave)
		wave.Remaining--
	}
	if wave.Remaining > 0 {
		s.scheduleSpawn(id, wave)
		return
	}

	wave.State = component.WaveDepleted
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveDepleted, Data: event.WaveData{
		WaveID: id,
		Number: wave.Number,
		Round:  wave.Round + 1,
	}})
	s.checkRoundCompleted()
}

func (s *WaveSystem) spawnEnemy(waveID types.EntityID, wave *component.Wave) types.EntityID {
	def, ok := defs.EnemyLibrary[wave.Def.Enemy]
	if !ok {
		log.Printf("[WaveSystem] enemy definition not found for ID: %s", wave.Def.Enemy)
		return 0
	}

	id := s.ecs.NewEntity()
	s.ecs.Enemies[id] = &component.Enemy{
		Type:       def.ID,
		WaveID:     waveID,
		Armor:      wave.Def.Armor,
		Scale:      wave.Def.Scale,
		Bounty:     wave.Def.Bounty,
		Score:      wave.Def.Score,
		ExitDamage: wave.Def.ExitDamage,
		State:      component.EnemySpawning,
		Attackers:  mapset.New[types.EntityID](),
	}
	s.ecs.Healths[id] = &component.Health{
		Max:       wave.Def.Hp,
		Current:   wave.Def.Hp,
		Projected: wave.Def.Hp,
	}
	s.ecs.Movements[id] = &component.Movement{
		BaseSpeed: wave.Def.Speed,
		CurrSpeed: wave.Def.Speed,
		Cell:      s.grid.Start,
		Next:      s.grid.Start,
	}
	wave.Live = append(wave.Live, id)

	s.eventDispatcher.Dispatch(event.Event{Type: event.EnemySpawned, Data: event.EnemyData{
		EnemyID: id,
		WaveID:  waveID,
		Cell:    s.grid.Start,
	}})
	s.movement.Begin(id)
	return id
}

func (s *WaveSystem) startWaveTimer(period float64) {
	s.timerDeadline = s.clock.Now() + period
	s.scheduleTimerTick()
}

// Таймер идёт шагами по WaveTimerTick, последний шаг укорочен так, чтобы
// следующая волна стартовала ровно через period.
func (s *WaveSystem) scheduleTimerTick() {
	step := s.timerDeadline - s.clock.Now()
	if step > config.WaveTimerTick {
		step = config.WaveTimerTick
	}
	s.clock.ScheduleKeyed(0, waveTimerKey, step, s.timerTick)
}

func (s *WaveSystem) timerTick() {
	remaining := s.timerDeadline - s.clock.Now()
	if remaining <= 1e-9 {
		if s.game != nil {
			s.game.StartNextWave()
		} else {
			s.StartNextWave()
		}
		return
	}
	s.eventDispatcher.Dispatch(event.Event{Type: event.WaveTimerTick, Data: event.WaveData{Remaining: remaining}})
	s.scheduleTimerTick()
}

// TimeToNextWave returns the seconds left on the wave timer, or 0 when it is not running.
func (s *WaveSystem) TimeToNextWave() float64 {
	if !s.clock.IsPending(0, waveTimerKey) {
		return 0
	}
	return s.timerDeadline - s.clock.Now()
}

// WavesStarted returns how many waves have been started so far.
func (s *WaveSystem) WavesStarted() int {
	return s.wavesStarted
}

// TotalWaves returns the number of waves in all rounds.
func (s *WaveSystem) TotalWaves() int {
	return s.totalWaves
}

// ActiveEnemies возвращает живых врагов активных волн текущего раунда
// в порядке волн и спавна.
func (s *WaveSystem) ActiveEnemies() []types.EntityID {
	round := s.ecs.CurrentRound()
	if round == nil {
		return nil
	}
	var ids []types.EntityID
	for _, waveID := range round.Active {
		if wave, ok := s.ecs.Waves[waveID]; ok {
			ids = append(ids, wave.Live...)
		}
	}
	return ids
}

// IncomingEnemies counts enemies of the current round that have not spawned yet.
func (s *WaveSystem) IncomingEnemies() int {
	round := s.ecs.CurrentRound()
	if round == nil {
		return 0
	}
	n := 0
	for _, ids := range [][]types.EntityID{round.Active, round.Incoming} {
		for _, id := range ids {
			if wave, ok := s.ecs.Waves[id]; ok {
				n += wave.Remaining
			}
		}
	}
	return n
}

// checkRoundCompleted закрывает текущий раунд, когда все его волны
// отспавнены и живых врагов не осталось.
func (s *WaveSystem) checkRoundCompleted() {
	if s.ecs.GameState != component.PlayingState {
		return
	}
	round := s.ecs.CurrentRound()
	if round == nil || len(round.Incoming) > 0 {
		return
	}
	for _, id := range round.Active {
		wave, ok := s.ecs.Waves[id]
		if ok && (wave.State != component.WaveDepleted || len(wave.Live) > 0) {
			return
		}
	}

	for _, id := range round.Active {
		s.ecs.RemoveEntity(id)
	}
	s.ecs.Rounds = s.ecs.Rounds[1:]
	log.Printf("[WaveSystem] round %d completed", round.Number)
	s.eventDispatcher.Dispatch(event.Event{Type: event.RoundCompleted, Data: event.WaveData{Round: round.Number}})

	if len(s.ecs.Rounds) == 0 {
		s.clock.CancelKey(0, waveTimerKey)
		s.ecs.GameState = component.WonState
		log.Printf("[WaveSystem] level completed")
		s.eventDispatcher.Dispatch(event.Event{Type: event.LevelCompleted})
	}
}

// OnEvent убирает врага из списка живых его волны.
func (s *WaveSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled, event.EnemyReachedExit:
		data, ok := e.Data.(event.EnemyData)
		if !ok {
			return
		}
		if wave, ok := s.ecs.Waves[data.WaveID]; ok {
			wave.RemoveLive(data.EnemyID)
		}
		s.checkRoundCompleted()
	}
}
