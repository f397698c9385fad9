// internal/app/snapshot.go
package app

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"go-gem-defense/internal/types"
	"go-gem-defense/internal/utils"

	"github.com/vmihailenco/msgpack/v5"
)

// EnemySnapshot — положение и состояние врага в единицах клеток.
type EnemySnapshot struct {
	ID       uint64  `msgpack:"id"`
	Type     string  `msgpack:"type"`
	X        float64 `msgpack:"x"`
	Y        float64 `msgpack:"y"`
	Hp       float64 `msgpack:"hp"`
	MaxHp    float64 `msgpack:"maxHp"`
	State    string  `msgpack:"state"`
	Slowed   bool    `msgpack:"slowed"`
	Poisoned bool    `msgpack:"poisoned"`
}

type TowerSnapshot struct {
	ID     uint64 `msgpack:"id"`
	Row    int    `msgpack:"row"`
	Col    int    `msgpack:"col"`
	Color  int    `msgpack:"color"` // -1 без самоцвета
	Rank   int    `msgpack:"rank"`
	State  string `msgpack:"state"`
	Target uint64 `msgpack:"target"`
}

type ProjectileSnapshot struct {
	X     float64 `msgpack:"x"`
	Y     float64 `msgpack:"y"`
	Color int     `msgpack:"color"`
}

// Snapshot is a plain copy of the simulation at one moment.
type Snapshot struct {
	RunID       string               `msgpack:"runId"`
	Time        float64              `msgpack:"time"`
	Phase       string               `msgpack:"phase"`
	Score       int                  `msgpack:"score"`
	Energy      int                  `msgpack:"energy"`
	Hp          int                  `msgpack:"hp"`
	Round       int                  `msgpack:"round"`
	Wave        int                  `msgpack:"wave"`
	NextWaveIn  float64              `msgpack:"nextWaveIn"`
	Enemies     []EnemySnapshot      `msgpack:"enemies"`
	Towers      []TowerSnapshot      `msgpack:"towers"`
	Projectiles []ProjectileSnapshot `msgpack:"projectiles"`
}

func sortedIDs[V any](m map[types.EntityID]V) []types.EntityID {
	ids := make([]types.EntityID, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Snapshot копирует состояние мира. Сущности упорядочены по ID.
func (g *Game) Snapshot() Snapshot {
	progress := g.WaveProgress()
	p := g.ECS.PlayerState
	s := Snapshot{
		RunID:      g.RunID.String(),
		Time:       g.Clock.Now(),
		Phase:      g.ECS.GameState.String(),
		Score:      p.Score,
		Energy:     p.Energy,
		Hp:         p.Hp,
		Round:      progress.Round,
		Wave:       progress.WavesStarted,
		NextWaveIn: progress.TimeToNextWave,
	}

	for _, id := range sortedIDs(g.ECS.Enemies) {
		enemy := g.ECS.Enemies[id]
		pos, ok := g.MovementSystem.PositionAt(id)
		if !ok {
			continue
		}
		es := EnemySnapshot{
			ID:       uint64(id),
			Type:     enemy.Type,
			X:        pos.X,
			Y:        pos.Y,
			State:    enemy.State.String(),
			Slowed:   g.ECS.IsSlowed(id),
			Poisoned: g.ECS.IsPoisoned(id),
		}
		if h, ok := g.ECS.Healths[id]; ok {
			es.Hp, es.MaxHp = h.Current, h.Max
		}
		s.Enemies = append(s.Enemies, es)
	}

	for _, id := range sortedIDs(g.ECS.Towers) {
		tower := g.ECS.Towers[id]
		ts := TowerSnapshot{
			ID:     uint64(id),
			Row:    tower.Cell.Row,
			Col:    tower.Cell.Col,
			Color:  -1,
			State:  tower.State.String(),
			Target: uint64(tower.Target),
		}
		if gem, ok := g.ECS.Gems[tower.GemID]; ok {
			ts.Color, ts.Rank = int(gem.Color), int(gem.Rank)
		}
		s.Towers = append(s.Towers, ts)
	}

	now := g.Clock.Now()
	for _, id := range sortedIDs(g.ECS.Projectiles) {
		proj := g.ECS.Projectiles[id]
		target, ok := g.MovementSystem.PositionAt(proj.TargetID)
		if !ok {
			continue
		}
		t := 1.0
		if flight := proj.ImpactAt - proj.LaunchedAt; flight > 0 {
			t = utils.Clamp01((now - proj.LaunchedAt) / flight)
		}
		s.Projectiles = append(s.Projectiles, ProjectileSnapshot{
			X:     utils.Lerp(proj.FromX, target.X, t),
			Y:     utils.Lerp(proj.FromY, target.Y, t),
			Color: int(proj.Color),
		})
	}
	return s
}

// Recorder пишет снимки в поток msgpack, один кадр за другим.
type Recorder struct {
	enc    *msgpack.Encoder
	frames int
}

func NewRecorder(w io.Writer) *Recorder {
	return &Recorder{enc: msgpack.NewEncoder(w)}
}

// Record appends one frame.
func (r *Recorder) Record(s Snapshot) error {
	if err := r.enc.Encode(&s); err != nil {
		return fmt.Errorf("record frame %d: %w", r.frames, err)
	}
	r.frames++
	return nil
}

// Frames returns how many frames were written.
func (r *Recorder) Frames() int {
	return r.frames
}

// ReadRecording decodes every frame of a recording.
func ReadRecording(r io.Reader) ([]Snapshot, error) {
	dec := msgpack.NewDecoder(r)
	var frames []Snapshot
	for {
		var s Snapshot
		if err := dec.Decode(&s); err != nil {
			if errors.Is(err, io.EOF) {
				return frames, nil
			}
			return frames, fmt.Errorf("read frame %d: %w", len(frames), err)
		}
		frames = append(frames, s)
	}
}
