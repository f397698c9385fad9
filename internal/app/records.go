// internal/app/records.go
package app

import (
	"fmt"
	"log"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// RunRecord — итог одного прохождения уровня.
type RunRecord struct {
	RunID    string  `yaml:"runId"`
	Level    string  `yaml:"level"`
	Outcome  string  `yaml:"outcome"`
	Score    int     `yaml:"score"`
	Hp       int     `yaml:"hp"`
	Waves    int     `yaml:"waves"`
	Duration float64 `yaml:"duration"` // секунд игрового времени
}

const recordsObject = "records"

// RecordStore хранит лучший результат по каждому уровню.
// gdataManager может быть nil: тогда результаты живут только в памяти.
type RecordStore struct {
	gdataManager *gdata.Manager
	best         map[string]RunRecord
}

func NewRecordStore(gdataManager *gdata.Manager) *RecordStore {
	return &RecordStore{
		gdataManager: gdataManager,
		best:         make(map[string]RunRecord),
	}
}

// OpenRecordStore opens the on-disk store for appName. When the platform
// storage is unavailable the store falls back to memory.
func OpenRecordStore(appName string) *RecordStore {
	manager, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		log.Printf("[RecordStore] Warning: storage unavailable: %v (records kept in memory)", err)
		return NewRecordStore(nil)
	}
	return NewRecordStore(manager)
}

// propertyName делает из названия уровня безопасное имя свойства.
func propertyName(level string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(level) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	if b.Len() == 0 {
		return "unnamed"
	}
	return b.String()
}

// Best returns the best record stored for a level.
func (s *RecordStore) Best(level string) (RunRecord, bool, error) {
	if r, ok := s.best[level]; ok {
		return r, true, nil
	}
	if s.gdataManager == nil {
		return RunRecord{}, false, nil
	}
	prop := propertyName(level)
	if !s.gdataManager.ObjectPropExists(recordsObject, prop) {
		return RunRecord{}, false, nil
	}
	data, err := s.gdataManager.LoadObjectProp(recordsObject, prop)
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("failed to load record: %w", err)
	}
	var r RunRecord
	if err := yaml.Unmarshal(data, &r); err != nil {
		return RunRecord{}, false, fmt.Errorf("failed to unmarshal record: %w", err)
	}
	s.best[level] = r
	return r, true, nil
}

// Save сохраняет запись, если она лучше сохранённой для того же уровня.
// Возвращает true, если запись стала новой лучшей.
func (s *RecordStore) Save(r RunRecord) (bool, error) {
	prev, ok, err := s.Best(r.Level)
	if err != nil {
		log.Printf("[RecordStore] Warning: %v (overwriting)", err)
	}
	if ok && prev.Score >= r.Score {
		return false, nil
	}
	s.best[r.Level] = r

	if s.gdataManager == nil {
		return true, nil
	}
	data, err := yaml.Marshal(r)
	if err != nil {
		return false, fmt.Errorf("failed to marshal record: %w", err)
	}
	if err := s.gdataManager.SaveObjectProp(recordsObject, propertyName(r.Level), data); err != nil {
		return false, fmt.Errorf("failed to save record: %w", err)
	}
	log.Printf("[RecordStore] new best for %q: %d", r.Level, r.Score)
	return true, nil
}

// Result сводит текущее состояние игры в запись.
func (g *Game) Result() RunRecord {
	return RunRecord{
		RunID:    g.RunID.String(),
		Level:    g.Level.Name,
		Outcome:  g.ECS.GameState.String(),
		Score:    g.ECS.PlayerState.Score,
		Hp:       g.ECS.PlayerState.Hp,
		Waves:    g.WaveSystem.WavesStarted(),
		Duration: g.Clock.Now(),
	}
}
