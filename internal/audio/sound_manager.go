// internal/audio/sound_manager.go
package audio

import (
	"math"
	"sync"
	"time"

	"go-gem-defense/internal/event"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate = beep.SampleRate(48000)

	killFreq  = 880.0
	leakFreq  = 120.0
	blipLen   = 60 * time.Millisecond
	buzzLen   = 150 * time.Millisecond
	defeatLen = 400 * time.Millisecond
)

// SoundManager озвучивает игровые события короткими сигналами.
// До Initialize и после Cleanup все Play* ничего не делают.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{mixer: &beep.Mixer{}}
}

// Initialize sets up the audio device.
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		return err
	}
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the device.
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	sm.initialized = false
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// PlayKill plays a short high blip.
func (sm *SoundManager) PlayKill() {
	sm.play(beep.Take(sampleRate.N(blipLen), NewBlipGenerator(sampleRate, killFreq, blipLen)))
}

// PlayLeak plays a low buzz when an enemy gets through.
func (sm *SoundManager) PlayLeak() {
	sm.play(beep.Take(sampleRate.N(buzzLen), NewBlipGenerator(sampleRate, leakFreq, buzzLen)))
}

// PlayDefeat plays a falling tone.
func (sm *SoundManager) PlayDefeat() {
	sm.play(beep.Take(sampleRate.N(defeatLen), NewSweepGenerator(sampleRate, 440, 110, defeatLen)))
}

// OnEvent делает SoundManager подписчиком диспетчера событий.
func (sm *SoundManager) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled:
		sm.PlayKill()
	case event.EnemyReachedExit:
		sm.PlayLeak()
	case event.GameOver:
		sm.PlayDefeat()
	}
}

// Subscribe registers the manager for the events it voices.
func (sm *SoundManager) Subscribe(d *event.Dispatcher) {
	d.Subscribe(event.EnemyKilled, sm)
	d.Subscribe(event.EnemyReachedExit, sm)
	d.Subscribe(event.GameOver, sm)
}

// BlipGenerator — синус с линейным затуханием.
type BlipGenerator struct {
	sr     beep.SampleRate
	freq   float64
	length int
	pos    int
}

func NewBlipGenerator(sr beep.SampleRate, freq float64, d time.Duration) *BlipGenerator {
	return &BlipGenerator{sr: sr, freq: freq, length: sr.N(d)}
}

func (g *BlipGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		envelope := 0.0
		if g.pos < g.length {
			envelope = 1 - float64(g.pos)/float64(g.length)
		}
		sample := 0.3 * math.Sin(2*math.Pi*g.freq*t) * envelope
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BlipGenerator) Err() error {
	return nil
}

// SweepGenerator плавно меняет частоту от from до to.
type SweepGenerator struct {
	sr       beep.SampleRate
	from, to float64
	length   int
	pos      int
	phase    float64
}

func NewSweepGenerator(sr beep.SampleRate, from, to float64, d time.Duration) *SweepGenerator {
	return &SweepGenerator{sr: sr, from: from, to: to, length: sr.N(d)}
}

func (g *SweepGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		progress := math.Min(float64(g.pos)/float64(g.length), 1)
		freq := g.from + (g.to-g.from)*progress
		g.phase += 2 * math.Pi * freq / float64(g.sr)
		sample := 0.25 * math.Sin(g.phase) * (1 - progress)
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *SweepGenerator) Err() error {
	return nil
}
