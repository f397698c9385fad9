package audio

import (
	"testing"
	"time"

	"github.com/gopxl/beep"
)

func TestBlipGeneratorFadesOut(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewBlipGenerator(rate, 880, 10*time.Millisecond)

	samples := make([][2]float64, rate.N(20*time.Millisecond))
	n, ok := gen.Stream(samples)
	if !ok || n != len(samples) {
		t.Fatalf("Expected %d samples, got %d (ok=%v)", len(samples), n, ok)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -1.0 || samples[i][0] > 1.0 {
			t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
		}
		if samples[i][0] != samples[i][1] {
			t.Fatalf("Sample %d: channels differ", i)
		}
	}
	// После конца огибающей остаётся тишина.
	for i := rate.N(10 * time.Millisecond); i < n; i++ {
		if samples[i][0] != 0 {
			t.Fatalf("Expected silence at sample %d, got %f", i, samples[i][0])
		}
	}
	if gen.Err() != nil {
		t.Errorf("Expected no error, got: %v", gen.Err())
	}
}

func TestSweepGeneratorRange(t *testing.T) {
	rate := beep.SampleRate(44100)
	gen := NewSweepGenerator(rate, 440, 110, 50*time.Millisecond)
	samples := make([][2]float64, 512)
	n, ok := gen.Stream(samples)
	if !ok || n != 512 {
		t.Fatalf("Expected 512 samples, got %d", n)
	}
	for i := 0; i < n; i++ {
		if samples[i][0] < -0.25 || samples[i][0] > 0.25 {
			t.Fatalf("Sample %d out of range: %f", i, samples[i][0])
		}
	}
}

func TestSoundManagerSilentBeforeInit(t *testing.T) {
	sm := NewSoundManager()
	// Без Initialize вызовы не трогают устройство и не паникуют.
	sm.PlayKill()
	sm.PlayLeak()
	sm.PlayDefeat()
	sm.Cleanup()
}
