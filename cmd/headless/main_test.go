package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go-gem-defense/internal/app"
)

const corridorLevel = `
name: corridor
start:
  hp: 5
  energy: 50
costs:
  tower: 10
  gem: [5]
pathmap:
  - "cccccccc"
  - "sppppppe"
  - "bbbbbbbb"
rounds:
  - waves:
      - hp: 50
        count: 2
        spawnInterval: 1
        period: 10
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to write %s: %v", name, err)
	}
	return path
}

func TestParseScript(t *testing.T) {
	s, err := parseScript([]byte("towers:\n  - {row: 0, col: 2, gem: Topaz, rank: 1}\n  - {row: 0, col: 4}\n"))
	if err != nil {
		t.Fatalf("parseScript failed: %v", err)
	}
	if len(s.Towers) != 2 || s.Towers[0].Rank != 1 || s.Towers[1].Gem != "" {
		t.Errorf("Unexpected script %+v", s)
	}

	tests := map[string]string{
		"unknown colour": "towers:\n  - {row: 0, col: 2, gem: violet}\n",
		"bad rank":       "towers:\n  - {row: 0, col: 2, gem: red, rank: 7}\n",
		"bad yaml":       "towers: [",
	}
	for name, src := range tests {
		t.Run(name, func(t *testing.T) {
			if _, err := parseScript([]byte(src)); err == nil {
				t.Error("Expected an error")
			}
		})
	}
}

func TestRunWinsWithScript(t *testing.T) {
	dir := t.TempDir()
	o := options{
		levelPath:     writeFile(t, dir, "level.yaml", corridorLevel),
		scriptPath:    writeFile(t, dir, "script.yaml", "towers:\n  - {row: 0, col: 2, gem: yellow}\n  - {row: 1, col: 3}\n"),
		seed:          1,
		dt:            0.05,
		maxTime:       60,
		recordPath:    filepath.Join(dir, "run.msgpack"),
		frameInterval: 1,
	}

	var out bytes.Buffer
	if err := run(o, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()
	// Вторая башня стоит на клетке только для прохода и будет отклонена.
	if !strings.Contains(got, "built 1 of 2 towers") {
		t.Errorf("Expected the blocking tower to be skipped, got:\n%s", got)
	}
	if !strings.Contains(got, `level "corridor": won`) {
		t.Errorf("Expected a win, got:\n%s", got)
	}

	f, err := os.Open(o.recordPath)
	if err != nil {
		t.Fatalf("Failed to open recording: %v", err)
	}
	defer f.Close()
	frames, err := app.ReadRecording(f)
	if err != nil {
		t.Fatalf("ReadRecording failed: %v", err)
	}
	if len(frames) < 2 {
		t.Fatalf("Expected several frames, got %d", len(frames))
	}
	if last := frames[len(frames)-1]; last.Phase != "won" {
		t.Errorf("Expected the last frame to be won, got %q", last.Phase)
	}
}

// Таймер первой волны истекает раньше, чем раунд закрывается, так что
// второй раунд запускает сам прогон.
const twoRoundLevel = `
name: two rounds
start:
  hp: 5
  energy: 50
costs:
  tower: 10
  gem: [5]
pathmap:
  - "cccccccc"
  - "sppppppe"
  - "bbbbbbbb"
rounds:
  - waves:
      - hp: 50
        count: 2
        spawnInterval: 1
        period: 1
  - waves:
      - hp: 50
        count: 1
        spawnInterval: 1
        period: 10
`

func TestRunAdvancesToNextRound(t *testing.T) {
	dir := t.TempDir()
	o := options{
		levelPath:  writeFile(t, dir, "level.yaml", twoRoundLevel),
		scriptPath: writeFile(t, dir, "script.yaml", "towers:\n  - {row: 0, col: 2, gem: yellow}\n"),
		seed:       1,
		dt:         0.05,
		maxTime:    120,
	}

	var out bytes.Buffer
	if err := run(o, &out); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	got := out.String()
	if !strings.Contains(got, `level "two rounds": won`) {
		t.Errorf("Expected a win, got:\n%s", got)
	}
	if !strings.Contains(got, "waves 2/2") {
		t.Errorf("Expected both waves to start, got:\n%s", got)
	}
}

func TestRunRejectsBadStep(t *testing.T) {
	if err := run(options{dt: 0}, &bytes.Buffer{}); err == nil {
		t.Error("Expected an error for a zero step")
	}
	if err := run(options{dt: 0.1, levelPath: "missing.yaml"}, &bytes.Buffer{}); err == nil {
		t.Error("Expected an error for a missing level")
	}
}
