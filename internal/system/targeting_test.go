package system

import (
	"testing"

	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

func cands(dists ...int) []*Candidate {
	out := make([]*Candidate, len(dists))
	for i, d := range dists {
		out[i] = &Candidate{ID: types.EntityID(i + 1), TravelDist: d, ProjectedHp: 10}
	}
	return out
}

func TestStandardPolicy(t *testing.T) {
	tests := []struct {
		name string
		set  []*Candidate
		want types.EntityID
	}{
		{"furthest wins", cands(3, 7, 5), 2},
		{"tie keeps first", cands(4, 9, 9), 2},
		{"single", cands(1), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StandardPolicy(tt.set); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}

func TestStandardPolicySkipsDoomed(t *testing.T) {
	set := cands(3, 7, 5)
	set[1].ProjectedHp = -5
	if got := StandardPolicy(set); got != 3 {
		t.Errorf("Expected 3, got %d", got)
	}

	for _, c := range set {
		c.ProjectedHp = 0
	}
	if got := StandardPolicy(set); got == 0 {
		t.Error("Expected a non-zero pick from a non-empty set")
	}
}

func TestStandardPolicyEmpty(t *testing.T) {
	if got := StandardPolicy(nil); got != 0 {
		t.Errorf("Expected 0 for an empty set, got %d", got)
	}
}

func TestSlowedPreferencePolicy(t *testing.T) {
	set := cands(9, 4, 6)
	set[0].Slowed = true
	set[2].Slowed = true
	if got := SlowedPreferencePolicy(set); got != 2 {
		t.Errorf("Expected the unslowed enemy 2, got %d", got)
	}

	set[1].Slowed = true
	if got := SlowedPreferencePolicy(set); got != 1 {
		t.Errorf("Expected fallback to the furthest enemy 1, got %d", got)
	}
}

func TestPoisonedPreferencePolicy(t *testing.T) {
	set := cands(2, 8, 5)
	set[1].Poisoned = true
	if got := PoisonedPreferencePolicy(set); got != 3 {
		t.Errorf("Expected the unpoisoned enemy 3, got %d", got)
	}

	for _, c := range set {
		c.Poisoned = true
	}
	if got := PoisonedPreferencePolicy(set); got != 2 {
		t.Errorf("Expected fallback to the furthest enemy 2, got %d", got)
	}
}

func TestPolicyForColours(t *testing.T) {
	set := cands(1, 5)
	set[1].Slowed = true
	set[1].Poisoned = true

	tests := []struct {
		color defs.GemColor
		want  types.EntityID
	}{
		{defs.GemRed, 2},
		{defs.GemYellow, 2},
		{defs.GemGreen, 1},
		{defs.GemBlue, 1},
	}
	for _, tt := range tests {
		t.Run(tt.color.String(), func(t *testing.T) {
			policy := PolicyFor(defs.GemColors[tt.color].Policy)
			if got := policy(set); got != tt.want {
				t.Errorf("Expected %d, got %d", tt.want, got)
			}
		})
	}
}
