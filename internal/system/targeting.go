// internal/system/targeting.go
package system

import (
	"log"

	"go-gem-defense/internal/defs"
	"go-gem-defense/internal/types"
)

// Candidate — враг, доступный башне для выбора цели.
type Candidate struct {
	ID          types.EntityID
	TravelDist  int
	ProjectedHp float64
	Slowed      bool
	Poisoned    bool
}

// TargetPolicy выбирает цель из непустого набора кандидатов.
type TargetPolicy func(candidates []*Candidate) types.EntityID

// furthest returns the candidate with the greatest TravelDist among those
// accepted by keep. Ties keep the earlier candidate.
func furthest(candidates []*Candidate, keep func(*Candidate) bool) types.EntityID {
	var best *Candidate
	for _, c := range candidates {
		if !keep(c) {
			continue
		}
		if best == nil || c.TravelDist > best.TravelDist {
			best = c
		}
	}
	if best == nil {
		return 0
	}
	return best.ID
}

// StandardPolicy выбирает врага, прошедшего дальше всех.
func StandardPolicy(candidates []*Candidate) types.EntityID {
	if len(candidates) == 0 {
		log.Printf("[Targeting] invariant violation: empty candidate set")
		return 0
	}
	if id := furthest(candidates, func(c *Candidate) bool { return c.ProjectedHp > 0 }); id != 0 {
		return id
	}
	// Every candidate is already doomed by damage in flight; pick one anyway.
	return furthest(candidates, func(*Candidate) bool { return true })
}

// SlowedPreferencePolicy предпочитает незамедленных врагов.
func SlowedPreferencePolicy(candidates []*Candidate) types.EntityID {
	if id := furthest(candidates, func(c *Candidate) bool { return !c.Slowed && c.ProjectedHp > 0 }); id != 0 {
		return id
	}
	return StandardPolicy(candidates)
}

// PoisonedPreferencePolicy предпочитает неотравленных врагов.
func PoisonedPreferencePolicy(candidates []*Candidate) types.EntityID {
	if id := furthest(candidates, func(c *Candidate) bool { return !c.Poisoned && c.ProjectedHp > 0 }); id != 0 {
		return id
	}
	return StandardPolicy(candidates)
}

// PolicyFor maps a colour's targeting rule to its selector.
func PolicyFor(p defs.TargetPolicy) TargetPolicy {
	switch p {
	case defs.PolicySlowedPreference:
		return SlowedPreferencePolicy
	case defs.PolicyPoisonedPreference:
		return PoisonedPreferencePolicy
	default:
		return StandardPolicy
	}
}
