// internal/system/tower.go
package system

import (
	"log"
	"slices"

	"go-gem-defense/internal/clock"
	"go-gem-defense/internal/component"
	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/event"
	"go-gem-defense/internal/types"
	"go-gem-defense/pkg/grid"
)

const (
	searchKey   = "search"
	fireKey     = "fire"
	rechargeKey = "rechargeLoop"
)

// TowerSystem управляет циклом атаки башен: Idle → Searching → Attacking.
type TowerSystem struct {
	ecs             *entity.ECS
	clock           *clock.Clock
	grid            *grid.Grid
	combat          *CombatSystem
	movement        *MovementSystem
	waves           *WaveSystem
	projectiles     *ProjectileSystem
	area            *AreaAttackSystem
	eventDispatcher *event.Dispatcher
}

func NewTowerSystem(
	ecs *entity.ECS,
	clk *clock.Clock,
	g *grid.Grid,
	combat *CombatSystem,
	movement *MovementSystem,
	waves *WaveSystem,
	projectiles *ProjectileSystem,
	area *AreaAttackSystem,
	eventDispatcher *event.Dispatcher,
) *TowerSystem {
	ts := &TowerSystem{
		ecs:             ecs,
		clock:           clk,
		grid:            g,
		combat:          combat,
		movement:        movement,
		waves:           waves,
		projectiles:     projectiles,
		area:            area,
		eventDispatcher: eventDispatcher,
	}
	eventDispatcher.Subscribe(event.EnemyKilled, ts)
	eventDispatcher.Subscribe(event.EnemyReachedExit, ts)
	return ts
}

// StartAll запускает поиск цели у всех башен в порядке их ID.
func (s *TowerSystem) StartAll() {
	ids := make([]types.EntityID, 0, len(s.ecs.Towers))
	for id := range s.ecs.Towers {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	for _, id := range ids {
		s.SearchForTarget(id)
	}
}

func (s *TowerSystem) gemOf(tower *component.Tower) (*component.Gem, bool) {
	if tower.GemID == 0 {
		return nil, false
	}
	gem, ok := s.ecs.Gems[tower.GemID]
	return gem, ok
}

func (s *TowerSystem) inRange(tower *component.Tower, gem *component.Gem, enemyID types.EntityID) bool {
	pos, ok := s.movement.PositionAt(enemyID)
	if !ok {
		return false
	}
	return withinRange(s.grid, tower.Cell, pos, gem.Definition().Range)
}

// candidates собирает живых врагов активных волн в радиусе башни,
// у которых прогнозное здоровье ещё положительно.
func (s *TowerSystem) candidates(tower *component.Tower, gem *component.Gem) []*Candidate {
	var out []*Candidate
	for _, id := range s.waves.ActiveEnemies() {
		enemy, ok := s.ecs.Enemies[id]
		health, hasHealth := s.ecs.Healths[id]
		if !ok || !hasHealth || !enemy.IsAlive() || health.Projected <= 0 {
			continue
		}
		if !s.inRange(tower, gem, id) {
			continue
		}
		out = append(out, &Candidate{
			ID:          id,
			TravelDist:  enemy.TravelDist,
			ProjectedHp: health.Projected,
			Slowed:      s.ecs.IsSlowed(id),
			Poisoned:    s.ecs.IsPoisoned(id),
		})
	}
	return out
}

// SearchForTarget ищет цель. Без самоцвета или без активного раунда башня
// остаётся в Idle. Если никого нет в радиусе, поиск повторяется через
// TargetSearchInterval.
func (s *TowerSystem) SearchForTarget(id types.EntityID) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	gem, hasGem := s.gemOf(tower)
	if !hasGem || s.ecs.CurrentRound() == nil {
		s.StopTargetSearch(id)
		return
	}
	if tower.State != component.TowerIdle {
		return
	}
	tower.State = component.TowerSearching

	cands := s.candidates(tower, gem)
	if len(cands) == 0 {
		s.clock.ScheduleKeyed(id, searchKey, config.TargetSearchInterval, func() {
			if t, ok := s.ecs.Towers[id]; ok && t.State == component.TowerSearching {
				t.State = component.TowerIdle
			}
			s.SearchForTarget(id)
		})
		return
	}

	target := PolicyFor(gem.Definition().Policy)(cands)
	if target == 0 {
		tower.State = component.TowerIdle
		return
	}
	tower.Target = target
	tower.State = component.TowerAttacking
	s.ecs.Enemies[target].Attackers.Put(id)
	s.FireWeapon(id)
}

// StopTargetSearch отменяет опрос и возвращает ищущую башню в Idle.
func (s *TowerSystem) StopTargetSearch(id types.EntityID) {
	s.clock.CancelKey(id, searchKey)
	if tower, ok := s.ecs.Towers[id]; ok && tower.State == component.TowerSearching {
		tower.State = component.TowerIdle
	}
}

// ClearTarget снимает башню с цели и переводит её в Idle.
func (s *TowerSystem) ClearTarget(id types.EntityID) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	s.release(id, tower)
	tower.State = component.TowerIdle
}

// release убирает башню из множества атакующих цели и забывает цель.
func (s *TowerSystem) release(id types.EntityID, tower *component.Tower) {
	if enemy, ok := s.ecs.Enemies[tower.Target]; ok {
		enemy.Attackers.Remove(id)
	}
	tower.Target = 0
}

// FireWeapon стреляет по текущей цели и ставит следующий выстрел.
func (s *TowerSystem) FireWeapon(id types.EntityID) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	gem, hasGem := s.gemOf(tower)
	if !hasGem {
		s.ClearTarget(id)
		s.StopTargetSearch(id)
		return
	}

	enemy, alive := s.ecs.Enemies[tower.Target]
	if tower.Target == 0 || tower.State != component.TowerAttacking || !alive || !enemy.IsAlive() {
		s.ClearTarget(id)
		s.SearchForTarget(id)
		return
	}
	if !s.inRange(tower, gem, tower.Target) {
		s.ClearTarget(id)
		s.SearchForTarget(id)
		return
	}

	def := gem.Definition()
	target := tower.Target
	damage := gem.Damage()
	s.combat.ProjectDamage(target, damage, 0)
	s.launchAttack(id, tower, gem, target)

	delay := def.Period
	if gem.Charges == 0 && usesCharges(gem) {
		delay *= config.RechargePenalty
	}
	if def.Retarget {
		// Цель выбирается заново к следующему выстрелу.
		s.release(id, tower)
	}
	s.clock.ScheduleKeyed(id, fireKey, delay, func() {
		s.FireWeapon(id)
	})
}

// Unequip останавливает башню перед тем, как самоцвет из неё заберут.
func (s *TowerSystem) Unequip(id types.EntityID) types.EntityID {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return 0
	}
	gemID := tower.GemID
	s.clock.CancelKey(id, searchKey)
	s.clock.CancelKey(id, fireKey)
	if gemID != 0 {
		s.clock.CancelKey(gemID, rechargeKey)
	}
	s.ClearTarget(id)
	tower.GemID = 0
	return gemID
}

// Equip вставляет самоцвет и, если раунд идёт, начинает поиск цели.
func (s *TowerSystem) Equip(id, gemID types.EntityID) {
	tower, ok := s.ecs.Towers[id]
	if !ok {
		return
	}
	if tower.GemID != 0 {
		log.Printf("[TowerSystem] tower %d already holds gem %d", id, tower.GemID)
		return
	}
	tower.GemID = gemID
	if gem, ok := s.ecs.Gems[gemID]; ok {
		s.resumeRecharge(gemID, gem)
	}
	if s.ecs.CurrentRound() != nil {
		s.SearchForTarget(id)
	}
}

// OnEvent снимает с цели все башни, атаковавшие погибшего или ушедшего врага.
// Башня дожидается своего следующего выстрела и тогда ищет новую цель.
func (s *TowerSystem) OnEvent(e event.Event) {
	switch e.Type {
	case event.EnemyKilled, event.EnemyReachedExit:
		data, ok := e.Data.(event.EnemyData)
		if !ok {
			return
		}
		enemy, ok := s.ecs.Enemies[data.EnemyID]
		if !ok {
			return
		}
		var attackers []types.EntityID
		enemy.Attackers.Each(func(towerID types.EntityID) {
			attackers = append(attackers, towerID)
		})
		for _, towerID := range attackers {
			enemy.Attackers.Remove(towerID)
			if tower, ok := s.ecs.Towers[towerID]; ok && tower.Target == data.EnemyID {
				tower.Target = 0
			}
		}
	}
}
