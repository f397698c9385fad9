// internal/utils/prng.go
package utils

import (
	"go-gem-defense/internal/defs"
	"math/rand"
	"time"
)

// PRNGService — это обертка над стандартным генератором случайных чисел Go,
// которая позволяет использовать предсказуемый (seeded) рандом во всей игре.
type PRNGService struct {
	rng *rand.Rand
}

// NewPRNGService создает новый экземпляр сервиса с указанным сидом.
// Если сид равен 0, используется текущее время.
func NewPRNGService(seed int64) *PRNGService {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	source := rand.NewSource(seed)
	return &PRNGService{
		rng: rand.New(source),
	}
}

// Intn возвращает случайное целое число в диапазоне [0, n).
func (s *PRNGService) Intn(n int) int {
	return s.rng.Intn(n)
}

// Float64 возвращает случайное число с плавающей точкой в диапазоне [0.0, 1.0).
func (s *PRNGService) Float64() float64 {
	return s.rng.Float64()
}

// RandomColor выбирает цвет самоцвета равновероятно.
func (s *PRNGService) RandomColor() defs.GemColor {
	return defs.GemColor(s.Intn(defs.NumGemColors))
}

// RandomRank выбирает ранг не выше maxRank. Каждый следующий ранг
// выпадает вдвое реже предыдущего.
func (s *PRNGService) RandomRank(maxRank defs.GemRank) defs.GemRank {
	if !maxRank.Valid() {
		maxRank = defs.GemRank(defs.NumGemRanks - 1)
	}
	totalWeight := 0
	for r := 0; r <= int(maxRank); r++ {
		totalWeight += 1 << (int(maxRank) - r)
	}

	roll := s.Intn(totalWeight)
	upto := 0
	for r := 0; r <= int(maxRank); r++ {
		upto += 1 << (int(maxRank) - r)
		if roll < upto {
			return defs.GemRank(r)
		}
	}
	return maxRank
}
