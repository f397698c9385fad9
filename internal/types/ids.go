// internal/types/ids.go
package types

// EntityID — идентификатор сущности в реестре ECS. Ноль зарезервирован
// и означает «нет сущности».
type EntityID uint64
