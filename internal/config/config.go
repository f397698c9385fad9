// internal/config/config.go
package config

import "image/color"

// Тайминги симуляции, в секундах игрового времени.
const (
	PoisonTickInterval   = 1.0
	TargetSearchInterval = 0.0625
	DeathDespawnDelay    = 10.0
	ExitDespawnDelay     = 1.0
	WaveTimerTick        = 0.5
	RedImpactDelay       = 0.2

	// CellWidth is the reference cell size in pixels; hop time and
	// projectile flight are expressed relative to it.
	CellWidth             = 64.0
	CellTraversalBaseTime = CellWidth / 64.0
	ProjectileStep        = 50.0 // пикселей за один шаг полёта снаряда

	SlowMagnitude   = 0.5
	SlowDuration    = 2.0
	MaxCharges      = 3
	RechargePenalty = 2.0
	PoisonDivisor   = 2.5
	PoisonTicks     = 5

	InventorySlots = 8
)

// Значения по умолчанию для описания уровня.
const (
	DefaultEnemySpeed = 0.5
	DefaultEnemyScale = 1.0
	DefaultExitDamage = 1
	DefaultTileset    = "grass"
	DefaultEnemyType  = "skeleton"
)

// Viewer settings.
const (
	ScreenWidth      = 1200
	ScreenHeight     = 900
	TileSize         = 48.0
	MapOffsetX       = 24.0
	MapOffsetY       = 48.0
	MaxDeltaTime     = 0.06
	ClickCooldown    = 300
	EnemyRadius      = 12.0
	TowerRadius      = 16.0
	StrokeWidth      = 2.0
	HUDLineHeight    = 16
	InventoryOffsetX = 900
	InventoryOffsetY = 120
	InventorySlotSz  = 40
	ButtonSize       = 14.0
	SpeedButtonX     = ScreenWidth - 150
	PauseButtonX     = ScreenWidth - 100
	IndicatorX       = ScreenWidth - 50
	ButtonY          = 40.0
	IndicatorRadius  = 14.0
	InfoPanelHeight  = 120
	HealthIndicatorX = InventoryOffsetX
	HealthIndicatorY = 520
)

var (
	BackgroundColor  = color.RGBA{20, 20, 30, 255}
	PathableColor    = color.RGBA{70, 100, 120, 220}
	BuildableColor   = color.RGBA{60, 120, 70, 220}
	OpenColor        = color.RGBA{90, 130, 110, 220}
	ClosedColor      = color.RGBA{40, 40, 50, 255}
	EntryColor       = color.RGBA{0, 255, 0, 255}
	ExitColor        = color.RGBA{255, 0, 0, 255}
	TextLightColor   = color.RGBA{240, 240, 240, 255}
	EnemyColor       = color.RGBA{230, 230, 210, 255}
	DyingColor       = color.RGBA{90, 90, 90, 160}
	SlowedColor      = color.RGBA{120, 170, 255, 255}
	PoisonedColor    = color.RGBA{120, 230, 90, 255}
	TowerStrokeColor = color.RGBA{255, 255, 255, 255}
	TowerBaseColor   = color.RGBA{128, 128, 128, 255}
	PathArrowColor   = color.RGBA{255, 255, 255, 60}
	PauseColor       = color.RGBA{220, 220, 220, 220}
	PlayColor        = color.RGBA{80, 200, 80, 220}
	SelectionColor   = color.RGBA{255, 255, 0, 255}
	PanelColor       = color.RGBA{30, 30, 45, 230}
	PhaseColors      = map[string]color.RGBA{
		"playing": {70, 130, 180, 255},
		"won":     {50, 200, 50, 255},
		"lost":    {200, 40, 40, 255},
	}
	GemColors = []color.RGBA{
		{255, 50, 50, 255},  // Red
		{255, 215, 0, 255},  // Yellow
		{50, 255, 50, 255},  // Green
		{50, 100, 255, 255}, // Blue
	}
	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4
	}
)
