package config

import "image/color"

const (
	ScreenWidth        = 1200
	ScreenHeight       = 760
	TileSize           = 48.0
	MapOffsetX         = 96.0
	MapOffsetY         = 72.0
	MaxDeltaTime       = 0.06
	ClickCooldown      = 300
	IndicatorOffsetX   = 30
	IndicatorRadius    = 10.0
	HUDLineHeight      = 18
	SpeedButtonX       = 1150
	SpeedButtonY       = 30
	SpeedButtonSize    = 12.0
	PauseButtonX       = 1110
	PauseButtonY       = 30
	PauseButtonSize    = 10.0
	NoticeDuration     = 2.0
	MaxGridGenAttempts = 10000

	// Сетка
	GridWidth       = 21
	GridHeight      = 13
	OpenProbability = 0.68

	// Экономика
	StartingCurrency         = 200
	StartingLives            = 20
	SellRefundFraction       = 0.6
	UpgradeCostFactor        = 0.6
	ComboDecay               = 2.5
	ComboBonusCap            = 10
	EarlyStartBonusPerSecond = 2.0
	WaveClearBonusBase       = 15
	WaveClearBonusPerWave    = 3

	// Прогрессия
	ResearchPerWave      = 3
	ResearchKillDivisor  = 10
	ResearchVictoryBonus = 25
	WinsPerRank          = 3
	MaxRank              = 10
	RankBonusPerRank     = 0.05

	// Волны
	TotalWaves              = 20
	BossWaveInterval        = 5
	FirstWaveDelay          = 8.0
	InterWaveDelay          = 12.0
	BaseEnemiesPerWave      = 6
	EnemiesIncrementPerWave = 2
	InitialSpawnInterval    = 1.0
	MinSpawnInterval        = 0.35
	SpawnIntervalDecrement  = 0.05
	HealthScalePerWave      = 0.15

	// Сущности
	EnemyRadius          = 0.3
	SlowFactor           = 0.5
	ProjectileHitEpsilon = 0.1
	SplashDamageFactor   = 0.5
	UltimatePulseFactor  = 2.0

	// Структуры
	MaxStructureLevel    = 5
	UltimateLevel        = 4
	DamagePerLevel       = 0.25
	RangePerLevel        = 0.05
	CooldownPerLevel     = 0.9
	HealthPerLevel       = 0.2
	SlowDurationPerLevel = 0.1
	IncomePerLevel       = 0.25

	// Визуальные эффекты
	DamageFlashDuration  = 0.15
	FloatingTextDuration = 0.9
	FloatingTextRise     = 0.8
	EffectDuration       = 0.4
	ShockwaveRadius      = 1.5
)

var (
	BackgroundColor   = color.RGBA{20, 20, 30, 255}
	OpenColor         = color.RGBA{70, 100, 120, 220}
	WallColor         = color.RGBA{60, 50, 55, 255}
	PathColor         = color.RGBA{110, 90, 60, 230}
	EntryColor        = color.RGBA{0, 255, 0, 255}
	ExitColor         = color.RGBA{255, 0, 0, 255}
	TextLightColor    = color.RGBA{240, 240, 240, 255}
	TextDarkColor     = color.RGBA{20, 20, 30, 255}
	IdleStateColor    = color.RGBA{70, 130, 180, 220}
	WaveStateColor    = color.RGBA{220, 60, 60, 220}
	IndicatorStroke   = color.RGBA{240, 240, 240, 255}
	TowerStrokeColor  = color.RGBA{255, 255, 255, 255}
	UltimateColor     = color.RGBA{255, 215, 0, 255}
	DamageFlashColor  = color.RGBA{255, 255, 255, 255}
	SlowedColor       = color.RGBA{120, 200, 255, 255}
	DamageTextColor   = color.RGBA{255, 90, 90, 255}
	GoldTextColor     = color.RGBA{255, 215, 0, 255}
	DeathEffectColor  = color.RGBA{200, 40, 40, 255}
	PulseEffectColor  = color.RGBA{255, 140, 0, 255}
	SplashEffectColor = color.RGBA{255, 200, 80, 255}
	ProjectileColor   = color.RGBA{255, 255, 0, 255}
	HealthBarColor    = color.RGBA{80, 220, 90, 255}
	PauseColor        = color.RGBA{70, 130, 180, 220}
	PlayColor         = color.RGBA{80, 200, 120, 220}
	StrokeWidth       = 2.0
	SpeedButtonColors = []color.Color{
		color.RGBA{70, 130, 180, 220},  // x1
		color.RGBA{220, 60, 60, 220},   // x2
		color.RGBA{194, 178, 128, 255}, // x4, песочно-жёлтый
	}
	SpeedMultipliers = []float64{1, 2, 4}
)
