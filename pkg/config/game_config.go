package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Difficulty 难度档位标识
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
)

// DifficultyTier 单个难度档位的参数
// 三个档位共同缩放生成间隔、导弹速度与波次配额
type DifficultyTier struct {
	// IntervalFactor 生成间隔系数，越小生成越快
	// easy=1.2, normal=1.0, hard=0.8
	IntervalFactor float64 `yaml:"intervalFactor"`

	// SpeedFactor 导弹速度系数，越大下落越快
	// easy=0.7, normal=1.0, hard=1.3
	SpeedFactor float64 `yaml:"speedFactor"`

	// BaseQuota 第一波的导弹配额
	BaseQuota int `yaml:"baseQuota"`

	// QuotaIncrement 每波配额增量（配额跨波次只增不减）
	QuotaIncrement int `yaml:"quotaIncrement"`
}

// GameConfig 游戏可调参数
// 定义了战场布局、计分规则、生成与速度公式的全部常量
type GameConfig struct {
	// 战场尺寸（逻辑坐标）
	FieldWidth  float64 `yaml:"fieldWidth"`  // 战场宽度，默认 800
	FieldHeight float64 `yaml:"fieldHeight"` // 战场高度，默认 600

	// 计分规则
	WinScore      int `yaml:"winScore"`      // 胜利分数阈值
	PointsPerKill int `yaml:"pointsPerKill"` // 每摧毁一枚导弹的得分
	AmmoBonus     int `yaml:"ammoBonus"`     // 波次结算时每发剩余弹药的奖励分
	CityBonus     int `yaml:"cityBonus"`     // 波次结算时每座幸存城市的奖励分

	// TransitionDelayMs 波次过渡延迟（真实时间毫秒）
	TransitionDelayMs int `yaml:"transitionDelayMs"`

	// 炮台布局：TurretX 与 TurretAmmo 一一对应
	TurretX    []float64 `yaml:"turretX"`    // 各炮台横坐标
	TurretAmmo []int     `yaml:"turretAmmo"` // 各炮台弹药上限
	TurretY    float64   `yaml:"turretY"`    // 炮台纵坐标（底部一排）

	// 城市布局
	CityX []float64 `yaml:"cityX"` // 各城市横坐标
	CityY float64   `yaml:"cityY"` // 城市纵坐标

	// 生成间隔公式：max(minSpawnIntervalMs,
	//   (baseSpawnIntervalMs - wave*intervalStepMs) * intervalFactor)
	BaseSpawnIntervalMs float64 `yaml:"baseSpawnIntervalMs"` // 默认 1500
	IntervalStepMs      float64 `yaml:"intervalStepMs"`      // 默认 100
	MinSpawnIntervalMs  float64 `yaml:"minSpawnIntervalMs"`  // 默认 400

	// 导弹速度公式：(missileBaseSpeed + wave*missileWaveSpeedStep) * speedFactor
	// 速度单位：每 16ms 参考帧推进的进度量
	MissileBaseSpeed     float64 `yaml:"missileBaseSpeed"`
	MissileWaveSpeedStep float64 `yaml:"missileWaveSpeedStep"`

	// InterceptorSpeed 拦截弹速度（远快于来袭导弹）
	InterceptorSpeed float64 `yaml:"interceptorSpeed"`

	// 爆炸参数：拦截 > 连锁 > 撞击
	InterceptMaxRadius float64 `yaml:"interceptMaxRadius"` // 拦截爆炸最大半径
	ChainMaxRadius     float64 `yaml:"chainMaxRadius"`     // 连锁爆炸最大半径
	ImpactMaxRadius    float64 `yaml:"impactMaxRadius"`    // 撞击爆炸最大半径
	ExplosionGrowth    float64 `yaml:"explosionGrowth"`    // 半径增长速率（每 16ms）
	ExplosionShrink    float64 `yaml:"explosionShrink"`    // 半径收缩速率（每 16ms），小于增长速率

	// Difficulties 三个难度档位的参数表
	Difficulties map[Difficulty]DifficultyTier `yaml:"difficulties"`
}

// DefaultGameConfig 返回内置默认参数
// 配置文件缺失或字段缺失时以此为准
func DefaultGameConfig() *GameConfig {
	return &GameConfig{
		FieldWidth:  800,
		FieldHeight: 600,

		WinScore:      10000,
		PointsPerKill: 100,
		AmmoBonus:     5,
		CityBonus:     500,

		TransitionDelayMs: 2000,

		TurretX:    []float64{60, 210, 400, 590, 740},
		TurretAmmo: []int{20, 20, 40, 20, 20},
		TurretY:    560,

		CityX: []float64{120, 270, 340, 460, 530, 680},
		CityY: 580,

		BaseSpawnIntervalMs: 1500,
		IntervalStepMs:      100,
		MinSpawnIntervalMs:  400,

		MissileBaseSpeed:     0.003,
		MissileWaveSpeedStep: 0.0004,
		InterceptorSpeed:     0.03,

		InterceptMaxRadius: 60,
		ChainMaxRadius:     40,
		ImpactMaxRadius:    25,
		ExplosionGrowth:    2.5,
		ExplosionShrink:    1.0,

		Difficulties: map[Difficulty]DifficultyTier{
			DifficultyEasy:   {IntervalFactor: 1.2, SpeedFactor: 0.7, BaseQuota: 6, QuotaIncrement: 2},
			DifficultyNormal: {IntervalFactor: 1.0, SpeedFactor: 1.0, BaseQuota: 8, QuotaIncrement: 3},
			DifficultyHard:   {IntervalFactor: 0.8, SpeedFactor: 1.3, BaseQuota: 10, QuotaIncrement: 4},
		},
	}
}

// LoadGameConfig 从YAML文件加载游戏配置
//
// 文件中缺失的字段回填默认值（向后兼容），加载后做合法性校验
//
// 参数：
//
//	filepath - 配置文件路径（相对或绝对路径）
//
// 返回：
//
//	*GameConfig - 解析后的配置对象
//	error - 文件读取、解析或校验失败时返回错误
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML from %s: %w", filepath, err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config in %s: %w", filepath, err)
	}

	return &cfg, nil
}

// applyDefaults 为缺失的可选字段回填默认值
func applyDefaults(cfg *GameConfig) {
	def := DefaultGameConfig()

	if cfg.FieldWidth == 0 {
		cfg.FieldWidth = def.FieldWidth
	}
	if cfg.FieldHeight == 0 {
		cfg.FieldHeight = def.FieldHeight
	}
	if cfg.WinScore == 0 {
		cfg.WinScore = def.WinScore
	}
	if cfg.PointsPerKill == 0 {
		cfg.PointsPerKill = def.PointsPerKill
	}
	if cfg.AmmoBonus == 0 {
		cfg.AmmoBonus = def.AmmoBonus
	}
	if cfg.CityBonus == 0 {
		cfg.CityBonus = def.CityBonus
	}
	if cfg.TransitionDelayMs == 0 {
		cfg.TransitionDelayMs = def.TransitionDelayMs
	}
	if len(cfg.TurretX) == 0 {
		cfg.TurretX = def.TurretX
	}
	if len(cfg.TurretAmmo) == 0 {
		cfg.TurretAmmo = def.TurretAmmo
	}
	if cfg.TurretY == 0 {
		cfg.TurretY = def.TurretY
	}
	if len(cfg.CityX) == 0 {
		cfg.CityX = def.CityX
	}
	if cfg.CityY == 0 {
		cfg.CityY = def.CityY
	}
	if cfg.BaseSpawnIntervalMs == 0 {
		cfg.BaseSpawnIntervalMs = def.BaseSpawnIntervalMs
	}
	if cfg.IntervalStepMs == 0 {
		cfg.IntervalStepMs = def.IntervalStepMs
	}
	if cfg.MinSpawnIntervalMs == 0 {
		cfg.MinSpawnIntervalMs = def.MinSpawnIntervalMs
	}
	if cfg.MissileBaseSpeed == 0 {
		cfg.MissileBaseSpeed = def.MissileBaseSpeed
	}
	if cfg.MissileWaveSpeedStep == 0 {
		cfg.MissileWaveSpeedStep = def.MissileWaveSpeedStep
	}
	if cfg.InterceptorSpeed == 0 {
		cfg.InterceptorSpeed = def.InterceptorSpeed
	}
	if cfg.InterceptMaxRadius == 0 {
		cfg.InterceptMaxRadius = def.InterceptMaxRadius
	}
	if cfg.ChainMaxRadius == 0 {
		cfg.ChainMaxRadius = def.ChainMaxRadius
	}
	if cfg.ImpactMaxRadius == 0 {
		cfg.ImpactMaxRadius = def.ImpactMaxRadius
	}
	if cfg.ExplosionGrowth == 0 {
		cfg.ExplosionGrowth = def.ExplosionGrowth
	}
	if cfg.ExplosionShrink == 0 {
		cfg.ExplosionShrink = def.ExplosionShrink
	}
	if len(cfg.Difficulties) == 0 {
		cfg.Difficulties = def.Difficulties
	} else {
		// 补齐缺失的难度档位
		for name, tier := range def.Difficulties {
			if _, ok := cfg.Difficulties[name]; !ok {
				cfg.Difficulties[name] = tier
			}
		}
	}
}

// validateGameConfig 校验配置的完整性和合法性
func validateGameConfig(cfg *GameConfig) error {
	if len(cfg.TurretX) == 0 {
		return fmt.Errorf("at least one turret is required")
	}
	if len(cfg.TurretX) != len(cfg.TurretAmmo) {
		return fmt.Errorf("turretX and turretAmmo length mismatch: %d vs %d",
			len(cfg.TurretX), len(cfg.TurretAmmo))
	}
	for i, ammo := range cfg.TurretAmmo {
		if ammo < 1 {
			return fmt.Errorf("turretAmmo[%d]: ammo must be at least 1, got %d", i, ammo)
		}
	}
	if len(cfg.CityX) == 0 {
		return fmt.Errorf("at least one city is required")
	}
	if cfg.WinScore < 1 {
		return fmt.Errorf("winScore must be positive, got %d", cfg.WinScore)
	}
	if cfg.PointsPerKill < 1 {
		return fmt.Errorf("pointsPerKill must be positive, got %d", cfg.PointsPerKill)
	}
	if cfg.MinSpawnIntervalMs <= 0 {
		return fmt.Errorf("minSpawnIntervalMs must be positive, got %f", cfg.MinSpawnIntervalMs)
	}
	if cfg.ExplosionGrowth <= cfg.ExplosionShrink {
		return fmt.Errorf("explosionGrowth (%f) must be greater than explosionShrink (%f)",
			cfg.ExplosionGrowth, cfg.ExplosionShrink)
	}
	if !(cfg.ImpactMaxRadius < cfg.InterceptMaxRadius) {
		return fmt.Errorf("impactMaxRadius (%f) must be smaller than interceptMaxRadius (%f)",
			cfg.ImpactMaxRadius, cfg.InterceptMaxRadius)
	}
	if !(cfg.ChainMaxRadius < cfg.InterceptMaxRadius) {
		return fmt.Errorf("chainMaxRadius (%f) must be smaller than interceptMaxRadius (%f)",
			cfg.ChainMaxRadius, cfg.InterceptMaxRadius)
	}

	for _, name := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		tier, ok := cfg.Difficulties[name]
		if !ok {
			return fmt.Errorf("difficulty tier %q is required", name)
		}
		if tier.IntervalFactor <= 0 {
			return fmt.Errorf("difficulty %q: intervalFactor must be positive, got %f", name, tier.IntervalFactor)
		}
		if tier.SpeedFactor <= 0 {
			return fmt.Errorf("difficulty %q: speedFactor must be positive, got %f", name, tier.SpeedFactor)
		}
		if tier.BaseQuota < 1 {
			return fmt.Errorf("difficulty %q: baseQuota must be at least 1, got %d", name, tier.BaseQuota)
		}
		if tier.QuotaIncrement < 0 {
			return fmt.Errorf("difficulty %q: quotaIncrement cannot be negative, got %d", name, tier.QuotaIncrement)
		}
	}

	return nil
}

// Tier 返回指定难度的档位参数
// 未知难度回退到普通档位
func (cfg *GameConfig) Tier(d Difficulty) DifficultyTier {
	if tier, ok := cfg.Difficulties[d]; ok {
		return tier
	}
	return cfg.Difficulties[DifficultyNormal]
}
