package systems

import (
	"log"
	"math/rand"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/entities"
	"github.com/gonewx/skyfall/pkg/game"
)

// SpawnSystem 来袭导弹生成系统
//
// 职责：
//   - 按波次和难度计算生成间隔与导弹速度
//   - 在生成阶段按间隔创建来袭导弹
//   - 从幸存的炮台和城市中均匀随机选择攻击目标
//
// 架构说明：
//   - 生成间隔 = max(minSpawnIntervalMs, (base - wave*step) * intervalFactor)
//   - 导弹速度 = (missileBaseSpeed + wave*speedStep) * speedFactor
//   - 两者都随波次和难度单调递增压力
type SpawnSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cfg           *config.GameConfig
}

// NewSpawnSystem 创建导弹生成系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 会话状态（提供难度档位）
//   - cfg: 游戏配置
func NewSpawnSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig) *SpawnSystem {
	return &SpawnSystem{
		entityManager: em,
		gameState:     gs,
		cfg:           cfg,
	}
}

// SpawnIntervalMs 计算指定波次的生成间隔（毫秒）
// 间隔随波次递减、随难度系数缩放，但不低于配置下限
func (s *SpawnSystem) SpawnIntervalMs(wave int) float64 {
	tier := s.cfg.Tier(s.gameState.Difficulty)
	interval := (s.cfg.BaseSpawnIntervalMs - float64(wave)*s.cfg.IntervalStepMs) * tier.IntervalFactor
	if interval < s.cfg.MinSpawnIntervalMs {
		return s.cfg.MinSpawnIntervalMs
	}
	return interval
}

// MissileSpeed 计算指定波次的导弹速度
// 速度随波次和难度单调递增
func (s *SpawnSystem) MissileSpeed(wave int) float64 {
	tier := s.cfg.Tier(s.gameState.Difficulty)
	return (s.cfg.MissileBaseSpeed + float64(wave)*s.cfg.MissileWaveSpeedStep) * tier.SpeedFactor
}

// Update 推进生成计时并按需创建导弹
//
// 只在波次的生成阶段工作：配额已满或处于过渡阶段时不生成
// 没有幸存目标时跳过生成（败局边缘状态，不报错）
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (s *SpawnSystem) Update(deltaTime float64) {
	ws := s.waveState()
	if ws == nil {
		return
	}

	if ws.Phase != components.WaveSpawning {
		return
	}
	if ws.Spawned >= ws.Quota {
		return
	}

	ws.SpawnTimerMs += deltaTime * 1000
	if ws.SpawnTimerMs < s.SpawnIntervalMs(ws.WaveNumber) {
		return
	}
	ws.SpawnTimerMs = 0

	targetX, targetY, ok := s.pickTarget()
	if !ok {
		// 场上已无可攻击目标，跳过本次生成
		return
	}

	startX := rand.Float64() * s.cfg.FieldWidth
	speed := s.MissileSpeed(ws.WaveNumber)

	entityID, err := entities.NewIncomingMissile(s.entityManager, startX, 0, targetX, targetY, speed)
	if err != nil {
		log.Printf("[SpawnSystem] ERROR: failed to spawn missile: %v", err)
		return
	}

	ws.Spawned++
	log.Printf("[SpawnSystem] Spawned missile %d: wave=%d, target=(%.1f, %.1f), speed=%.5f (%d/%d)",
		entityID, ws.WaveNumber, targetX, targetY, speed, ws.Spawned, ws.Quota)
}

// pickTarget 从幸存的炮台和城市中均匀随机选择一个目标
//
// 返回：
//   - targetX, targetY: 目标世界坐标
//   - bool: false 表示没有幸存目标
func (s *SpawnSystem) pickTarget() (float64, float64, bool) {
	type candidate struct {
		x, y float64
	}
	candidates := make([]candidate, 0)

	for _, id := range ecs.GetEntitiesWith2[*components.TurretComponent, *components.PositionComponent](s.entityManager) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](s.entityManager, id)
		if turret.Destroyed {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		candidates = append(candidates, candidate{pos.X, pos.Y})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.CityComponent, *components.PositionComponent](s.entityManager) {
		city, _ := ecs.GetComponent[*components.CityComponent](s.entityManager, id)
		if city.Destroyed {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		candidates = append(candidates, candidate{pos.X, pos.Y})
	}

	if len(candidates) == 0 {
		return 0, 0, false
	}

	chosen := candidates[rand.Intn(len(candidates))]
	return chosen.x, chosen.y, true
}

// waveState 获取波次状态组件（战场唯一）
func (s *SpawnSystem) waveState() *components.WaveStateComponent {
	ids := ecs.GetEntitiesWith1[*components.WaveStateComponent](s.entityManager)
	if len(ids) == 0 {
		return nil
	}
	ws, ok := ecs.GetComponent[*components.WaveStateComponent](s.entityManager, ids[0])
	if !ok {
		return nil
	}
	return ws
}
