package systems

import (
	"log"
	"time"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/game"
)

// WaveSystem 波次控制系统
//
// 每波经历三个阶段：
//   - 生成（Spawning）：配额未满，生成系统可创建导弹
//   - 清场（Draining）：配额已满，等待场上导弹全部消失
//   - 过渡（Transitioning）：结算奖励，等待固定真实时间后进入下一波
//
// 过渡延迟按真实时钟计算（与模拟帧无关），通过注入的 Clock 读取；
// 到期推进前检查会话仍在对局中且代际令牌未失效，
// 重新开局后过期的推进一律丢弃
type WaveSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cfg           *config.GameConfig
	clock         game.Clock

	// waveEntityID 波次状态组件所在的实体ID
	waveEntityID ecs.EntityID

	// generation 当前会话的代际令牌，Reset 时递增
	generation uint64
}

// NewWaveSystem 创建波次控制系统并初始化第一波
//
// 参数：
//   - em: 实体管理器
//   - gs: 会话状态（提供难度、计分）
//   - cfg: 游戏配置
//   - clock: 真实时间时钟（测试中注入 MockClock）
func NewWaveSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, clock game.Clock) *WaveSystem {
	system := &WaveSystem{
		entityManager: em,
		gameState:     gs,
		cfg:           cfg,
		clock:         clock,
		generation:    1,
	}

	system.createWaveEntity()

	return system
}

// createWaveEntity 创建波次状态实体（每局唯一）
func (s *WaveSystem) createWaveEntity() {
	entityID := s.entityManager.CreateEntity()
	s.waveEntityID = entityID

	tier := s.cfg.Tier(s.gameState.Difficulty)

	ecs.AddComponent(s.entityManager, entityID, &components.WaveStateComponent{
		WaveNumber: 1,
		Spawned:    0,
		Quota:      tier.BaseQuota,
		Phase:      components.WaveSpawning,
		Generation: s.generation,
	})

	log.Printf("[WaveSystem] Created wave entity (ID: %d), wave 1 quota: %d", entityID, tier.BaseQuota)
}

// Reset 重置波次状态到第一波
//
// 重新开局时调用：代际令牌递增，使此前任何未到期的过渡推进失效
func (s *WaveSystem) Reset() {
	ws := s.WaveState()
	if ws == nil {
		return
	}

	s.generation++
	tier := s.cfg.Tier(s.gameState.Difficulty)

	ws.WaveNumber = 1
	ws.Spawned = 0
	ws.Quota = tier.BaseQuota
	ws.Phase = components.WaveSpawning
	ws.SpawnTimerMs = 0
	ws.TransitionDeadline = time.Time{}
	ws.Generation = s.generation

	log.Printf("[WaveSystem] Wave state reset (generation %d), wave 1 quota: %d", s.generation, ws.Quota)
}

// Update 推进波次阶段机
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒），阶段机只依赖状态和真实时钟
func (s *WaveSystem) Update(deltaTime float64) {
	ws := s.WaveState()
	if ws == nil {
		return
	}

	switch ws.Phase {
	case components.WaveSpawning:
		if ws.Spawned >= ws.Quota {
			ws.Phase = components.WaveDraining
			log.Printf("[WaveSystem] Wave %d quota met, draining field", ws.WaveNumber)
		}
		// 配额刚满且场上已空时，同帧直接进入过渡
		if ws.Phase == components.WaveDraining && s.activeMissileCount() == 0 {
			s.enterTransition(ws)
		}

	case components.WaveDraining:
		if s.activeMissileCount() == 0 {
			s.enterTransition(ws)
		}

	case components.WaveTransitioning:
		// 到期推进：会话已离开对局或令牌过期时丢弃
		if !s.clock.Now().Before(ws.TransitionDeadline) {
			s.advanceWave(ws)
		}
	}
}

// IsTransitioning 当前是否处于波次过渡阶段
// 过渡期间开火指令无效
func (s *WaveSystem) IsTransitioning() bool {
	ws := s.WaveState()
	if ws == nil {
		return false
	}
	return ws.Phase == components.WaveTransitioning
}

// enterTransition 进入过渡阶段（每波恰好一次）并立即结算奖励
//
// 奖励规则：
//   - 每座幸存炮台：剩余弹药 × ammoBonus 分，然后弹药补满
//   - 每座幸存城市：cityBonus 分
func (s *WaveSystem) enterTransition(ws *components.WaveStateComponent) {
	ws.Phase = components.WaveTransitioning
	ws.TransitionDeadline = s.clock.Now().Add(time.Duration(s.cfg.TransitionDelayMs) * time.Millisecond)
	ws.Generation = s.generation

	bonus := 0

	for _, id := range ecs.GetEntitiesWith1[*components.TurretComponent](s.entityManager) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](s.entityManager, id)
		if turret.Destroyed {
			continue
		}
		bonus += turret.Ammo * s.cfg.AmmoBonus
		turret.Ammo = turret.MaxAmmo
	}

	for _, id := range ecs.GetEntitiesWith1[*components.CityComponent](s.entityManager) {
		city, _ := ecs.GetComponent[*components.CityComponent](s.entityManager, id)
		if city.Destroyed {
			continue
		}
		bonus += s.cfg.CityBonus
	}

	s.gameState.AddScore(bonus)

	log.Printf("[WaveSystem] Wave %d complete: bonus=%d, next wave in %dms",
		ws.WaveNumber, bonus, s.cfg.TransitionDelayMs)
}

// advanceWave 过渡延迟到期后推进下一波
//
// 保护条件：会话必须仍在对局中，且代际令牌与当前会话一致；
// 否则这是一次过期推进，直接丢弃
func (s *WaveSystem) advanceWave(ws *components.WaveStateComponent) {
	if !s.gameState.IsPlaying() {
		log.Printf("[WaveSystem] Stale wave advance dropped: session no longer playing")
		return
	}
	if ws.Generation != s.generation {
		log.Printf("[WaveSystem] Stale wave advance dropped: generation %d != %d", ws.Generation, s.generation)
		return
	}

	tier := s.cfg.Tier(s.gameState.Difficulty)

	ws.WaveNumber++
	ws.Spawned = 0
	ws.Quota += tier.QuotaIncrement
	ws.Phase = components.WaveSpawning
	ws.SpawnTimerMs = 0

	log.Printf("[WaveSystem] Wave %d started: quota=%d", ws.WaveNumber, ws.Quota)
}

// activeMissileCount 统计场上仍在飞行的来袭导弹数
// 已被摧毁或已落地（待清理）的导弹不计入
func (s *WaveSystem) activeMissileCount() int {
	count := 0
	for _, id := range ecs.GetEntitiesWith1[*components.IncomingMissileComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.IncomingMissileComponent](s.entityManager, id)
		if m.Destroyed || m.Arrived {
			continue
		}
		count++
	}
	return count
}

// WaveState 获取波次状态组件
func (s *WaveSystem) WaveState() *components.WaveStateComponent {
	ws, ok := ecs.GetComponent[*components.WaveStateComponent](s.entityManager, s.waveEntityID)
	if !ok {
		return nil
	}
	return ws
}

// GetWaveEntityID 获取波次状态实体ID（用于测试）
func (s *WaveSystem) GetWaveEntityID() ecs.EntityID {
	return s.waveEntityID
}
