package systems

import (
	"log"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/entities"
	"github.com/gonewx/skyfall/pkg/game"
)

// BattleSystem 战场编排系统
//
// 持有一局对战的全部子系统并按固定顺序推进一帧：
// 生成 → 运动学 → 碰撞结算 → 波次控制 → 胜负判定 → 实体清理
//
// 会话离开对局状态（胜利/失败/暂停）后战场不再推进，
// 直到重新开局
type BattleSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cfg           *config.GameConfig

	spawnSystem      *SpawnSystem
	kinematicsSystem *KinematicsSystem
	collisionSystem  *CollisionSystem
	waveSystem       *WaveSystem
	turretControl    *TurretControlSystem
}

// NewBattleSystem 创建战场并布置炮台与城市
//
// 调用前会话应已通过 StartPlaying 进入对局状态
//
// 参数：
//   - em: 实体管理器
//   - gs: 会话状态
//   - cfg: 游戏配置
//   - clock: 真实时间时钟（波次过渡延迟用）
func NewBattleSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, clock game.Clock) *BattleSystem {
	bs := &BattleSystem{
		entityManager: em,
		gameState:     gs,
		cfg:           cfg,
	}

	bs.waveSystem = NewWaveSystem(em, gs, cfg, clock)
	bs.spawnSystem = NewSpawnSystem(em, gs, cfg)
	bs.kinematicsSystem = NewKinematicsSystem(em)
	bs.collisionSystem = NewCollisionSystem(em, gs, cfg)
	bs.turretControl = NewTurretControlSystem(em, gs, cfg, bs.waveSystem)

	bs.setupField()

	return bs
}

// setupField 按配置创建炮台和城市
func (bs *BattleSystem) setupField() {
	for i, x := range bs.cfg.TurretX {
		if _, err := entities.NewTurret(bs.entityManager, i, x, bs.cfg.TurretY, bs.cfg.TurretAmmo[i]); err != nil {
			log.Printf("[BattleSystem] ERROR: failed to create turret %d: %v", i, err)
		}
	}
	for i, x := range bs.cfg.CityX {
		if _, err := entities.NewCity(bs.entityManager, i, x, bs.cfg.CityY); err != nil {
			log.Printf("[BattleSystem] ERROR: failed to create city %d: %v", i, err)
		}
	}

	log.Printf("[BattleSystem] Field ready: %d turrets, %d cities", len(bs.cfg.TurretX), len(bs.cfg.CityX))
}

// Update 推进战场一帧
//
// 会话不在对局中或已暂停时整帧跳过：
// 终局后不再有生成、运动和碰撞
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (bs *BattleSystem) Update(deltaTime float64) {
	if !bs.gameState.IsPlaying() || bs.gameState.IsPaused {
		return
	}

	bs.spawnSystem.Update(deltaTime)
	bs.kinematicsSystem.Update(deltaTime)
	bs.collisionSystem.Update(deltaTime)
	bs.waveSystem.Update(deltaTime)

	bs.checkWinLoss()

	bs.entityManager.RemoveMarkedEntities()
}

// checkWinLoss 每帧检查胜负条件
//
// 同帧同时满足时胜利优先：先判分数阈值，
// MarkLost 对非对局状态是空操作，不会覆盖胜利
func (bs *BattleSystem) checkWinLoss() {
	if bs.gameState.Score >= bs.cfg.WinScore {
		bs.gameState.MarkWon()
	}

	if bs.allTurretsDestroyed() {
		bs.gameState.MarkLost()
	}
}

// allTurretsDestroyed 是否全部炮台已被摧毁
func (bs *BattleSystem) allTurretsDestroyed() bool {
	for _, id := range ecs.GetEntitiesWith1[*components.TurretComponent](bs.entityManager) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](bs.entityManager, id)
		if !turret.Destroyed {
			return false
		}
	}
	return true
}

// FireAt 向目标点发射拦截弹（委托给炮台控制系统）
func (bs *BattleSystem) FireAt(targetX, targetY float64) bool {
	return bs.turretControl.FireAt(targetX, targetY)
}

// Restart 以指定难度重新开局
//
// 丢弃场上全部导弹、拦截弹和爆炸，重建炮台与城市，
// 重置波次状态（代际令牌递增，过期的过渡推进失效），分数清零
func (bs *BattleSystem) Restart(difficulty config.Difficulty) {
	bs.gameState.StartPlaying(difficulty)

	// 清除全部战场实体（波次状态实体保留，由 WaveSystem 重置）
	for _, id := range ecs.GetEntitiesWith1[*components.IncomingMissileComponent](bs.entityManager) {
		bs.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.InterceptorComponent](bs.entityManager) {
		bs.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](bs.entityManager) {
		bs.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.TurretComponent](bs.entityManager) {
		bs.entityManager.DestroyEntity(id)
	}
	for _, id := range ecs.GetEntitiesWith1[*components.CityComponent](bs.entityManager) {
		bs.entityManager.DestroyEntity(id)
	}
	bs.entityManager.RemoveMarkedEntities()

	bs.waveSystem.Reset()
	bs.setupField()

	log.Printf("[BattleSystem] Battle restarted: difficulty=%s", difficulty)
}

// WaveSystem 返回波次系统（用于测试和快照）
func (bs *BattleSystem) WaveSystem() *WaveSystem {
	return bs.waveSystem
}

// SpawnSystem 返回生成系统（用于测试）
func (bs *BattleSystem) SpawnSystem() *SpawnSystem {
	return bs.spawnSystem
}
