package systems

import (
	"log"
	"math"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/entities"
	"github.com/gonewx/skyfall/pkg/game"
)

// TurretControlSystem 炮台开火控制系统
//
// 处理玩家的开火指令：选择离目标点水平距离最近的可用炮台
// （未摧毁且有弹药），扣一发弹药并发射拦截弹
//
// 非法指令（无可用炮台、非对局状态、波次过渡中）静默忽略
type TurretControlSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cfg           *config.GameConfig
	waveSystem    *WaveSystem
}

// NewTurretControlSystem 创建炮台控制系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 会话状态
//   - cfg: 游戏配置（拦截弹速度）
//   - waveSystem: 波次系统（过渡阶段禁止开火）
func NewTurretControlSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig, waveSystem *WaveSystem) *TurretControlSystem {
	return &TurretControlSystem{
		entityManager: em,
		gameState:     gs,
		cfg:           cfg,
		waveSystem:    waveSystem,
	}
}

// FireAt 向目标点发射拦截弹
//
// 指令有效条件：会话处于对局中、未暂停、不在波次过渡阶段、
// 且存在未摧毁且有弹药的炮台；否则为空操作
//
// 多个炮台距离相同时选编号较小者（遍历按实体ID升序，结果确定）
//
// 参数：
//   - targetX, targetY: 目标点世界坐标
//
// 返回：
//   - bool: true 表示成功发射
func (s *TurretControlSystem) FireAt(targetX, targetY float64) bool {
	if !s.gameState.IsPlaying() || s.gameState.IsPaused {
		return false
	}
	if s.waveSystem != nil && s.waveSystem.IsTransitioning() {
		return false
	}

	var bestID ecs.EntityID
	var bestTurret *components.TurretComponent
	var bestPos *components.PositionComponent
	bestDist := math.MaxFloat64

	for _, id := range ecs.GetEntitiesWith2[*components.TurretComponent, *components.PositionComponent](s.entityManager) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](s.entityManager, id)
		if turret.Destroyed || turret.Ammo <= 0 {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)

		dist := math.Abs(pos.X - targetX)
		if dist < bestDist {
			bestDist = dist
			bestID = id
			bestTurret = turret
			bestPos = pos
		}
	}

	if bestTurret == nil {
		// 无可用炮台：指令静默忽略
		return false
	}

	bestTurret.Ammo--

	entityID, err := entities.NewInterceptor(s.entityManager, bestPos.X, bestPos.Y, targetX, targetY, s.cfg.InterceptorSpeed)
	if err != nil {
		log.Printf("[TurretControlSystem] ERROR: failed to create interceptor: %v", err)
		// 创建失败时回滚弹药
		bestTurret.Ammo++
		return false
	}

	log.Printf("[TurretControlSystem] Turret %d (entity %d) fired interceptor %d at (%.1f, %.1f), ammo left: %d",
		bestTurret.Index, bestID, entityID, targetX, targetY, bestTurret.Ammo)
	return true
}
