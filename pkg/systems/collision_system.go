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

// targetEpsilon 目标坐标匹配容差（像素）
// 导弹目标坐标直接取自炮台/城市的位置，理论上严格相等，
// 容差只为吸收浮点误差
const targetEpsilon = 0.5

// CollisionSystem 碰撞与伤害结算系统
//
// 每帧在运动学之后运行一次，处理三类事件：
//  1. 落地结算：到达目标的导弹摧毁对应炮台/城市，生成撞击爆炸
//  2. 引爆结算：到达目标的拦截弹生成拦截爆炸
//  3. 范围杀伤：爆炸覆盖的导弹被摧毁并计分，生成连锁爆炸
//
// 同一帧内一枚导弹至多被摧毁一次（首个命中的爆炸生效），
// 遍历按实体ID升序，结果确定
type CollisionSystem struct {
	entityManager *ecs.EntityManager
	gameState     *game.GameState
	cfg           *config.GameConfig
}

// NewCollisionSystem 创建碰撞结算系统
//
// 参数：
//   - em: 实体管理器
//   - gs: 会话状态（计分）
//   - cfg: 游戏配置（爆炸参数、每杀得分）
func NewCollisionSystem(em *ecs.EntityManager, gs *game.GameState, cfg *config.GameConfig) *CollisionSystem {
	return &CollisionSystem{
		entityManager: em,
		gameState:     gs,
		cfg:           cfg,
	}
}

// Update 执行本帧的碰撞结算
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒），本系统不使用
func (s *CollisionSystem) Update(deltaTime float64) {
	s.resolveImpacts()
	s.resolveDetonations()
	s.resolveExplosionHits()
}

// resolveImpacts 结算到达目标的来袭导弹
// 摧毁目标坐标处的炮台/城市（已摧毁则幂等跳过），生成撞击爆炸
func (s *CollisionSystem) resolveImpacts() {
	for _, id := range ecs.GetEntitiesWith1[*components.IncomingMissileComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.IncomingMissileComponent](s.entityManager, id)
		if !m.Arrived || m.Destroyed {
			continue
		}

		s.destroyTargetAt(m.TargetX, m.TargetY)

		if _, err := entities.NewExplosion(s.entityManager, s.cfg, components.ExplosionImpact, m.TargetX, m.TargetY); err != nil {
			log.Printf("[CollisionSystem] ERROR: failed to create impact explosion: %v", err)
		}

		m.Destroyed = true
		s.entityManager.DestroyEntity(id)
	}
}

// resolveDetonations 结算到达目标的拦截弹
// 在目标点生成拦截爆炸（比撞击爆炸大）
func (s *CollisionSystem) resolveDetonations() {
	for _, id := range ecs.GetEntitiesWith1[*components.InterceptorComponent](s.entityManager) {
		ic, _ := ecs.GetComponent[*components.InterceptorComponent](s.entityManager, id)
		if !ic.Arrived {
			continue
		}

		if _, err := entities.NewExplosion(s.entityManager, s.cfg, components.ExplosionIntercept, ic.TargetX, ic.TargetY); err != nil {
			log.Printf("[CollisionSystem] ERROR: failed to create intercept explosion: %v", err)
		}

		ic.Arrived = false
		s.entityManager.DestroyEntity(id)
	}
}

// resolveExplosionHits 结算爆炸与导弹的范围重叠
//
// 中心距小于爆炸当前半径即判定命中：导弹被摧毁、计分，
// 并在导弹最后位置生成连锁爆炸
// 爆炸列表在进入循环前快照，本帧新生成的连锁爆炸下一帧才参与判定
func (s *CollisionSystem) resolveExplosionHits() {
	explosionIDs := ecs.GetEntitiesWith2[*components.ExplosionComponent, *components.PositionComponent](s.entityManager)
	missileIDs := ecs.GetEntitiesWith2[*components.IncomingMissileComponent, *components.PositionComponent](s.entityManager)

	for _, exID := range explosionIDs {
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, exID)
		if ex.Radius <= 0 {
			continue
		}
		exPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, exID)

		for _, mID := range missileIDs {
			m, _ := ecs.GetComponent[*components.IncomingMissileComponent](s.entityManager, mID)
			// 已被其它爆炸摧毁或已落地的导弹不再参与判定
			if m.Destroyed || m.Arrived {
				continue
			}
			mPos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, mID)

			if distance(exPos.X, exPos.Y, mPos.X, mPos.Y) >= ex.Radius {
				continue
			}

			m.Destroyed = true
			s.entityManager.DestroyEntity(mID)
			s.gameState.AddScore(s.cfg.PointsPerKill)

			if _, err := entities.NewExplosion(s.entityManager, s.cfg, components.ExplosionChain, mPos.X, mPos.Y); err != nil {
				log.Printf("[CollisionSystem] ERROR: failed to create chain explosion: %v", err)
			}

			log.Printf("[CollisionSystem] Missile %d destroyed by explosion %d (+%d points)",
				mID, exID, s.cfg.PointsPerKill)
		}
	}
}

// destroyTargetAt 摧毁指定坐标处的炮台或城市
// 坐标处无目标或目标已被摧毁时为幂等空操作
func (s *CollisionSystem) destroyTargetAt(x, y float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.TurretComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !positionsMatch(pos.X, pos.Y, x, y) {
			continue
		}
		turret, _ := ecs.GetComponent[*components.TurretComponent](s.entityManager, id)
		if !turret.Destroyed {
			turret.Destroyed = true
			log.Printf("[CollisionSystem] Turret %d destroyed by impact at (%.1f, %.1f)", turret.Index, x, y)
		}
		return
	}

	for _, id := range ecs.GetEntitiesWith2[*components.CityComponent, *components.PositionComponent](s.entityManager) {
		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		if !positionsMatch(pos.X, pos.Y, x, y) {
			continue
		}
		city, _ := ecs.GetComponent[*components.CityComponent](s.entityManager, id)
		if !city.Destroyed {
			city.Destroyed = true
			log.Printf("[CollisionSystem] City %d destroyed by impact at (%.1f, %.1f)", city.Index, x, y)
		}
		return
	}
}

// positionsMatch 判断两个坐标是否在容差内一致
func positionsMatch(x1, y1, x2, y2 float64) bool {
	return math.Abs(x1-x2) < targetEpsilon && math.Abs(y1-y2) < targetEpsilon
}

// distance 计算两点间欧氏距离
func distance(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return math.Sqrt(dx*dx + dy*dy)
}
