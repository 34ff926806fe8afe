package systems

import (
	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/ecs"
)

// ReferenceFrameMs 运动速率的参考帧时长（毫秒）
// 所有速度/速率常量都以该帧长标定，实际推进量按 deltaTime 换算，
// 保证运动与帧率无关
const ReferenceFrameMs = 16.0

// KinematicsSystem 运动学系统
//
// 职责：
//   - 推进导弹与拦截弹的飞行进度并按线性插值更新位置
//   - 进度跨越 1.0 时恰好置位一次到达标志（终点效果由碰撞系统结算）
//   - 推进爆炸的增长/收缩，收缩到 0 后销毁爆炸
type KinematicsSystem struct {
	entityManager *ecs.EntityManager
}

// NewKinematicsSystem 创建运动学系统
func NewKinematicsSystem(em *ecs.EntityManager) *KinematicsSystem {
	return &KinematicsSystem{entityManager: em}
}

// Update 推进所有运动实体
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (s *KinematicsSystem) Update(deltaTime float64) {
	frames := deltaTime * 1000 / ReferenceFrameMs

	s.updateMissiles(frames)
	s.updateInterceptors(frames)
	s.updateExplosions(frames)
}

// updateMissiles 推进来袭导弹
func (s *KinematicsSystem) updateMissiles(frames float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.IncomingMissileComponent, *components.PositionComponent](s.entityManager) {
		m, _ := ecs.GetComponent[*components.IncomingMissileComponent](s.entityManager, id)
		if m.Destroyed || m.Progress >= 1 {
			continue
		}

		m.Progress += m.Speed * frames
		if m.Progress >= 1 {
			// 跨越终点：钳制进度并置位到达标志（仅一次）
			m.Progress = 1
			m.Arrived = true
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X = lerp(m.StartX, m.TargetX, m.Progress)
		pos.Y = lerp(m.StartY, m.TargetY, m.Progress)
	}
}

// updateInterceptors 推进拦截弹
func (s *KinematicsSystem) updateInterceptors(frames float64) {
	for _, id := range ecs.GetEntitiesWith2[*components.InterceptorComponent, *components.PositionComponent](s.entityManager) {
		ic, _ := ecs.GetComponent[*components.InterceptorComponent](s.entityManager, id)
		if ic.Progress >= 1 {
			continue
		}

		ic.Progress += ic.Speed * frames
		if ic.Progress >= 1 {
			ic.Progress = 1
			ic.Arrived = true
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
		pos.X = lerp(ic.StartX, ic.TargetX, ic.Progress)
		pos.Y = lerp(ic.StartY, ic.TargetY, ic.Progress)
	}
}

// updateExplosions 推进爆炸半径
// 增长到最大半径后翻转为收缩，收缩到 ≤0 时销毁
func (s *KinematicsSystem) updateExplosions(frames float64) {
	for _, id := range ecs.GetEntitiesWith1[*components.ExplosionComponent](s.entityManager) {
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](s.entityManager, id)

		if ex.Growing {
			ex.Radius += ex.GrowthRate * frames
			if ex.Radius >= ex.MaxRadius {
				ex.Radius = ex.MaxRadius
				ex.Growing = false
			}
		} else {
			ex.Radius -= ex.ShrinkRate * frames
			if ex.Radius <= 0 {
				ex.Radius = 0
				s.entityManager.DestroyEntity(id)
			}
		}
	}
}

// lerp 线性插值：progress=0 时返回 start，progress=1 时返回 end
func lerp(start, end, progress float64) float64 {
	return start + (end-start)*progress
}
