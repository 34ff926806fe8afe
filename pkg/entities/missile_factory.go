package entities

import (
	"fmt"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/ecs"
)

// NewIncomingMissile 创建来袭导弹实体
// 导弹从屏幕顶部的起点沿直线飞向目标（炮台或城市）
//
// 参数:
//   - em: 实体管理器
//   - startX, startY: 发射起点世界坐标
//   - targetX, targetY: 目标点世界坐标
//   - speed: 每 16ms 参考帧的进度增量（必须为正）
//
// 返回:
//   - ecs.EntityID: 创建的导弹实体ID
//   - error: 参数非法时返回错误
func NewIncomingMissile(em *ecs.EntityManager, startX, startY, targetX, targetY, speed float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if speed <= 0 {
		return 0, fmt.Errorf("missile speed must be positive, got %f", speed)
	}

	entityID := em.CreateEntity()

	// 位置组件初始化在起点
	em.AddComponent(entityID, &components.PositionComponent{
		X: startX,
		Y: startY,
	})

	em.AddComponent(entityID, &components.IncomingMissileComponent{
		StartX:   startX,
		StartY:   startY,
		TargetX:  targetX,
		TargetY:  targetY,
		Speed:    speed,
		Progress: 0,
	})

	return entityID, nil
}
