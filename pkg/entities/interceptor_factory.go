package entities

import (
	"fmt"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/ecs"
)

// NewInterceptor 创建拦截弹实体
// 拦截弹从炮台炮口飞向玩家点击的目标点，到达后引爆
//
// 参数:
//   - em: 实体管理器
//   - startX, startY: 发射炮台的炮口坐标
//   - targetX, targetY: 玩家选择的目标点坐标
//   - speed: 每 16ms 参考帧的进度增量（必须为正）
//
// 返回:
//   - ecs.EntityID: 创建的拦截弹实体ID
//   - error: 参数非法时返回错误
func NewInterceptor(em *ecs.EntityManager, startX, startY, targetX, targetY, speed float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if speed <= 0 {
		return 0, fmt.Errorf("interceptor speed must be positive, got %f", speed)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: startX,
		Y: startY,
	})

	em.AddComponent(entityID, &components.InterceptorComponent{
		StartX:   startX,
		StartY:   startY,
		TargetX:  targetX,
		TargetY:  targetY,
		Speed:    speed,
		Progress: 0,
	})

	return entityID, nil
}
