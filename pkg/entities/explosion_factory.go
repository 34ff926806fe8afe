package entities

import (
	"fmt"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
)

// NewExplosion 创建爆炸实体
// 爆炸从半径 0 开始增长到类型对应的最大半径，再收缩至消失
//
// 最大半径按类型取配置值：拦截 > 连锁 > 撞击
//
// 参数:
//   - em: 实体管理器
//   - cfg: 游戏配置（提供半径和速率参数）
//   - kind: 爆炸类型
//   - x, y: 爆炸中心世界坐标
//
// 返回:
//   - ecs.EntityID: 创建的爆炸实体ID
//   - error: 参数非法时返回错误
func NewExplosion(em *ecs.EntityManager, cfg *config.GameConfig, kind components.ExplosionKind, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if cfg == nil {
		return 0, fmt.Errorf("game config cannot be nil")
	}

	var maxRadius float64
	switch kind {
	case components.ExplosionIntercept:
		maxRadius = cfg.InterceptMaxRadius
	case components.ExplosionChain:
		maxRadius = cfg.ChainMaxRadius
	case components.ExplosionImpact:
		maxRadius = cfg.ImpactMaxRadius
	default:
		return 0, fmt.Errorf("unknown explosion kind: %d", kind)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: x,
		Y: y,
	})

	em.AddComponent(entityID, &components.ExplosionComponent{
		Kind:       kind,
		Radius:     0,
		MaxRadius:  maxRadius,
		Growing:    true,
		GrowthRate: cfg.ExplosionGrowth,
		ShrinkRate: cfg.ExplosionShrink,
	})

	return entityID, nil
}
