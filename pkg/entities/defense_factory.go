package entities

import (
	"fmt"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/ecs"
)

// NewTurret 创建防御炮台实体
//
// 参数:
//   - em: 实体管理器
//   - index: 炮台编号（0 起，从左到右）
//   - x, y: 炮台世界坐标
//   - maxAmmo: 弹药上限（初始弹药等于上限）
//
// 返回:
//   - ecs.EntityID: 创建的炮台实体ID
//   - error: 参数非法时返回错误
func NewTurret(em *ecs.EntityManager, index int, x, y float64, maxAmmo int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if maxAmmo < 1 {
		return 0, fmt.Errorf("turret max ammo must be at least 1, got %d", maxAmmo)
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: x,
		Y: y,
	})

	em.AddComponent(entityID, &components.TurretComponent{
		Index:   index,
		Ammo:    maxAmmo,
		MaxAmmo: maxAmmo,
	})

	return entityID, nil
}

// NewCity 创建城市实体
//
// 参数:
//   - em: 实体管理器
//   - index: 城市编号（0 起，从左到右）
//   - x, y: 城市世界坐标
//
// 返回:
//   - ecs.EntityID: 创建的城市实体ID
//   - error: 参数非法时返回错误
func NewCity(em *ecs.EntityManager, index int, x, y float64) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}

	entityID := em.CreateEntity()

	em.AddComponent(entityID, &components.PositionComponent{
		X: x,
		Y: y,
	})

	em.AddComponent(entityID, &components.CityComponent{
		Index: index,
	})

	return entityID, nil
}
