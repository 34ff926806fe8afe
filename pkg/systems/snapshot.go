package systems

import (
	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/game"
)

// MissileView 来袭导弹的只读视图
type MissileView struct {
	X, Y             float64
	StartX, StartY   float64
	TargetX, TargetY float64
	Progress         float64
}

// InterceptorView 拦截弹的只读视图
type InterceptorView struct {
	X, Y             float64
	StartX, StartY   float64
	TargetX, TargetY float64
	Progress         float64
}

// ExplosionView 爆炸的只读视图
type ExplosionView struct {
	X, Y      float64
	Radius    float64
	MaxRadius float64
	Kind      components.ExplosionKind
}

// TurretView 炮台的只读视图
type TurretView struct {
	Index     int
	X, Y      float64
	Ammo      int
	MaxAmmo   int
	Destroyed bool
}

// CityView 城市的只读视图
type CityView struct {
	Index     int
	X, Y      float64
	Destroyed bool
}

// BattleSnapshot 战场的每帧只读快照
//
// 渲染层只消费快照，不触碰模拟内部状态；
// 快照内容足以完成绘制：实体列表、分数、波次、阶段与过渡标志
type BattleSnapshot struct {
	Missiles     []MissileView
	Interceptors []InterceptorView
	Explosions   []ExplosionView
	Turrets      []TurretView
	Cities       []CityView

	Score         int
	WaveNumber    int
	Phase         game.Phase
	Transitioning bool
}

// Snapshot 生成当前帧的战场快照
// 列表顺序为实体插入顺序（实体ID升序）
func (bs *BattleSystem) Snapshot() BattleSnapshot {
	snap := BattleSnapshot{
		Score: bs.gameState.Score,
		Phase: bs.gameState.Phase,
	}

	if ws := bs.waveSystem.WaveState(); ws != nil {
		snap.WaveNumber = ws.WaveNumber
		snap.Transitioning = ws.Phase == components.WaveTransitioning
	}

	em := bs.entityManager

	for _, id := range ecs.GetEntitiesWith2[*components.IncomingMissileComponent, *components.PositionComponent](em) {
		m, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, id)
		if m.Destroyed {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Missiles = append(snap.Missiles, MissileView{
			X: pos.X, Y: pos.Y,
			StartX: m.StartX, StartY: m.StartY,
			TargetX: m.TargetX, TargetY: m.TargetY,
			Progress: m.Progress,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.InterceptorComponent, *components.PositionComponent](em) {
		ic, _ := ecs.GetComponent[*components.InterceptorComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Interceptors = append(snap.Interceptors, InterceptorView{
			X: pos.X, Y: pos.Y,
			StartX: ic.StartX, StartY: ic.StartY,
			TargetX: ic.TargetX, TargetY: ic.TargetY,
			Progress: ic.Progress,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ExplosionComponent, *components.PositionComponent](em) {
		ex, _ := ecs.GetComponent[*components.ExplosionComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Explosions = append(snap.Explosions, ExplosionView{
			X: pos.X, Y: pos.Y,
			Radius: ex.Radius, MaxRadius: ex.MaxRadius,
			Kind: ex.Kind,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.TurretComponent, *components.PositionComponent](em) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Turrets = append(snap.Turrets, TurretView{
			Index: turret.Index,
			X:     pos.X, Y: pos.Y,
			Ammo: turret.Ammo, MaxAmmo: turret.MaxAmmo,
			Destroyed: turret.Destroyed,
		})
	}

	for _, id := range ecs.GetEntitiesWith2[*components.CityComponent, *components.PositionComponent](em) {
		city, _ := ecs.GetComponent[*components.CityComponent](em, id)
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		snap.Cities = append(snap.Cities, CityView{
			Index: city.Index,
			X:     pos.X, Y: pos.Y,
			Destroyed: city.Destroyed,
		})
	}

	return snap
}
