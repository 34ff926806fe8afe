package systems

import (
	"testing"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/entities"
	"github.com/gonewx/skyfall/pkg/game"
)

// TestSnapshot_ContainsFieldEntities 测试快照包含全部战场实体
func TestSnapshot_ContainsFieldEntities(t *testing.T) {
	em, gs, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	entities.NewIncomingMissile(em, 100, 0, 400, 560, 0.003)
	bs.FireAt(300, 200)
	entities.NewExplosion(em, cfg, components.ExplosionIntercept, 300, 200)
	gs.AddScore(700)

	snap := bs.Snapshot()

	if len(snap.Turrets) != len(cfg.TurretX) {
		t.Errorf("Expected %d turrets in snapshot, got %d", len(cfg.TurretX), len(snap.Turrets))
	}
	if len(snap.Cities) != len(cfg.CityX) {
		t.Errorf("Expected %d cities in snapshot, got %d", len(cfg.CityX), len(snap.Cities))
	}
	if len(snap.Missiles) != 1 {
		t.Errorf("Expected 1 missile in snapshot, got %d", len(snap.Missiles))
	}
	if len(snap.Interceptors) != 1 {
		t.Errorf("Expected 1 interceptor in snapshot, got %d", len(snap.Interceptors))
	}
	if len(snap.Explosions) != 1 {
		t.Errorf("Expected 1 explosion in snapshot, got %d", len(snap.Explosions))
	}

	if snap.Score != 700 {
		t.Errorf("Expected snapshot score 700, got %d", snap.Score)
	}
	if snap.WaveNumber != 1 {
		t.Errorf("Expected snapshot wave 1, got %d", snap.WaveNumber)
	}
	if snap.Phase != game.PhasePlaying {
		t.Errorf("Expected snapshot phase PLAYING, got %s", snap.Phase)
	}
	if snap.Transitioning {
		t.Error("Expected not transitioning in snapshot")
	}
}

// TestSnapshot_ExcludesDestroyedMissiles 测试已摧毁的导弹不出现在快照中
func TestSnapshot_ExcludesDestroyedMissiles(t *testing.T) {
	em, _, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	aliveID, _ := entities.NewIncomingMissile(em, 100, 0, 400, 560, 0.003)
	deadID, _ := entities.NewIncomingMissile(em, 200, 0, 400, 560, 0.003)
	dead, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, deadID)
	dead.Destroyed = true

	snap := bs.Snapshot()

	if len(snap.Missiles) != 1 {
		t.Fatalf("Expected only the surviving missile in snapshot, got %d", len(snap.Missiles))
	}

	alive, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, aliveID)
	if snap.Missiles[0].StartX != alive.StartX {
		t.Errorf("Expected surviving missile start X %f, got %f", alive.StartX, snap.Missiles[0].StartX)
	}
}

// TestSnapshot_ReflectsTransitionFlag 测试过渡标志透传到快照
func TestSnapshot_ReflectsTransitionFlag(t *testing.T) {
	_, _, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	ws := bs.WaveSystem().WaveState()
	ws.Phase = components.WaveTransitioning

	snap := bs.Snapshot()
	if !snap.Transitioning {
		t.Error("Expected snapshot to report wave transition")
	}
}

// TestSnapshot_CapturesTurretState 测试炮台弹药与摧毁状态进入快照
func TestSnapshot_CapturesTurretState(t *testing.T) {
	em, _, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	bs.FireAt(60, 300) // 0 号炮台消耗一发

	turretIDs := ecs.GetEntitiesWith1[*components.TurretComponent](em)
	last, _ := ecs.GetComponent[*components.TurretComponent](em, turretIDs[len(turretIDs)-1])
	last.Destroyed = true

	snap := bs.Snapshot()

	if snap.Turrets[0].Ammo != cfg.TurretAmmo[0]-1 {
		t.Errorf("Expected turret 0 ammo %d in snapshot, got %d", cfg.TurretAmmo[0]-1, snap.Turrets[0].Ammo)
	}
	if !snap.Turrets[len(snap.Turrets)-1].Destroyed {
		t.Error("Expected last turret marked destroyed in snapshot")
	}
}
