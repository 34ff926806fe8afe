package systems

import (
	"testing"

	"github.com/gonewx/skyfall/pkg/components"
	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/entities"
	"github.com/gonewx/skyfall/pkg/game"
)

// newBattleFixture 创建完整战场测试环境
func newBattleFixture(t *testing.T, difficulty config.Difficulty) (*ecs.EntityManager, *game.GameState, *config.GameConfig, *game.MockClock, *BattleSystem) {
	t.Helper()

	cfg := config.DefaultGameConfig()
	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg)
	gs.StartPlaying(difficulty)
	clock := game.NewMockClock()

	bs := NewBattleSystem(em, gs, cfg, clock)
	return em, gs, cfg, clock, bs
}

// destroyAllTurrets 摧毁场上全部炮台
func destroyAllTurrets(em *ecs.EntityManager) {
	for _, id := range ecs.GetEntitiesWith1[*components.TurretComponent](em) {
		turret, _ := ecs.GetComponent[*components.TurretComponent](em, id)
		turret.Destroyed = true
	}
}

// TestBattleSystem_SetsUpFieldFromConfig 测试开局按配置布置炮台和城市
func TestBattleSystem_SetsUpFieldFromConfig(t *testing.T) {
	em, _, cfg, _, _ := newBattleFixture(t, config.DifficultyNormal)

	turretIDs := ecs.GetEntitiesWith1[*components.TurretComponent](em)
	if len(turretIDs) != len(cfg.TurretX) {
		t.Errorf("Expected %d turrets, got %d", len(cfg.TurretX), len(turretIDs))
	}
	cityIDs := ecs.GetEntitiesWith1[*components.CityComponent](em)
	if len(cityIDs) != len(cfg.CityX) {
		t.Errorf("Expected %d cities, got %d", len(cfg.CityX), len(cityIDs))
	}

	for i, id := range turretIDs {
		turret, _ := ecs.GetComponent[*components.TurretComponent](em, id)
		if turret.Ammo != cfg.TurretAmmo[i] {
			t.Errorf("Turret %d: expected ammo %d, got %d", i, cfg.TurretAmmo[i], turret.Ammo)
		}
	}
}

// TestBattleSystem_SpawnsMissilesOverTime 测试整条管线随时间生成导弹
func TestBattleSystem_SpawnsMissilesOverTime(t *testing.T) {
	em, _, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	// 推进 3 秒（第一波间隔 1400ms）
	for i := 0; i < 188; i++ {
		bs.Update(frameDt)
	}

	if missileCount(em) == 0 {
		t.Error("Expected missiles to spawn after several seconds of play")
	}
}

// TestBattleSystem_WonAtScoreThreshold 测试分数达到阈值判胜
func TestBattleSystem_WonAtScoreThreshold(t *testing.T) {
	_, gs, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	gs.AddScore(cfg.WinScore)
	bs.Update(frameDt)

	if gs.Phase != game.PhaseWon {
		t.Errorf("Expected WON at score threshold, got %s", gs.Phase)
	}
}

// TestBattleSystem_LostWhenAllTurretsDestroyed 测试全部炮台被摧毁判负
func TestBattleSystem_LostWhenAllTurretsDestroyed(t *testing.T) {
	em, gs, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	destroyAllTurrets(em)
	bs.Update(frameDt)

	if gs.Phase != game.PhaseLost {
		t.Errorf("Expected LOST with all turrets destroyed, got %s", gs.Phase)
	}
}

// TestBattleSystem_WinTakesPrecedenceOverLoss 测试同帧同时满足胜负条件时胜利优先
func TestBattleSystem_WinTakesPrecedenceOverLoss(t *testing.T) {
	em, gs, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	gs.AddScore(cfg.WinScore)
	destroyAllTurrets(em)

	bs.Update(frameDt)

	if gs.Phase != game.PhaseWon {
		t.Errorf("Expected WON to take precedence over LOST, got %s", gs.Phase)
	}
}

// TestBattleSystem_FrozenAfterTerminalPhase 测试终局后战场不再推进
func TestBattleSystem_FrozenAfterTerminalPhase(t *testing.T) {
	em, gs, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	id, _ := entities.NewIncomingMissile(em, 100, 0, 400, 560, 0.01)
	gs.MarkLost()

	bs.Update(frameDt)

	m, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, id)
	if m.Progress != 0 {
		t.Errorf("Expected frozen battlefield after loss, missile progress %f", m.Progress)
	}
}

// TestBattleSystem_PausedTickIsNoop 测试暂停时整帧跳过
func TestBattleSystem_PausedTickIsNoop(t *testing.T) {
	em, gs, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	id, _ := entities.NewIncomingMissile(em, 100, 0, 400, 560, 0.01)
	gs.TogglePause()

	bs.Update(1.0)

	m, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, id)
	if m.Progress != 0 {
		t.Errorf("Expected no progress while paused, got %f", m.Progress)
	}

	ws := bs.WaveSystem().WaveState()
	if ws.SpawnTimerMs != 0 {
		t.Errorf("Expected spawn timer frozen while paused, got %f", ws.SpawnTimerMs)
	}
}

// TestBattleSystem_FireAtDelegates 测试开火指令通过战场系统下发
func TestBattleSystem_FireAtDelegates(t *testing.T) {
	em, _, _, _, bs := newBattleFixture(t, config.DifficultyNormal)

	if !bs.FireAt(400, 300) {
		t.Fatal("Expected fire command to succeed")
	}
	if interceptorCount(em) != 1 {
		t.Errorf("Expected 1 interceptor, got %d", interceptorCount(em))
	}
}

// TestBattleSystem_InterceptLifecycleScoresKill 测试拦截-爆炸-击杀的端到端链路
func TestBattleSystem_InterceptLifecycleScoresKill(t *testing.T) {
	em, gs, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	// 一枚几乎静止的慢速导弹，停留在屏幕顶部附近
	missileID, _ := entities.NewIncomingMissile(em, 398, 0, 398, 560, 0.00001)

	// 向导弹附近开火，然后推进足够多帧让拦截弹到达并引爆
	if !bs.FireAt(398, 5) {
		t.Fatal("Expected fire command to succeed")
	}
	for i := 0; i < 120; i++ {
		bs.Update(frameDt)
		if !em.HasEntity(missileID) {
			break
		}
	}

	if em.HasEntity(missileID) {
		t.Fatal("Expected missile to be destroyed by the intercept explosion")
	}
	if gs.Score < cfg.PointsPerKill {
		t.Errorf("Expected at least %d points for the kill, got %d", cfg.PointsPerKill, gs.Score)
	}
}

// TestBattleSystem_RestartResetsBattlefield 测试重新开局重建战场
func TestBattleSystem_RestartResetsBattlefield(t *testing.T) {
	em, gs, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	// 弄脏战场：分数、导弹、拦截弹、残破的炮台
	gs.AddScore(1234)
	entities.NewIncomingMissile(em, 100, 0, 400, 560, 0.01)
	bs.FireAt(400, 300)
	destroyAllTurrets(em)

	bs.Restart(config.DifficultyHard)

	if gs.Phase != game.PhasePlaying {
		t.Errorf("Expected PLAYING after restart, got %s", gs.Phase)
	}
	if gs.Score != 0 {
		t.Errorf("Expected score reset, got %d", gs.Score)
	}
	if gs.Difficulty != config.DifficultyHard {
		t.Errorf("Expected difficulty hard, got %s", gs.Difficulty)
	}

	if got := missileCount(em); got != 0 {
		t.Errorf("Expected no missiles after restart, got %d", got)
	}
	if got := interceptorCount(em); got != 0 {
		t.Errorf("Expected no interceptors after restart, got %d", got)
	}

	turretIDs := ecs.GetEntitiesWith1[*components.TurretComponent](em)
	if len(turretIDs) != len(cfg.TurretX) {
		t.Fatalf("Expected %d fresh turrets, got %d", len(cfg.TurretX), len(turretIDs))
	}
	for _, id := range turretIDs {
		turret, _ := ecs.GetComponent[*components.TurretComponent](em, id)
		if turret.Destroyed || turret.Ammo != turret.MaxAmmo {
			t.Error("Expected fresh turrets with full ammo after restart")
		}
	}

	ws := bs.WaveSystem().WaveState()
	if ws.WaveNumber != 1 {
		t.Errorf("Expected wave 1 after restart, got %d", ws.WaveNumber)
	}
	if ws.Quota != cfg.Tier(config.DifficultyHard).BaseQuota {
		t.Errorf("Expected hard base quota %d, got %d", cfg.Tier(config.DifficultyHard).BaseQuota, ws.Quota)
	}
}

// TestBattleSystem_MarkedEntitiesRemovedAtTickEnd 测试帧末清理被标记的实体
func TestBattleSystem_MarkedEntitiesRemovedAtTickEnd(t *testing.T) {
	em, _, cfg, _, bs := newBattleFixture(t, config.DifficultyNormal)

	// 一枚已到达城市的导弹：本帧结算后实体应被清理
	id, _ := entities.NewIncomingMissile(em, cfg.CityX[0], 0, cfg.CityX[0], cfg.CityY, 0.01)
	m, _ := ecs.GetComponent[*components.IncomingMissileComponent](em, id)
	m.Progress = 1
	m.Arrived = true

	bs.Update(frameDt)

	if em.HasEntity(id) {
		t.Error("Expected impacted missile entity to be removed at tick end")
	}
}
