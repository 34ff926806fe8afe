package scenes

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/ecs"
	"github.com/gonewx/skyfall/pkg/game"
	"github.com/gonewx/skyfall/pkg/systems"
)

// GameScene 对局场景
//
// 持有本局的实体管理器、会话状态和全部系统；
// 每帧先处理输入，再推进战场一帧，最后基于快照绘制
type GameScene struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	cfg             *config.GameConfig

	entityManager *ecs.EntityManager
	gameState     *game.GameState

	battleSystem *systems.BattleSystem
	inputSystem  *systems.InputSystem
	renderSystem *systems.RenderSystem

	// lastSnapshot 本帧战场快照，Update 生成、Draw 消费
	lastSnapshot systems.BattleSnapshot
}

// NewGameScene 以指定难度创建并开始一局对战
func NewGameScene(sm *game.SceneManager, settings *game.SettingsManager, cfg *config.GameConfig, difficulty config.Difficulty) *GameScene {
	em := ecs.NewEntityManager()
	gs := game.NewGameState(cfg)
	gs.StartPlaying(difficulty)

	battleSystem := systems.NewBattleSystem(em, gs, cfg, game.RealClock{})

	scene := &GameScene{
		sceneManager:    sm,
		settingsManager: settings,
		cfg:             cfg,
		entityManager:   em,
		gameState:       gs,
		battleSystem:    battleSystem,
		inputSystem:     systems.NewInputSystem(gs, battleSystem),
		renderSystem:    systems.NewRenderSystem(cfg),
	}

	scene.lastSnapshot = battleSystem.Snapshot()

	log.Printf("[GameScene] Battle scene created: difficulty=%s", difficulty)
	return scene
}

// Update 推进对局一帧
func (s *GameScene) Update(deltaTime float64) {
	// 终局后：R 重开本难度，M 返回主菜单
	if !s.gameState.IsPlaying() {
		if inpututil.IsKeyJustPressed(ebiten.KeyR) {
			s.battleSystem.Restart(s.gameState.Difficulty)
		}
		if inpututil.IsKeyJustPressed(ebiten.KeyM) {
			s.sceneManager.SwitchTo(NewMenuScene(s.sceneManager, s.settingsManager, s.cfg))
			return
		}
	}

	s.inputSystem.Update(deltaTime)
	s.battleSystem.Update(deltaTime)

	s.lastSnapshot = s.battleSystem.Snapshot()
}

// Draw 绘制对局画面
func (s *GameScene) Draw(screen *ebiten.Image) {
	s.renderSystem.Draw(screen, s.lastSnapshot)

	if s.gameState.IsPaused {
		s.drawPauseOverlay(screen)
	}

	if !s.gameState.IsPlaying() && s.gameState.Phase != game.PhaseStart {
		ebitenutil.DebugPrintAt(screen, "M: BACK TO MENU",
			int(s.cfg.FieldWidth)/2-60, int(s.cfg.FieldHeight)/2+20)
	}
}

// drawPauseOverlay 绘制暂停遮罩
func (s *GameScene) drawPauseOverlay(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0,
		float32(s.cfg.FieldWidth), float32(s.cfg.FieldHeight),
		color.RGBA{A: 140}, false)
	ebitenutil.DebugPrintAt(screen, "PAUSED - PRESS ESC TO RESUME",
		int(s.cfg.FieldWidth)/2-108, int(s.cfg.FieldHeight)/2)
}

// SaveOnExit 窗口关闭时保存全局设置
// 对局本身不持久化，只落盘难度偏好等全局设置
func (s *GameScene) SaveOnExit() bool {
	if s.settingsManager == nil {
		return true
	}
	if err := s.settingsManager.Save(); err != nil {
		log.Printf("[GameScene] ERROR: failed to save settings on exit: %v", err)
		return false
	}
	return true
}
