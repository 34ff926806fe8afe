package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/game"
)

// 菜单配色
var (
	menuBackground = color.RGBA{R: 8, G: 8, B: 24, A: 255}
	menuHighlight  = color.RGBA{R: 255, G: 200, B: 60, A: 255}
)

// MenuScene 主菜单场景
//
// 提供难度选择并开始对局：
//   - 按键 1/2/3 或 上/下 方向键选择难度
//   - Enter 或 空格 以当前选中难度开局
//
// 选中的难度写入全局设置，作为下次启动的预选难度
type MenuScene struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	cfg             *config.GameConfig

	// selected 当前高亮的难度序号（0=easy 1=normal 2=hard）
	selected int
}

// 菜单难度条目顺序固定
var menuDifficulties = []config.Difficulty{
	config.DifficultyEasy,
	config.DifficultyNormal,
	config.DifficultyHard,
}

// NewMenuScene 创建主菜单场景
//
// 初始高亮项取自全局设置的预选难度
func NewMenuScene(sm *game.SceneManager, settings *game.SettingsManager, cfg *config.GameConfig) *MenuScene {
	scene := &MenuScene{
		sceneManager:    sm,
		settingsManager: settings,
		cfg:             cfg,
		selected:        1,
	}

	if settings != nil {
		preferred := config.Difficulty(settings.GetSettings().PreferredDifficulty)
		for i, d := range menuDifficulties {
			if d == preferred {
				scene.selected = i
				break
			}
		}
	}

	return scene
}

// Update 处理菜单输入
func (s *MenuScene) Update(deltaTime float64) {
	// 数字键直接选中并开局
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		s.selected = 0
		s.startBattle()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		s.selected = 1
		s.startBattle()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		s.selected = 2
		s.startBattle()
		return
	}

	// 方向键移动高亮
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && s.selected > 0 {
		s.selected--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && s.selected < len(menuDifficulties)-1 {
		s.selected++
	}

	// 确认键以当前高亮难度开局
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		s.startBattle()
	}
}

// startBattle 记录难度偏好并切换到对局场景
func (s *MenuScene) startBattle() {
	difficulty := menuDifficulties[s.selected]

	if s.settingsManager != nil {
		s.settingsManager.SetPreferredDifficulty(string(difficulty))
		if err := s.settingsManager.Save(); err != nil {
			log.Printf("[MenuScene] Warning: failed to save settings: %v", err)
		}
	}

	s.sceneManager.StartBattle(string(difficulty))
}

// Draw 绘制主菜单
func (s *MenuScene) Draw(screen *ebiten.Image) {
	screen.Fill(menuBackground)

	cx := int(s.cfg.FieldWidth) / 2
	cy := int(s.cfg.FieldHeight) / 2

	ebitenutil.DebugPrintAt(screen, "S K Y F A L L", cx-52, cy-100)
	ebitenutil.DebugPrintAt(screen, "Select difficulty (1/2/3 or arrows + Enter)", cx-168, cy-60)

	for i, d := range menuDifficulties {
		y := cy - 10 + i*24
		label := fmt.Sprintf("%d. %s", i+1, d)
		if i == s.selected {
			vector.DrawFilledRect(screen, float32(cx-80), float32(y-4), 160, 20, color.RGBA{R: 40, G: 40, B: 70, A: 255}, false)
			vector.StrokeRect(screen, float32(cx-80), float32(y-4), 160, 20, 1, menuHighlight, false)
		}
		ebitenutil.DebugPrintAt(screen, label, cx-60, y)
	}

	ebitenutil.DebugPrintAt(screen, "Left click: fire interceptor   ESC: pause", cx-164, cy+80)
}
