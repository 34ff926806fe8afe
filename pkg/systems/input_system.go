package systems

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gonewx/skyfall/pkg/game"
)

// InputSystem 处理对局中的用户输入
//
// 指针事件映射：战场逻辑坐标与屏幕逻辑坐标一致（Layout 即战场尺寸），
// 光标位置直接作为开火目标点下发
type InputSystem struct {
	gameState    *game.GameState
	battleSystem *BattleSystem
}

// NewInputSystem 创建输入系统
//
// 参数：
//   - gs: 会话状态（暂停切换）
//   - bs: 战场系统（开火指令）
func NewInputSystem(gs *game.GameState, bs *BattleSystem) *InputSystem {
	return &InputSystem{
		gameState:    gs,
		battleSystem: bs,
	}
}

// Update 处理本帧输入
//
// 参数：
//   - deltaTime: 自上一帧以来经过的时间（秒），本系统不使用
func (s *InputSystem) Update(deltaTime float64) {
	// ESC 键切换暂停/恢复
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.gameState.TogglePause()
		if s.gameState.IsPaused {
			log.Printf("[InputSystem] Game paused (ESC)")
		} else {
			log.Printf("[InputSystem] Game resumed (ESC)")
		}
		return
	}

	// 暂停时屏蔽战场交互
	if s.gameState.IsPaused {
		return
	}

	// 左键点击：向光标位置发射拦截弹
	// 非法指令（无弹药、过渡阶段等）由战场系统静默忽略
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.battleSystem.FireAt(float64(x), float64(y))
	}
}
