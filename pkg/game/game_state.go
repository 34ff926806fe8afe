package game

import (
	"log"

	"github.com/gonewx/skyfall/pkg/config"
)

// Phase 游戏会话阶段
type Phase int

const (
	// PhaseStart 初始状态：等待玩家选择难度开局
	PhaseStart Phase = iota
	// PhasePlaying 对局进行中
	PhasePlaying
	// PhaseWon 胜利：分数达到阈值（终态，直到重新开局）
	PhaseWon
	// PhaseLost 失败：全部炮台被摧毁（终态，直到重新开局）
	PhaseLost
)

// String 返回阶段的可读名称
func (p Phase) String() string {
	switch p {
	case PhaseStart:
		return "START"
	case PhasePlaying:
		return "PLAYING"
	case PhaseWon:
		return "WON"
	case PhaseLost:
		return "LOST"
	default:
		return "UNKNOWN"
	}
}

// GameState 单局会话状态
//
// 显式会话对象：分数、难度、阶段的唯一权威
// 不使用全局单例，每局（含测试）各自持有实例
//
// 状态转换：
//   - START → PLAYING：StartPlaying（显式开局，可随时重新开局）
//   - PLAYING → WON：分数达到阈值，每帧检查
//   - PLAYING → LOST：全部炮台被摧毁，每帧检查
//   - 同帧同时满足胜负条件时胜利优先（分数是更强的目标）
type GameState struct {
	Config *config.GameConfig

	// Difficulty 本局难度档位
	Difficulty config.Difficulty

	// Phase 当前会话阶段
	Phase Phase

	// Score 累计分数，只增不减
	Score int

	// IsPaused 是否暂停（暂停时战场不推进）
	IsPaused bool
}

// NewGameState 创建新的会话状态
func NewGameState(cfg *config.GameConfig) *GameState {
	return &GameState{
		Config:     cfg,
		Difficulty: config.DifficultyNormal,
		Phase:      PhaseStart,
	}
}

// StartPlaying 以指定难度进入对局
// 任意阶段都可调用（即随时可重新开局），分数清零
func (gs *GameState) StartPlaying(difficulty config.Difficulty) {
	gs.Difficulty = difficulty
	gs.Phase = PhasePlaying
	gs.Score = 0
	gs.IsPaused = false
	log.Printf("[GameState] Session started: difficulty=%s", difficulty)
}

// AddScore 增加分数
// 分数单调不减，负增量被忽略
func (gs *GameState) AddScore(amount int) {
	if amount <= 0 {
		return
	}
	gs.Score += amount
}

// MarkWon 标记胜利（仅在对局中有效）
func (gs *GameState) MarkWon() {
	if gs.Phase != PhasePlaying {
		return
	}
	gs.Phase = PhaseWon
	log.Printf("[GameState] Session won with score %d", gs.Score)
}

// MarkLost 标记失败（仅在对局中有效）
// 同帧已判胜时不覆盖：胜利优先
func (gs *GameState) MarkLost() {
	if gs.Phase != PhasePlaying {
		return
	}
	gs.Phase = PhaseLost
	log.Printf("[GameState] Session lost with score %d", gs.Score)
}

// IsPlaying 是否处于对局中
func (gs *GameState) IsPlaying() bool {
	return gs.Phase == PhasePlaying
}

// TogglePause 切换暂停状态（仅对局中有效）
func (gs *GameState) TogglePause() {
	if gs.Phase != PhasePlaying {
		return
	}
	gs.IsPaused = !gs.IsPaused
}
