package game

import (
	"testing"

	"github.com/gonewx/skyfall/pkg/config"
)

// newTestGameState 创建测试用会话状态
func newTestGameState() *GameState {
	return NewGameState(config.DefaultGameConfig())
}

// TestNewGameState_StartsIdle 测试新会话处于初始状态
func TestNewGameState_StartsIdle(t *testing.T) {
	gs := newTestGameState()

	if gs.Phase != PhaseStart {
		t.Errorf("Expected phase START, got %s", gs.Phase)
	}
	if gs.IsPlaying() {
		t.Error("Expected IsPlaying() = false before StartPlaying")
	}
	if gs.Score != 0 {
		t.Errorf("Expected score 0, got %d", gs.Score)
	}
}

// TestStartPlaying_EntersPlayingAndResetsScore 测试开局进入对局并清零分数
func TestStartPlaying_EntersPlayingAndResetsScore(t *testing.T) {
	gs := newTestGameState()
	gs.StartPlaying(config.DifficultyHard)
	gs.AddScore(300)

	// 任意阶段都可重新开局
	gs.StartPlaying(config.DifficultyEasy)

	if gs.Phase != PhasePlaying {
		t.Errorf("Expected phase PLAYING, got %s", gs.Phase)
	}
	if gs.Difficulty != config.DifficultyEasy {
		t.Errorf("Expected difficulty easy, got %s", gs.Difficulty)
	}
	if gs.Score != 0 {
		t.Errorf("Expected score reset to 0, got %d", gs.Score)
	}
	if gs.IsPaused {
		t.Error("Expected pause to be cleared on restart")
	}
}

// TestStartPlaying_AllowedFromTerminalPhases 测试终局后可重新开局
func TestStartPlaying_AllowedFromTerminalPhases(t *testing.T) {
	gs := newTestGameState()
	gs.StartPlaying(config.DifficultyNormal)
	gs.MarkWon()

	gs.StartPlaying(config.DifficultyNormal)
	if gs.Phase != PhasePlaying {
		t.Errorf("Expected restart from WON to reach PLAYING, got %s", gs.Phase)
	}

	gs.MarkLost()
	gs.StartPlaying(config.DifficultyNormal)
	if gs.Phase != PhasePlaying {
		t.Errorf("Expected restart from LOST to reach PLAYING, got %s", gs.Phase)
	}
}

// TestAddScore_MonotonicNonDecreasing 测试分数只增不减
func TestAddScore_MonotonicNonDecreasing(t *testing.T) {
	gs := newTestGameState()
	gs.StartPlaying(config.DifficultyNormal)

	gs.AddScore(100)
	gs.AddScore(0)
	gs.AddScore(-50)

	if gs.Score != 100 {
		t.Errorf("Expected score 100 (non-positive amounts ignored), got %d", gs.Score)
	}
}

// TestMarkWon_OnlyFromPlaying 测试胜利标记只在对局中生效
func TestMarkWon_OnlyFromPlaying(t *testing.T) {
	gs := newTestGameState()

	gs.MarkWon()
	if gs.Phase != PhaseStart {
		t.Errorf("Expected MarkWon before StartPlaying to be a no-op, got %s", gs.Phase)
	}

	gs.StartPlaying(config.DifficultyNormal)
	gs.MarkWon()
	if gs.Phase != PhaseWon {
		t.Errorf("Expected phase WON, got %s", gs.Phase)
	}
}

// TestMarkLost_DoesNotOverrideWon 测试同帧先判胜后判负时胜利保留
func TestMarkLost_DoesNotOverrideWon(t *testing.T) {
	gs := newTestGameState()
	gs.StartPlaying(config.DifficultyNormal)

	gs.MarkWon()
	gs.MarkLost()

	if gs.Phase != PhaseWon {
		t.Errorf("Expected WON to take precedence over LOST, got %s", gs.Phase)
	}
}

// TestMarkLost_FromPlaying 测试失败标记
func TestMarkLost_FromPlaying(t *testing.T) {
	gs := newTestGameState()
	gs.StartPlaying(config.DifficultyNormal)

	gs.MarkLost()

	if gs.Phase != PhaseLost {
		t.Errorf("Expected phase LOST, got %s", gs.Phase)
	}
	if gs.IsPlaying() {
		t.Error("Expected IsPlaying() = false after loss")
	}
}

// TestTogglePause_OnlyWhilePlaying 测试暂停只在对局中可切换
func TestTogglePause_OnlyWhilePlaying(t *testing.T) {
	gs := newTestGameState()

	gs.TogglePause()
	if gs.IsPaused {
		t.Error("Expected pause toggle to be ignored before StartPlaying")
	}

	gs.StartPlaying(config.DifficultyNormal)
	gs.TogglePause()
	if !gs.IsPaused {
		t.Error("Expected game to be paused")
	}
	gs.TogglePause()
	if gs.IsPaused {
		t.Error("Expected game to be resumed")
	}

	gs.MarkLost()
	gs.TogglePause()
	if gs.IsPaused {
		t.Error("Expected pause toggle to be ignored after terminal phase")
	}
}

// TestPhaseString 测试阶段名称
func TestPhaseString(t *testing.T) {
	cases := map[Phase]string{
		PhaseStart:   "START",
		PhasePlaying: "PLAYING",
		PhaseWon:     "WON",
		PhaseLost:    "LOST",
		Phase(99):    "UNKNOWN",
	}
	for phase, want := range cases {
		if got := phase.String(); got != want {
			t.Errorf("Phase(%d).String() = %q, want %q", phase, got, want)
		}
	}
}
