// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：加载配置、打开设置存储、
// 装配场景管理器，并实现 ebiten.Game 接口驱动主循环。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/gonewx/skyfall/pkg/config"
	"github.com/gonewx/skyfall/pkg/game"
	"github.com/gonewx/skyfall/pkg/scenes"
)

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 游戏配置文件路径，为空则使用内置默认参数
	ConfigPath string
	// Difficulty 指定开局难度（如 "hard"），非空时跳过主菜单直接开局
	Difficulty string
	// WatchConfig 监视配置文件变更并热重载（开发期用）
	WatchConfig bool
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
	gameConfig      *config.GameConfig
	configWatcher   *config.Watcher
	configPath      string
	verbose         bool

	pendingWindowSizeReset   bool // 延迟设置窗口大小标志
	windowSizeResetCountdown int  // 延迟帧数
}

// NewApp 创建并初始化游戏应用
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// 加载游戏配置
	gameConfig, err := loadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, err
	}

	// 打开设置存储（失败时降级为仅内存设置）
	var gdataManager *gdata.Manager
	if m, err := gdata.Open(gdata.Config{AppName: "skyfall"}); err != nil {
		log.Printf("[App] Warning: settings storage unavailable: %v (settings will not persist)", err)
	} else {
		gdataManager = m
	}

	settingsManager, err := game.NewSettingsManager(gdataManager)
	if err != nil {
		return nil, fmt.Errorf("settings manager init failed: %w", err)
	}

	app := &App{
		settingsManager: settingsManager,
		gameConfig:      gameConfig,
		configPath:      cfg.ConfigPath,
		verbose:         cfg.Verbose,
	}

	// 创建场景管理器
	sceneManager := game.NewSceneManager()
	sceneManager.SetSceneFactory(func(difficulty string) game.Scene {
		return scenes.NewGameScene(sceneManager, settingsManager, app.gameConfig, config.Difficulty(difficulty))
	})
	app.sceneManager = sceneManager

	// 根据启动参数决定首个场景
	if cfg.Difficulty != "" {
		log.Printf("[App] Difficulty flag set, skipping main menu: %s", cfg.Difficulty)
		settingsManager.SetPreferredDifficulty(cfg.Difficulty)
		sceneManager.StartBattle(settingsManager.GetSettings().PreferredDifficulty)
	} else {
		sceneManager.SwitchTo(scenes.NewMenuScene(sceneManager, settingsManager, app.gameConfig))
	}

	// 开发期配置热重载
	if cfg.WatchConfig && cfg.ConfigPath != "" {
		watcher, err := config.NewWatcher(watchDirOf(cfg.ConfigPath))
		if err != nil {
			log.Printf("[App] Warning: config watcher unavailable: %v", err)
		} else {
			app.configWatcher = watcher
			log.Printf("[App] Watching config file for changes: %s", cfg.ConfigPath)
		}
	}

	return app, nil
}

// loadGameConfig 加载配置文件，路径为空时使用内置默认参数
func loadGameConfig(path string) (*config.GameConfig, error) {
	if path == "" {
		log.Printf("[App] No config file specified, using built-in defaults")
		return config.DefaultGameConfig(), nil
	}
	cfg, err := config.LoadGameConfig(path)
	if err != nil {
		return nil, fmt.Errorf("game config load failed: %w", err)
	}
	log.Printf("[App] Game config loaded: %s", path)
	return cfg, nil
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// 窗口关闭：给当前场景一次保存状态的机会，再结束主循环
	// main 里已调用 SetWindowClosingHandled(true)
	if ebiten.IsWindowBeingClosed() {
		if saveable, ok := a.sceneManager.GetCurrentScene().(game.Saveable); ok {
			if !saveable.SaveOnExit() {
				log.Printf("[App] Warning: scene failed to save state on exit")
			}
		}
		a.Shutdown()
		return ebiten.Termination
	}

	a.drainConfigEvents()

	// 延迟设置窗口大小（退出全屏后需要等待几帧才能正确设置）
	if a.pendingWindowSizeReset {
		a.windowSizeResetCountdown--
		if a.windowSizeResetCountdown <= 0 {
			ebiten.SetWindowSize(int(a.gameConfig.FieldWidth), int(a.gameConfig.FieldHeight))
			a.pendingWindowSizeReset = false
		}
	}

	// F11 切换全屏
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		if ebiten.IsFullscreen() {
			ebiten.SetFullscreen(false)
			if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
				ebiten.RestoreWindow()
			}
			a.pendingWindowSizeReset = true
			a.windowSizeResetCountdown = 3
		} else {
			ebiten.SetFullscreen(true)
		}
		a.settingsManager.SetFullscreen(ebiten.IsFullscreen())
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// drainConfigEvents 在主循环里排空配置变更事件
//
// 重载只替换 App 持有的配置对象，对进行中的对局无影响，
// 下一次开局（场景工厂）使用新配置
func (a *App) drainConfigEvents() {
	if a.configWatcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-a.configWatcher.Events:
			if !ok {
				a.configWatcher = nil
				return
			}
			newConfig, err := config.LoadGameConfig(a.configPath)
			if err != nil {
				log.Printf("[App] Config reload failed (keeping previous config): %v", err)
				continue
			}
			a.gameConfig = newConfig
			log.Printf("[App] Config reloaded: %s (applies to next battle)", path)
		case err := <-a.configWatcher.Errors:
			log.Printf("[App] Config watcher error: %v", err)
		default:
			return
		}
	}
}

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 用于控制全屏时的缩放和 letterbox 颜色
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterLinear
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 逻辑尺寸即战场尺寸，指针坐标可直接作为战场坐标使用
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.gameConfig.FieldWidth), int(a.gameConfig.FieldHeight)
}

// GetSceneManager 返回场景管理器
// 用于在游戏关闭时保存当前场景状态
func (a *App) GetSceneManager() *game.SceneManager {
	return a.sceneManager
}

// GetSettingsManager 返回设置管理器
func (a *App) GetSettingsManager() *game.SettingsManager {
	return a.settingsManager
}

// Shutdown 释放应用持有的资源
func (a *App) Shutdown() {
	if a.configWatcher != nil {
		_ = a.configWatcher.Close()
	}
}

// IsVerbose 返回是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}

// watchDirOf 返回配置文件所在目录（fsnotify 按目录监视）
func watchDirOf(path string) string {
	return filepath.Dir(path)
}
