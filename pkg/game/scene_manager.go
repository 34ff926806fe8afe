package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于按难度创建对局场景，避免循环依赖
type SceneFactory func(difficulty string) Scene

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新对局场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{
		currentScene: nil,
		sceneFactory: nil,
	}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The new scene's Update and Draw methods will be called on subsequent game loop iterations.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景
// 用于游戏关闭时检查当前场景是否需要保存状态
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// StartBattle 以指定难度创建并切换到对局场景
func (sm *SceneManager) StartBattle(difficulty string) {
	log.Printf("[SceneManager] Starting battle: difficulty=%s", difficulty)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] ERROR: SceneFactory not set")
		return
	}

	newScene := sm.sceneFactory(difficulty)
	if newScene != nil {
		sm.SwitchTo(newScene)
	} else {
		log.Printf("[SceneManager] ERROR: failed to create battle scene for difficulty %s", difficulty)
	}
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
