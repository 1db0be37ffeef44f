package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// SceneFactory 场景工厂函数类型
// 用于创建指定 ID 的游戏场景，避免循环依赖
type SceneFactory func(gameID string) Scene

// SceneManager manages which scene is active.
// It ensures only one scene's Update and Draw methods are called at any given time.
type SceneManager struct {
	currentScene Scene
	sceneFactory SceneFactory // 场景工厂函数，用于创建新场景
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 设置场景工厂函数
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.sceneFactory = factory
}

// SwitchTo changes the active scene to the provided scene.
// The previous scene is saved and closed if it supports it.
func (sm *SceneManager) SwitchTo(scene Scene) {
	if prev := sm.currentScene; prev != nil && prev != scene {
		if s, ok := prev.(Saveable); ok {
			s.SaveOnExit()
		}
		if c, ok := prev.(Closer); ok {
			c.Close()
		}
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// LoadGame 通过工厂创建并切换到指定游戏
func (sm *SceneManager) LoadGame(gameID string) bool {
	log.Printf("[SceneManager] Loading game: %s", gameID)

	if sm.sceneFactory == nil {
		log.Printf("[SceneManager] Error: SceneFactory not set")
		return false
	}

	newScene := sm.sceneFactory(gameID)
	if newScene == nil {
		log.Printf("[SceneManager] Error: cannot create scene for %s", gameID)
		return false
	}
	sm.SwitchTo(newScene)
	return true
}

// Update updates the currently active scene.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene != nil {
		sm.currentScene.Draw(screen)
	}
}
