package scenes

import (
	"errors"
	"fmt"
	"log"

	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/hajimehoshi/ebiten/v2"
)

var errNoSceneFactory = errors.New("scene factory not set")

// SceneFactory 根据会话配置创建战斗场景
// 由应用层注入，场景管理器因此不依赖具体场景的创建参数
type SceneFactory func(session config.SessionConfig) (Scene, error)

// SceneManager 持有唯一的活动场景
// 新会话替换旧会话时先创建新场景，创建失败则保留旧场景
type SceneManager struct {
	active  Scene
	factory SceneFactory
}

// NewSceneManager 创建没有活动场景的管理器
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SetSceneFactory 注入场景工厂
func (sm *SceneManager) SetSceneFactory(factory SceneFactory) {
	sm.factory = factory
}

// GetCurrentScene 返回活动场景，没有时返回 nil
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.active
}

// SwitchTo 激活 scene，被替换的场景若实现 Disposable 则被释放
// scene 为 nil 时只释放当前场景
func (sm *SceneManager) SwitchTo(scene Scene) {
	prev := sm.active
	sm.active = scene
	if prev == nil || prev == scene {
		return
	}
	if d, ok := prev.(Disposable); ok {
		d.Dispose()
	}
}

// StartSession 通过工厂创建战斗场景并激活
func (sm *SceneManager) StartSession(session config.SessionConfig) error {
	if sm.factory == nil {
		return errNoSceneFactory
	}
	scene, err := sm.factory(session)
	if err != nil {
		log.Printf("[SceneManager] Failed to create scene: %v", err)
		return fmt.Errorf("create scene: %w", err)
	}
	sm.SwitchTo(scene)
	log.Printf("[SceneManager] Session %s started at level %d", session.Variant, session.StartLevel)
	return nil
}

// Shutdown 释放活动场景
func (sm *SceneManager) Shutdown() {
	sm.SwitchTo(nil)
}

// Update 推进活动场景
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.active != nil {
		sm.active.Update(deltaTime)
	}
}

// Draw 绘制活动场景
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.active != nil {
		sm.active.Draw(screen)
	}
}
