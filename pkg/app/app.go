// Package app 把战斗场景包装成 ebiten.Game
//
// 桌面端（main.go）和移动端（mobile/mobile.go）共用同一个 App。
package app

import (
	"fmt"
	"image/color"
	"io"
	"log"

	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/embedded"
	"github.com/gonewx/typeabyss/pkg/game"
	gameaudio "github.com/gonewx/typeabyss/pkg/game/audio"
	"github.com/gonewx/typeabyss/pkg/scenes"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"
)

const (
	gdataAppName    = "typeabyss"
	audioSampleRate = 48000
	tickDelta       = 1.0 / 60.0
	// 退出全屏后窗口尺寸要等几帧才能设置成功
	windowResetFrames = 3
)

// Config 应用启动参数
type Config struct {
	Verbose bool
	// ConfigPath 磁盘上的 game.yaml，为空时使用内嵌配置
	ConfigPath string
	// Watch 监听 ConfigPath，修改在下一次关卡交接时生效
	Watch    bool
	SoundDir string
	MusicDir string
	// Overrides 命令行对会话选择的修改，会被记住
	Overrides  func(session *config.SessionConfig)
	StartLevel int
}

// App 实现 ebiten.Game
type App struct {
	scenes   *scenes.SceneManager
	settings *game.SettingsManager
	audio    *gameaudio.AudioManager
	field    config.FieldConfig
	verbose  bool

	// gameConfig 最近一次加载成功的配置，重新开始时使用
	gameConfig *config.GameConfig
	watchPath  string

	// 大于 0 时倒数，归零时恢复窗口尺寸
	windowResetIn int
}

// NewApp 创建应用并开始第一局
// 调用前必须先调用 embedded.Init()
func NewApp(cfg Config) (*App, error) {
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	gameConfig, err := embedded.LoadGameConfig(cfg.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load game config: %w", err)
	}
	log.Printf("[App] Game config: %d words, %d enemy types, %d backgrounds",
		len(gameConfig.Words), len(gameConfig.Enemy.Types), gameConfig.Backgrounds)

	settings, err := openSettings(cfg.Overrides)
	if err != nil {
		return nil, err
	}

	startLevel := max(cfg.StartLevel, 1)
	session := settings.GetSettings().SessionConfig(startLevel)

	a := &App{
		scenes:     scenes.NewSceneManager(),
		settings:   settings,
		audio:      gameaudio.NewAudioManager(audio.NewContext(audioSampleRate), settings, cfg.SoundDir, cfg.MusicDir),
		field:      gameConfig.Field,
		verbose:    cfg.Verbose,
		gameConfig: gameConfig,
	}
	if cfg.Watch && cfg.ConfigPath != "" {
		a.watchPath = cfg.ConfigPath
	}
	a.scenes.SetSceneFactory(func(s config.SessionConfig) (scenes.Scene, error) {
		return scenes.NewGameScene(a.sceneConfig(s))
	})

	if err := a.scenes.StartSession(session); err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	if settings.GetSettings().Display.Fullscreen {
		ebiten.SetFullscreen(true)
	}
	return a, nil
}

// openSettings 读取启动器设置并应用命令行修改
// gdata 不可用时设置只保存在内存中
func openSettings(overrides func(*config.SessionConfig)) (*game.SettingsManager, error) {
	store, err := gdata.Open(gdata.Config{AppName: gdataAppName})
	if err != nil {
		log.Printf("[App] Warning: settings will not persist: %v", err)
		store = nil
	}
	settings, err := game.NewSettingsManager(store)
	if err != nil {
		return nil, fmt.Errorf("open settings: %w", err)
	}
	if err := settings.UpdateSession(overrides); err != nil {
		return nil, err
	}
	if err := settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
	return settings, nil
}

// sceneConfig 用当前配置组装场景参数
func (a *App) sceneConfig(s config.SessionConfig) scenes.GameSceneConfig {
	return scenes.GameSceneConfig{
		GameConfig:     a.gameConfig,
		Session:        s,
		Audio:          a.audio,
		WatchPath:      a.watchPath,
		OnRestart:      func() { a.restart(s) },
		OnConfigReload: a.configReloaded,
	}
}

// configReloaded 记住热重载的配置
// 窗口尺寸保持启动时的值
func (a *App) configReloaded(cfg *config.GameConfig) {
	if cfg == nil {
		return
	}
	a.gameConfig = cfg
	log.Printf("[App] Config reloaded: %d words, %d enemy types", len(cfg.Words), len(cfg.Enemy.Types))
}

// restart 以同样的会话配置重新开始
// 旧场景先拆除，它的 StopAll 不会打断新会话的音乐
func (a *App) restart(s config.SessionConfig) {
	a.scenes.Shutdown()
	if err := a.scenes.StartSession(s); err != nil {
		log.Printf("[App] Failed to restart session: %v", err)
	}
}

// Update 每个 tick 调用一次
func (a *App) Update() error {
	if a.windowResetIn > 0 {
		a.windowResetIn--
		if a.windowResetIn == 0 {
			ebiten.SetWindowSize(a.Layout(0, 0))
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		a.toggleFullscreen()
	}

	a.scenes.Update(tickDelta)

	current := a.scenes.GetCurrentScene()
	if current == nil {
		return ebiten.Termination
	}
	if q, ok := current.(interface{ QuitRequested() bool }); ok && q.QuitRequested() {
		a.Shutdown()
		return ebiten.Termination
	}
	return nil
}

func (a *App) toggleFullscreen() {
	fullscreen := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(fullscreen)
	if !fullscreen {
		if ebiten.IsWindowMaximized() || ebiten.IsWindowMinimized() {
			ebiten.RestoreWindow()
		}
		a.windowResetIn = windowResetFrames
	}
	a.settings.SetFullscreen(fullscreen)
	if err := a.settings.Save(); err != nil {
		log.Printf("[App] Warning: Failed to save settings: %v", err)
	}
	log.Printf("[App] Fullscreen: %v", fullscreen)
}

// Draw 绘制当前场景
func (a *App) Draw(screen *ebiten.Image) {
	a.scenes.Draw(screen)
}

// DrawFinalScreen 全屏时用黑边和线性过滤缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM = geoM
	screen.DrawImage(offscreen, op)
}

// Layout 逻辑屏幕就是战场
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return int(a.field.Width), int(a.field.Height)
}

// Shutdown 拆除当前场景（停止音频、关闭配置监听）
func (a *App) Shutdown() {
	a.scenes.Shutdown()
}

// GetSceneManager 返回场景管理器
func (a *App) GetSceneManager() *scenes.SceneManager {
	return a.scenes
}

// IsVerbose 是否启用了详细日志
func (a *App) IsVerbose() bool {
	return a.verbose
}
