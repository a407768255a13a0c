package scenes

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/encounter"
	"github.com/gonewx/typeabyss/pkg/game"
	gameaudio "github.com/gonewx/typeabyss/pkg/game/audio"
	"github.com/gonewx/typeabyss/pkg/modules"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"
)

// bannerDuration 关卡开始/完成横幅显示时长（秒）
const bannerDuration = 2.0

// GameSceneConfig 战斗场景的创建参数
type GameSceneConfig struct {
	GameConfig *config.GameConfig
	Session    config.SessionConfig
	// Audio ebiten 音频管理器，nil 时静音
	Audio *gameaudio.AudioManager
	// WatchPath 非空时监听该 game.yaml，修改后在下一关生效
	WatchPath string
	// OnRestart 重新开始同一会话（由应用层重建场景）
	OnRestart func()
	// OnConfigReload 热重载成功后通知应用层，之后重建的场景使用新配置
	OnConfigReload func(cfg *config.GameConfig)
}

// GameScene 战斗场景
// 职责：
//   - 以 60 TPS 推进 Encounter
//   - 把文字输入转交给打字匹配，Esc 暂停，Backspace 放弃当前目标
//   - 根据 Snapshot 渲染战场和 HUD
//   - 转发曲目播放完毕和配置热重载
type GameScene struct {
	cfg       GameSceneConfig
	encounter *encounter.Encounter
	audio     *gameaudio.AudioManager
	watcher   *config.Watcher
	pauseMenu *modules.PauseMenuModule

	face     text.Face
	inputBuf []rune

	banner     string
	bannerTime float64
	result     *game.GameOver

	quit     bool
	disposed bool
}

// NewGameScene 创建战斗场景并开始会话
//
// 参数：
//   - cfg: 场景参数，GameConfig 必需
//
// 返回：
//   - *GameScene: 场景实例
//   - error: 配置无效或会话无法开始时返回
func NewGameScene(cfg GameSceneConfig) (*GameScene, error) {
	if cfg.GameConfig == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}

	var sound game.SoundPlayer
	if cfg.Audio != nil {
		sound = cfg.Audio
	}
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	enc, err := encounter.New(cfg.GameConfig, sound, rng)
	if err != nil {
		return nil, fmt.Errorf("failed to create encounter: %w", err)
	}
	if err := enc.Start(cfg.Session); err != nil {
		return nil, fmt.Errorf("failed to start session: %w", err)
	}

	s := &GameScene{
		cfg:       cfg,
		encounter: enc,
		audio:     cfg.Audio,
		face:      text.NewGoXFace(basicfont.Face7x13),
		inputBuf:  make([]rune, 0, 16),
	}

	s.pauseMenu = modules.NewPauseMenuModule(
		int(cfg.GameConfig.Field.Width),
		int(cfg.GameConfig.Field.Height),
		modules.PauseMenuCallbacks{
			IsPaused:   enc.Paused,
			OnContinue: func() { enc.Resume() },
			OnRestart:  s.restart,
			OnExit:     s.exit,
		},
	)

	if cfg.WatchPath != "" {
		w, err := config.NewWatcher(cfg.WatchPath)
		if err != nil {
			log.Printf("[GameScene] Warning: hot reload disabled: %v", err)
		} else {
			s.watcher = w
		}
	}

	log.Printf("[GameScene] Session started: variant=%s, mode=%s, character=%s",
		cfg.Session.Variant, cfg.Session.Mode, cfg.Session.Character)
	return s, nil
}

// Update 推进一帧
func (s *GameScene) Update(deltaTime float64) {
	if s.disposed {
		return
	}

	s.pollWatcher()
	s.handleInput()
	if s.disposed {
		// 重新开始时本场景已被替换
		return
	}
	s.encounter.Tick(deltaTime)
	if s.audio != nil && s.audio.TrackEnded() {
		s.encounter.TrackFinished()
	}
	s.handleEvents()

	if s.bannerTime > 0 {
		s.bannerTime -= deltaTime
	}
}

// handleInput 路由键盘输入
//
// 执行流程：
//  1. 结算画面：Enter 重新开始，Esc 退出
//  2. 暂停中：交给暂停菜单
//  3. 战斗中：Esc 暂停，Backspace 放弃目标，其余文字转交打字匹配
func (s *GameScene) handleInput() {
	s.inputBuf = ebiten.AppendInputChars(s.inputBuf[:0])

	if s.result != nil {
		switch {
		case inpututil.IsKeyJustPressed(ebiten.KeyEnter):
			s.restart()
		case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
			s.exit()
		}
		return
	}

	if s.encounter.Paused() {
		s.pauseMenu.Update()
		return
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		s.encounter.Pause()
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		s.encounter.CancelTarget()
	}
	for _, r := range s.inputBuf {
		s.encounter.KeyDown(r)
	}
}

// handleEvents 消费引擎事件，更新横幅和结算状态
func (s *GameScene) handleEvents() {
	for _, ev := range s.encounter.Poll() {
		switch e := ev.(type) {
		case game.GameStarted:
			s.showBanner(fmt.Sprintf("LEVEL %d", e.Level))
		case game.LevelComplete:
			s.showBanner(fmt.Sprintf("LEVEL %d COMPLETE", e.Level))
		case game.GameOver:
			result := e
			s.result = &result
			log.Printf("[GameScene] Game over: victory=%v, score=%d, level=%d", e.Victory, e.Score, e.Level)
		}
	}
}

func (s *GameScene) showBanner(msg string) {
	s.banner = msg
	s.bannerTime = bannerDuration
}

// pollWatcher 非阻塞读取热重载的配置
func (s *GameScene) pollWatcher() {
	if s.watcher == nil {
		return
	}
	select {
	case cfg := <-s.watcher.Configs:
		s.encounter.SetPendingConfig(cfg)
		if s.cfg.OnConfigReload != nil {
			s.cfg.OnConfigReload(cfg)
		}
		log.Printf("[GameScene] Config reloaded, applies from next level")
	case err := <-s.watcher.Errors:
		log.Printf("[GameScene] Config reload failed: %v", err)
	default:
	}
}

func (s *GameScene) restart() {
	if s.cfg.OnRestart == nil {
		return
	}
	log.Printf("[GameScene] Restart requested")
	s.cfg.OnRestart()
}

func (s *GameScene) exit() {
	log.Printf("[GameScene] Exit requested")
	s.encounter.Exit()
	s.quit = true
}

// QuitRequested 玩家是否选择退出程序
func (s *GameScene) QuitRequested() bool {
	return s.quit
}

// Encounter 返回场景驱动的引擎
func (s *GameScene) Encounter() *encounter.Encounter {
	return s.encounter
}

// Dispose 拆除会话并关闭配置监听
func (s *GameScene) Dispose() {
	if s.disposed {
		return
	}
	s.disposed = true
	s.encounter.Exit()
	if s.watcher != nil {
		if err := s.watcher.Close(); err != nil {
			log.Printf("[GameScene] Warning: Failed to close watcher: %v", err)
		}
	}
	log.Printf("[GameScene] Disposed")
}
