// typeabyss-tui 在终端中运行打字战斗
//
// 用法：
//
//	go run ./cmd/typeabyss-tui --config data/game.yaml --variant practice --log tui.log
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/encounter"
	"github.com/gonewx/typeabyss/pkg/game"
)

const frameDelta = 1.0 / 60.0

// tui 终端宿主：tcell 事件经 channel 串行进入帧循环，Encounter 只在主 goroutine 上调用
type tui struct {
	screen  tcell.Screen
	cfg     *config.GameConfig // 新会话使用的配置（热重载后更新）
	session config.SessionConfig
	sound   game.SoundPlayer
	beep    *beepSound // 扬声器不可用时为 nil
	watcher *config.Watcher

	enc    *encounter.Encounter
	result *game.GameOver
}

func main() {
	configPath := flag.String("config", "data/game.yaml", "game.yaml 路径")
	watch := flag.Bool("watch", false, "监听配置文件变化，下一关生效")
	logPath := flag.String("log", "", "日志文件（终端被占用，默认丢弃日志）")
	variant := flag.String("variant", config.VariantCampaign, "玩法: campaign | practice")
	level := flag.Int("level", 1, "起始关卡")
	character := flag.String("character", config.Character1, "角色: character_1 | character_2")
	mode := flag.String("mode", config.ModeGradual, "难度模式: gradual | manual")
	manualSpeed := flag.Float64("manual-speed", 100, "手动模式敌人速度（像素/秒）")
	manualInterval := flag.Float64("manual-interval", 6000, "手动模式生成间隔（毫秒）")
	noSound := flag.Bool("no-sound", false, "关闭所有声音")
	noMusic := flag.Bool("no-music", false, "关闭背景音")
	flag.Parse()

	if err := setupLog(*logPath); err != nil {
		fmt.Fprintf(os.Stderr, "failed to open log: %v\n", err)
		os.Exit(1)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	session := config.SessionConfig{
		Character:             *character,
		MusicEnabled:          !*noMusic && !*noSound,
		Mode:                  *mode,
		ManualSpeed:           *manualSpeed,
		ManualSpawnIntervalMs: *manualInterval,
		Variant:               *variant,
		StartLevel:            *level,
	}
	if err := session.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "invalid session: %v\n", err)
		os.Exit(2)
	}

	t, err := newTUI(cfg, session, !*noSound)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *watch {
		if w, err := config.NewWatcher(*configPath); err != nil {
			log.Printf("[TUI] Hot reload disabled: %v", err)
		} else {
			t.watcher = w
		}
	}

	err = t.run()
	t.cleanup()
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

func setupLog(path string) error {
	if path == "" {
		log.SetOutput(io.Discard)
		return nil
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	log.SetOutput(f)
	return nil
}

func newTUI(cfg *config.GameConfig, session config.SessionConfig, withSound bool) (*tui, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return nil, fmt.Errorf("failed to init screen: %w", err)
	}

	t := &tui{screen: screen, cfg: cfg, session: session, sound: game.NopSoundPlayer{}}
	if withSound {
		if s, err := newBeepSound(); err != nil {
			// 没有声音也能玩
			log.Printf("[TUI] Audio initialization failed: %v", err)
		} else {
			t.beep = s
			t.sound = s
		}
	}

	if err := t.start(); err != nil {
		screen.Fini()
		return nil, err
	}
	return t, nil
}

// start 创建新的会话（首次启动和重新开始）
func (t *tui) start() error {
	if t.enc != nil {
		t.enc.Exit()
	}
	enc, err := encounter.New(t.cfg, t.sound, rand.New(rand.NewSource(time.Now().UnixNano())))
	if err != nil {
		return err
	}
	if err := enc.Start(t.session); err != nil {
		return err
	}
	t.enc = enc
	t.result = nil
	return nil
}

// run 帧循环：事件和 tick 在同一个 goroutine 中处理
func (t *tui) run() error {
	ticker := time.NewTicker(time.Second / 60)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := t.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	var trackEnded <-chan struct{}
	if t.beep != nil {
		trackEnded = t.beep.TrackEnded()
	}
	var configs <-chan *config.GameConfig
	var configErrs <-chan error
	if t.watcher != nil {
		configs = t.watcher.Configs
		configErrs = t.watcher.Errors
	}

	for {
		select {
		case ev := <-events:
			quit, err := t.handleEvent(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-trackEnded:
			t.enc.TrackFinished()
		case cfg := <-configs:
			t.enc.SetPendingConfig(cfg)
			t.cfg = cfg
			log.Printf("[TUI] Config reloaded, applies from next level")
		case err := <-configErrs:
			log.Printf("[TUI] Config reload failed: %v", err)
		case <-ticker.C:
			t.enc.Tick(frameDelta)
			t.drainEvents()
			render(t.screen, t.enc.Config(), t.enc.Snapshot(), t.result)
		}
	}
}

// handleEvent 处理一个终端事件，返回是否退出
func (t *tui) handleEvent(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		t.screen.Sync()
	case *tcell.EventKey:
		if ev.Key() == tcell.KeyCtrlC {
			t.enc.Exit()
			return true, nil
		}

		if t.result != nil {
			switch {
			case ev.Key() == tcell.KeyEnter:
				return false, t.start()
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q', ev.Key() == tcell.KeyEscape:
				return true, nil
			}
			return false, nil
		}

		if t.enc.Paused() {
			switch {
			case ev.Key() == tcell.KeyEscape:
				t.enc.Resume()
			case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
				t.enc.Exit()
				return true, nil
			}
			return false, nil
		}

		switch ev.Key() {
		case tcell.KeyEscape:
			t.enc.Pause()
		case tcell.KeyBackspace, tcell.KeyBackspace2:
			t.enc.CancelTarget()
		case tcell.KeyRune:
			t.enc.KeyDown(ev.Rune())
		}
	}
	return false, nil
}

// drainEvents 消费引擎事件，记录结算结果
func (t *tui) drainEvents() {
	for _, ev := range t.enc.Poll() {
		log.Printf("[TUI] %s %+v", ev.Type(), ev)
		if over, ok := ev.(game.GameOver); ok {
			t.result = &over
		}
	}
}

func (t *tui) cleanup() {
	if t.watcher != nil {
		_ = t.watcher.Close()
	}
	if t.beep != nil {
		t.beep.Close()
	}
	t.screen.Fini()
}
