package main

import (
	"flag"
	"log"

	"github.com/gonewx/typeabyss/pkg/app"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志")
	configPath := flag.String("config", "", "覆盖内嵌 data/game.yaml 的配置文件路径")
	watch := flag.Bool("watch", false, "监听 --config 文件变化，下一关生效")
	level := flag.Int("level", 1, "起始关卡")
	variant := flag.String("variant", "", "玩法: campaign | practice（默认使用已保存的设置）")
	character := flag.String("character", "", "角色: character_1 | character_2")
	mode := flag.String("mode", "", "难度模式: gradual | manual")
	manualSpeed := flag.Float64("manual-speed", 0, "手动模式敌人速度（像素/秒）")
	manualInterval := flag.Float64("manual-interval", 0, "手动模式生成间隔（毫秒）")
	noMusic := flag.Bool("no-music", false, "关闭背景音乐")
	soundDir := flag.String("sound-dir", "", "音效目录（<name>.ogg / <name>.mp3），为空时使用合成音效")
	musicDir := flag.String("music-dir", "", "音乐目录（music_<n>.ogg / .mp3）")
	flag.Parse()

	embedded.Init(dataFS)

	cfg := app.Config{
		Verbose:    *verbose,
		ConfigPath: *configPath,
		Watch:      *watch,
		SoundDir:   *soundDir,
		MusicDir:   *musicDir,
		StartLevel: *level,
		Overrides: func(s *config.SessionConfig) {
			if *variant != "" {
				s.Variant = *variant
			}
			if *character != "" {
				s.Character = *character
			}
			if *mode != "" {
				s.Mode = *mode
			}
			if *manualSpeed > 0 {
				s.ManualSpeed = *manualSpeed
			}
			if *manualInterval > 0 {
				s.ManualSpawnIntervalMs = *manualInterval
			}
			if *noMusic {
				s.MusicEnabled = false
			}
		},
	}

	gameApp, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	w, h := gameApp.Layout(0, 0)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowTitle("Type Abyss")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	if err := ebiten.RunGame(gameApp); err != nil {
		log.Fatal(err)
	}
	gameApp.Shutdown()
}
