// verify_encounter 无头运行一次会话，由自动打字员输入单词并打印事件流
//
// 用法：
//
//	go run ./cmd/verify_encounter --variant practice --cps 6
//	go run ./cmd/verify_encounter --ignore 1.0   # 从不打字，验证失败流程
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"sort"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/encounter"
	"github.com/gonewx/typeabyss/pkg/game"
)

const frameDelta = 1.0 / 60.0

var (
	configPath = flag.String("config", "data/game.yaml", "game.yaml 路径")
	variant    = flag.String("variant", config.VariantCampaign, "玩法: campaign | practice")
	level      = flag.Int("level", 1, "起始关卡")
	mode       = flag.String("mode", config.ModeGradual, "难度模式: gradual | manual")
	seed       = flag.Int64("seed", 1, "随机种子（生成和打字员共用）")
	cps        = flag.Float64("cps", 5, "自动打字员每秒输入的字符数")
	ignore     = flag.Float64("ignore", 0, "打字员忽略某个敌人的概率 0.0 ~ 1.0")
	maxSeconds = flag.Float64("max-seconds", 600, "最长模拟时间（秒）")
	verbose    = flag.Bool("verbose", false, "显示引擎日志")
)

// typist 自动打字员：优先补完当前目标，否则挑最靠近玩家的敌人
type typist struct {
	rng     *rand.Rand
	ignored map[ecs.EntityID]bool
	chance  float64
}

// nextKey 根据快照决定下一个按键，没有可打的敌人时返回 0
func (t *typist) nextKey(snap encounter.Snapshot) rune {
	enemies := append([]encounter.EnemyView(nil), snap.Enemies...)
	for _, e := range enemies {
		if e.ID == snap.ActiveTarget && len(e.Progress) < len(e.Word) {
			return rune(e.Word[len(e.Progress)])
		}
	}

	sort.SliceStable(enemies, func(i, j int) bool { return enemies[i].X < enemies[j].X })
	for _, e := range enemies {
		if e.State == components.EnemyDying || e.Targeted || e.Word == "" {
			continue
		}
		if _, decided := t.ignored[e.ID]; !decided {
			t.ignored[e.ID] = t.rng.Float64() < t.chance
		}
		if t.ignored[e.ID] {
			continue
		}
		return rune(e.Word[0])
	}
	return 0
}

func main() {
	flag.Parse()
	if !*verbose {
		log.SetOutput(io.Discard)
	}

	cfg, err := config.LoadGameConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}

	session := config.DefaultSessionConfig()
	session.Variant = *variant
	session.StartLevel = *level
	session.Mode = *mode

	recorder := &game.SoundRecorder{}
	enc, err := encounter.New(cfg, recorder, rand.New(rand.NewSource(*seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if err := enc.Start(session); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	t := &typist{
		rng:     rand.New(rand.NewSource(*seed + 1)),
		ignored: make(map[ecs.EntityID]bool),
		chance:  *ignore,
	}

	keyInterval := 1.0 / *cps
	var elapsed, sinceKey float64
	var keys, accepted int
	for elapsed < *maxSeconds && !enc.Finished() {
		sinceKey += frameDelta
		if *cps > 0 && sinceKey >= keyInterval {
			sinceKey -= keyInterval
			if r := t.nextKey(enc.Snapshot()); r != 0 {
				keys++
				if enc.KeyDown(r) {
					accepted++
				}
			}
		}

		enc.Tick(frameDelta)
		elapsed += frameDelta

		for _, ev := range enc.Poll() {
			fmt.Printf("[%7.2fs] %-14s %+v\n", elapsed, ev.Type(), ev)
		}
	}

	snap := enc.Snapshot()
	fmt.Println("---")
	fmt.Printf("phase=%s level=%d score=%d health=%d elapsed=%.1fs\n", snap.Phase, snap.Level, snap.Score, snap.Health, elapsed)
	fmt.Printf("keys=%d accepted=%d tracks=%v\n", keys, accepted, recorder.Tracks)
	for _, name := range soundNames(cfg) {
		fmt.Printf("sound %-18s x%d\n", name, recorder.Count(name))
	}

	if !enc.Finished() {
		fmt.Println("stopped: max-seconds reached")
	}
}

// soundNames 配置中出现的全部音效名（去重，按字母序）
func soundNames(cfg *config.GameConfig) []string {
	set := map[string]bool{cfg.Sounds.Fire: true, cfg.Sounds.EnemyStrike: true}
	for _, n := range cfg.Sounds.EnemyHurt {
		set[n] = true
	}
	for _, c := range cfg.Player.Characters {
		set[c.HurtSound] = true
	}
	names := make([]string, 0, len(set))
	for n := range set {
		if n != "" {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
