package systems

import (
	"math/rand"
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/entities"
	"github.com/gonewx/typeabyss/pkg/game"
)

const (
	gameConfigPath = "../../data/game.yaml"
	// testStep 测试帧长，二进制可精确表示，计时器到期帧数确定
	testStep = 0.125
)

// testBattle 测试用的完整系统组装，帧顺序与 Encounter.Tick 一致
type testBattle struct {
	ctx   *BattleContext
	sound *game.SoundRecorder

	timers    *TimerSystem
	physics   *PhysicsSystem
	animation *AnimationSystem
	player    *PlayerSystem
	combat    *CombatSystem
	spawn     *SpawnSystem
	typing    *TypingSystem
	level     *LevelSystem
	pause     *PauseSystem
}

func loadTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.LoadGameConfig(gameConfigPath)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", gameConfigPath, err)
	}
	return cfg
}

func newTestBattle(t *testing.T, cfg *config.GameConfig, session config.SessionConfig) *testBattle {
	t.Helper()

	roster, err := game.NewRoster(cfg.Words, cfg.Enemy.Types, cfg.Enemy.TypesPerLevel)
	if err != nil {
		t.Fatalf("NewRoster failed: %v", err)
	}

	sound := &game.SoundRecorder{}
	timers := NewTimerSystem()
	ctx := &BattleContext{
		EM:      ecs.NewEntityManager(),
		Config:  cfg,
		Session: session,
		Roster:  roster,
		Events:  game.NewEventBridge(),
		Sound:   sound,
		Rand:    rand.New(rand.NewSource(42)),
		Timers:  timers,
	}

	b := &testBattle{ctx: ctx, sound: sound, timers: timers}
	b.physics = NewPhysicsSystem(ctx)
	b.animation = NewAnimationSystem(ctx.EM)
	b.player = NewPlayerSystem(ctx)
	b.combat = NewCombatSystem(ctx, b.physics, b.player)
	b.spawn = NewSpawnSystem(ctx)
	b.typing = NewTypingSystem(ctx, b.combat)
	b.level = NewLevelSystem(ctx, b.player, b.spawn, b.typing)
	b.pause = NewPauseSystem(ctx)

	level := game.NewLevelSession(session.StartLevel, cfg.Player.Health, cfg.Backgrounds)
	if err := b.level.BeginLevel(level); err != nil {
		t.Fatalf("BeginLevel failed: %v", err)
	}
	return b
}

func (b *testBattle) tick(dt float64) {
	if b.ctx.Phase().IsTerminal() || b.ctx.Paused {
		return
	}
	b.physics.Update(dt)
	b.level.Update(dt)
	if b.ctx.Phase().IsTerminal() {
		return
	}
	b.timers.Update(dt)
	b.typing.Update()
	b.combat.Update(dt)
	for _, d := range b.animation.Update(dt) {
		switch {
		case d.Entity == b.ctx.PlayerID && d.Clip == "die":
			b.level.OnPlayerDeathComplete()
		case d.Entity == b.ctx.PlayerID:
			b.player.OnAnimationFinished(d.Clip)
		case d.Clip == "die":
			b.combat.OnEnemyDeathComplete(d.Entity)
		}
	}
	b.level.CheckOutcome()
	b.ctx.EM.RemoveMarkedEntities()
}

// advance 以 testStep 推进指定秒数
func (b *testBattle) advance(seconds float64) {
	for elapsed := 0.0; elapsed < seconds; elapsed += testStep {
		b.tick(testStep)
	}
}

// advanceUntil 推进直到条件满足，超过 maxSeconds 则失败
func (b *testBattle) advanceUntil(t *testing.T, maxSeconds float64, cond func() bool) {
	t.Helper()
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += testStep {
		if cond() {
			return
		}
		b.tick(testStep)
	}
	if !cond() {
		t.Fatalf("Condition not met within %.1fs (phase %s)", maxSeconds, b.ctx.Phase())
	}
}

// activate 推进到 active 阶段并停止自动生成，之后由测试手动放置敌人
func (b *testBattle) activate(t *testing.T) {
	t.Helper()
	b.advanceUntil(t, 10, func() bool { return b.ctx.Phase() == components.PhaseActive })
	b.spawn.Stop()
}

// addEnemy 在指定位置放置一个带单词的敌人
func (b *testBattle) addEnemy(t *testing.T, word string, x, speed float64) ecs.EntityID {
	t.Helper()
	id, err := entities.NewEnemy(b.ctx.EM, b.ctx.Config, entities.EnemySpec{
		Word:     word,
		TypeName: b.ctx.Config.Enemy.Types[0],
		Lane:     1,
		Speed:    speed,
	})
	if err != nil {
		t.Fatalf("NewEnemy failed: %v", err)
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](b.ctx.EM, id)
	pos.X = x
	return id
}

// typeWord 按键并推进一帧
func (b *testBattle) typeWord(word string) {
	for _, r := range word {
		b.typing.KeyDown(r)
	}
	b.tick(testStep)
}

func (b *testBattle) enemy(t *testing.T, id ecs.EntityID) *components.EnemyComponent {
	t.Helper()
	enemy, ok := ecs.GetComponent[*components.EnemyComponent](b.ctx.EM, id)
	if !ok {
		t.Fatalf("Enemy %d has no EnemyComponent", id)
	}
	return enemy
}

func (b *testBattle) playerComponent(t *testing.T) *components.PlayerComponent {
	t.Helper()
	player, _, ok := b.ctx.Player()
	if !ok {
		t.Fatal("Player entity missing")
	}
	return player
}

func (b *testBattle) projectileCount() int {
	n := 0
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](b.ctx.EM) {
		if b.ctx.EM.IsAlive(id) {
			n++
		}
	}
	return n
}

// eventsOf 取出事件队列中指定类型的事件
func eventsOf[T game.Event](events []game.Event) []T {
	var out []T
	for _, e := range events {
		if typed, ok := e.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

func campaignSession() config.SessionConfig {
	return config.DefaultSessionConfig()
}

func practiceSession() config.SessionConfig {
	s := config.DefaultSessionConfig()
	s.Variant = config.VariantPractice
	return s
}
