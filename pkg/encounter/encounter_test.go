package encounter

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/game"
)

const (
	gameConfigPath = "../../data/game.yaml"
	frame          = 1.0 / 60
)

func loadTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.LoadGameConfig(gameConfigPath)
	if err != nil {
		t.Fatalf("Failed to load %s: %v", gameConfigPath, err)
	}
	return cfg
}

func newTestEncounter(t *testing.T, cfg *config.GameConfig, seed int64) (*Encounter, *game.SoundRecorder) {
	t.Helper()
	sound := &game.SoundRecorder{}
	e, err := New(cfg, sound, rand.New(rand.NewSource(seed)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return e, sound
}

// autoType 无目标时输入第一个可选敌人的完整单词
func autoType(e *Encounter) {
	snap := e.Snapshot()
	if snap.ActiveTarget != 0 {
		return
	}
	for _, enemy := range snap.Enemies {
		if enemy.State == components.EnemyDying || enemy.Targeted {
			continue
		}
		for _, r := range enemy.Word {
			e.KeyDown(r)
		}
		return
	}
}

// collect 推进直到出现指定类型的事件，返回期间的所有事件
func collect(t *testing.T, e *Encounter, until game.EventType, maxSeconds float64, typing bool) []game.Event {
	t.Helper()
	var events []game.Event
	for elapsed := 0.0; elapsed < maxSeconds; elapsed += frame {
		if typing {
			autoType(e)
		}
		e.Tick(frame)
		for _, ev := range e.Poll() {
			events = append(events, ev)
			if ev.Type() == until {
				return events
			}
		}
	}
	t.Fatalf("No %s event within %.0fs (phase %s)", until, maxSeconds, e.Snapshot().Phase)
	return nil
}

func ofType[T game.Event](events []game.Event) []T {
	var out []T
	for _, ev := range events {
		if typed, ok := ev.(T); ok {
			out = append(out, typed)
		}
	}
	return out
}

// TestNew 测试构造参数校验
func TestNew(t *testing.T) {
	t.Run("nil config", func(t *testing.T) {
		if _, err := New(nil, nil, nil); err == nil {
			t.Error("Expected error for nil config")
		}
	})

	t.Run("empty word list", func(t *testing.T) {
		cfg := loadTestConfig(t)
		cfg.Words = nil
		if _, err := New(cfg, nil, nil); err == nil {
			t.Error("Expected error for empty roster")
		}
	})

	t.Run("defaults", func(t *testing.T) {
		e, err := New(loadTestConfig(t), nil, nil)
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}
		if e.KeyDown('a') {
			t.Error("Key accepted before Start")
		}
		e.Tick(frame)
		if e.Finished() {
			t.Error("Unstarted encounter reported finished")
		}
	})
}

// TestStartValidation 测试会话配置校验
func TestStartValidation(t *testing.T) {
	cfg := loadTestConfig(t)

	tests := []struct {
		name    string
		mutate  func(*config.SessionConfig)
		wantErr bool
	}{
		{"default campaign", func(*config.SessionConfig) {}, false},
		{"practice last level", func(s *config.SessionConfig) {
			s.Variant = config.VariantPractice
			s.StartLevel = 5
		}, false},
		{"practice beyond last level", func(s *config.SessionConfig) {
			s.Variant = config.VariantPractice
			s.StartLevel = 6
		}, true},
		{"campaign beyond last level", func(s *config.SessionConfig) { s.StartLevel = 25 }, true},
		{"unknown character", func(s *config.SessionConfig) { s.Character = "character_3" }, true},
		{"manual without speed", func(s *config.SessionConfig) {
			s.Mode = config.ModeManual
			s.ManualSpeed = 0
		}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, _ := newTestEncounter(t, cfg, 1)
			session := config.DefaultSessionConfig()
			tt.mutate(&session)

			err := e.Start(session)
			if (err != nil) != tt.wantErr {
				t.Errorf("Start() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// TestStartEvents 测试开始时发布 gameStarted 和 scoreUpdate
func TestStartEvents(t *testing.T) {
	e, sound := newTestEncounter(t, loadTestConfig(t), 1)
	if err := e.Start(config.DefaultSessionConfig()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	events := e.Poll()
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %+v", events)
	}
	if events[0] != (game.GameStarted{Level: 1}) {
		t.Errorf("Expected gameStarted{1}, got %+v", events[0])
	}
	if events[1] != (game.ScoreUpdate{Score: 0, Level: 1, Health: 3}) {
		t.Errorf("Expected scoreUpdate{0, 1, 3}, got %+v", events[1])
	}
	if len(sound.Tracks) != 1 {
		t.Errorf("Expected music to start, got %v", sound.Tracks)
	}

	snap := e.Snapshot()
	if snap.Phase != components.PhaseEntering || snap.Level != 1 || snap.Health != 3 {
		t.Errorf("Unexpected snapshot: %+v", snap)
	}
	if snap.Background < 1 || snap.Background > 24 {
		t.Errorf("Background %d out of range", snap.Background)
	}
}

// TestScenarioQuotaFive 配额为 5 的关卡，击败 5 个敌人后胜利并发布 levelComplete{1, 500}
func TestScenarioQuotaFive(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Campaign.QuotaBase = 5
	e, _ := newTestEncounter(t, cfg, 7)
	if err := e.Start(config.DefaultSessionConfig()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	var events []game.Event
	for elapsed := 0.0; elapsed < 120; elapsed += frame {
		autoType(e)
		e.Tick(frame)
		snap := e.Snapshot()

		if snap.Spawned > snap.Required {
			t.Fatalf("Spawned %d exceeds required %d", snap.Spawned, snap.Required)
		}
		cleared := snap.Spawned == snap.Required && len(snap.Enemies) == 0
		if snap.Phase == components.PhaseActive && cleared {
			t.Fatalf("Field cleared at quota but still active")
		}
		if snap.Phase == components.PhaseVictory && !cleared {
			t.Fatalf("Victory declared with %d/%d spawned and %d enemies", snap.Spawned, snap.Required, len(snap.Enemies))
		}

		events = append(events, e.Poll()...)
		if snap.Phase == components.PhaseVictory {
			break
		}
	}

	complete := ofType[game.LevelComplete](events)
	if len(complete) != 1 {
		t.Fatalf("Expected one levelComplete, got %+v", complete)
	}
	if complete[0] != (game.LevelComplete{Level: 1, Score: 500}) {
		t.Errorf("Expected levelComplete{1, 500}, got %+v", complete[0])
	}
	if n := len(ofType[game.HealthUpdate](events)); n != 0 {
		t.Errorf("Player took %d hits", n)
	}
	if scores := ofType[game.ScoreUpdate](events); len(scores) != 6 {
		t.Errorf("Expected start + 5 kill score updates, got %d", len(scores))
	}
}

// TestScenarioPracticeLevelScaledReward 练习玩法第 2 关得分为 100*2*配额
func TestScenarioPracticeLevelScaledReward(t *testing.T) {
	cfg := loadTestConfig(t)
	e, _ := newTestEncounter(t, cfg, 3)
	session := config.DefaultSessionConfig()
	session.Variant = config.VariantPractice
	session.StartLevel = 2
	if err := e.Start(session); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	events := collect(t, e, game.EventLevelComplete, 300, true)
	complete := ofType[game.LevelComplete](events)[0]

	quota := cfg.Practice.Levels[1].Quota
	if want := 100 * 2 * quota; complete.Score != want {
		t.Errorf("Expected score %d, got %d", want, complete.Score)
	}
}

// TestScenarioDefeat 生命值 3，敌人进入近战且从不输入：3 次近战后 gameOver，之后不再有伤害
func TestScenarioDefeat(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Campaign.QuotaBase = 1
	e, sound := newTestEncounter(t, cfg, 11)

	session := config.DefaultSessionConfig()
	session.Mode = config.ModeManual
	session.ManualSpeed = 800
	session.ManualSpawnIntervalMs = 1000
	if err := e.Start(session); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	events := collect(t, e, game.EventGameOver, 60, false)

	health := ofType[game.HealthUpdate](events)
	if len(health) != 3 {
		t.Fatalf("Expected 3 health updates, got %+v", health)
	}
	for i, h := range health {
		if h.Health != 2-i {
			t.Errorf("Hit %d: expected health %d, got %d", i, 2-i, h.Health)
		}
	}
	over := ofType[game.GameOver](events)[0]
	if over != (game.GameOver{Score: 0, Level: 1}) {
		t.Errorf("Expected gameOver{0, 1}, got %+v", over)
	}
	if !e.Finished() {
		t.Error("Expected finished session")
	}
	// 接触时和前两次命中后各有一次受伤音效，致命一击之后没有
	if n := sound.Count(cfg.Player.Characters[config.Character1].HurtSound); n != 3 {
		t.Errorf("Expected 3 hurt cues, got %d", n)
	}

	strikes := sound.Count(cfg.Sounds.EnemyStrike)
	for i := 0; i < 600; i++ {
		e.Tick(frame)
	}
	if rest := e.Poll(); len(rest) != 0 {
		t.Errorf("Events after game over: %+v", rest)
	}
	if sound.Count(cfg.Sounds.EnemyStrike) != strikes {
		t.Error("Melee continued after game over")
	}
	if e.Snapshot().Health != 0 {
		t.Errorf("Expected health 0, got %d", e.Snapshot().Health)
	}
}

// TestPauseResumeInvariance 无时间流逝的暂停/恢复不改变任何战斗状态
func TestPauseResumeInvariance(t *testing.T) {
	cfg := loadTestConfig(t)
	e, _ := newTestEncounter(t, cfg, 5)
	session := config.DefaultSessionConfig()
	session.Mode = config.ModeManual
	session.ManualSpeed = 120
	session.ManualSpawnIntervalMs = 1000
	if err := e.Start(session); err != nil {
		t.Fatalf("Start failed: %v", err)
	}

	for i := 0; i < 60*5; i++ {
		e.Tick(frame)
	}
	snap := e.Snapshot()
	if len(snap.Enemies) == 0 {
		t.Fatal("Expected enemies on field")
	}
	e.KeyDown(rune(snap.Enemies[0].Word[0]))
	e.Tick(frame)

	before := e.Snapshot()
	if before.ActiveTarget == 0 {
		t.Fatal("Expected an active target")
	}

	if !e.Pause() {
		t.Fatal("Pause rejected")
	}
	for i := 0; i < 120; i++ {
		e.Tick(frame)
	}
	if e.KeyDown('a') {
		t.Error("Key accepted while paused")
	}
	if !e.Resume() {
		t.Fatal("Resume rejected")
	}

	after := e.Snapshot()
	if !reflect.DeepEqual(before, after) {
		t.Errorf("State changed across pause/resume:\nbefore %+v\nafter  %+v", before, after)
	}

	events := e.Poll()
	paused := ofType[game.GamePaused](events)
	resumed := ofType[game.GameResumed](events)
	if len(paused) != 1 || len(resumed) != 1 {
		t.Errorf("Expected one pause and one resume event, got %+v", events)
	}
}

// TestExit 测试退出：不发布 gameOver，之后的帧和命令无效
func TestExit(t *testing.T) {
	e, sound := newTestEncounter(t, loadTestConfig(t), 1)
	if err := e.Start(config.DefaultSessionConfig()); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 120; i++ {
		e.Tick(frame)
	}
	e.Poll()

	e.Exit()
	if !e.Finished() {
		t.Fatal("Expected finished after exit")
	}
	if e.Snapshot().Phase != components.PhaseExited {
		t.Errorf("Expected exited phase, got %s", e.Snapshot().Phase)
	}
	if e.Pause() {
		t.Error("Pause accepted after exit")
	}
	for i := 0; i < 60; i++ {
		e.Tick(frame)
	}
	if events := e.Poll(); len(events) != 0 {
		t.Errorf("Expected no events after exit, got %+v", events)
	}
	if sound.Stops != 1 {
		t.Errorf("Expected audio stopped once, got %d", sound.Stops)
	}
}

// TestRestart 测试再次 Start 重新开始
func TestRestart(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Campaign.QuotaBase = 1
	e, _ := newTestEncounter(t, cfg, 9)

	session := config.DefaultSessionConfig()
	session.Mode = config.ModeManual
	session.ManualSpeed = 800
	session.ManualSpawnIntervalMs = 1000
	if err := e.Start(session); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	collect(t, e, game.EventGameOver, 60, false)

	if err := e.Start(config.DefaultSessionConfig()); err != nil {
		t.Fatalf("Restart failed: %v", err)
	}
	snap := e.Snapshot()
	if e.Finished() || snap.Phase != components.PhaseEntering || snap.Health != cfg.Player.Health || snap.Score != 0 {
		t.Errorf("Unexpected state after restart: %+v", snap)
	}
}

// startWithEnemies 以手动模式开始并推进到场上有敌人
func startWithEnemies(t *testing.T, seed int64) *Encounter {
	t.Helper()
	e, _ := newTestEncounter(t, loadTestConfig(t), seed)
	session := config.DefaultSessionConfig()
	session.Mode = config.ModeManual
	session.ManualSpeed = 120
	session.ManualSpawnIntervalMs = 1000
	if err := e.Start(session); err != nil {
		t.Fatalf("Start failed: %v", err)
	}
	for i := 0; i < 60*5; i++ {
		e.Tick(frame)
	}
	if len(e.Snapshot().Enemies) == 0 {
		t.Fatal("Expected enemies on field")
	}
	e.Poll()
	return e
}

// TestPauseDiscardsBufferedKeys 暂停前缓冲的按键在恢复后不生效
func TestPauseDiscardsBufferedKeys(t *testing.T) {
	e := startWithEnemies(t, 5)
	word := e.Snapshot().Enemies[0].Word

	if !e.KeyDown(rune(word[0])) {
		t.Fatal("Key rejected during active phase")
	}
	if !e.Pause() {
		t.Fatal("Pause rejected")
	}
	if !e.Resume() {
		t.Fatal("Resume rejected")
	}
	e.Tick(frame)

	snap := e.Snapshot()
	if snap.ActiveTarget != 0 {
		t.Errorf("Key typed before pause selected target %d", snap.ActiveTarget)
	}
	for _, enemy := range snap.Enemies {
		if enemy.Progress != "" {
			t.Errorf("Enemy %d has progress %q after pause/resume", enemy.ID, enemy.Progress)
		}
	}
}

// TestCancelTargetGating 暂停时放弃目标无效，恢复后有效
func TestCancelTargetGating(t *testing.T) {
	e := startWithEnemies(t, 5)
	word := e.Snapshot().Enemies[0].Word
	e.KeyDown(rune(word[0]))
	e.Tick(frame)

	target := e.Snapshot().ActiveTarget
	if target == 0 {
		t.Fatal("Expected an active target")
	}

	e.Pause()
	e.CancelTarget()
	e.Resume()
	if got := e.Snapshot().ActiveTarget; got != target {
		t.Fatalf("CancelTarget while paused changed target %d -> %d", target, got)
	}

	e.CancelTarget()
	snap := e.Snapshot()
	if snap.ActiveTarget != 0 {
		t.Errorf("Expected no target after cancel, got %d", snap.ActiveTarget)
	}
	for _, enemy := range snap.Enemies {
		if enemy.ID == target && enemy.Progress != "" {
			t.Errorf("Cancelled target kept progress %q", enemy.Progress)
		}
	}
}
