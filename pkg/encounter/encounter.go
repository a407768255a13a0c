// Package encounter 打字战斗的无头引擎
//
// Encounter 组装实体管理器和各个系统，按固定顺序推进每一帧，
// 对宿主（ebiten 场景、终端界面、无头脚本）只暴露命令、按键、事件队列和快照。
// Encounter 不是并发安全的，宿主应在同一个 goroutine 中调用；事件队列可以跨 goroutine 读取。
package encounter

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/game"
	"github.com/gonewx/typeabyss/pkg/systems"
)

// Encounter 一次游戏会话
type Encounter struct {
	ctx *systems.BattleContext

	timers    *systems.TimerSystem
	physics   *systems.PhysicsSystem
	animation *systems.AnimationSystem
	player    *systems.PlayerSystem
	combat    *systems.CombatSystem
	spawn     *systems.SpawnSystem
	typing    *systems.TypingSystem
	level     *systems.LevelSystem
	pause     *systems.PauseSystem

	started bool
}

// New 创建战斗引擎
//
// 参数：
//   - cfg: 已校验的游戏配置
//   - sound: 音频协作者，nil 时静音
//   - rng: 随机源，nil 时以当前时间为种子
//
// 返回：
//   - *Encounter: 引擎实例
//   - error: 配置缺失或单词/敌人名单无效时返回
func New(cfg *config.GameConfig, sound game.SoundPlayer, rng *rand.Rand) (*Encounter, error) {
	if cfg == nil {
		return nil, fmt.Errorf("game config cannot be nil")
	}
	roster, err := game.NewRoster(cfg.Words, cfg.Enemy.Types, cfg.Enemy.TypesPerLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid roster: %w", err)
	}
	if sound == nil {
		sound = game.NopSoundPlayer{}
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}

	em := ecs.NewEntityManager()
	timers := systems.NewTimerSystem()
	ctx := &systems.BattleContext{
		EM:     em,
		Config: cfg,
		Roster: roster,
		Events: game.NewEventBridge(),
		Sound:  sound,
		Rand:   rng,
		Timers: timers,
	}

	e := &Encounter{
		ctx:       ctx,
		timers:    timers,
		physics:   systems.NewPhysicsSystem(ctx),
		animation: systems.NewAnimationSystem(em),
		player:    systems.NewPlayerSystem(ctx),
		spawn:     systems.NewSpawnSystem(ctx),
		pause:     systems.NewPauseSystem(ctx),
	}
	e.combat = systems.NewCombatSystem(ctx, e.physics, e.player)
	e.typing = systems.NewTypingSystem(ctx, e.combat)
	e.level = systems.NewLevelSystem(ctx, e.player, e.spawn, e.typing)

	return e, nil
}

// Start 以会话配置开始（或重新开始）一局
// 返回：会话配置无效或起始关卡越界时返回错误
func (e *Encounter) Start(session config.SessionConfig) error {
	if err := session.Validate(); err != nil {
		return fmt.Errorf("invalid session config: %w", err)
	}
	if last := e.ctx.Config.LastLevel(session.Variant); session.StartLevel > last {
		return fmt.Errorf("start level %d exceeds last level %d", session.StartLevel, last)
	}

	e.ctx.Session = session
	level := game.NewLevelSession(session.StartLevel, e.ctx.Config.Player.Health, e.ctx.Config.Backgrounds)
	if err := e.level.BeginLevel(level); err != nil {
		return err
	}
	e.started = true
	log.Printf("[Encounter] Session started: variant=%s, mode=%s, character=%s",
		session.Variant, session.Mode, session.Character)
	return nil
}

// Tick 推进一帧
//
// 执行顺序：
//  1. 会话已结束或已退出时返回
//  2. 暂停时返回
//  3. 运动
//  4. 关卡阶段推进（入场/退场到达、交接）
//  5. 计时器（生成、近战、受伤音效），按创建顺序
//  6. 处理缓冲的按键
//  7. 战斗：魔法弹追踪、命中、越界丢弃、近战检测
//  8. 动画播放和完成通知
//  9. 胜负检测
//  10. 清理标记删除的实体
func (e *Encounter) Tick(deltaTime float64) {
	if !e.started || e.ctx.Phase().IsTerminal() {
		return
	}
	if e.ctx.Paused {
		return
	}

	e.physics.Update(deltaTime)
	e.level.Update(deltaTime)
	if e.ctx.Phase().IsTerminal() {
		return
	}
	e.timers.Update(deltaTime)
	e.typing.Update()
	e.combat.Update(deltaTime)
	e.routeAnimations(e.animation.Update(deltaTime))
	e.level.CheckOutcome()
	e.ctx.EM.RemoveMarkedEntities()
}

// routeAnimations 分发动画完成通知
func (e *Encounter) routeAnimations(done []systems.AnimationDone) {
	for _, d := range done {
		switch {
		case d.Entity == e.ctx.PlayerID && d.Clip == "die":
			e.level.OnPlayerDeathComplete()
		case d.Entity == e.ctx.PlayerID:
			e.player.OnAnimationFinished(d.Clip)
		case d.Clip == "die" && ecs.HasComponent[*components.EnemyComponent](e.ctx.EM, d.Entity):
			e.combat.OnEnemyDeathComplete(d.Entity)
		}
	}
}

// KeyDown 转交一次按键，返回按键是否被接受
func (e *Encounter) KeyDown(r rune) bool {
	if !e.started {
		return false
	}
	return e.typing.KeyDown(r)
}

// Pause 暂停，重复请求无操作
// 暂停前已缓冲、尚未处理的按键被丢弃
func (e *Encounter) Pause() bool {
	if !e.started {
		return false
	}
	if !e.pause.Pause() {
		return false
	}
	e.typing.DiscardPending()
	return true
}

// Resume 恢复，重复请求无操作
func (e *Encounter) Resume() bool {
	if !e.started {
		return false
	}
	return e.pause.Resume()
}

// Paused 是否处于暂停状态
func (e *Encounter) Paused() bool {
	return e.ctx.Paused
}

// Exit 立即结束会话，不发布 gameOver
func (e *Encounter) Exit() {
	if !e.started {
		return
	}
	e.level.Exit()
}

// CancelTarget 放弃当前目标
// 与按键相同，暂停或非 active 阶段时无操作
func (e *Encounter) CancelTarget() {
	if !e.started || !e.typing.Accepting() {
		return
	}
	e.typing.CancelTarget()
}

// TrackFinished 宿主通知当前曲目播放完毕
func (e *Encounter) TrackFinished() {
	if !e.started {
		return
	}
	e.level.TrackFinished()
}

// SetPendingConfig 登记热重载的配置，在下一关开始时生效
func (e *Encounter) SetPendingConfig(cfg *config.GameConfig) {
	if cfg == nil {
		return
	}
	e.level.SetPendingConfig(cfg)
}

// Poll 取出所有待处理事件
func (e *Encounter) Poll() []game.Event {
	return e.ctx.Events.Poll()
}

// Events 事件队列（可跨 goroutine 读取）
func (e *Encounter) Events() *game.EventBridge {
	return e.ctx.Events
}

// Config 当前生效的游戏配置
func (e *Encounter) Config() *config.GameConfig {
	return e.ctx.Config
}

// Finished 会话是否已结束（战役完成、失败或退出）
func (e *Encounter) Finished() bool {
	return e.started && e.ctx.Phase().IsTerminal()
}
