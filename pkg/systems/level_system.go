package systems

import (
	"fmt"
	"log"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/entities"
	"github.com/gonewx/typeabyss/pkg/game"
)

// LevelSystem 关卡生命周期管理
//
// 职责：
//   - 开始关卡：计算关卡参数、抽取背景和敌人类型、创建玩家
//   - 推进阶段：entering → active → victory/defeat → exiting → handoff
//   - 检测胜负：生成满配额且场上无敌人为胜利；生命耗尽为失败
//   - 退场完成后交接到下一关，或在最后一关结束战役
//
// 架构说明：
//   - 关卡会话（LevelSession）和携带资源只由本系统修改
//   - 离开 active 阶段时取消所有计时器（生成、近战、受伤音效）
//   - 热重载的配置在下一次交接时生效
type LevelSystem struct {
	ctx    *BattleContext
	player *PlayerSystem
	spawn  *SpawnSystem
	typing *TypingSystem

	pendingConfig *config.GameConfig
}

// NewLevelSystem 创建关卡系统
//
// 参数：
//
//	ctx - 战斗上下文
//	player - 玩家状态机
//	spawn - 生成调度
//	typing - 打字匹配（离开 active 阶段时清空目标）
func NewLevelSystem(ctx *BattleContext, player *PlayerSystem, spawn *SpawnSystem, typing *TypingSystem) *LevelSystem {
	return &LevelSystem{
		ctx:    ctx,
		player: player,
		spawn:  spawn,
		typing: typing,
	}
}

// BeginLevel 以给定会话开始一关
//
// 清空上一关的所有实体和计时器，创建关卡实体（entering 阶段）和玩家，
// 播放当前曲目（如果启用音乐），并发布 gameStarted 和 scoreUpdate。
func (s *LevelSystem) BeginLevel(level *game.LevelSession) error {
	params, err := config.ResolveLevel(s.ctx.Config, s.ctx.Session, level.Level)
	if err != nil {
		return fmt.Errorf("failed to resolve level %d: %w", level.Level, err)
	}
	level.Prepare(s.ctx.Roster, s.ctx.Rand)

	s.ctx.Timers.CancelAll()
	s.ctx.EM.DestroyAll()
	s.ctx.Paused = false
	s.ctx.Level = level
	s.ctx.Params = params

	s.ctx.LevelID = s.ctx.EM.CreateEntity()
	ecs.AddComponent(s.ctx.EM, s.ctx.LevelID, &components.LevelPhaseComponent{
		Phase: components.PhaseEntering,
	})

	playerID, err := entities.NewPlayer(s.ctx.EM, s.ctx.Config, s.ctx.Session.Character, level.Health)
	if err != nil {
		return fmt.Errorf("failed to create player: %w", err)
	}
	s.ctx.PlayerID = playerID

	s.spawn.Reset()
	s.typing.Reset()

	if s.ctx.Session.MusicEnabled {
		s.ctx.Sound.PlayMusic(level.MusicCursor())
	}

	log.Printf("[LevelSystem] Level %d started (background %d, enemies %v, quota %d)",
		level.Level, level.Background(), level.EnemyTypes(), params.Quota)
	s.ctx.Events.Publish(game.GameStarted{Level: level.Level})
	s.ctx.publishScore()
	return nil
}

// Update 推进入场/退场阶段
//
// 执行流程：
//  1. 累计阶段时间
//  2. entering：玩家到达站位后进入 active 并启动生成
//  3. victory：玩家开始向右退场
//  4. exiting：玩家离开场地后交接下一关，或在最后一关结束战役
func (s *LevelSystem) Update(deltaTime float64) {
	pc := s.ctx.phaseComponent()
	if pc == nil {
		return
	}
	pc.PhaseTime += deltaTime

	_, pos, ok := s.ctx.Player()
	if !ok {
		return
	}

	switch pc.Phase {
	case components.PhaseEntering:
		if pos.X >= s.ctx.Config.Player.StageX {
			pos.X = s.ctx.Config.Player.StageX
			s.setVelocity(s.ctx.PlayerID, 0)
			s.player.SetState(components.PlayerIdle)
			s.setPhase(components.PhaseActive)
			s.spawn.Start()
		}

	case components.PhaseVictory:
		s.player.SetState(components.PlayerWalking)
		s.setVelocity(s.ctx.PlayerID, s.ctx.Config.Player.RunSpeed)
		s.setPhase(components.PhaseExiting)

	case components.PhaseExiting:
		if pos.X > s.ctx.Config.Field.Width+s.ctx.Config.Player.ExitMargin {
			s.finishExit()
		}
	}
}

// finishExit 退场完成：最后一关结束战役，否则交接下一关
func (s *LevelSystem) finishExit() {
	if s.ctx.Params.IsLast() {
		s.setPhase(components.PhaseFinished)
		log.Printf("[LevelSystem] Campaign complete! Final score: %d", s.ctx.Level.Score)
		s.ctx.Events.Publish(game.GameOver{
			Score:   s.ctx.Level.Score,
			Level:   s.ctx.Level.Level,
			Victory: true,
		})
		s.ctx.Sound.StopAll()
		return
	}

	s.setPhase(components.PhaseHandoff)
	next := s.ctx.Level.Handoff()
	s.applyPendingConfig()

	log.Printf("[LevelSystem] Handoff: level %d -> %d (score %d, health %d)",
		next.Level-1, next.Level, next.Score, next.Health)
	if err := s.BeginLevel(next); err != nil {
		log.Printf("[LevelSystem] Failed to begin level %d: %v", next.Level, err)
		s.ctx.Level = next
		s.setPhase(components.PhaseFinished)
		s.ctx.Events.Publish(game.GameOver{Score: next.Score, Level: next.Level - 1, Victory: true})
		s.ctx.Sound.StopAll()
	}
}

// CheckOutcome 检测胜负（每帧在战斗结算之后调用）
func (s *LevelSystem) CheckOutcome() {
	if s.ctx.Phase() != components.PhaseActive {
		return
	}

	if s.ctx.PlayerDying() {
		s.enterDefeat()
		return
	}

	if s.spawn.QuotaReached() && len(s.ctx.LiveEnemies()) == 0 {
		s.enterVictory()
	}
}

func (s *LevelSystem) enterVictory() {
	s.leaveActive()
	s.setPhase(components.PhaseVictory)
	log.Printf("[LevelSystem] Victory! Level %d complete, score %d", s.ctx.Level.Level, s.ctx.Level.Score)
	s.ctx.Events.Publish(game.LevelComplete{
		Level: s.ctx.Level.Level,
		Score: s.ctx.Level.Score,
	})
}

func (s *LevelSystem) enterDefeat() {
	s.leaveActive()
	s.ctx.Freeze()
	s.setPhase(components.PhaseDefeat)
	if pc := s.ctx.phaseComponent(); pc != nil {
		pc.GameOverPending = true
	}
	log.Printf("[LevelSystem] Defeat on level %d", s.ctx.Level.Level)
}

// leaveActive 取消所有计时器、停止生成并清空目标
func (s *LevelSystem) leaveActive() {
	s.ctx.Timers.CancelAll()
	s.spawn.Stop()
	s.typing.CancelTarget()
}

// OnPlayerDeathComplete 玩家死亡动画播完：发布 gameOver
func (s *LevelSystem) OnPlayerDeathComplete() {
	switch s.ctx.Phase() {
	case components.PhaseActive:
		s.enterDefeat()
	case components.PhaseDefeat:
	default:
		return
	}

	if pc := s.ctx.phaseComponent(); pc != nil {
		pc.GameOverPending = false
	}
	s.setPhase(components.PhaseFinished)
	log.Printf("[LevelSystem] Game over: score %d, level %d", s.ctx.Level.Score, s.ctx.Level.Level)
	s.ctx.Events.Publish(game.GameOver{
		Score: s.ctx.Level.Score,
		Level: s.ctx.Level.Level,
	})
	s.ctx.Sound.StopAll()
}

// Exit 宿主请求退出：立即停止所有计时器和运动，不发布事件
func (s *LevelSystem) Exit() {
	if s.ctx.Phase() == components.PhaseExited {
		return
	}
	s.ctx.Timers.CancelAll()
	s.spawn.Stop()
	s.typing.Reset()
	s.ctx.Freeze()
	s.setPhase(components.PhaseExited)
	s.ctx.Sound.StopAll()
	log.Printf("[LevelSystem] Session exited")
}

// SetPendingConfig 登记热重载的配置，下一次交接时生效
func (s *LevelSystem) SetPendingConfig(cfg *config.GameConfig) {
	s.pendingConfig = cfg
}

func (s *LevelSystem) applyPendingConfig() {
	if s.pendingConfig == nil {
		return
	}
	cfg := s.pendingConfig
	s.pendingConfig = nil

	roster, err := game.NewRoster(cfg.Words, cfg.Enemy.Types, cfg.Enemy.TypesPerLevel)
	if err != nil {
		log.Printf("[LevelSystem] Ignoring reloaded config: %v", err)
		return
	}
	s.ctx.Config = cfg
	s.ctx.Roster = roster
	log.Printf("[LevelSystem] Applied reloaded config")
}

// TrackFinished 当前曲目播放完毕：前进到下一首
func (s *LevelSystem) TrackFinished() {
	if !s.ctx.Session.MusicEnabled || s.ctx.Level == nil || s.ctx.Phase().IsTerminal() {
		return
	}
	track := s.ctx.Level.AdvanceMusic(s.ctx.Config.MusicTracks)
	s.ctx.Sound.PlayMusic(track)
}

func (s *LevelSystem) setPhase(phase components.LevelPhase) {
	pc := s.ctx.phaseComponent()
	if pc == nil {
		return
	}
	if pc.Phase != phase {
		log.Printf("[LevelSystem] Phase %s -> %s", pc.Phase, phase)
	}
	pc.Phase = phase
	pc.PhaseTime = 0
}

func (s *LevelSystem) setVelocity(id ecs.EntityID, vx float64) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
		vel.VX, vel.VY = vx, 0
	}
}
