package systems

import (
	"log"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/game"
)

// PauseSystem 暂停/恢复控制
//
// 暂停期间宿主仍然调用 Tick，但战斗不推进：计时器、运动和动画全部冻结，
// 恢复后从原处继续。音频同步暂停/恢复。
// 重复请求无操作；玩家死亡中忽略所有请求。
type PauseSystem struct {
	ctx *BattleContext
}

// NewPauseSystem 创建暂停系统
func NewPauseSystem(ctx *BattleContext) *PauseSystem {
	return &PauseSystem{ctx: ctx}
}

// Pause 暂停战斗
// 返回：状态发生变化时为 true
func (s *PauseSystem) Pause() bool {
	if s.ctx.Paused || s.ctx.PlayerDying() {
		return false
	}
	phase := s.ctx.Phase()
	if phase == components.PhaseDefeat || phase.IsTerminal() {
		return false
	}

	s.ctx.Paused = true
	s.ctx.Sound.PauseAll()
	s.ctx.Events.Publish(game.GamePaused{})
	log.Printf("[PauseSystem] Paused (phase %s)", phase)
	return true
}

// Resume 恢复战斗
// 返回：状态发生变化时为 true
func (s *PauseSystem) Resume() bool {
	if !s.ctx.Paused || s.ctx.PlayerDying() {
		return false
	}

	s.ctx.Paused = false
	s.ctx.Sound.ResumeAll()
	s.ctx.Events.Publish(game.GameResumed{})
	log.Printf("[PauseSystem] Resumed")
	return true
}
