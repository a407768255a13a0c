package systems

import (
	"log"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/entities"
	"github.com/gonewx/typeabyss/pkg/game"
)

// playerClips 玩家状态对应的动画片段
var playerClips = map[components.PlayerState]string{
	components.PlayerIdle:     "idle",
	components.PlayerWalking:  "walk",
	components.PlayerHurt:     "hurt",
	components.PlayerSlashing: "slash",
	components.PlayerDying:    "die",
}

// PlayerSystem 玩家状态机
//
// 职责：
//   - 按转换表切换状态并同步动画片段
//   - 结算伤害：扣血、受伤或死亡
//   - 受伤/施法动画结束后回到 idle
type PlayerSystem struct {
	ctx *BattleContext
}

// NewPlayerSystem 创建玩家系统
func NewPlayerSystem(ctx *BattleContext) *PlayerSystem {
	return &PlayerSystem{ctx: ctx}
}

// SetState 切换玩家状态
// 返回：转换合法并已执行时为 true
func (s *PlayerSystem) SetState(to components.PlayerState) bool {
	player, _, ok := s.ctx.Player()
	if !ok {
		return false
	}
	if !components.CanPlayerTransition(player.State, to) {
		return false
	}

	player.State = to
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, s.ctx.PlayerID); ok {
		entities.SetClip(anim, s.ctx.Config.Animations.Player, playerClips[to])
	}
	return true
}

// ApplyDamage 对玩家造成伤害
//
// 死亡中的玩家不再受伤。可失败的玩法中生命值归零即进入 dying 并冻结战场；
// 练习玩法生命值最低为 0，只播放受伤动画。
func (s *PlayerSystem) ApplyDamage(amount int) {
	player, _, ok := s.ctx.Player()
	if !ok || player.State == components.PlayerDying {
		return
	}

	player.Health -= amount
	if !s.ctx.Params.CanLose && player.Health < 0 {
		player.Health = 0
	}
	s.ctx.Level.SetHealth(player.Health)
	s.ctx.Events.Publish(game.HealthUpdate{Health: player.Health})

	if player.Health <= 0 && s.ctx.Params.CanLose {
		log.Printf("[PlayerSystem] Player died (level %d, score %d)", s.ctx.Level.Level, s.ctx.Level.Score)
		s.SetState(components.PlayerDying)
		s.ctx.Freeze()
		return
	}

	log.Printf("[PlayerSystem] Player hit, health=%d", player.Health)
	s.SetState(components.PlayerHurt)
}

// PlaySlash 播放施法动画（发射魔法弹时）
func (s *PlayerSystem) PlaySlash() {
	s.SetState(components.PlayerSlashing)
}

// OnAnimationFinished 受伤/施法动画结束后回到 idle
func (s *PlayerSystem) OnAnimationFinished(clip string) {
	player, _, ok := s.ctx.Player()
	if !ok {
		return
	}
	if playerClips[player.State] != clip {
		return
	}
	switch player.State {
	case components.PlayerHurt, components.PlayerSlashing:
		s.SetState(components.PlayerIdle)
	}
}
