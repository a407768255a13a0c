package systems

import (
	"fmt"
	"log"
	"math"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/entities"
)

// CombatSystem 战斗结算
//
// 远程：单词完成后发射追踪魔法弹，命中目标时销毁魔法弹并击杀敌人；
// 目标已消失或正在死亡时魔法弹直接丢弃。死亡动画播完后移除敌人并加分。
//
// 近战：approaching 敌人进入近战距离后转为 slashing，停止移动，
// 启动循环伤害计时器，每个间隔对玩家造成 1 点伤害。
// 敌人死亡或关卡离开 active 阶段时计时器被取消。
//
// 敌人状态只由本系统修改。
type CombatSystem struct {
	ctx     *BattleContext
	physics *PhysicsSystem
	player  *PlayerSystem
}

// NewCombatSystem 创建战斗系统并注册近战和受伤音效计时器回调
func NewCombatSystem(ctx *BattleContext, physics *PhysicsSystem, player *PlayerSystem) *CombatSystem {
	s := &CombatSystem{ctx: ctx, physics: physics, player: player}
	ctx.Timers.Handle(components.TimerKindMelee, s.onMeleeTick)
	ctx.Timers.Handle(components.TimerKindHurtCue, s.onHurtCue)
	return s
}

// Fire 向目标发射魔法弹
// 参数：
//   - target: 目标敌人
//
// 返回：
//   - error: 玩家不存在或目标无效时返回
func (s *CombatSystem) Fire(target ecs.EntityID) error {
	_, pos, ok := s.ctx.Player()
	if !ok {
		return fmt.Errorf("no player to fire from")
	}
	if _, ok := s.ctx.Enemy(target); !ok {
		return fmt.Errorf("enemy %d is not alive", target)
	}

	if _, err := entities.NewProjectile(s.ctx.EM, s.ctx.Config, pos.X, pos.Y, target); err != nil {
		return err
	}
	s.ctx.Sound.PlaySound(s.ctx.Config.Sounds.Fire)
	s.player.PlaySlash()
	return nil
}

// Update 处理魔法弹飞行、命中和近战检测
func (s *CombatSystem) Update(deltaTime float64) {
	if s.ctx.Frozen() {
		return
	}
	s.updateProjectiles()
	if s.ctx.Phase() == components.PhaseActive {
		s.detectMelee()
	}
}

func (s *CombatSystem) updateProjectiles() {
	em := s.ctx.EM
	for _, id := range ecs.GetEntitiesWith1[*components.ProjectileComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)

		enemy, ok := s.ctx.Enemy(proj.Target)
		if !ok || enemy.State == components.EnemyDying {
			em.DestroyEntity(id)
			continue
		}

		if s.physics.Overlaps(id, proj.Target) {
			em.DestroyEntity(id)
			s.Kill(proj.Target)
			continue
		}

		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		if pos.X > s.ctx.Config.Projectile.DespawnX {
			em.DestroyEntity(id)
			enemy.Targeted = false
			continue
		}

		s.steer(id, proj, pos)
	}
}

// steer 将魔法弹速度方向对准目标当前位置
func (s *CombatSystem) steer(id ecs.EntityID, proj *components.ProjectileComponent, pos *components.PositionComponent) {
	em := s.ctx.EM
	targetPos, ok := ecs.GetComponent[*components.PositionComponent](em, proj.Target)
	if !ok {
		return
	}
	vel, ok := ecs.GetComponent[*components.VelocityComponent](em, id)
	if !ok {
		return
	}

	dx := targetPos.X - pos.X
	dy := targetPos.Y - pos.Y
	dist := math.Hypot(dx, dy)
	if dist == 0 {
		return
	}
	vel.VX = proj.Speed * dx / dist
	vel.VY = proj.Speed * dy / dist
}

func (s *CombatSystem) detectMelee() {
	player, playerPos, ok := s.ctx.Player()
	if !ok || player.State == components.PlayerDying {
		return
	}

	threshold := playerPos.X + s.ctx.Config.Player.MeleeRange
	for _, id := range s.ctx.LiveEnemies() {
		enemy, ok := s.ctx.Enemy(id)
		if !ok || enemy.State != components.EnemyApproaching {
			continue
		}
		pos, ok := ecs.GetComponent[*components.PositionComponent](s.ctx.EM, id)
		if !ok || pos.X >= threshold {
			continue
		}
		s.startMelee(id, enemy)
	}
}

func (s *CombatSystem) startMelee(id ecs.EntityID, enemy *components.EnemyComponent) {
	if !components.CanEnemyTransition(enemy.State, components.EnemySlashing) {
		return
	}
	enemy.State = components.EnemySlashing
	s.stop(id)
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.SetClip(anim, s.ctx.Config.Animations.Enemy, "slash")
	}

	s.ctx.Sound.PlaySound(s.ctx.Config.Sounds.EnemyStrike)
	s.scheduleHurtCue(id, enemy)

	interval := s.ctx.Config.Enemy.MeleeIntervalMs / 1000
	enemy.MeleeTimer = s.ctx.Timers.Start(components.TimerKindMelee, id, interval, true)
	log.Printf("[CombatSystem] Enemy %d (%s) reached the player", id, enemy.Word)
}

// scheduleHurtCue 按角色延迟播放玩家受伤音效，计时器绑定到出手的敌人
func (s *CombatSystem) scheduleHurtCue(id ecs.EntityID, enemy *components.EnemyComponent) {
	player, _, ok := s.ctx.Player()
	if !ok {
		return
	}
	character := s.ctx.Config.Player.Characters[player.Character]
	s.ctx.Timers.Cancel(enemy.CueTimer)
	enemy.CueTimer = s.ctx.Timers.Start(components.TimerKindHurtCue, id, character.HurtCueDelayMs/1000, false)
}

func (s *CombatSystem) onMeleeTick(t *components.TimerComponent) {
	enemy, ok := s.ctx.Enemy(t.Owner)
	if !ok || enemy.State != components.EnemySlashing || s.ctx.Phase() != components.PhaseActive {
		s.ctx.Timers.Cancel(t.ID)
		return
	}

	s.player.ApplyDamage(1)

	player, _, ok := s.ctx.Player()
	if ok && player.Health > 0 && player.State != components.PlayerDying {
		s.ctx.Sound.PlaySound(s.ctx.Config.Sounds.EnemyStrike)
		s.scheduleHurtCue(t.Owner, enemy)
	}
}

func (s *CombatSystem) onHurtCue(t *components.TimerComponent) {
	if enemy, ok := s.ctx.Enemy(t.Owner); ok && enemy.CueTimer == t.ID {
		enemy.CueTimer = 0
	}
	player, _, ok := s.ctx.Player()
	if !ok || player.State == components.PlayerDying || player.Health <= 0 {
		return
	}
	s.ctx.Sound.PlaySound(s.ctx.Config.Player.Characters[player.Character].HurtSound)
}

// Kill 击杀敌人：进入 dying，取消其计时器，隐藏单词并播放死亡动画
func (s *CombatSystem) Kill(id ecs.EntityID) {
	enemy, ok := s.ctx.Enemy(id)
	if !ok || !components.CanEnemyTransition(enemy.State, components.EnemyDying) {
		return
	}

	enemy.State = components.EnemyDying
	s.ctx.Timers.Cancel(enemy.MeleeTimer)
	s.ctx.Timers.Cancel(enemy.CueTimer)
	s.ctx.Timers.CancelOwner(id)
	enemy.MeleeTimer, enemy.CueTimer = 0, 0
	s.stop(id)

	if label, ok := ecs.GetComponent[*components.LabelComponent](s.ctx.EM, id); ok {
		label.Hidden = true
	}
	if anim, ok := ecs.GetComponent[*components.AnimationComponent](s.ctx.EM, id); ok {
		entities.SetClip(anim, s.ctx.Config.Animations.Enemy, "die")
	}

	if hurt := s.ctx.Config.Sounds.EnemyHurt; len(hurt) > 0 {
		s.ctx.Sound.PlaySound(hurt[s.ctx.Rand.Intn(len(hurt))])
	}
	log.Printf("[CombatSystem] Enemy %d (%s) killed", id, enemy.Word)
}

// OnEnemyDeathComplete 死亡动画播完：移除敌人并加分
func (s *CombatSystem) OnEnemyDeathComplete(id ecs.EntityID) {
	if _, ok := s.ctx.Enemy(id); !ok {
		return
	}
	s.ctx.EM.DestroyEntity(id)
	s.ctx.Level.AddScore(s.ctx.Params.KillReward)
	s.ctx.publishScore()
}

func (s *CombatSystem) stop(id ecs.EntityID) {
	if vel, ok := ecs.GetComponent[*components.VelocityComponent](s.ctx.EM, id); ok {
		vel.VX, vel.VY = 0, 0
	}
}
