package systems

import (
	"math/rand"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
	"github.com/gonewx/typeabyss/pkg/game"
)

// BattleContext 战斗共享状态
//
// 所有系统通过同一个上下文访问实体管理器、配置、当前关卡会话和外部协作者。
// 关卡会话（Level）和关卡参数（Params）只由 LevelSystem 替换。
type BattleContext struct {
	EM      *ecs.EntityManager
	Config  *config.GameConfig
	Session config.SessionConfig
	Params  config.LevelParams
	Level   *game.LevelSession
	Roster  *game.Roster
	Events  *game.EventBridge
	Sound   game.SoundPlayer
	Rand    *rand.Rand
	Timers  *TimerSystem

	PlayerID ecs.EntityID
	LevelID  ecs.EntityID // 单例关卡实体：阶段组件、冻结标记
	Paused   bool
}

// Phase 当前关卡阶段
func (c *BattleContext) Phase() components.LevelPhase {
	if pc := c.phaseComponent(); pc != nil {
		return pc.Phase
	}
	return components.PhaseExited
}

func (c *BattleContext) phaseComponent() *components.LevelPhaseComponent {
	pc, ok := ecs.GetComponent[*components.LevelPhaseComponent](c.EM, c.LevelID)
	if !ok {
		return nil
	}
	return pc
}

// Frozen 战场是否已冻结（玩家死亡或退出）
func (c *BattleContext) Frozen() bool {
	freeze, ok := ecs.GetComponent[*components.GameFreezeComponent](c.EM, c.LevelID)
	return ok && freeze.IsFrozen
}

// Freeze 冻结战场：停止所有位移和战斗检测
func (c *BattleContext) Freeze() {
	if c.Frozen() {
		return
	}
	ecs.AddComponent(c.EM, c.LevelID, &components.GameFreezeComponent{IsFrozen: true})
	for _, id := range ecs.GetEntitiesWith1[*components.VelocityComponent](c.EM) {
		if vel, ok := ecs.GetComponent[*components.VelocityComponent](c.EM, id); ok {
			vel.VX, vel.VY = 0, 0
		}
	}
}

// Player 返回玩家组件和位置，玩家不存在时 ok 为 false
func (c *BattleContext) Player() (*components.PlayerComponent, *components.PositionComponent, bool) {
	player, ok := ecs.GetComponent[*components.PlayerComponent](c.EM, c.PlayerID)
	if !ok {
		return nil, nil, false
	}
	pos, ok := ecs.GetComponent[*components.PositionComponent](c.EM, c.PlayerID)
	if !ok {
		return nil, nil, false
	}
	return player, pos, true
}

// PlayerDying 玩家是否处于死亡状态
func (c *BattleContext) PlayerDying() bool {
	player, _, ok := c.Player()
	return ok && player.State == components.PlayerDying
}

// LiveEnemies 场上仍存在的敌人（包括播放死亡动画中的），按生成顺序
func (c *BattleContext) LiveEnemies() []ecs.EntityID {
	all := ecs.GetEntitiesWith1[*components.EnemyComponent](c.EM)
	live := all[:0]
	for _, id := range all {
		if c.EM.IsAlive(id) {
			live = append(live, id)
		}
	}
	return live
}

// Enemy 返回存活敌人的组件
func (c *BattleContext) Enemy(id ecs.EntityID) (*components.EnemyComponent, bool) {
	if !c.EM.IsAlive(id) {
		return nil, false
	}
	return ecs.GetComponent[*components.EnemyComponent](c.EM, id)
}

// publishScore 发布分数更新
func (c *BattleContext) publishScore() {
	health := 0
	if player, _, ok := c.Player(); ok {
		health = player.Health
	}
	c.Events.Publish(game.ScoreUpdate{
		Score:  c.Level.Score,
		Level:  c.Level.Level,
		Health: health,
	})
}
