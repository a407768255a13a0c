package encounter

import (
	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// PlayerView 玩家渲染信息
type PlayerView struct {
	X, Y      float64
	Health    int
	State     components.PlayerState
	Character string
	Clip      string
	Frame     int
}

// EnemyView 敌人渲染信息
type EnemyView struct {
	ID       ecs.EntityID
	Word     string
	Progress string
	State    components.EnemyState
	TypeName string
	X, Y     float64
	Clip     string
	Frame    int
	Hidden   bool // 单词标签已隐藏（死亡中）
	Targeted bool // 魔法弹已在途中
}

// ProjectileView 魔法弹渲染信息
type ProjectileView struct {
	X, Y  float64
	Frame int
}

// Snapshot 某一时刻的只读状态，供宿主渲染 HUD 和战场
type Snapshot struct {
	Level        int
	Score        int
	Health       int
	Phase        components.LevelPhase
	Paused       bool
	Background   int
	MusicCursor  int
	Spawned      int
	Required     int
	ActiveTarget ecs.EntityID

	Player      PlayerView
	Enemies     []EnemyView
	Projectiles []ProjectileView
}

// Snapshot 返回当前状态快照
func (e *Encounter) Snapshot() Snapshot {
	ctx := e.ctx
	snap := Snapshot{
		Phase:  ctx.Phase(),
		Paused: ctx.Paused,
	}
	if !e.started || ctx.Level == nil {
		return snap
	}

	snap.Level = ctx.Level.Level
	snap.Score = ctx.Level.Score
	snap.Health = ctx.Level.Health
	snap.Background = ctx.Level.Background()
	snap.MusicCursor = ctx.Level.MusicCursor()
	snap.Spawned = e.spawn.Spawned()
	snap.Required = e.spawn.Required()
	snap.ActiveTarget = e.typing.ActiveTarget()

	if player, pos, ok := ctx.Player(); ok {
		snap.Health = player.Health
		snap.Player = PlayerView{
			X:         pos.X,
			Y:         pos.Y,
			Health:    player.Health,
			State:     player.State,
			Character: player.Character,
		}
		snap.Player.Clip, snap.Player.Frame = e.frameOf(ctx.PlayerID)
	}

	for _, id := range ctx.LiveEnemies() {
		enemy, _ := ecs.GetComponent[*components.EnemyComponent](ctx.EM, id)
		pos, ok := ecs.GetComponent[*components.PositionComponent](ctx.EM, id)
		if !ok {
			continue
		}
		view := EnemyView{
			ID:       id,
			Word:     enemy.Word,
			Progress: enemy.TypedProgress,
			State:    enemy.State,
			TypeName: enemy.TypeName,
			X:        pos.X,
			Y:        pos.Y,
			Targeted: enemy.Targeted,
		}
		if label, ok := ecs.GetComponent[*components.LabelComponent](ctx.EM, id); ok {
			view.Hidden = label.Hidden
		}
		view.Clip, view.Frame = e.frameOf(id)
		snap.Enemies = append(snap.Enemies, view)
	}

	for _, id := range ecs.GetEntitiesWith2[*components.ProjectileComponent, *components.PositionComponent](ctx.EM) {
		if !ctx.EM.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ctx.EM, id)
		_, frame := e.frameOf(id)
		snap.Projectiles = append(snap.Projectiles, ProjectileView{X: pos.X, Y: pos.Y, Frame: frame})
	}

	return snap
}

func (e *Encounter) frameOf(id ecs.EntityID) (string, int) {
	anim, ok := ecs.GetComponent[*components.AnimationComponent](e.ctx.EM, id)
	if !ok {
		return "", 0
	}
	return anim.Clip, anim.CurrentFrame
}
