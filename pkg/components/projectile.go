package components

import "github.com/gonewx/typeabyss/pkg/ecs"

// ProjectileComponent 魔法弹数据
//
// Target 是对目标敌人的弱引用：CombatSystem 每帧检查目标是否仍然存活，
// 目标已被移除或进入死亡状态时投射物直接丢弃，不产生任何效果。
type ProjectileComponent struct {
	Target ecs.EntityID
	Speed  float64 // 像素/秒
}
