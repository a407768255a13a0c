package components

// GameFreezeComponent 挂在关卡实体上，表示战场已冻结（玩家倒下或宿主退出）
//
// 冻结后 PhysicsSystem 不再移动实体，CombatSystem 不再追踪和判定，
// 动画照常播放，死亡动画才能放完。
type GameFreezeComponent struct {
	IsFrozen bool
}
