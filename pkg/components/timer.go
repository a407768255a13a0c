package components

import "github.com/gonewx/typeabyss/pkg/ecs"

// TimerID 计时器句柄，0 表示无计时器
type TimerID uint64

// TimerKind 计时器类别，TimerSystem 按类别分发到期事件
type TimerKind int

const (
	// TimerKindSpawn 全局生成计时器（循环）
	TimerKindSpawn TimerKind = iota
	// TimerKindMelee 敌人近战伤害计时器（循环，绑定到敌人）
	TimerKindMelee
	// TimerKindHurtCue 玩家受伤音效延迟（单次，绑定到出手的敌人）
	TimerKindHurtCue
)

// String 返回计时器类别名称，用于日志
func (k TimerKind) String() string {
	switch k {
	case TimerKindSpawn:
		return "spawn"
	case TimerKindMelee:
		return "melee"
	case TimerKindHurtCue:
		return "hurt_cue"
	default:
		return "unknown"
	}
}

// TimerComponent 一条计时器记录
// 由 TimerSystem 持有，到期时间以秒为单位，由帧时间驱动，暂停期间不推进
type TimerComponent struct {
	ID          TimerID
	Kind        TimerKind
	Owner       ecs.EntityID // 绑定实体，0 表示全局计时器
	TargetTime  float64      // 间隔（秒）
	CurrentTime float64      // 当前已过时间（秒）
	Repeat      bool         // 到期后是否自动重新计时
	Cancelled   bool
}
