package components

// EnemyState 敌人状态
type EnemyState int

const (
	// EnemyApproaching 向玩家行进
	EnemyApproaching EnemyState = iota
	// EnemySlashing 已进入近战范围，停止移动并周期性造成伤害
	EnemySlashing
	// EnemyDying 被魔法弹击中，播放死亡动画后移除（终态）
	EnemyDying
)

// String 返回状态名，用于日志和快照
func (s EnemyState) String() string {
	switch s {
	case EnemyApproaching:
		return "approaching"
	case EnemySlashing:
		return "slashing"
	case EnemyDying:
		return "dying"
	default:
		return "unknown"
	}
}

// enemyTransitions 合法的敌人状态迁移
var enemyTransitions = map[EnemyState][]EnemyState{
	EnemyApproaching: {EnemySlashing, EnemyDying},
	EnemySlashing:    {EnemyDying},
	EnemyDying:       {},
}

// CanEnemyTransition 判断敌人能否从 from 迁移到 to
func CanEnemyTransition(from, to EnemyState) bool {
	for _, s := range enemyTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// EnemyComponent 敌人数据
//
// 不变量：
//   - TypedProgress 始终是 Word 的前缀
//   - Dying 状态的敌人不移动、不造成伤害
//
// MeleeTimer / CueTimer 是显式计时器句柄，敌人进入死亡状态或关卡离开
// active 阶段时由持有者显式取消。
type EnemyComponent struct {
	Word          string     // 绑定单词，生命周期内不可变
	TypedProgress string     // 已匹配的前缀
	State         EnemyState // 当前状态
	Lane          int        // 车道索引
	TypeName      string     // 外观类型，如 "orc_2"
	Speed         float64    // 行进速度（像素/秒）
	SpawnSeq      int        // 本关内的生成序号（从 1 开始）

	// Targeted 单词已完成，魔法弹在途，不再接受键盘选中
	Targeted bool

	MeleeTimer TimerID // 近战伤害计时器
	CueTimer   TimerID // 玩家受伤音效延迟计时器
}
