package components

// PlayerState 玩家状态
type PlayerState int

const (
	// PlayerIdle 站立待机
	PlayerIdle PlayerState = iota
	// PlayerWalking 入场/退场跑动
	PlayerWalking
	// PlayerHurt 受击硬直，动画结束后回到待机
	PlayerHurt
	// PlayerSlashing 施法动作，动画结束后回到待机
	PlayerSlashing
	// PlayerDying 死亡（终态）
	PlayerDying
)

// String 返回状态名，用于日志和快照
func (s PlayerState) String() string {
	switch s {
	case PlayerIdle:
		return "idle"
	case PlayerWalking:
		return "walking"
	case PlayerHurt:
		return "hurt"
	case PlayerSlashing:
		return "slashing"
	case PlayerDying:
		return "dying"
	default:
		return "unknown"
	}
}

// playerTransitions 合法的玩家状态迁移
var playerTransitions = map[PlayerState][]PlayerState{
	PlayerIdle:     {PlayerWalking, PlayerHurt, PlayerSlashing, PlayerDying},
	PlayerWalking:  {PlayerIdle, PlayerDying},
	PlayerHurt:     {PlayerIdle, PlayerWalking, PlayerHurt, PlayerSlashing, PlayerDying},
	PlayerSlashing: {PlayerIdle, PlayerWalking, PlayerHurt, PlayerSlashing, PlayerDying},
	PlayerDying:    {},
}

// CanPlayerTransition 判断玩家能否从 from 迁移到 to
func CanPlayerTransition(from, to PlayerState) bool {
	for _, s := range playerTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// PlayerComponent 玩家数据
// Health 是剩余可承受的命中次数，不是百分比
type PlayerComponent struct {
	Health    int
	State     PlayerState
	Character string // "character_1" 或 "character_2"
}
