package components

// LevelPhase 关卡生命周期阶段
type LevelPhase int

const (
	// PhaseEntering 玩家从场外跑入，忽略输入，不生成敌人
	PhaseEntering LevelPhase = iota
	// PhaseActive 战斗进行中
	PhaseActive
	// PhaseVictory 配额已生成且场上无敌人
	PhaseVictory
	// PhaseDefeat 生命值耗尽（练习模式不会进入）
	PhaseDefeat
	// PhaseExiting 玩家跑出场外，忽略输入
	PhaseExiting
	// PhaseHandoff 构造下一关的会话
	PhaseHandoff
	// PhaseFinished 战役结束或已发出 gameOver
	PhaseFinished
	// PhaseExited 宿主请求退出，已拆除
	PhaseExited
)

// String 返回阶段名，用于日志和快照
func (p LevelPhase) String() string {
	switch p {
	case PhaseEntering:
		return "entering"
	case PhaseActive:
		return "active"
	case PhaseVictory:
		return "victory"
	case PhaseDefeat:
		return "defeat"
	case PhaseExiting:
		return "exiting"
	case PhaseHandoff:
		return "handoff"
	case PhaseFinished:
		return "finished"
	case PhaseExited:
		return "exited"
	default:
		return "unknown"
	}
}

// AcceptsInput 该阶段是否接受键盘输入
func (p LevelPhase) AcceptsInput() bool {
	return p == PhaseActive
}

// IsTerminal 会话是否已经结束，不再推进
func (p LevelPhase) IsTerminal() bool {
	return p == PhaseFinished || p == PhaseExited
}

// LevelPhaseComponent 关卡阶段组件
//
// 挂在单例关卡实体上，由 LevelSystem 独占修改。
type LevelPhaseComponent struct {
	// Phase 当前阶段
	Phase LevelPhase

	// PhaseTime 进入当前阶段后经过的时间（秒）
	PhaseTime float64

	// GameOverPending defeat 后等待玩家死亡动画完成再发出 gameOver
	GameOverPending bool
}
