package game

import "sync"

// EventType 对外事件类型
type EventType int

const (
	// EventGameStarted 关卡开始（入场跑动开始时）
	EventGameStarted EventType = iota
	// EventScoreUpdate 分数变化
	EventScoreUpdate
	// EventHealthUpdate 生命值变化
	EventHealthUpdate
	// EventLevelComplete 关卡胜利（退场跑动之前）
	EventLevelComplete
	// EventGameOver 会话结束（失败或通关），只发出一次
	EventGameOver
	// EventGamePaused 已暂停
	EventGamePaused
	// EventGameResumed 已恢复
	EventGameResumed
)

// String 返回事件名
func (t EventType) String() string {
	switch t {
	case EventGameStarted:
		return "gameStarted"
	case EventScoreUpdate:
		return "scoreUpdate"
	case EventHealthUpdate:
		return "healthUpdate"
	case EventLevelComplete:
		return "levelComplete"
	case EventGameOver:
		return "gameOver"
	case EventGamePaused:
		return "gamePaused"
	case EventGameResumed:
		return "gameResumed"
	default:
		return "unknown"
	}
}

// Event 对外事件负载
// 宿主通过类型断言或 Type() 区分具体负载
type Event interface {
	Type() EventType
}

// GameStarted 关卡开始
type GameStarted struct {
	Level int
}

// ScoreUpdate 分数更新
type ScoreUpdate struct {
	Score  int
	Level  int
	Health int
}

// HealthUpdate 生命值更新
type HealthUpdate struct {
	Health int
}

// LevelComplete 关卡完成
type LevelComplete struct {
	Level int
	Score int
}

// GameOver 会话结束，Victory 表示打通最后一关
type GameOver struct {
	Score   int
	Level   int
	Victory bool
}

// GamePaused 已暂停
type GamePaused struct{}

// GameResumed 已恢复
type GameResumed struct{}

func (GameStarted) Type() EventType   { return EventGameStarted }
func (ScoreUpdate) Type() EventType   { return EventScoreUpdate }
func (HealthUpdate) Type() EventType  { return EventHealthUpdate }
func (LevelComplete) Type() EventType { return EventLevelComplete }
func (GameOver) Type() EventType      { return EventGameOver }
func (GamePaused) Type() EventType    { return EventGamePaused }
func (GameResumed) Type() EventType   { return EventGameResumed }

// EventBridge 单向对外消息队列
//
// 核心只负责 Publish，不持有任何宿主引用；宿主通过 Poll 取走全部待处理事件。
// 队列由互斥锁保护，宿主可以在其他 goroutine 中轮询。
type EventBridge struct {
	mu     sync.Mutex
	queue  []Event
	closed bool
}

// NewEventBridge 创建事件桥
func NewEventBridge() *EventBridge {
	return &EventBridge{}
}

// Publish 追加事件，关闭后的发布被忽略
func (b *EventBridge) Publish(e Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.queue = append(b.queue, e)
}

// Poll 按发布顺序取走所有待处理事件
func (b *EventBridge) Poll() []Event {
	b.mu.Lock()
	defer b.mu.Unlock()
	if len(b.queue) == 0 {
		return nil
	}
	out := b.queue
	b.queue = nil
	return out
}

// Pending 待处理事件数
func (b *EventBridge) Pending() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

// Close 停止接受新事件，已排队的事件仍可被 Poll
func (b *EventBridge) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.closed = true
}
