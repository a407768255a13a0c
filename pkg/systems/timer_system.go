package systems

import (
	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// TimerHandler 计时器到期回调
type TimerHandler func(t *components.TimerComponent)

// TimerSystem 帧驱动的可暂停计时器
//
// 计时器由显式句柄（TimerID）标识，可以绑定到实体。计时只在 Update 中推进，
// 暂停时宿主不调用 Update，所有计时器自然冻结，恢复后从原处继续。
//
// 到期规则：
//   - 按创建顺序检查，每个计时器每帧最多触发一次，超出部分计入下一周期
//   - 单次计时器触发前即被标记为取消
//   - 回调中新建的计时器从下一帧开始计时
type TimerSystem struct {
	timers   []*components.TimerComponent
	nextID   components.TimerID
	handlers map[components.TimerKind]TimerHandler
}

// NewTimerSystem 创建计时器系统
func NewTimerSystem() *TimerSystem {
	return &TimerSystem{
		nextID:   1,
		handlers: make(map[components.TimerKind]TimerHandler),
	}
}

// Handle 注册某类计时器的回调
func (s *TimerSystem) Handle(kind components.TimerKind, h TimerHandler) {
	s.handlers[kind] = h
}

// Start 创建计时器
// 参数：
//   - kind: 计时器类别
//   - owner: 绑定实体（0 表示全局）
//   - intervalSec: 间隔（秒）
//   - repeat: 是否循环
//
// 返回：
//   - components.TimerID: 计时器句柄
func (s *TimerSystem) Start(kind components.TimerKind, owner ecs.EntityID, intervalSec float64, repeat bool) components.TimerID {
	id := s.nextID
	s.nextID++
	s.timers = append(s.timers, &components.TimerComponent{
		ID:         id,
		Kind:       kind,
		Owner:      owner,
		TargetTime: intervalSec,
		Repeat:     repeat,
	})
	return id
}

// Cancel 取消计时器，句柄为 0 或已取消时无操作
func (s *TimerSystem) Cancel(id components.TimerID) {
	if id == 0 {
		return
	}
	for _, t := range s.timers {
		if t.ID == id {
			t.Cancelled = true
			return
		}
	}
}

// CancelOwner 取消绑定到实体的所有计时器
func (s *TimerSystem) CancelOwner(owner ecs.EntityID) {
	for _, t := range s.timers {
		if t.Owner == owner {
			t.Cancelled = true
		}
	}
}

// CancelAll 取消所有计时器
func (s *TimerSystem) CancelAll() {
	for _, t := range s.timers {
		t.Cancelled = true
	}
	s.timers = s.timers[:0]
}

// Active 计时器是否仍在运行
func (s *TimerSystem) Active(id components.TimerID) bool {
	t := s.find(id)
	return t != nil && !t.Cancelled
}

// Elapsed 计时器当前周期已经过的时间（秒）
func (s *TimerSystem) Elapsed(id components.TimerID) float64 {
	if t := s.find(id); t != nil {
		return t.CurrentTime
	}
	return 0
}

// Count 运行中的计时器数量
func (s *TimerSystem) Count() int {
	n := 0
	for _, t := range s.timers {
		if !t.Cancelled {
			n++
		}
	}
	return n
}

// Update 推进所有计时器并分发到期回调
func (s *TimerSystem) Update(deltaTime float64) {
	// 只处理本帧开始时已存在的计时器
	n := len(s.timers)
	for i := 0; i < n && i < len(s.timers); i++ {
		t := s.timers[i]
		if t.Cancelled {
			continue
		}

		t.CurrentTime += deltaTime
		if t.CurrentTime < t.TargetTime {
			continue
		}

		t.CurrentTime -= t.TargetTime
		if !t.Repeat {
			t.Cancelled = true
		}
		if h, ok := s.handlers[t.Kind]; ok {
			h(t)
		}
	}

	s.compact()
}

func (s *TimerSystem) find(id components.TimerID) *components.TimerComponent {
	for _, t := range s.timers {
		if t.ID == id {
			return t
		}
	}
	return nil
}

// compact 移除已取消的计时器
func (s *TimerSystem) compact() {
	kept := s.timers[:0]
	for _, t := range s.timers {
		if !t.Cancelled {
			kept = append(kept, t)
		}
	}
	for i := len(kept); i < len(s.timers); i++ {
		s.timers[i] = nil
	}
	s.timers = kept
}
