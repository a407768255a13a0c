package game

import (
	"fmt"
	"math/rand"
)

// LevelSession 单关会话状态及跨关携带的资源
//
// 由关卡生命周期控制器独占持有。Handoff 之后旧会话作废，
// 对作废会话的任何修改都视为编程错误并 panic。
type LevelSession struct {
	Level  int
	Score  int // 单调不减
	Health int

	// 携带资源
	backgrounds  []int    // 尚未使用的背景 ID
	enemyHistory []string // 最近使用的敌人类型
	musicCursor  int

	// 本关抽取结果
	background int
	enemyTypes []string

	spent bool
}

// NewLevelSession 创建第一关会话
// 参数：
//   - level: 起始关卡（从 1 开始）
//   - health: 初始生命值
//   - backgroundCount: 背景数量，背景池为 1..backgroundCount
func NewLevelSession(level, health, backgroundCount int) *LevelSession {
	pool := make([]int, backgroundCount)
	for i := range pool {
		pool[i] = i + 1
	}
	return &LevelSession{
		Level:       level,
		Health:      health,
		backgrounds: pool,
	}
}

// Prepare 关卡开始时抽取背景和敌人类型
//
// 背景从剩余池中随机抽取并移出池；池为空时使用背景 1。
func (s *LevelSession) Prepare(roster *Roster, rng *rand.Rand) {
	s.mustBeLive()

	if len(s.backgrounds) == 0 {
		s.background = 1
	} else {
		idx := rng.Intn(len(s.backgrounds))
		s.background = s.backgrounds[idx]
		s.backgrounds = append(s.backgrounds[:idx], s.backgrounds[idx+1:]...)
	}

	s.enemyTypes, s.enemyHistory = roster.PickLevelTypes(rng, s.enemyHistory)
}

// AddScore 增加分数，负值被忽略
func (s *LevelSession) AddScore(points int) {
	s.mustBeLive()
	if points > 0 {
		s.Score += points
	}
}

// SetHealth 更新携带的生命值
func (s *LevelSession) SetHealth(health int) {
	s.mustBeLive()
	s.Health = health
}

// AdvanceMusic 当前曲目播放完毕后前进到下一首，循环回绕
func (s *LevelSession) AdvanceMusic(tracks int) int {
	s.mustBeLive()
	if tracks > 0 {
		s.musicCursor = (s.musicCursor + 1) % tracks
	}
	return s.musicCursor
}

// Handoff 构造下一关会话，携带分数、生命值、剩余背景池、敌人类型历史和音乐游标
// 调用后本会话作废
func (s *LevelSession) Handoff() *LevelSession {
	s.mustBeLive()
	next := &LevelSession{
		Level:        s.Level + 1,
		Score:        s.Score,
		Health:       s.Health,
		backgrounds:  append([]int(nil), s.backgrounds...),
		enemyHistory: append([]string(nil), s.enemyHistory...),
		musicCursor:  s.musicCursor,
	}
	s.spent = true
	return next
}

// Spent 会话是否已作废
func (s *LevelSession) Spent() bool { return s.spent }

// Background 本关背景 ID
func (s *LevelSession) Background() int { return s.background }

// EnemyTypes 本关使用的敌人类型
func (s *LevelSession) EnemyTypes() []string { return append([]string(nil), s.enemyTypes...) }

// EnemyHistory 最近使用的敌人类型
func (s *LevelSession) EnemyHistory() []string { return append([]string(nil), s.enemyHistory...) }

// RemainingBackgrounds 剩余未使用背景数
func (s *LevelSession) RemainingBackgrounds() int { return len(s.backgrounds) }

// MusicCursor 当前曲目索引
func (s *LevelSession) MusicCursor() int { return s.musicCursor }

func (s *LevelSession) mustBeLive() {
	if s.spent {
		panic(fmt.Sprintf("game: level %d session used after handoff", s.Level))
	}
}
