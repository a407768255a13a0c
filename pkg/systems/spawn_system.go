package systems

import (
	"log"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/entities"
)

// SpawnSystem 敌人生成调度
//
// 进入 active 阶段后启动一个循环计时器，每个间隔尝试生成一个敌人：
//   - 已生成数达到配额后停止计时器，不再生成
//   - 同屏敌人达到上限时跳过本次（计时器继续）
//   - 类型从本关选定的敌人类型中随机选取，单词从单词池随机选取，车道随机
type SpawnSystem struct {
	ctx     *BattleContext
	timer   components.TimerID
	spawned int
}

// NewSpawnSystem 创建生成系统并注册生成计时器回调
func NewSpawnSystem(ctx *BattleContext) *SpawnSystem {
	s := &SpawnSystem{ctx: ctx}
	ctx.Timers.Handle(components.TimerKindSpawn, func(*components.TimerComponent) {
		s.trySpawn()
	})
	return s
}

// Reset 新关卡开始时清零计数
func (s *SpawnSystem) Reset() {
	s.Stop()
	s.spawned = 0
}

// Start 启动生成计时器，首次生成发生在一个间隔之后
func (s *SpawnSystem) Start() {
	if s.ctx.Timers.Active(s.timer) || s.QuotaReached() {
		return
	}
	delay := s.ctx.Params.SpawnDelayMs / 1000
	s.timer = s.ctx.Timers.Start(components.TimerKindSpawn, 0, delay, true)
	log.Printf("[SpawnSystem] Level %d: quota=%d, delay=%.0fms, speed=%.1f",
		s.ctx.Params.Level, s.ctx.Params.Quota, s.ctx.Params.SpawnDelayMs, s.ctx.Params.EnemySpeed)
}

// Stop 取消生成计时器
func (s *SpawnSystem) Stop() {
	s.ctx.Timers.Cancel(s.timer)
	s.timer = 0
}

// Spawned 本关已生成的敌人数
func (s *SpawnSystem) Spawned() int { return s.spawned }

// Required 本关配额
func (s *SpawnSystem) Required() int { return s.ctx.Params.Quota }

// QuotaReached 是否已生成满配额
func (s *SpawnSystem) QuotaReached() bool {
	return s.spawned >= s.ctx.Params.Quota
}

// onField 场上未进入死亡状态的敌人数
func (s *SpawnSystem) onField() int {
	n := 0
	for _, id := range s.ctx.LiveEnemies() {
		if enemy, ok := s.ctx.Enemy(id); ok && enemy.State != components.EnemyDying {
			n++
		}
	}
	return n
}

func (s *SpawnSystem) trySpawn() {
	if s.QuotaReached() {
		s.Stop()
		return
	}
	if !s.ctx.Phase().AcceptsInput() {
		return
	}
	if limit := s.ctx.Params.MaxOnField; limit > 0 && s.onField() >= limit {
		return
	}

	types := s.ctx.Level.EnemyTypes()
	lanes := s.ctx.Config.Field.Lanes
	if len(types) == 0 || len(lanes) == 0 || s.ctx.Roster == nil {
		return
	}

	spec := entities.EnemySpec{
		TypeName: types[s.ctx.Rand.Intn(len(types))],
		Word:     s.ctx.Roster.RandomWord(s.ctx.Rand),
		Lane:     s.ctx.Rand.Intn(len(lanes)),
		Speed:    s.ctx.Params.EnemySpeed,
		Seq:      s.spawned + 1,
	}
	if _, err := entities.NewEnemy(s.ctx.EM, s.ctx.Config, spec); err != nil {
		log.Printf("[SpawnSystem] Failed to spawn enemy: %v", err)
		return
	}
	s.spawned++

	if s.QuotaReached() {
		log.Printf("[SpawnSystem] Quota reached (%d/%d)", s.spawned, s.ctx.Params.Quota)
		s.Stop()
	}
}
