package systems

import (
	"log"
	"strings"
	"unicode"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// TypingSystem 打字匹配
//
// 职责：
//   - 缓冲按键（仅单个字母，不区分大小写），按帧顺序处理
//   - 维护唯一的当前目标：无目标时选取第一个单词以该字母开头的敌人（按生成顺序）
//   - 只有保持前缀关系的字母才推进进度，不匹配的字母直接丢弃
//   - 单词完成时交给 CombatSystem 发射魔法弹并清空目标
//
// 当前目标和敌人的已输入进度只由本系统修改。
type TypingSystem struct {
	ctx    *BattleContext
	combat *CombatSystem
	buffer []rune
	active ecs.EntityID
}

// NewTypingSystem 创建打字系统
func NewTypingSystem(ctx *BattleContext, combat *CombatSystem) *TypingSystem {
	return &TypingSystem{ctx: ctx, combat: combat}
}

// Reset 清空缓冲和目标（新关卡）
func (s *TypingSystem) Reset() {
	s.buffer = s.buffer[:0]
	s.active = 0
}

// DiscardPending 丢弃尚未处理的按键（暂停时调用）
func (s *TypingSystem) DiscardPending() {
	s.buffer = s.buffer[:0]
}

// Accepting 当前是否接受输入
// 暂停、非 active 阶段或玩家死亡时不接受
func (s *TypingSystem) Accepting() bool {
	return !s.ctx.Paused && s.ctx.Phase().AcceptsInput() && !s.ctx.PlayerDying()
}

// KeyDown 接收一次按键
// 返回：按键被缓冲时为 true
func (s *TypingSystem) KeyDown(r rune) bool {
	r = unicode.ToLower(r)
	if r < 'a' || r > 'z' {
		return false
	}
	if !s.Accepting() {
		return false
	}
	s.buffer = append(s.buffer, r)
	return true
}

// ActiveTarget 当前目标，0 表示无
func (s *TypingSystem) ActiveTarget() ecs.EntityID {
	s.dropStaleTarget()
	return s.active
}

// CancelTarget 放弃当前目标并清空其进度
func (s *TypingSystem) CancelTarget() {
	if enemy, ok := s.ctx.Enemy(s.active); ok && enemy.State != components.EnemyDying {
		enemy.TypedProgress = ""
	}
	s.active = 0
}

// Update 处理本帧缓冲的按键
func (s *TypingSystem) Update() {
	if len(s.buffer) == 0 {
		return
	}
	keys := s.buffer
	s.buffer = nil

	for _, r := range keys {
		if !s.Accepting() {
			return
		}
		s.handleKey(r)
	}
}

func (s *TypingSystem) handleKey(r rune) {
	s.dropStaleTarget()

	if s.active == 0 {
		s.active = s.selectTarget(r)
		if s.active == 0 {
			return
		}
	}

	enemy, _ := s.ctx.Enemy(s.active)
	next := enemy.TypedProgress + string(r)
	if !strings.HasPrefix(enemy.Word, next) {
		return
	}
	enemy.TypedProgress = next

	if enemy.TypedProgress == enemy.Word {
		target := s.active
		enemy.TypedProgress = ""
		enemy.Targeted = true
		s.active = 0
		log.Printf("[TypingSystem] Word completed: %s (enemy %d)", enemy.Word, target)
		if err := s.combat.Fire(target); err != nil {
			log.Printf("[TypingSystem] Failed to fire: %v", err)
			enemy.Targeted = false
		}
	}
}

// selectTarget 按生成顺序选取第一个可选中且单词以 r 开头的敌人
func (s *TypingSystem) selectTarget(r rune) ecs.EntityID {
	for _, id := range s.ctx.LiveEnemies() {
		enemy, ok := s.ctx.Enemy(id)
		if !ok || !selectable(enemy) {
			continue
		}
		if strings.HasPrefix(enemy.Word, string(r)) {
			return id
		}
	}
	return 0
}

// dropStaleTarget 目标死亡、消失或已被锁定发射时清空
func (s *TypingSystem) dropStaleTarget() {
	if s.active == 0 {
		return
	}
	if enemy, ok := s.ctx.Enemy(s.active); !ok || !selectable(enemy) {
		s.active = 0
	}
}

func selectable(enemy *components.EnemyComponent) bool {
	return enemy.State != components.EnemyDying && !enemy.Targeted
}
