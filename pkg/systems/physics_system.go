package systems

import (
	"math"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// PhysicsSystem 处理实体位移和碰撞检测
//
// 职责：
//   - 按速度积分所有带 Position + Velocity 的实体
//   - 战场冻结时（玩家死亡、退出）不再移动任何实体
//   - 提供中心对齐的 AABB 碰撞检测
type PhysicsSystem struct {
	ctx *BattleContext
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(ctx *BattleContext) *PhysicsSystem {
	return &PhysicsSystem{ctx: ctx}
}

// Update 更新所有移动实体的位置
func (s *PhysicsSystem) Update(deltaTime float64) {
	if s.ctx.Frozen() {
		return
	}

	em := s.ctx.EM
	for _, id := range ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](em) {
		if !em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}

// Overlaps 检查两个实体的碰撞盒是否重叠
// 任一实体缺少位置或碰撞组件时返回 false
func (s *PhysicsSystem) Overlaps(a, b ecs.EntityID) bool {
	em := s.ctx.EM
	pos1, ok1 := ecs.GetComponent[*components.PositionComponent](em, a)
	col1, ok2 := ecs.GetComponent[*components.CollisionComponent](em, a)
	pos2, ok3 := ecs.GetComponent[*components.PositionComponent](em, b)
	col2, ok4 := ecs.GetComponent[*components.CollisionComponent](em, b)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}
	return checkAABBCollision(pos1, col1, pos2, col2)
}

// checkAABBCollision 检测两个中心对齐的碰撞盒是否重叠
// 位置为实体中心，碰撞盒中心 = 位置 + 偏移
func checkAABBCollision(pos1 *components.PositionComponent, col1 *components.CollisionComponent,
	pos2 *components.PositionComponent, col2 *components.CollisionComponent) bool {
	cx1 := pos1.X + col1.OffsetX
	cy1 := pos1.Y + col1.OffsetY
	cx2 := pos2.X + col2.OffsetX
	cy2 := pos2.Y + col2.OffsetY

	return math.Abs(cx1-cx2) < (col1.Width+col2.Width)/2 &&
		math.Abs(cy1-cy2) < (col1.Height+col2.Height)/2
}
