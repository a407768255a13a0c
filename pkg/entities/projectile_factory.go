package entities

import (
	"fmt"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// NewProjectile 创建魔法弹实体
// 魔法弹从玩家前方发射，速度方向由 CombatSystem 每帧朝目标当前位置修正
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗参数
//   - playerX, playerY: 玩家位置
//   - target: 目标敌人（弱引用）
//
// 返回:
//   - ecs.EntityID: 魔法弹实体ID
//   - error: 目标无效时返回
func NewProjectile(em *ecs.EntityManager, cfg *config.GameConfig, playerX, playerY float64, target ecs.EntityID) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if target == 0 {
		return 0, fmt.Errorf("projectile target cannot be empty")
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{
		X: playerX + cfg.Projectile.OffsetX,
		Y: playerY,
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: cfg.Projectile.Speed,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.Projectile.Width,
		Height: cfg.Projectile.Height,
	})
	ecs.AddComponent(em, id, &components.ProjectileComponent{
		Target: target,
		Speed:  cfg.Projectile.Speed,
	})
	ecs.AddComponent(em, id, newAnimation(cfg.Animations.Player, "projectile"))

	return id, nil
}
