package entities

import (
	"fmt"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// NewPlayer 创建玩家实体
// 玩家从入场起点（场外左侧）以跑动速度向右移动，处于 walking 状态
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗参数
//   - character: 角色名（"character_1" / "character_2"）
//   - health: 携带的生命值
//
// 返回:
//   - ecs.EntityID: 玩家实体ID
//   - error: 参数无效时返回
func NewPlayer(em *ecs.EntityManager, cfg *config.GameConfig, character string, health int) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if _, ok := cfg.Player.Characters[character]; !ok {
		return 0, fmt.Errorf("unknown character %q", character)
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{
		X: cfg.Player.EntranceStartX,
		Y: PlayerY(cfg),
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: cfg.Player.RunSpeed,
	})
	ecs.AddComponent(em, id, &components.PlayerComponent{
		Health:    health,
		State:     components.PlayerWalking,
		Character: character,
	})
	ecs.AddComponent(em, id, newAnimation(cfg.Animations.Player, "walk"))

	return id, nil
}

// PlayerY 玩家所在的纵坐标（中间车道）
func PlayerY(cfg *config.GameConfig) float64 {
	lanes := cfg.Field.Lanes
	return lanes[len(lanes)/2]
}
