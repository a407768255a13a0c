package entities

import (
	"fmt"
	"log"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// EnemySpec 生成一个敌人所需的参数
type EnemySpec struct {
	Word     string
	TypeName string
	Lane     int
	Speed    float64
	Seq      int
}

// NewEnemy 创建敌人实体
// 敌人在场外右侧（spawnX）所在车道出现，以给定速度向左行进，状态为 approaching
//
// 参数:
//   - em: 实体管理器
//   - cfg: 战斗参数
//   - spec: 单词、外观类型、车道、速度和生成序号
//
// 返回:
//   - ecs.EntityID: 敌人实体ID
//   - error: 单词为空或车道越界时返回
func NewEnemy(em *ecs.EntityManager, cfg *config.GameConfig, spec EnemySpec) (ecs.EntityID, error) {
	if em == nil {
		return 0, fmt.Errorf("entity manager cannot be nil")
	}
	if spec.Word == "" {
		return 0, fmt.Errorf("enemy word cannot be empty")
	}
	if spec.Lane < 0 || spec.Lane >= len(cfg.Field.Lanes) {
		return 0, fmt.Errorf("lane %d out of range [0, %d)", spec.Lane, len(cfg.Field.Lanes))
	}

	id := em.CreateEntity()

	ecs.AddComponent(em, id, &components.PositionComponent{
		X: cfg.Field.SpawnX,
		Y: cfg.Field.Lanes[spec.Lane],
	})
	ecs.AddComponent(em, id, &components.VelocityComponent{
		VX: -spec.Speed,
	})
	ecs.AddComponent(em, id, &components.CollisionComponent{
		Width:  cfg.Enemy.Width,
		Height: cfg.Enemy.Height,
	})
	ecs.AddComponent(em, id, &components.EnemyComponent{
		Word:     spec.Word,
		State:    components.EnemyApproaching,
		Lane:     spec.Lane,
		TypeName: spec.TypeName,
		Speed:    spec.Speed,
		SpawnSeq: spec.Seq,
	})
	ecs.AddComponent(em, id, &components.LabelComponent{
		Text: spec.Word,
	})
	ecs.AddComponent(em, id, newAnimation(cfg.Animations.Enemy, "walk"))

	log.Printf("[EnemyFactory] 创建敌人 %d: word=%s, type=%s, lane=%d, speed=%.1f",
		id, spec.Word, spec.TypeName, spec.Lane, spec.Speed)

	return id, nil
}
