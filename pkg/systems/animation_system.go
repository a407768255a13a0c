package systems

import (
	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// AnimationDone 非循环片段播放完毕的通知
type AnimationDone struct {
	Entity ecs.EntityID
	Clip   string
}

// AnimationSystem 推进动画帧
//
// 帧索引 = int(已播放时间 * FPS)。循环片段取模回绕；
// 非循环片段停在最后一帧，并且只通知一次完成。
// 战场冻结时动画继续播放（死亡动画需要播完）。
type AnimationSystem struct {
	em *ecs.EntityManager
}

// NewAnimationSystem 创建动画系统
func NewAnimationSystem(em *ecs.EntityManager) *AnimationSystem {
	return &AnimationSystem{em: em}
}

// Update 推进所有动画，返回本帧完成的片段（按实体创建顺序）
func (s *AnimationSystem) Update(deltaTime float64) []AnimationDone {
	var done []AnimationDone

	for _, id := range ecs.GetEntitiesWith1[*components.AnimationComponent](s.em) {
		if !s.em.IsAlive(id) {
			continue
		}
		anim, _ := ecs.GetComponent[*components.AnimationComponent](s.em, id)
		if anim.IsFinished {
			continue
		}

		anim.FrameCounter += deltaTime
		frame := int(anim.FrameCounter * anim.FPS)

		if anim.IsLooping {
			if anim.FrameCount > 0 {
				frame %= anim.FrameCount
			}
			anim.CurrentFrame = frame
			continue
		}

		if frame < anim.FrameCount {
			anim.CurrentFrame = frame
			continue
		}

		anim.CurrentFrame = max(anim.FrameCount-1, 0)
		anim.IsFinished = true
		if !anim.Notified {
			anim.Notified = true
			done = append(done, AnimationDone{Entity: id, Clip: anim.Clip})
		}
	}

	return done
}
