package entities

import (
	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
)

// SetClip 切换到指定动画片段并从第一帧开始播放
// 片段不在元数据表中时保留原片段，返回 false
func SetClip(anim *components.AnimationComponent, clips map[string]config.ClipConfig, name string) bool {
	clip, ok := clips[name]
	if !ok {
		return false
	}
	*anim = components.AnimationComponent{
		Clip:       name,
		FrameCount: clip.Frames,
		FPS:        clip.FPS,
		IsLooping:  clip.Loop,
	}
	return true
}

func newAnimation(clips map[string]config.ClipConfig, name string) *components.AnimationComponent {
	anim := &components.AnimationComponent{}
	SetClip(anim, clips, name)
	return anim
}
