package components

// AnimationComponent 帧动画播放状态（纯数据）
//
// 与渲染解耦：只记录当前片段与播放进度，宿主根据 Clip 和 CurrentFrame
// 选择要绘制的图像。片段的帧数、帧率和循环方式来自 game.yaml 的动画元数据。
type AnimationComponent struct {
	Clip         string  // 当前片段名，如 "walk"、"slash"、"die"
	FrameCount   int     // 片段总帧数
	FPS          float64 // 播放帧率
	IsLooping    bool    // 是否循环播放
	FrameCounter float64 // 当前片段已播放时间（秒）
	CurrentFrame int     // 当前帧索引（0-based）
	IsFinished   bool    // 非循环片段是否已播放完毕
	// Notified 完成事件是否已被处理，防止同一片段重复触发完成逻辑
	Notified bool
}
