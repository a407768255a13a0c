package scenes

import "github.com/hajimehoshi/ebiten/v2"

// Scene 由 SceneManager 驱动的画面
// Update 以秒为单位接收帧间隔
type Scene interface {
	Update(deltaTime float64)
	Draw(screen *ebiten.Image)
}

// Disposable 场景被替换或程序退出时释放会话、音频和文件监听
type Disposable interface {
	Dispose()
}
