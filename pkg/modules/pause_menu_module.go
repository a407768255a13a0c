package modules

import (
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// 暂停菜单选项
const (
	PauseOptionContinue = iota
	PauseOptionRestart
	PauseOptionExit
	pauseOptionCount
)

// pauseOptionLabels 选项文字（basicfont 只含 ASCII 字形）
var pauseOptionLabels = [pauseOptionCount]string{
	PauseOptionContinue: "Resume",
	PauseOptionRestart:  "Restart",
	PauseOptionExit:     "Quit",
}

// 暂停菜单外观
const (
	pauseOverlayAlpha = 160
	pausePanelWidth   = 320
	pausePanelHeight  = 200
	pauseLineHeight   = 32
)

// PauseMenuModule 暂停菜单模块
// 封装暂停覆盖层的全部功能：
//   - 暂停状态变化检测（重新进入暂停时重置选项）
//   - 键盘导航（上下选择，Enter/Space 确认，Esc 继续）
//   - 覆盖层渲染（遮罩、面板、选项）
//
// 暂停状态本身由会话持有，模块只通过 IsPaused 读取，
// 通过回调请求继续/重新开始/退出。
type PauseMenuModule struct {
	isPaused   func() bool
	onContinue func()
	onRestart  func()
	onExit     func()

	selected  int
	wasActive bool // 上一帧的激活状态

	face         text.Face
	windowWidth  int
	windowHeight int
}

// PauseMenuCallbacks 暂停菜单回调函数集合
type PauseMenuCallbacks struct {
	IsPaused   func() bool // 读取会话暂停状态（必需）
	OnContinue func()      // "继续"
	OnRestart  func()      // "重新开始"
	OnExit     func()      // "退出"
}

// NewPauseMenuModule 创建暂停菜单模块
//
// 参数:
//   - windowWidth, windowHeight: 逻辑屏幕尺寸（用于居中面板）
//   - callbacks: 回调集合
func NewPauseMenuModule(windowWidth, windowHeight int, callbacks PauseMenuCallbacks) *PauseMenuModule {
	return &PauseMenuModule{
		isPaused:     callbacks.IsPaused,
		onContinue:   callbacks.OnContinue,
		onRestart:    callbacks.OnRestart,
		onExit:       callbacks.OnExit,
		face:         text.NewGoXFace(basicfont.Face7x13),
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
	}
}

// IsActive 暂停菜单是否显示
func (m *PauseMenuModule) IsActive() bool {
	return m.isPaused != nil && m.isPaused()
}

// Selected 当前选中的选项
func (m *PauseMenuModule) Selected() int {
	return m.selected
}

// Update 处理暂停菜单输入
// 只在菜单激活时响应按键
func (m *PauseMenuModule) Update() {
	if !m.syncState() {
		return
	}

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		m.MoveSelection(-1)
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		m.MoveSelection(1)
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter), inpututil.IsKeyJustPressed(ebiten.KeySpace):
		m.Activate()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		m.selected = PauseOptionContinue
		m.Activate()
	}
}

// syncState 检测暂停状态变化，重新激活时回到"继续"
func (m *PauseMenuModule) syncState() bool {
	active := m.IsActive()
	if active != m.wasActive {
		if active {
			m.selected = PauseOptionContinue
			log.Printf("[PauseMenuModule] Shown")
		} else {
			log.Printf("[PauseMenuModule] Hidden")
		}
		m.wasActive = active
	}
	return active
}

// MoveSelection 循环移动选中项
func (m *PauseMenuModule) MoveSelection(delta int) {
	m.selected = ((m.selected+delta)%pauseOptionCount + pauseOptionCount) % pauseOptionCount
}

// Activate 执行当前选中项的回调
func (m *PauseMenuModule) Activate() {
	var cb func()
	switch m.selected {
	case PauseOptionContinue:
		cb = m.onContinue
	case PauseOptionRestart:
		cb = m.onRestart
	case PauseOptionExit:
		cb = m.onExit
	}
	log.Printf("[PauseMenuModule] %s selected", pauseOptionLabels[m.selected])
	if cb != nil {
		cb()
	}
}

// Draw 绘制暂停覆盖层
func (m *PauseMenuModule) Draw(screen *ebiten.Image) {
	if !m.IsActive() {
		return
	}

	w, h := float32(m.windowWidth), float32(m.windowHeight)
	vector.DrawFilledRect(screen, 0, 0, w, h, color.RGBA{0, 0, 0, pauseOverlayAlpha}, false)

	px := (w - pausePanelWidth) / 2
	py := (h - pausePanelHeight) / 2
	vector.DrawFilledRect(screen, px, py, pausePanelWidth, pausePanelHeight, color.RGBA{30, 24, 48, 240}, false)
	vector.StrokeRect(screen, px, py, pausePanelWidth, pausePanelHeight, 2, color.RGBA{140, 120, 200, 255}, false)

	m.drawCentered(screen, "PAUSED", float64(py)+28, color.White)
	for i, label := range pauseOptionLabels {
		clr := color.RGBA{170, 170, 170, 255}
		if i == m.selected {
			label = "> " + label + " <"
			clr = color.RGBA{255, 220, 90, 255}
		}
		m.drawCentered(screen, label, float64(py)+80+float64(i*pauseLineHeight), clr)
	}
}

func (m *PauseMenuModule) drawCentered(screen *ebiten.Image, s string, y float64, clr color.Color) {
	op := &text.DrawOptions{}
	op.GeoM.Translate((float64(m.windowWidth)-text.Advance(s, m.face))/2, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, s, m.face, op)
}
