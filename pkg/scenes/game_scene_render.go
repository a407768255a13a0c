package scenes

import (
	"fmt"
	"image/color"
	"math"
	"strings"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/encounter"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 渲染尺寸
const (
	playerWidth    = 60
	playerHeight   = 100
	labelOffsetY   = 18 // 单词标签位于敌人上方
	hudMargin      = 16
	hudLineHeight  = 18
	healthPipSize  = 14
	healthPipSpace = 6
	backgroundPool = 24
)

var (
	colorTyped    = color.RGBA{255, 220, 90, 255}
	colorUntyped  = color.RGBA{240, 240, 240, 255}
	colorHUD      = color.RGBA{230, 230, 230, 255}
	colorHealth   = color.RGBA{220, 60, 70, 255}
	colorLost     = color.RGBA{70, 40, 45, 255}
	colorTarget   = color.RGBA{255, 220, 90, 255}
	colorFireball = color.RGBA{255, 140, 40, 255}
	colorGround   = color.RGBA{0, 0, 0, 60}
)

// Draw 渲染战场、HUD 和覆盖层
func (s *GameScene) Draw(screen *ebiten.Image) {
	snap := s.encounter.Snapshot()
	field := s.cfg.GameConfig.Field

	screen.Fill(backgroundColor(snap.Background))
	for _, y := range field.Lanes {
		h := float32(s.cfg.GameConfig.Enemy.Height)
		vector.DrawFilledRect(screen, 0, float32(y)+h/2-4, float32(field.Width), 8, colorGround, false)
	}

	s.drawPlayer(screen, snap.Player)
	for _, e := range snap.Enemies {
		s.drawEnemy(screen, e, e.ID == snap.ActiveTarget)
	}
	for _, p := range snap.Projectiles {
		r := float32(s.cfg.GameConfig.Projectile.Width / 2)
		vector.DrawFilledCircle(screen, float32(p.X), float32(p.Y), r, colorFireball, true)
	}

	s.drawHUD(screen, snap)
	if s.bannerTime > 0 && s.banner != "" {
		s.drawCentered(screen, s.banner, field.Height/3, colorHUD)
	}

	s.pauseMenu.Draw(screen)
	if s.result != nil {
		s.drawResult(screen)
	}
}

func (s *GameScene) drawPlayer(screen *ebiten.Image, p encounter.PlayerView) {
	x := float32(p.X) - playerWidth/2
	y := float32(p.Y) - playerHeight/2
	vector.DrawFilledRect(screen, x, y, playerWidth, playerHeight, playerColor(p.State), false)
	if p.State == components.PlayerSlashing {
		vector.StrokeLine(screen, x+playerWidth, y+20, x+playerWidth+30, y+playerHeight/2, 3, colorFireball, true)
	}
}

func (s *GameScene) drawEnemy(screen *ebiten.Image, e encounter.EnemyView, active bool) {
	w := float32(s.cfg.GameConfig.Enemy.Width)
	h := float32(s.cfg.GameConfig.Enemy.Height)
	x := float32(e.X) - w/2
	y := float32(e.Y) - h/2

	clr := enemyColor(e.TypeName)
	if e.State == components.EnemyDying {
		die := s.cfg.GameConfig.Animations.Enemy["die"]
		clr = fade(clr, dyingAlpha(e.Frame, die.Frames))
	}
	vector.DrawFilledRect(screen, x, y, w, h, clr, false)
	if e.State == components.EnemySlashing {
		vector.StrokeRect(screen, x, y, w, h, 2, colorHealth, false)
	}

	if e.Hidden {
		return
	}
	typed, rest := splitLabel(e.Word, e.Progress)
	width := text.Advance(e.Word, s.face)
	lx := e.X - width/2
	ly := e.Y - float64(h)/2 - labelOffsetY
	s.drawText(screen, typed, lx, ly, colorTyped)
	s.drawText(screen, rest, lx+text.Advance(typed, s.face), ly, colorUntyped)
	if active {
		vector.StrokeLine(screen, float32(lx), float32(ly)+15, float32(lx+width), float32(ly)+15, 2, colorTarget, false)
	}
}

func (s *GameScene) drawHUD(screen *ebiten.Image, snap encounter.Snapshot) {
	lines := []string{
		fmt.Sprintf("LEVEL %d", snap.Level),
		fmt.Sprintf("SCORE %d", snap.Score),
		fmt.Sprintf("ENEMIES %d/%d", snap.Spawned, snap.Required),
	}
	for i, line := range lines {
		s.drawText(screen, line, hudMargin, hudMargin+float64(i*hudLineHeight), colorHUD)
	}

	maxHealth := s.cfg.GameConfig.Player.Health
	py := float32(hudMargin + len(lines)*hudLineHeight + 4)
	for i := 0; i < maxHealth; i++ {
		clr := colorLost
		if i < snap.Health {
			clr = colorHealth
		}
		px := float32(hudMargin + i*(healthPipSize+healthPipSpace))
		vector.DrawFilledRect(screen, px, py, healthPipSize, healthPipSize, clr, false)
	}

	phase := strings.ToUpper(snap.Phase.String())
	s.drawText(screen, phase, s.cfg.GameConfig.Field.Width-hudMargin-text.Advance(phase, s.face), hudMargin, colorHUD)
}

func (s *GameScene) drawResult(screen *ebiten.Image) {
	field := s.cfg.GameConfig.Field
	vector.DrawFilledRect(screen, 0, 0, float32(field.Width), float32(field.Height), color.RGBA{0, 0, 0, 180}, false)

	title := "GAME OVER"
	if s.result.Victory {
		title = "VICTORY"
	}
	cy := field.Height / 2
	s.drawCentered(screen, title, cy-40, colorTyped)
	s.drawCentered(screen, fmt.Sprintf("SCORE %d   LEVEL %d", s.result.Score, s.result.Level), cy, colorHUD)
	s.drawCentered(screen, "ENTER: play again   ESC: quit", cy+40, colorHUD)
}

func (s *GameScene) drawCentered(screen *ebiten.Image, str string, y float64, clr color.Color) {
	x := (s.cfg.GameConfig.Field.Width - text.Advance(str, s.face)) / 2
	s.drawText(screen, str, x, y, clr)
}

func (s *GameScene) drawText(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	if str == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	text.Draw(screen, str, s.face, op)
}

// splitLabel 把单词拆成已输入和未输入两段
// progress 不是 word 的前缀时视为未输入
func splitLabel(word, progress string) (typed, rest string) {
	if !strings.HasPrefix(word, progress) {
		return "", word
	}
	return progress, word[len(progress):]
}

// backgroundColor 背景 ID（1..24）对应的底色，越界时使用背景 1
func backgroundColor(id int) color.RGBA {
	if id < 1 || id > backgroundPool {
		id = 1
	}
	hue := float64(id-1) * 360 / backgroundPool
	return hsvToRGB(hue, 0.45, 0.3)
}

// enemyColor 按外观类型名生成稳定的颜色
func enemyColor(typeName string) color.RGBA {
	var sum uint32
	for _, b := range []byte(typeName) {
		sum = sum*31 + uint32(b)
	}
	return hsvToRGB(float64(sum%360), 0.6, 0.8)
}

// playerColor 玩家状态对应的颜色
func playerColor(state components.PlayerState) color.RGBA {
	switch state {
	case components.PlayerHurt:
		return color.RGBA{230, 90, 90, 255}
	case components.PlayerSlashing:
		return color.RGBA{120, 170, 255, 255}
	case components.PlayerDying:
		return color.RGBA{90, 90, 90, 255}
	case components.PlayerWalking:
		return color.RGBA{110, 200, 150, 255}
	default:
		return color.RGBA{90, 180, 230, 255}
	}
}

// dyingAlpha 死亡动画期间逐帧淡出
func dyingAlpha(frame, frames int) uint8 {
	if frames <= 1 {
		return 255
	}
	if frame < 0 {
		frame = 0
	}
	if frame >= frames {
		frame = frames - 1
	}
	remaining := 1 - float64(frame)/float64(frames)
	return uint8(math.Round(255 * remaining))
}

// fade 按 alpha 缩放颜色（color.RGBA 是预乘 alpha 的）
func fade(c color.RGBA, alpha uint8) color.RGBA {
	scale := func(v uint8) uint8 { return uint8(uint32(v) * uint32(alpha) / 255) }
	return color.RGBA{R: scale(c.R), G: scale(c.G), B: scale(c.B), A: alpha}
}

// hsvToRGB h ∈ [0,360)，s、v ∈ [0,1]
func hsvToRGB(h, s, v float64) color.RGBA {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return color.RGBA{
		R: uint8(math.Round((r + m) * 255)),
		G: uint8(math.Round((g + m) * 255)),
		B: uint8(math.Round((b + m) * 255)),
		A: 255,
	}
}
