package main

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/encounter"
	"github.com/gonewx/typeabyss/pkg/game"
)

// 终端布局：第 0 行 HUD，最后一行帮助，中间是战场
const (
	hudRows    = 2
	footerRows = 1
)

var (
	styleHUD       = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleTyped     = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleUntyped   = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleTarget    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Underline(true)
	stylePlayer    = tcell.StyleDefault.Foreground(tcell.ColorAqua).Bold(true)
	styleHurt      = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	styleEnemy     = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleSlashing  = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleDying     = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleFireball  = tcell.StyleDefault.Foreground(tcell.ColorOrange).Bold(true)
	styleHealth    = tcell.StyleDefault.Foreground(tcell.ColorRed)
	styleFooter    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleOverlay   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow).Bold(true)
	healthGlyph    = '♥'
	lostGlyph      = '♡'
	footerHelpText = "type the words | Esc pause | Backspace cancel target | Ctrl-C quit"
)

// fieldMapper 把战场坐标映射到终端单元格
type fieldMapper struct {
	width      float64
	top        float64 // 映射区间的上边界（战场坐标）
	bottom     float64
	cols, rows int // 战场区域的列数和行数
}

// newFieldMapper 战场纵向只映射车道附近的区域，避免大片空行
func newFieldMapper(cfg *config.GameConfig, cols, rows int) fieldMapper {
	top, bottom := cfg.Field.Lanes[0], cfg.Field.Lanes[0]
	for _, y := range cfg.Field.Lanes {
		top = min(top, y)
		bottom = max(bottom, y)
	}
	margin := cfg.Enemy.Height
	return fieldMapper{
		width:  cfg.Field.Width,
		top:    top - margin,
		bottom: bottom + margin,
		cols:   max(cols, 1),
		rows:   max(rows-hudRows-footerRows, 1),
	}
}

// col 返回 X 坐标对应的列，场外返回 ok=false
func (m fieldMapper) col(x float64) (int, bool) {
	if x < 0 || x >= m.width {
		return 0, false
	}
	return int(x / m.width * float64(m.cols)), true
}

// row 返回 Y 坐标对应的行（包含 HUD 偏移），超出范围时截断
func (m fieldMapper) row(y float64) int {
	span := m.bottom - m.top
	r := 0
	if span > 0 {
		r = int((y - m.top) / span * float64(m.rows-1))
	}
	r = min(max(r, 0), m.rows-1)
	return hudRows + r
}

// render 绘制一帧
func render(screen tcell.Screen, cfg *config.GameConfig, snap encounter.Snapshot, result *game.GameOver) {
	screen.Clear()
	cols, rows := screen.Size()
	m := newFieldMapper(cfg, cols, rows)

	drawHUD(screen, cfg, snap, cols)

	if c, ok := m.col(snap.Player.X); ok {
		style := stylePlayer
		if snap.Player.State == components.PlayerHurt || snap.Player.State == components.PlayerDying {
			style = styleHurt
		}
		screen.SetContent(c, m.row(snap.Player.Y), playerGlyph(snap.Player.State), nil, style)
	}

	for _, e := range snap.Enemies {
		c, ok := m.col(e.X)
		if !ok {
			continue
		}
		r := m.row(e.Y)
		screen.SetContent(c, r, enemyGlyph(e.State), nil, enemyStyle(e.State))
		if e.Hidden || r-1 < hudRows {
			continue
		}
		typed, rest := splitWord(e.Word, e.Progress)
		x := c - len(e.Word)/2
		restStyle := styleUntyped
		if e.ID == snap.ActiveTarget {
			restStyle = styleTarget
		}
		x = drawString(screen, x, r-1, typed, styleTyped)
		drawString(screen, x, r-1, rest, restStyle)
	}

	for _, p := range snap.Projectiles {
		if c, ok := m.col(p.X); ok {
			screen.SetContent(c, m.row(p.Y), '*', nil, styleFireball)
		}
	}

	drawString(screen, 0, rows-1, footerHelpText, styleFooter)

	switch {
	case result != nil:
		title := "GAME OVER"
		if result.Victory {
			title = "VICTORY"
		}
		drawCentered(screen, cols, rows/2, fmt.Sprintf(" %s  score %d  level %d  |  Enter: play again  q: quit ", title, result.Score, result.Level))
	case snap.Paused:
		drawCentered(screen, cols, rows/2, " PAUSED  |  Esc: resume  q: quit ")
	}

	screen.Show()
}

func drawHUD(screen tcell.Screen, cfg *config.GameConfig, snap encounter.Snapshot, cols int) {
	x := drawString(screen, 0, 0, fmt.Sprintf("LEVEL %d  SCORE %d  ", snap.Level, snap.Score), styleHUD)
	for i := 0; i < cfg.Player.Health; i++ {
		glyph := lostGlyph
		if i < snap.Health {
			glyph = healthGlyph
		}
		screen.SetContent(x, 0, glyph, nil, styleHealth)
		x++
	}
	drawString(screen, x, 0, fmt.Sprintf("  ENEMIES %d/%d", snap.Spawned, snap.Required), styleHUD)

	phase := strings.ToUpper(snap.Phase.String())
	drawString(screen, cols-len(phase), 0, phase, styleHUD)
}

// drawString 绘制 ASCII 字符串，返回结束列
func drawString(screen tcell.Screen, x, y int, s string, style tcell.Style) int {
	for _, r := range s {
		screen.SetContent(x, y, r, nil, style)
		x++
	}
	return x
}

func drawCentered(screen tcell.Screen, cols, y int, s string) {
	drawString(screen, max((cols-len(s))/2, 0), y, s, styleOverlay)
}

// splitWord 把单词拆成已输入和未输入两段
func splitWord(word, progress string) (typed, rest string) {
	if !strings.HasPrefix(word, progress) {
		return "", word
	}
	return progress, word[len(progress):]
}

func playerGlyph(state components.PlayerState) rune {
	switch state {
	case components.PlayerDying:
		return 'X'
	case components.PlayerSlashing:
		return '%'
	default:
		return '@'
	}
}

func enemyGlyph(state components.EnemyState) rune {
	switch state {
	case components.EnemySlashing:
		return 'M'
	case components.EnemyDying:
		return 'x'
	default:
		return 'E'
	}
}

func enemyStyle(state components.EnemyState) tcell.Style {
	switch state {
	case components.EnemySlashing:
		return styleSlashing
	case components.EnemyDying:
		return styleDying
	default:
		return styleEnemy
	}
}
