package scenes

import (
	"image/color"
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
)

// TestSplitLabel 测试单词标签拆分
func TestSplitLabel(t *testing.T) {
	tests := []struct {
		name      string
		word      string
		progress  string
		wantTyped string
		wantRest  string
	}{
		{"nothing typed", "fire", "", "", "fire"},
		{"partial", "fire", "fi", "fi", "re"},
		{"complete", "fire", "fire", "fire", ""},
		{"not a prefix", "fire", "fo", "", "fire"},
		{"longer than word", "for", "fore", "", "for"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			typed, rest := splitLabel(tt.word, tt.progress)
			if typed != tt.wantTyped || rest != tt.wantRest {
				t.Errorf("splitLabel(%q, %q) = (%q, %q), want (%q, %q)",
					tt.word, tt.progress, typed, rest, tt.wantTyped, tt.wantRest)
			}
		})
	}
}

// TestBackgroundColor 测试背景色的范围和回退
func TestBackgroundColor(t *testing.T) {
	first := backgroundColor(1)
	for _, id := range []int{0, -3, backgroundPool + 1} {
		if got := backgroundColor(id); got != first {
			t.Errorf("backgroundColor(%d) = %v, want fallback %v", id, got, first)
		}
	}

	seen := make(map[color.RGBA]int)
	for id := 1; id <= backgroundPool; id++ {
		c := backgroundColor(id)
		if c.A != 255 {
			t.Errorf("backgroundColor(%d) alpha = %d, want opaque", id, c.A)
		}
		if prev, dup := seen[c]; dup {
			t.Errorf("backgroundColor(%d) duplicates background %d", id, prev)
		}
		seen[c] = id
	}
}

// TestEnemyColorStable 测试同一类型总是得到同一颜色
func TestEnemyColorStable(t *testing.T) {
	for _, name := range []string{"orc_1", "orc_2", "skeleton_3", ""} {
		if enemyColor(name) != enemyColor(name) {
			t.Errorf("enemyColor(%q) not stable", name)
		}
		if enemyColor(name).A != 255 {
			t.Errorf("enemyColor(%q) not opaque", name)
		}
	}
}

// TestDyingAlpha 测试死亡淡出
func TestDyingAlpha(t *testing.T) {
	tests := []struct {
		name   string
		frame  int
		frames int
		want   uint8
	}{
		{"first frame opaque", 0, 15, 255},
		{"single frame clip", 0, 1, 255},
		{"no metadata", 5, 0, 255},
		{"negative frame clamps", -2, 15, 255},
		{"past last frame clamps", 40, 15, 17},
		{"midway", 5, 10, 128},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := dyingAlpha(tt.frame, tt.frames); got != tt.want {
				t.Errorf("dyingAlpha(%d, %d) = %d, want %d", tt.frame, tt.frames, got, tt.want)
			}
		})
	}
}

// TestFadeKeepsPremultiplied 测试淡出后颜色分量不超过 alpha
func TestFadeKeepsPremultiplied(t *testing.T) {
	c := fade(color.RGBA{255, 200, 100, 255}, 128)
	if c.A != 128 {
		t.Fatalf("alpha = %d, want 128", c.A)
	}
	if c.R > c.A || c.G > c.A || c.B > c.A {
		t.Errorf("fade produced non-premultiplied color %v", c)
	}
}

// TestPlayerColorDistinct 测试每个玩家状态颜色不同
func TestPlayerColorDistinct(t *testing.T) {
	states := []components.PlayerState{
		components.PlayerIdle,
		components.PlayerWalking,
		components.PlayerHurt,
		components.PlayerSlashing,
		components.PlayerDying,
	}
	seen := make(map[color.RGBA]components.PlayerState)
	for _, s := range states {
		c := playerColor(s)
		if prev, dup := seen[c]; dup {
			t.Errorf("playerColor(%v) duplicates %v", s, prev)
		}
		seen[c] = s
	}
}

// TestHSVToRGB 测试色相换算的关键点
func TestHSVToRGB(t *testing.T) {
	tests := []struct {
		h    float64
		want color.RGBA
	}{
		{0, color.RGBA{255, 0, 0, 255}},
		{120, color.RGBA{0, 255, 0, 255}},
		{240, color.RGBA{0, 0, 255, 255}},
		{360, color.RGBA{255, 0, 0, 255}},
		{-120, color.RGBA{0, 0, 255, 255}},
	}
	for _, tt := range tests {
		if got := hsvToRGB(tt.h, 1, 1); got != tt.want {
			t.Errorf("hsvToRGB(%v, 1, 1) = %v, want %v", tt.h, got, tt.want)
		}
	}
}
