package systems

import (
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

// TestPhysicsSystemIntegration 测试速度积分
func TestPhysicsSystemIntegration(t *testing.T) {
	cfg := loadTestConfig(t)
	b := newTestBattle(t, cfg, campaignSession())

	_, pos, _ := b.ctx.Player()
	startX := pos.X

	b.physics.Update(0.5)

	want := startX + cfg.Player.RunSpeed*0.5
	if pos.X != want {
		t.Errorf("Expected player x=%v after 0.5s, got %v", want, pos.X)
	}
}

// TestPhysicsSystemFrozen 测试冻结后不再移动且速度清零
func TestPhysicsSystemFrozen(t *testing.T) {
	cfg := loadTestConfig(t)
	b := newTestBattle(t, cfg, campaignSession())
	b.activate(t)

	id := b.addEnemy(t, "fire", 900, 50)
	pos, _ := ecs.GetComponent[*components.PositionComponent](b.ctx.EM, id)

	b.ctx.Freeze()
	b.physics.Update(1)

	if pos.X != 900 {
		t.Errorf("Frozen enemy moved to %v", pos.X)
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](b.ctx.EM, id)
	if vel.VX != 0 {
		t.Errorf("Expected velocity cleared on freeze, got %v", vel.VX)
	}
}

// TestCheckAABBCollision 测试中心对齐碰撞盒检测
func TestCheckAABBCollision(t *testing.T) {
	box := &components.CollisionComponent{Width: 40, Height: 40}
	enemyBox := &components.CollisionComponent{Width: 80, Height: 100}

	tests := []struct {
		name   string
		x1, y1 float64
		x2, y2 float64
		want   bool
	}{
		{"same center", 100, 100, 100, 100, true},
		{"overlap horizontally", 100, 400, 159, 400, true},
		{"touching edges do not collide", 100, 400, 160, 400, false},
		{"far apart", 100, 400, 500, 400, false},
		{"different lanes overlap vertically", 100, 350, 100, 400, true},
		{"vertical gap", 100, 300, 100, 400, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checkAABBCollision(
				&components.PositionComponent{X: tt.x1, Y: tt.y1}, box,
				&components.PositionComponent{X: tt.x2, Y: tt.y2}, enemyBox,
			)
			if got != tt.want {
				t.Errorf("checkAABBCollision() = %v, want %v", got, tt.want)
			}
		})
	}
}
