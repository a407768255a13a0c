package entities

import (
	"testing"

	"github.com/gonewx/typeabyss/pkg/components"
	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/gonewx/typeabyss/pkg/ecs"
)

func loadTestConfig(t *testing.T) *config.GameConfig {
	t.Helper()
	cfg, err := config.LoadGameConfig("../../data/game.yaml")
	if err != nil {
		t.Fatalf("Failed to load game config: %v", err)
	}
	return cfg
}

// TestNewPlayer 测试玩家实体创建
func TestNewPlayer(t *testing.T) {
	cfg := loadTestConfig(t)
	em := ecs.NewEntityManager()

	id, err := NewPlayer(em, cfg, config.Character1, 3)
	if err != nil {
		t.Fatalf("NewPlayer() error: %v", err)
	}

	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok || pos.X != -150 || pos.Y != 400 {
		t.Errorf("Expected player at (-150, 400), got %+v", pos)
	}
	vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
	if vel.VX != 300 {
		t.Errorf("Expected run speed 300, got %v", vel.VX)
	}
	player, _ := ecs.GetComponent[*components.PlayerComponent](em, id)
	if player.State != components.PlayerWalking || player.Health != 3 {
		t.Errorf("Unexpected player component %+v", player)
	}
	anim, _ := ecs.GetComponent[*components.AnimationComponent](em, id)
	if anim.Clip != "walk" || anim.FrameCount != 24 || !anim.IsLooping {
		t.Errorf("Unexpected player animation %+v", anim)
	}

	if _, err := NewPlayer(em, cfg, "character_9", 3); err == nil {
		t.Error("Expected error for unknown character")
	}
}

// TestNewEnemy 测试敌人实体创建
func TestNewEnemy(t *testing.T) {
	cfg := loadTestConfig(t)
	em := ecs.NewEntityManager()

	tests := []struct {
		name    string
		spec    EnemySpec
		wantY   float64
		wantErr bool
	}{
		{"top lane", EnemySpec{Word: "fire", TypeName: "orc_1", Lane: 0, Speed: 35, Seq: 1}, 350, false},
		{"bottom lane", EnemySpec{Word: "ice", TypeName: "golem_2", Lane: 2, Speed: 35, Seq: 2}, 450, false},
		{"empty word", EnemySpec{Lane: 0}, 0, true},
		{"lane out of range", EnemySpec{Word: "fire", Lane: 3}, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := NewEnemy(em, cfg, tt.spec)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewEnemy() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}

			pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
			if pos.X != 1400 || pos.Y != tt.wantY {
				t.Errorf("Expected spawn at (1400, %v), got (%v, %v)", tt.wantY, pos.X, pos.Y)
			}
			vel, _ := ecs.GetComponent[*components.VelocityComponent](em, id)
			if vel.VX != -tt.spec.Speed {
				t.Errorf("Expected VX %v, got %v", -tt.spec.Speed, vel.VX)
			}
			enemy, _ := ecs.GetComponent[*components.EnemyComponent](em, id)
			if enemy.State != components.EnemyApproaching || enemy.Word != tt.spec.Word || enemy.TypedProgress != "" {
				t.Errorf("Unexpected enemy component %+v", enemy)
			}
			label, _ := ecs.GetComponent[*components.LabelComponent](em, id)
			if label.Text != tt.spec.Word || label.Hidden {
				t.Errorf("Unexpected label %+v", label)
			}
		})
	}
}

// TestNewProjectile 测试魔法弹实体创建
func TestNewProjectile(t *testing.T) {
	cfg := loadTestConfig(t)
	em := ecs.NewEntityManager()

	id, err := NewProjectile(em, cfg, 150, 400, 7)
	if err != nil {
		t.Fatalf("NewProjectile() error: %v", err)
	}

	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 230 || pos.Y != 400 {
		t.Errorf("Expected projectile at (230, 400), got (%v, %v)", pos.X, pos.Y)
	}
	proj, _ := ecs.GetComponent[*components.ProjectileComponent](em, id)
	if proj.Target != 7 || proj.Speed != 600 {
		t.Errorf("Unexpected projectile component %+v", proj)
	}

	if _, err := NewProjectile(em, cfg, 0, 0, 0); err == nil {
		t.Error("Expected error for empty target")
	}
}

// TestSetClip 测试动画片段切换
func TestSetClip(t *testing.T) {
	cfg := loadTestConfig(t)
	anim := &components.AnimationComponent{Clip: "walk", CurrentFrame: 5, FrameCounter: 0.3}

	if !SetClip(anim, cfg.Animations.Enemy, "die") {
		t.Fatal("Expected die clip to exist")
	}
	if anim.Clip != "die" || anim.CurrentFrame != 0 || anim.FrameCounter != 0 || anim.IsLooping {
		t.Errorf("Unexpected animation after SetClip: %+v", anim)
	}

	if SetClip(anim, cfg.Animations.Enemy, "fly") {
		t.Error("Unknown clip should return false")
	}
	if anim.Clip != "die" {
		t.Error("Unknown clip should keep the current clip")
	}
}
