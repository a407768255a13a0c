package config

import "testing"

// TestResolveLevel_Campaign 测试战役模式的关卡公式
func TestResolveLevel_Campaign(t *testing.T) {
	cfg := loadTestConfig(t)
	session := DefaultSessionConfig()

	tests := []struct {
		level     int
		wantQuota int
		wantDelay float64
		wantSpeed float64
	}{
		{1, 3, 5800, 35},
		{2, 8, 5600, 40},
		{10, 48, 4000, 80},
		{24, 118, 1200, 150},
	}

	for _, tt := range tests {
		p, err := ResolveLevel(cfg, session, tt.level)
		if err != nil {
			t.Fatalf("level %d: unexpected error %v", tt.level, err)
		}
		if p.Quota != tt.wantQuota {
			t.Errorf("level %d: expected quota %d, got %d", tt.level, tt.wantQuota, p.Quota)
		}
		if p.SpawnDelayMs != tt.wantDelay {
			t.Errorf("level %d: expected delay %v, got %v", tt.level, tt.wantDelay, p.SpawnDelayMs)
		}
		if p.EnemySpeed != tt.wantSpeed {
			t.Errorf("level %d: expected speed %v, got %v", tt.level, tt.wantSpeed, p.EnemySpeed)
		}
		if p.KillReward != 100 || p.MaxOnField != 5 || !p.CanLose {
			t.Errorf("level %d: unexpected campaign params %+v", tt.level, p)
		}
	}
}

// TestResolveLevel_DelayFloor 测试生成间隔下限
func TestResolveLevel_DelayFloor(t *testing.T) {
	cfg := loadTestConfig(t)
	cfg.Campaign.LastLevel = 40

	p, err := ResolveLevel(cfg, DefaultSessionConfig(), 30)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.SpawnDelayMs != 1000 {
		t.Errorf("Expected delay floored at 1000, got %v", p.SpawnDelayMs)
	}

	manual := DefaultSessionConfig()
	manual.Mode = ModeManual
	manual.ManualSpawnIntervalMs = 200
	p, err = ResolveLevel(cfg, manual, 1)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.SpawnDelayMs != 1000 {
		t.Errorf("Expected manual delay floored at 1000, got %v", p.SpawnDelayMs)
	}
}

// TestResolveLevel_Manual 测试手动模式覆盖速度和间隔
func TestResolveLevel_Manual(t *testing.T) {
	cfg := loadTestConfig(t)
	session := DefaultSessionConfig()
	session.Mode = ModeManual
	session.ManualSpeed = 140
	session.ManualSpawnIntervalMs = 2500

	p, err := ResolveLevel(cfg, session, 5)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if p.EnemySpeed != 140 || p.SpawnDelayMs != 2500 {
		t.Errorf("Expected manual speed/delay 140/2500, got %v/%v", p.EnemySpeed, p.SpawnDelayMs)
	}
	if p.Quota != 23 {
		t.Errorf("Manual mode keeps the campaign quota, expected 23, got %d", p.Quota)
	}
}

// TestResolveLevel_Practice 测试练习模式关卡表
func TestResolveLevel_Practice(t *testing.T) {
	cfg := loadTestConfig(t)
	session := DefaultSessionConfig()
	session.Variant = VariantPractice

	wantQuota := []int{5, 8, 10, 12, 15}
	wantDelay := []float64{4000, 3500, 3000, 2500, 2000}

	for level := 1; level <= 5; level++ {
		p, err := ResolveLevel(cfg, session, level)
		if err != nil {
			t.Fatalf("level %d: unexpected error %v", level, err)
		}
		if p.Quota != wantQuota[level-1] || p.SpawnDelayMs != wantDelay[level-1] {
			t.Errorf("level %d: unexpected quota/delay %d/%v", level, p.Quota, p.SpawnDelayMs)
		}
		if p.KillReward != 100*level {
			t.Errorf("level %d: expected reward %d, got %d", level, 100*level, p.KillReward)
		}
		if p.MaxOnField != 3 || p.CanLose {
			t.Errorf("level %d: practice should cap at 3 and never lose", level)
		}
		if p.IsLast() != (level == 5) {
			t.Errorf("level %d: IsLast() = %v", level, p.IsLast())
		}
	}

	if _, err := ResolveLevel(cfg, session, 6); err == nil {
		t.Error("Expected error for practice level 6")
	}
}
