package modules

import "testing"

// TestPauseMenuModule_IsActive 测试 IsActive 跟随会话暂停状态
func TestPauseMenuModule_IsActive(t *testing.T) {
	paused := false
	module := &PauseMenuModule{isPaused: func() bool { return paused }}

	if module.IsActive() {
		t.Error("Expected IsActive() to return false when not paused")
	}

	paused = true
	if !module.IsActive() {
		t.Error("Expected IsActive() to return true when paused")
	}

	paused = false
	if module.IsActive() {
		t.Error("Expected IsActive() to return false after resume")
	}

	empty := &PauseMenuModule{}
	if empty.IsActive() {
		t.Error("Expected IsActive() to return false without IsPaused callback")
	}
}

// TestPauseMenuModule_MoveSelection 测试选项循环移动
func TestPauseMenuModule_MoveSelection(t *testing.T) {
	tests := []struct {
		name  string
		start int
		delta int
		want  int
	}{
		{"down from continue", PauseOptionContinue, 1, PauseOptionRestart},
		{"down from exit wraps", PauseOptionExit, 1, PauseOptionContinue},
		{"up from continue wraps", PauseOptionContinue, -1, PauseOptionExit},
		{"up from restart", PauseOptionRestart, -1, PauseOptionContinue},
		{"full cycle", PauseOptionRestart, pauseOptionCount, PauseOptionRestart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			module := &PauseMenuModule{selected: tt.start}
			module.MoveSelection(tt.delta)
			if module.Selected() != tt.want {
				t.Errorf("Selected() = %d, want %d", module.Selected(), tt.want)
			}
		})
	}
}

// TestPauseMenuModule_Activate 测试确认选项触发对应回调
func TestPauseMenuModule_Activate(t *testing.T) {
	var got []string
	module := &PauseMenuModule{
		onContinue: func() { got = append(got, "continue") },
		onRestart:  func() { got = append(got, "restart") },
		onExit:     func() { got = append(got, "exit") },
	}

	module.Activate()
	module.MoveSelection(1)
	module.Activate()
	module.MoveSelection(1)
	module.Activate()

	want := []string{"continue", "restart", "exit"}
	if len(got) != len(want) {
		t.Fatalf("callbacks = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("callback[%d] = %s, want %s", i, got[i], want[i])
		}
	}

	// 缺少回调时不应 panic
	(&PauseMenuModule{selected: PauseOptionExit}).Activate()
}

// TestPauseMenuModule_SyncStateResetsSelection 测试重新暂停时回到"继续"
func TestPauseMenuModule_SyncStateResetsSelection(t *testing.T) {
	paused := true
	module := &PauseMenuModule{isPaused: func() bool { return paused }}

	if !module.syncState() {
		t.Fatal("Expected syncState() to report active while paused")
	}
	module.MoveSelection(2)

	paused = false
	if module.syncState() {
		t.Fatal("Expected syncState() to report inactive after resume")
	}
	if module.Selected() != PauseOptionExit {
		t.Errorf("selection changed while hidden: %d", module.Selected())
	}

	paused = true
	module.syncState()
	if module.Selected() != PauseOptionContinue {
		t.Errorf("Selected() = %d after re-pause, want %d", module.Selected(), PauseOptionContinue)
	}
}
