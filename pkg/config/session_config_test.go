package config

import "testing"

// TestSessionConfig_Validate 测试会话配置校验
func TestSessionConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SessionConfig)
		wantErr bool
	}{
		{"default is valid", func(s *SessionConfig) {}, false},
		{"second character", func(s *SessionConfig) { s.Character = Character2 }, false},
		{"unknown character", func(s *SessionConfig) { s.Character = "character_3" }, true},
		{"unknown mode", func(s *SessionConfig) { s.Mode = "hard" }, true},
		{"manual with zero speed", func(s *SessionConfig) {
			s.Mode = ModeManual
			s.ManualSpeed = 0
		}, true},
		{"manual with negative interval", func(s *SessionConfig) {
			s.Mode = ModeManual
			s.ManualSpawnIntervalMs = -1
		}, true},
		{"gradual ignores manual values", func(s *SessionConfig) { s.ManualSpeed = 0 }, false},
		{"practice variant", func(s *SessionConfig) { s.Variant = VariantPractice }, false},
		{"unknown variant", func(s *SessionConfig) { s.Variant = "endless" }, true},
		{"start level zero", func(s *SessionConfig) { s.StartLevel = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := DefaultSessionConfig()
			tt.mutate(&s)
			err := s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
