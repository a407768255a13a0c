package config

import "fmt"

// 难度模式
const (
	ModeGradual = "gradual" // 生成间隔和速度随关卡递进
	ModeManual  = "manual"  // 使用玩家设定的固定速度和间隔
)

// 玩法
const (
	VariantCampaign = "campaign" // 战役：按背景数推进，生命耗尽即失败
	VariantPractice = "practice" // 练习：5 关固定参数表，不会失败
)

// 可选角色
const (
	Character1 = "character_1"
	Character2 = "character_2"
)

// SessionConfig 会话启动配置
// 由宿主（启动器设置、命令行参数）提供
type SessionConfig struct {
	Character             string  `yaml:"character"`
	MusicEnabled          bool    `yaml:"musicEnabled"`
	Mode                  string  `yaml:"mode"`
	ManualSpeed           float64 `yaml:"manualSpeed"`           // 手动模式敌人速度（像素/秒）
	ManualSpawnIntervalMs float64 `yaml:"manualSpawnIntervalMs"` // 手动模式生成间隔
	Variant               string  `yaml:"variant"`
	StartLevel            int     `yaml:"startLevel"`
}

// DefaultSessionConfig 返回默认会话配置
func DefaultSessionConfig() SessionConfig {
	return SessionConfig{
		Character:             Character1,
		MusicEnabled:          true,
		Mode:                  ModeGradual,
		ManualSpeed:           100,
		ManualSpawnIntervalMs: 6000,
		Variant:               VariantCampaign,
		StartLevel:            1,
	}
}

// Validate 校验会话配置
// 角色、模式和玩法必须是已知值；手动模式的速度和间隔必须为正
func (s SessionConfig) Validate() error {
	switch s.Character {
	case Character1, Character2:
	default:
		return fmt.Errorf("unknown character %q", s.Character)
	}

	switch s.Mode {
	case ModeGradual:
	case ModeManual:
		if s.ManualSpeed <= 0 {
			return fmt.Errorf("manual speed must be positive, got %v", s.ManualSpeed)
		}
		if s.ManualSpawnIntervalMs <= 0 {
			return fmt.Errorf("manual spawn interval must be positive, got %v", s.ManualSpawnIntervalMs)
		}
	default:
		return fmt.Errorf("unknown difficulty mode %q", s.Mode)
	}

	switch s.Variant {
	case VariantCampaign, VariantPractice:
	default:
		return fmt.Errorf("unknown variant %q", s.Variant)
	}

	if s.StartLevel < 1 {
		return fmt.Errorf("start level must be at least 1, got %d", s.StartLevel)
	}
	return nil
}
