package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig 战斗参数配置（data/game.yaml）
// 包含场地几何、玩家/敌人/投射物参数、词表、敌人类型、关卡公式和动画元数据
type GameConfig struct {
	Field       FieldConfig      `yaml:"field"`
	Player      PlayerConfig     `yaml:"player"`
	Projectile  ProjectileConfig `yaml:"projectile"`
	Enemy       EnemyConfig      `yaml:"enemy"`
	Words       []string         `yaml:"words"`       // 可击败的单词
	Backgrounds int              `yaml:"backgrounds"` // 背景数量，ID 从 1 开始
	MusicTracks int              `yaml:"musicTracks"` // 背景音乐曲目数量
	Sounds      SoundConfig      `yaml:"sounds"`
	Campaign    CampaignConfig   `yaml:"campaign"`
	Practice    PracticeConfig   `yaml:"practice"`
	Animations  AnimationSet     `yaml:"animations"`
}

// FieldConfig 战场几何
type FieldConfig struct {
	Width  float64   `yaml:"width"`
	Height float64   `yaml:"height"`
	SpawnX float64   `yaml:"spawnX"` // 敌人生成的 X 坐标（场外右侧）
	Lanes  []float64 `yaml:"lanes"`  // 车道 Y 坐标
}

// CharacterConfig 角色相关的受伤音效
type CharacterConfig struct {
	HurtSound      string  `yaml:"hurtSound"`
	HurtCueDelayMs float64 `yaml:"hurtCueDelayMs"`
}

// PlayerConfig 玩家参数
type PlayerConfig struct {
	Health         int                        `yaml:"health"`
	EntranceStartX float64                    `yaml:"entranceStartX"` // 入场起点
	StageX         float64                    `yaml:"stageX"`         // 站位
	RunSpeed       float64                    `yaml:"runSpeed"`       // 入场/退场跑动速度
	ExitMargin     float64                    `yaml:"exitMargin"`     // 退场判定：x > 场宽 + ExitMargin
	MeleeRange     float64                    `yaml:"meleeRange"`     // 近战判定：enemy.x < player.x + MeleeRange
	Characters     map[string]CharacterConfig `yaml:"characters"`
}

// ProjectileConfig 魔法弹参数
type ProjectileConfig struct {
	OffsetX  float64 `yaml:"offsetX"` // 相对玩家的发射偏移
	Speed    float64 `yaml:"speed"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	DespawnX float64 `yaml:"despawnX"` // 超出该 X 坐标即丢弃
}

// EnemyConfig 敌人参数
type EnemyConfig struct {
	MeleeIntervalMs float64  `yaml:"meleeIntervalMs"`
	Width           float64  `yaml:"width"`
	Height          float64  `yaml:"height"`
	TypesPerLevel   int      `yaml:"typesPerLevel"`
	Types           []string `yaml:"types"`
}

// SoundConfig 战斗音效名称
type SoundConfig struct {
	Fire        string   `yaml:"fire"`
	EnemyHurt   []string `yaml:"enemyHurt"`
	EnemyStrike string   `yaml:"enemyStrike"`
}

// CampaignConfig 战役模式关卡公式
type CampaignConfig struct {
	LastLevel       int     `yaml:"lastLevel"`
	QuotaBase       int     `yaml:"quotaBase"`
	QuotaPerLevel   int     `yaml:"quotaPerLevel"`
	BaseDelayMs     float64 `yaml:"baseDelayMs"`
	DelayStepMs     float64 `yaml:"delayStepMs"`
	MinSpawnDelayMs float64 `yaml:"minSpawnDelayMs"`
	BaseSpeed       float64 `yaml:"baseSpeed"`
	SpeedPerLevel   float64 `yaml:"speedPerLevel"`
	MaxOnField      int     `yaml:"maxOnField"` // 0 表示不限
	KillReward      int     `yaml:"killReward"`
}

// PracticeLevel 练习模式单关参数
type PracticeLevel struct {
	Quota      int     `yaml:"quota"`
	IntervalMs float64 `yaml:"intervalMs"`
	Speed      float64 `yaml:"speed"`
}

// PracticeConfig 练习模式参数，最后一关即 Levels 的长度
type PracticeConfig struct {
	MaxOnField         int             `yaml:"maxOnField"`
	KillRewardPerLevel int             `yaml:"killRewardPerLevel"`
	Levels             []PracticeLevel `yaml:"levels"`
}

// ClipConfig 动画片段元数据
type ClipConfig struct {
	Frames int     `yaml:"frames"`
	FPS    float64 `yaml:"fps"`
	Loop   bool    `yaml:"loop"`
}

// AnimationSet 敌人与玩家的动画片段表
type AnimationSet struct {
	Enemy  map[string]ClipConfig `yaml:"enemy"`
	Player map[string]ClipConfig `yaml:"player"`
}

// LoadGameConfig 从 YAML 文件加载战斗参数
// 参数：
//
//	filepath - 配置文件路径
//
// 返回：
//
//	*GameConfig - 解析并校验后的配置
//	error - 读取、解析或校验失败时返回
func LoadGameConfig(filepath string) (*GameConfig, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read game config file %s: %w", filepath, err)
	}

	cfg, err := ParseGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load game config from %s: %w", filepath, err)
	}
	return cfg, nil
}

// ParseGameConfig 解析 YAML 数据（用于嵌入资源和热重载）
func ParseGameConfig(data []byte) (*GameConfig, error) {
	var cfg GameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game config YAML: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateGameConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid game config: %w", err)
	}
	return &cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *GameConfig) {
	if cfg.Field.Width == 0 {
		cfg.Field.Width = 1280
	}
	if cfg.Field.Height == 0 {
		cfg.Field.Height = 720
	}
	if cfg.Field.SpawnX == 0 {
		cfg.Field.SpawnX = 1400
	}
	if len(cfg.Field.Lanes) == 0 {
		cfg.Field.Lanes = []float64{350, 400, 450}
	}

	if cfg.Player.Health == 0 {
		cfg.Player.Health = 3
	}
	if cfg.Player.RunSpeed == 0 {
		cfg.Player.RunSpeed = 300
	}
	if cfg.Player.StageX == 0 {
		cfg.Player.StageX = 150
	}
	if cfg.Player.EntranceStartX == 0 {
		cfg.Player.EntranceStartX = -150
	}
	if cfg.Player.ExitMargin == 0 {
		cfg.Player.ExitMargin = 100
	}
	if cfg.Player.MeleeRange == 0 {
		cfg.Player.MeleeRange = 100
	}

	if cfg.Projectile.Speed == 0 {
		cfg.Projectile.Speed = 600
	}
	if cfg.Projectile.OffsetX == 0 {
		cfg.Projectile.OffsetX = 80
	}
	if cfg.Projectile.Width == 0 {
		cfg.Projectile.Width = 40
	}
	if cfg.Projectile.Height == 0 {
		cfg.Projectile.Height = 40
	}
	if cfg.Projectile.DespawnX == 0 {
		cfg.Projectile.DespawnX = cfg.Field.SpawnX
	}

	if cfg.Enemy.MeleeIntervalMs == 0 {
		cfg.Enemy.MeleeIntervalMs = 1000
	}
	if cfg.Enemy.Width == 0 {
		cfg.Enemy.Width = 80
	}
	if cfg.Enemy.Height == 0 {
		cfg.Enemy.Height = 100
	}
	if cfg.Enemy.TypesPerLevel == 0 {
		cfg.Enemy.TypesPerLevel = 3
	}

	if cfg.Backgrounds == 0 {
		cfg.Backgrounds = 1
	}

	if cfg.Campaign.MinSpawnDelayMs == 0 {
		cfg.Campaign.MinSpawnDelayMs = 1000
	}
	if cfg.Campaign.KillReward == 0 {
		cfg.Campaign.KillReward = 100
	}
	if cfg.Practice.KillRewardPerLevel == 0 {
		cfg.Practice.KillRewardPerLevel = 100
	}
}

// validateGameConfig 校验配置的有效性
func validateGameConfig(cfg *GameConfig) error {
	if len(cfg.Words) == 0 {
		return fmt.Errorf("words cannot be empty")
	}
	for i, w := range cfg.Words {
		if w == "" {
			return fmt.Errorf("word %d is empty", i)
		}
		for _, r := range w {
			if r < 'a' || r > 'z' {
				return fmt.Errorf("word %q must contain only lowercase letters", w)
			}
		}
	}

	if len(cfg.Enemy.Types) == 0 {
		return fmt.Errorf("enemy types cannot be empty")
	}
	if cfg.Enemy.TypesPerLevel > len(cfg.Enemy.Types) {
		return fmt.Errorf("typesPerLevel %d exceeds available enemy types %d", cfg.Enemy.TypesPerLevel, len(cfg.Enemy.Types))
	}

	if cfg.Player.Health < 1 {
		return fmt.Errorf("player health must be positive, got %d", cfg.Player.Health)
	}
	if len(cfg.Player.Characters) == 0 {
		return fmt.Errorf("at least one character is required")
	}
	for name, c := range cfg.Player.Characters {
		if c.HurtCueDelayMs < 0 {
			return fmt.Errorf("character %s: hurtCueDelayMs cannot be negative", name)
		}
	}

	if cfg.Enemy.MeleeIntervalMs <= 0 {
		return fmt.Errorf("enemy meleeIntervalMs must be positive")
	}
	if cfg.MusicTracks < 0 {
		return fmt.Errorf("musicTracks cannot be negative")
	}

	if cfg.Campaign.LastLevel < 1 {
		return fmt.Errorf("campaign lastLevel must be at least 1")
	}
	if cfg.Campaign.QuotaBase < 1 {
		return fmt.Errorf("campaign quotaBase must be at least 1")
	}
	if cfg.Campaign.QuotaPerLevel < 0 {
		return fmt.Errorf("campaign quotaPerLevel cannot be negative")
	}
	if cfg.Campaign.MaxOnField < 0 || cfg.Practice.MaxOnField < 0 {
		return fmt.Errorf("maxOnField cannot be negative")
	}

	if len(cfg.Practice.Levels) == 0 {
		return fmt.Errorf("practice levels cannot be empty")
	}
	for i, lvl := range cfg.Practice.Levels {
		if lvl.Quota < 1 {
			return fmt.Errorf("practice level %d: quota must be at least 1", i+1)
		}
		if lvl.IntervalMs <= 0 {
			return fmt.Errorf("practice level %d: intervalMs must be positive", i+1)
		}
		if lvl.Speed <= 0 {
			return fmt.Errorf("practice level %d: speed must be positive", i+1)
		}
	}

	for _, clip := range []string{"walk", "slash", "die"} {
		if err := validateClip("enemy", clip, cfg.Animations.Enemy); err != nil {
			return err
		}
	}
	for _, clip := range []string{"idle", "slash", "walk", "hurt", "die"} {
		if err := validateClip("player", clip, cfg.Animations.Player); err != nil {
			return err
		}
	}

	return nil
}

func validateClip(owner, name string, clips map[string]ClipConfig) error {
	clip, ok := clips[name]
	if !ok {
		return fmt.Errorf("%s animation %q is required", owner, name)
	}
	if clip.Frames < 1 || clip.FPS <= 0 {
		return fmt.Errorf("%s animation %q: frames and fps must be positive", owner, name)
	}
	return nil
}

// LastLevel 返回指定玩法的最后一关
func (c *GameConfig) LastLevel(variant string) int {
	if variant == VariantPractice {
		return len(c.Practice.Levels)
	}
	return c.Campaign.LastLevel
}
