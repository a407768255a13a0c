package config

import "fmt"

// LevelParams 单关的生成与奖励参数
// 由 ResolveLevel 根据 GameConfig 和 SessionConfig 计算
type LevelParams struct {
	Level        int
	Quota        int     // 本关需要生成的敌人总数
	SpawnDelayMs float64 // 生成间隔
	EnemySpeed   float64 // 敌人行进速度（像素/秒）
	MaxOnField   int     // 同屏敌人上限，0 表示不限
	KillReward   int     // 每次击杀得分
	LastLevel    int
	CanLose      bool // 生命耗尽是否失败
}

// IsLast 是否为最后一关
func (p LevelParams) IsLast() bool {
	return p.Level >= p.LastLevel
}

// ResolveLevel 计算指定关卡的参数
//
// 战役：配额 quotaBase + (level-1)*quotaPerLevel；渐进模式下
// 间隔 max(minSpawnDelayMs, baseDelayMs - level*delayStepMs)，速度 baseSpeed + level*speedPerLevel；
// 手动模式使用会话配置中的速度和间隔（间隔同样不低于 minSpawnDelayMs）。
//
// 练习：按关卡表取配额、间隔和速度，得分随关卡放大，不会失败。
// 手动模式同样覆盖速度和间隔。
func ResolveLevel(cfg *GameConfig, session SessionConfig, level int) (LevelParams, error) {
	lastLevel := cfg.LastLevel(session.Variant)
	if level < 1 || level > lastLevel {
		return LevelParams{}, fmt.Errorf("level %d out of range [1, %d]", level, lastLevel)
	}

	params := LevelParams{
		Level:     level,
		LastLevel: lastLevel,
	}

	switch session.Variant {
	case VariantPractice:
		row := cfg.Practice.Levels[level-1]
		params.Quota = row.Quota
		params.SpawnDelayMs = row.IntervalMs
		params.EnemySpeed = row.Speed
		params.MaxOnField = cfg.Practice.MaxOnField
		params.KillReward = cfg.Practice.KillRewardPerLevel * level
		params.CanLose = false
	default:
		params.Quota = cfg.Campaign.QuotaBase + (level-1)*cfg.Campaign.QuotaPerLevel
		params.SpawnDelayMs = cfg.Campaign.BaseDelayMs - float64(level)*cfg.Campaign.DelayStepMs
		params.EnemySpeed = cfg.Campaign.BaseSpeed + float64(level)*cfg.Campaign.SpeedPerLevel
		params.MaxOnField = cfg.Campaign.MaxOnField
		params.KillReward = cfg.Campaign.KillReward
		params.CanLose = true
	}

	if session.Mode == ModeManual {
		params.SpawnDelayMs = session.ManualSpawnIntervalMs
		params.EnemySpeed = session.ManualSpeed
	}

	if params.SpawnDelayMs < cfg.Campaign.MinSpawnDelayMs {
		params.SpawnDelayMs = cfg.Campaign.MinSpawnDelayMs
	}

	return params, nil
}
