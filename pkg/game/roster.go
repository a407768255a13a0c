package game

import (
	"fmt"
	"math/rand"
)

// Roster 单词池与敌人外观类型池
//
// 池本身是静态的；最近使用过的敌人类型（历史）属于 LevelSession 的携带资源，
// 由调用者传入并接收更新后的历史。
type Roster struct {
	words         []string
	enemyTypes    []string
	typesPerLevel int
}

// NewRoster 创建名单
// 参数：
//   - words: 可击败的单词列表，不能为空
//   - enemyTypes: 敌人外观类型列表，数量不能少于 typesPerLevel
//   - typesPerLevel: 每关选用的敌人类型数量
//
// 返回：
//   - *Roster: 名单实例
//   - error: 列表为空或数量不足时返回
func NewRoster(words, enemyTypes []string, typesPerLevel int) (*Roster, error) {
	if len(words) == 0 {
		return nil, fmt.Errorf("roster requires at least one word")
	}
	if typesPerLevel < 1 {
		return nil, fmt.Errorf("typesPerLevel must be at least 1, got %d", typesPerLevel)
	}
	if len(enemyTypes) < typesPerLevel {
		return nil, fmt.Errorf("roster requires at least %d enemy types, got %d", typesPerLevel, len(enemyTypes))
	}

	return &Roster{
		words:         append([]string(nil), words...),
		enemyTypes:    append([]string(nil), enemyTypes...),
		typesPerLevel: typesPerLevel,
	}, nil
}

// MustNewRoster 与 NewRoster 相同，但在参数无效时 panic
// 仅用于已校验过的内置配置
func MustNewRoster(words, enemyTypes []string, typesPerLevel int) *Roster {
	r, err := NewRoster(words, enemyTypes, typesPerLevel)
	if err != nil {
		panic(err)
	}
	return r
}

// Words 返回单词列表的副本
func (r *Roster) Words() []string {
	return append([]string(nil), r.words...)
}

// RandomWord 随机选择一个单词
func (r *Roster) RandomWord(rng *rand.Rand) string {
	return r.words[rng.Intn(len(r.words))]
}

// PickLevelTypes 为新关卡选择敌人类型
//
// 从未在历史中出现过的类型里随机选取 typesPerLevel 个；
// 如果可用类型少于 typesPerLevel，先清空历史再从全部类型中选取。
//
// 参数：
//   - rng: 随机数源
//   - history: 最近使用过的类型（不会被修改）
//
// 返回：
//   - picked: 本关使用的类型
//   - nextHistory: 追加了本次选择后的历史
func (r *Roster) PickLevelTypes(rng *rand.Rand, history []string) (picked, nextHistory []string) {
	used := make(map[string]bool, len(history))
	for _, t := range history {
		used[t] = true
	}

	available := make([]string, 0, len(r.enemyTypes))
	for _, t := range r.enemyTypes {
		if !used[t] {
			available = append(available, t)
		}
	}

	nextHistory = append([]string(nil), history...)
	if len(available) < r.typesPerLevel {
		available = append(available[:0], r.enemyTypes...)
		nextHistory = nextHistory[:0]
	}

	rng.Shuffle(len(available), func(i, j int) {
		available[i], available[j] = available[j], available[i]
	})

	picked = append([]string(nil), available[:r.typesPerLevel]...)
	nextHistory = append(nextHistory, picked...)
	return picked, nextHistory
}
