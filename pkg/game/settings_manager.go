package game

import (
	"fmt"
	"log"

	"github.com/gonewx/typeabyss/pkg/config"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 启动器设置在 gdata 中的位置
const (
	settingsObject   = "launcher"
	settingsProperty = "settings"
)

// AudioSettings 音量和音效开关
// 音乐开关属于会话配置（决定是否推进曲目）
type AudioSettings struct {
	MusicVolume  float64 `yaml:"musicVolume"`
	SoundVolume  float64 `yaml:"soundVolume"`
	SoundEnabled bool    `yaml:"soundEnabled"`
}

// DisplaySettings 窗口设置
type DisplaySettings struct {
	Fullscreen bool `yaml:"fullscreen"`
}

// GameSettings 启动器设置
// 只记住玩家的选择，不保存任何对局进度
type GameSettings struct {
	Audio   AudioSettings        `yaml:"audio"`
	Display DisplaySettings      `yaml:"display"`
	Session config.SessionConfig `yaml:"session"`
}

// DefaultSettings 返回首次启动时的设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		Audio: AudioSettings{
			MusicVolume:  0.7,
			SoundVolume:  0.8,
			SoundEnabled: true,
		},
		Session: config.DefaultSessionConfig(),
	}
}

// SessionConfig 以记住的选择和给定的起始关卡组成会话配置
func (s *GameSettings) SessionConfig(startLevel int) config.SessionConfig {
	session := s.Session
	session.StartLevel = startLevel
	return session
}

// normalize 修正从磁盘读到的越界值
// 音量限制在 [0,1]；会话选择无效时整体回退为默认值
func (s *GameSettings) normalize() {
	s.Audio.MusicVolume = clampVolume(s.Audio.MusicVolume)
	s.Audio.SoundVolume = clampVolume(s.Audio.SoundVolume)
	s.Session.StartLevel = 1
	if err := s.Session.Validate(); err != nil {
		log.Printf("[SettingsManager] Warning: stored session choice discarded: %v", err)
		s.Session = config.DefaultSessionConfig()
	}
}

// SettingsManager 启动器设置的读写
//
// store 为 nil 时只在内存中保存设置（例如 gdata 无法打开的平台）。
type SettingsManager struct {
	store    *gdata.Manager
	settings *GameSettings
}

// NewSettingsManager 创建设置管理器并读取已保存的设置
// 读取失败只记录警告并使用默认设置
func NewSettingsManager(store *gdata.Manager) (*SettingsManager, error) {
	sm := &SettingsManager{store: store}
	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: %v (using defaults)", err)
	}
	return sm, nil
}

// Load 重新读取设置
//
// 执行流程：
//  1. 先重置为默认值
//  2. 没有存储或尚未保存过时直接返回
//  3. 把 YAML 覆盖到默认值上（缺失字段保留默认值）
//  4. 修正越界值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.store == nil || !sm.store.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.store.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to read settings: %w", err)
	}
	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to decode settings: %w", err)
	}
	loaded.normalize()
	sm.settings = loaded
	log.Printf("[SettingsManager] Loaded: variant=%s, character=%s, mode=%s",
		loaded.Session.Variant, loaded.Session.Character, loaded.Session.Mode)
	return nil
}

// Save 写回设置，没有存储时不做任何事
func (sm *SettingsManager) Save() error {
	if sm.store == nil {
		return nil
	}
	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := sm.store.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	return nil
}

// Persistent 设置是否会写入磁盘
func (sm *SettingsManager) Persistent() bool {
	return sm.store != nil
}

// GetSettings 返回当前设置（调用者只读）
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// SetMusicVolume 修改音乐音量，越界值被截断
func (sm *SettingsManager) SetMusicVolume(volume float64) {
	sm.settings.Audio.MusicVolume = clampVolume(volume)
}

// SetSoundVolume 修改音效音量，越界值被截断
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.Audio.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 开关音效
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.Audio.SoundEnabled = enabled
}

// SetFullscreen 记住全屏状态
func (sm *SettingsManager) SetFullscreen(fullscreen bool) {
	sm.settings.Display.Fullscreen = fullscreen
}

// UpdateSession 修改记住的会话选择
//
// 参数：
//   - edit: 在副本上修改会话配置，可为 nil
//
// 返回：
//   - error: 修改后的配置无效时返回，此时设置保持不变
func (sm *SettingsManager) UpdateSession(edit func(session *config.SessionConfig)) error {
	if edit == nil {
		return nil
	}
	session := sm.settings.Session
	edit(&session)
	session.StartLevel = 1
	if err := session.Validate(); err != nil {
		return fmt.Errorf("invalid session choice: %w", err)
	}
	sm.settings.Session = session
	return nil
}

func clampVolume(volume float64) float64 {
	switch {
	case volume < 0:
		return 0
	case volume > 1:
		return 1
	default:
		return volume
	}
}
