// Package audio ebiten 实现的 game.SoundPlayer
//
// 与引擎分开放置，pkg/game、pkg/systems 和终端版因此不链接 ebiten/oto。
package audio

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"io"
	"log"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/gonewx/typeabyss/pkg/game"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
)

// 合成音效参数
const (
	synthDurationSec = 0.12
	synthBaseFreq    = 220.0
	synthAmplitude   = 0.25
)

// AudioManager 音频管理器（ebiten 实现的 SoundPlayer）
// 职责：
//   - 播放战斗音效：优先从音效目录加载 <name>.ogg / <name>.mp3，找不到时合成短音
//   - 播放背景音乐：从音乐目录加载 music_<n>.ogg / .mp3（n 从 1 开始），单次播放，
//     播放完毕由宿主通过 TrackEnded 检测并推进曲目游标
//   - 暂停/恢复/停止全部音频
//   - 从 SettingsManager 读取音量和开关
//
// audioContext 为 nil 时所有操作都是空操作（降级模式）。
type AudioManager struct {
	audioContext    *audio.Context
	settingsManager *game.SettingsManager
	soundDir        string
	musicDir        string

	soundPlayers map[string]*audio.Player // 音效播放器缓存（名称 -> 播放器）
	currentMusic *audio.Player
	currentTrack int
	musicMissing map[int]bool // 加载失败的曲目，避免重复尝试

	paused bool
}

// NewAudioManager 创建新的音频管理器
//
// 参数：
//   - ctx: ebiten 音频上下文，可为 nil（降级模式）
//   - sm: SettingsManager 实例（用于读取音量设置，可为 nil）
//   - soundDir: 音效文件目录，可为空（全部使用合成音效）
//   - musicDir: 音乐文件目录，可为空（禁用音乐）
//
// 返回：
//   - *AudioManager: 音频管理器实例
func NewAudioManager(ctx *audio.Context, sm *game.SettingsManager, soundDir, musicDir string) *AudioManager {
	return &AudioManager{
		audioContext:    ctx,
		settingsManager: sm,
		soundDir:        soundDir,
		musicDir:        musicDir,
		soundPlayers:    make(map[string]*audio.Player),
		currentTrack:    -1,
		musicMissing:    make(map[int]bool),
	}
}

// PlaySound 播放音效
// 音效使用 SoundVolume 设置控制音量，单次播放
func (am *AudioManager) PlaySound(name string) {
	if am.audioContext == nil || am.paused {
		return
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().Audio.SoundEnabled {
		return
	}

	player := am.getSoundPlayer(name)
	if player == nil {
		return
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		log.Printf("[AudioManager] Warning: Failed to rewind sound %s: %v", name, err)
	}
	player.Play()
}

// PlayMusic 播放背景音乐曲目
// 同一时间只播放一首；曲目文件缺失时记录警告并保持静音
func (am *AudioManager) PlayMusic(track int) {
	if am.audioContext == nil || am.musicDir == "" {
		return
	}
	if am.settingsManager != nil && !am.settingsManager.GetSettings().Session.MusicEnabled {
		return
	}
	if am.currentTrack == track && am.currentMusic != nil && am.currentMusic.IsPlaying() {
		return
	}

	am.stopMusic()

	if am.musicMissing[track] {
		return
	}

	player, err := am.loadMusic(track)
	if err != nil {
		log.Printf("[AudioManager] Warning: Music track %d disabled: %v", track+1, err)
		am.musicMissing[track] = true
		return
	}

	volume := am.getMusicVolume()
	player.SetVolume(volume)
	if !am.paused {
		player.Play()
	}

	am.currentMusic = player
	am.currentTrack = track
	log.Printf("[AudioManager] Playing music track %d (volume: %.2f)", track+1, volume)
}

// PauseAll 暂停所有音频
func (am *AudioManager) PauseAll() {
	if am.paused {
		return
	}
	am.paused = true
	if am.currentMusic != nil {
		am.currentMusic.Pause()
	}
	for _, p := range am.soundPlayers {
		p.Pause()
	}
}

// ResumeAll 恢复背景音乐（被中断的音效不再续播）
func (am *AudioManager) ResumeAll() {
	if !am.paused {
		return
	}
	am.paused = false
	if am.currentMusic != nil {
		if am.settingsManager != nil && !am.settingsManager.GetSettings().Session.MusicEnabled {
			return
		}
		am.currentMusic.Play()
	}
}

// StopAll 停止所有音频
func (am *AudioManager) StopAll() {
	am.stopMusic()
	for _, p := range am.soundPlayers {
		p.Pause()
	}
	am.paused = false
}

// TrackEnded 当前曲目是否已自然播放完毕
// 宿主每帧检查，返回 true 时通知会话推进曲目游标
func (am *AudioManager) TrackEnded() bool {
	if am.currentMusic == nil || am.paused {
		return false
	}
	if am.currentMusic.IsPlaying() {
		return false
	}
	am.currentMusic = nil
	am.currentTrack = -1
	return true
}

func (am *AudioManager) stopMusic() {
	if am.currentMusic != nil {
		am.currentMusic.Pause()
		if err := am.currentMusic.Close(); err != nil {
			log.Printf("[AudioManager] Warning: Failed to close music player: %v", err)
		}
		am.currentMusic = nil
		am.currentTrack = -1
	}
}

// getSoundPlayer 获取或加载音效播放器
func (am *AudioManager) getSoundPlayer(name string) *audio.Player {
	if player, exists := am.soundPlayers[name]; exists {
		return player
	}

	var player *audio.Player
	if am.soundDir != "" {
		if path, ok := findAudioFile(am.soundDir, name); ok {
			stream, err := decodeFile(path)
			if err != nil {
				log.Printf("[AudioManager] Warning: Failed to load sound %s: %v", name, err)
			} else if p, err := am.audioContext.NewPlayer(stream); err == nil {
				player = p
			} else {
				log.Printf("[AudioManager] Warning: Failed to create player for %s: %v", name, err)
			}
		}
	}

	if player == nil {
		player = am.audioContext.NewPlayerFromBytes(synthesizeCue(name, am.audioContext.SampleRate()))
	}

	am.soundPlayers[name] = player
	return player
}

// loadMusic 加载曲目（不循环）
func (am *AudioManager) loadMusic(track int) (*audio.Player, error) {
	name := fmt.Sprintf("music_%d", track+1)
	path, ok := findAudioFile(am.musicDir, name)
	if !ok {
		return nil, fmt.Errorf("no audio file for %s in %s", name, am.musicDir)
	}
	stream, err := decodeFile(path)
	if err != nil {
		return nil, err
	}
	player, err := am.audioContext.NewPlayer(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to create audio player for %s: %w", path, err)
	}
	return player, nil
}

// getMusicVolume 获取音乐音量设置
func (am *AudioManager) getMusicVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().Audio.MusicVolume
	}
	return 0.7 // 默认值
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().Audio.SoundVolume
	}
	return 0.8 // 默认值
}

// findAudioFile 在目录中查找 name.ogg 或 name.mp3
func findAudioFile(dir, name string) (string, bool) {
	for _, ext := range []string{".ogg", ".mp3"} {
		path := filepath.Join(dir, name+ext)
		if _, err := os.Stat(path); err == nil {
			return path, true
		}
	}
	return "", false
}

// decodeFile 读取并解码音频文件
// 整个文件读入内存，播放过程中可以随意 Seek 而不占用文件句柄
func decodeFile(path string) (io.ReadSeeker, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(data)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".mp3":
		stream, err := mp3.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		return stream, nil
	case ".ogg":
		stream, err := vorbis.DecodeWithoutResampling(reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		return stream, nil
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .mp3, .ogg)", path)
	}
}

// synthesizeCue 为音效名合成一段带衰减的正弦短音
// 输出 16 位小端立体声 PCM；频率由名称哈希决定，同名音效听起来一致
func synthesizeCue(name string, sampleRate int) []byte {
	return synthesizeTone(cueFrequency(name), synthDurationSec, sampleRate)
}

// cueFrequency 把音效名映射到 220Hz 起的两个八度内
func cueFrequency(name string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(name))
	semitone := float64(h.Sum32() % 24)
	return synthBaseFreq * math.Pow(2, semitone/12)
}

func synthesizeTone(freq, durationSec float64, sampleRate int) []byte {
	n := int(durationSec * float64(sampleRate))
	buf := make([]byte, n*4)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(sampleRate)
		envelope := 1 - float64(i)/float64(n)
		v := int16(math.Sin(2*math.Pi*freq*t) * envelope * synthAmplitude * math.MaxInt16)
		binary.LittleEndian.PutUint16(buf[i*4:], uint16(v))
		binary.LittleEndian.PutUint16(buf[i*4+2:], uint16(v))
	}
	return buf
}
