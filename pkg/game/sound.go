package game

import "sync"

// SoundPlayer 音频协作者接口
//
// 核心只发出"播放某个音效/曲目"和"全部暂停/恢复/停止"的请求，
// 具体实现由宿主提供（ebiten AudioManager、终端版 beep 合成器、测试录音器）。
type SoundPlayer interface {
	// PlaySound 播放一次性音效，如 "cast_fire_magic"
	PlaySound(name string)
	// PlayMusic 播放背景音乐曲目，track 从 0 开始
	PlayMusic(track int)
	// PauseAll 暂停所有音频
	PauseAll()
	// ResumeAll 恢复所有音频
	ResumeAll()
	// StopAll 停止所有音频
	StopAll()
}

// NopSoundPlayer 静音实现
type NopSoundPlayer struct{}

func (NopSoundPlayer) PlaySound(string) {}
func (NopSoundPlayer) PlayMusic(int)    {}
func (NopSoundPlayer) PauseAll()        {}
func (NopSoundPlayer) ResumeAll()       {}
func (NopSoundPlayer) StopAll()         {}

// SoundRecorder 记录所有音频请求的实现
// 用于无头运行统计音效和测试断言
type SoundRecorder struct {
	mu      sync.Mutex
	Sounds  []string
	Tracks  []int
	Pauses  int
	Resumes int
	Stops   int
}

func (r *SoundRecorder) PlaySound(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Sounds = append(r.Sounds, name)
}

func (r *SoundRecorder) PlayMusic(track int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Tracks = append(r.Tracks, track)
}

func (r *SoundRecorder) PauseAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Pauses++
}

func (r *SoundRecorder) ResumeAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Resumes++
}

func (r *SoundRecorder) StopAll() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stops++
}

// Count 返回某个音效被播放的次数
func (r *SoundRecorder) Count(name string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, s := range r.Sounds {
		if s == name {
			n++
		}
	}
	return n
}
