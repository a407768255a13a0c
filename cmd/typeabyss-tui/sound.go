package main

import (
	"log"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
)

const (
	sampleRate    = beep.SampleRate(44100)
	cueDuration   = 120 * time.Millisecond
	trackDuration = 45 * time.Second
	musicBaseFreq = 110.0
	musicVolume   = -4.0 // effects.Volume 以 2 为底的指数
)

// cueFrequencies 战斗音效对应的合成音高
var cueFrequencies = map[string]float64{
	"cast_fire_magic":  880,
	"enemy_hurt":       330,
	"enemy_hurt_2":     294,
	"enemy_strike_hit": 147,
	"male_hurt":        196,
	"female_hurt":      392,
}

// cueFrequency 未知音效使用 440Hz
func cueFrequency(name string) float64 {
	if f, ok := cueFrequencies[name]; ok {
		return f
	}
	return 440
}

// trackFrequency 每首曲目一个不同的低音
func trackFrequency(track int) float64 {
	if track < 0 {
		track = 0
	}
	return musicBaseFreq * (1 + float64(track%12)/12)
}

// beepSound 终端版 SoundPlayer：用正弦波合成音效和背景音
//
// 所有声音混入同一个 Mixer，外层 Ctrl 负责整体暂停。
// 背景音播放 trackDuration 后通过 TrackEnded 通知主循环推进曲目。
type beepSound struct {
	mixer      *beep.Mixer
	ctrl       *beep.Ctrl
	music      *beep.Ctrl // 当前背景音，Streamer 置空即从混音器移除
	trackEnded chan struct{}
}

// newBeepSound 初始化扬声器
// 失败时调用方应退回静音实现
func newBeepSound() (*beepSound, error) {
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return nil, err
	}
	s := &beepSound{
		mixer:      &beep.Mixer{},
		trackEnded: make(chan struct{}, 1),
	}
	s.ctrl = &beep.Ctrl{Streamer: s.mixer}
	speaker.Play(s.ctrl)
	return s, nil
}

func (s *beepSound) PlaySound(name string) {
	sine, err := generators.SineTone(sampleRate, cueFrequency(name))
	if err != nil {
		log.Printf("[Sound] Failed to synthesize %s: %v", name, err)
		return
	}
	speaker.Lock()
	s.mixer.Add(beep.Take(sampleRate.N(cueDuration), sine))
	speaker.Unlock()
}

func (s *beepSound) PlayMusic(track int) {
	sine, err := generators.SineTone(sampleRate, trackFrequency(track))
	if err != nil {
		log.Printf("[Sound] Failed to synthesize track %d: %v", track, err)
		return
	}
	drone := &effects.Volume{Streamer: sine, Base: 2, Volume: musicVolume}
	stream := beep.Seq(
		beep.Take(sampleRate.N(trackDuration), drone),
		beep.Callback(func() {
			select {
			case s.trackEnded <- struct{}{}:
			default:
			}
		}),
	)
	music := &beep.Ctrl{Streamer: stream}
	speaker.Lock()
	if s.music != nil {
		s.music.Streamer = nil
	}
	s.music = music
	s.mixer.Add(music)
	speaker.Unlock()
	log.Printf("[Sound] Playing track %d", track)
}

func (s *beepSound) PauseAll() {
	speaker.Lock()
	s.ctrl.Paused = true
	speaker.Unlock()
}

func (s *beepSound) ResumeAll() {
	speaker.Lock()
	s.ctrl.Paused = false
	speaker.Unlock()
}

func (s *beepSound) StopAll() {
	speaker.Lock()
	s.mixer.Clear()
	s.music = nil
	s.ctrl.Paused = false
	speaker.Unlock()
}

// TrackEnded 背景音播放完毕的通知
func (s *beepSound) TrackEnded() <-chan struct{} {
	return s.trackEnded
}

func (s *beepSound) Close() {
	s.StopAll()
	speaker.Close()
}
