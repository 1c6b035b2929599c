package app

import (
	"encoding/binary"
	"math"

	"github.com/hajimehoshi/ebiten/v2/audio"
	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/game"
	"github.com/decker502/wheel/pkg/logging"
)

// SampleRate 音频上下文采样率
const SampleRate = 48000

// 音效ID
const (
	SoundSpin    = "spin"
	SoundStop    = "stop"
	SoundCollect = "collect"
	SoundBomb    = "bomb"
	SoundZone    = "zone"
)

// tone 一段合成音效：依次播放的若干个音符
type tone struct {
	notes    []float64 // 频率（Hz）
	duration float64   // 每个音符时长（秒）
	gain     float64
}

var soundTable = map[string]tone{
	SoundSpin:    {notes: []float64{440, 554}, duration: 0.06, gain: 0.35},
	SoundStop:    {notes: []float64{660}, duration: 0.08, gain: 0.4},
	SoundCollect: {notes: []float64{784, 988, 1175}, duration: 0.07, gain: 0.35},
	SoundBomb:    {notes: []float64{110, 82}, duration: 0.18, gain: 0.6},
	SoundZone:    {notes: []float64{523, 659, 784, 1047}, duration: 0.08, gain: 0.3},
}

// synthesize 生成 16 位小端立体声 PCM
// 每个音符带线性淡出，避免爆音
func synthesize(t tone, sampleRate int) []byte {
	perNote := int(t.duration * float64(sampleRate))
	buf := make([]byte, 0, perNote*len(t.notes)*4)

	for _, freq := range t.notes {
		for i := 0; i < perNote; i++ {
			env := 1 - float64(i)/float64(perNote)
			v := math.Sin(2*math.Pi*freq*float64(i)/float64(sampleRate)) * t.gain * env
			s := int16(v * math.MaxInt16)
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
			buf = binary.LittleEndian.AppendUint16(buf, uint16(s))
		}
	}
	return buf
}

// AudioManager 音效管理器
// 职责：
//   - 订阅会话事件并播放对应的音效
//   - 从 SettingsManager 读取音量和开关
//
// 音效在首次播放时合成并缓存播放器。
type AudioManager struct {
	context         *audio.Context
	settingsManager *game.SettingsManager // 可为 nil，使用默认音量
	soundPlayers    map[string]*audio.Player
	subs            []event.Subscription
	bus             *event.Bus
	logger          *zap.Logger
}

// NewAudioManager 创建音效管理器
func NewAudioManager(context *audio.Context, sm *game.SettingsManager, logger *zap.Logger) *AudioManager {
	return &AudioManager{
		context:         context,
		settingsManager: sm,
		soundPlayers:    make(map[string]*audio.Player),
		logger:          logging.OrGlobal(logger).Named("AudioManager"),
	}
}

// Attach 订阅会话事件
func (am *AudioManager) Attach(bus *event.Bus) {
	am.Detach()
	am.bus = bus
	am.subs = append(am.subs,
		event.Subscribe(bus, func(event.WheelSpinStarted) { am.PlaySound(SoundSpin) }),
		event.Subscribe(bus, func(event.WheelSpinStopped) { am.PlaySound(SoundStop) }),
		event.Subscribe(bus, func(event.RewardCollected) { am.PlaySound(SoundCollect) }),
		event.Subscribe(bus, func(event.BombTriggered) { am.PlaySound(SoundBomb) }),
		event.Subscribe(bus, func(event.SafeZoneUpdated) { am.PlaySound(SoundZone) }),
		event.Subscribe(bus, func(event.SuperZoneUpdated) { am.PlaySound(SoundZone) }),
	)
}

// Detach 退订会话事件
func (am *AudioManager) Detach() {
	if am.bus == nil {
		return
	}
	event.UnsubscribeAll(am.bus, am.subs)
	am.subs = nil
	am.bus = nil
}

// PlaySound 播放音效
//
// 返回：
//   - bool: 是否成功播放
func (am *AudioManager) PlaySound(soundID string) bool {
	if am.settingsManager != nil && !am.settingsManager.GetSettings().SoundEnabled {
		return false
	}

	player := am.getSoundPlayer(soundID)
	if player == nil {
		return false
	}

	player.SetVolume(am.getSoundVolume())
	if err := player.Rewind(); err != nil {
		am.logger.Warn("[AudioManager] 音效重置失败", zap.String("sound", soundID), zap.Error(err))
	}
	player.Play()
	return true
}

// getSoundPlayer 获取或合成音效播放器
func (am *AudioManager) getSoundPlayer(soundID string) *audio.Player {
	if player, exists := am.soundPlayers[soundID]; exists {
		return player
	}
	if am.context == nil {
		return nil
	}

	t, ok := soundTable[soundID]
	if !ok {
		am.logger.Warn("[AudioManager] 未知音效", zap.String("sound", soundID))
		return nil
	}

	player := am.context.NewPlayerFromBytes(synthesize(t, am.context.SampleRate()))
	am.soundPlayers[soundID] = player
	return player
}

// getSoundVolume 获取音效音量设置
func (am *AudioManager) getSoundVolume() float64 {
	if am.settingsManager != nil {
		return am.settingsManager.GetSettings().SoundVolume
	}
	return 0.8
}

// Preload 预先合成所有音效，避免首次播放时的延迟
func (am *AudioManager) Preload() {
	for id := range soundTable {
		am.getSoundPlayer(id)
	}
	am.logger.Debug("[AudioManager] 音效预加载完成", zap.Int("count", len(am.soundPlayers)))
}

// Close 退订事件并释放播放器
func (am *AudioManager) Close() {
	am.Detach()
	for id, player := range am.soundPlayers {
		if err := player.Close(); err != nil {
			am.logger.Warn("[AudioManager] 关闭播放器失败", zap.String("sound", id), zap.Error(err))
		}
	}
	clear(am.soundPlayers)
}
