package game

import (
	"fmt"

	"github.com/quasilyte/gdata/v2"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/logging"
)

// GameSettings 演示程序的全局设置
// 注意：这些设置与会话无关，会话重置不会改变它们
type GameSettings struct {
	// 音频设置
	SoundVolume  float64 `yaml:"soundVolume"`  // 音效音量 0.0 ~ 1.0
	SoundEnabled bool    `yaml:"soundEnabled"` // 音效开关

	// 演示设置
	AnimationSpeed float64 `yaml:"animationSpeed"` // 动画速度倍率 0.25 ~ 4.0
	AutoSpin       bool    `yaml:"autoSpin"`       // 新一轮开始后自动转动
	ShowWindow     bool    `yaml:"showWindow"`     // 显示区域计数器窗口
	Fullscreen     bool    `yaml:"fullscreen"`     // 启动时是否全屏
}

// DefaultSettings 返回默认设置
func DefaultSettings() *GameSettings {
	return &GameSettings{
		SoundVolume:    0.8,
		SoundEnabled:   true,
		AnimationSpeed: 1.0,
		AutoSpin:       false,
		ShowWindow:     true,
		Fullscreen:     false,
	}
}

// PlayerRecords 跨会话累计的玩家记录
type PlayerRecords struct {
	BestRound      int            `yaml:"bestRound"`      // 到达过的最高轮次
	SessionsPlayed int            `yaml:"sessionsPlayed"` // 结束（领取或放弃）的会话数
	Collected      map[string]int `yaml:"collected"`      // 每种奖励累计获得数量
}

// Total 累计获得的奖励总数
func (r *PlayerRecords) Total() int {
	total := 0
	for _, n := range r.Collected {
		total += n
	}
	return total
}

// SettingsManager 设置与玩家记录管理器
// 负责加载、保存，并通过事件总线更新玩家记录
type SettingsManager struct {
	gdataManager *gdata.Manager // gdata 跨平台存储管理器，可为 nil（降级模式）
	settings     *GameSettings
	records      *PlayerRecords

	bus    *event.Bus
	subs   []event.Subscription
	logger *zap.Logger
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
	recordsProperty  = "records"
)

// NewSettingsManager 创建设置管理器
// gdataManager 为 nil 时只在内存中保存设置。加载失败不影响创建，使用默认值。
func NewSettingsManager(gdataManager *gdata.Manager, logger *zap.Logger) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
		records:      newPlayerRecords(),
		logger:       logging.OrGlobal(logger).Named("SettingsManager"),
	}

	if err := sm.Load(); err != nil {
		sm.logger.Warn("[SettingsManager] 加载设置失败，使用默认值", zap.Error(err))
	}
	return sm
}

func newPlayerRecords() *PlayerRecords {
	return &PlayerRecords{Collected: make(map[string]int)}
}

// Load 从 gdata 加载设置和记录
// gdataManager 为 nil 或数据不存在时使用默认值
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	sm.records = newPlayerRecords()

	if sm.gdataManager == nil {
		return nil
	}

	settings := DefaultSettings()
	if err := sm.loadProp(settingsProperty, settings); err != nil {
		return err
	}
	settings.AnimationSpeed = clampSpeed(settings.AnimationSpeed)
	settings.SoundVolume = clampVolume(settings.SoundVolume)
	sm.settings = settings

	records := newPlayerRecords()
	if err := sm.loadProp(recordsProperty, records); err != nil {
		return err
	}
	if records.Collected == nil {
		records.Collected = make(map[string]int)
	}
	sm.records = records

	sm.logger.Debug("[SettingsManager] 设置加载成功", zap.Int("bestRound", records.BestRound))
	return nil
}

func (sm *SettingsManager) loadProp(prop string, out any) error {
	if !sm.gdataManager.ObjectPropExists(settingsObject, prop) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, prop)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", prop, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to unmarshal %s: %w", prop, err)
	}
	return nil
}

// Save 保存设置和记录到 gdata
// gdataManager 为 nil 时返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	if err := sm.saveProp(settingsProperty, sm.settings); err != nil {
		return err
	}
	if err := sm.saveProp(recordsProperty, sm.records); err != nil {
		return err
	}

	sm.logger.Debug("[SettingsManager] 设置保存成功")
	return nil
}

func (sm *SettingsManager) saveProp(prop string, v any) error {
	data, err := yaml.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", prop, err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, prop, data); err != nil {
		return fmt.Errorf("failed to save %s: %w", prop, err)
	}
	return nil
}

// Attach 订阅会话事件以更新玩家记录
// 会话结束（SessionReset）时自动保存。
func (sm *SettingsManager) Attach(bus *event.Bus) {
	sm.Detach()
	sm.bus = bus
	sm.subs = append(sm.subs,
		event.Subscribe(bus, func(e event.RoundAdvanced) {
			if e.Round > sm.records.BestRound {
				sm.records.BestRound = e.Round
			}
		}),
		event.Subscribe(bus, func(e event.RewardCollected) {
			if e.Slice != nil {
				sm.records.Collected[e.Slice.ID] += e.Slice.Count
			}
		}),
		event.Subscribe(bus, func(event.SessionReset) {
			sm.records.SessionsPlayed++
			if err := sm.Save(); err != nil {
				sm.logger.Error("[SettingsManager] 保存记录失败", zap.Error(err))
			}
		}),
	)
}

// Detach 退订会话事件
func (sm *SettingsManager) Detach() {
	if sm.bus == nil {
		return
	}
	event.UnsubscribeAll(sm.bus, sm.subs)
	sm.subs = nil
	sm.bus = nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *GameSettings {
	return sm.settings
}

// Records 获取玩家记录
func (sm *SettingsManager) Records() *PlayerRecords {
	return sm.records
}

// SetSoundVolume 设置音效音量
//
// 音量值会被限制在 0.0 ~ 1.0 范围内
// 注意：仅修改内存中的设置，需调用 Save() 方法持久化
func (sm *SettingsManager) SetSoundVolume(volume float64) {
	sm.settings.SoundVolume = clampVolume(volume)
}

// SetSoundEnabled 设置音效开关
func (sm *SettingsManager) SetSoundEnabled(enabled bool) {
	sm.settings.SoundEnabled = enabled
}

// SetAnimationSpeed 设置动画速度倍率
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetAnimationSpeed(speed float64) {
	sm.settings.AnimationSpeed = clampSpeed(speed)
}

// SetAutoSpin 设置自动转动
func (sm *SettingsManager) SetAutoSpin(enabled bool) {
	sm.settings.AutoSpin = enabled
}

// SetShowWindow 设置是否显示区域计数器窗口
func (sm *SettingsManager) SetShowWindow(enabled bool) {
	sm.settings.ShowWindow = enabled
}

// SetFullscreen 设置全屏模式
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// ResetRecords 清空玩家记录
func (sm *SettingsManager) ResetRecords() {
	sm.records = newPlayerRecords()
}

// clampVolume 将音量值限制在 0.0 ~ 1.0 范围内
func clampVolume(volume float64) float64 {
	if volume < 0.0 {
		return 0.0
	}
	if volume > 1.0 {
		return 1.0
	}
	return volume
}

// clampSpeed 将速度倍率限制在 0.25 ~ 4.0 范围内，非正数视为 1.0
func clampSpeed(speed float64) float64 {
	if speed <= 0 {
		return 1.0
	}
	return min(max(speed, 0.25), 4.0)
}
