package game

import "github.com/decker502/wheel/pkg/types"

// GameStateProvider 供界面控制器查询的会话状态
// 区域判断使用区域管理器的配置间隔。
type GameStateProvider struct {
	zones *ZoneManager
	wheel *WheelManager
}

// NewGameStateProvider 创建状态查询器，wheel 可以稍后通过 attachWheel 绑定
func NewGameStateProvider(zones *ZoneManager) *GameStateProvider {
	return &GameStateProvider{zones: zones}
}

func (p *GameStateProvider) attachWheel(wheel *WheelManager) {
	p.wheel = wheel
}

// IsSafeZone 当前轮次是否为安全区域
func (p *GameStateProvider) IsSafeZone() bool {
	return p.zone() == types.ZoneSafe
}

// IsSuperZone 当前轮次是否为超级区域
func (p *GameStateProvider) IsSuperZone() bool {
	return p.zone() == types.ZoneSuper
}

// IsWheelSpinning 转盘是否正在转动
func (p *GameStateProvider) IsWheelSpinning() bool {
	return p.wheel != nil && p.wheel.IsSpinning()
}

func (p *GameStateProvider) zone() types.ZoneType {
	if p.zones == nil {
		return types.ZoneNormal
	}
	cfg := p.zones.Config()
	return Classify(p.zones.CurrentRound(), cfg.SafeZoneInterval, cfg.SuperZoneInterval)
}
