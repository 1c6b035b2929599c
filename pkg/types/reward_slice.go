package types

// RewardSlice 转盘上的一个奖励格子
//
// 由轮次配置数据持有，创建后不可修改；
// 转盘和奖励发放流程只引用（*RewardSlice），不复制。
type RewardSlice struct {
	ID    string `yaml:"id" json:"id"`                         // 奖励物品ID，同时也是背包槽位的键
	Name  string `yaml:"name,omitempty" json:"name,omitempty"` // 显示名称（可选）
	Count int    `yaml:"count" json:"count"`                   // 奖励数量，>= 1
	Icon  string `yaml:"icon,omitempty" json:"icon,omitempty"` // 图标资源ID
	Bomb  bool   `yaml:"bomb,omitempty" json:"bomb,omitempty"` // 是否为炸弹格子
}

// DisplayName 返回显示名称，未配置时回退为ID
func (s *RewardSlice) DisplayName() string {
	if s == nil {
		return "Unknown Item"
	}
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

// SpinResult 一次转动的结果，由奖励发放流程消费一次后丢弃
type SpinResult struct {
	Slice                 *RewardSlice `json:"slice"`
	TargetRotationDegrees float64      `json:"targetRotationDegrees"`
}
