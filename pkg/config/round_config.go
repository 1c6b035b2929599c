package config

import "github.com/decker502/wheel/pkg/types"

// RoundSliceSet 某一轮的奖励格子定义
//
// YAML 示例：
//
//	rounds:
//	  - round: 1
//	    slices:
//	      - {id: gold, count: 100, icon: ui_icon_gold}
//	      - {id: bomb, bomb: true}
type RoundSliceSet struct {
	Round  int                  `yaml:"round"`  // 轮次编号，>= 1
	Slices []*types.RewardSlice `yaml:"slices"` // 按转盘顺序排列
}
