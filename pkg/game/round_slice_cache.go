package game

import (
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/logging"
	"github.com/decker502/wheel/pkg/types"
)

// RoundSliceCache 轮次 → 奖励格子列表
//
// 会话开始时由配置构建一次，之后只读。
// 查询规则（稀疏表回退）：
//  1. round < 1 按 1 处理
//  2. 命中精确轮次直接返回
//  3. 返回小于 round 的最近一个已定义轮次
//  4. 仍未找到则返回最小轮次的定义
//  5. 缓存为空时返回空列表并记录错误
type RoundSliceCache struct {
	rounds map[int][]*types.RewardSlice
	keys   []int // 升序
	logger *zap.Logger
}

// NewRoundSliceCache 创建空缓存
func NewRoundSliceCache(logger *zap.Logger) *RoundSliceCache {
	return &RoundSliceCache{
		rounds: make(map[int][]*types.RewardSlice),
		logger: logging.OrGlobal(logger).Named("RoundSliceCache"),
	}
}

// Build 清空并根据配置重建缓存
// 没有格子的轮次被丢弃；重复的轮次合并（追加），不覆盖。
func (c *RoundSliceCache) Build(sets []config.RoundSliceSet) {
	clear(c.rounds)
	c.keys = c.keys[:0]

	for _, set := range sets {
		if len(set.Slices) == 0 {
			c.logger.Warn("[RoundSliceCache] 轮次没有奖励格子，已跳过", zap.Int("round", set.Round))
			continue
		}

		round := set.Round
		if round < 1 {
			c.logger.Warn("[RoundSliceCache] 轮次小于 1，按第 1 轮处理", zap.Int("round", round))
			round = 1
		}

		if _, exists := c.rounds[round]; !exists {
			c.keys = append(c.keys, round)
		}
		c.rounds[round] = append(c.rounds[round], set.Slices...)
	}

	slices.Sort(c.keys)
	c.logger.Debug("[RoundSliceCache] 缓存构建完成", zap.Int("rounds", len(c.keys)))
}

// Slices 返回指定轮次使用的格子列表
// 返回的切片是副本，元素指向共享的只读 RewardSlice。
func (c *RoundSliceCache) Slices(round int) []*types.RewardSlice {
	if round < 1 {
		round = 1
	}

	if s, ok := c.rounds[round]; ok {
		return slices.Clone(s)
	}

	// 向下查找最近的已定义轮次
	if idx, _ := slices.BinarySearch(c.keys, round); idx > 0 {
		r := c.keys[idx-1]
		c.logger.Debug("[RoundSliceCache] 使用较早轮次的定义",
			zap.Int("round", round), zap.Int("fallback", r))
		return slices.Clone(c.rounds[r])
	}

	if len(c.keys) > 0 {
		lowest := c.keys[0]
		c.logger.Warn("[RoundSliceCache] 当前轮次以下没有定义，使用最小轮次",
			zap.Int("round", round), zap.Int("fallback", lowest))
		return slices.Clone(c.rounds[lowest])
	}

	c.logger.Error("[RoundSliceCache] 没有任何轮次的奖励数据", zap.Int("round", round))
	return []*types.RewardSlice{}
}

// Len 已定义的轮次数量
func (c *RoundSliceCache) Len() int {
	return len(c.keys)
}

// Rounds 已定义的轮次（升序）
func (c *RoundSliceCache) Rounds() []int {
	return slices.Clone(c.keys)
}
