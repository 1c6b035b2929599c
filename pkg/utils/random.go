package utils

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand/v2"
)

// Rand 转盘使用的随机源
// *rand.Rand（math/rand/v2）满足此接口，测试中可以替换为固定序列
type Rand interface {
	// IntN 返回 [0, n) 内的均匀随机整数
	IntN(n int) int
	// Float64 返回 [0, 1) 内的均匀随机浮点数
	Float64() float64
}

// NewRand 使用给定种子创建确定性的随机源
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
}

// NewSeed 使用 crypto/rand 生成随机种子
func NewSeed() (uint64, error) {
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return binary.LittleEndian.Uint64(b[:]), nil
}

// RangeFloat 返回 [lo, hi] 内的均匀随机数；hi <= lo 时返回 lo
func RangeFloat(r Rand, lo, hi float64) float64 {
	if hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
