package game

// Countdown 计数屏障：预期次数的 Signal 全部到达后恰好触发一次回调
//
// 预期次数为 0 时在创建时立即触发；触发或取消之后的 Signal 被忽略。
type Countdown struct {
	remaining int
	fired     bool
	cancelled bool
	onZero    func()
}

// NewCountdown 创建屏障
func NewCountdown(expected int, onZero func()) *Countdown {
	c := &Countdown{remaining: max(0, expected), onZero: onZero}
	if c.remaining == 0 {
		c.fire()
	}
	return c
}

// Signal 记录一次完成，返回本次是否触发了回调
func (c *Countdown) Signal() bool {
	if c.fired || c.cancelled {
		return false
	}
	c.remaining--
	if c.remaining > 0 {
		return false
	}
	c.fire()
	return true
}

// Cancel 取消屏障，之后不会再触发
func (c *Countdown) Cancel() {
	c.cancelled = true
}

// Remaining 尚未到达的次数
func (c *Countdown) Remaining() int {
	return c.remaining
}

// Fired 是否已触发
func (c *Countdown) Fired() bool {
	return c.fired
}

func (c *Countdown) fire() {
	c.fired = true
	if c.onZero != nil {
		c.onZero()
	}
}
