package app

import "go.uber.org/zap"

// AutoPlayResult 自动游戏的结果
type AutoPlayResult struct {
	Round     int  // 结束时所在轮次
	Ticks     int  // 推进的逻辑帧数
	Spins     int  // 转动次数
	HitBomb   bool // 是否因转到炸弹而停止
	Collected int  // 背包中的奖励种类数
}

// AutoPlay 无界面自动游戏
// 转盘可用时立即转动，直到到达 targetRound、转到炸弹或超过 maxTicks 帧。
func (a *App) AutoPlay(targetRound, maxTicks int) AutoPlayResult {
	var res AutoPlayResult
	zones := a.session.Zones()

	for res.Ticks < maxTicks {
		if zones.CurrentRound() >= targetRound {
			break
		}
		if a.session.Bomb().AwaitingDecision() {
			res.HitBomb = true
			break
		}
		if a.view.spinEnabled && a.RequestSpin() {
			res.Spins++
		}
		a.Step(FrameTime)
		res.Ticks++
	}

	res.Round = zones.CurrentRound()
	res.Collected = a.session.Inventory().Len()
	a.logger.Info("[App] 自动游戏结束",
		zap.Int("round", res.Round),
		zap.Int("spins", res.Spins),
		zap.Int("ticks", res.Ticks),
		zap.Bool("bomb", res.HitBomb),
	)
	return res
}
