package app

import (
	"testing"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/types"
)

func TestSessionViewRewardPopupDelay(t *testing.T) {
	v := newSessionView()
	var from *types.Point

	v.ShowReward(rewardSlice("gold", 10), func(p types.Point) { from = &p })
	v.Update(rewardPopupDelay / 2)
	if from != nil {
		t.Fatal("弹窗停留时间未到，不应通知")
	}

	v.Update(rewardPopupDelay)
	if from == nil {
		t.Fatal("弹窗停留结束后应通知")
	}
	if from.X != config.PopupIconX || from.Y != config.PopupIconY {
		t.Errorf("图标起点 = %+v", *from)
	}

	// 只通知一次
	from = nil
	v.Update(1)
	if from != nil {
		t.Error("不应重复通知")
	}
}

func TestSessionViewHideRewardCancels(t *testing.T) {
	v := newSessionView()
	called := false

	v.ShowReward(rewardSlice("gold", 10), func(types.Point) { called = true })
	v.HideReward()
	v.Update(1)

	if called || v.reward != nil {
		t.Error("隐藏弹窗后不应再通知")
	}
}

func TestSessionViewHighlightFades(t *testing.T) {
	v := newSessionView()
	v.HighlightIndicator()
	if v.highlight <= 0 {
		t.Fatal("应高亮指示器")
	}
	v.Update(1)
	if v.highlight != 0 {
		t.Errorf("highlight = %v, want 0", v.highlight)
	}
}

func TestSessionViewReset(t *testing.T) {
	v := newSessionView()
	v.ShowBomb(&types.RewardSlice{ID: "bomb", Bomb: true})
	v.ShowExitPopup()
	v.ShowReward(rewardSlice("gold", 1), func(types.Point) {})

	v.reset()
	if v.bomb != nil || v.exitOpen || v.reward != nil || v.rewardPending != nil {
		t.Error("reset 应关闭所有弹窗")
	}
}

func TestPolar(t *testing.T) {
	tests := []struct {
		deg   float64
		wantX float64
		wantY float64
	}{
		{0, 0, -10},
		{90, 10, 0},
		{180, 0, 10},
		{270, -10, 0},
	}

	for _, tt := range tests {
		x, y := polar(tt.deg, 10)
		if !near(x, tt.wantX) || !near(y, tt.wantY) {
			t.Errorf("polar(%v) = (%v, %v), want (%v, %v)", tt.deg, x, y, tt.wantX, tt.wantY)
		}
	}
}

func near(a, b float64) bool {
	d := a - b
	return d < 1e-9 && d > -1e-9
}
