package game

import (
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/types"
)

type sessionFixture struct {
	session  *Session
	animator *fakeAnimator
	icons    *fakeIconAnimator
	rng      *fixedRand
	spinView *recordingSpinButton
	exitView *recordingExitPresenter
}

type recordingSpinButton struct{ states []bool }

func (b *recordingSpinButton) SetSpinEnabled(enabled bool) { b.states = append(b.states, enabled) }

type recordingExitPresenter struct{ shows, hides int }

func (p *recordingExitPresenter) ShowExitPopup() { p.shows++ }
func (p *recordingExitPresenter) HideExitPopup() { p.hides++ }

func newSessionFixture(t *testing.T, cfg *config.GameConfig) *sessionFixture {
	t.Helper()
	f := &sessionFixture{
		animator: &fakeAnimator{},
		icons:    &fakeIconAnimator{},
		rng:      &fixedRand{index: 3, frac: 0.5}, // 第 1 轮 corrected=0 → gold
		spinView: &recordingSpinButton{},
		exitView: &recordingExitPresenter{},
	}

	s, err := NewSession(cfg, Collaborators{
		Animator:      f.animator,
		IconAnimator:  f.icons,
		SpinButton:    f.spinView,
		ExitPresenter: f.exitView,
	}, WithLogger(zap.NewNop()), WithRand(f.rng))
	if err != nil {
		t.Fatalf("NewSession failed: %v", err)
	}
	t.Cleanup(s.Close)
	f.session = s
	return f
}

// spinAndLand 点击转动并完成转动动画
func (f *sessionFixture) spinAndLand(t *testing.T) {
	t.Helper()
	if !f.session.Spin().RequestSpin() {
		t.Fatal("RequestSpin 失败")
	}
	f.animator.finishLast(t)
}

// landAllIcons 让所有飞行中的图标到达
func (f *sessionFixture) landAllIcons() {
	flights := f.icons.flights
	f.icons.flights = nil
	for _, flight := range flights {
		flight.done()
	}
}

func TestNewSessionMissingCollaborators(t *testing.T) {
	_, err := NewSession(testConfig(), Collaborators{}, WithLogger(zap.NewNop()))
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Fatalf("缺少协作者应返回 ErrMissingCollaborator，got %v", err)
	}

	_, err = NewSession(testConfig(), Collaborators{Animator: &fakeAnimator{}}, WithLogger(zap.NewNop()))
	if !errors.Is(err, ErrMissingCollaborator) {
		t.Errorf("缺少 IconAnimator 应返回 ErrMissingCollaborator，got %v", err)
	}
}

func TestNewSessionInvalidConfig(t *testing.T) {
	deps := Collaborators{Animator: &fakeAnimator{}, IconAnimator: &fakeIconAnimator{}}

	if _, err := NewSession(nil, deps); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("nil 配置应返回 ErrInvalidConfig，got %v", err)
	}

	cfg := testConfig()
	cfg.Zone.WindowSize = 1
	if _, err := NewSession(cfg, deps, WithLogger(zap.NewNop())); !errors.Is(err, config.ErrInvalidConfig) {
		t.Errorf("非法配置应返回 ErrInvalidConfig，got %v", err)
	}
}

func TestSessionRoundLoop(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session

	if s.ID() == "" {
		t.Fatal("会话应有ID")
	}

	// 第 1 轮：gold 首次获得，直接进入背包
	f.spinAndLand(t)
	if s.Zones().CurrentRound() != 2 {
		t.Fatalf("首次获得后应推进到第 2 轮，got %d", s.Zones().CurrentRound())
	}
	gold, ok := s.Inventory().Get("gold")
	if !ok || gold.Count() != 100 {
		t.Fatalf("gold = %v", gold)
	}
	if !s.Spin().Enabled() {
		t.Error("新一轮开始后转动按钮应可用")
	}

	// 第 2 轮：gold 再次获得，需要等待图标到达
	f.spinAndLand(t)
	if s.Zones().CurrentRound() != 2 || s.Rewards().State() != DeliveryFlying {
		t.Fatalf("图标到达前不应推进，round=%d state=%v", s.Zones().CurrentRound(), s.Rewards().State())
	}
	if s.Spin().Enabled() {
		t.Error("发放进行中转动按钮应不可用")
	}
	f.landAllIcons()
	if s.Zones().CurrentRound() != 3 || gold.Count() != 200 {
		t.Errorf("round=%d count=%d", s.Zones().CurrentRound(), gold.Count())
	}
}

func TestSessionBombAndRevive(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session
	bombs := capture[event.BombTriggered](s.Bus())

	f.rng.index = 1 // corrected = 4-1-1 = 2 → bomb
	f.spinAndLand(t)

	if len(*bombs) != 1 || !s.Bomb().AwaitingDecision() {
		t.Fatal("应触发炸弹并等待选择")
	}
	if s.Spin().Enabled() {
		t.Error("炸弹后转动按钮应不可用")
	}

	event.Publish(s.Bus(), event.ReviveButtonClicked{})
	if s.Bomb().AwaitingDecision() || !s.Spin().Enabled() {
		t.Error("复活后应关闭弹窗并恢复转动")
	}
	if s.Zones().CurrentRound() != 1 {
		t.Error("复活后继续同一轮")
	}
	if f.animator.resets == 0 {
		t.Error("复活应复位转盘")
	}
}

// TestSessionSynchronousSpin 转动动画同步完成时按钮状态仍由后续事件决定
func TestSessionSynchronousSpin(t *testing.T) {
	tests := []struct {
		name        string
		index       int
		wantBomb    bool
		wantEnabled bool
		wantRound   int
	}{
		{"转到炸弹", 1, true, false, 1},
		{"转到新奖励", 3, false, true, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			animator := &syncSpinAnimator{}
			s, err := NewSession(testConfig(), Collaborators{
				Animator:     animator,
				IconAnimator: &fakeIconAnimator{},
			}, WithLogger(zap.NewNop()), WithRand(&fixedRand{index: tt.index, frac: 0.5}))
			if err != nil {
				t.Fatalf("NewSession failed: %v", err)
			}
			t.Cleanup(s.Close)

			if !s.Spin().RequestSpin() {
				t.Fatal("同步完成的转动也应视为已开始")
			}
			if got := s.Bomb().AwaitingDecision(); got != tt.wantBomb {
				t.Errorf("AwaitingDecision = %v, want %v", got, tt.wantBomb)
			}
			if got := s.Spin().Enabled(); got != tt.wantEnabled {
				t.Errorf("Enabled = %v, want %v", got, tt.wantEnabled)
			}
			if got := s.Zones().CurrentRound(); got != tt.wantRound {
				t.Errorf("CurrentRound = %d, want %d", got, tt.wantRound)
			}

			if tt.wantBomb {
				if s.Spin().RequestSpin() || animator.spins != 1 {
					t.Error("等待炸弹选择时不能再次转动")
				}
				event.Publish(s.Bus(), event.ReviveButtonClicked{})
				if !s.Spin().Enabled() {
					t.Error("复活后应恢复转动")
				}
			}
		})
	}
}

func TestSessionGiveUpResets(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session
	resets := capture[event.SessionReset](s.Bus())
	firstID := s.ID()

	f.spinAndLand(t)
	f.rng.index = 1
	f.spinAndLand(t) // 第 2 轮转到炸弹

	event.Publish(s.Bus(), event.GiveUpButtonClicked{})

	if s.Zones().CurrentRound() != 1 || s.Inventory().Len() != 0 {
		t.Errorf("放弃后应回到第 1 轮并清空背包，round=%d items=%d", s.Zones().CurrentRound(), s.Inventory().Len())
	}
	if s.Bomb().AwaitingDecision() || !s.Spin().Enabled() {
		t.Error("放弃后应关闭炸弹弹窗并恢复转动")
	}
	if len(*resets) != 1 || (*resets)[0].SessionID == firstID || s.ID() != (*resets)[0].SessionID {
		t.Errorf("SessionReset 应携带新的会话ID: %+v", *resets)
	}
	if f.animator.stops == 0 {
		t.Error("重置应停止所有动画")
	}
}

func TestSessionResetMidDelivery(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session

	f.spinAndLand(t)
	f.spinAndLand(t) // gold 再次获得，图标飞行中
	if s.Rewards().State() != DeliveryFlying {
		t.Fatalf("state = %v, want flying", s.Rewards().State())
	}

	late := f.icons.flights
	s.Reset()

	for _, flight := range late {
		flight.done()
	}
	if s.Zones().CurrentRound() != 1 || s.Inventory().Len() != 0 {
		t.Errorf("重置后迟到的回调不应产生影响，round=%d items=%d", s.Zones().CurrentRound(), s.Inventory().Len())
	}
	if f.icons.stops == 0 {
		t.Error("重置应停止图标动画")
	}
}

func TestSessionExitFlow(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session

	if s.Exit().CanExit() || s.Exit().RequestExit() {
		t.Fatal("普通区域不允许退出")
	}

	// 第 1 轮 gold 首次获得；之后每轮都是 gold 且需要图标飞行
	f.spinAndLand(t)
	for s.Zones().CurrentRound() < 5 {
		f.spinAndLand(t)
		f.landAllIcons()
	}

	if !s.State().IsSafeZone() || !s.Exit().CanExit() {
		t.Fatal("第 5 轮安全区域应允许退出")
	}
	if s.Wheel().Tier() != types.TierSilver {
		t.Errorf("第 5 轮档位 = %v, want Silver", s.Wheel().Tier())
	}

	// 转动中不允许退出
	s.Spin().RequestSpin()
	if s.Exit().CanExit() {
		t.Error("转动中不允许退出")
	}
	f.animator.finishLast(t)
	f.landAllIcons()
	if s.Zones().CurrentRound() != 6 {
		t.Fatalf("round = %d, want 6", s.Zones().CurrentRound())
	}
	s.Reset()

	// 重新推进到第 5 轮后打开退出弹窗，返回游戏
	f.spinAndLand(t)
	for s.Zones().CurrentRound() < 5 {
		f.spinAndLand(t)
		f.landAllIcons()
	}
	if !s.Exit().RequestExit() || !s.Exit().IsOpen() || f.exitView.shows != 1 {
		t.Fatal("应打开退出弹窗")
	}
	s.Exit().GoBack()
	if s.Exit().IsOpen() || f.exitView.hides != 1 {
		t.Error("返回游戏应关闭弹窗")
	}

	// 领取奖励后会话重置
	s.Exit().RequestExit()
	s.Exit().Collect()
	if s.Zones().CurrentRound() != 1 || s.Exit().IsOpen() || s.Inventory().Len() != 0 {
		t.Errorf("领取后应重置会话，round=%d open=%v", s.Zones().CurrentRound(), s.Exit().IsOpen())
	}
}

func TestSessionResetIgnoresReentrantRequest(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session

	count := 0
	event.Subscribe(s.Bus(), func(event.SessionReset) {
		count++
		// 重置事件处理中再次请求重置
		event.Publish(s.Bus(), event.GiveUpButtonClicked{})
	})

	s.Reset()
	if count != 1 {
		t.Errorf("SessionReset 次数 = %d, want 1", count)
	}
}

func TestSessionClose(t *testing.T) {
	f := newSessionFixture(t, testConfig())
	s := f.session
	s.Close()

	if event.HandlerCount[event.RewardCollected](s.Bus()) != 0 {
		t.Error("Close 后不应有订阅")
	}
	event.Publish(s.Bus(), event.WheelSpinStartRequested{})
	if len(f.animator.spins) != 0 {
		t.Error("Close 后不应响应事件")
	}
}
