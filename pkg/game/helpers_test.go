package game

import (
	"testing"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/components"
	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/event"
	"github.com/decker502/wheel/pkg/types"
)

// fixedRand 固定结果的随机源：IntN 返回 index % n，Float64 返回 frac
type fixedRand struct {
	index int
	frac  float64
}

func (r *fixedRand) IntN(n int) int   { return r.index % n }
func (r *fixedRand) Float64() float64 { return r.frac }

type fakeSpin struct {
	duration float64
	angle    float64
	done     func()
}

// fakeAnimator 记录转动请求，由测试手动触发完成回调
type fakeAnimator struct {
	spins  []fakeSpin
	resets int
	stops  int
}

func (a *fakeAnimator) AnimateSpin(duration, targetAngle float64, onComplete func()) {
	a.spins = append(a.spins, fakeSpin{duration: duration, angle: targetAngle, done: onComplete})
}
func (a *fakeAnimator) ResetWheel() { a.resets++ }
func (a *fakeAnimator) StopAll()    { a.stops++ }

// finishLast 触发最近一次转动的完成回调
func (a *fakeAnimator) finishLast(t *testing.T) {
	t.Helper()
	if len(a.spins) == 0 {
		t.Fatal("没有进行中的转动")
	}
	a.spins[len(a.spins)-1].done()
}

// syncSpinAnimator 在 AnimateSpin 中同步完成转动
type syncSpinAnimator struct {
	spins int
}

func (a *syncSpinAnimator) AnimateSpin(_, _ float64, onComplete func()) {
	a.spins++
	onComplete()
}
func (a *syncSpinAnimator) ResetWheel() {}
func (a *syncSpinAnimator) StopAll()    {}

type fakeFlight struct {
	icon *components.FlyingIcon
	to   types.Point
	done func()
}

// fakeIconAnimator 记录图标动画，由测试按任意顺序触发到达回调
type fakeIconAnimator struct {
	scattered []*components.FlyingIcon
	flights   []fakeFlight
	stops     int
}

func (a *fakeIconAnimator) PlayScatter(icon *components.FlyingIcon, from types.Point) {
	a.scattered = append(a.scattered, icon)
}

func (a *fakeIconAnimator) PlayFlyTo(icon *components.FlyingIcon, to types.Point, onComplete func()) {
	a.flights = append(a.flights, fakeFlight{icon: icon, to: to, done: onComplete})
}

func (a *fakeIconAnimator) StopAll() { a.stops++ }

// syncIconAnimator 在 PlayFlyTo 中同步回调
type syncIconAnimator struct {
	flights int
}

func (a *syncIconAnimator) PlayScatter(*components.FlyingIcon, types.Point) {}
func (a *syncIconAnimator) PlayFlyTo(_ *components.FlyingIcon, _ types.Point, onComplete func()) {
	a.flights++
	onComplete()
}
func (a *syncIconAnimator) StopAll() {}

// recordingRenderer 记录渲染调用
type recordingRenderer struct {
	displayed  [][]*types.RewardSlice
	tiers      []types.WheelTier
	highlights int
}

func (r *recordingRenderer) DisplaySlices(slices []*types.RewardSlice) {
	r.displayed = append(r.displayed, slices)
}
func (r *recordingRenderer) UpdateWheelView(tier types.WheelTier, _ config.WheelVisuals) {
	r.tiers = append(r.tiers, tier)
}
func (r *recordingRenderer) HighlightIndicator() { r.highlights++ }

// capture 订阅事件类型 T 并记录收到的事件
func capture[T any](bus *event.Bus) *[]T {
	got := &[]T{}
	event.Subscribe(bus, func(e T) { *got = append(*got, e) })
	return got
}

func newTestBus() *event.Bus {
	return event.NewBus(zap.NewNop())
}

func slice(id string, count int) *types.RewardSlice {
	return &types.RewardSlice{ID: id, Name: id, Count: count, Icon: "ui_icon_" + id}
}

func bomb() *types.RewardSlice {
	return &types.RewardSlice{ID: "bomb", Count: 1, Bomb: true}
}

// testConfig 两个轮次定义的配置：第 1 轮和第 5 轮
func testConfig() *config.GameConfig {
	cfg := config.Default()
	cfg.Rounds = []config.RoundSliceSet{
		{Round: 1, Slices: []*types.RewardSlice{slice("gold", 100), slice("cash", 50), bomb(), slice("chest", 1)}},
		{Round: 5, Slices: []*types.RewardSlice{slice("gold", 500), slice("gem", 5), slice("cash", 250), slice("chest", 2)}},
	}
	config.ApplyDefaults(cfg)
	return cfg
}
