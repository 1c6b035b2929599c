package event

import (
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// recordLine 事件记录的一行
type recordLine struct {
	Seq   int    `json:"seq"`
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// Recorder 调试工具：把输出事件逐行写成 JSON
//
// 写入失败只记录第一次的错误，不影响游戏流程。
type Recorder struct {
	bus  *Bus
	enc  *jsoniter.Encoder
	seq  int
	subs []Subscription
	err  error
}

// NewRecorder 创建记录器并订阅所有输出事件
func NewRecorder(bus *Bus, w io.Writer) *Recorder {
	r := &Recorder{
		bus: bus,
		enc: json.NewEncoder(w),
	}

	r.subs = append(r.subs,
		Subscribe(bus, func(e RoundAdvanced) { r.write("RoundAdvanced", e) }),
		Subscribe(bus, func(e SafeZoneUpdated) { r.write("SafeZoneUpdated", e) }),
		Subscribe(bus, func(e SuperZoneUpdated) { r.write("SuperZoneUpdated", e) }),
		Subscribe(bus, func(e WheelSpinStarted) { r.write("WheelSpinStarted", map[string]string{"tier": e.Tier.String()}) }),
		Subscribe(bus, func(e WheelSpinStopped) { r.write("WheelSpinStopped", e.Result) }),
		Subscribe(bus, func(e BombTriggered) { r.write("BombTriggered", e.Slice) }),
		Subscribe(bus, func(e RewardCollected) { r.write("RewardCollected", e.Slice) }),
		Subscribe(bus, func(e SessionReset) { r.write("SessionReset", e) }),
	)
	return r
}

func (r *Recorder) write(name string, data any) {
	r.seq++
	if r.err != nil {
		return
	}
	r.err = r.enc.Encode(recordLine{Seq: r.seq, Event: name, Data: data})
}

// Count 已记录的事件数量
func (r *Recorder) Count() int {
	return r.seq
}

// Err 返回第一次写入错误
func (r *Recorder) Err() error {
	return r.err
}

// Close 退订所有事件
func (r *Recorder) Close() {
	UnsubscribeAll(r.bus, r.subs)
	r.subs = nil
}
