// Package event 提供类型化的发布/订阅消息总线
//
// 总线是会话根对象持有的显式上下文（不是进程级单例），
// 所有组件之间只通过事件通信，不持有彼此的内部引用。
//
// 语义：
//   - 以事件的具体 Go 类型为键，每个类型维护一个按注册顺序排列的处理器列表；
//     订阅时 T 应为具体事件类型，发布时接口类型的值按其动态类型分发
//   - Publish 在调用方 goroutine 上同步分发，分发前对处理器列表做快照，
//     分发过程中的订阅/退订不影响本次分发
//   - 每个处理器独立隔离：处理器 panic 会被恢复并记录错误日志，不影响后续处理器
//   - 总线只在单一逻辑线程上使用，不加锁
package event

import (
	"fmt"
	"reflect"
	"slices"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/logging"
)

// Subscription 订阅句柄，用于退订
// 零值表示无效句柄，退订零值是空操作
type Subscription struct {
	eventType reflect.Type
	id        uint64
}

// Valid 句柄是否来自一次成功的订阅
func (s Subscription) Valid() bool {
	return s.id != 0
}

type handlerEntry struct {
	id uint64
	fn func(any)
}

// Bus 事件总线
type Bus struct {
	nextID   uint64
	handlers map[reflect.Type][]handlerEntry
	logger   *zap.Logger
}

// NewBus 创建事件总线，logger 为 nil 时使用全局日志器
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		nextID:   1,
		handlers: make(map[reflect.Type][]handlerEntry),
		logger:   logging.OrGlobal(logger).Named("EventBus"),
	}
}

// Subscribe 为事件类型 T 注册处理器
func Subscribe[T any](b *Bus, handler func(T)) Subscription {
	if handler == nil {
		return Subscription{}
	}

	eventType := reflect.TypeFor[T]()
	id := b.nextID
	b.nextID++

	b.handlers[eventType] = append(b.handlers[eventType], handlerEntry{
		id: id,
		fn: func(ev any) { handler(ev.(T)) },
	})
	return Subscription{eventType: eventType, id: id}
}

// Unsubscribe 移除订阅；句柄不存在时为空操作
func Unsubscribe(b *Bus, sub Subscription) {
	if !sub.Valid() {
		return
	}

	entries, ok := b.handlers[sub.eventType]
	if !ok {
		return
	}

	idx := slices.IndexFunc(entries, func(e handlerEntry) bool { return e.id == sub.id })
	if idx < 0 {
		return
	}

	// 不在原数组上原地删除，正在进行的分发持有的是快照
	remaining := make([]handlerEntry, 0, len(entries)-1)
	remaining = append(remaining, entries[:idx]...)
	remaining = append(remaining, entries[idx+1:]...)

	if len(remaining) == 0 {
		delete(b.handlers, sub.eventType)
		return
	}
	b.handlers[sub.eventType] = remaining
}

// UnsubscribeAll 批量退订
func UnsubscribeAll(b *Bus, subs []Subscription) {
	for _, sub := range subs {
		Unsubscribe(b, sub)
	}
}

// Publish 将事件同步分发给事件具体类型的所有处理器
// 没有订阅者时为空操作。T 为接口类型时（例如通过 any 变量发布）按动态类型路由，
// nil 接口值被忽略。
func Publish[T any](b *Bus, ev T) {
	eventType := reflect.TypeFor[T]()
	if eventType.Kind() == reflect.Interface {
		if any(ev) == nil {
			return
		}
		eventType = reflect.TypeOf(ev)
	}
	entries := b.handlers[eventType]
	if len(entries) == 0 {
		return
	}

	snapshot := slices.Clone(entries)
	for _, entry := range snapshot {
		b.dispatch(eventType, entry, ev)
	}
}

// dispatch 调用单个处理器并隔离其 panic
func (b *Bus) dispatch(eventType reflect.Type, entry handlerEntry, ev any) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("[EventBus] 处理器执行失败",
				zap.String("event", eventType.String()),
				zap.Uint64("handler", entry.id),
				zap.String("panic", fmt.Sprint(r)),
			)
		}
	}()
	entry.fn(ev)
}

// HandlerCount 返回事件类型 T 当前注册的处理器数量
func HandlerCount[T any](b *Bus) int {
	return len(b.handlers[reflect.TypeFor[T]()])
}

// Reset 清空所有处理器（测试之间或会话结束时使用）
func (b *Bus) Reset() {
	clear(b.handlers)
}
