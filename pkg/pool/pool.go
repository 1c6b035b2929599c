// Package pool 提供可回收实体的对象池
//
// 实体在预热或池耗尽时创建，之后只回收、不单独销毁。
// 对象池只在单一逻辑线程上使用，不加锁。
package pool

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/decker502/wheel/pkg/logging"
)

// Poolable 可被对象池管理的实体
// Activate 在取出时调用，Deactivate 在归还时调用
type Poolable interface {
	comparable
	Activate()
	Deactivate()
}

// Pool 泛型对象池
//
// Get 优先从空闲队列（FIFO）取出，队列为空时按需新建一个，池无上限、不阻塞、不失败。
// Put 的前置条件：实体当前处于借出状态。
// 归还未借出的实体属于编程错误：pooldebug 构建下 panic，正式构建下记录警告并忽略。
type Pool[T Poolable] struct {
	factory     func() T
	free        []T
	outstanding map[T]struct{}
	created     int
	logger      *zap.Logger
}

// New 创建对象池并预热 warm 个实体
// 父级上下文（如渲染容器）由 factory 闭包捕获
func New[T Poolable](factory func() T, warm int, logger *zap.Logger) *Pool[T] {
	p := &Pool[T]{
		factory:     factory,
		free:        make([]T, 0, max(warm, 0)),
		outstanding: make(map[T]struct{}),
		logger:      logging.OrGlobal(logger).Named("Pool"),
	}

	for i := 0; i < warm; i++ {
		entity := p.factory()
		p.created++
		entity.Deactivate()
		p.free = append(p.free, entity)
	}

	return p
}

// Get 取出一个已激活的实体
func (p *Pool[T]) Get() T {
	var entity T
	if len(p.free) == 0 {
		entity = p.factory()
		p.created++
	} else {
		entity = p.free[0]
		var zero T
		p.free[0] = zero
		p.free = p.free[1:]
	}

	entity.Activate()
	p.outstanding[entity] = struct{}{}
	return entity
}

// Put 停用实体并放回空闲队列
func (p *Pool[T]) Put(entity T) {
	if _, ok := p.outstanding[entity]; !ok {
		if debugAssertions {
			panic(fmt.Sprintf("pool: returning entity %v that is not outstanding", entity))
		}
		p.logger.Warn("[Pool] 归还了未借出的实体，已忽略")
		return
	}

	delete(p.outstanding, entity)
	entity.Deactivate()
	p.free = append(p.free, entity)
}

// Free 空闲实体数量
func (p *Pool[T]) Free() int {
	return len(p.free)
}

// Outstanding 借出中的实体数量
func (p *Pool[T]) Outstanding() int {
	return len(p.outstanding)
}

// Created 池创建过的实体总数
func (p *Pool[T]) Created() int {
	return p.created
}
