package components

import "github.com/decker502/wheel/pkg/types"

// FlyingIcon 奖励发放时从弹窗飞向背包的图标（对象池实体）
type FlyingIcon struct {
	Icon     string      // 图标资源ID
	Position types.Point // 当前屏幕位置，由动画系统更新
	active   bool
}

// Activate 实现 pool.Poolable
func (f *FlyingIcon) Activate() {
	f.active = true
}

// Deactivate 实现 pool.Poolable
func (f *FlyingIcon) Deactivate() {
	f.active = false
	f.Icon = ""
}

// Active 图标是否在使用中
func (f *FlyingIcon) Active() bool {
	return f.active
}

// Setup 设置图标和起始位置
func (f *FlyingIcon) Setup(icon string, from types.Point) {
	f.Icon = icon
	f.Position = from
}
