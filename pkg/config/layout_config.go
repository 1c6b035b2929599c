package config

// 桌面演示程序的屏幕布局常量（800x600 逻辑分辨率）

const (
	// ScreenWidth / ScreenHeight 逻辑屏幕尺寸
	ScreenWidth  = 800
	ScreenHeight = 600

	// WheelCenterX / WheelCenterY 转盘中心
	WheelCenterX = 300.0
	WheelCenterY = 320.0
	// WheelRadius 转盘半径
	WheelRadius = 180.0

	// ZoneCounterY 区域计数器条的Y位置
	ZoneCounterY = 40.0
	// ZoneCellWidth 单个计数器格子宽度
	ZoneCellWidth = 64.0
	// ZoneCellSpacing 计数器格子间距
	ZoneCellSpacing = 0.0

	// InventoryOriginX / InventoryOriginY 背包第一个槽位的图标锚点
	InventoryOriginX = 560.0
	InventoryOriginY = 120.0
	// InventoryColumns 背包列数
	InventoryColumns = 3
	// InventoryCellWidth / InventoryCellHeight 背包格子尺寸
	InventoryCellWidth  = 72.0
	InventoryCellHeight = 72.0

	// PopupIconX / PopupIconY 奖励弹窗图标位置（飞行图标起点）
	PopupIconX = 300.0
	PopupIconY = 320.0
)
