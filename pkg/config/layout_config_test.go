package config

import "testing"

// TestLayoutFitsScreen 转盘、计数器条和背包都在逻辑屏幕内且互不重叠
func TestLayoutFitsScreen(t *testing.T) {
	if WheelCenterX-WheelRadius < 0 || WheelCenterX+WheelRadius > ScreenWidth {
		t.Errorf("转盘水平方向超出屏幕: center=%.1f radius=%.1f", WheelCenterX, WheelRadius)
	}
	if WheelCenterY-WheelRadius <= ZoneCounterY+32 {
		t.Errorf("转盘与区域计数器条重叠: top=%.1f counterBottom=%.1f", WheelCenterY-WheelRadius, ZoneCounterY+32)
	}
	if WheelCenterY+WheelRadius > ScreenHeight {
		t.Errorf("转盘垂直方向超出屏幕: bottom=%.1f", WheelCenterY+WheelRadius)
	}

	inventoryLeft := InventoryOriginX - InventoryCellWidth/2
	if inventoryLeft <= WheelCenterX+WheelRadius {
		t.Errorf("背包与转盘重叠: inventoryLeft=%.1f wheelRight=%.1f", inventoryLeft, WheelCenterX+WheelRadius)
	}
	inventoryRight := InventoryOriginX + (InventoryColumns-0.5)*InventoryCellWidth
	if inventoryRight > ScreenWidth {
		t.Errorf("背包超出屏幕: right=%.1f", inventoryRight)
	}
}

func TestZoneWindowFitsScreen(t *testing.T) {
	cfg := Default()
	width := float64(cfg.Zone.WindowSize) * (ZoneCellWidth + ZoneCellSpacing)
	if width > ScreenWidth {
		t.Errorf("默认计数器窗口宽度 %.1f 超出屏幕宽度 %d", width, ScreenWidth)
	}
}

func TestPopupIconOnScreen(t *testing.T) {
	if PopupIconX < 0 || PopupIconX > ScreenWidth || PopupIconY < 0 || PopupIconY > ScreenHeight {
		t.Errorf("弹窗图标位置 (%.1f, %.1f) 不在屏幕内", PopupIconX, PopupIconY)
	}
}
