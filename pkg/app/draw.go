package app

import (
	"fmt"
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/wheel/pkg/config"
	"github.com/decker502/wheel/pkg/types"
	"github.com/decker502/wheel/pkg/utils"
)

// 弹窗尺寸，弹窗居中于转盘
const (
	panelWidth  = 320.0
	panelHeight = 120.0
)

var (
	colorNormalBackground = color.RGBA{R: 28, G: 30, B: 44, A: 255}
	colorSafeBackground   = color.RGBA{R: 24, G: 60, B: 48, A: 255}
	colorSuperBackground  = color.RGBA{R: 70, G: 52, B: 12, A: 255}
	colorWheel            = color.RGBA{R: 52, G: 56, B: 80, A: 255}
	colorWheelBorder      = color.RGBA{R: 230, G: 230, B: 240, A: 255}
	colorIndicator        = color.RGBA{R: 240, G: 60, B: 60, A: 255}
	colorIndicatorLit     = color.RGBA{R: 255, G: 230, B: 90, A: 255}
	colorCellNormal       = color.RGBA{R: 60, G: 64, B: 90, A: 255}
	colorCellSafe         = color.RGBA{R: 90, G: 200, B: 140, A: 255}
	colorCellSuper        = color.RGBA{R: 250, G: 200, B: 60, A: 255}
	colorPanel            = color.RGBA{R: 12, G: 12, B: 20, A: 220}
	colorIcon             = color.RGBA{R: 255, G: 215, B: 0, A: 255}
	colorBomb             = color.RGBA{R: 200, G: 40, B: 40, A: 255}
)

// Draw 绘制游戏画面
// 每帧调用一次
func (a *App) Draw(screen *ebiten.Image) {
	v := a.view

	switch v.zone {
	case types.ZoneSafe:
		screen.Fill(colorSafeBackground)
	case types.ZoneSuper:
		screen.Fill(colorSuperBackground)
	default:
		screen.Fill(colorNormalBackground)
	}

	if a.settings.GetSettings().ShowWindow {
		a.drawZoneWindow(screen)
	}
	a.drawWheel(screen)
	a.drawInventory(screen)
	a.drawFlyingIcons(screen)
	a.drawExitButton(screen)
	a.drawPopups(screen)
	a.drawHUD(screen)
}

// drawZoneWindow 区域计数器条，当前轮次居中，平移动画时整体偏移
func (a *App) drawZoneWindow(screen *ebiten.Image) {
	v := a.view
	cell := config.ZoneCellWidth + config.ZoneCellSpacing
	windowSize := a.session.Config().Zone.WindowSize
	left := (float64(config.ScreenWidth) - float64(windowSize)*cell) / 2
	offset := a.shift.Offset()

	for _, slot := range v.window {
		x := left + float64(slot.Zone-v.firstShown)*cell + offset
		if x+cell < 0 || x > config.ScreenWidth {
			continue
		}

		fill := colorCellNormal
		switch slot.Type {
		case types.ZoneSafe:
			fill = colorCellSafe
		case types.ZoneSuper:
			fill = colorCellSuper
		}
		vector.DrawFilledRect(screen, float32(x+1), float32(config.ZoneCounterY), float32(config.ZoneCellWidth-2), 32, fill, false)
		if slot.IsCurrent {
			vector.StrokeRect(screen, float32(x+1), float32(config.ZoneCounterY), float32(config.ZoneCellWidth-2), 32, 3, colorWheelBorder, false)
		}

		label := fmt.Sprintf("%d", slot.Zone)
		a.drawLabel(screen, label, x+config.ZoneCellWidth/2, config.ZoneCounterY+8, slot.Color)
	}
}

// drawWheel 转盘：格子分界线和格子名称随转盘旋转，指示器固定在正上方
func (a *App) drawWheel(screen *ebiten.Image) {
	v := a.view
	cx, cy, r := float32(config.WheelCenterX), float32(config.WheelCenterY), float32(config.WheelRadius)

	vector.DrawFilledCircle(screen, cx, cy, r, colorWheel, true)
	vector.StrokeCircle(screen, cx, cy, r, 4, colorWheelBorder, true)

	n := len(v.slices)
	if n > 0 {
		per := 360.0 / float64(n)
		rotation := a.wheelAnim.Rotation()
		for i, slice := range v.slices {
			// 第 i 格的中心角（从正上方顺时针）
			center := float64(i)*per + rotation
			bx, by := polar(center-per/2, config.WheelRadius)
			vector.StrokeLine(screen, cx, cy, cx+float32(bx), cy+float32(by), 2, colorWheelBorder, true)

			lx, ly := polar(center, config.WheelRadius*0.68)
			clr := color.Color(colorWheelBorder)
			if slice.Bomb {
				clr = colorBomb
			}
			a.drawLabel(screen, sliceLabel(slice), config.WheelCenterX+lx, config.WheelCenterY+ly-7, clr)
		}
	}

	indicator := colorIndicator
	if v.highlight > 0 {
		indicator = colorIndicatorLit
	}
	top := cy - r
	vector.StrokeLine(screen, cx-14, top-22, cx, top+6, 4, indicator, true)
	vector.StrokeLine(screen, cx+14, top-22, cx, top+6, 4, indicator, true)

	if v.visuals.Title != "" {
		titleColor := color.Color(colorWheelBorder)
		if v.visuals.TextColor != nil {
			titleColor = v.visuals.TextColor.RGBA()
		}
		a.drawTitle(screen, v.visuals.Title, config.WheelCenterX, config.WheelCenterY+config.WheelRadius+16, titleColor)
	}
}

// drawInventory 背包槽位
func (a *App) drawInventory(screen *ebiten.Image) {
	ebitenutil.DebugPrintAt(screen, "INVENTORY", int(config.InventoryOriginX-24), int(config.InventoryOriginY-56))

	for _, slot := range a.session.Inventory().Entries() {
		p := slot.Anchor()
		x := float32(p.X - config.InventoryCellWidth/2 + 4)
		y := float32(p.Y - config.InventoryCellHeight/2 + 4)
		vector.DrawFilledRect(screen, x, y, config.InventoryCellWidth-8, config.InventoryCellHeight-8, colorPanel, false)
		vector.StrokeRect(screen, x, y, config.InventoryCellWidth-8, config.InventoryCellHeight-8, 1, colorWheelBorder, false)
		ebitenutil.DebugPrintAt(screen, slot.ID(), int(x)+4, int(y)+6)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("x%d", slot.Count()), int(x)+4, int(y)+38)
	}
}

// drawFlyingIcons 正在飞行的奖励图标
func (a *App) drawFlyingIcons(screen *ebiten.Image) {
	for _, icon := range a.icons.Icons() {
		vector.DrawFilledCircle(screen, float32(icon.Position.X), float32(icon.Position.Y), 7, colorIcon, true)
	}
}

// drawPopups 奖励、炸弹和退出弹窗
func (a *App) drawPopups(screen *ebiten.Image) {
	v := a.view
	switch {
	case v.bomb != nil:
		a.drawPanel(screen, "BOOM!", []string{"You hit a bomb.", "[R] Revive   [G] Give up"}, colorBomb)
	case v.exitOpen:
		a.drawPanel(screen, "LEAVE?", []string{
			fmt.Sprintf("Collect %d reward types and end the run.", a.session.Inventory().Len()),
			"[C] Collect   [B] Back",
		}, colorCellSafe)
	case v.reward != nil:
		a.drawPanel(screen, v.reward.DisplayName(), []string{fmt.Sprintf("x%d", v.reward.Count)}, colorIcon)
	}
}

// drawExitButton 退出按钮，只在安全/超级区域可用时高亮
func (a *App) drawExitButton(screen *ebiten.Image) {
	r := exitButtonRect
	border := color.Color(colorCellNormal)
	if a.session.Exit().CanExit() {
		border = colorCellSafe
	}
	vector.DrawFilledRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), colorPanel, false)
	vector.StrokeRect(screen, float32(r.X), float32(r.Y), float32(r.Width), float32(r.Height), 2, border, false)
	a.drawLabel(screen, "EXIT", r.X+r.Width/2, r.Y+10, border)
}

func (a *App) drawPanel(screen *ebiten.Image, title string, lines []string, accent color.Color) {
	x, y := panelRect.X, panelRect.Y
	vector.DrawFilledRect(screen, float32(x), float32(y), panelWidth, panelHeight, colorPanel, false)
	vector.StrokeRect(screen, float32(x), float32(y), panelWidth, panelHeight, 2, accent, false)

	a.drawTitle(screen, title, config.WheelCenterX, y+10, accent)
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, int(x)+16, int(y)+56+i*18)
	}
}

// drawHUD 轮次信息、记录和按键提示
func (a *App) drawHUD(screen *ebiten.Image) {
	v := a.view
	s := a.settings.GetSettings()
	records := a.settings.Records()

	spin := "[SPACE] Spin"
	if !v.spinEnabled {
		spin = "(spinning)"
	}
	auto := "off"
	if s.AutoSpin {
		auto = "on"
	}

	hint := spin + "  [E] Exit  [A] Auto " + auto + "  [M] Sound  [F11] Fullscreen"
	if utils.IsMobile() {
		hint = "Tap the wheel to spin"
	}

	lines := []string{
		fmt.Sprintf("Round %d  %s  %s", v.round, v.zone, v.tier),
		fmt.Sprintf("Next safe %d  Next super %d", v.nextSafe, v.nextSuper),
		fmt.Sprintf("Best round %d  Runs %d  Collected %d", records.BestRound, records.SessionsPlayed, records.Total()),
		hint,
	}
	for i, line := range lines {
		ebitenutil.DebugPrintAt(screen, line, 10, config.ScreenHeight-76+i*18)
	}
}

// drawTitle 居中绘制标题文字；无界面模式下没有字体时使用调试字体
func (a *App) drawTitle(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	a.drawText(screen, a.titleFace, str, x, y, clr)
}

func (a *App) drawLabel(screen *ebiten.Image, str string, x, y float64, clr color.Color) {
	a.drawText(screen, a.labelFace, str, x, y, clr)
}

func (a *App) drawText(screen *ebiten.Image, face *text.GoTextFace, str string, x, y float64, clr color.Color) {
	if face == nil {
		ebitenutil.DebugPrintAt(screen, str, int(x)-len(str)*3, int(y))
		return
	}
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = text.AlignCenter
	text.Draw(screen, str, face, op)
}

// polar 从正上方顺时针 deg 度、半径 r 处相对圆心的偏移
func polar(deg, r float64) (float64, float64) {
	rad := deg * math.Pi / 180
	return r * math.Sin(rad), -r * math.Cos(rad)
}

func sliceLabel(s *types.RewardSlice) string {
	if s.Bomb {
		return "BOMB"
	}
	return fmt.Sprintf("%s x%d", s.DisplayName(), s.Count)
}
