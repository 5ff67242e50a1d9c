// internal/ui/info_panel.go
package ui

import (
	"fmt"
	"image"
	"image/color"
	"math"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/config"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

const (
	panelHeight    = 120
	panelMargin    = 5
	animationSpeed = 10.0
	lineHeight     = 18
	columnSpacing  = 220
	buttonWidth    = 150
	buttonHeight   = 28
)

// PanelAction — действие, выбранное кликом по панели.
type PanelAction int

const (
	PanelNone PanelAction = iota
	PanelUpgrade
	PanelSell
)

// InfoPanel показывает выбранную структуру и кнопки улучшения и продажи.
type InfoPanel struct {
	IsVisible     bool
	fontFace      font.Face
	currentY      float64
	targetY       float64
	UpgradeButton *Button
	SellButton    *Button
}

// NewInfoPanel creates a new information panel.
func NewInfoPanel(face font.Face) *InfoPanel {
	return &InfoPanel{
		fontFace:      face,
		currentY:      config.ScreenHeight,
		targetY:       config.ScreenHeight,
		UpgradeButton: NewButton(image.Rectangle{}, "Upgrade"),
		SellButton:    NewButton(image.Rectangle{}, "Sell"),
	}
}

func (p *InfoPanel) Show() {
	p.IsVisible = true
	p.targetY = config.ScreenHeight - panelHeight
}

func (p *InfoPanel) Hide() {
	p.targetY = config.ScreenHeight
}

// Contains сообщает, попадает ли точка в видимую часть панели.
func (p *InfoPanel) Contains(x, y int) bool {
	return p.IsVisible && float64(y) >= p.currentY
}

func (p *InfoPanel) Update() {
	// Анимация панели
	if p.currentY != p.targetY {
		diff := p.targetY - p.currentY
		if math.Abs(diff) < animationSpeed {
			p.currentY = p.targetY
		} else {
			p.currentY += math.Copysign(animationSpeed, diff)
		}
	}
	if p.currentY >= config.ScreenHeight {
		p.IsVisible = false
	}

	top := int(p.currentY) + panelMargin + 10
	right := config.ScreenWidth - panelMargin - 10
	p.UpgradeButton.Rect = image.Rect(right-buttonWidth, top, right, top+buttonHeight)
	p.SellButton.Rect = image.Rect(right-buttonWidth, top+buttonHeight+8, right, top+2*buttonHeight+8)
}

// HandleClick возвращает действие под курсором.
func (p *InfoPanel) HandleClick(x, y int) PanelAction {
	if !p.IsVisible {
		return PanelNone
	}
	if p.UpgradeButton.Enabled && p.UpgradeButton.Contains(x, y) {
		return PanelUpgrade
	}
	if p.SellButton.Contains(x, y) {
		return PanelSell
	}
	return PanelNone
}

func (p *InfoPanel) Draw(screen *ebiten.Image, hud app.HUD) {
	if !p.IsVisible || hud.Selected == nil {
		return
	}
	sel := hud.Selected

	panelRect := image.Rect(panelMargin, int(p.currentY), config.ScreenWidth-panelMargin, int(p.currentY)+panelHeight)
	bgColor := color.RGBA{R: 20, G: 20, B: 30, A: 220}
	vector.DrawFilledRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), bgColor, true)
	vector.StrokeRect(screen, float32(panelRect.Min.X), float32(panelRect.Min.Y), float32(panelRect.Dx()), float32(panelRect.Dy()), 2, config.OpenColor, true)

	startX := panelRect.Min.X + 15
	y := panelRect.Min.Y + 22
	title := fmt.Sprintf("%s  lvl %d", sel.Name, sel.Level)
	titleColor := config.TextLightColor
	if sel.Ultimate {
		title += "  ULTIMATE"
		titleColor = config.UltimateColor
	}
	text.Draw(screen, title, p.fontFace, startX, y, titleColor)

	left := []string{fmt.Sprintf("HP: %d/%d", sel.Health, sel.MaxHealth)}
	right := []string{}
	st := sel.Stats
	if st.Damage > 0 {
		left = append(left, fmt.Sprintf("Damage: %d", st.Damage))
	}
	if st.Range > 0 {
		left = append(left, fmt.Sprintf("Range: %.1f", st.Range))
	}
	if st.Cooldown > 0 {
		right = append(right, fmt.Sprintf("Cooldown: %.2fs", st.Cooldown))
	}
	if st.SlowDuration > 0 {
		right = append(right, fmt.Sprintf("Slow: %.1fs", st.SlowDuration))
	}
	if st.Income > 0 {
		right = append(right, fmt.Sprintf("Income: %d", st.Income))
	}
	if st.SplashRadius > 0 {
		right = append(right, fmt.Sprintf("Splash: %.1f", st.SplashRadius))
	}
	for i, line := range left {
		text.Draw(screen, line, p.fontFace, startX, y+(i+1)*lineHeight, config.TextLightColor)
	}
	for i, line := range right {
		text.Draw(screen, line, p.fontFace, startX+columnSpacing, y+(i+1)*lineHeight, config.TextLightColor)
	}

	if sel.UpgradeCost > 0 {
		p.UpgradeButton.Text = fmt.Sprintf("Upgrade (%d)", sel.UpgradeCost)
		p.UpgradeButton.Enabled = hud.Currency >= sel.UpgradeCost
	} else {
		p.UpgradeButton.Text = "Max level"
		p.UpgradeButton.Enabled = false
	}
	p.SellButton.Text = fmt.Sprintf("Sell (+%d)", sel.SellValue)
	p.UpgradeButton.Draw(screen, p.fontFace)
	p.SellButton.Draw(screen, p.fontFace)
}
