// internal/state/game_state.go
package state

import (
	"fmt"
	"image/color"
	"log"
	"time"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/component"
	"go-dungeon-defense/internal/config"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/internal/ui"
	"go-dungeon-defense/pkg/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
)

var digitKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// GameState — состояние игры
type GameState struct {
	sm             *StateMachine
	game           *app.Game
	renderer       *render.GridRenderer
	indicator      *ui.StateIndicator
	speedButton    *ui.SpeedButton
	pauseButton    *ui.PauseButton
	waveIndicator  *ui.WaveIndicator
	livesIndicator *ui.LivesIndicator
	rankIndicator  *ui.RankIndicator
	palette        *ui.BuildPalette
	infoPanel      *ui.InfoPanel
	renderedRun    string
	notice         string
	noticeTimer    float64
	lastClickTime  time.Time
}

func NewGameState(sm *StateMachine) *GameState {
	g := sm.Session.Game
	face := sm.Session.Face

	mapColors := &render.MapColors{
		BackgroundColor: config.BackgroundColor,
		OpenColor:       config.OpenColor,
		WallColor:       config.WallColor,
		PathColor:       config.PathColor,
		EntryColor:      config.EntryColor,
		ExitColor:       config.ExitColor,
		TextDarkColor:   config.TextDarkColor,
		TextLightColor:  config.TextLightColor,
		StrokeWidth:     float32(config.StrokeWidth),
	}
	entityColors := render.EntityColors{
		StrokeColor:      config.TowerStrokeColor,
		UltimateColor:    config.UltimateColor,
		DamageFlashColor: config.DamageFlashColor,
		SlowedColor:      config.SlowedColor,
		HealthBarColor:   config.HealthBarColor,
	}
	renderer := render.NewGridRenderer(config.TileSize, config.MapOffsetX, config.MapOffsetY,
		config.ScreenWidth, config.ScreenHeight, face, mapColors, entityColors)

	gs := &GameState{
		sm:       sm,
		game:     g,
		renderer: renderer,
		indicator: ui.NewStateIndicator(
			float32(config.ScreenWidth-config.IndicatorOffsetX),
			float32(config.IndicatorOffsetX)+40,
			float32(config.IndicatorRadius),
		),
		speedButton:    ui.NewSpeedButton(config.SpeedButtonX, config.SpeedButtonY, config.SpeedButtonSize, config.SpeedButtonColors),
		pauseButton:    ui.NewPauseButton(config.PauseButtonX, config.PauseButtonY, config.PauseButtonSize, config.PauseColor, config.PlayColor),
		waveIndicator:  ui.NewWaveIndicator(config.ScreenWidth/2, 40),
		livesIndicator: ui.NewLivesIndicator(12, 30),
		rankIndicator:  ui.NewRankIndicator(12, config.ScreenHeight-180),
		palette:        ui.NewBuildPalette(config.ScreenWidth-210, 110, 200, face, g.Library()),
		infoPanel:      ui.NewInfoPanel(face),
		lastClickTime:  time.Now(),
	}
	g.EventDispatcher.Subscribe(event.ActionRejected, gs)
	return gs
}

// OnEvent показывает причину отклонённого действия.
func (g *GameState) OnEvent(e event.Event) {
	if data, ok := e.Data.(event.RejectionData); ok {
		g.notice = fmt.Sprintf("%s: %v", data.Action, data.Reason)
		g.noticeTimer = config.NoticeDuration
	}
}

func (g *GameState) Enter() {
	g.speedButton.CurrentState = g.game.SpeedIndex()
}

func (g *GameState) Update(deltaTime float64) {
	g.infoPanel.Update()
	if g.noticeTimer > 0 {
		g.noticeTimer -= deltaTime
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyF9) || inpututil.IsKeyJustPressed(ebiten.KeyP) {
		g.sm.SetState(NewPauseState(g.sm, g))
		return
	}

	hud := g.game.HUD()
	if hud.Phase.Terminal() {
		g.game.Update(deltaTime) // доигрываем эффекты
		if inpututil.IsKeyJustPressed(ebiten.KeyEnter) || inpututil.IsKeyJustPressed(ebiten.KeyR) {
			g.sm.SetState(NewResearchState(g.sm, g))
		}
		return
	}

	g.handleKeys()
	g.game.Update(deltaTime)

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if !g.handleUIClick(x, y) {
			g.handleGameClick(x, y)
		}
		g.lastClickTime = time.Now()
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight) {
		g.deselect()
	}
}

func (g *GameState) handleKeys() {
	for i, key := range digitKeys {
		if i < g.palette.Len() && inpututil.IsKeyJustPressed(key) {
			g.palette.Select(i)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.startWaveEarly()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF) {
		g.cycleSpeed()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyU) {
		g.upgradeSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.sellSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.deselect()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.restartRun()
	}
}

// restartRun бросает текущий забег; прогресс не трогается.
func (g *GameState) restartRun() {
	if err := g.game.Reset(); err != nil {
		log.Printf("GameState: failed to restart run: %v", err)
		g.notice = err.Error()
		g.noticeTimer = config.NoticeDuration
		return
	}
	g.infoPanel.Hide()
	g.notice = ""
}

// handleUIClick обрабатывает клики по элементам интерфейса. Возвращает true, если клик попал в UI.
func (g *GameState) handleUIClick(x, y int) bool {
	cooldown := time.Duration(config.ClickCooldown) * time.Millisecond
	switch {
	case g.speedButton.IsClicked(x, y):
		if time.Since(g.speedButton.LastToggleTime) >= cooldown {
			g.cycleSpeed()
		}
	case g.pauseButton.IsClicked(x, y):
		if time.Since(g.pauseButton.LastToggleTime) >= cooldown {
			g.sm.SetState(NewPauseState(g.sm, g))
		}
	case g.indicator.IsClicked(x, y):
		if time.Since(g.indicator.LastClickTime) >= cooldown {
			g.indicator.HandleClick()
			g.startWaveEarly()
		}
	case g.infoPanel.Contains(x, y):
		switch g.infoPanel.HandleClick(x, y) {
		case ui.PanelUpgrade:
			g.upgradeSelected()
		case ui.PanelSell:
			g.sellSelected()
		}
	default:
		return false
	}
	return true
}

func (g *GameState) handleGameClick(x, y int) {
	tile := g.renderer.ScreenToTile(x, y)
	if id, ok := g.game.StructureAt(tile); ok {
		if err := g.game.SelectStructure(id); err == nil {
			g.infoPanel.Show()
		}
		return
	}
	if g.game.TileKindAt(tile) == app.TileOutside {
		g.deselect()
		return
	}
	if _, err := g.game.PlaceStructure(g.palette.Current(), tile); err != nil {
		log.Printf("GameState: %v", err)
	}
}

func (g *GameState) startWaveEarly() {
	if bonus, err := g.game.StartWaveEarly(); err == nil && bonus > 0 {
		g.notice = fmt.Sprintf("early start +%d", bonus)
		g.noticeTimer = config.NoticeDuration
	}
}

func (g *GameState) cycleSpeed() {
	g.game.CycleSpeed()
	g.speedButton.SetState(g.game.SpeedIndex())
}

func (g *GameState) selectedID() types.EntityID {
	if sel := g.game.HUD().Selected; sel != nil {
		return sel.ID
	}
	return types.NoEntity
}

func (g *GameState) upgradeSelected() {
	if id := g.selectedID(); id != types.NoEntity {
		g.game.UpgradeStructure(id)
	}
}

func (g *GameState) sellSelected() {
	if id := g.selectedID(); id != types.NoEntity {
		if _, err := g.game.SellStructure(id); err == nil {
			g.infoPanel.Hide()
		}
	}
}

func (g *GameState) deselect() {
	g.game.SelectStructure(types.NoEntity)
	g.infoPanel.Hide()
}

func (g *GameState) Draw(screen *ebiten.Image) {
	snap := g.game.Snapshot()
	hud := g.game.HUD()
	if g.renderedRun != hud.RunID {
		g.renderer.RenderMapImage(snap.Grid, snap.Path)
		g.renderedRun = hud.RunID
	}
	g.renderer.Draw(screen, snap)

	var stateColor color.RGBA
	switch hud.Phase {
	case component.PhaseIdle:
		stateColor = config.IdleStateColor
	default:
		stateColor = config.WaveStateColor
	}
	face := g.sm.Session.Face
	g.indicator.Draw(screen, stateColor)
	g.speedButton.Draw(screen)
	g.pauseButton.Draw(screen)
	g.waveIndicator.Draw(screen, face, hud.Wave, hud.TotalWaves, hud.BossWave)
	g.livesIndicator.Draw(screen, face, hud.Lives, config.StartingLives)
	g.rankIndicator.Draw(screen, face, hud.Rank, config.MaxRank, hud.Research, hud.Combo, hud.ComboTimer/config.ComboDecay)
	g.palette.Draw(screen, hud.Currency)
	g.infoPanel.Draw(screen, hud)

	status := fmt.Sprintf("Gold: %d   Kills: %d   x%.0f", hud.Currency, hud.Kills, hud.Speed)
	if hud.Phase == component.PhaseIdle {
		status += fmt.Sprintf("   next wave in %.0fs (space)", hud.Countdown)
	}
	text.Draw(screen, status, face, int(config.MapOffsetX), int(config.MapOffsetY)-12, config.TextLightColor)
	if hud.SaveFailed {
		text.Draw(screen, "progress could not be saved", face, int(config.MapOffsetX), config.ScreenHeight-8, config.DamageTextColor)
	}
	if g.noticeTimer > 0 {
		text.Draw(screen, g.notice, face, int(config.MapOffsetX), config.ScreenHeight-24, config.GoldTextColor)
	}

	if hud.Phase.Terminal() {
		g.drawRunOver(screen, hud)
	}
}

func (g *GameState) drawRunOver(screen *ebiten.Image, hud app.HUD) {
	face := g.sm.Session.Face
	title := "DEFEAT"
	if hud.Phase == component.PhaseWon {
		title = "VICTORY"
	}
	lines := []string{
		title,
		fmt.Sprintf("waves %d/%d, kills %d", hud.Wave, hud.TotalWaves, hud.Kills),
		fmt.Sprintf("research +%d", hud.LastAward),
		"press Enter",
	}
	y := config.ScreenHeight/2 - 30
	for _, line := range lines {
		bounds := text.BoundString(face, line)
		text.Draw(screen, line, face, (config.ScreenWidth-bounds.Dx())/2, y, color.White)
		y += config.HUDLineHeight
	}
}

func (g *GameState) Exit() {}
