package termui

import (
	"fmt"
	"strings"

	"go-dungeon-defense/internal/app"
	"go-dungeon-defense/internal/event"
	"go-dungeon-defense/internal/types"
	"go-dungeon-defense/pkg/gridmap"

	"github.com/gdamore/tcell/v2"
)

// Controller переводит нажатия клавиш в действия над игрой.
type Controller struct {
	game   *app.Game
	Cursor gridmap.Point
	Build  int
	Notice string
	ids    []string
}

func NewController(g *app.Game) *Controller {
	c := &Controller{
		game:   g,
		Cursor: g.World.Grid.Entry,
		ids:    g.Library().StructureIDs(),
	}
	g.EventDispatcher.Subscribe(event.ActionRejected, c)
	return c
}

// OnEvent запоминает причину последнего отклонённого действия.
func (c *Controller) OnEvent(e event.Event) {
	if data, ok := e.Data.(event.RejectionData); ok {
		c.Notice = fmt.Sprintf("%s: %v", data.Action, data.Reason)
	}
}

// Selected returns the archetype that Enter builds.
func (c *Controller) Selected() string {
	return c.ids[c.Build]
}

// BuildRow lists the archetypes with the current one bracketed.
func (c *Controller) BuildRow() string {
	parts := make([]string, len(c.ids))
	for i, id := range c.ids {
		def := c.game.Library().Structures[id]
		label := fmt.Sprintf("%d %s %d", i+1, def.Name, def.Cost)
		if i == c.Build {
			label = "[" + label + "]"
		}
		parts[i] = label
	}
	return strings.Join(parts, "  ")
}

// ResearchRows lists permanent upgrades with their next price.
func (c *Controller) ResearchRows() []string {
	state := c.game.Progress
	lib := c.game.Library()
	keys := lib.UpgradeKeys()
	rows := make([]string, len(keys))
	for i, key := range keys {
		def := lib.Upgrades[key]
		price := "max"
		if cost, err := state.NextCost(lib, key); err == nil {
			price = fmt.Sprint(cost)
		}
		rows[i] = fmt.Sprintf("%d %-18s %d/%d  cost %s", i+1, def.Name, state.Level(key), def.MaxLevel, price)
	}
	return rows
}

// HandleKey applies one key press. It reports true when the player wants to quit.
func (c *Controller) HandleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyUp:
		c.move(0, -1)
	case tcell.KeyDown:
		c.move(0, 1)
	case tcell.KeyLeft:
		c.move(-1, 0)
	case tcell.KeyRight:
		c.move(1, 0)
	case tcell.KeyEnter:
		c.enter()
	case tcell.KeyRune:
		return c.handleRune(ev.Rune())
	}
	return false
}

func (c *Controller) handleRune(ch rune) bool {
	if ch >= '1' && ch <= '9' {
		c.digit(int(ch - '1'))
		return false
	}
	switch ch {
	case 'q':
		return true
	case 'k':
		c.move(0, -1)
	case 'j':
		c.move(0, 1)
	case 'h':
		c.move(-1, 0)
	case 'l':
		c.move(1, 0)
	case 'b':
		c.enter()
	case 'u':
		if id, ok := c.game.StructureAt(c.Cursor); ok {
			c.clearOnSuccess(c.game.UpgradeStructure(id))
		}
	case 's':
		if id, ok := c.game.StructureAt(c.Cursor); ok {
			if refund, err := c.game.SellStructure(id); err == nil {
				c.Notice = fmt.Sprintf("sold for %d", refund)
			}
		}
	case ' ', 'n':
		if bonus, err := c.game.StartWaveEarly(); err == nil {
			c.Notice = fmt.Sprintf("early start +%d", bonus)
		}
	case 'p':
		c.game.TogglePause()
	case 'f':
		c.game.CycleSpeed()
	case 'r':
		c.restart()
	}
	return false
}

// restart abandons the current run at any phase.
func (c *Controller) restart() {
	if err := c.game.Reset(); err != nil {
		c.Notice = err.Error()
		return
	}
	c.Cursor = c.game.World.Grid.Entry
	c.Notice = ""
}

func (c *Controller) digit(i int) {
	if c.game.ECS.Wave.Phase.Terminal() {
		keys := c.game.Library().UpgradeKeys()
		if i < len(keys) {
			if err := c.game.PurchaseResearch(keys[i]); err == nil {
				c.Notice = "purchased " + c.game.Library().Upgrades[keys[i]].Name
			}
		}
		return
	}
	if i < len(c.ids) {
		c.Build = i
	}
}

func (c *Controller) enter() {
	if c.game.ECS.Wave.Phase.Terminal() {
		c.restart()
		return
	}
	if id, ok := c.game.StructureAt(c.Cursor); ok {
		c.game.SelectStructure(id)
		return
	}
	_, err := c.game.PlaceStructure(c.Selected(), c.Cursor)
	c.clearOnSuccess(err)
}

func (c *Controller) clearOnSuccess(err error) {
	if err == nil {
		c.Notice = ""
	}
}

func (c *Controller) move(dx, dy int) {
	next := gridmap.Point{X: c.Cursor.X + dx, Y: c.Cursor.Y + dy}
	if c.game.World.Grid.Contains(next) {
		c.Cursor = next
	}
	if id, ok := c.game.StructureAt(c.Cursor); ok {
		c.game.SelectStructure(id)
	} else {
		c.game.SelectStructure(types.NoEntity)
	}
}
