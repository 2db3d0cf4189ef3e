package render

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/Garsondee/firing-range/internal/combatlog"
)

const (
	PanelWidth      = 340
	panelMaxEntries = 60
	panelLineHeight = 11
)

// ShotPanel is a ring buffer of combat log lines rendered on-screen.
type ShotPanel struct {
	entries []combatlog.Entry
	head    int
	count   int
	synced  int // log entries already copied
}

// NewShotPanel creates a panel with a fixed capacity.
func NewShotPanel() *ShotPanel {
	return &ShotPanel{
		entries: make([]combatlog.Entry, panelMaxEntries),
	}
}

// Add appends an entry to the panel.
func (sp *ShotPanel) Add(e combatlog.Entry) {
	sp.entries[sp.head] = e
	sp.head = (sp.head + 1) % panelMaxEntries
	if sp.count < panelMaxEntries {
		sp.count++
	}
}

// Sync copies entries the log gained since the last call.
func (sp *ShotPanel) Sync(log *combatlog.Log) {
	all := log.Entries()
	if len(all) < sp.synced {
		sp.synced = 0
	}
	for _, e := range all[sp.synced:] {
		sp.Add(e)
	}
	sp.synced = len(all)
}

// Recent returns entries in chronological order (oldest first).
func (sp *ShotPanel) Recent() []combatlog.Entry {
	result := make([]combatlog.Entry, sp.count)
	for i := 0; i < sp.count; i++ {
		idx := (sp.head - sp.count + i + panelMaxEntries) % panelMaxEntries
		result[i] = sp.entries[idx]
	}
	return result
}

func categoryColor(cat string) color.RGBA {
	switch cat {
	case combatlog.CatFire:
		return color.RGBA{R: 230, G: 200, B: 90, A: 255}
	case combatlog.CatHitscan:
		return color.RGBA{R: 210, G: 120, B: 70, A: 255}
	case combatlog.CatProjectile:
		return color.RGBA{R: 150, G: 210, B: 90, A: 255}
	case combatlog.CatEffect:
		return color.RGBA{R: 220, G: 80, B: 80, A: 255}
	case combatlog.CatConfig:
		return color.RGBA{R: 160, G: 120, B: 220, A: 255}
	default:
		return color.RGBA{R: 150, G: 150, B: 150, A: 255}
	}
}

// Draw renders the panel along the right edge, newest line at the bottom.
func (sp *ShotPanel) Draw(screen *ebiten.Image, panelX int, panelH int) {
	vector.FillRect(screen, float32(panelX), 0, float32(PanelWidth), float32(panelH), color.RGBA{R: 10, G: 12, B: 10, A: 248}, false)
	vector.StrokeLine(screen, float32(panelX), 0, float32(panelX), float32(panelH), 1.0, color.RGBA{R: 50, G: 70, B: 50, A: 255}, false)

	vector.FillRect(screen, float32(panelX), 0, float32(PanelWidth), 16, color.RGBA{R: 20, G: 30, B: 20, A: 255}, false)
	ebitenutil.DebugPrintAt(screen, "SHOT LOG", panelX+8, 2)
	vector.StrokeLine(screen, float32(panelX), 16, float32(panelX+PanelWidth), 16, 1.0, color.RGBA{R: 50, G: 80, B: 50, A: 200}, false)

	entries := sp.Recent()
	maxVisible := (panelH - 24) / panelLineHeight
	if len(entries) > maxVisible {
		entries = entries[len(entries)-maxVisible:]
	}

	const recent = 3
	y := 20
	for i, e := range entries {
		if i >= len(entries)-recent {
			vector.FillRect(screen, float32(panelX+2), float32(y), float32(PanelWidth-4), float32(panelLineHeight), color.RGBA{R: 30, G: 40, B: 30, A: 160}, false)
		}
		vector.FillRect(screen, float32(panelX+5), float32(y+3), 3, 5, categoryColor(e.Category), false)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%4d [%s] %s %s", e.Tick, e.Shooter, e.Key, e.Value), panelX+12, y)
		y += panelLineHeight
	}
}
