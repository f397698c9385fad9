// internal/ui/inventory_bar.go
package ui

import (
	"fmt"
	"image"
	"image/color"

	"go-gem-defense/internal/config"
	"go-gem-defense/internal/entity"
	"go-gem-defense/internal/types"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"
)

// InventoryBar рисует ячейки инвентаря самоцветов столбиком.
type InventoryBar struct {
	X, Y     int
	SlotSize int
	Selected int // -1, если ничего не выбрано
	fontFace font.Face
}

func NewInventoryBar(x, y, slotSize int, face font.Face) *InventoryBar {
	return &InventoryBar{X: x, Y: y, SlotSize: slotSize, Selected: -1, fontFace: face}
}

func (b *InventoryBar) slotRect(i int) image.Rectangle {
	y := b.Y + i*(b.SlotSize+4)
	return image.Rect(b.X, y, b.X+b.SlotSize, y+b.SlotSize)
}

// SlotAt returns the slot index under a screen point, or -1.
func (b *InventoryBar) SlotAt(x, y, slots int) int {
	p := image.Pt(x, y)
	for i := 0; i < slots; i++ {
		if p.In(b.slotRect(i)) {
			return i
		}
	}
	return -1
}

// Toggle выбирает ячейку или снимает выбор при повторном клике.
func (b *InventoryBar) Toggle(i int) {
	if b.Selected == i {
		b.Selected = -1
		return
	}
	b.Selected = i
}

func (b *InventoryBar) Draw(screen *ebiten.Image, ecs *entity.ECS, slots []types.EntityID) {
	text.Draw(screen, "Gems", b.fontFace, b.X, b.Y-8, config.TextLightColor)
	for i, gemID := range slots {
		r := b.slotRect(i)
		x, y, s := float32(r.Min.X), float32(r.Min.Y), float32(b.SlotSize)
		vector.DrawFilledRect(screen, x, y, s, s, config.PanelColor, false)

		border := color.Color(color.RGBA{90, 90, 110, 255})
		if i == b.Selected {
			border = config.SelectionColor
		}
		vector.StrokeRect(screen, x, y, s, s, 2, border, false)

		gem, ok := ecs.Gems[gemID]
		if !ok {
			continue
		}
		vector.DrawFilledCircle(screen, x+s/2, y+s/2, s/3, config.GemColors[gem.Color], true)
		text.Draw(screen, fmt.Sprintf("%d", int(gem.Rank)+1), b.fontFace, r.Max.X+6, r.Min.Y+b.SlotSize/2+4, config.TextLightColor)
	}
}
