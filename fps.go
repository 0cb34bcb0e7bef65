package liquid

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// drawOverlay prints FPS, TPS and the blend value in the top-left corner.
func drawOverlay(screen *ebiten.Image, blend float64) {
	// 120x48 is enough for three short lines of debug font.
	vector.FillRect(screen, 0, 0, 120, 48, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f\nBlend: %.3f",
		ebiten.ActualFPS(), ebiten.ActualTPS(), blend))
}
