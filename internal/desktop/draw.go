package desktop

import (
	"bytes"
	"image/color"

	"github.com/MatBureau/sysmonitor/internal/view"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// dark "superhero" palette
var (
	colorBackground = color.RGBA{R: 0x0f, G: 0x25, B: 0x37, A: 0xff}
	colorPrimary    = color.RGBA{R: 0x4c, G: 0x9b, B: 0xe8, A: 0xff}
	colorInfo       = color.RGBA{R: 0x5b, G: 0xc0, B: 0xde, A: 0xff}
	colorWarning    = color.RGBA{R: 0xf0, G: 0xad, B: 0x4e, A: 0xff}
	colorSuccess    = color.RGBA{R: 0x5c, G: 0xb8, B: 0x5c, A: 0xff}
	colorDanger     = color.RGBA{R: 0xd9, G: 0x53, B: 0x4f, A: 0xff}
	colorTrack      = color.RGBA{R: 0x4e, G: 0x5d, B: 0x6c, A: 0xff}
	colorSecondary  = color.RGBA{R: 0xab, G: 0xb6, B: 0xc2, A: 0xff}
	colorText       = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

const (
	padding    = 20
	cardTop    = 90
	cardStride = 100
	cardHeight = 88
	barHeight  = 16
	labelWidth = 70
)

type fonts struct {
	bold    *text.GoTextFaceSource
	regular *text.GoTextFaceSource
}

func loadFonts() *fonts {
	bold, err := text.NewGoTextFaceSource(bytes.NewReader(gobold.TTF))
	if err != nil {
		// embedded font, cannot fail
		panic("desktop: load bold font: " + err.Error())
	}
	regular, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		panic("desktop: load regular font: " + err.Error())
	}
	return &fonts{bold: bold, regular: regular}
}

func drawText(screen *ebiten.Image, src *text.GoTextFaceSource, size float64, s string, x, y float64, clr color.Color, align text.Align) {
	op := &text.DrawOptions{}
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(clr)
	op.PrimaryAlign = align
	text.Draw(screen, s, &text.GoTextFace{Source: src, Size: size}, op)
}

func drawHeader(screen *ebiten.Image, f *fonts, title, subtitle string) {
	drawText(screen, f.bold, 24, title, windowWidth/2, padding, colorText, text.AlignCenter)
	if subtitle != "" {
		drawText(screen, f.regular, 11, subtitle, windowWidth/2, padding+32, colorSecondary, text.AlignCenter)
	}
}

// barColor mirrors the window's bar styles: info for CPU (danger when
// flagged), warning for memory, success for storage.
func barColor(m view.Meter) color.RGBA {
	switch {
	case m.Warning:
		return colorDanger
	case m.Kind == view.KindMemory:
		return colorWarning
	case m.Kind == view.KindStorage:
		return colorSuccess
	default:
		return colorInfo
	}
}

func drawCard(screen *ebiten.Image, f *fonts, m view.Meter, top float32) {
	left := float32(padding)
	width := float32(windowWidth - 2*padding)

	vector.StrokeRect(screen, left, top, width, cardHeight, 1, colorInfo, false)
	drawText(screen, f.regular, 12, m.Title, float64(left+10), float64(top+8), colorInfo, text.AlignStart)

	barX := left + 10
	barY := top + 32
	barW := width - 20 - labelWidth
	vector.DrawFilledRect(screen, barX, barY, barW, barHeight, colorTrack, false)

	pct := max(0, min(100, m.Percent))
	vector.DrawFilledRect(screen, barX, barY, barW*float32(pct/100), barHeight, barColor(m), false)

	drawText(screen, f.bold, 12, m.Label, float64(left+width-10), float64(barY), colorText, text.AlignEnd)

	if m.Caption != "" {
		drawText(screen, f.regular, 9, m.Caption, float64(barX), float64(barY+barHeight+10), colorSecondary, text.AlignStart)
	}
}
