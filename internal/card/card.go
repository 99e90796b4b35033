// Package card renders the current forecast as a PNG card for dashboards and
// link previews.
package card

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/lox/barocast/internal/forecast"
)

const (
	Width  = 1200
	Height = 630

	margin = 60
)

var (
	faceLarge   font.Face
	faceRegular font.Face
	faceSmall   font.Face
	fontOnce    sync.Once
	fontErr     error
)

func loadFonts() {
	fontOnce.Do(func() {
		f, err := opentype.Parse(goregular.TTF)
		if err != nil {
			fontErr = fmt.Errorf("parse Go Regular: %w", err)
			return
		}

		faces := []struct {
			dst  *font.Face
			size float64
		}{
			{&faceLarge, 72},
			{&faceRegular, 34},
			{&faceSmall, 24},
		}
		for _, fc := range faces {
			*fc.dst, err = opentype.NewFace(f, &opentype.FaceOptions{
				Size:    fc.size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
			if err != nil {
				fontErr = fmt.Errorf("create %.0fpt face: %w", fc.size, err)
				return
			}
		}
	})
}

// Data is what the card shows.
type Data struct {
	Snapshot *forecast.Snapshot
	Station  string
}

type colors struct {
	background color.RGBA
	panel      color.RGBA
	text       color.RGBA
	muted      color.RGBA
	accent     color.RGBA
}

func paletteColors(p forecast.Palette) colors {
	return colors{
		background: parseHex(p.Background),
		panel:      parseHex(p.Panel),
		text:       parseHex(p.Text),
		muted:      parseHex(p.TextMuted),
		accent:     parseHex(p.Accent),
	}
}

// parseHex parses "#rrggbb". Anything else is opaque black.
func parseHex(s string) color.RGBA {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return color.RGBA{A: 255}
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

// Render draws the card as a PNG.
func Render(data Data) ([]byte, error) {
	if data.Snapshot == nil {
		return nil, fmt.Errorf("render card: no snapshot")
	}
	loadFonts()
	if fontErr != nil {
		return nil, fmt.Errorf("load fonts: %w", fontErr)
	}

	snap := data.Snapshot
	lang := snap.Attributes.Language
	l := labelsFor(lang)
	c := paletteColors(forecast.GetPalette(snap.Zambretti.Forecast[0], snap.IsNight))

	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(c.background), image.Point{}, draw.Src)

	drawText(img, lang.Title(), margin, 70, c.muted, faceSmall)
	drawText(img, l.now, margin, 130, c.muted, faceRegular)
	drawText(img, snap.Attributes.ShortTerm[0], margin, 205, c.text, faceLarge)
	drawText(img, snap.Attributes.ShortTerm[1], margin, 250, c.muted, faceSmall)

	panel := image.Rect(margin-20, 280, Width-margin+20, Height-70)
	draw.Draw(img, panel, image.NewUniform(c.panel), image.Point{}, draw.Src)

	drawText(img, l.forecast, margin, 325, c.muted, faceSmall)
	y := 370
	for _, line := range wrapText(snap.Attributes.Zambretti.Text, faceRegular, Width-2*margin) {
		drawText(img, line, margin, y, c.accent, faceRegular)
		y += 42
	}

	col2 := Width / 2
	drawText(img, l.pressure, margin, 470, c.muted, faceSmall)
	drawText(img, fmt.Sprintf("%.1f hPa  %s", snap.Pressure, snap.Attributes.PressureTrend[0]), margin, 510, c.text, faceRegular)

	drawText(img, fmt.Sprintf("%s (%s %s)", l.rain, l.in3h, snap.Zambretti.FirstTime.Clock), col2, 470, c.muted, faceSmall)
	drawText(img, fmt.Sprintf("%d%%   %s", snap.Zambretti.RainProb[0], tempText(snap.Attributes.TempShort, l)), col2, 510, c.text, faceRegular)

	footer := snap.ComputedAt.Format("15:04")
	if data.Station != "" {
		footer = data.Station + "  " + footer
	}
	drawText(img, footer, margin, Height-30, c.muted, faceSmall)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode card: %w", err)
	}
	return buf.Bytes(), nil
}

func tempText(p forecast.TempProjection, l labels) string {
	if !p.Available {
		return l.unavailable
	}
	return fmt.Sprintf("%.1f°C", p.Value)
}

func drawText(img *image.RGBA, text string, x, y int, col color.Color, face font.Face) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(col),
		Face: face,
		Dot:  fixed.Point26_6{X: fixed.I(x), Y: fixed.I(y)},
	}
	d.DrawString(text)
}

// wrapText breaks text into lines no wider than maxWidth pixels. At most two
// lines are returned; the second is cut with an ellipsis if needed.
func wrapText(text string, face font.Face, maxWidth int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	line := words[0]
	for _, w := range words[1:] {
		candidate := line + " " + w
		if font.MeasureString(face, candidate).Ceil() <= maxWidth {
			line = candidate
			continue
		}
		lines = append(lines, line)
		line = w
	}
	lines = append(lines, line)

	if len(lines) <= 2 {
		return lines
	}
	last := strings.Join(lines[1:], " ")
	for font.MeasureString(face, last+"…").Ceil() > maxWidth && len(last) > 0 {
		_, size := utf8.DecodeLastRuneInString(last)
		last = last[:len(last)-size]
	}
	return []string{lines[0], strings.TrimSpace(last) + "…"}
}
