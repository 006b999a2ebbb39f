package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"strings"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"
)

const (
	overlayPadding = 20
	lineSpacing    = 10
	lineAdvance    = 20
)

// pictographRanges is the fixed denylist of code points never drawn on a
// slide. Not a sentiment filter; these break most ad fonts.
var pictographRanges = [...][2]rune{
	{0x1F600, 0x1F64F},
	{0x1F300, 0x1F5FF},
	{0x1F680, 0x1F6FF},
	{0x1F1E0, 0x1F1FF},
	{0x2700, 0x27BF},
	{0x1F900, 0x1F9FF},
	{0x2600, 0x26FF},
	{0x2022, 0x2022},
}

// SanitizeOverlayText strips denylisted pictographs and literal asterisks.
func SanitizeOverlayText(text string) string {
	var b strings.Builder
	b.Grow(len(text))
	for _, r := range text {
		if r == '*' || isPictograph(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func isPictograph(r rune) bool {
	for _, pr := range pictographRanges {
		if r >= pr[0] && r <= pr[1] {
			return true
		}
	}
	return false
}

// OverlayLines splits sanitized text on explicit newlines, dropping blanks.
func OverlayLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(SanitizeOverlayText(text), "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines
}

// drawOverlay centers each line horizontally on a solid backing rectangle
// and block-centers the stack vertically. The font face must already be set
// on the context.
func drawOverlay(dc *gg.Context, text string, width, height int) {
	lines := OverlayLines(text)
	if len(lines) == 0 {
		return
	}

	type measured struct {
		text string
		w, h float64
	}
	var (
		ms    []measured
		total float64
	)
	for _, line := range lines {
		w, h := dc.MeasureString(line)
		ms = append(ms, measured{line, w, h})
		total += h + lineSpacing
	}

	y := (float64(height) - total) / 2
	for _, m := range ms {
		x := (float64(width) - m.w) / 2
		dc.SetRGB(0, 0, 0)
		dc.DrawRectangle(x-overlayPadding, y-overlayPadding, m.w+2*overlayPadding, m.h+2*overlayPadding)
		dc.Fill()
		dc.SetRGB255(255, 255, 0)
		dc.DrawString(m.text, x, y+m.h)
		y += m.h + lineAdvance
	}
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

func resizeImage(src image.Image, width, height int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Over, nil)
	return dst
}
