package render

import (
	"golang.org/x/image/font"
)

// MinFontSize is the floor of the auto-fit search.
const MinFontSize = 4

// FitResult reports the outcome of the auto-fit search. Exhausted means no
// candidate size satisfied both constraints and Face is the native-size
// fallback, which may overflow the canvas.
type FitResult struct {
	Size      int
	Face      font.Face
	Exhausted bool
}

// Fit searches for the largest font size under which every line fits
// horizontally and the stacked line heights fit vertically, scanning from
// min(width, height) down to MinFontSize.
func (l *Library) Fit(name string, lines []string, width, height int) FitResult {
	max := width
	if height < max {
		max = height
	}

	for size := max; size >= MinFontSize; size-- {
		face, ok := l.face(name, size)
		if !ok {
			continue
		}
		if linesFit(face, lines, width, height) {
			return FitResult{Size: size, Face: face}
		}
	}

	return FitResult{Size: -1, Face: Fallback(), Exhausted: true}
}

func linesFit(face font.Face, lines []string, width, height int) bool {
	total := 0
	for _, line := range lines {
		w, h := lineBounds(face, line)
		if w > width {
			return false
		}
		total += h
	}
	return total <= height
}

// lineBounds measures the tight bounding box of a single line.
func lineBounds(face font.Face, line string) (w, h int) {
	bounds, _ := font.BoundString(face, line)
	return (bounds.Max.X - bounds.Min.X).Ceil(), (bounds.Max.Y - bounds.Min.Y).Ceil()
}
