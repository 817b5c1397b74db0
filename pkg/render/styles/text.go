package styles

import (
	"bytes"
	"encoding/xml"

	"github.com/mattn/go-runewidth"
)

const (
	// fontCharWidth is the approximate advance of one character cell
	// relative to the font size, tuned for the default sans stack.
	fontCharWidth = 0.55

	// fontLineHeight is the text height relative to the font size.
	fontLineHeight = 1.2
)

// Measure estimates the rendered extent of text at the given font size
// using a per-cell width model. Wide (CJK) runes count as two cells.
// It satisfies the layout engine's Measurer contract.
func Measure(text string, fontSize float64) (float64, float64, error) {
	cells := runewidth.StringWidth(text)
	return float64(cells) * fontSize * fontCharWidth, fontSize * fontLineHeight, nil
}

// Truncate shortens text to fit availWidth at the given font size,
// replacing the overflow with a two-dot ellipsis. Text that fits is
// returned unchanged; the minimum kept length is three cells.
func Truncate(text string, availWidth, fontSize float64) (string, bool) {
	charWidth := fontSize * fontCharWidth
	maxCells := int(availWidth / charWidth)
	if maxCells < 3 {
		maxCells = 3
	}
	if runewidth.StringWidth(text) <= maxCells {
		return text, false
	}
	return runewidth.Truncate(text, maxCells-2, "") + "..", true
}

// EscapeXML escapes text for embedding in SVG.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
