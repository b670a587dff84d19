package ui

import "color-tango/internal/pad"

// Screen geometry shared by the view and mouse hit testing. Rows and columns
// are terminal cells from the top-left corner of the program's output.
const (
	marginLeft = 2
	padWidth   = 18
	padHeight  = 5
	gapX       = 2
	gapY       = 1

	headingRow = 0
	statusRow  = 1
	gridTop    = 3
	startRow   = gridTop + 2*padHeight + gapY + 1

	startLabel = "[ Start ]"
)

// padAt returns the pad drawn at cell (x, y).
func padAt(x, y int) (pad.Color, bool) {
	gx, gy := x-marginLeft, y-gridTop
	col := span(gx, padWidth, gapX)
	row := span(gy, padHeight, gapY)
	if col < 0 || row < 0 {
		return "", false
	}
	return pad.All()[row*2+col].Color, true
}

// span reports which of two cells of the given size, separated by gap,
// contains offset v, or -1.
func span(v, size, gap int) int {
	switch {
	case v < 0:
		return -1
	case v < size:
		return 0
	case v >= size+gap && v < 2*size+gap:
		return 1
	default:
		return -1
	}
}

func onStartButton(x, y int) bool {
	return y == startRow && x >= marginLeft && x < marginLeft+len(startLabel)
}
