package systems

import "github.com/pthm-cable/landscape/components"

// Wrap maps any coordinate onto [0, size) on a torus.
func Wrap(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}

// Step returns the cell one step ahead of (x, y) in the given facing.
func Step(x, y int, d components.Direction, width, height int) (int, int) {
	dx, dy := d.Delta()
	return Wrap(x+dx, width), Wrap(y+dy, height)
}

// Translate applies an offset to (x, y) with wraparound.
func Translate(x, y int, o Offset, width, height int) (int, int) {
	return Wrap(x+o.DX, width), Wrap(y+o.DY, height)
}
