package state

import "github.com/atomicstack/visa-lookup/internal/worldmap"

// Zoom is a map zoom level clamped to [worldmap.MinZoom, worldmap.MaxZoom].
type Zoom struct {
	level int
}

// NewZoom starts at the minimum level.
func NewZoom() Zoom {
	return Zoom{level: worldmap.MinZoom}
}

// Level returns the current level.
func (z Zoom) Level() int {
	if z.level < worldmap.MinZoom {
		return worldmap.MinZoom
	}
	return z.level
}

// In zooms in one step. It reports false at the upper bound.
func (z *Zoom) In() bool {
	if z.Level() >= worldmap.MaxZoom {
		return false
	}
	z.level = z.Level() + 1
	return true
}

// Out zooms out one step. It reports false at the lower bound.
func (z *Zoom) Out() bool {
	if z.Level() <= worldmap.MinZoom {
		return false
	}
	z.level = z.Level() - 1
	return true
}
