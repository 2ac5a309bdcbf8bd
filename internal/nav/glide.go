package nav

import (
	"math"
	"time"

	"github.com/charmbracelet/harmonica"
)

const (
	// FPS is the frame rate of a glide.
	FPS = 60

	glideFrequency = 8.0
	glideDamping   = 1.0
	maxGlideFrames = 2 * FPS
)

// FrameInterval is the delay between glide frames.
var FrameInterval = time.Second / FPS

// Glide animates a scroll offset toward a target with a critically damped
// spring. Each Start bumps the generation so frames from an older glide
// can be recognized and dropped.
type Glide struct {
	spring harmonica.Spring
	pos    float64
	vel    float64
	target float64
	frames int
	gen    uint64
	active bool
}

// NewGlide returns an idle glide.
func NewGlide() Glide {
	return Glide{spring: harmonica.NewSpring(harmonica.FPS(FPS), glideFrequency, glideDamping)}
}

// Start begins a glide from the current offset and returns its generation.
func (g *Glide) Start(from, to int) uint64 {
	g.gen++
	g.pos = float64(from)
	g.vel = 0
	g.target = float64(to)
	g.frames = 0
	g.active = from != to
	return g.gen
}

// Retarget moves the landing offset of a running glide, keeping its
// position, velocity and generation. An idle glide is left alone.
func (g *Glide) Retarget(to int) {
	if !g.active {
		return
	}
	g.target = float64(to)
	g.frames = 0
}

// Cancel stops the running glide, if any.
func (g *Glide) Cancel() {
	if g.active {
		g.active = false
		g.gen++
	}
}

// Active reports whether a glide is running.
func (g *Glide) Active() bool { return g.active }

// Generation identifies the running glide.
func (g *Glide) Generation() uint64 { return g.gen }

// Target is the offset the glide lands on.
func (g *Glide) Target() int { return int(g.target) }

// Step advances one frame. It returns the offset to show and whether the
// glide has landed; the last frame always lands exactly on the target.
func (g *Glide) Step() (int, bool) {
	if !g.active {
		return int(g.target), true
	}
	g.pos, g.vel = g.spring.Update(g.pos, g.vel, g.target)
	g.frames++
	if g.frames >= maxGlideFrames || (math.Abs(g.target-g.pos) < 0.5 && math.Abs(g.vel) < 0.5) {
		g.active = false
		return int(g.target), true
	}
	return int(math.Round(g.pos)), false
}
