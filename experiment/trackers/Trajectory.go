package trackers

import (
	"fmt"
	"image/color"
	"math"

	"github.com/fogleman/gg"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/catbotrl/catbot/environment/catbot"
	"github.com/catbotrl/catbot/timestep"
)

const (
	// Dimensions of the rendered trajectory image
	TrajectoryW int = 1000
	TrajectoryH int = 500

	trajectoryMargin float64 = 40
)

// Snapshotter returns the latest sensor Snapshot of the robot.
// *catbot.Sensors is a Snapshotter.
type Snapshotter interface {
	Snapshot() catbot.Snapshot
}

// episodePath is the base trajectory of a single episode
type episodePath struct {
	points []r3.Vec
	fell   bool
}

// Trajectory tracks the position of the robot's base on each timestep
// and renders the trajectories of all episodes as a PNG image. The
// left panel shows each trajectory from above; the right panel shows
// the base height over each episode.
type Trajectory struct {
	source   Snapshotter
	episodes []episodePath
	filename string
}

// NewTrajectory returns a new Trajectory Tracker which reads base
// positions from source and will save its image at filename
func NewTrajectory(source Snapshotter, filename string) *Trajectory {
	return &Trajectory{source: source, filename: filename}
}

// Track records the current base position. First timesteps start a
// new trajectory.
func (t *Trajectory) Track(step timestep.TimeStep) {
	if step.First() || len(t.episodes) == 0 {
		t.episodes = append(t.episodes, episodePath{})
	}

	current := &t.episodes[len(t.episodes)-1]
	current.points = append(current.points, t.source.Snapshot().Position)
	if step.Last() {
		current.fell = step.EndType() == timestep.TerminalStateReached
	}
}

// Episodes returns the number of trajectories tracked
func (t *Trajectory) Episodes() int {
	return len(t.episodes)
}

// Save renders the trajectories and saves them as a PNG image
func (t *Trajectory) Save() error {
	return t.SaveAs(t.filename)
}

// SaveAs renders the trajectories and saves them as a PNG image at
// filename
func (t *Trajectory) SaveAs(filename string) error {
	if err := t.Render().SavePNG(filename); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	return nil
}

// Render draws the trajectories
func (t *Trajectory) Render() *gg.Context {
	dc := gg.NewContext(TrajectoryW, TrajectoryH)
	dc.SetColor(color.White)
	dc.Clear()

	panelW := float64(TrajectoryW) / 2
	panelH := float64(TrajectoryH)

	// Bounds of all positions, so that every trajectory fits
	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	maxZ, maxSteps := 0.0, 1
	for _, ep := range t.episodes {
		for _, p := range ep.points {
			minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
			minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
			maxZ = math.Max(maxZ, math.Abs(p.Z))
		}
		if len(ep.points) > maxSteps {
			maxSteps = len(ep.points)
		}
	}
	if math.IsInf(minX, 1) {
		minX, maxX, minY, maxY = -1, 1, -1, 1
	}
	if maxZ == 0 {
		maxZ = 1
	}

	topDown := newViewport(0, 0, panelW, panelH, minX, maxX, minY, maxY)
	height := newViewport(panelW, 0, panelW, panelH, 0, float64(maxSteps-1),
		0, maxZ)

	t.drawFrames(dc, panelW, panelH)

	for i, ep := range t.episodes {
		if len(ep.points) == 0 {
			continue
		}
		dc.SetColor(episodeColour(i, len(t.episodes)))
		dc.SetLineWidth(2)

		// Top-down trajectory
		for k, p := range ep.points {
			x, y := topDown.pixel(p.X, p.Y)
			if k == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()

		x, y := topDown.pixel(ep.points[0].X, ep.points[0].Y)
		dc.DrawCircle(x, y, 4)
		dc.Fill()

		// Height over the episode
		for k, p := range ep.points {
			x, y := height.pixel(float64(k), math.Abs(p.Z))
			if k == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.Stroke()

		if ep.fell {
			last := ep.points[len(ep.points)-1]
			x, y := topDown.pixel(last.X, last.Y)
			drawCross(dc, x, y, 6)
		}
	}

	return dc
}

// drawFrames draws the panel borders and labels
func (t *Trajectory) drawFrames(dc *gg.Context, panelW, panelH float64) {
	dc.SetColor(color.Gray{Y: 100})
	dc.SetLineWidth(1)
	for _, left := range []float64{0, panelW} {
		dc.DrawRectangle(left+trajectoryMargin, trajectoryMargin,
			panelW-2*trajectoryMargin, panelH-2*trajectoryMargin)
		dc.Stroke()
	}

	dc.SetColor(color.Black)
	dc.DrawStringAnchored("Base position (top view)", panelW/2,
		trajectoryMargin/2, 0.5, 0.5)
	dc.DrawStringAnchored("Base height by step", panelW+panelW/2,
		trajectoryMargin/2, 0.5, 0.5)
}

func drawCross(dc *gg.Context, x, y, size float64) {
	dc.SetColor(color.RGBA{R: 220, A: 255})
	dc.SetLineWidth(2)
	dc.DrawLine(x-size, y-size, x+size, y+size)
	dc.DrawLine(x-size, y+size, x+size, y-size)
	dc.Stroke()
}

// episodeColour returns the colour of episode i of n, from blue for
// early episodes to green for late ones
func episodeColour(i, n int) color.Color {
	frac := 0.0
	if n > 1 {
		frac = float64(i) / float64(n-1)
	}
	return color.RGBA{
		R: 30,
		G: uint8(60 + 160*frac),
		B: uint8(220 - 160*frac),
		A: 255,
	}
}

// viewport maps a rectangle of world coordinates to a rectangle of
// pixels, flipping the y-axis
type viewport struct {
	left, top, w, h        float64
	minX, maxX, minY, maxY float64
}

func newViewport(left, top, w, h, minX, maxX, minY, maxY float64) viewport {
	if maxX <= minX {
		minX, maxX = minX-1, maxX+1
	}
	if maxY <= minY {
		minY, maxY = minY-1, maxY+1
	}
	return viewport{
		left: left + trajectoryMargin,
		top:  top + trajectoryMargin,
		w:    w - 2*trajectoryMargin,
		h:    h - 2*trajectoryMargin,
		minX: minX, maxX: maxX, minY: minY, maxY: maxY,
	}
}

func (v viewport) pixel(x, y float64) (float64, float64) {
	px := v.left + (x-v.minX)/(v.maxX-v.minX)*v.w
	py := v.top + v.h - (y-v.minY)/(v.maxY-v.minY)*v.h
	return px, py
}
