package tracker

import (
	"fmt"
	"image/color"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Summary holds summary statistics of per-episode data
type Summary struct {
	Episodes int
	Mean     float64
	StdDev   float64
	StdErr   float64
	Min      float64
	Median   float64
	Max      float64
}

// Summarize returns the summary statistics of data. Statistics of
// empty data are NaN.
func Summarize(data []float64) Summary {
	if len(data) == 0 {
		nan := math.NaN()
		return Summary{0, nan, nan, nan, nan, nan, nan}
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mean, std := stat.MeanStdDev(sorted, nil)
	if len(sorted) == 1 {
		std = 0
	}

	return Summary{
		Episodes: len(sorted),
		Mean:     mean,
		StdDev:   std,
		StdErr:   stat.StdErr(std, float64(len(sorted))),
		Min:      floats.Min(sorted),
		Median:   stat.Quantile(0.5, stat.Empirical, sorted, nil),
		Max:      floats.Max(sorted),
	}
}

func (s Summary) String() string {
	return fmt.Sprintf("Episodes: %d  |  Mean: %.3f ± %.3f  |  "+
		"Min: %.3f  |  Median: %.3f  |  Max: %.3f", s.Episodes, s.Mean,
		s.StdErr, s.Min, s.Median, s.Max)
}

// MovingAverage returns the average of each window of data ending at
// each index. Windows at the start of the data are truncated.
func MovingAverage(data []float64, window int) []float64 {
	if window < 1 {
		window = 1
	}

	avg := make([]float64, len(data))
	sum := 0.0
	for i, v := range data {
		sum += v
		if i >= window {
			sum -= data[i-window]
		}
		avg[i] = sum / math.Min(float64(i+1), float64(window))
	}
	return avg
}

// PlotReturns plots per-episode returns with their moving average over
// window episodes and saves the plot as an image. The image format is
// chosen by the file extension.
func PlotReturns(returns []float64, window int, filename string) error {
	p := plot.New()

	p.Title.Text = "Episodic Return"
	p.X.Label.Text = "Episode"
	p.Y.Label.Text = "Return"

	raw, err := plotter.NewLine(episodeXYs(returns))
	if err != nil {
		return fmt.Errorf("plotReturns: could not create line plotter: %w",
			err)
	}
	p.Add(raw)
	p.Legend.Add("Return", raw)

	avg, err := plotter.NewLine(episodeXYs(MovingAverage(returns, window)))
	if err != nil {
		return fmt.Errorf("plotReturns: could not create line plotter: %w",
			err)
	}
	avg.Color = color.RGBA{R: 200, A: 255}
	avg.Width = vg.Points(2)
	avg.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}
	p.Add(avg)
	p.Legend.Add(fmt.Sprintf("Moving Average (%d)", window), avg)
	p.Add(plotter.NewGrid())

	if err := p.Save(8*vg.Inch, 5*vg.Inch, filename); err != nil {
		return fmt.Errorf("plotReturns: could not save plot: %w", err)
	}
	return nil
}

func episodeXYs(data []float64) plotter.XYs {
	pts := make(plotter.XYs, len(data))
	for i := range data {
		pts[i].X = float64(i)
		pts[i].Y = data[i]
	}
	return pts
}
