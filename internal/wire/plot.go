package wire

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// SavePlots renders diagnostic PNGs for a reduced profile: per wire, one
// plot of the bin statistics (median, mean, min/max envelope) and one of
// the per-bin sample counts. Files are written next to basePath as
// <base>_wireNN.png and <base>_wireNN_hist.png. Plotting is diagnostic
// only; failures do not invalidate the profile.
func (p *Profile) SavePlots(basePath string) error {
	for iwire, row := range p.Stats {
		if err := p.saveWirePlot(basePath, iwire, row); err != nil {
			return fmt.Errorf("wire %d: %w", iwire, err)
		}
	}
	return nil
}

func (p *Profile) saveWirePlot(basePath string, iwire int, row []Stats) error {
	envelope := color.RGBA{R: 0x55, G: 0x55, B: 0x55, A: 255}

	pStats := plot.New()
	pStats.Title.Text = fmt.Sprintf("Wire %d Statistics (r=%.2f)", iwire, p.Radii[iwire])
	pStats.X.Label.Text = "Angle (rad)"
	pStats.Y.Label.Text = "Current"

	meanPts := make(plotter.XYs, 0, len(row))
	medianPts := make(plotter.XYs, 0, len(row))
	minPts := make(plotter.XYs, 0, len(row))
	maxPts := make(plotter.XYs, 0, len(row))
	countPts := make(plotter.XYs, 0, len(row))
	for j, s := range row {
		theta := p.Grid.Center(j)
		countPts = append(countPts, plotter.XY{X: theta, Y: float64(s.Count)})
		if s.Count == 0 {
			continue
		}
		meanPts = append(meanPts, plotter.XY{X: theta, Y: s.Mean})
		medianPts = append(medianPts, plotter.XY{X: theta, Y: s.Median})
		minPts = append(minPts, plotter.XY{X: theta, Y: s.Min})
		maxPts = append(maxPts, plotter.XY{X: theta, Y: s.Max})
	}

	for _, trace := range []struct {
		pts   plotter.XYs
		label string
		col   color.Color
		width vg.Length
	}{
		{maxPts, "max", envelope, vg.Points(0.5)},
		{minPts, "min", envelope, vg.Points(0.5)},
		{meanPts, "mean", color.RGBA{G: 0xaa, A: 255}, vg.Points(1)},
		{medianPts, "median", color.RGBA{A: 255}, vg.Points(1)},
	} {
		if len(trace.pts) == 0 {
			continue
		}
		line, err := plotter.NewLine(trace.pts)
		if err != nil {
			return err
		}
		line.Color = trace.col
		line.Width = trace.width
		pStats.Add(line)
		pStats.Legend.Add(trace.label, line)
	}
	pStats.Legend.Top = true

	statsFile := fmt.Sprintf("%s_wire%02d.png", basePath, iwire)
	if err := pStats.Save(10*vg.Inch, 4*vg.Inch, statsFile); err != nil {
		return fmt.Errorf("save stats plot: %w", err)
	}

	pHist := plot.New()
	pHist.Title.Text = fmt.Sprintf("Wire %d Histogram", iwire)
	pHist.X.Label.Text = "Angle (rad)"
	pHist.Y.Label.Text = "Data Count"

	scatter, err := plotter.NewScatter(countPts)
	if err != nil {
		return err
	}
	scatter.Radius = vg.Points(1.5)
	pHist.Add(scatter)

	histFile := fmt.Sprintf("%s_wire%02d_hist.png", basePath, iwire)
	if err := pHist.Save(10*vg.Inch, 4*vg.Inch, histFile); err != nil {
		return fmt.Errorf("save histogram plot: %w", err)
	}
	return nil
}
