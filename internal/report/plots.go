// Package report renders diagnostic plots and HTML summaries of pedestal
// identifications. These are inspection aids for shifters, not analysis
// products; downstream calibration consumes only the persisted event IDs.
package report

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/cherenkov-data/pedestal.report/internal/pedestal"
	"github.com/cherenkov-data/pedestal.report/internal/subrun"
)

// Summary describes one analysed sub-run for rendering.
type Summary struct {
	ID         subrun.ID
	BestPeriod float64 // s
	BestPhase  float64 // s
	Selected   int
	Rate       float64 // identified pedestals per second
	Histogram  pedestal.Histogram
}

// SaveHistogramPlot writes a PNG of the winning phase-folded histogram. The
// pedestal peak should stand well clear of the flat cosmic floor; a smeared
// plot is the quickest way to spot a sub-run where the search failed.
func SaveHistogramPlot(s Summary, outputDir string) (string, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output dir: %w", err)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s folded at %.7f s", s.ID, s.BestPeriod)
	p.X.Label.Text = "folded time (s)"
	p.Y.Label.Text = "events per bin"

	pts := make(plotter.XYs, len(s.Histogram.Counts))
	for i, c := range s.Histogram.Counts {
		center := (s.Histogram.Edges[i] + s.Histogram.Edges[i+1]) / 2
		pts[i].X = center
		pts[i].Y = float64(c)
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return "", fmt.Errorf("failed to build histogram line: %w", err)
	}
	line.Width = vg.Points(1)
	line.Color = color.RGBA{R: 30, G: 90, B: 200, A: 255}
	p.Add(line)

	path := filepath.Join(outputDir, fmt.Sprintf("folded_%s.png", s.ID))
	if err := p.Save(14*vg.Inch, 6*vg.Inch, path); err != nil {
		return "", fmt.Errorf("failed to save histogram plot: %w", err)
	}
	return path, nil
}
