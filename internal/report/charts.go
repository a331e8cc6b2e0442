package report

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
)

// maxChartBins caps the number of bars per chart to keep the generated HTML
// a reasonable size; histograms are downsampled by stride above this.
const maxChartBins = 2000

// WriteHTML renders an HTML page with one folded-histogram bar chart per
// analysed sub-run.
func WriteHTML(summaries []Summary, w io.Writer) error {
	page := components.NewPage()
	page.PageTitle = "interleaved pedestal report"

	for _, s := range summaries {
		page.AddCharts(histogramChart(s))
	}
	return page.Render(w)
}

// SaveHTML renders the report to a file.
func SaveHTML(summaries []Summary, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report: %w", err)
	}
	defer f.Close()
	return WriteHTML(summaries, f)
}

func histogramChart(s Summary) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: s.ID.String(),
			Subtitle: fmt.Sprintf("period %.7f s, phase %.6f s, %d selected, %.3f Hz",
				s.BestPeriod, s.BestPhase, s.Selected, s.Rate),
		}),
	)

	stride := 1
	if len(s.Histogram.Counts) > maxChartBins {
		stride = int(math.Ceil(float64(len(s.Histogram.Counts)) / float64(maxChartBins)))
	}

	var labels []string
	var data []opts.BarData
	for i := 0; i < len(s.Histogram.Counts); i += stride {
		// Keep the tallest bin of the stride so the peak survives
		// downsampling.
		count := 0
		for j := i; j < i+stride && j < len(s.Histogram.Counts); j++ {
			if s.Histogram.Counts[j] > count {
				count = s.Histogram.Counts[j]
			}
		}
		labels = append(labels, fmt.Sprintf("%.6f", s.Histogram.Edges[i]))
		data = append(data, opts.BarData{Value: count})
	}

	bar.SetXAxis(labels).AddSeries("events per bin", data)
	return bar
}
