// Package chart renders the analysis result as a self-contained HTML page
// with price, volume, drawdown and momentum charts.
package chart

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/shopspring/decimal"

	"github.com/openfolio/marketlens/internal/analysis"
	"github.com/openfolio/marketlens/internal/types"
	"github.com/openfolio/marketlens/pkg/errors"
)

const dateLayout = "2006-01-02"

// Renderer renders an analysis result to an HTML chart file.
type Renderer struct {
	outputPath string
}

// NewRenderer creates a renderer writing to the given HTML file path.
func NewRenderer(outputPath string) *Renderer {
	return &Renderer{outputPath: outputPath}
}

// Render writes the chart page for the given result. The parent directory
// is created if it does not exist.
func (r *Renderer) Render(result *analysis.Result) error {
	if result == nil || result.Series.Len() == 0 {
		return errors.New(errors.ErrCodeChartRenderFailed, "no data to render")
	}

	dates := make([]string, result.Series.Len())
	for i, bar := range result.Series.Bars {
		dates[i] = bar.Time.Format(dateLayout)
	}

	page := components.NewPage()
	page.SetLayout(components.PageFlexLayout)
	page.AddCharts(
		priceChart(result, dates),
		volumeChart(result.Series, dates),
		drawdownChart(result, dates),
		rsiChart(result, dates),
	)

	if dir := filepath.Dir(r.outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to create chart directory", err)
		}
	}

	f, err := os.Create(r.outputPath)
	if err != nil {
		return errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to create chart file", err)
	}
	defer f.Close()

	if err := page.Render(f); err != nil {
		return errors.Wrap(errors.ErrCodeChartRenderFailed, "failed to render chart page", err)
	}

	return nil
}

// GetOutputPath returns the HTML file path the renderer writes to.
func (r *Renderer) GetOutputPath() string {
	return r.outputPath
}

func priceChart(result *analysis.Result, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    fmt.Sprintf("%s Daily Close", result.Series.Symbol),
			Subtitle: summaryLine(result.Summary),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider"}),
	)

	closes := make([]opts.LineData, result.Series.Len())
	for i, bar := range result.Series.Bars {
		closes[i] = opts.LineData{Value: bar.Close}
	}
	line.SetXAxis(dates).AddSeries("Close", closes)

	for _, metric := range result.Metrics {
		if strings.HasPrefix(metric.Name, "ma_") {
			line.AddSeries(strings.ToUpper(metric.Name), lineData(metric))
		}
	}
	if upper, ok := result.Metric(analysis.MetricUpperBand); ok {
		line.AddSeries("Upper Band", lineData(upper))
	}
	if lower, ok := result.Metric(analysis.MetricLowerBand); ok {
		line.AddSeries("Lower Band", lineData(lower))
	}

	return line
}

func volumeChart(series types.PriceSeries, dates []string) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Volume"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	volumes := make([]opts.BarData, series.Len())
	for i, b := range series.Bars {
		volumes[i] = opts.BarData{Value: b.Volume}
	}
	bar.SetXAxis(dates).AddSeries("Volume", volumes)

	return bar
}

func drawdownChart(result *analysis.Result, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "Drawdown"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
	)

	if metric, ok := result.Metric(analysis.MetricDrawdown); ok {
		line.SetXAxis(dates).AddSeries("Drawdown", lineData(metric),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.4}))
	}

	return line
}

func rsiChart(result *analysis.Result, dates []string) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: "RSI"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithYAxisOpts(opts.YAxis{Min: 0, Max: 100}),
	)

	if metric, ok := result.Metric(analysis.MetricRSI); ok {
		line.SetXAxis(dates).AddSeries("RSI", lineData(metric))
	}

	return line
}

// lineData converts a metric series into chart points. Warm-up points
// without a value become nil so the chart shows a gap instead of zero.
func lineData(metric types.MetricSeries) []opts.LineData {
	data := make([]opts.LineData, len(metric.Points))
	for i, point := range metric.Points {
		if point.Value.IsSome() {
			data[i] = opts.LineData{Value: point.Value.Unwrap()}
		} else {
			data[i] = opts.LineData{Value: nil}
		}
	}
	return data
}

func summaryLine(summary types.SummaryStats) string {
	return fmt.Sprintf("Total %s%% | Annualized %s%% | Volatility %s%% | Max Drawdown %s%%",
		percent(summary.TotalReturn),
		percent(summary.AnnualizedReturn),
		percent(summary.AnnualizedVolatility),
		percent(summary.MaxDrawdown),
	)
}

// percent formats a fractional value as a percentage rounded to two places.
func percent(v float64) string {
	return decimal.NewFromFloat(v * 100).Round(2).String()
}
