// Package render draws a static SVG or PNG preview of a ChartSpec with
// github.com/wcharczuk/go-chart/v2. It is a convenience for terminals and
// reports; interactive rendering of a ChartSpec is left to the consumer.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/lushalytics/dateplot/schema"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// ErrNothingToDraw is returned when no series has a drawable point.
var ErrNothingToDraw = errors.New("chart has no data to draw")

// tickLayout is the Go layout matching the "%b %d" axis format.
const tickLayout = "Jan 02"

// dotDash approximates the dotted connector style.
var dotDash = []float64{2, 4}

// Render writes spec to w in the given image format (svg or png).
func Render(w io.Writer, spec *schema.ChartSpec, format schema.OutputMode) error {
	var provider chart.RendererProvider
	switch format {
	case schema.SVGOut:
		provider = chart.SVG
	case schema.PNGOut:
		provider = chart.PNG
	default:
		return fmt.Errorf("unsupported image format %q", format)
	}
	if spec == nil {
		return ErrNothingToDraw
	}

	var err error
	if spec.Kind == schema.BarChart {
		err = renderBars(w, spec, provider)
	} else {
		err = renderLines(w, spec, provider)
	}
	if err != nil {
		return fmt.Errorf("failed to render %s chart: %w", spec.Kind, err)
	}
	return nil
}

func titleStyle(l schema.Layout) chart.Style {
	return chart.Style{
		FontColor: colorOr(l.TitleColor, drawing.ColorBlack),
		FontSize:  14,
	}
}

func backgroundStyle(l schema.Layout) chart.Style {
	return chart.Style{
		FillColor: colorOr(l.Background, drawing.ColorWhite),
		Padding: chart.Box{
			Top:    l.Margin.T + 20,
			Left:   l.Margin.L,
			Right:  l.Margin.R + 10,
			Bottom: l.Margin.B,
		},
	}
}

func axisStyle(a schema.Axis) chart.Style {
	return chart.Style{
		StrokeColor: colorOr(a.LineColor, drawing.ColorBlack),
		StrokeWidth: float64(a.LineWidth),
		FontSize:    float64(a.TickFontSize),
	}
}

// drawable keeps the points of s that have a value.
func drawable(s schema.Series) []schema.Point {
	out := make([]schema.Point, 0, len(s.Points))
	for _, p := range s.Points {
		if p.Y.Valid && !math.IsNaN(p.Y.Float) {
			out = append(out, p)
		}
	}
	return out
}

func timeSeries(s schema.Series, points []schema.Point) chart.TimeSeries {
	xs := make([]time.Time, len(points))
	ys := make([]float64, len(points))
	for i, p := range points {
		xs[i] = p.X
		ys[i] = p.Y.Float
	}

	color := colorOr(s.Color, chart.ColorBlue)
	style := chart.Style{
		StrokeColor: color,
		StrokeWidth: float64(max(s.LineWidth, 1)),
	}
	if s.Dash == "dot" {
		style.StrokeDashArray = dotDash
	}

	switch s.Mode {
	case schema.MarkersTrace:
		style.StrokeWidth = chart.Disabled
		style.DotWidth = float64(max(s.MarkerSize, 4)) / 2
		style.DotColor = color
		colors := make([]drawing.Color, len(points))
		for i, p := range points {
			colors[i] = colorOr(p.Color, color)
		}
		style.DotColorProvider = func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
			if index >= 0 && index < len(colors) {
				return colors[index]
			}
			return color
		}
	case schema.LinesMarkersTrace:
		style.DotWidth = float64(max(s.MarkerSize, 4)) / 2
		style.DotColor = color
	}

	return chart.TimeSeries{Name: s.Name, Style: style, XValues: xs, YValues: ys}
}

// xTicks converts explicit tick values, if any.
func xTicks(a schema.Axis) []chart.Tick {
	if len(a.TickVals) == 0 {
		return nil
	}
	ticks := make([]chart.Tick, len(a.TickVals))
	for i, t := range a.TickVals {
		label := t.Format(tickLayout)
		if i < len(a.TickText) {
			label = a.TickText[i]
		}
		ticks[i] = chart.Tick{Value: chart.TimeToFloat64(t), Label: label}
	}
	return ticks
}

func renderLines(w io.Writer, spec *schema.ChartSpec, provider chart.RendererProvider) error {
	l := spec.Layout

	var series []chart.Series
	var xMin, xMax time.Time
	yMin, yMax := math.Inf(1), math.Inf(-1)
	legend := false
	for _, s := range spec.Series {
		if s.LegendOnly {
			continue
		}
		points := drawable(s)
		if len(points) == 0 {
			continue
		}
		for _, p := range points {
			if xMin.IsZero() || p.X.Before(xMin) {
				xMin = p.X
			}
			if p.X.After(xMax) {
				xMax = p.X
			}
			yMin, yMax = math.Min(yMin, p.Y.Float), math.Max(yMax, p.Y.Float)
		}
		series = append(series, timeSeries(s, points))
		legend = legend || s.ShowLegend
	}
	if len(series) == 0 {
		return ErrNothingToDraw
	}

	graph := chart.Chart{
		Title:      l.Title,
		TitleStyle: titleStyle(l),
		Width:      l.Width,
		Height:     l.Height,
		Background: backgroundStyle(l),
		XAxis: chart.XAxis{
			Style:          axisStyle(l.XAxis),
			ValueFormatter: chart.TimeValueFormatterWithFormat(tickLayout),
			Ticks:          xTicks(l.XAxis),
		},
		YAxis: chart.YAxis{
			Style: axisStyle(l.YAxis),
		},
		Series: series,
	}
	if !xMin.Before(xMax) {
		// A single x value has no span, so pad it by a day either side
		graph.XAxis.Range = &chart.ContinuousRange{
			Min: chart.TimeToFloat64(xMin.AddDate(0, 0, -1)),
			Max: chart.TimeToFloat64(xMin.AddDate(0, 0, 1)),
		}
	}
	switch {
	case len(l.YAxis.Range) == 2:
		graph.YAxis.Range = &chart.ContinuousRange{Min: l.YAxis.Range[0], Max: l.YAxis.Range[1]}
	case yMin == yMax:
		graph.YAxis.Range = &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1}
	}
	if legend && len(series) > 1 {
		graph.Elements = []chart.Renderable{chart.LegendThin(&graph)}
	}

	return graph.Render(provider, w)
}

// barSlot is one x position of a bar chart.
type barSlot struct {
	x      time.Time
	values []chart.Value
	total  float64
}

func renderBars(w io.Writer, spec *schema.ChartSpec, provider chart.RendererProvider) error {
	l := spec.Layout

	var slots []*barSlot
	index := make(map[int64]*barSlot)
	for _, s := range spec.Series {
		color := colorOr(s.Color, chart.ColorBlue)
		for _, p := range drawable(s) {
			key := p.X.Unix()
			slot, ok := index[key]
			if !ok {
				slot = &barSlot{x: p.X}
				index[key] = slot
				slots = append(slots, slot)
			}
			slot.values = append(slot.values, chart.Value{
				Label: s.Name,
				Value: p.Y.Float,
				Style: chart.Style{FillColor: color, StrokeColor: color},
			})
			slot.total += p.Y.Float
		}
	}
	if len(slots) == 0 {
		return ErrNothingToDraw
	}
	slices.SortStableFunc(slots, func(a, b *barSlot) int { return a.x.Compare(b.x) })

	if len(spec.Series) > 1 {
		bars := make([]chart.StackedBar, len(slots))
		for i, slot := range slots {
			bars[i] = chart.StackedBar{Name: slot.x.Format(tickLayout), Values: slot.values}
		}
		graph := chart.StackedBarChart{
			Title:      l.Title,
			TitleStyle: titleStyle(l),
			Width:      l.Width,
			Height:     l.Height,
			Background: backgroundStyle(l),
			XAxis:      axisStyle(l.XAxis),
			YAxis:      axisStyle(l.YAxis),
			Bars:       bars,
		}
		return graph.Render(provider, w)
	}

	bars := make([]chart.Value, len(slots))
	maxTotal := 0.0
	for i, slot := range slots {
		v := slot.values[0]
		v.Label = slot.x.Format(tickLayout)
		bars[i] = v
		maxTotal = math.Max(maxTotal, slot.total)
	}
	graph := chart.BarChart{
		Title:      l.Title,
		TitleStyle: titleStyle(l),
		Width:      l.Width,
		Height:     l.Height,
		Background: backgroundStyle(l),
		XAxis:      axisStyle(l.XAxis),
		YAxis: chart.YAxis{
			Style: axisStyle(l.YAxis),
			Range: &chart.ContinuousRange{Min: 0, Max: math.Max(maxTotal*1.1, 1)},
		},
		Bars: bars,
	}
	return graph.Render(provider, w)
}
