package schema

import "time"

// Point is a single (x, y, hover) triple of a series.
type Point struct {
	X     time.Time `json:"x"`
	Y     NullFloat `json:"y"`
	Hover string    `json:"hover,omitempty"`
	Color string    `json:"color,omitempty"` // per-point marker color, if any
	Size  int64     `json:"size,omitempty"`  // sample size behind the point, if any
}

// Series is a named, x-sorted sequence of points for one segment or target.
type Series struct {
	Name       string    `json:"name"`
	ColorIndex int       `json:"color_index"`
	Color      string    `json:"color,omitempty"`
	Mode       TraceMode `json:"mode"`
	Spline     bool      `json:"spline,omitempty"`
	Dash       string    `json:"dash,omitempty"`
	LineWidth  int       `json:"line_width,omitempty"`
	MarkerSize int       `json:"marker_size,omitempty"`
	ShowLegend bool      `json:"show_legend"`
	LegendOnly bool      `json:"legend_only,omitempty"` // drawn only as a legend entry
	Points     []Point   `json:"points"`
}

// Margin holds figure margins in pixels.
type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// Legend describes legend placement.
type Legend struct {
	Orientation string  `json:"orientation"`
	X           float64 `json:"x"`
	XAnchor     string  `json:"xanchor"`
	Y           float64 `json:"y"`
	YAnchor     string  `json:"yanchor"`
	FontSize    int     `json:"font_size"`
	Title       string  `json:"title,omitempty"`
}

// Axis describes the styling and ticks of one axis.
type Axis struct {
	ShowLine     bool        `json:"show_line"`
	LineWidth    int         `json:"line_width"`
	LineColor    string      `json:"line_color"`
	Mirror       bool        `json:"mirror"`
	AutoMargin   bool        `json:"auto_margin"`
	TickFontSize int         `json:"tick_font_size"`
	TickFormat   string      `json:"tick_format,omitempty"`
	TickVals     []time.Time `json:"tick_vals,omitempty"`
	TickText     []string    `json:"tick_text,omitempty"`
	Range        []float64   `json:"range,omitempty"`
}

// Layout is the figure-level description of a chart.
type Layout struct {
	Title      string  `json:"title"`
	TitleColor string  `json:"title_color"`
	TitleX     float64 `json:"title_x"`
	FontFamily string  `json:"font_family"`
	Background string  `json:"background"`
	BarMode    string  `json:"bar_mode"`
	HoverAlign string  `json:"hover_align"`
	Width      int     `json:"width"`
	Height     int     `json:"height"`
	Margin     Margin  `json:"margin"`
	Legend     Legend  `json:"legend"`
	XAxis      Axis    `json:"xaxis"`
	YAxis      Axis    `json:"yaxis"`
}

// ChartSpec is the declarative chart handed to a rendering collaborator.
type ChartSpec struct {
	Kind   ChartKind        `json:"kind"`
	Series []Series         `json:"series"`
	Layout Layout           `json:"layout"`
	Table  *AggregatedTable `json:"table,omitempty"`
}

// Sample size band names.
const (
	SmallSample  = "Small"
	MediumSample = "Medium"
	LargeSample  = "Large"
)

// GetSampleSizeLabel returns the band a sample size falls into.
func GetSampleSizeLabel(n int64) string {
	switch {
	case n > 10000:
		return LargeSample
	case n > 1000:
		return MediumSample
	default:
		return SmallSample
	}
}

// SampleSizeLegend is the legend text for each band.
var SampleSizeLegend = map[string]string{
	SmallSample:  "≤ 1,000 sample size",
	MediumSample: "1,001 – 10,000 sample size",
	LargeSample:  "> 10,000 sample size",
}
