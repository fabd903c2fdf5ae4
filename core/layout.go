package core

import (
	"github.com/lushalytics/dateplot/schema"
)

// resolveStyle falls back to the house style when the request carries none.
func resolveStyle(s schema.Style) schema.Style {
	if len(s.Palette) == 0 {
		return schema.DefaultStyle()
	}
	return s
}

// PaletteColor returns the palette entry for i, wrapping around the palette.
func PaletteColor(s schema.Style, i int) string {
	if len(s.Palette) == 0 {
		return ""
	}
	n := len(s.Palette)
	return s.Palette[((i%n)+n)%n]
}

func axisStyle(s schema.Style) schema.Axis {
	return schema.Axis{
		ShowLine:     true,
		LineWidth:    s.AxisLineWidth,
		LineColor:    s.AxisLineColor,
		TickFontSize: s.TickFontSize,
	}
}

// baseLayout is the layout every plotter starts from.
func baseLayout(req schema.PlotRequest, s schema.Style, defaultWidth int) schema.Layout {
	width, height := req.Width, req.Height
	if width <= 0 {
		width = defaultWidth
	}
	if height <= 0 {
		height = schema.DefaultPlotHeight
	}
	n := s.MarginBase
	return schema.Layout{
		Title:      TitleCase(req.Title),
		TitleColor: s.TitleColor,
		TitleX:     0,
		FontFamily: s.FontFamily,
		Background: s.Background,
		BarMode:    "stack",
		HoverAlign: "left",
		Width:      width,
		Height:     height,
		Margin:     schema.Margin{L: n, R: n, T: n, B: n},
		Legend: schema.Legend{
			Orientation: "h",
			X:           0.5,
			XAnchor:     "center",
			Y:           s.LegendY,
			YAnchor:     "top",
			FontSize:    s.LegendFontSize,
			Title:       req.Pipeline.SegmentCol,
		},
		XAxis: axisStyle(s),
		YAxis: axisStyle(s),
	}
}

// applyDateTicks sets the x-axis date format. Sparse charts, with fewer than
// s.ExplicitTicks points per series, get one labelled tick per period.
func applyDateTicks(layout *schema.Layout, tbl *schema.AggregatedTable, seriesCount int, s schema.Style) {
	layout.XAxis.TickFormat = s.TickFormat
	if seriesCount <= 0 {
		seriesCount = 1
	}
	if float64(len(tbl.Rows))/float64(seriesCount) >= float64(s.ExplicitTicks) {
		return
	}
	for _, start := range tbl.PeriodStarts() {
		layout.XAxis.TickVals = append(layout.XAxis.TickVals, start)
		layout.XAxis.TickText = append(layout.XAxis.TickText, start.Format(s.TickTextFormat))
	}
}
