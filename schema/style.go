package schema

// Style holds every presentational constant shared by the plotters.
type Style struct {
	TitleColor     string   `mapstructure:"title_color" json:"title_color" toml:"title_color"`
	FontFamily     string   `mapstructure:"font_family" json:"font_family" toml:"font_family"`
	Background     string   `mapstructure:"background" json:"background" toml:"background"`
	Palette        []string `mapstructure:"palette" json:"palette" toml:"palette"`
	AxisLineColor  string   `mapstructure:"axis_line_color" json:"axis_line_color" toml:"axis_line_color"`
	AxisLineWidth  int      `mapstructure:"axis_line_width" json:"axis_line_width" toml:"axis_line_width"`
	TickFontSize   int      `mapstructure:"tick_font_size" json:"tick_font_size" toml:"tick_font_size"`
	LegendFontSize int      `mapstructure:"legend_font_size" json:"legend_font_size" toml:"legend_font_size"`
	LegendY        float64  `mapstructure:"legend_y" json:"legend_y" toml:"legend_y"`
	MarginBase     int      `mapstructure:"margin_base" json:"margin_base" toml:"margin_base"`
	ConnectorColor string   `mapstructure:"connector_color" json:"connector_color" toml:"connector_color"`
	SmallColor     string   `mapstructure:"small_color" json:"small_color" toml:"small_color"`
	MediumColor    string   `mapstructure:"medium_color" json:"medium_color" toml:"medium_color"`
	LargeColor     string   `mapstructure:"large_color" json:"large_color" toml:"large_color"`
	LineWidth      int      `mapstructure:"line_width" json:"line_width" toml:"line_width"`
	MarkerSize     int      `mapstructure:"marker_size" json:"marker_size" toml:"marker_size"`
	TickFormat     string   `mapstructure:"tick_format" json:"tick_format" toml:"tick_format"`
	TickTextFormat string   `mapstructure:"tick_text_format" json:"tick_text_format" toml:"tick_text_format"` // Go time layout
	ExplicitTicks  int      `mapstructure:"explicit_ticks" json:"explicit_ticks" toml:"explicit_ticks"`       // emit tick values below this many points
}

// DefaultPalette is the ordered series palette.
var DefaultPalette = []string{
	"#ae37ff",
	"#ab8bff",
	"#bbc6e2",
	"#8fb3e0",
	"#98c8d9",
	"#92e4c3",
	"#91de73",
}

// Default figure sizes in pixels.
const (
	DefaultLineWidth  = 700
	DefaultBarWidth   = 600
	DefaultPlotHeight = 271
)

// DefaultStyle returns the house style.
func DefaultStyle() Style {
	palette := make([]string, len(DefaultPalette))
	copy(palette, DefaultPalette)
	return Style{
		TitleColor:     "#AE37FF",
		FontFamily:     "Poppins-Medium, sans-serif",
		Background:     "white",
		Palette:        palette,
		AxisLineColor:  "rgba(0, 0, 0, 0.2)",
		AxisLineWidth:  2,
		TickFontSize:   9,
		LegendFontSize: 12,
		LegendY:        -0.15,
		MarginBase:     35,
		ConnectorColor: "#4d4d4d",
		SmallColor:     "red",
		MediumColor:    "yellow",
		LargeColor:     "green",
		LineWidth:      4,
		MarkerSize:     10,
		TickFormat:     "%b %d",
		TickTextFormat: "Jan 02",
		ExplicitTicks:  10,
	}
}
