package contract

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/lushalytics/dateplot/schema"
)

// Default values for configuration.
const (
	DefaultDaysBack    = 30
	DefaultGranularity = string(schema.Daily)
	DefaultWeekStart   = "monday"
)

// StyleRawInput holds style overrides from the YAML config file.
// Pointer fields are optional; nil keeps the house default.
type StyleRawInput struct {
	TitleColor     *string  `mapstructure:"title_color"`
	FontFamily     *string  `mapstructure:"font_family"`
	Background     *string  `mapstructure:"background"`
	Palette        []string `mapstructure:"palette"`
	AxisLineColor  *string  `mapstructure:"axis_line_color"`
	ConnectorColor *string  `mapstructure:"connector_color"`
	LineWidth      *int     `mapstructure:"line_width"`
	MarkerSize     *int     `mapstructure:"marker_size"`
	MarginBase     *int     `mapstructure:"margin_base"`
}

// Config holds the runtime configuration for one plot.
// This struct is the "final, validated" config.
type Config struct {
	InputPath   string
	Kind        schema.ChartKind
	Title       string
	Pipeline    schema.PipelineOptions
	PartOfWhole bool
	YRange      []float64
	Width       int
	Height      int
	Style       schema.Style
	Output      schema.OutputMode
	OutputFile  string

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in status lines
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from the command and positional args, so no tag
	InputPathStr string
	KindStr      string

	// --- Fields from rootCmd.PersistentFlags() ---
	Date             string   `mapstructure:"date"`
	Filter           []string `mapstructure:"filter"`
	Granularity      string   `mapstructure:"granularity"`
	IncompleteDrop   bool     `mapstructure:"incomplete-drop"`
	DaysBack         int      `mapstructure:"days-back"`
	WeekStart        string   `mapstructure:"week-start"`
	Title            string   `mapstructure:"title"`
	Width            int      `mapstructure:"width"`
	Height           int      `mapstructure:"height"`
	Output           string   `mapstructure:"output"`
	OutputFile       string   `mapstructure:"output-file"`
	HistoryBackend   string   `mapstructure:"history-backend"`
	HistoryDBConnect string   `mapstructure:"history-db-connect"`
	Emoji            string   `mapstructure:"emoji"`
	Color            string   `mapstructure:"color"`

	// --- Fields from lineCmd.Flags() and barCmd.Flags() ---
	Target      string `mapstructure:"target"`
	Segment     string `mapstructure:"segment"`
	Aggregator  string `mapstructure:"aggregator"`
	Count       string `mapstructure:"count"`
	PartOfWhole bool   `mapstructure:"part-of-whole"`

	// --- Fields from errorCmd.Flags() ---
	Actual    string `mapstructure:"actual"`
	Predicted string `mapstructure:"predicted"`
	YRange    string `mapstructure:"y-range"`

	// --- Style overrides from config file ---
	StyleFile string        `mapstructure:"style-file"`
	Style     StyleRawInput `mapstructure:"style"`
}

// PlotRequest builds the chart request described by the config.
func (c *Config) PlotRequest() schema.PlotRequest {
	return schema.PlotRequest{
		Kind:        c.Kind,
		Title:       c.Title,
		Pipeline:    c.Pipeline,
		PartOfWhole: c.PartOfWhole,
		YRange:      c.YRange,
		Width:       c.Width,
		Height:      c.Height,
		Style:       c.Style,
	}
}

// ConfigParams returns the settings worth recording alongside a run.
func (c *Config) ConfigParams() map[string]any {
	return map[string]any{
		"input":       c.InputPath,
		"kind":        string(c.Kind),
		"date":        c.Pipeline.DateCol,
		"targets":     c.Pipeline.Targets,
		"segment":     c.Pipeline.SegmentCol,
		"aggregator":  string(c.Pipeline.Aggregator),
		"count":       c.Pipeline.WeightCol,
		"granularity": string(c.Pipeline.Granularity),
		"days_back":   c.Pipeline.DaysBack,
		"output":      string(c.Output),
	}
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processPipeline(cfg, input); err != nil {
		return err
	}
	if err := processPlotKind(cfg, input); err != nil {
		return err
	}
	return processStyle(cfg, input)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("history-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ValidateHistoryBackend parses and validates the history backend settings.
func ValidateHistoryBackend(cfg *Config, backend, connStr string) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(backend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.SQLiteBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", backend)
	}
	cfg.HistoryDBConnect = connStr
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all non-pipeline fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	cfg.InputPath = strings.TrimSpace(input.InputPathStr)
	if cfg.InputPath == "" {
		return fmt.Errorf("input file is required")
	}
	cfg.Title = input.Title
	cfg.OutputFile = input.OutputFile
	cfg.PartOfWhole = input.PartOfWhole

	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	if input.Width < 0 || input.Height < 0 {
		return fmt.Errorf("width and height must not be negative (received %dx%d)", input.Width, input.Height)
	}
	cfg.Width = input.Width
	cfg.Height = input.Height

	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, json, csv, parquet, svg, png", input.Output)
	}
	if (cfg.Output == schema.ParquetOut || cfg.Output == schema.PNGOut) && cfg.OutputFile == "" {
		return fmt.Errorf("--output-file is required for %s output", cfg.Output)
	}

	return ValidateHistoryBackend(cfg, input.HistoryBackend, input.HistoryDBConnect)
}

// processPipeline fills the options shared by every plot kind.
func processPipeline(cfg *Config, input *ConfigRawInput) error {
	p := &cfg.Pipeline
	p.DateCol = strings.TrimSpace(input.Date)
	if p.DateCol == "" {
		return fmt.Errorf("--date is required")
	}

	filters, err := ParseFilters(input.Filter)
	if err != nil {
		return err
	}
	p.Filters = filters

	if p.Granularity, err = schema.ParseGranularity(input.Granularity); err != nil {
		return err
	}
	weekStart, err := schema.ParseWeekday(input.WeekStart)
	if err != nil {
		return fmt.Errorf("invalid --week-start value: %w", err)
	}
	p.WeekStart = &weekStart
	if input.DaysBack < 0 {
		return fmt.Errorf("days-back must not be negative (received %d)", input.DaysBack)
	}
	p.DaysBack = input.DaysBack
	p.DropIncomplete = input.IncompleteDrop
	p.WeightCol = strings.TrimSpace(input.Count)
	return nil
}

// processPlotKind fills targets and mode for the chosen plot kind.
func processPlotKind(cfg *Config, input *ConfigRawInput) error {
	cfg.Kind = schema.ChartKind(input.KindStr)
	p := &cfg.Pipeline
	switch cfg.Kind {
	case schema.LineChart:
		p.Targets = SplitList(input.Target)
		if len(p.Targets) == 0 {
			return fmt.Errorf("--target is required")
		}
		p.SegmentCol = strings.TrimSpace(input.Segment)
		mode, err := schema.ParseAggregationMode(input.Aggregator)
		if err != nil {
			return err
		}
		p.Aggregator = mode
	case schema.BarChart:
		p.Targets = SplitList(input.Target)
		if len(p.Targets) != 1 {
			return fmt.Errorf("bar plots take exactly one --target (received %d)", len(p.Targets))
		}
		p.SegmentCol = strings.TrimSpace(input.Segment)
		p.Aggregator = schema.SumAgg
	case schema.ErrorLineChart:
		actual, pred := strings.TrimSpace(input.Actual), strings.TrimSpace(input.Predicted)
		if actual == "" || pred == "" {
			return fmt.Errorf("--actual and --predicted are required")
		}
		if p.WeightCol == "" {
			return fmt.Errorf("--count is required for error plots")
		}
		p.Targets = []string{actual, pred}
		p.Aggregator = schema.WeightedAvgAgg
		yRange, err := ParseRange(input.YRange)
		if err != nil {
			return err
		}
		cfg.YRange = yRange
	default:
		return fmt.Errorf("invalid plot kind '%s'. must be line, bar, error_line", input.KindStr)
	}
	return nil
}

// processStyle layers the TOML theme file and then the config file overrides
// on top of the default style.
func processStyle(cfg *Config, input *ConfigRawInput) error {
	s := schema.DefaultStyle()
	if path := strings.TrimSpace(input.StyleFile); path != "" {
		themed, err := LoadStyleFile(path, s)
		if err != nil {
			return err
		}
		s = themed
	}
	raw := input.Style
	if raw.TitleColor != nil {
		s.TitleColor = *raw.TitleColor
	}
	if raw.FontFamily != nil {
		s.FontFamily = *raw.FontFamily
	}
	if raw.Background != nil {
		s.Background = *raw.Background
	}
	if len(raw.Palette) > 0 {
		s.Palette = append([]string{}, raw.Palette...)
	}
	if raw.AxisLineColor != nil {
		s.AxisLineColor = *raw.AxisLineColor
	}
	if raw.ConnectorColor != nil {
		s.ConnectorColor = *raw.ConnectorColor
	}
	if raw.LineWidth != nil {
		s.LineWidth = *raw.LineWidth
	}
	if raw.MarkerSize != nil {
		s.MarkerSize = *raw.MarkerSize
	}
	if raw.MarginBase != nil {
		s.MarginBase = *raw.MarginBase
	}
	cfg.Style = s
	return nil
}

// LoadStyleFile decodes a TOML theme on top of base. Keys absent from the file
// keep the base value; unknown keys are an error.
func LoadStyleFile(path string, base schema.Style) (schema.Style, error) {
	s := base
	s.Palette = append([]string{}, base.Palette...)
	md, err := toml.DecodeFile(path, &s)
	if err != nil {
		return base, fmt.Errorf("failed to parse style file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return base, fmt.Errorf("unknown keys in style file %s: %v", path, undecoded)
	}
	return s, nil
}

// ParseFilters parses entries like "cat=A|B" into a column to values map.
// Repeating a column adds to its allowed values.
func ParseFilters(entries []string) (map[string][]string, error) {
	if len(entries) == 0 {
		return nil, nil
	}
	filters := make(map[string][]string)
	for _, entry := range entries {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		col, values, ok := strings.Cut(entry, "=")
		col = strings.TrimSpace(col)
		if !ok || col == "" {
			return nil, fmt.Errorf("invalid filter '%s', expected 'column=value|value'", entry)
		}
		for v := range strings.SplitSeq(values, "|") {
			filters[col] = append(filters[col], strings.TrimSpace(v))
		}
	}
	return filters, nil
}

// ParseRange parses "lo,hi" into a two element range. Empty means [0, 1].
func ParseRange(s string) ([]float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return []float64{0, 1}, nil
	}
	lo, hi, ok := strings.Cut(s, ",")
	if !ok {
		return nil, fmt.Errorf("invalid range '%s', expected 'lo,hi'", s)
	}
	l, err := strconv.ParseFloat(strings.TrimSpace(lo), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range lower bound '%s': %w", lo, err)
	}
	h, err := strconv.ParseFloat(strings.TrimSpace(hi), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid range upper bound '%s': %w", hi, err)
	}
	if l >= h {
		return nil, fmt.Errorf("range lower bound %g must be below upper bound %g", l, h)
	}
	return []float64{l, h}, nil
}

// SplitList splits a comma-separated list, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for p := range strings.SplitSeq(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339
