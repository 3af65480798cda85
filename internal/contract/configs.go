package contract

import (
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/huangsam/cpitrend/internal/annotations"
	"github.com/huangsam/cpitrend/schema"
)

// Default values for configuration.
const (
	DefaultPrecision   = 2
	MaxPrecision       = 4
	DefaultTitle       = "Consumer Price Index"
	DefaultSeriesName  = "CPI"
	DefaultDateColumn  = "date"
	DefaultValueColumn = "cpi"
	DefaultLogLevel    = "warn"
)

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// StyleRawInput holds chart style overrides from the YAML config file.
// Use pointers for numeric fields so that zero can be told apart from "not set".
type StyleRawInput struct {
	XLabel      string   `mapstructure:"x-label"`
	YLabel      string   `mapstructure:"y-label"`
	Palette     []string `mapstructure:"palette"`
	FontFamily  string   `mapstructure:"font-family"`
	FontSize    *int     `mapstructure:"font-size"`
	LineWidth   *float64 `mapstructure:"line-width"`
	BandOpacity *float64 `mapstructure:"band-opacity"`
	Width       *int     `mapstructure:"width"`
	Height      *int     `mapstructure:"height"`
}

// Config holds the runtime configuration for a report.
// This struct remains the "final, validated" config.
type Config struct {
	DatasetPath string
	DateColumn  string
	ValueColumn string
	DateFormat  string
	Sheet       string // XLSX only; empty means the first sheet
	SeriesName  string
	Title       string
	YearLag     int

	Precision  int
	Output     schema.OutputMode
	OutputFile string
	Width      int // Terminal width override (0 = auto-detect)
	UseColors  bool

	AnnotationsFile string
	Annotations     []schema.Annotation

	// Style is the user override applied on top of the default chart style
	Style StyleRawInput

	HistoryBackend   schema.DatabaseBackend
	HistoryDBConnect string // Please use env var as this is plaintext

	LogLevel logrus.Level
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// This is set manually from positional args, so no tag
	DatasetPathStr string

	// --- Fields from rootCmd.PersistentFlags() ---
	DateColumn       string `mapstructure:"date-column"`
	ValueColumn      string `mapstructure:"value-column"`
	DateFormat       string `mapstructure:"date-format"`
	Sheet            string `mapstructure:"sheet"`
	SeriesName       string `mapstructure:"series-name"`
	Title            string `mapstructure:"title"`
	YearLag          int    `mapstructure:"year-lag"`
	Output           string `mapstructure:"output"`
	OutputFile       string `mapstructure:"output-file"`
	Precision        int    `mapstructure:"precision"`
	Width            int    `mapstructure:"width"`
	Color            string `mapstructure:"color"`
	AnnotationsFile  string `mapstructure:"annotations-file"`
	HistoryBackend   string `mapstructure:"history-backend"`
	HistoryDBConnect string `mapstructure:"history-db-connect"`
	LogLevel         string `mapstructure:"log-level"`

	// --- Annotation list from config file ---
	Annotations []annotations.Spec `mapstructure:"annotations"`

	// --- Chart style from config file ---
	Style StyleRawInput `mapstructure:"style"`
}

// Clone returns a deep copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	if c.Annotations != nil {
		clone.Annotations = make([]schema.Annotation, len(c.Annotations))
		for i, a := range c.Annotations {
			clone.Annotations[i] = a
			if a.End != nil {
				end := *a.End
				clone.Annotations[i].End = &end
			}
		}
	}
	if c.Style.Palette != nil {
		clone.Style.Palette = append([]string(nil), c.Style.Palette...)
	}
	return &clone
}

// ConfigParams returns the settings recorded alongside a run in the history store.
func (c *Config) ConfigParams() map[string]any {
	labels := make([]string, len(c.Annotations))
	for i, a := range c.Annotations {
		labels[i] = a.Label
	}
	return map[string]any{
		"date_column":  c.DateColumn,
		"value_column": c.ValueColumn,
		"date_format":  c.DateFormat,
		"sheet":        c.Sheet,
		"year_lag":     c.YearLag,
		"annotations":  labels,
	}
}

// ProcessAndValidate performs all complex parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := processAnnotations(cfg, input); err != nil {
		return err
	}
	if err := processStyle(cfg, input); err != nil {
		return err
	}
	return processLogLevel(cfg, input)
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

// validateBackendConfigs validates the history backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	cfg.HistoryBackend = schema.DatabaseBackend(strings.ToLower(input.HistoryBackend))
	if cfg.HistoryBackend == "" {
		cfg.HistoryBackend = schema.NoneBackend
	}
	if _, ok := schema.ValidDatabaseBackends[cfg.HistoryBackend]; !ok {
		return fmt.Errorf("invalid history backend '%s'. must be sqlite, mysql, postgresql, none", input.HistoryBackend)
	}
	cfg.HistoryDBConnect = input.HistoryDBConnect
	return ValidateDatabaseConnectionString(cfg.HistoryBackend, cfg.HistoryDBConnect)
}

// validateSimpleInputs processes and validates all dataset and output fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.DatasetPath = strings.TrimSpace(input.DatasetPathStr)
	cfg.OutputFile = input.OutputFile
	cfg.Width = input.Width
	cfg.Sheet = strings.TrimSpace(input.Sheet)
	cfg.AnnotationsFile = strings.TrimSpace(input.AnnotationsFile)

	cfg.DateColumn = defaultString(input.DateColumn, DefaultDateColumn)
	cfg.ValueColumn = defaultString(input.ValueColumn, DefaultValueColumn)
	cfg.DateFormat = defaultString(input.DateFormat, schema.DefaultDateFormat)
	cfg.SeriesName = defaultString(input.SeriesName, DefaultSeriesName)
	cfg.Title = defaultString(input.Title, DefaultTitle)

	// Parse color flag
	colors, err := ParseBoolString(defaultString(input.Color, "yes"))
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Dataset Validation ---
	if cfg.DatasetPath == "" {
		return fmt.Errorf("a dataset path is required")
	}
	if cfg.DateColumn == cfg.ValueColumn {
		return fmt.Errorf("date and value columns must differ (both are '%s')", cfg.DateColumn)
	}

	// --- 2. Year Lag Validation ---
	if input.YearLag < 0 {
		return fmt.Errorf("year-lag cannot be negative (received %d)", input.YearLag)
	}
	cfg.YearLag = input.YearLag
	if cfg.YearLag == 0 {
		cfg.YearLag = schema.QuarterLag
	}

	// --- 3. Precision and Output Validation ---
	if input.Precision < 0 || input.Precision > MaxPrecision {
		return fmt.Errorf("precision must be between 0 and %d (received %d)", MaxPrecision, input.Precision)
	}
	cfg.Precision = input.Precision

	cfg.Output = schema.OutputMode(strings.ToLower(defaultString(input.Output, string(schema.TextOut))))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be text, csv, json, parquet", cfg.Output)
	}
	if cfg.Output == schema.ParquetOut && cfg.OutputFile == "" {
		return fmt.Errorf("parquet output requires --output-file")
	}

	return nil
}

// processAnnotations resolves annotations from the HCL file, the config list, or the defaults, in that order.
func processAnnotations(cfg *Config, input *ConfigRawInput) error {
	switch {
	case cfg.AnnotationsFile != "":
		anns, err := annotations.LoadFile(cfg.AnnotationsFile)
		if err != nil {
			return err
		}
		cfg.Annotations = anns
	case len(input.Annotations) > 0:
		anns, err := annotations.BuildAll(input.Annotations, cfg.DateFormat)
		if err != nil {
			return err
		}
		cfg.Annotations = anns
	default:
		cfg.Annotations = annotations.Defaults()
	}
	return nil
}

// processStyle validates chart style overrides; defaults are filled in by the chart package.
func processStyle(cfg *Config, input *ConfigRawInput) error {
	s := input.Style
	if s.FontSize != nil && *s.FontSize <= 0 {
		return fmt.Errorf("style font-size must be greater than 0 (received %d)", *s.FontSize)
	}
	if s.LineWidth != nil && *s.LineWidth <= 0 {
		return fmt.Errorf("style line-width must be greater than 0 (received %.2f)", *s.LineWidth)
	}
	if s.BandOpacity != nil && (*s.BandOpacity < 0 || *s.BandOpacity > 1) {
		return fmt.Errorf("style band-opacity must be between 0 and 1 (received %.2f)", *s.BandOpacity)
	}
	if s.Width != nil && *s.Width <= 0 {
		return fmt.Errorf("style width must be greater than 0 (received %d)", *s.Width)
	}
	if s.Height != nil && *s.Height <= 0 {
		return fmt.Errorf("style height must be greater than 0 (received %d)", *s.Height)
	}
	cfg.Style = s
	return nil
}

func processLogLevel(cfg *Config, input *ConfigRawInput) error {
	level, err := logrus.ParseLevel(defaultString(input.LogLevel, DefaultLogLevel))
	if err != nil {
		return fmt.Errorf("invalid --log-level value: %w", err)
	}
	cfg.LogLevel = level
	return nil
}

func defaultString(v, fallback string) string {
	if v = strings.TrimSpace(v); v == "" {
		return fallback
	}
	return v
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}
