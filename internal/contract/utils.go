package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/huangsam/cpitrend/schema"
)

// MissingValue is shown in place of an unknown value.
const MissingValue = "-"

// Color variables for console output.
var (
	ObservedColor     = color.New(color.FgGreen)
	InterpolatedColor = color.New(color.FgCyan)
	MissingColor      = color.New(color.FgRed, color.Bold)
	OutOfRangeColor   = color.New(color.FgYellow)
	RiseColor         = color.New(color.FgMagenta, color.Bold)
)

// RateAlertThreshold is the year-over-year change (in percent) above which a rate is highlighted.
const RateAlertThreshold = 5.0

// GetStatusLabel returns a colored text label for an observation status (table output).
func GetStatusLabel(status schema.ObservationStatus) string {
	text := string(status)
	switch status {
	case schema.InterpolatedStatus:
		return InterpolatedColor.Sprint(text)
	case schema.MissingStatus:
		return MissingColor.Sprint(text)
	default:
		return ObservedColor.Sprint(text)
	}
}

// FormatValue formats an optional float with the given precision.
func FormatValue(v *float64, precision int) string {
	if v == nil {
		return MissingValue
	}
	return strconv.FormatFloat(*v, 'f', precision, 64)
}

// FormatRate formats an optional percentage; useColors highlights rates at or above RateAlertThreshold.
func FormatRate(v *float64, precision int, useColors bool) string {
	if v == nil {
		return MissingValue
	}
	text := strconv.FormatFloat(*v, 'f', precision, 64) + "%"
	if useColors && *v >= RateAlertThreshold {
		return RiseColor.Sprint(text)
	}
	return text
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for run history.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".cpitrend_history.db"
	}
	return filepath.Join(homeDir, ".cpitrend_history.db")
}

// TruncateText shortens text to maxWidth runes, keeping the start and marking the cut with "...".
func TruncateText(text string, maxWidth int) string {
	runes := []rune(text)
	if len(runes) > maxWidth && maxWidth > 3 {
		return string(runes[:maxWidth-3]) + "..."
	}
	return text
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
