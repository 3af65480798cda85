package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for run history.
	DatabaseBackend string

	// AnnotationKind distinguishes range annotations from point annotations.
	AnnotationKind string

	// BoundaryPosition tells which end of the series an unfillable gap sits on.
	BoundaryPosition string

	// ObservationStatus describes where a reported value came from.
	ObservationStatus string
)

// All output modes supported.
const (
	CSVOut     OutputMode = "csv"
	TextOut    OutputMode = "text" // default
	JSONOut    OutputMode = "json"
	ParquetOut OutputMode = "parquet"
)

// All history backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All annotation kinds supported.
const (
	RangeKind AnnotationKind = "range"
	PointKind AnnotationKind = "point"
)

// Boundary positions.
const (
	LeadingBoundary  BoundaryPosition = "leading"
	TrailingBoundary BoundaryPosition = "trailing"
)

// Observation statuses.
const (
	ObservedStatus     ObservationStatus = "observed"
	InterpolatedStatus ObservationStatus = "interpolated"
	MissingStatus      ObservationStatus = "missing"
)

// DefaultDateFormat is the layout of the date column when none is configured.
const DefaultDateFormat = "2006-01-02"

// QuarterLag is the number of observations in one year of a quarterly series.
const QuarterLag = 4

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	CSVOut:     {},
	TextOut:    {},
	JSONOut:    {},
	ParquetOut: {},
}

// ValidDatabaseBackends lists all valid history backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidAnnotationKinds lists all valid annotation kinds.
var ValidAnnotationKinds = map[AnnotationKind]struct{}{
	RangeKind: {},
	PointKind: {},
}

// MissingTokens are value texts treated as a missing observation (compared case-insensitively).
var MissingTokens = []string{"", "na", "n/a", "nan", "null", "-"}
