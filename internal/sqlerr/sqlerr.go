// Package sqlerr turns Postgres driver errors into API errors.
package sqlerr

// Code is a driver independent category of database error.
type Code string

const (
	Other                Code = "other"
	NotNullViolation     Code = "not_null_violation"
	ForeignKeyViolation  Code = "foreign_key_violation"
	UniqueViolation      Code = "unique_violation"
	CheckViolation       Code = "check_violation"
	ExclusionViolation   Code = "exclusion_violation"
	InvalidTextRep       Code = "invalid_text_representation"
	NumericOutOfRange    Code = "numeric_value_out_of_range"
	StringDataTruncation Code = "string_data_right_truncation"
	SerializationFailure Code = "serialization_failure"
	DeadlockDetected     Code = "deadlock_detected"
)

// Severity mirrors the Postgres severity field.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityFatal   Severity = "FATAL"
	SeverityPanic   Severity = "PANIC"
	SeverityWarning Severity = "WARNING"
	SeverityNotice  Severity = "NOTICE"
	SeverityDebug   Severity = "DEBUG"
	SeverityInfo    Severity = "INFO"
	SeverityLog     Severity = "LOG"
	SeverityUnknown Severity = "UNKNOWN"
)

// Error is the normalised form of a Postgres error.
//
// It keeps the raw driver error around so errors.As still finds *pgconn.PgError.
type Error struct {
	Code           Code
	Severity       Severity
	DatabaseCode   string
	Message        string
	SchemaName     string
	TableName      string
	ColumnName     string
	DataTypeName   string
	ConstraintName string
	driverErr      error
}

func (e *Error) Error() string {
	return string(e.Severity) + ": " + e.Message + " (SQLSTATE " + e.DatabaseCode + ")"
}

func (e *Error) Unwrap() error {
	return e.driverErr
}

// MapCode maps a SQLSTATE onto a Code.
// See https://www.postgresql.org/docs/current/errcodes-appendix.html
func MapCode(sqlState string) Code {
	switch sqlState {
	case "23502":
		return NotNullViolation
	case "23503":
		return ForeignKeyViolation
	case "23505":
		return UniqueViolation
	case "23514":
		return CheckViolation
	case "23P01":
		return ExclusionViolation
	case "22P02":
		return InvalidTextRep
	case "22003":
		return NumericOutOfRange
	case "22001":
		return StringDataTruncation
	case "40001":
		return SerializationFailure
	case "40P01":
		return DeadlockDetected
	default:
		return Other
	}
}

// MapSeverity maps the textual Postgres severity onto a Severity.
func MapSeverity(severity string) Severity {
	switch Severity(severity) {
	case SeverityError, SeverityFatal, SeverityPanic, SeverityWarning,
		SeverityNotice, SeverityDebug, SeverityInfo, SeverityLog:
		return Severity(severity)
	default:
		return SeverityUnknown
	}
}
