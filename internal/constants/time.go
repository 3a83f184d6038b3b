package constants

const (
	// DateFormat is the standard date format used throughout the application (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// LongDateFormat is used when presenting a streak start date
	LongDateFormat = "January 2, 2006"

	MonthsPerYear = 12
)

// MonthLabels are the fixed three-letter labels of the monthly breakdown,
// indexed by zero-based month.
var MonthLabels = [MonthsPerYear]string{
	"Jan", "Feb", "Mar", "Apr", "May", "Jun",
	"Jul", "Aug", "Sep", "Oct", "Nov", "Dec",
}
