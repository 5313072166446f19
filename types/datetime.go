package types

import (
	"math"
	"strconv"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/dromara/carbon/v2"
)

// ErrDateOutOfRange is returned by calendar conversions when the value
// falls outside the active CalendarRange.
var ErrDateOutOfRange = errors.New("datetime out of calendar range")

var _ Value = DateTime(0)

// DateTime is a point in time as UTC milliseconds since the Unix epoch.
// It is a plain counter, independent of any calendar; calendar and text
// conversions are explicit and range-checked.
type DateTime int64

// The full representable span.
const (
	MinDateTime DateTime = math.MinInt64
	MaxDateTime DateTime = math.MaxInt64
)

var (
	maxMilliTime = time.UnixMilli(math.MaxInt64)
	minMilliTime = time.UnixMilli(math.MinInt64)
)

// NewDateTime converts t to a DateTime, truncating to millisecond
// precision. Times outside the representable span saturate to
// MinDateTime/MaxDateTime, they never wrap.
func NewDateTime(t time.Time) DateTime {
	if t.After(maxMilliTime) {
		return MaxDateTime
	}
	if t.Before(minMilliTime) {
		return MinDateTime
	}
	return DateTime(t.UnixMilli())
}

func (d DateTime) Type() Type { return TypeDateTime }

// Millis returns the raw millisecond count.
func (d DateTime) Millis() int64 { return int64(d) }

// Time converts the DateTime to a time.Time in UTC.
func (d DateTime) Time() time.Time {
	return time.UnixMilli(int64(d)).UTC()
}

func (d DateTime) String() string {
	if s, err := d.Format(); err == nil {
		return "DateTime(" + s + ")"
	}
	return "DateTime(" + strconv.FormatInt(int64(d), 10) + "ms)"
}

// CalendarRange bounds the years accepted by calendar and text
// conversions.
type CalendarRange struct {
	MinYear, MaxYear int
}

var (
	// StandardRange covers years 1 through 9999, the span that always
	// formats and parses unambiguously as RFC 3339 text.
	StandardRange = CalendarRange{MinYear: 1, MaxYear: 9999}

	// ExtendedRange covers years -999999 through 999999. Text outside the
	// standard range is not valid RFC 3339 and may not parse back.
	ExtendedRange = CalendarRange{MinYear: -999999, MaxYear: 999999}
)

func (r CalendarRange) contains(year int) bool {
	return year >= r.MinYear && year <= r.MaxYear
}

// DateTimeParts are broken-down UTC calendar components.
type DateTimeParts struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int
}

// BuildDateTime assembles a DateTime from calendar components in the
// standard range.
func BuildDateTime(p DateTimeParts) (DateTime, error) {
	return BuildDateTimeIn(p, StandardRange)
}

// BuildDateTimeIn assembles a DateTime from calendar components,
// rejecting years outside r and components that do not name a real
// moment (such as February 30th).
func BuildDateTimeIn(p DateTimeParts, r CalendarRange) (DateTime, error) {
	if !r.contains(p.Year) {
		return 0, errors.Wrapf(ErrDateOutOfRange, "year %d not in [%d, %d]", p.Year, r.MinYear, r.MaxYear)
	}

	c := carbon.CreateFromDateTimeMilli(p.Year, p.Month, p.Day, p.Hour, p.Minute, p.Second, p.Millisecond, "UTC")
	if c.Error != nil {
		return 0, errors.Wrap(c.Error, "building datetime")
	}
	// The calendar backend normalizes overflowing components (month 13
	// becomes January of the next year). Normalized input is a caller
	// bug, not a date, so compare back.
	if c.Year() != p.Year || c.Month() != p.Month || c.Day() != p.Day ||
		c.Hour() != p.Hour || c.Minute() != p.Minute || c.Second() != p.Second ||
		c.Millisecond() != p.Millisecond {
		return 0, errors.Newf("calendar components %+v do not name a real moment", p)
	}
	return DateTime(c.TimestampMilli()), nil
}

// Parts breaks the DateTime into UTC calendar components.
func (d DateTime) Parts() DateTimeParts {
	c := carbon.CreateFromTimestampMilli(int64(d), "UTC")
	return DateTimeParts{
		Year:        c.Year(),
		Month:       c.Month(),
		Day:         c.Day(),
		Hour:        c.Hour(),
		Minute:      c.Minute(),
		Second:      c.Second(),
		Millisecond: c.Millisecond(),
	}
}

// ParseDateTime parses RFC 3339 text (and the other layouts the calendar
// backend accepts) into a DateTime in the standard range.
func ParseDateTime(s string) (DateTime, error) {
	return ParseDateTimeIn(s, StandardRange)
}

// ParseDateTimeIn is ParseDateTime with an explicit range.
func ParseDateTimeIn(s string, r CalendarRange) (DateTime, error) {
	c := carbon.Parse(s, "UTC")
	if c.Error != nil {
		return 0, errors.Wrapf(c.Error, "parsing datetime %q", s)
	}
	if !r.contains(c.Year()) {
		return 0, errors.Wrapf(ErrDateOutOfRange, "year %d not in [%d, %d]", c.Year(), r.MinYear, r.MaxYear)
	}
	return DateTime(c.TimestampMilli()), nil
}

// Format renders the DateTime as RFC 3339 UTC text with millisecond
// precision. It fails for values outside the standard range.
func (d DateTime) Format() (string, error) {
	return d.FormatIn(StandardRange)
}

// FormatIn is Format with an explicit range. Text produced for years
// outside the standard range is not valid RFC 3339.
func (d DateTime) FormatIn(r CalendarRange) (string, error) {
	t := d.Time()
	if !r.contains(t.Year()) {
		return "", errors.Wrapf(ErrDateOutOfRange, "year %d not in [%d, %d]", t.Year(), r.MinYear, r.MaxYear)
	}
	return t.Format("2006-01-02T15:04:05.000Z"), nil
}
