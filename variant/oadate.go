package variant

import (
	"math"
	"time"

	"github.com/wippyai/nativeapi-go/errors"
)

// OLE automation dates count days from 1899-12-30. The fractional part is
// the time of day and is taken as an absolute value for negative dates.
const (
	msPerDay  = 24 * 60 * 60 * 1000
	oleMinDay = -657434.0        // 0100-01-01
	oleMaxDay = 2958465.99999999 // 9999-12-31 23:59:59.999
)

var oleEpochMs = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC).UnixMilli()

// OLEToTime converts an OLE serial date to UTC, rounded to the millisecond.
func OLEToTime(d float64) (time.Time, error) {
	if math.IsNaN(d) || math.IsInf(d, 0) || d < oleMinDay || d > oleMaxDay {
		return time.Time{}, errors.Conversion(errors.KindDateTime, "OLE date %v out of range", d)
	}
	whole, frac := math.Modf(d)
	ms := int64(whole)*msPerDay + int64(math.Round(math.Abs(frac)*msPerDay))
	return time.UnixMilli(oleEpochMs + ms).UTC(), nil
}

// TimeToOLE converts t to an OLE serial date.
func TimeToOLE(t time.Time) (float64, error) {
	ms := t.UnixMilli() - oleEpochMs
	days := ms / msPerDay
	rem := ms % msPerDay
	if rem < 0 {
		days--
		rem += msPerDay
	}
	frac := float64(rem) / msPerDay
	d := float64(days) + frac
	if days < 0 {
		d = float64(days) - frac
	}
	if d < oleMinDay || d > oleMaxDay {
		return 0, errors.Conversion(errors.KindDateTime, "time %s outside OLE date range", t.Format(time.RFC3339))
	}
	return d, nil
}

// DateNumericFromTime builds a DateNumeric value from t.
func DateNumericFromTime(t time.Time) (Value, error) {
	d, err := TimeToOLE(t)
	if err != nil {
		return Value{}, err
	}
	return DateNumeric(d), nil
}

// Time returns the point in time carried by a DateTime or DateNumeric value.
func (v Value) Time() (time.Time, error) {
	switch v.kind {
	case KindDateTime:
		return v.tm.Time()
	case KindDateNumeric:
		return OLEToTime(math.Float64frombits(v.bits))
	}
	return time.Time{}, errors.Unsupported(v.kind.String(), "DateTime")
}
