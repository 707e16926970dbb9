package variant

import (
	"fmt"
	"time"

	"github.com/wippyai/nativeapi-go/errors"
)

// Tm mirrors the C struct tm carried by DateTime values. Year counts from
// 1900, Mon is zero-based, Wday counts from Sunday and Yday is zero-based.
// GMTOff and Zone exist on the wire only for unix targets; they are zero
// elsewhere.
type Tm struct {
	Sec   int32
	Min   int32
	Hour  int32
	Mday  int32
	Mon   int32
	Year  int32
	Wday  int32
	Yday  int32
	Isdst int32

	GMTOff int64
	Zone   int8
}

var epoch = time.Date(1970, time.January, 1, 0, 0, 0, 0, time.UTC)

// TmFromTime splits t into calendar fields in t's location.
func TmFromTime(t time.Time) Tm {
	_, off := t.Zone()
	return Tm{
		Sec:    int32(t.Second()),
		Min:    int32(t.Minute()),
		Hour:   int32(t.Hour()),
		Mday:   int32(t.Day()),
		Mon:    int32(t.Month()) - 1,
		Year:   int32(t.Year() - 1900),
		Wday:   int32(t.Weekday()),
		Yday:   int32(t.YearDay() - 1),
		GMTOff: int64(off),
	}
}

// FromTime builds a DateTime value from t.
func FromTime(t time.Time) Value {
	return DateTime(TmFromTime(t))
}

// Time validates the calendar fields and returns them as a UTC wall clock
// time. Out-of-range fields are rejected rather than normalized.
func (tm Tm) Time() (time.Time, error) {
	if tm.Mon < 0 || tm.Mon > 11 ||
		tm.Hour < 0 || tm.Hour > 23 ||
		tm.Min < 0 || tm.Min > 59 ||
		tm.Sec < 0 || tm.Sec > 59 ||
		tm.Mday < 1 {
		return time.Time{}, errors.Conversion(errors.KindDateTime, "invalid calendar fields %s", tm)
	}
	year := int(tm.Year) + 1900
	month := time.Month(tm.Mon + 1)
	if int(tm.Mday) > daysIn(year, month) {
		return time.Time{}, errors.Conversion(errors.KindDateTime, "day %d out of range for %04d-%02d", tm.Mday, year, month)
	}
	return time.Date(year, month, int(tm.Mday), int(tm.Hour), int(tm.Min), int(tm.Sec), 0, time.UTC), nil
}

// TimeOrEpoch is the lenient form of Time: invalid fields yield
// 1970-01-01 00:00:00 UTC.
func (tm Tm) TimeOrEpoch() time.Time {
	t, err := tm.Time()
	if err != nil {
		return epoch
	}
	return t
}

func (tm Tm) String() string {
	return fmt.Sprintf("%04d-%02d-%02d %02d:%02d:%02d",
		int(tm.Year)+1900, tm.Mon+1, tm.Mday, tm.Hour, tm.Min, tm.Sec)
}

func daysIn(year int, m time.Month) int {
	return time.Date(year, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
