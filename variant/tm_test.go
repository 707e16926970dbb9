package variant

import (
	"math"
	"testing"
	"time"

	"github.com/wippyai/nativeapi-go/errors"
)

func TestTmFromTime(t *testing.T) {
	tm := TmFromTime(time.Date(2024, time.February, 29, 18, 30, 15, 0, time.UTC))
	want := Tm{Sec: 15, Min: 30, Hour: 18, Mday: 29, Mon: 1, Year: 124, Wday: 4, Yday: 59}
	if tm != want {
		t.Errorf("TmFromTime = %+v, want %+v", tm, want)
	}
}

func TestTm_Time(t *testing.T) {
	in := time.Date(1999, time.December, 31, 23, 59, 59, 0, time.UTC)
	got, err := TmFromTime(in).Time()
	if err != nil {
		t.Fatalf("Time: %v", err)
	}
	if !got.Equal(in) {
		t.Errorf("Time = %v, want %v", got, in)
	}
}

func TestTm_TimeInvalid(t *testing.T) {
	tests := []struct {
		name string
		tm   Tm
	}{
		{"zero tm", Tm{}},
		{"month 12", Tm{Mday: 1, Mon: 12, Year: 100}},
		{"feb 30", Tm{Mday: 30, Mon: 1, Year: 124}},
		{"feb 29 non leap", Tm{Mday: 29, Mon: 1, Year: 123}},
		{"hour 24", Tm{Mday: 1, Hour: 24, Year: 100}},
		{"negative sec", Tm{Mday: 1, Sec: -1, Year: 100}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.tm.Time()
			if errors.KindOf(err) != errors.KindDateTime {
				t.Errorf("err = %v, want DateTime conversion error", err)
			}
			if got := tt.tm.TimeOrEpoch(); !got.Equal(time.Unix(0, 0)) {
				t.Errorf("TimeOrEpoch = %v, want epoch", got)
			}
		})
	}
}

func TestOLEDate(t *testing.T) {
	tests := []struct {
		d    float64
		want time.Time
	}{
		{0, time.Date(1899, 12, 30, 0, 0, 0, 0, time.UTC)},
		{2.5, time.Date(1900, 1, 1, 12, 0, 0, 0, time.UTC)},
		{-1.25, time.Date(1899, 12, 29, 6, 0, 0, 0, time.UTC)},
		{45000, time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)},
		{45351.75, time.Date(2024, 2, 29, 18, 0, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		got, err := OLEToTime(tt.d)
		if err != nil {
			t.Fatalf("OLEToTime(%v): %v", tt.d, err)
		}
		if !got.Equal(tt.want) {
			t.Errorf("OLEToTime(%v) = %v, want %v", tt.d, got, tt.want)
		}
		back, err := TimeToOLE(tt.want)
		if err != nil {
			t.Fatalf("TimeToOLE(%v): %v", tt.want, err)
		}
		if back != tt.d {
			t.Errorf("TimeToOLE(%v) = %v, want %v", tt.want, back, tt.d)
		}
	}
}

func TestOLEDate_OutOfRange(t *testing.T) {
	for _, d := range []float64{-657435, 2958466, math.NaN(), math.Inf(1)} {
		if _, err := OLEToTime(d); errors.KindOf(err) != errors.KindDateTime {
			t.Errorf("OLEToTime(%v) err = %v", d, err)
		}
	}
	if _, err := TimeToOLE(time.Date(10000, 1, 1, 0, 0, 0, 0, time.UTC)); err == nil {
		t.Error("TimeToOLE beyond year 9999 should fail")
	}
}

func TestValue_Time(t *testing.T) {
	want := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	for _, v := range []Value{FromTime(want), DateNumeric(45000)} {
		got, err := v.Time()
		if err != nil {
			t.Fatalf("%v.Time(): %v", v, err)
		}
		if !got.Equal(want) {
			t.Errorf("%v.Time() = %v", v, got)
		}
	}
	if _, err := I32(1).Time(); errors.KindOf(err) != errors.KindUnsupported {
		t.Errorf("I32.Time() err = %v", err)
	}
}
