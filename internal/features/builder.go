package features

import (
	"math"
	"time"

	"github.com/sumesh-12/energy-demand-prediction/internal/model"
)

// Builder produces feature vectors for a target date. The year is taken from
// the injected clock.
type Builder struct {
	now func() time.Time
}

// NewBuilder returns a Builder using now as its clock. A nil now uses time.Now.
func NewBuilder(now func() time.Time) *Builder {
	if now == nil {
		now = time.Now
	}
	return &Builder{now: now}
}

// Date resolves (day, month) in the current year. It returns
// *model.InvalidDateError when the combination is not a real calendar date.
func (b *Builder) Date(day, month int) (time.Time, error) {
	year := b.now().Year()
	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, &model.InvalidDateError{Year: year, Month: month, Day: day}
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	// time.Date normalizes overflow (Feb 30 -> Mar 2); reject anything that moved.
	if d.Month() != time.Month(month) || d.Day() != day {
		return time.Time{}, &model.InvalidDateError{Year: year, Month: month, Day: day}
	}
	return d, nil
}

// Weekday returns the weekday with Monday=0 .. Sunday=6.
func Weekday(date time.Time) int {
	return (int(date.Weekday()) + 6) % 7
}

// EncodeCyclical returns sin and cos of 2π·value/period.
func EncodeCyclical(value, period float64) (sin, cos float64) {
	angle := 2 * math.Pi * value / period
	return math.Sin(angle), math.Cos(angle)
}

// Build returns the feature vector for hour (0-23) of date.
//
// Lag and rolling features are not real history: every load lag is the
// monthly climatology load, temperature lags are the climatology temperature,
// wind and humidity lags are the yearly constants. is_holiday is always 0.
func (b *Builder) Build(date time.Time, hour int) Vector {
	month := int(date.Month())
	dow := Weekday(date)
	clim := Lookup(month)

	isWeekend := 0.0
	if dow >= 5 {
		isWeekend = 1
	}

	v := make(Vector, Count)
	set := func(name string, value float64) {
		v[schemaIndex[name]] = value
	}

	set(Temperature, clim.Temperature)
	set(Humidity, AvgHumidity)
	set(WindSpeed, AvgWindSpeed)
	set(IsWeekend, isWeekend)
	set(IsHoliday, 0)
	set(Hour, float64(hour))
	set(DayOfWeek, float64(dow))
	set(Month, float64(month))
	set(RollingMean24h, clim.Load)
	set(RollingStd24h, RollingStd24hLoad)
	set(RollingMean168h, clim.Load)
	set(RollingStd168h, RollingStd168Load)
	set(LoadDiff1, 0)

	sinH, cosH := EncodeCyclical(float64(hour), 24)
	sinD, cosD := EncodeCyclical(float64(dow), 7)
	sinM, cosM := EncodeCyclical(float64(month), 12)
	set(SinHour, sinH)
	set(CosHour, cosH)
	set(SinDayOfWeek, sinD)
	set(CosDayOfWeek, cosD)
	set(SinMonth, sinM)
	set(CosMonth, cosM)

	for i := 1; i <= LoadLags; i++ {
		set(LagName("load", i), clim.Load)
	}
	for i := 1; i <= TempLags; i++ {
		set(LagName("temp", i), clim.Temperature)
	}
	for i := 1; i <= WindLags; i++ {
		set(LagName("wind", i), AvgWindSpeed)
	}
	for i := 1; i <= HumidityLags; i++ {
		set(LagName("humidity", i), AvgHumidity)
	}
	return v
}

// Day returns the 24 hourly vectors of date in hour order.
func (b *Builder) Day(date time.Time) []Vector {
	out := make([]Vector, model.HoursPerDay)
	for h := range out {
		out[h] = b.Build(date, h)
	}
	return out
}
