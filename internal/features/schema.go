// Package features rebuilds the model's input feature vector from a calendar
// date and hour. Every feature that would normally come from measured history
// is filled with a monthly climatology placeholder.
package features

import "fmt"

const (
	LoadLags     = 24
	TempLags     = 3
	WindLags     = 3
	HumidityLags = 1
)

// Base feature names, in model column order.
const (
	Temperature     = "temperature"
	Humidity        = "humidity"
	WindSpeed       = "wind_speed"
	IsWeekend       = "is_weekend"
	IsHoliday       = "is_holiday"
	Hour            = "hour"
	DayOfWeek       = "dayofweek"
	Month           = "month"
	RollingMean24h  = "rolling_mean_24h"
	RollingStd24h   = "rolling_std_24h"
	RollingMean168h = "rolling_mean_168h"
	RollingStd168h  = "rolling_std_168h"
	LoadDiff1       = "load_diff_1"
	SinHour         = "sin_hour"
	CosHour         = "cos_hour"
	SinDayOfWeek    = "sin_dayofweek"
	CosDayOfWeek    = "cos_dayofweek"
	SinMonth        = "sin_month"
	CosMonth        = "cos_month"
)

var baseColumns = []string{
	Temperature, Humidity, WindSpeed, IsWeekend, IsHoliday, Hour,
	DayOfWeek, Month, RollingMean24h, RollingStd24h, RollingMean168h,
	RollingStd168h, LoadDiff1, SinHour, CosHour, SinDayOfWeek,
	CosDayOfWeek, SinMonth, CosMonth,
}

// Schema is the ordered list of feature names shared by the builder, the
// normalizer and the model. Reordering it silently corrupts inference.
var Schema = buildSchema()

// Count is the width of every feature vector.
var Count = len(Schema)

var schemaIndex = func() map[string]int {
	idx := make(map[string]int, len(Schema))
	for i, name := range Schema {
		idx[name] = i
	}
	return idx
}()

func buildSchema() []string {
	cols := make([]string, 0, len(baseColumns)+LoadLags+TempLags+WindLags+HumidityLags)
	cols = append(cols, baseColumns...)
	for i := 1; i <= LoadLags; i++ {
		cols = append(cols, LagName("load", i))
	}
	for i := 1; i <= TempLags; i++ {
		cols = append(cols, LagName("temp", i))
	}
	for i := 1; i <= WindLags; i++ {
		cols = append(cols, LagName("wind", i))
	}
	for i := 1; i <= HumidityLags; i++ {
		cols = append(cols, LagName("humidity", i))
	}
	return cols
}

// LagName returns the column name of the n-th lag of a series, e.g. load_lag_3.
func LagName(series string, n int) string {
	return fmt.Sprintf("%s_lag_%d", series, n)
}

// Index returns the position of name in Schema.
func Index(name string) (int, bool) {
	i, ok := schemaIndex[name]
	return i, ok
}

// Vector is one feature row in Schema order.
type Vector []float64

// Get returns the value of the named feature. It panics on unknown names.
func (v Vector) Get(name string) float64 {
	i, ok := Index(name)
	if !ok {
		panic("features: unknown feature " + name)
	}
	return v[i]
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}
