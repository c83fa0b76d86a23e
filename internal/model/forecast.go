package model

import "time"

// HoursPerDay is the number of hourly values in a DailyForecast.
const HoursPerDay = 24

// ForecastRequest identifies the target day. The year comes from the wall clock.
type ForecastRequest struct {
	Day   int `json:"day"`
	Month int `json:"month"`
}

// DailyForecast is the recovered hourly load for one day plus its peak.
type DailyForecast struct {
	HourlyData [HoursPerDay]float64 `json:"hourly_data"`
	PeakLoad   float64              `json:"peak_load"`
	PeakHour   int                  `json:"peak_hour"`
}

// Hourly returns the hourly values as a slice.
func (f DailyForecast) Hourly() []float64 {
	out := make([]float64, HoursPerDay)
	copy(out, f.HourlyData[:])
	return out
}

// ForecastEvent announces a served forecast to subscribers.
type ForecastEvent struct {
	ID          string        `json:"id"`
	Date        string        `json:"date"`
	Forecast    DailyForecast `json:"forecast"`
	Cached      bool          `json:"cached"`
	Fingerprint string        `json:"fingerprint"`
	At          time.Time     `json:"at"`
}
