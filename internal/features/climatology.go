package features

// Climatology is the placeholder weather and load pair for one month.
type Climatology struct {
	Month       int
	Temperature float64 // °C
	Load        float64 // MWh
}

// DefaultClimatology is returned for a month that has no table entry.
// Validated requests never reach it.
var DefaultClimatology = Climatology{Temperature: 15.0, Load: 15000}

// Placeholders that are constant across the year.
const (
	AvgHumidity       = 60.0
	AvgWindSpeed      = 10.0
	RollingStd24hLoad = 500.0
	RollingStd168Load = 1000.0
)

var climatologyTable = map[int]Climatology{
	1:  {Month: 1, Temperature: 5.0, Load: 16000},
	2:  {Month: 2, Temperature: 6.0, Load: 15800},
	3:  {Month: 3, Temperature: 9.0, Load: 15500},
	4:  {Month: 4, Temperature: 12.0, Load: 15000},
	5:  {Month: 5, Temperature: 16.0, Load: 14500},
	6:  {Month: 6, Temperature: 20.0, Load: 14800},
	7:  {Month: 7, Temperature: 25.0, Load: 15000},
	8:  {Month: 8, Temperature: 24.0, Load: 14900},
	9:  {Month: 9, Temperature: 19.0, Load: 15200},
	10: {Month: 10, Temperature: 14.0, Load: 15600},
	11: {Month: 11, Temperature: 8.0, Load: 15900},
	12: {Month: 12, Temperature: 6.0, Load: 16200},
}

// Lookup returns the climatology for month, falling back to DefaultClimatology.
func Lookup(month int) Climatology {
	if c, ok := climatologyTable[month]; ok {
		return c
	}
	d := DefaultClimatology
	d.Month = month
	return d
}
