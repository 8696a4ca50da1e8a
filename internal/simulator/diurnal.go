package simulator

import (
	"fmt"
	"math"
)

// Daylight models irradiance over the day as a half-sine between sunrise and
// sunset: zero outside the window, peaking at solar noon in the middle.
type Daylight struct {
	SunriseHour float64
	SunsetHour  float64
}

// DefaultDaylight is the 06:00-18:00 window used when a scenario does not
// declare one.
var DefaultDaylight = Daylight{SunriseHour: 6, SunsetHour: 18}

func (d Daylight) validate() error {
	if d.SunriseHour < 0 || d.SunsetHour > 24 || d.SunsetHour <= d.SunriseHour {
		return fmt.Errorf("daylight window [%v, %v] must satisfy 0 <= sunrise < sunset <= 24", d.SunriseHour, d.SunsetHour)
	}
	return nil
}

// Irradiance returns the clear-sky irradiance fraction for an hour of day.
func (d Daylight) Irradiance(hourOfDay float64) float64 {
	if hourOfDay < d.SunriseHour || hourOfDay > d.SunsetHour {
		return 0
	}
	position := (hourOfDay - d.SunriseHour) / (d.SunsetHour - d.SunriseHour)
	irradiance := math.Sin(position * math.Pi)
	if irradiance < 0 {
		return 0
	}
	if irradiance > 1 {
		return 1
	}
	return irradiance
}
