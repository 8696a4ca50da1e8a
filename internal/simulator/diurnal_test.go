package simulator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDaylight_ZeroOutsideWindow(t *testing.T) {
	d := DefaultDaylight

	assert.InDelta(t, 0, d.Irradiance(0), 0.001)
	assert.InDelta(t, 0, d.Irradiance(5.99), 0.001)
	assert.InDelta(t, 0, d.Irradiance(18.01), 0.001)
	assert.InDelta(t, 0, d.Irradiance(23), 0.001)
}

func TestDaylight_PeaksAtSolarNoon(t *testing.T) {
	d := DefaultDaylight

	assert.InDelta(t, 0, d.Irradiance(6), 0.001)
	assert.InDelta(t, 1.0, d.Irradiance(12), 0.001)
	assert.InDelta(t, 0, d.Irradiance(18), 0.001)

	// sin(pi/4) either side of noon
	assert.InDelta(t, 0.7071, d.Irradiance(9), 0.001)
	assert.InDelta(t, 0.7071, d.Irradiance(15), 0.001)
}

func TestDaylight_SymmetricAroundNoon(t *testing.T) {
	d := Daylight{SunriseHour: 7, SunsetHour: 17}
	for _, offset := range []float64{0.5, 1, 2, 3, 4} {
		assert.InDelta(t, d.Irradiance(12-offset), d.Irradiance(12+offset), 0.0001)
	}
}

func TestDaylight_Validate(t *testing.T) {
	assert.NoError(t, Daylight{SunriseHour: 6, SunsetHour: 18}.validate())
	assert.NoError(t, Daylight{SunriseHour: 0, SunsetHour: 24}.validate())

	assert.Error(t, Daylight{SunriseHour: -1, SunsetHour: 18}.validate())
	assert.Error(t, Daylight{SunriseHour: 6, SunsetHour: 25}.validate())
	assert.Error(t, Daylight{SunriseHour: 18, SunsetHour: 6}.validate())
	assert.Error(t, Daylight{SunriseHour: 12, SunsetHour: 12}.validate())
}
