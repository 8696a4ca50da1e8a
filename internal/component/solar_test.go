package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSolarPanel_NewRejectsBadParameters(t *testing.T) {
	_, err := NewSolarPanel(0, 0.8)
	assert.Error(t, err)

	_, err = NewSolarPanel(-100, 0.8)
	assert.Error(t, err)

	_, err = NewSolarPanel(2000, 0)
	assert.Error(t, err)

	_, err = NewSolarPanel(2000, 1.2)
	assert.Error(t, err)
}

func TestSolarPanel_OutputScalesWithIrradiance(t *testing.T) {
	p, err := NewSolarPanel(2000, 0.8)
	require.NoError(t, err)

	// No irradiance set yet: output is zero
	assert.InDelta(t, 0, p.CurrentOutput(), 0.01)

	// Full sun: 2000 * 0.8 = 1600 W
	p.SetIrradiance(1.0)
	assert.InDelta(t, 1600, p.CurrentOutput(), 0.01)

	// Half sun: 800 W
	p.SetIrradiance(0.5)
	assert.InDelta(t, 800, p.CurrentOutput(), 0.01)
}

func TestSolarPanel_SetIrradianceClamps(t *testing.T) {
	p, err := NewSolarPanel(1000, 1.0)
	require.NoError(t, err)

	p.SetIrradiance(1.5)
	assert.InDelta(t, 1.0, p.Irradiance(), 0.001)

	p.SetIrradiance(-0.2)
	assert.InDelta(t, 0, p.Irradiance(), 0.001)
}

func TestSolarPanel_DegradationCompounds(t *testing.T) {
	p, err := NewSolarPanel(1000, 1.0)
	require.NoError(t, err)
	p.SetIrradiance(1.0)

	p.ApplyDegradation(0.10)
	// 1000 * 0.9 = 900 W
	assert.InDelta(t, 900, p.CurrentOutput(), 0.01)

	p.ApplyDegradation(0.10)
	// Multiplicative: 1000 * 0.9 * 0.9 = 810 W, not 800
	assert.InDelta(t, 810, p.CurrentOutput(), 0.01)
	assert.InDelta(t, 0.19, p.Degradation(), 0.001)
}

func TestSolarPanel_DegradationSurvivesIrradianceChanges(t *testing.T) {
	p, err := NewSolarPanel(1000, 1.0)
	require.NoError(t, err)

	p.ApplyDegradation(0.25)
	p.SetIrradiance(1.0)
	assert.InDelta(t, 750, p.CurrentOutput(), 0.01)

	p.SetIrradiance(0)
	p.SetIrradiance(1.0)
	assert.InDelta(t, 750, p.CurrentOutput(), 0.01)
}
