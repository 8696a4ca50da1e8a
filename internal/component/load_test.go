package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_NewRejectsBadParameters(t *testing.T) {
	_, err := NewLoad("", 100, PriorityHigh)
	assert.Error(t, err)

	_, err = NewLoad("pump", 0, PriorityHigh)
	assert.Error(t, err)

	_, err = NewLoad("pump", -50, PriorityHigh)
	assert.Error(t, err)
}

func TestLoad_StartsActive(t *testing.T) {
	l, err := NewLoad("fridge", 300, PriorityCritical)
	require.NoError(t, err)

	assert.True(t, l.IsActive())
	assert.InDelta(t, 300, l.CurrentDraw(), 0.01)
	assert.Equal(t, 0, l.ShedCount())
}

func TestLoad_ShedZeroesDrawAndCounts(t *testing.T) {
	l, err := NewLoad("hvac", 800, PriorityDeferrable)
	require.NoError(t, err)

	l.Deactivate()
	assert.False(t, l.IsActive())
	assert.InDelta(t, 0, l.CurrentDraw(), 0.01)
	assert.InDelta(t, 800, l.PowerDraw(), 0.01) // declared draw unchanged
	assert.Equal(t, 1, l.ShedCount())

	// Deactivating an already-shed load does not count again
	l.Deactivate()
	assert.Equal(t, 1, l.ShedCount())

	l.Activate()
	l.Deactivate()
	assert.Equal(t, 2, l.ShedCount())
}

func TestLoad_SetPowerDrawClampsNegative(t *testing.T) {
	l, err := NewLoad("pump", 500, PriorityDeferrable)
	require.NoError(t, err)

	l.SetPowerDraw(900)
	assert.InDelta(t, 900, l.CurrentDraw(), 0.01)

	l.SetPowerDraw(-10)
	assert.InDelta(t, 0, l.CurrentDraw(), 0.01)
}

func TestParsePriority(t *testing.T) {
	p, err := ParsePriority("critical")
	require.NoError(t, err)
	assert.Equal(t, PriorityCritical, p)

	p, err = ParsePriority("high")
	require.NoError(t, err)
	assert.Equal(t, PriorityHigh, p)

	p, err = ParsePriority("deferrable")
	require.NoError(t, err)
	assert.Equal(t, PriorityDeferrable, p)

	// Omitted priority defaults to deferrable
	p, err = ParsePriority("")
	require.NoError(t, err)
	assert.Equal(t, PriorityDeferrable, p)

	_, err = ParsePriority("CRITICAL")
	assert.Error(t, err)
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "CRITICAL", PriorityCritical.String())
	assert.Equal(t, "HIGH", PriorityHigh.String())
	assert.Equal(t, "DEFERRABLE", PriorityDeferrable.String())
}
