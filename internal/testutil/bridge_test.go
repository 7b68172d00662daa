package testutil

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScriptedBridge_SeedDoesNotCountAsSet(t *testing.T) {
	b := NewScriptedBridge()
	b.Seed("events", "[]")

	assert.Equal(t, 0, b.SetCalls)

	v, ok, err := b.Get("events")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "[]", v)
}

func TestScriptedBridge_CountsFailedSets(t *testing.T) {
	b := NewScriptedBridge()
	b.SetErr = errors.New("quota exceeded")

	err := b.Set("events", "[]")
	assert.Error(t, err)
	assert.Equal(t, 1, b.SetCalls)

	_, ok := b.Stored("events")
	assert.False(t, ok, "a failed Set must not store the value")
}

func TestScriptedBridge_GetErr(t *testing.T) {
	b := NewScriptedBridge()
	b.Seed("events", "[]")
	b.GetErr = errors.New("storage unavailable")

	_, _, err := b.Get("events")
	assert.Error(t, err)
}
