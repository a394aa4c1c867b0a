package config

import (
	"testing"

	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomasbasham/triage"
)

func TestDefault_IsValid(t *testing.T) {
	require.NoError(t, Default().Validate())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("TRIAGE_SHIFT_LENGTH", "120")
	t.Setenv("TRIAGE_ARRIVAL_PROBABILITY", "0.5")
	t.Setenv("TRIAGE_DOCTORS", "3")
	t.Setenv("TRIAGE_SEED", "99")
	t.Setenv("TRIAGE_RESCORE", "true")
	t.Setenv("TRIAGE_TIE_BREAK", "id")

	c, err := Load()
	require.NoError(t, err)

	assert.Equal(t, uint64(120), c.ShiftLength)
	assert.Equal(t, 0.5, c.ArrivalProbability)
	assert.Equal(t, 3, c.Doctors)
	assert.Equal(t, uint64(99), c.Seed)
	assert.True(t, c.Rescore)
	assert.Equal(t, "id", c.TieBreak)

	// Unset variables keep their defaults.
	assert.Equal(t, Default().MaxBurnoutRate, c.MaxBurnoutRate)
	assert.Equal(t, "info", c.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"zero shift length":        func(c *Config) { c.ShiftLength = 0 },
		"negative arrival":         func(c *Config) { c.ArrivalProbability = -0.1 },
		"arrival above one":        func(c *Config) { c.ArrivalProbability = 1.5 },
		"no doctors":               func(c *Config) { c.Doctors = 0 },
		"inverted burnout range":   func(c *Config) { c.MinBurnoutRate, c.MaxBurnoutRate = 0.2, 0.1 },
		"burnout rate of one":      func(c *Config) { c.MaxBurnoutRate = 1 },
		"unknown tie-break":        func(c *Config) { c.TieBreak = "random" },
		"unknown log level":        func(c *Config) { c.LogLevel = "loud" },
		"negative minimum burnout": func(c *Config) { c.MinBurnoutRate = -0.01 },
	}
	for name, mutate := range tests {
		t.Run(name, func(t *testing.T) {
			c := Default()
			mutate(&c)

			err := c.Validate()
			require.Error(t, err)
			assert.True(t, eris.Is(err, ErrInvalid), "expected ErrInvalid, got: %v", err)
		})
	}
}

func TestParseTieBreak(t *testing.T) {
	c := Default()

	tb, err := c.ParseTieBreak()
	require.NoError(t, err)
	assert.Equal(t, triage.TieBreakInsertion, tb)

	c.TieBreak = "id"
	tb, err = c.ParseTieBreak()
	require.NoError(t, err)
	assert.Equal(t, triage.TieBreakPatientID, tb)
}

func TestLevel(t *testing.T) {
	c := Default()
	c.LogLevel = "debug"

	level, err := c.Level()
	require.NoError(t, err)
	assert.Equal(t, zerolog.DebugLevel, level)
}
