// Package config loads the configuration of a simulated shift.
package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"github.com/tomasbasham/triage"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = eris.New("invalid configuration")

// Config holds the settings of the shift driver. Each field may be set from
// the environment variable named in its tag.
type Config struct {
	ShiftLength        uint64  `config:"TRIAGE_SHIFT_LENGTH"`
	ArrivalProbability float64 `config:"TRIAGE_ARRIVAL_PROBABILITY"`
	Doctors            int     `config:"TRIAGE_DOCTORS"`
	Seed               uint64  `config:"TRIAGE_SEED"` // 0 picks a time based seed
	MinBurnoutRate     float64 `config:"TRIAGE_MIN_BURNOUT_RATE"`
	MaxBurnoutRate     float64 `config:"TRIAGE_MAX_BURNOUT_RATE"`
	Rescore            bool    `config:"TRIAGE_RESCORE"`
	TieBreak           string  `config:"TRIAGE_TIE_BREAK"`
	StatsdAddress      string  `config:"TRIAGE_STATSD_ADDRESS"`
	LogLevel           string  `config:"TRIAGE_LOG_LEVEL"`
}

// Default returns the configuration used when nothing is overridden: an
// eight hour shift measured in minutes, staffed by ten doctors.
func Default() Config {
	return Config{
		ShiftLength:        480,
		ArrivalProbability: 0.35,
		Doctors:            10,
		MinBurnoutRate:     0.01,
		MaxBurnoutRate:     0.05,
		TieBreak:           triage.TieBreakInsertion.String(),
		LogLevel:           zerolog.InfoLevel.String(),
	}
}

// Load returns the default configuration overridden by any matching
// environment variables. The result is not validated.
func Load() (Config, error) {
	c := Default()
	if err := jlconfig.FromEnv().To(&c); err != nil {
		return Config{}, eris.Wrap(err, "failed to load configuration from environment")
	}
	return c, nil
}

// Validate reports the first setting that cannot drive a shift.
func (c Config) Validate() error {
	if c.ShiftLength == 0 {
		return eris.Wrap(ErrInvalid, "shift length must be positive")
	}
	if c.ArrivalProbability < 0 || c.ArrivalProbability > 1 {
		return eris.Wrapf(ErrInvalid, "arrival probability %v not in [0,1]", c.ArrivalProbability)
	}
	if c.Doctors <= 0 {
		return eris.Wrapf(ErrInvalid, "need at least one doctor, got %d", c.Doctors)
	}
	if c.MinBurnoutRate < 0 || c.MaxBurnoutRate >= 1 || c.MinBurnoutRate > c.MaxBurnoutRate {
		return eris.Wrapf(ErrInvalid, "burnout rates [%v,%v) must satisfy 0 <= min <= max < 1",
			c.MinBurnoutRate, c.MaxBurnoutRate)
	}
	if _, err := c.ParseTieBreak(); err != nil {
		return err
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// ParseTieBreak returns the tie-break rule named by TieBreak.
func (c Config) ParseTieBreak() (triage.TieBreak, error) {
	switch c.TieBreak {
	case "", triage.TieBreakInsertion.String():
		return triage.TieBreakInsertion, nil
	case triage.TieBreakPatientID.String():
		return triage.TieBreakPatientID, nil
	default:
		return 0, eris.Wrapf(ErrInvalid, "unknown tie-break %q (valid: insertion, id)", c.TieBreak)
	}
}

// Level returns the log level named by LogLevel.
func (c Config) Level() (zerolog.Level, error) {
	if c.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, eris.Wrapf(ErrInvalid, "unknown log level %q", c.LogLevel)
	}
	return level, nil
}
