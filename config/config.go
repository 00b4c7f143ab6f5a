// Package config holds the game tunables.
package config

import (
	"errors"
	"fmt"
	"time"

	"picotris/input"
	"picotris/tetris"
)

type Config struct {
	Seed    uint32        `yaml:"seed"`
	Gravity GravityConfig `yaml:"gravity"`
	Input   InputConfig   `yaml:"input"`
	Display DisplayConfig `yaml:"display"`
	Music   MusicConfig   `yaml:"music"`
}

// GravityConfig is the fall interval curve: BaseMS minus StepMS per level,
// never below MinMS.
type GravityConfig struct {
	BaseMS int `yaml:"base_ms"`
	StepMS int `yaml:"step_ms"`
	MinMS  int `yaml:"min_ms"`
}

type InputConfig struct {
	SampleMS        int `yaml:"sample_ms"`
	DebounceSamples int `yaml:"debounce_samples"`
	// RepeatDelayMS of 0 disables auto-repeat.
	RepeatDelayMS int `yaml:"repeat_delay_ms"`
	RepeatRateMS  int `yaml:"repeat_rate_ms"`
}

type DisplayConfig struct {
	FrameMS int  `yaml:"frame_ms"`
	FlashMS int  `yaml:"flash_ms"`
	Ghost   bool `yaml:"ghost"`
}

type MusicConfig struct {
	Enabled bool   `yaml:"enabled"`
	BPM     uint32 `yaml:"bpm"`
	// Volume is the buzzer duty cycle in percent.
	Volume uint8 `yaml:"volume"`
}

// Default returns the stock configuration. Seed 0 asks the platform for
// entropy.
func Default() Config {
	return Config{
		Gravity: GravityConfig{BaseMS: 800, StepMS: 70, MinMS: 100},
		Input: InputConfig{
			SampleMS:        5,
			DebounceSamples: 3,
			RepeatDelayMS:   170,
			RepeatRateMS:    50,
		},
		Display: DisplayConfig{FrameMS: 33, FlashMS: 150, Ghost: true},
		Music:   MusicConfig{Enabled: true, BPM: 144, Volume: 5},
	}
}

// Validate reports every inconsistent setting.
func (c Config) Validate() error {
	var errs []error
	if c.Gravity.MinMS <= 0 {
		errs = append(errs, fmt.Errorf("gravity.min_ms must be positive, got %d", c.Gravity.MinMS))
	}
	if c.Gravity.BaseMS < c.Gravity.MinMS {
		errs = append(errs, fmt.Errorf("gravity.base_ms %d below min_ms %d", c.Gravity.BaseMS, c.Gravity.MinMS))
	}
	if c.Gravity.StepMS < 0 {
		errs = append(errs, fmt.Errorf("gravity.step_ms must not be negative, got %d", c.Gravity.StepMS))
	}
	if c.Input.SampleMS <= 0 {
		errs = append(errs, fmt.Errorf("input.sample_ms must be positive, got %d", c.Input.SampleMS))
	}
	if c.Input.DebounceSamples < 1 {
		errs = append(errs, fmt.Errorf("input.debounce_samples must be at least 1, got %d", c.Input.DebounceSamples))
	}
	if c.Input.RepeatDelayMS < 0 || c.Input.RepeatRateMS < 0 {
		errs = append(errs, errors.New("input repeat timings must not be negative"))
	}
	if c.Display.FrameMS <= 0 {
		errs = append(errs, fmt.Errorf("display.frame_ms must be positive, got %d", c.Display.FrameMS))
	}
	if c.Display.FlashMS < 0 {
		errs = append(errs, fmt.Errorf("display.flash_ms must not be negative, got %d", c.Display.FlashMS))
	}
	if c.Music.Volume > 100 {
		errs = append(errs, fmt.Errorf("music.volume is a percentage, got %d", c.Music.Volume))
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(errs...))
}

// Rules converts the gravity settings for the engine.
func (c Config) Rules() tetris.Rules {
	return tetris.Rules{
		BaseGravity: time.Duration(c.Gravity.BaseMS) * time.Millisecond,
		GravityStep: time.Duration(c.Gravity.StepMS) * time.Millisecond,
		MinGravity:  time.Duration(c.Gravity.MinMS) * time.Millisecond,
	}
}

// Sampler converts the input timings from milliseconds to samples.
func (c Config) Sampler() input.Config {
	sample := c.Input.SampleMS
	if sample <= 0 {
		sample = 1
	}
	cfg := input.Config{Debounce: c.Input.DebounceSamples}
	if c.Input.RepeatDelayMS > 0 && c.Input.RepeatRateMS > 0 {
		cfg.RepeatDelay = ceilDiv(c.Input.RepeatDelayMS, sample)
		cfg.RepeatRate = ceilDiv(c.Input.RepeatRateMS, sample)
	}
	return cfg
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
