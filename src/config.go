package selcal

/*------------------------------------------------------------------
 *
 * Purpose:	Collect every tunable constant into one immutable struct,
 *		built once at startup and passed down, rather than scattered
 *		across package-level mutable globals.
 *
 * Description:	Optional YAML overrides are read from the one path the
 *		caller gives; no search path is tried. No path means no
 *		overrides; an unreadable file or malformed YAML is an error.
 *
 *------------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// SampleRate is the single fixed audio sample rate this system
	// supports; no other rate is accepted.
	SampleRate = 8000.0

	// WindowSeconds is the Window's duration; N = SampleRate*WindowSeconds.
	WindowSeconds = 1.0

	// StepSeconds is the scheduler tick period.
	StepSeconds = 0.2

	// SilenceRMSMax is the silence-gate RMS threshold.
	SilenceRMSMax = 0.00015
)

// WindowSamples returns N, the number of samples in one Window.
func WindowSamples() int {
	return int(SampleRate * WindowSeconds)
}

// Config is the immutable, fully-resolved runtime configuration, built
// once at startup by DefaultConfig and ApplyOverridesFile and never
// mutated afterward.
type Config struct {
	AudioDevice string
	ToneTablePath string
	DictionaryPath string
	LogPath string
	LogLevel string

	SilenceRMSMax float64
	StepSeconds   float64

	PairDetector PairDetectorConfig
	PairTracker  PairTrackerConfig
	Emitter      EmitterConfig

	AudioStatsInterval time.Duration
}

// configFile mirrors the YAML shape of the tunable constants, for
// overriding PairDetectorConfig/PairTrackerConfig/EmitterConfig defaults
// from a file (the --config-file flag).
type configFile struct {
	SilenceRMSMax float64 `yaml:"silence_rms_max"`

	GoertzelMinPower float64 `yaml:"goertzel_min_power"`
	GoertzelRatio    float64 `yaml:"goertzel_ratio"`
	PairPowerSum     float64 `yaml:"pair_power_sum"`
	PairPowerMin     float64 `yaml:"pair_power_min"`
	PairImbalanceMax float64 `yaml:"pair_imbalance_max"`
	FlatnessMax      float64 `yaml:"flatness_max"`
	ThirdToneRivalry float64 `yaml:"third_tone_rivalry"`

	PairGapMinSeconds   float64 `yaml:"pair_gap_min_seconds"`
	PairGapMaxSeconds   float64 `yaml:"pair_gap_max_seconds"`
	TrackerIdleTimeoutSeconds float64 `yaml:"tracker_idle_timeout_seconds"`

	FullCodeLockoutSeconds float64 `yaml:"full_code_lockout_seconds"`
}

// DefaultConfig returns a Config with every recommended default and the
// given device/path settings.
func DefaultConfig(audioDevice, toneTablePath, dictionaryPath, logPath string) Config {
	return Config{
		AudioDevice:    audioDevice,
		ToneTablePath:  toneTablePath,
		DictionaryPath: dictionaryPath,
		LogPath:        logPath,
		LogLevel:       "info",

		SilenceRMSMax: SilenceRMSMax,
		StepSeconds:   StepSeconds,

		PairDetector: DefaultPairDetectorConfig(),
		PairTracker:  DefaultPairTrackerConfig(),
		Emitter:      DefaultEmitterConfig(logPath),
	}
}

// ApplyOverridesFile loads YAML overrides from path (if non-empty) on top
// of cfg's current values, returning the merged Config. Read once; skip
// silently if the caller didn't ask for one; fail loudly if the file
// cannot be read or its YAML is malformed.
func ApplyOverridesFile(cfg Config, path string) (Config, error) {
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var override configFile
	if err := yaml.Unmarshal(data, &override); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if override.SilenceRMSMax > 0 {
		cfg.SilenceRMSMax = override.SilenceRMSMax
	}
	if override.GoertzelMinPower > 0 {
		cfg.PairDetector.GoertzelMinPower = override.GoertzelMinPower
	}
	if override.GoertzelRatio > 0 {
		cfg.PairDetector.GoertzelRatio = override.GoertzelRatio
	}
	if override.PairPowerSum > 0 {
		cfg.PairDetector.PairPowerSum = override.PairPowerSum
	}
	if override.PairPowerMin > 0 {
		cfg.PairDetector.PairPowerMin = override.PairPowerMin
	}
	if override.PairImbalanceMax > 0 {
		cfg.PairDetector.PairImbalanceMax = override.PairImbalanceMax
	}
	if override.FlatnessMax > 0 {
		cfg.PairDetector.FlatnessMax = override.FlatnessMax
	}
	if override.ThirdToneRivalry > 0 {
		cfg.PairDetector.ThirdToneRivalry = override.ThirdToneRivalry
	}
	if override.PairGapMinSeconds > 0 {
		cfg.PairTracker.GapMin = time.Duration(override.PairGapMinSeconds * float64(time.Second))
	}
	if override.PairGapMaxSeconds > 0 {
		cfg.PairTracker.GapMax = time.Duration(override.PairGapMaxSeconds * float64(time.Second))
	}
	if override.TrackerIdleTimeoutSeconds > 0 {
		cfg.PairTracker.IdleTimeout = time.Duration(override.TrackerIdleTimeoutSeconds * float64(time.Second))
	}
	if override.FullCodeLockoutSeconds > 0 {
		cfg.Emitter.FullCodeLockout = time.Duration(override.FullCodeLockoutSeconds * float64(time.Second))
	}

	return cfg, nil
}
