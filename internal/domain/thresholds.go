package domain

import "math"

// TimerColor is the urgency band shown for the remaining time.
type TimerColor string

const (
	ColorDefault TimerColor = "default"
	ColorGreen   TimerColor = "green"
	ColorOrange  TimerColor = "orange"
	ColorRed     TimerColor = "red"
)

// ColorThresholds holds the remaining-time boundaries (in seconds) at
// which the timer changes urgency band. Red is always 0.
type ColorThresholds struct {
	Green  int
	Orange int
	Red    int
}

// ColorFor selects the urgency band for a remaining-time value.
// Bands are checked most-urgent first, so ties resolve downward.
func (ct ColorThresholds) ColorFor(remaining int) TimerColor {
	switch {
	case remaining <= ct.Red:
		return ColorRed
	case remaining <= ct.Orange:
		return ColorOrange
	case remaining <= ct.Green:
		return ColorGreen
	default:
		return ColorDefault
	}
}

// scaledThresholds derives proportional urgency bands for a custom total.
// The preset bands are tuned for canonical speech lengths; arbitrary
// totals scale to 32% / 16% of the whole, rounded up.
func scaledThresholds(totalSeconds int) ColorThresholds {
	return ColorThresholds{
		Green:  int(math.Ceil(float64(totalSeconds) * 0.32)),
		Orange: int(math.Ceil(float64(totalSeconds) * 0.16)),
		Red:    0,
	}
}

// TimingConfig maps speech types to their default durations and tuned
// threshold presets. Presets are keyed by threshold group, so evaluative
// resolves to the impromptu entry.
type TimingConfig struct {
	Defaults map[SpeechType]Clock
	Presets  map[SpeechType]ColorThresholds
}

// DefaultTimingConfig returns the standard speech timing configuration.
func DefaultTimingConfig() TimingConfig {
	return TimingConfig{
		Defaults: map[SpeechType]Clock{
			SpeechPrepared:   {Minutes: 7},
			SpeechImpromptu:  {Minutes: 2},
			SpeechEvaluative: {Minutes: 3},
		},
		Presets: map[SpeechType]ColorThresholds{
			SpeechPrepared:  {Green: 120, Orange: 60, Red: 0},
			SpeechImpromptu: {Green: 60, Orange: 30, Red: 0},
		},
	}
}

// DefaultClock returns the default duration for a speech type.
func (tc TimingConfig) DefaultClock(t SpeechType) Clock {
	return tc.Defaults[t]
}

// PresetThresholds returns the tuned bands for a speech type's
// canonical length.
func (tc TimingConfig) PresetThresholds(t SpeechType) ColorThresholds {
	return tc.Presets[t.ThresholdGroup()]
}

// ThresholdsFor computes the urgency bands for a configured total.
// The tuned preset applies only at the speech type's default duration;
// any other total gets proportionally scaled bands.
func (tc TimingConfig) ThresholdsFor(t SpeechType, totalSeconds int) ColorThresholds {
	if totalSeconds == tc.DefaultClock(t).TotalSeconds() {
		return tc.PresetThresholds(t)
	}
	return scaledThresholds(totalSeconds)
}

// IsCustomTotal reports whether a total differs from the speech type's
// default duration, which switches alerts to the generic wording.
func (tc TimingConfig) IsCustomTotal(t SpeechType, totalSeconds int) bool {
	return totalSeconds != tc.DefaultClock(t).TotalSeconds()
}
