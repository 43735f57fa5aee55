package domain

import "testing"

func TestFormatRemaining(t *testing.T) {
	tests := []struct {
		seconds int
		want    string
	}{
		{120, "2 minutes remaining"},
		{60, "1 minute remaining"},
		{90, "1 minute 30 seconds remaining"},
		{61, "1 minute 1 second remaining"},
		{30, "30 seconds remaining"},
		{16, "16 seconds remaining"},
		{8, "8 seconds remaining"},
		{1, "1 second remaining"},
		{0, "0 seconds remaining"},
		{150, "2 minutes 30 seconds remaining"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := FormatRemaining(tt.seconds); got != tt.want {
				t.Errorf("FormatRemaining(%d) = %q, want %q", tt.seconds, got, tt.want)
			}
		})
	}
}

func TestPresetAlert(t *testing.T) {
	tests := []struct {
		speechType SpeechType
		band       TimerColor
		want       string
	}{
		{SpeechPrepared, ColorGreen, "2 minutes remaining"},
		{SpeechPrepared, ColorOrange, "1 minute remaining"},
		{SpeechImpromptu, ColorGreen, "1 minute remaining"},
		{SpeechImpromptu, ColorOrange, "30 seconds remaining"},
		{SpeechEvaluative, ColorGreen, "1 minute remaining"},
		{SpeechEvaluative, ColorOrange, "30 seconds remaining"},
	}

	for _, tt := range tests {
		if got := PresetAlert(tt.speechType, tt.band); got != tt.want {
			t.Errorf("PresetAlert(%v, %v) = %q, want %q", tt.speechType, tt.band, got, tt.want)
		}
	}
}
