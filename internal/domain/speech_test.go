package domain

import (
	"errors"
	"testing"
)

func TestGetSpeechTypeLabel(t *testing.T) {
	tests := []struct {
		speechType SpeechType
		want       string
	}{
		{SpeechPrepared, "Prepared"},
		{SpeechImpromptu, "Impromptu"},
		{SpeechEvaluative, "Evaluative"},
		{"unknown", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(string(tt.speechType), func(t *testing.T) {
			if got := GetSpeechTypeLabel(tt.speechType); got != tt.want {
				t.Errorf("GetSpeechTypeLabel() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpeechType_ThresholdGroup(t *testing.T) {
	if got := SpeechEvaluative.ThresholdGroup(); got != SpeechImpromptu {
		t.Errorf("evaluative group = %v, want impromptu", got)
	}
	if got := SpeechPrepared.ThresholdGroup(); got != SpeechPrepared {
		t.Errorf("prepared group = %v, want prepared", got)
	}
	if got := SpeechImpromptu.ThresholdGroup(); got != SpeechImpromptu {
		t.Errorf("impromptu group = %v, want impromptu", got)
	}
}

func TestParseSpeechType(t *testing.T) {
	got, err := ParseSpeechType("prepared")
	if err != nil {
		t.Fatalf("ParseSpeechType() error = %v", err)
	}
	if got != SpeechPrepared {
		t.Errorf("ParseSpeechType() = %v, want prepared", got)
	}

	_, err = ParseSpeechType("keynote")
	if !errors.Is(err, ErrUnknownSpeechType) {
		t.Errorf("ParseSpeechType() error = %v, want ErrUnknownSpeechType", err)
	}
}
