package domain

import (
	"testing"
)

func TestScoreFromDistance(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		expected float64
	}{
		{"identical vectors", 0, 100},
		{"half distance", 0.5, 75},
		{"floor distance", 0.8, 60},
		{"orthogonal vectors", 1, 50},
		{"opposite vectors", 2, 0},
		{"beyond range clamps to zero", 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ScoreFromDistance(tt.distance); got != tt.expected {
				t.Errorf("distance %v: expected score %v, got %v", tt.distance, tt.expected, got)
			}
		})
	}
}

func TestScoreFromDistance_FloorBoundary(t *testing.T) {
	// Distance 0.8 maps to exactly 60, which sits on the floor and is
	// therefore excluded; anything even slightly closer clears it.
	at := ScoreFromDistance(0.8)
	if at != 60 {
		t.Errorf("expected exactly 60 at distance 0.8, got %v", at)
	}
	if at > RelevanceFloor {
		t.Error("a score of exactly 60 must not clear the floor")
	}

	just := ScoreFromDistance(0.79999)
	if just <= RelevanceFloor {
		t.Errorf("expected a score above the floor at distance 0.79999, got %v", just)
	}
}

func TestSearchMode_RequiresEmbedding(t *testing.T) {
	tests := []struct {
		mode     SearchMode
		expected bool
	}{
		{SearchModeHybrid, true},
		{SearchModeSemantic, true},
		{SearchModeLexical, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.mode), func(t *testing.T) {
			if got := tt.mode.RequiresEmbedding(); got != tt.expected {
				t.Errorf("expected %v, got %v", tt.expected, got)
			}
		})
	}
}

func TestDefaultSearchOptions(t *testing.T) {
	opts := DefaultSearchOptions()

	if opts.Mode != SearchModeHybrid {
		t.Errorf("expected mode %s, got %s", SearchModeHybrid, opts.Mode)
	}
	if opts.Match != MatchExact {
		t.Errorf("expected match %s, got %s", MatchExact, opts.Match)
	}
	if opts.Limit != 10 {
		t.Errorf("expected limit 10, got %d", opts.Limit)
	}
	if opts.Type != "" {
		t.Errorf("expected empty type filter, got %s", opts.Type)
	}
}
