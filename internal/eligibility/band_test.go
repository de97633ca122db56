package eligibility

import (
	"testing"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

func bandSnapshot(temperature int64) *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Location:    "london",
		Temperature: decimal.NewFromInt(temperature),
	}
}

func TestTemperatureBandRule(t *testing.T) {
	rule := TemperatureBandRule{
		MinTemperature: decimal.NewFromInt(0),
		MaxTemperature: decimal.NewFromInt(35),
	}
	policy := &models.Policy{Id: 1, EventType: models.EventHeatwave}

	tests := []struct {
		name         string
		temperature  int64
		wantEligible bool
	}{
		{"inside band", 18, false},
		{"at lower bound", 0, false},
		{"at upper bound", 35, false},
		{"below band", -5, true},
		{"above band", 41, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := rule.Evaluate(policy, bandSnapshot(tt.temperature))
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if result.Eligible != tt.wantEligible {
				t.Errorf("Expected eligible=%v at %d°C, got %v", tt.wantEligible, tt.temperature, result.Eligible)
			}
			if !result.ObservedValue.Equal(decimal.NewFromInt(tt.temperature)) {
				t.Errorf("Expected observed %d, got %s", tt.temperature, result.ObservedValue.String())
			}
		})
	}
}

func TestTemperatureBandRule_InvalidBand(t *testing.T) {
	rule := TemperatureBandRule{
		MinTemperature: decimal.NewFromInt(30),
		MaxTemperature: decimal.NewFromInt(10),
	}

	_, err := rule.Evaluate(&models.Policy{Id: 1}, bandSnapshot(20))
	if err == nil {
		t.Fatal("Expected error for inverted band, got nil")
	}
}
