package eligibility

import (
	"errors"
	"testing"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

func testSnapshot() *models.WeatherSnapshot {
	return &models.WeatherSnapshot{
		Location:        "mumbai",
		Temperature:     decimal.NewFromInt(32),
		Rainfall24h:     decimal.NewFromInt(0),
		Rainfall30d:     decimal.NewFromInt(85),
		DaysWithoutRain: 12,
		Humidity:        decimal.NewFromInt(65),
		WindSpeed:       decimal.NewFromInt(40),
	}
}

func testPolicy(eventType models.EventType, threshold int64) *models.Policy {
	return &models.Policy{
		Id:            1,
		WalletAddress: "0xabc",
		Location:      "mumbai",
		EventType:     eventType,
		Threshold:     decimal.NewFromInt(threshold),
		Status:        models.StatusActive,
	}
}

func TestThresholdRule_AllEventTypes(t *testing.T) {
	rule := ThresholdRule{}
	snapshot := testSnapshot()

	tests := []struct {
		name         string
		eventType    models.EventType
		threshold    int64
		wantEligible bool
		wantObserved int64
	}{
		{"rainfall below threshold", models.EventRainfall, 100, false, 85},
		{"rainfall at threshold", models.EventRainfall, 85, true, 85},
		{"rainfall above threshold", models.EventRainfall, 50, true, 85},
		{"drought below threshold", models.EventDrought, 30, false, 12},
		{"drought at threshold", models.EventDrought, 12, true, 12},
		{"heatwave below threshold", models.EventHeatwave, 40, false, 32},
		{"heatwave at threshold", models.EventHeatwave, 32, true, 32},
		{"storm below threshold", models.EventStorm, 60, false, 40},
		{"storm above threshold", models.EventStorm, 30, true, 40},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := rule.Evaluate(testPolicy(tt.eventType, tt.threshold), snapshot)
			if err != nil {
				t.Fatalf("Evaluate failed: %v", err)
			}
			if result.Eligible != tt.wantEligible {
				t.Errorf("Expected eligible=%v, got %v", tt.wantEligible, result.Eligible)
			}
			if !result.ObservedValue.Equal(decimal.NewFromInt(tt.wantObserved)) {
				t.Errorf("Expected observed %d, got %s", tt.wantObserved, result.ObservedValue.String())
			}
			if !tt.wantEligible && result.Reason != "" {
				t.Errorf("Expected empty reason when not eligible, got %q", result.Reason)
			}
			if tt.wantEligible && result.Reason == "" {
				t.Error("Expected a reason when eligible")
			}
		})
	}
}

func TestThresholdRule_ReasonTemplates(t *testing.T) {
	rule := ThresholdRule{}
	snapshot := testSnapshot()
	snapshot.Rainfall30d = decimal.NewFromInt(120)

	result, err := rule.Evaluate(testPolicy(models.EventRainfall, 100), snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if !result.Eligible {
		t.Fatal("Expected eligible result")
	}
	expected := "Rainfall threshold exceeded: 120mm (threshold: 100mm)"
	if result.Reason != expected {
		t.Errorf("Expected reason %q, got %q", expected, result.Reason)
	}

	result, err = rule.Evaluate(testPolicy(models.EventDrought, 10), snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	expected = "Days without rain exceeded: 12 days (threshold: 10 days)"
	if result.Reason != expected {
		t.Errorf("Expected reason %q, got %q", expected, result.Reason)
	}

	result, err = rule.Evaluate(testPolicy(models.EventHeatwave, 30), snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	expected = "Temperature threshold exceeded: 32°C (threshold: 30°C)"
	if result.Reason != expected {
		t.Errorf("Expected reason %q, got %q", expected, result.Reason)
	}

	result, err = rule.Evaluate(testPolicy(models.EventStorm, 35), snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	expected = "Wind speed threshold exceeded: 40km/h (threshold: 35km/h)"
	if result.Reason != expected {
		t.Errorf("Expected reason %q, got %q", expected, result.Reason)
	}
}

func TestThresholdRule_UnknownEventType(t *testing.T) {
	rule := ThresholdRule{}

	_, err := rule.Evaluate(testPolicy("earthquake", 5), testSnapshot())
	if err == nil {
		t.Fatal("Expected error for unknown event type, got nil")
	}
	if !errors.Is(err, ErrUnknownEventType) {
		t.Errorf("Expected ErrUnknownEventType, got: %v", err)
	}
}

func TestThresholdRule_Deterministic(t *testing.T) {
	rule := ThresholdRule{}
	policy := testPolicy(models.EventRainfall, 100)
	snapshot := testSnapshot()

	first, err := rule.Evaluate(policy, snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	second, err := rule.Evaluate(policy, snapshot)
	if err != nil {
		t.Fatalf("Evaluate failed: %v", err)
	}
	if first.Eligible != second.Eligible || first.Reason != second.Reason ||
		!first.ObservedValue.Equal(second.ObservedValue) {
		t.Error("Repeated evaluation returned different results")
	}
}
