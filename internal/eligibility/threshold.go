package eligibility

import (
	"fmt"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

// ThresholdRule is the off-chain rule set: a single metric, keyed by the
// policy's event type, compared against the policy threshold with
// greater-than-or-equal semantics.
type ThresholdRule struct{}

var _ Rule = ThresholdRule{}

func (ThresholdRule) Evaluate(policy *models.Policy, snapshot *models.WeatherSnapshot) (Result, error) {
	var observed decimal.Decimal
	var reason string

	switch policy.EventType {
	case models.EventRainfall:
		observed = snapshot.Rainfall30d
		reason = fmt.Sprintf("Rainfall threshold exceeded: %smm (threshold: %smm)",
			observed.String(), policy.Threshold.String())
	case models.EventDrought:
		observed = decimal.NewFromInt(int64(snapshot.DaysWithoutRain))
		reason = fmt.Sprintf("Days without rain exceeded: %s days (threshold: %s days)",
			observed.String(), policy.Threshold.String())
	case models.EventHeatwave:
		observed = snapshot.Temperature
		reason = fmt.Sprintf("Temperature threshold exceeded: %s°C (threshold: %s°C)",
			observed.String(), policy.Threshold.String())
	case models.EventStorm:
		observed = snapshot.WindSpeed
		reason = fmt.Sprintf("Wind speed threshold exceeded: %skm/h (threshold: %skm/h)",
			observed.String(), policy.Threshold.String())
	default:
		return Result{}, fmt.Errorf("%w: %q", ErrUnknownEventType, policy.EventType)
	}

	if observed.LessThan(policy.Threshold) {
		return Result{Eligible: false, ObservedValue: observed}, nil
	}
	return Result{Eligible: true, Reason: reason, ObservedValue: observed}, nil
}
