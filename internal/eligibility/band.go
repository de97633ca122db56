package eligibility

import (
	"fmt"

	"weather-insurance-go/internal/models"

	"github.com/shopspring/decimal"
)

// TemperatureBandRule is the on-chain contract's rule set: the policy insures
// a [MinTemperature, MaxTemperature] band and pays out when the current
// temperature falls outside it. It is a separate rule set from ThresholdRule;
// band policies ignore the event type and threshold fields entirely.
type TemperatureBandRule struct {
	MinTemperature decimal.Decimal
	MaxTemperature decimal.Decimal
}

var _ Rule = TemperatureBandRule{}

func (r TemperatureBandRule) Evaluate(_ *models.Policy, snapshot *models.WeatherSnapshot) (Result, error) {
	if r.MinTemperature.GreaterThan(r.MaxTemperature) {
		return Result{}, fmt.Errorf("invalid temperature band: min %s exceeds max %s",
			r.MinTemperature.String(), r.MaxTemperature.String())
	}

	observed := snapshot.Temperature

	if observed.LessThan(r.MinTemperature) {
		return Result{
			Eligible: true,
			Reason: fmt.Sprintf("Temperature below insured band: %s°C (band: %s°C to %s°C)",
				observed.String(), r.MinTemperature.String(), r.MaxTemperature.String()),
			ObservedValue: observed,
		}, nil
	}

	if observed.GreaterThan(r.MaxTemperature) {
		return Result{
			Eligible: true,
			Reason: fmt.Sprintf("Temperature above insured band: %s°C (band: %s°C to %s°C)",
				observed.String(), r.MinTemperature.String(), r.MaxTemperature.String()),
			ObservedValue: observed,
		}, nil
	}

	return Result{Eligible: false, ObservedValue: observed}, nil
}
