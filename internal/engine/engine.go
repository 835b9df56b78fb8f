// Package engine computes the financial comparison between a "without solar"
// and a "with solar" billing scenario from a customer's invoice amount. Every
// stage is pure: it operates on explicit inputs, holds no state between
// calls, and returns identical results for identical inputs.
package engine

import (
	"strings"

	"github.com/energiaa/solarproposal/pkg/constants"
	"github.com/energiaa/solarproposal/pkg/mathutil"
)

// CustomerInput carries the three scalar values a proposal is computed from.
// Created once at entry and never mutated.
type CustomerInput struct {
	FullName      string
	Address       string
	InvoiceAmount float64
}

// TariffProfile holds the fixed regulatory and utility constants for the
// billing region. Loaded once from configuration, read-only afterwards.
type TariffProfile struct {
	// BaseRate is the utility tariff in currency per kWh.
	BaseRate float64
	// PublicLightingFee is the fixed per-invoice charge unrelated to
	// metered consumption.
	PublicLightingFee float64
	// MinimumConsumptionKwh is the smallest billable consumption the
	// utility charges regardless of actual usage.
	MinimumConsumptionKwh float64
}

// Validate checks the profile's domain.
func (p TariffProfile) Validate() error {
	if p.BaseRate <= 0 {
		return &InvalidConfigurationError{Setting: "baseRate", Reason: "must be positive"}
	}
	if p.PublicLightingFee < 0 {
		return &InvalidConfigurationError{Setting: "publicLightingFee", Reason: "must not be negative"}
	}
	if p.MinimumConsumptionKwh < 0 {
		return &InvalidConfigurationError{Setting: "minimumConsumptionKwh", Reason: "must not be negative"}
	}
	return nil
}

// Estimate is the result of deriving consumption from an invoice amount.
type Estimate struct {
	ConsumptionKwh        float64
	MinimumConsumptionKwh float64
}

// ScenarioResult holds the side-by-side comparison for a single tariff flag.
type ScenarioResult struct {
	Flag                    TariffFlag
	EstimatedConsumptionKwh float64
	AdjustedTariff          float64
	// EnergyCost is the consumption portion of the bill, i.e. the cost
	// without solar minus the public lighting fee. Carried so renderers
	// never re-derive financial figures.
	EnergyCost       float64
	CostWithoutSolar float64
	CostWithSolar    float64
	MonthlySavings   float64
	AnnualSavings    float64
	FiveYearSavings  float64
}

// EconomyReport is the engine's sole output: the customer input plus one
// scenario per tariff flag, in severity order, with a designated baseline
// flag for headline figures.
type EconomyReport struct {
	Customer  CustomerInput
	Profile   TariffProfile
	Baseline  TariffFlag
	Scenarios []ScenarioResult
}

// Scenario returns the result computed for the given flag.
func (r EconomyReport) Scenario(flag TariffFlag) (ScenarioResult, bool) {
	for _, s := range r.Scenarios {
		if s.Flag == flag {
			return s, true
		}
	}
	return ScenarioResult{}, false
}

// BaselineScenario returns the scenario for the report's baseline flag.
func (r EconomyReport) BaselineScenario() ScenarioResult {
	s, _ := r.Scenario(r.Baseline)
	return s
}

// EstimateConsumption derives the estimated monthly consumption from the raw
// invoice amount: the public lighting fee is subtracted to isolate the
// energy-only portion, which is divided by the base tariff and clamped to the
// regulatory minimum billing floor. An invoice at or below the lighting fee
// floors at the minimum rather than going negative; that clamp is designed
// behavior, not an error.
func EstimateConsumption(invoiceAmount float64, profile TariffProfile) (Estimate, error) {
	if invoiceAmount <= 0 {
		return Estimate{}, &InvalidInputError{Field: "invoiceAmount", Reason: "must be positive"}
	}
	if err := profile.Validate(); err != nil {
		return Estimate{}, err
	}

	consumption := (invoiceAmount - profile.PublicLightingFee) / profile.BaseRate
	consumption = mathutil.Max(profile.MinimumConsumptionKwh, consumption)

	return Estimate{
		ConsumptionKwh:        consumption,
		MinimumConsumptionKwh: profile.MinimumConsumptionKwh,
	}, nil
}

// AdjustTariff applies the surcharge of the given flag on top of the base
// rate. Flags are applied independently, never combined.
func AdjustTariff(baseRate float64, flag TariffFlag, table SurchargeTable) (float64, error) {
	if baseRate <= 0 {
		return 0, &InvalidConfigurationError{Setting: "baseRate", Reason: "must be positive"}
	}
	if !flag.Valid() {
		return 0, &InvalidConfigurationError{Setting: "flag", Reason: flag.String() + " is not a recognized flag"}
	}
	if err := table.Validate(); err != nil {
		return 0, err
	}
	return baseRate + table[flag], nil
}

// Project combines estimated consumption, an adjusted tariff, and the solar
// discount rate into a full scenario: monthly cost with and without solar and
// the flat monthly/annual/five-year savings extrapolation.
func Project(consumptionKwh, adjustedTariff, publicLightingFee, solarDiscountRate float64) (ScenarioResult, error) {
	if solarDiscountRate < 0 || solarDiscountRate >= 1 {
		return ScenarioResult{}, &InvalidConfigurationError{
			Setting: "solarDiscountRate",
			Reason:  "must be at least 0 and below 1",
		}
	}

	energyCost := consumptionKwh * adjustedTariff
	costWithoutSolar := energyCost + publicLightingFee
	costWithSolar := costWithoutSolar * (1 - solarDiscountRate)
	monthly := costWithoutSolar - costWithSolar

	return ScenarioResult{
		EstimatedConsumptionKwh: consumptionKwh,
		AdjustedTariff:          adjustedTariff,
		EnergyCost:              energyCost,
		CostWithoutSolar:        costWithoutSolar,
		CostWithSolar:           costWithSolar,
		MonthlySavings:          monthly,
		AnnualSavings:           monthly * constants.MonthsPerYear,
		FiveYearSavings:         monthly * constants.MonthsPerYear * constants.ProjectionYears,
	}, nil
}

// BuildReport runs the full pipeline: consumption estimation, one tariff
// adjustment and projection per recognized flag, assembled into the
// EconomyReport consumed by the rendering layer. The baseline is FlagNone.
func BuildReport(input CustomerInput, profile TariffProfile, table SurchargeTable, solarDiscountRate float64) (EconomyReport, error) {
	if strings.TrimSpace(input.FullName) == "" {
		return EconomyReport{}, &InvalidInputError{Field: "fullName", Reason: "must not be empty"}
	}
	if strings.TrimSpace(input.Address) == "" {
		return EconomyReport{}, &InvalidInputError{Field: "address", Reason: "must not be empty"}
	}

	estimate, err := EstimateConsumption(input.InvoiceAmount, profile)
	if err != nil {
		return EconomyReport{}, err
	}

	report := EconomyReport{
		Customer: input,
		Profile:  profile,
		Baseline: FlagNone,
	}
	for _, flag := range AllFlags() {
		adjusted, err := AdjustTariff(profile.BaseRate, flag, table)
		if err != nil {
			return EconomyReport{}, err
		}
		scenario, err := Project(estimate.ConsumptionKwh, adjusted, profile.PublicLightingFee, solarDiscountRate)
		if err != nil {
			return EconomyReport{}, err
		}
		scenario.Flag = flag
		report.Scenarios = append(report.Scenarios, scenario)
	}
	return report, nil
}
