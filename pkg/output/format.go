// Package output provides utilities for formatting and displaying economy reports.
package output

import (
	"fmt"

	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/pkg/format"
)

// PrettyFormat outputs a human-readable rather than machine-readable table.
func PrettyFormat(report engine.EconomyReport) {
	fmt.Printf("--- Economy report for %s ---\n", report.Customer.FullName)
	fmt.Printf("Address: %s\n", report.Customer.Address)
	fmt.Printf("Invoice: %s | Estimated consumption: %s (floor %s)\n\n",
		format.BRL(report.Customer.InvoiceAmount),
		format.Kwh(report.BaselineScenario().EstimatedConsumptionKwh),
		format.Kwh(report.Profile.MinimumConsumptionKwh),
	)
	fmt.Printf("Flag           | Tariff      | Without solar | With solar   | Monthly      | Annual        | 5 years\n")
	fmt.Printf("____           | ______      | _____________ | __________   | _______      | ______        | _______\n")
	for _, scenario := range report.Scenarios {
		marker := ""
		if scenario.Flag == report.Baseline {
			marker = " (baseline)"
		}
		fmt.Printf("%-14s | %s | %s | %s | %s | %s | %s%s\n",
			scenario.Flag,
			format.Tariff(scenario.AdjustedTariff),
			format.BRL(scenario.CostWithoutSolar),
			format.BRL(scenario.CostWithSolar),
			format.BRL(scenario.MonthlySavings),
			format.BRL(scenario.AnnualSavings),
			format.BRL(scenario.FiveYearSavings),
			marker,
		)
	}
}

// CsvFormat outputs in comma-separated value format.
func CsvFormat(report engine.EconomyReport) {
	fmt.Printf(`"flag","severity","adjusted_tariff","cost_without_solar","cost_with_solar","monthly_savings","annual_savings","five_year_savings"`)
	fmt.Printf("\n")
	for _, scenario := range report.Scenarios {
		fmt.Printf(`"%s",%d,"%.6f","%.2f","%.2f","%.2f","%.2f","%.2f"`,
			scenario.Flag,
			scenario.Flag.Severity(),
			scenario.AdjustedTariff,
			scenario.CostWithoutSolar,
			scenario.CostWithSolar,
			scenario.MonthlySavings,
			scenario.AnnualSavings,
			scenario.FiveYearSavings,
		)
		fmt.Printf("\n")
	}
}
