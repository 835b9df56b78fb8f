// Package testutil provides common utility functions for testing.
package testutil

import (
	"github.com/energiaa/solarproposal/internal/engine"
)

// FindScenario finds a scenario by flag name in the report.
// Returns a pointer to the scenario if found, nil otherwise.
func FindScenario(report engine.EconomyReport, flagName string) *engine.ScenarioResult {
	for i := range report.Scenarios {
		if report.Scenarios[i].Flag.String() == flagName {
			return &report.Scenarios[i]
		}
	}
	return nil
}
