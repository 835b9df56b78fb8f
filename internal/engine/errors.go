package engine

import "fmt"

// InvalidInputError reports caller-supplied data that violates the engine's
// preconditions, such as a non-positive invoice amount or missing identity
// fields. It aborts the computation; no report is produced from partial data.
type InvalidInputError struct {
	Field  string
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid input %s: %s", e.Field, e.Reason)
}

// InvalidConfigurationError reports a tariff table or discount rate outside
// its valid domain. Configuration faults are structural and never defaulted.
type InvalidConfigurationError struct {
	Setting string
	Reason  string
}

func (e *InvalidConfigurationError) Error() string {
	return fmt.Sprintf("invalid configuration %s: %s", e.Setting, e.Reason)
}
