package engine

import "fmt"

// TariffFlag identifies one of the regulatory surcharge tiers ("bandeiras
// tarifárias") applied on top of the base tariff. Exactly one flag is active
// per scenario evaluation; flags are mutually exclusive, never cumulative.
type TariffFlag int

// Flags in ascending severity. The iota order is the stable severity rank
// consumers rely on when presenting the scenario spread.
const (
	FlagNone TariffFlag = iota
	FlagYellow
	FlagRedTier1
	FlagRedTier2
	FlagWaterScarcity
)

var flagNames = map[TariffFlag]string{
	FlagNone:          "none",
	FlagYellow:        "yellow",
	FlagRedTier1:      "red-tier-1",
	FlagRedTier2:      "red-tier-2",
	FlagWaterScarcity: "water-scarcity",
}

func (f TariffFlag) String() string {
	if name, ok := flagNames[f]; ok {
		return name
	}
	return fmt.Sprintf("tariff-flag(%d)", int(f))
}

// Severity returns the stable presentation rank of the flag, lowest first.
func (f TariffFlag) Severity() int {
	return int(f)
}

// Valid reports whether f is one of the recognized flags.
func (f TariffFlag) Valid() bool {
	_, ok := flagNames[f]
	return ok
}

// AllFlags returns every recognized flag in severity order. The engine runs
// one scenario per entry so the report always carries the full spread.
func AllFlags() []TariffFlag {
	return []TariffFlag{FlagNone, FlagYellow, FlagRedTier1, FlagRedTier2, FlagWaterScarcity}
}

// SurchargeTable maps each flag to its fixed surcharge per kWh. FlagNone may
// be omitted; it always contributes zero.
type SurchargeTable map[TariffFlag]float64

// Validate checks the table's domain: every recognized flag except FlagNone
// must carry a positive surcharge, FlagNone must be absent or zero, and
// unknown flags are rejected.
func (t SurchargeTable) Validate() error {
	for flag, surcharge := range t {
		if !flag.Valid() {
			return &InvalidConfigurationError{
				Setting: "surcharges",
				Reason:  fmt.Sprintf("unrecognized flag %d", int(flag)),
			}
		}
		if flag == FlagNone {
			if surcharge != 0 {
				return &InvalidConfigurationError{
					Setting: "surcharges",
					Reason:  "flag none must not carry a surcharge",
				}
			}
			continue
		}
		if surcharge <= 0 {
			return &InvalidConfigurationError{
				Setting: "surcharges",
				Reason:  fmt.Sprintf("flag %s requires a positive surcharge, got %f", flag, surcharge),
			}
		}
	}
	for _, flag := range AllFlags() {
		if flag == FlagNone {
			continue
		}
		if _, ok := t[flag]; !ok {
			return &InvalidConfigurationError{
				Setting: "surcharges",
				Reason:  fmt.Sprintf("missing surcharge for flag %s", flag),
			}
		}
	}
	return nil
}
