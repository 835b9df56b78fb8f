// Package config defines the data structures related to configuration and
// includes functions for loading and validating the config.
package config

import (
	"fmt"
	"sort"

	"github.com/energiaa/solarproposal/internal/engine"
	"github.com/energiaa/solarproposal/pkg/constants"
	"github.com/spf13/viper"
)

// Configuration holds all configuration for solarproposal.
type Configuration struct {
	Tariff   TariffConfig   `yaml:"tariff"`
	Contract ContractConfig `yaml:"contract"`
	Logging  LoggingConfig  `yaml:"logging,omitempty"`
	Output   OutputConfig   `yaml:"output,omitempty"`
}

// TariffConfig holds the utility tariff constants for the billing region.
type TariffConfig struct {
	// BaseRate is the distributor tariff in currency per kWh.
	BaseRate float64 `yaml:"baseRate"`
	// Surcharges carries the per-kWh value of each regulatory flag tier.
	Surcharges SurchargeConfig `yaml:"surcharges"`
	// Tiers resolve the public lighting fee and minimum consumption floor
	// from the invoice amount. Must be ordered by ascending UpTo; the last
	// tier with UpTo == 0 is unbounded.
	Tiers []ProfileTier `yaml:"tiers"`
}

// SurchargeConfig lists the tariff flag surcharges per kWh.
type SurchargeConfig struct {
	Yellow        float64 `yaml:"yellow"`
	RedTier1      float64 `yaml:"redTier1"`
	RedTier2      float64 `yaml:"redTier2"`
	WaterScarcity float64 `yaml:"waterScarcity"`
}

// ProfileTier maps an invoice amount band to its regional billing constants.
type ProfileTier struct {
	// UpTo is the inclusive upper invoice bound of the tier; 0 means
	// unbounded and is only valid on the last tier.
	UpTo                  float64 `yaml:"upTo"`
	PublicLightingFee     float64 `yaml:"publicLightingFee"`
	MinimumConsumptionKwh float64 `yaml:"minimumConsumptionKwh"`
}

// ContractConfig holds the commercial terms applied to the solar scenario.
type ContractConfig struct {
	// SolarDiscountPercent is the contracted discount over the full bill,
	// expressed in percent (e.g. 20 for 20%).
	SolarDiscountPercent float64 `yaml:"solarDiscountPercent"`
}

// LoggingConfig holds logging configuration options
type LoggingConfig struct {
	Level      string `yaml:"level,omitempty"`      // debug, info, warn, error
	Format     string `yaml:"format,omitempty"`     // json, console
	OutputFile string `yaml:"outputFile,omitempty"` // optional file output
}

// OutputConfig holds output format configuration options
type OutputConfig struct {
	Format    string `yaml:"format,omitempty"`    // pretty, csv, pdf, xlsx
	Directory string `yaml:"directory,omitempty"` // where artifacts are written
}

// Default returns the configuration shipped with the application: the
// Energisa MS tariff table and the standard 20% subscription discount.
func Default() *Configuration {
	return &Configuration{
		Tariff: TariffConfig{
			BaseRate: 1.138131,
			Surcharges: SurchargeConfig{
				Yellow:        0.024181,
				RedTier1:      0.057252,
				RedTier2:      0.101047,
				WaterScarcity: 0.182160,
			},
			Tiers: []ProfileTier{
				{UpTo: 300, PublicLightingFee: 42.90, MinimumConsumptionKwh: 30},
				{UpTo: 500, PublicLightingFee: 61.67, MinimumConsumptionKwh: 50},
				{UpTo: 0, PublicLightingFee: 92.51, MinimumConsumptionKwh: 100},
			},
		},
		Contract: ContractConfig{SolarDiscountPercent: 20},
		Output: OutputConfig{
			Format:    constants.OutputFormatPretty,
			Directory: constants.DefaultOutputDirectory,
		},
	}
}

// LoadConfiguration takes a file path as input and loads the YAML-formatted
// configuration there, over the shipped defaults.
func LoadConfiguration(configPath string) (*Configuration, error) {
	viper.SetConfigFile(configPath)
	viper.AutomaticEnv()

	viper.SetConfigType("yml")

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file, %s", err)
	}

	configuration := Default()
	// mapstructure merges slices element-wise, so a configured tier list
	// must replace the shipped defaults rather than overlay them.
	if viper.IsSet("tariff.tiers") {
		configuration.Tariff.Tiers = nil
	}
	err := viper.Unmarshal(configuration)
	if err != nil {
		return nil, fmt.Errorf("unable to decode into struct, %s", err)
	}

	return configuration, nil
}

// SurchargeTable converts the configured surcharges into the engine's table.
func (conf *Configuration) SurchargeTable() engine.SurchargeTable {
	return engine.SurchargeTable{
		engine.FlagYellow:        conf.Tariff.Surcharges.Yellow,
		engine.FlagRedTier1:      conf.Tariff.Surcharges.RedTier1,
		engine.FlagRedTier2:      conf.Tariff.Surcharges.RedTier2,
		engine.FlagWaterScarcity: conf.Tariff.Surcharges.WaterScarcity,
	}
}

// SolarDiscountRate returns the contracted discount as a fraction in [0, 1).
func (conf *Configuration) SolarDiscountRate() float64 {
	return conf.Contract.SolarDiscountPercent / constants.PercentageMultiplier
}

// ResolveProfile selects the tier matching the invoice amount and returns the
// explicit TariffProfile the engine is called with. The engine itself never
// sees tiers.
func (conf *Configuration) ResolveProfile(invoiceAmount float64) (engine.TariffProfile, error) {
	if len(conf.Tariff.Tiers) == 0 {
		return engine.TariffProfile{}, &engine.InvalidConfigurationError{
			Setting: "tariff.tiers",
			Reason:  "at least one tier is required",
		}
	}
	for _, tier := range conf.Tariff.Tiers {
		if tier.UpTo == 0 || invoiceAmount <= tier.UpTo {
			return engine.TariffProfile{
				BaseRate:              conf.Tariff.BaseRate,
				PublicLightingFee:     tier.PublicLightingFee,
				MinimumConsumptionKwh: tier.MinimumConsumptionKwh,
			}, nil
		}
	}
	return engine.TariffProfile{}, &engine.InvalidConfigurationError{
		Setting: "tariff.tiers",
		Reason:  fmt.Sprintf("no tier covers invoice amount %.2f; the last tier must be unbounded (upTo: 0)", invoiceAmount),
	}
}

// ValidateConfiguration checks the domain of every configured value. It
// returns human-readable warnings for suspicious but workable settings and an
// error for violations the engine would reject.
func (conf *Configuration) ValidateConfiguration() ([]string, error) {
	var warnings []string

	if conf.Tariff.BaseRate <= 0 {
		return warnings, &engine.InvalidConfigurationError{
			Setting: "tariff.baseRate",
			Reason:  "must be positive",
		}
	}

	if err := conf.SurchargeTable().Validate(); err != nil {
		return warnings, err
	}

	rate := conf.SolarDiscountRate()
	if rate < 0 || rate >= 1 {
		return warnings, &engine.InvalidConfigurationError{
			Setting: "contract.solarDiscountPercent",
			Reason:  "must be at least 0 and below 100",
		}
	}
	if rate == 0 {
		warnings = append(warnings, "solar discount is zero; both scenarios will cost the same")
	}

	if err := conf.validateTiers(); err != nil {
		return warnings, err
	}

	if conf.Output.Format == "" {
		warnings = append(warnings, fmt.Sprintf("output format not set; defaulting to %s", constants.OutputFormatPretty))
	}

	return warnings, nil
}

func (conf *Configuration) validateTiers() error {
	tiers := conf.Tariff.Tiers
	if len(tiers) == 0 {
		return &engine.InvalidConfigurationError{
			Setting: "tariff.tiers",
			Reason:  "at least one tier is required",
		}
	}
	bounded := tiers[:len(tiers)-1]
	if !sort.SliceIsSorted(bounded, func(i, j int) bool { return bounded[i].UpTo < bounded[j].UpTo }) {
		return &engine.InvalidConfigurationError{
			Setting: "tariff.tiers",
			Reason:  "tiers must be ordered by ascending upTo",
		}
	}
	for i, tier := range tiers {
		if tier.UpTo == 0 && i != len(tiers)-1 {
			return &engine.InvalidConfigurationError{
				Setting: "tariff.tiers",
				Reason:  "only the last tier may be unbounded (upTo: 0)",
			}
		}
		if tier.UpTo < 0 {
			return &engine.InvalidConfigurationError{
				Setting: "tariff.tiers",
				Reason:  "upTo must not be negative",
			}
		}
		if tier.PublicLightingFee < 0 {
			return &engine.InvalidConfigurationError{
				Setting: "tariff.tiers",
				Reason:  "publicLightingFee must not be negative",
			}
		}
		if tier.MinimumConsumptionKwh < 0 {
			return &engine.InvalidConfigurationError{
				Setting: "tariff.tiers",
				Reason:  "minimumConsumptionKwh must not be negative",
			}
		}
	}
	if last := tiers[len(tiers)-1]; last.UpTo != 0 {
		return &engine.InvalidConfigurationError{
			Setting: "tariff.tiers",
			Reason:  "the last tier must be unbounded (upTo: 0)",
		}
	}
	return nil
}
