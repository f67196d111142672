package config

import "fmt"

// TariffConfig points at the price tables and tunes the fuzzy matcher.
type TariffConfig struct {
	// PrimaryPath and SecondaryPath locate the tariff table files
	// (YAML or JSON). Either may be empty; pricing then degrades to the
	// remaining table or the built-in defaults.
	PrimaryPath   string `json:"primary_path"`
	SecondaryPath string `json:"secondary_path"`

	// PrimarySearch bounds the primary candidate scan; PrimaryAccept is
	// the acceptance bar; SecondaryAccept is the secondary threshold.
	PrimarySearch   float64 `json:"primary_search"`
	PrimaryAccept   float64 `json:"primary_accept"`
	SecondaryAccept float64 `json:"secondary_accept"`
}

// SetDefaults applies the standard similarity thresholds.
func (c *TariffConfig) SetDefaults() {
	if c.PrimarySearch == 0 {
		c.PrimarySearch = 0.4
	}
	if c.PrimaryAccept == 0 {
		c.PrimaryAccept = 0.6
	}
	if c.SecondaryAccept == 0 {
		c.SecondaryAccept = 0.3
	}
}

// Validate checks threshold sanity.
func (c TariffConfig) Validate() error {
	for name, v := range map[string]float64{
		"primary_search":   c.PrimarySearch,
		"primary_accept":   c.PrimaryAccept,
		"secondary_accept": c.SecondaryAccept,
	} {
		if v < 0 || v > 1 {
			return fmt.Errorf("%s must be within [0,1]", name)
		}
	}
	if c.PrimaryAccept < c.PrimarySearch {
		return fmt.Errorf("primary_accept must not be below primary_search")
	}
	return nil
}
