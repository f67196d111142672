package config

import "fmt"

// PlanningConfig tunes the grouping and scheduling rules.
type PlanningConfig struct {
	// Vans is the number of van timelines to pack.
	Vans int `json:"vans"`
	// MinGapMinutes is the minimum end-to-start gap between two services
	// on the same van.
	MinGapMinutes int `json:"min_gap_minutes"`
	// DefaultDurationMinutes applies when a description carries no
	// explicit duration phrase.
	DefaultDurationMinutes int `json:"default_duration_minutes"`
	// MergeWindowMinutes is the maximum clock-time difference between
	// trips merged into one group.
	MergeWindowMinutes int `json:"merge_window_minutes"`
	// MinSharedPax gates shared-transfer groups.
	MinSharedPax int `json:"min_shared_pax"`
	// SmallPaxMax bounds the candidates retried in the gap-fill round.
	SmallPaxMax int `json:"small_pax_max"`
}

// SetDefaults applies the standard operating parameters.
func (c *PlanningConfig) SetDefaults() {
	if c.Vans == 0 {
		c.Vans = 2
	}
	if c.MinGapMinutes == 0 {
		c.MinGapMinutes = 180
	}
	if c.DefaultDurationMinutes == 0 {
		c.DefaultDurationMinutes = 180
	}
	if c.MergeWindowMinutes == 0 {
		c.MergeWindowMinutes = 40
	}
	if c.MinSharedPax == 0 {
		c.MinSharedPax = 4
	}
	if c.SmallPaxMax == 0 {
		c.SmallPaxMax = 3
	}
}

// Validate checks mandatory fields.
func (c PlanningConfig) Validate() error {
	if c.Vans < 1 {
		return fmt.Errorf("vans must be positive")
	}
	if c.MinGapMinutes < 0 || c.MergeWindowMinutes < 0 {
		return fmt.Errorf("minutes fields must be non-negative")
	}
	if c.DefaultDurationMinutes <= 0 {
		return fmt.Errorf("default_duration_minutes must be positive")
	}
	return nil
}
