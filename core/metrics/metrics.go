// Package metrics defines the planning events recorded for observability
// and the sink interfaces implemented by the infra layer.
package metrics

import (
	"errors"
	"time"
)

// AllocationEvent is the per-trip outcome of one planning run.
type AllocationEvent struct {
	RunID   string
	TripID  int
	Van     int
	Order   int
	Status  string
	Vehicle string
	Price   float64
	Time    time.Time
}

// GroupEvent records a group formed during a planning run.
type GroupEvent struct {
	RunID   string
	GroupID string
	Rule    string
	Trips   int
	Pax     int
	Time    time.Time
}

// TariffEvent records one fuzzy tariff resolution.
type TariffEvent struct {
	RunID       string
	Description string
	Source      string
	MatchedKey  string
	Similarity  float64
	Price       float64
	Time        time.Time
}

// Sink records planning events. Implementations must tolerate being called
// from a single goroutine per run.
type Sink interface {
	RecordAllocation(ev AllocationEvent) error
	RecordGroup(ev GroupEvent) error
	RecordTariff(ev TariffEvent) error
}

// NopSink implements Sink with no-op methods.
type NopSink struct{}

func (NopSink) RecordAllocation(AllocationEvent) error { return nil }
func (NopSink) RecordGroup(GroupEvent) error           { return nil }
func (NopSink) RecordTariff(TariffEvent) error         { return nil }

// MultiSink fans events out to several sinks, joining their errors.
type MultiSink struct {
	Sinks []Sink
}

func (m MultiSink) RecordAllocation(ev AllocationEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordAllocation(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) RecordGroup(ev GroupEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordGroup(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m MultiSink) RecordTariff(ev TariffEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordTariff(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
