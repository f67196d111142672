package dispatch

import (
	"testing"

	"github.com/vanrota/vanrota/core/grouping"
	"github.com/vanrota/vanrota/core/metrics"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
	"github.com/vanrota/vanrota/core/tariff"
	"github.com/vanrota/vanrota/infra/logger"
	"github.com/vanrota/vanrota/internal/eventbus"
)

type countingSink struct {
	allocations []metrics.AllocationEvent
	groups      []metrics.GroupEvent
	tariffs     []metrics.TariffEvent
}

func (c *countingSink) RecordAllocation(ev metrics.AllocationEvent) error {
	c.allocations = append(c.allocations, ev)
	return nil
}

func (c *countingSink) RecordGroup(ev metrics.GroupEvent) error {
	c.groups = append(c.groups, ev)
	return nil
}

func (c *countingSink) RecordTariff(ev metrics.TariffEvent) error {
	c.tariffs = append(c.tariffs, ev)
	return nil
}

func newTestPlanner(sink metrics.Sink, bus *eventbus.TypedBus[metrics.AllocationEvent]) *Planner {
	norm := normalize.New()
	nop := logger.NopLogger{}
	secondary := &tariff.Table{Name: "secondary", Entries: map[string]tariff.Entry{
		"TRANSFER IN OU OUT SDU / CENTRO": {Flat: 40},
	}}
	return NewPlanner(
		grouping.NewEngine(grouping.NewClassifier(norm), nop),
		NewScorer(norm),
		NewScheduler(norm, nop),
		tariff.NewResolver(norm, nil, secondary, nop),
		sink,
		bus,
		nop,
	)
}

func dayTrips(t *testing.T) []model.Trip {
	t.Helper()
	return []model.Trip{
		{ID: 1, Description: "TOUR REGULAR RIO", Pax: 2, Time: clock(t, "08:00")},
		{ID: 2, Description: "TOUR REGULAR RIO", Pax: 3, Time: clock(t, "08:20")},
		{ID: 3, Description: "Transfer In ou Out Sdu / Centro", Pax: 2, SaleRef: "1", Time: clock(t, "14:00")},
		{ID: 4, Description: "Transfer Out Regular GIG", Pax: 2}, // unscheduled
	}
}

func TestPlannerEndToEnd(t *testing.T) {
	sink := &countingSink{}
	p := newTestPlanner(sink, nil)
	result := p.Plan(dayTrips(t))

	if result.RunID == "" {
		t.Fatalf("run ID missing")
	}
	if len(result.Groups) != 1 {
		t.Fatalf("expected the two tours to merge, got %d groups", len(result.Groups))
	}
	if result.Groups[0].Pax != 5 {
		t.Fatalf("expected merged pax 5 got %d", result.Groups[0].Pax)
	}
	if len(result.Allocations) != 4 {
		t.Fatalf("expected one allocation per trip, got %d", len(result.Allocations))
	}
	if result.Allocated != 3 || result.Unallocated != 1 {
		t.Fatalf("expected 3 allocated / 1 unallocated, got %d/%d", result.Allocated, result.Unallocated)
	}

	// Group members share van and order.
	byTrip := make(map[int]model.Allocation)
	for _, a := range result.Allocations {
		byTrip[a.TripID] = a
	}
	if byTrip[1].Van != byTrip[2].Van || byTrip[1].Order != byTrip[2].Order {
		t.Fatalf("group members diverged: %+v vs %+v", byTrip[1], byTrip[2])
	}
	if byTrip[4].Status != model.StatusUnallocated {
		t.Fatalf("unscheduled trip must be unallocated, got %+v", byTrip[4])
	}

	// Pricing is per trip; the SDU transfer hits the secondary table.
	if res := result.Pricing[3]; res.Source != tariff.SourceSecondary || res.Price != 40 {
		t.Fatalf("expected secondary 40.00 got %+v", res)
	}
	if res := result.Pricing[1]; res.Vehicle != model.VehicleVan15 {
		t.Fatalf("merged tour of 5 pax should price as van_15, got %+v", res)
	}

	if len(sink.allocations) != 4 || len(sink.groups) != 1 {
		t.Fatalf("sink events missing: %d allocations %d groups", len(sink.allocations), len(sink.groups))
	}
	if len(sink.tariffs) != 3 { // one per group + one per single
		t.Fatalf("expected 3 tariff events got %d", len(sink.tariffs))
	}
}

func TestPlannerPublishesOnBus(t *testing.T) {
	bus := eventbus.NewTyped[metrics.AllocationEvent]()
	sub := bus.Subscribe()
	p := newTestPlanner(nil, bus)
	result := p.Plan(dayTrips(t))

	received := 0
	for range len(result.Allocations) {
		select {
		case <-sub:
			received++
		default:
		}
	}
	if received != len(result.Allocations) {
		t.Fatalf("expected %d bus events got %d", len(result.Allocations), received)
	}
}

func TestPlannerEmptyInput(t *testing.T) {
	p := newTestPlanner(nil, nil)
	result := p.Plan(nil)
	if len(result.Allocations) != 0 || len(result.Groups) != 0 || len(result.Singles) != 0 {
		t.Fatalf("empty input should plan nothing, got %+v", result)
	}
}
