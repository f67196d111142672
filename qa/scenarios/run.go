package scenarios

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/vanrota/vanrota/core/dispatch"
	"github.com/vanrota/vanrota/core/grouping"
	coremetrics "github.com/vanrota/vanrota/core/metrics"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
	"github.com/vanrota/vanrota/core/tariff"
	"github.com/vanrota/vanrota/infra/logger"
	"github.com/vanrota/vanrota/infra/metrics"
	"github.com/vanrota/vanrota/internal/eventbus"
)

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSink(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	norm := normalize.New()
	engine := grouping.NewEngine(grouping.NewClassifier(norm), logger.NopLogger{})
	scorer := dispatch.NewScorer(norm)
	scheduler := dispatch.NewScheduler(norm, logger.NopLogger{})
	resolver := tariff.NewResolver(norm, nil, nil, logger.NopLogger{})
	bus := eventbus.NewTyped[coremetrics.AllocationEvent]()
	defer bus.Close()

	planner := dispatch.NewPlanner(engine, scorer, scheduler, resolver, sink, bus, logger.NopLogger{})

	trips := make([]model.Trip, len(sc.Trips))
	for i, d := range sc.Trips {
		trip, err := d.ToModel()
		if err != nil {
			t.Fatalf("trip %d: %v", d.ID, err)
		}
		trips[i] = trip
	}

	res := planner.Plan(trips)

	if len(res.Groups) != sc.Expected.Groups {
		t.Errorf("scenario %s expected %d groups, got %d", sc.Name, sc.Expected.Groups, len(res.Groups))
	}
	if res.Allocated != sc.Expected.Allocated {
		t.Errorf("scenario %s expected %d allocated, got %d", sc.Name, sc.Expected.Allocated, res.Allocated)
	}
	if res.Unallocated != sc.Expected.Unallocated {
		t.Errorf("scenario %s expected %d unallocated, got %d", sc.Name, sc.Expected.Unallocated, res.Unallocated)
	}
	for _, trip := range trips {
		if _, ok := res.Pricing[trip.ID]; !ok {
			t.Errorf("scenario %s: trip %d has no pricing", sc.Name, trip.ID)
		}
	}
}
