package dispatch

import (
	"time"

	"github.com/google/uuid"

	"github.com/vanrota/vanrota/core/grouping"
	"github.com/vanrota/vanrota/core/logger"
	"github.com/vanrota/vanrota/core/metrics"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/tariff"
	"github.com/vanrota/vanrota/internal/eventbus"
)

// PlanResult is the complete output of one planning run.
type PlanResult struct {
	RunID       string                    `json:"run_id"`
	Groups      []model.Group             `json:"groups"`
	Singles     []model.Trip              `json:"singles"`
	Allocations []model.Allocation        `json:"allocations"`
	Pricing     map[int]tariff.Resolution `json:"pricing"` // keyed by trip ID
	Allocated   int                       `json:"allocated"`
	Unallocated int                       `json:"unallocated"`
}

// Planner runs one complete planning pass: grouping, scoring, scheduling
// and pricing. Events are recorded on the sink and published best-effort on
// the bus for live observers.
type Planner struct {
	grouper   *grouping.Engine
	scorer    *Scorer
	scheduler *Scheduler
	resolver  *tariff.Resolver
	sink      metrics.Sink
	bus       *eventbus.TypedBus[metrics.AllocationEvent]
	log       logger.Logger
}

// NewPlanner wires a Planner. A nil sink disables recording; a nil bus
// disables publishing.
func NewPlanner(grouper *grouping.Engine, scorer *Scorer, scheduler *Scheduler, resolver *tariff.Resolver, sink metrics.Sink, bus *eventbus.TypedBus[metrics.AllocationEvent], log logger.Logger) *Planner {
	if sink == nil {
		sink = metrics.NopSink{}
	}
	return &Planner{
		grouper:   grouper,
		scorer:    scorer,
		scheduler: scheduler,
		resolver:  resolver,
		sink:      sink,
		bus:       bus,
		log:       log,
	}
}

// Plan processes one day's trips.
func (p *Planner) Plan(trips []model.Trip) PlanResult {
	runID := uuid.NewString()
	now := time.Now()
	p.log.Infof("planning run %s: %d trips", runID, len(trips))

	groups, singles := p.grouper.Group(trips)

	candidates := make([]model.Candidate, 0, len(groups)+len(singles))
	for i := range groups {
		candidates = append(candidates, model.NewGroupCandidate(&groups[i]))
	}
	for i := range singles {
		candidates = append(candidates, model.NewTripCandidate(&singles[i]))
	}

	priority, ordinary := p.scorer.Split(candidates)
	allocations := p.scheduler.Schedule(priority, ordinary)

	result := PlanResult{
		RunID:       runID,
		Groups:      groups,
		Singles:     singles,
		Allocations: allocations,
		Pricing:     make(map[int]tariff.Resolution, len(trips)),
	}

	for _, g := range groups {
		res := p.resolver.Resolve(g.Description, g.Pax, firstSaleRef(g.Trips))
		for _, t := range g.Trips {
			result.Pricing[t.ID] = res
		}
		p.recordGroup(runID, g, now)
		p.recordTariff(runID, g.Description, res, now)
	}
	for _, t := range singles {
		res := p.resolver.Resolve(t.Description, t.Pax, t.SaleRef)
		result.Pricing[t.ID] = res
		p.recordTariff(runID, t.Description, res, now)
	}

	for _, a := range allocations {
		if a.Status == model.StatusAllocated {
			result.Allocated++
		} else {
			result.Unallocated++
		}
		p.recordAllocation(runID, a, result.Pricing[a.TripID], now)
	}

	p.log.Infof("planning run %s done: %d groups, %d allocated, %d unallocated",
		runID, len(groups), result.Allocated, result.Unallocated)
	return result
}

func firstSaleRef(trips []model.Trip) string {
	for _, t := range trips {
		if t.SaleRef != "" {
			return t.SaleRef
		}
	}
	return ""
}

func (p *Planner) recordAllocation(runID string, a model.Allocation, res tariff.Resolution, now time.Time) {
	ev := metrics.AllocationEvent{
		RunID:   runID,
		TripID:  a.TripID,
		Van:     a.Van,
		Order:   a.Order,
		Status:  string(a.Status),
		Vehicle: res.Vehicle.String(),
		Price:   res.Price,
		Time:    now,
	}
	if err := p.sink.RecordAllocation(ev); err != nil {
		p.log.Errorf("allocation metrics error: %v", err)
	}
	if p.bus != nil {
		p.bus.Publish(ev)
	}
}

func (p *Planner) recordGroup(runID string, g model.Group, now time.Time) {
	err := p.sink.RecordGroup(metrics.GroupEvent{
		RunID:   runID,
		GroupID: g.ID,
		Rule:    g.Rule,
		Trips:   len(g.Trips),
		Pax:     g.Pax,
		Time:    now,
	})
	if err != nil {
		p.log.Errorf("group metrics error: %v", err)
	}
}

func (p *Planner) recordTariff(runID, description string, res tariff.Resolution, now time.Time) {
	err := p.sink.RecordTariff(metrics.TariffEvent{
		RunID:       runID,
		Description: description,
		Source:      res.Source,
		MatchedKey:  res.MatchedKey,
		Similarity:  res.Similarity,
		Price:       res.Price,
		Time:        now,
	})
	if err != nil {
		p.log.Errorf("tariff metrics error: %v", err)
	}
}
