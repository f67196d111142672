package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/vanrota/vanrota/config"
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

// Service wires the planning pipeline from the configuration and runs
// complete passes over a day's trips.
type Service struct {
	planner  *dispatch.Planner
	resolver *tariff.Resolver
	bus      *eventbus.TypedBus[coremetrics.AllocationEvent]
	log      logger.Logger

	influx     *metrics.InfluxSink
	promCancel context.CancelFunc
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	if lvl, err := zerolog.ParseLevel(cfg.Logging.Level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	logg := logger.New("service")

	norm := normalize.New()

	var primary, secondary *tariff.Table
	if cfg.Tariff.PrimaryPath != "" {
		t, err := tariff.LoadTable("primary", cfg.Tariff.PrimaryPath)
		if err != nil {
			return nil, fmt.Errorf("primary tariff table: %w", err)
		}
		primary = t
	}
	if cfg.Tariff.SecondaryPath != "" {
		t, err := tariff.LoadTable("secondary", cfg.Tariff.SecondaryPath)
		if err != nil {
			return nil, fmt.Errorf("secondary tariff table: %w", err)
		}
		secondary = t
	}
	resolver := tariff.NewResolver(norm, primary, secondary, logger.New("tariff"))
	resolver.PrimarySearch = cfg.Tariff.PrimarySearch
	resolver.PrimaryAccept = cfg.Tariff.PrimaryAccept
	resolver.SecondaryAccept = cfg.Tariff.SecondaryAccept

	classifier := grouping.NewClassifier(norm)
	classifier.MergeWindow = time.Duration(cfg.Planning.MergeWindowMinutes) * time.Minute
	engine := grouping.NewEngine(classifier, logger.New("grouping"))
	engine.MinSharedPax = cfg.Planning.MinSharedPax

	scorer := dispatch.NewScorer(norm)
	scheduler := dispatch.NewScheduler(norm, logger.New("scheduler"))
	scheduler.Vans = cfg.Planning.Vans
	scheduler.MinGap = time.Duration(cfg.Planning.MinGapMinutes) * time.Minute
	scheduler.DefaultDuration = time.Duration(cfg.Planning.DefaultDurationMinutes) * time.Minute
	scheduler.SmallPaxMax = cfg.Planning.SmallPaxMax

	svc := &Service{
		resolver: resolver,
		bus:      eventbus.NewTyped[coremetrics.AllocationEvent](),
		log:      logg,
	}

	var sinks []coremetrics.Sink
	if cfg.Metrics.PrometheusEnabled {
		sink, err := metrics.NewPromSink(nil)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
		ctx, cancel := context.WithCancel(context.Background())
		svc.promCancel = cancel
		go func() {
			if err := metrics.StartPromServer(ctx, cfg.Metrics.PrometheusPort); err != nil {
				logg.Errorf("prom server: %v", err)
			}
		}()
	}
	if cfg.Metrics.InfluxEnabled {
		sink := metrics.NewInfluxSinkWithFallback(cfg.Metrics)
		if is, ok := sink.(*metrics.InfluxSink); ok {
			svc.influx = is
		}
		sinks = append(sinks, sink)
	}
	var sink coremetrics.Sink = coremetrics.NopSink{}
	if len(sinks) == 1 {
		sink = sinks[0]
	} else if len(sinks) > 1 {
		sink = coremetrics.MultiSink{Sinks: sinks}
	}

	svc.planner = dispatch.NewPlanner(engine, scorer, scheduler, resolver, sink, svc.bus, logg)
	return svc, nil
}

// Plan validates the trips and runs one planning pass.
func (s *Service) Plan(ctx context.Context, trips []model.Trip) (dispatch.PlanResult, error) {
	if err := ctx.Err(); err != nil {
		return dispatch.PlanResult{}, err
	}
	for i, t := range trips {
		if err := t.Validate(); err != nil {
			return dispatch.PlanResult{}, fmt.Errorf("trip %d: %w", i, err)
		}
	}
	return s.planner.Plan(trips), nil
}

// Resolve prices a single service description without scheduling.
func (s *Service) Resolve(description string, pax int, saleRef string) tariff.Resolution {
	return s.resolver.Resolve(description, pax, saleRef)
}

// Bus exposes the allocation event stream for live observers.
func (s *Service) Bus() *eventbus.TypedBus[coremetrics.AllocationEvent] {
	return s.bus
}

// Close releases resources held by the service.
func (s *Service) Close() error {
	if s.promCancel != nil {
		s.promCancel()
	}
	if s.influx != nil {
		s.influx.Close()
	}
	s.bus.Close()
	return nil
}
