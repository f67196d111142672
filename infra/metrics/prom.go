package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	coremetrics "github.com/vanrota/vanrota/core/metrics"
)

// PromSink records planning events in Prometheus metrics.
type PromSink struct {
	allocations *prometheus.CounterVec
	groups      *prometheus.CounterVec
	similarity  *prometheus.HistogramVec
}

// NewPromSink registers the planning metrics on the provided registerer.
// If reg is nil, the default registerer is used. If the collectors are
// already registered, the existing ones are reused.
func NewPromSink(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	allocations := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_allocations_total",
		Help: "Total number of trip allocations by van and status",
	}, []string{"van", "status"})
	groups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "plan_groups_total",
		Help: "Total number of trip groups formed by rule",
	}, []string{"rule"})
	similarity := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "tariff_match_similarity",
		Help:    "Blended similarity of accepted tariff matches",
		Buckets: prometheus.LinearBuckets(0, 0.1, 11),
	}, []string{"source"})

	if err := reg.Register(allocations); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			allocations = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(groups); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			groups = are.ExistingCollector.(*prometheus.CounterVec)
		} else {
			return nil, err
		}
	}
	if err := reg.Register(similarity); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			similarity = are.ExistingCollector.(*prometheus.HistogramVec)
		} else {
			return nil, err
		}
	}

	return &PromSink{allocations: allocations, groups: groups, similarity: similarity}, nil
}

// RecordAllocation increments the allocation counter.
func (s *PromSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	s.allocations.WithLabelValues(strconv.Itoa(ev.Van), ev.Status).Inc()
	return nil
}

// RecordGroup increments the group counter.
func (s *PromSink) RecordGroup(ev coremetrics.GroupEvent) error {
	s.groups.WithLabelValues(ev.Rule).Inc()
	return nil
}

// RecordTariff observes the match similarity.
func (s *PromSink) RecordTariff(ev coremetrics.TariffEvent) error {
	s.similarity.WithLabelValues(ev.Source).Observe(ev.Similarity)
	return nil
}

// StartPromServer exposes /metrics on the given port until the context is
// canceled. A dedicated ServeMux avoids interfering with other handlers.
func StartPromServer(ctx context.Context, port int) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
