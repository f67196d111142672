package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	coremetrics "github.com/vanrota/vanrota/core/metrics"
)

func TestPromSinkRecordsEvents(t *testing.T) {
	reg := prometheus.NewRegistry()
	sink, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("create sink: %v", err)
	}

	if err := sink.RecordAllocation(coremetrics.AllocationEvent{Van: 1, Status: "ALLOCATED"}); err != nil {
		t.Fatalf("record allocation: %v", err)
	}
	if err := sink.RecordAllocation(coremetrics.AllocationEvent{Status: "UNALLOCATED"}); err != nil {
		t.Fatalf("record allocation: %v", err)
	}
	if err := sink.RecordGroup(coremetrics.GroupEvent{Rule: "same_name"}); err != nil {
		t.Fatalf("record group: %v", err)
	}
	if err := sink.RecordTariff(coremetrics.TariffEvent{Source: "primary", Similarity: 0.8}); err != nil {
		t.Fatalf("record tariff: %v", err)
	}

	expected := `
# HELP plan_allocations_total Total number of trip allocations by van and status
# TYPE plan_allocations_total counter
plan_allocations_total{status="ALLOCATED",van="1"} 1
plan_allocations_total{status="UNALLOCATED",van="0"} 1
`
	if err := testutil.CollectAndCompare(sink.allocations, strings.NewReader(expected)); err != nil {
		t.Errorf("unexpected metrics: %v", err)
	}
	if c := testutil.CollectAndCount(sink.groups); c == 0 {
		t.Errorf("group not recorded")
	}
	if c := testutil.CollectAndCount(sink.similarity); c == 0 {
		t.Errorf("similarity not recorded")
	}
}

func TestPromSinkReusesRegisteredCollectors(t *testing.T) {
	reg := prometheus.NewRegistry()
	first, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("first sink: %v", err)
	}
	second, err := NewPromSink(reg)
	if err != nil {
		t.Fatalf("second sink: %v", err)
	}
	if first.allocations != second.allocations {
		t.Fatalf("expected shared collectors on re-registration")
	}
}
