package metrics

import (
	"context"
	"net/http"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/vanrota/vanrota/config"
	"github.com/vanrota/vanrota/core/logger"
	coremetrics "github.com/vanrota/vanrota/core/metrics"
	infralogger "github.com/vanrota/vanrota/infra/logger"
)

// InfluxSink writes planning events to an InfluxDB instance using the
// official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	client := influxdb2.NewClientWithOptions(url, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      infralogger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink when the health check fails, so planning keeps working without
// the database.
func NewInfluxSinkWithFallback(cfg config.MetricsConfig) coremetrics.Sink {
	sink := NewInfluxSink(cfg.InfluxURL, cfg.InfluxToken, cfg.InfluxOrg, cfg.InfluxBucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordAllocation writes one point per trip allocation.
func (s *InfluxSink) RecordAllocation(ev coremetrics.AllocationEvent) error {
	p := write.NewPointWithMeasurement("allocation").
		AddTag("run_id", ev.RunID).
		AddTag("status", ev.Status).
		AddTag("vehicle", ev.Vehicle).
		AddField("trip_id", ev.TripID).
		AddField("van", ev.Van).
		AddField("order", ev.Order).
		AddField("price", ev.Price).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordGroup writes one point per formed group.
func (s *InfluxSink) RecordGroup(ev coremetrics.GroupEvent) error {
	p := write.NewPointWithMeasurement("trip_group").
		AddTag("run_id", ev.RunID).
		AddTag("rule", ev.Rule).
		AddField("group_id", ev.GroupID).
		AddField("trips", ev.Trips).
		AddField("pax", ev.Pax).
		SetTime(ev.Time)
	return s.write(p)
}

// RecordTariff writes one point per tariff resolution.
func (s *InfluxSink) RecordTariff(ev coremetrics.TariffEvent) error {
	p := write.NewPointWithMeasurement("tariff_resolution").
		AddTag("run_id", ev.RunID).
		AddTag("source", ev.Source).
		AddField("description", ev.Description).
		AddField("matched_key", ev.MatchedKey).
		AddField("similarity", ev.Similarity).
		AddField("price", ev.Price).
		SetTime(ev.Time)
	return s.write(p)
}

func (s *InfluxSink) write(p *write.Point) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() { s.client.Close() }
