package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/vanrota/vanrota/config"
	"github.com/vanrota/vanrota/core/model"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	parsed, err := model.ParseClock(s)
	require.NoError(t, err)
	return parsed
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	primary := filepath.Join(dir, "primary.yaml")
	err := os.WriteFile(primary, []byte(
		"TRANSFER IN GIG REGULAR:\n  small_car: 150\n  van_15: 250\n",
	), 0o600)
	require.NoError(t, err)

	cfg := &config.Config{}
	cfg.Planning.SetDefaults()
	cfg.Tariff.SetDefaults()
	cfg.Logging.SetDefaults()
	cfg.Tariff.PrimaryPath = primary
	return cfg
}

func TestServicePlan(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { require.NoError(t, svc.Close()) }()

	trips := []model.Trip{
		{ID: 1, Description: "TRANSFER IN GIG REGULAR", Time: clock(t, "09:00"), Pax: 2, Pickup: "HOTEL FASANO", SaleRef: "1"},
		{ID: 2, Description: "TRANSFER IN GIG REGULAR", Time: clock(t, "09:20"), Pax: 3, Pickup: "HOTEL FASANO", SaleRef: "2"},
		{ID: 3, Description: "CITY TOUR", Time: clock(t, "14:00"), Pax: 5, Pickup: "COPACABANA PALACE"},
	}
	res, err := svc.Plan(context.Background(), trips)
	require.NoError(t, err)

	require.Len(t, res.Allocations, 3)
	require.Equal(t, len(trips), res.Allocated+res.Unallocated)
	for _, trip := range trips {
		require.Contains(t, res.Pricing, trip.ID)
	}
}

func TestServicePlanRejectsInvalidTrip(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	_, err = svc.Plan(context.Background(), []model.Trip{{ID: 1, Pax: 0}})
	require.Error(t, err)
}

func TestServiceResolve(t *testing.T) {
	svc, err := New(testConfig(t))
	require.NoError(t, err)
	defer func() { _ = svc.Close() }()

	res := svc.Resolve("TRANSFER IN GIG REGULAR", 2, "")
	require.Equal(t, model.VehicleSmallCar, res.Vehicle)
	require.Equal(t, 150.0, res.Price)
}
