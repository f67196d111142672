package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vanrota/vanrota/core/dispatch"
)

func TestPlanCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"plan", "-c", "testdata/config.yaml", "--trips", "testdata/trips.json", "--json"})
	require.NoError(t, rootCmd.Execute())

	var res dispatch.PlanResult
	require.NoError(t, json.Unmarshal(out.Bytes(), &res))
	require.Len(t, res.Groups, 1)
	require.Equal(t, 4, res.Allocated)
	require.Equal(t, 1, res.Unallocated)
}

func TestLoadTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	data := `[
		{"id": 1, "description": "TRANSFER IN GIG REGULAR", "time": "09:00", "pax": 2, "pickup": "HOTEL FASANO"},
		{"id": 2, "description": "CITY TOUR", "pax": 4}
	]`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))

	trips, err := loadTrips(path)
	require.NoError(t, err)
	require.Len(t, trips, 2)
	require.True(t, trips[0].HasTime())
	require.Equal(t, 9*60, trips[0].MinutesOfDay())
	require.False(t, trips[1].HasTime())
}

func TestLoadTripsBadClock(t *testing.T) {
	path := filepath.Join(t.TempDir(), "trips.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"id": 1, "description": "X", "time": "9 AM", "pax": 1}]`), 0o600))

	_, err := loadTrips(path)
	require.Error(t, err)
}
