package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vanrota/vanrota/app"
	"github.com/vanrota/vanrota/config"
	"github.com/vanrota/vanrota/core/dispatch"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/infra/logger"
	"github.com/vanrota/vanrota/pkg/export"
)

var (
	tripsPath string
	jsonOut   bool
	csvPath   string
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Group, score, schedule and price one day of trips",
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVarP(&tripsPath, "trips", "t", "trips.json", "trips file (JSON)")
	planCmd.Flags().BoolVar(&jsonOut, "json", false, "print the full plan as JSON")
	planCmd.Flags().StringVar(&csvPath, "csv", "", "also write the schedule to a CSV file")
}

// tripRecord is the on-disk trip shape: clock-times as "HH:MM" strings.
type tripRecord struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
	Time        string `json:"time,omitempty"`
	Pax         int    `json:"pax"`
	Pickup      string `json:"pickup,omitempty"`
	SaleRef     string `json:"sale_ref,omitempty"`
	Client      string `json:"client,omitempty"`
}

func loadTrips(path string) ([]model.Trip, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trips: %w", err)
	}
	var records []tripRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse trips: %w", err)
	}
	trips := make([]model.Trip, 0, len(records))
	for _, r := range records {
		tm, err := model.ParseClock(r.Time)
		if err != nil {
			return nil, fmt.Errorf("trip %d: %w", r.ID, err)
		}
		trips = append(trips, model.Trip{
			ID:          r.ID,
			Description: r.Description,
			Time:        tm,
			Pax:         r.Pax,
			Pickup:      r.Pickup,
			SaleRef:     r.SaleRef,
			Client:      r.Client,
		})
	}
	return trips, nil
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	logg := logger.New("plan-command")
	defer func() {
		if err := svc.Close(); err != nil {
			logg.Errorf("service close: %v", err)
		}
	}()

	trips, err := loadTrips(tripsPath)
	if err != nil {
		return err
	}

	sub := svc.Bus().Subscribe()
	done := make(chan struct{})
	go func() {
		defer close(done)
		for ev := range sub {
			logg.Debugf("trip %d: %s van=%d order=%d", ev.TripID, ev.Status, ev.Van, ev.Order)
		}
	}()

	res, err := svc.Plan(ctx, trips)
	svc.Bus().Unsubscribe(sub)
	<-done
	if err != nil {
		return err
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create csv: %w", err)
		}
		defer f.Close()
		if err := export.WriteCSV(f, res); err != nil {
			return fmt.Errorf("write csv: %w", err)
		}
	}

	if jsonOut {
		return export.WriteJSON(cmd.OutOrStdout(), res)
	}
	printPlan(cmd, res)
	return nil
}

func printPlan(cmd *cobra.Command, res dispatch.PlanResult) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "run %s: %d groups, %d singles, %d allocated, %d unallocated\n",
		res.RunID, len(res.Groups), len(res.Singles), res.Allocated, res.Unallocated)

	for _, g := range res.Groups {
		when := "--:--"
		if tm := g.Time(); !tm.IsZero() {
			when = tm.Format("15:04")
		}
		fmt.Fprintf(out, "group %s [%s] %s pax=%d trips=%d sales=%s\n",
			g.ID, g.Rule, when, g.Pax, len(g.Trips), g.SaleRefs)
	}

	allocs := append([]model.Allocation(nil), res.Allocations...)
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].TripID < allocs[j].TripID })

	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TRIP\tSTATUS\tVAN\tORDER\tVEHICLE\tPRICE")
	for _, a := range allocs {
		price := res.Pricing[a.TripID]
		if a.Status == model.StatusAllocated {
			fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%s\t%.2f\n", a.TripID, a.Status, a.Van, a.Order, price.Vehicle, price.Price)
		} else {
			fmt.Fprintf(w, "%d\t%s\t-\t-\t%s\t%.2f\n", a.TripID, a.Status, price.Vehicle, price.Price)
		}
	}
	w.Flush()
}
