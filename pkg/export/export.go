package export

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"sort"
	"strconv"

	"github.com/vanrota/vanrota/core/dispatch"
	"github.com/vanrota/vanrota/core/model"
)

// WriteJSON writes the full plan to w in JSON format.
func WriteJSON(w io.Writer, res dispatch.PlanResult) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// WriteCSV writes the allocation schedule to w with one row per trip.
func WriteCSV(w io.Writer, res dispatch.PlanResult) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"trip_id", "status", "van", "order", "vehicle", "price"}); err != nil {
		return err
	}

	allocs := append([]model.Allocation(nil), res.Allocations...)
	sort.Slice(allocs, func(i, j int) bool { return allocs[i].TripID < allocs[j].TripID })

	for _, a := range allocs {
		van, order := "", ""
		if a.Status == model.StatusAllocated {
			van = strconv.Itoa(a.Van)
			order = strconv.Itoa(a.Order)
		}
		price := res.Pricing[a.TripID]
		rec := []string{
			strconv.Itoa(a.TripID),
			string(a.Status),
			van,
			order,
			price.Vehicle.String(),
			strconv.FormatFloat(price.Price, 'f', 2, 64),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
