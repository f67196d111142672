package model

import (
	"strings"
	"time"
)

// Group aggregates two or more compatible trips that travel together.
type Group struct {
	ID          string `json:"id"`
	Description string `json:"description"` // representative, from the base trip
	Pickup      string `json:"pickup,omitempty"`
	Trips       []Trip `json:"trips"`
	Pax         int    `json:"pax"`
	SaleRefs    string `json:"sale_refs,omitempty"`
	Priority    bool   `json:"priority"`
	Rule        string `json:"rule,omitempty"` // compatibility rule that formed the group
}

// Recalculate refreshes the aggregate fields from the current membership:
// total passenger count and the " / "-joined list of unique sale references
// in first-seen order. The representative description and pickup stay bound
// to the first member.
func (g *Group) Recalculate() {
	g.Pax = 0
	seen := make(map[string]bool)
	var refs []string
	for _, t := range g.Trips {
		g.Pax += t.Pax
		if t.SaleRef != "" && !seen[t.SaleRef] {
			seen[t.SaleRef] = true
			refs = append(refs, t.SaleRef)
		}
	}
	g.SaleRefs = strings.Join(refs, " / ")
	if len(g.Trips) > 0 {
		g.Description = g.Trips[0].Description
		g.Pickup = g.Trips[0].Pickup
	}
}

// Time returns the earliest scheduled time among the members, or the zero
// time when no member is scheduled.
func (g Group) Time() time.Time {
	var earliest time.Time
	for _, t := range g.Trips {
		if !t.HasTime() {
			continue
		}
		if earliest.IsZero() || t.Time.Before(earliest) {
			earliest = t.Time
		}
	}
	return earliest
}

// Viable reports whether the group still qualifies as a group. Membership
// below two degenerates back to individual trips.
func (g Group) Viable() bool { return len(g.Trips) >= 2 }
