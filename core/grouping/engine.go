package grouping

import (
	"sort"

	"github.com/google/uuid"

	"github.com/vanrota/vanrota/core/logger"
	"github.com/vanrota/vanrota/core/model"
)

// Engine clusters a day's trips into groups using the classifier. Grouping
// is greedy and order-dependent: trips are visited in the order produced by
// SortForGrouping and a trip belongs to the first base that claims it.
type Engine struct {
	classifier *Classifier
	log        logger.Logger

	// MinSharedPax gates shared-transfer groups: the combined passenger
	// count of the whole emerging group must reach this value or no group
	// is formed at all.
	MinSharedPax int
}

// NewEngine creates an Engine with the standard minimum of four shared
// passengers.
func NewEngine(classifier *Classifier, log logger.Logger) *Engine {
	return &Engine{classifier: classifier, log: log, MinSharedPax: 4}
}

// SortForGrouping returns the trips in the documented scan order: scheduled
// time ascending, unscheduled trips last, original position breaking ties.
// The input slice is not modified.
func SortForGrouping(trips []model.Trip) []model.Trip {
	sorted := make([]model.Trip, len(trips))
	copy(sorted, trips)
	order := make(map[int]int, len(trips))
	for i, t := range trips {
		order[t.ID] = i
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.HasTime() != b.HasTime() {
			return a.HasTime()
		}
		if a.HasTime() && !a.Time.Equal(b.Time) {
			return a.Time.Before(b.Time)
		}
		return order[a.ID] < order[b.ID]
	})
	return sorted
}

// Group partitions the trips into groups and ungrouped singles. Running the
// engine again over its own singles yields no new groups.
func (e *Engine) Group(trips []model.Trip) ([]model.Group, []model.Trip) {
	ordered := SortForGrouping(trips)
	claimed := make(map[int]bool, len(ordered))

	var groups []model.Group
	for i, base := range ordered {
		if claimed[base.ID] {
			continue
		}

		var (
			members  []model.Trip
			baseRule Rule
		)
		for j, other := range ordered {
			if j == i || claimed[other.ID] {
				continue
			}
			rule := e.classifier.Match(base, other)
			if rule == RuleNone {
				continue
			}
			if baseRule == RuleNone {
				baseRule = rule
			}
			if rule != baseRule {
				continue
			}
			members = append(members, other)
		}
		if len(members) == 0 {
			continue
		}

		if baseRule == RuleSharedTransfer {
			total := base.Pax
			for _, m := range members {
				total += m.Pax
			}
			if total < e.MinSharedPax {
				// All-or-nothing: the candidates stay available for a
				// later base instead of forming an undersized group.
				e.log.Debugf("abandoning shared-transfer group for trip %d: %d pax below minimum", base.ID, total)
				continue
			}
		}

		g := model.Group{
			ID:    uuid.NewString(),
			Rule:  string(baseRule),
			Trips: append([]model.Trip{base}, members...),
		}
		g.Recalculate()
		groups = append(groups, g)
		for _, m := range g.Trips {
			claimed[m.ID] = true
		}
		e.log.Debugw("group formed", map[string]any{
			"group_id": g.ID,
			"rule":     g.Rule,
			"trips":    len(g.Trips),
			"pax":      g.Pax,
		})
	}

	var singles []model.Trip
	for _, t := range ordered {
		if !claimed[t.ID] {
			singles = append(singles, t)
		}
	}
	return groups, singles
}
