package dispatch

import (
	"sort"
	"time"

	"github.com/vanrota/vanrota/core/logger"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

type interval struct {
	start int // minutes since midnight, inclusive
	end   int // exclusive
}

// Timeline is the ordered set of intervals committed to one van during a
// planning pass. Intervals never overlap and keep the minimum gap on both
// sides.
type Timeline struct {
	intervals []interval
}

// Fits reports whether [start, end) can join the timeline with the given
// minimum gap in minutes to its neighbours.
func (t *Timeline) Fits(start, end, gap int) bool {
	for _, iv := range t.intervals {
		if start < iv.end && iv.start < end {
			return false
		}
		if iv.end <= start && start-iv.end < gap {
			return false
		}
		if iv.start >= end && iv.start-end < gap {
			return false
		}
	}
	return true
}

// Insert adds the interval and returns its 1-based order: the number of
// committed intervals starting at or before it.
func (t *Timeline) Insert(start, end int) int {
	t.intervals = append(t.intervals, interval{start: start, end: end})
	sort.Slice(t.intervals, func(i, j int) bool {
		return t.intervals[i].start < t.intervals[j].start
	})
	order := 0
	for _, iv := range t.intervals {
		if iv.start <= start {
			order++
		}
	}
	return order
}

// Intervals returns the committed (start, end) minute pairs in order.
func (t *Timeline) Intervals() [][2]int {
	out := make([][2]int, len(t.intervals))
	for i, iv := range t.intervals {
		out[i] = [2]int{iv.start, iv.end}
	}
	return out
}

// Scheduler greedily assigns ranked candidates to van timelines. It is a
// packing heuristic, not an optimal solver: a candidate rejected by both
// vans stays unallocated and is never revisited except by the small-pax
// fill round.
type Scheduler struct {
	norm *normalize.Normalizer
	log  logger.Logger

	Vans            int
	MinGap          time.Duration
	DefaultDuration time.Duration

	// SmallPaxMax bounds the candidates eligible for the gap-fill round.
	SmallPaxMax int
}

// NewScheduler creates a Scheduler for two vans with the standard
// three-hour gap and default duration.
func NewScheduler(norm *normalize.Normalizer, log logger.Logger) *Scheduler {
	return &Scheduler{
		norm:            norm,
		log:             log,
		Vans:            2,
		MinGap:          180 * time.Minute,
		DefaultDuration: 180 * time.Minute,
		SmallPaxMax:     3,
	}
}

type placement struct {
	candidate model.Candidate
	allocated bool
	van       int
	order     int
}

// Schedule walks the priority candidates, then the ordinary ones, then runs
// a second round over still-unallocated small candidates (priority first) to
// fill timetable gaps. It returns one allocation per underlying trip; group
// members share van and order.
func (s *Scheduler) Schedule(priority, ordinary []model.Candidate) []model.Allocation {
	timelines := make([]*Timeline, s.Vans)
	for i := range timelines {
		timelines[i] = &Timeline{}
	}

	placements := make([]*placement, 0, len(priority)+len(ordinary))
	for _, c := range priority {
		placements = append(placements, &placement{candidate: c})
	}
	for _, c := range ordinary {
		placements = append(placements, &placement{candidate: c})
	}

	for _, p := range placements {
		s.try(p, timelines)
	}
	// Gap-fill round: small parties can still squeeze into leftover slots.
	for _, p := range placements {
		if !p.allocated && p.candidate.Pax >= 1 && p.candidate.Pax <= s.SmallPaxMax {
			s.try(p, timelines)
		}
	}

	var allocations []model.Allocation
	for _, p := range placements {
		for _, trip := range p.candidate.Members() {
			a := model.Allocation{TripID: trip.ID, Status: model.StatusUnallocated}
			if p.allocated {
				a.Van = p.van
				a.Order = p.order
				a.Status = model.StatusAllocated
			}
			allocations = append(allocations, a)
		}
	}
	return allocations
}

func (s *Scheduler) try(p *placement, timelines []*Timeline) {
	c := p.candidate
	if !c.HasTime() {
		return
	}
	dur := ServiceDuration(s.norm, c.Description, s.DefaultDuration)
	start := c.Time.Hour()*60 + c.Time.Minute()
	end := start + int(dur.Minutes())
	gap := int(s.MinGap.Minutes())

	for van := 0; van < len(timelines); van++ {
		if !timelines[van].Fits(start, end, gap) {
			continue
		}
		p.van = van + 1
		p.order = timelines[van].Insert(start, end)
		p.allocated = true
		s.log.Debugw("candidate allocated", map[string]any{
			"description": c.Description,
			"van":         p.van,
			"order":       p.order,
			"start":       start,
			"minutes":     end - start,
		})
		return
	}
}
