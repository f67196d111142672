package model

import "time"

// Candidate is the transient scheduling unit: either a whole group or a lone
// trip. Candidates exist only for the duration of one planning pass.
type Candidate struct {
	Group *Group // set when the candidate is a merged group
	Trip  *Trip  // set when the candidate is a lone trip

	Pax         int
	Time        time.Time // earliest member time; zero means unschedulable
	Description string
	Client      string
	Score       int
}

// NewGroupCandidate builds a candidate from a group.
func NewGroupCandidate(g *Group) Candidate {
	return Candidate{
		Group:       g,
		Pax:         g.Pax,
		Time:        g.Time(),
		Description: g.Description,
		Client:      firstClient(g.Trips),
	}
}

// NewTripCandidate builds a candidate from a lone trip.
func NewTripCandidate(t *Trip) Candidate {
	return Candidate{
		Trip:        t,
		Pax:         t.Pax,
		Time:        t.Time,
		Description: t.Description,
		Client:      t.Client,
	}
}

// HasTime reports whether the candidate can be placed on a timeline.
func (c Candidate) HasTime() bool { return !c.Time.IsZero() }

// Members returns the trips the candidate stands for.
func (c Candidate) Members() []Trip {
	if c.Group != nil {
		return c.Group.Trips
	}
	if c.Trip != nil {
		return []Trip{*c.Trip}
	}
	return nil
}

func firstClient(trips []Trip) string {
	for _, t := range trips {
		if t.Client != "" {
			return t.Client
		}
	}
	return ""
}
