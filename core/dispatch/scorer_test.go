package dispatch

import (
	"testing"
	"time"

	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

func clock(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := model.ParseClock(s)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	return tm
}

func candidate(desc, client string, pax int, tm time.Time) model.Candidate {
	return model.Candidate{Description: desc, Client: client, Pax: pax, Time: tm}
}

func TestScorerVIPTransfer(t *testing.T) {
	s := NewScorer(normalize.New())
	c := candidate("Transfer In Regular", "Blumar Turismo", 2, time.Time{})
	if got := s.Score(c); got != 102 {
		t.Fatalf("expected 100 VIP + 2 pax = 102, got %d", got)
	}

	nonTransfer := candidate("City Tour", "Blumar Turismo", 2, time.Time{})
	if got := s.bonus(nonTransfer); got != tourBonus {
		t.Fatalf("VIP bonus requires a transfer service, got %d", got)
	}
}

func TestScorerDestinationAndTour(t *testing.T) {
	s := NewScorer(normalize.New())
	c := candidate("Tour Búzios 08 horas", "", 3, time.Time{})
	// Destination (+50) and high-value tour (+75) stack, plus 3 pax.
	if got := s.Score(c); got != 128 {
		t.Fatalf("expected 128 got %d", got)
	}

	guide := candidate("Passeio + Guia", "", 1, time.Time{})
	if got := s.bonus(guide); got != tourBonus {
		t.Fatalf("guide-on-call should take the tour bonus, got %d", got)
	}
}

func TestScorerOrdinary(t *testing.T) {
	s := NewScorer(normalize.New())
	c := candidate("Transfer In Regular", "Cliente Comum", 5, time.Time{})
	if got := s.bonus(c); got != 0 {
		t.Fatalf("expected no bonus got %d", got)
	}
}

func TestSplitOrdering(t *testing.T) {
	s := NewScorer(normalize.New())
	vip := candidate("Transfer Out Regular", "Abreu Viagens", 2, clock(t, "14:00"))
	tour := candidate("Tour Petropolis", "", 4, clock(t, "10:00"))
	early := candidate("Transfer In Regular", "X", 1, clock(t, "07:00"))
	late := candidate("Transfer In Regular", "Y", 1, clock(t, "18:00"))
	noTime := candidate("Transfer In Regular", "Z", 1, time.Time{})

	priority, ordinary := s.Split([]model.Candidate{late, tour, noTime, vip, early})
	if len(priority) != 2 {
		t.Fatalf("expected 2 priority candidates got %d", len(priority))
	}
	if priority[0].Client != "Abreu Viagens" {
		t.Fatalf("VIP (102) should outrank tour (79), got %q first", priority[0].Client)
	}
	if len(ordinary) != 3 {
		t.Fatalf("expected 3 ordinary candidates got %d", len(ordinary))
	}
	if ordinary[0].Client != "X" || ordinary[1].Client != "Y" {
		t.Fatalf("ordinary must sort by time ascending")
	}
	if ordinary[2].HasTime() {
		t.Fatalf("unscheduled candidate must sort last")
	}
}

func TestSplitMarksGroupPriority(t *testing.T) {
	s := NewScorer(normalize.New())
	g := &model.Group{Description: "Tour Regular Rio", Pax: 5}
	c := model.NewGroupCandidate(g)
	s.Split([]model.Candidate{c})
	if !g.Priority {
		t.Fatalf("priority flag should propagate to the group")
	}
}
