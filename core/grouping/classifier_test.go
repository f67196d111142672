package grouping

import (
	"testing"

	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

func at(t *testing.T, clock string) (out model.Trip) {
	t.Helper()
	tm, err := model.ParseClock(clock)
	if err != nil {
		t.Fatalf("parse clock: %v", err)
	}
	out.Time = tm
	return out
}

func trip(t *testing.T, id int, desc, clock, pickup string, pax int) model.Trip {
	t.Helper()
	tr := at(t, clock)
	tr.ID = id
	tr.Description = desc
	tr.Pickup = pickup
	tr.Pax = pax
	return tr
}

func TestClassifierSameName(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "Tour Regular Rio", "08:00", "", 2)
	b := trip(t, 2, "TOUR  REGULAR RIO", "08:40", "", 3)
	if got := c.Match(a, b); got != RuleSameName {
		t.Fatalf("expected same-name rule got %q", got)
	}
}

func TestClassifierWindowExceeded(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "Tour Regular Rio", "08:00", "", 2)
	b := trip(t, 2, "Tour Regular Rio", "08:41", "", 3)
	if c.Compatible(a, b) {
		t.Fatalf("41 minutes apart should not be compatible")
	}
}

func TestClassifierMissingTime(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "Tour Regular Rio", "08:00", "", 2)
	b := model.Trip{ID: 2, Description: "Tour Regular Rio", Pax: 3}
	if c.Compatible(a, b) {
		t.Fatalf("missing time means infinite difference")
	}
	if c.Compatible(b, a) {
		t.Fatalf("missing time on the base side too")
	}
}

func TestClassifierSharedTransferOut(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "Transfer Out Regular p/ GIG", "10:00", "Hotel Fasano", 1)
	b := trip(t, 2, "Transfer Out Regular p/ SDU", "10:25", "HOTEL FASANO", 3)
	if got := c.Match(a, b); got != RuleSharedTransfer {
		t.Fatalf("expected shared-transfer rule got %q", got)
	}

	diffPickup := trip(t, 3, "Transfer Out Regular p/ GIG", "10:10", "Hotel Copacabana", 1)
	if c.Compatible(a, diffPickup) {
		t.Fatalf("different pickups must not merge")
	}

	noPickup := trip(t, 4, "Transfer Out Regular p/ GIG", "10:10", "", 1)
	if c.Compatible(a, noPickup) {
		t.Fatalf("empty pickup must not merge")
	}
}

func TestClassifierPickupAccentInsensitive(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "Transfer Out Regular GIG", "10:00", "Hotel São Conrado", 2)
	b := trip(t, 2, "Transfer Out Regular SDU", "10:20", "hotel sao conrado", 2)
	if got := c.Match(a, b); got != RuleSharedTransfer {
		t.Fatalf("accented pickup variants should match, got %q", got)
	}
}

func TestClassifierTourRule(t *testing.T) {
	c := NewClassifier(normalize.New())
	a := trip(t, 1, "City Tour Completo", "09:00", "", 2)
	b := trip(t, 2, "Passeio + Guia", "09:30", "", 3)
	if got := c.Match(a, b); got != RuleTour {
		t.Fatalf("expected tour rule got %q", got)
	}

	guided := trip(t, 3, "Passeio com Guia à Disposição", "09:15", "", 2)
	if got := c.Match(a, guided); got != RuleTour {
		t.Fatalf("guide-on-call phrasing should be tour-like, got %q", got)
	}

	plain := trip(t, 4, "Transfer In Regular", "09:10", "", 2)
	if c.Match(a, plain) == RuleTour {
		t.Fatalf("plain transfer is not tour-like")
	}
}
