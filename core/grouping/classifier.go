// Package grouping merges compatible trips into shared groups ahead of van
// scheduling.
package grouping

import (
	"regexp"
	"strings"
	"time"

	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

// Rule identifies which compatibility rule matched a pair of trips.
type Rule string

const (
	RuleNone           Rule = ""
	RuleSameName       Rule = "same_name"
	RuleSharedTransfer Rule = "shared_transfer_out"
	RuleTour           Rule = "tour"
)

// guide-on-call phrasings, matched after accent stripping.
var guideRe = regexp.MustCompile(`\+\s*GUIA\b|\bGUIA\s+A\s+DISPOSICAO\b|\+\s*GUIDE\b|\bGUIDE\s+AVAILABLE\b`)

// Classifier decides whether two trips may travel together. Rules are
// evaluated in a fixed order and the first match wins; callers pass the base
// trip first.
type Classifier struct {
	norm *normalize.Normalizer

	// MergeWindow is the maximum clock-time difference between compatible
	// trips.
	MergeWindow time.Duration
}

// NewClassifier creates a Classifier with the standard 40-minute window.
func NewClassifier(norm *normalize.Normalizer) *Classifier {
	return &Classifier{norm: norm, MergeWindow: 40 * time.Minute}
}

// Match returns the rule under which a and b are compatible, or RuleNone.
// Trips without a scheduled time never match: their time difference is
// treated as infinite.
func (c *Classifier) Match(a, b model.Trip) Rule {
	if !a.HasTime() || !b.HasTime() {
		return RuleNone
	}
	diff := minutesApart(a, b)
	if diff > int(c.MergeWindow.Minutes()) {
		return RuleNone
	}

	na := c.norm.Normalize(a.Description)
	nb := c.norm.Normalize(b.Description)
	if na == nb {
		return RuleSameName
	}
	if c.sharedTransferOut(na, nb) && samePickup(a.Pickup, b.Pickup) {
		return RuleSharedTransfer
	}
	if isTourLike(na) && isTourLike(nb) {
		return RuleTour
	}
	return RuleNone
}

// Compatible reports whether any rule matches the pair. The combined-PAX
// gate for shared transfers is the engine's concern, not the classifier's.
func (c *Classifier) Compatible(a, b model.Trip) bool {
	return c.Match(a, b) != RuleNone
}

func (c *Classifier) sharedTransferOut(na, nb string) bool {
	return hasTransferOutTokens(na) && hasTransferOutTokens(nb)
}

func hasTransferOutTokens(desc string) bool {
	d := normalize.StripAccents(desc)
	return strings.Contains(d, "TRANSFER") &&
		strings.Contains(d, "OUT") &&
		strings.Contains(d, "REGULAR")
}

func isTourLike(desc string) bool {
	d := normalize.StripAccents(desc)
	return strings.Contains(d, "TOUR") || guideRe.MatchString(d)
}

// samePickup compares pickup locations exactly after case and accent
// normalization. Empty pickups never match.
func samePickup(a, b string) bool {
	pa := normalize.StripAccents(strings.ToUpper(strings.TrimSpace(a)))
	pb := normalize.StripAccents(strings.ToUpper(strings.TrimSpace(b)))
	return pa != "" && pa == pb
}

func minutesApart(a, b model.Trip) int {
	diff := a.MinutesOfDay() - b.MinutesOfDay()
	if diff < 0 {
		diff = -diff
	}
	return diff
}
