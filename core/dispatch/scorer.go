package dispatch

import (
	"sort"
	"strings"

	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

// Score bonuses. Passenger count is added on top as a tie-breaker and does
// not by itself make a candidate priority.
const (
	vipBonus         = 100
	destinationBonus = 50
	tourBonus        = 75
)

// Scorer ranks candidates by business priority.
type Scorer struct {
	norm *normalize.Normalizer

	// VIPClients are partner tokens looked up in the client name of
	// transfer services.
	VIPClients []string
	// Destinations are high-value destination tokens looked up in the
	// description.
	Destinations []string
}

// NewScorer creates a Scorer with the standard partner and destination
// vocabulary.
func NewScorer(norm *normalize.Normalizer) *Scorer {
	return &Scorer{
		norm:         norm,
		VIPClients:   []string{"BLUMAR", "ABREU"},
		Destinations: []string{"BUZIOS"},
	}
}

// Score returns the full additive score: priority bonuses plus one point
// per passenger.
func (s *Scorer) Score(c model.Candidate) int {
	return s.bonus(c) + c.Pax
}

// bonus computes the priority bonuses only.
func (s *Scorer) bonus(c model.Candidate) int {
	desc := normalize.StripAccents(s.norm.Normalize(c.Description))
	client := normalize.StripAccents(strings.ToUpper(c.Client))

	score := 0
	if isTransfer(desc) && containsAny(client, s.VIPClients) {
		score += vipBonus
	}
	if containsAny(desc, s.Destinations) {
		score += destinationBonus
	}
	if isHighValueTour(desc) {
		score += tourBonus
	}
	return score
}

// Split scores the candidates and partitions them into priority and
// ordinary sets, each in its scheduling order: priority by score descending,
// ordinary by earliest time ascending with unscheduled candidates last.
func (s *Scorer) Split(candidates []model.Candidate) (priority, ordinary []model.Candidate) {
	for _, c := range candidates {
		b := s.bonus(c)
		c.Score = b + c.Pax
		if b > 0 {
			if c.Group != nil {
				c.Group.Priority = true
			}
			priority = append(priority, c)
		} else {
			ordinary = append(ordinary, c)
		}
	}
	sort.SliceStable(priority, func(i, j int) bool {
		return priority[i].Score > priority[j].Score
	})
	sort.SliceStable(ordinary, func(i, j int) bool {
		a, b := ordinary[i], ordinary[j]
		if a.HasTime() != b.HasTime() {
			return a.HasTime()
		}
		return a.HasTime() && a.Time.Before(b.Time)
	})
	return priority, ordinary
}

func isTransfer(desc string) bool {
	if !strings.Contains(desc, "TRANSFER") && !strings.Contains(desc, "TRASLADO") {
		return false
	}
	return hasWord(desc, "IN") || hasWord(desc, "OUT")
}

func isHighValueTour(desc string) bool {
	return strings.Contains(desc, "TOUR") || guideOnCallRe.MatchString(desc)
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, tok) {
			return true
		}
	}
	return false
}

func hasWord(s, word string) bool {
	for _, w := range strings.Fields(s) {
		if w == word {
			return true
		}
	}
	return false
}
