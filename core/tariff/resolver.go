package tariff

import (
	"sort"
	"strconv"
	"strings"

	"github.com/vanrota/vanrota/core/logger"
	"github.com/vanrota/vanrota/core/model"
	"github.com/vanrota/vanrota/core/normalize"
)

// Source labels reported with each resolution.
const (
	SourcePrimary   = "primary"
	SourceSecondary = "secondary"
	SourceDefault   = "default"
)

// Resolution is the pricing outcome for one service.
type Resolution struct {
	Vehicle    model.VehicleClass `json:"vehicle"`
	Price      float64            `json:"price"`
	Source     string             `json:"source"`
	MatchedKey string             `json:"matched_key,omitempty"`
	Similarity float64            `json:"similarity,omitempty"`
}

type resolveKey struct {
	description string
	pax         int
	saleRef     string
}

// Resolver fuzzily matches service descriptions against the primary and
// secondary tariff tables. Resolution never fails: a miss on both tables
// degrades to the fixed default price list. Results are cached per call
// signature for the lifetime of the resolver (one planning run).
type Resolver struct {
	norm      *normalize.Normalizer
	primary   *Table
	secondary *Table
	log       logger.Logger

	// Similarity thresholds. PrimarySearch bounds the candidate scan,
	// PrimaryAccept is the acceptance bar for a primary match.
	PrimarySearch   float64
	PrimaryAccept   float64
	SecondaryAccept float64

	cache map[resolveKey]Resolution
}

// NewResolver creates a Resolver with the standard thresholds.
func NewResolver(norm *normalize.Normalizer, primary, secondary *Table, log logger.Logger) *Resolver {
	return &Resolver{
		norm:            norm,
		primary:         primary,
		secondary:       secondary,
		log:             log,
		PrimarySearch:   0.4,
		PrimaryAccept:   0.6,
		SecondaryAccept: 0.3,
		cache:           make(map[resolveKey]Resolution),
	}
}

// Resolve returns the vehicle class and price for a service. The vehicle is
// always sized from the passenger count; the price comes from the primary
// table, then the secondary table scaled by the sale-count multiplier, then
// the fixed defaults.
func (r *Resolver) Resolve(description string, pax int, saleRef string) Resolution {
	key := resolveKey{description, pax, saleRef}
	if res, ok := r.cache[key]; ok {
		return res
	}

	vehicle := model.VehicleForPax(pax)
	desc := r.norm.Normalize(description)
	// Variants only widen the primary search; the secondary table is keyed
	// by full service phrases and is matched against the description alone.
	variants := r.variants(desc)

	res := Resolution{Vehicle: vehicle, Source: SourceDefault, Price: DefaultPrices[vehicle]}
	if entry, matched, score, ok := r.bestMatch(r.primary, variants, r.PrimarySearch); ok && score > r.PrimaryAccept {
		price, found := entry.PriceFor(vehicle)
		if !found {
			price = DefaultPrices[vehicle]
		}
		res = Resolution{Vehicle: vehicle, Price: price, Source: SourcePrimary, MatchedKey: matched, Similarity: score}
	} else if entry, matched, score, ok := r.bestMatch(r.secondary, []string{desc}, r.SecondaryAccept); ok {
		price := entry.Flat
		if price == 0 {
			if p, pok := entry.PriceFor(vehicle); pok {
				price = p
			} else {
				price = DefaultPrices[vehicle]
			}
		}
		res = Resolution{Vehicle: vehicle, Price: price * float64(saleMultiplier(saleRef)), Source: SourceSecondary, MatchedKey: matched, Similarity: score}
	}

	r.log.Debugw("tariff resolved", map[string]any{
		"description": description,
		"source":      res.Source,
		"matched_key": res.MatchedKey,
		"similarity":  res.Similarity,
		"price":       res.Price,
	})
	r.cache[key] = res
	return res
}

// bestMatch scans the table for the entry with the highest blended
// similarity against any description variant, rejecting scores below the
// threshold. Keys are visited in sorted order so ties resolve the same way
// on every run.
func (r *Resolver) bestMatch(table *Table, variants []string, threshold float64) (Entry, string, float64, bool) {
	if table == nil {
		return Entry{}, "", 0, false
	}
	keys := make([]string, 0, len(table.Entries))
	for k := range table.Entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var (
		best      Entry
		bestKey   string
		bestScore float64
		found     bool
	)
	for _, k := range keys {
		normKey := r.norm.Normalize(k)
		for _, v := range variants {
			score := Similarity(v, normKey)
			if score >= threshold && score > bestScore {
				best = table.Entries[k]
				bestKey = k
				bestScore = score
				found = true
			}
		}
	}
	return best, bestKey, bestScore, found
}

// abbreviations swapped in both directions when generating variants.
var abbreviations = [][2]string{
	{"AEROPORTO", "APT"},
	{"AIRPORT", "APT"},
	{"HOTEL", "HTL"},
	{"CENTRO", "CENTRO CIDADE"},
}

var transferSynonyms = []string{"TRANSFER", "TRASLADO"}

// variants enlarges the match surface for a normalized description: the
// original, transfer-synonym prefixes and suffixes, and abbreviation swaps.
func (r *Resolver) variants(desc string) []string {
	seen := map[string]bool{desc: true}
	out := []string{desc}
	add := func(v string) {
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}

	for _, syn := range transferSynonyms {
		add(syn + " " + desc)
		add(desc + " " + syn)
	}
	for _, pair := range abbreviations {
		if strings.Contains(desc, pair[0]) {
			add(strings.ReplaceAll(desc, pair[0], pair[1]))
		}
		if strings.Contains(desc, pair[1]) {
			add(strings.ReplaceAll(desc, pair[1], pair[0]))
		}
	}
	return out
}

// saleMultiplier parses the sale reference as a count. Anything that does
// not parse to a positive integer counts as one sale.
func saleMultiplier(saleRef string) int {
	n, err := strconv.Atoi(strings.TrimSpace(saleRef))
	if err != nil || n < 1 {
		return 1
	}
	return n
}
