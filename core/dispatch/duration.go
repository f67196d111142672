package dispatch

import (
	"regexp"
	"strconv"
	"time"

	"github.com/vanrota/vanrota/core/normalize"
)

// durationPatterns map explicit duration phrasings to a captured hour count.
// Patterns are tried in order against the upper-cased, accent-stripped
// description; the first capture wins.
var durationPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(\d{1,2})\s*HORAS?\b`),
	regexp.MustCompile(`\b(\d{1,2})\s*HRS?\b`),
	regexp.MustCompile(`\b(\d{1,2})\s*HOURS?\b`),
	regexp.MustCompile(`\b(\d{1,2})\s*H\b`),
}

var guideOnCallRe = regexp.MustCompile(`\+\s*GUIA\b|\bGUIA\s+A\s+DISPOSICAO\b|\+\s*GUIDE\b|\bGUIDE\s+AVAILABLE\b`)

// ServiceDuration extracts the occupancy duration encoded in a description
// ("08 HORAS", "4 HRS", ...). Descriptions without a duration phrase fall
// back to def.
func ServiceDuration(norm *normalize.Normalizer, description string, def time.Duration) time.Duration {
	desc := normalize.StripAccents(norm.Normalize(description))
	for _, re := range durationPatterns {
		m := re.FindStringSubmatch(desc)
		if m == nil {
			continue
		}
		hours, err := strconv.Atoi(m[1])
		if err != nil || hours <= 0 {
			continue
		}
		return time.Duration(hours) * time.Hour
	}
	return def
}
