package recipe

import (
	"regexp"
	"sort"
)

// ShopURL is the e-commerce destination every matched keyword links to.
const ShopURL = "https://shop.semercioglu.com/?utm_source=egelibetty&utm_medium=referral&utm_campaign=recipe_link"

// shopKeywords are probed longest-first so "zeytinyağı" wins over the
// "zeytin" prefix it contains.
var shopKeywords = []*regexp.Regexp{
	regexp.MustCompile(`(?i)zeytinyağı`),
	regexp.MustCompile(`(?i)zeytin`),
}

// Segment is a piece of display text; Linked segments should be rendered as
// links to ShopURL.
type Segment struct {
	Text   string `json:"text"`
	Linked bool   `json:"linked"`
}

type span struct{ start, end int }

// LinkShopKeywords splits text into segments, marking every shop keyword
// occurrence as linked. Longer keywords are matched first and shorter ones
// never overlap an existing match, so "zeytinyağı" produces a single linked
// segment rather than a nested "zeytin" one.
func LinkShopKeywords(text string) []Segment {
	var spans []span
	for _, re := range shopKeywords {
		for _, m := range re.FindAllStringIndex(text, -1) {
			if overlapsAny(spans, m[0], m[1]) {
				continue
			}
			spans = append(spans, span{start: m[0], end: m[1]})
		}
	}

	if len(spans) == 0 {
		return []Segment{{Text: text}}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start < spans[j].start })

	var segments []Segment
	last := 0
	for _, s := range spans {
		if s.start > last {
			segments = append(segments, Segment{Text: text[last:s.start]})
		}
		segments = append(segments, Segment{Text: text[s.start:s.end], Linked: true})
		last = s.end
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

func overlapsAny(spans []span, start, end int) bool {
	for _, s := range spans {
		if start < s.end && end > s.start {
			return true
		}
	}
	return false
}
