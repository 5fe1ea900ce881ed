package service

import (
	"regexp"
	"strings"

	"market-finder/domain"
)

var (
	whitespaceRun = regexp.MustCompile(`\s+`)
	nonSlugChars  = regexp.MustCompile(`[^\w\-]+`)
)

// Slugify turns a label such as "Business Owners Policy" into an anchor
// friendly "business-owners-policy".
func Slugify(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = whitespaceRun.ReplaceAllString(s, "-")
	return nonSlugChars.ReplaceAllString(s, "")
}

// GroupByTag buckets carriers by their first tag, preserving order within
// each bucket. Untagged carriers land in "Other".
func GroupByTag(carriers []domain.Carrier) map[string][]domain.Carrier {
	groups := make(map[string][]domain.Carrier)
	for _, c := range carriers {
		tag := otherTag
		if len(c.Tags) > 0 {
			tag = c.Tags[0]
		}
		groups[tag] = append(groups[tag], c)
	}
	return groups
}
