package domain

import (
	"strings"
	"unicode/utf8"
)

// Distribution channel tags carried by a Carrier.
const (
	TagOnline  = "Online"
	TagOffline = "Offline"
)

// Carrier is an insurer offering one or more lines of business in one or more states.
type Carrier struct {
	ID     string   `json:"id"`
	Name   string   `json:"name"`
	States []string `json:"states"`
	Lines  []string `json:"lines"`
	Tags   []string `json:"tags"`
	Logo   string   `json:"logo,omitempty"`
}

// ServesState reports whether code is one of the carrier's states.
func (c Carrier) ServesState(code string) bool {
	return contains(c.States, code)
}

// OffersLine reports whether lob is one of the carrier's lines.
func (c Carrier) OffersLine(lob string) bool {
	return contains(c.Lines, lob)
}

// HasTag reports whether the carrier carries the given distribution tag.
func (c Carrier) HasTag(tag string) bool {
	return contains(c.Tags, tag)
}

// Initials returns up to three leading letters of the carrier name, used
// as a badge when no logo is available.
func (c Carrier) Initials() string {
	initials := make([]rune, 0, 3)
	for _, word := range strings.Fields(c.Name) {
		if len(initials) == 3 {
			break
		}
		r, _ := utf8.DecodeRuneInString(word)
		initials = append(initials, r)
	}
	return string(initials)
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
