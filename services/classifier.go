package services

import "strings"

// propertyKeywords maps each selectable property type label to the
// lowercase substrings that identify it in portal free text. The variants
// cover hyphenation and umlaut/ASCII spellings seen on the portal.
var propertyKeywords = map[string][]string{
	"Reihenhaus":       {"reihenhaus"},
	"Doppelhaushälfte": {"doppelhaushälfte", "doppelhaushaelfte", "doppelhaus"},
	"Einfamilienhaus":  {"einfamilienhaus"},
	"Wohn- und Geschäftshaus": {
		"wohn- und geschäftshaus",
		"wohn- und geschaeftshaus",
		"wohn-und geschäftshaus",
		"wohn-und geschaeftshaus",
	},
	"Gewerbeeinheit": {"gewerbeeinheit", "gewerbefläche", "gewerbeobjekt"},
}

// MatchPropertyType returns the first candidate label whose keyword set has
// a substring hit in text. Candidate order is caller-significant: first
// match wins, not best match. Text must already be lowercased.
//
// An empty candidate list means no property-type filtering at all: the
// label is empty and ok is true. A non-empty list with no hit returns
// ok=false, which excludes the entry.
func MatchPropertyType(text string, candidates []string) (string, bool) {
	if len(candidates) == 0 {
		return "", true
	}

	for _, label := range candidates {
		for _, keyword := range propertyKeywords[label] {
			if strings.Contains(text, keyword) {
				return label, true
			}
		}
	}
	return "", false
}

// MatchAuctionType reports whether an entry with the given raw auction-type
// string passes the caller's allow-list. An empty allow-list or an empty
// auction-type string always passes; otherwise the string must exactly
// match one allow-list element.
func MatchAuctionType(auctionType string, allowList []string) bool {
	if len(allowList) == 0 || auctionType == "" {
		return true
	}
	for _, allowed := range allowList {
		if auctionType == allowed {
			return true
		}
	}
	return false
}
