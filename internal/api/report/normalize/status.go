package normalize

import (
	"strings"
	"unicode"
)

// Canonical status labels.
const (
	StatusPending     = "Pending"
	StatusApproved    = "Approved"
	StatusDenied      = "Denied"
	StatusUnderReview = "Under Review"
	StatusCompleted   = "Completed"
	StatusActive      = "Active"
	StatusScheduled   = "Scheduled"
)

// statusRules classify a lower-cased raw status by substring containment.
// Order matters: "pending review by officer" must land on Under Review,
// so "review" is checked before "pending".
var statusRules = []struct {
	substr string
	label  string
}{
	{"approve", StatusApproved},
	{"deny", StatusDenied},
	{"reject", StatusDenied},
	{"review", StatusUnderReview},
	{"complete", StatusCompleted},
	{"active", StatusActive},
	{"schedule", StatusScheduled},
	{"pending", StatusPending},
}

// NormalizeStatus maps a raw status string onto the canonical label set.
// Unmatched values are title-cased, empty input means Pending.
func NormalizeStatus(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return StatusPending
	}
	for _, rule := range statusRules {
		if strings.Contains(cleaned, rule.substr) {
			return rule.label
		}
	}
	return TitleCase(cleaned)
}

// Canonical application type labels.
var applicationTypes = []string{
	"CTPO",
	"PLTP",
	"SPLT",
	"Permit to Cut",
	"Chainsaw",
	"CTT",
}

const TypeOther = "OTHER"

// NormalizeApplicationType maps a raw permit type onto the fixed label
// set, falling back to OTHER for anything unrecognized.
func NormalizeApplicationType(raw string) string {
	cleaned := strings.ToLower(strings.TrimSpace(raw))
	if cleaned == "" {
		return TypeOther
	}
	for _, label := range applicationTypes {
		if cleaned == strings.ToLower(label) {
			return label
		}
	}
	// Registration forms sometimes carry the long form of a known type.
	switch {
	case strings.Contains(cleaned, "chainsaw"):
		return "Chainsaw"
	case strings.Contains(cleaned, "cut"):
		return "Permit to Cut"
	}
	return TypeOther
}

// TitleCase upper-cases the first letter of each space-separated word and
// lower-cases the rest.
func TitleCase(s string) string {
	words := strings.Fields(strings.ToLower(strings.TrimSpace(s)))
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
