package normalize

import "testing"

func TestNormalizeStatus(t *testing.T) {
	cases := map[string]string{
		"approved by admin":         StatusApproved,
		"APPROVE":                   StatusApproved,
		"denied":                    StatusDenied,
		"rejected by officer":       StatusDenied,
		"Pending Review by Officer": StatusUnderReview,
		"under review":              StatusUnderReview,
		"completed":                 StatusCompleted,
		"active permit":             StatusActive,
		"scheduled for visit":       StatusScheduled,
		"pending":                   StatusPending,
		"":                          StatusPending,
		"   ":                       StatusPending,
		"on hold":                   "On Hold",
	}
	for input, want := range cases {
		if got := NormalizeStatus(input); got != want {
			t.Errorf("NormalizeStatus(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestNormalizeApplicationType(t *testing.T) {
	cases := map[string]string{
		"CTPO":              "CTPO",
		"pltp":              "PLTP",
		"SPLT":              "SPLT",
		"permit to cut":     "Permit to Cut",
		"chainsaw":          "Chainsaw",
		"Chainsaw Permit":   "Chainsaw",
		"tree cutting permit": "Permit to Cut",
		"CTT":               "CTT",
		"something else":    TypeOther,
		"":                  TypeOther,
	}
	for input, want := range cases {
		if got := NormalizeApplicationType(input); got != want {
			t.Errorf("NormalizeApplicationType(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"on hold":       "On Hold",
		"FOR SIGNATURE": "For Signature",
		"  spaced  ":    "Spaced",
	}
	for input, want := range cases {
		if got := TitleCase(input); got != want {
			t.Errorf("TitleCase(%q) = %q, want %q", input, got, want)
		}
	}
}
