package reconcile

import (
	"testing"
)

func testMatcher() *Matcher {
	return NewMatcher(
		[]string{"पुणे", "सोलापूर", "सातारा", "मुंबई"},
		map[string]string{
			"pune":    "पुणे",
			"solapur": "सोलापूर",
			"satara":  "सातारा",
			"mumbai":  "मुंबई",
			"nashik":  "नाशिक",
		},
		[]string{"maharashtra", "maharastra", "mh"},
	)
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Navi Mumbai", "navimumbai"},
		{"PUNE-Manjri", "punemanjri"},
		{"satara", "satara"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.in); got != tt.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMatcher_MatchLocal(t *testing.T) {
	m := testMatcher()

	// Sub-market qualifiers still hit the parent market.
	got, ok := m.MatchLocal("पुणे- मंडई")
	if !ok || got != "पुणे" {
		t.Errorf("MatchLocal(पुणे- मंडई) = %q/%v, want पुणे/true", got, ok)
	}

	if _, ok := m.MatchLocal("अमरावती"); ok {
		t.Error("MatchLocal matched a market outside the canonical list")
	}
}

func TestMatcher_MatchLocal_FirstInConfiguredOrderWins(t *testing.T) {
	m := NewMatcher([]string{"पुणे", "पुणे- मंडई"}, nil, []string{"maharashtra"})

	got, ok := m.MatchLocal("पुणे- मंडई")
	if !ok || got != "पुणे" {
		t.Errorf("MatchLocal = %q/%v, want पुणे/true (first in configured order)", got, ok)
	}
}

func TestMatcher_Translate(t *testing.T) {
	m := testMatcher()

	if got := m.Translate("Nashik"); got != "नाशिक" {
		t.Errorf("Translate(Nashik) = %q, want नाशिक", got)
	}

	// Token containment handles qualified names.
	if got := m.Translate("Navi Mumbai"); got != "मुंबई" {
		t.Errorf("Translate(Navi Mumbai) = %q, want मुंबई", got)
	}

	// An alias miss falls back to the literal name.
	if got := m.Translate("Kolhapur"); got != "Kolhapur" {
		t.Errorf("Translate(Kolhapur) = %q, want Kolhapur", got)
	}
}

func TestMatcher_MatchMissing(t *testing.T) {
	m := testMatcher()

	missing := []string{"सातारा", "मुंबई"}

	got, ok := m.MatchMissing("Satara", missing)
	if !ok || got != "सातारा" {
		t.Errorf("MatchMissing(Satara) = %q/%v, want सातारा/true", got, ok)
	}

	// A market already satisfied by the primary source never matches.
	if _, ok := m.MatchMissing("Pune", missing); ok {
		t.Error("MatchMissing matched a market outside the missing set")
	}
}

func TestMatcher_InRegion(t *testing.T) {
	m := testMatcher()

	tests := []struct {
		state string
		want  bool
	}{
		{"Maharashtra", true},
		{"MAHARASTRA", true},
		{"mh", true},
		{"Madhya Pradesh", false},
		{"Karnataka", false},
	}

	for _, tt := range tests {
		if got := m.InRegion(tt.state); got != tt.want {
			t.Errorf("InRegion(%q) = %v, want %v", tt.state, got, tt.want)
		}
	}
}
