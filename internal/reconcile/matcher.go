// Package reconcile merges the two price sources into per-crop results.
package reconcile

import (
	"sort"
	"strings"
)

// Matcher resolves raw market names against the configured canonical
// market list and the cross-locale alias table, and classifies a record's
// state as in-region or outstate.
type Matcher struct {
	canonical []string
	// tokens is the alias token list in sorted order so matching is
	// deterministic regardless of config map iteration.
	tokens  []string
	aliases map[string]string
	// byMarket maps a canonical Marathi name back to its alias token.
	byMarket map[string]string
	region   []string
}

// NewMatcher builds a matcher from the ordered canonical market list, the
// token→canonical alias table, and the accepted region spellings.
func NewMatcher(canonical []string, aliases map[string]string, regionNames []string) *Matcher {
	tokens := make([]string, 0, len(aliases))
	byMarket := make(map[string]string, len(aliases))

	for token := range aliases {
		tokens = append(tokens, token)
	}

	sort.Strings(tokens)

	for _, token := range tokens {
		market := aliases[token]
		if _, ok := byMarket[market]; !ok {
			byMarket[market] = token
		}
	}

	region := make([]string, len(regionNames))
	for i, r := range regionNames {
		region[i] = strings.ToLower(r)
	}

	return &Matcher{
		canonical: canonical,
		tokens:    tokens,
		aliases:   aliases,
		byMarket:  byMarket,
		region:    region,
	}
}

// NormalizeName lowercases a raw market name and strips spaces and hyphens,
// the form alias tokens are matched against.
func NormalizeName(name string) string {
	name = strings.ToLower(name)
	name = strings.ReplaceAll(name, " ", "")
	name = strings.ReplaceAll(name, "-", "")

	return name
}

// MatchLocal matches a raw MSAMB market name against the canonical list by
// substring containment, so sub-market qualifiers ("पुणे- मंडई") still hit
// their parent market. The first canonical market in configured order wins.
func (m *Matcher) MatchLocal(rawName string) (string, bool) {
	for _, target := range m.canonical {
		if strings.Contains(rawName, target) {
			return target, true
		}
	}

	return "", false
}

// Translate maps an English market name to its canonical Marathi name via
// the alias table. A raw name containing no alias token is returned
// verbatim, which is how unmapped in-region markets keep their literal name.
func (m *Matcher) Translate(rawName string) string {
	normalized := NormalizeName(rawName)

	for _, token := range m.tokens {
		if strings.Contains(normalized, token) {
			return m.aliases[token]
		}
	}

	return rawName
}

// MatchMissing matches an English market name against the missing set: the
// canonical markets MSAMB did not deliver. The missing slice preserves
// canonical order, so the earliest missing market with a matching alias
// token wins.
func (m *Matcher) MatchMissing(rawName string, missing []string) (string, bool) {
	normalized := NormalizeName(rawName)

	for _, want := range missing {
		token, ok := m.byMarket[want]
		if !ok {
			continue
		}

		if strings.Contains(normalized, token) {
			return want, true
		}
	}

	return "", false
}

// InRegion reports whether a state cell names the in-scope region, testing
// case-insensitively against the accepted spellings.
func (m *Matcher) InRegion(state string) bool {
	stateLower := strings.ToLower(state)

	for _, r := range m.region {
		if strings.Contains(stateLower, r) {
			return true
		}
	}

	return false
}
