package identity

import (
	"strconv"
	"strings"
)

// ParseBracket parses a declared age-range value: "Under 18", open-ended
// forms like "65+", and "lo-hi" pairs with an ASCII hyphen or en/em dash
// ("31-40", "31–40"). Anything else is not a bracket.
func ParseBracket(value string) (Bracket, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	if normalized == "" {
		return Bracket{}, false
	}
	normalized = strings.ReplaceAll(normalized, "–", "-")
	normalized = strings.ReplaceAll(normalized, "—", "-")

	if rest, ok := strings.CutPrefix(normalized, "under "); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 1 {
			return Bracket{}, false
		}
		return Bracket{Lo: 0, Hi: n - 1}, true
	}

	if rest, ok := strings.CutSuffix(normalized, "+"); ok {
		n, err := strconv.Atoi(strings.TrimSpace(rest))
		if err != nil || n < 0 {
			return Bracket{}, false
		}
		return Bracket{Lo: n, OpenEnded: true}, true
	}

	lo, hi, ok := strings.Cut(normalized, "-")
	if !ok {
		return Bracket{}, false
	}
	low, err := strconv.Atoi(strings.TrimSpace(lo))
	if err != nil {
		return Bracket{}, false
	}
	high, err := strconv.Atoi(strings.TrimSpace(hi))
	if err != nil || high < low || low < 0 {
		return Bracket{}, false
	}
	return Bracket{Lo: low, Hi: high}, true
}
