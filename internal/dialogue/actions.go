package dialogue

import (
	"math/rand"
	"strings"
	"unicode"
)

// Action categories. Dance animations are full performances, poses are static.
const (
	CategoryDance = "Dance"
	CategoryPose  = "Pose"
)

// Action is one performable animation known to the avatar client
type Action struct {
	ID       string // Canonical identifier, e.g. "Dance/Bling-Bang-Bang-Born.vrma"
	Category string
	base     string // Normalized base name for fuzzy matching, e.g. "bling bang bang born"
}

// Catalog is the static, read-only set of known actions. Iteration order is
// fixed and significant: fuzzy tie-breaks are resolved by position.
type Catalog struct {
	entries []Action
	byKey   map[string]Action
}

// NewCatalog builds a catalog from canonical identifiers of the form
// "<Category>/<Base-Name>.vrma". Lookup keys are the lowercased identifiers.
func NewCatalog(ids []string) *Catalog {
	c := &Catalog{byKey: make(map[string]Action, len(ids))}
	for _, id := range ids {
		category, name := splitActionID(id)
		a := Action{
			ID:       id,
			Category: category,
			base:     normalizeText(name),
		}
		c.entries = append(c.entries, a)
		c.byKey[strings.ToLower(id)] = a
	}
	return c
}

// DefaultCatalog returns the animation set shipped with the avatar client
func DefaultCatalog() *Catalog {
	return NewCatalog([]string{
		"Dance/Bling-Bang-Bang-Born.vrma",
		"Dance/Idol-Wave.vrma",
		"Dance/Hip-Hop.vrma",
		"Pose/Swag.vrma",
		"Pose/Peace-Sign.vrma",
		"Pose/Thinking.vrma",
	})
}

// IDs returns the canonical identifiers in catalog order
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.entries))
	for i, a := range c.entries {
		ids[i] = a.ID
	}
	return ids
}

// Resolve maps a directive payload to a canonical identifier. Unknown payloads
// pass through trimmed; the client decides how to treat unresolved actions.
func (c *Catalog) Resolve(payload string) string {
	payload = strings.TrimSpace(payload)
	if a, ok := c.byKey[strings.ToLower(payload)]; ok {
		return a.ID
	}
	return payload
}

// ExtractDirective finds an embedded "[ACTION: <payload>]" directive in a
// sentence, tolerating missing brackets and any casing. It returns the
// sentence with the directive removed, the raw payload, and whether a
// directive was found.
func ExtractDirective(text string) (clean string, payload string, found bool) {
	lower := strings.ToLower(text)

	from := 0
	for {
		i := strings.Index(lower[from:], "action")
		if i < 0 {
			return text, "", false
		}
		i += from

		// Keyword must not be the tail of a longer word ("reaction:")
		if i > 0 && (unicode.IsLetter(rune(text[i-1])) || unicode.IsDigit(rune(text[i-1]))) {
			from = i + 1
			continue
		}

		// The keyword must be followed by ':' (optionally spaced)
		j := i + len("action")
		for j < len(text) && (text[j] == ' ' || text[j] == '\t') {
			j++
		}
		if j >= len(text) || text[j] != ':' {
			from = i + 1
			continue
		}

		// Include an opening bracket and the whitespace before it in the match
		start := i
		bracketed := false
		if k := start - 1; k >= 0 {
			for k >= 0 && (text[k] == ' ' || text[k] == '\t') {
				k--
			}
			if k >= 0 && text[k] == '[' {
				bracketed = true
				start = k
			}
		}

		end := len(text)
		payloadEnd := len(text)
		if idx := strings.IndexByte(text[j:], ']'); idx >= 0 {
			payloadEnd = j + idx
			end = payloadEnd + 1
		} else if bracketed {
			// Opening bracket never closed: take the rest of the sentence
			payloadEnd = len(text)
			end = len(text)
		}

		payload = strings.TrimSpace(text[j+1 : payloadEnd])
		if payload == "" {
			from = i + 1
			continue
		}

		clean = strings.TrimSpace(text[:start] + text[end:])
		return clean, payload, true
	}
}

// Stop words ignored when scoring user text against action base names
var fuzzyStopWords = map[string]bool{
	"a": true, "an": true, "the": true, "to": true, "of": true,
	"and": true, "do": true, "me": true, "for": true, "please": true,
	"you": true, "can": true, "could": true, "show": true,
}

// ImpliedAction guesses an action from the user's own wording, used as a
// fallback when the generated reply carries no directive. Resolution order:
// substring containment of a base name, then token-overlap scoring, then a
// random pick within a named category ("dance" or "pose", not both). The
// random source is injected so callers can make the choice deterministic.
func (c *Catalog) ImpliedAction(userText string, rng *rand.Rand) (string, bool) {
	normalized := normalizeText(userText)
	if normalized == "" {
		return "", false
	}

	// Exact base-name containment wins outright
	for _, a := range c.entries {
		if a.base != "" && strings.Contains(normalized, a.base) {
			return a.ID, true
		}
	}

	// Token-overlap scoring, ties broken by catalog order
	userTokens := tokenSet(normalized)
	bestScore := 0
	bestID := ""
	for _, a := range c.entries {
		score := 0
		for tok := range tokenSet(a.base) {
			if fuzzyStopWords[tok] {
				continue
			}
			if userTokens[tok] {
				score++
			}
		}
		if score > bestScore {
			bestScore = score
			bestID = a.ID
		}
	}
	if bestScore > 0 {
		return bestID, true
	}

	// Bare category word: random pick within that category
	wantsDance := userTokens["dance"] || userTokens["dancing"]
	wantsPose := userTokens["pose"] || userTokens["posing"]
	if wantsDance != wantsPose {
		category := CategoryDance
		if wantsPose {
			category = CategoryPose
		}
		var candidates []string
		for _, a := range c.entries {
			if a.Category == category {
				candidates = append(candidates, a.ID)
			}
		}
		if len(candidates) > 0 {
			return candidates[rng.Intn(len(candidates))], true
		}
	}

	return "", false
}

// splitActionID splits "Dance/Bling-Bang-Bang-Born.vrma" into its category
// and base name ("Bling-Bang-Bang-Born")
func splitActionID(id string) (category, name string) {
	name = id
	if idx := strings.IndexByte(id, '/'); idx >= 0 {
		category = id[:idx]
		name = id[idx+1:]
	}
	name = strings.TrimSuffix(name, ".vrma")
	return category, name
}

// normalizeText lowercases and reduces text to space-separated alphanumeric
// tokens
func normalizeText(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func tokenSet(normalized string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range strings.Fields(normalized) {
		set[tok] = true
	}
	return set
}
