package dialogue

import (
	"strings"
	"unicode"
)

// Text cleanup passes. Each pass is a pure function over the sentence text so
// callers can compose exactly the pipeline they need: the turn pipeline strips
// stage directions before queueing, the synthesizer strips everything a TTS
// voice cannot pronounce.

// StripEmphasisSpans removes *emphasized* spans including their content, and
// any unpaired '*' characters. Models use these as stage directions
// ("*giggles*"), which should neither be displayed nor spoken.
func StripEmphasisSpans(s string) string {
	var b strings.Builder
	for {
		open := strings.IndexByte(s, '*')
		if open < 0 {
			b.WriteString(s)
			break
		}
		close := strings.IndexByte(s[open+1:], '*')
		if close < 0 {
			// Unpaired: drop the character only
			b.WriteString(s[:open])
			s = s[open+1:]
			continue
		}
		b.WriteString(s[:open])
		s = s[open+1+close+1:]
	}
	return b.String()
}

// StripParentheticals removes parenthetical asides including their content.
// Nested parentheses are removed along with the enclosing span.
func StripParentheticals(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// StripSymbols removes emoji and symbol code points, plus markup characters
// ('`', '_', '#') that models sprinkle around punctuation.
func StripSymbols(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '`' || r == '_' || r == '#':
			return -1
		case r == '\u200d' || r == '\ufe0e' || r == '\ufe0f': // ZWJ, variation selectors
			return -1
		case unicode.In(r, unicode.So, unicode.Sk, unicode.Sc):
			return -1
		case r >= 0x1F000: // emoji, pictographs, and the rest of the supplementary symbol planes
			return -1
		}
		return r
	}, s)
}

// CollapseWhitespace collapses all whitespace runs to single spaces and trims
func CollapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// CleanCandidate prepares a segmented sentence for queueing: emphasis spans,
// parenthetical asides, stray '*' and symbol/emoji code points are removed
// and whitespace is normalized.
func CleanCandidate(s string) string {
	s = StripEmphasisSpans(s)
	s = StripParentheticals(s)
	s = StripSymbols(s)
	return CollapseWhitespace(s)
}
