package dialogue

import "strings"

// Segmenter incrementally splits a token stream into complete sentences.
// Tokens are appended to an internal buffer; a sentence boundary is any
// whitespace immediately preceded by '.', '!' or '?', or a newline. Text up
// to and including the boundary punctuation is emitted (trimmed), the rest
// is carried over.
type Segmenter struct {
	buf strings.Builder
}

// NewSegmenter creates an empty segmenter
func NewSegmenter() *Segmenter {
	return &Segmenter{}
}

// Push appends a token to the buffer and returns any sentences completed by it,
// in input order. Candidates are trimmed; empty segments are never returned.
func (s *Segmenter) Push(token string) []string {
	s.buf.WriteString(token)

	var out []string
	rest := s.buf.String()
	for {
		cut, next := boundaryIndex(rest)
		if cut < 0 {
			break
		}
		if seg := strings.TrimSpace(rest[:cut]); seg != "" {
			out = append(out, seg)
		}
		rest = rest[next:]
	}

	s.buf.Reset()
	s.buf.WriteString(rest)
	return out
}

// Flush returns the trimmed remainder as a final candidate and clears the
// buffer. The second return is false when nothing is left.
func (s *Segmenter) Flush() (string, bool) {
	rem := strings.TrimSpace(s.buf.String())
	s.buf.Reset()
	if rem == "" {
		return "", false
	}
	return rem, true
}

// boundaryIndex finds the first sentence boundary in s. It returns the index
// the segment ends at (exclusive) and the index the remainder starts at, or
// (-1, -1) when no boundary exists yet. A trailing '.', '!' or '?' with no
// following whitespace is not a boundary: more of the sentence may still be
// streaming in (e.g. "3.14").
func boundaryIndex(s string) (cut, next int) {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '\n' {
			return i, i + 1
		}
		if (c == ' ' || c == '\t' || c == '\r') && i > 0 && isSentenceEnd(s[i-1]) {
			return i, i + 1
		}
	}
	return -1, -1
}

func isSentenceEnd(c byte) bool {
	return c == '.' || c == '!' || c == '?'
}
