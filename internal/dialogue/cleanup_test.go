package dialogue

import "testing"

func TestStripEmphasisSpans(t *testing.T) {
	if got := StripEmphasisSpans("I'm *so* happy"); got != "I'm  happy" {
		t.Errorf("Expected \"I'm  happy\", got %q", got)
	}

	if got := StripEmphasisSpans("*giggles* Hi there"); got != " Hi there" {
		t.Errorf("Expected \" Hi there\", got %q", got)
	}

	// Unpaired asterisk drops the character only
	if got := StripEmphasisSpans("five * three"); got != "five  three" {
		t.Errorf("Expected \"five  three\", got %q", got)
	}

	if got := StripEmphasisSpans("no markup here"); got != "no markup here" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
}

func TestStripParentheticals(t *testing.T) {
	if got := StripParentheticals("Sure (she leans closer) thing"); got != "Sure  thing" {
		t.Errorf("Expected \"Sure  thing\", got %q", got)
	}

	if got := StripParentheticals("a (b (c) d) e"); got != "a  e" {
		t.Errorf("Expected nested span removed, got %q", got)
	}

	// Unbalanced close parenthesis is kept
	if got := StripParentheticals("weird ) text"); got != "weird ) text" {
		t.Errorf("Expected unchanged text, got %q", got)
	}
}

func TestStripSymbols(t *testing.T) {
	if got := StripSymbols("Party time 🎉🎊"); got != "Party time " {
		t.Errorf("Expected emoji removed, got %q", got)
	}

	if got := StripSymbols("snake_case and `code` #tag"); got != "snakecase and code tag" {
		t.Errorf("Expected markup characters removed, got %q", got)
	}

	if got := StripSymbols("Plain text, with punctuation!"); got != "Plain text, with punctuation!" {
		t.Errorf("Expected normal punctuation kept, got %q", got)
	}
}

func TestCleanCandidate(t *testing.T) {
	got := CleanCandidate("*blushes*  I knew (obviously) you'd come back! ✨")
	if got != "I knew you'd come back!" {
		t.Errorf("Expected \"I knew you'd come back!\", got %q", got)
	}

	if got := CleanCandidate("  "); got != "" {
		t.Errorf("Expected empty result, got %q", got)
	}
}
