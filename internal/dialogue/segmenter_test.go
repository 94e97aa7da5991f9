package dialogue

import (
	"strings"
	"testing"
)

func TestSegmenter_CompleteSentence(t *testing.T) {
	seg := NewSegmenter()

	got := seg.Push("Hello there! ")
	if len(got) != 1 || got[0] != "Hello there!" {
		t.Errorf("Expected [\"Hello there!\"], got %v", got)
	}

	if rem, ok := seg.Flush(); ok {
		t.Errorf("Expected empty remainder, got %q", rem)
	}
}

func TestSegmenter_TokenByToken(t *testing.T) {
	seg := NewSegmenter()
	tokens := []string{"I ", "missed", " you", " so", " much", ".", " How", " was", " your", " day", "?"}

	var got []string
	for _, tok := range tokens {
		got = append(got, seg.Push(tok)...)
	}

	// The '?' has no trailing whitespace yet, so the second sentence is still buffered
	if len(got) != 1 || got[0] != "I missed you so much." {
		t.Errorf("Expected first sentence only, got %v", got)
	}

	rem, ok := seg.Flush()
	if !ok || rem != "How was your day?" {
		t.Errorf("Expected remainder \"How was your day?\", got %q (ok=%v)", rem, ok)
	}
}

func TestSegmenter_MultipleBoundariesInOneToken(t *testing.T) {
	seg := NewSegmenter()

	got := seg.Push("One. Two! Three? Four")
	want := []string{"One.", "Two!", "Three?"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d sentences, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Sentence %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	rem, ok := seg.Flush()
	if !ok || rem != "Four" {
		t.Errorf("Expected remainder \"Four\", got %q", rem)
	}
}

func TestSegmenter_NewlineBoundary(t *testing.T) {
	seg := NewSegmenter()

	got := seg.Push("First line\nSecond line")
	if len(got) != 1 || got[0] != "First line" {
		t.Errorf("Expected newline to complete a sentence, got %v", got)
	}
}

func TestSegmenter_DecimalNotSplit(t *testing.T) {
	seg := NewSegmenter()

	got := seg.Push("Pi is about 3.14 you know. ")
	if len(got) != 1 || got[0] != "Pi is about 3.14 you know." {
		t.Errorf("Expected decimal point not to split, got %v", got)
	}
}

func TestSegmenter_NothingLostOrDuplicated(t *testing.T) {
	tokens := []string{"She ", "smiled. ", "Then she ", "waved!\n", "And ", "that was ", "it"}

	seg := NewSegmenter()
	var all []string
	for _, tok := range tokens {
		all = append(all, seg.Push(tok)...)
	}
	if rem, ok := seg.Flush(); ok {
		all = append(all, rem)
	}

	joined := strings.Join(strings.Fields(strings.Join(all, " ")), " ")
	original := strings.Join(strings.Fields(strings.Join(tokens, "")), " ")
	if joined != original {
		t.Errorf("Reassembled text %q does not match input %q", joined, original)
	}

	for _, cand := range all {
		if strings.TrimSpace(cand) == "" {
			t.Error("Segmenter emitted an empty candidate")
		}
	}
}

func TestSegmenter_EmptyInput(t *testing.T) {
	seg := NewSegmenter()

	if got := seg.Push(""); len(got) != 0 {
		t.Errorf("Expected no candidates for empty token, got %v", got)
	}
	if got := seg.Push("   "); len(got) != 0 {
		t.Errorf("Expected no candidates for whitespace token, got %v", got)
	}
	if rem, ok := seg.Flush(); ok {
		t.Errorf("Expected no final candidate, got %q", rem)
	}
}

func TestSegmenter_WhitespaceRunAfterBoundary(t *testing.T) {
	seg := NewSegmenter()

	var all []string
	all = append(all, seg.Push("Done!   ")...)
	all = append(all, seg.Push("  Next one. ")...)

	want := []string{"Done!", "Next one."}
	if len(all) != len(want) {
		t.Fatalf("Expected %v, got %v", want, all)
	}
	for i := range want {
		if all[i] != want[i] {
			t.Errorf("Sentence %d: expected %q, got %q", i, want[i], all[i])
		}
	}
}
