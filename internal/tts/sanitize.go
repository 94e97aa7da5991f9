package tts

import (
	"strings"

	"github.com/vrmchat/avatar-gateway/internal/dialogue"
)

// SanitizeForSpeech prepares sentence text for the synthesis backend:
// emphasis spans, symbol/emoji code points and tildes are removed and
// whitespace is collapsed. The result may be empty, in which case nothing
// should be synthesized.
func SanitizeForSpeech(text string) string {
	text = dialogue.StripEmphasisSpans(text)
	text = dialogue.StripSymbols(text)
	text = strings.ReplaceAll(text, "~", "")
	return dialogue.CollapseWhitespace(text)
}
