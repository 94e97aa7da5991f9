package dialogue

import "strings"

// Emotion labels understood by the avatar client
const (
	EmotionLove      = "love"
	EmotionHappy     = "happy"
	EmotionExcited   = "excited"
	EmotionSad       = "sad"
	EmotionAngry     = "angry"
	EmotionWorried   = "worried"
	EmotionSurprised = "surprised"
	EmotionThinking  = "thinking"
	EmotionNeutral   = "neutral"
)

type emotionRule struct {
	keywords []string
	label    string
}

// emotionRules is an ordered priority cascade: the first rule with any
// keyword occurring as a substring wins. Reordering changes classification.
var emotionRules = []emotionRule{
	{[]string{"love", "i love", "adore", "crush", "heart", "darling", "sweetheart", "miss you"}, EmotionLove},
	{[]string{"happy", "glad", "wonderful", "awesome", "great", "amazing", "yay", "woohoo",
		"haha", "lol", "hehe", "fun", "enjoy", "laugh"}, EmotionHappy},
	{[]string{"excited", "wow", "omg", "oh my", "incredible", "can't wait", "so cool",
		"fantastic", "brilliant"}, EmotionExcited},
	{[]string{"sad", "unhappy", "depressed", "cry", "tears", "miss", "lonely", "alone",
		"heartbreak", "broke", "hurts", "pain"}, EmotionSad},
	{[]string{"angry", "mad", "furious", "hate", "annoyed", "irritated", "frustrated",
		"upset", "rage", "stop it"}, EmotionAngry},
	{[]string{"scared", "afraid", "worried", "anxious", "nervous", "fear", "terrified",
		"oh no", "please"}, EmotionWorried},
	{[]string{"surprise", "what", "really", "no way", "seriously", "unbelievable",
		"unexpected", "shocked", "wait"}, EmotionSurprised},
	{[]string{"think", "hmm", "maybe", "consider", "wonder", "curious", "question",
		"not sure", "perhaps", "let me", "i wonder"}, EmotionThinking},
	{[]string{"hello", "hi", "hey", "howdy", "greet", "good morning", "good evening",
		"how are you", "what's up", "yo"}, EmotionHappy},
	{[]string{"sorry", "apologize", "forgive", "my bad", "mistake", "oops", "i'm sorry"}, EmotionSad},
}

// gestureForEmotion maps each emotion label to the gesture the avatar plays
var gestureForEmotion = map[string]string{
	EmotionHappy:     "nod",
	EmotionExcited:   "excited",
	EmotionLove:      "wave",
	EmotionSad:       "idle",
	EmotionAngry:     "idle",
	EmotionWorried:   "think",
	EmotionSurprised: "nod",
	EmotionThinking:  "think",
	EmotionNeutral:   "idle",
}

// Classify maps sentence text to one emotion label. Unmatched text is neutral.
func Classify(text string) string {
	lower := strings.ToLower(text)
	for _, rule := range emotionRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.label
			}
		}
	}
	return EmotionNeutral
}

// GestureFor returns the gesture for an emotion label, defaulting to idle
func GestureFor(emotion string) string {
	if g, ok := gestureForEmotion[emotion]; ok {
		return g
	}
	return "idle"
}
