package session

import (
	"context"
	"strings"

	"github.com/vrmchat/avatar-gateway/internal/dialogue"
	"github.com/vrmchat/avatar-gateway/internal/llm"
	"github.com/vrmchat/avatar-gateway/internal/observability"
)

// Generator produces a streamed model reply for a conversation. Satisfied by
// *llm.Client.
type Generator interface {
	Available(ctx context.Context) error
	ChatStream(ctx context.Context, messages []llm.Message, fn func(token string) error) error
}

// Speaker synthesizes one sentence, returning base64 audio or an empty
// string. Satisfied by *tts.Speaker.
type Speaker interface {
	Speak(ctx context.Context, text string) string
}

// turnItem is one queued sentence of a turn. The sentinel marks stream end
// and is pushed exactly once per turn, always last.
type turnItem struct {
	text     string
	action   string
	sentinel bool
}

const (
	apologyText     = "I'm sorry... my thoughts are all fuzzy right now. Give me a moment and try again?"
	streamErrorText = "Sorry, I lost my train of thought. Could you say that again?"
)

// runTurn drives one full conversation turn: it launches generation as a
// producer and consumes the sentence queue in push order. Blocking on the
// queue is the mechanism that lets synthesis of sentence N overlap
// generation of sentence N+1.
func (s *Session) runTurn(userText string) {
	metrics := observability.NewTurnMetrics()
	s.logger.Info().Str("text", userText).Msg("Turn started")

	// Availability is checked once per turn, before committing to the pipeline
	if err := s.mgr.generator.Available(s.ctx); err != nil {
		s.logger.Warn().Err(err).Msg("Generation backend unavailable, sending apology")
		observability.RecordError("generation_unavailable", "llm")

		s.deliver(DialogueCommand{
			Type:      "dialogue",
			Text:      apologyText,
			Emotion:   dialogue.EmotionWorried,
			Gesture:   dialogue.GestureFor(dialogue.EmotionWorried),
			LipSync:   true,
			AudioB64:  s.mgr.speaker.Speak(s.ctx, apologyText),
			Streaming: true,
			First:     true,
		})
		metrics.RecordTurnEnd("unavailable")
		return
	}

	s.history.Append(llm.RoleUser, userText)
	impliedAction, impliedOK := s.mgr.impliedAction(userText)

	queue := make(chan turnItem, s.queueSize)
	metrics.RecordGenerationStart()
	go s.produce(queue, impliedAction, impliedOK, metrics)

	first := true
	delivered := 0
	for {
		item := <-queue
		if item.sentinel {
			break
		}

		emotion := dialogue.Classify(item.text)
		cmd := DialogueCommand{
			Type:      "dialogue",
			Text:      item.text,
			Emotion:   emotion,
			Gesture:   dialogue.GestureFor(emotion),
			LipSync:   true,
			AudioB64:  s.mgr.speaker.Speak(s.ctx, item.text),
			Streaming: true,
			First:     first,
		}
		if item.action != "" {
			action := item.action
			cmd.Action = &action
		}
		first = false

		s.deliver(cmd)
		delivered++
	}

	metrics.RecordTurnEnd("ok")
	s.logger.Info().Int("sentences", delivered).Msg("Turn completed")
}

// produce runs generation and segmentation on its own goroutine: tokens are
// segmented into sentences, each sentence is stripped of its directive and
// stage directions, and the result is queued. One sentence of lookahead is
// held back so the implied action can ride on the turn's final sentence.
func (s *Session) produce(queue chan<- turnItem, impliedAction string, impliedOK bool, metrics *observability.TurnMetrics) {
	seg := dialogue.NewSegmenter()
	var reply strings.Builder
	var pending *turnItem
	actionSeen := false

	emit := func(candidate string) {
		clean, payload, found := dialogue.ExtractDirective(candidate)
		action := ""
		if found {
			action = s.mgr.catalog.Resolve(payload)
			actionSeen = true
		}

		text := dialogue.CleanCandidate(clean)
		if text == "" && action == "" {
			return
		}

		if pending != nil {
			queue <- *pending
		}
		pending = &turnItem{text: text, action: action}
	}

	err := s.mgr.generator.ChatStream(s.ctx, s.history.Messages(), func(token string) error {
		reply.WriteString(token)
		for _, candidate := range seg.Push(token) {
			emit(candidate)
		}
		return nil
	})
	metrics.RecordGenerationEnd()

	if rem, ok := seg.Flush(); ok {
		emit(rem)
	}

	if pending != nil {
		if impliedOK && !actionSeen {
			pending.action = impliedAction
		}
		queue <- *pending
	}

	if err != nil {
		s.logger.Error().Err(err).Msg("Generation stream failed")
		observability.RecordError("generation_stream_failure", "llm")
		queue <- turnItem{text: streamErrorText}
	}

	// The raw reply, including any partial text from a failed stream, becomes
	// the assistant turn. Appending before the sentinel keeps history access
	// ordered with the consumer.
	if reply.Len() > 0 {
		s.history.Append(llm.RoleAssistant, reply.String())
	}

	queue <- turnItem{sentinel: true}
}
