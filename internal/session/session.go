package session

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/vrmchat/avatar-gateway/internal/config"
	"github.com/vrmchat/avatar-gateway/internal/dialogue"
	"github.com/vrmchat/avatar-gateway/internal/observability"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		// The avatar page is served from the same host; origin checks are
		// relaxed so local network setups keep working
		return true
	},
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
}

// Manager routes inbound user messages to a session's pipeline and outbound
// dialogue commands back to the originating connection
type Manager struct {
	cfg       *config.Config
	catalog   *dialogue.Catalog
	persona   string
	generator Generator
	speaker   Speaker
	logger    zerolog.Logger

	rngMu sync.Mutex
	rng   *rand.Rand

	mu       sync.Mutex
	sessions map[string]*Session
}

// NewManager creates a session manager. The random source feeds the fuzzy
// category fallback and is injected so tests can seed it.
func NewManager(cfg *config.Config, catalog *dialogue.Catalog, persona string, generator Generator, speaker Speaker, rng *rand.Rand, logger zerolog.Logger) *Manager {
	return &Manager{
		cfg:       cfg,
		catalog:   catalog,
		persona:   persona,
		generator: generator,
		speaker:   speaker,
		logger:    logger,
		rng:       rng,
		sessions:  make(map[string]*Session),
	}
}

// impliedAction guesses an action from the user's wording; the shared random
// source is guarded since sessions run concurrently
func (m *Manager) impliedAction(userText string) (string, bool) {
	m.rngMu.Lock()
	defer m.rngMu.Unlock()
	return m.catalog.ImpliedAction(userText, m.rng)
}

// ActiveSessions returns the number of connected sessions
func (m *Manager) ActiveSessions() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}

// Session is one connected avatar client: its connection handle plus its
// exclusively-owned conversation history. Exactly one turn is in flight at a
// time; the read loop processes messages sequentially, so a user message
// arriving mid-turn waits for the next cycle.
type Session struct {
	id        string
	conn      *websocket.Conn
	history   *History
	queueSize int
	logger    zerolog.Logger
	mgr       *Manager

	writeMu sync.Mutex
	ctx     context.Context
	cancel  context.CancelFunc
}

// HandleWS is the websocket entry point for avatar clients
func (m *Manager) HandleWS() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			m.logger.Error().Err(err).Msg("Failed to upgrade connection to WebSocket")
			return
		}
		defer conn.Close()

		ctx, cancel := context.WithCancel(context.Background())
		id := uuid.New().String()
		s := &Session{
			id:        id,
			conn:      conn,
			history:   NewHistory(m.persona),
			queueSize: m.cfg.TurnQueueSize,
			logger:    observability.WithSession(id),
			mgr:       m,
			ctx:       ctx,
			cancel:    cancel,
		}

		m.register(s)
		observability.RecordSessionStart()
		s.logger.Info().Msg("Client connected")

		defer func() {
			// Aborting the context lets any in-flight background generation
			// wind down instead of leaking
			cancel()
			m.unregister(s)
			observability.RecordSessionEnd()
			s.logger.Info().Msg("Client disconnected")
		}()

		s.readLoop()
	}
}

// readLoop processes inbound messages until the connection drops
func (s *Session) readLoop() {
	for {
		_, raw, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				s.logger.Warn().Err(err).Msg("WebSocket read error")
			}
			return
		}

		msg := parseInbound(raw)
		switch msg.Type {
		case TypeClear:
			// Safe here: turns run synchronously on this goroutine, so a
			// reset can only land between turns
			s.history.Reset()
			s.sendJSON(ClearedMessage{Type: "cleared"})
			s.logger.Info().Msg("History cleared")

		case TypeUserMessage:
			text := strings.TrimSpace(msg.Text)
			if text == "" {
				continue
			}
			s.runTurn(text)

		default:
			s.logger.Debug().Str("type", msg.Type).Msg("Ignoring unknown message type")
		}
	}
}

// deliver sends one dialogue command to the client. Delivery failures mean
// the connection is gone; the command is dropped, never retried.
func (s *Session) deliver(cmd DialogueCommand) {
	if err := s.sendJSON(cmd); err != nil {
		s.logger.Warn().Err(err).Msg("Failed to deliver dialogue command")
		observability.RecordError("delivery_failure", "session")
		return
	}
	observability.RecordSentence()
}

func (s *Session) sendJSON(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return s.conn.WriteJSON(v)
}

func (m *Manager) register(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.id] = s
}

func (m *Manager) unregister(s *Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, s.id)
}
