package observability

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Session metrics
	activeSessions = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "avatar_gateway_active_sessions",
		Help: "Number of connected avatar sessions",
	})

	totalSessions = promauto.NewCounter(prometheus.CounterOpts{
		Name: "avatar_gateway_sessions_total",
		Help: "Total number of sessions accepted",
	})

	// Turn metrics
	turnsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_gateway_turns_total",
		Help: "Total number of conversation turns processed",
	}, []string{"status"}) // "ok", "generation_error", "unavailable"

	sentencesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "avatar_gateway_sentences_total",
		Help: "Total number of dialogue commands delivered",
	})

	turnDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "avatar_gateway_turn_duration_seconds",
		Help:    "End-to-end duration of a conversation turn in seconds",
		Buckets: []float64{0.5, 1, 2, 5, 10, 30, 60, 120},
	})

	// Generation metrics
	generationLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "avatar_gateway_generation_latency_seconds",
		Help:    "Latency of the full generation stream in seconds",
		Buckets: []float64{0.25, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
	})

	// Synthesis metrics
	synthesisRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_gateway_synthesis_requests_total",
		Help: "Total number of speech synthesis requests",
	}, []string{"status"})

	synthesisLatency = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "avatar_gateway_synthesis_latency_seconds",
		Help:    "Speech synthesis latency in seconds",
		Buckets: []float64{0.1, 0.25, 0.5, 1.0, 2.0, 5.0},
	})

	// Error metrics
	errorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "avatar_gateway_errors_total",
		Help: "Total number of errors",
	}, []string{"type", "component"})

	// Circuit breaker metrics
	circuitBreakerState = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Name: "avatar_gateway_circuit_breaker_state",
		Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
	}, []string{"service"})
)

// RecordSessionStart records a new session
func RecordSessionStart() {
	activeSessions.Inc()
	totalSessions.Inc()
}

// RecordSessionEnd records a session teardown
func RecordSessionEnd() {
	activeSessions.Dec()
}

// RecordSentence records one delivered dialogue command
func RecordSentence() {
	sentencesTotal.Inc()
}

// RecordError records an error
func RecordError(errorType, component string) {
	errorsTotal.WithLabelValues(errorType, component).Inc()
}

// RecordSynthesis records a synthesis request and its latency
func RecordSynthesis(success bool, elapsed time.Duration) {
	status := "success"
	if !success {
		status = "error"
	}
	synthesisRequests.WithLabelValues(status).Inc()
	synthesisLatency.Observe(elapsed.Seconds())
}

// UpdateCircuitBreakerState updates the circuit breaker state metric
func UpdateCircuitBreakerState(service string, state int) {
	circuitBreakerState.WithLabelValues(service).Set(float64(state))
}

// TurnMetrics tracks metrics for a single conversation turn
type TurnMetrics struct {
	startTime           time.Time
	generationStartTime time.Time
	mu                  sync.Mutex
}

// NewTurnMetrics creates a metrics tracker for one turn
func NewTurnMetrics() *TurnMetrics {
	return &TurnMetrics{startTime: time.Now()}
}

// RecordGenerationStart records the launch of the generation stream
func (m *TurnMetrics) RecordGenerationStart() {
	m.mu.Lock()
	m.generationStartTime = time.Now()
	m.mu.Unlock()
}

// RecordGenerationEnd records the completion of the generation stream
func (m *TurnMetrics) RecordGenerationEnd() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.generationStartTime.IsZero() {
		generationLatency.Observe(time.Since(m.generationStartTime).Seconds())
	}
}

// RecordTurnEnd records the completion of the turn
func (m *TurnMetrics) RecordTurnEnd(status string) {
	turnsTotal.WithLabelValues(status).Inc()
	turnDuration.Observe(time.Since(m.startTime).Seconds())
}
