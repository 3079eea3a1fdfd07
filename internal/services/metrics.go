package services

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all custom Prometheus metrics for the application
type Metrics struct {
	// Analysis metrics
	AnalysisRuns    *prometheus.CounterVec
	AnalysisLatency prometheus.Histogram
	InsightsFound   prometheus.Histogram

	// Chat metrics
	MessagesSent prometheus.Counter

	// WebSocket metrics
	WebSocketConnections prometheus.Gauge
	WebSocketMessages    *prometheus.CounterVec
}

var globalMetrics *Metrics

// InitMetrics initializes the Prometheus metrics
func InitMetrics(connManager *ConnectionManager) *Metrics {
	metrics := &Metrics{
		// Analysis runs by trigger ("api" or "scheduled")
		AnalysisRuns: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventhub_analysis_runs_total",
			Help: "Total number of message analysis runs by trigger",
		}, []string{"trigger"}),

		AnalysisLatency: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventhub_analysis_duration_seconds",
			Help:    "Message analysis latency in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1, 5},
		}),

		InsightsFound: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "eventhub_analysis_insights_count",
			Help:    "Number of insights produced per analysis run",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 6},
		}),

		MessagesSent: promauto.NewCounter(prometheus.CounterOpts{
			Name: "eventhub_messages_sent_total",
			Help: "Total number of chat messages stored",
		}),

		WebSocketConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "eventhub_websocket_connections_active",
			Help: "Number of active WebSocket connections",
		}),

		WebSocketMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "eventhub_websocket_messages_total",
			Help: "Total number of WebSocket messages by type",
		}, []string{"type", "direction"}), // direction: "inbound" or "outbound"
	}

	// Collector that reads the live count from the connection manager
	prometheus.MustRegister(prometheus.NewGaugeFunc(
		prometheus.GaugeOpts{
			Name: "eventhub_websocket_connections_current",
			Help: "Current number of active WebSocket connections (from connection manager)",
		},
		func() float64 {
			if connManager != nil {
				return float64(connManager.Count())
			}
			return 0
		},
	))

	globalMetrics = metrics
	return metrics
}

// GetMetrics returns the global metrics instance
func GetMetrics() *Metrics {
	return globalMetrics
}

// RecordAnalysisRun records one analysis run with its latency and insight count
func (m *Metrics) RecordAnalysisRun(trigger string, seconds float64, insightCount int) {
	m.AnalysisRuns.WithLabelValues(trigger).Inc()
	m.AnalysisLatency.Observe(seconds)
	m.InsightsFound.Observe(float64(insightCount))
}

// RecordMessageSent records a stored chat message
func (m *Metrics) RecordMessageSent() {
	m.MessagesSent.Inc()
}

// RecordWebSocketConnect records a new WebSocket connection
func (m *Metrics) RecordWebSocketConnect() {
	m.WebSocketConnections.Inc()
}

// RecordWebSocketDisconnect records a WebSocket disconnection
func (m *Metrics) RecordWebSocketDisconnect() {
	m.WebSocketConnections.Dec()
}

// RecordWebSocketMessage records a WebSocket message
func (m *Metrics) RecordWebSocketMessage(msgType, direction string) {
	m.WebSocketMessages.WithLabelValues(msgType, direction).Inc()
}
