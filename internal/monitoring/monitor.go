package monitoring

import (
	"sync"
	"time"
)

// Monitor collects operational metrics for the chat service
type Monitor struct {
	metrics      map[string]interface{}
	metricsMutex sync.RWMutex
	startTime    time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		metrics:   make(map[string]interface{}),
		startTime: time.Now(),
	}
}

// RecordMetric records a metric value
func (m *Monitor) RecordMetric(name string, value interface{}) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics[name] = value
}

// GetMetric returns a specific metric value
func (m *Monitor) GetMetric(name string) (interface{}, bool) {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()
	value, exists := m.metrics[name]
	return value, exists
}

// GetMetrics returns all current metrics
func (m *Monitor) GetMetrics() map[string]interface{} {
	m.metricsMutex.RLock()
	defer m.metricsMutex.RUnlock()

	// Create a copy to avoid concurrent map access
	metrics := make(map[string]interface{}, len(m.metrics)+1)
	for k, v := range m.metrics {
		metrics[k] = v
	}

	metrics["uptime_seconds"] = time.Since(m.startTime).Seconds()
	return metrics
}

// Reset clears all metrics
func (m *Monitor) Reset() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()
	m.metrics = make(map[string]interface{})
}

// RecordTurn records one handled conversation turn and its routed intent
func (m *Monitor) RecordTurn(intent string, duration time.Duration) {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	key := "turns_" + intent
	count, _ := m.metrics[key].(int)
	m.metrics[key] = count + 1
	m.metrics["last_turn_seconds"] = duration.Seconds()
	m.metrics["last_turn_at"] = time.Now().UTC().Format(time.RFC3339)

	ObserveTurn(intent, duration)
}

// RecordOrderPlaced records a committed order
func (m *Monitor) RecordOrderPlaced() {
	m.metricsMutex.Lock()
	defer m.metricsMutex.Unlock()

	count, _ := m.metrics["orders_placed"].(int)
	m.metrics["orders_placed"] = count + 1

	ordersCreated.Inc()
}
