package core

import "time"

// Recorder defines the interface for recording application metrics.
// Implementations include Metrics (Prometheus-based) and NoopMetrics (no-op).
type Recorder interface {
	// Authentication
	RecordAuthAttempt(backend string, success bool, duration time.Duration)
	RecordBackendUnreachable(backend string)

	// Account management
	RecordAccountOperation(operation string, success bool)

	// Session export of remote connection settings
	RecordSessionExport(backend string)
}
