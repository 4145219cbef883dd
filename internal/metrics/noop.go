package metrics

import (
	"time"

	"github.com/Pyons/cypht/internal/core"
)

// NoopMetrics is a no-operation implementation of core.Recorder.
// All methods are empty and do nothing, providing zero overhead when metrics are disabled
type NoopMetrics struct{}

// Ensure NoopMetrics implements Recorder interface at compile time
var _ core.Recorder = (*NoopMetrics)(nil)

// NewNoopMetrics creates a new no-operation metrics recorder
func NewNoopMetrics() *NoopMetrics {
	return &NoopMetrics{}
}

func (n *NoopMetrics) RecordAuthAttempt(backend string, success bool, duration time.Duration) {}
func (n *NoopMetrics) RecordBackendUnreachable(backend string)                               {}
func (n *NoopMetrics) RecordAccountOperation(operation string, success bool)                 {}
func (n *NoopMetrics) RecordSessionExport(backend string)                                    {}
