package readiness

import (
	"context"

	coordinator "lifeweeks/internal/coordinator/iface"
	"lifeweeks/internal/logger"
)

// SchedulerReadyPath is the node the scheduler worker publishes once it is
// serving commands. Clients check it to fail health checks fast instead of
// waiting out a round-trip timeout against a worker that never started.
const SchedulerReadyPath = "/lifeweeks/scheduler/ready"

// Marker publishes and observes the scheduler worker's readiness node. It
// implements both sides: the worker's announce/withdraw and the client's
// probe.
type Marker struct {
	coord  coordinator.Coordinator
	path   string
	logger logger.Logger
}

// NewMarker creates a readiness marker over the given coordinator
func NewMarker(coord coordinator.Coordinator, log logger.Logger) *Marker {
	return &Marker{
		coord:  coord,
		path:   SchedulerReadyPath,
		logger: log.With(logger.String("component", "readiness_marker")),
	}
}

// Announce publishes the readiness node. The node is ephemeral so a crashed
// worker's marker does not outlive its session.
func (m *Marker) Announce(ctx context.Context) error {
	if err := m.coord.CreateEphemeralNode(m.path, []byte("ready")); err != nil {
		return err
	}
	m.logger.Info("scheduler readiness announced", logger.String("path", m.path))
	return nil
}

// Withdraw removes the readiness node.
func (m *Marker) Withdraw(ctx context.Context) error {
	if err := m.coord.DeleteNode(m.path); err != nil {
		return err
	}
	m.logger.Info("scheduler readiness withdrawn", logger.String("path", m.path))
	return nil
}

// Ready reports whether the readiness node exists. Coordinator errors count
// as ready; an unreachable coordinator must not flip health checks to
// failing while the worker itself may be fine.
func (m *Marker) Ready(ctx context.Context) bool {
	exists, err := m.coord.NodeExists(m.path)
	if err != nil {
		m.logger.Warn("readiness check against coordinator failed", logger.Error(err))
		return true
	}
	return exists
}
