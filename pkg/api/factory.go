// Package api provides factory implementations for dependency injection
package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/recordcast/pkg/task"
)

// DefaultServerFactory is the default implementation of ServerFactory
type DefaultServerFactory struct{}

// NewServerFactory creates a new server factory
func NewServerFactory() ServerFactory {
	return &DefaultServerFactory{}
}

// CreateServerStarter creates a server starter
func (f *DefaultServerFactory) CreateServerStarter() ServerStarter {
	return &DefaultServerStarter{}
}

// DefaultServerStarter is the default implementation of ServerStarter
type DefaultServerStarter struct{}

// StartServer starts the status server. metrics should be the same instance
// the running tasks report to.
func (s *DefaultServerStarter) StartServer(
	ctx context.Context,
	config ServerConfig,
	tracker *task.Tracker,
	metrics *Metrics,
	gatherer prometheus.Gatherer,
	ready func(addr string),
) error {
	return StartServer(ctx, NewServer(tracker, config, metrics), gatherer, ready)
}
