// Package api provides interfaces for dependency injection
package api

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/recordcast/pkg/task"
)

// ServerStarter defines the interface for starting the status server
type ServerStarter interface {
	// StartServer serves until ctx is cancelled
	StartServer(ctx context.Context,
		config ServerConfig,
		tracker *task.Tracker,
		metrics *Metrics,
		gatherer prometheus.Gatherer,
		ready func(addr string),
	) error
}

// ServerFactory creates server instances
type ServerFactory interface {
	// CreateServerStarter creates a server starter
	CreateServerStarter() ServerStarter
}
