// Package di provides dependency injection container
package di

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/ssargent/recordcast/pkg/api"
	"github.com/ssargent/recordcast/pkg/storage"
	"github.com/ssargent/recordcast/pkg/task"
)

// LoaderOpener opens the record source for a send task
type LoaderOpener func(opts storage.Options) (storage.Loader, error)

// Container holds all the dependencies for the application
type Container struct {
	serverFactory api.ServerFactory
	openLoader    LoaderOpener
	registry      *prometheus.Registry
	metrics       *api.Metrics
	tracker       *task.Tracker
}

// NewContainer creates a new dependency injection container
func NewContainer() *Container {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		prometheus.NewGoCollector(),
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
	)
	return &Container{
		serverFactory: api.NewServerFactory(),
		openLoader:    storage.Open,
		registry:      reg,
		metrics:       api.NewMetrics(reg),
		tracker:       task.NewTracker(),
	}
}

// GetServerFactory returns the server factory
func (c *Container) GetServerFactory() api.ServerFactory {
	return c.serverFactory
}

// GetLoaderOpener returns the function used to open record sources
func (c *Container) GetLoaderOpener() LoaderOpener {
	return c.openLoader
}

// GetRegistry returns the Prometheus registry served on /metrics
func (c *Container) GetRegistry() *prometheus.Registry {
	return c.registry
}

// GetMetrics returns the metrics every task reports to
func (c *Container) GetMetrics() *api.Metrics {
	return c.metrics
}

// GetTracker returns the process-wide task tracker
func (c *Container) GetTracker() *task.Tracker {
	return c.tracker
}

// SetServerFactory allows overriding the server factory (for testing)
func (c *Container) SetServerFactory(factory api.ServerFactory) {
	c.serverFactory = factory
}

// SetLoaderOpener allows overriding how record sources are opened (for testing)
func (c *Container) SetLoaderOpener(open LoaderOpener) {
	c.openLoader = open
}
