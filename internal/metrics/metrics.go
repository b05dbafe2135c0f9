// Package metrics defines the metric-submission contract and its Datadog
// statsd and no-op implementations.
package metrics

import (
	"fmt"

	"github.com/DataDog/datadog-go/v5/statsd"
)

// Provider is the contract for metric submission. It exists so the Datadog
// client can be swapped for a no-op (or anything else) without touching the
// callers.
type Provider interface {
	Count(name string, value int64, tags []string) error
	Gauge(name string, value float64, tags []string) error
	Histogram(name string, value float64, tags []string) error
}

// NoopProvider is used when metrics are disabled.
type NoopProvider struct{}

func (n *NoopProvider) Count(name string, value int64, tags []string) error     { return nil }
func (n *NoopProvider) Gauge(name string, value float64, tags []string) error   { return nil }
func (n *NoopProvider) Histogram(name string, value float64, tags []string) error {
	return nil
}

// DatadogProvider adapts the official Datadog statsd client to Provider.
type DatadogProvider struct {
	client *statsd.Client
}

func (d *DatadogProvider) Count(name string, value int64, tags []string) error {
	return d.client.Count(name, value, tags, 1)
}

func (d *DatadogProvider) Gauge(name string, value float64, tags []string) error {
	return d.client.Gauge(name, value, tags, 1)
}

func (d *DatadogProvider) Histogram(name string, value float64, tags []string) error {
	return d.client.Histogram(name, value, tags, 1)
}

// NewDatadog connects a statsd client against the agent address.
func NewDatadog(addr, namespace string) (*DatadogProvider, error) {
	client, err := statsd.New(addr, statsd.WithNamespace(namespace))
	if err != nil {
		return nil, fmt.Errorf("metrics: statsd connect failed: %w", err)
	}
	return &DatadogProvider{client: client}, nil
}
