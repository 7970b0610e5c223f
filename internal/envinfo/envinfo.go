// Package envinfo gathers the environment descriptors attached to every
// recorded event. The descriptors are opaque to the aggregator: they are
// stored verbatim in the event context, never validated or interpreted.
package envinfo

import (
	"os"
	"runtime"
)

// Collector describes the environment an event was observed in.
type Collector interface {
	// Describe returns environment descriptors (url, referrer, device
	// info) to merge into an event's context.
	Describe() map[string]any
}

// Static reports a fixed URL and referrer plus host process descriptors.
type Static struct {
	URL      string
	Referrer string
}

// Describe implements Collector.
func (s Static) Describe() map[string]any {
	hostname, _ := os.Hostname()
	return map[string]any{
		"url":      s.URL,
		"referrer": s.Referrer,
		"device": map[string]any{
			"os":       runtime.GOOS,
			"arch":     runtime.GOARCH,
			"hostname": hostname,
		},
	}
}

// None collects nothing; events carry only their caller-supplied payload.
type None struct{}

// Describe implements Collector.
func (None) Describe() map[string]any {
	return nil
}
