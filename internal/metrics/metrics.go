// Package metrics registers the Prometheus instruments exposed on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Connection metrics
	Connections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chathub_connections",
			Help: "Currently connected clients",
		},
	)

	// Protocol metrics
	FramesReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chathub_frames_received_total",
			Help: "Inbound frames by command kind",
		},
		[]string{"kind"},
	)

	FrameErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chathub_frame_errors_total",
			Help: "Frames that failed to decode or faulted while handled",
		},
	)

	// Business metrics
	MessagesStored = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chathub_messages_total",
			Help: "Messages appended to dialogue logs",
		},
		[]string{"direction"}, // "local" or "remote"
	)

	Broadcasts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chathub_broadcasts_total",
			Help: "Events fanned out to all connected clients",
		},
		[]string{"event"},
	)
)
