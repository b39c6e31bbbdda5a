package client

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	realtimeMessagesTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campusjam_client",
			Name:      "realtime_messages_total",
			Help:      "Inbound realtime message events delivered to consumers.",
		},
	)

	realtimeReconnectsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "campusjam_client",
			Name:      "realtime_reconnect_attempts_total",
			Help:      "Reconnection attempts after a transient realtime failure.",
		},
	)

	notificationRefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "campusjam_client",
			Name:      "notification_refreshes_total",
			Help:      "Notification list refreshes by outcome.",
		},
		[]string{"outcome"},
	)
)
