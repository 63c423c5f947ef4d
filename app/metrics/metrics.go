// Package metrics holds the Prometheus collectors exported by the service.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_requests_in_flight",
			Help: "Current number of HTTP requests being served",
		},
	)

	// Domain events
	PostsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_posts_created_total",
			Help: "Number of blog posts created",
		},
	)

	PostsDeleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_posts_deleted_total",
			Help: "Number of blog posts deleted",
		},
	)

	DeletesDenied = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_post_deletes_denied_total",
			Help: "Delete attempts rejected because the caller does not own the post",
		},
	)

	UsersRegistered = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bloglist_users_registered_total",
			Help: "Number of users registered",
		},
	)

	Logins = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bloglist_logins_total",
			Help: "Login attempts by result",
		},
		[]string{"result"},
	)
)
