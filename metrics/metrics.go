// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for registrations, logins
// and ballots.
package metrics

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// Metrics holds the application counters. A nil *Metrics, or one that was
// never registered, silently drops every observation.
type Metrics struct {
	registrations  *prometheus.CounterVec
	logins         *prometheus.CounterVec
	votesCast      prometheus.Counter
	voteRejections *prometheus.CounterVec

	registerOnce sync.Once
}

// New returns Metrics registered with registry.
func New(registry prometheus.Registerer) *Metrics {
	m := &Metrics{}
	m.Register(registry)
	return m
}

// Register registers the counters with the given registry.
// If registry is nil, this is a no-op. Only the first call has any effect.
func (m *Metrics) Register(registry prometheus.Registerer) {
	if registry == nil {
		return
	}

	m.registerOnce.Do(func() {
		factory := promauto.With(registry)

		m.registrations = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votebooth_registrations_total",
			Help: "Voter registration attempts by outcome",
		}, []string{"result"})

		m.logins = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votebooth_logins_total",
			Help: "Login attempts by role and outcome",
		}, []string{"role", "result"})

		m.votesCast = factory.NewCounter(prometheus.CounterOpts{
			Name: "votebooth_votes_cast_total",
			Help: "Total number of ballots recorded",
		})

		m.voteRejections = factory.NewCounterVec(prometheus.CounterOpts{
			Name: "votebooth_vote_rejections_total",
			Help: "Ballots refused, by reason",
		}, []string{"reason"})
	})
}

// IncRegistration counts a registration attempt. result is ResultSuccess
// or a short failure reason.
func (m *Metrics) IncRegistration(result string) {
	if m == nil || m.registrations == nil {
		return
	}
	m.registrations.WithLabelValues(result).Inc()
}

// IncLogin counts a voter or admin login attempt.
func (m *Metrics) IncLogin(role, result string) {
	if m == nil || m.logins == nil {
		return
	}
	m.logins.WithLabelValues(role, result).Inc()
}

// IncVoteCast counts a recorded ballot.
func (m *Metrics) IncVoteCast() {
	if m == nil || m.votesCast == nil {
		return
	}
	m.votesCast.Inc()
}

// IncVoteRejected counts a refused ballot.
func (m *Metrics) IncVoteRejected(reason string) {
	if m == nil || m.voteRejections == nil {
		return
	}
	m.voteRejections.WithLabelValues(reason).Inc()
}

// Handler serves the metrics in gatherer in the Prometheus text format.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
