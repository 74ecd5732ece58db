// Package metrics provides Prometheus instrumentation for the marketplace
// backend: authentication, authorization decisions, product lifecycle
// transitions, HTTP traffic and system health.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metric collectors / Contient tous les collecteurs de métriques Prometheus
type Metrics struct {
	// Authentication metrics
	LoginAttempts     *prometheus.CounterVec // Total login attempts by status (success/failure)
	RegistrationTotal *prometheus.CounterVec // Total registrations by role profile
	InvalidTokens     prometheus.Counter     // Invalid/expired JWT token attempts

	// Authorization metrics
	AuthzDenials *prometheus.CounterVec // Authorization denials by resource and action

	// Domain metrics
	ProduitTransitions       *prometheus.CounterVec // Product state transitions by transition name
	FournisseurVerifications *prometheus.CounterVec // Supplier trust flag changes by action (verify/unverify)
	RoleProfilesCreated      *prometheus.CounterVec // Role profiles provisioned by role
	RoleProfilesDeleted      *prometheus.CounterVec // Role profiles removed by role

	// HTTP metrics
	HTTPRequestsTotal   *prometheus.CounterVec   // Total HTTP requests by method, path, status
	HTTPRequestDuration *prometheus.HistogramVec // HTTP request latency in seconds
	ActiveConnections   prometheus.Gauge         // Current number of active HTTP connections

	// Security metrics
	RateLimitHits *prometheus.CounterVec // Rate limit violations by endpoint

	// System metrics
	DatabaseConnections prometheus.Gauge     // Current database connection pool size
	BackgroundTasks     *prometheus.GaugeVec // Status of background tasks (running/stopped)
}

// NewMetrics initializes Metrics instance / Initialise une instance Metrics
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)

	m := &Metrics{
		// Authentication metrics
		LoginAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_login_attempts_total",
				Help: "Total number of login attempts by status (success, failure)",
			},
			[]string{"status"},
		),

		RegistrationTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "auth_registrations_total",
				Help: "Total number of registrations by role profile",
			},
			[]string{"role"},
		),

		InvalidTokens: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "security_invalid_tokens_total",
				Help: "Total number of invalid or expired JWT token attempts",
			},
		),

		// Authorization metrics
		AuthzDenials: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "authz_denials_total",
				Help: "Total number of authorization denials by resource and action",
			},
			[]string{"resource", "action"},
		),

		// Domain metrics
		ProduitTransitions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "produit_transitions_total",
				Help: "Total number of product state transitions (verify, unverify, finish_production)",
			},
			[]string{"transition"},
		),

		FournisseurVerifications: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fournisseur_verifications_total",
				Help: "Total number of supplier trust flag changes by action (verify, unverify)",
			},
			[]string{"action"},
		),

		RoleProfilesCreated: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "role_profiles_created_total",
				Help: "Total number of role profiles provisioned by role",
			},
			[]string{"role"},
		),

		RoleProfilesDeleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "role_profiles_deleted_total",
				Help: "Total number of role profiles removed by role",
			},
			[]string{"role"},
		),

		// HTTP metrics
		HTTPRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests by method, path, and status code",
			},
			[]string{"method", "path", "status_code"},
		),

		HTTPRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name: "http_request_duration_seconds",
				Help: "HTTP request latency in seconds",
				// Buckets optimized for API response times: 10ms to 10s
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
			},
			[]string{"method", "path"},
		),

		ActiveConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "http_active_connections",
				Help: "Current number of active HTTP connections",
			},
		),

		// Security metrics
		RateLimitHits: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "security_rate_limit_hits_total",
				Help: "Total number of rate limit violations by endpoint",
			},
			[]string{"endpoint"},
		),

		// System metrics
		DatabaseConnections: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "database_connections_active",
				Help: "Current number of active database connections",
			},
		),

		BackgroundTasks: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "background_tasks_status",
				Help: "Status of background tasks (1=running, 0=stopped)",
			},
			[]string{"task_name"},
		),
	}

	return m
}

// RecordLoginAttempt records a login attempt with the given status.
// Status can be: "success" or "failure"
func (m *Metrics) RecordLoginAttempt(status string) {
	m.LoginAttempts.WithLabelValues(status).Inc()
}

// RecordRegistration records a registration for one role profile.
func (m *Metrics) RecordRegistration(role string) {
	m.RegistrationTotal.WithLabelValues(role).Inc()
}

// RecordInvalidToken increments the invalid token counter.
func (m *Metrics) RecordInvalidToken() {
	m.InvalidTokens.Inc()
}

// RecordAuthzDenial records an authorization denial for a resource/action pair.
func (m *Metrics) RecordAuthzDenial(resource, action string) {
	m.AuthzDenials.WithLabelValues(resource, action).Inc()
}

// RecordProduitTransition records a product state transition.
// Transition can be: "verify", "unverify", or "finish_production"
func (m *Metrics) RecordProduitTransition(transition string) {
	m.ProduitTransitions.WithLabelValues(transition).Inc()
}

// RecordFournisseurVerification records a supplier trust flag change.
// Action can be: "verify" or "unverify"
func (m *Metrics) RecordFournisseurVerification(action string) {
	m.FournisseurVerifications.WithLabelValues(action).Inc()
}

// RecordRoleProfileCreated records the provisioning of one role profile.
func (m *Metrics) RecordRoleProfileCreated(role string) {
	m.RoleProfilesCreated.WithLabelValues(role).Inc()
}

// RecordRoleProfileDeleted records the removal of one role profile.
func (m *Metrics) RecordRoleProfileDeleted(role string) {
	m.RoleProfilesDeleted.WithLabelValues(role).Inc()
}

// RecordHTTPRequest records an HTTP request with method, path, and status code.
func (m *Metrics) RecordHTTPRequest(method, path string, statusCode int) {
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(statusCode)).Inc()
}

// RecordHTTPDuration records the duration of an HTTP request.
func (m *Metrics) RecordHTTPDuration(method, path string, duration time.Duration) {
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// IncrementActiveConnections increments the active connections gauge.
func (m *Metrics) IncrementActiveConnections() {
	m.ActiveConnections.Inc()
}

// DecrementActiveConnections decrements the active connections gauge.
func (m *Metrics) DecrementActiveConnections() {
	m.ActiveConnections.Dec()
}

// RecordRateLimitHit records a rate limit violation for a specific endpoint.
func (m *Metrics) RecordRateLimitHit(endpoint string) {
	m.RateLimitHits.WithLabelValues(endpoint).Inc()
}

// UpdateDatabaseConnections updates the database connections gauge.
func (m *Metrics) UpdateDatabaseConnections(count int) {
	m.DatabaseConnections.Set(float64(count))
}

// SetBackgroundTaskStatus sets the status of a background task.
// Status: 1 for running, 0 for stopped.
func (m *Metrics) SetBackgroundTaskStatus(taskName string, running bool) {
	status := 0.0
	if running {
		status = 1.0
	}
	m.BackgroundTasks.WithLabelValues(taskName).Set(status)
}
