package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func newTestMetrics() *Metrics {
	// Fresh registry per test to avoid duplicate registration panics
	return NewMetrics(prometheus.NewRegistry())
}

func TestRecordLoginAttempt(t *testing.T) {
	m := newTestMetrics()

	m.RecordLoginAttempt("success")
	m.RecordLoginAttempt("success")
	m.RecordLoginAttempt("failure")

	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues("success")); got != 2 {
		t.Errorf("Expected 2 successful logins, got %v", got)
	}
	if got := testutil.ToFloat64(m.LoginAttempts.WithLabelValues("failure")); got != 1 {
		t.Errorf("Expected 1 failed login, got %v", got)
	}
}

func TestRecordRegistration(t *testing.T) {
	m := newTestMetrics()

	m.RecordRegistration("client")
	m.RecordRegistration("fournisseur")
	m.RecordRegistration("client")

	if got := testutil.ToFloat64(m.RegistrationTotal.WithLabelValues("client")); got != 2 {
		t.Errorf("Expected 2 client registrations, got %v", got)
	}
}

func TestRecordAuthzDenial(t *testing.T) {
	m := newTestMetrics()

	m.RecordAuthzDenial("produit", "update")
	m.RecordAuthzDenial("produit", "update")
	m.RecordAuthzDenial("administrateur", "delete")

	if got := testutil.ToFloat64(m.AuthzDenials.WithLabelValues("produit", "update")); got != 2 {
		t.Errorf("Expected 2 produit update denials, got %v", got)
	}
}

func TestRecordProduitTransition(t *testing.T) {
	m := newTestMetrics()

	m.RecordProduitTransition("verify")
	m.RecordProduitTransition("unverify")
	m.RecordProduitTransition("verify")

	if got := testutil.ToFloat64(m.ProduitTransitions.WithLabelValues("verify")); got != 2 {
		t.Errorf("Expected 2 verify transitions, got %v", got)
	}
}

func TestRecordHTTPRequest(t *testing.T) {
	m := newTestMetrics()

	m.RecordHTTPRequest("GET", "/api/produits", 200)
	m.RecordHTTPRequest("GET", "/api/produits", 200)
	m.RecordHTTPRequest("POST", "/api/produits", 403)

	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/produits", "200")); got != 2 {
		t.Errorf("Expected 2 GET requests, got %v", got)
	}
	if got := testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("POST", "/api/produits", "403")); got != 1 {
		t.Errorf("Expected 1 denied POST, got %v", got)
	}

	m.RecordHTTPDuration("GET", "/api/produits", 42*time.Millisecond)
}

func TestActiveConnections(t *testing.T) {
	m := newTestMetrics()

	m.IncrementActiveConnections()
	m.IncrementActiveConnections()
	m.DecrementActiveConnections()

	if got := testutil.ToFloat64(m.ActiveConnections); got != 1 {
		t.Errorf("Expected 1 active connection, got %v", got)
	}
}

func TestSetBackgroundTaskStatus(t *testing.T) {
	m := newTestMetrics()

	m.SetBackgroundTaskStatus("database_backup", true)
	if got := testutil.ToFloat64(m.BackgroundTasks.WithLabelValues("database_backup")); got != 1 {
		t.Errorf("Expected running status 1, got %v", got)
	}

	m.SetBackgroundTaskStatus("database_backup", false)
	if got := testutil.ToFloat64(m.BackgroundTasks.WithLabelValues("database_backup")); got != 0 {
		t.Errorf("Expected stopped status 0, got %v", got)
	}
}
