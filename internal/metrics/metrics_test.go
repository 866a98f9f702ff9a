package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNormalizePath(t *testing.T) {
	cases := map[string]string{
		"/users":     "/users",
		"/users/123": "/users/{id}",
		"/users/7/":  "/users/{id}/",
		"/":          "/",
		"/users/abc": "/users/abc",
	}
	for in, want := range cases {
		if got := NormalizePath(in); got != want {
			t.Errorf("NormalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestRecordRequest(t *testing.T) {
	before := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/users/{id}", "404"))
	RecordRequest("GET", "/users/42", 404, 0.01)
	after := testutil.ToFloat64(RequestTotal.WithLabelValues("GET", "/users/{id}", "404"))
	if after-before != 1 {
		t.Errorf("http_requests_total delta = %v, want 1", after-before)
	}
}

func TestIncLogin(t *testing.T) {
	before := testutil.ToFloat64(LoginAttempts.WithLabelValues("password_mismatch"))
	IncLogin("password_mismatch")
	if got := testutil.ToFloat64(LoginAttempts.WithLabelValues("password_mismatch")); got-before != 1 {
		t.Errorf("login_attempts_total delta = %v, want 1", got-before)
	}
}
