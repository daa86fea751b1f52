package security

import (
	"net/http/httptest"
	"testing"
)

func TestDetectSuspiciousRequest(t *testing.T) {
	d := NewDetector()

	cases := []struct {
		name  string
		path  string
		query string
		want  bool
	}{
		{"normal path", "/invoices", "", false},
		{"path traversal", "/invoices/../../etc/passwd", "", true},
		{"sql injection in query", "/clients", "q=1 union select 2", true},
		{"health check", "/healthz", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "http://example.test/", nil)
			r.URL.Path = tc.path
			r.URL.RawQuery = tc.query
			if got := d.DetectSuspiciousRequest(r); got != tc.want {
				t.Fatalf("DetectSuspiciousRequest(%s?%s) = %v, want %v", tc.path, tc.query, got, tc.want)
			}
		})
	}

	if d.GetMetrics().SuspiciousRequests != 2 {
		t.Fatalf("SuspiciousRequests = %d, want 2", d.GetMetrics().SuspiciousRequests)
	}
}

func TestDetectSuspiciousMethod(t *testing.T) {
	d := NewDetector()

	r := httptest.NewRequest("TRACE", "/clients", nil)
	if !d.DetectSuspiciousRequest(r) {
		t.Fatal("TRACE should be flagged")
	}
}

func TestExtractClientIPTrustsOnlyKnownProxies(t *testing.T) {
	d := NewDetector()

	r := httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "10.0.0.5:4444"
	r.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.5")
	if ip := d.ExtractClientIP(r); ip != "203.0.113.7" {
		t.Fatalf("ip behind trusted proxy = %s, want 203.0.113.7", ip)
	}

	r = httptest.NewRequest("GET", "/", nil)
	r.RemoteAddr = "198.51.100.9:4444"
	r.Header.Set("X-Forwarded-For", "203.0.113.7")
	if ip := d.ExtractClientIP(r); ip != "198.51.100.9" {
		t.Fatalf("ip from untrusted remote = %s, want 198.51.100.9", ip)
	}

	if err := d.AddTrustedProxy("198.51.100.0/24"); err != nil {
		t.Fatalf("AddTrustedProxy: %v", err)
	}
	if ip := d.ExtractClientIP(r); ip != "203.0.113.7" {
		t.Fatalf("ip behind added proxy = %s, want 203.0.113.7", ip)
	}
}
