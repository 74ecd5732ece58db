package web

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func requestFrom(remoteAddr, forwardedFor, realIP string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "http://example.com", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	if realIP != "" {
		req.Header.Set("X-Real-IP", realIP)
	}
	return req
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name           string
		remoteAddr     string
		forwardedFor   string
		realIP         string
		trustedProxies []string
		want           string
	}{
		{
			name:       "direct connection",
			remoteAddr: "192.168.1.100:12345",
			want:       "192.168.1.100",
		},
		{
			name:         "forwarded header ignored without trusted proxies",
			remoteAddr:   "10.0.0.1:8080",
			forwardedFor: "203.0.113.45",
			want:         "10.0.0.1",
		},
		{
			name:           "forwarded header honored from trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			forwardedFor:   "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			want:           "203.0.113.45",
		},
		{
			name:           "first entry of the forwarded chain wins",
			remoteAddr:     "10.0.0.1:8080",
			forwardedFor:   " 203.0.113.45 , 198.51.100.20 ",
			trustedProxies: []string{"10.0.0.1"},
			want:           "203.0.113.45",
		},
		{
			name:           "real-ip fallback from trusted proxy",
			remoteAddr:     "10.0.0.1:8080",
			realIP:         "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			want:           "203.0.113.45",
		},
		{
			name:           "untrusted peer cannot spoof through headers",
			remoteAddr:     "99.99.99.99:8080",
			forwardedFor:   "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			want:           "99.99.99.99",
		},
		{
			name:           "invalid forwarded entry falls back to real-ip",
			remoteAddr:     "10.0.0.1:8080",
			forwardedFor:   "not-an-ip",
			realIP:         "203.0.113.45",
			trustedProxies: []string{"10.0.0.1"},
			want:           "203.0.113.45",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.1",
			want:       "192.168.1.1",
		},
		{
			name:       "ipv6 address",
			remoteAddr: "[2001:db8::1]:12345",
			want:       "2001:db8::1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := requestFrom(tt.remoteAddr, tt.forwardedFor, tt.realIP)
			assert.Equal(t, tt.want, clientIP(req, tt.trustedProxies))
		})
	}
}

func TestIPKey(t *testing.T) {
	reqA := requestFrom("192.168.1.1:1000", "", "")
	reqB := requestFrom("192.168.1.2:1000", "", "")

	keyA := ipKey(reqA, nil)
	keyB := ipKey(reqB, nil)

	// Same caller, same key; the raw address never appears in the key
	assert.Equal(t, keyA, ipKey(reqA, nil))
	assert.NotEqual(t, keyA, keyB)
	assert.Len(t, keyA, 64)
	assert.NotContains(t, keyA, "192.168.1.1")
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(context.Background(), 1, 2)
	defer rl.Stop()

	// The burst carries the first two requests, the third is rejected
	assert.True(t, rl.allow("caller"))
	assert.True(t, rl.allow("caller"))
	assert.False(t, rl.allow("caller"))

	// Other callers have their own bucket
	assert.True(t, rl.allow("someone-else"))
}
