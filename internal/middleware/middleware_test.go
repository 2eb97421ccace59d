package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"country-api/internal/config"
)

func TestTokenBucket(t *testing.T) {
	tb := NewTokenBucket(2, 3)
	now := time.Unix(1700000000, 0)
	tb.now = func() time.Time { return now }
	tb.last = now
	for i := 0; i < 3; i++ {
		if !tb.Allow() {
			t.Fatalf("request %d within burst rejected", i)
		}
	}
	if tb.Allow() {
		t.Fatal("bucket should be empty")
	}
	now = now.Add(500 * time.Millisecond)
	if !tb.Allow() {
		t.Error("one token should refill after 0.5s at 2 qps")
	}
	if tb.Allow() {
		t.Error("only one token should have refilled")
	}
	now = now.Add(time.Hour)
	n := 0
	for tb.Allow() {
		n++
	}
	if n != 3 {
		t.Errorf("refill capped at %d, want burst 3", n)
	}
}

func TestWrapRejects(t *testing.T) {
	h := Wrap(config.RateLimit{Enabled: true, QPS: 0.001, Burst: 1}, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	codes := []int{}
	for i := 0; i < 2; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/country", nil))
		codes = append(codes, rec.Code)
	}
	if codes[0] != http.StatusOK || codes[1] != http.StatusTooManyRequests {
		t.Errorf("codes = %v", codes)
	}
}

func TestClientIP(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		remote string
		want   string
	}{
		{"forwarded", map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1"}, "10.0.0.1:5000", "203.0.113.7"},
		{"real ip", map[string]string{"X-Real-IP": "2001:db8::1"}, "10.0.0.1:5000", "2001:db8::1"},
		{"bad header falls back", map[string]string{"X-Forwarded-For": "garbage"}, "192.0.2.9:443", "192.0.2.9"},
		{"remote only", nil, "198.51.100.4:8080", "198.51.100.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			h := WithClientIP(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if ip, ok := ClientIP(r.Context()); ok {
					got = ip.String()
				}
			}))
			req := httptest.NewRequest(http.MethodGet, "/ip", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			h.ServeHTTP(httptest.NewRecorder(), req)
			if got != tt.want {
				t.Errorf("ClientIP = %q, want %q", got, tt.want)
			}
		})
	}
}
