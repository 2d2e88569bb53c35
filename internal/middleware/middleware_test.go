package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/netip"
	"strings"
	"testing"

	"github.com/mcoot/badancup/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRecordsStatusAndBytes(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte("dup"))
	}))

	req := httptest.NewRequest(http.MethodPost, "/register", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	h.ServeHTTP(httptest.NewRecorder(), req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "http request", entry["msg"])
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "POST", entry["method"])
	assert.Equal(t, "/register", entry["path"])
	assert.EqualValues(t, 409, entry["status"])
	assert.EqualValues(t, 3, entry["bytes"])
	assert.Equal(t, "10.0.0.7", entry["client_ip"])
}

func TestLoggingPassesFlushThrough(t *testing.T) {
	h := Logging(testutil.NopLogger())(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, ok := w.(http.Flusher)
		assert.True(t, ok)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}

func TestRecoveryRendersWithHandler(t *testing.T) {
	logger, buf := testutil.BufferLogger()
	var got any
	h := Recovery(logger, func(w http.ResponseWriter, _ *http.Request, recovered any) {
		got = recovered
		w.WriteHeader(http.StatusInternalServerError)
	})(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "boom", got)
	assert.Contains(t, buf.String(), "handler panic")
}

func TestRecoveryDefaultsToPlainText(t *testing.T) {
	h := Recovery(testutil.NopLogger(), nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.True(t, strings.HasPrefix(rec.Body.String(), "Internal Server Error"))
}

func TestSecureHeaders(t *testing.T) {
	h := SecureHeaders(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "SAMEORIGIN", rec.Header().Get("X-Frame-Options"))
	assert.Contains(t, rec.Header().Get("Content-Security-Policy"), "default-src 'self'")
}

func TestClientIP(t *testing.T) {
	trusted, err := ParseTrustedProxies([]string{"10.0.0.0/8", "172.16.0.1"})
	require.NoError(t, err)

	tests := []struct {
		name    string
		remote  string
		trusted []netip.Prefix
		header  map[string]string
		want    string
	}{
		{"remote addr", "192.168.1.2:1234", nil, nil, "192.168.1.2"},
		{"forwarded ignored without trusted proxies", "192.0.2.1:1234", nil, map[string]string{"X-Forwarded-For": "6.6.6.6"}, "192.0.2.1"},
		{"real ip ignored without trusted proxies", "192.0.2.1:1234", nil, map[string]string{"X-Real-IP": "6.6.6.6"}, "192.0.2.1"},
		{"forwarded ignored from untrusted peer", "192.0.2.1:1234", trusted, map[string]string{"X-Forwarded-For": "6.6.6.6"}, "192.0.2.1"},
		{"forwarded from trusted proxy", "10.0.0.1:80", trusted, map[string]string{"X-Forwarded-For": "203.0.113.5"}, "203.0.113.5"},
		{"spoofed first hop skipped", "10.0.0.1:80", trusted, map[string]string{"X-Forwarded-For": "6.6.6.6, 203.0.113.5, 172.16.0.1"}, "203.0.113.5"},
		{"garbage hop falls back to peer", "10.0.0.1:80", trusted, map[string]string{"X-Forwarded-For": strings.Repeat("x", 500)}, "10.0.0.1"},
		{"real ip from trusted proxy", "10.0.0.1:80", trusted, map[string]string{"X-Real-IP": "198.51.100.9"}, "198.51.100.9"},
		{"no port", "pipe", nil, nil, "pipe"},
		{"overlong remote is capped", strings.Repeat("a", 200), nil, nil, strings.Repeat("a", maxIPLength)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			r.RemoteAddr = tt.remote
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			var got string
			RealIP(tt.trusted)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
				got = ClientIP(r)
			})).ServeHTTP(httptest.NewRecorder(), r)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestClientIPWithoutRealIPUsesRemoteAddr(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.RemoteAddr = "192.0.2.7:555"
	r.Header.Set("X-Forwarded-For", "6.6.6.6")
	assert.Equal(t, "192.0.2.7", ClientIP(r))
}

func TestParseTrustedProxiesRejectsGarbage(t *testing.T) {
	_, err := ParseTrustedProxies([]string{"10.0.0.0/8", "not-an-ip"})
	assert.Error(t, err)

	prefixes, err := ParseTrustedProxies([]string{" ", ""})
	require.NoError(t, err)
	assert.Empty(t, prefixes)
}

func TestAccessCodePrefersQuery(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/admin?code=fromquery", nil)
	r.Header.Set(AccessCodeHeader, "fromheader")
	assert.Equal(t, "fromquery", AccessCode(r))

	r = httptest.NewRequest(http.MethodGet, "/admin", nil)
	r.Header.Set(AccessCodeHeader, "fromheader")
	assert.Equal(t, "fromheader", AccessCode(r))

	assert.Empty(t, AccessCode(httptest.NewRequest(http.MethodGet, "/admin", nil)))
}
