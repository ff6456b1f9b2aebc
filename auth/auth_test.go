package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func tokenServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"token123","token_type":"bearer","expires_in":3600}`))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetTokenAndSetAuthHeader(t *testing.T) {
	var calls int32
	server := tokenServer(t, &calls)

	cfg := Conf{ClientID: "id", ClientSecret: "secret", AuthURL: server.URL}
	if !cfg.Enabled() {
		t.Fatalf("expected credentials to be enabled")
	}
	client := NewClientCred(cfg)

	token, err := client.GetToken(context.Background())
	if err != nil {
		t.Fatalf("GetToken returned error: %v", err)
	}
	if token != "token123" {
		t.Fatalf("unexpected token %s", token)
	}

	req, _ := http.NewRequest("GET", "http://example.com", nil)
	if err := client.SetAuthHeader(req); err != nil {
		t.Fatalf("SetAuthHeader returned error: %v", err)
	}
	if auth := req.Header.Get("Authorization"); auth != "Bearer token123" {
		t.Fatalf("Authorization header not set: %q", auth)
	}
	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Fatalf("cached token not reused, %d token requests", n)
	}
	if _, err := client.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("ForceRefresh returned error: %v", err)
	}
	if n := atomic.LoadInt32(&calls); n != 2 {
		t.Fatalf("expected refresh to hit the token endpoint, %d requests", n)
	}
}

func TestHTTPClientAuthenticates(t *testing.T) {
	var calls int32
	tokens := tokenServer(t, &calls)
	var got string
	api := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer api.Close()

	cc := NewClientCred(Conf{ClientID: "id", ClientSecret: "secret", AuthURL: tokens.URL})
	hc := cc.HTTPClient(context.Background(), &http.Client{Timeout: 2 * time.Second})
	if hc.Timeout != 2*time.Second {
		t.Fatalf("timeout not propagated")
	}
	resp, err := hc.Get(api.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
	if got != "Bearer token123" {
		t.Fatalf("unexpected Authorization header %q", got)
	}
}

func TestConfEnabled(t *testing.T) {
	if (Conf{}).Enabled() {
		t.Fatalf("empty conf must be disabled")
	}
}
