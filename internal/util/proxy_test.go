package util

import (
	"net/http"
	"net/url"
	"testing"
)

func request(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_SchemeSelection(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:8080", "http://proxy-b:8443", "")

	got, err := proxy(request(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got == nil || got.Host != "proxy-b:8443" {
		t.Errorf("expected https proxy, got %v", got)
	}

	got, err = proxy(request(t, "http://api.example.com/v1"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:8080" {
		t.Errorf("expected http proxy, got %v", got)
	}
}

func TestNewProxyFunc_HTTPFallsBackWhenOnlyHTTPSSet(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:8080", "", "")

	got, err := proxy(request(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("resolve failed: %v", err)
	}
	if got == nil || got.Host != "proxy-a:8080" {
		t.Errorf("expected http proxy for https request, got %v", got)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxy := NewProxyFunc("http://proxy-a:8080", "", "localhost, .internal.example.com")

	tests := []struct {
		url      string
		bypassed bool
	}{
		{"http://localhost:11434/api/generate", true},
		{"http://ollama.internal.example.com/api/generate", true},
		{"http://internal.example.com/api", true},
		{"http://api.example.com/v1", false},
	}

	for _, tt := range tests {
		got, err := proxy(request(t, tt.url))
		if err != nil {
			t.Fatalf("resolve %s failed: %v", tt.url, err)
		}
		if tt.bypassed && got != nil {
			t.Errorf("%s should bypass the proxy, got %v", tt.url, got)
		}
		if !tt.bypassed && got == nil {
			t.Errorf("%s should use the proxy", tt.url)
		}
	}
}
