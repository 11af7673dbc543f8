package util

import (
	"net/http"
	"net/url"
	"testing"
)

func requestFor(t *testing.T, rawURL string) *http.Request {
	t.Helper()
	u, err := url.Parse(rawURL)
	if err != nil {
		t.Fatalf("parse url: %v", err)
	}
	return &http.Request{URL: u}
}

func TestNewProxyFunc_ConfiguredProxies(t *testing.T) {
	proxyFunc := NewProxyFunc("http://proxy:3128", "http://sproxy:3128", "")

	got, err := proxyFunc(requestFor(t, "https://api.example.com/v1"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil || got.Host != "sproxy:3128" {
		t.Errorf("Expected https proxy, got %v", got)
	}

	got, err = proxyFunc(requestFor(t, "http://api.example.com/v1"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got == nil || got.Host != "proxy:3128" {
		t.Errorf("Expected http proxy, got %v", got)
	}
}

func TestNewProxyFunc_NoProxyBypass(t *testing.T) {
	proxyFunc := NewProxyFunc("http://proxy:3128", "", "localhost, .internal.example.com")

	got, err := proxyFunc(requestFor(t, "http://localhost:11434/api/generate"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected direct connection for localhost, got %v", got)
	}

	got, err = proxyFunc(requestFor(t, "http://svc.internal.example.com/health"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if got != nil {
		t.Errorf("Expected direct connection for bypassed suffix, got %v", got)
	}
}
