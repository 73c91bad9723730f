// SPDX-License-Identifier: MIT
package main

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/thatcatcamp/picodemo/internal/config"
	"github.com/thatcatcamp/picodemo/internal/logging"
	"github.com/thatcatcamp/picodemo/internal/middleware"
	"github.com/thatcatcamp/picodemo/internal/outline"
)

func setupConfig(t *testing.T) {
	t.Helper()
	if err := config.InitConfig(filepath.Join(t.TempDir(), "config.yaml")); err != nil {
		t.Fatalf("InitConfig failed: %v", err)
	}
}

func TestRouterServesBundledSite(t *testing.T) {
	setupConfig(t)

	site, err := newSite(logging.Nop())
	if err != nil {
		t.Fatalf("newSite failed: %v", err)
	}
	r, err := newRouter(site, logging.Nop(), nil)
	if err != nil {
		t.Fatalf("newRouter failed: %v", err)
	}

	for _, path := range []string{"/", "/basic", "/theme.css", "/style/demo.css", "/health"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest("GET", path, nil))
		if w.Code != 200 {
			t.Errorf("GET %s: expected 200, got %d", path, w.Code)
		}
		if w.Header().Get(middleware.RequestIDHeader) == "" {
			t.Errorf("GET %s: missing request id", path)
		}
	}
}

func TestCompilerFromConfigRejectsUnknownPolicy(t *testing.T) {
	setupConfig(t)

	if _, err := compilerFromConfig("shuffle"); err == nil {
		t.Error("Expected error for unknown policy")
	}
	if _, err := compilerFromConfig("reject"); err != nil {
		t.Errorf("Unexpected error: %v", err)
	}
}

func TestDirOrEmbeddedMissingDir(t *testing.T) {
	if _, err := dirOrEmbedded(filepath.Join(t.TempDir(), "nope"), nil); err == nil {
		t.Error("Expected error for missing directory")
	}
}

func TestPrintAnchors(t *testing.T) {
	var buf bytes.Buffer
	printAnchors(&buf,
		[]outline.Entry{
			{Title: "Usage", Level: 2, Anchor: "usage"},
			{Title: "Examples", Level: 3, Anchor: "examples", Depth: 1},
		},
		[]outline.Collision{{Slug: "examples", Title: "Examples", Anchor: "examples-2"}},
	)

	out := buf.String()
	if !strings.Contains(out, "  h3 #examples  Examples\n") {
		t.Errorf("Expected indented child entry, got:\n%s", out)
	}
	if !strings.Contains(out, `"Examples" wanted #examples, got #examples-2`) {
		t.Errorf("Expected collision report, got:\n%s", out)
	}
}

func TestRouterIgnoresSpoofedForwardedFor(t *testing.T) {
	setupConfig(t)

	site, err := newSite(logging.Nop())
	if err != nil {
		t.Fatalf("newSite failed: %v", err)
	}
	r, err := newRouter(site, logging.Nop(), middleware.NewRateLimiter(1, time.Minute))
	if err != nil {
		t.Fatalf("newRouter failed: %v", err)
	}

	allowed := 0
	for i := 0; i < 5; i++ {
		req := httptest.NewRequest("POST", "/theme/toggle", nil)
		req.RemoteAddr = "198.51.100.7:4321"
		req.Header.Set("X-Forwarded-For", fmt.Sprintf("203.0.113.%d", i+1))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code == 200 {
			allowed++
		}
	}
	if allowed != 1 {
		t.Errorf("Expected 1 of 5 requests allowed from one peer, got %d", allowed)
	}
}

func TestRouterRejectsBadTrustedProxies(t *testing.T) {
	setupConfig(t)
	if err := config.Set("server.trusted_proxies", []string{"not-an-ip"}); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	site, err := newSite(logging.Nop())
	if err != nil {
		t.Fatalf("newSite failed: %v", err)
	}
	if _, err := newRouter(site, logging.Nop(), nil); err == nil {
		t.Error("Expected error for invalid trusted proxy")
	}
}

func TestRedirectHandlerPassesChallenges(t *testing.T) {
	const challengePath = "/.well-known/acme-challenge/token123"

	challenges := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path == challengePath {
				w.Write([]byte("token123.key"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
	h := redirectHandler(challenges)

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest("GET", challengePath, nil))
	if w.Code != 200 || w.Body.String() != "token123.key" {
		t.Errorf("Challenge should be answered, got %d %q", w.Code, w.Body.String())
	}

	req := httptest.NewRequest("GET", "/basic", nil)
	req.Host = "demo.example.com"
	w = httptest.NewRecorder()
	h.ServeHTTP(w, req)
	if w.Code != 301 || w.Header().Get("Location") != "https://demo.example.com/basic" {
		t.Errorf("Expected redirect to HTTPS, got %d %q", w.Code, w.Header().Get("Location"))
	}
}

func TestFlattenKeysAndFormatValue(t *testing.T) {
	settings := map[string]interface{}{
		"outline": map[string]interface{}{"anchor_policy": "suffix"},
		"site": map[string]interface{}{
			"title": "Demo",
			"menu": []interface{}{
				map[string]interface{}{"label": "Home", "href": "/"},
			},
			"scripts": []interface{}{"a.js", "b.js"},
		},
	}

	keys := flattenKeys(settings, "")
	want := []string{"outline.anchor_policy", "site.menu", "site.scripts", "site.title"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("Expected %v, got %v", want, keys)
	}

	if got := formatValue(settings, "outline.anchor_policy"); got != "suffix" {
		t.Errorf("Expected suffix, got %q", got)
	}
	if got := formatValue(settings, "site.menu"); got != "\n  - {href: /, label: Home}" {
		t.Errorf("Unexpected menu rendering %q", got)
	}
	if got := formatValue(settings, "site.scripts"); got != "[a.js, b.js]" {
		t.Errorf("Unexpected list rendering %q", got)
	}
	if got := formatValue(settings, "site.missing.deeper"); got != "" {
		t.Errorf("Missing key should be empty, got %q", got)
	}
}

func TestFormatValueDefaultMenu(t *testing.T) {
	setupConfig(t)

	got := formatValue(config.GetAll(), "site.menu")
	if !strings.Contains(got, "{href: /basic, label: Basic}") {
		t.Errorf("Expected default menu entries, got %q", got)
	}
}
