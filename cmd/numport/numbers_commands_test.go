package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

func startNumbersPlatform(t *testing.T) (*httptest.Server, func() []string) {
	t.Helper()

	var mu sync.Mutex
	var released []string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/purchased-phone-numbers":
			fmt.Fprint(w, `{"data":[{"id":"pn_1","number":"+15551230001","name":"main","country":"us","provider":"twilio","created_at":"2024-03-01T10:15:00.000Z"},{"id":"pn_2","number":"+15551230002","name":"old","deleted":true}]}`)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/release-phone-number/"):
			mu.Lock()
			released = append(released, strings.TrimPrefix(r.URL.Path, "/release-phone-number/"))
			mu.Unlock()
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected platform call %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	snapshot := func() []string {
		mu.Lock()
		defer mu.Unlock()
		return append([]string(nil), released...)
	}
	return server, snapshot
}

func TestNumbersListShowsStatus(t *testing.T) {
	server, _ := startNumbersPlatform(t)
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	out, _, err := runCLI(t, env.configPath, "numbers", "list")
	if err != nil {
		t.Fatalf("numbers list: %v", err)
	}
	requireContains(t, out, "+15551230001")
	requireContains(t, out, "active")
	requireContains(t, out, "deleted")
	requireContains(t, out, "US")
	requireContains(t, out, "Twilio")
	requireContains(t, out, "2024-03-01")
	requireContains(t, out, "2 numbers on the source account (1 active)")

	out, _, err = runCLI(t, env.configPath, "numbers", "list", "--json")
	if err != nil {
		t.Fatalf("numbers list --json: %v", err)
	}
	requireContains(t, out, `"id": "pn_1"`)
}

func TestNumbersReleaseRequiresConfirmation(t *testing.T) {
	server, released := startNumbersPlatform(t)
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	_, _, err := runCLI(t, env.configPath, "numbers", "release")
	if err == nil {
		t.Fatal("expected release without confirmation to fail")
	}
	requireContains(t, err.Error(), "--yes")
	if calls := released(); len(calls) != 0 {
		t.Fatalf("no numbers should be released without confirmation, got %v", calls)
	}
}

func TestNumbersReleaseWithYes(t *testing.T) {
	server, released := startNumbersPlatform(t)
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	out, _, err := runCLI(t, env.configPath, "numbers", "release", "--yes")
	if err != nil {
		t.Fatalf("numbers release: %v", err)
	}
	requireContains(t, out, "Released 1 of 1 active numbers (0 failed, 1 already deleted)")

	calls := released()
	if len(calls) != 1 || calls[0] != "pn_1" {
		t.Fatalf("unexpected release calls: %v", calls)
	}
}

func TestNumbersRejectsUnknownAccount(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env.configPath, "numbers", "list", "--account", "staging")
	if err == nil {
		t.Fatal("expected unknown account to fail")
	}
	requireContains(t, err.Error(), "unknown account")
}
