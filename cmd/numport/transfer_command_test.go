package main

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"numport/internal/fileutil"
	"numport/internal/plan"
	"numport/internal/services/daily"
)

func TestTransferRunEndToEnd(t *testing.T) {
	server, calls := startFakePlatform(t)
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	p := plan.NewPlan()
	p.Add("+15551230001", &plan.Entry{
		SourcePhoneID: "pn_1",
		SourceType:    plan.SourceRootPinless,
		ConfigData: daily.DialinConfig{
			"phone_number":      "+15551230001",
			"room_creation_api": "daily",
			"name_prefix":       "main",
			"type":              "pinless_dialin",
		},
	})
	p.Add("sip:support@example.com", &plan.Entry{
		SourceType: plan.SourceDomainDialin,
		ConfigID:   "cfg_1",
		ConfigData: daily.DialinConfig{
			"sip_uri":           "sip:support@example.com",
			"room_creation_api": "daily",
			"type":              "domain-dialin-config",
		},
	})
	if err := plan.Save(env.planPath, p); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "transfer", "--yes")
	if err != nil {
		t.Fatalf("transfer: %v", err)
	}
	requireContains(t, out, "Transfer finished: 2 succeeded, 0 failed")

	var moved, created, deleted []recordedCall
	for _, call := range calls() {
		switch {
		case call.method == http.MethodPost && strings.HasPrefix(call.path, "/transfer-phone-number/"):
			moved = append(moved, call)
		case call.method == http.MethodPost && call.path == "/domain-dialin-config":
			created = append(created, call)
		case call.method == http.MethodDelete && strings.HasPrefix(call.path, "/domain-dialin-config/"):
			deleted = append(deleted, call)
		}
	}

	if len(moved) != 1 || moved[0].path != "/transfer-phone-number/pn_1" || moved[0].key != "src-key" {
		t.Fatalf("unexpected move calls: %+v", moved)
	}
	if moved[0].body["transferDomainName"] != "target-team" || moved[0].body["transferDomainApi"] != "tgt-key" {
		t.Fatalf("unexpected transfer body: %+v", moved[0].body)
	}
	if len(deleted) != 1 || deleted[0].path != "/domain-dialin-config/cfg_1" || deleted[0].key != "src-key" {
		t.Fatalf("unexpected delete calls: %+v", deleted)
	}
	if len(created) != 2 {
		t.Fatalf("expected 2 config creations, got %d", len(created))
	}
	for _, call := range created {
		if call.key != "tgt-key" {
			t.Fatalf("config created with key %q, want tgt-key", call.key)
		}
	}
	if _, ok := created[1].body["sip_uri"]; ok {
		t.Fatal("sip_uri must not travel to the target")
	}

	var successes []string
	if err := fileutil.ReadJSON(env.successPath, &successes); err != nil {
		t.Fatalf("read success file: %v", err)
	}
	if len(successes) != 4 {
		t.Fatalf("expected 4 success records, got %d: %v", len(successes), successes)
	}
	var failures []string
	if err := fileutil.ReadJSON(env.failurePath, &failures); err != nil {
		t.Fatalf("read failure file: %v", err)
	}
	if len(failures) != 0 {
		t.Fatalf("expected no failure records, got %v", failures)
	}
}

func TestTransferEntryFailureStillSucceedsRun(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			if bearerKey(r.Header.Get("Authorization")) == "src-key" {
				fmt.Fprint(w, `{"domain_name":"source-team","domain_id":"d-src"}`)
			} else {
				fmt.Fprint(w, `{"domain_name":"target-team","domain_id":"d-tgt"}`)
			}
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/transfer-phone-number/"):
			fmt.Fprint(w, `{}`)
		case r.Method == http.MethodPost && r.URL.Path == "/domain-dialin-config":
			http.Error(w, `{"error":"invalid config"}`, http.StatusInternalServerError)
		default:
			t.Errorf("unexpected platform call %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	p := plan.NewPlan()
	p.Add("+15551230001", &plan.Entry{
		SourcePhoneID: "pn_1",
		SourceType:    plan.SourceRootPinless,
		ConfigData: daily.DialinConfig{
			"phone_number":      "+15551230001",
			"room_creation_api": "daily",
		},
	})
	if err := plan.Save(env.planPath, p); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	// Entry failures are recorded, not escalated; the command still exits zero.
	out, _, err := runCLI(t, env.configPath, "transfer", "--yes")
	if err != nil {
		t.Fatalf("transfer returned error on entry failure: %v", err)
	}
	requireContains(t, out, "Transfer finished: 0 succeeded, 1 failed")

	var failures []string
	if err := fileutil.ReadJSON(env.failurePath, &failures); err != nil {
		t.Fatalf("read failure file: %v", err)
	}
	if len(failures) != 1 || !strings.Contains(failures[0], "config create on target failed") {
		t.Fatalf("unexpected failure records: %v", failures)
	}
}

func TestTransferIdentityFailureKeepsPreviousResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			http.Error(w, `{"error":"bad key"}`, http.StatusUnauthorized)
			return
		}
		t.Errorf("unexpected platform call %s %s", r.Method, r.URL.Path)
		http.NotFound(w, r)
	}))
	defer server.Close()

	env := setupCLITestEnv(t, server.URL)

	p := plan.NewPlan()
	p.Add("+15551230001", &plan.Entry{SourcePhoneID: "pn_1"})
	if err := plan.Save(env.planPath, p); err != nil {
		t.Fatalf("save plan: %v", err)
	}
	previous := []string{"earlier run"}
	if err := fileutil.WriteJSONAtomic(env.successPath, previous); err != nil {
		t.Fatalf("seed success file: %v", err)
	}
	if err := fileutil.WriteJSONAtomic(env.failurePath, previous); err != nil {
		t.Fatalf("seed failure file: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "transfer", "--yes")
	if err == nil {
		t.Fatal("expected identity failure to abort the run")
	}
	requireContains(t, err.Error(), "identity check failed")
	if strings.Contains(out, "Transfer finished") {
		t.Fatalf("aborted run must not report a summary, got %q", out)
	}

	var successes []string
	if err := fileutil.ReadJSON(env.successPath, &successes); err != nil {
		t.Fatalf("read success file: %v", err)
	}
	if len(successes) != 1 || successes[0] != "earlier run" {
		t.Fatalf("aborted run must keep previous results, got %v", successes)
	}
}

func TestTransferRefusesWithoutConfirmation(t *testing.T) {
	env := setupCLITestEnv(t, "")

	p := plan.NewPlan()
	p.Add("+15551230001", &plan.Entry{SourcePhoneID: "pn_1"})
	if err := plan.Save(env.planPath, p); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	_, _, err := runCLI(t, env.configPath, "transfer")
	if err == nil {
		t.Fatal("expected transfer without confirmation to fail")
	}
	requireContains(t, err.Error(), "--yes")
}

func TestTransferEmptyPlanIsNoop(t *testing.T) {
	env := setupCLITestEnv(t, "")

	if err := plan.Save(env.planPath, plan.NewPlan()); err != nil {
		t.Fatalf("save plan: %v", err)
	}

	out, _, err := runCLI(t, env.configPath, "transfer")
	if err != nil {
		t.Fatalf("transfer on empty plan: %v", err)
	}
	requireContains(t, out, "Transfer plan is empty")
}

func TestTransferMissingPlanFails(t *testing.T) {
	env := setupCLITestEnv(t, "")

	_, _, err := runCLI(t, env.configPath, "transfer", "--yes")
	if err == nil {
		t.Fatal("expected transfer without a plan to fail")
	}
	requireContains(t, err.Error(), "no transfer plan")
}
