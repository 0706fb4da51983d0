package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
)

type cliTestEnv struct {
	baseDir     string
	configPath  string
	planPath    string
	seedPath    string
	successPath string
	failurePath string
}

// setupCLITestEnv writes a config file whose artifact paths all live in a
// temp directory and whose API base URL points at the given fake platform.
func setupCLITestEnv(t *testing.T, baseURL string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	env := &cliTestEnv{
		baseDir:     base,
		configPath:  filepath.Join(base, "config.toml"),
		planPath:    filepath.Join(base, "transfer_plan.json"),
		seedPath:    filepath.Join(base, "unverified_caller_ids.json"),
		successPath: filepath.Join(base, "transfer_success.json"),
		failurePath: filepath.Join(base, "transfer_failures.json"),
	}

	if baseURL == "" {
		baseURL = "https://platform.invalid/v1"
	}

	content := fmt.Sprintf(`[daily]
base_url = %q
source_api_key = "src-key"
target_api_key = "tgt-key"
request_timeout = 5

[retry]
max_retries = 1
initial_delay = 1
backoff_factor = 2.0

[transfer]
entry_delay = 0

[paths]
plan_file = %q
caller_id_file = %q
success_file = %q
failure_file = %q
log_dir = %q

[logging]
level = "error"
`, baseURL, env.planPath, env.seedPath, env.successPath, env.failurePath, filepath.Join(base, "logs"))
	if err := os.WriteFile(env.configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return env
}

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--config", configPath}, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// bearerKey extracts the API key from an Authorization header value.
func bearerKey(header string) string {
	return strings.TrimPrefix(header, "Bearer ")
}

type recordedCall struct {
	key    string
	method string
	path   string
	body   map[string]any
}

// startFakePlatform serves both accounts from one endpoint, answering
// identity by bearer key and accepting every mutation. The returned snapshot
// function copies the calls recorded so far.
func startFakePlatform(t *testing.T) (*httptest.Server, func() []recordedCall) {
	t.Helper()

	var mu sync.Mutex
	var calls []recordedCall

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := bearerKey(r.Header.Get("Authorization"))

		var body map[string]any
		if data, err := io.ReadAll(r.Body); err == nil && len(data) > 0 {
			_ = json.Unmarshal(data, &body)
		}
		mu.Lock()
		calls = append(calls, recordedCall{key: key, method: r.Method, path: r.URL.Path, body: body})
		mu.Unlock()

		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/":
			if key == "src-key" {
				fmt.Fprint(w, `{"domain_name":"source-team","domain_id":"d-src","config":{"pinless_dialin":[{"phone_number":"+15551230001"}]}}`)
			} else {
				fmt.Fprint(w, `{"domain_name":"target-team","domain_id":"d-tgt"}`)
			}
		case r.Method == http.MethodPost && strings.HasPrefix(r.URL.Path, "/transfer-phone-number/"):
			fmt.Fprint(w, `{}`)
		case r.Method == http.MethodPost && r.URL.Path == "/domain-dialin-config":
			fmt.Fprint(w, `{}`)
		case r.Method == http.MethodDelete && strings.HasPrefix(r.URL.Path, "/domain-dialin-config/"):
			fmt.Fprint(w, `{}`)
		case r.Method == http.MethodPost && r.URL.Path == "/verified-caller-ids":
			fmt.Fprint(w, `{}`)
		default:
			t.Errorf("unexpected platform call %s %s", r.Method, r.URL.Path)
			http.NotFound(w, r)
		}
	}))

	snapshot := func() []recordedCall {
		mu.Lock()
		defer mu.Unlock()
		return append([]recordedCall(nil), calls...)
	}
	return server, snapshot
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
