package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mmynk/konta/internal/auth"
	"github.com/mmynk/konta/internal/ledger"
	"github.com/mmynk/konta/internal/metrics"
	"github.com/mmynk/konta/internal/storage/sqlite"
)

const (
	testUsername = "admin"
	testPassword = "correct horse"
)

type testEnv struct {
	server   *httptest.Server
	client   *http.Client
	ledger   *ledger.Ledger
	registry *prometheus.Registry
	session  *http.Cookie
}

func setupTestServer(t *testing.T) *testEnv {
	t.Helper()

	store, err := sqlite.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })

	authenticator := auth.NewPasswordAuthenticator(store)
	if _, err := authenticator.Register(context.Background(), testUsername, testPassword); err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	guard := auth.NewGuard(authenticator, auth.NewJWTManager("test-secret-0123456789", time.Hour),
		auth.NewThrottle(3, time.Minute), slog.Default())

	reg := prometheus.NewRegistry()
	l := ledger.New(store)
	srv, err := New(l, guard, WithMetrics(metrics.New(reg)), WithStaticMaxAge(60))
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	srv.now = func() time.Time { return time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC) }

	server := httptest.NewServer(srv.Handler())
	t.Cleanup(server.Close)

	env := &testEnv{
		server: server,
		client: &http.Client{
			CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
		},
		ledger:   l,
		registry: reg,
	}

	resp := env.post(t, "/login", url.Values{"username": {testUsername}, "password": {testPassword}})
	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", resp.StatusCode)
	}
	for _, c := range resp.Cookies() {
		if c.Name == SessionCookie {
			env.session = c
		}
	}
	if env.session == nil {
		t.Fatal("login did not set a session cookie")
	}
	return env
}

func (e *testEnv) do(t *testing.T, req *http.Request) *http.Response {
	t.Helper()
	if e.session != nil {
		req.AddCookie(e.session)
	}
	resp, err := e.client.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", req.Method, req.URL.Path, err)
	}
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (e *testEnv) get(t *testing.T, path string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, e.server.URL+path, nil)
	if err != nil {
		t.Fatal(err)
	}
	return e.do(t, req)
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, e.server.URL+path, strings.NewReader(form.Encode()))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func assertStatus(t *testing.T, resp *http.Response, want int) {
	t.Helper()
	if resp.StatusCode != want {
		t.Fatalf("%s %s status = %d, want %d", resp.Request.Method, resp.Request.URL.Path, resp.StatusCode, want)
	}
}

func TestSession(t *testing.T) {
	env := setupTestServer(t)
	anonymous := &testEnv{server: env.server, client: env.client}

	t.Run("redirects to login", func(t *testing.T) {
		resp := anonymous.get(t, "/members")
		assertStatus(t, resp, http.StatusSeeOther)
		if loc := resp.Header.Get("Location"); loc != "/login?next=%2Fmembers" {
			t.Errorf("Location = %q", loc)
		}
	})

	t.Run("rejects mutations", func(t *testing.T) {
		resp := anonymous.post(t, "/members", url.Values{"name": {"Mallory"}})
		assertStatus(t, resp, http.StatusSeeOther)
		members, err := env.ledger.Members(context.Background())
		if err != nil {
			t.Fatal(err)
		}
		if len(members) != 0 {
			t.Errorf("anonymous post added %d members", len(members))
		}
	})

	t.Run("rejects forged cookie", func(t *testing.T) {
		forged := &testEnv{server: env.server, client: env.client, session: &http.Cookie{Name: SessionCookie, Value: "forged"}}
		resp := forged.get(t, "/")
		assertStatus(t, resp, http.StatusSeeOther)
	})

	t.Run("wrong password", func(t *testing.T) {
		resp := anonymous.post(t, "/login", url.Values{"username": {testUsername}, "password": {"wrong password"}})
		assertStatus(t, resp, http.StatusUnauthorized)
		if !strings.Contains(readBody(t, resp), "Invalid username or password.") {
			t.Error("missing error message")
		}
	})

	t.Run("cookie flags", func(t *testing.T) {
		if !env.session.HttpOnly {
			t.Error("session cookie is not HttpOnly")
		}
		if env.session.SameSite != http.SameSiteLaxMode {
			t.Errorf("SameSite = %v, want Lax", env.session.SameSite)
		}
	})

	t.Run("logout clears cookie", func(t *testing.T) {
		resp := env.post(t, "/logout", nil)
		assertStatus(t, resp, http.StatusSeeOther)
		var cleared bool
		for _, c := range resp.Cookies() {
			if c.Name == SessionCookie && c.MaxAge < 0 {
				cleared = true
			}
		}
		if !cleared {
			t.Error("logout did not clear the session cookie")
		}
	})
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		next string
		want string
	}{
		{"", "/"},
		{"/bills", "/bills"},
		{"/members?x=1", "/members?x=1"},
		{"https://evil.example", "/"},
		{"//evil.example", "/"},
		{"/\\evil.example", "/"},
	}
	for _, tt := range tests {
		if got := safeNext(tt.next); got != tt.want {
			t.Errorf("safeNext(%q) = %q, want %q", tt.next, got, tt.want)
		}
	}
}

func TestHouseholdFlow(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		resp := env.post(t, "/members", url.Values{"name": {name}, "mail": {strings.ToLower(name) + "@example.com"}})
		assertStatus(t, resp, http.StatusSeeOther)
	}

	resp := env.post(t, "/bills", url.Values{"description": {"Rent"}, "amount": {"300"}})
	assertStatus(t, resp, http.StatusSeeOther)

	resp = env.get(t, "/")
	assertStatus(t, resp, http.StatusOK)
	body := readBody(t, resp)
	for _, want := range []string{"Rent", "100.00", "300.00"} {
		if !strings.Contains(body, want) {
			t.Errorf("index missing %q", want)
		}
	}

	members, err := env.ledger.Members(ctx)
	if err != nil {
		t.Fatal(err)
	}
	resp = env.post(t, "/members/"+members[0].ID+"/pay", url.Values{"amount": {"100"}})
	assertStatus(t, resp, http.StatusSeeOther)

	bills, err := env.ledger.Bills(ctx)
	if err != nil {
		t.Fatal(err)
	}
	resp = env.post(t, "/bills/"+bills[0].ID+"/delete", nil)
	assertStatus(t, resp, http.StatusSeeOther)

	members, err = env.ledger.Members(ctx)
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]string{"A": "-100", "B": "0", "C": "0"}
	for _, m := range members {
		if !m.Debt.Equal(decimal.RequireFromString(want[m.Name])) {
			t.Errorf("%s debt = %s, want %s", m.Name, m.Debt, want[m.Name])
		}
	}

	resp = env.get(t, "/log")
	assertStatus(t, resp, http.StatusOK)
	body = readBody(t, resp)
	for _, want := range []string{"A paid 100.00", "Deleted bill Rent"} {
		if !strings.Contains(body, want) {
			t.Errorf("log missing %q", want)
		}
	}
}

func TestEditAndPayAll(t *testing.T) {
	env := setupTestServer(t)
	ctx := context.Background()

	assertStatus(t, env.post(t, "/members", url.Values{"name": {"Alice"}, "initial_debt": {"10,50"}}), http.StatusSeeOther)
	assertStatus(t, env.post(t, "/members", url.Values{"name": {"Bob"}}), http.StatusSeeOther)
	assertStatus(t, env.post(t, "/bills", url.Values{"description": {"Internet"}, "amount": {"40"}}), http.StatusSeeOther)

	members, err := env.ledger.Members(ctx)
	if err != nil {
		t.Fatal(err)
	}
	bills, err := env.ledger.Bills(ctx)
	if err != nil {
		t.Fatal(err)
	}

	resp := env.get(t, "/members/"+members[0].ID+"/edit")
	assertStatus(t, resp, http.StatusOK)
	if !strings.Contains(readBody(t, resp), `value="Alice"`) {
		t.Error("edit form not prefilled")
	}

	assertStatus(t, env.post(t, "/members/"+members[0].ID+"/edit", url.Values{"name": {"Alicia"}}), http.StatusSeeOther)
	assertStatus(t, env.post(t, "/bills/"+bills[0].ID+"/edit", url.Values{"description": {"Internet"}, "amount": {"60"}}), http.StatusSeeOther)
	assertStatus(t, env.post(t, "/pay-all", url.Values{"amount": {"5"}}), http.StatusSeeOther)

	members, err = env.ledger.Members(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if members[0].Name != "Alicia" {
		t.Errorf("Name = %q, want Alicia", members[0].Name)
	}
	// 10.50 + 30 - 5 and 30 - 5
	if !members[0].Debt.Equal(decimal.RequireFromString("35.5")) {
		t.Errorf("Alicia debt = %s, want 35.5", members[0].Debt)
	}
	if !members[1].Debt.Equal(decimal.RequireFromString("25")) {
		t.Errorf("Bob debt = %s, want 25", members[1].Debt)
	}

	assertStatus(t, env.post(t, "/members/"+members[1].ID+"/delete", nil), http.StatusSeeOther)
	members, err = env.ledger.Members(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(members) != 1 {
		t.Errorf("Expected 1 member, got %d", len(members))
	}
}

func TestErrors(t *testing.T) {
	env := setupTestServer(t)

	tests := []struct {
		name       string
		method     string
		path       string
		form       url.Values
		wantStatus int
		wantBody   string
	}{
		{"bill without members", http.MethodPost, "/bills", url.Values{"description": {"Rent"}, "amount": {"300"}},
			http.StatusConflict, "Add a member before adding bills."},
		{"invalid amount", http.MethodPost, "/bills", url.Values{"description": {"Rent"}, "amount": {"abc"}},
			http.StatusUnprocessableEntity, "Amount is not a valid amount."},
		{"invalid initial debt", http.MethodPost, "/members", url.Values{"name": {"A"}, "initial_debt": {"1e3"}},
			http.StatusUnprocessableEntity, "Initial debt is not a valid amount."},
		{"unknown member", http.MethodGet, "/members/nonexistent/edit", nil,
			http.StatusNotFound, "Not found."},
		{"pay unknown member", http.MethodPost, "/members/nonexistent/pay", url.Values{"amount": {"1"}},
			http.StatusNotFound, "Not found."},
		{"delete unknown bill", http.MethodPost, "/bills/nonexistent/delete", nil,
			http.StatusNotFound, "Not found."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var resp *http.Response
			if tt.method == http.MethodPost {
				resp = env.post(t, tt.path, tt.form)
			} else {
				resp = env.get(t, tt.path)
			}
			assertStatus(t, resp, tt.wantStatus)
			if body := readBody(t, resp); !strings.Contains(body, tt.wantBody) {
				t.Errorf("body missing %q", tt.wantBody)
			}
		})
	}

	t.Run("form values are kept", func(t *testing.T) {
		resp := env.post(t, "/bills", url.Values{"description": {"Gas"}, "amount": {"x"}})
		if !strings.Contains(readBody(t, resp), `value="Gas"`) {
			t.Error("description not re-rendered")
		}
	})
}

func TestNotify(t *testing.T) {
	env := setupTestServer(t)
	assertStatus(t, env.post(t, "/members", url.Values{"name": {"Alice"}, "mail": {"alice@example.com"}}), http.StatusSeeOther)

	resp := env.get(t, "/notify")
	assertStatus(t, resp, http.StatusSeeOther)
	loc := resp.Header.Get("Location")
	if !strings.HasPrefix(loc, "mailto:alice@example.com?subject=") {
		t.Errorf("Location = %q", loc)
	}
	if !strings.Contains(loc, "March%202026") {
		t.Errorf("Location missing month: %q", loc)
	}
}

func TestHeadersAndMetrics(t *testing.T) {
	env := setupTestServer(t)

	resp := env.get(t, "/healthz")
	assertStatus(t, resp, http.StatusOK)
	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy", "X-Request-ID"} {
		if resp.Header.Get(h) == "" {
			t.Errorf("missing header %s", h)
		}
	}

	resp = env.get(t, "/static/style.css")
	assertStatus(t, resp, http.StatusOK)
	if cc := resp.Header.Get("Cache-Control"); cc != "public, max-age=60" {
		t.Errorf("Cache-Control = %q", cc)
	}

	rec := httptest.NewRecorder()
	metrics.Handler(env.registry).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	body := rec.Body.String()
	for _, want := range []string{
		`konta_http_requests_total{route="GET /healthz",status="200"} 1`,
		`konta_http_requests_total{route="POST /login",status="303"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("metrics missing %q", want)
		}
	}
}
