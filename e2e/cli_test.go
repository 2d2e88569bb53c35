package e2e_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"net"
	"net/http"
	"net/url"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/mcoot/badancup/internal/api"
	"github.com/mcoot/badancup/internal/cli"
	"github.com/mcoot/badancup/internal/config"
	"github.com/mcoot/badancup/internal/factory"
	"github.com/mcoot/badancup/internal/services/auth"
	"github.com/mcoot/badancup/internal/testutil"
	"github.com/mcoot/badancup/internal/web"
)

const adminCode = "e2e-code"

// startServer runs the full stack on a random port backed by SQLite
func startServer(t *testing.T, dbPath string) string {
	t.Helper()

	logger := testutil.NopLogger()
	app, err := factory.New(factory.Config{
		StorageType:  config.StorageTypeSQLite,
		DatabasePath: dbPath,
		AuthConfig:   auth.Config{AccessCode: adminCode, Cost: bcrypt.MinCost},
		Logger:       logger,
	})
	require.NoError(t, err)

	mux := http.NewServeMux()
	mux.Handle("/api/", api.NewRouter(api.RouterConfig{
		Logger:       logger,
		Registration: app.Registration,
		Roster:       app.Roster,
		Gate:         app.Gate,
	}))
	mux.Handle("/", web.NewRouter(web.RouterConfig{
		Logger:       logger,
		Registration: app.Registration,
		Roster:       app.Roster,
		Gate:         app.Gate,
	}))

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	cfg := api.DefaultServerConfig()
	cfg.ShutdownTimeout = 5 * time.Second
	server := api.NewServer(mux, cfg, logger)

	done := make(chan error, 1)
	go func() { done <- server.Serve(l) }()

	t.Cleanup(func() {
		assert.NoError(t, server.Shutdown(context.Background()))
		assert.NoError(t, <-done)
		assert.NoError(t, app.Close())
	})

	return "http://" + l.Addr().String()
}

// runCLI executes badanctl in-process and returns stdout
func runCLI(t *testing.T, serverURL string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := cli.NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--server", serverURL, "--admin-code", adminCode}, args...))
	err := cmd.Execute()
	return out.String(), err
}

// noRedirect is an HTTP client that reports redirects instead of following them
var noRedirect = &http.Client{
	CheckRedirect: func(*http.Request, []*http.Request) error { return http.ErrUseLastResponse },
	Timeout:       10 * time.Second,
}

func TestRegistrationLifecycle(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "players.db")
	serverURL := startServer(t, dbPath)

	// Browser form submission
	resp, err := noRedirect.PostForm(serverURL+"/register", url.Values{
		"name": {"Ali"}, "village": {"Badan"}, "phone": {"0501234567"},
	})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusSeeOther, resp.StatusCode)
	assert.Equal(t, "/thankyou", resp.Header.Get("Location"))

	// Same pair again through the form
	resp, err = noRedirect.PostForm(serverURL+"/register", url.Values{"name": {"Ali"}, "village": {"Badan"}})
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	// Through the CLI and JSON API
	out, err := runCLI(t, serverURL, "register", "--name", "Omar", "--village", "Al-Hamra", "--team", "Falcons")
	require.NoError(t, err)
	assert.Contains(t, out, "Registered #2 Omar")

	_, err = runCLI(t, serverURL, "register", "--name", "Omar", "--village", "Al-Hamra")
	assert.ErrorContains(t, err, "DUPLICATE_PLAYER")

	out, err = runCLI(t, serverURL, "health")
	require.NoError(t, err)
	assert.Contains(t, out, "Players: 2")

	// Export reflects both, newest first
	out, err = runCLI(t, serverURL, "players", "export")
	require.NoError(t, err)
	records, err := csv.NewReader(strings.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "Omar", records[1][1])
	assert.Equal(t, "Falcons", records[1][4])
	assert.Equal(t, "Ali", records[2][1])
	assert.Equal(t, "0501234567", records[2][2])
}

func TestConcurrentDuplicateSubmissions(t *testing.T) {
	serverURL := startServer(t, filepath.Join(t.TempDir(), "players.db"))

	const attempts = 10
	statuses := make(chan int, attempts)
	var wg sync.WaitGroup
	for range attempts {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := noRedirect.PostForm(serverURL+"/register", url.Values{"name": {"Ali"}, "village": {"Badan"}})
			if err != nil {
				statuses <- 0
				return
			}
			_ = resp.Body.Close()
			statuses <- resp.StatusCode
		}()
	}
	wg.Wait()
	close(statuses)

	counts := map[int]int{}
	for s := range statuses {
		counts[s]++
	}
	assert.Equal(t, 1, counts[http.StatusSeeOther])
	assert.Equal(t, attempts-1, counts[http.StatusConflict])

	out, err := runCLI(t, serverURL, "--output", "json", "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, `"count": 1`)
}

func TestRegistrationsSurviveRestart(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "players.db")

	first := startServer(t, dbPath)
	_, err := runCLI(t, first, "register", "--name", "Ali", "--village", "Badan")
	require.NoError(t, err)

	second := startServer(t, dbPath)
	out, err := runCLI(t, second, "players", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Players: 1")
	assert.Contains(t, out, "Ali")

	_, err = runCLI(t, second, "register", "--name", "Ali", "--village", "Badan")
	assert.ErrorContains(t, err, "DUPLICATE_PLAYER")
}

func TestAdminGateOverHTTP(t *testing.T) {
	serverURL := startServer(t, filepath.Join(t.TempDir(), "players.db"))

	resp, err := noRedirect.Get(serverURL + "/admin?code=wrong")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = noRedirect.Get(serverURL + "/admin?code=" + adminCode)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
