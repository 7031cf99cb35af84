package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli/v2"

	"github.com/amrelfalogy/smarted/internal/config"
	"github.com/amrelfalogy/smarted/internal/pkg/auth"
	"github.com/amrelfalogy/smarted/internal/pkg/credstore"
)

type harness struct {
	out   *bytes.Buffer
	store *credstore.MemoryStore
	app   *cli.App
	slept []time.Duration
}

func newHarness(t *testing.T, handler http.HandlerFunc) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.Backend.BaseURL = srv.URL
	cfg.Backend.LoginPath = "/api/auth/login"
	cfg.Backend.LogoutPath = "/api/auth/logout"
	cfg.Session.RedirectDelay = "1500ms"
	cfg.Session.LoginPath = "/auth/login"

	h := &harness{out: &bytes.Buffer{}, store: credstore.NewMemoryStore()}
	h.app = NewApp(Options{
		Out:        h.out,
		Err:        io.Discard,
		Config:     cfg,
		Store:      h.store,
		HTTPClient: srv.Client(),
		Sleeper: func(ctx context.Context, d time.Duration) {
			h.slept = append(h.slept, d)
		},
	})
	return h
}

func (h *harness) run(args ...string) error {
	return h.app.Run(append([]string{"smarted"}, args...))
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

func adminToken(t *testing.T, expires time.Time) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, auth.Claims{
		UserID:           "u-1",
		Email:            "admin@smarted.eg",
		Role:             "admin",
		RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(expires)},
	}).SignedString([]byte("backend-secret"))
	require.NoError(t, err)
	return token
}

func TestLoginThenWhoami(t *testing.T) {
	token := adminToken(t, time.Now().Add(time.Hour))
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "admin@smarted.eg", body["email"])
		writeJSON(w, http.StatusOK, fmt.Sprintf(
			`{"data":{"token":%q,"user":{"id":"u-1","firstName":"Mona","lastName":"Adel","role":"admin"}}}`, token))
	})

	require.NoError(t, h.run("login", "--email", "admin@smarted.eg", "--password", "secret"))
	assert.Contains(t, h.out.String(), "Signed in as Mona Adel (Administrator)")
	assert.Equal(t, token, credstore.Token(h.store))

	h.out.Reset()
	require.NoError(t, h.run("whoami"))
	assert.Contains(t, h.out.String(), "admin@smarted.eg")
	assert.Contains(t, h.out.String(), "Administrator")
	assert.NotContains(t, h.out.String(), "expired")
}

func TestWhoamiWithoutToken(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	err := h.run("whoami")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not signed in")
}

func TestLogoutExitsZeroWhenBackendFails(t *testing.T) {
	calls := 0
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		calls++
		assert.Equal(t, "/api/auth/logout", r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, `{"message":"boom"}`)
	})
	require.NoError(t, h.store.Set(credstore.AuthTokenKey, "stale"))

	err := h.run("logout")

	require.NoError(t, err)
	assert.Equal(t, 0, ExitCode(err))
	assert.Equal(t, 1, calls)
	assert.Empty(t, credstore.Token(h.store))
	assert.Contains(t, h.out.String(), "Backend logout failed, local session cleared")
	assert.Contains(t, h.out.String(), "Redirecting to /auth/login")
	assert.NotContains(t, h.out.String(), "Logged out successfully")
	assert.Equal(t, []time.Duration{1500 * time.Millisecond}, h.slept)
}

func TestLogoutSuccessNotifies(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		writeJSON(w, http.StatusOK, `{"success":true}`)
	})
	require.NoError(t, h.store.Set(credstore.AuthTokenKey, "tok"))

	require.NoError(t, h.run("logout"))
	assert.Contains(t, h.out.String(), "Logged out successfully\nRedirecting to /auth/login")
}

func TestLessonsListSendsOnlyGivenFilters(t *testing.T) {
	var query string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.RawQuery
		writeJSON(w, http.StatusOK, `{
			"lessons":[{"id":"l1","title":"Intro","type":"video","duration":95,"order":1,"isFree":true}],
			"pagination":{"page":1,"totalPages":3,"totalItems":25,"limit":10}}`)
	})

	require.NoError(t, h.run("lessons", "list", "--lecture", "lec-1", "--free=false"))

	assert.Equal(t, "isFree=false&lectureId=lec-1", query)
	out := h.out.String()
	assert.Contains(t, out, "Intro")
	assert.Contains(t, out, "1:35")
	assert.Contains(t, out, "Page 1 of 3 (25 items), next: --page 2")
}

func TestLessonsUpdateSendsChangedFieldsOnly(t *testing.T) {
	var body map[string]interface{}
	var method, path string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		method, path = r.Method, r.URL.Path
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		writeJSON(w, http.StatusOK, `{"id":"l1","title":"Vectors"}`)
	})

	require.NoError(t, h.run("lessons", "update", "--title", "Vectors", "--free=false", "l1"))

	assert.Equal(t, http.MethodPut, method)
	assert.Equal(t, "/api/content/lessons/l1", path)
	assert.Equal(t, map[string]interface{}{"title": "Vectors", "isFree": false}, body)
	assert.Contains(t, h.out.String(), "Updated lesson l1")
}

func TestLessonsDeleteRequiresID(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	err := h.run("lessons", "delete")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestYearsCurrentUnwrapsEnvelope(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/academic/academic-years/current", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"academicYear":{"id":"y25","name":"2025/2026","isCurrent":true,"isActive":true}}`)
	})

	require.NoError(t, h.run("years", "current"))
	assert.Contains(t, h.out.String(), "2025/2026")
}

func TestCodesListShowsUsage(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"codes":[
			{"id":"c1","code":"ABC123","subjectId":"s1","maxUses":10,"currentUses":3,"isActive":true},
			{"id":"c2","code":"ZERO00","lessonId":"l1","maxUses":0,"currentUses":0,"isActive":true}]}`)
	})

	require.NoError(t, h.run("codes", "list"))
	out := h.out.String()
	assert.Contains(t, out, "3/10")
	assert.Contains(t, out, "30%")
	assert.Contains(t, out, "0/0")
	assert.Contains(t, out, "0%")
}

func TestUploadPrintsProgressAndURL(t *testing.T) {
	var field string
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/uploads/receipt", r.URL.Path)
		if !assert.NoError(t, r.ParseMultipartForm(1<<20)) {
			return
		}
		for name := range r.MultipartForm.File {
			field = name
		}
		writeJSON(w, http.StatusOK, `{"file":{"url":"https://cdn.smarted.eg/r.pdf","fileName":"r.pdf","fileSize":4}}`)
	})

	path := filepath.Join(t.TempDir(), "r.pdf")
	require.NoError(t, os.WriteFile(path, []byte("%PDF"), 0o600))

	require.NoError(t, h.run("upload", "--kind", "receipt", path))

	assert.Equal(t, "file", field)
	out := h.out.String()
	assert.Contains(t, out, "100%")
	assert.Contains(t, out, "https://cdn.smarted.eg/r.pdf")
}

func TestUploadRejectsUnknownKind(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request %s", r.URL.Path)
	})
	err := h.run("upload", "--kind", "audio", "x.mp3")
	require.Error(t, err)
	assert.Equal(t, 2, ExitCode(err))
}

func TestBackendErrorExitsNonZero(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"message":"no such unit"}`)
	})
	err := h.run("units", "delete", "u9")
	require.Error(t, err)
	assert.Equal(t, 1, ExitCode(err))
	assert.Equal(t, 0, ExitCode(nil))
	assert.Equal(t, 1, ExitCode(errors.New("x")))
}

func TestUnitsListBareArrayKeepsPage(t *testing.T) {
	h := newHarness(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "limit=10&page=3", r.URL.RawQuery)
		writeJSON(w, http.StatusOK, `[{"id":"u21","name":"Vectors","order":21},{"id":"u22","name":"Forces","order":22}]`)
	})

	require.NoError(t, h.run("units", "list", "--page", "3", "--limit", "10"))

	out := h.out.String()
	assert.Contains(t, out, "Vectors")
	assert.Contains(t, out, "\nPage 3\n")
	assert.NotContains(t, out, "Page 1 of 1")
}
