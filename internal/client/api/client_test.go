package api

import (
	"context"
	"database/sql"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/agrismart/agrismart-cli/internal/client/guard"
	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/client/session"
	"github.com/agrismart/agrismart-cli/internal/client/storage"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"
)

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func testSession(t *testing.T) *session.Store {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(`CREATE TABLE storage (key TEXT PRIMARY KEY, value BLOB NOT NULL);`)
	require.NoError(t, err)
	return session.NewStore(storage.NewSQLiteRepository(db), testLogger())
}

type harness struct {
	client    *Client
	session   *session.Store
	redirects []guard.Route
}

func newHarness(t *testing.T, handler http.Handler) *harness {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	h := &harness{session: testSession(t)}
	h.client = New(srv.URL, h.session, func(r guard.Route) { h.redirects = append(h.redirects, r) }, 5*time.Second, testLogger())
	return h
}

func TestBearerHeader_PresentIffCredentialPresent(t *testing.T) {
	var gotAuth []string
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = append(gotAuth, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`{}`))
	}))
	ctx := context.Background()

	require.NoError(t, h.client.Health(ctx))

	require.NoError(t, h.session.Login(ctx, models.User{ID: 1}, "tok1"))
	require.NoError(t, h.client.Health(ctx))

	h.session.Logout(ctx)
	require.NoError(t, h.client.Health(ctx))

	require.Equal(t, []string{"", "Bearer tok1", ""}, gotAuth)
}

func TestUnauthorized_ForcesLogoutAndRedirect(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"Token has expired"}`))
	}))
	ctx := context.Background()

	require.NoError(t, h.session.Login(ctx, models.User{ID: 1, Name: "Ram"}, "tok1"))
	require.True(t, h.session.IsAuthenticated())

	// any endpoint triggers the global effect; weather is as good as any
	_, err := h.client.Weather(ctx, "Delhi")
	require.ErrorIs(t, err, common.ErrUnauthorized)

	require.False(t, h.session.IsAuthenticated())
	_, ok := h.session.User()
	require.False(t, ok)
	require.Equal(t, []guard.Route{guard.RouteLogin}, h.redirects)
}

func TestOtherErrors_PassThroughWithoutLogout(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	}))
	ctx := context.Background()

	require.NoError(t, h.session.Login(ctx, models.User{ID: 1}, "tok1"))

	_, err := h.client.Tips(ctx, "", "en")
	require.Error(t, err)
	require.NotErrorIs(t, err, common.ErrUnauthorized)
	require.NotErrorIs(t, err, common.ErrUnavailable)
	require.Contains(t, err.Error(), "boom")

	require.True(t, h.session.IsAuthenticated(), "non-auth failures never clear the session")
	require.Empty(t, h.redirects)
}

func TestServerError_ReportedAsUnavailable(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"weather service down"}`))
	}))
	ctx := context.Background()

	require.NoError(t, h.session.Login(ctx, models.User{ID: 1}, "tok1"))

	// a broken backend is transient, same as an unreachable one
	_, err := h.client.Weather(ctx, "Delhi")
	require.ErrorIs(t, err, common.ErrUnavailable)
	require.Contains(t, err.Error(), "weather service down")

	require.True(t, h.session.IsAuthenticated())
	require.Empty(t, h.redirects)
}

func TestNetworkFailure_ReportedAsUnavailable(t *testing.T) {
	h := &harness{session: testSession(t)}
	h.client = New("http://127.0.0.1:1", h.session, nil, 200*time.Millisecond, testLogger())

	err := h.client.Health(context.Background())
	require.ErrorIs(t, err, common.ErrUnavailable)
}

func TestLogin_ReturnsTokenAndUser(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/auth/login", r.URL.Path)
		var body map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "ram@x.in", body["email"])
		_, _ = w.Write([]byte(`{"message":"Login successful","access_token":"tok1","user":{"id":1,"name":"Ram"}}`))
	}))

	resp, err := h.client.Login(context.Background(), "ram@x.in", "pw")
	require.NoError(t, err)
	require.Equal(t, "tok1", resp.AccessToken)
	require.Equal(t, "Ram", resp.User.Name)
}

func TestLogin_MissingTokenIsContractViolation(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"message":"ok","user":{"id":1}}`))
	}))

	_, err := h.client.Login(context.Background(), "a@b.c", "pw")
	require.ErrorIs(t, err, common.ErrContractViolation)
}

func TestDetectDisease_UploadsMultipart(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/disease/detect", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		f, hdr, err := r.FormFile("image")
		require.NoError(t, err)
		defer f.Close()
		require.Equal(t, "leaf.jpg", hdr.Filename)

		_, _ = w.Write([]byte(`{"id":9,"disease":"Leaf Blight","confidence":0.92,"treatment":"Apply copper-based fungicide","preventive_measures":"Ensure proper drainage and spacing"}`))
	}))

	det, err := h.client.DetectDisease(context.Background(), "leaf.jpg", []byte{0xFF, 0xD8})
	require.NoError(t, err)
	require.Equal(t, "Leaf Blight", det.Disease)
	require.InDelta(t, 0.92, det.Confidence, 1e-9)
}

func TestSpeak_AbsentAudioIsDefinedFailure(t *testing.T) {
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	}))

	audio, ok, err := h.client.Speak(context.Background(), "hello")
	require.NoError(t, err)
	require.False(t, ok)
	require.Nil(t, audio)
}

func TestSpeak_DecodesAudio(t *testing.T) {
	payload := base64.StdEncoding.EncodeToString([]byte("mp3-bytes"))
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]string{"audio": payload})
	}))

	audio, ok, err := h.client.Speak(context.Background(), "hello")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, []byte("mp3-bytes"), audio)
}

func TestScenario_LoginThen401ClearsSessionAndRedirects(t *testing.T) {
	// first call succeeds, the next returns 401
	calls := 0
	h := newHarness(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/api/auth/login" {
			_, _ = w.Write([]byte(`{"access_token":"tok1","user":{"id":1,"name":"Ram"}}`))
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"expired"}`))
	}))
	ctx := context.Background()

	resp, err := h.client.Login(ctx, "ram@x.in", "pw")
	require.NoError(t, err)
	require.NoError(t, h.session.Login(ctx, resp.User, resp.AccessToken))
	require.True(t, h.session.IsAuthenticated())
	u, _ := h.session.User()
	require.Equal(t, "Ram", u.Name)

	_, err = h.client.DashboardStats(ctx)
	require.ErrorIs(t, err, common.ErrUnauthorized)

	require.False(t, h.session.IsAuthenticated())
	_, ok := h.session.User()
	require.False(t, ok)
	require.Equal(t, []guard.Route{guard.RouteLogin}, h.redirects)
}
