package credential

import (
	"context"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diogo/askbox/internal/models"
)

func newTestRouter(env map[string]string) http.Handler {
	return NewRouter(NewHandler(WithLookup(envWith(env))), zerolog.Nop())
}

func TestRouter_Paths(t *testing.T) {
	router := newTestRouter(map[string]string{models.CredentialEnvVar: "sk-test"})

	for _, path := range []string{models.PathCredential, models.PathCredentialNetlify} {
		t.Run(path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, "sk-test", decode(t, rec)["apiKey"])
		})
	}
}

func TestRouter_NonGetReachesHandler(t *testing.T) {
	router := newTestRouter(map[string]string{models.CredentialEnvVar: "sk-test"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, models.PathCredentialNetlify, nil))

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, map[string]any{"error": "Method not allowed"}, decode(t, rec))
}

func TestRouter_UnknownPath(t *testing.T) {
	router := newTestRouter(map[string]string{models.CredentialEnvVar: "sk-test"})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRouter_Health(t *testing.T) {
	router := newTestRouter(nil)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", rec.Body.String())
}

func TestServer_ServeAndShutdown(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	h := NewHandler(WithLookup(envWith(map[string]string{models.CredentialEnvVar: "sk-test"})))
	srv := NewServer(ln.Addr().String(), h, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	resp, err := http.Get("http://" + ln.Addr().String() + models.PathCredential)
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(shutdownTimeout + time.Second):
		t.Fatal("server did not shut down")
	}
}
