package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatusRecorderCapturesExplicitStatus(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	rec.WriteHeader(http.StatusNotFound)
	n, err := rec.Write([]byte("missing"))
	require.NoError(t, err)
	require.Equal(t, 7, n)
	require.Equal(t, http.StatusNotFound, rec.status)
	require.Equal(t, 7, rec.bytes)
}

func TestStatusRecorderDefaultsToOKOnWrite(t *testing.T) {
	t.Parallel()

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder()}
	_, err := rec.Write([]byte("ok"))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, rec.status)
}

func TestLoggingPassesResponseThrough(t *testing.T) {
	t.Parallel()

	handler := Logging(nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	}))

	out := httptest.NewRecorder()
	handler.ServeHTTP(out, httptest.NewRequest(http.MethodGet, "/rooms", nil))

	require.Equal(t, http.StatusTeapot, out.Code)
	require.Equal(t, "short and stout", out.Body.String())
}
