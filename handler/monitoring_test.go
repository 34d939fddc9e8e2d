package handler

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHealthHandler(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		fake := &fakeStore{}
		r := newTestRouter(fake)

		w := servePostForm(r, "/survey/submit", validSubmissionForm())
		assert.Equal(t, http.StatusSeeOther, w.Code)

		w = serveGetRequest(r, "/health")
		assert.Equal(t, http.StatusOK, w.Code)

		response := decodeJSONResponseToMap(w.Body)
		assert.Equal(t, "healthy", response["status"])
		assert.Equal(t, "connected", response["database"])
		assert.Equal(t, float64(1), response["total_surveys"])
	})

	t.Run("DatabaseUnreachable", func(t *testing.T) {
		fake := &fakeStore{pingErr: errors.New("dial tcp: connection refused")}
		r := newTestRouter(fake)

		w := serveGetRequest(r, "/health")
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)

		response := decodeJSONResponseToMap(w.Body)
		assert.Equal(t, "degraded", response["status"])
		assert.Equal(t, "unhealthy", response["database"])
	})
}
