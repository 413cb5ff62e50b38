package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus(t *testing.T) {
	assert.Equal(t, "ok", Status(0))
	assert.Equal(t, "error", Status(26))
	assert.Equal(t, "error", Status(-1))
}

func TestHandler_ServesPrometheusFormat(t *testing.T) {
	RequestsTotal.WithLabelValues("pick_file", "ok").Inc()

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "fltr_rpc_requests_total")
}
