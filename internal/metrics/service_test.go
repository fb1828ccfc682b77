package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_RecordsAndExposes(t *testing.T) {
	reg := prometheus.NewRegistry()
	svc := NewService(reg)

	svc.IncUpdatesApplied()
	svc.IncUpdatesApplied()
	svc.AddAdvancements(3)
	svc.SetPendingPlaceholders(4)
	svc.IncNotifSent("slack")
	svc.IncNotifFailed("websocket")

	assert.Equal(t, 2.0, testutil.ToFloat64(svc.UpdatesApplied))
	assert.Equal(t, 3.0, testutil.ToFloat64(svc.AdvancementsResolved))
	assert.Equal(t, 4.0, testutil.ToFloat64(svc.PendingPlaceholders))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.NotifSent.WithLabelValues("slack")))
	assert.Equal(t, 1.0, testutil.ToFloat64(svc.NotifFailed.WithLabelValues("websocket")))

	rr := httptest.NewRecorder()
	req, err := http.NewRequest("GET", "/metrics", nil)
	require.NoError(t, err)
	NewMetricsHandler(reg).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "badminton_match_updates_total 2")
	assert.Contains(t, rr.Body.String(), "badminton_advancements_resolved_total 3")
}
