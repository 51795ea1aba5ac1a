package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/mentoria-api/internal/models"
)

func TestMetricsServiceCounters(t *testing.T) {
	m := NewMetricsService()

	m.SessionIssued(models.UserTypeTeacher)
	m.SessionIssued(models.UserTypeTeacher)
	m.AnswerRecorded(true)
	m.AnswerRecorded(false)
	m.RecordCacheOperation(true, time.Millisecond)
	m.ObserveHTTPRequest(http.MethodGet, "/api/v1/questions/:id", http.StatusOK, time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.sessionsIssued.WithLabelValues("teacher")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.answersRecorded.WithLabelValues("false")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheLookups.WithLabelValues("hit")))

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "answers_recorded_total")
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var m *MetricsService
	m.SessionIssued(models.UserTypeStudent)
	m.AnswerRecorded(true)
	m.ObserveCacheWrite(time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
