// internal/audit/recorder_test.go
package audit

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"platform-workers/internal/common/logger"
	"platform-workers/internal/models"
)

func newTestRecorder(t *testing.T, handler http.HandlerFunc) (*Recorder, *httptest.Server) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{server.URL},
	})
	require.NoError(t, err)

	return NewRecorder(es, "ops-task-runs", logger.NewTestLogger(t)), server
}

func TestRecorder_Record(t *testing.T) {
	var captured struct {
		path string
		doc  models.TaskRun
	}

	recorder, _ := newTestRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		captured.path = r.URL.Path
		body, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(body, &captured.doc)
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":"created"}`))
	})

	run := models.TaskRun{
		ID:         "run-1",
		TaskType:   "dispatch-request",
		Status:     models.TaskRunCompleted,
		DurationMS: 42,
		Timestamp:  time.Now().UTC(),
	}

	err := recorder.Record(context.Background(), run)

	require.NoError(t, err)
	assert.Equal(t, "/ops-task-runs/_doc/run-1", captured.path)
	assert.Equal(t, "dispatch-request", captured.doc.TaskType)
	assert.Equal(t, models.TaskRunCompleted, captured.doc.Status)
}

func TestRecorder_Record_AssignsID(t *testing.T) {
	recorder, _ := newTestRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"result":"created"}`))
	})

	err := recorder.Record(context.Background(), models.TaskRun{
		TaskType: "apply-capacity",
		Status:   models.TaskRunFailed,
	})

	assert.NoError(t, err)
}

func TestRecorder_Record_IndexError(t *testing.T) {
	recorder, _ := newTestRecorder(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":"boom"}`))
	})

	err := recorder.Record(context.Background(), models.TaskRun{
		ID:       "run-2",
		TaskType: "check-subscription",
		Status:   models.TaskRunFailed,
	})

	assert.Error(t, err)
}
