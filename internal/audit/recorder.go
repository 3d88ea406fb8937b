// internal/audit/recorder.go
package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/google/uuid"

	"platform-workers/internal/common/logger"
	"platform-workers/internal/models"
)

// Recorder writes one audit document per task run to Elasticsearch.
// Audit failures are logged and never fail the run itself.
type Recorder struct {
	es     *elasticsearch.Client
	index  string
	logger logger.Logger
}

func NewRecorder(es *elasticsearch.Client, index string, log logger.Logger) *Recorder {
	return &Recorder{
		es:     es,
		index:  index,
		logger: log.WithFields(map[string]interface{}{"component": "audit"}),
	}
}

// Record indexes the task run, assigning an id if the caller left it empty.
func (r *Recorder) Record(ctx context.Context, run models.TaskRun) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}

	body, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to marshal task run: %w", err)
	}

	res, err := r.es.Index(
		r.index,
		bytes.NewReader(body),
		r.es.Index.WithContext(ctx),
		r.es.Index.WithDocumentID(run.ID),
	)
	if err != nil {
		return fmt.Errorf("failed to index task run: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("audit index error: %s", res.Status())
	}

	r.logger.Debug("task run recorded", map[string]interface{}{
		"id":       run.ID,
		"taskType": run.TaskType,
		"status":   run.Status,
	})

	return nil
}
