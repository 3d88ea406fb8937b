// internal/common/errors/reporter.go
package errors

// Reporter applies the driver's failure policy: normalize, log, and stop.
// No task failure propagates past the run loop.
type Reporter struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
}

func NewReporter(logger Logger) *Reporter {
	return &Reporter{logger: logger}
}

// Report normalizes and logs a task error, returning the StandardError so
// callers can record its code in metrics and the audit trail.
func (r *Reporter) Report(taskType string, err error) *StandardError {
	stdErr := Normalize(err)

	r.logger.Error("task failed", map[string]interface{}{
		"taskType":  taskType,
		"errorCode": string(stdErr.Code),
		"message":   stdErr.Message,
		"details":   stdErr.Details,
		"retryable": stdErr.Retryable,
		"category":  GetErrorCategory(stdErr.Code),
	})

	return stdErr
}
