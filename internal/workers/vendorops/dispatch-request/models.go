// internal/workers/vendor/dispatch-request/models.go
package dispatchrequest

// Input carries the vendor call parameters.
type Input struct {
	Vendor   string                 `json:"vendor"`
	Endpoint string                 `json:"endpoint"`
	Payload  map[string]interface{} `json:"payload"`
	Headers  map[string]string      `json:"headers,omitempty"`
}

// Output carries the vendor response. Body is empty (never nil) when the
// vendor rejected the call or returned an unparseable document.
type Output struct {
	StatusCode int                    `json:"statusCode"`
	Body       map[string]interface{} `json:"body"`
	URL        string                 `json:"url"`
	RequestID  string                 `json:"requestId"`
}
