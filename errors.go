// errors.go
// ---------
// Error taxonomy for the client: transport failures and unrecognized
// HTTP failures surface as *HTTPError, while failed responses whose
// body carries the backend's structured shape
// {"code", "message", "details"?} are promoted to *APIError.
package tradebridge

import (
	"encoding/json"
	"fmt"
)

// HTTPError is the generic failure for any non-2xx response that does
// not carry a recognized structured body.
type HTTPError struct {
	StatusCode int
	Method     string
	Endpoint   string
	Body       []byte
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d", e.Method, e.Endpoint, e.StatusCode)
}

// APIError is an application-level failure with a machine-readable
// code, as emitted by the backend's exception handler.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    map[string]any
	Method     string
	Endpoint   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: %s (code=%s, status=%d)", e.Method, e.Endpoint, e.Message, e.Code, e.StatusCode)
}

// normalizeError inspects the failed response body and, when it
// matches the structured shape, returns an *APIError. In every other
// case (unparsable body, missing or wrong-typed fields) the generic
// error is returned unmodified. Normalization never fails on its own.
func normalizeError(generic *HTTPError) error {
	var body struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	}
	if err := json.Unmarshal(generic.Body, &body); err != nil {
		return generic
	}
	if body.Code == "" || body.Message == "" {
		return generic
	}
	details := map[string]any{}
	if len(body.Details) > 0 {
		if err := json.Unmarshal(body.Details, &details); err != nil {
			// Non-object details (the backend sometimes sends a bare
			// string); keep it addressable instead of dropping it.
			var v any
			if json.Unmarshal(body.Details, &v) == nil && v != nil {
				details["detail"] = v
			}
		}
	}
	return &APIError{
		StatusCode: generic.StatusCode,
		Code:       body.Code,
		Message:    body.Message,
		Details:    details,
		Method:     generic.Method,
		Endpoint:   generic.Endpoint,
	}
}
