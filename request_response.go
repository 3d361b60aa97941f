package tradebridge

import (
	"encoding/json"
	"net/url"
)

// Request describes one call against the API. Endpoint is the path
// under /api/v1, e.g. "/orders". Body, when set, is JSON-marshaled
// and its keys recased to snake_case before transmission; Raw bodies
// (file uploads) are sent untouched with the given ContentType.
type Request struct {
	Method      string
	Endpoint    string
	Query       url.Values
	Headers     map[string]string
	Body        any
	Raw         []byte
	ContentType string
}

// Response is the normalized result of a request. For JSON responses
// Data holds the body after revival and snake_case to camelCase key
// conversion; other content types pass through verbatim. Header keys
// are lowercased.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Data       []byte
}

// Decode unmarshals the (already recased) JSON body into v.
func (r *Response) Decode(v any) error {
	return json.Unmarshal(r.Data, v)
}
