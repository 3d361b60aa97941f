package tradebridge

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func genericErr(status int, body string) *HTTPError {
	return &HTTPError{
		StatusCode: status,
		Method:     http.MethodGet,
		Endpoint:   "/orders",
		Body:       []byte(body),
	}
}

func TestNormalizeErrorStructuredBody(t *testing.T) {
	err := normalizeError(genericErr(404, `{"code":"NOT_FOUND","message":"missing"}`))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.Equal(t, "missing", apiErr.Message)
	assert.Equal(t, 404, apiErr.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Equal(t, "/orders", apiErr.Endpoint)
	assert.Empty(t, apiErr.Details)
}

func TestNormalizeErrorDetails(t *testing.T) {
	err := normalizeError(genericErr(400, `{"code":"VALIDATION","message":"bad","details":{"field":"email"}}`))
	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, map[string]any{"field": "email"}, apiErr.Details)

	// The backend sometimes sends a bare string for details.
	err = normalizeError(genericErr(401, `{"code":"INVALID_CREDENTIALS","message":"Invalid credentials","details":"Incorrect username or password"}`))
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, map[string]any{"detail": "Incorrect username or password"}, apiErr.Details)

	// Null details stay empty.
	err = normalizeError(genericErr(401, `{"code":"X","message":"y","details":null}`))
	require.True(t, errors.As(err, &apiErr))
	assert.Empty(t, apiErr.Details)
}

func TestNormalizeErrorPassThrough(t *testing.T) {
	cases := []string{
		`<html>Internal Server Error</html>`, // not JSON
		``,                                   // empty body
		`{"message":"no code here"}`,         // missing code
		`{"code":500,"message":"wrong type"}`,
		`{"code":"X"}`, // missing message
		`["array"]`,
	}
	for _, body := range cases {
		generic := genericErr(500, body)
		err := normalizeError(generic)
		assert.Same(t, generic, err, "body %q must surface the generic error", body)
	}
}
