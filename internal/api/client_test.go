// internal/api/client_test.go
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedToken string

func (t fixedToken) Token() string { return string(t) }

func envelope(code, message string, data any) []byte {
	body, _ := json.Marshal(map[string]any{
		"errorCode": code,
		"message":   message,
		"data":      data,
	})
	return body
}

func TestDoDecodesEnvelopeData(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/7", r.URL.Path)
		w.Write(envelope(CodeOK, "success", map[string]any{"id": 7, "title": "Abbey Road"}))
	}))
	defer server.Close()

	var out struct {
		ID    int    `json:"id"`
		Title string `json:"title"`
	}
	err := NewClient(server.URL, nil).Get(context.Background(), "/products/7", &out)
	require.NoError(t, err)
	assert.Equal(t, 7, out.ID)
	assert.Equal(t, "Abbey Road", out.Title)
}

func TestDoSendsBearerTokenAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer abc123", r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "title", body["field"])

		w.Write(envelope(CodeOK, "success", nil))
	}))
	defer server.Close()

	client := NewClient(server.URL, fixedToken("abc123"))
	err := client.Do(context.Background(), http.MethodPost, "/x", map[string]string{"field": "title"}, nil)
	require.NoError(t, err)
}

func TestDoOmitsEmptyToken(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.Write(envelope(CodeOK, "success", nil))
	}))
	defer server.Close()

	err := NewClient(server.URL, fixedToken("")).Get(context.Background(), "/x", nil)
	require.NoError(t, err)
}

func TestDoTurnsRejectionsIntoAPIErrors(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   []byte
	}{
		{"error status with envelope", http.StatusConflict, envelope("ER0409", "barcode taken", nil)},
		// Business rejection flagged only through the envelope code.
		{"ok status with error code", http.StatusOK, envelope("ER0400", "price out of band", nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write(tt.body)
			}))
			defer server.Close()

			err := NewClient(server.URL, nil).Get(context.Background(), "/x", nil)
			apiErr, ok := AsAPIError(err)
			require.True(t, ok, "expected an APIError, got %v", err)
			assert.Equal(t, tt.status, apiErr.HTTPStatus)
			assert.NotEmpty(t, apiErr.Code)
			assert.NotEmpty(t, apiErr.Message)
		})
	}
}

func TestDoHandlesNonJSONErrorPage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Bad Gateway", http.StatusBadGateway)
	}))
	defer server.Close()

	err := NewClient(server.URL, nil).Get(context.Background(), "/x", nil)
	apiErr, ok := AsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadGateway, apiErr.HTTPStatus)
}

func TestDoWrapsTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // connection refused from here on

	err := NewClient(server.URL, nil).Get(context.Background(), "/x", nil)
	require.Error(t, err)
	_, ok := AsAPIError(err)
	assert.False(t, ok, "a transport failure is not a backend rejection")
}

func TestIsUnauthorized(t *testing.T) {
	assert.True(t, IsUnauthorized(&APIError{HTTPStatus: 401}))
	assert.True(t, IsUnauthorized(&APIError{HTTPStatus: 403}))
	assert.False(t, IsUnauthorized(&APIError{HTTPStatus: 404}))
	assert.False(t, IsUnauthorized(nil))
}
