// internal/api/envelope.go
package api

import "encoding/json"

// CodeOK is the errorCode the backend uses for every successful response.
const CodeOK = "ER0000"

// Envelope is the response wrapper the backend puts around every payload.
type Envelope struct {
	ErrorCode string          `json:"errorCode"`
	Message   string          `json:"message"`
	Data      json.RawMessage `json:"data,omitempty"`
}

// OK reports whether the envelope carries a successful business result.
func (e *Envelope) OK() bool {
	return e.ErrorCode == CodeOK
}

// Page is the backend's pagination wrapper for list endpoints.
type Page[T any] struct {
	Content       []T  `json:"content"`
	TotalElements int  `json:"totalElements"`
	TotalPages    int  `json:"totalPages"`
	Size          int  `json:"size"`
	Number        int  `json:"number"`
	Empty         bool `json:"empty"`
}
