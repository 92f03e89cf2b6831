package esserror

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// maxBodyText bounds how much of an unparseable error body is kept.
const maxBodyText = 512

// StatusError is an error response returned by Elasticsearch.
type StatusError struct {
	StatusCode int
	Type       string
	Reason     string
	Body       string
}

// FromResponse reads an Elasticsearch error body and returns the
// corresponding StatusError. The body is not closed.
func FromResponse(statusCode int, body io.Reader) *StatusError {
	se := &StatusError{StatusCode: statusCode}
	if body == nil {
		return se
	}

	data, err := io.ReadAll(io.LimitReader(body, 64*1024))
	if err != nil || len(data) == 0 {
		return se
	}

	// Elasticsearch answers either {"error":{"type":..,"reason":..}} or,
	// for some endpoints, {"error":"message"}.
	var envelope struct {
		Error json.RawMessage `json:"error"`
	}
	if json.Unmarshal(data, &envelope) == nil && len(envelope.Error) > 0 {
		var detail struct {
			Type   string `json:"type"`
			Reason string `json:"reason"`
		}
		if json.Unmarshal(envelope.Error, &detail) == nil {
			se.Type = detail.Type
			se.Reason = detail.Reason
			return se
		}
		var msg string
		if json.Unmarshal(envelope.Error, &msg) == nil {
			se.Reason = msg
			return se
		}
	}

	text := strings.TrimSpace(string(data))
	if len(text) > maxBodyText {
		text = text[:maxBodyText] + "..."
	}
	se.Body = text
	return se
}

func (e *StatusError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "elasticsearch returned %d %s", e.StatusCode, http.StatusText(e.StatusCode))
	switch {
	case e.Type != "" && e.Reason != "":
		fmt.Fprintf(&b, ": %s: %s", e.Type, e.Reason)
	case e.Reason != "":
		fmt.Fprintf(&b, ": %s", e.Reason)
	case e.Body != "":
		fmt.Fprintf(&b, ": %s", e.Body)
	}
	return b.String()
}

// IsAuthError reports whether the response rejected the credentials.
func (e *StatusError) IsAuthError() bool {
	return e.StatusCode == http.StatusUnauthorized || e.StatusCode == http.StatusForbidden
}

// IsNotFoundError reports whether the target index does not exist.
func (e *StatusError) IsNotFoundError() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsQueryError reports whether the request body was refused.
func (e *StatusError) IsQueryError() bool {
	return e.StatusCode == http.StatusBadRequest
}

// IsUnavailableError reports whether the cluster could not serve the request.
func (e *StatusError) IsUnavailableError() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	default:
		return false
	}
}
