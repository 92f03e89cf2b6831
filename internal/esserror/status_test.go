package esserror

import (
	"strings"
	"testing"
)

func TestFromResponse(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantType   string
		wantReason string
		wantMsg    string
	}{
		{
			name:       "structured error",
			status:     404,
			body:       `{"error":{"root_cause":[],"type":"index_not_found_exception","reason":"no such index [transfers]"},"status":404}`,
			wantType:   "index_not_found_exception",
			wantReason: "no such index [transfers]",
			wantMsg:    "elasticsearch returned 404 Not Found: index_not_found_exception: no such index [transfers]",
		},
		{
			name:       "string error",
			status:     401,
			body:       `{"error":"missing credentials"}`,
			wantReason: "missing credentials",
			wantMsg:    "elasticsearch returned 401 Unauthorized: missing credentials",
		},
		{
			name:    "plain text body",
			status:  502,
			body:    "Bad Gateway\n",
			wantMsg: "elasticsearch returned 502 Bad Gateway: Bad Gateway",
		},
		{
			name:    "empty body",
			status:  503,
			body:    "",
			wantMsg: "elasticsearch returned 503 Service Unavailable",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			se := FromResponse(tt.status, strings.NewReader(tt.body))
			if se.StatusCode != tt.status {
				t.Errorf("StatusCode = %d, want %d", se.StatusCode, tt.status)
			}
			if se.Type != tt.wantType {
				t.Errorf("Type = %q, want %q", se.Type, tt.wantType)
			}
			if se.Reason != tt.wantReason {
				t.Errorf("Reason = %q, want %q", se.Reason, tt.wantReason)
			}
			if se.Error() != tt.wantMsg {
				t.Errorf("Error() = %q, want %q", se.Error(), tt.wantMsg)
			}
		})
	}
}

func TestFromResponse_TruncatesLongBody(t *testing.T) {
	se := FromResponse(500, strings.NewReader(strings.Repeat("x", 2000)))
	if len(se.Body) != maxBodyText+3 {
		t.Errorf("len(Body) = %d, want %d", len(se.Body), maxBodyText+3)
	}
}
