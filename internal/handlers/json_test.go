package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDecodeJSON(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		want    string
		wantErr bool
	}{
		{"object", `{"templateId":"a"}`, "a", false},
		{"empty body", ``, "", false},
		{"whitespace", "  \n", "", false},
		{"malformed", `{"templateId":`, "", true},
		{"trailing object", `{"templateId":"a"}{"templateId":"b"}`, "", true},
		{"wrong type", `{"templateId":3}`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			var dst struct {
				TemplateID string `json:"templateId"`
			}
			err := decodeJSON(req, &dst)
			if (err != nil) != tt.wantErr {
				t.Fatalf("err = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && dst.TemplateID != tt.want {
				t.Errorf("templateId: got %q, want %q", dst.TemplateID, tt.want)
			}
		})
	}
}

func TestWriteError(t *testing.T) {
	w := httptest.NewRecorder()
	writeError(w, http.StatusBadRequest, msgInvalidJSON)

	if w.Code != http.StatusBadRequest {
		t.Errorf("status: got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json; charset=utf-8" {
		t.Errorf("content-type: got %q", ct)
	}
	if got := strings.TrimSpace(w.Body.String()); got != `{"error":"Invalid JSON body"}` {
		t.Errorf("body: got %s", got)
	}
}

func TestServerErrorHidesCause(t *testing.T) {
	w := httptest.NewRecorder()
	serverError(w, httptest.NewRequest(http.MethodGet, "/api/documents", nil), "list failed", errors.New("disk on fire"))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d", w.Code)
	}
	if strings.Contains(w.Body.String(), "disk on fire") {
		t.Error("response should not leak the error")
	}
}
