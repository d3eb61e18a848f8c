package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestMaxBody(t *testing.T) {
	readAll := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			http.Error(w, "too big", http.StatusBadRequest)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	tests := []struct {
		name          string
		body          string
		contentLength int64
		want          int
	}{
		{name: "under limit", body: strings.Repeat("a", 8), contentLength: 8, want: http.StatusOK},
		{name: "at limit", body: strings.Repeat("a", 16), contentLength: 16, want: http.StatusOK},
		{name: "declared over limit", body: strings.Repeat("a", 32), contentLength: 32, want: http.StatusRequestEntityTooLarge},
		{name: "chunked over limit", body: strings.Repeat("a", 32), contentLength: -1, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/documents", strings.NewReader(tt.body))
			req.ContentLength = tt.contentLength
			rr := httptest.NewRecorder()

			MaxBody(16)(readAll).ServeHTTP(rr, req)

			if rr.Code != tt.want {
				t.Errorf("status: got %d, want %d", rr.Code, tt.want)
			}
		})
	}
}

func TestDefaultMaxBodyBytes(t *testing.T) {
	if DefaultMaxBodyBytes != 2*1024*1024 {
		t.Errorf("DefaultMaxBodyBytes = %d, want 2 MiB", DefaultMaxBodyBytes)
	}
}
