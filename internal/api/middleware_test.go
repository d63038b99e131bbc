package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func authedHandler(t *testing.T, key string) http.Handler {
	t.Helper()
	return AuthMiddleware(key, discardLogger())(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		}))
}

func TestAuthMiddleware(t *testing.T) {
	h := authedHandler(t, "secret-key")

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic secret-key", http.StatusUnauthorized},
		{"wrong key", "Bearer not-the-key", http.StatusUnauthorized},
		{"valid", "Bearer secret-key", http.StatusNoContent},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/api/compare/x/status", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		if rec.Code != tc.want {
			t.Errorf("%s: expected %d, got %d", tc.name, tc.want, rec.Code)
		}
		if tc.want == http.StatusUnauthorized && !strings.Contains(rec.Header().Get("Content-Type"), "application/json") {
			t.Errorf("%s: rejections must be json, got %q", tc.name, rec.Header().Get("Content-Type"))
		}
	}
}

func TestStatusRecorderKeepsFirstCode(t *testing.T) {
	rec := statusRecorder{ResponseWriter: httptest.NewRecorder(), code: http.StatusOK}
	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusInternalServerError) // superfluous second write
	if rec.code != http.StatusNotFound {
		t.Errorf("expected recorded status 404, got %d", rec.code)
	}
}

func TestStatusRecorderDefaultsToOK(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := statusRecorder{ResponseWriter: inner, code: http.StatusOK}
	io.WriteString(&rec, "body without explicit status")
	if rec.code != http.StatusOK {
		t.Errorf("expected implicit 200, got %d", rec.code)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error)          { return 0, errors.New("disk gone") }
func (failingReader) ReadAt([]byte, int64) (int, error) { return 0, errors.New("disk gone") }
func (failingReader) Seek(int64, int) (int64, error)    { return 0, nil }
func (failingReader) Close() error                      { return nil }

func TestReadLimitedWrapsError(t *testing.T) {
	_, err := readLimited(failingReader{}, 1024)
	if err == nil {
		t.Fatal("expected error from failing reader")
	}
	if !strings.Contains(err.Error(), "disk gone") {
		t.Errorf("underlying cause must survive wrapping, got %q", err)
	}
}

func TestReadLimitedEnforcesLimit(t *testing.T) {
	f := readerFile{strings.NewReader("0123456789")}
	if _, err := readLimited(f, 4); err == nil {
		t.Error("expected size error for oversized upload")
	}
	f = readerFile{strings.NewReader("0123")}
	data, err := readLimited(f, 4)
	if err != nil || string(data) != "0123" {
		t.Errorf("upload at the limit must succeed, got %q, %v", data, err)
	}
}

type readerFile struct{ *strings.Reader }

func (readerFile) Close() error { return nil }
