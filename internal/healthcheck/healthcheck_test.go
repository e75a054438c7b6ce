package healthcheck

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/muhammadchandra19/matchcore/internal/book"
	"github.com/muhammadchandra19/matchcore/internal/dispatcher"
	"github.com/stretchr/testify/assert"
)

func TestServeHTTPReportsNotReadyBeforeStart(t *testing.T) {
	d := dispatcher.New(book.New())
	h := New(d)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServeHTTPReportsOKWhileRunning(t *testing.T) {
	d := dispatcher.New(book.New())
	d.Start()
	defer d.Stop()
	h := New(d)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServeHTTPRejectsNonHealthPath(t *testing.T) {
	d := dispatcher.New(book.New())
	h := New(d)

	req := httptest.NewRequest(http.MethodGet, "/other", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
