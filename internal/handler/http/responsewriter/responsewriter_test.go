package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap_DefaultsTo200(t *testing.T) {
	w := Wrap(httptest.NewRecorder())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, 0, w.BytesWritten())
}

func TestWriteHeader_RecordsStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	w.WriteHeader(http.StatusNotFound)
	assert.Equal(t, http.StatusNotFound, w.StatusCode())
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestWriteHeader_OnlyFirstCallCounts(t *testing.T) {
	w := Wrap(httptest.NewRecorder())

	w.WriteHeader(http.StatusAccepted)
	w.WriteHeader(http.StatusInternalServerError)
	assert.Equal(t, http.StatusAccepted, w.StatusCode())
}

func TestWrite_TracksBytesAndImplicit200(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)

	n, err := w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)

	_, _ = w.Write([]byte(" world"))
	assert.Equal(t, 11, w.BytesWritten())
	assert.Equal(t, http.StatusOK, w.StatusCode())
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestUnwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	w := Wrap(rec)
	assert.Equal(t, http.ResponseWriter(rec), w.Unwrap())
}
