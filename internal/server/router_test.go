package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yanizio/reqvalidator/internal/record"
	"github.com/yanizio/reqvalidator/internal/requirement"
	"github.com/yanizio/reqvalidator/internal/service"
	"github.com/yanizio/reqvalidator/internal/validation"
)

type stubValidator struct {
	rep *service.Report
	err error
	got *record.ValidationRequest
}

func (s *stubValidator) Validate(_ context.Context, req *record.ValidationRequest) (*service.Report, error) {
	s.got = req
	return s.rep, s.err
}

func post(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/validate", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	h.ServeHTTP(rec, req)
	return rec
}

func TestValidate_OK(t *testing.T) {
	stub := &stubValidator{rep: &service.Report{
		RunID: "run-1", Version: 25, Valid: true, Entries: 1,
		Errors: []validation.ValidationError{},
	}}
	h := Router(stub, nil)

	rec := post(t, h, `{"metadata_version": 25, "metadata_batch_name": "Daily"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "no-store", rec.Header().Get("Cache-Control"))

	var got service.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.True(t, got.Valid)
	assert.Equal(t, 25, got.Version)
	require.NotNil(t, stub.got)
	assert.Equal(t, 25, stub.got.MetadataVersion)
}

func TestValidate_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"no data", fmt.Errorf("load: %w", &requirement.SetupError{Version: 9, Kind: requirement.ErrNoData}), http.StatusUnprocessableEntity},
		{"connection", fmt.Errorf("load: %w", &requirement.SetupError{Version: 9, Kind: requirement.ErrConnection, Err: errors.New("refused")}), http.StatusServiceUnavailable},
		{"other", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := Router(&stubValidator{err: tc.err}, nil)
			rec := post(t, h, `{"metadata_version": 9}`)
			assert.Equal(t, tc.want, rec.Code)

			var body errorBody
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.NotEmpty(t, body.RequestID)
		})
	}
}

func TestValidate_BadJSON(t *testing.T) {
	stub := &stubValidator{}
	rec := post(t, Router(stub, nil), `{"metadata_version": "twenty"`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, stub.got)
}

func TestHealthzAndMetrics(t *testing.T) {
	h := Router(&stubValidator{}, nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_goroutines")
}

func TestNew_Timeouts(t *testing.T) {
	srv := New(":0", http.NotFoundHandler())
	assert.NotZero(t, srv.ReadHeaderTimeout)
	assert.NotZero(t, srv.WriteTimeout)
	assert.NotZero(t, srv.IdleTimeout)
}

func TestValidate_ClientGone(t *testing.T) {
	h := Router(&stubValidator{err: fmt.Errorf("validate: %w", context.Canceled)}, nil)
	rec := post(t, h, `{"metadata_version": 9}`)
	assert.Equal(t, StatusClientClosedRequest, rec.Code)
	assert.Empty(t, rec.Body.String())
}
