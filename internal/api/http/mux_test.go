package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/m-zajac/gitinsight/internal/api/http/mock"
	"github.com/m-zajac/gitinsight/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMux(t *testing.T) {
	t.Parallel()

	serviceDelay := 5 * time.Millisecond

	tests := []struct {
		name           string
		method         string
		path           string
		muxTimeout     time.Duration
		wantStatusCode int
	}{
		{
			name:           "valid session request",
			method:         http.MethodGet,
			path:           "/api/sessions/abc",
			muxTimeout:     time.Second,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "service exceeding handler timeout",
			method:         http.MethodGet,
			path:           "/api/sessions/abc",
			muxTimeout:     time.Microsecond,
			wantStatusCode: http.StatusInternalServerError,
		},
		{
			name:           "health check",
			method:         http.MethodGet,
			path:           "/healthz",
			muxTimeout:     time.Second,
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid path",
			method:         http.MethodGet,
			path:           "/invalid_path",
			muxTimeout:     time.Second,
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:           "invalid method",
			method:         http.MethodDelete,
			path:           "/api/sessions/abc",
			muxTimeout:     time.Second,
			wantStatusCode: http.StatusMethodNotAllowed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			service := mock.NewMockService(ctrl)
			service.EXPECT().
				Session(gomock.Any(), "abc").
				DoAndReturn(func(ctx context.Context, id string) (*app.Session, error) {
					time.Sleep(serviceDelay)

					select {
					case <-ctx.Done():
						return nil, errors.New("context timeout")
					default:
						return app.NewSession("cv.pdf", time.Now()), nil
					}
				}).
				MaxTimes(1)

			mux := NewMux(service, MuxConfig{Timeout: tt.muxTimeout, MaxUploadSize: 1024, UploadRate: 1, UploadBurst: 1}, newTestLogger())

			server := httptest.NewServer(mux)
			defer server.Close()

			req, err := http.NewRequest(tt.method, server.URL+tt.path, nil)
			require.NoError(t, err)
			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			assert.Equal(t, tt.wantStatusCode, resp.StatusCode)
			assert.NotEmpty(t, resp.Header.Get(RequestIDHeader))
		})
	}
}

func TestMuxUploadRateLimit(t *testing.T) {
	t.Parallel()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mock.NewMockService(ctrl)
	service.EXPECT().
		Upload(gomock.Any(), gomock.Any()).
		Return(&app.Session{ID: "abc", State: app.StateAggregating}, nil).
		Times(1)

	mux := NewMux(service, MuxConfig{Timeout: time.Second, MaxUploadSize: 1024, UploadRate: 0.001, UploadBurst: 1}, newTestLogger())

	w := httptest.NewRecorder()
	mux.ServeHTTP(w, newMultipartRequest(t, UploadField, "application/pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	mux.ServeHTTP(w, newMultipartRequest(t, UploadField, "application/pdf", []byte("%PDF-1.4")))
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
}
