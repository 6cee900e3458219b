package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"payroll/internal/platform/config"
)

func memoryConfig() config.Config {
	return config.Config{
		Addr:              ":0",
		Environment:       "test",
		StoreDriver:       config.StoreDriverMemory,
		SessionTTL:        time.Hour,
		AuthMode:          config.AuthModeStatic,
		AdminUsername:     "admin",
		AdminPassword:     "admin",
		MaxBodyBytes:      1 << 20,
		AuthRatePerMinute: 10,
	}
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := memoryConfig()
	cfg.AuthMode = "ldap"

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "AUTH_MODE")
}

func TestNewFallsBackToDevSecret(t *testing.T) {
	app, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	assert.Equal(t, devSessionSecret, app.Config.SessionSecret)
	assert.Nil(t, app.DB)
}

func TestOpsEndpoints(t *testing.T) {
	app, err := New(context.Background(), memoryConfig())
	require.NoError(t, err)
	defer app.Close()

	tests := []struct {
		path   string
		status int
	}{
		{path: "/healthz", status: http.StatusOK},
		{path: "/readyz", status: http.StatusOK},
		{path: "/static/app.css", status: http.StatusOK},
		{path: "/metricsz", status: http.StatusNotFound},
		{path: "/login", status: http.StatusOK},
		{path: "/register", status: http.StatusNotFound},
	}
	for _, tc := range tests {
		t.Run(tc.path, func(t *testing.T) {
			rec := httptest.NewRecorder()
			app.Router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tc.path, nil))
			assert.Equal(t, tc.status, rec.Code)
			assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
		})
	}
}
