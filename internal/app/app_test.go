package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"

	"taskassistant/internal/config"
)

func TestNew_InMemoryWiring(t *testing.T) {
	gin.SetMode(gin.TestMode)
	t.Setenv("TOGETHER_API_KEY", "")
	t.Setenv("DATABASE_URL", "")

	cfg, err := config.LoadConfig(t.TempDir() + "/missing.yaml")
	require.NoError(t, err)

	a, err := New(context.Background(), cfg, zaptest.NewLogger(t))
	require.NoError(t, err)
	defer a.Close()

	for _, path := range []string{"/api/", "/swagger/doc.json"} {
		w := httptest.NewRecorder()
		a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestNewLogger_Levels(t *testing.T) {
	log, err := NewLogger(config.LogConfig{Level: "debug", Development: true})
	require.NoError(t, err)
	assert.True(t, log.Core().Enabled(zapcore.DebugLevel))

	_, err = NewLogger(config.LogConfig{Level: "loud"})
	assert.Error(t, err)
}
