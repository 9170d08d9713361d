package main

import (
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"portal/internal/api/controllers"
	"portal/internal/config"
	mem "portal/pkg/memcache"
)

func testRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		Port:           "0",
		SecretKey:      "test-secret",
		UploadDir:      t.TempDir(),
		MaxUploadBytes: 16 << 20,
		SessionTTL:     time.Hour,
	}

	return ProvideRouter(
		controllers.NewAccountController(nil),
		controllers.NewProfileController(nil, nil, nil, cfg),
		controllers.NewAdminController(nil),
		mem.NewSessions(),
		cfg)
}

func TestRouterMiddlewareChain(t *testing.T) {
	engine := testRouter(t)

	// Logger and Recovery come from gin.Default; CORS and trace id are
	// ours. Anything more means a middleware got registered twice.
	assert.Len(t, engine.Handlers, 4)
}

func TestRouterRoutes(t *testing.T) {
	engine := testRouter(t)

	registered := make(map[string]bool)
	for _, route := range engine.Routes() {
		registered[route.Method+" "+route.Path] = true
	}

	for _, want := range []string{
		"POST /accounts/register",
		"POST /accounts/login",
		"POST /accounts/logout",
		"GET /profile",
		"PUT /profile",
		"POST /profile/photo",
		"GET /admin/dashboard",
		"DELETE /admin/users/:id",
	} {
		require.True(t, registered[want], "missing route %s", want)
	}
}
