package integration

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dimitrije/prompthub/internal/client"
	"github.com/dimitrije/prompthub/internal/config"
	"github.com/dimitrije/prompthub/internal/devserver"
	"github.com/dimitrije/prompthub/tests/testutil"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stack struct {
	backend  *testutil.PromptServer
	fixtures *testutil.Fixtures
	client   *client.Client
}

// setupDirect points a client straight at the fake backend.
func setupDirect(t *testing.T) *stack {
	t.Helper()
	backend, server := testutil.StartPromptServer(t)

	return &stack{
		backend:  backend,
		fixtures: testutil.NewFixtures(backend),
		client:   client.New(client.Config{BaseURL: server.URL + "/api", Timeout: 5 * time.Second}),
	}
}

// setupProxied routes the client through the dev server. The dev server strips
// its /api prefix and the backend URL adds the backend's own /api back.
func setupProxied(t *testing.T) *stack {
	t.Helper()
	backend, server := testutil.StartPromptServer(t)

	cfg := &config.Config{
		Server: config.ServerConfig{
			BackendURL:     server.URL + "/api",
			ProxyPrefix:    "/api",
			AllowedOrigins: []string{"*"},
		},
	}
	router, err := devserver.NewRouter(cfg, zap.NewNop())
	require.NoError(t, err)

	dev := httptest.NewServer(router)
	t.Cleanup(dev.Close)

	return &stack{
		backend:  backend,
		fixtures: testutil.NewFixtures(backend),
		client:   client.New(client.Config{BaseURL: dev.URL + "/api", Timeout: 5 * time.Second}),
	}
}
