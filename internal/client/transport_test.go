package client

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLoggingTransport_LogsResponses(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(Config{BaseURL: server.URL}, WithLogger(zap.New(core)))

	_, err := c.List(context.Background())
	require.NoError(t, err)

	entries := logs.FilterMessage("HTTP Response").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, int64(http.StatusOK), fields["status"])
	assert.Equal(t, zapcore.DebugLevel, entries[0].Level)
}

func TestLoggingTransport_WarnsOnClientErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(Config{BaseURL: server.URL}, WithLogger(zap.New(core)))

	_, err := c.GetByID(context.Background(), 3)
	require.ErrorIs(t, err, ErrNotFound)

	entries := logs.FilterLevelExact(zapcore.WarnLevel).All()
	require.Len(t, entries, 1)
}

func TestLoggingTransport_LogsTransportErrors(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()

	core, logs := observer.New(zapcore.DebugLevel)
	c := New(Config{BaseURL: baseURL}, WithLogger(zap.New(core)))

	_, err := c.List(context.Background())
	require.Error(t, err)

	assert.Equal(t, 1, logs.FilterMessage("HTTP Error").Len())
}

func TestWithLogger_KeepsCustomClient(t *testing.T) {
	custom := &http.Client{}
	c := New(Config{}, WithHTTPClient(custom), WithLogger(zap.NewNop()))

	assert.NotSame(t, custom, c.httpClient)
	assert.Nil(t, custom.Transport)

	transport, ok := c.httpClient.Transport.(*LoggingTransport)
	require.True(t, ok)
	assert.Nil(t, transport.Transport)
}
