package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// LoggingTransport implements http.RoundTripper and logs each round trip.
type LoggingTransport struct {
	Transport http.RoundTripper
	Logger    *zap.Logger
}

func (t *LoggingTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	transport := t.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}

	start := time.Now()
	resp, err := transport.RoundTrip(req)
	latency := time.Since(start)

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
		zap.Duration("latency", latency),
	}

	if err != nil {
		t.Logger.Error("HTTP Error", append(fields, zap.Error(err))...)
		return nil, err
	}

	fields = append(fields, zap.Int("status", resp.StatusCode))
	if resp.StatusCode >= 400 {
		t.Logger.Warn("HTTP Response", fields...)
	} else {
		t.Logger.Debug("HTTP Response", fields...)
	}

	return resp, nil
}
