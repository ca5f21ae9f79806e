package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"

	"github.com/dimitrije/prompthub/internal/middleware"
	"github.com/dimitrije/prompthub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
	"go.uber.org/zap"
)

// ProxyHandler forwards API calls to the prompt backend, stripping the local
// prefix and rewriting Host to the backend's.
type ProxyHandler struct {
	proxy  *httputil.ReverseProxy
	target *url.URL
	prefix string
	logger *zap.Logger
}

func NewProxyHandler(backendURL, prefix string, logger *zap.Logger) (*ProxyHandler, error) {
	target, err := url.Parse(backendURL)
	if err != nil {
		return nil, fmt.Errorf("invalid backend url: %w", err)
	}
	if target.Scheme == "" || target.Host == "" {
		return nil, fmt.Errorf("invalid backend url: %q", backendURL)
	}

	h := &ProxyHandler{
		target: target,
		prefix: strings.TrimRight(prefix, "/"),
		logger: logger,
	}

	h.proxy = &httputil.ReverseProxy{
		Rewrite:        h.rewrite,
		ModifyResponse: h.logResponse,
		ErrorHandler:   h.handleError,
	}

	return h, nil
}

// Forward is a drift handler for every proxied route.
func (h *ProxyHandler) Forward(c *drift.Context) {
	h.proxy.ServeHTTP(c.Response, c.Request)
	c.Abort()
}

// StripPrefix maps an incoming path onto the backend path.
func (h *ProxyHandler) StripPrefix(path string) string {
	if h.prefix == "" {
		return path
	}
	stripped := strings.TrimPrefix(path, h.prefix)
	if stripped == "" {
		return "/"
	}
	return stripped
}

func (h *ProxyHandler) rewrite(r *httputil.ProxyRequest) {
	r.Out.URL.Path = h.StripPrefix(r.In.URL.Path)
	r.Out.URL.RawPath = ""
	r.SetURL(h.target)
	r.SetXForwarded()
	if requestID := r.In.Header.Get(middleware.RequestIDHeader); requestID != "" {
		r.Out.Header.Set(middleware.RequestIDHeader, requestID)
	}
}

func (h *ProxyHandler) logResponse(resp *http.Response) error {
	fields := []zap.Field{
		zap.String("request_id", resp.Request.Header.Get(middleware.RequestIDHeader)),
		zap.String("method", resp.Request.Method),
		zap.String("upstream", resp.Request.URL.String()),
		zap.Int("status", resp.StatusCode),
	}

	switch {
	case resp.StatusCode >= 500:
		h.logger.Error("Upstream Error", fields...)
	case resp.StatusCode >= 400:
		h.logger.Warn("Upstream Client Error", fields...)
	default:
		h.logger.Debug("Upstream Response", fields...)
	}

	return nil
}

func (h *ProxyHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	h.logger.Error("Proxy Error",
		zap.String("request_id", r.Header.Get(middleware.RequestIDHeader)),
		zap.String("method", r.Method),
		zap.String("path", r.URL.Path),
		zap.Error(err),
	)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	_ = json.NewEncoder(w).Encode(dto.ErrorResponse{Error: "backend unavailable"})
}
