package handlers

import (
	"net/http"

	"github.com/dimitrije/prompthub/pkg/dto"
	"github.com/m1z23r/drift/pkg/drift"
)

type HealthHandler struct{}

func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

func (h *HealthHandler) Check(c *drift.Context) {
	_ = c.JSON(http.StatusOK, dto.HealthResponse{Status: "ok"})
}
