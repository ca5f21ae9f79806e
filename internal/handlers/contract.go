package handlers

import (
	"net/http"

	"github.com/dimitrije/prompthub/internal/contract"
	"github.com/m1z23r/drift/pkg/drift"
)

// ContractHandler serves the OpenAPI description of the prompt API.
type ContractHandler struct{}

func NewContractHandler() *ContractHandler {
	return &ContractHandler{}
}

func (h *ContractHandler) JSON(c *drift.Context) {
	_ = c.JSON(http.StatusOK, contract.Document())
}

func (h *ContractHandler) YAML(c *drift.Context) {
	data, err := contract.YAML()
	if err != nil {
		c.InternalServerError("failed to render contract")
		return
	}

	c.Response.Header().Set("Content-Type", "application/yaml")
	c.Response.WriteHeader(http.StatusOK)
	_, _ = c.Response.Write(data)
	c.Abort()
}
