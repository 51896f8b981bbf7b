package api

import (
	"go.uber.org/zap"

	"github.com/searchlite/searchlite/pkg/registry"
)

// Handler provides HTTP handlers for the search API.
type Handler struct {
	registry *registry.Registry
	logger   *zap.Logger
}

// NewHandler creates a new API handler with dependency injection.
func NewHandler(reg *registry.Registry, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		registry: reg,
		logger:   logger,
	}
}
