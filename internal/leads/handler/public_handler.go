package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clearing_ops_backend/internal/leads/service"
	"clearing_ops_backend/internal/leads/transport"
	"clearing_ops_backend/platform/httpkit"
	"clearing_ops_backend/platform/validator"
)

// PublicHandler handles the unauthenticated intake endpoint.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublicHandler creates a new public leads handler.
func NewPublicHandler(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes mounts the public intake route.
func (h *PublicHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("", h.Intake)
}

// Intake accepts a website lead form submission.
// POST /api/v1/public/leads
func (h *PublicHandler) Intake(c *gin.Context) {
	var req transport.IntakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		// The honeypot trips this path too; bots get the same generic
		// response as any malformed submission.
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, nil)
		return
	}

	result, err := h.svc.Intake(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	if result.Duplicate {
		httpkit.OK(c, result)
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}
