package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"clearing_ops_backend/internal/quotes/service"
	"clearing_ops_backend/internal/quotes/transport"
	"clearing_ops_backend/platform/httpkit"
	"clearing_ops_backend/platform/validator"
)

// PublicHandler handles the customer-facing proposal endpoints.
type PublicHandler struct {
	svc *service.Service
	val *validator.Validator
}

// NewPublicHandler creates a new public quotes handler.
func NewPublicHandler(svc *service.Service, val *validator.Validator) *PublicHandler {
	return &PublicHandler{svc: svc, val: val}
}

// RegisterRoutes mounts the public proposal routes.
func (h *PublicHandler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/:token", h.Get)
	group.POST("/:token/accept", h.Accept)
	group.POST("/:token/decline", h.Decline)
}

// Get returns the customer-facing proposal view.
// GET /api/v1/public/quotes/:token
func (h *PublicHandler) Get(c *gin.Context) {
	result, err := h.svc.GetPublic(c.Request.Context(), c.Param("token"))
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Accept records the customer's acceptance.
// POST /api/v1/public/quotes/:token/accept
func (h *PublicHandler) Accept(c *gin.Context) {
	var req transport.AcceptQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Accept(c.Request.Context(), c.Param("token"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// Decline records the customer's decline.
// POST /api/v1/public/quotes/:token/decline
func (h *PublicHandler) Decline(c *gin.Context) {
	var req transport.DeclineQuoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.Decline(c.Request.Context(), c.Param("token"), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
