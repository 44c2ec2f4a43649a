package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clearing_ops_backend/internal/catalog/service"
	"clearing_ops_backend/internal/catalog/transport"
	"clearing_ops_backend/platform/httpkit"
	"clearing_ops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid package ID"
)

// Handler handles HTTP requests for the catalog.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new catalog handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts authenticated catalog routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.GET("/packages", h.ListPackages)
	group.GET("/packages/:id", h.GetPackage)
	group.GET("/rates", h.GetRateSettings)
}

// RegisterAdminRoutes mounts admin-only catalog routes.
func (h *Handler) RegisterAdminRoutes(group *gin.RouterGroup) {
	group.POST("/packages", h.CreatePackage)
	group.PUT("/packages/:id", h.UpdatePackage)
	group.PATCH("/packages/:id/active", h.SetPackageActive)
	group.PUT("/rates", h.UpdateRateSettings)
}

// ListPackages retrieves package tiers.
// GET /api/v1/catalog/packages?includeInactive=true
func (h *Handler) ListPackages(c *gin.Context) {
	includeInactive := c.Query("includeInactive") == "true"

	result, err := h.svc.ListPackages(c.Request.Context(), includeInactive)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetPackage retrieves a package tier by ID.
// GET /api/v1/catalog/packages/:id
func (h *Handler) GetPackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.GetPackage(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// GetRateSettings retrieves the land clearing and deposit rates.
// GET /api/v1/catalog/rates
func (h *Handler) GetRateSettings(c *gin.Context) {
	result, err := h.svc.GetRateSettings(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// CreatePackage creates a new package tier.
// POST /api/v1/admin/catalog/packages
func (h *Handler) CreatePackage(c *gin.Context) {
	var req transport.CreatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.CreatePackage(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// UpdatePackage updates an existing package tier.
// PUT /api/v1/admin/catalog/packages/:id
func (h *Handler) UpdatePackage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.UpdatePackageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdatePackage(c.Request.Context(), id, req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// SetPackageActive toggles a package tier.
// PATCH /api/v1/admin/catalog/packages/:id/active
func (h *Handler) SetPackageActive(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	var req transport.SetPackageActiveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}

	if err := h.svc.SetPackageActive(c.Request.Context(), id, req.IsActive); httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, gin.H{"id": id, "isActive": req.IsActive})
}

// UpdateRateSettings replaces the land clearing and deposit rates.
// PUT /api/v1/admin/catalog/rates
func (h *Handler) UpdateRateSettings(c *gin.Context) {
	var req transport.UpdateRateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	result, err := h.svc.UpdateRateSettings(c.Request.Context(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}
