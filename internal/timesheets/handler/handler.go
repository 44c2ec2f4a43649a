package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"clearing_ops_backend/internal/timesheets/service"
	"clearing_ops_backend/internal/timesheets/transport"
	"clearing_ops_backend/platform/httpkit"
	"clearing_ops_backend/platform/validator"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgInvalidID        = "invalid ID"
)

// Handler handles HTTP requests for timesheets.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new timesheets handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the timesheet routes.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/clock-in", h.ClockIn)
	group.POST("/clock-out", h.ClockOut)
	group.GET("/workorders/:id", h.WorkOrderTimesheet)
	group.DELETE("/entries/:id", h.DeleteEntry)
}

// ClockIn opens a time entry for the caller.
// POST /api/v1/timesheets/clock-in
func (h *Handler) ClockIn(c *gin.Context) {
	var req transport.ClockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ClockIn(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusCreated, result)
}

// ClockOut closes the caller's open entry.
// POST /api/v1/timesheets/clock-out
func (h *Handler) ClockOut(c *gin.Context) {
	var req transport.ClockOutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	identity := httpkit.MustGetIdentity(c)
	if identity == nil {
		return
	}

	result, err := h.svc.ClockOut(c.Request.Context(), identity.UserID(), req)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// WorkOrderTimesheet returns the billable-hours summary for a work order.
// GET /api/v1/timesheets/workorders/:id
func (h *Handler) WorkOrderTimesheet(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	result, err := h.svc.WorkOrderTimesheet(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, result)
}

// DeleteEntry removes a mistaken time entry.
// DELETE /api/v1/timesheets/entries/:id
func (h *Handler) DeleteEntry(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidID, nil)
		return
	}

	if err := h.svc.DeleteEntry(c.Request.Context(), id); httpkit.HandleError(c, err) {
		return
	}
	httpkit.JSON(c, http.StatusNoContent, nil)
}
