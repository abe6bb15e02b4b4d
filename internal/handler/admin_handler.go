package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medbook/medbook-api/internal/middleware"
	"github.com/medbook/medbook-api/internal/models"
	"github.com/medbook/medbook-api/internal/service"
	appErrors "github.com/medbook/medbook-api/pkg/errors"
	"github.com/medbook/medbook-api/pkg/response"
)

// AdminHandler exposes the provider approval lifecycle to administrators.
type AdminHandler struct {
	approvals *service.ApprovalService
}

// NewAdminHandler constructs AdminHandler.
func NewAdminHandler(approvals *service.ApprovalService) *AdminHandler {
	return &AdminHandler{approvals: approvals}
}

type rejectRequest struct {
	Reason string `json:"reason"`
}

// Approve godoc
// @Summary Approve a pending doctor
// @Tags Admin
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /admin/doctors/{id}/approve [post]
func (h *AdminHandler) Approve(c *gin.Context) {
	doctor, err := h.approvals.Approve(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor)
}

// Reject godoc
// @Summary Reject a pending doctor
// @Tags Admin
// @Accept json
// @Produce json
// @Param id path string true "Doctor ID"
// @Param payload body rejectRequest true "Rejection payload"
// @Success 200 {object} response.Envelope
// @Router /admin/doctors/{id}/reject [post]
func (h *AdminHandler) Reject(c *gin.Context) {
	var req rejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	doctor, err := h.approvals.Reject(c.Request.Context(), c.Param("id"), req.Reason)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor)
}

// Suspend godoc
// @Summary Suspend an approved doctor
// @Tags Admin
// @Produce json
// @Param id path string true "Doctor ID"
// @Success 200 {object} response.Envelope
// @Router /admin/doctors/{id}/suspend [post]
func (h *AdminHandler) Suspend(c *gin.Context) {
	doctor, err := h.approvals.Suspend(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, doctor)
}

func currentUserID(c *gin.Context) string {
	if claimsValue, exists := c.Get(middleware.ContextUserKey); exists {
		if claims, ok := claimsValue.(*models.JWTClaims); ok {
			return claims.UserID
		}
	}
	return ""
}
