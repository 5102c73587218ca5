package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/services"
)

type ApplicationHandler struct {
	svc services.ApplicationService
}

func NewApplicationHandler(svc services.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{svc: svc}
}

type ApplyRequest struct {
	JobPostingID string `json:"jobPostingId" binding:"required"`
}

type CancelRequest struct {
	ApplicationID string `json:"applicationId" binding:"required"`
}

type ReviewRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required,oneof=PENDING ACCEPTED REJECTED"`
}

func (h *ApplicationHandler) Apply(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req ApplyRequest
	if !bindJSON(c, "ApplicationHandler.Apply", &req) {
		return
	}

	app, err := h.svc.Apply(c.Request.Context(), p, req.JobPostingID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Application submitted successfully",
		"applicationId": app.ID,
	})
}

func (h *ApplicationHandler) Mine(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	apps, err := h.svc.ListMine(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Cancel(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req CancelRequest
	if !bindJSON(c, "ApplicationHandler.Cancel", &req) {
		return
	}
	if err := h.svc.Cancel(c.Request.Context(), p, req.ApplicationID); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application cancelled successfully"})
}

func (h *ApplicationHandler) ListForJob(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	apps, err := h.svc.ListForJob(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *ApplicationHandler) Review(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req ReviewRequest
	if !bindJSON(c, "ApplicationHandler.Review", &req) {
		return
	}
	app, err := h.svc.Review(c.Request.Context(), p, c.Param("id"), req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"application": app})
}
