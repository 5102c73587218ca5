package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/models"
	"github.com/yoockh/huffaz-portal/internal/services"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

type ProfileHandler struct {
	svc services.ProfileService
}

func NewProfileHandler(svc services.ProfileService) *ProfileHandler {
	return &ProfileHandler{svc: svc}
}

func (h *ProfileHandler) Get(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	u, err := h.svc.Get(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"profile": u.Profile,
		"user":    viewOfUser(u, false),
	})
}

type UpdateProfileRequest struct {
	FirstName     *string `json:"firstName"`
	LastName      *string `json:"lastName"`
	Phone         *string `json:"phone"`
	MBTIType      *string `json:"mbtiType" binding:"omitempty,mbti"`
	MBTICompleted *bool   `json:"mbtiCompleted"`
}

func (h *ProfileHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	var req UpdateProfileRequest
	if !bindJSON(c, "ProfileHandler.Update", &req) {
		return
	}

	profile, err := h.svc.Update(c.Request.Context(), p.ID, services.ProfileUpdate{
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Phone:         req.Phone,
		MBTIType:      req.MBTIType,
		MBTICompleted: req.MBTICompleted,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Profile updated successfully",
		"profile": profile,
	})
}

func (h *ProfileHandler) Upload(c *gin.Context) {
	const op = "ProfileHandler.Upload"

	p, ok := requirePrincipal(c)
	if !ok {
		return
	}

	// allow a little multipart overhead beyond the file limit
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, services.MaxUploadBytes+1<<20)

	fh, err := c.FormFile("file")
	if err != nil {
		writeError(c, utils.E(utils.CodeInvalidArgument, op, "no file uploaded", err))
		return
	}
	kind := c.PostForm("type")
	if _, err := services.ValidateUpload(kind, fh.Filename, fh.Size); err != nil {
		writeError(c, err)
		return
	}

	file, err := fh.Open()
	if err != nil {
		writeError(c, utils.E(utils.CodeInternal, op, "failed to open upload", err))
		return
	}
	defer file.Close()

	url, profile, err := h.svc.UploadDocument(c.Request.Context(), p.ID, services.UploadInput{
		Kind:     kind,
		Filename: fh.Filename,
		Size:     fh.Size,
		Body:     file,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "File uploaded successfully",
		"url":     url,
		"profile": profile,
	})
}

type MBTITypeRequest struct {
	MBTIType string `json:"mbtiType" binding:"required,mbti"`
}

func (h *ProfileHandler) SetMBTI(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req MBTITypeRequest
	if !bindJSON(c, "ProfileHandler.SetMBTI", &req) {
		return
	}

	profile, err := h.svc.SetMBTIType(c.Request.Context(), p.ID, req.MBTIType)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "MBTI information updated successfully",
		"profile": mbtiView(profile),
	})
}

type MBTIAnswersRequest struct {
	Answers []int `json:"answers" binding:"required,len=40,dive,likert"`
}

func (h *ProfileHandler) SubmitAnswers(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req MBTIAnswersRequest
	if !bindJSON(c, "ProfileHandler.SubmitAnswers", &req) {
		return
	}

	res, profile, err := h.svc.SubmitAssessment(c.Request.Context(), p.ID, req.Answers)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "MBTI information updated successfully",
		"result":  res,
		"profile": mbtiView(profile),
	})
}

func (h *ProfileHandler) AssessmentHistory(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	recs, err := h.svc.AssessmentHistory(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessments": recs})
}

func (h *ProfileHandler) LatestAssessment(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	rec, err := h.svc.LatestAssessment(c.Request.Context(), p.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"assessment": rec})
}

func mbtiView(p *models.Profile) gin.H {
	return gin.H{
		"mbtiType":      p.MBTIType,
		"mbtiCompleted": p.MBTICompleted,
	}
}
