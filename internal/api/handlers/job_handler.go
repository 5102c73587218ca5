package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/api/middleware"
	pgrepo "github.com/yoockh/huffaz-portal/internal/repositories/postgres"
	"github.com/yoockh/huffaz-portal/internal/services"
)

type JobHandler struct {
	svc services.JobService
}

func NewJobHandler(svc services.JobService) *JobHandler {
	return &JobHandler{svc: svc}
}

// JobRequest is used for both create and partial edit; absent fields stay nil.
type JobRequest struct {
	Title            *string `json:"title"`
	Company          *string `json:"company"`
	Location         *string `json:"location"`
	Salary           *string `json:"salary"`
	Description      *string `json:"description"`
	Requirements     *string `json:"requirements"`
	Responsibilities *string `json:"responsibilities"`
	Benefits         *string `json:"benefits"`
	EmploymentType   *string `json:"employmentType"`
	MBTITypes        *string `json:"mbtiTypes"`
	Deadline         *string `json:"deadline"`
	Status           *string `json:"status" binding:"omitempty,oneof=ACTIVE OPEN CLOSED"`
}

func (r JobRequest) input() services.JobInput {
	return services.JobInput{
		Title:            r.Title,
		Company:          r.Company,
		Location:         r.Location,
		Salary:           r.Salary,
		Description:      r.Description,
		Requirements:     r.Requirements,
		Responsibilities: r.Responsibilities,
		Benefits:         r.Benefits,
		EmploymentType:   r.EmploymentType,
		MBTITypes:        r.MBTITypes,
		Deadline:         r.Deadline,
		Status:           r.Status,
	}
}

func (h *JobHandler) List(c *gin.Context) {
	jobs, err := h.svc.ListOpen(c.Request.Context(), pgrepo.JobFilter{
		MBTIType: c.Query("mbti"),
		Query:    c.Query("q"),
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Recent(c *gin.Context) {
	jobs, err := h.svc.Recent(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) Get(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	job, err := h.svc.Get(c.Request.Context(), p, c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"job": job})
}

func (h *JobHandler) Create(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req JobRequest
	if !bindJSON(c, "JobHandler.Create", &req) {
		return
	}
	job, err := h.svc.Create(c.Request.Context(), p, req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job created successfully", "job": job})
}

func (h *JobHandler) Update(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req JobRequest
	if !bindJSON(c, "JobHandler.Update", &req) {
		return
	}
	job, err := h.svc.Update(c.Request.Context(), p, c.Param("id"), req.input())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated successfully", "job": job})
}

func (h *JobHandler) ListAll(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	jobs, err := h.svc.ListAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"jobs": jobs})
}

func (h *JobHandler) BackfillDetails(c *gin.Context) {
	p, ok := requirePrincipal(c)
	if !ok {
		return
	}
	n, err := h.svc.BackfillDetails(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":     "Successfully updated all jobs with new fields",
		"jobsUpdated": n,
	})
}
