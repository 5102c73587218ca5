package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yoockh/huffaz-portal/internal/mbti"
	"github.com/yoockh/huffaz-portal/internal/utils"
)

type MBTIHandler struct{}

func NewMBTIHandler() *MBTIHandler { return &MBTIHandler{} }

func (h *MBTIHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"scale":    gin.H{"min": mbti.MinAnswer, "max": mbti.MaxAnswer},
		"sections": mbti.Sections(),
	})
}

func (h *MBTIHandler) Type(c *gin.Context) {
	info, ok := mbti.Describe(c.Param("code"))
	if !ok {
		writeError(c, utils.E(utils.CodeNotFound, "MBTIHandler.Type", "unknown MBTI type", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"type": info})
}
