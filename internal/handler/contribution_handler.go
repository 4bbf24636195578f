package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/blues/gms/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ContributionHandler struct {
	contributionLogic *logic.ContributionLogic
}

func NewContributionHandler(db *gorm.DB) *ContributionHandler {
	return &ContributionHandler{
		contributionLogic: logic.NewContributionLogic(db),
	}
}

// RecordContribution 记录一次贡献
func (h *ContributionHandler) RecordContribution(c *gin.Context) {
	var req struct {
		FoundationID     uint                   `json:"foundation_id" binding:"required"`
		ContributionType string                 `json:"contribution_type" binding:"required"`
		Metadata         map[string]interface{} `json:"metadata"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.contributionLogic.Record(req.FoundationID, req.ContributionType, req.Metadata)
	if err != nil {
		// 未知贡献类型属于输入校验错误
		if errors.Is(err, logic.ErrUnknownContributionType) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// GetContributionStatus 查询贡献状态
func (h *ContributionHandler) GetContributionStatus(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的账户ID"})
		return
	}

	status, err := h.contributionLogic.GetStatus(uint(id))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": status})
}
