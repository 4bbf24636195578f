package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/gms/internal/logic"
	"github.com/blues/gms/internal/model"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreationHandler struct {
	creationLogic *logic.CreationLogic
}

func NewCreationHandler(db *gorm.DB) *CreationHandler {
	return &CreationHandler{
		creationLogic: logic.NewCreationLogic(db),
	}
}

// PublishCreation 发布作品
func (h *CreationHandler) PublishCreation(c *gin.Context) {
	var req struct {
		FoundationID       uint                 `json:"foundation_id"`
		Title              string               `json:"title"`
		Description        string               `json:"description"`
		BasePrice          int64                `json:"base_price"`
		BuilderSharePct    int64                `json:"builder_share_pct"`
		DownstreamSharePct int64                `json:"downstream_share_pct"`
		Visibility         string               `json:"visibility"`
		Parents            []logic.LineageInput `json:"parents"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.BuilderSharePct == 0 {
		req.BuilderSharePct = 80
	}

	creation := model.Creation{
		FoundationID:       req.FoundationID,
		Title:              req.Title,
		Description:        req.Description,
		BasePrice:          req.BasePrice,
		BuilderSharePct:    req.BuilderSharePct,
		DownstreamSharePct: req.DownstreamSharePct,
		Visibility:         req.Visibility,
	}

	if err := h.creationLogic.Publish(&creation, req.Parents); err != nil {
		if err == logic.ErrFoundationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message":  "作品发布成功",
		"creation": creation,
	})
}

// GetCreation 获取作品详情
func (h *CreationHandler) GetCreation(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的作品ID"})
		return
	}

	creation, err := h.creationLogic.GetCreation(uint(id))
	if err != nil {
		if err == logic.ErrCreationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"creation": creation})
}

// GetCreations 获取作品列表
func (h *CreationHandler) GetCreations(c *gin.Context) {
	foundationID, _ := strconv.ParseUint(c.DefaultQuery("foundation_id", "0"), 10, 32)
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	creations, total, err := h.creationLogic.GetCreations(uint(foundationID), page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"creations": creations,
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// UpdateCreationShares 更新作品分成比例
func (h *CreationHandler) UpdateCreationShares(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的作品ID"})
		return
	}

	var req struct {
		BuilderSharePct    *int64 `json:"builder_share_pct"`
		DownstreamSharePct *int64 `json:"downstream_share_pct"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.creationLogic.UpdateShares(uint(id), req.BuilderSharePct, req.DownstreamSharePct); err != nil {
		if err == logic.ErrCreationNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "分成比例更新成功"})
}
