package handler

import (
	"net/http"
	"strconv"

	"github.com/blues/gms/internal/logic"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type AbilityHandler struct {
	abilityLogic     *logic.AbilityLogic
	featureGateLogic *logic.FeatureGateLogic
}

func NewAbilityHandler(db *gorm.DB) *AbilityHandler {
	return &AbilityHandler{
		abilityLogic:     logic.NewAbilityLogic(db),
		featureGateLogic: logic.NewFeatureGateLogic(db),
	}
}

// CheckAbility 检查单个能力
func (h *AbilityHandler) CheckAbility(c *gin.Context) {
	foundationID, err := strconv.ParseUint(c.Query("foundation_id"), 10, 32)
	if err != nil || foundationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的foundation_id"})
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name不能为空"})
		return
	}

	result, err := h.abilityLogic.Check(uint(foundationID), name)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// BulkCheckAbilities 批量检查能力，减少往返
func (h *AbilityHandler) BulkCheckAbilities(c *gin.Context) {
	var req struct {
		FoundationID uint     `json:"foundation_id" binding:"required"`
		Abilities    []string `json:"abilities" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	results, err := h.abilityLogic.BulkCheck(req.FoundationID, req.Abilities)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": results})
}

// CheckFeature 检查单个功能
func (h *AbilityHandler) CheckFeature(c *gin.Context) {
	foundationID, err := strconv.ParseUint(c.Query("foundation_id"), 10, 32)
	if err != nil || foundationID == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的foundation_id"})
		return
	}
	name := c.Query("name")
	if name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name不能为空"})
		return
	}

	result, err := h.featureGateLogic.Check(uint(foundationID), name)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"result": result})
}

// ListFeatures 按可用性列出全部功能
func (h *AbilityHandler) ListFeatures(c *gin.Context) {
	foundationID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "无效的账户ID"})
		return
	}

	result, err := h.featureGateLogic.List(uint(foundationID))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"features": result})
}
